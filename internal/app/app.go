package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/thoga72-SAP/birkenbihllab/internal/adapter/dictfile"
	"github.com/thoga72-SAP/birkenbihllab/internal/adapter/memstore"
	"github.com/thoga72-SAP/birkenbihllab/internal/adapter/postgres"
	priorityrepo "github.com/thoga72-SAP/birkenbihllab/internal/adapter/postgres/priority"
	vocabrepo "github.com/thoga72-SAP/birkenbihllab/internal/adapter/postgres/vocab"
	"github.com/thoga72-SAP/birkenbihllab/internal/adapter/provider/deepl"
	"github.com/thoga72-SAP/birkenbihllab/internal/config"
	"github.com/thoga72-SAP/birkenbihllab/internal/domain"
	"github.com/thoga72-SAP/birkenbihllab/internal/service/trainer"
	"github.com/thoga72-SAP/birkenbihllab/internal/transport/middleware"
	"github.com/thoga72-SAP/birkenbihllab/internal/transport/rest"
)

// vocabStore and priorityStore mirror the trainer ports so either the
// postgres repos or the in-memory fallbacks can back them.
type vocabStore interface {
	UpsertIncrement(ctx context.Context, sourceWord, candidate string, delta int) error
	ListFor(ctx context.Context, sourceWord string) ([]domain.VocabEntry, error)
}

type priorityStore interface {
	RecordChoice(ctx context.Context, sourceWord, candidate string) error
	Load(ctx context.Context) (map[string]int, map[string]map[string]int, error)
}

// Run is the application entry point: loads configuration, wires adapters,
// services and the HTTP surface, and serves until ctx is cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	// Database is optional. Without a DSN the stores fall back to
	// process-local memory; ranking works, durability is lost on restart.
	var pool *pgxpool.Pool
	if cfg.Database.DSN != "" {
		pool, err = postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			return fmt.Errorf("connect to database: %w", err)
		}
		defer pool.Close()
	} else {
		logger.Warn("no database configured, using in-memory stores")
	}

	var (
		vocab    vocabStore
		priority priorityStore
	)
	if pool != nil {
		vocab = vocabrepo.New(pool)
		priority = priorityrepo.New(pool, postgres.NewTxManager(pool))
	} else {
		vocab = memstore.NewVocabStore()
		priority = memstore.NewPriorityStore()
	}

	// Load failure degrades to empty counters, never blocks startup.
	global, perWord, err := priority.Load(ctx)
	if err != nil {
		logger.Warn("priority load failed, starting with empty counters",
			slog.String("error", err.Error()))
		global, perWord = nil, nil
	}
	state := trainer.NewPriorityState(global, perWord)

	dict, err := dictfile.Load(cfg.Dictionary.Path)
	if err != nil {
		logger.Warn("dictionary file unavailable",
			slog.String("path", cfg.Dictionary.Path),
			slog.String("error", err.Error()))
		dict = dictfile.Empty()
	} else {
		logger.Info("dictionary loaded",
			slog.String("path", cfg.Dictionary.Path),
			slog.Int("entries", dict.Len()))
	}

	oracle := deepl.NewProvider(cfg.DeepL, logger)
	svc := trainer.NewService(logger, oracle, dict, vocab, priority, state)

	handler, stopRateLimiter := buildHandler(cfg, logger, svc, pool)
	defer stopRateLimiter()

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func buildHandler(cfg *config.Config, logger *slog.Logger, svc *trainer.Service, pool *pgxpool.Pool) (http.Handler, func()) {
	mux := http.NewServeMux()

	var health *rest.HealthHandler
	if pool != nil {
		health = rest.NewHealthHandler(pool, BuildVersion())
	} else {
		health = rest.NewHealthHandler(nil, BuildVersion())
	}
	mux.HandleFunc("GET /health", health.Health)
	mux.HandleFunc("GET /ready", health.Ready)
	mux.HandleFunc("GET /live", health.Live)

	th := rest.NewTrainerHandler(svc, logger)
	mux.HandleFunc("POST /api/translate", th.Translate)
	mux.HandleFunc("POST /api/translate/fulltext", th.TranslateFulltext)
	mux.HandleFunc("POST /api/vocab/save", th.SaveVocab)
	mux.HandleFunc("POST /api/lines/prepare", th.PrepareLines)
	mux.HandleFunc("POST /api/lines/pick", th.Pick)

	if cfg.Server.StaticDir != "" {
		if _, err := os.Stat(cfg.Server.StaticDir); err == nil {
			mux.Handle("/", rest.Static(cfg.Server.StaticDir))
		} else {
			logger.Warn("static dir missing, serving API only",
				slog.String("dir", cfg.Server.StaticDir))
		}
	}

	mws := []middleware.Middleware{
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.Recovery(logger),
		middleware.CORS(cfg.CORS),
	}
	stop := func() {}
	if cfg.Server.RateLimitPerMinute > 0 {
		rl := middleware.NewRateLimiter(time.Minute)
		mws = append(mws, rl.Limit(cfg.Server.RateLimitPerMinute))
		stop = rl.Stop
	}

	return middleware.Chain(mws...)(mux), stop
}

//go:build e2e

package e2e_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/thoga72-SAP/birkenbihllab/internal/adapter/dictfile"
	"github.com/thoga72-SAP/birkenbihllab/internal/adapter/postgres"
	priorityrepo "github.com/thoga72-SAP/birkenbihllab/internal/adapter/postgres/priority"
	"github.com/thoga72-SAP/birkenbihllab/internal/adapter/postgres/testhelper"
	vocabrepo "github.com/thoga72-SAP/birkenbihllab/internal/adapter/postgres/vocab"
	"github.com/thoga72-SAP/birkenbihllab/internal/adapter/provider/deepl"
	"github.com/thoga72-SAP/birkenbihllab/internal/config"
	"github.com/thoga72-SAP/birkenbihllab/internal/service/trainer"
	"github.com/thoga72-SAP/birkenbihllab/internal/transport/middleware"
	"github.com/thoga72-SAP/birkenbihllab/internal/transport/rest"
)

// testServer bundles the running API server and its collaborators.
type testServer struct {
	URL    string
	Client *http.Client
}

// stubOracle is a minimal DeepL-compatible endpoint: it answers every
// variant request for a word found in its table and stays silent otherwise.
func stubOracle(t *testing.T, answers map[string][]string) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		text := r.Form.Get("text")

		alts, ok := answers[text]
		if !ok || len(alts) == 0 {
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `{"translations":[]}`)
			return
		}

		resp := map[string]any{
			"translations": []map[string]any{
				{"text": alts[0], "alternatives": alts[1:]},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	t.Cleanup(srv.Close)
	return srv
}

// setupTestServer wires the full API against a disposable database, a stub
// oracle and a small dictionary file, mirroring the production wiring.
func setupTestServer(t *testing.T, oracleAnswers map[string][]string, dictLines string) *testServer {
	t.Helper()

	pool := testhelper.SetupTestDB(t)
	testhelper.TruncateAll(t, pool)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	dictPath := filepath.Join(t.TempDir(), "vocab.txt")
	require.NoError(t, os.WriteFile(dictPath, []byte(dictLines), 0o644))
	dict, err := dictfile.Load(dictPath)
	require.NoError(t, err)

	oracleSrv := stubOracle(t, oracleAnswers)
	oracle := deepl.NewProvider(config.DeepLConfig{
		URL:        oracleSrv.URL,
		APIKey:     "test-key",
		SourceLang: "EN",
		TargetLang: "DE",
		Timeout:    5 * time.Second,
	}, logger)

	vocab := vocabrepo.New(pool)
	priority := priorityrepo.New(pool, postgres.NewTxManager(pool))

	ctx := t.Context()
	global, perWord, err := priority.Load(ctx)
	require.NoError(t, err)
	state := trainer.NewPriorityState(global, perWord)

	svc := trainer.NewService(logger, oracle, dict, vocab, priority, state)

	mux := http.NewServeMux()
	health := rest.NewHealthHandler(pool, "e2e")
	mux.HandleFunc("GET /health", health.Health)
	mux.HandleFunc("GET /ready", health.Ready)
	mux.HandleFunc("GET /live", health.Live)

	th := rest.NewTrainerHandler(svc, logger)
	mux.HandleFunc("POST /api/translate", th.Translate)
	mux.HandleFunc("POST /api/translate/fulltext", th.TranslateFulltext)
	mux.HandleFunc("POST /api/vocab/save", th.SaveVocab)
	mux.HandleFunc("POST /api/lines/prepare", th.PrepareLines)
	mux.HandleFunc("POST /api/lines/pick", th.Pick)

	handler := middleware.Chain(
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.Recovery(logger),
	)(mux)

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return &testServer{URL: srv.URL, Client: srv.Client()}
}

// postJSON sends a JSON body and decodes the JSON response.
func (ts *testServer) postJSON(t *testing.T, path string, body any) (int, map[string]any) {
	t.Helper()

	buf, err := json.Marshal(body)
	require.NoError(t, err)

	resp, err := ts.Client.Post(ts.URL+path, "application/json", bytes.NewReader(buf))
	require.NoError(t, err)
	defer resp.Body.Close()

	var result map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	return resp.StatusCode, result
}

// Package priority persists the learned priority counters in PostgreSQL.
// Both counter tables are written in one transaction per recorded choice;
// each increment is a single upsert statement, so concurrent picks for the
// same word cannot lose updates.
package priority

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/thoga72-SAP/birkenbihllab/internal/adapter/postgres"
	"github.com/thoga72-SAP/birkenbihllab/internal/domain"
)

// Repo provides priority-counter persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
	txm  *postgres.TxManager
}

// New creates a new priority repository.
func New(pool *pgxpool.Pool, txm *postgres.TxManager) *Repo {
	return &Repo{pool: pool, txm: txm}
}

const incrementGlobalSQL = `
INSERT INTO priority_global (candidate, cnt)
VALUES ($1, 1)
ON CONFLICT (candidate)
DO UPDATE SET cnt = priority_global.cnt + 1`

const incrementWordSQL = `
INSERT INTO priority_word (source_word, candidate, cnt)
VALUES ($1, $2, 1)
ON CONFLICT (source_word, candidate)
DO UPDATE SET cnt = priority_word.cnt + 1`

const loadGlobalSQL = `SELECT candidate, cnt FROM priority_global`

const loadWordSQL = `SELECT source_word, candidate, cnt FROM priority_word`

// RecordChoice increments both the global counter for the candidate and the
// per-word counter for (sourceWord, candidate). Keys are normalized
// (trim + lowercase) before writing.
func (r *Repo) RecordChoice(ctx context.Context, sourceWord, candidate string) error {
	word := domain.NormalizeKey(sourceWord)
	cand := domain.NormalizeKey(candidate)
	if word == "" || cand == "" {
		return fmt.Errorf("priority record: %w", domain.NewValidationError("candidate", "required"))
	}

	return r.txm.RunInTx(ctx, func(txCtx context.Context) error {
		querier := postgres.QuerierFromCtx(txCtx, r.pool)

		if _, err := querier.Exec(txCtx, incrementGlobalSQL, cand); err != nil {
			return postgres.MapError(err, "priority_global", cand)
		}
		if _, err := querier.Exec(txCtx, incrementWordSQL, word, cand); err != nil {
			return postgres.MapError(err, "priority_word", word)
		}
		return nil
	})
}

// Load reads the full counter state. Used once at startup to seed the
// in-memory priority state.
func (r *Repo) Load(ctx context.Context) (map[string]int, map[string]map[string]int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	global := make(map[string]int)
	rows, err := querier.Query(ctx, loadGlobalSQL)
	if err != nil {
		return nil, nil, fmt.Errorf("load priority_global: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var cand string
		var cnt int
		if err := rows.Scan(&cand, &cnt); err != nil {
			return nil, nil, fmt.Errorf("scan priority_global: %w", err)
		}
		global[cand] = cnt
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("iterate priority_global: %w", err)
	}
	rows.Close()

	perWord := make(map[string]map[string]int)
	rows, err = querier.Query(ctx, loadWordSQL)
	if err != nil {
		return nil, nil, fmt.Errorf("load priority_word: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var word, cand string
		var cnt int
		if err := rows.Scan(&word, &cand, &cnt); err != nil {
			return nil, nil, fmt.Errorf("scan priority_word: %w", err)
		}
		m := perWord[word]
		if m == nil {
			m = make(map[string]int)
			perWord[word] = m
		}
		m[cand] = cnt
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("iterate priority_word: %w", err)
	}

	return global, perWord, nil
}

// Package vocab implements the vocabulary store using PostgreSQL.
// The table keys on (source_word, candidate); increments are single-statement
// upserts so concurrent picks for the same word cannot lose updates.
package vocab

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/thoga72-SAP/birkenbihllab/internal/adapter/postgres"
	"github.com/thoga72-SAP/birkenbihllab/internal/domain"
)

// Repo provides vocabulary persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new vocabulary repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const upsertIncrementSQL = `
INSERT INTO vocab (source_word, candidate, cnt)
VALUES ($1, $2, $3)
ON CONFLICT (source_word, candidate)
DO UPDATE SET cnt = vocab.cnt + EXCLUDED.cnt`

const listForSQL = `
SELECT source_word, candidate, cnt
FROM vocab
WHERE source_word = $1
ORDER BY cnt DESC, candidate ASC`

// UpsertIncrement adds delta to the usage count of (sourceWord, candidate),
// creating the row if absent. The increment happens inside a single
// statement, so racing picks for the same pair serialize in the database.
// The source word is normalized for keying; the candidate keeps its case.
func (r *Repo) UpsertIncrement(ctx context.Context, sourceWord, candidate string, delta int) error {
	word := domain.NormalizeKey(sourceWord)
	if word == "" || candidate == "" {
		return fmt.Errorf("vocab upsert: %w", domain.NewValidationError("sourceWord", "required"))
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)
	if _, err := querier.Exec(ctx, upsertIncrementSQL, word, candidate, delta); err != nil {
		return postgres.MapError(err, "vocab", word)
	}
	return nil
}

// ListFor returns all persisted candidates for a source word, ordered by
// usage count descending, then candidate ascending.
func (r *Repo) ListFor(ctx context.Context, sourceWord string) ([]domain.VocabEntry, error) {
	word := domain.NormalizeKey(sourceWord)

	querier := postgres.QuerierFromCtx(ctx, r.pool)
	rows, err := querier.Query(ctx, listForSQL, word)
	if err != nil {
		return nil, postgres.MapError(err, "vocab", word)
	}
	defer rows.Close()

	var entries []domain.VocabEntry
	for rows.Next() {
		var e domain.VocabEntry
		if err := rows.Scan(&e.SourceWord, &e.Candidate, &e.Count); err != nil {
			return nil, fmt.Errorf("scan vocab entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate vocab entries: %w", err)
	}

	if entries == nil {
		entries = []domain.VocabEntry{}
	}
	return entries, nil
}

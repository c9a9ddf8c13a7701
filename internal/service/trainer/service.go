// Package trainer implements the candidate-ranking and priority-learning
// engine: tokenization, role guessing, candidate aggregation from the
// configured sources, ranking, and reinforcement of user picks.
package trainer

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/thoga72-SAP/birkenbihllab/internal/domain"
	"github.com/thoga72-SAP/birkenbihllab/internal/provider"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type oracle interface {
	Translate(ctx context.Context, text string, opts provider.TranslateOptions) (*provider.TranslationResult, error)
	WordAlternatives(ctx context.Context, word, contextLine string) ([]string, error)
}

type dictionary interface {
	Lookup(word string) []string
}

type vocabStore interface {
	UpsertIncrement(ctx context.Context, sourceWord, candidate string, delta int) error
	ListFor(ctx context.Context, sourceWord string) ([]domain.VocabEntry, error)
}

type priorityRepo interface {
	RecordChoice(ctx context.Context, sourceWord, candidate string) error
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service wires the pure ranking core to its collaborators. The priority
// state is session-global and mutated on every pick; persistence of picks is
// best-effort and never fails a request.
type Service struct {
	log      *slog.Logger
	oracle   oracle
	dict     dictionary
	vocab    vocabStore
	priority priorityRepo
	state    *PriorityState

	// The collator inside Ranker is not safe for concurrent use.
	rankMu sync.Mutex
	ranker *Ranker
}

// NewService creates the trainer service. state is the priority state loaded
// at startup (empty on load failure).
func NewService(
	logger *slog.Logger,
	oracle oracle,
	dict dictionary,
	vocab vocabStore,
	priority priorityRepo,
	state *PriorityState,
) *Service {
	return &Service{
		log:      logger.With("service", "trainer"),
		oracle:   oracle,
		dict:     dict,
		vocab:    vocab,
		priority: priority,
		state:    state,
		ranker:   NewRanker(),
	}
}

// LookupOptions aggregates and ranks candidates for one source word using
// every configured source: existing options first, then the vocabulary
// store, the dictionary file, and finally the oracle. Adapter failures
// degrade to empty contributions.
func (s *Service) LookupOptions(ctx context.Context, word, contextLine string, existing []string) ([]string, error) {
	word = strings.TrimSpace(word)
	if word == "" {
		return nil, domain.NewValidationError("word", "must be non-empty")
	}

	stored := s.vocabCandidates(ctx, word)
	dictCands := s.dict.Lookup(word)

	oracleCands, err := s.oracle.WordAlternatives(ctx, word, contextLine)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		s.log.Warn("oracle lookup failed", "word", word, "error", err)
		oracleCands = nil
	}

	merged := MergeCandidates(existing, stored, dictCands, FilterOracle(oracleCands))
	return s.rank(merged, word, roleInLine(word, contextLine)), nil
}

// TranslateText runs a full-text context translation through the oracle.
func (s *Service) TranslateText(ctx context.Context, text string) (*provider.TranslationResult, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, domain.NewValidationError("text", "must be non-empty")
	}
	return s.oracle.Translate(ctx, text, provider.TranslateOptions{SplitSentences: true})
}

// RecordChoice reinforces a confirmed (source word, candidate) pair: the
// in-memory priority state is updated first, then the durable stores,
// best-effort. Persistence failures are logged and swallowed so ranking
// stays correct for the rest of the session.
func (s *Service) RecordChoice(ctx context.Context, sourceWord, candidate string) error {
	sourceWord = strings.TrimSpace(sourceWord)
	candidate = strings.TrimSpace(candidate)
	if sourceWord == "" || candidate == "" {
		return domain.NewValidationError("source_word", "source word and candidate must be non-empty")
	}

	s.state.RecordChoice(sourceWord, candidate)

	if err := s.priority.RecordChoice(ctx, sourceWord, candidate); err != nil {
		s.log.Warn("priority persist failed", "word", sourceWord, "error", err)
	}
	if err := s.vocab.UpsertIncrement(ctx, sourceWord, candidate, 1); err != nil {
		s.log.Warn("vocab persist failed", "word", sourceWord, "error", err)
	}
	return nil
}

// CountFor returns the combined pick count for display.
func (s *Service) CountFor(sourceWord, candidate string) int {
	return s.state.CountFor(sourceWord, candidate)
}

func (s *Service) rank(candidates []string, sourceWord string, role domain.Role) []string {
	s.rankMu.Lock()
	defer s.rankMu.Unlock()
	return s.ranker.Rank(candidates, sourceWord, s.state, role)
}

func (s *Service) vocabCandidates(ctx context.Context, word string) []string {
	entries, err := s.vocab.ListFor(ctx, word)
	if err != nil {
		s.log.Warn("vocab lookup failed", "word", word, "error", err)
		return nil
	}
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Candidate)
	}
	return out
}

// roleInLine tokenizes the context line and guesses the role of the first
// occurrence of word in it.
func roleInLine(word, contextLine string) domain.Role {
	if contextLine == "" {
		return domain.RoleUnknown
	}
	tokens := Tokenize(contextLine)
	for i, tok := range tokens {
		if !tok.Punctuation && strings.EqualFold(tok.Text, word) {
			return GuessRole(tokens, i)
		}
	}
	return domain.RoleUnknown
}

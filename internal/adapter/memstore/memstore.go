// Package memstore provides in-memory implementations of the vocabulary and
// priority stores. They back deployments that run without a database and the
// service-level tests. Counters survive for the process lifetime only.
package memstore

import (
	"context"
	"sort"
	"sync"

	"github.com/thoga72-SAP/birkenbihllab/internal/domain"
)

// VocabStore keeps confirmed word/candidate pairs with pick counts.
type VocabStore struct {
	mu      sync.RWMutex
	entries map[string]map[string]int
}

func NewVocabStore() *VocabStore {
	return &VocabStore{entries: make(map[string]map[string]int)}
}

func (s *VocabStore) UpsertIncrement(_ context.Context, sourceWord, candidate string, delta int) error {
	key := domain.NormalizeKey(sourceWord)
	if key == "" || candidate == "" {
		return domain.NewValidationError("source_word", "source word and candidate must be non-empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	byCand := s.entries[key]
	if byCand == nil {
		byCand = make(map[string]int)
		s.entries[key] = byCand
	}
	byCand[candidate] += delta
	return nil
}

func (s *VocabStore) ListFor(_ context.Context, sourceWord string) ([]domain.VocabEntry, error) {
	key := domain.NormalizeKey(sourceWord)

	s.mu.RLock()
	defer s.mu.RUnlock()

	byCand := s.entries[key]
	if len(byCand) == 0 {
		return nil, nil
	}

	out := make([]domain.VocabEntry, 0, len(byCand))
	for cand, cnt := range byCand {
		out = append(out, domain.VocabEntry{SourceWord: key, Candidate: cand, Count: cnt})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Candidate < out[j].Candidate
	})
	return out, nil
}

// PriorityStore keeps the global and per-word pick counters.
type PriorityStore struct {
	mu      sync.RWMutex
	global  map[string]int
	perWord map[string]map[string]int
}

func NewPriorityStore() *PriorityStore {
	return &PriorityStore{
		global:  make(map[string]int),
		perWord: make(map[string]map[string]int),
	}
}

func (s *PriorityStore) RecordChoice(_ context.Context, sourceWord, candidate string) error {
	wordKey := domain.NormalizeKey(sourceWord)
	candKey := domain.NormalizeKey(candidate)
	if wordKey == "" || candKey == "" {
		return domain.NewValidationError("source_word", "source word and candidate must be non-empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.global[candKey]++
	byCand := s.perWord[wordKey]
	if byCand == nil {
		byCand = make(map[string]int)
		s.perWord[wordKey] = byCand
	}
	byCand[candKey]++
	return nil
}

// Load returns copies of both counter maps.
func (s *PriorityStore) Load(_ context.Context) (map[string]int, map[string]map[string]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	global := make(map[string]int, len(s.global))
	for k, v := range s.global {
		global[k] = v
	}
	perWord := make(map[string]map[string]int, len(s.perWord))
	for w, byCand := range s.perWord {
		inner := make(map[string]int, len(byCand))
		for c, v := range byCand {
			inner[c] = v
		}
		perWord[w] = inner
	}
	return global, perWord, nil
}

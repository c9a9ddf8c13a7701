package trainer

import (
	"sync"

	"github.com/thoga72-SAP/birkenbihllab/internal/domain"
)

// PriorityState is the in-memory reinforcement memory: a global counter per
// candidate and a per-source-word counter per candidate. Counts only grow.
// Loaded once at startup from durable storage; every user pick increments
// both maps here and is persisted best-effort through a port owned by the
// service, so ranking stays correct for the session even when persistence
// fails.
//
// Safe for concurrent use. A single mutex serializes all increments, which
// also satisfies the same-word serialization requirement.
type PriorityState struct {
	mu      sync.RWMutex
	global  map[string]int
	perWord map[string]map[string]int
}

// NewPriorityState builds state from loaded counter maps. Nil maps are
// treated as empty. The maps are copied; callers keep ownership of theirs.
func NewPriorityState(global map[string]int, perWord map[string]map[string]int) *PriorityState {
	s := &PriorityState{
		global:  make(map[string]int, len(global)),
		perWord: make(map[string]map[string]int, len(perWord)),
	}
	for k, v := range global {
		s.global[k] = v
	}
	for w, byCand := range perWord {
		inner := make(map[string]int, len(byCand))
		for c, v := range byCand {
			inner[c] = v
		}
		s.perWord[w] = inner
	}
	return s
}

// RecordChoice increments the global and per-word counters for a pick.
func (s *PriorityState) RecordChoice(sourceWord, candidate string) {
	wordKey := domain.NormalizeKey(sourceWord)
	candKey := domain.NormalizeKey(candidate)
	if wordKey == "" || candKey == "" {
		return
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
}

// CountFor returns the per-word plus global count for display purposes.
// Ranking compares the two signals hierarchically instead of summing.
func (s *PriorityState) CountFor(sourceWord, candidate string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.wordCountLocked(sourceWord, candidate) + s.globalCountLocked(candidate)
}

// WordCount returns the per-source-word counter for a candidate.
func (s *PriorityState) WordCount(sourceWord, candidate string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.wordCountLocked(sourceWord, candidate)
}

// GlobalCount returns the source-word-independent counter for a candidate.
func (s *PriorityState) GlobalCount(candidate string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.globalCountLocked(candidate)
}

func (s *PriorityState) wordCountLocked(sourceWord, candidate string) int {
	byCand := s.perWord[domain.NormalizeKey(sourceWord)]
	if byCand == nil {
		return 0
	}
	return byCand[domain.NormalizeKey(candidate)]
}

func (s *PriorityState) globalCountLocked(candidate string) int {
	return s.global[domain.NormalizeKey(candidate)]
}

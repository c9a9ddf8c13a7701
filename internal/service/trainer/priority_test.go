package trainer

import (
	"sync"
	"testing"
)

func TestPriorityStateRecordChoice(t *testing.T) {
	t.Parallel()

	s := NewPriorityState(nil, nil)

	before := s.CountFor("quick", "rasch")
	s.RecordChoice("quick", "rasch")

	// Monotonic reinforcement: picked candidate grows, others unchanged.
	if got := s.CountFor("quick", "rasch"); got != before+2 {
		t.Errorf("CountFor(quick, rasch) = %d, want %d (per-word + global)", got, before+2)
	}
	if got := s.CountFor("quick", "schnell"); got != 0 {
		t.Errorf("CountFor(quick, schnell) = %d, want 0", got)
	}

	if got := s.WordCount("quick", "rasch"); got != 1 {
		t.Errorf("WordCount = %d, want 1", got)
	}
	if got := s.GlobalCount("rasch"); got != 1 {
		t.Errorf("GlobalCount = %d, want 1", got)
	}

	// Global reinforcement shows up under other source words too.
	if got := s.CountFor("fast", "rasch"); got != 1 {
		t.Errorf("CountFor(fast, rasch) = %d, want 1 (global only)", got)
	}
}

func TestPriorityStateNormalizesKeys(t *testing.T) {
	t.Parallel()

	s := NewPriorityState(nil, nil)
	s.RecordChoice("Quick", "Rasch")
	s.RecordChoice("quick", "rasch")

	if got := s.WordCount("QUICK", "RASCH"); got != 2 {
		t.Errorf("WordCount = %d, want 2", got)
	}
}

func TestPriorityStateIgnoresEmptyKeys(t *testing.T) {
	t.Parallel()

	s := NewPriorityState(nil, nil)
	s.RecordChoice("", "rasch")
	s.RecordChoice("quick", "  ")

	if got := s.GlobalCount("rasch"); got != 0 {
		t.Errorf("GlobalCount(rasch) = %d, want 0", got)
	}
	if got := s.WordCount("quick", ""); got != 0 {
		t.Errorf("WordCount = %d, want 0", got)
	}
}

func TestNewPriorityStateCopiesMaps(t *testing.T) {
	t.Parallel()

	global := map[string]int{"ziel": 1}
	perWord := map[string]map[string]int{"goal": {"ziel": 1}}
	s := NewPriorityState(global, perWord)

	global["ziel"] = 99
	perWord["goal"]["ziel"] = 99

	if got := s.GlobalCount("ziel"); got != 1 {
		t.Errorf("GlobalCount = %d, want 1 (state shares caller map)", got)
	}
	if got := s.WordCount("goal", "ziel"); got != 1 {
		t.Errorf("WordCount = %d, want 1 (state shares caller map)", got)
	}
}

func TestPriorityStateConcurrent(t *testing.T) {
	t.Parallel()

	s := NewPriorityState(nil, nil)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				s.RecordChoice("run", "laufen")
			}
		}()
	}
	wg.Wait()

	if got := s.WordCount("run", "laufen"); got != 800 {
		t.Errorf("WordCount = %d, want 800", got)
	}
	if got := s.GlobalCount("laufen"); got != 800 {
		t.Errorf("GlobalCount = %d, want 800", got)
	}
}

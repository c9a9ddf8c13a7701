package trainer

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/thoga72-SAP/birkenbihllab/internal/domain"
)

// Ranker orders candidate lists. Stateless apart from the collator, which
// is not safe for concurrent use, so each call site owns its Ranker or
// guards it; the service keeps one behind its own synchronization.
type Ranker struct {
	collator *collate.Collator
}

func NewRanker() *Ranker {
	return &Ranker{collator: collate.New(language.German, collate.IgnoreCase)}
}

// Rank returns candidates as a new slice sorted best-first:
//
//  1. per-source-word pick count, descending
//  2. global pick count, descending
//  3. role-match heuristic (verb hint favors infinitive-looking candidates,
//     noun hint favors capitalized ones)
//  4. word count, ascending
//  5. case-insensitive German collation
//
// A final byte comparison makes the order total, so equal inputs always
// produce identical output. Input order never matters; the result is a
// permutation of the input. Empty in, empty out.
func (r *Ranker) Rank(candidates []string, sourceWord string, state *PriorityState, role domain.Role) []string {
	out := make([]string, len(candidates))
	copy(out, candidates)
	if len(out) < 2 {
		return out
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]

		if wa, wb := state.WordCount(sourceWord, a), state.WordCount(sourceWord, b); wa != wb {
			return wa > wb
		}
		if ga, gb := state.GlobalCount(a), state.GlobalCount(b); ga != gb {
			return ga > gb
		}
		if ra, rb := roleScore(a, role), roleScore(b, role); ra != rb {
			return ra > rb
		}
		if ca, cb := domain.WordCount(a), domain.WordCount(b); ca != cb {
			return ca < cb
		}
		if c := r.collator.CompareString(a, b); c != 0 {
			return c < 0
		}
		return strings.Compare(a, b) < 0
	})
	return out
}

// roleScore is the secondary heuristic signal: 1 when the candidate's shape
// matches the role hint, 0 otherwise.
func roleScore(candidate string, role domain.Role) int {
	switch role {
	case domain.RoleVerb:
		if LooksLikeInfinitive(candidate) {
			return 1
		}
	case domain.RoleNoun:
		if LooksLikeNoun(candidate) {
			return 1
		}
	}
	return 0
}

package trainer

import (
	"strings"

	"github.com/thoga72-SAP/birkenbihllab/internal/domain"
)

// MergeCandidates merges candidate lists in source-priority order: earlier
// lists win, later lists only contribute strings not already present under
// case-insensitive comparison. Entries are trimmed; empties are dropped.
// Pure — no adapter calls, no persistence. Re-merging the output with the
// same inputs is a no-op.
func MergeCandidates(lists ...[]string) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, list := range lists {
		for _, raw := range list {
			cand := strings.TrimSpace(raw)
			if cand == "" {
				continue
			}
			key := domain.NormalizeKey(cand)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, cand)
		}
	}
	return out
}

// FilterOracle applies the canonical validity check to oracle-derived
// candidates, keeping input order. Junk (digits, long sentences, non-German
// fragments) is dropped; usable candidates are truncated to their first
// fragment.
func FilterOracle(raw []string) []string {
	var out []string
	for _, cand := range raw {
		if cleaned, ok := CleanCandidate(cand); ok {
			out = append(out, cleaned)
		}
	}
	return out
}

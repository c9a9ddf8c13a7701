package trainer

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/thoga72-SAP/birkenbihllab/internal/domain"
)

// Candidate validity. One canonical junk filter applied to oracle-derived
// candidates: truncate to the first sentence/line fragment, then require at
// least one letter of the German alphabet, no digits, and at most three
// words. Dates ("März 2024:"), numbers and whole sentences fall out here.

var (
	germanLetter  = regexp.MustCompile(`[A-Za-zÄÖÜäöüß]`)
	fragmentSplit = regexp.MustCompile(`[.;!?\n]`)
	// Ends with a common German infinitive suffix. A heuristic with known
	// false positives ("Garten"); tolerated as a secondary signal.
	infinitiveSuffix = regexp.MustCompile(`(en|ern|eln)$`)
)

// CleanCandidate truncates raw to its first sentence/line fragment and
// reports whether the result is a usable candidate.
func CleanCandidate(raw string) (string, bool) {
	s := strings.TrimSpace(fragmentSplit.Split(raw, 2)[0])
	if s == "" {
		return "", false
	}
	if !germanLetter.MatchString(s) {
		return "", false
	}
	if strings.ContainsFunc(s, unicode.IsDigit) {
		return "", false
	}
	if domain.WordCount(s) > 3 {
		return "", false
	}
	return s, true
}

// LooksLikeInfinitive reports whether candidate's first word resembles a
// German infinitive verb form (lowercase, verb suffix).
func LooksLikeInfinitive(candidate string) bool {
	word := firstWord(candidate)
	if word == "" || startsUpper(word) {
		return false
	}
	return infinitiveSuffix.MatchString(strings.ToLower(word))
}

// LooksLikeNoun reports whether candidate's first word follows German noun
// capitalization.
func LooksLikeNoun(candidate string) bool {
	word := firstWord(candidate)
	return word != "" && startsUpper(word)
}

func firstWord(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

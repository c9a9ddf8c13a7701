package trainer

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/thoga72-SAP/birkenbihllab/internal/domain"
)

var (
	tokenPattern       = regexp.MustCompile(`\w+|'\w+|[^\s\w]+`)
	punctuationPattern = regexp.MustCompile(`^[^A-Za-zÄÖÜäöüß]+$`)
)

// Tokenize splits one line of text into word and punctuation tokens.
// Apostrophe suffixes ("don't" → "don", "'t") and punctuation runs are
// their own tokens. ProperName is set on capitalized words that are not
// the first word of the line.
func Tokenize(line string) []domain.Token {
	raw := tokenPattern.FindAllString(line, -1)
	if len(raw) == 0 {
		return nil
	}

	tokens := make([]domain.Token, 0, len(raw))
	firstWordSeen := false
	for _, text := range raw {
		punct := punctuationPattern.MatchString(text)
		tok := domain.Token{Text: text, Punctuation: punct}
		if !punct {
			if firstWordSeen && startsUpper(text) {
				tok.ProperName = true
			}
			firstWordSeen = true
		}
		tokens = append(tokens, tok)
	}
	return tokens
}

// SplitLines splits submitted text into its non-empty lines.
func SplitLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

func startsUpper(s string) bool {
	for _, r := range s {
		return unicode.IsUpper(r)
	}
	return false
}

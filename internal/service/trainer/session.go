package trainer

import (
	"context"
	"fmt"
	"strings"

	"github.com/thoga72-SAP/birkenbihllab/internal/domain"
)

// Prepare tokenizes submitted text and builds the initial line states.
// Every non-punctuation token gets its candidates from the local sources
// (vocabulary store and dictionary file; the oracle is only consulted on an
// explicit lookup), ranked, with the best candidate as the unconfirmed
// default guess. Punctuation tokens are auto-confirmed with their literal
// text as the sole option.
func (s *Service) Prepare(ctx context.Context, text string) ([]domain.LineState, error) {
	if strings.TrimSpace(text) == "" {
		return nil, domain.NewValidationError("text", "must be non-empty")
	}

	var lines []domain.LineState
	for _, lineText := range SplitLines(text) {
		tokens := Tokenize(lineText)
		line := domain.LineState{Text: lineText, Tokens: make([]domain.TokenState, 0, len(tokens))}

		for i, tok := range tokens {
			if tok.Punctuation {
				line.Tokens = append(line.Tokens, domain.TokenState{
					Token:       tok,
					Translation: tok.Text,
					Confirmed:   true,
					Options:     []string{tok.Text},
				})
				continue
			}

			merged := MergeCandidates(s.vocabCandidates(ctx, tok.Text), s.dict.Lookup(tok.Text))
			options := s.rank(merged, tok.Text, GuessRole(tokens, i))

			ts := domain.TokenState{Token: tok, Options: options}
			if len(options) > 0 {
				ts.Translation = options[0]
			}
			line.Tokens = append(line.Tokens, ts)
		}
		lines = append(lines, line)
	}
	return lines, nil
}

// ApplyPick confirms a selection for one token of a prepared line: records
// the choice, re-ranks the token's options (the pick now carries the highest
// per-word count and sorts first), and flips the token to Confirmed. Manual
// selections are injected into the option list. Confirmed is one-way; a
// later pick replaces the choice but never reverts the state.
func (s *Service) ApplyPick(ctx context.Context, line *domain.LineState, tokenIdx int, sel domain.Selection) error {
	if line == nil {
		return domain.NewValidationError("line", "must not be nil")
	}
	if tokenIdx < 0 || tokenIdx >= len(line.Tokens) {
		return domain.NewValidationError("tokenIndex", fmt.Sprintf("index %d out of range", tokenIdx))
	}
	ts := &line.Tokens[tokenIdx]
	if ts.Token.Punctuation {
		return domain.NewValidationError("tokenIndex", "punctuation tokens cannot be picked")
	}
	choice := strings.TrimSpace(sel.Text)
	if choice == "" {
		return domain.NewValidationError("selection", "text must be non-empty")
	}

	if err := s.RecordChoice(ctx, ts.Token.Text, choice); err != nil {
		return err
	}

	merged := ts.Options
	if sel.Kind == domain.SelectionManual {
		merged = MergeCandidates([]string{choice}, ts.Options)
	}
	ts.Options = s.rank(merged, ts.Token.Text, domain.RoleUnknown)
	ts.Translation = choice
	ts.Confirmed = true
	return nil
}

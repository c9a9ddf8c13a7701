package domain

// SelectionKind distinguishes how a confirmed translation was produced.
type SelectionKind string

const (
	// SelectionSuggested is a pick from the ranked option list.
	SelectionSuggested SelectionKind = "suggested"
	// SelectionManual is free text typed by the user.
	SelectionManual SelectionKind = "manual"
)

// Selection is a user choice for one token. A tagged variant instead of a
// string sentinel, so a real candidate can never collide with the manual-entry
// control path.
type Selection struct {
	Kind SelectionKind
	Text string
}

// Suggested builds a Selection for a pick from the option list.
func Suggested(text string) Selection {
	return Selection{Kind: SelectionSuggested, Text: text}
}

// Manual builds a Selection for user-typed free text.
func Manual(text string) Selection {
	return Selection{Kind: SelectionManual, Text: text}
}

// TokenState holds the display state of one token: the token itself, the
// currently shown translation, whether that translation was explicitly
// confirmed, and the full ranked option list. One record per token keeps
// the former parallel-array invariant structurally impossible to violate.
type TokenState struct {
	Token       Token
	Translation string
	Confirmed   bool
	Options     []string
}

// LineState is the prepared state of one input line.
type LineState struct {
	Text   string
	Tokens []TokenState
}

// VocabEntry is one persisted (source word, candidate) pair with its usage
// count, as stored by the vocabulary store.
type VocabEntry struct {
	SourceWord string
	Candidate  string
	Count      int
}

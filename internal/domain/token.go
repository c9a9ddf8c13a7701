package domain

// Token is a single word or punctuation unit produced by the tokenizer.
// Tokens are immutable after tokenization; all mutable per-token state
// lives in TokenState.
type Token struct {
	Text        string
	Punctuation bool
	// ProperName is a best-effort hint: the token is capitalized somewhere
	// other than the start of its line. Used only as a ranking signal.
	ProperName bool
}

// Role is a coarse grammatical role hint for a token, derived from local
// context by the role guesser. Never authoritative — a secondary ranking
// signal only.
type Role string

const (
	RoleNoun    Role = "noun"
	RoleVerb    Role = "verb"
	RoleUnknown Role = "unknown"
)

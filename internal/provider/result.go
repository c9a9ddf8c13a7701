// Package provider defines the contracts between external data providers
// and the services that consume them.
package provider

// TranslationResult is the structured result of one translation-oracle call.
type TranslationResult struct {
	// Text is the primary translation. Empty when the oracle had no answer.
	Text string
	// Alternatives are additional candidate translations, if the oracle
	// account supports them. May be empty.
	Alternatives []string
}

// Formality hints accepted by the oracle. Not every plan honors them;
// unsupported values are simply ignored server-side.
const (
	FormalityLess = "prefer_less"
	FormalityMore = "prefer_more"
)

// TranslateOptions control a single oracle call.
type TranslateOptions struct {
	// Formality is one of the Formality* constants, or empty for default.
	Formality string
	// SplitSentences enables sentence splitting for full-text translation.
	SplitSentences bool
}

package trainer

import (
	"strings"

	"github.com/thoga72-SAP/birkenbihllab/internal/domain"
)

var determiners = map[string]struct{}{
	"a": {}, "an": {}, "the": {},
	"this": {}, "that": {}, "these": {}, "those": {},
}

var modals = map[string]struct{}{
	"will": {}, "can": {}, "could": {}, "should": {}, "would": {},
	"may": {}, "might": {}, "shall": {}, "must": {},
}

// GuessRole returns a coarse grammatical role hint for tokens[idx] from its
// local context. A ranking signal only, never authoritative. Pure and
// deterministic; out-of-range or punctuation indices yield RoleUnknown.
func GuessRole(tokens []domain.Token, idx int) domain.Role {
	if idx < 0 || idx >= len(tokens) || tokens[idx].Punctuation {
		return domain.RoleUnknown
	}

	prev := lowerTokenAt(tokens, idx-1)
	switch {
	case isDeterminer(prev):
		return domain.RoleNoun
	case prev == "to":
		return domain.RoleVerb
	case prev == "and" && isDeterminer(lowerTokenAt(tokens, idx+1)):
		// "eat and drink the water": verb followed by a determiner object.
		return domain.RoleVerb
	case isModal(prev) || isModal(lowerTokenAt(tokens, idx-2)):
		return domain.RoleVerb
	default:
		return domain.RoleUnknown
	}
}

func lowerTokenAt(tokens []domain.Token, idx int) string {
	if idx < 0 || idx >= len(tokens) {
		return ""
	}
	return strings.ToLower(tokens[idx].Text)
}

func isDeterminer(word string) bool {
	_, ok := determiners[word]
	return ok
}

func isModal(word string) bool {
	_, ok := modals[word]
	return ok
}

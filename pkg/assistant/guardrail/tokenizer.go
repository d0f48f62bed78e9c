package guardrail

import (
	"strings"
	"unicode"
)

// maxWordPieceLen mirrors the subword budget of the embedding tokenizer so
// the guardrail count tracks the cost the embedding step will actually pay.
const maxWordPieceLen = 6

// Tokenize approximates the embedding model's wordpiece tokenizer:
// lowercase, punctuation split off as its own token, and long words broken
// into fixed-size pieces. Deterministic, so the length guardrail is stable
// across runs.
func Tokenize(text string) []string {
	var tokens []string
	var word strings.Builder

	flush := func() {
		if word.Len() == 0 {
			return
		}
		w := word.String()
		word.Reset()
		for len(w) > maxWordPieceLen {
			tokens = append(tokens, w[:maxWordPieceLen])
			w = "##" + w[maxWordPieceLen:]
		}
		tokens = append(tokens, w)
	}

	for _, r := range strings.ToLower(text) {
		switch {
		case unicode.IsSpace(r):
			flush()
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			flush()
			tokens = append(tokens, string(r))
		default:
			word.WriteRune(r)
		}
	}
	flush()
	return tokens
}

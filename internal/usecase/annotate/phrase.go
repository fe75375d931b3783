package annotate

import (
	"regexp"
	"strings"
	"unicode"
)

var phraseTokenPattern = regexp.MustCompile(`[a-zA-Z]+(?:['-][a-zA-Z]+)*`)

// NormalizedPhrase is the comparable form of a studied phrase: a normalized
// string plus its extracted word tokens. Only phrases with more than one
// token participate in phrase-level matching; single-word entries belong to
// the study word set instead.
type NormalizedPhrase struct {
	Norm   string
	Tokens []string
}

// NormalizePhrase lowercases, trims, collapses internal whitespace and strips
// leading/trailing non-letter characters from a phrase.
func NormalizePhrase(phrase string) string {
	lowered := strings.ToLower(strings.TrimSpace(phrase))
	collapsed := strings.Join(strings.Fields(lowered), " ")
	return strings.TrimFunc(collapsed, func(r rune) bool {
		return !unicode.IsLetter(r)
	})
}

// PhraseTokens extracts lowercase word tokens (letter runs with interior
// hyphens/apostrophes) from a phrase.
func PhraseTokens(phrase string) []string {
	raw := phraseTokenPattern.FindAllString(phrase, -1)
	tokens := make([]string, 0, len(raw))
	for _, t := range raw {
		tokens = append(tokens, strings.ToLower(t))
	}
	return tokens
}

// NormalizePhraseSet converts a raw studied-phrase set into comparable forms,
// dropping entries that do not tokenize to more than one word.
func NormalizePhraseSet(phrases map[string]struct{}) []NormalizedPhrase {
	out := make([]NormalizedPhrase, 0, len(phrases))
	for phrase := range phrases {
		tokens := PhraseTokens(phrase)
		if len(tokens) < 2 {
			continue
		}
		out = append(out, NormalizedPhrase{Norm: NormalizePhrase(phrase), Tokens: tokens})
	}
	return out
}

// IsStudiedPhrase reports whether the candidate text matches any studied
// phrase. The match is symmetric and containment-tolerant: exact normalized
// equality, exact token equality, or either token list appearing as a
// contiguous subsequence of the other. This absorbs minor boundary
// differences between detector output and what the learner looked up.
func IsStudiedPhrase(candidate string, studied []NormalizedPhrase) bool {
	if len(studied) == 0 {
		return false
	}
	norm := NormalizePhrase(candidate)
	tokens := PhraseTokens(candidate)
	for i := range studied {
		if norm != "" && norm == studied[i].Norm {
			return true
		}
		if len(tokens) == 0 {
			continue
		}
		if tokensEqual(tokens, studied[i].Tokens) ||
			containsContiguous(studied[i].Tokens, tokens) ||
			containsContiguous(tokens, studied[i].Tokens) {
			return true
		}
	}
	return false
}

func tokensEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// containsContiguous reports whether needle occurs as a contiguous
// subsequence of haystack.
func containsContiguous(haystack, needle []string) bool {
	if len(needle) == 0 || len(needle) > len(haystack) {
		return false
	}
	for start := 0; start+len(needle) <= len(haystack); start++ {
		if tokensEqual(haystack[start:start+len(needle)], needle) {
			return true
		}
	}
	return false
}

package annotate

import (
	"regexp"
	"strings"
	"unicode"
)

// TokenArena holds one sentence split into tokens with two parallel index
// spaces: token index (position in the full split, whitespace runs included)
// and word index (0-based position counting only non-whitespace tokens).
// Collocation spans address words by word index; WordToToken bridges them to
// the token stream so original spacing survives reassembly.
type TokenArena struct {
	Tokens      []string
	IsSpace     []bool
	WordToToken []int
}

// Tokenize splits text on runs of whitespace, retaining the whitespace runs
// as their own tokens.
func Tokenize(text string) *TokenArena {
	arena := &TokenArena{}
	if text == "" {
		return arena
	}

	var buf strings.Builder
	var inSpace bool
	flush := func() {
		if buf.Len() == 0 {
			return
		}
		if !inSpace {
			arena.WordToToken = append(arena.WordToToken, len(arena.Tokens))
		}
		arena.Tokens = append(arena.Tokens, buf.String())
		arena.IsSpace = append(arena.IsSpace, inSpace)
		buf.Reset()
	}

	for i, r := range text {
		space := unicode.IsSpace(r)
		if i == 0 {
			inSpace = space
		} else if space != inSpace {
			flush()
			inSpace = space
		}
		buf.WriteRune(r)
	}
	flush()
	return arena
}

// WordCount reports how many non-whitespace tokens the arena holds.
func (a *TokenArena) WordCount() int { return len(a.WordToToken) }

// WordToken returns the raw token at the given word index.
func (a *TokenArena) WordToken(wordIdx int) string {
	return a.Tokens[a.WordToToken[wordIdx]]
}

// SliceWords reassembles the exact original text covering the inclusive word
// index range, interior whitespace included.
func (a *TokenArena) SliceWords(startWord, endWord int) string {
	start := a.WordToToken[startWord]
	end := a.WordToToken[endWord]
	return strings.Join(a.Tokens[start:end+1], "")
}

var wordKeyPattern = regexp.MustCompile(`^[a-z]+(?:['-][a-z]+)*$`)

// CleanWordKey strips non-letter characters (keeping interior hyphens and
// apostrophes) and lowercases the token. The second return reports whether
// the result is a valid word key; pure punctuation tokens are not.
func CleanWordKey(token string) (string, bool) {
	var b strings.Builder
	for _, r := range strings.ToLower(token) {
		if (r >= 'a' && r <= 'z') || r == '\'' || r == '-' {
			b.WriteRune(r)
		}
	}
	key := strings.Trim(b.String(), "'-")
	if key == "" || !wordKeyPattern.MatchString(key) {
		return "", false
	}
	return key, true
}

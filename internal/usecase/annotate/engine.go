package annotate

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"sort"
	"sync"

	"github.com/eslsoft/readflow/internal/entity"
)

// SentenceInput carries everything the engine needs to annotate one sentence.
// All fields are read-only to the engine.
type SentenceInput struct {
	Text         string
	Index        int
	Sets         entity.StudySets
	Collocations []entity.Collocation
	Unclear      *entity.UnclearMark
}

const defaultCacheSize = 4096

// Annotator is the sentence annotation engine: a pure, synchronous transform
// of (sentence, annotation sets) into a render-ready span sequence, memoized
// on content equality of its inputs. Two set values holding the same elements
// hit the same cache entry regardless of how they were constructed.
type Annotator struct {
	mu      sync.Mutex
	cache   map[[sha256.Size]byte]*entity.RenderedSentence
	maxSize int
}

// NewAnnotator constructs an annotation engine with the default memo size.
func NewAnnotator() *Annotator {
	return &Annotator{
		cache:   make(map[[sha256.Size]byte]*entity.RenderedSentence),
		maxSize: defaultCacheSize,
	}
}

// AnnotateSentence produces the annotated span sequence for one sentence.
// The returned value is shared with the memo cache and must be treated as
// immutable by callers.
func (a *Annotator) AnnotateSentence(in SentenceInput) *entity.RenderedSentence {
	key := digestInput(in)

	a.mu.Lock()
	if cached, ok := a.cache[key]; ok {
		a.mu.Unlock()
		return cached
	}
	a.mu.Unlock()

	rendered := annotate(in)

	a.mu.Lock()
	if len(a.cache) >= a.maxSize {
		// Full reset is cheaper than tracking recency for a render cache.
		a.cache = make(map[[sha256.Size]byte]*entity.RenderedSentence)
	}
	a.cache[key] = rendered
	a.mu.Unlock()
	return rendered
}

func annotate(in SentenceInput) *entity.RenderedSentence {
	arena := Tokenize(in.Text)
	studied := NormalizePhraseSet(in.Sets.StudyPhraseSet)
	spans := ResolveCollocations(in.Collocations, arena.WordCount(), studied)

	spanStart := make(map[int]AcceptedSpan, len(spans))
	claimed := make(map[int]struct{})
	for _, s := range spans {
		spanStart[s.StartWordIdx] = s
		for w := s.StartWordIdx; w <= s.EndWordIdx; w++ {
			claimed[w] = struct{}{}
		}
	}

	out := &entity.RenderedSentence{
		Index:   in.Index,
		Text:    in.Text,
		Spans:   make([]entity.RenderedSpan, 0, len(arena.Tokens)),
		Unclear: in.Unclear,
	}

	wordIdx := 0
	for tokenIdx := 0; tokenIdx < len(arena.Tokens); tokenIdx++ {
		if arena.IsSpace[tokenIdx] {
			out.Spans = append(out.Spans, entity.RenderedSpan{
				Kind: entity.SpanText,
				Text: arena.Tokens[tokenIdx],
			})
			continue
		}

		if span, ok := spanStart[wordIdx]; ok {
			out.Spans = append(out.Spans, entity.RenderedSpan{
				Kind:         entity.SpanPhrase,
				Text:         arena.SliceWords(span.StartWordIdx, span.EndWordIdx),
				Phrase:       span.Collocation.Text,
				Studied:      span.Studied,
				Difficulty:   span.Difficulty,
				StartWordIdx: span.StartWordIdx,
				EndWordIdx:   span.EndWordIdx,
			})
			// Jump the token cursor past the whole span, interior
			// whitespace included.
			tokenIdx = arena.WordToToken[span.EndWordIdx]
			wordIdx = span.EndWordIdx + 1
			continue
		}

		if _, taken := claimed[wordIdx]; taken {
			// Interior of an already emitted span; unreachable in practice
			// because the walk lands on span starts first.
			wordIdx++
			continue
		}

		out.Spans = append(out.Spans, renderWord(arena.Tokens[tokenIdx], wordIdx, in.Sets))
		wordIdx++
	}

	return out
}

func renderWord(token string, wordIdx int, sets entity.StudySets) entity.RenderedSpan {
	key, ok := CleanWordKey(token)
	if !ok {
		return entity.RenderedSpan{Kind: entity.SpanText, Text: token}
	}

	span := entity.RenderedSpan{
		Kind:         entity.SpanWord,
		Text:         token,
		Word:         key,
		Tier:         entity.TierPlain,
		StartWordIdx: wordIdx,
		EndWordIdx:   wordIdx,
	}

	if _, known := sets.KnownWords[key]; known {
		return span
	}
	if _, study := sets.StudyWordSet[key]; study {
		span.Tier = entity.TierStudy
		return span
	}
	if _, vocab := sets.HighlightSet[key]; vocab {
		span.Tier = entity.TierVocab
	}
	return span
}

// digestInput computes a canonical content digest over all annotation inputs
// so that value-equal inputs share a memo entry across re-renders.
func digestInput(in SentenceInput) [sha256.Size]byte {
	h := sha256.New()
	writeField(h, in.Text)
	binary.Write(h, binary.LittleEndian, int64(in.Index)) //nolint:errcheck // hash writes cannot fail

	writeSet(h, in.Sets.HighlightSet)
	writeSet(h, in.Sets.StudyWordSet)
	writeSet(h, in.Sets.StudyPhraseSet)
	writeSet(h, in.Sets.KnownWords)

	for _, c := range in.Collocations {
		writeField(h, fmt.Sprintf("%s|%s|%d|%d|%d|%g", c.Text, c.KeyWord, c.StartWordIdx, c.EndWordIdx, c.Difficulty, c.Confidence))
	}
	if in.Unclear != nil {
		writeField(h, fmt.Sprintf("unclear|%s|%d", in.Unclear.Choice, in.Unclear.MaxSimplifyStage))
	}

	var key [sha256.Size]byte
	copy(key[:], h.Sum(nil))
	return key
}

func writeSet(h interface{ Write([]byte) (int, error) }, set map[string]struct{}) {
	items := make([]string, 0, len(set))
	for item := range set {
		items = append(items, item)
	}
	sort.Strings(items)
	for _, item := range items {
		writeField(h, item)
	}
	writeField(h, "\x1e")
}

func writeField(h interface{ Write([]byte) (int, error) }, s string) {
	h.Write([]byte(s)) //nolint:errcheck // hash writes cannot fail
	h.Write([]byte{0}) //nolint:errcheck
}

package entity

// Collocation is a multi-word span detected by an external process as a
// meaningful unit. StartWordIdx and EndWordIdx are inclusive word positions
// within the sentence's whitespace tokenization; the detector is expected to
// use the same splitting rule as the annotation engine. Out-of-range or
// inverted spans are skipped during rendering, never rejected with an error.
type Collocation struct {
	Text         string  `json:"text"`
	KeyWord      string  `json:"key_word,omitempty"`
	StartWordIdx int     `json:"start_word_idx"`
	EndWordIdx   int     `json:"end_word_idx"`
	Difficulty   int32   `json:"difficulty"` // 1..3
	Confidence   float64 `json:"confidence,omitempty"`
}

// UnclearChoice categorises why a learner flagged a sentence as unclear.
type UnclearChoice string

const (
	UnclearVocabulary UnclearChoice = "vocabulary"
	UnclearGrammar    UnclearChoice = "grammar"
	UnclearBoth       UnclearChoice = "both"
)

// ParseUnclearChoice converts an arbitrary string into a supported choice.
func ParseUnclearChoice(raw string) (UnclearChoice, bool) {
	switch UnclearChoice(raw) {
	case UnclearVocabulary, UnclearGrammar, UnclearBoth:
		return UnclearChoice(raw), true
	default:
		return "", false
	}
}

// UnclearMark records a learner's unclear-sentence flag.
type UnclearMark struct {
	Choice           UnclearChoice `json:"choice"`
	MaxSimplifyStage int32         `json:"max_simplify_stage,omitempty"`
}

// StudySets aggregates the per-user annotation inputs consumed by the
// annotation engine. All sets hold words normalized via NormalizeWordToken;
// the engine treats them as read-only.
type StudySets struct {
	// HighlightSet holds vocabulary-tier words (frequency-list membership).
	HighlightSet map[string]struct{}
	// StudyWordSet holds single words the learner previously looked up.
	StudyWordSet map[string]struct{}
	// StudyPhraseSet holds multi-word phrases the learner previously looked up.
	StudyPhraseSet map[string]struct{}
	// KnownWords suppresses all other highlighting for its members.
	KnownWords map[string]struct{}
}

// NewStudySets builds a StudySets value from word slices, normalizing and
// deduplicating each entry.
func NewStudySets(highlight, study, phrases, known []string) StudySets {
	return StudySets{
		HighlightSet:   toWordSet(highlight),
		StudyWordSet:   toWordSet(study),
		StudyPhraseSet: toPhraseSet(phrases),
		KnownWords:     toWordSet(known),
	}
}

func toWordSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		if key := NormalizeWordToken(w); key != "" {
			set[key] = struct{}{}
		}
	}
	return set
}

func toPhraseSet(phrases []string) map[string]struct{} {
	set := make(map[string]struct{}, len(phrases))
	for _, p := range phrases {
		if trimmed := NormalizeWordToken(p); trimmed != "" {
			set[trimmed] = struct{}{}
		}
	}
	return set
}

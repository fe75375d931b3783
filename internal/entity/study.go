package entity

import "time"

// StudyWordKind distinguishes words the learner is studying from words the
// learner has marked as mastered.
type StudyWordKind string

const (
	StudyKindStudy StudyWordKind = "study"
	StudyKindKnown StudyWordKind = "known"
)

// StudyWord represents a single word the learner has looked up or mastered.
type StudyWord struct {
	ID         int64
	UserID     int64
	Word       string
	Language   Language
	Kind       StudyWordKind
	QueryCount int64
	Notes      string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Normalize ensures defaults & constraints before persistence.
func (w *StudyWord) Normalize(now time.Time) {
	w.Word = NormalizeWordToken(w.Word)
	if w.Language == LanguageUnspecified {
		w.Language = LanguageEnglish
	}
	if w.Kind == "" {
		w.Kind = StudyKindStudy
	}
	if w.CreatedAt.IsZero() {
		w.CreatedAt = now
	}
	w.UpdatedAt = now
}

// StudyPhrase represents a multi-word phrase the learner has looked up.
type StudyPhrase struct {
	ID         int64
	UserID     int64
	Text       string
	Language   Language
	QueryCount int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Normalize ensures defaults & constraints before persistence.
func (p *StudyPhrase) Normalize(now time.Time) {
	p.Text = NormalizeWordToken(p.Text)
	if p.Language == LanguageUnspecified {
		p.Language = LanguageEnglish
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
}

// UnclearSentence persists a learner's unclear flag against one sentence of
// one bundle, addressed by global sentence index.
type UnclearSentence struct {
	ID               int64
	UserID           int64
	BundleID         string
	SentenceIdx      int
	Choice           UnclearChoice
	MaxSimplifyStage int32
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// VocabWord is one entry of the frequency-list vocabulary used to build the
// highlight set. Lower rank means more common; tier buckets rank ranges.
type VocabWord struct {
	Word string
	Rank int32
	Tier int32
}

package db

import (
	"time"

	"github.com/eslsoft/readflow/internal/infrastructure/database/types"
)

// Bundle mirrors one row of the bundles table.
type Bundle struct {
	ID           string
	SourceType   string
	Title        string
	Language     string
	AudioURL     string
	Metadata     types.MetadataMap
	Blocks       types.BlockList
	Sentences    types.SentenceList
	Collocations types.CollocationMap
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// StudyWord mirrors one row of the study_words table.
type StudyWord struct {
	ID         int64
	UserID     int64
	Word       string
	Language   string
	Kind       string
	QueryCount int64
	Notes      string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// StudyPhrase mirrors one row of the study_phrases table.
type StudyPhrase struct {
	ID         int64
	UserID     int64
	Text       string
	Language   string
	QueryCount int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// UnclearSentence mirrors one row of the unclear_sentences table.
type UnclearSentence struct {
	ID               int64
	UserID           int64
	BundleID         string
	SentenceIdx      int64
	Choice           string
	MaxSimplifyStage int32
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// VocabWord mirrors one row of the vocab_words table.
type VocabWord struct {
	ID   int64
	Word string
	Rank int32
	Tier int32
}

package repository

import (
	"context"

	"github.com/eslsoft/readflow/internal/entity"
)

// ListStudyWordQuery filters and orders study word listings.
type ListStudyWordQuery struct {
	Pagination
	FilterOrder

	UserID int64
	Kind   entity.StudyWordKind
}

// StudyWordRepository defines data access for a learner's word study state.
type StudyWordRepository interface {
	Create(ctx context.Context, word *entity.StudyWord) (*entity.StudyWord, error)
	Update(ctx context.Context, word *entity.StudyWord) (*entity.StudyWord, error)
	GetByID(ctx context.Context, userID, id int64) (*entity.StudyWord, error)
	FindByWord(ctx context.Context, userID int64, word string) (*entity.StudyWord, error)
	List(ctx context.Context, query *ListStudyWordQuery) ([]*entity.StudyWord, int64, error)
	// ListWords returns just the word texts of one kind, for set assembly.
	ListWords(ctx context.Context, userID int64, kind entity.StudyWordKind) ([]string, error)
	Delete(ctx context.Context, userID, id int64) error
}

// ListStudyPhraseQuery filters and orders study phrase listings.
type ListStudyPhraseQuery struct {
	Pagination
	FilterOrder

	UserID int64
}

// StudyPhraseRepository defines data access for a learner's studied phrases.
type StudyPhraseRepository interface {
	Create(ctx context.Context, phrase *entity.StudyPhrase) (*entity.StudyPhrase, error)
	Update(ctx context.Context, phrase *entity.StudyPhrase) (*entity.StudyPhrase, error)
	FindByText(ctx context.Context, userID int64, text string) (*entity.StudyPhrase, error)
	List(ctx context.Context, query *ListStudyPhraseQuery) ([]*entity.StudyPhrase, int64, error)
	ListTexts(ctx context.Context, userID int64) ([]string, error)
	Delete(ctx context.Context, userID, id int64) error
}

// UnclearSentenceRepository persists per-sentence unclear flags.
type UnclearSentenceRepository interface {
	Upsert(ctx context.Context, mark *entity.UnclearSentence) (*entity.UnclearSentence, error)
	ListForBundle(ctx context.Context, userID int64, bundleID string) ([]*entity.UnclearSentence, error)
	Delete(ctx context.Context, userID int64, bundleID string, sentenceIdx int) error
}

// VocabRepository exposes the frequency-list vocabulary backing the
// highlight set.
type VocabRepository interface {
	// ListUpToTier returns all words whose tier is at or below the ceiling.
	ListUpToTier(ctx context.Context, tier int32) ([]string, error)
	// BulkInsert loads frequency-list entries, replacing existing ranks.
	BulkInsert(ctx context.Context, words []entity.VocabWord) (int64, error)
}

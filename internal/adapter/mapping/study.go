package mapping

import (
	"time"

	"github.com/samber/lo"

	"github.com/eslsoft/readflow/internal/entity"
)

// StudyWord is the API shape of a collected word.
type StudyWord struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"user_id"`
	Word       string    `json:"word"`
	Language   string    `json:"language"`
	Kind       string    `json:"kind"`
	QueryCount int64     `json:"query_count"`
	Notes      string    `json:"notes,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func FromStudyWord(in *entity.StudyWord) *StudyWord {
	return &StudyWord{
		ID:         in.ID,
		UserID:     in.UserID,
		Word:       in.Word,
		Language:   in.Language.Code(),
		Kind:       string(in.Kind),
		QueryCount: in.QueryCount,
		Notes:      in.Notes,
		CreatedAt:  in.CreatedAt,
		UpdatedAt:  in.UpdatedAt,
	}
}

func FromStudyWords(in []*entity.StudyWord) []*StudyWord {
	return lo.Map(in, func(w *entity.StudyWord, _ int) *StudyWord {
		return FromStudyWord(w)
	})
}

// StudyPhrase is the API shape of a collected phrase.
type StudyPhrase struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"user_id"`
	Text       string    `json:"text"`
	Language   string    `json:"language"`
	QueryCount int64     `json:"query_count"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func FromStudyPhrase(in *entity.StudyPhrase) *StudyPhrase {
	return &StudyPhrase{
		ID:         in.ID,
		UserID:     in.UserID,
		Text:       in.Text,
		Language:   in.Language.Code(),
		QueryCount: in.QueryCount,
		CreatedAt:  in.CreatedAt,
		UpdatedAt:  in.UpdatedAt,
	}
}

func FromStudyPhrases(in []*entity.StudyPhrase) []*StudyPhrase {
	return lo.Map(in, func(p *entity.StudyPhrase, _ int) *StudyPhrase {
		return FromStudyPhrase(p)
	})
}

// UnclearSentence is the API shape of an unclear flag.
type UnclearSentence struct {
	UserID           int64     `json:"user_id"`
	BundleID         string    `json:"bundle_id"`
	SentenceIdx      int       `json:"sentence_idx"`
	Choice           string    `json:"choice"`
	MaxSimplifyStage int32     `json:"max_simplify_stage"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func FromUnclearSentence(in *entity.UnclearSentence) *UnclearSentence {
	return &UnclearSentence{
		UserID:           in.UserID,
		BundleID:         in.BundleID,
		SentenceIdx:      in.SentenceIdx,
		Choice:           string(in.Choice),
		MaxSimplifyStage: in.MaxSimplifyStage,
		UpdatedAt:        in.UpdatedAt,
	}
}

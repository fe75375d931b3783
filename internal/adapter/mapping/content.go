package mapping

import (
	"time"

	"github.com/samber/lo"

	"github.com/eslsoft/readflow/internal/entity"
)

// BundleSummary is the listing shape of a bundle: enough for a library view
// without shipping every sentence over the wire.
type BundleSummary struct {
	ID             string    `json:"id"`
	SourceType     string    `json:"source_type"`
	Title          string    `json:"title"`
	Language       string    `json:"language"`
	TotalSentences int       `json:"total_sentences"`
	HasAudio       bool      `json:"has_audio"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func FromBundleSummary(in *entity.ContentBundle) *BundleSummary {
	return &BundleSummary{
		ID:             in.ID,
		SourceType:     in.SourceType,
		Title:          in.Title,
		Language:       in.Language.Code(),
		TotalSentences: in.TotalSentences(),
		HasAudio:       in.AudioURL != "" || in.HasAudioSegments(),
		CreatedAt:      in.CreatedAt,
		UpdatedAt:      in.UpdatedAt,
	}
}

func FromBundleSummaries(in []*entity.ContentBundle) []*BundleSummary {
	return lo.Map(in, func(b *entity.ContentBundle, _ int) *BundleSummary {
		return FromBundleSummary(b)
	})
}

package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/eslsoft/readflow/internal/entity"
	db "github.com/eslsoft/readflow/internal/infrastructure/database/db"
	"github.com/eslsoft/readflow/internal/repository"
	"github.com/samber/lo"
)

type UnclearSentenceRepository struct {
	q   *db.Queries
	now func() time.Time
}

// NewUnclearSentenceRepository constructs a pgx-backed repository.
func NewUnclearSentenceRepository(q *db.Queries) repository.UnclearSentenceRepository {
	return &UnclearSentenceRepository{q: q, now: time.Now}
}

func (r *UnclearSentenceRepository) Upsert(ctx context.Context, mark *entity.UnclearSentence) (*entity.UnclearSentence, error) {
	row, err := r.q.UpsertUnclearSentence(ctx, db.UpsertUnclearSentenceParams{
		UserID:           mark.UserID,
		BundleID:         mark.BundleID,
		SentenceIdx:      int64(mark.SentenceIdx),
		Choice:           string(mark.Choice),
		MaxSimplifyStage: mark.MaxSimplifyStage,
		Now:              r.now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("upsert unclear sentence: %w", err)
	}
	return mapUnclearRow(row), nil
}

func (r *UnclearSentenceRepository) ListForBundle(ctx context.Context, userID int64, bundleID string) ([]*entity.UnclearSentence, error) {
	rows, err := r.q.ListUnclearForBundle(ctx, userID, bundleID)
	if err != nil {
		return nil, fmt.Errorf("list unclear sentences: %w", err)
	}
	return lo.Map(rows, func(row db.UnclearSentence, _ int) *entity.UnclearSentence {
		return mapUnclearRow(row)
	}), nil
}

func (r *UnclearSentenceRepository) Delete(ctx context.Context, userID int64, bundleID string, sentenceIdx int) error {
	affected, err := r.q.DeleteUnclearSentence(ctx, userID, bundleID, int64(sentenceIdx))
	if err != nil {
		return fmt.Errorf("delete unclear sentence: %w", err)
	}
	if affected == 0 {
		return entity.ErrInvalidSentenceIndex
	}
	return nil
}

func mapUnclearRow(row db.UnclearSentence) *entity.UnclearSentence {
	return &entity.UnclearSentence{
		ID:               row.ID,
		UserID:           row.UserID,
		BundleID:         row.BundleID,
		SentenceIdx:      int(row.SentenceIdx),
		Choice:           entity.UnclearChoice(row.Choice),
		MaxSimplifyStage: row.MaxSimplifyStage,
		CreatedAt:        row.CreatedAt,
		UpdatedAt:        row.UpdatedAt,
	}
}

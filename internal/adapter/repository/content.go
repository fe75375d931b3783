package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/eslsoft/readflow/internal/entity"
	db "github.com/eslsoft/readflow/internal/infrastructure/database/db"
	"github.com/eslsoft/readflow/internal/infrastructure/database/types"
	"github.com/eslsoft/readflow/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/samber/lo"
)

type ContentRepository struct {
	q *db.Queries
}

// NewContentRepository constructs a pgx-backed repository.
func NewContentRepository(q *db.Queries) repository.ContentRepository {
	return &ContentRepository{q: q}
}

func (r *ContentRepository) Create(ctx context.Context, bundle *entity.ContentBundle) (*entity.ContentBundle, error) {
	row, err := r.q.CreateBundle(ctx, db.CreateBundleParams{Bundle: toBundleRow(bundle)})
	if err != nil {
		return nil, fmt.Errorf("create bundle: %w", err)
	}
	return mapBundleRow(row), nil
}

func (r *ContentRepository) GetByID(ctx context.Context, id string) (*entity.ContentBundle, error) {
	row, err := r.q.GetBundle(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrBundleNotFound
		}
		return nil, fmt.Errorf("get bundle: %w", err)
	}
	return mapBundleRow(row), nil
}

func (r *ContentRepository) List(ctx context.Context, query *repository.ListBundleQuery) ([]*entity.ContentBundle, int64, error) {
	sourceType := ""
	if query.SourceType != entity.SourceTypeUnspecified {
		sourceType = string(query.SourceType)
	}

	total, err := r.q.CountBundles(ctx, sourceType, query.Keyword)
	if err != nil {
		return nil, 0, fmt.Errorf("count bundles: %w", err)
	}

	rows, err := r.q.ListBundles(ctx, db.ListBundlesParams{
		SourceType: sourceType,
		Keyword:    query.Keyword,
		Limit:      query.PageSize,
		Offset:     query.Offset(),
	})
	if err != nil {
		return nil, 0, fmt.Errorf("list bundles: %w", err)
	}

	return lo.Map(rows, func(row db.Bundle, _ int) *entity.ContentBundle {
		return mapBundleRow(row)
	}), total, nil
}

func (r *ContentRepository) Delete(ctx context.Context, id string) error {
	affected, err := r.q.DeleteBundle(ctx, id)
	if err != nil {
		return fmt.Errorf("delete bundle: %w", err)
	}
	if affected == 0 {
		return entity.ErrBundleNotFound
	}
	return nil
}

func toBundleRow(bundle *entity.ContentBundle) db.Bundle {
	return db.Bundle{
		ID:           bundle.ID,
		SourceType:   bundle.SourceType,
		Title:        bundle.Title,
		Language:     bundle.Language.Code(),
		AudioURL:     bundle.AudioURL,
		Metadata:     types.MetadataMap(bundle.Metadata),
		Blocks:       types.BlockList(bundle.Blocks),
		Sentences:    types.SentenceList(bundle.Sentences),
		Collocations: types.CollocationMap(bundle.Collocations),
		CreatedAt:    bundle.CreatedAt,
		UpdatedAt:    bundle.UpdatedAt,
	}
}

func mapBundleRow(row db.Bundle) *entity.ContentBundle {
	return &entity.ContentBundle{
		ID:           row.ID,
		SourceType:   row.SourceType,
		Title:        row.Title,
		Language:     entity.ParseLanguage(row.Language),
		AudioURL:     row.AudioURL,
		Metadata:     row.Metadata,
		Blocks:       row.Blocks,
		Sentences:    row.Sentences,
		Collocations: row.Collocations,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
}

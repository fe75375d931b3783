package repository

import (
	"context"

	"github.com/eslsoft/readflow/internal/entity"
)

// ListBundleQuery filters bundle listings.
type ListBundleQuery struct {
	Pagination

	SourceType entity.SourceType
	Keyword    string
}

// ContentRepository defines data access for content bundles.
type ContentRepository interface {
	Create(ctx context.Context, bundle *entity.ContentBundle) (*entity.ContentBundle, error)
	GetByID(ctx context.Context, id string) (*entity.ContentBundle, error)
	List(ctx context.Context, query *ListBundleQuery) ([]*entity.ContentBundle, int64, error)
	Delete(ctx context.Context, id string) error
}

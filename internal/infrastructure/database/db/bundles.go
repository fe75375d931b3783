package db

import (
	"context"
)

const createBundle = `
INSERT INTO bundles (id, source_type, title, language, audio_url, metadata, blocks, sentences, collocations, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
RETURNING id, source_type, title, language, audio_url, metadata, blocks, sentences, collocations, created_at, updated_at
`

// CreateBundleParams carries the insert values for one bundle.
type CreateBundleParams struct {
	Bundle
}

func (q *Queries) CreateBundle(ctx context.Context, arg CreateBundleParams) (Bundle, error) {
	row := q.db.QueryRow(ctx, createBundle,
		arg.ID, arg.SourceType, arg.Title, arg.Language, arg.AudioURL,
		arg.Metadata, arg.Blocks, arg.Sentences, arg.Collocations,
		arg.CreatedAt, arg.UpdatedAt,
	)
	return scanBundle(row)
}

const getBundle = `
SELECT id, source_type, title, language, audio_url, metadata, blocks, sentences, collocations, created_at, updated_at
FROM bundles WHERE id = $1
`

func (q *Queries) GetBundle(ctx context.Context, id string) (Bundle, error) {
	return scanBundle(q.db.QueryRow(ctx, getBundle, id))
}

const listBundles = `
SELECT id, source_type, title, language, audio_url, metadata, blocks, sentences, collocations, created_at, updated_at
FROM bundles
WHERE ($1 = '' OR split_part(source_type, ':', 1) = $1)
  AND ($2 = '' OR title ILIKE '%' || $2 || '%')
ORDER BY created_at DESC, id
LIMIT $3 OFFSET $4
`

// ListBundlesParams filters and pages the bundle listing.
type ListBundlesParams struct {
	SourceType string
	Keyword    string
	Limit      int32
	Offset     int32
}

func (q *Queries) ListBundles(ctx context.Context, arg ListBundlesParams) ([]Bundle, error) {
	rows, err := q.db.Query(ctx, listBundles, arg.SourceType, arg.Keyword, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Bundle
	for rows.Next() {
		item, err := scanBundle(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

const countBundles = `
SELECT count(*) FROM bundles
WHERE ($1 = '' OR split_part(source_type, ':', 1) = $1)
  AND ($2 = '' OR title ILIKE '%' || $2 || '%')
`

func (q *Queries) CountBundles(ctx context.Context, sourceType, keyword string) (int64, error) {
	var count int64
	err := q.db.QueryRow(ctx, countBundles, sourceType, keyword).Scan(&count)
	return count, err
}

const deleteBundle = `DELETE FROM bundles WHERE id = $1`

func (q *Queries) DeleteBundle(ctx context.Context, id string) (int64, error) {
	tag, err := q.db.Exec(ctx, deleteBundle, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBundle(row rowScanner) (Bundle, error) {
	var b Bundle
	err := row.Scan(
		&b.ID, &b.SourceType, &b.Title, &b.Language, &b.AudioURL,
		&b.Metadata, &b.Blocks, &b.Sentences, &b.Collocations,
		&b.CreatedAt, &b.UpdatedAt,
	)
	return b, err
}

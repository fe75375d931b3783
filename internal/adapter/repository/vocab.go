package repository

import (
	"context"
	"fmt"

	"github.com/eslsoft/readflow/internal/entity"
	db "github.com/eslsoft/readflow/internal/infrastructure/database/db"
	"github.com/eslsoft/readflow/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type VocabRepository struct {
	pool *pgxpool.Pool
	q    *db.Queries
}

// NewVocabRepository constructs a pgx-backed repository. The pool is held
// directly because bulk loads go through the COPY protocol.
func NewVocabRepository(pool *pgxpool.Pool, q *db.Queries) repository.VocabRepository {
	return &VocabRepository{pool: pool, q: q}
}

func (r *VocabRepository) ListUpToTier(ctx context.Context, tier int32) ([]string, error) {
	rows, err := r.q.ListVocabWordsUpToTier(ctx, tier)
	if err != nil {
		return nil, fmt.Errorf("list vocab words: %w", err)
	}
	words := make([]string, 0, len(rows))
	for _, row := range rows {
		words = append(words, row.Word)
	}
	return words, nil
}

// BulkInsert replaces the whole frequency list in one transaction.
func (r *VocabRepository) BulkInsert(ctx context.Context, words []entity.VocabWord) (int64, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin vocab load: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := r.q.WithTx(tx).TruncateVocabWords(ctx); err != nil {
		return 0, fmt.Errorf("truncate vocab words: %w", err)
	}

	copied, err := tx.CopyFrom(ctx,
		pgx.Identifier{"vocab_words"},
		[]string{"word", "rank", "tier"},
		pgx.CopyFromSlice(len(words), func(i int) ([]any, error) {
			w := words[i]
			return []any{entity.NormalizeWordToken(w.Word), w.Rank, w.Tier}, nil
		}),
	)
	if err != nil {
		return 0, fmt.Errorf("copy vocab words: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit vocab load: %w", err)
	}
	return copied, nil
}

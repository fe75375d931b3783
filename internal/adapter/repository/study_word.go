package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/eslsoft/readflow/internal/entity"
	db "github.com/eslsoft/readflow/internal/infrastructure/database/db"
	"github.com/eslsoft/readflow/internal/repository"
	"github.com/eslsoft/readflow/pkg/filterexpr"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/samber/lo"
)

type StudyWordRepository struct {
	q *db.Queries
}

// NewStudyWordRepository constructs a pgx-backed repository.
func NewStudyWordRepository(q *db.Queries) repository.StudyWordRepository {
	return &StudyWordRepository{q: q}
}

func (r *StudyWordRepository) Create(ctx context.Context, word *entity.StudyWord) (*entity.StudyWord, error) {
	row, err := r.q.CreateStudyWord(ctx, db.CreateStudyWordParams{
		UserID:     word.UserID,
		Word:       word.Word,
		Language:   word.Language.Code(),
		Kind:       string(word.Kind),
		QueryCount: word.QueryCount,
		Notes:      word.Notes,
		CreatedAt:  word.CreatedAt,
		UpdatedAt:  word.UpdatedAt,
	})
	if err != nil {
		return nil, translateStudyWordError(err)
	}
	return mapStudyWordRow(row), nil
}

func (r *StudyWordRepository) Update(ctx context.Context, word *entity.StudyWord) (*entity.StudyWord, error) {
	row, err := r.q.UpdateStudyWord(ctx, db.UpdateStudyWordParams{
		ID:         word.ID,
		UserID:     word.UserID,
		Kind:       string(word.Kind),
		QueryCount: word.QueryCount,
		Notes:      word.Notes,
		UpdatedAt:  word.UpdatedAt,
	})
	if err != nil {
		return nil, translateStudyWordError(err)
	}
	return mapStudyWordRow(row), nil
}

func (r *StudyWordRepository) GetByID(ctx context.Context, userID, id int64) (*entity.StudyWord, error) {
	row, err := r.q.GetStudyWord(ctx, id, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrStudyWordNotFound
		}
		return nil, fmt.Errorf("get study word: %w", err)
	}
	return mapStudyWordRow(row), nil
}

func (r *StudyWordRepository) FindByWord(ctx context.Context, userID int64, word string) (*entity.StudyWord, error) {
	if word == "" {
		return nil, nil
	}
	row, err := r.q.FindStudyWordByText(ctx, userID, word)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find study word: %w", err)
	}
	return mapStudyWordRow(row), nil
}

func (r *StudyWordRepository) List(ctx context.Context, query *repository.ListStudyWordQuery) ([]*entity.StudyWord, int64, error) {
	params := db.ListStudyWordsParams{
		UserID: query.UserID,
		Kind:   string(query.Kind),
		Limit:  query.PageSize,
		Offset: query.Offset(),
	}
	if err := filterexpr.Bind(query, &params, listStudyWordsSchema); err != nil {
		return nil, 0, err
	}

	total, err := r.q.CountStudyWords(ctx, params)
	if err != nil {
		return nil, 0, fmt.Errorf("count study words: %w", err)
	}

	rows, err := r.q.ListStudyWords(ctx, params)
	if err != nil {
		return nil, 0, fmt.Errorf("list study words: %w", err)
	}

	return lo.Map(rows, func(row db.StudyWord, _ int) *entity.StudyWord {
		return mapStudyWordRow(row)
	}), total, nil
}

func (r *StudyWordRepository) ListWords(ctx context.Context, userID int64, kind entity.StudyWordKind) ([]string, error) {
	words, err := r.q.ListStudyWordTexts(ctx, userID, string(kind))
	if err != nil {
		return nil, fmt.Errorf("list study word texts: %w", err)
	}
	return words, nil
}

func (r *StudyWordRepository) Delete(ctx context.Context, userID, id int64) error {
	affected, err := r.q.DeleteStudyWord(ctx, id, userID)
	if err != nil {
		return fmt.Errorf("delete study word: %w", err)
	}
	if affected == 0 {
		return entity.ErrStudyWordNotFound
	}
	return nil
}

func mapStudyWordRow(row db.StudyWord) *entity.StudyWord {
	return &entity.StudyWord{
		ID:         row.ID,
		UserID:     row.UserID,
		Word:       row.Word,
		Language:   entity.ParseLanguage(row.Language),
		Kind:       entity.StudyWordKind(row.Kind),
		QueryCount: row.QueryCount,
		Notes:      row.Notes,
		CreatedAt:  row.CreatedAt,
		UpdatedAt:  row.UpdatedAt,
	}
}

func translateStudyWordError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return entity.ErrDuplicateStudyWord
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return entity.ErrStudyWordNotFound
	}
	return err
}

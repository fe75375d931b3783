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

type StudyPhraseRepository struct {
	q *db.Queries
}

// NewStudyPhraseRepository constructs a pgx-backed repository.
func NewStudyPhraseRepository(q *db.Queries) repository.StudyPhraseRepository {
	return &StudyPhraseRepository{q: q}
}

// listStudyPhrasesParams is the filterexpr binding target for phrase listings.
// Ordering is fixed to recency in SQL so the order keys are validated but unused.
type listStudyPhrasesParams struct {
	TextPrefix string

	PrimaryKey    string
	PrimaryDesc   bool
	SecondaryKey  string
	SecondaryDesc bool
}

func (r *StudyPhraseRepository) Create(ctx context.Context, phrase *entity.StudyPhrase) (*entity.StudyPhrase, error) {
	row, err := r.q.CreateStudyPhrase(ctx, db.CreateStudyPhraseParams{
		UserID:     phrase.UserID,
		Text:       phrase.Text,
		Language:   phrase.Language.Code(),
		QueryCount: phrase.QueryCount,
		CreatedAt:  phrase.CreatedAt,
		UpdatedAt:  phrase.UpdatedAt,
	})
	if err != nil {
		return nil, translateStudyPhraseError(err)
	}
	return mapStudyPhraseRow(row), nil
}

func (r *StudyPhraseRepository) Update(ctx context.Context, phrase *entity.StudyPhrase) (*entity.StudyPhrase, error) {
	row, err := r.q.UpdateStudyPhrase(ctx, phrase.ID, phrase.UserID, phrase.QueryCount, phrase.UpdatedAt)
	if err != nil {
		return nil, translateStudyPhraseError(err)
	}
	return mapStudyPhraseRow(row), nil
}

func (r *StudyPhraseRepository) FindByText(ctx context.Context, userID int64, text string) (*entity.StudyPhrase, error) {
	if text == "" {
		return nil, nil
	}
	row, err := r.q.FindStudyPhraseByText(ctx, userID, text)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find study phrase: %w", err)
	}
	return mapStudyPhraseRow(row), nil
}

func (r *StudyPhraseRepository) List(ctx context.Context, query *repository.ListStudyPhraseQuery) ([]*entity.StudyPhrase, int64, error) {
	var bound listStudyPhrasesParams
	if err := filterexpr.Bind(query, &bound, listStudyPhrasesSchema); err != nil {
		return nil, 0, err
	}

	total, err := r.q.CountStudyPhrases(ctx, query.UserID, bound.TextPrefix)
	if err != nil {
		return nil, 0, fmt.Errorf("count study phrases: %w", err)
	}

	rows, err := r.q.ListStudyPhrases(ctx, db.ListStudyPhrasesParams{
		UserID:     query.UserID,
		TextPrefix: bound.TextPrefix,
		Limit:      query.PageSize,
		Offset:     query.Offset(),
	})
	if err != nil {
		return nil, 0, fmt.Errorf("list study phrases: %w", err)
	}

	return lo.Map(rows, func(row db.StudyPhrase, _ int) *entity.StudyPhrase {
		return mapStudyPhraseRow(row)
	}), total, nil
}

func (r *StudyPhraseRepository) ListTexts(ctx context.Context, userID int64) ([]string, error) {
	texts, err := r.q.ListStudyPhraseTexts(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list study phrase texts: %w", err)
	}
	return texts, nil
}

func (r *StudyPhraseRepository) Delete(ctx context.Context, userID, id int64) error {
	affected, err := r.q.DeleteStudyPhrase(ctx, id, userID)
	if err != nil {
		return fmt.Errorf("delete study phrase: %w", err)
	}
	if affected == 0 {
		return entity.ErrStudyPhraseNotFound
	}
	return nil
}

func mapStudyPhraseRow(row db.StudyPhrase) *entity.StudyPhrase {
	return &entity.StudyPhrase{
		ID:         row.ID,
		UserID:     row.UserID,
		Text:       row.Text,
		Language:   entity.ParseLanguage(row.Language),
		QueryCount: row.QueryCount,
		CreatedAt:  row.CreatedAt,
		UpdatedAt:  row.UpdatedAt,
	}
}

func translateStudyPhraseError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return entity.ErrDuplicatePhrase
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return entity.ErrStudyPhraseNotFound
	}
	return err
}

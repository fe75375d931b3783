package db

import (
	"context"
	"fmt"
	"time"
)

const studyWordColumns = `id, user_id, word, language, kind, query_count, notes, created_at, updated_at`

const createStudyWord = `
INSERT INTO study_words (user_id, word, language, kind, query_count, notes, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING ` + studyWordColumns

// CreateStudyWordParams carries the insert values for one study word.
type CreateStudyWordParams struct {
	UserID     int64
	Word       string
	Language   string
	Kind       string
	QueryCount int64
	Notes      string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (q *Queries) CreateStudyWord(ctx context.Context, arg CreateStudyWordParams) (StudyWord, error) {
	row := q.db.QueryRow(ctx, createStudyWord,
		arg.UserID, arg.Word, arg.Language, arg.Kind, arg.QueryCount, arg.Notes,
		arg.CreatedAt, arg.UpdatedAt,
	)
	return scanStudyWord(row)
}

const updateStudyWord = `
UPDATE study_words
SET kind = $3, query_count = $4, notes = $5, updated_at = $6
WHERE id = $1 AND user_id = $2
RETURNING ` + studyWordColumns

// UpdateStudyWordParams carries the mutable fields of a study word.
type UpdateStudyWordParams struct {
	ID         int64
	UserID     int64
	Kind       string
	QueryCount int64
	Notes      string
	UpdatedAt  time.Time
}

func (q *Queries) UpdateStudyWord(ctx context.Context, arg UpdateStudyWordParams) (StudyWord, error) {
	row := q.db.QueryRow(ctx, updateStudyWord,
		arg.ID, arg.UserID, arg.Kind, arg.QueryCount, arg.Notes, arg.UpdatedAt,
	)
	return scanStudyWord(row)
}

const getStudyWord = `
SELECT ` + studyWordColumns + ` FROM study_words WHERE id = $1 AND user_id = $2
`

func (q *Queries) GetStudyWord(ctx context.Context, id, userID int64) (StudyWord, error) {
	return scanStudyWord(q.db.QueryRow(ctx, getStudyWord, id, userID))
}

const findStudyWordByText = `
SELECT ` + studyWordColumns + ` FROM study_words WHERE user_id = $1 AND word = $2
`

func (q *Queries) FindStudyWordByText(ctx context.Context, userID int64, word string) (StudyWord, error) {
	return scanStudyWord(q.db.QueryRow(ctx, findStudyWordByText, userID, word))
}

// ListStudyWordsParams carries pagination, CEL-bound filters and whitelisted
// ordering for the study word listing. The order keys are populated by
// filterexpr and mapped onto columns here.
type ListStudyWordsParams struct {
	UserID int64
	Kind   string
	Limit  int32
	Offset int32

	// filter bindings
	WordPrefix    string
	QueryCountGTE *int64
	CreatedAtGTE  *time.Time
	CreatedAtLTE  *time.Time

	// order bindings
	PrimaryKey    string
	PrimaryDesc   bool
	SecondaryKey  string
	SecondaryDesc bool
}

var studyWordOrderColumns = map[string]string{
	"word":        "word",
	"query_count": "query_count",
	"created_at":  "created_at",
	"updated_at":  "updated_at",
	"id":          "id",
}

func studyWordOrderClause(arg ListStudyWordsParams) (string, error) {
	primary, ok := studyWordOrderColumns[arg.PrimaryKey]
	if !ok {
		return "", fmt.Errorf("unknown order key %q", arg.PrimaryKey)
	}
	secondary, ok := studyWordOrderColumns[arg.SecondaryKey]
	if !ok {
		return "", fmt.Errorf("unknown order key %q", arg.SecondaryKey)
	}
	dir := func(desc bool) string {
		if desc {
			return "DESC"
		}
		return "ASC"
	}
	return fmt.Sprintf("ORDER BY %s %s, %s %s", primary, dir(arg.PrimaryDesc), secondary, dir(arg.SecondaryDesc)), nil
}

const listStudyWordsWhere = `
FROM study_words
WHERE user_id = $1
  AND ($2 = '' OR kind = $2)
  AND ($3 = '' OR word LIKE $3 || '%')
  AND ($4::bigint IS NULL OR query_count >= $4)
  AND ($5::timestamptz IS NULL OR created_at >= $5)
  AND ($6::timestamptz IS NULL OR created_at <= $6)
`

func (q *Queries) ListStudyWords(ctx context.Context, arg ListStudyWordsParams) ([]StudyWord, error) {
	order, err := studyWordOrderClause(arg)
	if err != nil {
		return nil, err
	}
	query := `SELECT ` + studyWordColumns + listStudyWordsWhere + order + ` LIMIT $7 OFFSET $8`

	rows, err := q.db.Query(ctx, query,
		arg.UserID, arg.Kind, arg.WordPrefix, arg.QueryCountGTE,
		arg.CreatedAtGTE, arg.CreatedAtLTE, arg.Limit, arg.Offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []StudyWord
	for rows.Next() {
		item, err := scanStudyWord(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (q *Queries) CountStudyWords(ctx context.Context, arg ListStudyWordsParams) (int64, error) {
	query := `SELECT count(*)` + listStudyWordsWhere
	var count int64
	err := q.db.QueryRow(ctx, query,
		arg.UserID, arg.Kind, arg.WordPrefix, arg.QueryCountGTE,
		arg.CreatedAtGTE, arg.CreatedAtLTE,
	).Scan(&count)
	return count, err
}

const listStudyWordTexts = `
SELECT word FROM study_words WHERE user_id = $1 AND kind = $2 ORDER BY word
`

func (q *Queries) ListStudyWordTexts(ctx context.Context, userID int64, kind string) ([]string, error) {
	rows, err := q.db.Query(ctx, listStudyWordTexts, userID, kind)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var words []string
	for rows.Next() {
		var word string
		if err := rows.Scan(&word); err != nil {
			return nil, err
		}
		words = append(words, word)
	}
	return words, rows.Err()
}

const deleteStudyWord = `DELETE FROM study_words WHERE id = $1 AND user_id = $2`

func (q *Queries) DeleteStudyWord(ctx context.Context, id, userID int64) (int64, error) {
	tag, err := q.db.Exec(ctx, deleteStudyWord, id, userID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func scanStudyWord(row rowScanner) (StudyWord, error) {
	var w StudyWord
	err := row.Scan(
		&w.ID, &w.UserID, &w.Word, &w.Language, &w.Kind,
		&w.QueryCount, &w.Notes, &w.CreatedAt, &w.UpdatedAt,
	)
	return w, err
}

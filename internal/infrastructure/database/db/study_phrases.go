package db

import (
	"context"
	"time"
)

const studyPhraseColumns = `id, user_id, text, language, query_count, created_at, updated_at`

const createStudyPhrase = `
INSERT INTO study_phrases (user_id, text, language, query_count, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING ` + studyPhraseColumns

// CreateStudyPhraseParams carries the insert values for one study phrase.
type CreateStudyPhraseParams struct {
	UserID     int64
	Text       string
	Language   string
	QueryCount int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (q *Queries) CreateStudyPhrase(ctx context.Context, arg CreateStudyPhraseParams) (StudyPhrase, error) {
	row := q.db.QueryRow(ctx, createStudyPhrase,
		arg.UserID, arg.Text, arg.Language, arg.QueryCount, arg.CreatedAt, arg.UpdatedAt,
	)
	return scanStudyPhrase(row)
}

const updateStudyPhrase = `
UPDATE study_phrases SET query_count = $3, updated_at = $4
WHERE id = $1 AND user_id = $2
RETURNING ` + studyPhraseColumns

func (q *Queries) UpdateStudyPhrase(ctx context.Context, id, userID, queryCount int64, updatedAt time.Time) (StudyPhrase, error) {
	return scanStudyPhrase(q.db.QueryRow(ctx, updateStudyPhrase, id, userID, queryCount, updatedAt))
}

const findStudyPhraseByText = `
SELECT ` + studyPhraseColumns + ` FROM study_phrases WHERE user_id = $1 AND text = $2
`

func (q *Queries) FindStudyPhraseByText(ctx context.Context, userID int64, text string) (StudyPhrase, error) {
	return scanStudyPhrase(q.db.QueryRow(ctx, findStudyPhraseByText, userID, text))
}

const listStudyPhrases = `
SELECT ` + studyPhraseColumns + `
FROM study_phrases
WHERE user_id = $1 AND ($2 = '' OR text LIKE $2 || '%')
ORDER BY updated_at DESC, id
LIMIT $3 OFFSET $4
`

// ListStudyPhrasesParams pages and filters the phrase listing.
type ListStudyPhrasesParams struct {
	UserID     int64
	TextPrefix string
	Limit      int32
	Offset     int32
}

func (q *Queries) ListStudyPhrases(ctx context.Context, arg ListStudyPhrasesParams) ([]StudyPhrase, error) {
	rows, err := q.db.Query(ctx, listStudyPhrases, arg.UserID, arg.TextPrefix, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []StudyPhrase
	for rows.Next() {
		item, err := scanStudyPhrase(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

const countStudyPhrases = `
SELECT count(*) FROM study_phrases WHERE user_id = $1 AND ($2 = '' OR text LIKE $2 || '%')
`

func (q *Queries) CountStudyPhrases(ctx context.Context, userID int64, textPrefix string) (int64, error) {
	var count int64
	err := q.db.QueryRow(ctx, countStudyPhrases, userID, textPrefix).Scan(&count)
	return count, err
}

const listStudyPhraseTexts = `
SELECT text FROM study_phrases WHERE user_id = $1 ORDER BY text
`

func (q *Queries) ListStudyPhraseTexts(ctx context.Context, userID int64) ([]string, error) {
	rows, err := q.db.Query(ctx, listStudyPhraseTexts, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var texts []string
	for rows.Next() {
		var text string
		if err := rows.Scan(&text); err != nil {
			return nil, err
		}
		texts = append(texts, text)
	}
	return texts, rows.Err()
}

const deleteStudyPhrase = `DELETE FROM study_phrases WHERE id = $1 AND user_id = $2`

func (q *Queries) DeleteStudyPhrase(ctx context.Context, id, userID int64) (int64, error) {
	tag, err := q.db.Exec(ctx, deleteStudyPhrase, id, userID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func scanStudyPhrase(row rowScanner) (StudyPhrase, error) {
	var p StudyPhrase
	err := row.Scan(&p.ID, &p.UserID, &p.Text, &p.Language, &p.QueryCount, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

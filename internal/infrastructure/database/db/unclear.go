package db

import (
	"context"
	"time"
)

const unclearColumns = `id, user_id, bundle_id, sentence_idx, choice, max_simplify_stage, created_at, updated_at`

const upsertUnclearSentence = `
INSERT INTO unclear_sentences (user_id, bundle_id, sentence_idx, choice, max_simplify_stage, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $6)
ON CONFLICT (user_id, bundle_id, sentence_idx)
DO UPDATE SET choice = EXCLUDED.choice, max_simplify_stage = EXCLUDED.max_simplify_stage, updated_at = EXCLUDED.updated_at
RETURNING ` + unclearColumns

// UpsertUnclearSentenceParams carries the upsert values for one unclear flag.
type UpsertUnclearSentenceParams struct {
	UserID           int64
	BundleID         string
	SentenceIdx      int64
	Choice           string
	MaxSimplifyStage int32
	Now              time.Time
}

func (q *Queries) UpsertUnclearSentence(ctx context.Context, arg UpsertUnclearSentenceParams) (UnclearSentence, error) {
	row := q.db.QueryRow(ctx, upsertUnclearSentence,
		arg.UserID, arg.BundleID, arg.SentenceIdx, arg.Choice, arg.MaxSimplifyStage, arg.Now,
	)
	return scanUnclearSentence(row)
}

const listUnclearForBundle = `
SELECT ` + unclearColumns + `
FROM unclear_sentences
WHERE user_id = $1 AND bundle_id = $2
ORDER BY sentence_idx
`

func (q *Queries) ListUnclearForBundle(ctx context.Context, userID int64, bundleID string) ([]UnclearSentence, error) {
	rows, err := q.db.Query(ctx, listUnclearForBundle, userID, bundleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []UnclearSentence
	for rows.Next() {
		item, err := scanUnclearSentence(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

const deleteUnclearSentence = `
DELETE FROM unclear_sentences WHERE user_id = $1 AND bundle_id = $2 AND sentence_idx = $3
`

func (q *Queries) DeleteUnclearSentence(ctx context.Context, userID int64, bundleID string, sentenceIdx int64) (int64, error) {
	tag, err := q.db.Exec(ctx, deleteUnclearSentence, userID, bundleID, sentenceIdx)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func scanUnclearSentence(row rowScanner) (UnclearSentence, error) {
	var u UnclearSentence
	err := row.Scan(
		&u.ID, &u.UserID, &u.BundleID, &u.SentenceIdx,
		&u.Choice, &u.MaxSimplifyStage, &u.CreatedAt, &u.UpdatedAt,
	)
	return u, err
}

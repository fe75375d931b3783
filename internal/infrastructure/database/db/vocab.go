package db

import (
	"context"
)

const listVocabWordsUpToTier = `
SELECT word, rank, tier
FROM vocab_words
WHERE tier <= $1
ORDER BY rank
`

func (q *Queries) ListVocabWordsUpToTier(ctx context.Context, tier int32) ([]VocabWord, error) {
	rows, err := q.db.Query(ctx, listVocabWordsUpToTier, tier)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []VocabWord
	for rows.Next() {
		var v VocabWord
		if err := rows.Scan(&v.Word, &v.Rank, &v.Tier); err != nil {
			return nil, err
		}
		items = append(items, v)
	}
	return items, rows.Err()
}

const truncateVocabWords = `
DELETE FROM vocab_words
`

func (q *Queries) TruncateVocabWords(ctx context.Context) error {
	_, err := q.db.Exec(ctx, truncateVocabWords)
	return err
}

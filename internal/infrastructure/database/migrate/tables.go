// Package migrate declares the application's tables with ent's schema
// primitives and applies them through ent's migration engine. The tables are
// maintained by hand: the query layer is plain SQL, so a full ent codegen
// round-trip buys nothing here.
package migrate

import (
	"context"

	"entgo.io/ent/dialect"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

var bundlesColumns = []*schema.Column{
	{Name: "id", Type: field.TypeString, Unique: true},
	{Name: "source_type", Type: field.TypeString},
	{Name: "title", Type: field.TypeString, Default: ""},
	{Name: "language", Type: field.TypeString, Default: "en"},
	{Name: "audio_url", Type: field.TypeString, Default: ""},
	{Name: "metadata", Type: field.TypeJSON, Nullable: true},
	{Name: "blocks", Type: field.TypeJSON, Nullable: true},
	{Name: "sentences", Type: field.TypeJSON, Nullable: true},
	{Name: "collocations", Type: field.TypeJSON, Nullable: true},
	{Name: "created_at", Type: field.TypeTime},
	{Name: "updated_at", Type: field.TypeTime},
}

// BundlesTable holds ingested content bundles.
var BundlesTable = &schema.Table{
	Name:       "bundles",
	Columns:    bundlesColumns,
	PrimaryKey: []*schema.Column{bundlesColumns[0]},
	Indexes: []*schema.Index{
		{Name: "bundles_source_type", Columns: []*schema.Column{bundlesColumns[1]}},
	},
}

var studyWordsColumns = []*schema.Column{
	{Name: "id", Type: field.TypeInt64, Increment: true},
	{Name: "user_id", Type: field.TypeInt64},
	{Name: "word", Type: field.TypeString},
	{Name: "language", Type: field.TypeString, Default: "en"},
	{Name: "kind", Type: field.TypeString, Default: "study"},
	{Name: "query_count", Type: field.TypeInt64, Default: 0},
	{Name: "notes", Type: field.TypeString, Default: ""},
	{Name: "created_at", Type: field.TypeTime},
	{Name: "updated_at", Type: field.TypeTime},
}

// StudyWordsTable holds words the learner has looked up or marked known.
var StudyWordsTable = &schema.Table{
	Name:       "study_words",
	Columns:    studyWordsColumns,
	PrimaryKey: []*schema.Column{studyWordsColumns[0]},
	Indexes: []*schema.Index{
		{Name: "study_words_user_word", Unique: true, Columns: []*schema.Column{studyWordsColumns[1], studyWordsColumns[2]}},
		{Name: "study_words_user_kind", Columns: []*schema.Column{studyWordsColumns[1], studyWordsColumns[4]}},
	},
}

var studyPhrasesColumns = []*schema.Column{
	{Name: "id", Type: field.TypeInt64, Increment: true},
	{Name: "user_id", Type: field.TypeInt64},
	{Name: "text", Type: field.TypeString},
	{Name: "language", Type: field.TypeString, Default: "en"},
	{Name: "query_count", Type: field.TypeInt64, Default: 0},
	{Name: "created_at", Type: field.TypeTime},
	{Name: "updated_at", Type: field.TypeTime},
}

// StudyPhrasesTable holds multi-word phrases the learner has looked up.
var StudyPhrasesTable = &schema.Table{
	Name:       "study_phrases",
	Columns:    studyPhrasesColumns,
	PrimaryKey: []*schema.Column{studyPhrasesColumns[0]},
	Indexes: []*schema.Index{
		{Name: "study_phrases_user_text", Unique: true, Columns: []*schema.Column{studyPhrasesColumns[1], studyPhrasesColumns[2]}},
	},
}

var unclearColumns = []*schema.Column{
	{Name: "id", Type: field.TypeInt64, Increment: true},
	{Name: "user_id", Type: field.TypeInt64},
	{Name: "bundle_id", Type: field.TypeString},
	{Name: "sentence_idx", Type: field.TypeInt64},
	{Name: "choice", Type: field.TypeString},
	{Name: "max_simplify_stage", Type: field.TypeInt32, Default: 0},
	{Name: "created_at", Type: field.TypeTime},
	{Name: "updated_at", Type: field.TypeTime},
}

// UnclearSentencesTable holds per-sentence unclear flags.
var UnclearSentencesTable = &schema.Table{
	Name:       "unclear_sentences",
	Columns:    unclearColumns,
	PrimaryKey: []*schema.Column{unclearColumns[0]},
	Indexes: []*schema.Index{
		{Name: "unclear_user_bundle_sentence", Unique: true, Columns: []*schema.Column{unclearColumns[1], unclearColumns[2], unclearColumns[3]}},
	},
}

var vocabColumns = []*schema.Column{
	{Name: "id", Type: field.TypeInt64, Increment: true},
	{Name: "word", Type: field.TypeString, Unique: true},
	{Name: "rank", Type: field.TypeInt32},
	{Name: "tier", Type: field.TypeInt32},
}

// VocabWordsTable holds the frequency-list vocabulary tiers.
var VocabWordsTable = &schema.Table{
	Name:       "vocab_words",
	Columns:    vocabColumns,
	PrimaryKey: []*schema.Column{vocabColumns[0]},
	Indexes: []*schema.Index{
		{Name: "vocab_words_tier", Columns: []*schema.Column{vocabColumns[3]}},
	},
}

// Tables lists every application table in creation order.
var Tables = []*schema.Table{
	BundlesTable,
	StudyWordsTable,
	StudyPhrasesTable,
	UnclearSentencesTable,
	VocabWordsTable,
}

// Create applies the schema against the given driver, adding missing tables,
// columns and indexes. Existing columns are never dropped.
func Create(ctx context.Context, drv dialect.Driver) error {
	migrate, err := schema.NewMigrate(drv, schema.WithDropColumn(false), schema.WithDropIndex(false))
	if err != nil {
		return err
	}
	return migrate.Create(ctx, Tables...)
}

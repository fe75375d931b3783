package backup

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	"github.com/eslsoft/readflow/internal/infrastructure/database/migrate"
)

func TestServiceExportImportRoundTrip(t *testing.T) {
	requireSQLite(t)

	ctx := context.Background()

	srcDSN := "file:" + filepath.Join(t.TempDir(), "src.db") + "?_fk=1&cache=shared"
	srcDB := openTestDB(t, ctx, srcDSN)

	seedData(t, ctx, srcDB)

	exporter, err := NewService("sqlite3", srcDSN)
	if err != nil {
		t.Fatalf("new exporter: %v", err)
	}

	var buf bytes.Buffer
	if err := exporter.Export(ctx, &buf); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	dstDSN := "file:" + filepath.Join(t.TempDir(), "dst.db") + "?_fk=1&cache=shared"
	dstDB := openTestDB(t, ctx, dstDSN)

	importer, err := NewService("sqlite3", dstDSN)
	if err != nil {
		t.Fatalf("new importer: %v", err)
	}
	if err := importer.Import(ctx, bytes.NewReader(buf.Bytes())); err != nil {
		t.Fatalf("import failed: %v", err)
	}

	for _, table := range []string{"bundles", "study_words", "study_phrases", "unclear_sentences", "vocab_words"} {
		src := countRows(t, ctx, srcDB, table)
		dst := countRows(t, ctx, dstDB, table)
		if src != dst {
			t.Errorf("table %s: source has %d rows, destination has %d", table, src, dst)
		}
	}

	var word string
	var queryCount int64
	row := dstDB.QueryRowContext(ctx, "SELECT word, query_count FROM study_words WHERE user_id = 1 AND kind = 'study'")
	if err := row.Scan(&word, &queryCount); err != nil {
		t.Fatalf("read imported study word: %v", err)
	}
	if word != "ephemeral" || queryCount != 3 {
		t.Errorf("unexpected imported study word %q count %d", word, queryCount)
	}

	var sentencesJSON sql.NullString
	row = dstDB.QueryRowContext(ctx, "SELECT sentences FROM bundles WHERE id = 'b-1'")
	if err := row.Scan(&sentencesJSON); err != nil {
		t.Fatalf("read imported bundle: %v", err)
	}
	var sentences []string
	if err := json.Unmarshal([]byte(sentencesJSON.String), &sentences); err != nil {
		t.Fatalf("decode imported sentences: %v", err)
	}
	if len(sentences) != 2 || sentences[0] != "Rain fell." {
		t.Errorf("unexpected imported sentences %v", sentences)
	}
}

func TestImportIsIdempotent(t *testing.T) {
	requireSQLite(t)

	ctx := context.Background()

	srcDSN := "file:" + filepath.Join(t.TempDir(), "src.db") + "?_fk=1&cache=shared"
	srcDB := openTestDB(t, ctx, srcDSN)
	seedData(t, ctx, srcDB)

	svc, err := NewService("sqlite3", srcDSN)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	var buf bytes.Buffer
	if err := svc.Export(ctx, &buf); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	// Importing into the source must not duplicate rows: conflicts update.
	before := countRows(t, ctx, srcDB, "study_words")
	if err := svc.Import(ctx, bytes.NewReader(buf.Bytes())); err != nil {
		t.Fatalf("re-import failed: %v", err)
	}
	after := countRows(t, ctx, srcDB, "study_words")
	if before != after {
		t.Errorf("re-import changed row count from %d to %d", before, after)
	}
}

func TestExportRestrictsTables(t *testing.T) {
	requireSQLite(t)

	ctx := context.Background()
	dsn := "file:" + filepath.Join(t.TempDir(), "only.db") + "?_fk=1&cache=shared"
	db := openTestDB(t, ctx, dsn)
	seedData(t, ctx, db)

	svc, err := NewService("sqlite3", dsn)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	var buf bytes.Buffer
	if err := svc.Export(ctx, &buf, WithTables([]string{"vocab_words"})); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var rec rawRecord
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			t.Fatalf("decode record: %v", err)
		}
		if rec.Type != "meta" && rec.Type != "vocab_words" {
			t.Errorf("unexpected record type %q in restricted export", rec.Type)
		}
	}

	if err := svc.Import(ctx, strings.NewReader("")); err == nil {
		t.Error("expected error importing empty archive without meta record")
	}
}

func TestNewServiceRejectsUnknownDriver(t *testing.T) {
	if _, err := NewService("oracle", "dsn"); err == nil {
		t.Error("expected error for unsupported driver")
	}
	if _, err := NewService("sqlite3", " "); err == nil {
		t.Error("expected error for empty DSN")
	}
}

func openTestDB(t *testing.T, ctx context.Context, dsn string) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := migrate.Create(ctx, entsql.OpenDB(dialect.SQLite, db)); err != nil {
		t.Fatalf("create schema: %v", err)
	}
	return db
}

func seedData(t *testing.T, ctx context.Context, db *sql.DB) {
	t.Helper()
	now := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)

	mustExec(t, ctx, db,
		`INSERT INTO bundles (id, source_type, title, language, audio_url, sentences, created_at, updated_at)
		 VALUES ('b-1', 'plain_text', 'Weather', 'en', '', '["Rain fell.","Wind rose."]', ?, ?)`,
		now, now)
	mustExec(t, ctx, db,
		`INSERT INTO study_words (user_id, word, language, kind, query_count, notes, created_at, updated_at)
		 VALUES (1, 'ephemeral', 'en', 'study', 3, '', ?, ?)`,
		now, now)
	mustExec(t, ctx, db,
		`INSERT INTO study_words (user_id, word, language, kind, query_count, notes, created_at, updated_at)
		 VALUES (1, 'obvious', 'en', 'known', 1, '', ?, ?)`,
		now, now)
	mustExec(t, ctx, db,
		`INSERT INTO study_phrases (user_id, text, language, query_count, created_at, updated_at)
		 VALUES (1, 'give up', 'en', 2, ?, ?)`,
		now, now)
	mustExec(t, ctx, db,
		`INSERT INTO unclear_sentences (user_id, bundle_id, sentence_idx, choice, max_simplify_stage, created_at, updated_at)
		 VALUES (1, 'b-1', 0, 'grammar', 1, ?, ?)`,
		now, now)
	mustExec(t, ctx, db,
		`INSERT INTO vocab_words (word, rank, tier) VALUES ('house', 120, 1), ('garden', 900, 2)`)
}

func mustExec(t *testing.T, ctx context.Context, db *sql.DB, query string, args ...any) {
	t.Helper()
	if _, err := db.ExecContext(ctx, query, args...); err != nil {
		t.Fatalf("seed exec failed: %v\nquery: %s", err, query)
	}
}

func countRows(t *testing.T, ctx context.Context, db *sql.DB, table string) int {
	t.Helper()
	var count int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&count); err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return count
}

func requireSQLite(t *testing.T) {
	t.Helper()
	db, err := sql.Open("sqlite3", "file::memory:?cache=shared")
	if err != nil {
		t.Skipf("sqlite driver not available: %v", err)
		return
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		t.Skipf("skipping sqlite-dependent tests: %v", err)
	}
}

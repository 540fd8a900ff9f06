package store

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/schyrsivochter/soundchange/internal/testutil"
)

// createTestStore creates a new store in a temp directory.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestRun creates a run with minimal required fields.
func createTestRun(id string, startedAt time.Time) Run {
	return Run{
		ID:                  id,
		StartedAt:           startedAt,
		RuleSetPath:         "latin.sc",
		LexiconPath:         "latin.lex",
		RuleSetHash:         "rs-hash",
		LexiconHash:         "lex-hash",
		EngineVersion:       "0.1.0",
		RuleLanguageVersion: "2",
		Options:             RunOptions{OutFormat: 1, RewriteOutput: true, Normalize: true},
		Counts:              RunCounts{Categories: 7, Rules: 13, Rewrites: 1, Words: 2, Changed: 2},
	}
}

func testOutputs() []Output {
	return []Output{
		{Seq: 0, Word: "lector", Line: "lector → leitor"},
		{Seq: 1, Word: "fīliam", Line: "fīliam → filha"},
	}
}

func testClock() *testutil.DeterministicClock {
	return testutil.NewDeterministicClock(time.Time{})
}

// getTableColumns returns column names of a table.
func getTableColumns(t *testing.T, db *sql.DB, table string) []string {
	t.Helper()
	rows, err := db.Query("PRAGMA table_info(" + table + ")")
	if err != nil {
		t.Fatalf("table_info(%s): %v", table, err)
	}
	defer rows.Close()

	var cols []string
	for rows.Next() {
		var (
			cid     int
			name    string
			typ     string
			notnull int
			dflt    sql.NullString
			pk      int
		)
		if err := rows.Scan(&cid, &name, &typ, &notnull, &dflt, &pk); err != nil {
			t.Fatalf("scan table_info: %v", err)
		}
		cols = append(cols, name)
	}
	return cols
}

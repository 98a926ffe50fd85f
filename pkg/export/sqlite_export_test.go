package export

import (
	"database/sql"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/vanderheijden86/feedlens/pkg/model"

	_ "modernc.org/sqlite"
)

func TestSQLiteExporter_Export(t *testing.T) {
	ds := scenarioDataset(t)
	path := filepath.Join(t.TempDir(), "out", "feedback.sqlite3")

	exp := NewSQLiteExporter(ds)
	fixed := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	exp.Now = func() time.Time { return fixed }
	if err := exp.Export(path); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	rows, err := db.Query(`SELECT category, user_problem FROM feedback ORDER BY position`)
	if err != nil {
		t.Fatal(err)
	}
	var got []model.FeedbackRow
	for rows.Next() {
		var r model.FeedbackRow
		if err := rows.Scan(&r.Category, &r.UserProblem); err != nil {
			t.Fatal(err)
		}
		got = append(got, r)
	}
	rows.Close()
	if len(got) != 3 || got[0].UserProblem != "need dark mode" || got[2].UserProblem != "slow load" {
		t.Errorf("feedback rows = %v", got)
	}

	var count int
	if err := db.QueryRow(`SELECT count FROM category_counts WHERE category = ?`, model.CategoryFeatureRequest).Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 2 {
		t.Errorf("Feature Request count = %d, want 2", count)
	}

	var text string
	if err := db.QueryRow(`SELECT text FROM summaries WHERE key = ?`, model.GroupNiceToHave).Scan(&text); err != nil {
		t.Fatal(err)
	}
	if text != model.SummaryPlaceholder {
		t.Errorf("missing summary should store the placeholder, got %q", text)
	}
	if err := db.QueryRow(`SELECT text FROM summaries WHERE key = ?`, model.GroupLowHangingFruits).Scan(&text); err != nil {
		t.Fatal(err)
	}
	if text != longSummary {
		t.Error("summary text should be stored in full")
	}

	meta := map[string]string{}
	mrows, err := db.Query(`SELECT key, value FROM meta`)
	if err != nil {
		t.Fatal(err)
	}
	for mrows.Next() {
		var k, v string
		if err := mrows.Scan(&k, &v); err != nil {
			t.Fatal(err)
		}
		meta[k] = v
	}
	mrows.Close()
	if meta["schema_version"] != strconv.Itoa(SchemaVersion) {
		t.Errorf("schema_version = %q", meta["schema_version"])
	}
	if meta["row_count"] != "3" {
		t.Errorf("row_count = %q", meta["row_count"])
	}
	if meta["exported_at"] != "2024-03-01T12:00:00Z" {
		t.Errorf("exported_at = %q", meta["exported_at"])
	}
}

func TestSQLiteExporter_Overwrites(t *testing.T) {
	ds := scenarioDataset(t)
	path := filepath.Join(t.TempDir(), "feedback.sqlite3")

	for i := 0; i < 2; i++ {
		if err := NewSQLiteExporter(ds).Export(path); err != nil {
			t.Fatalf("export %d: %v", i, err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM feedback`).Scan(&n); err != nil {
		t.Fatal(err)
	}
	if n != 3 {
		t.Errorf("expected 3 rows after re-export, got %d", n)
	}
}

func TestSQLiteExporter_NoTable(t *testing.T) {
	if err := NewSQLiteExporter(missingDataset(t)).Export(filepath.Join(t.TempDir(), "x.sqlite3")); err == nil {
		t.Error("expected error without a report")
	}
}

package export

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/vanderheijden86/feedlens/internal/datasource"
	"github.com/vanderheijden86/feedlens/pkg/model"
	"github.com/vanderheijden86/feedlens/pkg/version"

	_ "modernc.org/sqlite"
)

// SchemaVersion is stored in the meta table.
const SchemaVersion = 1

var schema = []string{
	`CREATE TABLE feedback (
		position INTEGER PRIMARY KEY,
		category TEXT NOT NULL,
		user_problem TEXT NOT NULL
	)`,
	`CREATE INDEX idx_feedback_category ON feedback(category)`,
	`CREATE TABLE category_counts (
		category TEXT PRIMARY KEY,
		count INTEGER NOT NULL
	)`,
	`CREATE TABLE summaries (
		key TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		text TEXT NOT NULL
	)`,
	`CREATE TABLE meta (
		key TEXT PRIMARY KEY,
		value TEXT
	)`,
}

// SQLiteExporter writes a loaded dataset to a SQLite database file.
type SQLiteExporter struct {
	Dataset datasource.Dataset
	Now     func() time.Time
}

// NewSQLiteExporter creates an exporter for ds.
func NewSQLiteExporter(ds datasource.Dataset) *SQLiteExporter {
	return &SQLiteExporter{Dataset: ds, Now: time.Now}
}

// Export writes the database to path, replacing any existing file.
func (e *SQLiteExporter) Export(path string) error {
	if e.Dataset.Table == nil {
		return fmt.Errorf("no report loaded")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove existing database: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := e.insertFeedback(tx); err != nil {
		return fmt.Errorf("insert feedback: %w", err)
	}
	if err := e.insertCounts(tx); err != nil {
		return fmt.Errorf("insert category counts: %w", err)
	}
	if err := e.insertSummaries(tx); err != nil {
		return fmt.Errorf("insert summaries: %w", err)
	}
	if err := e.insertMeta(tx); err != nil {
		return fmt.Errorf("insert meta: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return db.Close()
}

func (e *SQLiteExporter) insertFeedback(tx *sql.Tx) error {
	stmt, err := tx.Prepare(`INSERT INTO feedback (position, category, user_problem) VALUES (?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, row := range e.Dataset.Table.Rows {
		if _, err := stmt.Exec(i+1, row.Category, row.UserProblem); err != nil {
			return fmt.Errorf("row %d: %w", i+1, err)
		}
	}
	return nil
}

func (e *SQLiteExporter) insertCounts(tx *sql.Tx) error {
	stmt, err := tx.Prepare(`INSERT INTO category_counts (category, count) VALUES (?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, cc := range e.Dataset.Counts.Ordered() {
		if _, err := stmt.Exec(cc.Category, cc.Count); err != nil {
			return err
		}
	}
	return nil
}

// insertSummaries writes one row per summary group; groups without generated
// text get the placeholder, as on the dashboard.
func (e *SQLiteExporter) insertSummaries(tx *sql.Tx) error {
	stmt, err := tx.Prepare(`INSERT INTO summaries (key, title, text) VALUES (?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, g := range model.SummaryGroups {
		if _, err := stmt.Exec(g.Key, g.Title, e.Dataset.Summaries.Text(g.Key)); err != nil {
			return err
		}
	}
	return nil
}

func (e *SQLiteExporter) insertMeta(tx *sql.Tx) error {
	now := time.Now
	if e.Now != nil {
		now = e.Now
	}
	meta := [][2]string{
		{"schema_version", strconv.Itoa(SchemaVersion)},
		{"generator", "feedlens " + version.Version},
		{"exported_at", now().UTC().Format(time.RFC3339)},
		{"report_path", e.Dataset.Paths.Report},
		{"summaries_path", e.Dataset.Paths.Summaries},
		{"row_count", strconv.Itoa(e.Dataset.Table.Len())},
	}
	for _, kv := range meta {
		if _, err := tx.Exec(`INSERT INTO meta (key, value) VALUES (?, ?)`, kv[0], kv[1]); err != nil {
			return err
		}
	}
	return nil
}

// Package testutil provides fixture generators for feedback reports.
// All generators produce deterministic output for reproducible tests.
package testutil

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/vanderheijden86/feedlens/pkg/model"

	json "github.com/goccy/go-json"
)

// GeneratorConfig controls report generation.
type GeneratorConfig struct {
	Seed       int64    // Random seed for determinism
	Categories []string // Category distribution (nil = the four known categories)
}

// DefaultConfig returns a config suitable for most tests.
func DefaultConfig() GeneratorConfig {
	return GeneratorConfig{
		Seed: 42,
		Categories: []string{
			model.CategoryFeatureRequest,
			model.CategoryStruggle,
			model.CategoryNegativeFeedback,
			model.CategoryPositiveFeedback,
		},
	}
}

// Generator creates feedback rows.
type Generator struct {
	config GeneratorConfig
	rng    *rand.Rand
}

// New creates a generator with the given config.
func New(config GeneratorConfig) *Generator {
	if len(config.Categories) == 0 {
		config.Categories = DefaultConfig().Categories
	}
	return &Generator{config: config, rng: rand.New(rand.NewSource(config.Seed))}
}

// Rows generates n rows with categories drawn from the configured mix.
func (g *Generator) Rows(n int) []model.FeedbackRow {
	rows := make([]model.FeedbackRow, n)
	for i := range rows {
		cat := g.config.Categories[g.rng.Intn(len(g.config.Categories))]
		rows[i] = model.FeedbackRow{
			Category:    cat,
			UserProblem: fmt.Sprintf("feedback item %d about %s", i+1, cat),
		}
	}
	return rows
}

// ReportCSV renders rows as a report file body with an extra leading column,
// the way the analysis notebook writes it.
func ReportCSV(rows []model.FeedbackRow) []byte {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"comment_id", model.ColumnCategory, model.ColumnUserProblem})
	for i, r := range rows {
		_ = w.Write([]string{fmt.Sprint(i + 1), r.Category, r.UserProblem})
	}
	w.Flush()
	return buf.Bytes()
}

// WriteReport writes rows as a CSV report into dir and returns its path.
func WriteReport(t testing.TB, dir string, rows []model.FeedbackRow) string {
	t.Helper()
	path := filepath.Join(dir, "final_comprehensive_report.csv")
	if err := os.WriteFile(path, ReportCSV(rows), 0o644); err != nil {
		t.Fatalf("write report: %v", err)
	}
	return path
}

// WriteSummaries writes a summary store as JSON into dir and returns its path.
func WriteSummaries(t testing.TB, dir string, store map[string]string) string {
	t.Helper()
	data, err := json.MarshalIndent(store, "", "  ")
	if err != nil {
		t.Fatalf("marshal summaries: %v", err)
	}
	return WriteFile(t, dir, "dashboard_summaries.json", data)
}

// WriteFile writes raw content into dir/name and returns the path.
func WriteFile(t testing.TB, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

// ScenarioRows is the three-row report used across package tests.
func ScenarioRows() []model.FeedbackRow {
	return []model.FeedbackRow{
		{Category: model.CategoryFeatureRequest, UserProblem: "need dark mode"},
		{Category: model.CategoryFeatureRequest, UserProblem: "need export"},
		{Category: model.CategoryNegativeFeedback, UserProblem: "slow load"},
	}
}

package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.ReportPath != "final_comprehensive_report.csv" {
		t.Errorf("expected default report path, got %q", cfg.ReportPath)
	}
	if cfg.SummariesPath != "dashboard_summaries.json" {
		t.Errorf("expected default summaries path, got %q", cfg.SummariesPath)
	}
	if cfg.TopN != 3 {
		t.Errorf("expected top_n 3, got %d", cfg.TopN)
	}
	if cfg.TruncateAt != 150 {
		t.Errorf("expected truncate_at 150, got %d", cfg.TruncateAt)
	}
	if !cfg.WatchEnabled() {
		t.Error("expected watch enabled by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoadFrom_NonExistent(t *testing.T) {
	cfg, err := LoadFrom("/nonexistent/path/config.yaml")
	if err != nil {
		t.Fatalf("expected no error for missing file, got: %v", err)
	}
	if cfg.TopN != 3 {
		t.Errorf("expected default config, got top_n %d", cfg.TopN)
	}
}

func TestLoadFrom_ValidConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	content := `
report_path: ~/reports/latest.csv
summaries_path: /data/summaries.json
top_n: 5
watch: false
export:
  dir: out
  formats: [svg, "png,sqlite"]
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	home, _ := os.UserHomeDir()
	if want := filepath.Join(home, "reports/latest.csv"); cfg.ReportPath != want {
		t.Errorf("expected expanded path %q, got %q", want, cfg.ReportPath)
	}
	if cfg.SummariesPath != "/data/summaries.json" {
		t.Errorf("expected absolute path preserved, got %q", cfg.SummariesPath)
	}
	if cfg.TopN != 5 {
		t.Errorf("expected top_n 5, got %d", cfg.TopN)
	}
	if cfg.TruncateAt != 150 {
		t.Errorf("unset truncate_at should keep default, got %d", cfg.TruncateAt)
	}
	if cfg.WatchEnabled() {
		t.Error("expected watch disabled")
	}
	if cfg.Export.Dir != "out" {
		t.Errorf("expected export dir 'out', got %q", cfg.Export.Dir)
	}
}

func TestLoadFrom_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	if err := os.WriteFile(path, []byte("{{invalid yaml"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadFrom(path)
	if err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestLoadFrom_InvalidValues(t *testing.T) {
	tests := []struct {
		content string
		wantErr string
	}{
		{"top_n: -1\n", "top_n must be at least 1"},
		{"truncate_at: -5\n", "truncate_at must be at least 1"},
		{"export:\n  formats: [gif]\n", `unsupported export format "gif"`},
	}
	for _, tt := range tests {
		path := filepath.Join(t.TempDir(), "config.yaml")
		if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
			t.Fatal(err)
		}
		_, err := LoadFrom(path)
		if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
			t.Errorf("LoadFrom(%q) err = %v; want %q", tt.content, err, tt.wantErr)
		}
	}
}

func TestParseFormats(t *testing.T) {
	got, err := ParseFormats([]string{"SVG, .png", "markdown", "svg"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{FormatSVG, FormatPNG, FormatMarkdown}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseFormats = %v; want %v", got, want)
	}
}

func TestSaveAndLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.TopN = 7
	cfg.Export.Formats = []string{FormatSQLite}
	if err := SaveTo(cfg, path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.TopN != 7 || !reflect.DeepEqual(loaded.Export.Formats, []string{FormatSQLite}) {
		t.Errorf("round trip mismatch: %+v", loaded)
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("cannot determine home dir")
	}

	tests := []struct {
		input    string
		expected string
	}{
		{"~/foo", filepath.Join(home, "foo")},
		{"/absolute", "/absolute"},
		{"relative", "relative"},
	}

	for _, tt := range tests {
		got := expandHome(tt.input)
		if got != tt.expected {
			t.Errorf("expandHome(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestConfigDir_XDGOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	got := ConfigDir()
	expected := filepath.Join(dir, "feedlens")
	if got != expected {
		t.Errorf("expected %q, got %q", expected, got)
	}
}

func TestStateDir_XDGOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_STATE_HOME", dir)

	if got, want := DebugLogPath(), filepath.Join(dir, "feedlens", "debug.log"); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

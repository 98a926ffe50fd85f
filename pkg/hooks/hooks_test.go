package hooks

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
	"unicode/utf8"
)

func writeHooksFile(t *testing.T, dir, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Join(dir, ConfigDir), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(ConfigPath(dir), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	cfg, warnings, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("missing config should not error: %v", err)
	}
	if !cfg.Empty() || len(warnings) != 0 {
		t.Errorf("expected empty config, got %+v %v", cfg, warnings)
	}
}

func TestLoad_DefaultsAndWarnings(t *testing.T) {
	dir := t.TempDir()
	writeHooksFile(t, dir, `
hooks:
  pre-export:
    - command: echo pre
    - name: blank
      command: "   "
  post-export:
    - name: upload
      command: echo post
      timeout: 10
    - command: echo again
      timeout: 2m
      on_error: fail
`)

	cfg, warnings, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(warnings) != 1 || !strings.Contains(warnings[0], "pre-export hook 2") {
		t.Errorf("warnings = %v", warnings)
	}

	pre := cfg.For(PreExport)
	if len(pre) != 1 {
		t.Fatalf("expected 1 pre-export hook, got %d", len(pre))
	}
	if pre[0].Name != "pre-export-1" || pre[0].OnError != OnErrorFail || pre[0].Timeout != DefaultTimeout {
		t.Errorf("pre-export defaults not applied: %+v", pre[0])
	}

	post := cfg.For(PostExport)
	if len(post) != 2 {
		t.Fatalf("expected 2 post-export hooks, got %d", len(post))
	}
	if post[0].OnError != OnErrorContinue || post[0].Timeout != 10*time.Second {
		t.Errorf("post-export hook = %+v", post[0])
	}
	if post[1].OnError != OnErrorFail || post[1].Timeout != 2*time.Minute {
		t.Errorf("explicit settings lost: %+v", post[1])
	}
	if cfg.For(Phase("other")) != nil {
		t.Error("unknown phase should have no hooks")
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []string{
		"{{not yaml",
		"hooks:\n  pre-export:\n    - command: echo\n      timeout: soon\n",
		"hooks:\n  pre-export:\n    - command: echo\n      on_error: retry\n",
	}
	for _, content := range tests {
		dir := t.TempDir()
		writeHooksFile(t, dir, content)
		if _, _, err := Load(dir); err == nil {
			t.Errorf("expected error for %q", content)
		}
	}
}

func TestExportContext_Env(t *testing.T) {
	ts := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	env := ExportContext{
		Dir:       "out",
		Formats:   []string{"md", "svg"},
		RowCount:  42,
		Timestamp: ts,
	}.Env()

	want := map[string]bool{
		"FEEDLENS_EXPORT_DIR=out":                 true,
		"FEEDLENS_EXPORT_FORMATS=md,svg":          true,
		"FEEDLENS_EXPORT_PATHS=":                  true,
		"FEEDLENS_ROW_COUNT=42":                   true,
		"FEEDLENS_TIMESTAMP=2024-05-01T12:00:00Z": true,
	}
	if len(env) != len(want) {
		t.Fatalf("env = %v", env)
	}
	for _, kv := range env {
		if !want[kv] {
			t.Errorf("unexpected env entry %q", kv)
		}
	}
}

func TestExecutor_RunsWithExportEnv(t *testing.T) {
	t.Setenv("TEST_HOOK_VAR", "expanded")
	cfg := &Config{Hooks: ByPhase{
		PreExport: []Hook{{
			Name:    "env",
			Command: "echo $FEEDLENS_EXPORT_DIR $FEEDLENS_ROW_COUNT $CUSTOM",
			Timeout: 5 * time.Second,
			OnError: OnErrorFail,
			Env:     map[string]string{"CUSTOM": "${TEST_HOOK_VAR}"},
		}},
		PostExport: []Hook{{
			Name:    "paths",
			Command: "echo $FEEDLENS_EXPORT_PATHS",
			Timeout: 5 * time.Second,
			OnError: OnErrorFail,
		}},
	}}

	e := NewExecutor(cfg, ExportContext{Dir: "/tmp/out", RowCount: 7})
	if err := e.RunPreExport(context.Background()); err != nil {
		t.Fatalf("pre-export failed: %v", err)
	}
	e.SetPaths([]string{"/tmp/out/report.md"})
	if err := e.RunPostExport(context.Background()); err != nil {
		t.Fatalf("post-export failed: %v", err)
	}

	results := e.Results()
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Stdout != "/tmp/out 7 expanded" {
		t.Errorf("pre-export stdout = %q", results[0].Stdout)
	}
	if results[1].Stdout != "/tmp/out/report.md" {
		t.Errorf("post-export stdout = %q", results[1].Stdout)
	}
}

func TestExecutor_PreExportStopsOnFail(t *testing.T) {
	cfg := &Config{Hooks: ByPhase{PreExport: []Hook{
		{Name: "soft", Command: "exit 3", Timeout: time.Second, OnError: OnErrorContinue},
		{Name: "hard", Command: "echo nope >&2; exit 1", Timeout: time.Second, OnError: OnErrorFail},
		{Name: "never", Command: "echo never", Timeout: time.Second, OnError: OnErrorFail},
	}}}

	e := NewExecutor(cfg, ExportContext{})
	err := e.RunPreExport(context.Background())
	if err == nil || !strings.Contains(err.Error(), `"hard"`) || !strings.Contains(err.Error(), "nope") {
		t.Fatalf("expected failure of hard hook with stderr, got %v", err)
	}
	if n := len(e.Results()); n != 2 {
		t.Errorf("expected the third hook to be skipped, got %d results", n)
	}
}

func TestExecutor_PostExportRunsAll(t *testing.T) {
	cfg := &Config{Hooks: ByPhase{PostExport: []Hook{
		{Name: "fail", Command: "exit 1", Timeout: time.Second, OnError: OnErrorFail},
		{Name: "ok", Command: "echo ok", Timeout: time.Second, OnError: OnErrorContinue},
	}}}

	e := NewExecutor(cfg, ExportContext{})
	if err := e.RunPostExport(context.Background()); err == nil {
		t.Fatal("expected error from failing post-export hook")
	}
	if n := len(e.Results()); n != 2 {
		t.Fatalf("expected both hooks to run, got %d", n)
	}

	summary := e.Summary()
	if !strings.Contains(summary, "1 succeeded, 1 failed") || !strings.Contains(summary, "post-export fail") {
		t.Errorf("summary = %q", summary)
	}
}

func TestExecutor_Timeout(t *testing.T) {
	cfg := &Config{Hooks: ByPhase{PreExport: []Hook{
		{Name: "slow", Command: "sleep 5", Timeout: 100 * time.Millisecond, OnError: OnErrorFail},
	}}}

	e := NewExecutor(cfg, ExportContext{})
	start := time.Now()
	err := e.RunPreExport(context.Background())
	if err == nil || !strings.Contains(err.Error(), "timed out") {
		t.Fatalf("expected timeout error, got %v", err)
	}
	if time.Since(start) > 3*time.Second {
		t.Error("timed out hook should not block for its full duration")
	}
}

func TestExecutor_NoHooks(t *testing.T) {
	e := NewExecutor(nil, ExportContext{})
	if err := e.RunPreExport(context.Background()); err != nil {
		t.Fatal(err)
	}
	if err := e.RunPostExport(context.Background()); err != nil {
		t.Fatal(err)
	}
	if e.Summary() != "" {
		t.Error("summary should be empty when nothing ran")
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate = %q", got)
	}
	if got := truncate("abcdefghijklmnopqrstuvwxyz", 8); got != "abcde..." {
		t.Errorf("truncate = %q", got)
	}
	got := truncate("échec: données corrompues", 10)
	if !utf8.ValidString(got) || got != "échec: ..." {
		t.Errorf("truncate should cut on rune boundaries, got %q", got)
	}
}

package hooks

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/vanderheijden86/feedlens/pkg/debug"

	"github.com/mattn/go-runewidth"
)

// ExportContext describes the export to the hook commands through the
// environment.
type ExportContext struct {
	Dir       string
	Formats   []string
	Paths     []string // empty during pre-export
	RowCount  int
	Timestamp time.Time
}

// Env returns the FEEDLENS_* variables passed to every hook.
func (c ExportContext) Env() []string {
	return []string{
		"FEEDLENS_EXPORT_DIR=" + c.Dir,
		"FEEDLENS_EXPORT_FORMATS=" + strings.Join(c.Formats, ","),
		"FEEDLENS_EXPORT_PATHS=" + strings.Join(c.Paths, string(os.PathListSeparator)),
		fmt.Sprintf("FEEDLENS_ROW_COUNT=%d", c.RowCount),
		"FEEDLENS_TIMESTAMP=" + c.Timestamp.Format(time.RFC3339),
	}
}

// Result is the outcome of one hook run.
type Result struct {
	Hook     Hook
	Phase    Phase
	Success  bool
	Stdout   string
	Stderr   string
	Err      error
	Duration time.Duration
}

// Executor runs the configured hooks and records their results.
type Executor struct {
	config  *Config
	export  ExportContext
	results []Result
}

// NewExecutor creates an executor over cfg.
func NewExecutor(cfg *Config, ec ExportContext) *Executor {
	if cfg == nil {
		cfg = &Config{}
	}
	return &Executor{config: cfg, export: ec}
}

// SetPaths records the written artifacts for the post-export hooks.
func (e *Executor) SetPaths(paths []string) {
	e.export.Paths = append([]string(nil), paths...)
}

// RunPreExport runs the pre-export hooks in order and stops at the first
// failing hook whose policy is fail.
func (e *Executor) RunPreExport(ctx context.Context) error {
	for _, h := range e.config.For(PreExport) {
		r := e.run(ctx, h, PreExport)
		if !r.Success && h.OnError == OnErrorFail {
			return fmt.Errorf("pre-export hook %q failed: %w", h.Name, r.Err)
		}
	}
	return nil
}

// RunPostExport runs every post-export hook and joins the failures of
// hooks whose policy is fail.
func (e *Executor) RunPostExport(ctx context.Context) error {
	var errs []error
	for _, h := range e.config.For(PostExport) {
		r := e.run(ctx, h, PostExport)
		if !r.Success && h.OnError == OnErrorFail {
			errs = append(errs, fmt.Errorf("post-export hook %q failed: %w", h.Name, r.Err))
		}
	}
	return errors.Join(errs...)
}

func (e *Executor) run(ctx context.Context, h Hook, phase Phase) Result {
	ctx, cancel := context.WithTimeout(ctx, h.Timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "sh", "-c", h.Command)
	// Children of the shell may keep the output pipes open after a kill.
	cmd.WaitDelay = time.Second
	cmd.Env = append(os.Environ(), e.export.Env()...)
	for k, v := range h.Env {
		cmd.Env = append(cmd.Env, k+"="+os.ExpandEnv(v))
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	r := Result{
		Hook:     h,
		Phase:    phase,
		Success:  err == nil,
		Stdout:   strings.TrimSpace(stdout.String()),
		Stderr:   strings.TrimSpace(stderr.String()),
		Duration: time.Since(start),
	}
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			err = fmt.Errorf("timed out after %v", h.Timeout)
		} else if r.Stderr != "" {
			err = fmt.Errorf("%w: %s", err, truncate(r.Stderr, 200))
		}
		r.Err = err
	}
	debug.Log("hooks: %s %q success=%v in %v", phase, h.Name, r.Success, r.Duration)
	e.results = append(e.results, r)
	return r
}

// Results returns the results recorded so far.
func (e *Executor) Results() []Result {
	return append([]Result(nil), e.results...)
}

// Summary describes the runs in one line per failure, after a count line.
func (e *Executor) Summary() string {
	if len(e.results) == 0 {
		return ""
	}
	var ok, failed int
	var lines []string
	for _, r := range e.results {
		if r.Success {
			ok++
			continue
		}
		failed++
		lines = append(lines, fmt.Sprintf("  %s %s: %v", r.Phase, r.Hook.Name, r.Err))
	}
	head := fmt.Sprintf("hooks: %d succeeded, %d failed", ok, failed)
	return strings.Join(append([]string{head}, lines...), "\n")
}

// truncate shortens s to at most width terminal cells without splitting runes.
func truncate(s string, width int) string {
	return runewidth.Truncate(s, width, "...")
}

// Package config handles loading and saving feedlens configuration.
//
// Configuration follows the XDG Base Directory specification:
//   - Config:  ~/.config/feedlens/config.yaml
//   - State:   ~/.local/state/feedlens/ (debug log)
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vanderheijden86/feedlens/pkg/loader"

	"gopkg.in/yaml.v3"
)

const appName = "feedlens"

// Export formats understood by the exporter.
const (
	FormatMarkdown = "md"
	FormatSVG      = "svg"
	FormatPNG      = "png"
	FormatSQLite   = "sqlite"
)

// AllFormats lists every export format in a stable order.
var AllFormats = []string{FormatMarkdown, FormatSVG, FormatPNG, FormatSQLite}

// ExportConfig controls the export bundle.
type ExportConfig struct {
	Dir     string   `yaml:"dir,omitempty"`
	Formats []string `yaml:"formats,omitempty"`
}

// Config is the top-level configuration for feedlens.
type Config struct {
	ReportPath    string       `yaml:"report_path,omitempty"`
	SummariesPath string       `yaml:"summaries_path,omitempty"`
	TopN          int          `yaml:"top_n,omitempty"`       // Items per top-feedback column
	TruncateAt    int          `yaml:"truncate_at,omitempty"` // Collapsed summary length in characters
	Watch         *bool        `yaml:"watch,omitempty"`       // Reload when input files change
	Export        ExportConfig `yaml:"export,omitempty"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	watch := true
	return Config{
		ReportPath:    loader.DefaultReportPath,
		SummariesPath: loader.DefaultSummariesPath,
		TopN:          3,
		TruncateAt:    150,
		Watch:         &watch,
		Export: ExportConfig{
			Dir:     "feedlens-export",
			Formats: []string{FormatMarkdown, FormatSVG},
		},
	}
}

// WatchEnabled reports whether live reload is on.
func (c Config) WatchEnabled() bool {
	return c.Watch == nil || *c.Watch
}

// ConfigDir returns the XDG config directory for feedlens.
func ConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appName)
}

// StateDir returns the XDG state directory for feedlens.
func StateDir() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "state", appName)
}

// ConfigPath returns the full path to config.yaml.
func ConfigPath() string {
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// DebugLogPath returns the default debug log location.
func DebugLogPath() string {
	dir := StateDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "debug.log")
}

// Load reads the config file from the XDG config directory.
// Returns DefaultConfig if the file doesn't exist.
func Load() (Config, error) {
	path := ConfigPath()
	if path == "" {
		return DefaultConfig(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads config from a specific path.
// Returns DefaultConfig if the file doesn't exist.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	cfg.ReportPath = expandHome(cfg.ReportPath)
	cfg.SummariesPath = expandHome(cfg.SummariesPath)
	cfg.Export.Dir = expandHome(cfg.Export.Dir)

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks value ranges and export formats.
func (c Config) Validate() error {
	if c.TopN < 1 {
		return fmt.Errorf("top_n must be at least 1, got %d", c.TopN)
	}
	if c.TruncateAt < 1 {
		return fmt.Errorf("truncate_at must be at least 1, got %d", c.TruncateAt)
	}
	if _, err := ParseFormats(c.Export.Formats); err != nil {
		return err
	}
	return nil
}

// ParseFormats normalizes a list of format names, accepting comma-separated
// entries. Duplicates are dropped.
func ParseFormats(in []string) ([]string, error) {
	var out []string
	seen := make(map[string]bool)
	for _, entry := range in {
		for _, f := range strings.Split(entry, ",") {
			f = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(f), "."))
			if f == "" {
				continue
			}
			if f == "markdown" {
				f = FormatMarkdown
			}
			if !isKnownFormat(f) {
				return nil, fmt.Errorf("unsupported export format %q (want one of %s)", f, strings.Join(AllFormats, ", "))
			}
			if !seen[f] {
				seen[f] = true
				out = append(out, f)
			}
		}
	}
	return out, nil
}

func isKnownFormat(f string) bool {
	for _, known := range AllFormats {
		if f == known {
			return true
		}
	}
	return false
}

// SaveTo writes the config to a specific path.
func SaveTo(cfg Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}

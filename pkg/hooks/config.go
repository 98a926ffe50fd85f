// Package hooks runs user commands around an export.
// Hooks are configured in .feedlens/hooks.yaml next to the report file and
// run before the artifacts are written (pre-export) or after (post-export).
package hooks

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Phase is the point in the export at which a hook runs.
type Phase string

const (
	// PreExport runs before any artifact is written. Failure cancels the export.
	PreExport Phase = "pre-export"
	// PostExport runs after the bundle is written. Failure is reported but the
	// artifacts stay in place.
	PostExport Phase = "post-export"
)

// On-error policies.
const (
	OnErrorFail     = "fail"
	OnErrorContinue = "continue"
)

// DefaultTimeout bounds a hook that sets no timeout.
const DefaultTimeout = 30 * time.Second

// ConfigDir and ConfigFile locate the hook file relative to the project dir.
const (
	ConfigDir  = ".feedlens"
	ConfigFile = "hooks.yaml"
)

// Hook is one configured command.
type Hook struct {
	Name    string            `yaml:"name"`
	Command string            `yaml:"command"` // run with sh -c
	Timeout time.Duration     `yaml:"timeout,omitempty"`
	Env     map[string]string `yaml:"env,omitempty"` // values are expanded with os.ExpandEnv
	OnError string            `yaml:"on_error,omitempty"`
}

// Config is the parsed hook file.
type Config struct {
	Hooks ByPhase `yaml:"hooks"`
}

// ByPhase groups hooks by the phase they run in.
type ByPhase struct {
	PreExport  []Hook `yaml:"pre-export,omitempty"`
	PostExport []Hook `yaml:"post-export,omitempty"`
}

// For returns the hooks of phase.
func (c *Config) For(phase Phase) []Hook {
	if c == nil {
		return nil
	}
	switch phase {
	case PreExport:
		return c.Hooks.PreExport
	case PostExport:
		return c.Hooks.PostExport
	default:
		return nil
	}
}

// Empty reports whether no hook is configured.
func (c *Config) Empty() bool {
	return c == nil || len(c.Hooks.PreExport)+len(c.Hooks.PostExport) == 0
}

// ConfigPath returns the hook file location for projectDir.
func ConfigPath(projectDir string) string {
	return filepath.Join(projectDir, ConfigDir, ConfigFile)
}

// Load reads the hook file of projectDir. A missing file yields an empty
// config. Hooks with an empty command are dropped and reported as warnings.
func Load(projectDir string) (*Config, []string, error) {
	path := ConfigPath(projectDir)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil, nil
		}
		return nil, nil, fmt.Errorf("reading hooks config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	var warnings []string
	cfg.Hooks.PreExport, warnings = normalize(cfg.Hooks.PreExport, PreExport, warnings)
	cfg.Hooks.PostExport, warnings = normalize(cfg.Hooks.PostExport, PostExport, warnings)
	return &cfg, warnings, nil
}

func normalize(hooks []Hook, phase Phase, warnings []string) ([]Hook, []string) {
	var out []Hook
	for i, h := range hooks {
		if strings.TrimSpace(h.Command) == "" {
			warnings = append(warnings, fmt.Sprintf("%s hook %d has empty command; skipping", phase, i+1))
			continue
		}
		if h.Timeout <= 0 {
			h.Timeout = DefaultTimeout
		}
		if h.OnError == "" {
			h.OnError = OnErrorContinue
			if phase == PreExport {
				h.OnError = OnErrorFail
			}
		}
		if h.Name == "" {
			h.Name = fmt.Sprintf("%s-%d", phase, i+1)
		}
		out = append(out, h)
	}
	return out, warnings
}

// UnmarshalYAML accepts timeouts as Go durations ("10s") or bare seconds.
func (h *Hook) UnmarshalYAML(node *yaml.Node) error {
	type rawHook struct {
		Name    string            `yaml:"name"`
		Command string            `yaml:"command"`
		Timeout string            `yaml:"timeout,omitempty"`
		Env     map[string]string `yaml:"env,omitempty"`
		OnError string            `yaml:"on_error,omitempty"`
	}

	var raw rawHook
	if err := node.Decode(&raw); err != nil {
		return err
	}
	*h = Hook{Name: raw.Name, Command: raw.Command, Env: raw.Env, OnError: raw.OnError}

	switch h.OnError {
	case "", OnErrorFail, OnErrorContinue:
	default:
		return fmt.Errorf("hook %q: on_error must be %q or %q", raw.Name, OnErrorFail, OnErrorContinue)
	}

	if raw.Timeout == "" {
		return nil
	}
	d, err := time.ParseDuration(raw.Timeout)
	if err == nil {
		h.Timeout = d
		return nil
	}
	var seconds float64
	if _, scanErr := fmt.Sscanf(raw.Timeout, "%f", &seconds); scanErr != nil {
		return fmt.Errorf("invalid timeout %q: %w", raw.Timeout, err)
	}
	h.Timeout = time.Duration(seconds * float64(time.Second))
	return nil
}

// Command feedlens is a terminal dashboard for classified product feedback.
package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/vanderheijden86/feedlens/internal/datasource"
	"github.com/vanderheijden86/feedlens/pkg/config"
	"github.com/vanderheijden86/feedlens/pkg/debug"
	"github.com/vanderheijden86/feedlens/pkg/metrics"
	"github.com/vanderheijden86/feedlens/pkg/ui"
	"github.com/vanderheijden86/feedlens/pkg/version"
	"github.com/vanderheijden86/feedlens/pkg/watcher"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// rootOptions holds the persistent flags shared by every command.
type rootOptions struct {
	reportPath    string
	summariesPath string
	configPath    string
	verbose       bool
	noWatch       bool

	flushLog func()
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "feedlens",
		Short: "Terminal dashboard for classified product feedback",
		Long: `feedlens shows the output of the feedback analysis notebook: AI summaries,
category counts, a category breakdown and the top feedback items.

Run without arguments to open the dashboard. It reloads when the report or
summary file changes.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logPath := ""
			// The dashboard owns the terminal, so its log goes to a file.
			if cmd.Name() == "feedlens" {
				logPath = os.Getenv(debug.EnvDebugFile)
				if logPath == "" {
					logPath = config.DebugLogPath()
				}
			}
			flush, err := debug.Setup(debug.Options{Enabled: opts.verbose, Path: logPath})
			if err != nil {
				return err
			}
			opts.flushLog = flush
			debug.L().Debug("starting", zap.String("command", cmd.CommandPath()), zap.String("version", version.Version))
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			metrics.LogAll(debug.L())
			if opts.flushLog != nil {
				opts.flushLog()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDashboard(cmd, opts)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.reportPath, "report", "", "Path to the classified feedback report (CSV)")
	flags.StringVar(&opts.summariesPath, "summaries", "", "Path to the AI summaries file (JSON)")
	flags.StringVar(&opts.configPath, "config", "", "Config file (default $XDG_CONFIG_HOME/feedlens/config.yaml)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")
	cmd.Flags().BoolVar(&opts.noWatch, "no-watch", false, "Do not reload when the input files change")

	cmd.AddCommand(newPrintCmd(opts), newExportCmd(opts), newVersionCmd())
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the feedlens version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "feedlens %s\n", version.Version)
		},
	}
}

// loadConfig resolves settings: flags override the config file, which
// overrides the defaults.
func loadConfig(cmd *cobra.Command, opts *rootOptions) (config.Config, error) {
	var (
		cfg config.Config
		err error
	)
	if opts.configPath != "" {
		cfg, err = config.LoadFrom(opts.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return cfg, err
	}

	if cmd.Flags().Changed("report") {
		cfg.ReportPath = opts.reportPath
	}
	if cmd.Flags().Changed("summaries") {
		cfg.SummariesPath = opts.summariesPath
	}
	if opts.noWatch {
		watch := false
		cfg.Watch = &watch
	}
	return cfg, nil
}

func dataPaths(cfg config.Config) datasource.Paths {
	return datasource.Paths{Report: cfg.ReportPath, Summaries: cfg.SummariesPath}
}

func runDashboard(cmd *cobra.Command, opts *rootOptions) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}
	paths := dataPaths(cfg)
	ds := datasource.Load(paths)

	var w *watcher.Watcher
	if cfg.WatchEnabled() {
		w, err = watcher.NewWatcher([]string{paths.Report, paths.Summaries},
			watcher.WithOnError(func(err error) {
				debug.L().Warn("watcher error", zap.Error(err))
			}),
		)
		if err == nil {
			err = w.Start()
		}
		if err != nil {
			debug.L().Warn("live reload disabled", zap.Error(err))
			w = nil
		} else {
			defer w.Stop()
			debug.Log("watching %v (polling=%v)", w.Paths(), w.IsPolling())
		}
	}

	m := ui.NewModel(ds, ui.Options{
		TopN:          cfg.TopN,
		TruncateAt:    cfg.TruncateAt,
		Watcher:       w,
		ExportDir:     cfg.Export.Dir,
		ExportFormats: cfg.Export.Formats,
	})
	return runTUIProgram(m)
}

func runTUIProgram(m ui.Model) error {
	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithoutSignalHandler(),
	)

	runDone := make(chan struct{})
	defer close(runDone)

	// Graceful shutdown on SIGINT/SIGTERM.
	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-runDone:
			return
		case <-sigCh:
		}

		p.Quit()

		select {
		case <-runDone:
			return
		case <-sigCh:
		case <-time.After(5 * time.Second):
		}

		p.Kill()
	}()

	// Optional auto-quit for automated tests: set FEEDLENS_TUI_AUTOCLOSE_MS.
	if v := os.Getenv("FEEDLENS_TUI_AUTOCLOSE_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			go func() {
				timer := time.NewTimer(time.Duration(ms) * time.Millisecond)
				defer timer.Stop()

				select {
				case <-runDone:
					return
				case <-timer.C:
				}

				p.Quit()
			}()
		}
	}

	_, err := p.Run()
	if err != nil && errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}

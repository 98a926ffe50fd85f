package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/vanderheijden86/feedlens/internal/datasource"
	"github.com/vanderheijden86/feedlens/pkg/config"
	"github.com/vanderheijden86/feedlens/pkg/export"
	"github.com/vanderheijden86/feedlens/pkg/hooks"
	"github.com/vanderheijden86/feedlens/pkg/model"

	"github.com/spf13/cobra"
)

func newExportCmd(root *rootOptions) *cobra.Command {
	var (
		formats     []string
		outDir      string
		interactive bool
		noHooks     bool
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the dashboard to files",
		Long: `Writes the selected artifacts into a directory:

  md      report.md         Markdown report
  svg     categories.svg    category donut chart
  png     categories.png    category donut chart
  sqlite  feedback.sqlite3  rows, counts, summaries and metadata

Commands listed in .feedlens/hooks.yaml next to the report run before
(pre-export) and after (post-export) the artifacts are written.

Example:
  feedlens export --format md,svg,sqlite --out reports/`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, root)
			if err != nil {
				return err
			}
			ds := datasource.Load(dataPaths(cfg))
			if ds.Err != nil {
				return ds.Err
			}
			if ds.ReportMissing {
				return errors.New(model.ReportMissingWarning(ds.Paths.Report))
			}

			target := config.ExportConfig{Dir: cfg.Export.Dir, Formats: cfg.Export.Formats}
			if cmd.Flags().Changed("out") {
				target.Dir = outDir
			}
			if cmd.Flags().Changed("format") {
				target.Formats = formats
			}
			if interactive {
				res, err := export.NewWizard(target, cmd.OutOrStdout()).Run()
				if err != nil {
					return err
				}
				target = config.ExportConfig{Dir: res.Dir, Formats: res.Formats}
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			var runner *hooks.Executor
			if !noHooks {
				hcfg, warnings, err := hooks.Load(filepath.Dir(ds.Paths.Report))
				if err != nil {
					return err
				}
				for _, w := range warnings {
					fmt.Fprintln(cmd.ErrOrStderr(), "warning:", w)
				}
				if !hcfg.Empty() {
					runner = hooks.NewExecutor(hcfg, hooks.ExportContext{
						Dir:       target.Dir,
						Formats:   target.Formats,
						RowCount:  ds.Table.Len(),
						Timestamp: time.Now(),
					})
				}
			}

			if runner != nil {
				if err := runner.RunPreExport(ctx); err != nil {
					return err
				}
			}
			paths, err := export.WriteBundle(ctx, ds, target.Dir, target.Formats, export.Options{TopN: cfg.TopN, GeneratedAt: time.Now()})
			if err != nil {
				return err
			}
			for _, p := range paths {
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			if runner != nil {
				runner.SetPaths(paths)
				err := runner.RunPostExport(ctx)
				fmt.Fprintln(cmd.ErrOrStderr(), runner.Summary())
				if err != nil {
					return err
				}
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringSliceVarP(&formats, "format", "f", nil, "Artifacts to write: md, svg, png, sqlite (comma separated)")
	flags.StringVarP(&outDir, "out", "o", "", "Output directory")
	flags.BoolVarP(&interactive, "interactive", "i", false, "Choose formats and directory interactively")
	flags.BoolVar(&noHooks, "no-hooks", false, "Skip the export hooks")
	return cmd
}

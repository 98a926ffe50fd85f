package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/vanderheijden86/feedlens/internal/datasource"
	"github.com/vanderheijden86/feedlens/pkg/export"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const defaultPrintWidth = 100

func newPrintCmd(root *rootOptions) *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "print",
		Short: "Print the dashboard as a Markdown report",
		Long: `Renders the dashboard content to stdout. Output is styled when stdout is a
terminal and plain Markdown otherwise (or with --plain).

Exits non-zero when an input file is malformed. A missing report prints the
rerun notice and exits successfully.`,
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

			md := export.RenderMarkdown(ds, export.Options{TopN: cfg.TopN, GeneratedAt: time.Now()})
			out := cmd.OutOrStdout()
			width, tty := terminalWidth(out)
			if plain || !tty {
				_, err := io.WriteString(out, md)
				return err
			}
			return renderStyled(out, md, width)
		},
	}
	cmd.Flags().BoolVar(&plain, "plain", false, "Write plain Markdown even on a terminal")
	return cmd
}

// terminalWidth reports whether w is a terminal and, if so, its width.
func terminalWidth(w io.Writer) (int, bool) {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0, false
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		width = defaultPrintWidth
	}
	return width, true
}

func renderStyled(w io.Writer, md string, width int) error {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return fmt.Errorf("create markdown renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return fmt.Errorf("render markdown: %w", err)
	}
	_, err = io.WriteString(w, out)
	return err
}

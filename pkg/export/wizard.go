package export

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/vanderheijden86/feedlens/pkg/config"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"
)

// WizardResult holds the choices made in the export wizard.
type WizardResult struct {
	Dir     string
	Formats []string
}

// Wizard asks which artifacts to export and where.
type Wizard struct {
	defaults WizardResult
	out      io.Writer
}

// NewWizard creates a wizard pre-filled with the configured export settings.
func NewWizard(cfg config.ExportConfig, out io.Writer) *Wizard {
	if out == nil {
		out = os.Stdout
	}
	return &Wizard{
		defaults: WizardResult{Dir: cfg.Dir, Formats: append([]string(nil), cfg.Formats...)},
		out:      out,
	}
}

// isTerminal checks if stdin is connected to a terminal
func isTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// newForm creates a form with appropriate settings based on TTY detection
func newForm(groups ...*huh.Group) *huh.Form {
	form := huh.NewForm(groups...).WithTheme(huh.ThemeDracula())
	if !isTerminal() {
		form = form.WithAccessible(true)
	}
	return form
}

// formatOptions lists the selectable formats with the defaults pre-selected.
func formatOptions(selected []string) []huh.Option[string] {
	labels := map[string]string{
		config.FormatMarkdown: "Markdown report (" + MarkdownFile + ")",
		config.FormatSVG:      "Chart as SVG (" + SVGFile + ")",
		config.FormatPNG:      "Chart as PNG (" + PNGFile + ")",
		config.FormatSQLite:   "SQLite database (" + SQLiteFile + ")",
	}
	on := make(map[string]bool, len(selected))
	for _, f := range selected {
		on[f] = true
	}
	opts := make([]huh.Option[string], 0, len(config.AllFormats))
	for _, f := range config.AllFormats {
		opts = append(opts, huh.NewOption(labels[f], f).Selected(on[f]))
	}
	return opts
}

// Run shows the form and returns the validated choices.
func (w *Wizard) Run() (WizardResult, error) {
	fmt.Fprintln(w.out, "Export dashboard")
	fmt.Fprintln(w.out, "────────────────")

	result := WizardResult{Dir: w.defaults.Dir}
	form := newForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Artifacts").
				Description("Space to toggle, enter to confirm").
				Options(formatOptions(w.defaults.Formats)...).
				Value(&result.Formats).
				Validate(func(v []string) error {
					if len(v) == 0 {
						return fmt.Errorf("select at least one format")
					}
					return nil
				}),
			huh.NewInput().
				Title("Output directory").
				Value(&result.Dir).
				Placeholder(w.defaults.Dir),
		),
	)

	if err := form.Run(); err != nil {
		return WizardResult{}, err
	}
	return w.finish(result)
}

// finish fills empty answers from the defaults and normalizes formats.
func (w *Wizard) finish(result WizardResult) (WizardResult, error) {
	result.Dir = strings.TrimSpace(result.Dir)
	if result.Dir == "" {
		result.Dir = w.defaults.Dir
	}
	if len(result.Formats) == 0 {
		result.Formats = w.defaults.Formats
	}
	formats, err := config.ParseFormats(result.Formats)
	if err != nil {
		return WizardResult{}, err
	}
	result.Formats = formats
	fmt.Fprintln(w.out, "")
	return result, nil
}

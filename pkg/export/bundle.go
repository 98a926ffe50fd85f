package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/vanderheijden86/feedlens/internal/datasource"
	"github.com/vanderheijden86/feedlens/pkg/config"
	"github.com/vanderheijden86/feedlens/pkg/debug"
	"github.com/vanderheijden86/feedlens/pkg/metrics"

	"golang.org/x/sync/errgroup"
)

// Artifact file names inside the bundle directory.
const (
	MarkdownFile = "report.md"
	SVGFile      = "categories.svg"
	PNGFile      = "categories.png"
	SQLiteFile   = "feedback.sqlite3"
)

// ArtifactName returns the bundle file name for format.
func ArtifactName(format string) (string, error) {
	switch format {
	case config.FormatMarkdown:
		return MarkdownFile, nil
	case config.FormatSVG:
		return SVGFile, nil
	case config.FormatPNG:
		return PNGFile, nil
	case config.FormatSQLite:
		return SQLiteFile, nil
	}
	return "", fmt.Errorf("unsupported export format %q", format)
}

// WriteBundle writes one artifact per format into dir concurrently and
// returns the written paths in format order. Chart artifacts are left out
// when the report has no rows. Formats are normalized with
// config.ParseFormats. A dataset with a load error or no report is rejected.
func WriteBundle(ctx context.Context, ds datasource.Dataset, dir string, formats []string, opts Options) ([]string, error) {
	if ds.Err != nil {
		return nil, ds.Err
	}
	if ds.ReportMissing || ds.Table == nil {
		return nil, fmt.Errorf("nothing to export: %s", ds.Paths.Report)
	}
	formats, err := config.ParseFormats(formats)
	if err != nil {
		return nil, err
	}
	if len(formats) == 0 {
		return nil, fmt.Errorf("no export formats selected")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create export dir: %w", err)
	}

	start := time.Now()
	defer metrics.Timer(metrics.Export)()
	if opts.GeneratedAt.IsZero() {
		opts.GeneratedAt = start
	}

	paths := make([]string, 0, len(formats))
	g, ctx := errgroup.WithContext(ctx)
	for _, format := range formats {
		name, err := ArtifactName(format)
		if err != nil {
			return nil, err
		}
		if isChartFormat(format) && ds.Counts.Total() == 0 {
			debug.Log("export: no feedback rows, skipping %s chart", format)
			continue
		}
		path := filepath.Join(dir, name)
		paths = append(paths, path)

		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := writeArtifact(ds, format, path, opts); err != nil {
				return fmt.Errorf("export %s: %w", format, err)
			}
			debug.Log("export: wrote %s", path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	debug.LogTiming("export.WriteBundle", time.Since(start))
	return paths, nil
}

func isChartFormat(format string) bool {
	return format == config.FormatSVG || format == config.FormatPNG
}

func writeArtifact(ds datasource.Dataset, format, path string, opts Options) error {
	switch format {
	case config.FormatMarkdown:
		return os.WriteFile(path, []byte(RenderMarkdown(ds, opts)), 0o644)
	case config.FormatSVG, config.FormatPNG:
		return SaveChartSnapshot(ChartOptions{Path: path, Format: format, Counts: ds.Counts})
	case config.FormatSQLite:
		return NewSQLiteExporter(ds).Export(path)
	}
	return fmt.Errorf("unsupported export format %q", format)
}

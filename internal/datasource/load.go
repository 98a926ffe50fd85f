// Package datasource assembles the dashboard's input snapshot from the
// report and summary files.
package datasource

import (
	"errors"
	"time"

	"github.com/vanderheijden86/feedlens/pkg/analysis"
	"github.com/vanderheijden86/feedlens/pkg/debug"
	"github.com/vanderheijden86/feedlens/pkg/loader"
	"github.com/vanderheijden86/feedlens/pkg/metrics"
	"github.com/vanderheijden86/feedlens/pkg/model"
)

// Paths names the two input files.
type Paths struct {
	Report    string
	Summaries string
}

// Dataset is one loaded snapshot of the inputs plus its derived counts.
type Dataset struct {
	Paths     Paths
	Table     *model.FeedbackTable // nil when the report is missing or malformed
	Summaries model.SummaryStore   // never nil
	Counts    analysis.Counts

	// ReportMissing is set when the report file does not exist.
	ReportMissing bool
	// Err holds a load or parse failure of either file.
	Err error

	LoadedAt time.Time
}

// HasData reports whether the data section can be rendered.
func (d Dataset) HasData() bool {
	return d.Table != nil && d.Err == nil
}

// Load reads both files. A missing report or summary file is not an error;
// malformed content of either file is reported through Dataset.Err.
func Load(paths Paths) Dataset {
	start := time.Now()
	ds := Dataset{Paths: paths, Summaries: model.SummaryStore{}, LoadedAt: start}

	stop := metrics.Timer(metrics.SummaryLoad)
	summaries, err := loader.LoadSummaries(paths.Summaries)
	stop()
	if err != nil {
		ds.Err = err
	} else {
		ds.Summaries = summaries
	}

	stop = metrics.Timer(metrics.ReportLoad)
	table, err := loader.LoadReport(paths.Report)
	stop()
	switch {
	case errors.Is(err, loader.ErrReportNotFound):
		ds.ReportMissing = true
	case err != nil:
		if ds.Err == nil {
			ds.Err = err
		} else {
			ds.Err = errors.Join(ds.Err, err)
		}
	default:
		ds.Table = table
		ds.Counts = analysis.CountByCategory(table)
	}

	debug.Log("datasource: report=%s rows=%d missing=%v summaries=%d err=%v",
		paths.Report, ds.Table.Len(), ds.ReportMissing, len(ds.Summaries), ds.Err)
	debug.LogTiming("datasource.Load", time.Since(start))
	return ds
}

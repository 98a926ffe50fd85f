package export

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/vanderheijden86/feedlens/internal/datasource"
	"github.com/vanderheijden86/feedlens/pkg/model"
	"github.com/vanderheijden86/feedlens/pkg/testutil"
)

var longSummary = strings.Repeat("Quick wins around onboarding copy. ", 10)

// scenarioDataset loads the shared three-row report plus one summary.
func scenarioDataset(t *testing.T) datasource.Dataset {
	t.Helper()
	dir := t.TempDir()
	ds := datasource.Load(datasource.Paths{
		Report: testutil.WriteReport(t, dir, testutil.ScenarioRows()),
		Summaries: testutil.WriteSummaries(t, dir, map[string]string{
			model.GroupLowHangingFruits: longSummary,
		}),
	})
	if !ds.HasData() {
		t.Fatalf("scenario dataset failed to load: %v", ds.Err)
	}
	return ds
}

func missingDataset(t *testing.T) datasource.Dataset {
	t.Helper()
	dir := t.TempDir()
	return datasource.Load(datasource.Paths{
		Report:    filepath.Join(dir, "final_comprehensive_report.csv"),
		Summaries: filepath.Join(dir, "dashboard_summaries.json"),
	})
}

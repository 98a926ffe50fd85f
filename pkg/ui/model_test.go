package ui

import (
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vanderheijden86/feedlens/internal/datasource"
	"github.com/vanderheijden86/feedlens/pkg/model"
	"github.com/vanderheijden86/feedlens/pkg/testutil"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var scenarioSummaries = map[string]string{
	model.GroupLowHangingFruits: strings.Repeat("Fix the onboarding copy. ", 10),
}

func TestModel_DataSections(t *testing.T) {
	m, _ := newTestModel(t, testutil.ScenarioRows(), scenarioSummaries)
	body := m.Body()

	for _, want := range []string{
		"Low-Hanging Fruits", "Nice-to-Have", "No Business Impact", ReadMoreLabel,
		"Struggle/Confusion", "Feature Requests", "Negative Feedback", "Positive Feedback",
		model.ChartTitle, model.ChartLegend,
		model.TopItemsHeading,
		"Top Feature Request", "1. need dark mode", "2. need export",
		"Top Struggle / Confusion", "No feedback found for 'Struggle / Confusion'.",
		"Top Negative Feedback", "1. slow load",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q", want)
		}
	}
	if !strings.Contains(m.View(), model.DashboardTitle) {
		t.Error("view missing dashboard title")
	}
}

func TestModel_NarrowLayoutStacks(t *testing.T) {
	m, _ := newTestModel(t, testutil.ScenarioRows(), scenarioSummaries)
	m = sized(m, 80, 40)

	body := m.Body()
	for _, want := range []string{"Low-Hanging Fruits", model.ChartTitle, "Top Negative Feedback"} {
		if !strings.Contains(body, want) {
			t.Errorf("narrow body missing %q", want)
		}
	}
	if strings.Index(body, "Top Feature Request") > strings.Index(body, "Top Negative Feedback") {
		t.Error("stacked columns should keep their order")
	}
}

func TestModel_ReportMissing(t *testing.T) {
	dir := t.TempDir()
	paths := datasource.Paths{
		Report:    filepath.Join(dir, "final_comprehensive_report.csv"),
		Summaries: testutil.WriteSummaries(t, dir, scenarioSummaries),
	}
	m := sized(NewModel(datasource.Load(paths), Options{Renderer: lipgloss.NewRenderer(io.Discard)}), 200, 40)
	body := m.Body()

	if !strings.Contains(body, model.ReportMissingWarning(paths.Report)) {
		t.Errorf("expected missing report warning:\n%s", body)
	}
	if !strings.Contains(body, model.RerunHint) {
		t.Error("expected rerun hint")
	}
	for _, absent := range []string{"Low-Hanging Fruits", "Feature Requests", model.ChartTitle, model.TopItemsHeading} {
		if strings.Contains(body, absent) {
			t.Errorf("missing report should not render %q", absent)
		}
	}

	// Panel keys are inert without data.
	m = press(t, m, runeKey("1"))
	if m.Summaries().Expanded(model.GroupLowHangingFruits) {
		t.Error("toggle should be ignored without data")
	}
}

func TestModel_ParseErrorBanner(t *testing.T) {
	dir := t.TempDir()
	paths := datasource.Paths{
		Report:    testutil.WriteReport(t, dir, testutil.ScenarioRows()),
		Summaries: testutil.WriteFile(t, dir, "dashboard_summaries.json", []byte(`{"nice_to_have": 42}`)),
	}
	m := sized(NewModel(datasource.Load(paths), Options{Renderer: lipgloss.NewRenderer(io.Discard)}), 200, 40)

	if m.Dataset().Err == nil {
		t.Fatal("expected a load error")
	}
	body := m.Body()
	if !strings.Contains(body, "Could not load dashboard data") {
		t.Errorf("expected error banner:\n%s", body)
	}
	if strings.Contains(body, model.TopItemsHeading) {
		t.Error("error should replace the data section")
	}
}

func TestModel_ToggleKeys(t *testing.T) {
	m, _ := newTestModel(t, testutil.ScenarioRows(), scenarioSummaries)

	m = press(t, m, runeKey("1"))
	if !m.Summaries().Expanded(model.GroupLowHangingFruits) {
		t.Fatal("1 should expand the first summary")
	}
	if got := m.Summaries().Body(model.GroupLowHangingFruits); got != scenarioSummaries[model.GroupLowHangingFruits] {
		t.Error("expanded summary should show the full text")
	}
	if !strings.Contains(m.Body(), ReadLessLabel) {
		t.Error("expanded summary should offer Read Less")
	}

	m = press(t, m, runeKey("1"))
	if m.Summaries().Expanded(model.GroupLowHangingFruits) {
		t.Error("second press should collapse it again")
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab}, tea.KeyMsg{Type: tea.KeyTab}, tea.KeyMsg{Type: tea.KeyEnter})
	if !m.Summaries().Expanded(model.GroupNoBusinessImpact) {
		t.Error("tab tab enter should expand the third summary")
	}
	if m.Summaries().Expanded(model.GroupNiceToHave) {
		t.Error("second summary should stay collapsed")
	}
}

func TestModel_ItemNavigation(t *testing.T) {
	m, _ := newTestModel(t, testutil.ScenarioRows(), scenarioSummaries)
	m = press(t, m, runeKey("l"), tea.KeyMsg{Type: tea.KeyRight})

	sel, ok := m.TopItems().Selected()
	if !ok || sel.UserProblem != "slow load" {
		t.Errorf("selection = %+v", sel)
	}
	m = press(t, m, runeKey("h"))
	if sel, _ = m.TopItems().Selected(); sel.UserProblem != "need export" {
		t.Errorf("selection after h = %q", sel.UserProblem)
	}
}

func TestModel_ReloadKeepsExpansion(t *testing.T) {
	m, paths := newTestModel(t, testutil.ScenarioRows(), scenarioSummaries)
	m = press(t, m, runeKey("2"))

	dir := filepath.Dir(paths.Summaries)
	testutil.WriteSummaries(t, dir, map[string]string{model.GroupNiceToHave: "fresh text"})
	testutil.WriteReport(t, dir, append(testutil.ScenarioRows(), model.FeedbackRow{Category: model.CategoryStruggle, UserProblem: "lost in settings"}))

	updated, cmd := m.Update(FileChangedMsg{})
	m = updated.(Model)
	if cmd != nil {
		t.Error("no watcher means no follow-up watch command")
	}
	if got := m.Summaries().Body(model.GroupNiceToHave); got != "fresh text" {
		t.Errorf("expanded summary after reload = %q", got)
	}
	if !strings.Contains(m.Body(), "1. lost in settings") {
		t.Error("reload should pick up new report rows")
	}
	if msg, isErr := m.Status(); isErr || msg == "" {
		t.Errorf("status = %q (error=%v)", msg, isErr)
	}
}

func TestModel_ReloadToBrokenFile(t *testing.T) {
	m, paths := newTestModel(t, testutil.ScenarioRows(), scenarioSummaries)
	testutil.WriteFile(t, filepath.Dir(paths.Report), filepath.Base(paths.Report), []byte("category,other\nx,y\n"))

	m = press(t, m, runeKey("r"))
	if _, isErr := m.Status(); !isErr {
		t.Error("expected error status after reloading a broken report")
	}
	if !strings.Contains(m.Body(), "Could not load dashboard data") {
		t.Error("expected error banner after reload")
	}
}

func TestModel_Export(t *testing.T) {
	m, _ := newTestModel(t, testutil.ScenarioRows(), scenarioSummaries)

	updated, cmd := m.Update(runeKey("e"))
	m = updated.(Model)
	if cmd == nil {
		t.Fatal("export should return a command")
	}
	if _, cmd := m.Update(runeKey("e")); cmd != nil {
		t.Error("second export while one is running should be ignored")
	}

	updated, _ = m.Update(ExportDoneMsg{Dir: "out", Paths: []string{"out/report.md", "out/categories.svg"}})
	m = updated.(Model)
	if msg, isErr := m.Status(); isErr || msg != "Exported 2 file(s) to out" {
		t.Errorf("status = %q (error=%v)", msg, isErr)
	}

	updated, _ = m.Update(ExportDoneMsg{Dir: "out", Err: errors.New("disk full")})
	m = updated.(Model)
	if msg, isErr := m.Status(); !isErr || !strings.Contains(msg, "disk full") {
		t.Errorf("status = %q (error=%v)", msg, isErr)
	}
}

func TestModel_ExportWithoutData(t *testing.T) {
	dir := t.TempDir()
	paths := datasource.Paths{Report: filepath.Join(dir, "none.csv"), Summaries: filepath.Join(dir, "none.json")}
	m := NewModel(datasource.Load(paths), Options{Renderer: lipgloss.NewRenderer(io.Discard)})

	updated, cmd := m.Update(runeKey("e"))
	if cmd != nil {
		t.Error("nothing to export should not start a command")
	}
	if msg, isErr := updated.(Model).Status(); !isErr || msg != "Nothing to export" {
		t.Errorf("status = %q", msg)
	}
}

func TestModel_QuitAndHelp(t *testing.T) {
	m, _ := newTestModel(t, testutil.ScenarioRows(), scenarioSummaries)

	if m.Init() != nil {
		t.Error("Init without a watcher should return nil")
	}

	m = press(t, m, runeKey("?"))
	if !strings.Contains(m.View(), "toggle summaries") {
		t.Error("help line should be shown after ?")
	}

	_, cmd := m.Update(runeKey("q"))
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

package loader

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/vanderheijden86/feedlens/pkg/model"

	json "github.com/goccy/go-json"
)

// Default file names written by the analysis notebook.
const (
	DefaultReportPath    = "final_comprehensive_report.csv"
	DefaultSummariesPath = "dashboard_summaries.json"
)

// LoadReport reads the classified feedback report at path.
// A missing file yields an error wrapping ErrReportNotFound.
func LoadReport(path string) (*model.FeedbackTable, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrReportNotFound, path)
		}
		return nil, fmt.Errorf("failed to open report file: %w", err)
	}
	defer file.Close()

	table, err := ParseReport(file)
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			pe.Path = path
			return nil, pe
		}
		return nil, err
	}
	return table, nil
}

// ParseReport parses CSV report content. The header row must contain the
// category and user_problem columns; other columns are ignored.
func ParseReport(r io.Reader) (*model.FeedbackTable, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read report: %w", err)
	}
	data = stripBOM(data)

	cr := csv.NewReader(bytes.NewReader(data))
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &ParseError{Err: errors.New("report is empty")}
		}
		return nil, csvParseError(err)
	}

	categoryIdx, problemIdx := -1, -1
	for i, name := range header {
		switch strings.TrimSpace(name) {
		case model.ColumnCategory:
			if categoryIdx < 0 {
				categoryIdx = i
			}
		case model.ColumnUserProblem:
			if problemIdx < 0 {
				problemIdx = i
			}
		}
	}
	var missing []string
	if categoryIdx < 0 {
		missing = append(missing, model.ColumnCategory)
	}
	if problemIdx < 0 {
		missing = append(missing, model.ColumnUserProblem)
	}
	if len(missing) > 0 {
		return nil, &ParseError{Line: 1, Err: fmt.Errorf("missing required column(s): %s", strings.Join(missing, ", "))}
	}

	rows := make([]model.FeedbackRow, 0, estimateRows(len(data)))
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, csvParseError(err)
		}
		rows = append(rows, model.FeedbackRow{
			Category:    record[categoryIdx],
			UserProblem: record[problemIdx],
		})
	}

	return model.NewFeedbackTable(rows...), nil
}

// LoadSummaries reads the summary store at path. A missing file yields an
// empty store and no error; malformed content yields a *ParseError.
func LoadSummaries(path string) (model.SummaryStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.SummaryStore{}, nil
		}
		return nil, fmt.Errorf("failed to read summaries file: %w", err)
	}

	store, err := ParseSummaries(data)
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			pe.Path = path
		}
		return nil, err
	}
	return store, nil
}

// ParseSummaries decodes a flat JSON object of string values.
func ParseSummaries(data []byte) (model.SummaryStore, error) {
	data = bytes.TrimSpace(stripBOM(data))
	if len(data) == 0 {
		return nil, &ParseError{Err: errors.New("summaries file is empty")}
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &ParseError{Err: fmt.Errorf("expected a JSON object of strings: %w", err)}
	}
	if raw == nil {
		return nil, &ParseError{Err: errors.New("expected a JSON object of strings, got null")}
	}

	store := make(model.SummaryStore, len(raw))
	for key, value := range raw {
		var text string
		if err := json.Unmarshal(value, &text); err != nil || jsonKind(value) == "null" {
			return nil, &ParseError{Key: key, Err: fmt.Errorf("value must be a string, got %s", jsonKind(value))}
		}
		store[key] = text
	}
	return store, nil
}

func csvParseError(err error) error {
	var perr *csv.ParseError
	if errors.As(err, &perr) {
		return &ParseError{Line: perr.Line, Err: perr.Err}
	}
	return &ParseError{Err: err}
}

// estimateRows guesses a row capacity from the file size (~200 bytes per row).
func estimateRows(size int) int {
	const avgRowBytes = 200
	const maxCap = 100_000
	n := size / avgRowBytes
	if n > maxCap {
		return maxCap
	}
	return n
}

func jsonKind(value json.RawMessage) string {
	v := bytes.TrimSpace(value)
	if len(v) == 0 {
		return "nothing"
	}
	switch v[0] {
	case '{':
		return "object"
	case '[':
		return "array"
	case 't', 'f':
		return "boolean"
	case 'n':
		return "null"
	default:
		return "number"
	}
}

// stripBOM removes the UTF-8 Byte Order Mark if present
func stripBOM(b []byte) []byte {
	if bytes.HasPrefix(b, []byte{0xEF, 0xBB, 0xBF}) {
		return b[3:]
	}
	return b
}

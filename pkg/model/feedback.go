// Package model defines the feedback report types shared by the loader,
// the aggregator, the dashboard and the exporters.
package model

// Category is one of the labels assigned to a feedback item by the upstream
// classifier. The label set is open; unknown labels are kept as-is.
type Category = string

// Known categories produced by the classifier.
const (
	CategoryFeatureRequest   Category = "Feature Request"
	CategoryStruggle         Category = "Struggle / Confusion"
	CategoryNegativeFeedback Category = "Negative Feedback"
	CategoryPositiveFeedback Category = "Positive Feedback"
)

// Column names required in the report file.
const (
	ColumnCategory    = "category"
	ColumnUserProblem = "user_problem"
)

// FeedbackRow is one classified feedback item.
type FeedbackRow struct {
	Category    string `json:"category"`
	UserProblem string `json:"user_problem"`
}

// FeedbackTable holds the rows of a report in file order.
type FeedbackTable struct {
	Rows []FeedbackRow `json:"rows"`
}

// NewFeedbackTable wraps rows in a table.
func NewFeedbackTable(rows ...FeedbackRow) *FeedbackTable {
	if rows == nil {
		rows = []FeedbackRow{}
	}
	return &FeedbackTable{Rows: rows}
}

// Len returns the number of rows. A nil table has no rows.
func (t *FeedbackTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Metric is a labeled counter shown in the metrics panel.
type Metric struct {
	Label    string
	Category Category
}

// Metrics lists the dashboard counters in display order.
var Metrics = []Metric{
	{Label: "Struggle/Confusion", Category: CategoryStruggle},
	{Label: "Feature Requests", Category: CategoryFeatureRequest},
	{Label: "Negative Feedback", Category: CategoryNegativeFeedback},
	{Label: "Positive Feedback", Category: CategoryPositiveFeedback},
}

// TopItemCategories are the categories shown in the top feedback columns, left to right.
var TopItemCategories = []Category{
	CategoryFeatureRequest,
	CategoryStruggle,
	CategoryNegativeFeedback,
}

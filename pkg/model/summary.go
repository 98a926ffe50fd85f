package model

// SummaryPlaceholder is shown for a summary group with no generated text.
const SummaryPlaceholder = "AI summary not generated. Please run the main analysis notebook."

// Summary group keys as written by the analysis notebook.
const (
	GroupLowHangingFruits = "low_hanging_fruits"
	GroupNiceToHave       = "nice_to_have"
	GroupNoBusinessImpact = "no_business_impact"
)

// SummaryGroup pairs a summary key with its panel title.
type SummaryGroup struct {
	Key   string
	Title string
}

// SummaryGroups lists the summary panels in display order.
var SummaryGroups = []SummaryGroup{
	{Key: GroupLowHangingFruits, Title: "Low-Hanging Fruits"},
	{Key: GroupNiceToHave, Title: "Nice-to-Have"},
	{Key: GroupNoBusinessImpact, Title: "No Business Impact"},
}

// SummaryStore maps a summary group key to its generated text.
type SummaryStore map[string]string

// Text returns the summary for key, or SummaryPlaceholder when none exists.
func (s SummaryStore) Text(key string) string {
	if text, ok := s[key]; ok {
		return text
	}
	return SummaryPlaceholder
}

// Has reports whether a summary was generated for key.
func (s SummaryStore) Has(key string) bool {
	_, ok := s[key]
	return ok
}

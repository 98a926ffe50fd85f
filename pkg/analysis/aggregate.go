// Package analysis derives the dashboard aggregates from a feedback table.
package analysis

import (
	"sort"

	"github.com/vanderheijden86/feedlens/pkg/model"

	"gonum.org/v1/gonum/floats"
)

// Counts maps a category to the number of rows carrying it.
// Categories that never appeared resolve to zero.
type Counts struct {
	byCategory map[string]int
	order      []string // first-appearance order
	total      int
}

// CategoryCount is one entry of an ordered count listing.
type CategoryCount struct {
	Category string
	Count    int
}

// CountByCategory counts rows per category. A nil table yields empty counts.
func CountByCategory(table *model.FeedbackTable) Counts {
	c := Counts{byCategory: make(map[string]int)}
	if table == nil {
		return c
	}
	for _, row := range table.Rows {
		if _, seen := c.byCategory[row.Category]; !seen {
			c.order = append(c.order, row.Category)
		}
		c.byCategory[row.Category]++
		c.total++
	}
	return c
}

// Get returns the count for category, 0 when absent.
func (c Counts) Get(category string) int {
	return c.byCategory[category]
}

// Total returns the number of counted rows.
func (c Counts) Total() int {
	return c.total
}

// Len returns the number of distinct categories.
func (c Counts) Len() int {
	return len(c.order)
}

// Map returns a copy of the counts keyed by category.
func (c Counts) Map() map[string]int {
	out := make(map[string]int, len(c.byCategory))
	for k, v := range c.byCategory {
		out[k] = v
	}
	return out
}

// Ordered lists categories by count descending; ties keep first-appearance order.
func (c Counts) Ordered() []CategoryCount {
	out := make([]CategoryCount, 0, len(c.order))
	for _, cat := range c.order {
		out = append(out, CategoryCount{Category: cat, Count: c.byCategory[cat]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	return out
}

// TopN returns up to n rows whose category equals category, in table order.
// The result is never nil.
func TopN(table *model.FeedbackTable, category string, n int) []model.FeedbackRow {
	out := []model.FeedbackRow{}
	if table == nil || n <= 0 {
		return out
	}
	for _, row := range table.Rows {
		if row.Category != category {
			continue
		}
		out = append(out, row)
		if len(out) == n {
			break
		}
	}
	return out
}

// Share is a category's slice of the whole.
type Share struct {
	Category string
	Count    int
	Fraction float64
}

// Shares converts counts into fractions of the total, in Ordered order.
// Fractions sum to 1 unless there are no rows.
func Shares(c Counts) []Share {
	ordered := c.Ordered()
	if len(ordered) == 0 {
		return nil
	}
	values := make([]float64, len(ordered))
	for i, cc := range ordered {
		values[i] = float64(cc.Count)
	}
	if sum := floats.Sum(values); sum > 0 {
		floats.Scale(1/sum, values)
	}

	out := make([]Share, len(ordered))
	for i, cc := range ordered {
		out[i] = Share{Category: cc.Category, Count: cc.Count, Fraction: values[i]}
	}
	return out
}

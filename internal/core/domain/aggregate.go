package domain

import (
	"fmt"
	"sort"
	"strings"
)

// FormCount pairs a surface form with its occurrence count.
type FormCount struct {
	// Form is the surface form as it appears in the text.
	Form string

	// Count is how many times this form occurs for the root.
	Count int
}

// RootAggregate holds the frequency totals for one normalised root,
// built incrementally during a single pass and finalised when the scan
// completes. Invariant: the per-form counts sum to Count.
type RootAggregate struct {
	// Root is the canonical (Buckwalter) form of the root.
	Root string

	// Count is the total number of occurrences.
	Count int

	// Forms lists each surface form with its own count, ordered by
	// count descending then form ascending.
	Forms []FormCount
}

// FormsColumn renders the forms as semicolon-joined "form(count)" pairs,
// the format of the extractor's CSV forms column.
func (a RootAggregate) FormsColumn() string {
	parts := make([]string, len(a.Forms))
	for i, fc := range a.Forms {
		parts[i] = fmt.Sprintf("%s(%d)", fc.Form, fc.Count)
	}
	return strings.Join(parts, ";")
}

// SortAggregates orders aggregates by count descending, ties broken by
// canonical root ascending. Each aggregate's form list is ordered the same
// way: count descending, then form ascending.
func SortAggregates(aggs []RootAggregate) {
	for i := range aggs {
		forms := aggs[i].Forms
		sort.Slice(forms, func(a, b int) bool {
			if forms[a].Count != forms[b].Count {
				return forms[a].Count > forms[b].Count
			}
			return forms[a].Form < forms[b].Form
		})
	}
	sort.Slice(aggs, func(a, b int) bool {
		if aggs[a].Count != aggs[b].Count {
			return aggs[a].Count > aggs[b].Count
		}
		return aggs[a].Root < aggs[b].Root
	})
}

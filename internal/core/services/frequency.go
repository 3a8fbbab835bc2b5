package services

import (
	"context"
	"fmt"

	"github.com/qamus-labs/rootscan-cli/internal/buckwalter"
	"github.com/qamus-labs/rootscan-cli/internal/core/domain"
	"github.com/qamus-labs/rootscan-cli/internal/core/ports/driven"
	"github.com/qamus-labs/rootscan-cli/internal/core/ports/driving"
	"github.com/qamus-labs/rootscan-cli/internal/logger"
)

// Ensure FrequencyService implements the interface.
var _ driving.FrequencyService = (*FrequencyService)(nil)

// FrequencyService aggregates root occurrences in one pass over the
// morphology table.
type FrequencyService struct {
	source driven.MorphologySource
}

// NewFrequencyService creates a new frequency service.
func NewFrequencyService(source driven.MorphologySource) *FrequencyService {
	return &FrequencyService{source: source}
}

// rootTally is the mutable accumulator behind one RootAggregate.
type rootTally struct {
	count int
	forms map[string]int
}

// Extract scans the morphology table once and aggregates occurrence
// counts by normalised root. Records without a usable root are excluded
// from the aggregates but surface in the summary's skip counts.
func (s *FrequencyService) Extract(ctx context.Context) ([]domain.RootAggregate, domain.ScanSummary, error) {
	logger.Section("Root Frequency Extraction")

	tallies := make(map[string]*rootTally)
	unusable := 0
	summary, err := s.source.Scan(ctx, func(rec domain.MorphRecord) error {
		if !rec.HasRoot() {
			return nil // already counted by the source
		}
		root := buckwalter.Normalise(rec.Root)
		if root == "" {
			// a root field of nothing but diacritics or whitespace
			unusable++
			return nil
		}
		t, ok := tallies[root]
		if !ok {
			t = &rootTally{forms: make(map[string]int)}
			tallies[root] = t
		}
		t.count++
		// An empty surface field still tallies as a form, so the
		// per-form counts always sum to the total.
		t.forms[rec.Surface]++
		return nil
	})
	summary.SkippedNoRoot += unusable
	if err != nil {
		return nil, summary, fmt.Errorf("extracting roots: %w", err)
	}

	aggs := make([]domain.RootAggregate, 0, len(tallies))
	for root, t := range tallies {
		forms := make([]domain.FormCount, 0, len(t.forms))
		for form, n := range t.forms {
			forms = append(forms, domain.FormCount{Form: form, Count: n})
		}
		aggs = append(aggs, domain.RootAggregate{Root: root, Count: t.count, Forms: forms})
	}
	domain.SortAggregates(aggs)

	logger.Info("%d distinct roots across %d records", len(aggs), summary.Records)
	if summary.Skipped() > 0 {
		logger.Warn("%d rows excluded from aggregation (%d without root, %d malformed)",
			summary.Skipped(), summary.SkippedNoRoot, summary.SkippedMalformed)
	}

	return aggs, summary, nil
}

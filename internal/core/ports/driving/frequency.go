package driving

import (
	"context"

	"github.com/qamus-labs/rootscan-cli/internal/core/domain"
)

// FrequencyService produces root frequency statistics from the corpus.
type FrequencyService interface {
	// Extract runs one pass over the morphology table and returns every
	// root aggregate, ordered by count descending with ties broken by
	// canonical root ascending, together with the scan diagnostics.
	Extract(ctx context.Context) ([]domain.RootAggregate, domain.ScanSummary, error)
}

package mcp

import (
	"context"

	"github.com/qamus-labs/rootscan-cli/internal/core/domain"
	"github.com/qamus-labs/rootscan-cli/internal/core/ports/driving"
)

// Ensure mocks implement the interfaces.
var (
	_ driving.LocatorService   = (*mockLocatorService)(nil)
	_ driving.FrequencyService = (*mockFrequencyService)(nil)
)

// mockLocatorService implements driving.LocatorService for testing.
type mockLocatorService struct {
	matches []domain.VerseMatch
	err     error
	queries []string
}

func (m *mockLocatorService) Locate(_ context.Context, root string) ([]domain.VerseMatch, error) {
	m.queries = append(m.queries, root)
	if m.err != nil {
		return nil, m.err
	}
	return m.matches, nil
}

// mockFrequencyService implements driving.FrequencyService for testing.
type mockFrequencyService struct {
	aggregates []domain.RootAggregate
	summary    domain.ScanSummary
	err        error
}

func (m *mockFrequencyService) Extract(_ context.Context) ([]domain.RootAggregate, domain.ScanSummary, error) {
	if m.err != nil {
		return nil, domain.ScanSummary{}, m.err
	}
	return m.aggregates, m.summary, nil
}

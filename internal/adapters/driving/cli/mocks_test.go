package cli

import (
	"context"
	"strings"

	"github.com/qamus-labs/rootscan-cli/internal/core/domain"
	"github.com/qamus-labs/rootscan-cli/internal/core/ports/driven"
	"github.com/qamus-labs/rootscan-cli/internal/core/ports/driving"
)

// Ensure mocks implement the interfaces.
var (
	_ driving.FrequencyService = (*mockFrequencyService)(nil)
	_ driving.LocatorService   = (*mockLocatorService)(nil)
	_ driving.AnnotatorService = (*mockAnnotatorService)(nil)
	_ driven.ConfigStore       = (*mockConfigStore)(nil)
)

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

// mockLocatorService implements driving.LocatorService for testing.
type mockLocatorService struct {
	matches map[string][]domain.VerseMatch
	err     error
}

func (m *mockLocatorService) Locate(_ context.Context, root string) ([]domain.VerseMatch, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.matches[strings.TrimSpace(root)], nil
}

// mockAnnotatorService implements driving.AnnotatorService for testing.
type mockAnnotatorService struct {
	summary     driving.AnnotateSummary
	annotations []domain.Annotation
	err         error
	gotRoots    []string
}

func (m *mockAnnotatorService) Annotate(_ context.Context, roots []string) (driving.AnnotateSummary, error) {
	m.gotRoots = roots
	if m.err != nil {
		return driving.AnnotateSummary{}, m.err
	}
	return m.summary, nil
}

func (m *mockAnnotatorService) Export(_ context.Context) ([]domain.Annotation, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.annotations, nil
}

// mockConfigStore implements driven.ConfigStore backed by a plain map.
type mockConfigStore struct {
	values map[string]any
}

func newMockConfigStore() *mockConfigStore {
	return &mockConfigStore{values: make(map[string]any)}
}

func (m *mockConfigStore) Get(key string) (any, bool) {
	val, ok := m.values[key]
	return val, ok
}

func (m *mockConfigStore) GetString(key string) string {
	if s, ok := m.values[key].(string); ok {
		return s
	}
	return ""
}

func (m *mockConfigStore) GetInt(key string) int {
	switch v := m.values[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	}
	return 0
}

func (m *mockConfigStore) GetFloat(key string) float64 {
	switch v := m.values[key].(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	case int:
		return float64(v)
	}
	return 0
}

func (m *mockConfigStore) GetBool(key string) bool {
	if b, ok := m.values[key].(bool); ok {
		return b
	}
	return false
}

func (m *mockConfigStore) Set(key string, value any) error {
	m.values[key] = value
	return nil
}

func (m *mockConfigStore) Save() error { return nil }
func (m *mockConfigStore) Load() error { return nil }
func (m *mockConfigStore) Path() string {
	return "/tmp/rootscan-test-config.toml"
}

package services

import (
	"context"
	"fmt"

	"github.com/qamus-labs/rootscan-cli/internal/core/domain"
	"github.com/qamus-labs/rootscan-cli/internal/core/ports/driven"
)

// --- Mock implementations ---

// mockMorphologySource implements driven.MorphologySource for testing.
type mockMorphologySource struct {
	records []domain.MorphRecord
	summary domain.ScanSummary
	scanErr error
}

func (m *mockMorphologySource) Scan(
	ctx context.Context, fn func(domain.MorphRecord) error,
) (domain.ScanSummary, error) {
	if m.scanErr != nil {
		return m.summary, m.scanErr
	}
	summary := m.summary
	for _, rec := range m.records {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		summary.Records++
		if !rec.HasRoot() {
			summary.SkippedNoRoot++
		}
		if err := fn(rec); err != nil {
			return summary, err
		}
	}
	return summary, nil
}

// mockVerseStore implements driven.VerseStore for testing.
type mockVerseStore struct {
	verses map[[2]int]domain.Verse
}

func newMockVerseStore(verses ...domain.Verse) *mockVerseStore {
	m := &mockVerseStore{verses: make(map[[2]int]domain.Verse)}
	for _, v := range verses {
		m.verses[[2]int{v.Sura, v.Ayah}] = v
	}
	return m
}

func (m *mockVerseStore) Lookup(sura, ayah int) (domain.Verse, bool) {
	v, ok := m.verses[[2]int{sura, ayah}]
	return v, ok
}

func (m *mockVerseStore) Len() int {
	return len(m.verses)
}

// mockLLM implements driven.LLMService for testing.
// Replies are served in order; the last one repeats when exhausted.
// The first rateLimitedCalls calls fail with domain.ErrRateLimited.
type mockLLM struct {
	replies          []string
	generateErr      error
	rateLimitedCalls int
	calls            int
	prompts          []string
}

func (m *mockLLM) Generate(
	_ context.Context, prompt string, _ driven.GenerateOptions,
) (*driven.GenerateResult, error) {
	m.calls++
	m.prompts = append(m.prompts, prompt)
	if m.calls <= m.rateLimitedCalls {
		return nil, fmt.Errorf("model: %w", domain.ErrRateLimited)
	}
	if m.generateErr != nil {
		return nil, m.generateErr
	}
	idx := m.calls - 1
	if idx >= len(m.replies) {
		idx = len(m.replies) - 1
	}
	return &driven.GenerateResult{
		Content:          m.replies[idx],
		PromptTokens:     100,
		CompletionTokens: 200,
	}, nil
}

func (m *mockLLM) ModelName() string            { return "mock-model" }
func (m *mockLLM) Ping(_ context.Context) error { return nil }
func (m *mockLLM) Close() error                 { return nil }

// mockLocator implements driving.LocatorService for testing.
type mockLocator struct {
	matches map[string][]domain.VerseMatch
	err     error
}

func (m *mockLocator) Locate(_ context.Context, root string) ([]domain.VerseMatch, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.matches[root], nil
}

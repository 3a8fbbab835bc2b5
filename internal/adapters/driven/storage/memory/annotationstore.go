// Package memory provides in-memory store implementations, used by tests
// and as a fallback when no database path is configured.
package memory

import (
	"context"
	"sync"

	"github.com/qamus-labs/rootscan-cli/internal/core/domain"
	"github.com/qamus-labs/rootscan-cli/internal/core/ports/driven"
)

// Ensure AnnotationStore implements the interface.
var _ driven.AnnotationStore = (*AnnotationStore)(nil)

// AnnotationStore is an in-memory implementation of driven.AnnotationStore.
type AnnotationStore struct {
	mu          sync.RWMutex
	annotations []domain.Annotation
	byRoot      map[string]int
}

// NewAnnotationStore creates a new in-memory annotation store.
func NewAnnotationStore() *AnnotationStore {
	return &AnnotationStore{
		byRoot: make(map[string]int),
	}
}

// Save records one completed annotation. Saving the same root again
// replaces the earlier annotation.
func (s *AnnotationStore) Save(_ context.Context, a domain.Annotation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if idx, ok := s.byRoot[a.Root]; ok {
		s.annotations[idx] = a
		return nil
	}
	s.byRoot[a.Root] = len(s.annotations)
	s.annotations = append(s.annotations, a)
	return nil
}

// Processed returns the set of roots that already have annotations.
func (s *AnnotationStore) Processed(_ context.Context) (map[string]bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]bool, len(s.byRoot))
	for root := range s.byRoot {
		out[root] = true
	}
	return out, nil
}

// List returns all stored annotations in insertion order.
func (s *AnnotationStore) List(_ context.Context) ([]domain.Annotation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Annotation, len(s.annotations))
	copy(out, s.annotations)
	return out, nil
}

// Close releases resources. In-memory stores have none.
func (s *AnnotationStore) Close() error {
	return nil
}

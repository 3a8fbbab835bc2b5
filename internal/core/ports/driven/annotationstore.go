package driven

import (
	"context"

	"github.com/qamus-labs/rootscan-cli/internal/core/domain"
)

// AnnotationStore persists completed annotations so an interrupted bulk
// run can resume without re-asking the model about finished roots.
type AnnotationStore interface {
	// Save records one completed annotation.
	Save(ctx context.Context, a domain.Annotation) error

	// Processed returns the set of roots that already have annotations.
	Processed(ctx context.Context) (map[string]bool, error)

	// List returns all stored annotations in insertion order.
	List(ctx context.Context) ([]domain.Annotation, error)

	// Close releases resources.
	Close() error
}

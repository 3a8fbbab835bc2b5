package driving

import (
	"context"

	"github.com/qamus-labs/rootscan-cli/internal/core/domain"
)

// AnnotateSummary reports what one bulk annotation run did.
type AnnotateSummary struct {
	// Annotated is the number of roots analysed in this run.
	Annotated int

	// SkippedDone is the number of roots already present in the store.
	SkippedDone int

	// Refused is the number of roots whose final reply still looked
	// like a refusal; their raw replies are logged either way.
	Refused int
}

// AnnotatorService obtains semantic analyses for batches of roots.
type AnnotatorService interface {
	// Annotate processes the roots strictly sequentially: locate verses,
	// build the prompt, call the model, parse the reply and persist the
	// annotation. Already-annotated roots are skipped, which makes an
	// interrupted run resumable.
	Annotate(ctx context.Context, roots []string) (AnnotateSummary, error)

	// Export returns every stored annotation in insertion order.
	Export(ctx context.Context) ([]domain.Annotation, error)
}

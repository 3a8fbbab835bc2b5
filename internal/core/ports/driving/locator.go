package driving

import (
	"context"

	"github.com/qamus-labs/rootscan-cli/internal/core/domain"
)

// LocatorService finds every verse containing a given root.
type LocatorService interface {
	// Locate accepts a root in Arabic script or Buckwalter, scans the
	// morphology table for occurrences and joins each hit to its verse.
	// Matches come back ordered by verse reference ascending. A root
	// with no occurrences yields an empty slice and a nil error; a
	// reference that fails to resolve yields domain.ErrVerseUnresolved.
	Locate(ctx context.Context, root string) ([]domain.VerseMatch, error)
}

package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/qamus-labs/rootscan-cli/internal/buckwalter"
	"github.com/qamus-labs/rootscan-cli/internal/core/domain"
	"github.com/qamus-labs/rootscan-cli/internal/core/ports/driven"
	"github.com/qamus-labs/rootscan-cli/internal/core/ports/driving"
	"github.com/qamus-labs/rootscan-cli/internal/logger"
)

// Ensure LocatorService implements the interface.
var _ driving.LocatorService = (*LocatorService)(nil)

// LocatorService finds every verse containing a given root by joining
// morphology hits against the verse text index.
type LocatorService struct {
	source driven.MorphologySource
	verses driven.VerseStore
}

// NewLocatorService creates a new locator service.
func NewLocatorService(source driven.MorphologySource, verses driven.VerseStore) *LocatorService {
	return &LocatorService{source: source, verses: verses}
}

// Locate scans the morphology table for records whose normalised root
// equals the query (accepted in Arabic script or Buckwalter) and joins
// each hit to its verse. Matches are ordered by verse reference
// ascending. A query with no occurrences returns an empty slice; a hit
// whose reference is missing from the verse index is a data-integrity
// failure and aborts with domain.ErrVerseUnresolved.
func (s *LocatorService) Locate(ctx context.Context, root string) ([]domain.VerseMatch, error) {
	target := buckwalter.Normalise(root)
	if target == "" {
		return nil, fmt.Errorf("%w: empty root query", domain.ErrInvalidInput)
	}

	logger.Section("Verse Location")
	logger.Debug("Query: %q, canonical form: %q", root, target)

	matches := []domain.VerseMatch{}
	_, err := s.source.Scan(ctx, func(rec domain.MorphRecord) error {
		if !rec.HasRoot() || buckwalter.Normalise(rec.Root) != target {
			return nil
		}

		verse, ok := s.verses.Lookup(rec.Ref.Sura, rec.Ref.Ayah)
		if !ok {
			// morphology table and verse text disagree; surface it
			return fmt.Errorf("%w: %s", domain.ErrVerseUnresolved, rec.Ref)
		}

		match := domain.VerseMatch{
			Ref:     rec.Ref,
			Verse:   verse,
			Surface: rec.Surface,
		}
		if token := verse.Token(rec.Ref.Word); token != "" {
			match.Tokens = []string{token}
		}
		matches = append(matches, match)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(matches, func(i, j int) bool {
		return matches[i].Ref.Less(matches[j].Ref)
	})

	logger.Info("%d matches for root %q", len(matches), target)
	return matches, nil
}

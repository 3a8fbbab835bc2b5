package driven

import (
	"context"

	"github.com/qamus-labs/rootscan-cli/internal/core/domain"
)

// MorphologySource streams morphology records from a corpus table.
// Each invocation reads the source fresh; records arrive in file order.
type MorphologySource interface {
	// Scan calls fn once per well-formed morphology record. Rows that
	// cannot be parsed or carry no root are counted in the returned
	// summary, not passed to fn with Root set. Scanning stops early when
	// fn returns an error or the context is cancelled.
	Scan(ctx context.Context, fn func(domain.MorphRecord) error) (domain.ScanSummary, error)
}

// VerseStore resolves verse references against the verse text source.
// The store is loaded once and read-only afterwards.
type VerseStore interface {
	// Lookup returns the verse at (sura, ayah). The boolean is false
	// when the reference has no entry; callers decide whether that is
	// a data-integrity failure.
	Lookup(sura, ayah int) (domain.Verse, bool)

	// Len returns the number of verses loaded.
	Len() int
}

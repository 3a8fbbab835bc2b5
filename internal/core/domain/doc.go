// Package domain defines the core business entities for rootscan.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - MorphRecord: One word occurrence from the morphology table
//   - RootAggregate: Frequency totals for one normalised root
//   - Verse: One verse of the rendered text, with its word tokens
//   - VerseMatch: A morphology hit joined to its verse
//   - Annotation: A parsed semantic analysis of one root
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain

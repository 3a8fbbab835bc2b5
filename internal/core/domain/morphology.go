package domain

import "fmt"

// VerseRef identifies one word position in the corpus.
// Sura and Ayah are the join key against the verse text; Word is the
// 1-based position of the token within the verse.
type VerseRef struct {
	// Sura is the chapter index (1-114).
	Sura int

	// Ayah is the verse index within the sura.
	Ayah int

	// Word is the 1-based token position within the verse.
	// Zero when the source row did not carry a word position.
	Word int
}

// Less reports whether r sorts before other in corpus order:
// by sura, then ayah, then word position.
func (r VerseRef) Less(other VerseRef) bool {
	if r.Sura != other.Sura {
		return r.Sura < other.Sura
	}
	if r.Ayah != other.Ayah {
		return r.Ayah < other.Ayah
	}
	return r.Word < other.Word
}

// SameVerse reports whether two references point into the same verse.
func (r VerseRef) SameVerse(other VerseRef) bool {
	return r.Sura == other.Sura && r.Ayah == other.Ayah
}

// String returns the reference in sura:ayah:word form.
func (r VerseRef) String() string {
	if r.Word == 0 {
		return fmt.Sprintf("%d:%d", r.Sura, r.Ayah)
	}
	return fmt.Sprintf("%d:%d:%d", r.Sura, r.Ayah, r.Word)
}

// MorphRecord is one row of the morphology table: a single word (or word
// segment) of the corpus with its surface form, root and morphological tag.
// Records are immutable once read; they live for the duration of one scan.
type MorphRecord struct {
	// Ref locates the word within the corpus.
	Ref VerseRef

	// Surface is the inflected form as it appears in the text.
	Surface string

	// Root is the root value exactly as the source carries it
	// (Arabic script or Buckwalter). Empty when the row has no ROOT tag.
	Root string

	// Tag is the part-of-speech tag, passed through opaquely.
	Tag string
}

// HasRoot reports whether the record carries a root value.
func (m MorphRecord) HasRoot() bool {
	return m.Root != ""
}

// ScanSummary carries the diagnostic counts from one pass over the
// morphology table. Skipped rows are counted, never silently dropped.
type ScanSummary struct {
	// Records is the number of well-formed data rows seen.
	Records int

	// SkippedNoRoot is the number of rows without a usable root field.
	SkippedNoRoot int

	// SkippedMalformed is the number of rows that could not be parsed
	// (bad location field, too few columns).
	SkippedMalformed int
}

// Skipped returns the total number of rows excluded from aggregation.
func (s ScanSummary) Skipped() int {
	return s.SkippedNoRoot + s.SkippedMalformed
}

// Add merges another summary into this one.
func (s *ScanSummary) Add(other ScanSummary) {
	s.Records += other.Records
	s.SkippedNoRoot += other.SkippedNoRoot
	s.SkippedMalformed += other.SkippedMalformed
}

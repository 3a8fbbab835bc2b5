package domain

// Verse is one verse of the rendered text, keyed by (sura, ayah).
// Loaded once from the verse-text source and held read-only.
type Verse struct {
	// Sura is the chapter index.
	Sura int

	// Ayah is the verse index within the sura.
	Ayah int

	// Text is the rendered script text of the verse.
	Text string

	// Tokens is the whitespace tokenisation of Text into word-units.
	Tokens []string
}

// Ref returns the verse-level reference (word position zero).
func (v Verse) Ref() VerseRef {
	return VerseRef{Sura: v.Sura, Ayah: v.Ayah}
}

// Token returns the 1-based word at position pos, or "" when the
// position falls outside the verse.
func (v Verse) Token(pos int) string {
	if pos < 1 || pos > len(v.Tokens) {
		return ""
	}
	return v.Tokens[pos-1]
}

// VerseMatch joins a morphology hit to its verse. Each morphology record
// yields exactly one match; a record addressing word N contributes the
// single token at that position.
type VerseMatch struct {
	// Ref is the morphology record's verse reference.
	Ref VerseRef

	// Verse is the resolved verse text record.
	Verse Verse

	// Tokens holds the matched token(s) at the recorded word position.
	Tokens []string

	// Surface is the surface form from the morphology record.
	Surface string
}

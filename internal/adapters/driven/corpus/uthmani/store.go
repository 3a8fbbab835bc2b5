// Package uthmani loads the verse text source (quran-uthmani.xml) and
// indexes it for O(1) lookup by (sura, ayah).
package uthmani

import (
	"encoding/xml"
	"fmt"
	"os"
	"strings"

	"github.com/qamus-labs/rootscan-cli/internal/core/domain"
	"github.com/qamus-labs/rootscan-cli/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.VerseStore = (*Store)(nil)

// The document is <quran><sura index><aya index text/></sura></quran>;
// verse text lives in the aya's text attribute.
type xmlQuran struct {
	Suras []xmlSura `xml:"sura"`
}

type xmlSura struct {
	Index int      `xml:"index,attr"`
	Ayas  []xmlAya `xml:"aya"`
}

type xmlAya struct {
	Index int    `xml:"index,attr"`
	Text  string `xml:"text,attr"`
}

type verseKey struct {
	sura, ayah int
}

// Store holds every verse of the text, indexed by reference.
// Loaded once, read-only afterwards.
type Store struct {
	verses map[verseKey]domain.Verse
}

// Load reads and indexes the verse text document at path.
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening verse text: %w", err)
	}
	return Parse(data)
}

// Parse indexes a verse text document already held in memory.
func Parse(data []byte) (*Store, error) {
	var doc xmlQuran
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing verse text: %w", err)
	}

	verses := make(map[verseKey]domain.Verse)
	for _, sura := range doc.Suras {
		for _, aya := range sura.Ayas {
			key := verseKey{sura: sura.Index, ayah: aya.Index}
			if _, dup := verses[key]; dup {
				return nil, fmt.Errorf("%w: duplicate verse %d:%d", domain.ErrInvalidInput, sura.Index, aya.Index)
			}
			verses[key] = domain.Verse{
				Sura:   sura.Index,
				Ayah:   aya.Index,
				Text:   aya.Text,
				Tokens: strings.Fields(aya.Text),
			}
		}
	}
	if len(verses) == 0 {
		return nil, fmt.Errorf("%w: verse text document holds no verses", domain.ErrInvalidInput)
	}

	return &Store{verses: verses}, nil
}

// Lookup returns the verse at (sura, ayah).
func (s *Store) Lookup(sura, ayah int) (domain.Verse, bool) {
	v, ok := s.verses[verseKey{sura: sura, ayah: ayah}]
	return v, ok
}

// Len returns the number of verses loaded.
func (s *Store) Len() int {
	return len(s.verses)
}

package uthmani

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleXML = `<?xml version="1.0" encoding="UTF-8"?>
<quran>
  <sura index="1" name="الفاتحة">
    <aya index="1" text="بِسْمِ ٱللَّهِ ٱلرَّحْمَٰنِ ٱلرَّحِيمِ"/>
    <aya index="2" text="ٱلْحَمْدُ لِلَّهِ رَبِّ ٱلْعَٰلَمِينَ"/>
  </sura>
  <sura index="2" name="البقرة">
    <aya index="1" text="الٓمٓ"/>
  </sura>
</quran>`

func TestParse(t *testing.T) {
	store, err := Parse([]byte(sampleXML))
	require.NoError(t, err)

	assert.Equal(t, 3, store.Len())
}

func TestLookup(t *testing.T) {
	store, err := Parse([]byte(sampleXML))
	require.NoError(t, err)

	v, ok := store.Lookup(1, 2)
	require.True(t, ok)
	assert.Equal(t, 1, v.Sura)
	assert.Equal(t, 2, v.Ayah)
	assert.Equal(t, "ٱلْحَمْدُ لِلَّهِ رَبِّ ٱلْعَٰلَمِينَ", v.Text)
	assert.Equal(t, []string{"ٱلْحَمْدُ", "لِلَّهِ", "رَبِّ", "ٱلْعَٰلَمِينَ"}, v.Tokens)
}

func TestLookup_Miss(t *testing.T) {
	store, err := Parse([]byte(sampleXML))
	require.NoError(t, err)

	_, ok := store.Lookup(114, 1)
	assert.False(t, ok)
}

func TestParse_DuplicateVerse(t *testing.T) {
	dup := `<quran><sura index="1"><aya index="1" text="a"/><aya index="1" text="b"/></sura></quran>`

	_, err := Parse([]byte(dup))

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate verse 1:1")
}

func TestParse_Empty(t *testing.T) {
	_, err := Parse([]byte(`<quran></quran>`))
	assert.Error(t, err)
}

func TestParse_BadXML(t *testing.T) {
	_, err := Parse([]byte(`<quran><sura`))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quran-uthmani.xml")
	require.NoError(t, os.WriteFile(path, []byte(sampleXML), 0600))

	store, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, store.Len())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.xml"))
	assert.Error(t, err)
}

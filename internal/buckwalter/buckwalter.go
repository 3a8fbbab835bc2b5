// Package buckwalter converts triliteral roots between Arabic script and
// the Buckwalter ASCII transliteration, and reduces either encoding to one
// canonical form used as the aggregation key everywhere in rootscan.
//
// Buckwalter is one-to-one with the Arabic consonant inventory, so the
// canonical form is case-preserving ASCII Buckwalter: 'H' (ح) and 'h' (ه)
// are different letters, not different spellings.
package buckwalter

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// buckToArabic maps each Buckwalter consonant to its Arabic letter.
// Covers the 28 consonants plus hamza and ta-marbuta.
var buckToArabic = map[rune]rune{
	'\'': 'ء', // hamza
	'A':  'ا',
	'b':  'ب',
	't':  'ت',
	'v':  'ث',
	'j':  'ج',
	'H':  'ح',
	'x':  'خ',
	'd':  'د',
	'*':  'ذ',
	'r':  'ر',
	'z':  'ز',
	's':  'س',
	'$':  'ش',
	'S':  'ص',
	'D':  'ض',
	'T':  'ط',
	'Z':  'ظ',
	'E':  'ع',
	'g':  'غ',
	'f':  'ف',
	'q':  'ق',
	'k':  'ك',
	'l':  'ل',
	'm':  'م',
	'n':  'ن',
	'h':  'ه',
	'w':  'و',
	'y':  'ي',
	'p':  'ة', // ta-marbuta (rare in roots)
}

// arabicToBuck is the inverse of buckToArabic.
var arabicToBuck = func() map[rune]rune {
	m := make(map[rune]rune, len(buckToArabic))
	for bw, ar := range buckToArabic {
		m[ar] = bw
	}
	return m
}()

// tatweel is the Arabic kashida (U+0640), a typographic filler with no
// phonetic value. It is not a combining mark, so it survives the Mn strip
// and has to be removed explicitly.
const tatweel = 'ـ'

// diacriticStripper removes Unicode combining marks (harakat, shadda,
// sukun, superscript alef, Quranic annotation signs) after decomposition.
var diacriticStripper = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// StripDiacritics removes vowel signs and other combining marks from s,
// along with the tatweel filler. Consonants pass through untouched.
func StripDiacritics(s string) string {
	stripped, _, err := transform.String(diacriticStripper, s)
	if err != nil {
		// runes.Remove never fails; norm may on invalid UTF-8, in which
		// case the raw input is the best available answer.
		stripped = s
	}
	return strings.Map(func(r rune) rune {
		if r == tatweel {
			return -1
		}
		return r
	}, stripped)
}

// ToArabic transliterates a Buckwalter root to Arabic letters.
// Runes outside the Buckwalter alphabet pass through unchanged.
func ToArabic(bw string) string {
	return strings.Map(func(r rune) rune {
		if ar, ok := buckToArabic[r]; ok {
			return ar
		}
		return r
	}, bw)
}

// ToBuckwalter transliterates an Arabic root to Buckwalter (best effort).
// Runes outside the mapped alphabet pass through unchanged.
func ToBuckwalter(ar string) string {
	return strings.Map(func(r rune) rune {
		if bw, ok := arabicToBuck[r]; ok {
			return bw
		}
		return r
	}, ar)
}

// Normalise reduces a root in either accepted encoding to canonical
// Buckwalter: trim surrounding whitespace, strip diacritics and tatweel,
// then transliterate Arabic letters to Buckwalter. ASCII input is assumed
// to be Buckwalter already and is returned as-is after trimming.
//
// Normalise is idempotent: Normalise(Normalise(x)) == Normalise(x).
// An empty result means the field held nothing usable as a root.
func Normalise(root string) string {
	s := strings.TrimSpace(root)
	if s == "" {
		return ""
	}
	if isASCII(s) {
		return s
	}
	return ToBuckwalter(StripDiacritics(s))
}

// isASCII reports whether s contains only ASCII bytes.
func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= unicode.MaxASCII {
			return false
		}
	}
	return true
}

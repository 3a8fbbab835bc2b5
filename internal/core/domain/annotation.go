package domain

import (
	"strings"
	"time"
)

// Section headings of the semantic analysis, in reply order. The model is
// instructed to answer under exactly these Arabic headings and the parser
// and CSV export both key off them.
const (
	SectionLexicon          = "مفردات لسان العرب"
	SectionLexiconGloss     = "شرح لسان العرب"
	SectionExplanation      = "الشرح"
	SectionSynonyms         = "المرادفات"
	SectionAntonyms         = "الأضداد"
	SectionSemanticContrast = "الفرق الدلالي"
	SectionContextAnalysis  = "التحليل الدلالي للسياق"
	SectionSummary          = "الملخص الدلالي"
)

// SectionHeadings lists the analysis headings in their fixed order.
var SectionHeadings = []string{
	SectionLexicon,
	SectionLexiconGloss,
	SectionExplanation,
	SectionSynonyms,
	SectionAntonyms,
	SectionSemanticContrast,
	SectionContextAnalysis,
	SectionSummary,
}

// AnnotationSections holds the eight fixed fields of a parsed analysis.
type AnnotationSections struct {
	// Lexicon is the root's meaning per the classical lexicon.
	Lexicon string

	// LexiconGloss is the lexicon-only commentary on the word.
	LexiconGloss string

	// Explanation covers the root's meaning in the quoted verses.
	Explanation string

	// Synonyms lists the nearest words in meaning.
	Synonyms string

	// Antonyms lists words of opposite meaning.
	Antonyms string

	// SemanticContrast compares the root against its synonyms.
	SemanticContrast string

	// ContextAnalysis covers how the verses deploy the root.
	ContextAnalysis string

	// Summary is the closing semantic summary paragraph.
	Summary string
}

// ByHeading returns the section text stored under an Arabic heading.
func (s AnnotationSections) ByHeading(heading string) string {
	switch heading {
	case SectionLexicon:
		return s.Lexicon
	case SectionLexiconGloss:
		return s.LexiconGloss
	case SectionExplanation:
		return s.Explanation
	case SectionSynonyms:
		return s.Synonyms
	case SectionAntonyms:
		return s.Antonyms
	case SectionSemanticContrast:
		return s.SemanticContrast
	case SectionContextAnalysis:
		return s.ContextAnalysis
	case SectionSummary:
		return s.Summary
	default:
		return ""
	}
}

// setByHeading stores text under an Arabic heading.
func (s *AnnotationSections) setByHeading(heading, text string) {
	switch heading {
	case SectionLexicon:
		s.Lexicon = text
	case SectionLexiconGloss:
		s.LexiconGloss = text
	case SectionExplanation:
		s.Explanation = text
	case SectionSynonyms:
		s.Synonyms = text
	case SectionAntonyms:
		s.Antonyms = text
	case SectionSemanticContrast:
		s.SemanticContrast = text
	case SectionContextAnalysis:
		s.ContextAnalysis = text
	case SectionSummary:
		s.Summary = text
	}
}

// ParseAnnotationSections splits a model reply into the eight fixed
// sections. Headings must appear in order, each at the start of a line
// followed by a colon. A reply that does not follow the template lands
// whole in the Explanation field so nothing is lost.
func ParseAnnotationSections(reply string) AnnotationSections {
	var out AnnotationSections

	type span struct {
		heading string
		start   int // index just past "heading:"
	}

	spans := make([]span, 0, len(SectionHeadings))
	cursor := 0
	for _, heading := range SectionHeadings {
		idx := findHeading(reply, heading, cursor)
		if idx < 0 {
			continue
		}
		start := idx + len(heading)
		// step past the colon (ASCII or Arabic-adjacent usage keeps ':')
		if start < len(reply) && reply[start] == ':' {
			start++
		}
		spans = append(spans, span{heading: heading, start: start})
		cursor = start
	}

	if len(spans) == 0 {
		out.Explanation = strings.TrimSpace(reply)
		return out
	}

	for i, sp := range spans {
		end := len(reply)
		if i+1 < len(spans) {
			end = spans[i+1].start - len(spans[i+1].heading) - 1
			if end < sp.start {
				end = sp.start
			}
		}
		out.setByHeading(sp.heading, strings.TrimSpace(reply[sp.start:end]))
	}
	return out
}

// findHeading locates heading followed by ':' at the start of a line,
// searching from offset from.
func findHeading(reply, heading string, from int) int {
	needle := heading + ":"
	search := reply[from:]
	offset := 0
	for {
		idx := strings.Index(search[offset:], needle)
		if idx < 0 {
			return -1
		}
		abs := from + offset + idx
		if lineStart(reply, abs) {
			return abs
		}
		offset += idx + len(needle)
		if offset >= len(search) {
			return -1
		}
	}
}

// lineStart reports whether idx sits at the start of a line, ignoring
// leading markdown emphasis or whitespace.
func lineStart(s string, idx int) bool {
	for i := idx - 1; i >= 0; i-- {
		switch s[i] {
		case '\n':
			return true
		case ' ', '\t', '*', '#', '-':
			continue
		default:
			return false
		}
	}
	return true
}

// Annotation is one completed semantic analysis of a root.
type Annotation struct {
	// Root is the root as supplied in the input list.
	Root string

	// RunID groups annotations written by one annotator invocation.
	RunID string

	// VerseCount is how many verses were supplied as context.
	VerseCount int

	// Sections holds the parsed analysis fields.
	Sections AnnotationSections

	// PromptTokens and CompletionTokens are the usage figures
	// reported by the model for the final attempt.
	PromptTokens     int
	CompletionTokens int

	// CreatedAt is when the annotation was recorded.
	CreatedAt time.Time
}

// Package morphtsv reads the tab-separated morphology table.
//
// Two corpus flavours circulate and both are handled transparently:
// the location field may be wrapped in parentheses or bare, and ROOT tag
// values may be Arabic letters or Buckwalter.
package morphtsv

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/qamus-labs/rootscan-cli/internal/core/domain"
	"github.com/qamus-labs/rootscan-cli/internal/core/ports/driven"
	"github.com/qamus-labs/rootscan-cli/internal/logger"
)

// Ensure Source implements the interface.
var _ driven.MorphologySource = (*Source)(nil)

// locationPattern matches "(2:4:1:1)" and "2:4:1:1" alike; the fourth
// component (segment) is optional and ignored.
var locationPattern = regexp.MustCompile(`^\(?(\d+):(\d+):(\d+)`)

// rootTagPrefix introduces the root value inside the pipe-separated
// feature field. Old-format files upper-case it, new-format files do not.
const rootTagPrefix = "root:"

// Source streams morphology records from a TSV file.
type Source struct {
	path string
}

// New creates a morphology source for the table at path.
func New(path string) *Source {
	return &Source{path: path}
}

// Path returns the table's file path.
func (s *Source) Path() string {
	return s.path
}

// Scan reads the table line by line and calls fn once per well-formed
// record. Comment lines and blank lines are ignored; rows that cannot be
// parsed are counted as malformed, rows without a ROOT tag are counted
// separately and still passed to fn with an empty Root.
func (s *Source) Scan(ctx context.Context, fn func(domain.MorphRecord) error) (domain.ScanSummary, error) {
	var summary domain.ScanSummary

	f, err := os.Open(s.path)
	if err != nil {
		return summary, fmt.Errorf("opening morphology table: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	// corpus lines are short, but the Uthmani script plus a long feature
	// field can pass bufio's default token size on pathological rows
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		line := scanner.Text()
		if line == "" || line[0] == '#' || line[0] == '\r' {
			continue
		}

		rec, ok := parseLine(line)
		if !ok {
			summary.SkippedMalformed++
			logger.Debug("line %d: malformed row skipped", lineNo)
			continue
		}

		summary.Records++
		if !rec.HasRoot() {
			summary.SkippedNoRoot++
		}

		if err := fn(rec); err != nil {
			return summary, err
		}
	}
	if err := scanner.Err(); err != nil {
		return summary, fmt.Errorf("reading morphology table: %w", err)
	}

	return summary, nil
}

// parseLine splits one data row into a MorphRecord.
// Expected columns: location, surface form, part-of-speech tag,
// pipe-separated feature list.
func parseLine(line string) (domain.MorphRecord, bool) {
	fields := strings.Split(strings.TrimRight(line, "\r\n"), "\t")
	if len(fields) < 4 {
		return domain.MorphRecord{}, false
	}

	loc := locationPattern.FindStringSubmatch(fields[0])
	if loc == nil {
		return domain.MorphRecord{}, false
	}
	sura, _ := strconv.Atoi(loc[1])
	ayah, _ := strconv.Atoi(loc[2])
	word, _ := strconv.Atoi(loc[3])

	return domain.MorphRecord{
		Ref:     domain.VerseRef{Sura: sura, Ayah: ayah, Word: word},
		Surface: fields[1],
		Tag:     fields[2],
		Root:    rootFromFeatures(fields[3]),
	}, true
}

// rootFromFeatures extracts the ROOT tag value from the pipe-separated
// feature field. Returns "" when the row carries no root.
func rootFromFeatures(features string) string {
	for _, tag := range strings.Split(features, "|") {
		if len(tag) > len(rootTagPrefix) && strings.EqualFold(tag[:len(rootTagPrefix)], rootTagPrefix) {
			return tag[len(rootTagPrefix):]
		}
	}
	return ""
}

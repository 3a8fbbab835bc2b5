package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/qamus-labs/rootscan-cli/internal/buckwalter"
	"github.com/qamus-labs/rootscan-cli/internal/core/domain"
)

var versesJSON bool

var versesCmd = &cobra.Command{
	Use:   "verses [root]",
	Short: "Locate every verse containing a root",
	Long: `Finds every verse of the corpus in which the given triliteral root
occurs. The root may be written in Arabic script or in Buckwalter
transliteration; diacritics are stripped before matching.

Matches are ordered by sura, ayah and word position.`,
	Args: cobra.ExactArgs(1),
	RunE: runVerses,
}

func init() {
	versesCmd.Flags().BoolVar(&versesJSON, "json", false, "output matches as JSON")
	rootCmd.AddCommand(versesCmd)
}

// verseRecord is the JSON shape of one locator match.
type verseRecord struct {
	Sura   int      `json:"sura"`
	Ayah   int      `json:"ayah"`
	Word   int      `json:"word"`
	Text   string   `json:"text"`
	Tokens []string `json:"tokens,omitempty"`
}

func runVerses(cmd *cobra.Command, args []string) error {
	root := args[0]

	svc, err := ensureLocatorService()
	if err != nil {
		return err
	}

	matches, err := svc.Locate(cmd.Context(), root)
	if err != nil {
		return fmt.Errorf("locating verses: %w", err)
	}

	if versesJSON {
		return outputVersesJSON(cmd, matches)
	}
	return outputVersesTable(cmd, root, matches)
}

func outputVersesJSON(cmd *cobra.Command, matches []domain.VerseMatch) error {
	records := make([]verseRecord, len(matches))
	for i, m := range matches {
		records[i] = verseRecord{
			Sura:   m.Ref.Sura,
			Ayah:   m.Ref.Ayah,
			Word:   m.Ref.Word,
			Text:   m.Verse.Text,
			Tokens: m.Tokens,
		}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal matches: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputVersesTable(cmd *cobra.Command, root string, matches []domain.VerseMatch) error {
	canonical := buckwalter.Normalise(root)
	if len(matches) == 0 {
		cmd.Printf("No verses found for root %s (%s).\n", canonical, buckwalter.ToArabic(canonical))
		return nil
	}

	cmd.Printf("Verses containing %s (%s): %d occurrences\n",
		canonical, buckwalter.ToArabic(canonical), len(matches))
	cmd.Println()
	for i := range matches {
		cmd.Printf("  [%d:%d] %s\n", matches[i].Ref.Sura, matches[i].Ref.Ayah, matches[i].Verse.Text)
		if len(matches[i].Tokens) > 0 {
			cmd.Printf("        word %d: %s\n", matches[i].Ref.Word, matches[i].Tokens[0])
		}
	}

	return nil
}

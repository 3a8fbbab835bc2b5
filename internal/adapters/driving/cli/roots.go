package cli

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/qamus-labs/rootscan-cli/internal/core/domain"
	"github.com/qamus-labs/rootscan-cli/internal/logger"
)

var (
	rootsOutput string
	rootsJSON   bool
)

var rootsCmd = &cobra.Command{
	Use:   "roots",
	Short: "Extract root frequencies from the morphology corpus",
	Long: `Runs a single pass over the morphology table and aggregates every
triliteral root: total occurrence count and per-surface-form counts.

Output is CSV with columns root,count,forms ordered by count descending,
ties broken by root ascending. The forms column joins form(count) pairs
with semicolons, most frequent form first.`,
	Args: cobra.NoArgs,
	RunE: runRoots,
}

func init() {
	rootsCmd.Flags().StringVarP(&rootsOutput, "output", "o", "", "write CSV to a file instead of stdout")
	rootsCmd.Flags().BoolVar(&rootsJSON, "json", false, "output aggregates as JSON")
	rootCmd.AddCommand(rootsCmd)
}

func runRoots(cmd *cobra.Command, _ []string) error {
	svc, err := ensureFrequencyService()
	if err != nil {
		return err
	}

	aggregates, summary, err := svc.Extract(cmd.Context())
	if err != nil {
		return fmt.Errorf("extracting root frequencies: %w", err)
	}

	logger.Info("%d roots from %d records (%d rows skipped)",
		len(aggregates), summary.Records, summary.Skipped())

	if rootsJSON {
		return outputRootsJSON(cmd, aggregates)
	}

	out := cmd.OutOrStdout()
	if rootsOutput != "" {
		f, err := os.Create(rootsOutput)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	if err := writeRootsCSV(out, aggregates); err != nil {
		return err
	}
	if rootsOutput != "" {
		cmd.Printf("Wrote %d roots to %s\n", len(aggregates), rootsOutput)
	}
	return nil
}

func outputRootsJSON(cmd *cobra.Command, aggregates []domain.RootAggregate) error {
	data, err := json.MarshalIndent(aggregates, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal aggregates: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func writeRootsCSV(w io.Writer, aggregates []domain.RootAggregate) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"root", "count", "forms"}); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	for _, a := range aggregates {
		if err := cw.Write([]string{a.Root, strconv.Itoa(a.Count), a.FormsColumn()}); err != nil {
			return fmt.Errorf("writing CSV row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

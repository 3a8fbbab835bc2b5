package cli

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/qamus-labs/rootscan-cli/internal/adapters/driven/llm/openai"
	"github.com/qamus-labs/rootscan-cli/internal/adapters/driven/storage/sqlite"
	"github.com/qamus-labs/rootscan-cli/internal/core/domain"
	"github.com/qamus-labs/rootscan-cli/internal/core/ports/driving"
	"github.com/qamus-labs/rootscan-cli/internal/core/services"
	"github.com/qamus-labs/rootscan-cli/internal/ratelimit"
)

var (
	annotateOutput   string
	annotateLimit    int
	annotateModel    string
	annotateRate     float64
	annotateVerseDir string
	annotateReplyDir string
	annotateDataDir  string
)

var annotateCmd = &cobra.Command{
	Use:   "annotate [roots-csv]",
	Short: "Bulk-annotate roots with LLM semantic analyses",
	Long: `Reads roots from a CSV file (column "root"; the Arabic column name
"الجذر" is also accepted), locates each root's verses, asks the configured
model for a structured Arabic semantic analysis and stores the result.

Progress is persisted: rerunning the command skips roots that already have
an annotation, so an interrupted run resumes where it stopped. Model calls
are strictly sequential and rate limited.

With --output, the input rows are written back with the analysis columns
appended.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnnotate,
}

func init() {
	annotateCmd.Flags().StringVarP(&annotateOutput, "output", "o", "", "write the annotated CSV to a file")
	annotateCmd.Flags().IntVarP(&annotateLimit, "limit", "n", 0, "annotate at most N roots (0 = all)")
	annotateCmd.Flags().StringVar(&annotateModel, "model", "", "model name (default: openai.model from config)")
	annotateCmd.Flags().Float64Var(&annotateRate, "rate", 0, "model calls per second (default: annotate.rate_limit from config, 1.0)")
	annotateCmd.Flags().StringVar(&annotateVerseDir, "verse-dir", "", "dump each root's verses as JSON into this directory")
	annotateCmd.Flags().StringVar(&annotateReplyDir, "reply-dir", "", "log every raw model reply into this directory")
	annotateCmd.Flags().StringVar(&annotateDataDir, "data-dir", "", "progress database directory (default: ~/.rootscan/data)")
	rootCmd.AddCommand(annotateCmd)
}

func runAnnotate(cmd *cobra.Command, args []string) error {
	table, roots, err := readRootsCSV(args[0])
	if err != nil {
		return err
	}
	if annotateLimit > 0 && len(roots) > annotateLimit {
		roots = roots[:annotateLimit]
	}

	svc, err := ensureAnnotatorService(cmd.Context())
	if err != nil {
		return err
	}

	summary, err := svc.Annotate(cmd.Context(), roots)
	if err != nil {
		return fmt.Errorf("bulk annotation: %w", err)
	}

	cmd.Printf("Annotated %d roots (%d already done, %d refused)\n",
		summary.Annotated, summary.SkippedDone, summary.Refused)

	if annotateOutput == "" {
		return nil
	}

	annotations, err := svc.Export(cmd.Context())
	if err != nil {
		return fmt.Errorf("exporting annotations: %w", err)
	}
	if err := writeAnnotatedCSV(annotateOutput, table, annotations); err != nil {
		return err
	}
	cmd.Printf("Wrote %s\n", annotateOutput)
	return nil
}

// ensureAnnotatorService wires the annotator on first use: locator, OpenAI
// client, SQLite progress store and rate limiter. The model endpoint is
// pinged before any root is touched, so a bad key or URL fails up front
// rather than mid-run.
func ensureAnnotatorService(ctx context.Context) (driving.AnnotatorService, error) {
	if annotatorService != nil {
		return annotatorService, nil
	}

	locator, err := ensureLocatorService()
	if err != nil {
		return nil, err
	}
	store, err := ensureConfigStore()
	if err != nil {
		return nil, err
	}

	apiKey := store.GetString("openai.api_key")
	if apiKey == "" {
		return nil, errors.New(`openai API key not configured: run "rootscan config set openai.api_key <key>"`)
	}
	model := annotateModel
	if model == "" {
		model = store.GetString("openai.model")
	}
	llm, err := openai.NewLLMService(openai.LLMConfig{
		APIKey:  apiKey,
		BaseURL: store.GetString("openai.base_url"),
		Model:   model,
	})
	if err != nil {
		return nil, fmt.Errorf("configuring model client: %w", err)
	}
	if err := llm.Ping(ctx); err != nil {
		return nil, fmt.Errorf("model endpoint unreachable: %w", err)
	}

	progress, err := sqlite.NewStore(annotateDataDir)
	if err != nil {
		return nil, fmt.Errorf("opening progress store: %w", err)
	}

	rps := annotateRate
	if rps <= 0 {
		rps = store.GetFloat("annotate.rate_limit")
	}
	limiter := ratelimit.New(ratelimit.Config{RequestsPerSecond: rps})

	annotatorService = services.NewAnnotatorService(locator, llm, progress, limiter, services.AnnotatorConfig{
		VerseDir: annotateVerseDir,
		ReplyDir: annotateReplyDir,
	})
	return annotatorService, nil
}

// rootsTable holds an input CSV verbatim so the export can append the
// analysis columns to the original rows.
type rootsTable struct {
	header  []string
	rows    [][]string
	rootCol int
}

// readRootsCSV loads the input CSV and pulls the root column. The column
// may be headed "root" (any case) or "الجذر".
func readRootsCSV(path string) (*rootsTable, []string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening roots file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("reading roots file: %w", err)
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("roots file %s is empty", path)
	}

	header := records[0]
	rootCol := -1
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\uFEFF"))
		if strings.EqualFold(name, "root") || name == "الجذر" {
			rootCol = i
			break
		}
	}
	if rootCol < 0 {
		return nil, nil, fmt.Errorf(`roots file %s has no "root" column`, path)
	}

	rows := records[1:]
	roots := make([]string, 0, len(rows))
	for _, row := range rows {
		if rootCol >= len(row) {
			continue
		}
		if root := strings.TrimSpace(row[rootCol]); root != "" {
			roots = append(roots, root)
		}
	}

	return &rootsTable{header: header, rows: rows, rootCol: rootCol}, roots, nil
}

// writeAnnotatedCSV writes the input rows back with the eight analysis
// columns and the token counts appended. Rows whose root has no stored
// annotation get empty columns.
func writeAnnotatedCSV(path string, table *rootsTable, annotations []domain.Annotation) error {
	byRoot := make(map[string]domain.Annotation, len(annotations))
	for _, a := range annotations {
		byRoot[a.Root] = a
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := append([]string{}, table.header...)
	header = append(header, domain.SectionHeadings...)
	header = append(header, "tokens_prompt", "tokens_completion")
	if err := w.Write(header); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}

	for _, row := range table.rows {
		out := append([]string{}, row...)
		root := ""
		if table.rootCol < len(row) {
			root = strings.TrimSpace(row[table.rootCol])
		}
		if a, ok := byRoot[root]; ok {
			for _, heading := range domain.SectionHeadings {
				out = append(out, a.Sections.ByHeading(heading))
			}
			out = append(out, strconv.Itoa(a.PromptTokens), strconv.Itoa(a.CompletionTokens))
		} else {
			for range domain.SectionHeadings {
				out = append(out, "")
			}
			out = append(out, "", "")
		}
		if err := w.Write(out); err != nil {
			return fmt.Errorf("writing CSV row: %w", err)
		}
	}

	w.Flush()
	return w.Error()
}

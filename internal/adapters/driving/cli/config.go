package cli

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage rootscan configuration",
	Long: `View and change the persistent configuration in ~/.rootscan/config.toml.

Keys:
  corpus.morphology    path to the morphology TSV
  corpus.verses        path to the verse corpus XML
  openai.api_key       OpenAI API key for the annotator
  openai.model         model name (default gpt-4o)
  openai.base_url      API base URL for OpenAI-compatible endpoints
  annotate.rate_limit  model calls per second (default 1.0)`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runConfigShow,
}

var configGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Print a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	store, err := ensureConfigStore()
	if err != nil {
		return err
	}

	show := func(key string) string {
		val, ok := store.Get(key)
		if !ok {
			return "(not set)"
		}
		if s, isString := val.(string); isString && strings.HasSuffix(key, "api_key") {
			return maskAPIKey(s)
		}
		return stringify(val)
	}

	cmd.Println("Current Configuration")
	cmd.Println("=====================")
	cmd.Println()
	cmd.Println("[Corpus]")
	cmd.Printf("  morphology: %s\n", show("corpus.morphology"))
	cmd.Printf("  verses: %s\n", show("corpus.verses"))
	cmd.Println()
	cmd.Println("[OpenAI]")
	cmd.Printf("  api_key: %s\n", show("openai.api_key"))
	cmd.Printf("  model: %s\n", show("openai.model"))
	cmd.Printf("  base_url: %s\n", show("openai.base_url"))
	cmd.Println()
	cmd.Println("[Annotate]")
	cmd.Printf("  rate_limit: %s\n", show("annotate.rate_limit"))

	return nil
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	store, err := ensureConfigStore()
	if err != nil {
		return err
	}

	val, ok := store.Get(args[0])
	if !ok {
		cmd.Println("(not set)")
		return nil
	}
	cmd.Println(stringify(val))
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	store, err := ensureConfigStore()
	if err != nil {
		return err
	}

	key, raw := args[0], args[1]
	if err := store.Set(key, parseValue(raw)); err != nil {
		return err
	}
	cmd.Printf("Set %s\n", key)
	return nil
}

// parseValue types a raw CLI string: bool, int and float values are stored
// as such so the typed getters work; everything else stays a string.
func parseValue(raw string) any {
	if b, err := strconv.ParseBool(raw); err == nil && (raw == "true" || raw == "false") {
		return b
	}
	if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f
	}
	return raw
}

func stringify(val any) string {
	switch v := val.(type) {
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case int:
		return strconv.Itoa(v)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	default:
		return ""
	}
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

// Package cli implements the rootscan command line interface using cobra.
// Commands are thin: they resolve configuration, wire the core services
// and format results; all semantics live in internal/core/services.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/qamus-labs/rootscan-cli/internal/adapters/driven/config/file"
	"github.com/qamus-labs/rootscan-cli/internal/adapters/driven/corpus/morphtsv"
	"github.com/qamus-labs/rootscan-cli/internal/adapters/driven/corpus/uthmani"
	"github.com/qamus-labs/rootscan-cli/internal/core/ports/driven"
	"github.com/qamus-labs/rootscan-cli/internal/core/ports/driving"
	"github.com/qamus-labs/rootscan-cli/internal/core/services"
	"github.com/qamus-labs/rootscan-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Services used by the commands. Production runs wire them lazily from
// flags and config; tests substitute mocks.
var (
	configStore      driven.ConfigStore
	frequencyService driving.FrequencyService
	locatorService   driving.LocatorService
	annotatorService driving.AnnotatorService
)

var (
	verbose        bool
	morphologyFile string
	versesFile     string
)

var rootCmd = &cobra.Command{
	Use:   "rootscan",
	Short: "Quranic triliteral root research toolkit",
	Long: `rootscan works with the triliteral root system of Quranic Arabic.
It extracts root frequencies from a morphology table, locates every verse
containing a root, and bulk-annotates roots with LLM semantic analyses.

Roots are accepted in Arabic script or Buckwalter transliteration.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose diagnostic output")
	rootCmd.PersistentFlags().StringVar(&morphologyFile, "morphology", "",
		"path to the morphology TSV (default: corpus.morphology from config)")
	rootCmd.PersistentFlags().StringVar(&versesFile, "verses", "",
		"path to the verse corpus XML (default: corpus.verses from config)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// ensureConfigStore opens the TOML config store on first use.
func ensureConfigStore() (driven.ConfigStore, error) {
	if configStore != nil {
		return configStore, nil
	}
	store, err := file.NewConfigStore("")
	if err != nil {
		return nil, fmt.Errorf("opening config: %w", err)
	}
	configStore = store
	return configStore, nil
}

// resolvePath returns the flag value when set, otherwise the configured
// value under configKey.
func resolvePath(flagValue, configKey, what string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	store, err := ensureConfigStore()
	if err != nil {
		return "", err
	}
	if path := store.GetString(configKey); path != "" {
		return path, nil
	}
	return "", fmt.Errorf("no %s configured: pass the flag or set %s in the config", what, configKey)
}

// ensureFrequencyService wires the frequency service on first use.
func ensureFrequencyService() (driving.FrequencyService, error) {
	if frequencyService != nil {
		return frequencyService, nil
	}
	path, err := resolvePath(morphologyFile, "corpus.morphology", "morphology corpus (--morphology)")
	if err != nil {
		return nil, err
	}
	frequencyService = services.NewFrequencyService(morphtsv.New(path))
	return frequencyService, nil
}

// ensureLocatorService wires the locator service on first use. Loading the
// verse corpus happens here, once, so repeated lookups stay O(1).
func ensureLocatorService() (driving.LocatorService, error) {
	if locatorService != nil {
		return locatorService, nil
	}
	morphPath, err := resolvePath(morphologyFile, "corpus.morphology", "morphology corpus (--morphology)")
	if err != nil {
		return nil, err
	}
	versePath, err := resolvePath(versesFile, "corpus.verses", "verse corpus (--verses)")
	if err != nil {
		return nil, err
	}
	verses, err := uthmani.Load(versePath)
	if err != nil {
		return nil, fmt.Errorf("loading verse corpus: %w", err)
	}
	locatorService = services.NewLocatorService(morphtsv.New(morphPath), verses)
	return locatorService, nil
}

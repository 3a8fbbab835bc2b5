package file

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/qamus-labs/rootscan-cli/internal/core/ports/driven"
)

// Ensure ConfigStore implements the interface.
var _ driven.ConfigStore = (*ConfigStore)(nil)

// fileConfig is the on-disk shape of config.toml. The configuration is a
// closed schema, not a property bag: every key rootscan understands has a
// typed slot here, and Set rejects anything else.
type fileConfig struct {
	Corpus   corpusSection   `toml:"corpus,omitempty"`
	OpenAI   openAISection   `toml:"openai,omitempty"`
	Annotate annotateSection `toml:"annotate,omitempty"`
}

type corpusSection struct {
	Morphology string `toml:"morphology,omitempty"`
	Verses     string `toml:"verses,omitempty"`
}

type openAISection struct {
	APIKey  string `toml:"api_key,omitempty"`
	BaseURL string `toml:"base_url,omitempty"`
	Model   string `toml:"model,omitempty"`
}

type annotateSection struct {
	RateLimit float64 `toml:"rate_limit,omitempty"`
}

// accessor binds a dot-notation key to its slot in fileConfig.
type accessor struct {
	get func(*fileConfig) (any, bool)
	set func(*fileConfig, any) error
}

func stringField(slot func(*fileConfig) *string) accessor {
	return accessor{
		get: func(c *fileConfig) (any, bool) {
			if v := *slot(c); v != "" {
				return v, true
			}
			return nil, false
		},
		set: func(c *fileConfig, v any) error {
			s, ok := v.(string)
			if !ok {
				return fmt.Errorf("takes a string value, got %T", v)
			}
			*slot(c) = s
			return nil
		},
	}
}

func floatField(slot func(*fileConfig) *float64) accessor {
	return accessor{
		get: func(c *fileConfig) (any, bool) {
			if v := *slot(c); v != 0 {
				return v, true
			}
			return nil, false
		},
		set: func(c *fileConfig, v any) error {
			f, ok := toFloat(v)
			if !ok {
				return fmt.Errorf("takes a number, got %T", v)
			}
			if f < 0 {
				return errors.New("must not be negative")
			}
			*slot(c) = f
			return nil
		},
	}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	default:
		return 0, false
	}
}

// schema maps every known key to its accessor.
var schema = map[string]accessor{
	"corpus.morphology":   stringField(func(c *fileConfig) *string { return &c.Corpus.Morphology }),
	"corpus.verses":       stringField(func(c *fileConfig) *string { return &c.Corpus.Verses }),
	"openai.api_key":      stringField(func(c *fileConfig) *string { return &c.OpenAI.APIKey }),
	"openai.base_url":     stringField(func(c *fileConfig) *string { return &c.OpenAI.BaseURL }),
	"openai.model":        stringField(func(c *fileConfig) *string { return &c.OpenAI.Model }),
	"annotate.rate_limit": floatField(func(c *fileConfig) *float64 { return &c.Annotate.RateLimit }),
}

// ConfigStore is a file-based implementation of driven.ConfigStore using
// TOML. Configuration is stored in the rootscan config directory.
type ConfigStore struct {
	mu       sync.RWMutex
	filePath string
	cfg      fileConfig
}

// NewConfigStore creates a new TOML-based config store.
// If configDir is empty, defaults to ~/.rootscan/config.toml.
func NewConfigStore(configDir string) (*ConfigStore, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		configDir = filepath.Join(home, ".rootscan")
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, err
	}

	s := &ConfigStore{filePath: filepath.Join(configDir, "config.toml")}
	if err := s.Load(); err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	return s, nil
}

// Get retrieves a configuration value by key. Unset values and keys
// outside the schema report not-found.
func (s *ConfigStore) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := schema[key]
	if !ok {
		return nil, false
	}
	return a.get(&s.cfg)
}

// GetString retrieves a string configuration value.
func (s *ConfigStore) GetString(key string) string {
	val, ok := s.Get(key)
	if !ok {
		return ""
	}
	str, _ := val.(string)
	return str
}

// GetInt retrieves an integer configuration value. Floating-point
// values are truncated.
func (s *ConfigStore) GetInt(key string) int {
	val, ok := s.Get(key)
	if !ok {
		return 0
	}
	f, _ := toFloat(val)
	return int(f)
}

// GetFloat retrieves a floating-point configuration value.
func (s *ConfigStore) GetFloat(key string) float64 {
	val, ok := s.Get(key)
	if !ok {
		return 0
	}
	f, _ := toFloat(val)
	return f
}

// GetBool retrieves a boolean configuration value. The current schema
// holds no booleans, so this only ever reports false.
func (s *ConfigStore) GetBool(key string) bool {
	val, ok := s.Get(key)
	if !ok {
		return false
	}
	b, _ := val.(bool)
	return b
}

// Set stores a configuration value and persists immediately. Keys outside
// the schema and values of the wrong type are rejected.
func (s *ConfigStore) Set(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := schema[key]
	if !ok {
		return fmt.Errorf("unknown config key %q", key)
	}
	if err := a.set(&s.cfg, value); err != nil {
		return fmt.Errorf("config key %s: %w", key, err)
	}
	return s.save()
}

// Save persists the current configuration to disk.
func (s *ConfigStore) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save()
}

// save writes configuration to the TOML file (caller must hold lock).
func (s *ConfigStore) save() error {
	data, err := toml.Marshal(s.cfg)
	if err != nil {
		return err
	}

	// Holds the API key, so keep it private to the owner.
	return os.WriteFile(s.filePath, data, 0600)
}

// Load reads configuration from the TOML file. Keys the schema does not
// know are ignored, so a hand-edited file with extras still loads.
func (s *ConfigStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			// No config file yet - that's fine, start empty
			s.cfg = fileConfig{}
			return nil
		}
		return err
	}

	var loaded fileConfig
	if err := toml.Unmarshal(data, &loaded); err != nil {
		return err
	}
	s.cfg = loaded
	return nil
}

// Path returns the configuration file path.
func (s *ConfigStore) Path() string {
	return s.filePath
}

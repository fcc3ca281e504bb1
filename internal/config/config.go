package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
	yamlv3 "gopkg.in/yaml.v3"
)

// FileName is the config file looked up in the working directory.
const FileName = "qualifier.yaml"

// EnvPrefix prefixes environment overrides, e.g. QUALIFIER_LOG_LEVEL.
const EnvPrefix = "QUALIFIER_"

// Config represents qualifier.yaml.
type Config struct {
	RateSheet string        `koanf:"rate_sheet" yaml:"rate_sheet"`
	DataDir   string        `koanf:"data_dir" yaml:"data_dir"`
	Banner    bool          `koanf:"banner" yaml:"banner"`
	Log       LogConfig     `koanf:"log" yaml:"log"`
	History   HistoryConfig `koanf:"history" yaml:"history"`
}

// LogConfig controls diagnostic logging on stderr.
type LogConfig struct {
	Level  string `koanf:"level" yaml:"level"`
	Format string `koanf:"format" yaml:"format"` // console or json
}

// HistoryConfig controls the qualification run log.
type HistoryConfig struct {
	Enabled bool   `koanf:"enabled" yaml:"enabled"`
	Path    string `koanf:"path" yaml:"path"`
}

// pathKeys are resolved against the config file's directory when relative.
var pathKeys = []string{"rate_sheet", "data_dir", "history.path"}

// flagKeys maps flag names to config keys. Flags not listed are not config.
var flagKeys = map[string]string{
	"rate-sheet": "rate_sheet",
	"data-dir":   "data_dir",
	"log-level":  "log.level",
	"log-format": "log.format",
	"history":    "history.enabled",
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		DataDir: "data",
		Banner:  true,
		Log: LogConfig{
			Level:  "warn",
			Format: "console",
		},
		History: HistoryConfig{
			Enabled: false,
			Path:    filepath.Join("logs", "qualifier-history.csv"),
		},
	}
}

// Load builds the configuration from, in increasing priority: defaults,
// the config file, a .env file, QUALIFIER_* environment variables and
// explicitly set flags. path names the config file; when empty,
// qualifier.yaml in the working directory is used if present. flags may be nil.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	def := Default()
	if err := k.Load(confmap.Provider(map[string]any{
		"rate_sheet":      def.RateSheet,
		"data_dir":        def.DataDir,
		"banner":          def.Banner,
		"log.level":       def.Log.Level,
		"log.format":      def.Log.Format,
		"history.enabled": def.History.Enabled,
		"history.path":    def.History.Path,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	explicit := path != ""
	if !explicit {
		path = FileName
	}
	if _, err := os.Stat(path); err == nil {
		if err := loadFile(k, path); err != nil {
			return nil, err
		}
	} else if explicit {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading environment: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			key, ok := flagKeys[f.Name]
			if !ok || !f.Changed {
				return "", nil
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("loading flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	return &cfg, nil
}

// loadFile merges the YAML file at path into k, anchoring relative paths
// at the file's directory.
func loadFile(k *koanf.Koanf, path string) error {
	fk := koanf.New(".")
	if err := fk.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolving path: %w", err)
	}
	base := filepath.Dir(abs)
	for _, key := range pathKeys {
		v := fk.String(key)
		if v == "" || filepath.IsAbs(v) {
			continue
		}
		if err := fk.Set(key, filepath.Join(base, v)); err != nil {
			return fmt.Errorf("resolving %s: %w", key, err)
		}
	}

	if err := k.Merge(fk); err != nil {
		return fmt.Errorf("merging config %s: %w", path, err)
	}
	return nil
}

// envKey maps QUALIFIER_LOG_LEVEL to log.level and QUALIFIER_RATE_SHEET to rate_sheet.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	for _, section := range []string{"log_", "history_"} {
		if strings.HasPrefix(key, section) {
			return strings.TrimSuffix(section, "_") + "." + strings.TrimPrefix(key, section)
		}
	}
	return key
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yamlv3.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

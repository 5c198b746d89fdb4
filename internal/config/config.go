package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/agentdex-labs/agentdex/internal/branding"
	"github.com/agentdex-labs/agentdex/internal/manifest"
	"github.com/agentdex-labs/agentdex/internal/scanner"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Config keys recognized in the config file and environment.
const (
	KeyRoot      = "root"       // default scan root
	KeyOutput    = "output"     // default manifest output path
	KeyPatterns  = "patterns"   // candidate filename patterns
	KeyTaxonomy  = "taxonomy"   // taxonomy override file path
	KeyLogLevel  = "log_level"  // debug|info|warn|error
	KeyLogFormat = "log_format" // console|json
)

// DefaultOutput resolves the manifest path used when no output path is
// configured: the standard manifest filename under the scan root.
func DefaultOutput(root string) string {
	return filepath.Join(root, manifest.FileName)
}

// Dir returns the path to the config directory (~/.agentdex/). The
// AGENTDEX_HOME environment variable relocates it, which keeps tests and
// CI away from the real home directory.
func Dir() string {
	if v := os.Getenv(branding.EnvVar("HOME")); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.agentdex/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes Viper to read from the config file and environment.
// Missing config files are fine; defaults and env vars still apply.
func Load() {
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.AutomaticEnv()

	viper.SetDefault(KeyPatterns, scanner.DefaultPatterns)
	viper.SetDefault(KeyLogLevel, "info")
	viper.SetDefault(KeyLogFormat, "console")

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// GetStrings returns a list-valued config key (e.g., patterns).
func GetStrings(key string) []string {
	return viper.GetStringSlice(key)
}

// Patterns returns the configured candidate filename patterns, falling back
// to the scanner defaults when unset.
func Patterns() []string {
	if p := GetStrings(KeyPatterns); len(p) > 0 {
		return p
	}
	return scanner.DefaultPatterns
}

// Set writes a config key-value pair and saves the config file.
func Set(key, value string) error {
	if err := EnsureDir(); err != nil {
		return err
	}

	viper.Set(key, value)

	configFile := FilePath()

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the devkit configuration.
type Config struct {
	Provider string        `yaml:"provider"`
	Model    string        `yaml:"model"`
	BaseURL  string        `yaml:"baseURL,omitempty"`
	APIKey   string        `yaml:"-"`
	Format   string        `yaml:"format"`
	Review   ReviewConfig  `yaml:"review"`
	Bundle   BundleConfig  `yaml:"bundle"`
	Cache    CacheConfig   `yaml:"cache"`
	Privacy  PrivacyConfig `yaml:"privacy"`
}

// ReviewConfig controls the diff sent for review.
type ReviewConfig struct {
	MaxDiffChars int `yaml:"maxDiffChars"`
}

// BundleConfig controls copycode.
type BundleConfig struct {
	IgnoreFile       string   `yaml:"ignoreFile"`
	ExtraIgnores     []string `yaml:"extraIgnores,omitempty"`
	LargeOutputLimit int      `yaml:"largeOutputLimit"`
	Concurrency      int      `yaml:"concurrency,omitempty"`
}

// CacheConfig controls caching behavior.
type CacheConfig struct {
	Enabled    bool   `yaml:"enabled"`
	Dir        string `yaml:"dir,omitempty"`
	TTLSeconds int    `yaml:"ttlSeconds"`
}

// PrivacyConfig controls redaction behavior.
type PrivacyConfig struct {
	RedactSecrets bool     `yaml:"redactSecrets"`
	RedactPaths   []string `yaml:"redactPaths,omitempty"`
}

// Default returns a Config with all defaults applied.
func Default() Config {
	return Config{
		Provider: "openai",
		Model:    "glm-4.6v-flash",
		Format:   "text",
		Review: ReviewConfig{
			MaxDiffChars: 15000,
		},
		Bundle: BundleConfig{
			IgnoreFile:       ".gitignore",
			LargeOutputLimit: 500000,
		},
		Cache: CacheConfig{
			Enabled:    true,
			TTLSeconds: 86400,
		},
		Privacy: PrivacyConfig{
			RedactSecrets: true,
			RedactPaths:   []string{"**/.env", "**/*secrets*"},
		},
	}
}

// ConfigDir returns the platform-appropriate config directory for devkit.
func ConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "devkit"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "devkit"), nil
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "devkit"), nil
		}
		return filepath.Join(home, "AppData", "Roaming", "devkit"), nil
	default:
		return filepath.Join(home, ".config", "devkit"), nil
	}
}

// ConfigPath returns the full path to the config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// LoadFile returns the defaults overlaid with the config file. Keys absent
// from the file keep their default. A missing file is not an error.
func LoadFile() (Config, error) {
	cfg := Default()
	path, err := ConfigPath()
	if err != nil {
		return cfg, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parsing config file: %w", err)
	}
	return cfg, nil
}

// Save writes the config to the config file.
func Save(cfg Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// LoadDotEnv loads KEY=VALUE pairs from path into the process environment.
// Variables already set are left alone. A missing file is not an error.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// Load builds the effective config by merging: defaults <- file <- env <- overrides.
// The overrides map comes from CLI flags (only non-zero values should be set).
func Load(overrides map[string]string) (Config, error) {
	cfg, err := LoadFile()
	if err != nil {
		return Config{}, err
	}
	if err := mergeEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := mergeOverrides(&cfg, overrides); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// mergeEnv applies the AI_* variables shared with other OpenAI-compatible
// tools, then the DEVKIT_* variables, which win.
func mergeEnv(cfg *Config) error {
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.APIKey = v
	}
	if v := os.Getenv("AI_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("AI_MODEL"); v != "" {
		cfg.Model = v
	}
	for _, key := range envKeys {
		v := os.Getenv(key.env)
		if v == "" {
			continue
		}
		if err := SetField(cfg, key.field, v); err != nil {
			return fmt.Errorf("%s: %w", key.env, err)
		}
	}
	return nil
}

var envKeys = []struct {
	env   string
	field string
}{
	{"DEVKIT_PROVIDER", "provider"},
	{"DEVKIT_MODEL", "model"},
	{"DEVKIT_BASE_URL", "baseURL"},
	{"DEVKIT_FORMAT", "format"},
	{"DEVKIT_MAX_DIFF_CHARS", "review.maxDiffChars"},
	{"DEVKIT_IGNORE_FILE", "bundle.ignoreFile"},
	{"DEVKIT_LARGE_OUTPUT_LIMIT", "bundle.largeOutputLimit"},
	{"DEVKIT_CONCURRENCY", "bundle.concurrency"},
	{"DEVKIT_REDACT_SECRETS", "privacy.redactSecrets"},
}

func mergeOverrides(cfg *Config, overrides map[string]string) error {
	for key, v := range overrides {
		if v == "" {
			continue
		}
		if err := SetField(cfg, key, v); err != nil {
			return err
		}
	}
	return nil
}

// Keys lists every key accepted by SetField.
func Keys() []string {
	return []string{
		"provider", "model", "baseURL", "format",
		"review.maxDiffChars",
		"bundle.ignoreFile", "bundle.extraIgnores", "bundle.largeOutputLimit", "bundle.concurrency",
		"cache.enabled", "cache.dir", "cache.ttlSeconds",
		"privacy.redactSecrets", "privacy.redactPaths",
	}
}

// SetField sets a single config field by key name. Returns error if key is unknown.
func SetField(cfg *Config, key, value string) error {
	switch key {
	case "provider":
		cfg.Provider = value
	case "model":
		cfg.Model = value
	case "baseURL":
		cfg.BaseURL = value
	case "format":
		switch value {
		case "text", "markdown", "json", "html":
		default:
			return fmt.Errorf("format must be text, markdown, json or html, got %q", value)
		}
		cfg.Format = value
	case "review.maxDiffChars":
		return setInt(&cfg.Review.MaxDiffChars, key, value)
	case "bundle.ignoreFile":
		cfg.Bundle.IgnoreFile = value
	case "bundle.extraIgnores":
		cfg.Bundle.ExtraIgnores = splitList(value)
	case "bundle.largeOutputLimit":
		return setInt(&cfg.Bundle.LargeOutputLimit, key, value)
	case "bundle.concurrency":
		return setInt(&cfg.Bundle.Concurrency, key, value)
	case "cache.enabled":
		return setBool(&cfg.Cache.Enabled, key, value)
	case "cache.dir":
		cfg.Cache.Dir = value
	case "cache.ttlSeconds":
		return setInt(&cfg.Cache.TTLSeconds, key, value)
	case "privacy.redactSecrets":
		return setBool(&cfg.Privacy.RedactSecrets, key, value)
	case "privacy.redactPaths":
		cfg.Privacy.RedactPaths = splitList(value)
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return nil
}

func setInt(dst *int, key, value string) error {
	n, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("%s must be an integer: %w", key, err)
	}
	if n < 0 {
		return fmt.Errorf("%s must not be negative", key)
	}
	*dst = n
	return nil
}

func setBool(dst *bool, key, value string) error {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("%s must be true or false: %w", key, err)
	}
	*dst = b
	return nil
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Package config exposes strongly typed application configuration structs loaded from YAML, with environment
// overrides.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override, e.g. PAIRS_PROVIDER_NAME.
const EnvPrefix = "PAIRS"

// App captures process-wide runtime settings such as name, environment, metrics, and logging levels.
type App struct {
	Name        string `yaml:"name" split_words:"true"`
	Env         string `yaml:"env" split_words:"true"`
	MetricsAddr string `yaml:"metrics_addr" split_words:"true"`
	LogLevel    string `yaml:"log_level" split_words:"true"`
}

// Provider selects and tunes the daily quote source.
type Provider struct {
	Name       string `yaml:"name" split_words:"true"`
	BaseURL    string `yaml:"base_url" split_words:"true"`
	APIKey     string `yaml:"api_key" envconfig:"ALPHA_VANTAGE_API_KEY"`
	OutputSize string `yaml:"output_size" split_words:"true"`
	DataDir    string `yaml:"data_dir" split_words:"true"`
	TimeoutMs  int    `yaml:"timeout_ms" split_words:"true"`
	// RequestsPerMinute caps outgoing calls; negative disables the limiter.
	RequestsPerMinute int `yaml:"requests_per_minute" split_words:"true"`
	StubBars          int `yaml:"stub_bars" split_words:"true"`
}

// StrategyParams groups tunable knobs for a strategy implementation.
type StrategyParams struct {
	EntryMultiple float64 `yaml:"entry_multiple" split_words:"true"`
	ExitMultiple  float64 `yaml:"exit_multiple" split_words:"true"`
}

// Strategy specifies which strategy is active along with the parameter bundle.
type Strategy struct {
	Mode   string         `yaml:"mode" split_words:"true"`
	Params StrategyParams `yaml:"params"`
}

// Config collects every configuration leaf for easy marshaling from YAML.
type Config struct {
	App      App      `yaml:"app"`
	Provider Provider `yaml:"provider"`
	Strategy Strategy `yaml:"strategy"`
}

// Defaults returns the configuration used when no file is given.
func Defaults() *Config {
	return &Config{
		App: App{Name: "pair-trading-app", Env: "dev", LogLevel: "info"},
		Provider: Provider{
			Name:              "stub",
			OutputSize:        "compact",
			TimeoutMs:         10000,
			RequestsPerMinute: 5,
		},
		Strategy: Strategy{
			Mode:   "zscore_bands",
			Params: StrategyParams{EntryMultiple: 0.75, ExitMultiple: 0.25},
		},
	}
}

// Load reads a YAML file from disk over the defaults, then applies .env and PAIRS_* overrides.
// An empty path skips the file.
func Load(path string) (*Config, error) {
	config := Defaults()
	if path != "" {
		file, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		if err := yaml.NewDecoder(file).Decode(config); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
	}
	if err := LoadDotEnv(".env"); err != nil {
		return nil, err
	}
	if err := envconfig.Process(EnvPrefix, config); err != nil {
		return nil, fmt.Errorf("env overrides: %w", err)
	}
	return config, nil
}

// LoadDotEnv exports the variables in path without overriding ones already set. A missing file is not an error.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// Save persists a Config struct to disk as YAML.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("nil config")
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Package config provides Viper-based hierarchical configuration management
// for the pipeline: defaults, then an optional YAML file, then environment
// variables with the BANKCSV prefix.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the complete application configuration.
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	CSV struct {
		Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
	} `mapstructure:"csv" yaml:"csv"`

	Parsing struct {
		DefaultCurrency string `mapstructure:"default_currency" yaml:"default_currency"`
		BatchSize       int    `mapstructure:"batch_size" yaml:"batch_size"`
		MaxRows         int    `mapstructure:"max_rows" yaml:"max_rows"`
		MaxFileBytes    int64  `mapstructure:"max_file_bytes" yaml:"max_file_bytes"`
		SampleRows      int    `mapstructure:"sample_rows" yaml:"sample_rows"`
	} `mapstructure:"parsing" yaml:"parsing"`

	Categorization struct {
		CategoriesFile string `mapstructure:"categories_file" yaml:"categories_file"`
	} `mapstructure:"categorization" yaml:"categorization"`
}

// InitializeConfig loads configuration with hierarchical precedence.
func InitializeConfig() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.bank-csv")
	v.AddConfigPath(".bank-csv")
	v.AddConfigPath(".")

	v.SetEnvPrefix("BANKCSV")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Config file is optional; defaults and env vars are enough to run.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Printf("Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("csv.delimiter", ",")

	v.SetDefault("parsing.default_currency", "USD")
	v.SetDefault("parsing.batch_size", 1000)
	v.SetDefault("parsing.max_rows", 10000)
	v.SetDefault("parsing.max_file_bytes", int64(16*1024*1024))
	v.SetDefault("parsing.sample_rows", 10)

	v.SetDefault("categorization.categories_file", "categories.yaml")
}

func validateConfig(config *Config) error {
	switch strings.ToLower(config.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("log.level must be one of debug/info/warn/error, got %q", config.Log.Level)
	}

	switch strings.ToLower(config.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", config.Log.Format)
	}

	if len(config.CSV.Delimiter) != 1 {
		return fmt.Errorf("csv.delimiter must be a single character, got %q", config.CSV.Delimiter)
	}

	if len(config.Parsing.DefaultCurrency) != 3 {
		return fmt.Errorf("parsing.default_currency must be a 3-letter code, got %q", config.Parsing.DefaultCurrency)
	}
	config.Parsing.DefaultCurrency = strings.ToUpper(config.Parsing.DefaultCurrency)

	if config.Parsing.BatchSize <= 0 {
		return fmt.Errorf("parsing.batch_size must be positive, got %d", config.Parsing.BatchSize)
	}
	if config.Parsing.MaxRows <= 0 {
		return fmt.Errorf("parsing.max_rows must be positive, got %d", config.Parsing.MaxRows)
	}
	if config.Parsing.MaxFileBytes <= 0 {
		return fmt.Errorf("parsing.max_file_bytes must be positive, got %d", config.Parsing.MaxFileBytes)
	}
	if config.Parsing.SampleRows <= 0 {
		return fmt.Errorf("parsing.sample_rows must be positive, got %d", config.Parsing.SampleRows)
	}

	return nil
}

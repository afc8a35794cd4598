// Package config provides Viper-based hierarchical configuration management.
// Values come from defaults, then an optional config.yaml, then BUDGET_* environment
// variables, then command-line flags bound by the caller.
package config

import (
	"errors"
	"fmt"
	"strings"

	"fjacquet/budget-csv/internal/dateutils"
	"fjacquet/budget-csv/internal/logging"
	"fjacquet/budget-csv/internal/store"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of every environment variable read by the application.
const EnvPrefix = "BUDGET"

// Config represents the complete application configuration
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	CSV struct {
		Delimiter        string `mapstructure:"delimiter" yaml:"delimiter"`
		InputDateLayout  string `mapstructure:"input_date_layout" yaml:"input_date_layout"`
		ExportDateLayout string `mapstructure:"export_date_layout" yaml:"export_date_layout"`
	} `mapstructure:"csv" yaml:"csv"`

	Categories struct {
		File string `mapstructure:"file" yaml:"file"`
	} `mapstructure:"categories" yaml:"categories"`

	Report struct {
		Currency string `mapstructure:"currency" yaml:"currency"`
	} `mapstructure:"report" yaml:"report"`
}

// InitializeConfig loads configuration with the default search paths.
func InitializeConfig() (*Config, error) {
	return Load(viper.New())
}

// Load reads configuration through v. Callers may bind flags on v before calling.
func Load(v *viper.Viper) (*Config, error) {
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.budget-csv")
	v.AddConfigPath(".budget-csv")
	v.AddConfigPath(".")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file %s: %w", v.ConfigFileUsed(), err)
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
	v.SetDefault("csv.input_date_layout", "02 Jan 2006")
	v.SetDefault("csv.export_date_layout", "02/01/2006")

	v.SetDefault("categories.file", store.DefaultCategoriesFile)

	v.SetDefault("report.currency", "AED")
}

func validateConfig(config *Config) error {
	if _, err := logging.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if len([]rune(config.CSV.Delimiter)) != 1 {
		return fmt.Errorf("CSV delimiter must be a single character, got: %q", config.CSV.Delimiter)
	}

	for name, layout := range map[string]string{
		"csv.input_date_layout":  config.CSV.InputDateLayout,
		"csv.export_date_layout": config.CSV.ExportDateLayout,
	} {
		if !dateutils.IsDateLayout(layout) {
			return fmt.Errorf("%s is not a usable date layout: %q", name, layout)
		}
	}

	if strings.TrimSpace(config.Categories.File) == "" {
		return fmt.Errorf("categories.file must not be empty")
	}

	return nil
}

// DelimiterRune returns the configured CSV delimiter as a rune.
func (c *Config) DelimiterRune() rune {
	return []rune(c.CSV.Delimiter)[0]
}

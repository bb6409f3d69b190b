// Package config provides Viper-based hierarchical configuration management
package config

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"fjacquet/sepa-pain/internal/currencyutils"
	"fjacquet/sepa-pain/internal/report"
	"fjacquet/sepa-pain/internal/rules"
)

// Config represents the complete application configuration
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	SEPA struct {
		Version           string `mapstructure:"version" yaml:"version"`
		InitiatingParty   string `mapstructure:"initiating_party" yaml:"initiating_party"`
		InitiatingPartyID string `mapstructure:"initiating_party_id" yaml:"initiating_party_id"`
		CheckAndSanitize  bool   `mapstructure:"check_and_sanitize" yaml:"check_and_sanitize"`
		GermanReplacement bool   `mapstructure:"german_replacement" yaml:"german_replacement"`
		CountryTable      string `mapstructure:"country_table" yaml:"country_table"`
	} `mapstructure:"sepa" yaml:"sepa"`

	Output struct {
		Directory        string `mapstructure:"directory" yaml:"directory"`
		FilenameTemplate string `mapstructure:"filename_template" yaml:"filename_template"`
		Zip              bool   `mapstructure:"zip" yaml:"zip"`
		ControlList      bool   `mapstructure:"control_list" yaml:"control_list"`
		MultiFile        bool   `mapstructure:"multi_file" yaml:"multi_file"`
		Wrap             bool   `mapstructure:"wrap" yaml:"wrap"`
	} `mapstructure:"output" yaml:"output"`

	CSV struct {
		Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
	} `mapstructure:"csv" yaml:"csv"`

	ControlList struct {
		Format             string `mapstructure:"format" yaml:"format"`
		DateFormat         string `mapstructure:"date_format" yaml:"date_format"`
		DecimalSeparator   string `mapstructure:"decimal_separator" yaml:"decimal_separator"`
		ThousandsSeparator string `mapstructure:"thousands_separator" yaml:"thousands_separator"`
		CurrencyFormat     string `mapstructure:"currency_format" yaml:"currency_format"`
	} `mapstructure:"control_list" yaml:"control_list"`
}

// InitializeConfig initializes Viper configuration with hierarchical loading
func InitializeConfig() (*Config, error) {
	return initializeConfig("")
}

// InitializeConfigFile is InitializeConfig with an explicit config file.
func InitializeConfigFile(path string) (*Config, error) {
	return initializeConfig(path)
}

func initializeConfig(path string) (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Config file locations
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.sepa-pain")
		v.AddConfigPath(".sepa-pain")
		v.AddConfigPath(".")
	}

	// 3. Environment variables
	v.SetEnvPrefix("SEPA")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 4. Read config file (optional unless given explicitly)
	if err := v.ReadInConfig(); err != nil {
		if path != "" {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Log the error but don't fail - continue with defaults and env vars
			fmt.Printf("Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 5. Validate configuration
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	// Document defaults
	v.SetDefault("sepa.version", string(rules.CT00100303))
	v.SetDefault("sepa.initiating_party", "")
	v.SetDefault("sepa.initiating_party_id", "")
	v.SetDefault("sepa.check_and_sanitize", true)
	v.SetDefault("sepa.german_replacement", false)
	v.SetDefault("sepa.country_table", "")

	// Output defaults
	v.SetDefault("output.directory", ".")
	v.SetDefault("output.filename_template", "%msgId%")
	v.SetDefault("output.zip", false)
	v.SetDefault("output.control_list", false)
	v.SetDefault("output.multi_file", false)
	v.SetDefault("output.wrap", false)

	// CSV defaults
	v.SetDefault("csv.delimiter", ",")

	// Control list defaults
	v.SetDefault("control_list.format", report.FormatCSV)
	v.SetDefault("control_list.date_format", "02.01.2006")
	v.SetDefault("control_list.decimal_separator", ",")
	v.SetDefault("control_list.thousands_separator", ".")
	v.SetDefault("control_list.currency_format", "%s €")
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	// Validate log level
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	// Validate log format
	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	// Validate schema version
	if _, err := rules.ParseVersion(config.SEPA.Version); err != nil {
		return fmt.Errorf("invalid sepa.version: %w", err)
	}

	// Validate CSV delimiter
	if len([]rune(config.CSV.Delimiter)) != 1 {
		return fmt.Errorf("CSV delimiter must be a single character, got: %s", config.CSV.Delimiter)
	}

	switch config.ControlList.Format {
	case report.FormatCSV, report.FormatJSON, report.FormatXML:
	default:
		return fmt.Errorf("control_list.format must be csv, json or xml, got: %s", config.ControlList.Format)
	}

	if config.ControlList.DecimalSeparator == "" {
		return fmt.Errorf("control_list.decimal_separator cannot be empty")
	}
	if config.ControlList.DecimalSeparator == config.ControlList.ThousandsSeparator {
		return fmt.Errorf("control_list decimal and thousands separators must differ")
	}

	if !strings.Contains(config.Output.FilenameTemplate, "%msgId%") &&
		!strings.Contains(config.Output.FilenameTemplate, "%initgPty%") {
		return fmt.Errorf("output.filename_template must contain %%msgId%% or %%initgPty%%, got: %s", config.Output.FilenameTemplate)
	}

	return nil
}

// ConfigureLoggingFromConfig configures logging based on the Config struct
func ConfigureLoggingFromConfig(config *Config) *logrus.Logger {
	logger := logrus.New()

	// Parse and set log level
	logLevel, err := logrus.ParseLevel(strings.ToLower(config.Log.Level))
	if err != nil {
		logger.Warnf("Invalid log level '%s', using 'info'", config.Log.Level)
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Configure log format
	if strings.ToLower(config.Log.Format) == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return logger
}

// Delimiter returns the CSV delimiter as a rune.
func (c *Config) Delimiter() rune {
	return []rune(c.CSV.Delimiter)[0]
}

// ReportOptions returns the control list formatting options.
func (c *Config) ReportOptions() report.Options {
	return report.Options{
		MoneyFormat: currencyutils.MoneyFormat{
			DecimalSeparator:   c.ControlList.DecimalSeparator,
			ThousandsSeparator: c.ControlList.ThousandsSeparator,
			CurrencyFormat:     c.ControlList.CurrencyFormat,
		},
		DateLayout: c.ControlList.DateFormat,
		Delimiter:  c.Delimiter(),
	}
}

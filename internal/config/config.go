// Package config provides configuration management for the eligibility pipeline.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"eligibility/internal/models"
	"eligibility/internal/source"
	"eligibility/pkg/datefmt"

	"gopkg.in/yaml.v3"
)

// Configuration validation errors.
var (
	ErrNoPartners            = errors.New("at least one partner is required")
	ErrDuplicatePartner      = errors.New("partner is defined more than once")
	ErrInvalidPartnersBlock  = errors.New("partners must be a mapping of partner id to partner config")
	ErrMissingPartnerCode    = errors.New("partner_code is required")
	ErrMissingFilePattern    = errors.New("file_pattern is required")
	ErrInvalidFilePattern    = errors.New("file_pattern is not a valid glob")
	ErrInvalidDelimiter      = errors.New("delimiter must be exactly one character")
	ErrMissingColumnMapping  = errors.New("column_mapping is required")
	ErrUnknownCanonicalField = errors.New("column_mapping target is not a canonical field")
	ErrMissingDateFormat     = errors.New("date_format is required")
	ErrInvalidDateFormat     = errors.New("date_format is invalid")
	ErrUnsupportedEncoding   = errors.New("encoding is not supported")
	ErrInvalidOutputFormat   = errors.New("output.format must be one of: csv, jsonl, avro")
	ErrMissingS3Bucket       = errors.New("output.s3.bucket is required when s3 upload is enabled")
	ErrInvalidLogLevel       = errors.New("logging.level must be one of: debug, info, warn, error")
)

// Output formats.
const (
	FormatCSV   = "csv"
	FormatJSONL = "jsonl"
	FormatAvro  = "avro"
)

// Defaults applied to fields left out of the YAML file.
const (
	DefaultEncoding = "utf-8"
	DefaultFormat   = FormatCSV
	DefaultLogLevel = "info"
)

// Config represents the complete pipeline configuration.
type Config struct {
	Partners Partners      `yaml:"partners"`
	Output   OutputConfig  `yaml:"output"`
	Logging  LoggingConfig `yaml:"logging"`
}

// PartnerConfig describes one partner's file format and column contract.
type PartnerConfig struct {
	ColumnMapping map[string]string `yaml:"column_mapping"`
	PartnerCode   string            `yaml:"partner_code"`
	Description   string            `yaml:"description"`
	FilePattern   string            `yaml:"file_pattern"`
	Delimiter     string            `yaml:"delimiter"`
	Encoding      string            `yaml:"encoding"`
	DateFormat    string            `yaml:"date_format"`
	HasHeader     bool              `yaml:"has_header"`
}

// DelimiterRune returns the field delimiter as a rune. The two-character
// escape `\t` and the word "tab" both denote a tab.
func (p *PartnerConfig) DelimiterRune() (rune, error) {
	switch p.Delimiter {
	case `\t`, "tab":
		return '\t', nil
	}

	if utf8.RuneCountInString(p.Delimiter) != 1 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDelimiter, p.Delimiter)
	}

	r, _ := utf8.DecodeRuneInString(p.Delimiter)

	return r, nil
}

// Validate checks one partner's configuration.
func (p *PartnerConfig) Validate() error {
	if p.PartnerCode == "" {
		return ErrMissingPartnerCode
	}

	if p.FilePattern == "" {
		return ErrMissingFilePattern
	}

	if _, err := filepath.Match(p.FilePattern, ""); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidFilePattern, p.FilePattern)
	}

	if _, err := p.DelimiterRune(); err != nil {
		return err
	}

	if _, err := source.LookupEncoding(p.Encoding); err != nil {
		return fmt.Errorf("%w: %q", ErrUnsupportedEncoding, p.Encoding)
	}

	if len(p.ColumnMapping) == 0 {
		return ErrMissingColumnMapping
	}

	for column, field := range p.ColumnMapping {
		if !models.IsCanonicalField(field) {
			return fmt.Errorf("%w: %q -> %q", ErrUnknownCanonicalField, column, field)
		}
	}

	if p.DateFormat == "" {
		return ErrMissingDateFormat
	}

	if _, err := datefmt.Layout(p.DateFormat); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDateFormat, err)
	}

	return nil
}

// OutputConfig defines output behavior.
type OutputConfig struct {
	Format     string   `yaml:"format"`
	ReportPath string   `yaml:"report_path"`
	S3         S3Config `yaml:"s3"`
}

// S3Config describes the optional upload of the unified output.
type S3Config struct {
	Bucket    string `yaml:"bucket"`
	Region    string `yaml:"region"`
	Endpoint  string `yaml:"endpoint"`
	Prefix    string `yaml:"prefix"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Enabled   bool   `yaml:"enabled"`
}

// LoggingConfig defines logging behavior.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// LoadConfig loads configuration from YAML file.
func LoadConfig(filepath string) (*Config, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return Parse(data)
}

// Parse decodes YAML configuration data, applies defaults and validates it.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// SaveConfig saves configuration to YAML file.
func (c *Config) SaveConfig(filepath string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filepath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func (c *Config) applyDefaults() {
	if c.Output.Format == "" {
		c.Output.Format = DefaultFormat
	}

	if c.Logging.Level == "" {
		c.Logging.Level = DefaultLogLevel
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if len(c.Partners) == 0 {
		return ErrNoPartners
	}

	for _, p := range c.Partners {
		if err := p.Config.Validate(); err != nil {
			return fmt.Errorf("partner %q: %w", p.ID, err)
		}
	}

	switch c.Output.Format {
	case FormatCSV, FormatJSONL, FormatAvro:
	default:
		return ErrInvalidOutputFormat
	}

	if c.Output.S3.Enabled && c.Output.S3.Bucket == "" {
		return ErrMissingS3Bucket
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return ErrInvalidLogLevel
	}

	return nil
}

// Partner returns the configuration registered under id.
func (c *Config) Partner(id string) (*PartnerConfig, bool) {
	for i := range c.Partners {
		if c.Partners[i].ID == id {
			return &c.Partners[i].Config, true
		}
	}

	return nil, false
}

// String returns a string representation of the config.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{Partners: %d, Format: %s, S3: %t}",
		len(c.Partners),
		c.Output.Format,
		c.Output.S3.Enabled,
	)
}

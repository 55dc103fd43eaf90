// Package config loads the command's configuration.
package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v3"

	"github.com/bjaus/datatable"
)

//go:embed default.yaml
var defaultConfig []byte

type (
	OutputConfig struct {
		Format   string `yaml:"format"`
		Border   string `yaml:"border"`
		MaxWidth int    `yaml:"max_width"`
	}

	TableConfig struct {
		TableCSS string `yaml:"table_css"`
		RowCSS   string `yaml:"row_css"`
	}

	Config struct {
		Output  OutputConfig  `yaml:"output"`
		Table   TableConfig   `yaml:"table"`
		Logging LoggingConfig `yaml:"logging"`
	}
)

// Prepare returns the embedded default configuration.
func Prepare() ([]byte, error) {
	return bytes.Clone(defaultConfig), nil
}

// LoadConfiguration reads the defaults and overlays the file at path, if
// any.
func LoadConfiguration(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultConfig, cfg); err != nil {
		return nil, fmt.Errorf("unable to parse default configuration: %w", err)
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("unable to read configuration file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("unable to parse configuration file '%s': %w", path, err)
		}
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Dump returns cfg as YAML.
func Dump(cfg *Config) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (c *Config) validate() error {
	if _, err := datatable.ParseFormat(c.Output.Format); err != nil {
		return fmt.Errorf("output.format: %w", err)
	}
	if _, err := datatable.ParseBorder(c.Output.Border); err != nil {
		return fmt.Errorf("output.border: %w", err)
	}
	if c.Output.MaxWidth < 0 {
		return fmt.Errorf("output.max_width must not be negative, got %d", c.Output.MaxWidth)
	}
	switch c.Logging.Level {
	case LevelNone, LevelNormal, LevelDebug:
	default:
		return fmt.Errorf("logging.level must be one of none, normal, debug, got %q", c.Logging.Level)
	}
	return nil
}

// TextOptions returns the text table options the output section describes.
func (c *Config) TextOptions() datatable.TextOptions {
	// validated on load
	border, _ := datatable.ParseBorder(c.Output.Border)
	return datatable.TextOptions{Border: border, MaxWidth: c.Output.MaxWidth}
}

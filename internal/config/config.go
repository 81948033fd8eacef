package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gyeh/ptclass/internal/classify"
	"github.com/gyeh/ptclass/internal/duration"
	"github.com/gyeh/ptclass/internal/tableio"
)

// OutputNone disables writing an output file.
const OutputNone = "none"

// Config holds all runtime configuration for a ptclass run.
type Config struct {
	FilePath     string
	LogFormat    string   // "text" or "json"
	InputFormat  string   `yaml:"input_format"`  // csv or parquet
	OutputFormat string   `yaml:"output_format"` // csv, parquet or none
	Method       string   `yaml:"method"`        // cluster, hybrid or hybrid-department
	Unit         string   `yaml:"unit"`          // duration unit for the duration command
	TextColumns  []string `yaml:"text_columns"`  // extra CSV columns never type-inferred
}

// yamlConfig is the on-disk YAML structure.
type yamlConfig struct {
	InputFormat  string   `yaml:"input_format"`
	OutputFormat string   `yaml:"output_format"`
	Method       string   `yaml:"method"`
	Unit         string   `yaml:"unit"`
	TextColumns  []string `yaml:"text_columns"`
}

// LoadFromFile reads a YAML config file and fills in every field the command
// line left empty. Text columns from the file are appended.
func (c *Config) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	var yc yamlConfig
	if err := yaml.Unmarshal(data, &yc); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	setIfEmpty(&c.InputFormat, yc.InputFormat)
	setIfEmpty(&c.OutputFormat, yc.OutputFormat)
	setIfEmpty(&c.Method, yc.Method)
	setIfEmpty(&c.Unit, yc.Unit)
	c.TextColumns = append(c.TextColumns, yc.TextColumns...)
	return c.validateEnums()
}

func setIfEmpty(dst *string, v string) {
	if *dst == "" {
		*dst = v
	}
}

// applyDefaults fills the enum fields still empty after flags and file.
func (c *Config) applyDefaults() {
	setIfEmpty(&c.InputFormat, "csv")
	setIfEmpty(&c.OutputFormat, c.InputFormat)
	setIfEmpty(&c.Method, classify.Cluster.String())
	setIfEmpty(&c.Unit, duration.Hours.String())
}

// validateEnums checks every non-empty enum field.
func (c *Config) validateEnums() error {
	if c.InputFormat != "" {
		if _, err := tableio.ParseKind(c.InputFormat); err != nil {
			return fmt.Errorf("input format: %w", err)
		}
	}
	if c.OutputFormat != "" && !c.NoOutput() {
		if _, err := tableio.ParseKind(c.OutputFormat); err != nil {
			return fmt.Errorf("output format: %w", err)
		}
	}
	if c.Method != "" {
		if _, err := classify.ParseMethod(c.Method); err != nil {
			return err
		}
	}
	if c.Unit != "" {
		if _, err := duration.ParseUnit(c.Unit); err != nil {
			return err
		}
	}
	return nil
}

// NoOutput reports whether the run should skip writing an output file.
func (c *Config) NoOutput() bool {
	return strings.EqualFold(c.OutputFormat, OutputNone)
}

// Validate applies defaults and checks required fields and enum values.
func (c *Config) Validate() error {
	if c.FilePath == "" {
		return fmt.Errorf("--file is required")
	}
	if _, err := os.Stat(c.FilePath); err != nil {
		return fmt.Errorf("file not accessible: %w", err)
	}
	c.applyDefaults()
	return c.validateEnums()
}

// InputKind returns the parsed input format. Call after Validate.
func (c *Config) InputKind() tableio.Kind {
	k, _ := tableio.ParseKind(c.InputFormat)
	return k
}

// OutputKind returns the parsed output format. Call after Validate and only
// when NoOutput is false.
func (c *Config) OutputKind() tableio.Kind {
	k, _ := tableio.ParseKind(c.OutputFormat)
	return k
}

// ClassifyMethod returns the parsed method. Call after Validate.
func (c *Config) ClassifyMethod() classify.Method {
	m, _ := classify.ParseMethod(c.Method)
	return m
}

// DurationUnit returns the parsed duration unit. Call after Validate.
func (c *Config) DurationUnit() duration.Unit {
	u, _ := duration.ParseUnit(c.Unit)
	return u
}

// Package config holds the generator settings, loaded from an optional YAML
// file and overridden by command line flags.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/c2h5oh/datasize"
	"gopkg.in/yaml.v3"
)

const (
	FormatGo   = "go"
	FormatJSON = "json"

	SinkFile    = "file"
	SinkMariaDB = "mariadb"
)

type Config struct {
	// Input is the payload definition file, relative to the working directory.
	Input string `yaml:"input"`
	// MaxInputSize bounds how much of the input is read into memory.
	MaxInputSize datasize.ByteSize `yaml:"max_input_size"`
	// Protocols restricts generation to matching protocol tokens (glob syntax).
	Protocols []string `yaml:"protocols"`
	Workers   int      `yaml:"workers"`

	Output OutputConfig `yaml:"output"`
	Log    LogConfig    `yaml:"log"`
	// Color enables colored progress output.
	Color bool `yaml:"color"`
}

type OutputConfig struct {
	// Format is "go" or "json".
	Format string `yaml:"format"`
	// Sink is "file" or "mariadb".
	Sink string `yaml:"sink"`
	// Path is the output file for the file sink.
	Path string `yaml:"path"`
	// Package is the Go package name of generated source.
	Package string `yaml:"package"`
	// DSN is the MariaDB connection string for the mariadb sink.
	DSN string `yaml:"dsn"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

func DefaultConfig() *Config {
	return &Config{
		Input:        "nmap-payloads",
		MaxInputSize: 16 * datasize.MB,
		Workers:      1,
		Output: OutputConfig{
			Format:  FormatGo,
			Sink:    SinkFile,
			Path:    "generated.go",
			Package: "nmappayloads",
		},
		Log: LogConfig{
			Level: "INFO",
		},
		Color: true,
	}
}

// LoadConfig reads a YAML file over the defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return ParseConfig(data)
}

func ParseConfig(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML configuration: %w", err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Input == "" {
		return fmt.Errorf("input file must be set")
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if c.MaxInputSize == 0 {
		return fmt.Errorf("max_input_size must be positive")
	}
	switch strings.ToLower(c.Output.Format) {
	case FormatGo, FormatJSON:
	default:
		return fmt.Errorf("unknown output format: %s", c.Output.Format)
	}
	switch strings.ToLower(c.Output.Sink) {
	case SinkFile:
		if c.Output.Path == "" {
			return fmt.Errorf("output path must be provided for file sink")
		}
	case SinkMariaDB:
		if c.Output.DSN == "" {
			return fmt.Errorf("database connection string must be provided for mariadb sink")
		}
	default:
		return fmt.Errorf("unknown output sink: %s", c.Output.Sink)
	}
	if strings.EqualFold(c.Output.Format, FormatGo) && c.Output.Package == "" {
		return fmt.Errorf("package name must be provided for go output")
	}
	return nil
}

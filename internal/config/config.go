// Package config loads optional file configuration for the trznica commands.
// Command-line flags override file values.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/erazemk/trznica/internal/stock"
)

// Config is the file-configurable part of the commands.
type Config struct {
	DBPath    string   `yaml:"db_path"`
	Currency  string   `yaml:"currency"`
	Splitters []string `yaml:"splitters"`
}

// Splitter names usable in the splitters list.
const (
	SplitterNone             = "none"
	SplitterShippingCategory = "shipping_category"
	SplitterBackordered      = "backordered"
)

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		DBPath:    "trznica.sqlite3",
		Currency:  "AUD",
		Splitters: []string{SplitterNone},
	}
}

// Load reads a YAML config file, filling unset fields with defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if file.DBPath != "" {
		cfg.DBPath = file.DBPath
	}
	if file.Currency != "" {
		cfg.Currency = file.Currency
	}
	if len(file.Splitters) > 0 {
		cfg.Splitters = file.Splitters
	}
	return cfg, nil
}

// SplitterChain builds the configured splitter chain. An unknown splitter
// name is a configuration error.
func (c *Config) SplitterChain() ([]stock.Splitter, error) {
	var chain []stock.Splitter
	for _, name := range c.Splitters {
		switch name {
		case SplitterNone:
			chain = append(chain, stock.SplitNone)
		case SplitterShippingCategory:
			chain = append(chain, stock.SplitByShippingCategory)
		case SplitterBackordered:
			chain = append(chain, stock.SplitBackordered)
		default:
			return nil, fmt.Errorf("unknown splitter %q", name)
		}
	}
	return chain, nil
}

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.DBPath != "trznica.sqlite3" {
		t.Errorf("expected default db path, got %q", cfg.DBPath)
	}
	if len(cfg.Splitters) != 1 || cfg.Splitters[0] != SplitterNone {
		t.Errorf("expected default splitter chain [none], got %v", cfg.Splitters)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte("db_path: custom.sqlite3\ncurrency: EUR\nsplitters:\n  - shipping_category\n  - backordered\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DBPath != "custom.sqlite3" {
		t.Errorf("expected custom.sqlite3, got %q", cfg.DBPath)
	}
	if cfg.Currency != "EUR" {
		t.Errorf("expected EUR, got %q", cfg.Currency)
	}
	if len(cfg.Splitters) != 2 {
		t.Errorf("expected 2 splitters, got %v", cfg.Splitters)
	}
}

func TestLoadEmptyPathUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DBPath != Default().DBPath {
		t.Errorf("expected defaults, got %q", cfg.DBPath)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected an error for a missing config file")
	}
}

func TestSplitterChain(t *testing.T) {
	cfg := &Config{Splitters: []string{SplitterNone, SplitterShippingCategory, SplitterBackordered}}
	chain, err := cfg.SplitterChain()
	if err != nil {
		t.Fatalf("SplitterChain: %v", err)
	}
	if len(chain) != 3 {
		t.Errorf("expected 3 splitters, got %d", len(chain))
	}
}

func TestSplitterChainUnknownName(t *testing.T) {
	cfg := &Config{Splitters: []string{"carrier_pigeon"}}
	if _, err := cfg.SplitterChain(); err == nil {
		t.Error("expected an error for an unknown splitter name")
	}
}

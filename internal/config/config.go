// Package config loads the small TOML document cmd/parsrgen reads for its
// defaults, using a FillDefaults/Validate shape.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// ParserMode names which driver cmd/parsrgen runs by default when the user
// doesn't override it with a flag.
type ParserMode string

const (
	ModeRecursiveDescent ParserMode = "rd"
	ModeLL1              ParserMode = "ll1"
	ModeCanonicalLR1     ParserMode = "clr1"
	ModeLALR1            ParserMode = "lalr1"
)

// Default soft limits for the arena-style bounds of productions and trace
// rows. FillDefaults applies them to a Config, but nothing in cmd/parsrgen or
// the library packages reads them: they are not hard caps and do not
// pre-size any slice, and every collection grows dynamically.
const (
	DefaultMaxProductions = 256
	DefaultMaxTraceRows   = 4096
)

// Config is the TOML-backed configuration for a cmd/parsrgen invocation.
type Config struct {
	// GrammarPath is the path to the grammar file to load.
	GrammarPath string `toml:"grammar_path"`

	// InputPath is the path to the input text to parse. If empty,
	// cmd/parsrgen reads from stdin.
	InputPath string `toml:"input_path"`

	// DefaultMode is which driver to run when no -mode flag is given.
	DefaultMode ParserMode `toml:"default_mode"`

	// MaxProductions is a soft size hint for the loaded grammar's
	// production count. It is loaded and defaulted but not read elsewhere.
	MaxProductions int `toml:"max_productions"`

	// MaxTraceRows is a soft size hint for the trace recorder's row count.
	// It is loaded and defaulted but not read elsewhere.
	MaxTraceRows int `toml:"max_trace_rows"`
}

// Load reads and decodes the TOML document at path.
func Load(path string) (Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("load config %q: %w", path, err)
	}
	return cfg, nil
}

// FillDefaults returns a copy of cfg with unset fields set to their
// defaults.
func (cfg Config) FillDefaults() Config {
	newCfg := cfg
	if newCfg.DefaultMode == "" {
		newCfg.DefaultMode = ModeLALR1
	}
	if newCfg.MaxProductions == 0 {
		newCfg.MaxProductions = DefaultMaxProductions
	}
	if newCfg.MaxTraceRows == 0 {
		newCfg.MaxTraceRows = DefaultMaxTraceRows
	}
	return newCfg
}

// Validate returns an error if cfg's fields are not usable as-is; call it
// after FillDefaults, since zero values here are considered unset rather
// than invalid.
func (cfg Config) Validate() error {
	if cfg.GrammarPath == "" {
		return fmt.Errorf("grammar_path: must be set")
	}
	if _, err := os.Stat(cfg.GrammarPath); err != nil {
		return fmt.Errorf("grammar_path: %w", err)
	}
	switch cfg.DefaultMode {
	case ModeRecursiveDescent, ModeLL1, ModeCanonicalLR1, ModeLALR1:
	default:
		return fmt.Errorf("default_mode: unknown mode %q", cfg.DefaultMode)
	}
	return nil
}

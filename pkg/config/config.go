package config

import (
	"time"
)

// Config is the merged application configuration
type Config struct {
	Rules   Rules   `koanf:"rules"`
	Engine  Engine  `koanf:"engine"`
	Notify  Notify  `koanf:"notify"`
	Journal Journal `koanf:"journal"`
	Output  Output  `koanf:"output"`

	// LoadedFrom lists every config file that was merged, in load order
	LoadedFrom []string `koanf:"-"`
}

// Rules selects the rule files to load
type Rules struct {
	Files []string `koanf:"files"`
}

// Engine tunes rule application
type Engine struct {
	MatchTimeout time.Duration `koanf:"match_timeout"`
	Workers      int           `koanf:"workers"`
}

// Notify shapes notification context snippets
type Notify struct {
	ContextWidth int    `koanf:"context_width"`
	Caret        string `koanf:"caret"`
}

// Journal controls the undo history
type Journal struct {
	Enabled bool   `koanf:"enabled"`
	Path    string `koanf:"path"`
}

// Output selects how reports are printed
type Output struct {
	Format string `koanf:"format"`
}

// Output formats accepted in output.format
var Formats = []string{"auto", "text", "plain", "json", "yaml"}

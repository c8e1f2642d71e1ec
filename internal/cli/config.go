package cli

import (
	"fmt"
	"unicode"
)

// ColorMode controls when colored output is used.
type ColorMode int

const (
	ColorAuto   ColorMode = iota // color when stdout is a terminal
	ColorAlways                  // always use color
	ColorNever                   // never use color
)

// ParseColorMode parses a --color argument.
func ParseColorMode(s string) (ColorMode, error) {
	switch s {
	case "auto", "":
		return ColorAuto, nil
	case "always":
		return ColorAlways, nil
	case "never":
		return ColorNever, nil
	}
	return ColorAuto, fmt.Errorf("invalid color mode %q (want auto, always, or never)", s)
}

// Config holds all configuration for a linegrep run.
type Config struct {
	Patterns      []string
	Fixed         bool
	PCRE          bool
	IgnoreCase    bool
	SmartCase     bool
	Invert        bool
	LineNumbers   bool
	CountOnly     bool
	FilesOnly     bool
	ContextBefore int
	ContextAfter  int
	Recursive     bool
	Hidden        bool
	NoIgnore      bool
	WatchMode     bool
	JSONOutput    bool
	Color         ColorMode
	Workers       int
	MmapThreshold int64
	Paths         []string
}

// Validate checks that the config is consistent.
func (c *Config) Validate() error {
	if len(c.Patterns) == 0 {
		return fmt.Errorf("no pattern specified")
	}
	if c.Fixed && c.PCRE {
		return fmt.Errorf("cannot use -F (fixed) and -P (pcre) together")
	}
	if c.ContextBefore < 0 {
		return fmt.Errorf("invalid context before: %d", c.ContextBefore)
	}
	if c.ContextAfter < 0 {
		return fmt.Errorf("invalid context after: %d", c.ContextAfter)
	}
	if c.CountOnly && c.FilesOnly {
		return fmt.Errorf("cannot use -c (count) and -l (files-with-matches) together")
	}
	if c.WatchMode && len(c.Paths) == 0 {
		return fmt.Errorf("--watch requires at least one path")
	}
	return nil
}

// resolveCase applies smart-case: when enabled and every pattern is
// entirely lowercase, the search becomes case-insensitive.
func (c *Config) resolveCase() bool {
	if c.IgnoreCase {
		return true
	}
	if !c.SmartCase {
		return false
	}
	for _, p := range c.Patterns {
		for _, r := range p {
			if unicode.IsUpper(r) {
				return false
			}
		}
	}
	return true
}

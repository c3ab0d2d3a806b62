// Package config describes which trees are reformatted and which files in
// them are eligible.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
)

// DefaultBaseDir is the project directory relative to the working
// directory. The tool is run from the project's tools/ directory.
const DefaultBaseDir = ".."

var (
	// Included lists the suffixes of files that are reformatted.
	Included = []string{".c", ".cc", ".cpp", ".h", ".hpp", ".glsl"}
	// Excluded lists generated lexer/parser suffixes. They win over Included.
	Excluded = []string{".l.cpp", ".y.cpp", ".y.hpp"}
)

// Config is the resolved, immutable input of a reformat pass.
type Config struct {
	BaseDir  string   // absolute project directory
	Roots    []string // absolute directories walked, in order
	Included []string
	Excluded []string
	Jobs     int // files processed concurrently
}

// Default resolves baseDir once and derives the project, shader and
// unit-test roots from it.
func Default(baseDir string) (Config, error) {
	if baseDir == "" {
		baseDir = DefaultBaseDir
	}
	abs, err := filepath.Abs(baseDir)
	if err != nil {
		return Config{}, fmt.Errorf("resolve base directory %q: %w", baseDir, err)
	}
	return Config{
		BaseDir: abs,
		Roots: []string{
			filepath.Join(abs, "nucleus"),
			filepath.Join(abs, "resources", "shaders"),
			filepath.Join(abs, "tests", "unit"),
		},
		Included: append([]string(nil), Included...),
		Excluded: append([]string(nil), Excluded...),
		Jobs:     runtime.GOMAXPROCS(0),
	}, nil
}

// Validate reports the first structural problem with c.
func (c Config) Validate() error {
	if len(c.Roots) == 0 {
		return errors.New("config: no root directories")
	}
	if len(c.Included) == 0 {
		return errors.New("config: no included extensions")
	}
	if c.Jobs <= 0 {
		return fmt.Errorf("config: jobs must be positive, got %d", c.Jobs)
	}
	return nil
}

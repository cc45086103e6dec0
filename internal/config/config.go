// Package config carries ambient compiler knobs shared across the
// checker, evaluator, and erasure passes, the way the teacher's
// internal/ext/config.go carries funxy.yaml — here the file is
// tycore.yaml.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// IsTestMode and IsLSPMode mirror the teacher's package-level flags of
// the same name (internal/typesystem/types.go); no code in this module
// reads them.
var (
	IsTestMode = false
	IsLSPMode  = false
	// Debug, when true, routes swallowed speculative compile-time
	// evaluation failures (spec §9) to log.Printf instead of discarding
	// them silently.
	Debug = false
)

// DefaultFuel bounds the compile-time evaluator's recursion budget when a
// Options value does not override it.
const DefaultFuel = 100_000

// Options holds the per-compilation settings loaded from tycore.yaml.
type Options struct {
	// Fuel bounds the evaluator's step count (spec §4.3, §5).
	Fuel int `yaml:"fuel"`
	// Strict is loaded from tycore.yaml; no checker code reads it, so it
	// changes no diagnostics.
	Strict bool `yaml:"strict"`
	// MaxDiagnostics caps how many diagnostics cmd/tycore prints, which
	// keeps its output bounded on a badly malformed program;
	// Collector.All itself always returns every diagnostic.
	MaxDiagnostics int `yaml:"maxDiagnostics"`
}

// Default returns the Options used when no tycore.yaml is present.
func Default() Options {
	return Options{Fuel: DefaultFuel, Strict: false, MaxDiagnostics: 200}
}

// Load reads Options from path, falling back to Default() for any field
// left zero-valued in the file.
func Load(path string) (Options, error) {
	opts := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return opts, nil
		}
		return opts, err
	}
	var fromFile Options
	if err := yaml.Unmarshal(data, &fromFile); err != nil {
		return opts, err
	}
	if fromFile.Fuel != 0 {
		opts.Fuel = fromFile.Fuel
	}
	opts.Strict = fromFile.Strict
	if fromFile.MaxDiagnostics != 0 {
		opts.MaxDiagnostics = fromFile.MaxDiagnostics
	}
	return opts, nil
}

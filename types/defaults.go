package types

import (
	_ "embed"
)

//go:embed default.yaml
var defaultRunSpec []byte

// DefaultRunSpec returns the built-in run spec. Action kinds must be registered
// before calling it.
func DefaultRunSpec() (RunSpec, error) {
	return ParseRunSpec(defaultRunSpec)
}

// DefaultRunSpecYAML returns the raw built-in run spec.
func DefaultRunSpecYAML() []byte {
	out := make([]byte, len(defaultRunSpec))
	copy(out, defaultRunSpec)
	return out
}

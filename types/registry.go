package types

import "fmt"

// ActionConfig is the static, per-kind configuration of a catalog action.
type ActionConfig interface {
	Validate() error
	IsActionConfig()
}

// Factory returns a fresh concrete ActionConfig for a given kind (e.g. "claim", "mint").
type Factory func() ActionConfig

var registry = map[string]Factory{}

func Register(kind string, fn Factory) {
	// overwriting is fine...
	registry[kind] = fn
}

func NewForKind(kind string) (ActionConfig, error) {
	fn, ok := registry[kind]
	if !ok {
		return nil, fmt.Errorf("unknown action kind %q", kind)
	}
	return fn(), nil
}

package types

import (
	"errors"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultRequestTimeout = 30 * time.Second
	DefaultMarginMin      = 1.1
	DefaultMarginMax      = 1.2
)

type RunSpec struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`
	RPC         string `yaml:"rpc" json:"rpc"`
	// ChainID is optional. When set, the node's chain id must match it.
	ChainID        string        `yaml:"chain_id,omitempty" json:"chain_id,omitempty"`
	WalletsFile    string        `yaml:"wallets_file" json:"wallets_file"`
	RequestTimeout time.Duration `yaml:"request_timeout,omitempty" json:"request_timeout,omitempty"`
	GasMargin      GasMargin     `yaml:"gas_margin" json:"gas_margin"`
	Pauses         Pauses        `yaml:"pauses" json:"pauses"`
	MetricsAddr    string        `yaml:"metrics_addr,omitempty" json:"metrics_addr,omitempty"`
	ResultsFile    string        `yaml:"results_file,omitempty" json:"results_file,omitempty"`
	Actions        []ActionSpec  `yaml:"actions" json:"actions"`
}

// GasMargin bounds the factor applied on top of a node's gas estimate.
type GasMargin struct {
	Min float64 `yaml:"min" json:"min"`
	Max float64 `yaml:"max" json:"max"`
}

func (m GasMargin) Validate() error {
	if m.Min < 1 {
		return fmt.Errorf("gas margin min must be at least 1, got %v", m.Min)
	}
	if m.Max < m.Min {
		return fmt.Errorf("gas margin max (%v) is below min (%v)", m.Max, m.Min)
	}
	return nil
}

// Range is an inclusive duration interval a pause is drawn from.
type Range struct {
	Min time.Duration `yaml:"min" json:"min"`
	Max time.Duration `yaml:"max" json:"max"`
}

func (r Range) Validate() error {
	if r.Min < 0 {
		return fmt.Errorf("min must not be negative, got %s", r.Min)
	}
	if r.Max < r.Min {
		return fmt.Errorf("max (%s) is below min (%s)", r.Max, r.Min)
	}
	return nil
}

func (r Range) IsZero() bool {
	return r.Min == 0 && r.Max == 0
}

type Pauses struct {
	// BetweenSubmissions follows every submission of a multi-target action.
	BetweenSubmissions Range `yaml:"between_submissions" json:"between_submissions"`
	// BetweenActions follows every action, successful or not.
	BetweenActions Range `yaml:"between_actions" json:"between_actions"`
	// BetweenWallets follows the last action of every wallet.
	BetweenWallets Range `yaml:"between_wallets" json:"between_wallets"`
}

func (p Pauses) Validate() error {
	if err := p.BetweenSubmissions.Validate(); err != nil {
		return fmt.Errorf("between_submissions: %w", err)
	}
	if err := p.BetweenActions.Validate(); err != nil {
		return fmt.Errorf("between_actions: %w", err)
	}
	if err := p.BetweenWallets.Validate(); err != nil {
		return fmt.Errorf("between_wallets: %w", err)
	}
	return nil
}

func DefaultPauses() Pauses {
	return Pauses{
		BetweenSubmissions: Range{Min: 10 * time.Second, Max: 30 * time.Second},
		BetweenActions:     Range{Min: 10 * time.Second, Max: 30 * time.Second},
		BetweenWallets:     Range{Min: 60 * time.Second, Max: 100 * time.Second},
	}
}

// ApplyDefaults fills unset timing and margin fields. Explicitly configured
// values are kept as they are.
func (s *RunSpec) ApplyDefaults() {
	if s.RequestTimeout == 0 {
		s.RequestTimeout = DefaultRequestTimeout
	}
	if s.GasMargin == (GasMargin{}) {
		s.GasMargin = GasMargin{Min: DefaultMarginMin, Max: DefaultMarginMax}
	}
	defaults := DefaultPauses()
	if s.Pauses.BetweenSubmissions.IsZero() {
		s.Pauses.BetweenSubmissions = defaults.BetweenSubmissions
	}
	if s.Pauses.BetweenActions.IsZero() {
		s.Pauses.BetweenActions = defaults.BetweenActions
	}
	if s.Pauses.BetweenWallets.IsZero() {
		s.Pauses.BetweenWallets = defaults.BetweenWallets
	}
	for i := range s.Actions {
		if s.Actions[i].Name == "" {
			s.Actions[i].Name = s.Actions[i].Kind
		}
	}
}

// Validate validates the RunSpec and returns an error if it's invalid
func (s *RunSpec) Validate() error {
	if s.RPC == "" {
		return errors.New("rpc endpoint must be specified")
	}

	if s.WalletsFile == "" {
		return errors.New("wallets_file must be specified")
	}

	if len(s.Actions) == 0 {
		return errors.New("no actions specified")
	}

	if err := s.GasMargin.Validate(); err != nil {
		return fmt.Errorf("validating gas margin: %w", err)
	}

	if err := s.Pauses.Validate(); err != nil {
		return fmt.Errorf("validating pauses: %w", err)
	}

	seen := make(map[string]struct{}, len(s.Actions))
	for i, action := range s.Actions {
		if action.Name == "" {
			return fmt.Errorf("action at index %d has no name", i)
		}
		if _, ok := seen[action.Name]; ok {
			return fmt.Errorf("duplicate action name %q", action.Name)
		}
		seen[action.Name] = struct{}{}

		if action.Config == nil {
			return fmt.Errorf("action %q has no config", action.Name)
		}
		if err := action.Config.Validate(); err != nil {
			return fmt.Errorf("validating action %q: %w", action.Name, err)
		}
	}

	return nil
}

type ActionSpec struct {
	Name   string       `yaml:"name" json:"name"`
	Kind   string       `yaml:"kind" json:"kind"` // discriminator for Config
	Config ActionConfig `yaml:"-" json:"config"`  // decoded via custom UnmarshalYAML
}

type actionSpecAlias ActionSpec

func (a *ActionSpec) UnmarshalYAML(n *yaml.Node) error {
	var raw struct {
		actionSpecAlias `yaml:",inline"`
		ConfigNode      yaml.Node `yaml:"config"`
	}
	if err := n.Decode(&raw); err != nil {
		return err
	}
	*a = ActionSpec(raw.actionSpecAlias)

	cfg, err := NewForKind(a.Kind)
	if err != nil {
		return err
	}
	// an action without a config block keeps the kind's zero config
	if !raw.ConfigNode.IsZero() {
		if err := raw.ConfigNode.Decode(cfg); err != nil {
			return fmt.Errorf("decode config (%s): %w", a.Kind, err)
		}
	}
	a.Config = cfg
	return nil
}

func (a ActionSpec) MarshalYAML() (any, error) {
	type Alias ActionSpec
	out := struct {
		Alias  `yaml:",inline"`
		Config any `yaml:"config,omitempty"`
	}{
		Alias:  Alias(a),
		Config: a.Config, // concrete value behind the interface
	}
	return out, nil
}

// ParseRunSpec decodes, defaults and validates a YAML run spec.
func ParseRunSpec(data []byte) (RunSpec, error) {
	var spec RunSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return RunSpec{}, fmt.Errorf("failed to parse run spec: %w", err)
	}
	spec.ApplyDefaults()
	if err := spec.Validate(); err != nil {
		return RunSpec{}, fmt.Errorf("failed to validate run spec: %w", err)
	}
	return spec, nil
}

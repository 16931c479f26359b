package actions

import (
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"

	mintertypes "github.com/skip-mev/minter/types"
)

// Action kinds understood by the catalog.
const (
	KindClaim   = "claim"
	KindComment = "comment"
	KindExecute = "execute"
	KindMint    = "mint"
	KindOlimp   = "olimp"
)

// Shape tells the driver how many submissions an action yields.
type Shape int

const (
	// Single actions yield exactly one call.
	Single Shape = iota
	// Sequence actions yield one call per configured target, in order.
	Sequence
)

func (s Shape) String() string {
	switch s {
	case Single:
		return "single"
	case Sequence:
		return "sequence"
	default:
		return fmt.Sprintf("shape(%d)", int(s))
	}
}

var (
	ErrZeroAddress = errors.New("address must not be zero")
	ErrNotPositive = errors.New("must be greater than zero")
)

// Call is a fully encoded contract call, ready to be submitted.
type Call struct {
	Target common.Address
	Value  *big.Int
	Data   []byte
}

// Account is what an action needs from the wallet it is built for.
type Account interface {
	Address() common.Address
	SignText(data []byte) ([]byte, error)
}

// Action maps an account to the calls it should submit. Actions are immutable
// and hold no network handle.
type Action interface {
	Name() string
	Kind() string
	Shape() Shape
	// Targets is the number of calls Calls yields, known without an account.
	Targets() int
	Calls(acc Account) ([]Call, error)
}

type options struct {
	now func() time.Time
}

type Option func(*options)

// WithClock overrides the time source used for signed timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// New builds the action described by spec.
func New(spec mintertypes.ActionSpec, opts ...Option) (Action, error) {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	if spec.Config == nil {
		return nil, fmt.Errorf("action %q has no config", spec.Name)
	}
	if err := spec.Config.Validate(); err != nil {
		return nil, fmt.Errorf("action %q: %w", spec.Name, err)
	}

	switch cfg := spec.Config.(type) {
	case *ClaimConfig:
		return &claimAction{name: spec.Name, cfg: *cfg}, nil
	case *CommentConfig:
		return &commentAction{name: spec.Name, cfg: *cfg}, nil
	case *ExecuteConfig:
		return &executeAction{name: spec.Name, cfg: *cfg}, nil
	case *MintConfig:
		return &mintAction{name: spec.Name, cfg: *cfg}, nil
	case *OlimpConfig:
		return &olimpAction{name: spec.Name, cfg: *cfg, now: o.now}, nil
	default:
		return nil, fmt.Errorf("action %q: unsupported config %T", spec.Name, spec.Config)
	}
}

// Build builds every action of a run spec, keeping spec order.
func Build(specs []mintertypes.ActionSpec, opts ...Option) ([]Action, error) {
	out := make([]Action, 0, len(specs))
	for _, spec := range specs {
		a, err := New(spec, opts...)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

func init() {
	Register()
}

// Register makes the action kinds known to the run spec decoder.
func Register() {
	mintertypes.Register(KindClaim, func() mintertypes.ActionConfig { return &ClaimConfig{} })
	mintertypes.Register(KindComment, func() mintertypes.ActionConfig { return &CommentConfig{} })
	mintertypes.Register(KindExecute, func() mintertypes.ActionConfig { return &ExecuteConfig{} })
	mintertypes.Register(KindMint, func() mintertypes.ActionConfig { return &MintConfig{} })
	mintertypes.Register(KindOlimp, func() mintertypes.ActionConfig { return &OlimpConfig{} })
}

func positive(name string, v *big.Int) error {
	if v == nil || v.Sign() <= 0 {
		return fmt.Errorf("%s %w", name, ErrNotPositive)
	}
	return nil
}

func nonNegative(name string, v *big.Int) error {
	if v != nil && v.Sign() < 0 {
		return fmt.Errorf("%s must not be negative", name)
	}
	return nil
}

func nonZero(name string, addr common.Address) error {
	if addr == (common.Address{}) {
		return fmt.Errorf("%s: %w", name, ErrZeroAddress)
	}
	return nil
}

func valueOrZero(v *big.Int) *big.Int {
	if v == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(v)
}

func hashesToBytes32(hashes []common.Hash) [][32]byte {
	out := make([][32]byte, len(hashes))
	for i, h := range hashes {
		out[i] = h
	}
	return out
}

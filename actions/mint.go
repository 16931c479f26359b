package actions

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/skip-mev/minter/contracts"
)

// MintConfig configures mint(id) on every listed contract. The mint is not payable.
type MintConfig struct {
	Contracts []common.Address `yaml:"contracts" json:"contracts"`
	ID        *big.Int         `yaml:"id" json:"id"`
}

func (c *MintConfig) Validate() error {
	for i, addr := range c.Contracts {
		if err := nonZero(fmt.Sprintf("contracts[%d]", i), addr); err != nil {
			return err
		}
	}
	if c.ID == nil {
		return fmt.Errorf("id must be set")
	}
	return nonNegative("id", c.ID)
}

func (*MintConfig) IsActionConfig() {}

type mintAction struct {
	name string
	cfg  MintConfig
}

func (a *mintAction) Name() string { return a.name }
func (a *mintAction) Kind() string { return KindMint }
func (a *mintAction) Shape() Shape { return Sequence }
func (a *mintAction) Targets() int { return len(a.cfg.Contracts) }

func (a *mintAction) Calls(Account) ([]Call, error) {
	data, err := contracts.PackSimpleMint(a.cfg.ID)
	if err != nil {
		return nil, fmt.Errorf("building mint: %w", err)
	}

	calls := make([]Call, 0, len(a.cfg.Contracts))
	for _, contract := range a.cfg.Contracts {
		calls = append(calls, Call{Target: contract, Value: new(big.Int), Data: data})
	}
	return calls, nil
}

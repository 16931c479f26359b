package actions

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/skip-mev/minter/contracts"
)

// CommentConfig configures mintWithComment on every listed contract.
type CommentConfig struct {
	Contracts     []common.Address `yaml:"contracts" json:"contracts"`
	Quantity      *big.Int         `yaml:"quantity" json:"quantity"`
	Comment       string           `yaml:"comment" json:"comment"`
	PayableAmount *big.Int         `yaml:"payable_amount" json:"payable_amount"`
}

func (c *CommentConfig) Validate() error {
	for i, addr := range c.Contracts {
		if err := nonZero(fmt.Sprintf("contracts[%d]", i), addr); err != nil {
			return err
		}
	}
	if err := positive("quantity", c.Quantity); err != nil {
		return err
	}
	return nonNegative("payable_amount", c.PayableAmount)
}

func (*CommentConfig) IsActionConfig() {}

type commentAction struct {
	name string
	cfg  CommentConfig
}

func (a *commentAction) Name() string { return a.name }
func (a *commentAction) Kind() string { return KindComment }
func (a *commentAction) Shape() Shape { return Sequence }
func (a *commentAction) Targets() int { return len(a.cfg.Contracts) }

func (a *commentAction) Calls(acc Account) ([]Call, error) {
	data, err := contracts.PackMintWithComment(acc.Address(), a.cfg.Quantity, a.cfg.Comment)
	if err != nil {
		return nil, fmt.Errorf("building mintWithComment: %w", err)
	}

	calls := make([]Call, 0, len(a.cfg.Contracts))
	for _, contract := range a.cfg.Contracts {
		calls = append(calls, Call{Target: contract, Value: valueOrZero(a.cfg.PayableAmount), Data: data})
	}
	return calls, nil
}

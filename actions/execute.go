package actions

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/skip-mev/minter/contracts"
)

// ReceiverPlaceholder is substituted in execution data with the sender
// address: 40 lowercase hex characters, no prefix.
const ReceiverPlaceholder = "{receiver}"

type ExecutionConfig struct {
	Module common.Address `yaml:"module" json:"module"`
	Value  *big.Int       `yaml:"value" json:"value"`
	// Data is a 0x prefixed hex template that may contain ReceiverPlaceholder.
	Data string `yaml:"data" json:"data"`
}

func (e ExecutionConfig) render(receiver common.Address) ([]byte, error) {
	addr := strings.ToLower(strings.TrimPrefix(receiver.Hex(), "0x"))
	return hexutil.Decode(strings.ReplaceAll(e.Data, ReceiverPlaceholder, addr))
}

// ExecuteConfig configures a batched execute on a module executor contract.
type ExecuteConfig struct {
	Contract   common.Address    `yaml:"contract" json:"contract"`
	Executions []ExecutionConfig `yaml:"executions" json:"executions"`
}

func (c *ExecuteConfig) Validate() error {
	if err := nonZero("contract", c.Contract); err != nil {
		return err
	}
	if len(c.Executions) == 0 {
		return fmt.Errorf("no executions specified")
	}
	for i, e := range c.Executions {
		if err := nonZero(fmt.Sprintf("executions[%d].module", i), e.Module); err != nil {
			return err
		}
		if err := nonNegative(fmt.Sprintf("executions[%d].value", i), e.Value); err != nil {
			return err
		}
		if _, err := e.render(common.Address{}); err != nil {
			return fmt.Errorf("executions[%d].data: %w", i, err)
		}
	}
	return nil
}

func (*ExecuteConfig) IsActionConfig() {}

// Value is the sum of all execution values.
func (c *ExecuteConfig) Value() *big.Int {
	total := new(big.Int)
	for _, e := range c.Executions {
		if e.Value != nil {
			total.Add(total, e.Value)
		}
	}
	return total
}

type executeAction struct {
	name string
	cfg  ExecuteConfig
}

func (a *executeAction) Name() string { return a.name }
func (a *executeAction) Kind() string { return KindExecute }
func (a *executeAction) Shape() Shape { return Single }
func (a *executeAction) Targets() int { return 1 }

func (a *executeAction) Calls(acc Account) ([]Call, error) {
	infos := make([]contracts.ExecutionInfo, 0, len(a.cfg.Executions))
	for i, e := range a.cfg.Executions {
		data, err := e.render(acc.Address())
		if err != nil {
			return nil, fmt.Errorf("rendering execution %d: %w", i, err)
		}
		infos = append(infos, contracts.ExecutionInfo{Module: e.Module, Data: data, Value: valueOrZero(e.Value)})
	}

	data, err := contracts.PackExecute(infos)
	if err != nil {
		return nil, fmt.Errorf("building execute: %w", err)
	}
	return []Call{{Target: a.cfg.Contract, Value: a.cfg.Value(), Data: data}}, nil
}

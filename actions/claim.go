package actions

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/skip-mev/minter/contracts"
)

type AllowlistProofConfig struct {
	Proof                  []common.Hash  `yaml:"proof" json:"proof"`
	QuantityLimitPerWallet *big.Int       `yaml:"quantity_limit_per_wallet" json:"quantity_limit_per_wallet"`
	PricePerToken          *big.Int       `yaml:"price_per_token" json:"price_per_token"`
	Currency               common.Address `yaml:"currency" json:"currency"`
}

// ClaimConfig configures an allowlist gated drop claim. The receiver is always
// the claiming wallet.
type ClaimConfig struct {
	Contract       common.Address       `yaml:"contract" json:"contract"`
	Quantity       *big.Int             `yaml:"quantity" json:"quantity"`
	Currency       common.Address       `yaml:"currency" json:"currency"`
	PricePerToken  *big.Int             `yaml:"price_per_token" json:"price_per_token"`
	AllowlistProof AllowlistProofConfig `yaml:"allowlist_proof" json:"allowlist_proof"`
	Data           hexutil.Bytes        `yaml:"data" json:"data"`
}

func (c *ClaimConfig) Validate() error {
	if err := nonZero("contract", c.Contract); err != nil {
		return err
	}
	if err := positive("quantity", c.Quantity); err != nil {
		return err
	}
	if err := nonNegative("price_per_token", c.PricePerToken); err != nil {
		return err
	}
	if err := nonNegative("allowlist_proof.quantity_limit_per_wallet", c.AllowlistProof.QuantityLimitPerWallet); err != nil {
		return err
	}
	return nonNegative("allowlist_proof.price_per_token", c.AllowlistProof.PricePerToken)
}

func (*ClaimConfig) IsActionConfig() {}

// Value is the amount paid for the claim: price per token times quantity.
func (c *ClaimConfig) Value() *big.Int {
	return new(big.Int).Mul(valueOrZero(c.PricePerToken), c.Quantity)
}

type claimAction struct {
	name string
	cfg  ClaimConfig
}

func (a *claimAction) Name() string { return a.name }
func (a *claimAction) Kind() string { return KindClaim }
func (a *claimAction) Shape() Shape { return Single }
func (a *claimAction) Targets() int { return 1 }

func (a *claimAction) Calls(acc Account) ([]Call, error) {
	data, err := contracts.PackClaim(
		acc.Address(),
		a.cfg.Quantity,
		a.cfg.Currency,
		valueOrZero(a.cfg.PricePerToken),
		contracts.AllowlistProof{
			Proof:                  hashesToBytes32(a.cfg.AllowlistProof.Proof),
			QuantityLimitPerWallet: valueOrZero(a.cfg.AllowlistProof.QuantityLimitPerWallet),
			PricePerToken:          valueOrZero(a.cfg.AllowlistProof.PricePerToken),
			Currency:               a.cfg.AllowlistProof.Currency,
		},
		a.cfg.Data,
	)
	if err != nil {
		return nil, fmt.Errorf("building claim: %w", err)
	}
	return []Call{{Target: a.cfg.Contract, Value: a.cfg.Value(), Data: data}}, nil
}

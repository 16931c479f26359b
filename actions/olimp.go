package actions

import (
	"encoding/binary"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/skip-mev/minter/contracts"
)

// OlimpConfig configures a signature gated mint. The sender signs the
// quantity together with the current unix time.
type OlimpConfig struct {
	Contract common.Address `yaml:"contract" json:"contract"`
	Quantity uint32         `yaml:"quantity" json:"quantity"`
	Proof    []common.Hash  `yaml:"proof" json:"proof"`
	Value    *big.Int       `yaml:"value" json:"value"`
}

func (c *OlimpConfig) Validate() error {
	if err := nonZero("contract", c.Contract); err != nil {
		return err
	}
	if c.Quantity == 0 {
		return fmt.Errorf("quantity %w", ErrNotPositive)
	}
	return nonNegative("value", c.Value)
}

func (*OlimpConfig) IsActionConfig() {}

// OlimpDigest is keccak256(abi.encodePacked(uint32 quantity, uint64 timestamp)).
func OlimpDigest(quantity uint32, timestamp uint64) []byte {
	var packed [12]byte
	binary.BigEndian.PutUint32(packed[:4], quantity)
	binary.BigEndian.PutUint64(packed[4:], timestamp)
	return crypto.Keccak256(packed[:])
}

// SignOlimp signs the olimp digest as a personal message.
func SignOlimp(acc Account, quantity uint32, timestamp uint64) ([]byte, error) {
	sig, err := acc.SignText(OlimpDigest(quantity, timestamp))
	if err != nil {
		return nil, fmt.Errorf("signing olimp digest: %w", err)
	}
	return sig, nil
}

type olimpAction struct {
	name string
	cfg  OlimpConfig
	now  func() time.Time
}

func (a *olimpAction) Name() string { return a.name }
func (a *olimpAction) Kind() string { return KindOlimp }
func (a *olimpAction) Shape() Shape { return Single }
func (a *olimpAction) Targets() int { return 1 }

// Calls reads the clock once so the signed and submitted timestamps match.
func (a *olimpAction) Calls(acc Account) ([]Call, error) {
	ts := uint64(a.now().Unix())

	sig, err := SignOlimp(acc, a.cfg.Quantity, ts)
	if err != nil {
		return nil, err
	}

	data, err := contracts.PackOlimpMint(a.cfg.Quantity, hashesToBytes32(a.cfg.Proof), ts, sig)
	if err != nil {
		return nil, fmt.Errorf("building olimp mint: %w", err)
	}
	return []Call{{Target: a.cfg.Contract, Value: valueOrZero(a.cfg.Value), Data: data}}, nil
}

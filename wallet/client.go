package wallet

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
)

// Client is the subset of a go-ethereum client a submission needs: the nonce,
// the fee price, a gas estimate and the broadcast itself.
type Client interface {
	ethereum.GasEstimator
	ethereum.GasPricer
	ethereum.TransactionSender
	NonceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (uint64, error)
	ChainID(ctx context.Context) (*big.Int, error)
}

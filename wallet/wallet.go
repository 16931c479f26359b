package wallet

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"math/rand"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"

	mintertypes "github.com/skip-mev/minter/types"
)

// InteractingWallet represents a wallet that can interact with the Ethereum chain
type InteractingWallet struct {
	logger *zap.Logger
	signer *Signer
	client Client
	margin mintertypes.GasMargin
	rng    *rand.Rand
}

// NewInteractingWallet creates a new Ethereum wallet. A nil rng is replaced by a
// time seeded one.
func NewInteractingWallet(logger *zap.Logger, privKey *ecdsa.PrivateKey, chainID *big.Int, client Client,
	margin mintertypes.GasMargin, rng *rand.Rand,
) *InteractingWallet {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano())) //nolint:gosec // G404: not used for keys
	}
	signer := NewSigner(privKey, chainID)
	return &InteractingWallet{
		logger: logger.With(zap.String("module", "wallet"), zap.String("address", signer.FormattedAddress())),
		signer: signer,
		client: client,
		margin: margin,
		rng:    rng,
	}
}

// EstimateGasWithMargin estimates gas for msg and scales it by a random factor
// from the wallet's margin.
func (w *InteractingWallet) EstimateGasWithMargin(ctx context.Context, msg ethereum.CallMsg) (uint64, error) {
	estimate, err := w.client.EstimateGas(ctx, msg)
	if err != nil {
		return 0, fmt.Errorf("failed to estimate gas: %w", err)
	}
	gasLimit := GasLimitWithMargin(estimate, w.margin, w.rng)
	w.logger.Debug("estimated gas", zap.Uint64("estimate", estimate), zap.Uint64("gas_limit", gasLimit))
	return gasLimit, nil
}

// CreateSignedTransaction builds and signs a call to `to`. The nonce and the gas
// price are fetched right before signing.
func (w *InteractingWallet) CreateSignedTransaction(ctx context.Context, to common.Address, value *big.Int,
	data []byte,
) (*types.Transaction, error) {
	if value == nil {
		value = new(big.Int)
	}
	from := w.signer.Address()

	nonce, err := w.client.NonceAt(ctx, from, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get nonce: %w", err)
	}

	gasPrice, err := w.client.SuggestGasPrice(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get gas price: %w", err)
	}

	gasLimit, err := w.EstimateGasWithMargin(ctx, ethereum.CallMsg{
		From:     from,
		To:       &to,
		GasPrice: gasPrice,
		Value:    value,
		Data:     data,
	})
	if err != nil {
		return nil, err
	}

	tx := w.signer.CreateTransaction(to, value, gasLimit, gasPrice, data, nonce)
	signedTx, err := w.signer.SignTx(tx)
	if err != nil {
		return nil, fmt.Errorf("failed to sign transaction: %w", err)
	}
	return signedTx, nil
}

// SendTransaction broadcasts a signed transaction to the network
func (w *InteractingWallet) SendTransaction(ctx context.Context, signedTx *types.Transaction) error {
	return w.client.SendTransaction(ctx, signedTx)
}

// Submit creates, signs, and sends a call in one go. Nothing is broadcast when
// any step before the broadcast fails.
func (w *InteractingWallet) Submit(ctx context.Context, to common.Address, value *big.Int, data []byte) (*types.Transaction, error) {
	signedTx, err := w.CreateSignedTransaction(ctx, to, value, data)
	if err != nil {
		return nil, err
	}

	if err := w.SendTransaction(ctx, signedTx); err != nil {
		return nil, fmt.Errorf("failed to send transaction: %w", err)
	}

	w.logger.Debug("transaction sent",
		zap.String("tx_hash", signedTx.Hash().Hex()),
		zap.String("to", to.Hex()),
		zap.Uint64("nonce", signedTx.Nonce()),
		zap.Uint64("gas", signedTx.Gas()),
	)
	return signedTx, nil
}

// SignText signs data with the wallet key using the personal message prefix
func (w *InteractingWallet) SignText(data []byte) ([]byte, error) {
	return w.signer.SignText(data)
}

// FormattedAddress returns the hex-encoded Ethereum address
func (w *InteractingWallet) FormattedAddress() string {
	return w.signer.FormattedAddress()
}

// Address returns the Ethereum address
func (w *InteractingWallet) Address() common.Address {
	return w.signer.Address()
}

// GetClient returns the Ethereum client
func (w *InteractingWallet) GetClient() Client {
	return w.client
}

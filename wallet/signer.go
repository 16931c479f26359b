package wallet

import (
	"crypto/ecdsa"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
)

// Signer handles key management and signing for Ethereum transactions
type Signer struct {
	privKey *ecdsa.PrivateKey
	chainID *big.Int
}

// NewSigner creates a new Ethereum signer with the given private key and chain ID
func NewSigner(privKey *ecdsa.PrivateKey, chainID *big.Int) *Signer {
	return &Signer{
		privKey: privKey,
		chainID: chainID,
	}
}

// Address returns the Ethereum address derived from the private key
func (s *Signer) Address() common.Address {
	return crypto.PubkeyToAddress(s.privKey.PublicKey)
}

// FormattedAddress returns the hex-encoded Ethereum address with 0x prefix
func (s *Signer) FormattedAddress() string {
	return s.Address().Hex()
}

// SignTx signs a transaction with the latest signer the chain ID supports
func (s *Signer) SignTx(tx *types.Transaction) (*types.Transaction, error) {
	return types.SignTx(tx, types.LatestSignerForChainID(s.chainID), s.privKey)
}

// SignText signs data with the personal message prefix
// ("\x19Ethereum Signed Message:\n" + len(data)) and returns a 65 byte
// signature whose recovery id is 27 or 28.
func (s *Signer) SignText(data []byte) ([]byte, error) {
	sig, err := crypto.Sign(accounts.TextHash(data), s.privKey)
	if err != nil {
		return nil, fmt.Errorf("failed to sign message: %w", err)
	}
	sig[crypto.RecoveryIDOffset] += 27
	return sig, nil
}

// CreateTransaction creates a new legacy transaction with the given parameters
func (s *Signer) CreateTransaction(to common.Address, value *big.Int, gas uint64, gasPrice *big.Int, data []byte, nonce uint64) *types.Transaction {
	return types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		GasPrice: gasPrice,
		Gas:      gas,
		To:       &to,
		Value:    value,
		Data:     data,
	})
}

// RecoverTextSigner returns the address that produced sig over data with SignText
func RecoverTextSigner(data, sig []byte) (common.Address, error) {
	if len(sig) != crypto.SignatureLength {
		return common.Address{}, fmt.Errorf("invalid signature length %d", len(sig))
	}
	normalized := make([]byte, len(sig))
	copy(normalized, sig)
	if normalized[crypto.RecoveryIDOffset] >= 27 {
		normalized[crypto.RecoveryIDOffset] -= 27
	}

	pub, err := crypto.SigToPub(accounts.TextHash(data), normalized)
	if err != nil {
		return common.Address{}, fmt.Errorf("failed to recover signer: %w", err)
	}
	return crypto.PubkeyToAddress(*pub), nil
}

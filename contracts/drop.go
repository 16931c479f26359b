package contracts

import (
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
)

// DropMetaData contains the ABI of an allowlist gated drop.
var DropMetaData = &bind.MetaData{
	ABI: `[{"inputs":[{"internalType":"address","name":"_receiver","type":"address"},{"internalType":"uint256","name":"_quantity","type":"uint256"},{"internalType":"address","name":"_currency","type":"address"},{"internalType":"uint256","name":"_pricePerToken","type":"uint256"},{"components":[{"internalType":"bytes32[]","name":"proof","type":"bytes32[]"},{"internalType":"uint256","name":"quantityLimitPerWallet","type":"uint256"},{"internalType":"uint256","name":"pricePerToken","type":"uint256"},{"internalType":"address","name":"currency","type":"address"}],"internalType":"struct IDrop.AllowlistProof","name":"_allowlistProof","type":"tuple"},{"internalType":"bytes","name":"_data","type":"bytes"}],"name":"claim","outputs":[],"stateMutability":"payable","type":"function"}]`,
}

// AllowlistProof mirrors IDrop.AllowlistProof.
type AllowlistProof struct {
	Proof                  [][32]byte
	QuantityLimitPerWallet *big.Int
	PricePerToken          *big.Int
	Currency               common.Address
}

// PackClaim packs claim(_receiver, _quantity, _currency, _pricePerToken, _allowlistProof, _data).
func PackClaim(receiver common.Address, quantity *big.Int, currency common.Address, pricePerToken *big.Int,
	proof AllowlistProof, data []byte,
) ([]byte, error) {
	if data == nil {
		data = []byte{}
	}
	return pack(DropMetaData, "claim", receiver, quantity, currency, pricePerToken, proof, data)
}

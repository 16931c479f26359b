package contracts

import (
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
)

// OlimpMetaData contains the ABI of the signature gated mint.
var OlimpMetaData = &bind.MetaData{
	ABI: `[{"inputs":[{"internalType":"uint32","name":"qty","type":"uint32"},{"internalType":"bytes32[]","name":"proof","type":"bytes32[]"},{"internalType":"uint64","name":"timestamp","type":"uint64"},{"internalType":"bytes","name":"signature","type":"bytes"}],"name":"mint","outputs":[],"stateMutability":"payable","type":"function"}]`,
}

// PackOlimpMint packs mint(qty, proof, timestamp, signature).
func PackOlimpMint(qty uint32, proof [][32]byte, timestamp uint64, signature []byte) ([]byte, error) {
	if proof == nil {
		proof = [][32]byte{}
	}
	return pack(OlimpMetaData, "mint", qty, proof, timestamp, signature)
}

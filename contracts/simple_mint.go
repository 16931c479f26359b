package contracts

import (
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
)

// SimpleMintMetaData contains the ABI of a collection minted by numeric id.
var SimpleMintMetaData = &bind.MetaData{
	ABI: `[{"inputs":[{"internalType":"uint256","name":"_id","type":"uint256"}],"name":"mint","outputs":[],"stateMutability":"nonpayable","type":"function"},{"inputs":[{"internalType":"address","name":"owner","type":"address"}],"name":"balanceOf","outputs":[{"internalType":"uint256","name":"","type":"uint256"}],"stateMutability":"view","type":"function"}]`,
}

// PackSimpleMint packs mint(_id).
func PackSimpleMint(id *big.Int) ([]byte, error) {
	return pack(SimpleMintMetaData, "mint", id)
}

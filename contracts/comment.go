package contracts

import (
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
)

// CommentMintMetaData contains the ABI of a mint-with-comment collection.
var CommentMintMetaData = &bind.MetaData{
	ABI: `[{"inputs":[{"internalType":"address","name":"to","type":"address"},{"internalType":"uint256","name":"quantity","type":"uint256"},{"internalType":"string","name":"comment","type":"string"}],"name":"mintWithComment","outputs":[],"stateMutability":"payable","type":"function"},{"inputs":[{"internalType":"address","name":"owner","type":"address"}],"name":"balanceOf","outputs":[{"internalType":"uint256","name":"","type":"uint256"}],"stateMutability":"view","type":"function"}]`,
}

// PackMintWithComment packs mintWithComment(to, quantity, comment).
func PackMintWithComment(to common.Address, quantity *big.Int, comment string) ([]byte, error) {
	return pack(CommentMintMetaData, "mintWithComment", to, quantity, comment)
}

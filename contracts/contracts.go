// Package contracts holds the ABIs of the contracts the minter talks to and
// helpers that pack their calls.
package contracts

import (
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
)

func pack(meta *bind.MetaData, method string, args ...interface{}) ([]byte, error) {
	parsed, err := meta.GetAbi()
	if err != nil {
		return nil, fmt.Errorf("parsing abi: %w", err)
	}
	data, err := parsed.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("packing %s: %w", method, err)
	}
	return data, nil
}

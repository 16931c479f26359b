package wallet

import (
	"math/big"
	"math/rand"
	"strconv"

	"github.com/skip-mev/minter/types"
)

// GasLimitWithMargin returns ceil(estimate * f) with f drawn uniformly from
// [margin.Min, margin.Max]. The product is taken on the shortest decimal form
// of f, so a factor of 1.1 on 21000 gives exactly 23100.
func GasLimitWithMargin(estimate uint64, margin types.GasMargin, rng *rand.Rand) uint64 {
	factor := margin.Min + rng.Float64()*(margin.Max-margin.Min)
	if factor > margin.Max {
		factor = margin.Max
	}
	return ceilMul(estimate, factor)
}

func ceilMul(n uint64, factor float64) uint64 {
	f, ok := new(big.Rat).SetString(strconv.FormatFloat(factor, 'f', -1, 64))
	if !ok {
		f = new(big.Rat).SetFloat64(factor)
	}
	product := f.Mul(f, new(big.Rat).SetUint64(n))

	q, rem := new(big.Int).QuoRem(product.Num(), product.Denom(), new(big.Int))
	if rem.Sign() > 0 {
		q.Add(q, big.NewInt(1))
	}
	return q.Uint64()
}

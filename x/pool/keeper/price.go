package keeper

import (
	"context"

	"cosmossdk.io/math"

	"github.com/paw-chain/pawswap/x/pool/types"
)

// GetPrice returns how much of the other asset one unit of denom is worth,
// scaled by 1e18.
func (k Keeper) GetPrice(ctx context.Context, denom string) (math.Int, error) {
	pool, err := k.GetPool(ctx)
	if err != nil {
		return math.ZeroInt(), err
	}
	requested, other, err := pool.OrientedReserves(denom)
	if err != nil {
		return math.ZeroInt(), err
	}
	return types.SpotPrice(requested, other)
}

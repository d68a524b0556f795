package keeper

import (
	"context"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// SetBalanceUnchecked writes a balance without touching the supply.
func (k Keeper) SetBalanceUnchecked(ctx context.Context, denom string, holder sdk.AccAddress, amount math.Int) error {
	return k.setBalance(ctx, denom, holder, amount)
}

package keeper

import (
	"context"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/pawswap/x/pool/types"
)

// IsController reports whether addr may add or remove liquidity.
func (k Keeper) IsController(ctx context.Context, addr sdk.AccAddress) (bool, error) {
	info, err := k.GetPoolInfo(ctx)
	if err != nil {
		return false, err
	}
	return isController(info, addr), nil
}

func isController(info types.PoolInfo, addr sdk.AccAddress) bool {
	return !addr.Empty() && info.Controller == addr.String()
}

// requireExternal rejects the pool account as a trader or liquidity caller.
// Reserves only grow by tokens that arrive from another account.
func (k Keeper) requireExternal(addr sdk.AccAddress, role string) error {
	if addr.Equals(k.GetModuleAddress()) {
		return types.ErrInvalidAddress.Wrapf("%s cannot be the pool account", role)
	}
	return nil
}

func requireController(info types.PoolInfo, caller sdk.AccAddress) error {
	if !isController(info, caller) {
		return types.ErrUnauthorized.Wrapf("%s is not the pool controller", caller.String())
	}
	return nil
}

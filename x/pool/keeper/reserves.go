package keeper

import (
	"context"
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/pawswap/x/pool/types"
)

// InitPool creates the singleton pool with empty reserves. The asset
// identities and the controller are fixed from then on.
func (k Keeper) InitPool(ctx context.Context, controller sdk.AccAddress, assetA, assetB string) (types.Pool, error) {
	if k.HasPool(ctx) {
		return types.Pool{}, types.ErrPoolAlreadyInitialized
	}
	if controller.Empty() {
		return types.Pool{}, types.ErrInvalidAddress.Wrap("controller cannot be empty")
	}
	if err := k.requireExternal(controller, "controller"); err != nil {
		return types.Pool{}, err
	}

	pool := types.NewPool(controller, assetA, assetB)
	if err := pool.Validate(); err != nil {
		return types.Pool{}, err
	}
	for _, denom := range []string{assetA, assetB} {
		if !k.ledger.HasToken(ctx, denom) {
			return types.Pool{}, types.ErrInvalidToken.Wrapf("asset %s does not exist", denom)
		}
	}

	err := k.executeAtomically(ctx, func(cacheCtx sdk.Context) error {
		if err := k.setPoolInfo(cacheCtx, pool.PoolInfo); err != nil {
			return err
		}
		if err := k.setReserves(cacheCtx, pool.ReserveA, pool.ReserveB); err != nil {
			return err
		}
		cacheCtx.EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventTypePoolInitialized,
				sdk.NewAttribute(types.AttributeKeyController, pool.Controller),
				sdk.NewAttribute(types.AttributeKeyAssetA, assetA),
				sdk.NewAttribute(types.AttributeKeyAssetB, assetB),
			),
		)
		return nil
	})
	if err != nil {
		return types.Pool{}, err
	}

	k.Logger(ctx).Info("pool initialized", "asset_a", assetA, "asset_b", assetB, "controller", pool.Controller)
	return pool, nil
}

// HasPool reports whether InitPool has run.
func (k Keeper) HasPool(ctx context.Context) bool {
	return k.getStore(ctx).Has(types.PoolKey)
}

// GetPoolInfo returns the asset identities and controller.
func (k Keeper) GetPoolInfo(ctx context.Context) (types.PoolInfo, error) {
	bz := k.getStore(ctx).Get(types.PoolKey)
	if bz == nil {
		return types.PoolInfo{}, types.ErrPoolNotInitialized
	}
	var info types.PoolInfo
	if err := types.ModuleCdc.UnmarshalJSON(bz, &info); err != nil {
		return types.PoolInfo{}, fmt.Errorf("GetPoolInfo: unmarshal: %w", err)
	}
	return info, nil
}

func (k Keeper) setPoolInfo(ctx context.Context, info types.PoolInfo) error {
	bz, err := types.ModuleCdc.MarshalJSON(info)
	if err != nil {
		return fmt.Errorf("setPoolInfo: marshal: %w", err)
	}
	k.getStore(ctx).Set(types.PoolKey, bz)
	return nil
}

// GetPool returns the pool with its current reserves.
func (k Keeper) GetPool(ctx context.Context) (types.Pool, error) {
	info, err := k.GetPoolInfo(ctx)
	if err != nil {
		return types.Pool{}, err
	}
	reserveA, reserveB, err := k.GetReserves(ctx)
	if err != nil {
		return types.Pool{}, err
	}
	return types.Pool{PoolInfo: info, ReserveA: reserveA, ReserveB: reserveB}, nil
}

// GetReserves returns (reserveA, reserveB).
func (k Keeper) GetReserves(ctx context.Context) (math.Int, math.Int, error) {
	if !k.HasPool(ctx) {
		return math.ZeroInt(), math.ZeroInt(), types.ErrPoolNotInitialized
	}
	reserveA, err := k.getReserve(ctx, types.ReserveAKey)
	if err != nil {
		return math.ZeroInt(), math.ZeroInt(), err
	}
	reserveB, err := k.getReserve(ctx, types.ReserveBKey)
	if err != nil {
		return math.ZeroInt(), math.ZeroInt(), err
	}
	return reserveA, reserveB, nil
}

func (k Keeper) getReserve(ctx context.Context, key []byte) (math.Int, error) {
	bz := k.getStore(ctx).Get(key)
	if bz == nil {
		return math.ZeroInt(), nil
	}
	var reserve math.Int
	if err := reserve.Unmarshal(bz); err != nil {
		return math.ZeroInt(), fmt.Errorf("getReserve: unmarshal: %w", err)
	}
	return reserve, nil
}

// setReserves is the only writer of the reserve keys. Callers are the
// liquidity and swap paths, pool creation and genesis import.
func (k Keeper) setReserves(ctx context.Context, reserveA, reserveB math.Int) error {
	if reserveA.IsNegative() || reserveB.IsNegative() {
		return types.ErrInvariantViolation.Wrapf("negative reserves %s/%s", reserveA, reserveB)
	}

	store := k.getStore(ctx)
	bzA, err := reserveA.Marshal()
	if err != nil {
		return fmt.Errorf("setReserves: marshal reserve a: %w", err)
	}
	bzB, err := reserveB.Marshal()
	if err != nil {
		return fmt.Errorf("setReserves: marshal reserve b: %w", err)
	}
	store.Set(types.ReserveAKey, bzA)
	store.Set(types.ReserveBKey, bzB)
	return nil
}

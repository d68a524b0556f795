package keeper

import (
	"context"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/pawswap/x/pool/types"
)

func validateLiquidityAmounts(amountA, amountB math.Int) error {
	if amountA.IsNil() || amountB.IsNil() || !amountA.IsPositive() || !amountB.IsPositive() {
		return types.ErrInvalidAmount.Wrapf("both amounts must be positive, got %s and %s", amountA, amountB)
	}
	return nil
}

// AddLiquidity pulls amountA and amountB from the controller, who must have
// approved the pool account for both, and credits them to the reserves.
func (k Keeper) AddLiquidity(ctx context.Context, caller sdk.AccAddress, amountA, amountB math.Int) (_ types.Pool, err error) {
	defer func() {
		if err != nil {
			k.metrics.recordFailure(opAddLiquidity, err)
		}
	}()

	if err := k.requireExternal(caller, "caller"); err != nil {
		return types.Pool{}, err
	}
	pool, err := k.GetPool(ctx)
	if err != nil {
		return types.Pool{}, err
	}
	if err := requireController(pool.PoolInfo, caller); err != nil {
		return types.Pool{}, err
	}
	if err := validateLiquidityAmounts(amountA, amountB); err != nil {
		return types.Pool{}, err
	}

	newReserveA, err := pool.ReserveA.SafeAdd(amountA)
	if err != nil {
		return types.Pool{}, types.ErrInvalidAmount.Wrapf("reserve a overflow: %v", err)
	}
	newReserveB, err := pool.ReserveB.SafeAdd(amountB)
	if err != nil {
		return types.Pool{}, types.ErrInvalidAmount.Wrapf("reserve b overflow: %v", err)
	}

	poolAddr := k.GetModuleAddress()
	err = k.executeAtomically(ctx, func(cacheCtx sdk.Context) error {
		if err := k.ledger.TransferFrom(cacheCtx, pool.AssetA, poolAddr, caller, poolAddr, amountA); err != nil {
			return types.ErrTransferFailed.Wrapf("pull %s%s: %v", amountA, pool.AssetA, err)
		}
		if err := k.ledger.TransferFrom(cacheCtx, pool.AssetB, poolAddr, caller, poolAddr, amountB); err != nil {
			return types.ErrTransferFailed.Wrapf("pull %s%s: %v", amountB, pool.AssetB, err)
		}
		if err := k.setReserves(cacheCtx, newReserveA, newReserveB); err != nil {
			return err
		}

		cacheCtx.EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventTypeLiquidityAdded,
				sdk.NewAttribute(types.AttributeKeyController, caller.String()),
				sdk.NewAttribute(types.AttributeKeyAmountA, amountA.String()),
				sdk.NewAttribute(types.AttributeKeyAmountB, amountB.String()),
			),
		)
		return nil
	})
	if err != nil {
		return types.Pool{}, err
	}

	pool.ReserveA, pool.ReserveB = newReserveA, newReserveB
	k.Logger(ctx).Info("liquidity added",
		"amount_a", amountA.String(),
		"amount_b", amountB.String(),
		"reserve_a", pool.ReserveA.String(),
		"reserve_b", pool.ReserveB.String(),
	)
	return pool, nil
}

// RemoveLiquidity debits absolute amounts from both reserves and pays them
// to the controller. Amounts are not share based; the pool only guarantees
// that reserves stay non-negative.
func (k Keeper) RemoveLiquidity(ctx context.Context, caller sdk.AccAddress, amountA, amountB math.Int) (_ types.Pool, err error) {
	defer func() {
		if err != nil {
			k.metrics.recordFailure(opRemoveLiquidity, err)
		}
	}()

	if err := k.requireExternal(caller, "caller"); err != nil {
		return types.Pool{}, err
	}
	pool, err := k.GetPool(ctx)
	if err != nil {
		return types.Pool{}, err
	}
	if err := requireController(pool.PoolInfo, caller); err != nil {
		return types.Pool{}, err
	}
	if err := validateLiquidityAmounts(amountA, amountB); err != nil {
		return types.Pool{}, err
	}
	if amountA.GT(pool.ReserveA) || amountB.GT(pool.ReserveB) {
		return types.Pool{}, types.ErrInsufficientReserves.Wrapf("requested %s/%s, reserves are %s/%s",
			amountA, amountB, pool.ReserveA, pool.ReserveB)
	}

	newReserveA := pool.ReserveA.Sub(amountA)
	newReserveB := pool.ReserveB.Sub(amountB)

	poolAddr := k.GetModuleAddress()
	err = k.executeAtomically(ctx, func(cacheCtx sdk.Context) error {
		if err := k.setReserves(cacheCtx, newReserveA, newReserveB); err != nil {
			return err
		}
		if err := k.ledger.Transfer(cacheCtx, pool.AssetA, poolAddr, caller, amountA); err != nil {
			return types.ErrTransferFailed.Wrapf("push %s%s: %v", amountA, pool.AssetA, err)
		}
		if err := k.ledger.Transfer(cacheCtx, pool.AssetB, poolAddr, caller, amountB); err != nil {
			return types.ErrTransferFailed.Wrapf("push %s%s: %v", amountB, pool.AssetB, err)
		}

		cacheCtx.EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventTypeLiquidityRemoved,
				sdk.NewAttribute(types.AttributeKeyController, caller.String()),
				sdk.NewAttribute(types.AttributeKeyAmountA, amountA.String()),
				sdk.NewAttribute(types.AttributeKeyAmountB, amountB.String()),
			),
		)
		return nil
	})
	if err != nil {
		return types.Pool{}, err
	}

	pool.ReserveA, pool.ReserveB = newReserveA, newReserveB
	k.Logger(ctx).Info("liquidity removed",
		"amount_a", amountA.String(),
		"amount_b", amountB.String(),
		"reserve_a", pool.ReserveA.String(),
		"reserve_b", pool.ReserveB.String(),
	)
	return pool, nil
}

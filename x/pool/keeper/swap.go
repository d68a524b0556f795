package keeper

import (
	"context"
	"time"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/pawswap/x/pool/types"
)

// SwapAforB sells amountIn of asset A for asset B.
func (k Keeper) SwapAforB(ctx context.Context, trader sdk.AccAddress, amountIn math.Int) (math.Int, error) {
	info, err := k.GetPoolInfo(ctx)
	if err != nil {
		return math.ZeroInt(), err
	}
	return k.Swap(ctx, trader, info.AssetA, amountIn, math.ZeroInt())
}

// SwapBforA sells amountIn of asset B for asset A.
func (k Keeper) SwapBforA(ctx context.Context, trader sdk.AccAddress, amountIn math.Int) (math.Int, error) {
	info, err := k.GetPoolInfo(ctx)
	if err != nil {
		return math.ZeroInt(), err
	}
	return k.Swap(ctx, trader, info.AssetB, amountIn, math.ZeroInt())
}

// SimulateSwap prices a trade without moving anything.
func (k Keeper) SimulateSwap(ctx context.Context, denomIn string, amountIn math.Int) (types.SwapQuote, error) {
	pool, err := k.GetPool(ctx)
	if err != nil {
		return types.SwapQuote{}, err
	}
	return k.quoteSwap(ctx, pool, denomIn, amountIn)
}

// quoteSwap validates a trade against the current reserves and prices it.
// The fee, if any, comes off the input before the curve is applied.
func (k Keeper) quoteSwap(ctx context.Context, pool types.Pool, denomIn string, amountIn math.Int) (types.SwapQuote, error) {
	if amountIn.IsNil() || !amountIn.IsPositive() {
		return types.SwapQuote{}, types.ErrInvalidAmount.Wrap("swap amount must be positive")
	}
	denomOut, err := pool.OtherAsset(denomIn)
	if err != nil {
		return types.SwapQuote{}, err
	}
	reserveIn, reserveOut, err := pool.OrientedReserves(denomIn)
	if err != nil {
		return types.SwapQuote{}, err
	}
	if reserveIn.IsZero() || reserveOut.IsZero() {
		return types.SwapQuote{}, types.ErrInsufficientLiquidity.Wrapf("reserves are %s/%s", pool.ReserveA, pool.ReserveB)
	}

	params, err := k.GetParams(ctx)
	if err != nil {
		return types.SwapQuote{}, err
	}
	fee, amountInAfterFee := types.SplitFee(amountIn, params.SwapFeeBps)

	amountOut, err := types.GetAmountOut(amountInAfterFee, reserveIn, reserveOut)
	if err != nil {
		return types.SwapQuote{}, err
	}

	return types.SwapQuote{
		DenomIn:    denomIn,
		DenomOut:   denomOut,
		AmountIn:   amountIn,
		Fee:        fee,
		AmountOut:  amountOut,
		ReserveIn:  reserveIn,
		ReserveOut: reserveOut,
	}, nil
}

// Swap sells amountIn of denomIn to the pool. The trader must have approved
// the pool account for amountIn. The gross input is credited to the input
// reserve and the output is paid from the other reserve. Fails with
// ErrSlippageExceeded when the output is below minAmountOut.
func (k Keeper) Swap(ctx context.Context, trader sdk.AccAddress, denomIn string, amountIn, minAmountOut math.Int) (_ math.Int, err error) {
	start := time.Now()
	defer func() {
		k.metrics.SwapLatency.Observe(time.Since(start).Seconds())
		if err != nil {
			k.metrics.recordFailure(opSwap, err)
		}
	}()

	if trader.Empty() {
		return math.ZeroInt(), types.ErrInvalidAddress.Wrap("trader cannot be empty")
	}
	if err := k.requireExternal(trader, "trader"); err != nil {
		return math.ZeroInt(), err
	}

	pool, err := k.GetPool(ctx)
	if err != nil {
		return math.ZeroInt(), err
	}

	quote, err := k.quoteSwap(ctx, pool, denomIn, amountIn)
	if err != nil {
		return math.ZeroInt(), err
	}
	if !minAmountOut.IsNil() && quote.AmountOut.LT(minAmountOut) {
		return math.ZeroInt(), types.ErrSlippageExceeded.Wrapf("expected at least %s, got %s", minAmountOut, quote.AmountOut)
	}

	newReserveIn, err := quote.ReserveIn.SafeAdd(amountIn)
	if err != nil {
		return math.ZeroInt(), types.ErrInvalidAmount.Wrapf("input reserve overflow: %v", err)
	}
	newReserveOut := quote.ReserveOut.Sub(quote.AmountOut)
	if !types.ProductNotDecreased(quote.ReserveIn, quote.ReserveOut, newReserveIn, newReserveOut) {
		return math.ZeroInt(), types.ErrInvariantViolation.Wrapf(
			"constant product decreased: %s*%s -> %s*%s",
			quote.ReserveIn, quote.ReserveOut, newReserveIn, newReserveOut,
		)
	}

	eventType := types.EventTypeSwappedAforB
	newReserveA, newReserveB := newReserveIn, newReserveOut
	if denomIn == pool.AssetB {
		eventType = types.EventTypeSwappedBforA
		newReserveA, newReserveB = newReserveOut, newReserveIn
	}

	poolAddr := k.GetModuleAddress()
	err = k.executeAtomically(ctx, func(cacheCtx sdk.Context) error {
		if err := k.ledger.TransferFrom(cacheCtx, quote.DenomIn, poolAddr, trader, poolAddr, amountIn); err != nil {
			return types.ErrTransferFailed.Wrapf("pull %s%s: %v", amountIn, quote.DenomIn, err)
		}
		if err := k.setReserves(cacheCtx, newReserveA, newReserveB); err != nil {
			return err
		}
		if err := k.ledger.Transfer(cacheCtx, quote.DenomOut, poolAddr, trader, quote.AmountOut); err != nil {
			return types.ErrTransferFailed.Wrapf("push %s%s: %v", quote.AmountOut, quote.DenomOut, err)
		}

		cacheCtx.EventManager().EmitEvent(
			sdk.NewEvent(
				eventType,
				sdk.NewAttribute(types.AttributeKeyTrader, trader.String()),
				sdk.NewAttribute(types.AttributeKeyAmountIn, amountIn.String()),
				sdk.NewAttribute(types.AttributeKeyAmountOut, quote.AmountOut.String()),
				sdk.NewAttribute(types.AttributeKeyFee, quote.Fee.String()),
			),
		)
		return nil
	})
	if err != nil {
		return math.ZeroInt(), err
	}

	k.Logger(ctx).Debug("swap executed",
		"trader", trader.String(),
		"denom_in", quote.DenomIn,
		"amount_in", amountIn.String(),
		"amount_out", quote.AmountOut.String(),
	)
	return quote.AmountOut, nil
}

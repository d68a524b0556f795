package keeper

import (
	"errors"
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/pawswap/x/pool/types"
)

// RegisterInvariants registers all pool invariants
func RegisterInvariants(ir sdk.InvariantRegistry, k Keeper) {
	ir.RegisterRoute(types.ModuleName, "reserves-backed", ReservesBackedInvariant(k))
	ir.RegisterRoute(types.ModuleName, "non-negative-reserves", NonNegativeReservesInvariant(k))
}

// AllInvariants runs all invariants of the pool module
func AllInvariants(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		res, stop := ReservesBackedInvariant(k)(ctx)
		if stop {
			return res, stop
		}
		return NonNegativeReservesInvariant(k)(ctx)
	}
}

// ReservesBackedInvariant checks that the pool account holds at least the
// tracked reserve of each asset
func ReservesBackedInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		var (
			msg   string
			count int
		)

		pool, err := k.GetPool(ctx)
		if errors.Is(err, types.ErrPoolNotInitialized) {
			return sdk.FormatInvariant(types.ModuleName, "reserves-backed", "pool not initialized\n"), false
		}
		if err != nil {
			return sdk.FormatInvariant(types.ModuleName, "reserves-backed", err.Error()), true
		}

		moduleAddr := k.GetModuleAddress()
		balanceA := k.ledger.BalanceOf(ctx, pool.AssetA, moduleAddr)
		balanceB := k.ledger.BalanceOf(ctx, pool.AssetB, moduleAddr)

		// direct transfers to the pool account are allowed, so >= rather than ==
		if balanceA.LT(pool.ReserveA) {
			count++
			msg += fmt.Sprintf("pool balance for %s (%s) < reserve (%s)\n",
				pool.AssetA, balanceA.String(), pool.ReserveA.String())
		}
		if balanceB.LT(pool.ReserveB) {
			count++
			msg += fmt.Sprintf("pool balance for %s (%s) < reserve (%s)\n",
				pool.AssetB, balanceB.String(), pool.ReserveB.String())
		}

		broken := count != 0
		return sdk.FormatInvariant(
			types.ModuleName, "reserves-backed",
			fmt.Sprintf("found %d reserves exceeding the pool balance\n%s", count, msg),
		), broken
	}
}

// NonNegativeReservesInvariant checks that neither reserve is negative
func NonNegativeReservesInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		reserveA, reserveB, err := k.GetReserves(ctx)
		if errors.Is(err, types.ErrPoolNotInitialized) {
			return sdk.FormatInvariant(types.ModuleName, "non-negative-reserves", "pool not initialized\n"), false
		}
		if err != nil {
			return sdk.FormatInvariant(types.ModuleName, "non-negative-reserves", err.Error()), true
		}

		broken := reserveA.IsNegative() || reserveB.IsNegative()
		return sdk.FormatInvariant(
			types.ModuleName, "non-negative-reserves",
			fmt.Sprintf("reserves %s/%s\n", reserveA.String(), reserveB.String()),
		), broken
	}
}

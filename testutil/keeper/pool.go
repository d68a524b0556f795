package keeper

import (
	"testing"

	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	poolkeeper "github.com/paw-chain/pawswap/x/pool/keeper"
	pooltypes "github.com/paw-chain/pawswap/x/pool/types"
	tokenkeeper "github.com/paw-chain/pawswap/x/token/keeper"
	tokentypes "github.com/paw-chain/pawswap/x/token/types"
)

const (
	DenomA = "tokena"
	DenomB = "tokenb"

	// InitialSupply matches the 5000 units each test token is deployed with.
	InitialSupply = 5000
)

// PoolKeeper creates a pool keeper wired to a store-backed token ledger that
// shares its multistore, so branch rollbacks cover both modules.
func PoolKeeper(t testing.TB) (poolkeeper.Keeper, tokenkeeper.Keeper, sdk.Context) {
	return PoolKeeperWithLedger(t, nil)
}

// PoolKeeperWithLedger lets a test wrap the token keeper, for example to
// inject ledger failures. wrap may be nil.
func PoolKeeperWithLedger(t testing.TB, wrap func(tokenkeeper.Keeper) pooltypes.AssetLedger) (poolkeeper.Keeper, tokenkeeper.Keeper, sdk.Context) {
	poolKey := storetypes.NewKVStoreKey(pooltypes.StoreKey)
	tokenKey := storetypes.NewKVStoreKey(tokentypes.StoreKey)
	ctx := newTestContext(t, poolKey, tokenKey)

	tk := tokenkeeper.NewKeeper(tokenKey)
	require.NoError(t, tk.InitGenesis(ctx, *tokentypes.DefaultGenesis()))

	var ledger pooltypes.AssetLedger = tk
	if wrap != nil {
		ledger = wrap(tk)
	}

	k := poolkeeper.NewKeeper(poolKey, ledger)
	require.NoError(t, k.InitGenesis(ctx, *pooltypes.DefaultGenesis()))

	return k, tk, ctx
}

// CreateTestPool deploys DenomA and DenomB to controller, initializes the
// pool and, when both reserves are positive, seeds it through AddLiquidity.
func CreateTestPool(t testing.TB, k poolkeeper.Keeper, tk tokenkeeper.Keeper, ctx sdk.Context, controller sdk.AccAddress, reserveA, reserveB math.Int) pooltypes.Pool {
	require.NoError(t, tk.CreateToken(ctx, controller, DenomA, math.NewInt(InitialSupply)))
	require.NoError(t, tk.CreateToken(ctx, controller, DenomB, math.NewInt(InitialSupply)))

	pool, err := k.InitPool(ctx, controller, DenomA, DenomB)
	require.NoError(t, err)

	if reserveA.IsPositive() && reserveB.IsPositive() {
		FundAccount(t, tk, ctx, controller, controller, reserveA, reserveB)
		ApprovePool(t, k, tk, ctx, controller, reserveA, reserveB)
		pool, err = k.AddLiquidity(ctx, controller, reserveA, reserveB)
		require.NoError(t, err)
	}
	return pool
}

// FundAccount mints enough of both test tokens for addr to hold amountA and
// amountB on top of what it already has. owner must own both tokens.
func FundAccount(t testing.TB, tk tokenkeeper.Keeper, ctx sdk.Context, owner, addr sdk.AccAddress, amountA, amountB math.Int) {
	for denom, amount := range map[string]math.Int{DenomA: amountA, DenomB: amountB} {
		if amount.IsPositive() {
			require.NoError(t, tk.Mint(ctx, owner, denom, addr, amount))
		}
	}
}

// ApprovePool lets the pool pull amountA and amountB from holder.
func ApprovePool(t testing.TB, k poolkeeper.Keeper, tk tokenkeeper.Keeper, ctx sdk.Context, holder sdk.AccAddress, amountA, amountB math.Int) {
	require.NoError(t, tk.Approve(ctx, DenomA, holder, k.GetModuleAddress(), amountA))
	require.NoError(t, tk.Approve(ctx, DenomB, holder, k.GetModuleAddress(), amountB))
}

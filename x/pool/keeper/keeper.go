package keeper

import (
	"context"

	"cosmossdk.io/log"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/pawswap/x/pool/types"
)

// Keeper of the pool store
type Keeper struct {
	storeKey storetypes.StoreKey
	ledger   types.AssetLedger
	metrics  *PoolMetrics
}

// NewKeeper creates a new pool Keeper instance
func NewKeeper(key storetypes.StoreKey, ledger types.AssetLedger) Keeper {
	return Keeper{
		storeKey: key,
		ledger:   ledger,
		metrics:  NewPoolMetrics(),
	}
}

// getStore returns the KVStore for the pool module
func (k Keeper) getStore(ctx context.Context) storetypes.KVStore {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	return sdkCtx.KVStore(k.storeKey)
}

// Logger returns a module-specific logger.
func (k Keeper) Logger(ctx context.Context) log.Logger {
	return sdk.UnwrapSDKContext(ctx).Logger().With("module", "x/"+types.ModuleName)
}

// GetModuleAddress returns the account holding the pooled assets.
func (k Keeper) GetModuleAddress() sdk.AccAddress {
	return types.ModuleAddress
}

// executeAtomically runs fn on a branch of the store. The branch and the
// events emitted on it reach the parent context only when fn succeeds.
func (k Keeper) executeAtomically(ctx context.Context, fn func(cacheCtx sdk.Context) error) error {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	cacheCtx, writeFn := sdkCtx.CacheContext()
	if err := fn(cacheCtx); err != nil {
		return err
	}
	writeFn()
	return nil
}

package keeper

import (
	"testing"

	"cosmossdk.io/log"
	"cosmossdk.io/store"
	"cosmossdk.io/store/metrics"
	storetypes "cosmossdk.io/store/types"
	cmtproto "github.com/cometbft/cometbft/proto/tendermint/types"
	dbm "github.com/cosmos/cosmos-db"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	tokenkeeper "github.com/paw-chain/pawswap/x/token/keeper"
	tokentypes "github.com/paw-chain/pawswap/x/token/types"
)

// newTestContext mounts one IAVL store per key on an in-memory database.
func newTestContext(t testing.TB, keys ...*storetypes.KVStoreKey) sdk.Context {
	db := dbm.NewMemDB()
	stateStore := store.NewCommitMultiStore(db, log.NewNopLogger(), metrics.NewNoOpMetrics())
	for _, key := range keys {
		stateStore.MountStoreWithDB(key, storetypes.StoreTypeIAVL, db)
	}
	require.NoError(t, stateStore.LoadLatestVersion())

	return sdk.NewContext(stateStore, cmtproto.Header{}, false, log.NewNopLogger())
}

// TokenKeeper creates a token keeper backed by an in-memory store
func TokenKeeper(t testing.TB) (tokenkeeper.Keeper, sdk.Context) {
	storeKey := storetypes.NewKVStoreKey(tokentypes.StoreKey)
	ctx := newTestContext(t, storeKey)

	k := tokenkeeper.NewKeeper(storeKey)
	require.NoError(t, k.InitGenesis(ctx, *tokentypes.DefaultGenesis()))

	return k, ctx
}

// TestAddress derives a deterministic account address from a label.
func TestAddress(label string) sdk.AccAddress {
	return sdk.AccAddress([]byte(label + "________________________")[:20])
}

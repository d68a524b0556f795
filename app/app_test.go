package app_test

import (
	"encoding/json"
	"errors"
	"testing"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	dbm "github.com/cosmos/cosmos-db"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"

	"github.com/paw-chain/pawswap/app"
	keepertest "github.com/paw-chain/pawswap/testutil/keeper"
	pooltypes "github.com/paw-chain/pawswap/x/pool/types"
	tokentypes "github.com/paw-chain/pawswap/x/token/types"
)

func setupApp(t *testing.T, db dbm.DB) (*app.App, sdk.AccAddress) {
	t.Helper()

	controller := keepertest.TestAddress("controller")
	pawApp, err := app.New(log.NewNopLogger(), db, app.Options{CheckInvariants: true})
	require.NoError(t, err)

	genesis, err := app.NewGenesisStateFromConfig(app.DefaultGenesisConfig(controller))
	require.NoError(t, err)
	require.NoError(t, pawApp.InitChainFromGenesis(genesis))

	return pawApp, controller
}

func seedPool(t *testing.T, pawApp *app.App, controller sdk.AccAddress, a, b int64) {
	t.Helper()
	_, err := pawApp.Exec(func(ctx sdk.Context) error {
		pool := pawApp.PoolKeeper.GetModuleAddress()
		if err := pawApp.TokenKeeper.Approve(ctx, "tokena", controller, pool, math.NewInt(a)); err != nil {
			return err
		}
		if err := pawApp.TokenKeeper.Approve(ctx, "tokenb", controller, pool, math.NewInt(b)); err != nil {
			return err
		}
		_, err := pawApp.PoolKeeper.AddLiquidity(ctx, controller, math.NewInt(a), math.NewInt(b))
		return err
	})
	require.NoError(t, err)
}

func TestInitChainFromGenesis(t *testing.T) {
	pawApp, controller := setupApp(t, dbm.NewMemDB())

	require.True(t, pawApp.HasState())
	require.Equal(t, int64(1), pawApp.LastCommitID().Version)

	pool, err := pawApp.Pool()
	require.NoError(t, err)
	require.Equal(t, "tokena", pool.AssetA)
	require.Equal(t, "tokenb", pool.AssetB)
	require.Equal(t, controller.String(), pool.Controller)
	require.True(t, pool.IsEmpty())

	require.NoError(t, pawApp.Query(func(ctx sdk.Context) error {
		require.Equal(t, "5000", pawApp.TokenKeeper.BalanceOf(ctx, "tokena", controller).String())
		require.Equal(t, "5000", pawApp.TokenKeeper.BalanceOf(ctx, "tokenb", controller).String())
		return nil
	}))

	// a second init is refused
	genesis, err := app.NewGenesisStateFromConfig(app.DefaultGenesisConfig(controller))
	require.NoError(t, err)
	require.Error(t, pawApp.InitChainFromGenesis(genesis))
}

func TestExecCommitsAndReturnsEvents(t *testing.T) {
	pawApp, controller := setupApp(t, dbm.NewMemDB())
	seedPool(t, pawApp, controller, 1000, 2000)

	trader := keepertest.TestAddress("trader")
	events, err := pawApp.Exec(func(ctx sdk.Context) error {
		if err := pawApp.TokenKeeper.Transfer(ctx, "tokena", controller, trader, math.NewInt(100)); err != nil {
			return err
		}
		if err := pawApp.TokenKeeper.Approve(ctx, "tokena", trader, pawApp.PoolKeeper.GetModuleAddress(), math.NewInt(100)); err != nil {
			return err
		}
		_, err := pawApp.PoolKeeper.SwapAforB(ctx, trader, math.NewInt(100))
		return err
	})
	require.NoError(t, err)

	var swapped bool
	for _, e := range events {
		if e.Type == pooltypes.EventTypeSwappedAforB {
			swapped = true
		}
	}
	require.True(t, swapped)

	pool, err := pawApp.Pool()
	require.NoError(t, err)
	require.Equal(t, "1100", pool.ReserveA.String())
	// floor(2000*100/1100) = 181
	require.Equal(t, "1819", pool.ReserveB.String())
	require.Empty(t, pawApp.CheckInvariants())
}

func TestExecDiscardsOnError(t *testing.T) {
	pawApp, controller := setupApp(t, dbm.NewMemDB())
	before := pawApp.LastCommitID()

	boom := errors.New("boom")
	_, err := pawApp.Exec(func(ctx sdk.Context) error {
		if err := pawApp.TokenKeeper.Transfer(ctx, "tokena", controller, keepertest.TestAddress("other"), math.NewInt(10)); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)
	require.Equal(t, before, pawApp.LastCommitID())

	require.NoError(t, pawApp.Query(func(ctx sdk.Context) error {
		require.Equal(t, "5000", pawApp.TokenKeeper.BalanceOf(ctx, "tokena", controller).String())
		return nil
	}))
}

func TestExecRejectsBrokenInvariant(t *testing.T) {
	pawApp, controller := setupApp(t, dbm.NewMemDB())
	seedPool(t, pawApp, controller, 1000, 1000)

	// draining the pool account behind the keeper's back leaves reserves unbacked
	_, err := pawApp.Exec(func(ctx sdk.Context) error {
		return pawApp.TokenKeeper.Transfer(ctx, "tokena", pawApp.PoolKeeper.GetModuleAddress(), controller, math.NewInt(1))
	})
	require.ErrorIs(t, err, pooltypes.ErrInvariantViolation)
	require.Empty(t, pawApp.CheckInvariants())
}

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, c.Write(&m))
	return m.GetCounter().GetValue()
}

func TestExecCountsOnlyCommittedSwaps(t *testing.T) {
	pawApp, controller := setupApp(t, dbm.NewMemDB())
	seedPool(t, pawApp, controller, 1000, 2000)

	metrics := pawApp.PoolKeeper.Metrics()
	swaps := metrics.SwapsTotal.WithLabelValues("tokena", "tokenb")
	discarded := metrics.OperationFailures.WithLabelValues("swap", "invariant_violation")
	swapsBefore, discardedBefore := counterValue(t, swaps), counterValue(t, discarded)

	trader := keepertest.TestAddress("trader")
	swap := func(ctx sdk.Context) error {
		if err := pawApp.TokenKeeper.Transfer(ctx, "tokena", controller, trader, math.NewInt(100)); err != nil {
			return err
		}
		if err := pawApp.TokenKeeper.Approve(ctx, "tokena", trader, pawApp.PoolKeeper.GetModuleAddress(), math.NewInt(100)); err != nil {
			return err
		}
		_, err := pawApp.PoolKeeper.SwapAforB(ctx, trader, math.NewInt(100))
		return err
	}

	// the keeper accepts the swap but the invariant check throws it away
	_, err := pawApp.Exec(func(ctx sdk.Context) error {
		if err := swap(ctx); err != nil {
			return err
		}
		return pawApp.TokenKeeper.Transfer(ctx, "tokena", pawApp.PoolKeeper.GetModuleAddress(), controller, math.NewInt(1))
	})
	require.ErrorIs(t, err, pooltypes.ErrInvariantViolation)
	require.Equal(t, swapsBefore, counterValue(t, swaps))
	require.Equal(t, discardedBefore+1, counterValue(t, discarded))

	_, err = pawApp.Exec(swap)
	require.NoError(t, err)
	require.Equal(t, swapsBefore+1, counterValue(t, swaps))

	var reserve dto.Metric
	require.NoError(t, metrics.PoolReserves.WithLabelValues("tokenb").Write(&reserve))
	require.Equal(t, float64(1819), reserve.GetGauge().GetValue())
}

func TestQueryNeverWrites(t *testing.T) {
	pawApp, controller := setupApp(t, dbm.NewMemDB())
	before := pawApp.LastCommitID()

	require.NoError(t, pawApp.Query(func(ctx sdk.Context) error {
		return pawApp.TokenKeeper.Transfer(ctx, "tokena", controller, keepertest.TestAddress("other"), math.NewInt(10))
	}))
	require.Equal(t, before, pawApp.LastCommitID())

	require.NoError(t, pawApp.Query(func(ctx sdk.Context) error {
		require.True(t, pawApp.TokenKeeper.BalanceOf(ctx, "tokena", keepertest.TestAddress("other")).IsZero())
		return nil
	}))
}

func TestExportGenesisRoundTrip(t *testing.T) {
	pawApp, controller := setupApp(t, dbm.NewMemDB())
	seedPool(t, pawApp, controller, 700, 300)

	exported, err := pawApp.ExportGenesis()
	require.NoError(t, err)
	require.NoError(t, exported.Validate())

	var poolGenesis pooltypes.GenesisState
	require.NoError(t, json.Unmarshal(exported[pooltypes.ModuleName], &poolGenesis))
	require.NotNil(t, poolGenesis.Pool)
	require.Equal(t, "700", poolGenesis.Pool.ReserveA.String())
	require.Equal(t, "300", poolGenesis.Pool.ReserveB.String())

	var tokenGenesis tokentypes.GenesisState
	require.NoError(t, json.Unmarshal(exported[tokentypes.ModuleName], &tokenGenesis))
	require.Len(t, tokenGenesis.Tokens, 2)

	restored, err := app.New(log.NewNopLogger(), dbm.NewMemDB(), app.Options{CheckInvariants: true})
	require.NoError(t, err)
	require.NoError(t, restored.InitChainFromGenesis(exported))

	pool, err := restored.Pool()
	require.NoError(t, err)
	require.Equal(t, "700", pool.ReserveA.String())
	require.Equal(t, "300", pool.ReserveB.String())
	require.Empty(t, restored.CheckInvariants())
}

func TestStatePersistsAcrossRestart(t *testing.T) {
	dir := t.TempDir()

	db, err := dbm.NewGoLevelDB(app.Name, dir, nil)
	require.NoError(t, err)
	pawApp, controller := setupApp(t, db)
	seedPool(t, pawApp, controller, 10, 20)
	version := pawApp.LastCommitID().Version
	require.NoError(t, pawApp.Close())

	db, err = dbm.NewGoLevelDB(app.Name, dir, nil)
	require.NoError(t, err)
	reopened, err := app.New(log.NewNopLogger(), db, app.Options{})
	require.NoError(t, err)
	defer reopened.Close()

	require.Equal(t, version, reopened.LastCommitID().Version)
	pool, err := reopened.Pool()
	require.NoError(t, err)
	require.Equal(t, "10", pool.ReserveA.String())
	require.Equal(t, "20", pool.ReserveB.String())
}

func TestPoolNotInitialized(t *testing.T) {
	pawApp, err := app.New(log.NewNopLogger(), dbm.NewMemDB(), app.Options{})
	require.NoError(t, err)
	require.False(t, pawApp.HasState())

	require.NoError(t, pawApp.InitChainFromGenesis(app.NewDefaultGenesisState()))
	_, err = pawApp.Pool()
	require.ErrorIs(t, err, pooltypes.ErrPoolNotInitialized)
}

func TestGenesisValidate(t *testing.T) {
	controller := keepertest.TestAddress("controller")

	cfg := app.DefaultGenesisConfig(controller)
	cfg.AssetB = cfg.AssetA
	_, err := app.NewGenesisStateFromConfig(cfg)
	require.Error(t, err)

	cfg = app.DefaultGenesisConfig(controller)
	cfg.SwapFeeBps = pooltypes.MaxSwapFeeBps + 1
	_, err = app.NewGenesisStateFromConfig(cfg)
	require.ErrorIs(t, err, pooltypes.ErrInvalidParams)

	bad := app.GenesisState{pooltypes.ModuleName: json.RawMessage(`{"params":`)}
	require.Error(t, bad.Validate())
}

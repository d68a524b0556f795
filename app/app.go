// Package app wires the pawswap ledger and pool keepers onto a committed
// multistore.
//
// The App owns the database, the IAVL-backed CommitMultiStore, the keepers
// and a mutex. Every state change goes through Exec, which runs against a
// branch of the store and commits a new version only when the operation and
// the registered invariants succeed. Reads go through Query and never write.
package app

import (
	"fmt"
	"sync"
	"time"

	"cosmossdk.io/log"
	"cosmossdk.io/store"
	"cosmossdk.io/store/metrics"
	storetypes "cosmossdk.io/store/types"
	cmtproto "github.com/cometbft/cometbft/proto/tendermint/types"
	dbm "github.com/cosmos/cosmos-db"
	sdk "github.com/cosmos/cosmos-sdk/types"

	poolkeeper "github.com/paw-chain/pawswap/x/pool/keeper"
	pooltypes "github.com/paw-chain/pawswap/x/pool/types"
	tokenkeeper "github.com/paw-chain/pawswap/x/token/keeper"
	tokentypes "github.com/paw-chain/pawswap/x/token/types"
)

const (
	// Name is the application name used in logs and the database file.
	Name = "pawswap"
)

// App is the pawswap state machine.
type App struct {
	logger log.Logger
	db     dbm.DB
	cms    storetypes.CommitMultiStore

	keys map[string]*storetypes.KVStoreKey

	TokenKeeper tokenkeeper.Keeper
	PoolKeeper  poolkeeper.Keeper

	invariants      []invariantRoute
	checkInvariants bool

	mu sync.Mutex
}

// Options tunes an App.
type Options struct {
	// CheckInvariants runs every registered invariant on the branch of each
	// Exec before it is committed.
	CheckInvariants bool
}

type invariantRoute struct {
	module string
	route  string
	inv    sdk.Invariant
}

var _ sdk.InvariantRegistry = (*App)(nil)

// New mounts the module stores on db, loads the latest committed version and
// builds the keepers.
func New(logger log.Logger, db dbm.DB, opts Options) (*App, error) {
	keys := storetypes.NewKVStoreKeys(tokentypes.StoreKey, pooltypes.StoreKey)

	cms := store.NewCommitMultiStore(db, logger, metrics.NewNoOpMetrics())
	for _, key := range keys {
		cms.MountStoreWithDB(key, storetypes.StoreTypeIAVL, nil)
	}
	if err := cms.LoadLatestVersion(); err != nil {
		return nil, fmt.Errorf("failed to load latest version: %w", err)
	}

	app := &App{
		logger:          logger.With("module", "app"),
		db:              db,
		cms:             cms,
		keys:            keys,
		checkInvariants: opts.CheckInvariants,
	}

	app.TokenKeeper = tokenkeeper.NewKeeper(keys[tokentypes.StoreKey])
	app.PoolKeeper = poolkeeper.NewKeeper(keys[pooltypes.StoreKey], app.TokenKeeper)

	tokenkeeper.RegisterInvariants(app, app.TokenKeeper)
	poolkeeper.RegisterInvariants(app, app.PoolKeeper)

	app.logger.Info("loaded state", "version", cms.LastCommitID().Version)
	return app, nil
}

// RegisterRoute implements sdk.InvariantRegistry.
func (app *App) RegisterRoute(moduleName, route string, invar sdk.Invariant) {
	app.invariants = append(app.invariants, invariantRoute{module: moduleName, route: route, inv: invar})
}

// Logger returns the application logger.
func (app *App) Logger() log.Logger { return app.logger }

// GetKey returns the KVStoreKey for the provided store key.
func (app *App) GetKey(storeKey string) *storetypes.KVStoreKey {
	return app.keys[storeKey]
}

// LastCommitID returns the id of the latest committed version.
func (app *App) LastCommitID() storetypes.CommitID {
	app.mu.Lock()
	defer app.mu.Unlock()
	return app.cms.LastCommitID()
}

// HasState reports whether any version has been committed.
func (app *App) HasState() bool {
	return app.LastCommitID().Version > 0
}

func (app *App) newContext() sdk.Context {
	header := cmtproto.Header{
		ChainID: Name,
		Height:  app.cms.LastCommitID().Version + 1,
		Time:    time.Now().UTC(),
	}
	return sdk.NewContext(app.cms, header, false, app.logger)
}

// Exec runs fn against a branch of the latest state. When fn and the
// invariants succeed the branch is written and committed, and the events fn
// emitted are returned. Otherwise nothing is written. Pool metrics are only
// counted as successes once the version is committed.
func (app *App) Exec(fn func(ctx sdk.Context) error) (sdk.Events, error) {
	app.mu.Lock()
	defer app.mu.Unlock()

	ctx := app.newContext()
	cacheCtx, writeCache := ctx.CacheContext()

	if err := fn(cacheCtx); err != nil {
		app.PoolKeeper.RecordDiscarded(cacheCtx.EventManager().Events(), err)
		return nil, err
	}

	if app.checkInvariants {
		if err := app.assertInvariants(cacheCtx); err != nil {
			app.logger.Error("invariant broken, discarding changes", "error", err)
			app.PoolKeeper.RecordDiscarded(cacheCtx.EventManager().Events(), err)
			return nil, err
		}
	}

	writeCache()
	commitID := app.cms.Commit()
	app.logger.Debug("committed", "version", commitID.Version)

	events := ctx.EventManager().Events()
	app.PoolKeeper.RecordCommitted(ctx, events)
	return events, nil
}

// Query runs fn against a branch of the latest state that is always
// discarded.
func (app *App) Query(fn func(ctx sdk.Context) error) error {
	app.mu.Lock()
	defer app.mu.Unlock()

	cacheCtx, _ := app.newContext().CacheContext()
	return fn(cacheCtx)
}

// Pool returns the latest committed pool state.
func (app *App) Pool() (pooltypes.Pool, error) {
	var pool pooltypes.Pool
	err := app.Query(func(ctx sdk.Context) error {
		var err error
		pool, err = app.PoolKeeper.GetPool(ctx)
		return err
	})
	return pool, err
}

// CheckInvariants runs every registered invariant against the latest state
// and returns the description of each broken one.
func (app *App) CheckInvariants() []string {
	var broken []string
	_ = app.Query(func(ctx sdk.Context) error {
		for _, r := range app.invariants {
			if msg, stop := r.inv(ctx); stop {
				broken = append(broken, msg)
			}
		}
		return nil
	})
	return broken
}

func (app *App) assertInvariants(ctx sdk.Context) error {
	for _, r := range app.invariants {
		if msg, stop := r.inv(ctx); stop {
			return pooltypes.ErrInvariantViolation.Wrapf("%s/%s: %s", r.module, r.route, msg)
		}
	}
	return nil
}

// Close releases the database.
func (app *App) Close() error {
	app.mu.Lock()
	defer app.mu.Unlock()
	return app.db.Close()
}

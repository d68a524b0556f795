package app

import (
	"encoding/json"
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	pooltypes "github.com/paw-chain/pawswap/x/pool/types"
	tokentypes "github.com/paw-chain/pawswap/x/token/types"
)

// GenesisState represents the genesis state of the application, keyed by
// module name.
type GenesisState map[string]json.RawMessage

// NewDefaultGenesisState returns an empty ledger and no pool.
func NewDefaultGenesisState() GenesisState {
	return GenesisState{
		tokentypes.ModuleName: mustMarshalJSON(tokentypes.DefaultGenesis()),
		pooltypes.ModuleName:  mustMarshalJSON(pooltypes.DefaultGenesis()),
	}
}

// GenesisConfig describes the two tokens and the pool created by `init`.
type GenesisConfig struct {
	Controller    sdk.AccAddress
	AssetA        string
	AssetB        string
	InitialSupply math.Int
	SwapFeeBps    uint32
}

// DefaultGenesisConfig mirrors the reference deployment: two tokens with a
// supply of 5000 each held by the controller.
func DefaultGenesisConfig(controller sdk.AccAddress) GenesisConfig {
	return GenesisConfig{
		Controller:    controller,
		AssetA:        "tokena",
		AssetB:        "tokenb",
		InitialSupply: math.NewInt(5000),
	}
}

// NewGenesisStateFromConfig builds a genesis with both tokens minted to the
// controller and an empty pool over them.
func NewGenesisStateFromConfig(cfg GenesisConfig) (GenesisState, error) {
	owner := cfg.Controller.String()

	tokenGenesis := tokentypes.DefaultGenesis()
	for _, denom := range []string{cfg.AssetA, cfg.AssetB} {
		tokenGenesis.Tokens = append(tokenGenesis.Tokens, tokentypes.Token{
			Denom:  denom,
			Owner:  owner,
			Supply: cfg.InitialSupply,
		})
		if cfg.InitialSupply.IsPositive() {
			tokenGenesis.Balances = append(tokenGenesis.Balances, tokentypes.Balance{
				Denom:   denom,
				Address: owner,
				Amount:  cfg.InitialSupply,
			})
		}
	}

	pool := pooltypes.NewPool(cfg.Controller, cfg.AssetA, cfg.AssetB)
	poolGenesis := pooltypes.DefaultGenesis()
	poolGenesis.Params.SwapFeeBps = cfg.SwapFeeBps
	poolGenesis.Pool = &pool

	genesis := GenesisState{
		tokentypes.ModuleName: mustMarshalJSON(tokenGenesis),
		pooltypes.ModuleName:  mustMarshalJSON(poolGenesis),
	}
	if err := genesis.Validate(); err != nil {
		return nil, err
	}
	return genesis, nil
}

// Validate decodes and validates every module section.
func (gs GenesisState) Validate() error {
	tokenGenesis, poolGenesis, err := gs.decode()
	if err != nil {
		return err
	}
	if err := tokenGenesis.Validate(); err != nil {
		return fmt.Errorf("%s genesis: %w", tokentypes.ModuleName, err)
	}
	if err := poolGenesis.Validate(); err != nil {
		return fmt.Errorf("%s genesis: %w", pooltypes.ModuleName, err)
	}
	return nil
}

func (gs GenesisState) decode() (tokentypes.GenesisState, pooltypes.GenesisState, error) {
	tokenGenesis := *tokentypes.DefaultGenesis()
	poolGenesis := *pooltypes.DefaultGenesis()

	if bz, ok := gs[tokentypes.ModuleName]; ok {
		if err := json.Unmarshal(bz, &tokenGenesis); err != nil {
			return tokenGenesis, poolGenesis, fmt.Errorf("failed to decode %s genesis: %w", tokentypes.ModuleName, err)
		}
	}
	if bz, ok := gs[pooltypes.ModuleName]; ok {
		if err := json.Unmarshal(bz, &poolGenesis); err != nil {
			return tokenGenesis, poolGenesis, fmt.Errorf("failed to decode %s genesis: %w", pooltypes.ModuleName, err)
		}
	}
	return tokenGenesis, poolGenesis, nil
}

// InitChainFromGenesis loads a genesis into an empty store and commits it as
// the first version.
func (app *App) InitChainFromGenesis(genesis GenesisState) error {
	if app.HasState() {
		return fmt.Errorf("state already initialized at version %d", app.LastCommitID().Version)
	}

	tokenGenesis, poolGenesis, err := genesis.decode()
	if err != nil {
		return err
	}

	_, err = app.Exec(func(ctx sdk.Context) error {
		if err := app.TokenKeeper.InitGenesis(ctx, tokenGenesis); err != nil {
			return err
		}
		return app.PoolKeeper.InitGenesis(ctx, poolGenesis)
	})
	if err != nil {
		return fmt.Errorf("failed to init chain: %w", err)
	}

	app.logger.Info("initialized from genesis", "tokens", len(tokenGenesis.Tokens), "pool", poolGenesis.Pool != nil)
	return nil
}

// ExportGenesis exports the latest committed state.
func (app *App) ExportGenesis() (GenesisState, error) {
	genesis := make(GenesisState)
	err := app.Query(func(ctx sdk.Context) error {
		tokenGenesis, err := app.TokenKeeper.ExportGenesis(ctx)
		if err != nil {
			return err
		}
		poolGenesis, err := app.PoolKeeper.ExportGenesis(ctx)
		if err != nil {
			return err
		}
		genesis[tokentypes.ModuleName] = mustMarshalJSON(tokenGenesis)
		genesis[pooltypes.ModuleName] = mustMarshalJSON(poolGenesis)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to export genesis: %w", err)
	}
	return genesis, nil
}

func mustMarshalJSON(v interface{}) json.RawMessage {
	bz, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return bz
}

package keeper

import (
	"context"
	"errors"
	"fmt"

	"github.com/paw-chain/pawswap/x/pool/types"
)

// InitGenesis initializes the pool module's state from a genesis state
func (k Keeper) InitGenesis(ctx context.Context, genState types.GenesisState) error {
	if err := genState.Validate(); err != nil {
		return fmt.Errorf("invalid pool genesis: %w", err)
	}

	if err := k.SetParams(ctx, genState.Params); err != nil {
		return fmt.Errorf("failed to set params: %w", err)
	}

	if genState.Pool == nil {
		return nil
	}

	pool := *genState.Pool
	for _, denom := range []string{pool.AssetA, pool.AssetB} {
		if !k.ledger.HasToken(ctx, denom) {
			return types.ErrInvalidToken.Wrapf("genesis pool asset %s does not exist", denom)
		}
	}
	if err := k.setPoolInfo(ctx, pool.PoolInfo); err != nil {
		return fmt.Errorf("failed to set pool: %w", err)
	}
	if err := k.setReserves(ctx, pool.ReserveA, pool.ReserveB); err != nil {
		return fmt.Errorf("failed to set reserves: %w", err)
	}
	k.metrics.recordReserves(pool)

	return nil
}

// ExportGenesis returns the pool module's exported genesis
func (k Keeper) ExportGenesis(ctx context.Context) (*types.GenesisState, error) {
	params, err := k.GetParams(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get params: %w", err)
	}

	genesis := &types.GenesisState{Params: params}

	pool, err := k.GetPool(ctx)
	switch {
	case errors.Is(err, types.ErrPoolNotInitialized):
	case err != nil:
		return nil, fmt.Errorf("failed to get pool: %w", err)
	default:
		genesis.Pool = &pool
	}

	return genesis, nil
}

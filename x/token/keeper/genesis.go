package keeper

import (
	"context"
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/pawswap/x/token/types"
)

// InitGenesis loads the token ledger from a validated genesis state
func (k Keeper) InitGenesis(ctx context.Context, genState types.GenesisState) error {
	if err := genState.Validate(); err != nil {
		return fmt.Errorf("invalid token genesis: %w", err)
	}

	store := k.getStore(ctx)
	for _, token := range genState.Tokens {
		owner, err := sdk.AccAddressFromBech32(token.Owner)
		if err != nil {
			return fmt.Errorf("token %s owner: %w", token.Denom, err)
		}
		store.Set(types.TokenKey(token.Denom), owner.Bytes())
		if err := k.setSupply(ctx, token.Denom, token.Supply); err != nil {
			return fmt.Errorf("failed to set supply of %s: %w", token.Denom, err)
		}
	}

	for _, balance := range genState.Balances {
		holder, err := sdk.AccAddressFromBech32(balance.Address)
		if err != nil {
			return fmt.Errorf("balance holder %s: %w", balance.Address, err)
		}
		current := k.BalanceOf(ctx, balance.Denom, holder)
		if err := k.setBalance(ctx, balance.Denom, holder, current.Add(balance.Amount)); err != nil {
			return fmt.Errorf("failed to set balance of %s: %w", balance.Address, err)
		}
	}

	for _, allowance := range genState.Allowances {
		owner, err := sdk.AccAddressFromBech32(allowance.Owner)
		if err != nil {
			return fmt.Errorf("allowance owner %s: %w", allowance.Owner, err)
		}
		spender, err := sdk.AccAddressFromBech32(allowance.Spender)
		if err != nil {
			return fmt.Errorf("allowance spender %s: %w", allowance.Spender, err)
		}
		if err := k.setAllowance(ctx, allowance.Denom, owner, spender, allowance.Amount); err != nil {
			return fmt.Errorf("failed to set allowance: %w", err)
		}
	}

	return nil
}

// ExportGenesis returns the token ledger as a genesis state
func (k Keeper) ExportGenesis(ctx context.Context) (*types.GenesisState, error) {
	genesis := types.DefaultGenesis()

	var iterErr error
	err := k.IterateTokens(ctx, func(token types.Token) bool {
		genesis.Tokens = append(genesis.Tokens, token)

		if iterErr = k.IterateBalances(ctx, token.Denom, func(holder sdk.AccAddress, amount math.Int) bool {
			genesis.Balances = append(genesis.Balances, types.Balance{
				Denom:   token.Denom,
				Address: holder.String(),
				Amount:  amount,
			})
			return false
		}); iterErr != nil {
			return true
		}

		iterErr = k.IterateAllowances(ctx, token.Denom, func(owner, spender sdk.AccAddress, amount math.Int) bool {
			genesis.Allowances = append(genesis.Allowances, types.Allowance{
				Denom:   token.Denom,
				Owner:   owner.String(),
				Spender: spender.String(),
				Amount:  amount,
			})
			return false
		})
		return iterErr != nil
	})
	if err != nil {
		return nil, err
	}
	if iterErr != nil {
		return nil, iterErr
	}

	return genesis, nil
}

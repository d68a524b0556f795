package keeper

import (
	"context"
	"fmt"

	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/pawswap/x/token/types"
)

// CreateToken registers a new token owned by owner and credits the whole
// initial supply to the owner.
func (k Keeper) CreateToken(ctx context.Context, owner sdk.AccAddress, denom string, initialSupply math.Int) error {
	if err := sdk.ValidateDenom(denom); err != nil {
		return types.ErrInvalidDenom.Wrapf("%s: %v", denom, err)
	}
	if owner.Empty() {
		return types.ErrInvalidAddress.Wrap("owner cannot be empty")
	}
	if initialSupply.IsNil() || initialSupply.IsNegative() {
		return types.ErrInvalidAmount.Wrap("initial supply must be non-negative")
	}
	if k.HasToken(ctx, denom) {
		return types.ErrTokenExists.Wrapf("token %s already exists", denom)
	}

	store := k.getStore(ctx)
	store.Set(types.TokenKey(denom), owner.Bytes())
	if err := k.setSupply(ctx, denom, math.ZeroInt()); err != nil {
		return fmt.Errorf("CreateToken: set supply: %w", err)
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeCreate,
			sdk.NewAttribute(types.AttributeKeyDenom, denom),
			sdk.NewAttribute(types.AttributeKeyOwner, owner.String()),
			sdk.NewAttribute(types.AttributeKeyAmount, initialSupply.String()),
		),
	)

	if initialSupply.IsPositive() {
		if err := k.mint(ctx, denom, owner, initialSupply); err != nil {
			return fmt.Errorf("CreateToken: mint initial supply: %w", err)
		}
	}

	k.Logger(ctx).Info("token created", "denom", denom, "owner", owner.String(), "supply", initialSupply.String())
	return nil
}

// HasToken reports whether denom is registered.
func (k Keeper) HasToken(ctx context.Context, denom string) bool {
	return k.getStore(ctx).Has(types.TokenKey(denom))
}

// GetOwner returns the owner of a token.
func (k Keeper) GetOwner(ctx context.Context, denom string) (sdk.AccAddress, error) {
	bz := k.getStore(ctx).Get(types.TokenKey(denom))
	if bz == nil {
		return nil, types.ErrTokenNotFound.Wrapf("token %s not found", denom)
	}
	return sdk.AccAddress(bz), nil
}

// GetToken returns the token description for denom.
func (k Keeper) GetToken(ctx context.Context, denom string) (types.Token, error) {
	owner, err := k.GetOwner(ctx, denom)
	if err != nil {
		return types.Token{}, err
	}
	supply, err := k.TotalSupply(ctx, denom)
	if err != nil {
		return types.Token{}, err
	}
	return types.Token{Denom: denom, Owner: owner.String(), Supply: supply}, nil
}

// TotalSupply returns the circulating supply of a token.
func (k Keeper) TotalSupply(ctx context.Context, denom string) (math.Int, error) {
	bz := k.getStore(ctx).Get(types.SupplyKey(denom))
	if bz == nil {
		return math.ZeroInt(), types.ErrTokenNotFound.Wrapf("token %s not found", denom)
	}
	var supply math.Int
	if err := supply.Unmarshal(bz); err != nil {
		return math.ZeroInt(), fmt.Errorf("TotalSupply: unmarshal %s: %w", denom, err)
	}
	return supply, nil
}

func (k Keeper) setSupply(ctx context.Context, denom string, supply math.Int) error {
	bz, err := supply.Marshal()
	if err != nil {
		return err
	}
	k.getStore(ctx).Set(types.SupplyKey(denom), bz)
	return nil
}

// Mint creates amount new units of denom for to. Only the token owner may mint.
func (k Keeper) Mint(ctx context.Context, caller sdk.AccAddress, denom string, to sdk.AccAddress, amount math.Int) error {
	if err := k.requireOwner(ctx, caller, denom); err != nil {
		return err
	}
	if to.Empty() {
		return types.ErrInvalidAddress.Wrap("mint recipient cannot be empty")
	}
	if amount.IsNil() || !amount.IsPositive() {
		return types.ErrInvalidAmount.Wrap("mint amount must be positive")
	}
	return k.mint(ctx, denom, to, amount)
}

func (k Keeper) mint(ctx context.Context, denom string, to sdk.AccAddress, amount math.Int) error {
	supply, err := k.TotalSupply(ctx, denom)
	if err != nil {
		return err
	}
	newSupply, err := supply.SafeAdd(amount)
	if err != nil {
		return types.ErrInvalidAmount.Wrapf("supply of %s overflows: %v", denom, err)
	}
	if err := k.setSupply(ctx, denom, newSupply); err != nil {
		return fmt.Errorf("mint: set supply: %w", err)
	}
	if err := k.setBalance(ctx, denom, to, k.BalanceOf(ctx, denom, to).Add(amount)); err != nil {
		return fmt.Errorf("mint: set balance: %w", err)
	}
	emitTransfer(ctx, denom, nil, to, amount)
	return nil
}

// Burn destroys amount units from the owner's own balance. Only the token
// owner may burn.
func (k Keeper) Burn(ctx context.Context, caller sdk.AccAddress, denom string, amount math.Int) error {
	if err := k.requireOwner(ctx, caller, denom); err != nil {
		return err
	}
	if amount.IsNil() || !amount.IsPositive() {
		return types.ErrInvalidAmount.Wrap("burn amount must be positive")
	}

	balance := k.BalanceOf(ctx, denom, caller)
	if balance.LT(amount) {
		return types.ErrInsufficientBalance.Wrapf("burn %s%s: balance is %s", amount, denom, balance)
	}
	supply, err := k.TotalSupply(ctx, denom)
	if err != nil {
		return err
	}
	if err := k.setBalance(ctx, denom, caller, balance.Sub(amount)); err != nil {
		return fmt.Errorf("Burn: set balance: %w", err)
	}
	if err := k.setSupply(ctx, denom, supply.Sub(amount)); err != nil {
		return fmt.Errorf("Burn: set supply: %w", err)
	}
	emitTransfer(ctx, denom, caller, nil, amount)
	return nil
}

func (k Keeper) requireOwner(ctx context.Context, caller sdk.AccAddress, denom string) error {
	owner, err := k.GetOwner(ctx, denom)
	if err != nil {
		return err
	}
	if !owner.Equals(caller) {
		return types.ErrUnauthorized.Wrapf("%s is not the owner of %s", caller.String(), denom)
	}
	return nil
}

// IterateTokens calls cb for every registered token until cb returns true.
func (k Keeper) IterateTokens(ctx context.Context, cb func(token types.Token) (stop bool)) error {
	iterator := storetypes.KVStorePrefixIterator(k.getStore(ctx), types.TokenKeyPrefix)
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		// key layout: prefix | len(denom) | denom
		denom := string(iterator.Key()[len(types.TokenKeyPrefix)+1:])
		token, err := k.GetToken(ctx, denom)
		if err != nil {
			return fmt.Errorf("IterateTokens: %w", err)
		}
		if cb(token) {
			break
		}
	}
	return nil
}

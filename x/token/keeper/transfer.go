package keeper

import (
	"context"
	"fmt"

	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/pawswap/x/token/types"
)

// BalanceOf returns the balance of holder. Unknown holders have zero.
func (k Keeper) BalanceOf(ctx context.Context, denom string, holder sdk.AccAddress) math.Int {
	bz := k.getStore(ctx).Get(types.BalanceKey(denom, holder))
	if bz == nil {
		return math.ZeroInt()
	}
	var balance math.Int
	if err := balance.Unmarshal(bz); err != nil {
		panic(fmt.Errorf("corrupted balance for %s/%s: %w", denom, holder.String(), err))
	}
	return balance
}

func (k Keeper) setBalance(ctx context.Context, denom string, holder sdk.AccAddress, amount math.Int) error {
	store := k.getStore(ctx)
	if amount.IsZero() {
		store.Delete(types.BalanceKey(denom, holder))
		return nil
	}
	bz, err := amount.Marshal()
	if err != nil {
		return err
	}
	store.Set(types.BalanceKey(denom, holder), bz)
	return nil
}

// Transfer moves amount of denom from -> to.
func (k Keeper) Transfer(ctx context.Context, denom string, from, to sdk.AccAddress, amount math.Int) error {
	if !k.HasToken(ctx, denom) {
		return types.ErrTokenNotFound.Wrapf("token %s not found", denom)
	}
	if from.Empty() || to.Empty() {
		return types.ErrInvalidAddress.Wrap("transfer from/to the empty address")
	}
	if amount.IsNil() || amount.IsNegative() {
		return types.ErrInvalidAmount.Wrap("transfer amount must be non-negative")
	}

	fromBalance := k.BalanceOf(ctx, denom, from)
	if fromBalance.LT(amount) {
		return types.ErrInsufficientBalance.Wrapf("%s has %s%s, needs %s", from.String(), fromBalance, denom, amount)
	}
	if err := k.setBalance(ctx, denom, from, fromBalance.Sub(amount)); err != nil {
		return fmt.Errorf("Transfer: debit: %w", err)
	}
	if err := k.setBalance(ctx, denom, to, k.BalanceOf(ctx, denom, to).Add(amount)); err != nil {
		return fmt.Errorf("Transfer: credit: %w", err)
	}

	emitTransfer(ctx, denom, from, to, amount)
	return nil
}

// Approve sets the amount spender may pull from owner, replacing any previous
// allowance.
func (k Keeper) Approve(ctx context.Context, denom string, owner, spender sdk.AccAddress, amount math.Int) error {
	if !k.HasToken(ctx, denom) {
		return types.ErrTokenNotFound.Wrapf("token %s not found", denom)
	}
	if owner.Empty() || spender.Empty() {
		return types.ErrInvalidAddress.Wrap("approve from/to the empty address")
	}
	if amount.IsNil() || amount.IsNegative() {
		return types.ErrInvalidAmount.Wrap("allowance must be non-negative")
	}
	if err := k.setAllowance(ctx, denom, owner, spender, amount); err != nil {
		return fmt.Errorf("Approve: %w", err)
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeApproval,
			sdk.NewAttribute(types.AttributeKeyDenom, denom),
			sdk.NewAttribute(types.AttributeKeyOwner, owner.String()),
			sdk.NewAttribute(types.AttributeKeySpender, spender.String()),
			sdk.NewAttribute(types.AttributeKeyAmount, amount.String()),
		),
	)
	return nil
}

// Allowance returns how much spender may still pull from owner.
func (k Keeper) Allowance(ctx context.Context, denom string, owner, spender sdk.AccAddress) math.Int {
	bz := k.getStore(ctx).Get(types.AllowanceKey(denom, owner, spender))
	if bz == nil {
		return math.ZeroInt()
	}
	var allowance math.Int
	if err := allowance.Unmarshal(bz); err != nil {
		panic(fmt.Errorf("corrupted allowance for %s: %w", denom, err))
	}
	return allowance
}

func (k Keeper) setAllowance(ctx context.Context, denom string, owner, spender sdk.AccAddress, amount math.Int) error {
	store := k.getStore(ctx)
	key := types.AllowanceKey(denom, owner, spender)
	if amount.IsZero() {
		store.Delete(key)
		return nil
	}
	bz, err := amount.Marshal()
	if err != nil {
		return err
	}
	store.Set(key, bz)
	return nil
}

// TransferFrom moves amount from -> to on behalf of spender, consuming the
// allowance from granted to spender.
func (k Keeper) TransferFrom(ctx context.Context, denom string, spender, from, to sdk.AccAddress, amount math.Int) error {
	allowance := k.Allowance(ctx, denom, from, spender)
	if allowance.LT(amount) {
		return types.ErrInsufficientAllowance.Wrapf("%s may pull %s%s from %s, requested %s",
			spender.String(), allowance, denom, from.String(), amount)
	}
	if err := k.Transfer(ctx, denom, from, to, amount); err != nil {
		return err
	}
	if err := k.setAllowance(ctx, denom, from, spender, allowance.Sub(amount)); err != nil {
		return fmt.Errorf("TransferFrom: update allowance: %w", err)
	}
	return nil
}

// IterateBalances calls cb for every non-zero balance of denom.
func (k Keeper) IterateBalances(ctx context.Context, denom string, cb func(holder sdk.AccAddress, amount math.Int) (stop bool)) error {
	prefix := types.BalancesByDenomPrefix(denom)
	iterator := storetypes.KVStorePrefixIterator(k.getStore(ctx), prefix)
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		// key layout: prefix | len(holder) | holder
		holder := sdk.AccAddress(iterator.Key()[len(prefix)+1:])
		var amount math.Int
		if err := amount.Unmarshal(iterator.Value()); err != nil {
			return fmt.Errorf("IterateBalances: unmarshal %s balance: %w", denom, err)
		}
		if cb(holder, amount) {
			break
		}
	}
	return nil
}

// IterateAllowances calls cb for every non-zero allowance of denom.
func (k Keeper) IterateAllowances(ctx context.Context, denom string, cb func(owner, spender sdk.AccAddress, amount math.Int) (stop bool)) error {
	prefix := types.AllowancesByDenomPrefix(denom)
	iterator := storetypes.KVStorePrefixIterator(k.getStore(ctx), prefix)
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		// key layout: prefix | len(owner) | owner | len(spender) | spender
		rest := iterator.Key()[len(prefix):]
		ownerLen := int(rest[0])
		owner := sdk.AccAddress(rest[1 : 1+ownerLen])
		spender := sdk.AccAddress(rest[2+ownerLen:])
		var amount math.Int
		if err := amount.Unmarshal(iterator.Value()); err != nil {
			return fmt.Errorf("IterateAllowances: unmarshal %s allowance: %w", denom, err)
		}
		if cb(owner, spender, amount) {
			break
		}
	}
	return nil
}

func emitTransfer(ctx context.Context, denom string, from, to sdk.AccAddress, amount math.Int) {
	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeTransfer,
			sdk.NewAttribute(types.AttributeKeyDenom, denom),
			sdk.NewAttribute(types.AttributeKeySender, from.String()),
			sdk.NewAttribute(types.AttributeKeyRecipient, to.String()),
			sdk.NewAttribute(types.AttributeKeyAmount, amount.String()),
		),
	)
}

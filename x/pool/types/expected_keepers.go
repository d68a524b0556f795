package types

import (
	"context"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// AssetLedger is the fungible asset ledger the pool moves balances through.
// The pool only pulls with TransferFrom (against an allowance granted to the
// pool account) and pushes with Transfer from the pool account.
type AssetLedger interface {
	HasToken(ctx context.Context, denom string) bool
	BalanceOf(ctx context.Context, denom string, holder sdk.AccAddress) math.Int
	Transfer(ctx context.Context, denom string, from, to sdk.AccAddress, amount math.Int) error
	TransferFrom(ctx context.Context, denom string, spender, from, to sdk.AccAddress, amount math.Int) error
}

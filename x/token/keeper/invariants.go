package keeper

import (
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/pawswap/x/token/types"
)

// RegisterInvariants registers the token ledger invariants
func RegisterInvariants(ir sdk.InvariantRegistry, k Keeper) {
	ir.RegisterRoute(types.ModuleName, "total-supply", TotalSupplyInvariant(k))
}

// TotalSupplyInvariant checks that the balances of every token add up to its supply
func TotalSupplyInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		var (
			msg   string
			count int
		)

		err := k.IterateTokens(ctx, func(token types.Token) bool {
			sum := math.ZeroInt()
			if err := k.IterateBalances(ctx, token.Denom, func(_ sdk.AccAddress, amount math.Int) bool {
				sum = sum.Add(amount)
				return false
			}); err != nil {
				count++
				msg += fmt.Sprintf("token %s: %v\n", token.Denom, err)
				return false
			}
			if !sum.Equal(token.Supply) {
				count++
				msg += fmt.Sprintf("token %s: balances sum to %s, supply is %s\n",
					token.Denom, sum.String(), token.Supply.String())
			}
			return false
		})
		if err != nil {
			count++
			msg += err.Error() + "\n"
		}

		broken := count != 0
		return sdk.FormatInvariant(
			types.ModuleName, "total-supply",
			fmt.Sprintf("found %d tokens with mismatched supply\n%s", count, msg),
		), broken
	}
}

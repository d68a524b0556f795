package types

import (
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// GenesisState defines the token module's genesis state.
type GenesisState struct {
	Tokens     []Token     `json:"tokens"`
	Balances   []Balance   `json:"balances"`
	Allowances []Allowance `json:"allowances"`
}

// DefaultGenesis returns an empty ledger.
func DefaultGenesis() *GenesisState {
	return &GenesisState{
		Tokens:     []Token{},
		Balances:   []Balance{},
		Allowances: []Allowance{},
	}
}

// Validate checks that every balance belongs to a declared token and that
// balances add up to the declared supply.
func (gs GenesisState) Validate() error {
	supplies := make(map[string]math.Int, len(gs.Tokens))
	for _, t := range gs.Tokens {
		if err := sdk.ValidateDenom(t.Denom); err != nil {
			return ErrInvalidDenom.Wrapf("token %q: %v", t.Denom, err)
		}
		if _, dup := supplies[t.Denom]; dup {
			return ErrTokenExists.Wrapf("duplicate token %s", t.Denom)
		}
		if _, err := sdk.AccAddressFromBech32(t.Owner); err != nil {
			return ErrInvalidAddress.Wrapf("token %s owner: %v", t.Denom, err)
		}
		if t.Supply.IsNil() || t.Supply.IsNegative() {
			return ErrInvalidAmount.Wrapf("token %s supply must be non-negative", t.Denom)
		}
		supplies[t.Denom] = math.ZeroInt()
	}

	for _, b := range gs.Balances {
		sum, ok := supplies[b.Denom]
		if !ok {
			return ErrTokenNotFound.Wrapf("balance for undeclared token %s", b.Denom)
		}
		if _, err := sdk.AccAddressFromBech32(b.Address); err != nil {
			return ErrInvalidAddress.Wrapf("balance holder: %v", err)
		}
		if b.Amount.IsNil() || b.Amount.IsNegative() {
			return ErrInvalidAmount.Wrapf("balance of %s for %s must be non-negative", b.Denom, b.Address)
		}
		supplies[b.Denom] = sum.Add(b.Amount)
	}

	for _, t := range gs.Tokens {
		if !supplies[t.Denom].Equal(t.Supply) {
			return fmt.Errorf("token %s: balances sum to %s, supply is %s", t.Denom, supplies[t.Denom], t.Supply)
		}
	}

	for _, a := range gs.Allowances {
		if _, ok := supplies[a.Denom]; !ok {
			return ErrTokenNotFound.Wrapf("allowance for undeclared token %s", a.Denom)
		}
		if _, err := sdk.AccAddressFromBech32(a.Owner); err != nil {
			return ErrInvalidAddress.Wrapf("allowance owner: %v", err)
		}
		if _, err := sdk.AccAddressFromBech32(a.Spender); err != nil {
			return ErrInvalidAddress.Wrapf("allowance spender: %v", err)
		}
		if a.Amount.IsNil() || a.Amount.IsNegative() {
			return ErrInvalidAmount.Wrapf("allowance of %s must be non-negative", a.Denom)
		}
	}
	return nil
}

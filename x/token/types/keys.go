package types

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/address"
)

const (
	// ModuleName defines the module name
	ModuleName = "token"

	// StoreKey defines the primary module store key
	StoreKey = ModuleName
)

// Store key prefixes
var (
	TokenKeyPrefix     = []byte{0x01} // denom -> owner address
	SupplyKeyPrefix    = []byte{0x02} // denom -> total supply
	BalanceKeyPrefix   = []byte{0x03} // denom | holder -> balance
	AllowanceKeyPrefix = []byte{0x04} // denom | owner | spender -> allowance
)

func denomPrefix(prefix []byte, denom string) []byte {
	key := append([]byte{}, prefix...)
	return append(key, address.MustLengthPrefix([]byte(denom))...)
}

// TokenKey returns the store key holding the owner of a token
func TokenKey(denom string) []byte {
	return denomPrefix(TokenKeyPrefix, denom)
}

// SupplyKey returns the store key holding the total supply of a token
func SupplyKey(denom string) []byte {
	return denomPrefix(SupplyKeyPrefix, denom)
}

// BalanceKey returns the store key for a holder balance
func BalanceKey(denom string, holder sdk.AccAddress) []byte {
	return append(denomPrefix(BalanceKeyPrefix, denom), address.MustLengthPrefix(holder)...)
}

// BalancesByDenomPrefix returns the prefix of all balances of a token
func BalancesByDenomPrefix(denom string) []byte {
	return denomPrefix(BalanceKeyPrefix, denom)
}

// AllowanceKey returns the store key for the amount spender may pull from owner
func AllowanceKey(denom string, owner, spender sdk.AccAddress) []byte {
	key := append(denomPrefix(AllowanceKeyPrefix, denom), address.MustLengthPrefix(owner)...)
	return append(key, address.MustLengthPrefix(spender)...)
}

// AllowancesByDenomPrefix returns the prefix of all allowances of a token
func AllowancesByDenomPrefix(denom string) []byte {
	return denomPrefix(AllowanceKeyPrefix, denom)
}

package types

import (
	"cosmossdk.io/math"
)

// Token describes one fungible asset tracked by the ledger.
type Token struct {
	Denom  string   `json:"denom"`
	Owner  string   `json:"owner"`
	Supply math.Int `json:"supply"`
}

// Balance is the amount of a token held by one address.
type Balance struct {
	Denom   string   `json:"denom"`
	Address string   `json:"address"`
	Amount  math.Int `json:"amount"`
}

// Allowance is the amount a spender may pull from an owner.
type Allowance struct {
	Denom   string   `json:"denom"`
	Owner   string   `json:"owner"`
	Spender string   `json:"spender"`
	Amount  math.Int `json:"amount"`
}

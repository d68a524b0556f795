package types

import (
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
)

const (
	// ModuleName defines the module name
	ModuleName = "pool"

	// StoreKey defines the primary module store key
	StoreKey = ModuleName

	// RouterKey defines the module's message routing key
	RouterKey = ModuleName
)

// Store keys. The pool is a singleton, so every entry lives under a fixed key.
var (
	PoolKey     = []byte{0x01} // asset identities and controller
	ReserveAKey = []byte{0x02}
	ReserveBKey = []byte{0x03}
	ParamsKey   = []byte{0x04}
)

// ModuleAddress is the account that custodies the pooled assets.
var ModuleAddress = authtypes.NewModuleAddress(ModuleName)

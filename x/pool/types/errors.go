package types

import (
	"cosmossdk.io/errors"
)

// Pool module sentinel errors
var (
	ErrUnauthorized           = errors.Register(ModuleName, 2, "caller is not the pool controller")
	ErrInvalidAmount          = errors.Register(ModuleName, 3, "invalid amount")
	ErrInsufficientReserves   = errors.Register(ModuleName, 4, "amount exceeds pool reserves")
	ErrInsufficientLiquidity  = errors.Register(ModuleName, 5, "insufficient liquidity in pool")
	ErrInvalidToken           = errors.Register(ModuleName, 6, "token is not tracked by the pool")
	ErrTransferFailed         = errors.Register(ModuleName, 7, "asset transfer failed")
	ErrPoolNotInitialized     = errors.Register(ModuleName, 8, "pool not initialized")
	ErrPoolAlreadyInitialized = errors.Register(ModuleName, 9, "pool already initialized")
	ErrSlippageExceeded       = errors.Register(ModuleName, 10, "output amount less than minimum required")
	ErrInvariantViolation     = errors.Register(ModuleName, 11, "pool invariant violated")
	ErrInvalidAddress         = errors.Register(ModuleName, 12, "invalid address")
	ErrInvalidParams          = errors.Register(ModuleName, 13, "invalid params")
)

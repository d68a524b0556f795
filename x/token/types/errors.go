package types

import (
	"cosmossdk.io/errors"
)

// Token module sentinel errors
var (
	ErrInvalidDenom          = errors.Register(ModuleName, 2, "invalid token denomination")
	ErrTokenExists           = errors.Register(ModuleName, 3, "token already exists")
	ErrTokenNotFound         = errors.Register(ModuleName, 4, "token not found")
	ErrUnauthorized          = errors.Register(ModuleName, 5, "caller is not the token owner")
	ErrInvalidAmount         = errors.Register(ModuleName, 6, "invalid amount")
	ErrInsufficientBalance   = errors.Register(ModuleName, 7, "transfer amount exceeds balance")
	ErrInsufficientAllowance = errors.Register(ModuleName, 8, "insufficient allowance")
	ErrInvalidAddress        = errors.Register(ModuleName, 9, "invalid address")
)

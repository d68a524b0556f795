package types

import (
	sdkerrors "cosmossdk.io/errors"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// MsgInitPool creates the pool over two assets. The sender becomes the controller.
type MsgInitPool struct {
	Controller string `json:"controller"`
	AssetA     string `json:"asset_a"`
	AssetB     string `json:"asset_b"`
}

// MsgAddLiquidity deposits both assets into the pool.
type MsgAddLiquidity struct {
	Controller string   `json:"controller"`
	AmountA    math.Int `json:"amount_a"`
	AmountB    math.Int `json:"amount_b"`
}

// MsgRemoveLiquidity withdraws absolute amounts of both assets to the controller.
type MsgRemoveLiquidity struct {
	Controller string   `json:"controller"`
	AmountA    math.Int `json:"amount_a"`
	AmountB    math.Int `json:"amount_b"`
}

// MsgSwap sells AmountIn of TokenIn for the other pooled asset.
type MsgSwap struct {
	Trader       string   `json:"trader"`
	TokenIn      string   `json:"token_in"`
	AmountIn     math.Int `json:"amount_in"`
	MinAmountOut math.Int `json:"min_amount_out"`
}

// NewMsgSwap creates a new MsgSwap instance
func NewMsgSwap(trader, tokenIn string, amountIn, minAmountOut math.Int) *MsgSwap {
	return &MsgSwap{
		Trader:       trader,
		TokenIn:      tokenIn,
		AmountIn:     amountIn,
		MinAmountOut: minAmountOut,
	}
}

// ValidateBasic performs stateless checks
func (msg MsgInitPool) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Controller); err != nil {
		return sdkerrors.Wrapf(ErrInvalidAddress, "invalid controller address: %s", err)
	}
	if msg.AssetA == "" || msg.AssetB == "" {
		return sdkerrors.Wrap(ErrInvalidToken, "asset denominations cannot be empty")
	}
	if msg.AssetA == msg.AssetB {
		return sdkerrors.Wrap(ErrInvalidToken, "pool assets must differ")
	}
	return nil
}

// GetSigner returns the address that must authorize the message.
func (msg MsgInitPool) GetSigner() (sdk.AccAddress, error) {
	return sdk.AccAddressFromBech32(msg.Controller)
}

// ValidateBasic performs stateless checks
func (msg MsgAddLiquidity) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Controller); err != nil {
		return sdkerrors.Wrapf(ErrInvalidAddress, "invalid controller address: %s", err)
	}
	return validatePair(msg.AmountA, msg.AmountB)
}

// GetSigner returns the address that must authorize the message.
func (msg MsgAddLiquidity) GetSigner() (sdk.AccAddress, error) {
	return sdk.AccAddressFromBech32(msg.Controller)
}

// ValidateBasic performs stateless checks
func (msg MsgRemoveLiquidity) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Controller); err != nil {
		return sdkerrors.Wrapf(ErrInvalidAddress, "invalid controller address: %s", err)
	}
	return validatePair(msg.AmountA, msg.AmountB)
}

// GetSigner returns the address that must authorize the message.
func (msg MsgRemoveLiquidity) GetSigner() (sdk.AccAddress, error) {
	return sdk.AccAddressFromBech32(msg.Controller)
}

// ValidateBasic performs stateless checks
func (msg MsgSwap) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Trader); err != nil {
		return sdkerrors.Wrapf(ErrInvalidAddress, "invalid trader address: %s", err)
	}
	if msg.TokenIn == "" {
		return sdkerrors.Wrap(ErrInvalidToken, "input token cannot be empty")
	}
	if msg.AmountIn.IsNil() || !msg.AmountIn.IsPositive() {
		return sdkerrors.Wrap(ErrInvalidAmount, "amount in must be positive")
	}
	if !msg.MinAmountOut.IsNil() && msg.MinAmountOut.IsNegative() {
		return sdkerrors.Wrap(ErrInvalidAmount, "min amount out cannot be negative")
	}
	return nil
}

// GetSigner returns the address that must authorize the message.
func (msg MsgSwap) GetSigner() (sdk.AccAddress, error) {
	return sdk.AccAddressFromBech32(msg.Trader)
}

func validatePair(amountA, amountB math.Int) error {
	if amountA.IsNil() || amountB.IsNil() {
		return sdkerrors.Wrap(ErrInvalidAmount, "amounts cannot be nil")
	}
	if !amountA.IsPositive() || !amountB.IsPositive() {
		return sdkerrors.Wrapf(ErrInvalidAmount, "both amounts must be positive, got %s and %s", amountA, amountB)
	}
	return nil
}

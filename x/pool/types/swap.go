package types

import (
	"math/big"

	"cosmossdk.io/math"
)

// BasisPoints is the denominator of fee rates expressed in basis points.
const BasisPoints = 10_000

// PriceScale is the fixed-point scale of spot prices (1e18).
var PriceScale = math.NewIntWithDecimal(1, 18)

// SwapQuote is the outcome of pricing a trade against the current reserves.
type SwapQuote struct {
	DenomIn    string   `json:"denom_in"`
	DenomOut   string   `json:"denom_out"`
	AmountIn   math.Int `json:"amount_in"`
	Fee        math.Int `json:"fee"`
	AmountOut  math.Int `json:"amount_out"`
	ReserveIn  math.Int `json:"reserve_in"`
	ReserveOut math.Int `json:"reserve_out"`
}

// SplitFee returns the part of amountIn withheld as fee and the net amount
// that is priced. The fee is floored so the trader is never charged more
// than feeBps/10000.
func SplitFee(amountIn math.Int, feeBps uint32) (fee, net math.Int) {
	if feeBps == 0 {
		return math.ZeroInt(), amountIn
	}
	feeBig := new(big.Int).Mul(amountIn.BigInt(), big.NewInt(int64(feeBps)))
	feeBig.Quo(feeBig, big.NewInt(BasisPoints))
	fee = math.NewIntFromBigInt(feeBig)
	return fee, amountIn.Sub(fee)
}

// GetAmountOut prices a trade on the constant product curve:
//
//	amountOut = floor(reserveOut * amountIn / (reserveIn + amountIn))
//
// The product is formed on big.Int so reserves anywhere in the 256-bit range
// cannot overflow. The result is always strictly below reserveOut.
func GetAmountOut(amountIn, reserveIn, reserveOut math.Int) (math.Int, error) {
	if amountIn.IsNil() || !amountIn.IsPositive() {
		return math.ZeroInt(), ErrInvalidAmount.Wrap("input amount must be positive")
	}
	if reserveIn.IsNil() || reserveOut.IsNil() || !reserveIn.IsPositive() || !reserveOut.IsPositive() {
		return math.ZeroInt(), ErrInsufficientLiquidity.Wrap("pool reserves must be positive")
	}

	numerator := new(big.Int).Mul(reserveOut.BigInt(), amountIn.BigInt())
	denominator := new(big.Int).Add(reserveIn.BigInt(), amountIn.BigInt())
	amountOut := math.NewIntFromBigInt(numerator.Quo(numerator, denominator))

	if amountOut.IsZero() {
		return math.ZeroInt(), ErrInvalidAmount.Wrapf("input %s too small to buy any output", amountIn)
	}
	if amountOut.GTE(reserveOut) {
		return math.ZeroInt(), ErrInvariantViolation.Wrapf("output %s >= reserve %s", amountOut, reserveOut)
	}
	return amountOut, nil
}

// ProductNotDecreased reports whether newIn*newOut >= oldIn*oldOut.
func ProductNotDecreased(oldIn, oldOut, newIn, newOut math.Int) bool {
	before := new(big.Int).Mul(oldIn.BigInt(), oldOut.BigInt())
	after := new(big.Int).Mul(newIn.BigInt(), newOut.BigInt())
	return after.Cmp(before) >= 0
}

// SpotPrice returns reserveOther * 1e18 / reserveRequested, the value of one
// unit of the requested asset in units of the other.
func SpotPrice(reserveRequested, reserveOther math.Int) (math.Int, error) {
	if reserveRequested.IsNil() || !reserveRequested.IsPositive() {
		return math.ZeroInt(), ErrInsufficientLiquidity.Wrap("requested reserve is zero")
	}
	if reserveOther.IsNil() || reserveOther.IsNegative() {
		return math.ZeroInt(), ErrInvalidAmount.Wrap("reserve cannot be negative")
	}

	price := new(big.Int).Mul(reserveOther.BigInt(), PriceScale.BigInt())
	price.Quo(price, reserveRequested.BigInt())
	if price.BitLen() > math.MaxBitLen {
		return math.ZeroInt(), ErrInvalidAmount.Wrapf("price exceeds %d bits", math.MaxBitLen)
	}
	return math.NewIntFromBigInt(price), nil
}

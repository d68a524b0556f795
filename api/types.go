package api

import "time"

// TokenRequest exchanges the admin secret for a JWT bound to an address.
type TokenRequest struct {
	Address string `json:"address" binding:"required"`
	Secret  string `json:"secret" binding:"required"`
}

// TokenResponse carries a signed JWT.
type TokenResponse struct {
	Token     string    `json:"token"`
	Address   string    `json:"address"`
	ExpiresAt time.Time `json:"expires_at"`
}

// PoolResponse describes the pool and its reserves.
type PoolResponse struct {
	AssetA     string `json:"asset_a"`
	AssetB     string `json:"asset_b"`
	Controller string `json:"controller"`
	Address    string `json:"address"`
	ReserveA   string `json:"reserve_a"`
	ReserveB   string `json:"reserve_b"`
	SwapFeeBps uint32 `json:"swap_fee_bps"`
}

// ReservesResponse carries both reserves.
type ReservesResponse struct {
	ReserveA string `json:"reserve_a"`
	ReserveB string `json:"reserve_b"`
}

// PriceResponse carries the spot price of Denom in units of the other asset,
// scaled by Scale.
type PriceResponse struct {
	Denom string `json:"denom"`
	Price string `json:"price"`
	Scale string `json:"scale"`
}

// QuoteResponse is the result of a simulated swap.
type QuoteResponse struct {
	TokenIn   string `json:"token_in"`
	TokenOut  string `json:"token_out"`
	AmountIn  string `json:"amount_in"`
	Fee       string `json:"fee"`
	AmountOut string `json:"amount_out"`
}

// SwapRequest sells AmountIn of TokenIn. MinAmountOut defaults to zero.
type SwapRequest struct {
	TokenIn      string `json:"token_in" binding:"required"`
	AmountIn     string `json:"amount_in" binding:"required"`
	MinAmountOut string `json:"min_amount_out"`
}

// SwapResponse reports the executed swap.
type SwapResponse struct {
	TokenOut  string `json:"token_out"`
	AmountOut string `json:"amount_out"`
	RequestID string `json:"request_id,omitempty"`
}

// LiquidityRequest adds or removes absolute amounts of both assets.
type LiquidityRequest struct {
	AmountA string `json:"amount_a" binding:"required"`
	AmountB string `json:"amount_b" binding:"required"`
}

// BalanceResponse carries one holder's balance of one token.
type BalanceResponse struct {
	Denom   string `json:"denom"`
	Address string `json:"address"`
	Balance string `json:"balance"`
}

// ApproveRequest sets the allowance of Spender, the pool account when empty.
type ApproveRequest struct {
	Spender string `json:"spender"`
	Amount  string `json:"amount" binding:"required"`
}

// TransferRequest moves Amount from the caller to To.
type TransferRequest struct {
	To     string `json:"to" binding:"required"`
	Amount string `json:"amount" binding:"required"`
}

// AllowanceResponse carries an allowance.
type AllowanceResponse struct {
	Denom     string `json:"denom"`
	Owner     string `json:"owner"`
	Spender   string `json:"spender"`
	Allowance string `json:"allowance"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// SuccessResponse represents a generic success response
type SuccessResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

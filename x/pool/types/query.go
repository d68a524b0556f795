package types

import (
	"context"

	"cosmossdk.io/math"
)

// QueryServer defines the read-only pool queries
type QueryServer interface {
	Pool(context.Context, *QueryPoolRequest) (*QueryPoolResponse, error)
	Reserves(context.Context, *QueryReservesRequest) (*QueryReservesResponse, error)
	Price(context.Context, *QueryPriceRequest) (*QueryPriceResponse, error)
	SimulateSwap(context.Context, *QuerySimulateSwapRequest) (*QuerySimulateSwapResponse, error)
	Params(context.Context, *QueryParamsRequest) (*QueryParamsResponse, error)
}

type QueryPoolRequest struct{}

type QueryPoolResponse struct {
	Pool Pool `json:"pool"`
}

type QueryReservesRequest struct{}

type QueryReservesResponse struct {
	ReserveA math.Int `json:"reserve_a"`
	ReserveB math.Int `json:"reserve_b"`
}

type QueryPriceRequest struct {
	Denom string `json:"denom"`
}

// QueryPriceResponse carries a price scaled by PriceScale.
type QueryPriceResponse struct {
	Denom string   `json:"denom"`
	Price math.Int `json:"price"`
}

type QuerySimulateSwapRequest struct {
	TokenIn  string   `json:"token_in"`
	AmountIn math.Int `json:"amount_in"`
}

type QuerySimulateSwapResponse struct {
	Quote SwapQuote `json:"quote"`
}

type QueryParamsRequest struct{}

type QueryParamsResponse struct {
	Params Params `json:"params"`
}

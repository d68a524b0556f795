package keeper

import (
	"context"
	"fmt"

	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	"github.com/paw-chain/pawswap/x/pool/types"
)

type queryServer struct {
	Keeper
}

// NewQueryServerImpl returns an implementation of the pool QueryServer interface
func NewQueryServerImpl(keeper Keeper) types.QueryServer {
	return &queryServer{Keeper: keeper}
}

var _ types.QueryServer = queryServer{}

// Params returns the module parameters
func (qs queryServer) Params(goCtx context.Context, req *types.QueryParamsRequest) (*types.QueryParamsResponse, error) {
	if req == nil {
		return nil, sdkerrors.ErrInvalidRequest
	}

	params, err := qs.Keeper.GetParams(goCtx)
	if err != nil {
		return nil, fmt.Errorf("Params: get params: %w", err)
	}

	return &types.QueryParamsResponse{Params: params}, nil
}

// Pool returns the pool identities and reserves
func (qs queryServer) Pool(goCtx context.Context, req *types.QueryPoolRequest) (*types.QueryPoolResponse, error) {
	if req == nil {
		return nil, sdkerrors.ErrInvalidRequest
	}

	pool, err := qs.Keeper.GetPool(goCtx)
	if err != nil {
		return nil, fmt.Errorf("Pool: %w", err)
	}

	return &types.QueryPoolResponse{Pool: pool}, nil
}

// Reserves returns the current reserve pair
func (qs queryServer) Reserves(goCtx context.Context, req *types.QueryReservesRequest) (*types.QueryReservesResponse, error) {
	if req == nil {
		return nil, sdkerrors.ErrInvalidRequest
	}

	reserveA, reserveB, err := qs.Keeper.GetReserves(goCtx)
	if err != nil {
		return nil, fmt.Errorf("Reserves: %w", err)
	}

	return &types.QueryReservesResponse{ReserveA: reserveA, ReserveB: reserveB}, nil
}

// Price returns the scaled spot price of one asset
func (qs queryServer) Price(goCtx context.Context, req *types.QueryPriceRequest) (*types.QueryPriceResponse, error) {
	if req == nil {
		return nil, sdkerrors.ErrInvalidRequest
	}

	price, err := qs.Keeper.GetPrice(goCtx, req.Denom)
	if err != nil {
		return nil, fmt.Errorf("Price: %s: %w", req.Denom, err)
	}

	return &types.QueryPriceResponse{Denom: req.Denom, Price: price}, nil
}

// SimulateSwap quotes a swap without executing it
func (qs queryServer) SimulateSwap(goCtx context.Context, req *types.QuerySimulateSwapRequest) (*types.QuerySimulateSwapResponse, error) {
	if req == nil {
		return nil, sdkerrors.ErrInvalidRequest
	}

	quote, err := qs.Keeper.SimulateSwap(goCtx, req.TokenIn, req.AmountIn)
	if err != nil {
		return nil, fmt.Errorf("SimulateSwap: %w", err)
	}

	return &types.QuerySimulateSwapResponse{Quote: quote}, nil
}

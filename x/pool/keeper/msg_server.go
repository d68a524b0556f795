package keeper

import (
	"context"
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/pawswap/x/pool/types"
)

type msgServer struct {
	Keeper
}

// NewMsgServerImpl returns an implementation of the pool MsgServer interface
func NewMsgServerImpl(keeper Keeper) types.MsgServer {
	return &msgServer{Keeper: keeper}
}

var _ types.MsgServer = msgServer{}

// InitPool handles pool creation
func (ms msgServer) InitPool(goCtx context.Context, msg *types.MsgInitPool) (*types.MsgInitPoolResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("InitPool: validate: %w", err)
	}

	controller, err := sdk.AccAddressFromBech32(msg.Controller)
	if err != nil {
		return nil, fmt.Errorf("InitPool: invalid controller address: %w", err)
	}

	pool, err := ms.Keeper.InitPool(goCtx, controller, msg.AssetA, msg.AssetB)
	if err != nil {
		return nil, fmt.Errorf("InitPool: %w", err)
	}

	return &types.MsgInitPoolResponse{Pool: pool}, nil
}

// AddLiquidity handles adding liquidity to the pool
func (ms msgServer) AddLiquidity(goCtx context.Context, msg *types.MsgAddLiquidity) (*types.MsgAddLiquidityResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("AddLiquidity: validate: %w", err)
	}

	controller, err := sdk.AccAddressFromBech32(msg.Controller)
	if err != nil {
		return nil, fmt.Errorf("AddLiquidity: invalid controller address: %w", err)
	}

	pool, err := ms.Keeper.AddLiquidity(goCtx, controller, msg.AmountA, msg.AmountB)
	if err != nil {
		return nil, fmt.Errorf("AddLiquidity: %w", err)
	}

	return &types.MsgAddLiquidityResponse{
		ReserveA: pool.ReserveA,
		ReserveB: pool.ReserveB,
	}, nil
}

// RemoveLiquidity handles removing liquidity from the pool
func (ms msgServer) RemoveLiquidity(goCtx context.Context, msg *types.MsgRemoveLiquidity) (*types.MsgRemoveLiquidityResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("RemoveLiquidity: validate: %w", err)
	}

	controller, err := sdk.AccAddressFromBech32(msg.Controller)
	if err != nil {
		return nil, fmt.Errorf("RemoveLiquidity: invalid controller address: %w", err)
	}

	pool, err := ms.Keeper.RemoveLiquidity(goCtx, controller, msg.AmountA, msg.AmountB)
	if err != nil {
		return nil, fmt.Errorf("RemoveLiquidity: %w", err)
	}

	return &types.MsgRemoveLiquidityResponse{
		ReserveA: pool.ReserveA,
		ReserveB: pool.ReserveB,
	}, nil
}

// Swap handles token swaps
func (ms msgServer) Swap(goCtx context.Context, msg *types.MsgSwap) (*types.MsgSwapResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("Swap: validate: %w", err)
	}

	trader, err := sdk.AccAddressFromBech32(msg.Trader)
	if err != nil {
		return nil, fmt.Errorf("Swap: invalid trader address: %w", err)
	}

	info, err := ms.Keeper.GetPoolInfo(goCtx)
	if err != nil {
		return nil, fmt.Errorf("Swap: %w", err)
	}
	denomOut, err := info.OtherAsset(msg.TokenIn)
	if err != nil {
		return nil, fmt.Errorf("Swap: %w", err)
	}

	amountOut, err := ms.Keeper.Swap(goCtx, trader, msg.TokenIn, msg.AmountIn, msg.MinAmountOut)
	if err != nil {
		return nil, fmt.Errorf("Swap: %w", err)
	}

	return &types.MsgSwapResponse{
		DenomOut:  denomOut,
		AmountOut: amountOut,
	}, nil
}

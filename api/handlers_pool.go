package api

import (
	"net/http"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/gin-gonic/gin"

	pooltypes "github.com/paw-chain/pawswap/x/pool/types"
)

// handleGetPool returns the pool identities, reserves and fee
func (s *Server) handleGetPool(c *gin.Context) {
	var (
		pool   *pooltypes.QueryPoolResponse
		params *pooltypes.QueryParamsResponse
	)
	err := s.node.Query(func(ctx sdk.Context) error {
		var err error
		if pool, err = s.queryServer.Pool(ctx, &pooltypes.QueryPoolRequest{}); err != nil {
			return err
		}
		params, err = s.queryServer.Params(ctx, &pooltypes.QueryParamsRequest{})
		return err
	})
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, PoolResponse{
		AssetA:     pool.Pool.AssetA,
		AssetB:     pool.Pool.AssetB,
		Controller: pool.Pool.Controller,
		Address:    s.poolKeeper.GetModuleAddress().String(),
		ReserveA:   pool.Pool.ReserveA.String(),
		ReserveB:   pool.Pool.ReserveB.String(),
		SwapFeeBps: params.Params.SwapFeeBps,
	})
}

// handleGetReserves returns both reserves
func (s *Server) handleGetReserves(c *gin.Context) {
	var res *pooltypes.QueryReservesResponse
	err := s.node.Query(func(ctx sdk.Context) error {
		var err error
		res, err = s.queryServer.Reserves(ctx, &pooltypes.QueryReservesRequest{})
		return err
	})
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, ReservesResponse{
		ReserveA: res.ReserveA.String(),
		ReserveB: res.ReserveB.String(),
	})
}

// handleGetPrice returns the spot price of a pooled asset
func (s *Server) handleGetPrice(c *gin.Context) {
	denom := c.Param("denom")
	if err := ValidateDenom(denom); err != nil {
		writeBadRequest(c, "Invalid denom", err)
		return
	}

	var res *pooltypes.QueryPriceResponse
	err := s.node.Query(func(ctx sdk.Context) error {
		var err error
		res, err = s.queryServer.Price(ctx, &pooltypes.QueryPriceRequest{Denom: denom})
		return err
	})
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, PriceResponse{
		Denom: res.Denom,
		Price: res.Price.String(),
		Scale: pooltypes.PriceScale.String(),
	})
}

// handleSimulateSwap quotes a swap without executing it
func (s *Server) handleSimulateSwap(c *gin.Context) {
	tokenIn := c.Query("token_in")
	if err := ValidateDenom(tokenIn); err != nil {
		writeBadRequest(c, "Invalid token_in", err)
		return
	}
	amountIn, err := ParseAmount(c.Query("amount_in"))
	if err != nil {
		writeBadRequest(c, "Invalid amount_in", err)
		return
	}

	var res *pooltypes.QuerySimulateSwapResponse
	err = s.node.Query(func(ctx sdk.Context) error {
		var err error
		res, err = s.queryServer.SimulateSwap(ctx, &pooltypes.QuerySimulateSwapRequest{
			TokenIn:  tokenIn,
			AmountIn: amountIn,
		})
		return err
	})
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, QuoteResponse{
		TokenIn:   res.Quote.DenomIn,
		TokenOut:  res.Quote.DenomOut,
		AmountIn:  res.Quote.AmountIn.String(),
		Fee:       res.Quote.Fee.String(),
		AmountOut: res.Quote.AmountOut.String(),
	})
}

// handleGetParams returns the pool parameters
func (s *Server) handleGetParams(c *gin.Context) {
	var res *pooltypes.QueryParamsResponse
	err := s.node.Query(func(ctx sdk.Context) error {
		var err error
		res, err = s.queryServer.Params(ctx, &pooltypes.QueryParamsRequest{})
		return err
	})
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res.Params)
}

// handleSwap sells token_in for the other pooled asset on behalf of the caller
func (s *Server) handleSwap(c *gin.Context) {
	trader, err := GetAddressFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: err.Error()})
		return
	}

	var req SwapRequest
	if err := ValidateAndBindJSON(c, &req); err != nil {
		writeBadRequest(c, "Invalid request", err)
		return
	}
	amountIn, minAmountOut, err := ValidateSwapRequest(&req)
	if err != nil {
		writeBadRequest(c, "Invalid swap request", err)
		return
	}

	msg := pooltypes.NewMsgSwap(trader.String(), req.TokenIn, amountIn, minAmountOut)

	var res *pooltypes.MsgSwapResponse
	_, err = s.node.Exec(func(ctx sdk.Context) error {
		var err error
		res, err = s.msgServer.Swap(ctx, msg)
		return err
	})
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, SwapResponse{
		TokenOut:  res.DenomOut,
		AmountOut: res.AmountOut.String(),
		RequestID: c.GetString(contextKeyRequestID),
	})
}

// handleAddLiquidity deposits both assets from the caller, who must be the
// pool controller
func (s *Server) handleAddLiquidity(c *gin.Context) {
	controller, req, ok := s.bindLiquidity(c)
	if !ok {
		return
	}

	var res *pooltypes.MsgAddLiquidityResponse
	_, err := s.node.Exec(func(ctx sdk.Context) error {
		var err error
		res, err = s.msgServer.AddLiquidity(ctx, &pooltypes.MsgAddLiquidity{
			Controller: controller.String(),
			AmountA:    req.amountA,
			AmountB:    req.amountB,
		})
		return err
	})
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, ReservesResponse{
		ReserveA: res.ReserveA.String(),
		ReserveB: res.ReserveB.String(),
	})
}

// handleRemoveLiquidity withdraws both assets to the caller, who must be the
// pool controller
func (s *Server) handleRemoveLiquidity(c *gin.Context) {
	controller, req, ok := s.bindLiquidity(c)
	if !ok {
		return
	}

	var res *pooltypes.MsgRemoveLiquidityResponse
	_, err := s.node.Exec(func(ctx sdk.Context) error {
		var err error
		res, err = s.msgServer.RemoveLiquidity(ctx, &pooltypes.MsgRemoveLiquidity{
			Controller: controller.String(),
			AmountA:    req.amountA,
			AmountB:    req.amountB,
		})
		return err
	})
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, ReservesResponse{
		ReserveA: res.ReserveA.String(),
		ReserveB: res.ReserveB.String(),
	})
}

type liquidityAmounts struct {
	amountA, amountB math.Int
}

func (s *Server) bindLiquidity(c *gin.Context) (sdk.AccAddress, liquidityAmounts, bool) {
	caller, err := GetAddressFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: err.Error()})
		return nil, liquidityAmounts{}, false
	}

	var req LiquidityRequest
	if err := ValidateAndBindJSON(c, &req); err != nil {
		writeBadRequest(c, "Invalid request", err)
		return nil, liquidityAmounts{}, false
	}
	amountA, amountB, err := ValidateLiquidityRequest(&req)
	if err != nil {
		writeBadRequest(c, "Invalid liquidity request", err)
		return nil, liquidityAmounts{}, false
	}

	return caller, liquidityAmounts{amountA: amountA, amountB: amountB}, true
}

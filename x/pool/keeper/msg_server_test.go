package keeper_test

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	keepertest "github.com/paw-chain/pawswap/testutil/keeper"
	"github.com/paw-chain/pawswap/x/pool/keeper"
	"github.com/paw-chain/pawswap/x/pool/types"
)

func TestMsgServer(t *testing.T) {
	k, tk, ctx := keepertest.PoolKeeper(t)
	ms := keeper.NewMsgServerImpl(k)

	require.NoError(t, tk.CreateToken(ctx, controller, denomA, math.NewInt(5000)))
	require.NoError(t, tk.CreateToken(ctx, controller, denomB, math.NewInt(5000)))

	_, err := ms.InitPool(ctx, &types.MsgInitPool{Controller: controller.String(), AssetA: denomA, AssetB: denomA})
	require.ErrorIs(t, err, types.ErrInvalidToken)

	initResp, err := ms.InitPool(ctx, &types.MsgInitPool{Controller: controller.String(), AssetA: denomA, AssetB: denomB})
	require.NoError(t, err)
	require.Equal(t, denomB, initResp.Pool.AssetB)

	keepertest.ApprovePool(t, k, tk, ctx, controller, math.NewInt(1000), math.NewInt(1000))
	addResp, err := ms.AddLiquidity(ctx, &types.MsgAddLiquidity{
		Controller: controller.String(),
		AmountA:    math.NewInt(1000),
		AmountB:    math.NewInt(1000),
	})
	require.NoError(t, err)
	require.Equal(t, "1000", addResp.ReserveA.String())

	_, err = ms.AddLiquidity(ctx, &types.MsgAddLiquidity{
		Controller: trader.String(),
		AmountA:    math.NewInt(1),
		AmountB:    math.NewInt(1),
	})
	require.ErrorIs(t, err, types.ErrUnauthorized)

	keepertest.FundAccount(t, tk, ctx, controller, trader, math.ZeroInt(), math.NewInt(100))
	keepertest.ApprovePool(t, k, tk, ctx, trader, math.ZeroInt(), math.NewInt(100))
	swapResp, err := ms.Swap(ctx, types.NewMsgSwap(trader.String(), denomB, math.NewInt(100), math.NewInt(90)))
	require.NoError(t, err)
	require.Equal(t, denomA, swapResp.DenomOut)
	// 1000 * 100 / 1100 = 90.9
	require.Equal(t, "90", swapResp.AmountOut.String())

	_, err = ms.Swap(ctx, types.NewMsgSwap(trader.String(), "tokenc", math.NewInt(1), math.ZeroInt()))
	require.ErrorIs(t, err, types.ErrInvalidToken)

	removeResp, err := ms.RemoveLiquidity(ctx, &types.MsgRemoveLiquidity{
		Controller: controller.String(),
		AmountA:    math.NewInt(910),
		AmountB:    math.NewInt(1100),
	})
	require.NoError(t, err)
	require.True(t, removeResp.ReserveA.IsZero())
	require.True(t, removeResp.ReserveB.IsZero())
}

func TestQueryServer(t *testing.T) {
	k, tk, ctx := keepertest.PoolKeeper(t)
	qs := keeper.NewQueryServerImpl(k)

	_, err := qs.Pool(ctx, nil)
	require.Error(t, err)
	_, err = qs.Reserves(ctx, &types.QueryReservesRequest{})
	require.ErrorIs(t, err, types.ErrPoolNotInitialized)

	keepertest.CreateTestPool(t, k, tk, ctx, controller, math.NewInt(100), math.NewInt(200))

	poolResp, err := qs.Pool(ctx, &types.QueryPoolRequest{})
	require.NoError(t, err)
	require.Equal(t, controller.String(), poolResp.Pool.Controller)

	reserves, err := qs.Reserves(ctx, &types.QueryReservesRequest{})
	require.NoError(t, err)
	require.Equal(t, "100", reserves.ReserveA.String())
	require.Equal(t, "200", reserves.ReserveB.String())

	price, err := qs.Price(ctx, &types.QueryPriceRequest{Denom: denomB})
	require.NoError(t, err)
	require.Equal(t, "500000000000000000", price.Price.String())

	_, err = qs.Price(ctx, &types.QueryPriceRequest{Denom: "tokenc"})
	require.ErrorIs(t, err, types.ErrInvalidToken)

	sim, err := qs.SimulateSwap(ctx, &types.QuerySimulateSwapRequest{TokenIn: denomA, AmountIn: math.NewInt(10)})
	require.NoError(t, err)
	// 200 * 10 / 110 = 18.2
	require.Equal(t, "18", sim.Quote.AmountOut.String())
	require.Equal(t, denomB, sim.Quote.DenomOut)

	// simulation never moves reserves
	reserves, err = qs.Reserves(ctx, &types.QueryReservesRequest{})
	require.NoError(t, err)
	require.Equal(t, "100", reserves.ReserveA.String())

	params, err := qs.Params(ctx, &types.QueryParamsRequest{})
	require.NoError(t, err)
	require.Equal(t, types.DefaultParams(), params.Params)
}

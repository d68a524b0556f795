package keeper_test

import (
	"context"
	"errors"
	"testing"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	keepertest "github.com/paw-chain/pawswap/testutil/keeper"
	"github.com/paw-chain/pawswap/x/pool/keeper"
	"github.com/paw-chain/pawswap/x/pool/types"
	tokenkeeper "github.com/paw-chain/pawswap/x/token/keeper"
)

var (
	controller = keepertest.TestAddress("controller")
	trader     = keepertest.TestAddress("trader")
	stranger   = keepertest.TestAddress("stranger")
)

const (
	denomA = keepertest.DenomA
	denomB = keepertest.DenomB
)

type KeeperTestSuite struct {
	suite.Suite
	keeper      keeper.Keeper
	tokenKeeper tokenkeeper.Keeper
	ctx         sdk.Context
}

func (suite *KeeperTestSuite) SetupTest() {
	suite.keeper, suite.tokenKeeper, suite.ctx = keepertest.PoolKeeper(suite.T())
}

func TestKeeperTestSuite(t *testing.T) {
	suite.Run(t, new(KeeperTestSuite))
}

// seed creates the pool with the given reserves and funds the trader with
// 500 of each asset.
func (suite *KeeperTestSuite) seed(reserveA, reserveB int64) {
	keepertest.CreateTestPool(suite.T(), suite.keeper, suite.tokenKeeper, suite.ctx, controller,
		math.NewInt(reserveA), math.NewInt(reserveB))
	keepertest.FundAccount(suite.T(), suite.tokenKeeper, suite.ctx, controller, trader, math.NewInt(500), math.NewInt(500))
}

func (suite *KeeperTestSuite) requireReserves(reserveA, reserveB int64) {
	a, b, err := suite.keeper.GetReserves(suite.ctx)
	suite.Require().NoError(err)
	suite.Require().Equal(math.NewInt(reserveA).String(), a.String(), "reserve a")
	suite.Require().Equal(math.NewInt(reserveB).String(), b.String(), "reserve b")
}

func (suite *KeeperTestSuite) balance(denom string, addr sdk.AccAddress) string {
	return suite.tokenKeeper.BalanceOf(suite.ctx, denom, addr).String()
}

func (suite *KeeperTestSuite) freshEvents() sdk.Context {
	suite.ctx = suite.ctx.WithEventManager(sdk.NewEventManager())
	return suite.ctx
}

func findEvent(events sdk.Events, eventType string) (map[string]string, bool) {
	for _, event := range events {
		if event.Type != eventType {
			continue
		}
		attrs := make(map[string]string, len(event.Attributes))
		for _, attr := range event.Attributes {
			attrs[attr.Key] = attr.Value
		}
		return attrs, true
	}
	return nil, false
}

func (suite *KeeperTestSuite) TestInitPool() {
	suite.Require().False(suite.keeper.HasPool(suite.ctx))
	_, _, err := suite.keeper.GetReserves(suite.ctx)
	suite.Require().ErrorIs(err, types.ErrPoolNotInitialized)
	_, err = suite.keeper.AddLiquidity(suite.ctx, controller, math.NewInt(1), math.NewInt(1))
	suite.Require().ErrorIs(err, types.ErrPoolNotInitialized)

	suite.Require().NoError(suite.tokenKeeper.CreateToken(suite.ctx, controller, denomA, math.NewInt(10)))
	suite.Require().NoError(suite.tokenKeeper.CreateToken(suite.ctx, controller, denomB, math.NewInt(10)))

	_, err = suite.keeper.InitPool(suite.ctx, controller, denomA, "tokenc")
	suite.Require().ErrorIs(err, types.ErrInvalidToken)
	_, err = suite.keeper.InitPool(suite.ctx, controller, denomA, denomA)
	suite.Require().ErrorIs(err, types.ErrInvalidToken)
	_, err = suite.keeper.InitPool(suite.ctx, controller, "", denomB)
	suite.Require().ErrorIs(err, types.ErrInvalidToken)
	_, err = suite.keeper.InitPool(suite.ctx, nil, denomA, denomB)
	suite.Require().ErrorIs(err, types.ErrInvalidAddress)
	_, err = suite.keeper.InitPool(suite.ctx, suite.keeper.GetModuleAddress(), denomA, denomB)
	suite.Require().ErrorIs(err, types.ErrInvalidAddress)
	suite.Require().False(suite.keeper.HasPool(suite.ctx))

	ctx := suite.freshEvents()
	pool, err := suite.keeper.InitPool(ctx, controller, denomA, denomB)
	suite.Require().NoError(err)
	suite.Require().Equal(controller.String(), pool.Controller)
	suite.requireReserves(0, 0)

	attrs, ok := findEvent(ctx.EventManager().Events(), types.EventTypePoolInitialized)
	suite.Require().True(ok)
	suite.Require().Equal(denomA, attrs[types.AttributeKeyAssetA])

	_, err = suite.keeper.InitPool(suite.ctx, stranger, denomB, denomA)
	suite.Require().ErrorIs(err, types.ErrPoolAlreadyInitialized)

	isController, err := suite.keeper.IsController(suite.ctx, controller)
	suite.Require().NoError(err)
	suite.Require().True(isController)
	isController, err = suite.keeper.IsController(suite.ctx, stranger)
	suite.Require().NoError(err)
	suite.Require().False(isController)
}

func (suite *KeeperTestSuite) TestAddLiquidity() {
	suite.seed(0, 0)
	keepertest.ApprovePool(suite.T(), suite.keeper, suite.tokenKeeper, suite.ctx, controller, math.NewInt(100), math.NewInt(200))

	ctx := suite.freshEvents()
	pool, err := suite.keeper.AddLiquidity(ctx, controller, math.NewInt(100), math.NewInt(200))
	suite.Require().NoError(err)
	suite.Require().Equal("100", pool.ReserveA.String())
	suite.Require().Equal("200", pool.ReserveB.String())
	suite.requireReserves(100, 200)

	poolAddr := suite.keeper.GetModuleAddress()
	suite.Require().Equal("100", suite.balance(denomA, poolAddr))
	suite.Require().Equal("200", suite.balance(denomB, poolAddr))
	suite.Require().Equal("4900", suite.balance(denomA, controller))
	suite.Require().Equal("4800", suite.balance(denomB, controller))

	attrs, ok := findEvent(ctx.EventManager().Events(), types.EventTypeLiquidityAdded)
	suite.Require().True(ok)
	suite.Require().Equal("100", attrs[types.AttributeKeyAmountA])
	suite.Require().Equal("200", attrs[types.AttributeKeyAmountB])
}

func (suite *KeeperTestSuite) TestAddLiquidityRejected() {
	suite.seed(1000, 2000)
	keepertest.ApprovePool(suite.T(), suite.keeper, suite.tokenKeeper, suite.ctx, controller, math.NewInt(100), math.ZeroInt())

	tests := []struct {
		name    string
		caller  sdk.AccAddress
		amountA math.Int
		amountB math.Int
		wantErr error
	}{
		{"zero amounts", controller, math.ZeroInt(), math.ZeroInt(), types.ErrInvalidAmount},
		{"one zero amount", controller, math.NewInt(5), math.ZeroInt(), types.ErrInvalidAmount},
		{"negative amount", controller, math.NewInt(-5), math.NewInt(5), types.ErrInvalidAmount},
		{"non controller", trader, math.NewInt(5), math.NewInt(5), types.ErrUnauthorized},
		{"non controller with zero amounts", stranger, math.ZeroInt(), math.ZeroInt(), types.ErrUnauthorized},
		// asset A is pulled, then B fails on allowance and A must be rolled back
		{"second pull fails", controller, math.NewInt(100), math.NewInt(100), types.ErrTransferFailed},
		{"exceeds allowance", controller, math.NewInt(100_000), math.NewInt(1), types.ErrTransferFailed},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			ctx := suite.freshEvents()
			_, err := suite.keeper.AddLiquidity(ctx, tc.caller, tc.amountA, tc.amountB)
			suite.Require().ErrorIs(err, tc.wantErr)

			suite.requireReserves(1000, 2000)
			suite.Require().Equal("5000", suite.balance(denomA, controller))
			suite.Require().Equal("5000", suite.balance(denomB, controller))
			suite.Require().Equal("100", suite.tokenKeeper.Allowance(suite.ctx, denomA, controller, suite.keeper.GetModuleAddress()).String())
			suite.Require().Empty(ctx.EventManager().Events())
		})
	}
}

func (suite *KeeperTestSuite) TestRemoveLiquidity() {
	suite.seed(1000, 2000)

	ctx := suite.freshEvents()
	pool, err := suite.keeper.RemoveLiquidity(ctx, controller, math.NewInt(400), math.NewInt(500))
	suite.Require().NoError(err)
	suite.Require().Equal("600", pool.ReserveA.String())
	suite.requireReserves(600, 1500)
	suite.Require().Equal("5400", suite.balance(denomA, controller))
	suite.Require().Equal("5500", suite.balance(denomB, controller))

	attrs, ok := findEvent(ctx.EventManager().Events(), types.EventTypeLiquidityRemoved)
	suite.Require().True(ok)
	suite.Require().Equal("400", attrs[types.AttributeKeyAmountA])
	suite.Require().Equal("500", attrs[types.AttributeKeyAmountB])

	_, err = suite.keeper.RemoveLiquidity(suite.ctx, controller, math.NewInt(601), math.NewInt(1))
	suite.Require().ErrorIs(err, types.ErrInsufficientReserves)
	_, err = suite.keeper.RemoveLiquidity(suite.ctx, controller, math.NewInt(1), math.NewInt(1501))
	suite.Require().ErrorIs(err, types.ErrInsufficientReserves)
	_, err = suite.keeper.RemoveLiquidity(suite.ctx, trader, math.NewInt(1), math.NewInt(1))
	suite.Require().ErrorIs(err, types.ErrUnauthorized)
	_, err = suite.keeper.RemoveLiquidity(suite.ctx, controller, math.ZeroInt(), math.NewInt(1))
	suite.Require().ErrorIs(err, types.ErrInvalidAmount)
	suite.requireReserves(600, 1500)

	// draining both sides empties the pool
	_, err = suite.keeper.RemoveLiquidity(suite.ctx, controller, math.NewInt(600), math.NewInt(1500))
	suite.Require().NoError(err)
	suite.requireReserves(0, 0)
	suite.Require().Equal("0", suite.balance(denomA, suite.keeper.GetModuleAddress()))
}

func (suite *KeeperTestSuite) TestAddRemoveRoundTrip() {
	suite.seed(1000, 2000)

	keepertest.FundAccount(suite.T(), suite.tokenKeeper, suite.ctx, controller, controller, math.NewInt(321), math.NewInt(654))
	keepertest.ApprovePool(suite.T(), suite.keeper, suite.tokenKeeper, suite.ctx, controller, math.NewInt(321), math.NewInt(654))

	_, err := suite.keeper.AddLiquidity(suite.ctx, controller, math.NewInt(321), math.NewInt(654))
	suite.Require().NoError(err)
	suite.requireReserves(1321, 2654)

	_, err = suite.keeper.RemoveLiquidity(suite.ctx, controller, math.NewInt(321), math.NewInt(654))
	suite.Require().NoError(err)
	suite.requireReserves(1000, 2000)
}

func (suite *KeeperTestSuite) TestSwapAforB() {
	suite.seed(1000, 2000)
	keepertest.ApprovePool(suite.T(), suite.keeper, suite.tokenKeeper, suite.ctx, trader, math.NewInt(100), math.ZeroInt())

	ctx := suite.freshEvents()
	out, err := suite.keeper.SwapAforB(ctx, trader, math.NewInt(100))
	suite.Require().NoError(err)
	// 2000 * 100 / 1100 = 181.8
	suite.Require().Equal("181", out.String())
	suite.requireReserves(1100, 1819)
	suite.Require().Equal("400", suite.balance(denomA, trader))
	suite.Require().Equal("681", suite.balance(denomB, trader))

	attrs, ok := findEvent(ctx.EventManager().Events(), types.EventTypeSwappedAforB)
	suite.Require().True(ok)
	suite.Require().Equal("100", attrs[types.AttributeKeyAmountIn])
	suite.Require().Equal("181", attrs[types.AttributeKeyAmountOut])
	suite.Require().Equal(trader.String(), attrs[types.AttributeKeyTrader])
	_, ok = findEvent(ctx.EventManager().Events(), types.EventTypeSwappedBforA)
	suite.Require().False(ok)
}

func (suite *KeeperTestSuite) TestSwapBforA() {
	suite.seed(1000, 2000)
	keepertest.ApprovePool(suite.T(), suite.keeper, suite.tokenKeeper, suite.ctx, trader, math.ZeroInt(), math.NewInt(100))

	ctx := suite.freshEvents()
	out, err := suite.keeper.SwapBforA(ctx, trader, math.NewInt(100))
	suite.Require().NoError(err)
	// 1000 * 100 / 2100 = 47.6
	suite.Require().Equal("47", out.String())
	suite.requireReserves(953, 2100)
	suite.Require().Equal("547", suite.balance(denomA, trader))
	suite.Require().Equal("400", suite.balance(denomB, trader))

	_, ok := findEvent(ctx.EventManager().Events(), types.EventTypeSwappedBforA)
	suite.Require().True(ok)
}

func (suite *KeeperTestSuite) TestSwapRejected() {
	suite.seed(1000, 2000)
	keepertest.ApprovePool(suite.T(), suite.keeper, suite.tokenKeeper, suite.ctx, trader, math.NewInt(50), math.ZeroInt())

	tests := []struct {
		name    string
		run     func(ctx context.Context) error
		wantErr error
	}{
		{
			name: "zero a for b",
			run: func(ctx context.Context) error {
				_, err := suite.keeper.SwapAforB(ctx, trader, math.ZeroInt())
				return err
			},
			wantErr: types.ErrInvalidAmount,
		},
		{
			name: "zero b for a",
			run: func(ctx context.Context) error {
				_, err := suite.keeper.SwapBforA(ctx, trader, math.ZeroInt())
				return err
			},
			wantErr: types.ErrInvalidAmount,
		},
		{
			name: "no allowance",
			run: func(ctx context.Context) error {
				_, err := suite.keeper.SwapBforA(ctx, trader, math.NewInt(10))
				return err
			},
			wantErr: types.ErrTransferFailed,
		},
		{
			name: "allowance too small",
			run: func(ctx context.Context) error {
				_, err := suite.keeper.SwapAforB(ctx, trader, math.NewInt(51))
				return err
			},
			wantErr: types.ErrTransferFailed,
		},
		{
			name: "untracked token",
			run: func(ctx context.Context) error {
				_, err := suite.keeper.Swap(ctx, trader, "tokenc", math.NewInt(10), math.ZeroInt())
				return err
			},
			wantErr: types.ErrInvalidToken,
		},
		{
			name: "slippage",
			run: func(ctx context.Context) error {
				// 2000 * 50 / 1050 = 95
				_, err := suite.keeper.Swap(ctx, trader, denomA, math.NewInt(50), math.NewInt(96))
				return err
			},
			wantErr: types.ErrSlippageExceeded,
		},
		{
			name: "dust buys nothing",
			run: func(ctx context.Context) error {
				// 1000 * 1 / 2001 = 0
				_, err := suite.keeper.SwapBforA(ctx, trader, math.NewInt(1))
				return err
			},
			wantErr: types.ErrInvalidAmount,
		},
		{
			name: "empty trader",
			run: func(ctx context.Context) error {
				_, err := suite.keeper.SwapAforB(ctx, nil, math.NewInt(10))
				return err
			},
			wantErr: types.ErrInvalidAddress,
		},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			ctx := suite.freshEvents()
			suite.Require().ErrorIs(tc.run(ctx), tc.wantErr)
			suite.requireReserves(1000, 2000)
			suite.Require().Equal("500", suite.balance(denomA, trader))
			suite.Require().Equal("500", suite.balance(denomB, trader))
			suite.Require().Empty(ctx.EventManager().Events())
		})
	}

	// the exact minimum passes
	out, err := suite.keeper.Swap(suite.ctx, trader, denomA, math.NewInt(50), math.NewInt(95))
	suite.Require().NoError(err)
	suite.Require().Equal("95", out.String())
}

func (suite *KeeperTestSuite) TestSwapEmptyPool() {
	suite.seed(0, 0)
	keepertest.ApprovePool(suite.T(), suite.keeper, suite.tokenKeeper, suite.ctx, trader, math.NewInt(10), math.NewInt(10))

	for _, caller := range []sdk.AccAddress{trader, controller, stranger} {
		_, err := suite.keeper.SwapAforB(suite.ctx, caller, math.NewInt(10))
		suite.Require().ErrorIs(err, types.ErrInsufficientLiquidity)
		_, err = suite.keeper.SwapBforA(suite.ctx, caller, math.NewInt(10))
		suite.Require().ErrorIs(err, types.ErrInsufficientLiquidity)
	}

	// one-sided pool after an uneven withdrawal also refuses to trade
	keepertest.ApprovePool(suite.T(), suite.keeper, suite.tokenKeeper, suite.ctx, controller, math.NewInt(100), math.NewInt(100))
	_, err := suite.keeper.AddLiquidity(suite.ctx, controller, math.NewInt(100), math.NewInt(100))
	suite.Require().NoError(err)
	_, err = suite.keeper.RemoveLiquidity(suite.ctx, controller, math.NewInt(100), math.NewInt(50))
	suite.Require().NoError(err)
	_, err = suite.keeper.SwapBforA(suite.ctx, trader, math.NewInt(10))
	suite.Require().ErrorIs(err, types.ErrInsufficientLiquidity)
}

func (suite *KeeperTestSuite) TestSwapWithFee() {
	suite.seed(1000, 2000)
	suite.Require().NoError(suite.keeper.SetParams(suite.ctx, types.Params{SwapFeeBps: 30}))
	keepertest.FundAccount(suite.T(), suite.tokenKeeper, suite.ctx, controller, trader, math.NewInt(500), math.ZeroInt())
	keepertest.ApprovePool(suite.T(), suite.keeper, suite.tokenKeeper, suite.ctx, trader, math.NewInt(1000), math.ZeroInt())

	quote, err := suite.keeper.SimulateSwap(suite.ctx, denomA, math.NewInt(1000))
	suite.Require().NoError(err)
	suite.Require().Equal("3", quote.Fee.String())
	// 2000 * 997 / 1997 = 998.5
	suite.Require().Equal("998", quote.AmountOut.String())

	out, err := suite.keeper.SwapAforB(suite.ctx, trader, math.NewInt(1000))
	suite.Require().NoError(err)
	suite.Require().Equal(quote.AmountOut.String(), out.String())
	// the gross input is credited
	suite.requireReserves(2000, 1002)

	suite.Require().ErrorIs(suite.keeper.SetParams(suite.ctx, types.Params{SwapFeeBps: types.MaxSwapFeeBps + 1}), types.ErrInvalidParams)
}

type failingLedger struct {
	tokenkeeper.Keeper
	failDenom string
}

func (l failingLedger) Transfer(ctx context.Context, denom string, from, to sdk.AccAddress, amount math.Int) error {
	if denom == l.failDenom {
		return errors.New("ledger rejected transfer")
	}
	return l.Keeper.Transfer(ctx, denom, from, to, amount)
}

func TestSwapRollsBackWhenPayoutFails(t *testing.T) {
	k, tk, ctx := keepertest.PoolKeeperWithLedger(t, func(tk tokenkeeper.Keeper) types.AssetLedger {
		return failingLedger{Keeper: tk, failDenom: denomB}
	})
	keepertest.CreateTestPool(t, k, tk, ctx, controller, math.NewInt(1000), math.NewInt(2000))
	keepertest.FundAccount(t, tk, ctx, controller, trader, math.NewInt(500), math.ZeroInt())
	keepertest.ApprovePool(t, k, tk, ctx, trader, math.NewInt(100), math.ZeroInt())

	ctx = ctx.WithEventManager(sdk.NewEventManager())
	_, err := k.SwapAforB(ctx, trader, math.NewInt(100))
	require.ErrorIs(t, err, types.ErrTransferFailed)

	// the input pull happened on the branch and was discarded with it
	a, b, err := k.GetReserves(ctx)
	require.NoError(t, err)
	require.Equal(t, "1000", a.String())
	require.Equal(t, "2000", b.String())
	require.Equal(t, "500", tk.BalanceOf(ctx, denomA, trader).String())
	require.Equal(t, "100", tk.Allowance(ctx, denomA, trader, k.GetModuleAddress()).String(), "allowance consumed")
	require.Empty(t, ctx.EventManager().Events())

	// removal pays out B as well
	_, err = k.RemoveLiquidity(ctx, controller, math.NewInt(10), math.NewInt(10))
	require.ErrorIs(t, err, types.ErrTransferFailed)
	require.Equal(t, "1000", tk.BalanceOf(ctx, denomA, k.GetModuleAddress()).String())
}

func counterValue(t require.TestingT, c prometheus.Counter) float64 {
	var m dto.Metric
	require.NoError(t, c.Write(&m))
	return m.GetCounter().GetValue()
}

func (suite *KeeperTestSuite) TestPoolAccountCannotActOnItself() {
	suite.seed(1000, 2000)
	pool := suite.keeper.GetModuleAddress()
	rejected := suite.keeper.Metrics().OperationFailures.WithLabelValues("swap", "invalid_address")
	before := counterValue(suite.T(), rejected)

	// the pool account holds 1000 of A and could approve itself
	suite.Require().NoError(suite.tokenKeeper.Approve(suite.ctx, denomA, pool, pool, math.NewInt(500)))
	suite.Require().NoError(suite.tokenKeeper.Approve(suite.ctx, denomB, pool, pool, math.NewInt(500)))

	ctx := suite.freshEvents()
	_, err := suite.keeper.SwapAforB(ctx, pool, math.NewInt(500))
	suite.Require().ErrorIs(err, types.ErrInvalidAddress)
	_, err = suite.keeper.Swap(ctx, pool, denomB, math.NewInt(500), math.ZeroInt())
	suite.Require().ErrorIs(err, types.ErrInvalidAddress)
	suite.Require().Equal(before+2, counterValue(suite.T(), rejected))

	_, err = suite.keeper.AddLiquidity(ctx, pool, math.NewInt(100), math.NewInt(100))
	suite.Require().ErrorIs(err, types.ErrInvalidAddress)
	_, err = suite.keeper.RemoveLiquidity(ctx, pool, math.NewInt(100), math.NewInt(100))
	suite.Require().ErrorIs(err, types.ErrInvalidAddress)

	suite.requireReserves(1000, 2000)
	suite.Require().Equal("1000", suite.balance(denomA, pool))
	suite.Require().Equal("2000", suite.balance(denomB, pool))
	suite.Require().Empty(ctx.EventManager().Events())

	msg, broken := keeper.ReservesBackedInvariant(suite.keeper)(suite.ctx)
	suite.Require().False(broken, msg)
}

func (suite *KeeperTestSuite) TestGetPrice() {
	suite.seed(100, 200)

	priceA, err := suite.keeper.GetPrice(suite.ctx, denomA)
	suite.Require().NoError(err)
	suite.Require().Equal(math.NewInt(200).Mul(types.PriceScale).QuoRaw(100).String(), priceA.String())

	priceB, err := suite.keeper.GetPrice(suite.ctx, denomB)
	suite.Require().NoError(err)
	suite.Require().Equal(math.NewInt(100).Mul(types.PriceScale).QuoRaw(200).String(), priceB.String())

	_, err = suite.keeper.GetPrice(suite.ctx, "tokenc")
	suite.Require().ErrorIs(err, types.ErrInvalidToken)

	_, err = suite.keeper.RemoveLiquidity(suite.ctx, controller, math.NewInt(100), math.NewInt(200))
	suite.Require().NoError(err)
	_, err = suite.keeper.GetPrice(suite.ctx, denomA)
	suite.Require().ErrorIs(err, types.ErrInsufficientLiquidity)
}

func (suite *KeeperTestSuite) TestGenesisRoundTrip() {
	suite.seed(1000, 2000)
	suite.Require().NoError(suite.keeper.SetParams(suite.ctx, types.Params{SwapFeeBps: 25}))

	exported, err := suite.keeper.ExportGenesis(suite.ctx)
	suite.Require().NoError(err)
	suite.Require().NotNil(exported.Pool)
	suite.Require().Equal(uint32(25), exported.Params.SwapFeeBps)
	suite.Require().Equal("2000", exported.Pool.ReserveB.String())

	k2, tk2, ctx2 := keepertest.PoolKeeper(suite.T())
	// pool assets must exist in the ledger before import
	suite.Require().Error(k2.InitGenesis(ctx2, *exported))

	suite.Require().NoError(tk2.CreateToken(ctx2, controller, denomA, math.ZeroInt()))
	suite.Require().NoError(tk2.CreateToken(ctx2, controller, denomB, math.ZeroInt()))
	suite.Require().NoError(k2.InitGenesis(ctx2, *exported))

	pool, err := k2.GetPool(ctx2)
	suite.Require().NoError(err)
	suite.Require().Equal(exported.Pool.PoolInfo, pool.PoolInfo)
	suite.Require().Equal("1000", pool.ReserveA.String())

	empty, err := keeperWithoutPool(suite.T())
	suite.Require().NoError(err)
	suite.Require().Nil(empty.Pool)
}

func keeperWithoutPool(t *testing.T) (*types.GenesisState, error) {
	k, _, ctx := keepertest.PoolKeeper(t)
	return k.ExportGenesis(ctx)
}

func (suite *KeeperTestSuite) TestInvariants() {
	msg, broken := keeper.AllInvariants(suite.keeper)(suite.ctx)
	suite.Require().False(broken, msg)

	suite.seed(1000, 2000)
	keepertest.ApprovePool(suite.T(), suite.keeper, suite.tokenKeeper, suite.ctx, trader, math.NewInt(100), math.ZeroInt())
	_, err := suite.keeper.SwapAforB(suite.ctx, trader, math.NewInt(100))
	suite.Require().NoError(err)

	msg, broken = keeper.AllInvariants(suite.keeper)(suite.ctx)
	suite.Require().False(broken, msg)

	// a direct donation keeps reserves backed
	suite.Require().NoError(suite.tokenKeeper.Transfer(suite.ctx, denomA, trader, suite.keeper.GetModuleAddress(), math.NewInt(7)))
	msg, broken = keeper.ReservesBackedInvariant(suite.keeper)(suite.ctx)
	suite.Require().False(broken, msg)

	// moving funds out of the pool account behind the keeper's back does not
	suite.Require().NoError(suite.tokenKeeper.Transfer(suite.ctx, denomB, suite.keeper.GetModuleAddress(), stranger, math.NewInt(1)))
	msg, broken = keeper.ReservesBackedInvariant(suite.keeper)(suite.ctx)
	suite.Require().True(broken)
	suite.Require().Contains(msg, denomB)
}

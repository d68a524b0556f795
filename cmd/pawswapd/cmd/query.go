package cmd

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/spf13/cobra"

	"github.com/paw-chain/pawswap/app"
	poolkeeper "github.com/paw-chain/pawswap/x/pool/keeper"
	pooltypes "github.com/paw-chain/pawswap/x/pool/types"
	tokentypes "github.com/paw-chain/pawswap/x/token/types"
)

// QueryCmd groups the read-only subcommands.
func QueryCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:                        "query",
		Aliases:                    []string{"q"},
		Short:                      "Querying subcommands",
		SuggestionsMinimumDistance: 2,
	}

	cmd.AddCommand(
		queryCmd(opts, "pool", "Show the pool identities and reserves", cobra.NoArgs,
			func(ctx sdk.Context, q pooltypes.QueryServer, _ *app.App, _ []string) (interface{}, error) {
				res, err := q.Pool(ctx, &pooltypes.QueryPoolRequest{})
				if err != nil {
					return nil, err
				}
				return res.Pool, nil
			}),
		queryCmd(opts, "reserves", "Show both reserves", cobra.NoArgs,
			func(ctx sdk.Context, q pooltypes.QueryServer, _ *app.App, _ []string) (interface{}, error) {
				return q.Reserves(ctx, &pooltypes.QueryReservesRequest{})
			}),
		queryCmd(opts, "price [denom]", "Spot price of denom in the other asset, scaled by 1e18", cobra.ExactArgs(1),
			func(ctx sdk.Context, q pooltypes.QueryServer, _ *app.App, args []string) (interface{}, error) {
				return q.Price(ctx, &pooltypes.QueryPriceRequest{Denom: args[0]})
			}),
		queryCmd(opts, "simulate [token-in] [amount-in]", "Quote a swap without executing it", cobra.ExactArgs(2),
			func(ctx sdk.Context, q pooltypes.QueryServer, _ *app.App, args []string) (interface{}, error) {
				amountIn, err := parseAmountArg("amount-in", args[1])
				if err != nil {
					return nil, err
				}
				res, err := q.SimulateSwap(ctx, &pooltypes.QuerySimulateSwapRequest{TokenIn: args[0], AmountIn: amountIn})
				if err != nil {
					return nil, err
				}
				return res.Quote, nil
			}),
		queryCmd(opts, "params", "Show the pool parameters", cobra.NoArgs,
			func(ctx sdk.Context, q pooltypes.QueryServer, _ *app.App, _ []string) (interface{}, error) {
				res, err := q.Params(ctx, &pooltypes.QueryParamsRequest{})
				if err != nil {
					return nil, err
				}
				return res.Params, nil
			}),
		queryCmd(opts, "balance [denom] [address]", "Show the balance of an address", cobra.ExactArgs(2),
			func(ctx sdk.Context, _ pooltypes.QueryServer, pawApp *app.App, args []string) (interface{}, error) {
				holder, err := sdk.AccAddressFromBech32(args[1])
				if err != nil {
					return nil, fmt.Errorf("invalid address: %w", err)
				}
				if !pawApp.TokenKeeper.HasToken(ctx, args[0]) {
					return nil, tokentypes.ErrTokenNotFound.Wrap(args[0])
				}
				return map[string]string{
					"denom":   args[0],
					"address": holder.String(),
					"balance": pawApp.TokenKeeper.BalanceOf(ctx, args[0], holder).String(),
				}, nil
			}),
		queryCmd(opts, "allowance [denom] [owner] [spender|pool]", "Show how much spender may pull from owner", cobra.ExactArgs(3),
			func(ctx sdk.Context, _ pooltypes.QueryServer, pawApp *app.App, args []string) (interface{}, error) {
				owner, err := sdk.AccAddressFromBech32(args[1])
				if err != nil {
					return nil, fmt.Errorf("invalid owner: %w", err)
				}
				spender, err := spenderArg(args[2])
				if err != nil {
					return nil, err
				}
				if !pawApp.TokenKeeper.HasToken(ctx, args[0]) {
					return nil, tokentypes.ErrTokenNotFound.Wrap(args[0])
				}
				return map[string]string{
					"denom":     args[0],
					"owner":     owner.String(),
					"spender":   spender.String(),
					"allowance": pawApp.TokenKeeper.Allowance(ctx, args[0], owner, spender).String(),
				}, nil
			}),
		queryCmd(opts, "token [denom]", "Show a token's owner and supply", cobra.ExactArgs(1),
			func(ctx sdk.Context, _ pooltypes.QueryServer, pawApp *app.App, args []string) (interface{}, error) {
				return pawApp.TokenKeeper.GetToken(ctx, args[0])
			}),
		&cobra.Command{
			Use:   "invariants",
			Short: "Run every registered invariant against the latest state",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return opts.withApp(func(pawApp *app.App) error {
					broken := pawApp.CheckInvariants()
					if err := printJSON(cmd, map[string]interface{}{"broken": len(broken) > 0, "messages": broken}); err != nil {
						return err
					}
					if len(broken) > 0 {
						return pooltypes.ErrInvariantViolation.Wrapf("%d broken", len(broken))
					}
					return nil
				})
			},
		},
	)

	return cmd
}

type queryFunc func(ctx sdk.Context, q pooltypes.QueryServer, pawApp *app.App, args []string) (interface{}, error)

func queryCmd(opts *rootOptions, use, short string, args cobra.PositionalArgs, fn queryFunc) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  args,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(func(pawApp *app.App) error {
				q := poolkeeper.NewQueryServerImpl(pawApp.PoolKeeper)

				var out interface{}
				err := pawApp.Query(func(ctx sdk.Context) error {
					var err error
					out, err = fn(ctx, q, pawApp, args)
					return err
				})
				if err != nil {
					return err
				}
				return printJSON(cmd, out)
			})
		},
	}
}

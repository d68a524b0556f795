package cmd

import (
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/spf13/cobra"

	"github.com/paw-chain/pawswap/app"
	poolkeeper "github.com/paw-chain/pawswap/x/pool/keeper"
	pooltypes "github.com/paw-chain/pawswap/x/pool/types"
)

const flagMinAmountOut = "min-amount-out"

// TxCmd groups the state changing subcommands. Each one commits a new
// version or nothing at all.
func TxCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:                        "tx",
		Short:                      "Transactions subcommands",
		SuggestionsMinimumDistance: 2,
	}

	cmd.AddCommand(
		tokenTxCmd(opts),
		poolTxCmd(opts),
	)
	cmd.PersistentFlags().String(flagFrom, "", "bech32 address acting as the caller")

	return cmd
}

// txResult is printed after every successful transaction.
type txResult struct {
	Version int64       `json:"version"`
	Result  interface{} `json:"result,omitempty"`
	Events  []txEvent   `json:"events"`
}

type txEvent struct {
	Type       string            `json:"type"`
	Attributes map[string]string `json:"attributes"`
}

// runTx executes fn as the --from address and prints the committed version,
// fn's result and the emitted events.
func runTx(cmd *cobra.Command, opts *rootOptions, fn func(ctx sdk.Context, pawApp *app.App, from sdk.AccAddress) (interface{}, error)) error {
	from, err := fromAddress(cmd)
	if err != nil {
		return err
	}

	return opts.withApp(func(pawApp *app.App) error {
		var result interface{}
		events, err := pawApp.Exec(func(ctx sdk.Context) error {
			var err error
			result, err = fn(ctx, pawApp, from)
			return err
		})
		if err != nil {
			return err
		}

		out := txResult{
			Version: pawApp.LastCommitID().Version,
			Result:  result,
			Events:  make([]txEvent, 0, len(events)),
		}
		for _, ev := range events {
			attrs := make(map[string]string, len(ev.Attributes))
			for _, attr := range ev.Attributes {
				attrs[attr.Key] = attr.Value
			}
			out.Events = append(out.Events, txEvent{Type: ev.Type, Attributes: attrs})
		}
		return printJSON(cmd, out)
	})
}

func tokenTxCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Token ledger transactions",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "create [denom] [initial-supply]",
			Short: "Create a token owned by --from and mint the supply to it",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				supply, err := parseAmountArg("initial-supply", args[1])
				if err != nil {
					return err
				}
				return runTx(cmd, opts, func(ctx sdk.Context, pawApp *app.App, from sdk.AccAddress) (interface{}, error) {
					return nil, pawApp.TokenKeeper.CreateToken(ctx, from, args[0], supply)
				})
			},
		},
		&cobra.Command{
			Use:   "mint [denom] [to] [amount]",
			Short: "Mint tokens; --from must own the token",
			Args:  cobra.ExactArgs(3),
			RunE: func(cmd *cobra.Command, args []string) error {
				to, err := sdk.AccAddressFromBech32(args[1])
				if err != nil {
					return fmt.Errorf("invalid recipient: %w", err)
				}
				amount, err := parseAmountArg("amount", args[2])
				if err != nil {
					return err
				}
				return runTx(cmd, opts, func(ctx sdk.Context, pawApp *app.App, from sdk.AccAddress) (interface{}, error) {
					return nil, pawApp.TokenKeeper.Mint(ctx, from, args[0], to, amount)
				})
			},
		},
		&cobra.Command{
			Use:   "burn [denom] [amount]",
			Short: "Burn tokens held by --from, who must own the token",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				amount, err := parseAmountArg("amount", args[1])
				if err != nil {
					return err
				}
				return runTx(cmd, opts, func(ctx sdk.Context, pawApp *app.App, from sdk.AccAddress) (interface{}, error) {
					return nil, pawApp.TokenKeeper.Burn(ctx, from, args[0], amount)
				})
			},
		},
		&cobra.Command{
			Use:   "transfer [denom] [to] [amount]",
			Short: "Transfer tokens from --from",
			Args:  cobra.ExactArgs(3),
			RunE: func(cmd *cobra.Command, args []string) error {
				to, err := sdk.AccAddressFromBech32(args[1])
				if err != nil {
					return fmt.Errorf("invalid recipient: %w", err)
				}
				amount, err := parseAmountArg("amount", args[2])
				if err != nil {
					return err
				}
				return runTx(cmd, opts, func(ctx sdk.Context, pawApp *app.App, from sdk.AccAddress) (interface{}, error) {
					return nil, pawApp.TokenKeeper.Transfer(ctx, args[0], from, to, amount)
				})
			},
		},
		&cobra.Command{
			Use:   "approve [denom] [spender|pool] [amount]",
			Short: "Set the allowance of spender over --from's tokens",
			Long:  "Set the allowance of spender over --from's tokens. Use \"pool\" as the spender to approve the pool account.",
			Args:  cobra.ExactArgs(3),
			RunE: func(cmd *cobra.Command, args []string) error {
				spender, err := spenderArg(args[1])
				if err != nil {
					return err
				}
				amount, err := parseAmountArg("amount", args[2])
				if err != nil {
					return err
				}
				return runTx(cmd, opts, func(ctx sdk.Context, pawApp *app.App, from sdk.AccAddress) (interface{}, error) {
					return nil, pawApp.TokenKeeper.Approve(ctx, args[0], from, spender, amount)
				})
			},
		},
	)

	return cmd
}

func poolTxCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pool",
		Short: "Pool transactions",
	}

	swapCmd := &cobra.Command{
		Use:   "swap [token-in] [amount-in]",
		Short: "Sell amount-in of token-in for the other pooled asset",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amountIn, err := parseAmountArg("amount-in", args[1])
			if err != nil {
				return err
			}
			minOut, err := minAmountOutFlag(cmd)
			if err != nil {
				return err
			}
			return runTx(cmd, opts, func(ctx sdk.Context, pawApp *app.App, from sdk.AccAddress) (interface{}, error) {
				return poolkeeper.NewMsgServerImpl(pawApp.PoolKeeper).Swap(ctx,
					pooltypes.NewMsgSwap(from.String(), args[0], amountIn, minOut))
			})
		},
	}
	swapCmd.Flags().String(flagMinAmountOut, "0", "fail unless at least this much is received")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "init [asset-a] [asset-b]",
			Short: "Create the pool with --from as controller",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runTx(cmd, opts, func(ctx sdk.Context, pawApp *app.App, from sdk.AccAddress) (interface{}, error) {
					return poolkeeper.NewMsgServerImpl(pawApp.PoolKeeper).InitPool(ctx, &pooltypes.MsgInitPool{
						Controller: from.String(),
						AssetA:     args[0],
						AssetB:     args[1],
					})
				})
			},
		},
		&cobra.Command{
			Use:   "add-liquidity [amount-a] [amount-b]",
			Short: "Deposit both assets; --from must be the controller and have approved the pool",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				amountA, amountB, err := parseAmountPair(args)
				if err != nil {
					return err
				}
				return runTx(cmd, opts, func(ctx sdk.Context, pawApp *app.App, from sdk.AccAddress) (interface{}, error) {
					return poolkeeper.NewMsgServerImpl(pawApp.PoolKeeper).AddLiquidity(ctx, &pooltypes.MsgAddLiquidity{
						Controller: from.String(),
						AmountA:    amountA,
						AmountB:    amountB,
					})
				})
			},
		},
		&cobra.Command{
			Use:   "remove-liquidity [amount-a] [amount-b]",
			Short: "Withdraw both assets to --from, who must be the controller",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				amountA, amountB, err := parseAmountPair(args)
				if err != nil {
					return err
				}
				return runTx(cmd, opts, func(ctx sdk.Context, pawApp *app.App, from sdk.AccAddress) (interface{}, error) {
					return poolkeeper.NewMsgServerImpl(pawApp.PoolKeeper).RemoveLiquidity(ctx, &pooltypes.MsgRemoveLiquidity{
						Controller: from.String(),
						AmountA:    amountA,
						AmountB:    amountB,
					})
				})
			},
		},
		&cobra.Command{
			Use:   "swap-a-for-b [amount-in]",
			Short: "Sell asset A for asset B",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				amountIn, err := parseAmountArg("amount-in", args[0])
				if err != nil {
					return err
				}
				return runTx(cmd, opts, func(ctx sdk.Context, pawApp *app.App, from sdk.AccAddress) (interface{}, error) {
					out, err := pawApp.PoolKeeper.SwapAforB(ctx, from, amountIn)
					return map[string]string{"amount_out": out.String()}, err
				})
			},
		},
		&cobra.Command{
			Use:   "swap-b-for-a [amount-in]",
			Short: "Sell asset B for asset A",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				amountIn, err := parseAmountArg("amount-in", args[0])
				if err != nil {
					return err
				}
				return runTx(cmd, opts, func(ctx sdk.Context, pawApp *app.App, from sdk.AccAddress) (interface{}, error) {
					out, err := pawApp.PoolKeeper.SwapBforA(ctx, from, amountIn)
					return map[string]string{"amount_out": out.String()}, err
				})
			},
		},
		swapCmd,
	)

	return cmd
}

// parseAmountArg accepts a non-negative base-10 integer. Positivity is left
// to the keepers so the CLI reports the same errors as the API.
func parseAmountArg(name, s string) (math.Int, error) {
	amount, ok := math.NewIntFromString(s)
	if !ok || amount.IsNegative() {
		return math.Int{}, fmt.Errorf("invalid %s %q", name, s)
	}
	return amount, nil
}

func parseAmountPair(args []string) (math.Int, math.Int, error) {
	amountA, err := parseAmountArg("amount-a", args[0])
	if err != nil {
		return math.Int{}, math.Int{}, err
	}
	amountB, err := parseAmountArg("amount-b", args[1])
	if err != nil {
		return math.Int{}, math.Int{}, err
	}
	return amountA, amountB, nil
}

func minAmountOutFlag(cmd *cobra.Command) (math.Int, error) {
	s, err := cmd.Flags().GetString(flagMinAmountOut)
	if err != nil {
		return math.Int{}, err
	}
	return parseAmountArg(flagMinAmountOut, s)
}

func spenderArg(s string) (sdk.AccAddress, error) {
	if s == "pool" {
		return pooltypes.ModuleAddress, nil
	}
	addr, err := sdk.AccAddressFromBech32(s)
	if err != nil {
		return nil, fmt.Errorf("invalid spender: %w", err)
	}
	return addr, nil
}

package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"cosmossdk.io/log"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/paw-chain/pawswap/app"
)

const (
	flagHome     = "home"
	flagLogLevel = "log-level"
	flagFrom     = "from"
)

// rootOptions carries what PersistentPreRunE resolved for the subcommands.
type rootOptions struct {
	v      *viper.Viper
	home   string
	config app.Config
	logger log.Logger
}

// NewRootCmd creates the pawswapd command tree.
func NewRootCmd() *cobra.Command {
	app.SetConfig()

	opts := &rootOptions{v: viper.New()}

	rootCmd := &cobra.Command{
		Use:   "pawswapd",
		Short: "PAW two-asset liquidity pool node",
		Long: `pawswapd runs a single constant-product pool over two ledger tokens.

State lives in a local database under --home. Every tx subcommand commits
one version; query subcommands never write.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SetOut(cmd.OutOrStdout())
			cmd.SetErr(cmd.ErrOrStderr())

			home, err := cmd.Flags().GetString(flagHome)
			if err != nil {
				return err
			}
			opts.home = home

			if err := opts.v.BindPFlag("log.level", cmd.Flags().Lookup(flagLogLevel)); err != nil {
				return err
			}
			cfg, err := app.LoadConfig(opts.v, home)
			if err != nil {
				return err
			}
			opts.config = cfg

			opts.logger, err = cfg.NewLogger(cmd.ErrOrStderr())
			return err
		},
	}

	rootCmd.PersistentFlags().String(flagHome, app.DefaultNodeHome, "directory for config and data")
	rootCmd.PersistentFlags().String(flagLogLevel, app.DefaultConfig().Log.Level, "log level (trace|debug|info|warn|error)")

	rootCmd.AddCommand(
		InitCmd(opts),
		TxCmd(opts),
		QueryCmd(opts),
		ExportCmd(opts),
		ValidateGenesisCmd(opts),
		ServeCmd(opts),
	)

	return rootCmd
}

// openApp opens the node database and loads genesis.json on first use. The
// caller must Close the returned app.
func (o *rootOptions) openApp() (*app.App, error) {
	db, err := o.config.OpenDB(o.home)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	pawApp, err := app.New(o.logger, db, app.Options{CheckInvariants: o.config.Invariants.CheckEveryExec})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	if !pawApp.HasState() {
		genesis, err := readGenesis(app.GenesisPath(o.home))
		if err != nil {
			_ = pawApp.Close()
			return nil, err
		}
		if err := pawApp.InitChainFromGenesis(genesis); err != nil {
			_ = pawApp.Close()
			return nil, fmt.Errorf("failed to load genesis: %w", err)
		}
		o.logger.Info("genesis loaded", "version", pawApp.LastCommitID().Version)
	}

	return pawApp, nil
}

// withApp opens the app for the duration of fn.
func (o *rootOptions) withApp(fn func(pawApp *app.App) error) error {
	pawApp, err := o.openApp()
	if err != nil {
		return err
	}
	defer func() {
		if cerr := pawApp.Close(); cerr != nil {
			o.logger.Error("failed to close database", "error", cerr)
		}
	}()
	return fn(pawApp)
}

func readGenesis(path string) (app.GenesisState, error) {
	bz, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read genesis (run `pawswapd init` first): %w", err)
	}
	var genesis app.GenesisState
	if err := json.Unmarshal(bz, &genesis); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return genesis, nil
}

func fromAddress(cmd *cobra.Command) (sdk.AccAddress, error) {
	from, err := cmd.Flags().GetString(flagFrom)
	if err != nil {
		return nil, err
	}
	if from == "" {
		return nil, fmt.Errorf("--%s is required", flagFrom)
	}
	addr, err := sdk.AccAddressFromBech32(from)
	if err != nil {
		return nil, fmt.Errorf("invalid --%s address: %w", flagFrom, err)
	}
	return addr, nil
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	bz, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(bz))
	return err
}

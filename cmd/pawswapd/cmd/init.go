package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/spf13/cobra"

	"github.com/paw-chain/pawswap/app"
)

const (
	flagOverwrite     = "overwrite"
	flagController    = "controller"
	flagAssetA        = "asset-a"
	flagAssetB        = "asset-b"
	flagInitialSupply = "initial-supply"
	flagSwapFeeBps    = "swap-fee-bps"
)

// InitCmd returns a command that writes app.toml and genesis.json under home.
func InitCmd(opts *rootOptions) *cobra.Command {
	def := app.DefaultGenesisConfig(nil)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize node configuration and genesis",
		Long: `Write app.toml and a genesis that mints both pool tokens to the controller
and creates an empty pool over them.

Example:
  pawswapd init --controller paw1... --home ~/.pawswap
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			controllerStr, _ := cmd.Flags().GetString(flagController)
			controller, err := sdk.AccAddressFromBech32(controllerStr)
			if err != nil {
				return fmt.Errorf("invalid --%s: %w", flagController, err)
			}

			supplyStr, _ := cmd.Flags().GetString(flagInitialSupply)
			supply, ok := math.NewIntFromString(supplyStr)
			if !ok || supply.IsNegative() {
				return fmt.Errorf("invalid --%s %q", flagInitialSupply, supplyStr)
			}

			cfg := app.DefaultGenesisConfig(controller)
			cfg.AssetA, _ = cmd.Flags().GetString(flagAssetA)
			cfg.AssetB, _ = cmd.Flags().GetString(flagAssetB)
			cfg.SwapFeeBps, _ = cmd.Flags().GetUint32(flagSwapFeeBps)
			cfg.InitialSupply = supply

			genFile := app.GenesisPath(opts.home)
			overwrite, _ := cmd.Flags().GetBool(flagOverwrite)
			if !overwrite && fileExists(genFile) {
				return fmt.Errorf("genesis.json file already exists: %v", genFile)
			}

			genesis, err := app.NewGenesisStateFromConfig(cfg)
			if err != nil {
				return err
			}

			if err := app.WriteConfig(opts.home, opts.config); err != nil {
				return fmt.Errorf("failed to write app.toml: %w", err)
			}
			if err := writeGenesis(genFile, genesis); err != nil {
				return err
			}

			opts.logger.Info("node initialized",
				"home", opts.home,
				"controller", controller.String(),
				"asset_a", cfg.AssetA,
				"asset_b", cfg.AssetB,
			)
			return printJSON(cmd, map[string]string{
				"home":       opts.home,
				"genesis":    genFile,
				"controller": controller.String(),
			})
		},
	}

	cmd.Flags().String(flagController, "", "bech32 address of the pool controller and token owner (required)")
	cmd.Flags().String(flagAssetA, def.AssetA, "denom of the first pooled token")
	cmd.Flags().String(flagAssetB, def.AssetB, "denom of the second pooled token")
	cmd.Flags().String(flagInitialSupply, def.InitialSupply.String(), "supply of each token minted to the controller")
	cmd.Flags().Uint32(flagSwapFeeBps, def.SwapFeeBps, "swap fee in basis points")
	cmd.Flags().Bool(flagOverwrite, false, "overwrite the genesis.json file")
	_ = cmd.MarkFlagRequired(flagController)

	return cmd
}

func writeGenesis(path string, genesis app.GenesisState) error {
	bz, err := json.MarshalIndent(genesis, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return err
	}
	return os.WriteFile(path, bz, 0o600)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

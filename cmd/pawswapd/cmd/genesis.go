package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/paw-chain/pawswap/app"
)

const flagOutputDocument = "output-document"

// ExportCmd dumps the latest committed state as a genesis document.
func ExportCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export state to a genesis document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.withApp(func(pawApp *app.App) error {
				genesis, err := pawApp.ExportGenesis()
				if err != nil {
					return err
				}

				out, _ := cmd.Flags().GetString(flagOutputDocument)
				if out == "" {
					return printJSON(cmd, genesis)
				}
				if err := writeGenesis(out, genesis); err != nil {
					return err
				}
				opts.logger.Info("state exported", "file", out, "version", pawApp.LastCommitID().Version)
				return nil
			})
		},
	}
	cmd.Flags().String(flagOutputDocument, "", "write the genesis to this file instead of stdout")
	return cmd
}

// ValidateGenesisCmd checks a genesis file without touching the database.
func ValidateGenesisCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate-genesis [file]",
		Short: "Validate a genesis file, by default the one under --home",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := app.GenesisPath(opts.home)
			if len(args) == 1 {
				path = args[0]
			}
			genesis, err := readGenesis(path)
			if err != nil {
				return err
			}
			if err := genesis.Validate(); err != nil {
				return fmt.Errorf("invalid genesis %s: %w", path, err)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "File at %s is a valid genesis file\n", path)
			return err
		},
	}
}

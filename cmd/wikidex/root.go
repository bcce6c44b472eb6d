package main

import (
	"github.com/spf13/cobra"
)

// globalFlags holds the persistent flags shared by every subcommand: the
// config file and env file, the two file-based layers that sit above the
// built-in defaults, with each subcommand's own flags applying on top.
type globalFlags struct {
	configFile string
	envFile    string
}

func newRootCmd() *cobra.Command {
	var gf globalFlags

	root := &cobra.Command{
		Use:           "wikidex",
		Short:         "Build and query an out-of-core inverted index over a Wikipedia abstract dump",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.PersistentFlags().StringVar(&gf.configFile, "config", "wikidex.toml", "path to a TOML config file (optional)")
	root.PersistentFlags().StringVar(&gf.envFile, "env-file", ".env", "path to a .env file (optional)")

	root.AddCommand(newBuildCmd(&gf))
	root.AddCommand(newSearchCmd(&gf))
	root.AddCommand(newStatsCmd(&gf))
	return root
}

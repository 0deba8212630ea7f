// Package commands implements the fedpro-federate command-line interface.
package commands

import (
	"github.com/spf13/cobra"
)

var cfgFile string

// rootCmd is the base command when fedpro-federate is called without a
// subcommand.
var rootCmd = &cobra.Command{
	Use:   "fedpro-federate",
	Short: "Run an example FedPro federate",
	Long: `fedpro-federate is an example federate built on the fedpro-go client
library. It joins a federation execution, publishes and subscribes a small
object and interaction model, runs a bounded simulation loop, then resigns.

Use "fedpro-federate [command] --help" for more information about a command.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. Called once from main.main.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "fedpro-federate.yaml", "path to the federate's YAML configuration file")
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(listFederationsCmd)
	rootCmd.AddCommand(initCmd)
}

// GetConfigFile returns the config file path from the global --config flag.
func GetConfigFile() string {
	return cfgFile
}

package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a sample configuration file",
	Long: `Write a sample fedpro-federate configuration file to the path named by
--config (default: fedpro-federate.yaml in the current directory).`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite an existing config file")
}

func runInit(cmd *cobra.Command, args []string) error {
	path := GetConfigFile()
	if err := WriteConfig(DefaultConfig(), path, initForce); err != nil {
		return err
	}
	fmt.Printf("Configuration file written to: %s\n", path)
	fmt.Println("Edit it to point at your RTI bridge, then run: fedpro-federate run")
	return nil
}

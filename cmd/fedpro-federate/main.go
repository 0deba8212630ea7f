// Command fedpro-federate is an example console federate built on the
// fedpro-go client library.
//
// Usage:
//
//	fedpro-federate init                  write a sample config file
//	fedpro-federate run                    join and run the simulation loop
//	fedpro-federate list-federations       report known federation executions
//
// All subcommands read their settings from the YAML file named by
// --config (default: fedpro-federate.yaml).
package main

import (
	"fmt"
	"os"

	"github.com/makfedpro/fedpro-go/cmd/fedpro-federate/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

package cmd

import (
	"fmt"
	"os"

	"github.com/ValentinKolb/dGate/cmd/features"
	"github.com/spf13/cobra"
)

const (
	Version = "0.3.1"
)

var (

	// RootCmd represents the base command when called without any subcommands
	RootCmd = &cobra.Command{
		Use:   "dgate",
		Short: "cluster feature negotiation gate",
		Long: fmt.Sprintf(`dGate (v%s)

A feature negotiation gate for distributed key-value clusters: a per-node
registry of named capability flags that lets a mixed-version fleet roll out
behavior changes safely during rolling upgrades.`, Version),
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of dGate",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("dGate v%s\n", Version)
		},
	}
)

func init() {
	// Add Commands
	RootCmd.AddCommand(features.FeatureCommands)
	RootCmd.AddCommand(versionCmd)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

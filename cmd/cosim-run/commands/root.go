// Package commands implements the CLI commands for the cosim-run driver
// binary.
package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Version information injected at build time.
	Version = "dev"
	Commit  = "none"

	// Global flags.
	cfgFile string
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "cosim-run",
	Short: "Load and step a composite co-simulation container",
	Long: `cosim-run loads one composite co-simulation container from a resource
directory, drives it through SetupExperiment, EnterInitializationMode,
ExitInitializationMode, a fixed number of DoSteps, then Terminate and
FreeInstance.

Use "cosim-run run --help" for the runner's flags.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. Called once by main.main.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (YAML)")
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the cosim-run version",
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.Printf("cosim-run %s (%s)\n", Version, Commit)
		return nil
	},
}

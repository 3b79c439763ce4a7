// Command cosim-run is a small, non-interactive driver binary that loads one
// composite co-simulation container from a resource directory and steps it
// through the standard FMI2 co-simulation lifecycle: SetupExperiment,
// EnterInitializationMode, ExitInitializationMode, a fixed number of
// DoSteps, then Terminate and FreeInstance. It exists to exercise
// pkg/container end to end outside of a test binary, the way the teacher's
// cmd/dfs exercises its own server package from a cobra root command.
package main

import (
	"fmt"
	"os"

	"github.com/fmi2go/cosim-container/cmd/cosim-run/commands"
)

var (
	version = "dev"
	commit  = "none"
)

func main() {
	commands.Version = version
	commands.Commit = commit

	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

package slave

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fmi2go/cosim-container/internal/abi"
	"github.com/fmi2go/cosim-container/internal/logging"
	"github.com/fmi2go/cosim-container/pkg/config"
	"github.com/fmi2go/cosim-container/pkg/dynlib"
)

// Load resolves spec's shared library under containerDir, instantiates it,
// and wraps the result as a Slave. The slave's own log lines are re-tagged
// with its identifier via logging.ForSlave, matching §6's "embedded-slave
// messages are re-prefixed with the slave's identifier."
func Load(containerDir string, index int, spec config.SlaveSpec, wire config.SlaveIO, instanceName string, visible, loggingOn, profiling bool, parentLog *slog.Logger) (*Slave, error) {
	dir := filepath.Join(containerDir, spec.Directory)

	lib, err := dynlib.Load(dir, spec.Identifier)
	if err != nil {
		return nil, fmt.Errorf("slave %s: %w", spec.Identifier, err)
	}

	slaveLog := logging.ForSlave(parentLog, spec.Identifier)
	vtable := lib.Vtable()

	callbacks := abi.CallbackFunctions{
		ComponentName: spec.Identifier,
		Logger: func(instance, category string, status abi.Status, message string) {
			if status == abi.OK && !loggingOn {
				return
			}
			slaveLog.Info(message, "reported_instance", instance, "category", category, "status", status.String())
		},
	}

	component, ok := vtable.Instantiate(instanceName, abi.CoSimulation, spec.GUID, lib.ResourceLocation(), callbacks, visible, loggingOn)
	if !ok {
		lib.Close()
		return nil, fmt.Errorf("slave %s: instantiate returned null component", spec.Identifier)
	}

	return New(index, spec, wire, vtable, component, lib, profiling, slaveLog), nil
}

// Package container implements the composite slave's public facade: the
// same standard co-simulation ABI the embedded slaves themselves expose,
// delegating lifecycle calls and stepping to pkg/orchestrator and typed
// I/O to pkg/router.
package container

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/fmi2go/cosim-container/internal/abi"
	"github.com/fmi2go/cosim-container/internal/logging"
	"github.com/fmi2go/cosim-container/pkg/config"
	"github.com/fmi2go/cosim-container/pkg/metrics"
	"github.com/fmi2go/cosim-container/pkg/orchestrator"
	"github.com/fmi2go/cosim-container/pkg/router"
	"github.com/fmi2go/cosim-container/pkg/slave"
)

// defaultTolerance is used when the host's SetupExperiment does not define
// one, matching the reference container's own 1e-8 default.
const defaultTolerance = 1.0e-8

// fileSchemePrefix is the URL scheme every resource location arrives with.
const fileSchemePrefix = "file://"

// Container is the composite co-simulation slave.
type Container struct {
	InstanceName string
	GUID         string
	debug        bool

	orch *orchestrator.Orchestrator
	log  *slog.Logger
}

// Instantiate parses container.txt at resourceLocation, loads and
// instantiates every declared slave, and wires the router and
// orchestrator. resourceLocation is a file:// URL; the scheme is stripped
// to obtain the filesystem directory (§4.1).
//
// reg may be nil, in which case the composite runs with no Prometheus
// instrumentation.
func Instantiate(ctx context.Context, instanceName, guid, resourceLocation string, visible, loggingOn bool, reg prometheus.Registerer) (*Container, error) {
	dir, ok := strings.CutPrefix(resourceLocation, fileSchemePrefix)
	if !ok {
		return nil, fmt.Errorf("container: resource location %q is not a file:// URL", resourceLocation)
	}

	log := logging.Tagged(instanceName)

	model, err := config.Parse(dir + "/container.txt")
	if err != nil {
		return nil, fmt.Errorf("container: %w", err)
	}

	slaves, err := orchestrator.LoadSlaves(ctx, dir, model, instanceName, visible, loggingOn, log)
	if err != nil {
		return nil, fmt.Errorf("container: %w", err)
	}

	rtr := &router.Router{
		Buffers:  router.NewBuffers(model.LocalReals, model.LocalIntegers, model.LocalBooleans, model.LocalStrings),
		Reals:    model.PortReals,
		Integers: model.PortIntegers,
		Booleans: model.PortBooleans,
		Strings:  model.PortStrings,
		Slaves:   toSlaveIO(slaves),
	}

	m := metrics.New(reg)
	orch := orchestrator.New(model, slaves, rtr, defaultTolerance, m, log)

	return &Container{
		InstanceName: instanceName,
		GUID:         guid,
		debug:        loggingOn,
		orch:         orch,
		log:          log,
	}, nil
}

func toSlaveIO(slaves []*slave.Slave) []router.SlaveIO {
	out := make([]router.SlaveIO, len(slaves))
	for i, s := range slaves {
		out[i] = s
	}
	return out
}

// FreeInstance tears down every slave and releases the container.
func (c *Container) FreeInstance() error {
	return c.orch.Unload()
}

// GetTypesPlatform returns the platform compatibility string the composite
// reports, a constant matching the "same ABI" guarantee of §6.
func (c *Container) GetTypesPlatform() string { return "default" }

// GetVersion returns the FMI version string this composite implements.
func (c *Container) GetVersion() string { return "2.0" }

// SetDebugLogging records loggingOn in the container's debug flag;
// categories is unused and accepted only for ABI parity. The flag is not
// forwarded: whether an embedded slave's OK-status messages are suppressed
// stays decided by the loggingOn value given to Instantiate.
func (c *Container) SetDebugLogging(loggingOn bool, categories []string) abi.Status {
	c.debug = loggingOn
	return abi.OK
}

func (c *Container) SetupExperiment(toleranceDefined bool, tolerance, startTime float64) abi.Status {
	return c.orch.SetupExperiment(toleranceDefined, tolerance, startTime)
}

func (c *Container) EnterInitializationMode() abi.Status { return c.orch.EnterInitializationMode() }
func (c *Container) ExitInitializationMode() abi.Status  { return c.orch.ExitInitializationMode() }
func (c *Container) Terminate() abi.Status               { return c.orch.Terminate() }
func (c *Container) Reset() abi.Status                   { return c.orch.Reset() }

// DoStep advances the composite by h from t0; see pkg/orchestrator.
func (c *Container) DoStep(ctx context.Context, t0, h float64, noRollback bool) abi.Status {
	return c.orch.DoStep(ctx, t0, h, noRollback)
}

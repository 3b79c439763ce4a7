package container

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fmi2go/cosim-container/internal/abi"
	"github.com/fmi2go/cosim-container/internal/stubslave"
	"github.com/fmi2go/cosim-container/pkg/config"
	"github.com/fmi2go/cosim-container/pkg/orchestrator"
	"github.com/fmi2go/cosim-container/pkg/router"
	"github.com/fmi2go/cosim-container/pkg/slave"
)

// newTestContainer builds a Container around a stub-backed orchestrator,
// bypassing Instantiate (and so pkg/dynlib) entirely: the facade and
// lifecycle methods under test only need a working *orchestrator.Orchestrator,
// not a real dynamically loaded slave.
func newTestContainer(t *testing.T) *Container {
	t.Helper()
	wire := config.SlaveIO{
		InReals:  []config.WireEntry{{ContainerVR: 0, SlaveVR: 0}},
		OutReals: []config.WireEntry{{ContainerVR: 0, SlaveVR: 1}},
	}
	s := stubslave.NewSlave(0, "facade", wire, stubslave.Options{InputVR: 0, OutputVR: 1, Offset: 1}, false)

	rtr := &router.Router{
		Buffers: router.NewBuffers(1, 0, 0, 0),
		Reals:   config.PortTable{{SlaveIndex: -1}},
	}
	model := &config.Model{TimeStep: 0.1}
	orch := orchestrator.New(model, []*slave.Slave{s}, rtr, 1e-8, nil, nil)

	return &Container{InstanceName: "test", GUID: "guid", orch: orch}
}

func TestContainer_GetSetReal_DispatchThroughRouter(t *testing.T) {
	c := newTestContainer(t)
	require.Equal(t, abi.OK, c.SetReal([]abi.ValueReference{0}, []float64{4.0}))
	out := make([]float64, 1)
	require.Equal(t, abi.OK, c.GetReal([]abi.ValueReference{0}, out))
	assert.Equal(t, 4.0, out[0])
}

func TestContainer_GetRealStatus_OnlyLastSuccessfulTimeSupported(t *testing.T) {
	c := newTestContainer(t)
	require.Equal(t, abi.OK, c.DoStep(context.Background(), 0, 0.1, false))

	value, status := c.GetRealStatus(abi.LastSuccessfulTime)
	require.Equal(t, abi.OK, status)
	assert.Equal(t, 0.1, value)

	_, status = c.GetRealStatus(abi.PendingStatus)
	assert.Equal(t, abi.Error, status)
}

func TestContainer_GetBooleanStatus_OnlyTerminatedSupported(t *testing.T) {
	c := newTestContainer(t)
	_, status := c.GetBooleanStatus(abi.Terminated)
	assert.Equal(t, abi.OK, status)

	_, status = c.GetBooleanStatus(abi.PendingStatus)
	assert.Equal(t, abi.Error, status)
}

func TestContainer_SetDebugLogging_TogglesDebugFlag(t *testing.T) {
	c := newTestContainer(t)
	assert.Equal(t, abi.OK, c.SetDebugLogging(true, nil))
	assert.True(t, c.debug)
	assert.Equal(t, abi.OK, c.SetDebugLogging(false, nil))
	assert.False(t, c.debug)
}

func TestContainer_GetTypesPlatformAndVersion(t *testing.T) {
	c := newTestContainer(t)
	assert.Equal(t, "default", c.GetTypesPlatform())
	assert.Equal(t, "2.0", c.GetVersion())
}

func TestContainer_Lifecycle_DelegatesToOrchestrator(t *testing.T) {
	c := newTestContainer(t)
	require.Equal(t, abi.OK, c.SetupExperiment(true, 1e-8, 0))
	require.Equal(t, abi.OK, c.EnterInitializationMode())
	require.Equal(t, abi.OK, c.ExitInitializationMode())
	require.Equal(t, abi.OK, c.DoStep(context.Background(), 0, 0.1, false))
	require.Equal(t, abi.OK, c.Terminate())
	require.NoError(t, c.FreeInstance())
}

func TestContainer_UnsupportedOperationsReturnError(t *testing.T) {
	c := newTestContainer(t)

	assert.Equal(t, abi.Error, c.GetString(nil, nil))
	assert.Equal(t, abi.Error, c.SetString(nil, nil))
	assert.Equal(t, abi.Error, c.CancelStep())

	_, status := c.GetIntegerStatus(abi.PendingStatus)
	assert.Equal(t, abi.Error, status)

	_, status = c.GetStringStatus(abi.PendingStatus)
	assert.Equal(t, abi.Error, status)

	_, status = c.GetFMUstate()
	assert.Equal(t, abi.Error, status)
	assert.Equal(t, abi.Error, c.SetFMUstate(nil))
	assert.Equal(t, abi.Error, c.FreeFMUstate(nil))

	_, status = c.SerializeFMUstate(nil)
	assert.Equal(t, abi.Error, status)
	_, status = c.DeSerializeFMUstate(nil)
	assert.Equal(t, abi.Error, status)

	_, status = c.GetDirectionalDerivative(nil, nil, nil)
	assert.Equal(t, abi.Error, status)
	assert.Equal(t, abi.Error, c.SetRealInputDerivatives(nil, nil, nil))
	_, status = c.GetRealOutputDerivatives(nil, nil)
	assert.Equal(t, abi.Error, status)
}

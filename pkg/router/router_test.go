package router

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fmi2go/cosim-container/internal/abi"
	"github.com/fmi2go/cosim-container/pkg/config"
)

// fakeSlave is a minimal SlaveIO used to test routing without pulling in
// the dynamic-library loader or the worker/rendezvous machinery at all.
type fakeSlave struct {
	reals    map[abi.ValueReference]float64
	integers map[abi.ValueReference]int32
	booleans map[abi.ValueReference]bool
}

func newFakeSlave() *fakeSlave {
	return &fakeSlave{
		reals:    map[abi.ValueReference]float64{},
		integers: map[abi.ValueReference]int32{},
		booleans: map[abi.ValueReference]bool{},
	}
}

func (f *fakeSlave) GetReal(vr abi.ValueReference) (float64, abi.Status) { return f.reals[vr], abi.OK }
func (f *fakeSlave) SetReal(vr abi.ValueReference, v float64) abi.Status {
	f.reals[vr] = v
	return abi.OK
}
func (f *fakeSlave) GetInteger(vr abi.ValueReference) (int32, abi.Status) {
	return f.integers[vr], abi.OK
}
func (f *fakeSlave) SetInteger(vr abi.ValueReference, v int32) abi.Status {
	f.integers[vr] = v
	return abi.OK
}
func (f *fakeSlave) GetBoolean(vr abi.ValueReference) (bool, abi.Status) {
	return f.booleans[vr], abi.OK
}
func (f *fakeSlave) SetBoolean(vr abi.ValueReference, v bool) abi.Status {
	f.booleans[vr] = v
	return abi.OK
}

func TestRouter_LocalVRIsomorphism(t *testing.T) {
	r := &Router{
		Buffers: NewBuffers(4, 0, 0, 0),
		Reals:   config.PortTable{{SlaveIndex: -1}, {SlaveIndex: -1}, {SlaveIndex: -1}, {SlaveIndex: -1}},
	}
	status := r.SetReal(2, 3.14)
	require.Equal(t, abi.OK, status)
	value, status := r.GetReal(2)
	require.Equal(t, abi.OK, status)
	assert.Equal(t, 3.14, value)
}

func TestRouter_PortVRRoutesToSlave(t *testing.T) {
	slave := newFakeSlave()
	r := &Router{
		Buffers: NewBuffers(0, 0, 0, 0),
		Reals:   config.PortTable{{SlaveIndex: 0, SlaveVR: 7}},
		Slaves:  []SlaveIO{slave},
	}
	status := r.SetReal(0, 42.0)
	require.Equal(t, abi.OK, status)
	assert.Equal(t, 42.0, slave.reals[7])

	value, status := r.GetReal(0)
	require.Equal(t, abi.OK, status)
	assert.Equal(t, 42.0, value)
}

func TestRouter_OutOfRangeSlaveIndexIsError(t *testing.T) {
	r := &Router{
		Buffers: NewBuffers(0, 0, 0, 0),
		Reals:   config.PortTable{{SlaveIndex: 5, SlaveVR: 0}},
		Slaves:  nil,
	}
	_, status := r.GetReal(0)
	assert.Equal(t, abi.Error, status)
}

func TestRouter_BatchGetSetReturnsFirstFailingStatus(t *testing.T) {
	r := &Router{
		Buffers: NewBuffers(2, 0, 0, 0),
		Reals:   config.PortTable{{SlaveIndex: -1}, {SlaveIndex: 9}},
	}
	out := make([]float64, 2)
	status := r.GetReals([]abi.ValueReference{0, 1}, out)
	assert.Equal(t, abi.Error, status)
}

func TestApplyInputsAndCollectOutputs_Wiring(t *testing.T) {
	slave := newFakeSlave()
	r := &Router{Buffers: NewBuffers(1, 0, 0, 0)}
	r.Buffers.Reals[0] = 5.0

	wiring := config.SlaveIO{
		InReals:  []config.WireEntry{{ContainerVR: 0, SlaveVR: 2}},
		OutReals: []config.WireEntry{{ContainerVR: 0, SlaveVR: 2}},
	}

	status := r.ApplyInputs(slave, wiring)
	require.Equal(t, abi.OK, status)
	assert.Equal(t, 5.0, slave.reals[2])

	slave.reals[2] = 99.0 // slave "steps" and produces a new output
	status = r.CollectOutputs(slave, wiring)
	require.Equal(t, abi.OK, status)
	assert.Equal(t, 99.0, r.Buffers.Reals[0])
}

func TestApplyStartValues_AfterEnterInitialization(t *testing.T) {
	slave := newFakeSlave()
	slave.reals[3] = 7.0 // slave's own default

	wiring := config.SlaveIO{
		StartReals: []config.StartValue[float64]{{VR: 3, Value: 3.0}},
	}
	r := &Router{}
	status := r.ApplyStartValues(slave, wiring)
	require.Equal(t, abi.OK, status)
	assert.Equal(t, 3.0, slave.reals[3])
}

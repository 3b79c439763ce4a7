// Package router implements the value-reference translation layer: the
// container's flat typed buffers, the four port-translation tables, and the
// Get/Set dispatch that resolves a container VR to either a local buffer
// slot or a specific slave's own value reference.
//
// The four primitive types (Real/Integer/Boolean/String) are kept as
// parallel fields: Buffers and Router each hold one field per type. The
// dispatch is not generic over the type; each Get/Set function below is
// written out once per type, and strings have none.
package router

import (
	"fmt"

	"github.com/fmi2go/cosim-container/internal/abi"
	"github.com/fmi2go/cosim-container/pkg/config"
)

// SlaveIO is what the router needs from a single slave: typed single-value
// Get/Set. pkg/slave.Slave implements this; tests can implement it directly
// against a stub without touching the dynamic-library loader at all.
type SlaveIO interface {
	GetReal(vr abi.ValueReference) (float64, abi.Status)
	SetReal(vr abi.ValueReference, value float64) abi.Status
	GetInteger(vr abi.ValueReference) (int32, abi.Status)
	SetInteger(vr abi.ValueReference, value int32) abi.Status
	GetBoolean(vr abi.ValueReference) (bool, abi.Status)
	SetBoolean(vr abi.ValueReference, value bool) abi.Status
}

// Buffers holds the container's own typed variable storage, sized per
// n_local_* from container.txt. These buffers double as the Jacobi mailbox:
// a slave's Out-list writes here, and another slave's In-list reads the
// same slots on the next sub-step.
type Buffers struct {
	Reals    []float64
	Integers []int32
	Booleans []bool
	Strings  []string
}

// NewBuffers allocates zero-initialized (null for strings) typed buffers.
func NewBuffers(nReals, nIntegers, nBooleans, nStrings int) Buffers {
	return Buffers{
		Reals:    make([]float64, nReals),
		Integers: make([]int32, nIntegers),
		Booleans: make([]bool, nBooleans),
		Strings:  make([]string, nStrings),
	}
}

// Router dispatches typed Get/Set over a container's port tables, buffers
// and slaves.
type Router struct {
	Buffers Buffers

	Reals    config.PortTable
	Integers config.PortTable
	Booleans config.PortTable
	Strings  config.PortTable

	// Slaves is indexed by PortEntry.SlaveIndex for non-local entries.
	Slaves []SlaveIO
}

func (r *Router) slave(index int32) (SlaveIO, error) {
	if index < 0 || int(index) >= len(r.Slaves) {
		return nil, fmt.Errorf("router: slave index %d out of range", index)
	}
	return r.Slaves[index], nil
}

// GetReal resolves container VR vr to a local buffer read or a slave Get.
func (r *Router) GetReal(vr abi.ValueReference) (float64, abi.Status) {
	entry := r.Reals[vr]
	if entry.Local() {
		return r.Buffers.Reals[vr], abi.OK
	}
	s, err := r.slave(entry.SlaveIndex)
	if err != nil {
		return 0, abi.Error
	}
	return s.GetReal(entry.SlaveVR)
}

// SetReal resolves container VR vr to a local buffer write or a slave Set.
func (r *Router) SetReal(vr abi.ValueReference, value float64) abi.Status {
	entry := r.Reals[vr]
	if entry.Local() {
		r.Buffers.Reals[vr] = value
		return abi.OK
	}
	s, err := r.slave(entry.SlaveIndex)
	if err != nil {
		return abi.Error
	}
	return s.SetReal(entry.SlaveVR, value)
}

func (r *Router) GetInteger(vr abi.ValueReference) (int32, abi.Status) {
	entry := r.Integers[vr]
	if entry.Local() {
		return r.Buffers.Integers[vr], abi.OK
	}
	s, err := r.slave(entry.SlaveIndex)
	if err != nil {
		return 0, abi.Error
	}
	return s.GetInteger(entry.SlaveVR)
}

func (r *Router) SetInteger(vr abi.ValueReference, value int32) abi.Status {
	entry := r.Integers[vr]
	if entry.Local() {
		r.Buffers.Integers[vr] = value
		return abi.OK
	}
	s, err := r.slave(entry.SlaveIndex)
	if err != nil {
		return abi.Error
	}
	return s.SetInteger(entry.SlaveVR, value)
}

func (r *Router) GetBoolean(vr abi.ValueReference) (bool, abi.Status) {
	entry := r.Booleans[vr]
	if entry.Local() {
		return r.Buffers.Booleans[vr], abi.OK
	}
	s, err := r.slave(entry.SlaveIndex)
	if err != nil {
		return false, abi.Error
	}
	return s.GetBoolean(entry.SlaveVR)
}

func (r *Router) SetBoolean(vr abi.ValueReference, value bool) abi.Status {
	entry := r.Booleans[vr]
	if entry.Local() {
		r.Buffers.Booleans[vr] = value
		return abi.OK
	}
	s, err := r.slave(entry.SlaveIndex)
	if err != nil {
		return abi.Error
	}
	return s.SetBoolean(entry.SlaveVR, value)
}

// GetReals reads len(vr) values into out, returning the first failing
// status. String I/O has no corresponding method: it is parsed (pkg/config)
// but never routed, per the source's own unsupported-string-wiring design.
func (r *Router) GetReals(vr []abi.ValueReference, out []float64) abi.Status {
	for i, v := range vr {
		value, status := r.GetReal(v)
		if status != abi.OK {
			return status
		}
		out[i] = value
	}
	return abi.OK
}

func (r *Router) SetReals(vr []abi.ValueReference, in []float64) abi.Status {
	for i, v := range vr {
		if status := r.SetReal(v, in[i]); status != abi.OK {
			return status
		}
	}
	return abi.OK
}

func (r *Router) GetIntegers(vr []abi.ValueReference, out []int32) abi.Status {
	for i, v := range vr {
		value, status := r.GetInteger(v)
		if status != abi.OK {
			return status
		}
		out[i] = value
	}
	return abi.OK
}

func (r *Router) SetIntegers(vr []abi.ValueReference, in []int32) abi.Status {
	for i, v := range vr {
		if status := r.SetInteger(v, in[i]); status != abi.OK {
			return status
		}
	}
	return abi.OK
}

func (r *Router) GetBooleans(vr []abi.ValueReference, out []bool) abi.Status {
	for i, v := range vr {
		value, status := r.GetBoolean(v)
		if status != abi.OK {
			return status
		}
		out[i] = value
	}
	return abi.OK
}

func (r *Router) SetBooleans(vr []abi.ValueReference, in []bool) abi.Status {
	for i, v := range vr {
		if status := r.SetBoolean(v, in[i]); status != abi.OK {
			return status
		}
	}
	return abi.OK
}

package router

import (
	"github.com/fmi2go/cosim-container/internal/abi"
	"github.com/fmi2go/cosim-container/pkg/config"
)

// ApplyInputs pushes the container buffer values named by wiring's In-lists
// into slave s, return-fasting on the first failing status. String inputs
// are never applied: string I/O is parsed but not routed.
func (r *Router) ApplyInputs(s SlaveIO, wiring config.SlaveIO) abi.Status {
	for _, e := range wiring.InReals {
		if status := s.SetReal(e.SlaveVR, r.Buffers.Reals[e.ContainerVR]); status != abi.OK {
			return status
		}
	}
	for _, e := range wiring.InIntegers {
		if status := s.SetInteger(e.SlaveVR, r.Buffers.Integers[e.ContainerVR]); status != abi.OK {
			return status
		}
	}
	for _, e := range wiring.InBooleans {
		if status := s.SetBoolean(e.SlaveVR, r.Buffers.Booleans[e.ContainerVR]); status != abi.OK {
			return status
		}
	}
	return abi.OK
}

// CollectOutputs pulls slave s's Out-list values into the container
// buffers, return-fasting on the first failing status.
func (r *Router) CollectOutputs(s SlaveIO, wiring config.SlaveIO) abi.Status {
	for _, e := range wiring.OutReals {
		value, status := s.GetReal(e.SlaveVR)
		if status != abi.OK {
			return status
		}
		r.Buffers.Reals[e.ContainerVR] = value
	}
	for _, e := range wiring.OutIntegers {
		value, status := s.GetInteger(e.SlaveVR)
		if status != abi.OK {
			return status
		}
		r.Buffers.Integers[e.ContainerVR] = value
	}
	for _, e := range wiring.OutBooleans {
		value, status := s.GetBoolean(e.SlaveVR)
		if status != abi.OK {
			return status
		}
		r.Buffers.Booleans[e.ContainerVR] = value
	}
	return abi.OK
}

// ApplyStartValues applies wiring's Start-lists to slave s by calling its
// typed Set once per entry. Must run after EnterInitializationMode so host
// tools that re-apply their own start values during that call don't
// clobber these overrides (§4.4). String start values are parsed but never
// applied, matching the unsupported-string-routing behavior everywhere
// else in the router.
func (r *Router) ApplyStartValues(s SlaveIO, wiring config.SlaveIO) abi.Status {
	for _, sv := range wiring.StartReals {
		if status := s.SetReal(sv.VR, sv.Value); status != abi.OK {
			return status
		}
	}
	for _, sv := range wiring.StartIntegers {
		if status := s.SetInteger(sv.VR, sv.Value); status != abi.OK {
			return status
		}
	}
	for _, sv := range wiring.StartBooleans {
		if status := s.SetBoolean(sv.VR, sv.Value); status != abi.OK {
			return status
		}
	}
	return abi.OK
}

package container

import "github.com/fmi2go/cosim-container/internal/abi"

// GetReal/SetReal/GetInteger/SetInteger/GetBoolean/SetBoolean dispatch
// through the router: container-local VRs hit the local buffer, port VRs
// hit the targeted slave. Each returns the first failing status.

func (c *Container) GetReal(vr []abi.ValueReference, out []float64) abi.Status {
	return c.orch.Router.GetReals(vr, out)
}

func (c *Container) SetReal(vr []abi.ValueReference, in []float64) abi.Status {
	return c.orch.Router.SetReals(vr, in)
}

func (c *Container) GetInteger(vr []abi.ValueReference, out []int32) abi.Status {
	return c.orch.Router.GetIntegers(vr, out)
}

func (c *Container) SetInteger(vr []abi.ValueReference, in []int32) abi.Status {
	return c.orch.Router.SetIntegers(vr, in)
}

func (c *Container) GetBoolean(vr []abi.ValueReference, out []bool) abi.Status {
	return c.orch.Router.GetBooleans(vr, out)
}

func (c *Container) SetBoolean(vr []abi.ValueReference, in []bool) abi.Status {
	return c.orch.Router.SetBooleans(vr, in)
}

// GetRealStatus implements fmi2GetRealStatus. Only LastSuccessfulTime is
// supported; every other status kind is an unsupported operation.
func (c *Container) GetRealStatus(kind abi.StatusKind) (float64, abi.Status) {
	if kind != abi.LastSuccessfulTime {
		return 0, abi.Error
	}
	return c.orch.LastSuccessfulTime()
}

// GetBooleanStatus implements fmi2GetBooleanStatus. Only Terminated is
// supported; every other status kind is an unsupported operation.
func (c *Container) GetBooleanStatus(kind abi.StatusKind) (bool, abi.Status) {
	if kind != abi.Terminated {
		return false, abi.Error
	}
	return c.orch.Terminated()
}

package container

import "github.com/fmi2go/cosim-container/internal/abi"

// The operations below are explicit non-goals (§1, §7): asynchronous/
// pending-step semantics, rollback/state serialization, directional
// derivatives, string I/O routing, input-derivative handling, and
// CancelStep. Every one of them returns Error with no state change rather
// than silently succeeding or panicking.

func (c *Container) GetString([]abi.ValueReference, []string) abi.Status {
	return abi.Error
}

func (c *Container) SetString([]abi.ValueReference, []string) abi.Status {
	return abi.Error
}

func (c *Container) CancelStep() abi.Status {
	return abi.Error
}

func (c *Container) GetIntegerStatus(abi.StatusKind) (int32, abi.Status) {
	return 0, abi.Error
}

func (c *Container) GetStringStatus(abi.StatusKind) (string, abi.Status) {
	return "", abi.Error
}

func (c *Container) GetFMUstate() (any, abi.Status) {
	return nil, abi.Error
}

func (c *Container) SetFMUstate(any) abi.Status {
	return abi.Error
}

func (c *Container) FreeFMUstate(any) abi.Status {
	return abi.Error
}

func (c *Container) SerializeFMUstate(any) ([]byte, abi.Status) {
	return nil, abi.Error
}

func (c *Container) DeSerializeFMUstate([]byte) (any, abi.Status) {
	return nil, abi.Error
}

func (c *Container) GetDirectionalDerivative([]abi.ValueReference, []abi.ValueReference, []float64) ([]float64, abi.Status) {
	return nil, abi.Error
}

func (c *Container) SetRealInputDerivatives([]abi.ValueReference, []int32, []float64) abi.Status {
	return abi.Error
}

func (c *Container) GetRealOutputDerivatives([]abi.ValueReference, []int32) ([]float64, abi.Status) {
	return nil, abi.Error
}

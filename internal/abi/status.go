// Package abi defines the FMI2 co-simulation slave ABI as a Go-native
// vtable, independent of whether the concrete slave behind it is a
// dynamically loaded shared library (pkg/dynlib) or an in-process stub
// (internal/stubslave). Nothing in this package touches cgo or purego; it
// only describes shapes.
package abi

import "fmt"

// Status is the five-level FMI2 status enum, ordered from best to worst.
type Status int

const (
	OK Status = iota
	Warning
	Discard
	Error
	Fatal
)

func (s Status) String() string {
	switch s {
	case OK:
		return "OK"
	case Warning:
		return "Warning"
	case Discard:
		return "Discard"
	case Error:
		return "Error"
	case Fatal:
		return "Fatal"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Worse reports whether s is a strictly worse outcome than other.
func (s Status) Worse(other Status) bool {
	return s > other
}

// Type is the FMI instantiation type. Only CoSimulation is meaningful here;
// ModelExchange slaves are out of scope for a co-simulation container.
type Type int

const (
	ModelExchange Type = iota
	CoSimulation
)

// StatusKind selects which status value Get*Status asks for, matching
// fmi2StatusKind.
type StatusKind int

const (
	DoStepStatus StatusKind = iota
	PendingStatus
	LastSuccessfulTime
	Terminated
)

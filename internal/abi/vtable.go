package abi

// ValueReference identifies one scalar variable within a slave's own
// variable space. It is always local to a single slave; the composite's
// value-reference space is a distinct, container-wide numbering translated
// by pkg/router.
type ValueReference = uint32

// Component is the opaque handle a slave returns from Instantiate and
// expects back on every subsequent call, matching fmi2Component. For a
// dynamically loaded slave it is the raw pointer the library returned,
// carried as a uintptr by pkg/dynlib; for an in-process stub it can be any
// value the stub chooses to hand back to itself.
type Component uintptr

// LoggerCallback mirrors fmi2CallbackLogger: a slave reports a log message
// tagged with its own instance name, category and status.
type LoggerCallback func(instanceName, category string, status Status, message string)

// CallbackFunctions mirrors fmi2CallbackFunctions, trimmed to the fields a
// pure Go host can meaningfully supply. Memory (de)allocation callbacks are
// not exposed: a Go host has no use for handing a slave a malloc/free pair,
// and every FMI reference implementation tolerates a null allocator struct
// member for embedded components that don't need one.
type CallbackFunctions struct {
	Logger        LoggerCallback
	StepFinished  func(status Status)
	ComponentName string
}

// Vtable is the fixed set of entry points a co-simulation slave exposes,
// resolved once at load time. It deliberately mirrors the FMI2 function
// table shape rather than an interface with dynamic dispatch: a slave is a
// flat table of function pointers, not a hierarchy of implementations, and
// keeping the Go type a struct of funcs makes both the dynamic-library
// adapter and the in-process stub assign it the same way.
//
// Every field is required except where noted; a dynamically loaded slave
// that is missing an optional symbol leaves that field nil, and the caller
// has to know it may not invoke it.
type Vtable struct {
	// GetTypesPlatform and GetVersion are optional informational calls.
	GetTypesPlatform func() string
	GetVersion       func() string

	// SetDebugLogging is optional.
	SetDebugLogging func(c Component, loggingOn bool, categories []string) Status

	Instantiate  func(instanceName string, fmuType Type, guid string, resourceLocation string, callbacks CallbackFunctions, visible, loggingOn bool) (Component, bool)
	FreeInstance func(c Component)

	SetupExperiment         func(c Component, toleranceDefined bool, tolerance float64, startTime float64, stopTimeDefined bool, stopTime float64) Status
	EnterInitializationMode func(c Component) Status
	ExitInitializationMode  func(c Component) Status
	Terminate               func(c Component) Status
	Reset                   func(c Component) Status

	GetReal    func(c Component, vr []ValueReference, value []float64) Status
	GetInteger func(c Component, vr []ValueReference, value []int32) Status
	GetBoolean func(c Component, vr []ValueReference, value []bool) Status
	SetReal    func(c Component, vr []ValueReference, value []float64) Status
	SetInteger func(c Component, vr []ValueReference, value []int32) Status
	SetBoolean func(c Component, vr []ValueReference, value []bool) Status

	// GetString/SetString are optional: the composite never routes string
	// variables (see pkg/router), but a slave may still expose them.
	GetString func(c Component, vr []ValueReference, value []string) Status
	SetString func(c Component, vr []ValueReference, value []string) Status

	DoStep func(c Component, currentCommunicationPoint, communicationStepSize float64, noSetFMUStatePriorToCurrentPoint bool) Status
	// CancelStep is optional.
	CancelStep func(c Component) Status

	// GetRealStatus and GetBooleanStatus are required by this composite
	// (it implements fmi2LastSuccessfulTime and fmi2Terminated on top of
	// them). IntegerStatus/GetStringStatus are optional and unused.
	GetRealStatus    func(c Component, kind StatusKind) (float64, Status)
	IntegerStatus    func(c Component, kind StatusKind) (int32, Status)
	GetBooleanStatus func(c Component, kind StatusKind) (bool, Status)
	GetStringStatus  func(c Component, kind StatusKind) (string, Status)
}

// RequiredSymbols names the vtable fields a slave must resolve for the
// composite to load it at all, matching the REQ_MAP set in the reference
// loader. Kept as data (not a compile-time check); pkg/dynlib does not read
// this list but checks the same symbols one by name, reporting the first
// one that is missing.
var RequiredSymbols = []string{
	"Instantiate", "FreeInstance", "SetupExperiment",
	"EnterInitializationMode", "ExitInitializationMode", "Terminate", "Reset",
	"GetReal", "GetInteger", "GetBoolean",
	"SetReal", "SetInteger", "SetBoolean",
	"DoStep", "GetRealStatus", "GetBooleanStatus",
}

// OptionalSymbols names vtable fields that may be left unresolved.
var OptionalSymbols = []string{
	"GetTypesPlatform", "GetVersion", "SetDebugLogging",
	"GetString", "SetString", "CancelStep", "IntegerStatus", "GetStringStatus",
}

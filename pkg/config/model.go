// Package config parses container.txt, the fixed line-oriented description
// of a composite slave's slaves, buffers, port tables and per-slave wiring.
// The grammar is positional and nests sub-tables inside a flat line stream,
// which doesn't fit a generic config library (viper, mapstructure) — it is
// hand-parsed, matching the reference implementation's own read_conf family.
package config

// SlaveSpec names one embedded slave as declared in the slave list: its
// directory (relative to the container's own resource directory), the
// model identifier used as the shared-library filename base, and its GUID.
type SlaveSpec struct {
	Directory  string
	Identifier string
	GUID       string
}

// PortEntry is one row of a translation table: a container value reference
// resolves either to a slave's own value reference (SlaveIndex >= 0) or to
// the container's own local buffer (SlaveIndex < 0).
type PortEntry struct {
	SlaveIndex int32
	SlaveVR    uint32
}

// Local reports whether the entry is container-local (no slave backing).
func (p PortEntry) Local() bool { return p.SlaveIndex < 0 }

// PortTable is a container-VR-indexed translation table for one primitive
// type, V_T[0..P_T) in the data model.
type PortTable []PortEntry

// WireEntry is one row of a slave's In-list or Out-list: a container value
// reference paired with the slave's own value reference for the same
// variable.
type WireEntry struct {
	ContainerVR uint32
	SlaveVR     uint32
}

// StartValue pairs a slave value reference with the value to apply once,
// after EnterInitializationMode, overriding the slave's own default.
type StartValue[T any] struct {
	VR    uint32
	Value T
}

// SlaveIO is the full wiring record for one slave: in/out translation lists
// per type plus start-value overrides per type, matching fmu_io_t.
type SlaveIO struct {
	InReals, OutReals       []WireEntry
	InIntegers, OutIntegers []WireEntry
	InBooleans, OutBooleans []WireEntry
	// InStrings/OutStrings are parsed for grammar completeness but never
	// wired through the router: string I/O is unsupported end to end.
	InStrings, OutStrings []WireEntry

	StartReals    []StartValue[float64]
	StartIntegers []StartValue[int32]
	StartBooleans []StartValue[bool]
	StartStrings  []StartValue[string]
}

// Model is the fully parsed container.txt.
type Model struct {
	MultiThreaded bool
	Profiling     bool
	TimeStep      float64

	Slaves []SlaveSpec

	LocalReals, LocalIntegers, LocalBooleans, LocalStrings int

	PortReals, PortIntegers, PortBooleans, PortStrings PortTable

	// IO holds one entry per slave, in declaration order.
	IO []SlaveIO
}

// Package stubslave provides a deterministic, in-process fake slave
// implementing abi.Vtable directly, standing in for "a dynamically loaded
// black-box slave" in tests. It copies one real input to one real output
// with a fixed offset, matching the end-to-end scenarios in the testable
// properties list, and can be told to fail on a specific step or to report
// itself terminated.
package stubslave

import (
	"sync"

	"github.com/fmi2go/cosim-container/internal/abi"
	"github.com/fmi2go/cosim-container/pkg/config"
	"github.com/fmi2go/cosim-container/pkg/slave"
)

// Options configures one stub instance's behavior.
type Options struct {
	// Offset is added to InputVR's current value to produce OutputVR's
	// value on every DoStep.
	Offset float64
	// InputVR/OutputVR select which of the stub's own value references
	// carry the input and the output. Both default to 0.
	InputVR, OutputVR abi.ValueReference
	// DefaultOutput seeds OutputVR before the first DoStep, standing in
	// for a slave's own default start value.
	DefaultOutput float64
	// FailAtStep, if > 0, makes the stub's Nth DoStep call (1-indexed)
	// return abi.Error instead of stepping.
	FailAtStep int
	// Terminated is reported via GetBooleanStatus(Terminated).
	Terminated bool
}

type state struct {
	mu          sync.Mutex
	identifier  string
	reals       map[abi.ValueReference]float64
	integers    map[abi.ValueReference]int32
	booleans    map[abi.ValueReference]bool
	opts        Options
	stepCount   int
	doStepCalls int
	lastTime    float64
}

var (
	registryMu sync.Mutex
	registry   = map[abi.Component]*state{}
	byName     = map[string]*state{}
	nextHandle uintptr = 1
)

func lookup(c abi.Component) *state {
	registryMu.Lock()
	defer registryMu.Unlock()
	return registry[c]
}

// NewVtable returns a fresh abi.Vtable backing one stub slave kind. Every
// Instantiate call allocates independent state, so the same vtable can be
// reused to load several stub "slaves" if needed, though typically each
// test slave gets its own vtable built from its own Options.
func NewVtable(opts Options) *abi.Vtable {
	return &abi.Vtable{
		GetTypesPlatform: func() string { return "default" },
		GetVersion:       func() string { return "2.0" },

		Instantiate: func(instanceName string, _ abi.Type, _ string, _ string, _ abi.CallbackFunctions, _ bool, _ bool) (abi.Component, bool) {
			s := &state{
				identifier: instanceName,
				reals:      map[abi.ValueReference]float64{opts.OutputVR: opts.DefaultOutput},
				integers:   map[abi.ValueReference]int32{},
				booleans:   map[abi.ValueReference]bool{},
				opts:       opts,
			}
			registryMu.Lock()
			h := abi.Component(nextHandle)
			nextHandle++
			registry[h] = s
			byName[instanceName] = s
			registryMu.Unlock()
			return h, true
		},
		FreeInstance: func(c abi.Component) {
			registryMu.Lock()
			if s, ok := registry[c]; ok {
				delete(byName, s.identifier)
			}
			delete(registry, c)
			registryMu.Unlock()
		},

		SetupExperiment:         func(abi.Component, bool, float64, float64, bool, float64) abi.Status { return abi.OK },
		EnterInitializationMode: func(abi.Component) abi.Status { return abi.OK },
		ExitInitializationMode:  func(abi.Component) abi.Status { return abi.OK },
		Terminate:               func(abi.Component) abi.Status { return abi.OK },
		Reset: func(c abi.Component) abi.Status {
			s := lookup(c)
			s.mu.Lock()
			s.stepCount = 0
			s.lastTime = 0
			s.mu.Unlock()
			return abi.OK
		},

		GetReal: func(c abi.Component, vr []abi.ValueReference, value []float64) abi.Status {
			s := lookup(c)
			s.mu.Lock()
			defer s.mu.Unlock()
			for i, v := range vr {
				value[i] = s.reals[v]
			}
			return abi.OK
		},
		SetReal: func(c abi.Component, vr []abi.ValueReference, value []float64) abi.Status {
			s := lookup(c)
			s.mu.Lock()
			defer s.mu.Unlock()
			for i, v := range vr {
				s.reals[v] = value[i]
			}
			return abi.OK
		},
		GetInteger: func(c abi.Component, vr []abi.ValueReference, value []int32) abi.Status {
			s := lookup(c)
			s.mu.Lock()
			defer s.mu.Unlock()
			for i, v := range vr {
				value[i] = s.integers[v]
			}
			return abi.OK
		},
		SetInteger: func(c abi.Component, vr []abi.ValueReference, value []int32) abi.Status {
			s := lookup(c)
			s.mu.Lock()
			defer s.mu.Unlock()
			for i, v := range vr {
				s.integers[v] = value[i]
			}
			return abi.OK
		},
		GetBoolean: func(c abi.Component, vr []abi.ValueReference, value []bool) abi.Status {
			s := lookup(c)
			s.mu.Lock()
			defer s.mu.Unlock()
			for i, v := range vr {
				value[i] = s.booleans[v]
			}
			return abi.OK
		},
		SetBoolean: func(c abi.Component, vr []abi.ValueReference, value []bool) abi.Status {
			s := lookup(c)
			s.mu.Lock()
			defer s.mu.Unlock()
			for i, v := range vr {
				s.booleans[v] = value[i]
			}
			return abi.OK
		},

		DoStep: func(c abi.Component, current, h float64, _ bool) abi.Status {
			s := lookup(c)
			s.mu.Lock()
			defer s.mu.Unlock()
			s.doStepCalls++
			s.stepCount++
			if s.opts.FailAtStep > 0 && s.stepCount == s.opts.FailAtStep {
				return abi.Error
			}
			s.reals[s.opts.OutputVR] = s.reals[s.opts.InputVR] + s.opts.Offset
			s.lastTime = current + h
			return abi.OK
		},

		GetRealStatus: func(c abi.Component, kind abi.StatusKind) (float64, abi.Status) {
			if kind != abi.LastSuccessfulTime {
				return 0, abi.Error
			}
			s := lookup(c)
			s.mu.Lock()
			defer s.mu.Unlock()
			return s.lastTime, abi.OK
		},
		GetBooleanStatus: func(c abi.Component, kind abi.StatusKind) (bool, abi.Status) {
			if kind != abi.Terminated {
				return false, abi.Error
			}
			s := lookup(c)
			s.mu.Lock()
			defer s.mu.Unlock()
			return s.opts.Terminated, abi.OK
		},
	}
}

// DoStepCalls returns how many times DoStep was called on the instance
// backed by c, for the "subsequent slaves are not invoked" assertions.
func DoStepCalls(c abi.Component) int {
	s := lookup(c)
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doStepCalls
}

// DoStepCallsByIdentifier is DoStepCalls keyed by the identifier passed to
// NewSlave, for tests that only hold a *slave.Slave (whose component handle
// is unexported) rather than the raw abi.Component.
func DoStepCallsByIdentifier(identifier string) int {
	registryMu.Lock()
	s, ok := byName[identifier]
	registryMu.Unlock()
	if !ok {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doStepCalls
}

// NewSlave builds a stub slave already instantiated and wrapped as a
// *slave.Slave, ready to hand to a router/orchestrator under test.
func NewSlave(index int, identifier string, wire config.SlaveIO, opts Options, profiling bool) *slave.Slave {
	guid := config.GenerateGUID()
	vtable := NewVtable(opts)
	component, _ := vtable.Instantiate(identifier, abi.CoSimulation, guid, "file:///stub/resources", abi.CallbackFunctions{}, false, false)
	spec := config.SlaveSpec{Directory: ".", Identifier: identifier, GUID: guid}
	return slave.New(index, spec, wire, vtable, component, nil, profiling, nil)
}

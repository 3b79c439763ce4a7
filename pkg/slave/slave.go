// Package slave implements the per-slave adapter: a slave's resolved ABI
// vtable, its opaque component handle, lifecycle passthroughs, the typed
// single-value Get/Set the router dispatches through, the worker goroutine
// used by the parallel driver, and the fragile set_input first-step
// suppression flag (preserved verbatim from the reference behavior; see
// DESIGN.md).
package slave

import (
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"

	"github.com/fmi2go/cosim-container/internal/abi"
	"github.com/fmi2go/cosim-container/internal/rendezvous"
	"github.com/fmi2go/cosim-container/pkg/config"
	"github.com/fmi2go/cosim-container/pkg/profiler"
)

// StepParams is the (current_communication_point, step_size, no_rollback)
// triple the orchestrator publishes before waking workers for one parallel
// internal step. All workers read the same instance; the publish happens
// before any Go signal is posted, and channel-send ordering makes that
// write visible to every worker once its Wait returns — no separate lock
// protects it.
type StepParams struct {
	Current    float64
	H          float64
	NoRollback bool
}

// Slave is one embedded co-simulation component behind the composite.
type Slave struct {
	Index int
	Spec  config.SlaveSpec
	Wire  config.SlaveIO

	vtable    *abi.Vtable
	component abi.Component
	closer    io.Closer

	profile *profiler.Profile

	status          abi.Status
	setInputArmed   bool
	lastStepElapsed float64

	goSig, doneSig *rendezvous.Signal
	cancel         atomic.Bool
	workerDone     chan struct{}

	log *slog.Logger
}

// New wraps an already-resolved vtable and instantiated component as a
// Slave. Used both by the dynamic-library loader (pkg/dynlib-backed
// vtables) and by tests wiring a stub slave's vtable directly.
func New(index int, spec config.SlaveSpec, wire config.SlaveIO, vtable *abi.Vtable, component abi.Component, closer io.Closer, profiling bool, log *slog.Logger) *Slave {
	s := &Slave{
		Index:     index,
		Spec:      spec,
		Wire:      wire,
		vtable:    vtable,
		component: component,
		closer:    closer,
		goSig:     rendezvous.New(),
		doneSig:   rendezvous.New(),
		log:       log,
	}
	if profiling {
		s.profile = profiler.New()
	}
	return s
}

// Status returns the slave's last recorded status.
func (s *Slave) Status() abi.Status { return s.status }

// MarkPending sets the slave's status to Error before waking its worker,
// so a worker that never returns is observed as failed rather than stale-OK.
func (s *Slave) MarkPending() { s.status = abi.Error }

// LastStepElapsed returns the wall-clock seconds of the slave's most recent
// DoStep, or 0 if profiling is disabled.
func (s *Slave) LastStepElapsed() float64 { return s.lastStepElapsed }

func (s *Slave) logResult(call string, status abi.Status) {
	if status == abi.OK {
		return
	}
	if s.log != nil {
		s.log.Warn("slave call returned non-OK status", "slave", s.Spec.Identifier, "call", call, "status", status.String())
	}
}

func (s *Slave) SetupExperiment(toleranceDefined bool, tolerance, startTime float64) abi.Status {
	// stopTime is always forced undefined: it can cause rounding issues
	// near the end of a run, matching the reference container's own
	// override.
	status := s.vtable.SetupExperiment(s.component, toleranceDefined, tolerance, startTime, false, 0)
	s.logResult("SetupExperiment", status)
	return status
}

func (s *Slave) EnterInitializationMode() abi.Status {
	status := s.vtable.EnterInitializationMode(s.component)
	s.logResult("EnterInitializationMode", status)
	return status
}

func (s *Slave) ExitInitializationMode() abi.Status {
	status := s.vtable.ExitInitializationMode(s.component)
	s.logResult("ExitInitializationMode", status)
	return status
}

func (s *Slave) Terminate() abi.Status {
	status := s.vtable.Terminate(s.component)
	s.logResult("Terminate", status)
	return status
}

func (s *Slave) Reset() abi.Status {
	status := s.vtable.Reset(s.component)
	s.logResult("Reset", status)
	return status
}

// GetReal/SetReal/... are the router.SlaveIO implementation: single-value
// typed accessors built on top of the vtable's slice-based calls.

func (s *Slave) GetReal(vr abi.ValueReference) (float64, abi.Status) {
	out := [1]float64{}
	status := s.vtable.GetReal(s.component, []abi.ValueReference{vr}, out[:])
	return out[0], status
}

func (s *Slave) SetReal(vr abi.ValueReference, value float64) abi.Status {
	return s.vtable.SetReal(s.component, []abi.ValueReference{vr}, []float64{value})
}

func (s *Slave) GetInteger(vr abi.ValueReference) (int32, abi.Status) {
	out := [1]int32{}
	status := s.vtable.GetInteger(s.component, []abi.ValueReference{vr}, out[:])
	return out[0], status
}

func (s *Slave) SetInteger(vr abi.ValueReference, value int32) abi.Status {
	return s.vtable.SetInteger(s.component, []abi.ValueReference{vr}, []int32{value})
}

func (s *Slave) GetBoolean(vr abi.ValueReference) (bool, abi.Status) {
	out := [1]bool{}
	status := s.vtable.GetBoolean(s.component, []abi.ValueReference{vr}, out[:])
	return out[0], status
}

func (s *Slave) SetBoolean(vr abi.ValueReference, value bool) abi.Status {
	return s.vtable.SetBoolean(s.component, []abi.ValueReference{vr}, []bool{value})
}

// GetRealStatus/GetBooleanStatus forward the named status kind, used by the
// orchestrator's LastSuccessfulTime / Terminated aggregation.
func (s *Slave) GetRealStatus(kind abi.StatusKind) (float64, abi.Status) {
	return s.vtable.GetRealStatus(s.component, kind)
}

func (s *Slave) GetBooleanStatus(kind abi.StatusKind) (bool, abi.Status) {
	return s.vtable.GetBooleanStatus(s.component, kind)
}

// ShouldApplyInputs reports whether the caller should wire this slave's
// inputs this step. It always returns false on the very first call for a
// given slave and true afterward, for the lifetime of the slave — the
// set_input flag is never cleared, even across Reset, preserved verbatim
// from the reference behavior (see DESIGN.md open question).
func (s *Slave) ShouldApplyInputs() bool {
	if !s.setInputArmed {
		s.setInputArmed = true
		return false
	}
	return true
}

// DoStep advances the slave by h from current, optionally timed.
func (s *Slave) DoStep(current, h float64, noRollback bool) abi.Status {
	if s.profile != nil {
		s.profile.Tic()
	}
	status := s.vtable.DoStep(s.component, current, h, noRollback)
	if s.profile != nil {
		s.lastStepElapsed = s.profile.Toc()
	}
	s.status = status
	return status
}

// Unload cancels and joins the worker goroutine (if started), frees the
// slave instance, and closes its shared library handle.
func (s *Slave) Unload() error {
	if s.workerDone != nil {
		s.cancel.Store(true)
		s.goSig.Post()
		s.doneSig.Wait()
		<-s.workerDone
	}
	if s.vtable.FreeInstance != nil {
		s.vtable.FreeInstance(s.component)
	}
	if s.closer != nil {
		if err := s.closer.Close(); err != nil {
			return fmt.Errorf("slave %s: unload: %w", s.Spec.Identifier, err)
		}
	}
	return nil
}

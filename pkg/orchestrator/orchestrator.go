// Package orchestrator drives the composite's lifecycle passthroughs and
// the fixed-step sub-step loop, dispatching each internal step to either
// the sequential or the parallel (worker-per-slave) driver depending on the
// container's mt flag.
package orchestrator

import (
	"context"
	"log/slog"
	"math"

	"github.com/fmi2go/cosim-container/internal/abi"
	"github.com/fmi2go/cosim-container/pkg/config"
	"github.com/fmi2go/cosim-container/pkg/metrics"
	"github.com/fmi2go/cosim-container/pkg/router"
	"github.com/fmi2go/cosim-container/pkg/slave"
)

// Orchestrator owns the sub-step scheduler state shared by both drivers.
type Orchestrator struct {
	Router *router.Router
	Slaves []*slave.Slave

	MultiThreaded bool
	Profiling     bool
	TimeStep      float64
	Tolerance     float64
	Time          float64

	params *slave.StepParams
	log    *slog.Logger
	metric *metrics.Metrics
}

// New builds an Orchestrator for an already-loaded set of slaves. If mt is
// true, each slave's persistent worker goroutine is started here.
func New(model *config.Model, slaves []*slave.Slave, rtr *router.Router, tolerance float64, m *metrics.Metrics, log *slog.Logger) *Orchestrator {
	o := &Orchestrator{
		Router:        rtr,
		Slaves:        slaves,
		MultiThreaded: model.MultiThreaded,
		Profiling:     model.Profiling,
		TimeStep:      model.TimeStep,
		Tolerance:     tolerance,
		params:        &slave.StepParams{},
		log:           log,
		metric:        m,
	}
	if o.MultiThreaded {
		for _, s := range o.Slaves {
			sl := s
			sl.StartWorker(o.params, func() abi.Status {
				return o.Router.ApplyInputs(sl, sl.Wire)
			})
		}
	}
	return o
}

// DoStep advances the composite from t0 by H, per §4.2: an early-return
// guard, a sub-step loop of fixed size TimeStep, and an alignment check
// against Tolerance.
func (o *Orchestrator) DoStep(ctx context.Context, t0, h float64, noRollback bool) abi.Status {
	end := t0 + h + o.Tolerance
	if end < o.Time+o.TimeStep {
		return abi.OK
	}

	current := o.Time
	substeps := 0
	for current+o.TimeStep < end {
		select {
		case <-ctx.Done():
			o.Time = current
			return abi.Error
		default:
		}
		status := o.internalStep(current, noRollback)
		if status != abi.OK {
			o.Time = current
			return status
		}
		substeps++
		current += o.TimeStep
	}
	o.Time = current
	if o.metric != nil {
		o.metric.AddSubsteps(substeps)
	}

	if math.Abs(t0+h-current) > o.Tolerance {
		if o.log != nil {
			o.log.Warn("communication step is not an integer multiple of the internal step", "H", h, "h", o.TimeStep, "current", current)
		}
		return abi.Warning
	}
	return abi.OK
}

func (o *Orchestrator) internalStep(current float64, noRollback bool) abi.Status {
	if o.MultiThreaded {
		return o.parallelStep(current, noRollback)
	}
	return o.sequentialStep(current, noRollback)
}

// recordProfile stores slave s's most recent step duration into the
// container's own Real buffer at index s.Index, matching the reference
// container's profiling behavior. This intentionally collides with any
// container-local real actually mapped at that index; see DESIGN.md. It
// also reports the slave's last status to the Prometheus gauge, which is
// additive instrumentation independent of whether profiling is enabled.
func (o *Orchestrator) recordProfile(s *slave.Slave) {
	if o.metric != nil {
		o.metric.SetLastStatus(s.Spec.Identifier, int(s.Status()))
	}
	if !o.Profiling {
		return
	}
	elapsed := s.LastStepElapsed()
	if s.Index < len(o.Router.Buffers.Reals) {
		o.Router.Buffers.Reals[s.Index] = elapsed
	}
	if o.metric != nil {
		o.metric.ObserveStep(s.Spec.Identifier, elapsed)
	}
}

// LastSuccessfulTime returns the minimum fmi2LastSuccessfulTime across all
// slaves: the composite has not logically progressed past the slowest one.
func (o *Orchestrator) LastSuccessfulTime() (float64, abi.Status) {
	best := -1.0
	for _, s := range o.Slaves {
		value, status := s.GetRealStatus(abi.LastSuccessfulTime)
		if status != abi.OK {
			return 0, status
		}
		if best < 0 || value < best {
			best = value
		}
	}
	return best, abi.OK
}

// Terminated returns the logical OR of fmi2Terminated across all slaves: if
// any slave wants to stop, the composite wants to stop.
func (o *Orchestrator) Terminated() (bool, abi.Status) {
	terminated := false
	for _, s := range o.Slaves {
		value, status := s.GetBooleanStatus(abi.Terminated)
		if status != abi.OK {
			return false, status
		}
		terminated = terminated || value
	}
	return terminated, abi.OK
}

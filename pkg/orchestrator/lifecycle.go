package orchestrator

import (
	"golang.org/x/sync/errgroup"

	"github.com/fmi2go/cosim-container/internal/abi"
)

// SetupExperiment broadcasts to every slave in declaration order,
// return-fasting on the first non-OK status.
func (o *Orchestrator) SetupExperiment(toleranceDefined bool, tolerance, startTime float64) abi.Status {
	if toleranceDefined {
		o.Tolerance = tolerance
	}
	for _, s := range o.Slaves {
		if status := s.SetupExperiment(toleranceDefined, tolerance, startTime); status != abi.OK {
			return status
		}
	}
	o.Time = startTime
	return abi.OK
}

// EnterInitializationMode broadcasts EnterInitializationMode, and for each
// slave that succeeds, immediately applies its start-value overrides
// (§4.4) before moving to the next slave.
func (o *Orchestrator) EnterInitializationMode() abi.Status {
	for _, s := range o.Slaves {
		if status := s.EnterInitializationMode(); status != abi.OK {
			return status
		}
		if status := o.Router.ApplyStartValues(s, s.Wire); status != abi.OK {
			return status
		}
	}
	return abi.OK
}

func (o *Orchestrator) ExitInitializationMode() abi.Status {
	for _, s := range o.Slaves {
		if status := s.ExitInitializationMode(); status != abi.OK {
			return status
		}
	}
	return abi.OK
}

func (o *Orchestrator) Terminate() abi.Status {
	for _, s := range o.Slaves {
		if status := s.Terminate(); status != abi.OK {
			return status
		}
	}
	return abi.OK
}

func (o *Orchestrator) Reset() abi.Status {
	for _, s := range o.Slaves {
		if status := s.Reset(); status != abi.OK {
			return status
		}
	}
	return abi.OK
}

// Unload tears down every slave's worker and library handle in parallel:
// each slave's unload sequence (cancel its worker, join, unload its own
// library) is independent of every other slave's, so this is the second
// one-shot fan-out point for errgroup, alongside LoadSlaves.
func (o *Orchestrator) Unload() error {
	var g errgroup.Group
	for _, s := range o.Slaves {
		s := s
		g.Go(s.Unload)
	}
	return g.Wait()
}

package orchestrator

import "github.com/fmi2go/cosim-container/internal/abi"

// parallelStep runs one internal step via the worker-per-slave rendezvous:
// publish the step parameters, wake every worker, wait for every worker to
// finish, then collect outputs in declaration order. Each worker performs
// Set-inputs and DoStep itself (the worker-side variant — see §4.6); the
// container-side variant, where the control thread sets inputs before
// waking workers, is not reachable from the mt path and is only mirrored
// in spirit by the sequential driver.
func (o *Orchestrator) parallelStep(current float64, noRollback bool) abi.Status {
	o.params.Current = current
	o.params.H = o.TimeStep
	o.params.NoRollback = noRollback

	for _, s := range o.Slaves {
		s.MarkPending()
		s.Go()
	}

	for _, s := range o.Slaves {
		s.WaitDone()
		if status := s.Status(); status != abi.OK {
			return status
		}
	}

	for _, s := range o.Slaves {
		o.recordProfile(s)
		if status := o.Router.CollectOutputs(s, s.Wire); status != abi.OK {
			return status
		}
	}
	return abi.OK
}

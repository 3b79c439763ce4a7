package orchestrator

import "github.com/fmi2go/cosim-container/internal/abi"

// sequentialStep runs one internal step entirely on the control thread, in
// three batched passes over every slave in declaration order: apply inputs,
// then DoStep, then collect outputs. No slave's outputs are collected until
// every slave has applied its inputs, so slave k's inputs are always
// container-buffer values last written by the *previous* sub-step,
// regardless of declaration order relative to the slaves that feed it —
// the same Jacobi one-step delay the parallel driver produces, which is why
// the two are required to be bit-identical over N sub-steps. This mirrors
// the reference container's reachable mono driver, do_internal_step_parallel
// (the interleaved apply/step/collect-per-slave shape is do_internal_step_serie,
// which fmi2DoStep never calls).
func (o *Orchestrator) sequentialStep(current float64, noRollback bool) abi.Status {
	for _, s := range o.Slaves {
		if s.ShouldApplyInputs() {
			if status := o.Router.ApplyInputs(s, s.Wire); status != abi.OK {
				return status
			}
		}
	}

	for _, s := range o.Slaves {
		status := s.DoStep(current, o.TimeStep, noRollback)
		o.recordProfile(s)
		if status != abi.OK {
			return status
		}
	}

	for _, s := range o.Slaves {
		if status := o.Router.CollectOutputs(s, s.Wire); status != abi.OK {
			return status
		}
	}
	return abi.OK
}

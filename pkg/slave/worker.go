package slave

import "github.com/fmi2go/cosim-container/internal/abi"

// StartWorker spawns the slave's persistent worker goroutine, used by the
// parallel driver. The worker loops: wait on "go"; if cancelled, signal
// "done" and exit; otherwise apply inputs (unless ShouldApplyInputs
// suppresses the first call), DoStep with the currently published
// parameters, record the resulting status, signal "done". Exactly one
// worker exists per slave for its entire lifetime; no goroutine is created
// per step.
//
// applyInputs is supplied by the orchestrator, which alone knows how to
// reach the router for this slave's wiring; the worker only decides
// *whether* to call it, via ShouldApplyInputs.
func (s *Slave) StartWorker(params *StepParams, applyInputs func() abi.Status) {
	s.workerDone = make(chan struct{})
	go func() {
		defer close(s.workerDone)
		for {
			s.goSig.Wait()
			if s.cancel.Load() {
				s.doneSig.Post()
				return
			}

			status := abi.OK
			if s.ShouldApplyInputs() {
				status = applyInputs()
			}
			if status == abi.OK {
				status = s.DoStep(params.Current, params.H, params.NoRollback)
			}
			s.status = status
			s.doneSig.Post()
		}
	}()
}

// Go signals the worker to run one step with the currently published
// StepParams.
func (s *Slave) Go() { s.goSig.Post() }

// WaitDone blocks until the worker has finished its current step.
func (s *Slave) WaitDone() { s.doneSig.Wait() }

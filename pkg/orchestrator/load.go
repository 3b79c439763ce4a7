package orchestrator

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/fmi2go/cosim-container/pkg/config"
	"github.com/fmi2go/cosim-container/pkg/slave"
)

// LoadSlaves loads and instantiates every slave declared in model, in
// parallel, one errgroup goroutine per slave with no concurrency limit set
// (matching the one-shot nature of this fan-out). This is the only
// place the parallel driver's long-lived worker scheme doesn't apply:
// loading N shared libraries is a one-time, unordered-result operation, not
// a per-step rendezvous, so a scoped errgroup is the right tool instead of
// another persistent worker pool.
//
// Results are written back into an index-aligned slice so declaration
// order is preserved regardless of which slave finishes loading first.
func LoadSlaves(ctx context.Context, containerDir string, model *config.Model, instanceName string, visible, loggingOn bool, log *slog.Logger) ([]*slave.Slave, error) {
	slaves := make([]*slave.Slave, len(model.Slaves))

	g, _ := errgroup.WithContext(ctx)
	for i, spec := range model.Slaves {
		i, spec := i, spec
		g.Go(func() error {
			s, err := slave.Load(containerDir, i, spec, model.IO[i], instanceName, visible, loggingOn, model.Profiling, log)
			if err != nil {
				return fmt.Errorf("slave %d (%s): %w", i, spec.Identifier, err)
			}
			slaves[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		// Unload whatever did finish loading before propagating the error,
		// mirroring the reference loader's "free only what was loaded" cleanup.
		for _, s := range slaves {
			if s != nil {
				_ = s.Unload()
			}
		}
		return nil, err
	}
	return slaves, nil
}

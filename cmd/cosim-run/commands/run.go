package commands

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fmi2go/cosim-container/internal/abi"
	"github.com/fmi2go/cosim-container/internal/logging"
	"github.com/fmi2go/cosim-container/pkg/container"
	"github.com/fmi2go/cosim-container/pkg/hostconfig"
)

var (
	flagResourceDir string
	flagSteps       int
	flagH           float64
	flagInstance    string
	flagMetrics     bool
	flagMetricsAddr string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Load a container and drive it through a fixed number of DoSteps",
	RunE:  runRun,
}

func init() {
	defaults := hostconfig.Defaults()
	runCmd.Flags().StringVar(&flagResourceDir, "resource-dir", "", "directory containing container.txt and slave subdirectories (required)")
	runCmd.Flags().IntVar(&flagSteps, "steps", defaults.Steps, "number of DoStep calls to issue")
	runCmd.Flags().Float64Var(&flagH, "communication-step", defaults.CommunicationStep, "host communication step H")
	runCmd.Flags().StringVar(&flagInstance, "instance-name", defaults.InstanceName, "composite instance name")
	runCmd.Flags().BoolVar(&flagMetrics, "metrics", defaults.Metrics.Enabled, "serve Prometheus metrics while running")
	runCmd.Flags().StringVar(&flagMetricsAddr, "metrics-addr", defaults.Metrics.Addr, "address to serve /metrics on")
}

func runRun(cmd *cobra.Command, args []string) error {
	v := viper.New()
	for key, flagName := range map[string]string{
		"resource_dir":       "resource-dir",
		"steps":              "steps",
		"communication_step": "communication-step",
		"instance_name":      "instance-name",
		"metrics.enabled":    "metrics",
		"metrics.addr":       "metrics-addr",
	} {
		if err := v.BindPFlag(key, cmd.Flags().Lookup(flagName)); err != nil {
			return fmt.Errorf("bind flag %s: %w", flagName, err)
		}
	}

	cfg, err := hostconfig.Load(v, cfgFile)
	if err != nil {
		return err
	}

	if err := logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	}); err != nil {
		return fmt.Errorf("init logging: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var reg *prometheus.Registry
	if cfg.Metrics.Enabled {
		reg = prometheus.NewRegistry()
		srv := &http.Server{Addr: cfg.Metrics.Addr, Handler: promhttp.HandlerFor(reg, promhttp.HandlerOpts{})}
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logging.Error("metrics server stopped", "error", err)
			}
		}()
		defer srv.Shutdown(context.Background())
	}

	resourceURL := "file://" + cfg.ResourceDir
	c, err := container.Instantiate(ctx, cfg.InstanceName, "cosim-run", resourceURL, cfg.Visible, cfg.LoggingOn, reg)
	if err != nil {
		return fmt.Errorf("instantiate container: %w", err)
	}
	defer c.FreeInstance()

	if status := c.SetupExperiment(true, 1e-8, cfg.StartTime); status != abi.OK {
		return fmt.Errorf("SetupExperiment: status %v", status)
	}
	if status := c.EnterInitializationMode(); status != abi.OK {
		return fmt.Errorf("EnterInitializationMode: status %v", status)
	}
	if status := c.ExitInitializationMode(); status != abi.OK {
		return fmt.Errorf("ExitInitializationMode: status %v", status)
	}

	t := cfg.StartTime
	ran := 0
	for i := 0; i < cfg.Steps; i++ {
		stepCtx := ctx
		var stepCancel context.CancelFunc
		if cfg.StepTimeout > 0 {
			stepCtx, stepCancel = context.WithTimeout(ctx, cfg.StepTimeout)
		}
		status := c.DoStep(stepCtx, t, cfg.CommunicationStep, false)
		if stepCancel != nil {
			stepCancel()
		}
		if status.Worse(abi.Warning) {
			return fmt.Errorf("DoStep %d: status %v", i, status)
		}
		t += cfg.CommunicationStep
		ran++

		select {
		case <-ctx.Done():
			cmd.Println("interrupted, terminating early")
			i = cfg.Steps
		default:
		}
	}

	if status := c.Terminate(); status != abi.OK {
		return fmt.Errorf("Terminate: status %v", status)
	}
	cmd.Printf("ran %d step(s), final time %.6g\n", ran, t)
	return nil
}

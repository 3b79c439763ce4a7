// Package hostconfig layers configuration for the cosim-run host harness
// binary, not for the container's own container.txt (that grammar is
// pkg/config and is unrelated to this package). Precedence is CLI flag >
// COSIM_* environment variable > YAML file > defaults, resolved once at
// startup via viper and decoded into Config with mapstructure, matching the
// teacher's own pkg/config.Load layering.
package hostconfig

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// Config is the cosim-run driver's own configuration: which container to
// load and run, how long to step it, and whether to serve metrics.
type Config struct {
	// ResourceDir is the directory holding container.txt and the slave
	// subdirectories (the container's resource_url, file:// scheme
	// stripped).
	ResourceDir string `mapstructure:"resource_dir" yaml:"resource_dir"`

	// InstanceName is the composite's own instance name, passed through to
	// fmi2Instantiate and used to tag every log record.
	InstanceName string `mapstructure:"instance_name" yaml:"instance_name"`

	// CommunicationStep is the host communication step H passed to every
	// DoStep call.
	CommunicationStep float64 `mapstructure:"communication_step" yaml:"communication_step"`

	// Steps is how many DoStep calls the driver issues before Terminate.
	Steps int `mapstructure:"steps" yaml:"steps"`

	// StartTime is passed to SetupExperiment.
	StartTime float64 `mapstructure:"start_time" yaml:"start_time"`

	// Visible and LoggingOn are passed through to Instantiate.
	Visible   bool `mapstructure:"visible" yaml:"visible"`
	LoggingOn bool `mapstructure:"logging_on" yaml:"logging_on"`

	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
	Metrics MetricsConfig `mapstructure:"metrics" yaml:"metrics"`

	// StepTimeout sets a deadline on the context of each DoStep call; 0
	// disables it. The orchestrator checks the deadline only before each
	// internal sub-step and then returns Error; a slave DoStep already
	// running is not interrupted, so a hung slave still blocks the call.
	// The container itself has no CancelStep support (§5), so a timed-out
	// step leaves the container's time at the last completed sub-step.
	StepTimeout time.Duration `mapstructure:"step_timeout" yaml:"step_timeout"`
}

// LoggingConfig controls the driver's log output.
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
	Output string `mapstructure:"output" yaml:"output"`
}

// MetricsConfig controls whether cosim-run serves Prometheus metrics.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Addr    string `mapstructure:"addr" yaml:"addr"`
}

// Defaults returns the driver's zero-config defaults.
func Defaults() *Config {
	return &Config{
		InstanceName:      "cosim-container",
		CommunicationStep: 0.1,
		Steps:             10,
		StartTime:         0,
		Visible:           false,
		LoggingOn:         false,
		Logging:           LoggingConfig{Level: "INFO", Format: "text", Output: "stdout"},
		Metrics:           MetricsConfig{Enabled: false, Addr: ":9090"},
		StepTimeout:       0,
	}
}

// Load resolves a Config from, in increasing precedence: Defaults(), the
// YAML file at configPath (if non-empty and present), COSIM_* environment
// variables, and the already-bound pflag set v (via BindPFlag in the
// caller). Flags bound into v before calling Load take precedence over
// everything else, matching the teacher's CLI-flag-wins layering.
func Load(v *viper.Viper, configPath string) (*Config, error) {
	v.SetEnvPrefix("COSIM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			_, notFound := err.(viper.ConfigFileNotFoundError)
			if !notFound && !os.IsNotExist(err) {
				return nil, fmt.Errorf("hostconfig: read %s: %w", configPath, err)
			}
		}
	}

	cfg := Defaults()
	if err := v.Unmarshal(cfg, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
	))); err != nil {
		return nil, fmt.Errorf("hostconfig: decode: %w", err)
	}
	if cfg.ResourceDir == "" {
		return nil, fmt.Errorf("hostconfig: resource_dir is required")
	}
	return cfg, nil
}

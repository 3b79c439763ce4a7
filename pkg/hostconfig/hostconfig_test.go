package hostconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults_MatchesZeroConfigExpectations(t *testing.T) {
	cfg := Defaults()
	assert.Equal(t, "cosim-container", cfg.InstanceName)
	assert.Equal(t, 0.1, cfg.CommunicationStep)
	assert.Equal(t, 10, cfg.Steps)
	assert.False(t, cfg.Visible)
	assert.False(t, cfg.LoggingOn)
	assert.Equal(t, "INFO", cfg.Logging.Level)
	assert.False(t, cfg.Metrics.Enabled)
	assert.Equal(t, ":9090", cfg.Metrics.Addr)
}

func TestLoad_RequiresResourceDir(t *testing.T) {
	v := viper.New()
	_, err := Load(v, "")
	assert.Error(t, err)
}

func TestLoad_YAMLFileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cosim.yaml")
	require.NoError(t, os.WriteFile(path, []byte("resource_dir: /models/demo\nsteps: 42\n"), 0o644))

	v := viper.New()
	cfg, err := Load(v, path)
	require.NoError(t, err)
	assert.Equal(t, "/models/demo", cfg.ResourceDir)
	assert.Equal(t, 42, cfg.Steps)
	// untouched by the file, still the zero-config default.
	assert.Equal(t, 0.1, cfg.CommunicationStep)
}

func TestLoad_EnvOverridesYAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cosim.yaml")
	require.NoError(t, os.WriteFile(path, []byte("resource_dir: /models/demo\nsteps: 42\n"), 0o644))

	t.Setenv("COSIM_STEPS", "7")

	v := viper.New()
	cfg, err := Load(v, path)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Steps, "the environment variable must win over the file")
}

func TestLoad_FlagOverridesEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cosim.yaml")
	require.NoError(t, os.WriteFile(path, []byte("resource_dir: /models/demo\nsteps: 42\n"), 0o644))

	t.Setenv("COSIM_STEPS", "7")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.Int("steps", 0, "")
	require.NoError(t, fs.Set("steps", "99"))

	v := viper.New()
	require.NoError(t, v.BindPFlag("steps", fs.Lookup("steps")))

	cfg, err := Load(v, path)
	require.NoError(t, err)
	assert.Equal(t, 99, cfg.Steps, "an explicitly set flag must win over everything else")
}

func TestLoad_MissingConfigFileIsNotFatal(t *testing.T) {
	v := viper.New()
	v.Set("resource_dir", "/models/demo")
	cfg, err := Load(v, filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "/models/demo", cfg.ResourceDir)
}

func TestLoad_StepTimeoutDecodesFromDurationString(t *testing.T) {
	v := viper.New()
	v.Set("resource_dir", "/models/demo")
	v.Set("step_timeout", "2500ms")
	cfg, err := Load(v, "")
	require.NoError(t, err)
	assert.Equal(t, int64(2500000000), cfg.StepTimeout.Nanoseconds())
}

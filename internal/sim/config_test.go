package sim

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEmptyPathYieldsDefaults(t *testing.T) {
	cfg, err := Load("")

	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yml"))

	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadOverlaysFileOntoDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	content := `
tick_ms: 5
max_ticks: 500
seed: 9
trace_csv: out.csv
sched:
  io_service_ticks: 7
workload:
  tasks: 3
  service_min: 2
  service_max: 4
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.TickMS)
	assert.Equal(t, int64(500), cfg.MaxTicks)
	assert.Equal(t, int64(9), cfg.Seed)
	assert.Equal(t, "out.csv", cfg.TraceCSV)
	assert.Equal(t, int64(7), cfg.Sched.IOServiceTicks)
	assert.Equal(t, 3, cfg.Workload.Tasks)
	assert.Equal(t, int64(2), cfg.Workload.ServiceMin)
	assert.Equal(t, int64(4), cfg.Workload.ServiceMax)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("tick_ms: [broken"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestWithDefaultsClampsBadValues(t *testing.T) {
	c := Config{TickMS: -3, MaxTicks: 0}.withDefaults()

	assert.Equal(t, 0, c.TickMS)
	assert.Equal(t, DefaultConfig().MaxTicks, c.MaxTicks)
}

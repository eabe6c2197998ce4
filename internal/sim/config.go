// Package sim replays generated workloads against the dispatch policy,
// one tick at a time, and reports what happened.
package sim

import (
	"fmt"
	"os"

	yaml "github.com/goccy/go-yaml"

	"dispatchq/internal/sched"
	"dispatchq/internal/workload"
)

// Config bundles everything one run needs. The sched and workload blocks
// are passed through to their packages untouched.
type Config struct {
	TickMS   int    `yaml:"tick_ms"`   // 0 (by default): run as fast as possible
	MaxTicks int64  `yaml:"max_ticks"` // 10000 (by default)
	Seed     int64  `yaml:"seed"`      // 1 (by default)
	TraceCSV string `yaml:"trace_csv"` // empty (by default): no CSV trace

	Sched    sched.Config    `yaml:"sched"`
	Workload workload.Params `yaml:"workload"`
}

func DefaultConfig() Config {
	return Config{
		TickMS:   0,
		MaxTicks: 10000,
		Seed:     1,
	}
}

// Load reads the YAML file at path and overlays it onto the defaults.
// An empty or missing path yields the defaults; a file that exists but
// does not parse is an error.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg.withDefaults(), nil
}

// withDefaults applies some sanity clamps to the given configuration.
func (c Config) withDefaults() Config {
	if c.TickMS < 0 {
		c.TickMS = 0
	}
	if c.MaxTicks <= 0 {
		c.MaxTicks = DefaultConfig().MaxTicks
	}
	return c
}

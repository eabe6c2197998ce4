package sched

// Config carries the policy knobs. Non-positive values fall back to the
// defaults, so a zero Config is usable as-is.
type Config struct {
	// IOServiceTicks is the flat estimate of how long a task will occupy the
	// IO device, applied on every IO request regardless of task or history.
	IOServiceTicks int64 `yaml:"io_service_ticks"` // 10 (by default)

	// ElevatedSlack is the largest positive slack still classified as
	// elevated urgency.
	ElevatedSlack int64 `yaml:"elevated_slack"` // 5 (by default)

	// BoostSlack is the slack window inside which a high-priority task is
	// raised to at least elevated urgency.
	BoostSlack int64 `yaml:"boost_slack"` // 10 (by default)
}

// DefaultConfig returns the stock policy knobs.
func DefaultConfig() Config {
	return Config{
		IOServiceTicks: 10,
		ElevatedSlack:  5,
		BoostSlack:     10,
	}
}

// withDefaults clamps non-positive knobs back to their defaults.
func (c Config) withDefaults() Config {
	def := DefaultConfig()

	// sanity clamps
	if c.IOServiceTicks <= 0 {
		c.IOServiceTicks = def.IOServiceTicks
	}
	if c.ElevatedSlack <= 0 {
		c.ElevatedSlack = def.ElevatedSlack
	}
	if c.BoostSlack <= 0 {
		c.BoostSlack = def.BoostSlack
	}

	return c
}

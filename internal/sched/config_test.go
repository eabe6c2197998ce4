package sched

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	require.Equal(t, int64(10), cfg.IOServiceTicks)
	require.Equal(t, int64(5), cfg.ElevatedSlack)
	require.Equal(t, int64(10), cfg.BoostSlack)
}

func TestWithDefaultsClampsNonPositiveKnobs(t *testing.T) {
	got := Config{IOServiceTicks: -3, ElevatedSlack: 0, BoostSlack: -1}.withDefaults()
	require.Equal(t, DefaultConfig(), got)

	kept := Config{IOServiceTicks: 4, ElevatedSlack: 2, BoostSlack: 7}.withDefaults()
	require.Equal(t, Config{IOServiceTicks: 4, ElevatedSlack: 2, BoostSlack: 7}, kept)
}

func TestNewAppliesDefaults(t *testing.T) {
	s := New(Config{})

	require.Equal(t, DefaultConfig(), s.cfg)
}

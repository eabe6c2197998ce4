package sched

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassifyDefaultThresholds(t *testing.T) {
	cfg := DefaultConfig()

	cases := []struct {
		name  string
		slack int64
		prio  Priority
		want  int
	}{
		{"negative slack is critical", -5, PriorityNormal, urgencyCritical},
		{"zero slack is critical", 0, PriorityNormal, urgencyCritical},
		{"small slack is elevated", 1, PriorityNormal, urgencyElevated},
		{"elevated boundary inclusive", 5, PriorityNormal, urgencyElevated},
		{"just past elevated is none", 6, PriorityNormal, urgencyNone},
		{"ample slack is none", 100, PriorityNormal, urgencyNone},
		{"high critical stays critical", -5, PriorityHigh, urgencyCritical},
		{"high zero slack stays critical", 0, PriorityHigh, urgencyCritical},
		{"high small slack unchanged", 3, PriorityHigh, urgencyElevated},
		{"high boosted inside window", 6, PriorityHigh, urgencyElevated},
		{"high boost boundary inclusive", 10, PriorityHigh, urgencyElevated},
		{"high past boost window is none", 11, PriorityHigh, urgencyNone},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, cfg.classify(tc.slack, tc.prio))
		})
	}
}

func TestClassifyCustomThresholds(t *testing.T) {
	cfg := Config{IOServiceTicks: 10, ElevatedSlack: 2, BoostSlack: 4}

	require.Equal(t, urgencyNone, cfg.classify(3, PriorityNormal))
	require.Equal(t, urgencyElevated, cfg.classify(3, PriorityHigh))
	require.Equal(t, urgencyNone, cfg.classify(5, PriorityHigh))
	require.Equal(t, urgencyElevated, cfg.classify(2, PriorityNormal))
}

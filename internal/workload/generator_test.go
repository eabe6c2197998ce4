package workload

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dispatchq/internal/sched"
)

func TestGenerateSameSeedSameWorkload(t *testing.T) {
	par := Params{Tasks: 50, IOChance: 0.8}

	a := Generate(par, rand.New(rand.NewSource(42)))
	b := Generate(par, rand.New(rand.NewSource(42)))

	if diff := cmp.Diff(a, b); diff != "" {
		t.Fatalf("workloads diverged for the same seed (-a +b):\n%s", diff)
	}
}

func TestGenerateDifferentSeedsDiffer(t *testing.T) {
	par := Params{Tasks: 50}

	a := Generate(par, rand.New(rand.NewSource(1)))
	b := Generate(par, rand.New(rand.NewSource(2)))

	require.NotEmpty(t, cmp.Diff(a, b), "two seeds produced identical workloads")
}

func TestGenerateZeroParamsUsesDefaults(t *testing.T) {
	specs := Generate(Params{}, rand.New(rand.NewSource(7)))

	require.Len(t, specs, defaultParams().Tasks)
}

func TestGenerateRespectsBounds(t *testing.T) {
	par := Params{
		Tasks:            200,
		HighRatio:        0.5,
		MeanInterarrival: 3,
		ServiceMin:       4,
		ServiceMax:       12,
		DeadlineSlackMin: 2,
		DeadlineSlackMax: 9,
		IOChance:         1.0,
		IOBurstMax:       3,
		IODurationMin:    1,
		IODurationMax:    5,
	}
	specs := Generate(par, rand.New(rand.NewSource(99)))
	require.Len(t, specs, par.Tasks)

	prevArrival := int64(0)
	for i, ts := range specs {
		assert.Equal(t, sched.TaskID(i+1), ts.ID)
		assert.GreaterOrEqual(t, ts.Arrival, prevArrival, "arrivals must be nondecreasing")
		prevArrival = ts.Arrival

		assert.GreaterOrEqual(t, ts.Service, par.ServiceMin)
		assert.LessOrEqual(t, ts.Service, par.ServiceMax)
		assert.GreaterOrEqual(t, ts.Deadline, ts.Arrival+ts.Service+par.DeadlineSlackMin)
		assert.LessOrEqual(t, ts.Deadline, ts.Arrival+ts.Service+par.DeadlineSlackMax)

		prevAfter := int64(0)
		for _, b := range ts.Bursts {
			assert.Greater(t, b.AfterService, prevAfter, "bursts must be sorted and distinct")
			assert.Less(t, b.AfterService, ts.Service, "burst must fall inside the service demand")
			assert.GreaterOrEqual(t, b.Duration, par.IODurationMin)
			assert.LessOrEqual(t, b.Duration, par.IODurationMax)
			prevAfter = b.AfterService
		}
	}
}

func TestGenerateFullHighRatioMakesEveryTaskHigh(t *testing.T) {
	rnd := rand.New(rand.NewSource(5))
	for _, ts := range Generate(Params{Tasks: 30, HighRatio: 1}, rnd) {
		require.Equal(t, sched.PriorityHigh, ts.Priority)
	}
}

func TestWithDefaultsClampsInvertedRanges(t *testing.T) {
	p := Params{ServiceMin: 20, ServiceMax: 3, IODurationMin: 9, IODurationMax: 1}.withDefaults()

	assert.Equal(t, int64(20), p.ServiceMin)
	assert.Equal(t, int64(20), p.ServiceMax)
	assert.Equal(t, int64(9), p.IODurationMin)
	assert.Equal(t, int64(9), p.IODurationMax)
}

func TestWithDefaultsFillsZeroRatios(t *testing.T) {
	p := Params{}.withDefaults()

	assert.Equal(t, defaultParams().HighRatio, p.HighRatio)
	assert.Equal(t, defaultParams().IOChance, p.IOChance)
}

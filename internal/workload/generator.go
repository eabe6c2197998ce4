package workload

import (
	"math/rand"
	"sort"

	"dispatchq/internal/sched"
)

// Params controls the shape of a generated workload. Fields left at zero
// or out of range fall back to the defaults, so a partially filled config
// still yields something runnable.
type Params struct {
	Tasks            int     `yaml:"tasks"`              // 8 (by default)
	HighRatio        float64 `yaml:"high_ratio"`         // 0.25 (by default)
	MeanInterarrival float64 `yaml:"mean_interarrival"`  // 4.0 ticks (by default)
	ServiceMin       int64   `yaml:"service_min"`        // 5 (by default)
	ServiceMax       int64   `yaml:"service_max"`        // 30 (by default)
	DeadlineSlackMin int64   `yaml:"deadline_slack_min"` // 5 (by default)
	DeadlineSlackMax int64   `yaml:"deadline_slack_max"` // 40 (by default)
	IOChance         float64 `yaml:"io_chance"`          // 0.4 (by default)
	IOBurstMax       int     `yaml:"io_burst_max"`       // 2 (by default)
	IODurationMin    int64   `yaml:"io_duration_min"`    // 4 (by default)
	IODurationMax    int64   `yaml:"io_duration_max"`    // 12 (by default)
}

func defaultParams() Params {
	return Params{
		Tasks:            8,
		HighRatio:        0.25,
		MeanInterarrival: 4,
		ServiceMin:       5,
		ServiceMax:       30,
		DeadlineSlackMin: 5,
		DeadlineSlackMax: 40,
		IOChance:         0.4,
		IOBurstMax:       2,
		IODurationMin:    4,
		IODurationMax:    12,
	}
}

// withDefaults applies some sanity clamps to the given parameters.
func (p Params) withDefaults() Params {
	def := defaultParams()
	if p.Tasks <= 0 {
		p.Tasks = def.Tasks
	}
	if p.HighRatio <= 0 || p.HighRatio > 1 {
		p.HighRatio = def.HighRatio
	}
	if p.MeanInterarrival <= 0 {
		p.MeanInterarrival = def.MeanInterarrival
	}
	if p.ServiceMin <= 0 {
		p.ServiceMin = def.ServiceMin
	}
	if p.ServiceMax < p.ServiceMin {
		p.ServiceMax = p.ServiceMin
	}
	if p.DeadlineSlackMin < 0 {
		p.DeadlineSlackMin = def.DeadlineSlackMin
	}
	if p.DeadlineSlackMax < p.DeadlineSlackMin {
		p.DeadlineSlackMax = p.DeadlineSlackMin
	}
	if p.IOChance <= 0 || p.IOChance > 1 {
		p.IOChance = def.IOChance
	}
	if p.IOBurstMax <= 0 {
		p.IOBurstMax = def.IOBurstMax
	}
	if p.IODurationMin <= 0 {
		p.IODurationMin = def.IODurationMin
	}
	if p.IODurationMax < p.IODurationMin {
		p.IODurationMax = p.IODurationMin
	}
	return p
}

// Generate produces a task set drawn from rnd. IDs run 1..Tasks, arrivals
// are nondecreasing with exponential gaps, and every deadline leaves at
// least DeadlineSlackMin ticks of headroom beyond the service demand.
// The same Params and seed always yield the same workload.
func Generate(par Params, rnd *rand.Rand) []TaskSpec {
	par = par.withDefaults()

	specs := make([]TaskSpec, 0, par.Tasks)
	arrival := int64(0)
	for i := 0; i < par.Tasks; i++ {
		if i > 0 {
			arrival += int64(rnd.ExpFloat64() * par.MeanInterarrival)
		}
		service := randRange(rnd, par.ServiceMin, par.ServiceMax)
		slack := randRange(rnd, par.DeadlineSlackMin, par.DeadlineSlackMax)
		prio := sched.PriorityNormal
		if rnd.Float64() < par.HighRatio {
			prio = sched.PriorityHigh
		}
		specs = append(specs, TaskSpec{
			ID:       sched.TaskID(i + 1),
			Arrival:  arrival,
			Deadline: arrival + service + slack,
			Priority: prio,
			Service:  service,
			Bursts:   bursts(par, rnd, service),
		})
	}
	return specs
}

// bursts rolls the IO phases for one task. Offsets are distinct and at
// least one tick away from both ends of the service demand, so a task
// never blocks before its first tick or after its last.
func bursts(par Params, rnd *rand.Rand, service int64) []IOBurst {
	if service < 2 || rnd.Float64() >= par.IOChance {
		return nil
	}
	n := 1 + rnd.Intn(par.IOBurstMax)
	seen := make(map[int64]bool, n)
	out := make([]IOBurst, 0, n)
	for i := 0; i < n; i++ {
		after := 1 + rnd.Int63n(service-1)
		if seen[after] {
			// collision just means one burst fewer
			continue
		}
		seen[after] = true
		out = append(out, IOBurst{
			AfterService: after,
			Duration:     randRange(rnd, par.IODurationMin, par.IODurationMax),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AfterService < out[j].AfterService })
	return out
}

// randRange draws uniformly from [lo, hi].
func randRange(rnd *rand.Rand, lo, hi int64) int64 {
	if hi <= lo {
		return lo
	}
	return lo + rnd.Int63n(hi-lo+1)
}

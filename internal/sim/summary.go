package sim

// Summary aggregates what happened over one run.
type Summary struct {
	Ticks     int64 // ticks actually simulated
	Tasks     int   // tasks in the workload
	Finished  int
	Unfinished int

	DeadlinesMet    int
	DeadlinesMissed int

	CPUBusy int64 // ticks the CPU spent running a task
	IOBusy  int64 // ticks the device spent serving a task

	Decisions       int64
	ContextSwitches int64 // times the CPU changed hands to a task
	Preemptions     int64 // times a still-runnable task lost the CPU

	TurnaroundTotal int64 // summed finish-minus-arrival over finished tasks
}

// CPUUtilization is the fraction of simulated ticks the CPU was busy.
func (s Summary) CPUUtilization() float64 {
	if s.Ticks == 0 {
		return 0
	}
	return float64(s.CPUBusy) / float64(s.Ticks)
}

// IOUtilization is the fraction of simulated ticks the device was busy.
func (s Summary) IOUtilization() float64 {
	if s.Ticks == 0 {
		return 0
	}
	return float64(s.IOBusy) / float64(s.Ticks)
}

// MeanTurnaround is the average ticks from arrival to completion across
// finished tasks.
func (s Summary) MeanTurnaround() float64 {
	if s.Finished == 0 {
		return 0
	}
	return float64(s.TurnaroundTotal) / float64(s.Finished)
}

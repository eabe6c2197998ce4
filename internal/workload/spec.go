// Package workload builds the task scripts a simulation run replays:
// who arrives when, how much CPU time they need, and where they stop
// for IO along the way.
package workload

import "dispatchq/internal/sched"

// IOBurst is one IO phase of a task: after consuming AfterService CPU
// ticks the task blocks and needs Duration ticks on the device.
type IOBurst struct {
	AfterService int64
	Duration     int64
}

// TaskSpec is the full script for one simulated task. Arrival and Deadline
// are absolute ticks; Service is the total CPU time the task needs. Bursts
// are sorted by AfterService and sit strictly inside (0, Service).
type TaskSpec struct {
	ID       sched.TaskID
	Arrival  int64
	Deadline int64
	Priority sched.Priority
	Service  int64
	Bursts   []IOBurst
}

// Snapshot returns the view of the task that the dispatch policy sees.
func (ts TaskSpec) Snapshot() sched.Task {
	return sched.Task{ID: ts.ID, Deadline: ts.Deadline, Priority: ts.Priority}
}

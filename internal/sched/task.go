package sched

// TaskID uniquely identifies a task for the task's whole lifetime.
type TaskID uint64

// NoTask is the sentinel id for "no task here": an idle CPU or IO slot in a
// Decision, or an unoccupied resource reported by the caller.
const NoTask TaskID = 0

// Priority is the two-level task priority.
type Priority int

const (
	PriorityNormal Priority = iota
	PriorityHigh
)

func (p Priority) String() string {
	switch p {
	case PriorityNormal:
		return "normal"
	case PriorityHigh:
		return "high"
	default:
		return "unknown"
	}
}

// Task is the read-only task snapshot carried by lifecycle events. Deadline
// is absolute, in ticks. The snapshot taken at arrival is the one that
// counts: later events for the same id never refresh it.
type Task struct {
	ID       TaskID
	Deadline int64
	Priority Priority
}

package sched

// EventKind tags a task lifecycle event.
type EventKind int

const (
	EventArrival EventKind = iota
	EventFinish
	EventIoRequest
	EventIoEnd
	EventTimer
)

func (k EventKind) String() string {
	switch k {
	case EventArrival:
		return "Arrival"
	case EventFinish:
		return "Finish"
	case EventIoRequest:
		return "IoRequest"
	case EventIoEnd:
		return "IoEnd"
	case EventTimer:
		return "Timer"
	default:
		return "Unknown"
	}
}

// Event is one entry of the per-tick batch handed to Decide. Task is
// meaningful for every kind except EventTimer, which carries only Time.
type Event struct {
	Kind EventKind
	Time int64
	Task Task
}

// NewArrival announces a task entering the system at the given tick.
func NewArrival(t Task, at int64) Event {
	return Event{Kind: EventArrival, Time: at, Task: t}
}

// NewFinish announces a task leaving the system.
func NewFinish(t Task, at int64) Event {
	return Event{Kind: EventFinish, Time: at, Task: t}
}

// NewIoRequest announces a task blocking on the IO device.
func NewIoRequest(t Task, at int64) Event {
	return Event{Kind: EventIoRequest, Time: at, Task: t}
}

// NewIoEnd announces a task's IO completing.
func NewIoEnd(t Task, at int64) Event {
	return Event{Kind: EventIoEnd, Time: at, Task: t}
}

// NewTimer announces a clock tick at the given time.
func NewTimer(at int64) Event {
	return Event{Kind: EventTimer, Time: at}
}

// Decision is the outcome of one Decide call: who gets the CPU and who gets
// the IO device for the next tick. The zero value leaves both idle.
type Decision struct {
	CPU TaskID
	IO  TaskID
}

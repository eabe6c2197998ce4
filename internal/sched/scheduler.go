// Package sched implements a tick-driven dispatch policy for one CPU and one
// IO device. Callers feed it batches of task lifecycle events plus the ids
// currently occupying both resources; it answers with the ids that should
// occupy them next.
package sched

import (
	"log/slog"
	"sort"
)

// record is the per-task scheduling state. Exactly one record exists per
// live task id; absence means the scheduler has never seen the task or has
// already dropped it on finish.
type record struct {
	task        Task
	ioActive    bool  // blocked on IO, ineligible for the CPU
	remaining   int64 // CPU estimate fixed at arrival; never consumed here
	slack       int64 // deadline - now - remaining, refreshed by timers
	ioRemaining int64 // countdown of the flat IO estimate while ioActive
	urgency     int
}

// Scheduler decides, once per tick, which task occupies the CPU and which
// occupies the IO device. It holds the only copy of per-task scheduling
// state: records are created by arrival events, mutated by IO and timer
// events, and dropped by finish events. Nothing outside this package reads
// or writes them.
//
// A Scheduler is not safe for concurrent use; each Decide call must finish
// before the next begins.
type Scheduler struct {
	cfg   Config
	table map[TaskID]*record
	log   *slog.Logger
}

// New returns a Scheduler with an empty state table. Non-positive config
// values fall back to their defaults.
func New(cfg Config) *Scheduler {
	return &Scheduler{
		cfg:   cfg.withDefaults(),
		table: make(map[TaskID]*record),
	}
}

// SetLogger enables debug diagnostics for events referencing unknown task
// ids. Purely observational: those events stay silent no-ops either way.
func (s *Scheduler) SetLogger(l *slog.Logger) { s.log = l }

// Decide applies one tick's event batch to the state table, in batch order,
// then picks a task for the CPU and one for the IO device. NoTask leaves the
// resource idle. Decide never fails: malformed input degrades to a no-op or
// an idle slot.
func (s *Scheduler) Decide(events []Event, currentCPU, currentIO TaskID) Decision {
	for _, ev := range events {
		s.apply(ev)
	}
	return Decision{
		CPU: s.selectCPU(),
		IO:  s.selectIO(currentCPU, currentIO),
	}
}

// apply mutates the state table for a single event.
func (s *Scheduler) apply(ev Event) {
	switch ev.Kind {
	case EventArrival:
		// A fresh record even when the id is already live: the new snapshot
		// wins wholesale.
		horizon := ev.Task.Deadline - ev.Time
		s.table[ev.Task.ID] = &record{
			task:      ev.Task,
			remaining: horizon,
			slack:     horizon,
		}

	case EventFinish:
		delete(s.table, ev.Task.ID)

	case EventIoRequest:
		rec, ok := s.table[ev.Task.ID]
		if !ok {
			s.debug("io request for unknown task", ev)
			return
		}
		rec.ioActive = true
		rec.ioRemaining = s.cfg.IOServiceTicks

	case EventIoEnd:
		rec, ok := s.table[ev.Task.ID]
		if !ok {
			s.debug("io end for unknown task", ev)
			return
		}
		rec.ioActive = false
		rec.ioRemaining = 0

	case EventTimer:
		s.onTimer(ev.Time)
	}
}

// onTimer refreshes slack and urgency for every task not blocked on IO, then
// counts the IO estimate down for those that are. The groups are disjoint,
// so each record is touched once per tick.
func (s *Scheduler) onTimer(now int64) {
	for _, rec := range s.table {
		if rec.ioActive {
			continue
		}
		rec.slack = rec.task.Deadline - now - rec.remaining
		rec.urgency = s.cfg.classify(rec.slack, rec.task.Priority)
	}
	for _, rec := range s.table {
		if rec.ioActive && rec.ioRemaining > 0 {
			rec.ioRemaining--
		}
	}
}

// cpuCandidate carries the CPU sort keys, copied out of the table before
// ordering so the comparator reads no shared state.
type cpuCandidate struct {
	id       TaskID
	priority Priority
	urgency  int
	slack    int64
}

// selectCPU re-sorts the ready set from scratch and returns the winner, or
// NoTask when every live task is blocked on IO. Priority dominates urgency,
// urgency dominates slack, and ascending id settles full ties, making the
// order total. There is no run-to-completion memory: the same task may win
// every tick, or lose the CPU the instant something stronger arrives.
func (s *Scheduler) selectCPU() TaskID {
	ready := make([]cpuCandidate, 0, len(s.table))
	for id, rec := range s.table {
		if rec.ioActive {
			continue
		}
		ready = append(ready, cpuCandidate{
			id:       id,
			priority: rec.task.Priority,
			urgency:  rec.urgency,
			slack:    rec.slack,
		})
	}
	if len(ready) == 0 {
		return NoTask
	}
	sort.Slice(ready, func(i, j int) bool {
		a, b := ready[i], ready[j]
		if a.priority != b.priority {
			return a.priority == PriorityHigh
		}
		if a.urgency != b.urgency {
			return a.urgency > b.urgency
		}
		if a.slack != b.slack {
			return a.slack < b.slack
		}
		return a.id < b.id
	})
	return ready[0].id
}

// ioCandidate carries the IO sort keys.
type ioCandidate struct {
	id          TaskID
	priority    Priority
	ioRemaining int64
}

// selectIO hands the device to at most one task. A busy device is never
// reassigned: the occupant's id is echoed back untouched, record or no
// record, until the caller reports the device free. On a free device the
// shortest-estimate waiter wins within each priority; the task the caller
// reported on the CPU is skipped, so one task never holds both resources.
func (s *Scheduler) selectIO(currentCPU, currentIO TaskID) TaskID {
	if currentIO != NoTask {
		return currentIO
	}
	waiting := make([]ioCandidate, 0, len(s.table))
	for id, rec := range s.table {
		if !rec.ioActive || id == currentCPU {
			continue
		}
		waiting = append(waiting, ioCandidate{
			id:          id,
			priority:    rec.task.Priority,
			ioRemaining: rec.ioRemaining,
		})
	}
	if len(waiting) == 0 {
		return NoTask
	}
	sort.Slice(waiting, func(i, j int) bool {
		a, b := waiting[i], waiting[j]
		if a.priority != b.priority {
			return a.priority == PriorityHigh
		}
		if a.ioRemaining != b.ioRemaining {
			return a.ioRemaining < b.ioRemaining
		}
		return a.id < b.id
	})
	return waiting[0].id
}

func (s *Scheduler) debug(msg string, ev Event) {
	if s.log == nil {
		return
	}
	s.log.Debug(msg, "kind", ev.Kind.String(), "task", ev.Task.ID, "time", ev.Time)
}

package sim

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"dispatchq/internal/sched"
	"dispatchq/internal/workload"
)

// taskRun is the driver-side bookkeeping for one scripted task. The policy
// keeps its own records; this is the ground truth those records are
// measured against.
type taskRun struct {
	spec       workload.TaskSpec
	consumed   int64 // CPU ticks executed so far
	burst      int   // index of the next IO burst to serve
	blocked    bool  // waiting for, or being served by, the device
	finished   bool
	finishTick int64
}

// nextBurstDue reports whether the task has just reached its next IO stop.
func (r *taskRun) nextBurstDue() bool {
	return r.burst < len(r.spec.Bursts) && r.consumed == r.spec.Bursts[r.burst].AfterService
}

// Driver replays a workload against the dispatch policy, one tick at a
// time: deliver the tick's events, ask for a decision, execute it for one
// tick, and queue whatever that execution causes.
type Driver struct {
	cfg    Config
	policy *sched.Scheduler
	log    *slog.Logger
	tracer *Tracer
	cal    *calendar
	tasks  map[sched.TaskID]*taskRun

	curCPU  sched.TaskID // who holds the CPU going into the next decision
	curIO   sched.TaskID // who holds the device going into the next decision
	lastCPU sched.TaskID // previous decision's CPU pick, for transition tracing

	trace []TraceEvent
	sum   Summary
}

// NewDriver wires a workload to a fresh policy instance. Task IDs must be
// nonzero and unique.
func NewDriver(cfg Config, specs []workload.TaskSpec, log *slog.Logger) (*Driver, error) {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	d := &Driver{
		cfg:    cfg,
		policy: sched.New(cfg.Sched),
		log:    log,
		tracer: newTracer(log),
		cal:    newCalendar(),
		tasks:  make(map[sched.TaskID]*taskRun, len(specs)),
	}
	d.policy.SetLogger(log)
	d.sum.Tasks = len(specs)

	for _, ts := range specs {
		if ts.ID == sched.NoTask {
			return nil, fmt.Errorf("task id 0 is reserved")
		}
		if _, ok := d.tasks[ts.ID]; ok {
			return nil, fmt.Errorf("task %d already exists", ts.ID)
		}
		d.tasks[ts.ID] = &taskRun{spec: ts}
		d.cal.schedule(sched.NewArrival(ts.Snapshot(), ts.Arrival))
	}
	return d, nil
}

// EnableCSVTrace mirrors the run trace into a CSV file at path. Call it
// before Run.
func (d *Driver) EnableCSVTrace(path string) error {
	return d.tracer.EnableCSV(path)
}

// Trace returns every trace row emitted so far, in order.
func (d *Driver) Trace() []TraceEvent {
	return d.trace
}

// Run drives the replay until every task has finished and all events have
// drained, or MaxTicks elapse, whichever comes first.
func (d *Driver) Run(ctx context.Context) (Summary, error) {
	var pacer *Pacer
	if d.cfg.TickMS > 0 {
		pacer = NewPacer(1)
		pacer.Start(time.Duration(d.cfg.TickMS) * time.Millisecond)
		defer pacer.Stop()
	}
	defer d.tracer.Close()

	for tick := int64(0); tick < d.cfg.MaxTicks; tick++ {
		if err := ctx.Err(); err != nil {
			return d.sum, err
		}
		pacer.Wait()

		d.step(tick)
		d.sum.Ticks = tick + 1
		if d.sum.Finished == d.sum.Tasks && d.cal.empty() {
			break
		}
	}

	d.sum.Unfinished = d.sum.Tasks - d.sum.Finished
	d.log.Info("run complete",
		"ticks", d.sum.Ticks,
		"finished", d.sum.Finished,
		"missed", d.sum.DeadlinesMissed,
	)
	return d.sum, nil
}

// step runs one tick: deliver due events, append the tick pulse, ask the
// policy, and execute its decision.
func (d *Driver) step(tick int64) {
	batch := d.cal.popDue(tick)
	for _, ev := range batch {
		d.note(ev, tick)
	}
	batch = append(batch, sched.NewTimer(tick))

	dec := d.policy.Decide(batch, d.curCPU, d.curIO)
	d.sum.Decisions++

	d.observe(dec, tick)
	d.execute(dec, tick)
}

// note updates driver bookkeeping as an event is delivered.
func (d *Driver) note(ev sched.Event, tick int64) {
	switch ev.Kind {
	case sched.EventArrival:
		d.emit(TraceEvent{
			Tick: tick, Kind: TraceArrive, Task: ev.Task.ID,
			CPU: d.curCPU, IO: d.curIO,
			Note: ev.Task.Priority.String(),
		})
	case sched.EventIoRequest:
		d.tasks[ev.Task.ID].blocked = true
		d.emit(TraceEvent{
			Tick: tick, Kind: TraceBlock, Task: ev.Task.ID,
			CPU: d.curCPU, IO: d.curIO,
		})
	case sched.EventIoEnd:
		d.tasks[ev.Task.ID].blocked = false
		if ev.Task.ID == d.curIO {
			d.curIO = sched.NoTask
		}
		d.emit(TraceEvent{
			Tick: tick, Kind: TraceIoDone, Task: ev.Task.ID,
			CPU: d.curCPU, IO: d.curIO,
		})
	}
}

// observe traces CPU hand-offs implied by the decision.
func (d *Driver) observe(dec sched.Decision, tick int64) {
	if dec.CPU == d.lastCPU {
		return
	}
	if prev, ok := d.tasks[d.lastCPU]; ok && !prev.finished && !prev.blocked {
		d.sum.Preemptions++
		d.emit(TraceEvent{
			Tick: tick, Kind: TracePreempt, Task: d.lastCPU,
			CPU: dec.CPU, IO: dec.IO,
		})
	}
	if dec.CPU == sched.NoTask {
		d.emit(TraceEvent{Tick: tick, Kind: TraceCPUIdle, CPU: dec.CPU, IO: dec.IO})
	} else {
		d.sum.ContextSwitches++
		d.emit(TraceEvent{
			Tick: tick, Kind: TraceDispatch, Task: dec.CPU,
			CPU: dec.CPU, IO: dec.IO,
		})
	}
	d.lastCPU = dec.CPU
}

// execute advances the chosen task by one CPU tick and starts device
// service if the device is free, queueing whatever follows from either.
func (d *Driver) execute(dec sched.Decision, tick int64) {
	d.curCPU = dec.CPU
	if run, ok := d.tasks[dec.CPU]; ok {
		run.consumed++
		d.sum.CPUBusy++
		switch {
		case run.nextBurstDue():
			// the task blocks now; the policy hears about it next tick
			d.cal.schedule(sched.NewIoRequest(run.spec.Snapshot(), tick+1))
			d.curCPU = sched.NoTask
		case run.consumed >= run.spec.Service:
			d.finish(run, tick)
			d.curCPU = sched.NoTask
		}
	}

	if dec.IO != sched.NoTask && d.curIO == sched.NoTask {
		if run, ok := d.tasks[dec.IO]; ok && run.blocked && run.burst < len(run.spec.Bursts) {
			b := run.spec.Bursts[run.burst]
			run.burst++
			d.curIO = dec.IO
			d.cal.schedule(sched.NewIoEnd(run.spec.Snapshot(), tick+b.Duration))
			d.emit(TraceEvent{
				Tick: tick, Kind: TraceIoGrant, Task: dec.IO,
				CPU: d.curCPU, IO: d.curIO,
				Note: fmt.Sprintf("%d ticks", b.Duration),
			})
		}
	}
	if d.curIO != sched.NoTask {
		d.sum.IOBusy++
	}
}

// finish retires a task that consumed its full service demand during tick.
func (d *Driver) finish(run *taskRun, tick int64) {
	run.finished = true
	run.finishTick = tick + 1
	d.cal.schedule(sched.NewFinish(run.spec.Snapshot(), tick+1))

	d.sum.Finished++
	d.sum.TurnaroundTotal += run.finishTick - run.spec.Arrival

	kind := TraceFinish
	note := ""
	if run.finishTick > run.spec.Deadline {
		d.sum.DeadlinesMissed++
		kind = TraceMiss
		note = fmt.Sprintf("late by %d", run.finishTick-run.spec.Deadline)
	} else {
		d.sum.DeadlinesMet++
	}
	d.emit(TraceEvent{
		Tick: tick, Kind: kind, Task: run.spec.ID,
		CPU: d.curCPU, IO: d.curIO,
		Note: note,
	})
}

func (d *Driver) emit(ev TraceEvent) {
	d.trace = append(d.trace, ev)
	d.tracer.Emit(ev)
}

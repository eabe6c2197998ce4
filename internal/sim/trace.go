package sim

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"dispatchq/internal/sched"
)

// TraceKind labels one transition observed while replaying a workload.
type TraceKind int

const (
	TraceArrive   TraceKind = iota // task entered the system
	TraceDispatch                  // task took the CPU
	TracePreempt                   // task lost the CPU while still runnable
	TraceCPUIdle                   // nothing runnable, CPU went idle
	TraceBlock                     // task left the CPU to wait for the device
	TraceIoGrant                   // device started serving a task
	TraceIoDone                    // device finished serving a task
	TraceFinish                    // task completed within its deadline
	TraceMiss                      // task completed past its deadline
)

// String returns a human-readable representation of the trace kind.
func (k TraceKind) String() string {
	switch k {
	case TraceArrive:
		return "Arrive"
	case TraceDispatch:
		return "Dispatch"
	case TracePreempt:
		return "Preempt"
	case TraceCPUIdle:
		return "CpuIdle"
	case TraceBlock:
		return "Block"
	case TraceIoGrant:
		return "IoGrant"
	case TraceIoDone:
		return "IoDone"
	case TraceFinish:
		return "Finish"
	case TraceMiss:
		return "Miss"
	default:
		return "Unknown"
	}
}

// TraceEvent is one row of the run trace. CPU and IO record who held each
// resource when the row was emitted.
type TraceEvent struct {
	Tick int64
	Kind TraceKind
	Task sched.TaskID
	CPU  sched.TaskID
	IO   sched.TaskID
	Note string
}

// Tracer fans trace rows out to debug logging and, optionally, a CSV file.
type Tracer struct {
	log       *slog.Logger
	csvFile   *os.File
	csvWriter *csv.Writer
}

func newTracer(log *slog.Logger) *Tracer {
	return &Tracer{log: log}
}

// EnableCSV starts mirroring trace rows into a CSV file at path. Call it
// before the run starts.
func (tr *Tracer) EnableCSV(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create trace file: %w", err)
	}
	w := csv.NewWriter(f)

	// write the header row first
	w.Write([]string{"tick", "event", "task", "cpu", "io", "note"})
	w.Flush()

	tr.csvFile = f
	tr.csvWriter = w
	return nil
}

// Emit records one trace row on every enabled output.
func (tr *Tracer) Emit(ev TraceEvent) {
	if tr.log != nil {
		tr.log.Debug(ev.Kind.String(),
			"tick", ev.Tick,
			"task", ev.Task,
			"cpu", ev.CPU,
			"io", ev.IO,
			"note", ev.Note,
		)
	}
	if tr.csvWriter != nil {
		tr.csvWriter.Write([]string{
			strconv.FormatInt(ev.Tick, 10),
			ev.Kind.String(),
			strconv.FormatUint(uint64(ev.Task), 10),
			strconv.FormatUint(uint64(ev.CPU), 10),
			strconv.FormatUint(uint64(ev.IO), 10),
			ev.Note,
		})
		tr.csvWriter.Flush()
	}
}

// Close flushes and closes the CSV output if one was enabled.
func (tr *Tracer) Close() {
	if tr.csvFile == nil {
		return
	}
	tr.csvWriter.Flush()
	tr.csvFile.Close()
}

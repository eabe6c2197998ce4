package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/caarlos0/env/v11"
	"github.com/dustin/go-humanize"

	"dispatchq/internal/sim"
	"dispatchq/internal/workload"
)

// envOverrides are the operational knobs that outrank the config file.
type envOverrides struct {
	ConfigPath string `env:"DISPATCHQ_CONFIG" envDefault:"config.yml"`
	Seed       int64  `env:"DISPATCHQ_SEED" envDefault:"-1"` // negative: keep the config's seed
	TraceCSV   string `env:"DISPATCHQ_TRACE"`
	LogLevel   string `env:"DISPATCHQ_LOG_LEVEL" envDefault:"info"`
}

func main() {
	if err := run(os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "dispatchsim:", err)
		os.Exit(1)
	}
}

func run(out io.Writer) error {
	var ov envOverrides
	if err := env.Parse(&ov); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel(ov.LogLevel),
	}))
	slog.SetDefault(logger)

	cfg, err := sim.Load(ov.ConfigPath)
	if err != nil {
		return err
	}
	if ov.Seed >= 0 {
		cfg.Seed = ov.Seed
	}
	if ov.TraceCSV != "" {
		cfg.TraceCSV = ov.TraceCSV
	}

	specs := workload.Generate(cfg.Workload, rand.New(rand.NewSource(cfg.Seed)))
	logger.Info("workload ready", "tasks", len(specs), "seed", cfg.Seed)

	drv, err := sim.NewDriver(cfg, specs, logger)
	if err != nil {
		return err
	}
	if cfg.TraceCSV != "" {
		if err := drv.EnableCSVTrace(cfg.TraceCSV); err != nil {
			return err
		}
		logger.Info("tracing to csv", "path", cfg.TraceCSV)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sum, err := drv.Run(ctx)
	if err != nil {
		return err
	}
	printSummary(out, sum)
	return nil
}

func logLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func printSummary(w io.Writer, sum sim.Summary) {
	// an auxiliary function to center a heading in the output
	center := func(str string, width int) string {
		spaces := int(float64(width-len(str)) / 2)
		return strings.Repeat(" ", spaces) + str + strings.Repeat(" ", width-(spaces+len(str)))
	}

	fmt.Fprintf(w, "=%s=\n", center("run summary", 34))
	fmt.Fprintf(w, "ticks simulated     %s\n", humanize.Comma(sum.Ticks))
	fmt.Fprintf(w, "decisions           %s\n", humanize.Comma(sum.Decisions))
	fmt.Fprintf(w, "tasks finished      %d/%d\n", sum.Finished, sum.Tasks)
	fmt.Fprintf(w, "deadlines met       %d (missed %d)\n", sum.DeadlinesMet, sum.DeadlinesMissed)
	fmt.Fprintf(w, "cpu utilization     %.1f%%\n", 100*sum.CPUUtilization())
	fmt.Fprintf(w, "io utilization      %.1f%%\n", 100*sum.IOUtilization())
	fmt.Fprintf(w, "mean turnaround     %.1f ticks\n", sum.MeanTurnaround())
	fmt.Fprintf(w, "context switches    %s (preemptions %s)\n",
		humanize.Comma(sum.ContextSwitches), humanize.Comma(sum.Preemptions))
}

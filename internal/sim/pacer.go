package sim

import (
	"sync/atomic"
	"time"
)

// Pacer slows a free-running replay down to wall-clock ticks so a run can
// be watched live. A nil *Pacer is valid and waits for nothing.
type Pacer struct {
	Ch    chan struct{}
	count atomic.Int64
	stop  chan struct{}
}

// NewPacer creates a pacer but does not start it.
func NewPacer(buffer int) *Pacer {
	return &Pacer{
		Ch:   make(chan struct{}, buffer),
		stop: make(chan struct{}),
	}
}

// Start begins emitting ticks at the given interval.
func (p *Pacer) Start(interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				p.count.Add(1)
				p.Ch <- struct{}{}
			case <-p.stop:
				close(p.Ch)
				return
			}
		}
	}()
}

// Stop signals the pacer to stop emitting ticks.
func (p *Pacer) Stop() {
	close(p.stop)
}

// Count returns the number of ticks emitted so far.
func (p *Pacer) Count() int64 {
	return p.count.Load()
}

// Wait blocks until the next tick arrives.
func (p *Pacer) Wait() {
	if p == nil {
		return
	}
	<-p.Ch
}

package sim

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPacerEmitsAndCounts(t *testing.T) {
	p := NewPacer(1)
	p.Start(time.Millisecond)
	defer p.Stop()

	for i := 0; i < 3; i++ {
		p.Wait()
	}
	assert.GreaterOrEqual(t, p.Count(), int64(3))
}

func TestNilPacerWaitReturnsImmediately(t *testing.T) {
	var p *Pacer
	p.Wait()
}

package sim

import (
	"github.com/emirpasic/gods/trees/redblacktree"

	"dispatchq/internal/sched"
)

// calKey orders pending events by due tick, then by insertion sequence,
// so events landing on the same tick replay in the order they were
// scheduled.
type calKey struct {
	tick int64
	seq  uint64
}

// calCmp is a comparator for calKey, for the red-black tree.
func calCmp(a, b any) int {
	ka := a.(calKey)
	kb := b.(calKey)
	switch {
	case ka.tick < kb.tick:
		return -1
	case ka.tick > kb.tick:
		return 1
	case ka.seq < kb.seq:
		return -1
	case ka.seq > kb.seq:
		return 1
	default:
		return 0
	}
}

// calendar is the time-ordered store of not-yet-delivered events.
type calendar struct {
	tree *redblacktree.Tree
	seq  uint64
}

func newCalendar() *calendar {
	return &calendar{tree: redblacktree.NewWith(calCmp)}
}

// schedule queues ev for delivery at its Time tick.
func (c *calendar) schedule(ev sched.Event) {
	c.seq++
	c.tree.Put(calKey{tick: ev.Time, seq: c.seq}, ev)
}

// popDue removes and returns every event due at or before now, oldest
// first.
func (c *calendar) popDue(now int64) []sched.Event {
	var due []sched.Event
	for {
		node := c.tree.Left()
		if node == nil {
			break
		}
		key := node.Key.(calKey)
		if key.tick > now {
			break
		}
		due = append(due, node.Value.(sched.Event))
		c.tree.Remove(key)
	}
	return due
}

func (c *calendar) empty() bool {
	return c.tree.Size() == 0
}

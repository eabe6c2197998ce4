package sched

// Urgency tiers. A record's tier is a pure function of its slack and the
// task's priority; timer events reclassify every record not blocked on IO.
const (
	urgencyNone     = 0
	urgencyElevated = 1
	urgencyCritical = 2
)

// classify maps slack to an urgency tier. Zero or negative slack means the
// task cannot meet its deadline even running uninterrupted from now on.
// High-priority tasks inside the boost window never classify below elevated.
func (c Config) classify(slack int64, prio Priority) int {
	tier := urgencyNone
	switch {
	case slack <= 0:
		tier = urgencyCritical
	case slack <= c.ElevatedSlack:
		tier = urgencyElevated
	}
	if prio == PriorityHigh && slack <= c.BoostSlack {
		tier = max(tier, urgencyElevated)
	}
	return tier
}

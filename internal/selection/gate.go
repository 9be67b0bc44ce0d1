package selection

import "time"

// Gate drops actions that arrive within Interval of the last accepted one.
// It is not safe for concurrent use; the UI loop owns it.
type Gate struct {
	interval time.Duration
	last     time.Time
	now      func() time.Time
}

// NewGate creates a Gate. A zero interval accepts everything.
func NewGate(interval time.Duration) *Gate {
	return &Gate{interval: interval, now: time.Now}
}

// Allow reports whether an action may run now and records it if so.
func (g *Gate) Allow() bool {
	t := g.now()
	if g.interval > 0 && !g.last.IsZero() && t.Sub(g.last) < g.interval {
		return false
	}
	g.last = t
	return true
}

// Reset forgets the last accepted action.
func (g *Gate) Reset() {
	g.last = time.Time{}
}

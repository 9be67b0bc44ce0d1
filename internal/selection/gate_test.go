package selection

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func TestGate_DropsActionsWithinInterval(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1000, 0)}
	g := NewGate(200 * time.Millisecond)
	g.now = clock.now

	assert.True(t, g.Allow())

	clock.advance(150 * time.Millisecond)
	assert.False(t, g.Allow())

	// dropped actions do not extend the window
	clock.advance(60 * time.Millisecond)
	assert.True(t, g.Allow())
}

func TestGate_ZeroIntervalAcceptsAll(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1000, 0)}
	g := NewGate(0)
	g.now = clock.now

	assert.True(t, g.Allow())
	assert.True(t, g.Allow())
}

func TestGate_Reset(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1000, 0)}
	g := NewGate(time.Second)
	g.now = clock.now

	assert.True(t, g.Allow())
	assert.False(t, g.Allow())

	g.Reset()
	assert.True(t, g.Allow())
}

package loop

import "time"

// Frame is handed to every system during one scheduler pass. Now is the host time
// since the game started; Delta is the time since the previous frame (zero on the
// first one).
type Frame struct {
	Index    int64
	Now      time.Duration
	Delta    time.Duration
	Commands *Commands
}

// Commands buffers work that must run after every system has seen the frame,
// such as applying queued player intents.
type Commands struct {
	defers []func()
}

// Defer queues fn to run when the frame is flushed.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Len reports how many operations are queued.
func (c *Commands) Len() int {
	return len(c.defers)
}

// Flush runs the queued operations in order and resets the buffer. Operations
// queued while flushing run in the same flush.
func (c *Commands) Flush() {
	for i := 0; i < len(c.defers); i++ {
		c.defers[i]()
	}
	clear(c.defers)
	c.defers = c.defers[:0]
}

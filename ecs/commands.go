package ecs

// Commands buffers work requested while systems run. The Scheduler flushes
// it after the last system of the frame, so deferred functions may change
// storage layout without disturbing an iteration in progress.
type Commands struct {
	defers []func()
}

// NewCommands returns an empty buffer.
func NewCommands() *Commands {
	return &Commands{}
}

// Defer queues fn to run when the buffer is flushed.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Empty reports whether nothing is queued.
func (c *Commands) Empty() bool {
	return len(c.defers) == 0
}

// Flush runs the queued functions in order, then resets the buffer.
// Functions queued while flushing run in the same flush.
func (c *Commands) Flush() {
	for i := 0; i < len(c.defers); i++ {
		c.defers[i]()
	}
	c.defers = c.defers[:0]
}

// Package playback advances a frame cursor over a motion span in response to
// discrete ticks.
package playback

// State is the transport state of a Controller.
type State int

const (
	// Stopped leaves the cursor where it is on every tick.
	Stopped State = iota

	// Playing advances the cursor by the increment on every tick.
	Playing

	// Rewinding snaps the cursor to the first frame on the next tick and
	// then stops.
	Rewinding
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case Stopped:
		return "stopped"
	case Playing:
		return "playing"
	case Rewinding:
		return "rewinding"
	default:
		return "unknown"
	}
}

// Controller is the playback state machine. Repeat is an overlay that only
// matters while Playing. The zero value is a stopped controller with an empty
// span and an increment of one.
type Controller struct {
	state     State
	repeat    bool
	frame     int
	first     int
	maxFrames int
	inc       int
}

// New returns a stopped controller over [first, first+maxFrames-1].
func New(first, maxFrames int) *Controller {
	c := &Controller{inc: 1}
	c.SetSpan(first, maxFrames)
	return c
}

// SetSpan replaces the playable span and pulls the cursor into it.
func (c *Controller) SetSpan(first, maxFrames int) {
	c.first = first
	c.maxFrames = maxFrames
	c.frame = c.clamp(c.frame)
}

// Span returns the first frame and frame count.
func (c *Controller) Span() (first, maxFrames int) {
	return c.first, c.maxFrames
}

// LastValid is the frame at which a playing cursor wraps or stops.
func (c *Controller) LastValid() int {
	return c.first + c.maxFrames - 2
}

// Frame returns the cursor.
func (c *Controller) Frame() int { return c.frame }

// State returns the transport state.
func (c *Controller) State() State { return c.state }

// Repeat reports whether playback wraps at the end of the span.
func (c *Controller) Repeat() bool { return c.repeat }

// Increment returns the per-tick advance, at least one.
func (c *Controller) Increment() int { return c.increment() }

func (c *Controller) increment() int {
	if c.inc < 1 {
		return 1
	}
	return c.inc
}

// SetIncrement sets how many frames a playing tick advances. Values below
// one are raised to one.
func (c *Controller) SetIncrement(n int) {
	if n < 1 {
		n = 1
	}
	c.inc = n
}

// Play starts playback and cancels a pending rewind.
func (c *Controller) Play() {
	c.state = Playing
}

// Pause stops playback and clears repeat.
func (c *Controller) Pause() {
	c.state = Stopped
	c.repeat = false
}

// RepeatOn starts looping playback.
func (c *Controller) RepeatOn() {
	c.state = Playing
	c.repeat = true
}

// Rewind arms a one-shot jump to the first frame and clears repeat.
func (c *Controller) Rewind() {
	c.state = Rewinding
	c.repeat = false
}

// Scrub moves the cursor directly and stops playback.
func (c *Controller) Scrub(frame int) {
	c.frame = c.clamp(frame)
	c.state = Stopped
}

// Tick runs one step of the state machine and returns the new cursor.
func (c *Controller) Tick() int {
	switch c.state {
	case Playing:
		if c.frame >= c.LastValid() {
			if c.repeat {
				c.frame = c.first
			} else {
				c.state = Stopped
			}
			break
		}
		c.frame += c.increment()
	case Rewinding:
		c.frame = c.first
		c.state = Stopped
	}
	return c.frame
}

func (c *Controller) clamp(frame int) int {
	if c.maxFrames <= 0 {
		return frame
	}
	if frame < c.first {
		return c.first
	}
	if last := c.first + c.maxFrames - 1; frame > last {
		return last
	}
	return frame
}

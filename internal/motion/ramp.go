package motion

import (
	"time"
)

// Ramp models an output level that changes gradually toward a target
// over a fixed duration, such as a calibrator panel warming up or
// cooling down. The level is interpolated between the value at the
// moment the target was set and the target itself, and snaps exactly
// onto the target at completion.
type Ramp struct {
	current  int
	origin   int
	target   int
	max      int
	duration time.Duration
	elapsed  time.Duration
	changing bool
}

// NewRamp creates a ramp over [0, max] taking duration to complete a
// change. A zero duration makes changes immediate.
func NewRamp(max int, duration time.Duration) *Ramp {
	return &Ramp{max: max, duration: duration}
}

// SetTarget starts a change toward the given level. Levels outside
// [0, max] are rejected without changing any state.
func (r *Ramp) SetTarget(level int) bool {
	if level < 0 || level > r.max {
		return false
	}
	r.origin = r.current
	r.target = level
	r.elapsed = 0
	if r.duration <= 0 || r.current == level {
		r.current = level
		r.changing = false
		return true
	}
	r.changing = true
	return true
}

// Tick advances the ramp by the elapsed wall time.
func (r *Ramp) Tick(elapsed time.Duration) {
	if !r.changing {
		return
	}
	r.elapsed += elapsed
	if r.elapsed >= r.duration {
		r.current = r.target
		r.changing = false
		return
	}
	// Intermediate levels truncate rather than round, so the level
	// only reaches the target on the completing tick.
	progress := float64(r.elapsed) / float64(r.duration)
	r.current = r.origin + int(progress*float64(r.target-r.origin))
}

// Level returns the current output level.
func (r *Ramp) Level() int { return r.current }

// Target returns the commanded output level.
func (r *Ramp) Target() int { return r.target }

// Max returns the maximum output level.
func (r *Ramp) Max() int { return r.max }

// Changing reports whether the ramp is still in transition.
func (r *Ramp) Changing() bool { return r.changing }

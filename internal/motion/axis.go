// Package motion provides the time-driven primitives the device layer
// is built on: saturating linear axes, wrap-around angular axes,
// brightness ramps and timed doors, advanced by a shared ticker.
package motion

import (
	"math"
	"time"
)

// Axis models a single mechanical axis moving toward a target at a
// fixed speed. A linear axis saturates at its limits; an angular axis
// wraps at 360 degrees and always travels the shorter arc.
//
// Axis is not safe for concurrent use; callers guard it with the
// owning device's lock.
type Axis struct {
	current float64
	target  float64
	speed   float64
	min     float64
	max     float64
	wrap    bool
	epsilon float64
	moving  bool
}

// NewLinearAxis creates an axis bounded to [min, max] moving at speed
// units per second.
func NewLinearAxis(initial, min, max, speed float64) *Axis {
	return &Axis{
		current: initial,
		target:  initial,
		speed:   speed,
		min:     min,
		max:     max,
		epsilon: 1e-9,
	}
}

// NewAngularAxis creates a wrap-around axis over [0, 360) moving at
// speed degrees per second.
func NewAngularAxis(initial, speed float64) *Axis {
	return &Axis{
		current: normalizeDegrees(initial),
		target:  normalizeDegrees(initial),
		speed:   speed,
		wrap:    true,
		epsilon: 1e-9,
	}
}

// SetEpsilon overrides the completion threshold. Positions closer to
// the target than epsilon snap to it on the next tick.
func (a *Axis) SetEpsilon(eps float64) {
	if eps > 0 {
		a.epsilon = eps
	}
}

func normalizeDegrees(v float64) float64 {
	v = math.Mod(v, 360)
	if v < 0 {
		v += 360
	}
	return v
}

// shortestArc maps an angular difference into (-180, 180].
func shortestArc(delta float64) float64 {
	delta = math.Mod(delta, 360)
	if delta > 180 {
		delta -= 360
	} else if delta <= -180 {
		delta += 360
	}
	return delta
}

// MoveTo commands the axis toward the given position. Positions
// outside the axis range are rejected without changing any state, and
// MoveTo reports false. Commanding a new position while moving
// retargets the axis without restarting it.
func (a *Axis) MoveTo(v float64) bool {
	if a.wrap {
		if v < 0 || v > 360 {
			return false
		}
		v = normalizeDegrees(v)
	} else if v < a.min || v > a.max {
		return false
	}
	a.target = v
	a.moving = a.distance() > a.epsilon
	if !a.moving {
		a.current = a.target
	}
	return true
}

// Offset commands a move relative to the current target.
func (a *Axis) Offset(delta float64) bool {
	v := a.target + delta
	if a.wrap {
		v = normalizeDegrees(v)
	}
	return a.MoveTo(v)
}

// Sync rewrites the current position without motion. The target
// follows so the axis stays idle.
func (a *Axis) Sync(v float64) bool {
	if a.wrap {
		if v < 0 || v > 360 {
			return false
		}
		v = normalizeDegrees(v)
	} else if v < a.min || v > a.max {
		return false
	}
	a.current = v
	a.target = v
	a.moving = false
	return true
}

// Halt stops the axis where it is. Idempotent.
func (a *Axis) Halt() {
	a.target = a.current
	a.moving = false
}

func (a *Axis) distance() float64 {
	if a.wrap {
		return math.Abs(shortestArc(a.target - a.current))
	}
	return math.Abs(a.target - a.current)
}

// Tick advances the axis by the elapsed wall time. The axis never
// overshoots: the final step snaps exactly onto the target.
func (a *Axis) Tick(elapsed time.Duration) {
	if !a.moving {
		return
	}
	delta := a.target - a.current
	if a.wrap {
		delta = shortestArc(delta)
	}
	step := a.speed * elapsed.Seconds()
	if math.Abs(delta) <= step || math.Abs(delta) <= a.epsilon {
		a.current = a.target
		a.moving = false
		return
	}
	if delta > 0 {
		a.current += step
	} else {
		a.current -= step
	}
	if a.wrap {
		a.current = normalizeDegrees(a.current)
	}
}

// Position returns the current position.
func (a *Axis) Position() float64 { return a.current }

// Target returns the commanded position.
func (a *Axis) Target() float64 { return a.target }

// Moving reports whether the axis has not yet reached its target.
func (a *Axis) Moving() bool { return a.moving }

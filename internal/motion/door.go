package motion

import "time"

// DoorState is the internal state of a binary door mechanism (dome
// shutter, calibrator cover). Device types map these onto their own
// protocol enumerations.
type DoorState int

const (
	DoorClosed DoorState = iota
	DoorOpen
	DoorOpening
	DoorClosing
	DoorError
	DoorUnknown
)

func (s DoorState) String() string {
	switch s {
	case DoorClosed:
		return "closed"
	case DoorOpen:
		return "open"
	case DoorOpening:
		return "opening"
	case DoorClosing:
		return "closing"
	case DoorError:
		return "error"
	default:
		return "unknown"
	}
}

// Door models a two-position mechanism that takes a fixed time to
// travel. Completion is the earlier of the travel time elapsing or an
// optional limit sensor reporting the end position.
type Door struct {
	state        DoorState
	travel       time.Duration
	elapsed      time.Duration
	openSensor   func() bool
	closedSensor func() bool
}

// NewDoor creates a door in the given initial state with the given
// travel time.
func NewDoor(travel time.Duration, initial DoorState) *Door {
	return &Door{state: initial, travel: travel}
}

// SetSensors installs optional limit sensors consulted during travel.
// Either may be nil.
func (d *Door) SetSensors(open, closed func() bool) {
	d.openSensor = open
	d.closedSensor = closed
}

// Open starts opening the door. Already open or already opening is a
// no-op. Opening from an error or unknown state is allowed; driving
// the mechanism to a limit is how it recovers.
func (d *Door) Open() {
	if d.state == DoorOpen || d.state == DoorOpening {
		return
	}
	d.state = DoorOpening
	d.elapsed = 0
}

// Close starts closing the door. Already closed or already closing is
// a no-op.
func (d *Door) Close() {
	if d.state == DoorClosed || d.state == DoorClosing {
		return
	}
	d.state = DoorClosing
	d.elapsed = 0
}

// Abort stops the door mid-travel, leaving the mechanism in an error
// state. Not moving is a no-op.
func (d *Door) Abort() {
	if d.Moving() {
		d.state = DoorError
	}
}

// Halt stops the door mid-travel, leaving the position unknown rather
// than faulted. Not moving is a no-op.
func (d *Door) Halt() {
	if d.Moving() {
		d.state = DoorUnknown
	}
}

// Tick advances the door by the elapsed wall time.
func (d *Door) Tick(elapsed time.Duration) {
	if !d.Moving() {
		return
	}
	d.elapsed += elapsed
	switch d.state {
	case DoorOpening:
		if (d.openSensor != nil && d.openSensor()) || d.elapsed >= d.travel {
			d.state = DoorOpen
		}
	case DoorClosing:
		if (d.closedSensor != nil && d.closedSensor()) || d.elapsed >= d.travel {
			d.state = DoorClosed
		}
	}
}

// State returns the current door state.
func (d *Door) State() DoorState { return d.state }

// Moving reports whether the door is in travel.
func (d *Door) Moving() bool {
	return d.state == DoorOpening || d.state == DoorClosing
}

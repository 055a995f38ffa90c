// Package mouse derives cursor velocity from position samples and computes
// the mouse-speed indicator's pointer geometry.
package mouse

import (
	"math"
	"time"

	"github.com/justDeeevin/NuhxBoard/geometry"
)

// InnerRingRatio is the fixed size of the indicator's filled center,
// relative to the outer radius.
const InnerRingRatio = 0.2

// sensitivityScale squashes raw pixels-per-second speed into the tanh
// domain; the value matches the reference tool so existing sensitivity
// settings feel the same.
const sensitivityScale = 0.000005

// Dynamics keeps the rolling mouse state. It is not internally locked; the
// owning session serializes access.
type Dynamics struct {
	prev     geometry.Point
	prevTime time.Time
	havePrev bool

	center     geometry.Point
	fromCenter bool

	velocity geometry.Point
}

func NewDynamics() *Dynamics {
	return &Dynamics{}
}

// UseCenter switches velocity to be derived from the offset to center (the
// chosen display's midpoint) instead of frame-to-frame deltas.
func (d *Dynamics) UseCenter(center geometry.Point) {
	d.center = center
	d.fromCenter = true
}

// UseDeltas switches back to frame-to-frame velocity.
func (d *Dynamics) UseDeltas() {
	d.fromCenter = false
}

// Sample records a cursor position. A zero or negative interval since the
// previous sample yields zero velocity for this tick; it never produces
// NaN or Inf.
func (d *Dynamics) Sample(x, y float64, at time.Time) {
	pos := geometry.Point{X: x, Y: y}

	if !d.havePrev {
		d.prev = pos
		d.prevTime = at
		d.havePrev = true

		return
	}

	dt := at.Sub(d.prevTime).Seconds()
	if dt <= 0 {
		d.velocity = geometry.Point{}
		d.prev = pos
		d.prevTime = at

		return
	}

	ref := d.prev
	if d.fromCenter {
		ref = d.center
	}

	d.velocity = geometry.Point{
		X: (pos.X - ref.X) / dt,
		Y: (pos.Y - ref.Y) / dt,
	}
	d.prev = pos
	d.prevTime = at
}

// Velocity returns the most recent velocity vector in pixels per second.
func (d *Dynamics) Velocity() geometry.Point {
	return d.velocity
}

// Reset drops sampled state, for layout swaps.
func (d *Dynamics) Reset() {
	d.havePrev = false
	d.velocity = geometry.Point{}
}

// Pointer is the indicator's needle: a direction and a length already
// clamped to the outer radius.
type Pointer struct {
	Angle     float64
	Magnitude float64
}

// Pointer computes the indicator needle for an outer ring of the given
// radius. The magnitude squashes speed through tanh scaled by the user's
// sensitivity, so it always lands in [0, radius].
func (d *Dynamics) Pointer(radius, sensitivity float64) Pointer {
	return PointerFor(d.velocity, radius, sensitivity)
}

// PointerFor is the pure form of Pointer, for callers that carry a velocity
// sample rather than the dynamics object.
func PointerFor(velocity geometry.Point, radius, sensitivity float64) Pointer {
	speed := velocity.Length()
	if speed == 0 {
		return Pointer{}
	}

	return Pointer{
		Angle:     velocity.Angle(),
		Magnitude: radius * math.Tanh(sensitivity*sensitivityScale*speed),
	}
}

package object

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Probe is the body a client steers. Its contacts are reported back to the
// owning client so the manifold can be inspected live.
type Probe struct {
	*Body

	Speed    float64 // Target speed while a direction key is held
	Accel    float64 // How quickly velocity approaches the target, per second
	TurnRate float64 // Radians per second while a rotate key is held
}

// NewProbe creates a probe owned by client ownerID.
func NewProbe(ownerID int, kind Kind, pos r2.Vec, size float64) (*Probe, error) {
	b, err := NewBody(kind, pos, size)
	if err != nil {
		return nil, err
	}
	b.OwnerID = ownerID

	return &Probe{
		Body:     b,
		Speed:    35.0,
		Accel:    8.0,
		TurnRate: 2.5,
	}, nil
}

// Update applies the owner's input, then moves the probe like any body.
func (p *Probe) Update(ctx UpdateContext) (bool, error) {
	in := ctx.Input
	dt := ctx.Delta.Seconds()

	if in.Cycle {
		if err := p.SetKind(p.Kind.Next()); err != nil {
			return false, err
		}
	}

	var dir r2.Vec
	if in.Left {
		dir.X--
	}
	if in.Right {
		dir.X++
	}
	if in.Up {
		dir.Y--
	}
	if in.Down {
		dir.Y++
	}

	var target r2.Vec
	if n := r2.Norm(dir); n > 0 {
		target = r2.Scale(p.Speed/n, dir)
	}

	// Ease toward the target so collisions still visibly push the probe.
	k := math.Min(1, p.Accel*dt)
	p.Vel = r2.Add(p.Vel, r2.Scale(k, r2.Sub(target, p.Vel)))

	switch {
	case in.RotateCW && !in.RotateCCW:
		p.Spin = p.TurnRate
	case in.RotateCCW && !in.RotateCW:
		p.Spin = -p.TurnRate
	default:
		p.Spin = 0
	}

	return p.Body.Update(ctx)
}

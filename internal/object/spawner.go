package object

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r2"
)

// BodySpawner keeps the number of free world bodies at a target level.
// It adds or retires at most one body per update so changes ripple in
// rather than appearing at once.
type BodySpawner struct {
	target int
	max    int

	MinSize  float64
	MaxSize  float64
	MaxSpeed float64
	Margin   float64 // Distance kept from the playfield edge when spawning
}

// NewBodySpawner creates a spawner with a target body count clamped to
// [0, limit].
func NewBodySpawner(target, limit int) *BodySpawner {
	s := &BodySpawner{
		max:      limit,
		MinSize:  3.0,
		MaxSize:  6.0,
		MaxSpeed: 15.0,
		Margin:   3.0,
	}
	s.SetTarget(target)
	return s
}

// Target returns the current target count.
func (s *BodySpawner) Target() int {
	return s.target
}

// SetTarget changes the target count, clamped to [0, max].
func (s *BodySpawner) SetTarget(n int) {
	if n < 0 {
		n = 0
	}
	if n > s.max {
		n = s.max
	}
	s.target = n
}

// Update spawns or retires one world body when the count is off target.
func (s *BodySpawner) Update(ctx UpdateContext) (bool, error) {
	count := 0
	var newest *Body
	for _, obj := range ctx.Objects {
		if b, ok := obj.(*Body); ok && isFree(b) {
			count++
			newest = b
		}
	}

	switch {
	case count > s.target && newest != nil:
		newest.Removed = true
	case count < s.target && ctx.Spawner != nil:
		b, err := s.randomBody(ctx.Bounds)
		if err != nil {
			return false, err
		}
		ctx.Spawner.Spawn(b)
	}
	return false, nil
}

// AppendView is a no-op; the spawner is not visible.
func (s *BodySpawner) AppendView(dst []View) []View {
	return dst
}

// isFree reports whether b is a live, dynamic, unowned body.
func isFree(b *Body) bool {
	return !b.Static && b.OwnerID == 0 && !b.Removed
}

// randomBody creates a body of random kind, size and motion inside bounds.
func (s *BodySpawner) randomBody(bounds r2.Box) (*Body, error) {
	size := s.MinSize + rand.Float64()*(s.MaxSize-s.MinSize)
	inset := s.Margin + size

	pos := r2.Vec{
		X: randBetween(bounds.Min.X+inset, bounds.Max.X-inset),
		Y: randBetween(bounds.Min.Y+inset, bounds.Max.Y-inset),
	}

	b, err := NewBody(Kind(rand.Intn(int(bodyKinds))), pos, size)
	if err != nil {
		return nil, err
	}

	angle := rand.Float64() * 2 * math.Pi
	speed := s.MaxSpeed * (0.3 + 0.7*rand.Float64())
	b.Vel = r2.Vec{X: math.Cos(angle) * speed, Y: math.Sin(angle) * speed}
	b.Angle = rand.Float64() * 2 * math.Pi
	b.Spin = (rand.Float64() - 0.5) * 2.0
	b.Sync()
	return b, nil
}

// randBetween returns a uniform value in [lo, hi], or their midpoint when
// the range is empty.
func randBetween(lo, hi float64) float64 {
	if hi <= lo {
		return (lo + hi) / 2
	}
	return lo + rand.Float64()*(hi-lo)
}

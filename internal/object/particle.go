package object

import (
	"math"
	"math/rand"
	"sync"

	"gonum.org/v1/gonum/spatial/r2"
)

// particlePool is a sync.Pool for reusing Particle objects to reduce allocations.
var particlePool = sync.Pool{
	New: func() any {
		return &Particle{}
	},
}

// Particle is a short-lived contact spark.
type Particle struct {
	Pos         r2.Vec
	Vel         r2.Vec
	Lifetime    float64 // Seconds remaining
	MaxLifetime float64 // Initial lifetime (for fade calculation)
	Drag        float64 // Velocity decay per 1/60 s (1.0 = no drag)
}

// NewParticle creates a single particle from the pool.
func NewParticle(pos, vel r2.Vec, lifetime float64) *Particle {
	p := particlePool.Get().(*Particle)
	p.Pos = pos
	p.Vel = vel
	p.Lifetime = lifetime
	p.MaxLifetime = lifetime
	p.Drag = 0.9
	return p
}

// Release returns the particle to the pool for reuse.
// Should be called when the particle is removed from the world.
func (p *Particle) Release() {
	particlePool.Put(p)
}

// SpawnSparks emits count particles from point, spraying within a cone
// around normal in both directions.
func SpawnSparks(point, normal r2.Vec, count int, speed float64, spawner Spawner) {
	if spawner == nil || count <= 0 {
		return
	}

	base := math.Atan2(normal.Y, normal.X)
	for i := 0; i < count; i++ {
		angle := base + (rand.Float64()-0.5)*math.Pi/2
		if i%2 == 1 {
			angle += math.Pi
		}
		spd := speed * (0.5 + rand.Float64())
		life := 0.15 + rand.Float64()*0.2

		vel := r2.Vec{X: math.Cos(angle) * spd, Y: math.Sin(angle) * spd}
		spawner.Spawn(NewParticle(point, vel, life))
	}
}

// Update moves the particle and checks lifetime.
func (p *Particle) Update(ctx UpdateContext) (bool, error) {
	dt := ctx.Delta.Seconds()

	p.Lifetime -= dt
	if p.Lifetime <= 0 {
		return true, nil
	}

	drag := math.Pow(p.Drag, dt*60) // Normalize drag to ~60fps
	p.Vel = r2.Scale(drag, p.Vel)
	p.Pos = r2.Add(p.Pos, r2.Scale(dt, p.Vel))
	return false, nil
}

// AppendView appends the spark unless it has mostly faded.
func (p *Particle) AppendView(dst []View) []View {
	if p.MaxLifetime > 0 && p.Lifetime/p.MaxLifetime < 0.25 {
		return dst
	}
	return append(dst, View{Kind: KindSpark, Point: p.Pos})
}

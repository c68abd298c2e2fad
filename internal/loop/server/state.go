package server

import (
	"time"

	"github.com/tomz197/satplay/internal/object"
	"github.com/tomz197/satplay/internal/physics"
	"github.com/tomz197/satplay/sat"
	"gonum.org/v1/gonum/spatial/r2"
)

// WorldState holds shared playground state (objects, bounds, timing).
// This is managed by the Server and shared across all clients via snapshots.
type WorldState struct {
	Objects []object.Object
	toSpawn []object.Object // Objects to add after current update cycle
	Bounds  r2.Box          // Playfield; bodies bounce off its edges
	Delta   time.Duration   // Frame delta time

	// Reusable caches for collision detection (avoids allocations)
	bodyCache []*object.Body
	contacts  []Contact

	// Spatial grid for broad-phase collision detection (reused each frame)
	grid *physics.SpatialGrid
}

// Contact is a colliding pair found in the last tick.
type Contact struct {
	// Owner is the client whose probe took part, or 0 for a pair of world
	// bodies.
	Owner int
	// Point is where the pair's bounding boxes intersect; normal arrows
	// start here.
	Point r2.Vec
	// Manifold is the penetration before resolution. When Owner is set the
	// normal points toward that client's probe.
	Manifold sat.Manifold
}

// WorldSnapshot is an immutable snapshot of the world state for rendering.
type WorldSnapshot struct {
	Views    []object.View
	Contacts []Contact
	Bodies   int // Free world bodies
	Target   int // Spawner target
	Players  int
	Bounds   r2.Box
	Delta    time.Duration
}

// OwnContact returns the first contact involving client id's probe.
func (s *WorldSnapshot) OwnContact(id int) (Contact, bool) {
	for _, c := range s.Contacts {
		if c.Owner == id {
			return c, true
		}
	}
	return Contact{}, false
}

// ProbeView returns the view of client id's probe.
func (s *WorldSnapshot) ProbeView(id int) (object.View, bool) {
	for _, v := range s.Views {
		if v.OwnerID == id && v.Kind != object.KindSpark {
			return v, true
		}
	}
	return object.View{}, false
}

// NewWorldState creates a world covering bounds.
func NewWorldState(bounds r2.Box, cellSize float64) *WorldState {
	return &WorldState{
		Objects: []object.Object{},
		Bounds:  bounds,
		grid:    physics.NewSpatialGrid(bounds, cellSize),
	}
}

// AddObject adds an object to the world.
func (w *WorldState) AddObject(obj object.Object) {
	w.Objects = append(w.Objects, obj)
}

// RemoveObject drops target from the world immediately.
func (w *WorldState) RemoveObject(target object.Object) {
	kept := w.Objects[:0]
	for _, obj := range w.Objects {
		if obj != target {
			kept = append(kept, obj)
		}
	}
	clear(w.Objects[len(kept):])
	w.Objects = kept
}

// Spawn queues an object to be added after the current update cycle.
// Implements object.Spawner interface.
func (w *WorldState) Spawn(obj object.Object) {
	w.toSpawn = append(w.toSpawn, obj)
}

// FlushSpawned adds all queued objects to the world and clears the queue.
func (w *WorldState) FlushSpawned() {
	w.Objects = append(w.Objects, w.toSpawn...)
	clear(w.toSpawn)
	w.toSpawn = w.toSpawn[:0]
}

// FreeBodies counts the dynamic, unowned bodies in the world.
func (w *WorldState) FreeBodies() int {
	n := 0
	for _, obj := range w.Objects {
		if b, ok := obj.(*object.Body); ok && !b.Static && b.OwnerID == 0 && !b.Removed {
			n++
		}
	}
	return n
}

// Occupied reports whether shape overlaps any body in the world.
func (w *WorldState) Occupied(shape sat.Shape) bool {
	for _, obj := range w.Objects {
		if b := object.BodyOf(obj); b != nil && sat.Overlaps(shape, b.Shape()) {
			return true
		}
	}
	return false
}

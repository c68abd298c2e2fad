// Package object holds the playground entities: moving bodies, the
// player-steered probe, static walls, contact sparks and the spawner that
// keeps the body population at its target.
package object

import (
	"time"

	"github.com/tomz197/satplay/internal/draw"
	"github.com/tomz197/satplay/internal/input"
	"gonum.org/v1/gonum/spatial/r2"
)

// Spawner allows objects to spawn new objects during update.
type Spawner interface {
	Spawn(obj Object)
}

// Input is an alias for the input package's Input type.
type Input = input.Input

// UpdateContext provides all the information an object needs during update.
type UpdateContext struct {
	Delta   time.Duration
	Input   Input
	Bounds  r2.Box // Playfield; bodies bounce off its edges
	Spawner Spawner
	Objects []Object
}

// DrawContext provides drawing resources for views.
type DrawContext struct {
	Canvas *draw.Canvas
}

// Object is an updatable playground entity. Rendering happens on value
// snapshots so clients never touch live objects.
type Object interface {
	// Update updates the object state. Returns true if the object should be removed.
	Update(ctx UpdateContext) (remove bool, err error)

	// AppendView appends the object's render snapshot to dst.
	AppendView(dst []View) []View
}

// Releasable is implemented by pooled objects that can be returned to a pool.
type Releasable interface {
	// Release returns the object to its pool for reuse.
	Release()
}

// ReleaseObject releases an object back to its pool if it implements Releasable.
func ReleaseObject(obj Object) {
	if r, ok := obj.(Releasable); ok {
		r.Release()
	}
}

// BodyOf returns the body behind obj, or nil when obj is not a body.
func BodyOf(obj Object) *Body {
	switch o := obj.(type) {
	case *Body:
		return o
	case *Probe:
		return o.Body
	}
	return nil
}

package server

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/tomz197/satplay/internal/loop/config"
	"github.com/tomz197/satplay/internal/object"
	"github.com/tomz197/satplay/sat"
	"gonum.org/v1/gonum/spatial/r2"
)

const tick = 16 * time.Millisecond

// newBareServer returns a server whose world holds only objs.
func newBareServer(t *testing.T, objs ...object.Object) *Server {
	t.Helper()
	s := NewServer(nil)
	s.world.Objects = append(s.world.Objects[:0], objs...)
	return s
}

func mustBody(t *testing.T, kind object.Kind, pos r2.Vec, size float64) *object.Body {
	t.Helper()
	b, err := object.NewBody(kind, pos, size)
	require.NoError(t, err)
	return b
}

func TestNewServerPopulatesWorld(t *testing.T) {
	s := NewServer(nil)

	statics := 0
	for _, obj := range s.world.Objects {
		if b := object.BodyOf(obj); b != nil && b.Static {
			statics++
		}
	}
	require.Equal(t, 3, statics)

	snap := s.GetSnapshot()
	require.NotNil(t, snap)
	require.Equal(t, config.InitialBodyTarget, snap.Target)
	require.Equal(t, float64(config.WorldWidth), snap.Bounds.Max.X)

	for i := 0; i < config.InitialBodyTarget; i++ {
		s.Step(tick)
	}
	snap = s.GetSnapshot()
	require.Equal(t, config.InitialBodyTarget, snap.Bodies)
	require.GreaterOrEqual(t, len(snap.Views), config.InitialBodyTarget+statics)
}

func TestStepResolvesOverlap(t *testing.T) {
	a := mustBody(t, object.KindBox, r2.Vec{X: 50, Y: 40}, 4)
	b := mustBody(t, object.KindCircle, r2.Vec{X: 54, Y: 40}, 3)
	a.Vel = r2.Vec{X: 10}
	b.Vel = r2.Vec{X: -10}
	s := newBareServer(t, a, b)

	s.Step(tick)

	snap := s.GetSnapshot()
	require.Len(t, snap.Contacts, 1)
	c := snap.Contacts[0]
	require.Zero(t, c.Owner)
	require.Less(t, c.Manifold.Normal.X, 0.0, "normal points from the circle toward the box")
	require.Greater(t, c.Manifold.Overlap, 0.0)

	// The pair is pushed apart and now separates.
	require.Less(t, a.Vel.X, 0.0)
	require.Greater(t, b.Vel.X, 0.0)
	require.Greater(t, a.Contact, 0.0)
	require.Greater(t, b.Contact, 0.0)

	for i := 0; i < 30; i++ {
		s.Step(tick)
	}
	require.Empty(t, s.GetSnapshot().Contacts)
}

func TestStepIgnoresStaticPairs(t *testing.T) {
	a, err := object.NewStaticBody(object.KindBox, r2.Vec{X: 50, Y: 40}, 4)
	require.NoError(t, err)
	b, err := object.NewStaticBody(object.KindBox, r2.Vec{X: 51, Y: 40}, 4)
	require.NoError(t, err)
	s := newBareServer(t, a, b)

	s.Step(tick)
	require.Empty(t, s.GetSnapshot().Contacts)
	require.Equal(t, r2.Vec{X: 50, Y: 40}, a.Pos)
}

func TestStaticBodyStopsDynamic(t *testing.T) {
	wall, err := object.NewWall(r2.Box{Min: r2.Vec{X: 60, Y: 20}, Max: r2.Vec{X: 62, Y: 60}})
	require.NoError(t, err)
	ball := mustBody(t, object.KindCircle, r2.Vec{X: 55, Y: 40}, 2)
	ball.Vel = r2.Vec{X: 40}
	s := newBareServer(t, wall, ball)

	for i := 0; i < 20; i++ {
		s.Step(tick)
		require.LessOrEqual(t, ball.Bounds().Max.X, 60.0+1e-6)
	}
	require.Less(t, ball.Vel.X, 0.0)
	require.Equal(t, r2.Vec{X: 61, Y: 40}, wall.Pos)
}

func TestProbeLifecycle(t *testing.T) {
	s := newBareServer(t)
	h := s.RegisterClient("alice")
	require.Equal(t, 1, h.ID)

	s.SpawnProbe(h.ID, object.KindTriangle)
	require.NotNil(t, h.Probe)
	require.Equal(t, object.KindTriangle, h.Probe.Kind)

	s.Step(tick)
	snap := s.GetSnapshot()
	require.Equal(t, 1, snap.Players)
	v, ok := snap.ProbeView(h.ID)
	require.True(t, ok)
	require.Equal(t, object.KindTriangle, v.Kind)
	require.Zero(t, snap.Bodies, "probes are not world bodies")

	// Respawning replaces the old probe.
	s.SpawnProbe(h.ID, object.KindCircle)
	s.Step(tick)
	probes := 0
	for _, v := range s.GetSnapshot().Views {
		if v.OwnerID == h.ID {
			probes++
		}
	}
	require.Equal(t, 1, probes)

	s.UnregisterClient(h.ID)
	s.Step(tick)
	_, open := <-h.EventsCh
	require.False(t, open)
	snap = s.GetSnapshot()
	require.Zero(t, snap.Players)
	_, ok = snap.ProbeView(h.ID)
	require.False(t, ok)
}

func TestSpawnProbeUnknownClient(t *testing.T) {
	s := newBareServer(t)
	s.SpawnProbe(42, object.KindBox)
	s.Step(tick)
	require.Empty(t, s.GetSnapshot().Views)
}

func TestProbeSpawnsOnFreeSpot(t *testing.T) {
	s := NewServer(nil)
	for i := 0; i < 5; i++ {
		s.Step(tick)
	}
	h := s.RegisterClient("bob")
	s.SpawnProbe(h.ID, object.KindHexagon)

	for _, obj := range s.world.Objects {
		b := object.BodyOf(obj)
		if b == nil || b == h.Probe.Body {
			continue
		}
		require.False(t, sat.Overlaps(b.Shape(), h.Probe.Shape()))
	}
}

func TestProbeContactIsOwned(t *testing.T) {
	s := newBareServer(t)
	h := s.RegisterClient("carol")
	s.SpawnProbe(h.ID, object.KindBox)

	// Park a world body right of the probe.
	p := h.Probe
	p.Pos = r2.Vec{X: 40, Y: 40}
	p.Sync()
	other := mustBody(t, object.KindCircle, r2.Vec{X: 44, Y: 40}, 2)
	s.world.AddObject(other)

	s.Step(tick)
	c, ok := s.GetSnapshot().OwnContact(h.ID)
	require.True(t, ok)
	require.Less(t, c.Manifold.Normal.X, 0.0, "normal points toward the probe")
	require.InDelta(t, 1, c.Manifold.Normal.X*c.Manifold.Normal.X+c.Manifold.Normal.Y*c.Manifold.Normal.Y, 1e-9)

	_, ok = s.GetSnapshot().OwnContact(h.ID + 1)
	require.False(t, ok)
}

func TestInputAdjustsTarget(t *testing.T) {
	s := newBareServer(t)
	h := s.RegisterClient("dave")
	s.Step(tick)

	before := s.GetSnapshot().Target
	s.SendInput(h.ID, object.Input{More: true})
	s.SendInput(h.ID, object.Input{})
	s.Step(tick)
	require.Equal(t, before+1, s.GetSnapshot().Target, "taps survive a later input in the same tick")

	s.Step(tick)
	require.Equal(t, before+1, s.GetSnapshot().Target, "taps apply once")

	s.SendInput(h.ID, object.Input{Fewer: true})
	s.Step(tick)
	require.Equal(t, before, s.GetSnapshot().Target)
}

func TestProbeFollowsInput(t *testing.T) {
	s := newBareServer(t)
	h := s.RegisterClient("erin")
	s.SpawnProbe(h.ID, object.KindCircle)
	start := h.Probe.Pos

	for i := 0; i < 10; i++ {
		s.SendInput(h.ID, object.Input{Right: true})
		s.Step(tick)
	}
	require.Greater(t, h.Probe.Pos.X, start.X)
	require.InDelta(t, start.Y, h.Probe.Pos.Y, 1e-9)
}

func TestStepClampsDelta(t *testing.T) {
	b := mustBody(t, object.KindCircle, r2.Vec{X: 20, Y: 40}, 1)
	b.Vel = r2.Vec{X: 10}
	s := newBareServer(t, b)

	s.Step(time.Hour)
	require.Equal(t, config.MaxDelta, s.GetSnapshot().Delta)
	require.InDelta(t, 21, b.Pos.X, 1e-9)
}

func TestSnapshotIsStable(t *testing.T) {
	b := mustBody(t, object.KindBox, r2.Vec{X: 20, Y: 40}, 2)
	b.Vel = r2.Vec{X: 10}
	s := newBareServer(t, b)

	s.Step(tick)
	snap := s.GetSnapshot()
	x := snap.Views[0].Polygon.Centroid().X

	s.Step(tick)
	require.Equal(t, x, snap.Views[0].Polygon.Centroid().X)
	require.NotSame(t, snap, s.GetSnapshot())
}

func TestShutdownNotifiesClients(t *testing.T) {
	s := newBareServer(t)
	h := s.RegisterClient("frank")
	s.Step(tick)

	s.Shutdown(10 * time.Millisecond)
	ev := <-h.EventsCh
	require.Equal(t, EventServerShutdown, ev.Type)
}

func TestRunStopsOnCancel(t *testing.T) {
	s := newBareServer(t)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	h := s.RegisterClient("gina")
	require.Eventually(t, func() bool {
		return s.GetSnapshot().Players == 1
	}, time.Second, 5*time.Millisecond)
	require.Equal(t, 1, h.ID)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestRegisterClientTruncatesName(t *testing.T) {
	s := newBareServer(t)
	h := s.RegisterClient("a-very-long-username-indeed")
	require.Len(t, h.Username, config.MaxUsernameLength)
}

func TestContactPoint(t *testing.T) {
	a := r2.Box{Min: r2.Vec{X: 0, Y: 0}, Max: r2.Vec{X: 4, Y: 4}}
	b := r2.Box{Min: r2.Vec{X: 2, Y: 1}, Max: r2.Vec{X: 6, Y: 3}}
	require.Equal(t, r2.Vec{X: 3, Y: 2}, contactPoint(a, b))
}

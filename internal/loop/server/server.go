package server

import (
	"context"
	"io"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tomz197/satplay/internal/loop/config"
	"github.com/tomz197/satplay/internal/object"
	"gonum.org/v1/gonum/spatial/r2"
)

// GameServer is the interface clients use to communicate with the server.
// Decouples the Client from the concrete Server implementation, enabling
// testing and potential network-based server implementations.
type GameServer interface {
	RegisterClient(username string) *ClientHandle
	UnregisterClient(clientID int)
	SendInput(clientID int, input object.Input)
	GetSnapshot() *WorldSnapshot
	SpawnProbe(clientID int, kind object.Kind)
}

// Server manages the shared world state and processes inputs from all clients.
type Server struct {
	world        *WorldState
	spawner      *object.BodySpawner
	snapshot     atomic.Pointer[WorldSnapshot]
	clients      map[int]*ClientHandle
	nextClientID int
	inputChan    chan ClientInput
	registerCh   chan *ClientHandle
	unregisterCh chan int
	mu           sync.RWMutex
	logger       *log.Logger

	// Reusable probe set to avoid per-frame allocation
	probeSet map[object.Object]struct{}
}

// Compile-time check that Server implements GameServer.
var _ GameServer = (*Server)(nil)

// ClientHandle represents a client's connection to the server.
type ClientHandle struct {
	ID       int
	Username string // Display name for this client
	Probe    *object.Probe
	Input    object.Input
	EventsCh chan ClientEvent // Events sent to client
}

// ClientInput represents input from a specific client.
type ClientInput struct {
	ClientID int
	Input    object.Input
}

// ClientEvent represents an event sent from server to client.
type ClientEvent struct {
	Type ClientEventType
}

// ClientEventType identifies the type of client event.
type ClientEventType int

const (
	EventServerShutdown ClientEventType = iota
)

// NewServer creates a server with the default obstacles and body spawner.
// A nil logger discards output.
func NewServer(logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	bounds := r2.Box{Max: r2.Vec{X: config.WorldWidth, Y: config.WorldHeight}}
	world := NewWorldState(bounds, config.GridCellSize)

	s := &Server{
		world:        world,
		spawner:      object.NewBodySpawner(config.InitialBodyTarget, config.MaxBodyTarget),
		clients:      make(map[int]*ClientHandle),
		nextClientID: 1,
		inputChan:    make(chan ClientInput, 256),
		registerCh:   make(chan *ClientHandle, 16),
		unregisterCh: make(chan int, 16),
		logger:       logger,
		probeSet:     make(map[object.Object]struct{}),
	}

	if err := s.addObstacles(); err != nil {
		logger.Error("Could not place obstacles", "error", err)
	}
	world.AddObject(s.spawner)

	// Create initial empty snapshot
	s.snapshot.Store(&WorldSnapshot{
		Bounds: bounds,
		Target: s.spawner.Target(),
	})

	return s
}

// addObstacles places the static shapes bodies collide with.
func (s *Server) addObstacles() error {
	w, h := float64(config.WorldWidth), float64(config.WorldHeight)

	bar, err := object.NewWall(r2.Box{
		Min: r2.Vec{X: w * 0.2, Y: h*0.75 - 1.5},
		Max: r2.Vec{X: w * 0.4, Y: h*0.75 + 1.5},
	})
	if err != nil {
		return err
	}
	s.world.AddObject(bar)

	hub, err := object.NewStaticBody(object.KindHexagon, r2.Vec{X: w * 0.5, Y: h * 0.4}, 8)
	if err != nil {
		return err
	}
	s.world.AddObject(hub)

	wedge, err := object.NewStaticBody(object.KindTriangle, r2.Vec{X: w * 0.8, Y: h * 0.7}, 7)
	if err != nil {
		return err
	}
	s.world.AddObject(wedge)
	return nil
}

// Run starts the server loop. Blocks until the context is cancelled.
func (s *Server) Run(ctx context.Context) {
	lastTime := time.Now()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		frameStart := time.Now()
		delta := frameStart.Sub(lastTime)
		lastTime = frameStart

		s.Step(delta)

		// Frame timing
		elapsed := time.Since(frameStart)
		if elapsed < config.ServerTickTime {
			time.Sleep(config.ServerTickTime - elapsed)
		}
	}
}

// Step advances the world by delta and publishes a new snapshot.
// Long pauses are clamped so bodies cannot tunnel through each other.
func (s *Server) Step(delta time.Duration) {
	if delta > config.MaxDelta {
		delta = config.MaxDelta
	}
	s.world.Delta = delta

	// Process registrations/unregistrations
	s.processRegistrations()

	// Collect all pending inputs
	s.collectInputs()

	// Update world state
	s.updateWorld()

	// Create new snapshot for clients
	s.createSnapshot()
}

// Shutdown gracefully shuts down the server by notifying all connected clients
// and waiting for them to disconnect (up to the given timeout).
// The caller should cancel the server context after Shutdown returns.
func (s *Server) Shutdown(timeout time.Duration) {
	// Notify all connected clients about the shutdown
	s.mu.RLock()
	for _, handle := range s.clients {
		select {
		case handle.EventsCh <- ClientEvent{Type: EventServerShutdown}:
		default:
		}
	}
	s.mu.RUnlock()

	// Wait for all clients to disconnect, or timeout
	deadline := time.After(timeout)
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-deadline:
			return
		case <-ticker.C:
			s.mu.RLock()
			remaining := len(s.clients)
			s.mu.RUnlock()
			if remaining == 0 {
				return
			}
		}
	}
}

// RegisterClient registers a new client with the given username and returns its handle.
func (s *Server) RegisterClient(username string) *ClientHandle {
	s.mu.Lock()
	id := s.nextClientID
	s.nextClientID++
	s.mu.Unlock()

	if len(username) > config.MaxUsernameLength {
		username = username[:config.MaxUsernameLength]
	}

	handle := &ClientHandle{
		ID:       id,
		Username: username,
		EventsCh: make(chan ClientEvent, 16),
	}

	s.registerCh <- handle
	return handle
}

// UnregisterClient removes a client from the server.
func (s *Server) UnregisterClient(clientID int) {
	s.unregisterCh <- clientID
}

// SendInput sends input from a client to the server.
func (s *Server) SendInput(clientID int, input object.Input) {
	input.Pressed = nil // Aliases the client's read buffer
	select {
	case s.inputChan <- ClientInput{ClientID: clientID, Input: input}:
	default:
		// Input channel full, drop input
	}
}

// GetSnapshot returns the current world snapshot.
func (s *Server) GetSnapshot() *WorldSnapshot {
	return s.snapshot.Load()
}

// SpawnProbe gives the client a fresh probe of the given kind, replacing
// any probe it already has. The probe is placed on a free spot when one
// can be found quickly.
func (s *Server) SpawnProbe(clientID int, kind object.Kind) {
	// The client's registration may still be queued.
	s.processRegistrations()

	s.mu.Lock()
	defer s.mu.Unlock()

	handle, ok := s.clients[clientID]
	if !ok {
		return
	}

	if handle.Probe != nil {
		s.world.RemoveObject(handle.Probe)
		handle.Probe = nil
	}

	probe, err := object.NewProbe(clientID, kind, s.world.Bounds.Min, config.ProbeSize)
	if err != nil {
		s.logger.Error("Could not create probe", "client", clientID, "error", err)
		return
	}
	s.placeProbe(probe)

	handle.Probe = probe
	s.world.AddObject(probe)
	s.logger.Debug("Probe spawned", "client", clientID, "kind", kind, "pos", probe.Pos)
}

// placeProbe moves probe to a random spot that does not overlap any body.
// After config.ProbeSpawnTries misses it keeps the last candidate.
func (s *Server) placeProbe(probe *object.Probe) {
	b := s.world.Bounds
	inset := config.ProbeSize + 1

	for i := 0; i < config.ProbeSpawnTries; i++ {
		probe.Pos = r2.Vec{
			X: b.Min.X + inset + rand.Float64()*(b.Max.X-b.Min.X-2*inset),
			Y: b.Min.Y + inset + rand.Float64()*(b.Max.Y-b.Min.Y-2*inset),
		}
		probe.Sync()
		if !s.world.Occupied(probe.Shape()) {
			return
		}
	}
}

// processRegistrations handles pending client registrations/unregistrations.
func (s *Server) processRegistrations() {
	for {
		select {
		case handle := <-s.registerCh:
			s.mu.Lock()
			s.clients[handle.ID] = handle
			s.mu.Unlock()
			s.logger.Info("Client joined", "client", handle.ID, "user", handle.Username)
		case clientID := <-s.unregisterCh:
			s.mu.Lock()
			if handle, ok := s.clients[clientID]; ok {
				// Remove probe from world
				if handle.Probe != nil {
					s.world.RemoveObject(handle.Probe)
				}
				close(handle.EventsCh)
				delete(s.clients, clientID)
				s.logger.Info("Client left", "client", clientID, "user", handle.Username)
			}
			s.mu.Unlock()
		default:
			return
		}
	}
}

// collectInputs gathers all pending inputs from clients. Held keys follow
// the latest input; taps accumulate until the next world update so none
// are lost when several inputs arrive in one tick.
func (s *Server) collectInputs() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for {
		select {
		case ci := <-s.inputChan:
			if handle, ok := s.clients[ci.ClientID]; ok {
				handle.Input = mergeInput(handle.Input, ci.Input)
			}
		default:
			return
		}
	}
}

// mergeInput combines a pending input with a newer one.
func mergeInput(prev, next object.Input) object.Input {
	next.Cycle = next.Cycle || prev.Cycle
	next.More = next.More || prev.More
	next.Fewer = next.Fewer || prev.Fewer
	return next
}

// consumeTaps clears the one-shot actions after they have been applied.
func consumeTaps(in *object.Input) {
	in.Cycle = false
	in.More = false
	in.Fewer = false
}

// updateWorld updates the world state based on collected inputs.
func (s *Server) updateWorld() {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Population changes from any client, and the probe set for O(1) lookup
	clear(s.probeSet)
	for _, handle := range s.clients {
		if handle.Input.More {
			s.spawner.SetTarget(s.spawner.Target() + 1)
		}
		if handle.Input.Fewer {
			s.spawner.SetTarget(s.spawner.Target() - 1)
		}
		if handle.Probe != nil {
			s.probeSet[handle.Probe] = struct{}{}
		}
	}

	// Update each probe with its owner's input
	for _, handle := range s.clients {
		if handle.Probe != nil {
			ctx := object.UpdateContext{
				Delta:   s.world.Delta,
				Input:   handle.Input,
				Bounds:  s.world.Bounds,
				Spawner: s.world,
				Objects: s.world.Objects,
			}
			if _, err := handle.Probe.Update(ctx); err != nil {
				s.logger.Warn("Probe update failed", "client", handle.ID, "error", err)
			}
		}
		consumeTaps(&handle.Input)
	}

	// Update non-probe objects with empty input
	ctx := object.UpdateContext{
		Delta:   s.world.Delta,
		Bounds:  s.world.Bounds,
		Spawner: s.world,
		Objects: s.world.Objects,
	}

	kept := s.world.Objects[:0]
	for _, obj := range s.world.Objects {
		// Skip probes - already updated (O(1) lookup)
		if _, isProbe := s.probeSet[obj]; isProbe {
			kept = append(kept, obj)
			continue
		}

		remove, err := obj.Update(ctx)
		if err != nil {
			s.logger.Warn("Object update failed", "error", err)
		}
		if !remove {
			kept = append(kept, obj)
		} else {
			object.ReleaseObject(obj)
		}
	}
	clear(s.world.Objects[len(kept):])
	s.world.Objects = kept
	s.world.FlushSpawned()

	// Check collisions
	s.world.checkCollisions()
}

// createSnapshot creates an immutable snapshot of the world state.
// Views and contacts are copied into fresh slices so clients may keep a
// snapshot, e.g. while paused, without racing the next tick.
func (s *Server) createSnapshot() {
	s.mu.RLock()
	defer s.mu.RUnlock()

	views := make([]object.View, 0, len(s.world.Objects))
	for _, obj := range s.world.Objects {
		views = obj.AppendView(views)
	}

	var contacts []Contact
	if len(s.world.contacts) > 0 {
		contacts = append(contacts, s.world.contacts...)
	}

	snapshot := &WorldSnapshot{
		Views:    views,
		Contacts: contacts,
		Bodies:   s.world.FreeBodies(),
		Target:   s.spawner.Target(),
		Players:  len(s.clients),
		Bounds:   s.world.Bounds,
		Delta:    s.world.Delta,
	}

	s.snapshot.Store(snapshot)
}

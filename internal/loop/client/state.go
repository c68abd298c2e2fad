package client

import (
	"time"

	"github.com/tomz197/satplay/internal/draw"
	"github.com/tomz197/satplay/internal/loop/server"
	"github.com/tomz197/satplay/internal/object"
)

// GameState represents the current phase for a client.
type GameState int

const (
	GameStateStart    GameState = iota // Title screen
	GameStatePlaying                   // Probe in the world
	GameStateShutdown                  // Server is shutting down
)

// ClientState holds per-client state (input, overlays, pause, etc.).
// Each client has their own instance, managed by the Client.
type ClientState struct {
	Input         object.Input
	GameState     GameState             // This client's phase
	ProbeKind     object.Kind           // Shape requested when the probe spawns
	Paused        bool                  // Freeze the displayed snapshot
	ShowNormals   bool                  // Draw manifold normals over contacts
	frozen        *server.WorldSnapshot // Snapshot shown while paused
	termSizeFunc  draw.TermSizeFunc     // Function to get terminal size
	Running       bool                  // Client loop running
	delta         time.Duration         // Frame delta time (client-side)
	shutdownTimer float64               // Countdown before auto-disconnect on shutdown
	isInactive    bool                  // Whether the client is in inactive warning state
	prevGameState GameState             // Game state drawn last frame
	wasInactive   bool                  // Inactivity state drawn last frame
}

// NewClientState creates a new initialized client state.
func NewClientState() *ClientState {
	return &ClientState{
		GameState:     GameStateStart,
		prevGameState: GameStateStart,
		ProbeKind:     object.KindBox,
		ShowNormals:   true,
		Running:       true,
	}
}

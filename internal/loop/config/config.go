// Package config centralizes all tunable playground parameters.
package config

import "time"

// View resolution - the visible viewport in logical units.
// Actual rendering scales to fit terminal size.
const (
	ViewWidth  = 120 // Logical viewport width
	ViewHeight = 80  // Logical viewport height (in sub-pixels, so 40 terminal rows)
)

// World dimensions. The whole playfield fits the viewport, so there is no
// camera.
const (
	WorldWidth  = ViewWidth
	WorldHeight = ViewHeight
)

// Max render resolution in terminal cells, one column and two sub-pixel
// rows per logical unit. Larger terminals get a border around a centered
// canvas.
const (
	MaxTermWidth  = ViewWidth
	MaxTermHeight = ViewHeight / 2
)

// Bodies
const (
	InitialBodyTarget = 12
	MaxBodyTarget     = 40
	ProbeSize         = 5.0 // Probe circumradius
	ProbeSpawnTries   = 32  // Attempts to find a free spot for a new probe
	MaxUsernameLength = 16
)

// Physics
const (
	Restitution  = 0.8
	GridCellSize = 16.0 // Broad-phase cell size, about two body diameters
	MaxDelta     = 100 * time.Millisecond
)

// Contact sparks
const (
	SparkCount    = 4
	SparkSpeed    = 20.0
	SparkMinSpeed = 5.0 // Approach speed below which contacts stay quiet
)

// Normal arrows drawn over contacts, in logical units.
const (
	NormalArrowMin   = 4.0
	NormalArrowScale = 3.0 // Arrow length per unit of overlap
)

// Shutdown
const (
	ShutdownDisplaySeconds = 10.0 // Seconds to show shutdown message before auto-disconnect
)

// Inactivity
const (
	InactivityWarnUser       = 90  // Seconds
	InactivityDisconnectUser = 120 // Seconds
)

// Client rendering
const (
	ClientTargetFPS       = 60
	ClientTargetFrameTime = time.Second / ClientTargetFPS
)

// Server tick rate
const (
	ServerTickRate = 60
	ServerTickTime = time.Second / ServerTickRate
)

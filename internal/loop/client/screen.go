package client

import (
	"fmt"
	"time"

	"github.com/tomz197/satplay/internal/draw"
	"github.com/tomz197/satplay/internal/loop/config"
	"github.com/tomz197/satplay/internal/loop/server"
	"github.com/tomz197/satplay/internal/object"
	"gonum.org/v1/gonum/spatial/r2"
)

// drawFrame draws the current frame.
func (c *Client) drawFrame() error {
	// On game state or inactivity transitions, do a full terminal clear
	// so UI elements from the previous state don't persist on screen.
	stateChanged := c.state.GameState != c.state.prevGameState
	inactiveChanged := c.state.isInactive != c.state.wasInactive
	if stateChanged || inactiveChanged {
		c.chunkWriter.WriteString("\033[H\033[2J")
		c.canvas.ForceRedraw()
		c.state.prevGameState = c.state.GameState
		c.state.wasInactive = c.state.isInactive
	}

	c.canvas.Clear()

	snapshot := c.snapshot()
	ctx := object.DrawContext{Canvas: c.canvas}

	// Draw all views from the snapshot
	for i := range snapshot.Views {
		snapshot.Views[i].Draw(ctx, c.handle.ID)
	}

	if c.state.ShowNormals && c.state.GameState == GameStatePlaying {
		c.drawNormals(snapshot.Contacts)
	}

	// Render canvas to terminal
	c.canvas.Render(c.chunkWriter)

	// Draw border when terminal exceeds max render resolution
	c.canvas.RenderBorder(c.chunkWriter)

	// Draw UI overlay
	c.drawUI(snapshot)

	return c.chunkWriter.Flush()
}

// drawNormals draws each contact's manifold normal as an arrow whose
// length grows with the overlap. The client's own contacts are green.
func (c *Client) drawNormals(contacts []server.Contact) {
	for _, contact := range contacts {
		color := draw.ColorGray
		if contact.Owner == c.handle.ID {
			color = draw.ColorGreen
		}
		c.canvas.SetColor(color)

		m := contact.Manifold
		length := config.NormalArrowMin + config.NormalArrowScale*m.Overlap
		head := r2.Add(contact.Point, r2.Scale(length, m.Normal))
		c.canvas.DrawArrow(draw.PointFromVec(contact.Point), draw.PointFromVec(head))
	}
}

// drawUI draws the UI overlay.
func (c *Client) drawUI(snapshot *server.WorldSnapshot) {
	termWidth := c.canvas.TerminalWidth()
	termHeight := c.canvas.TerminalHeight()
	centerX := termWidth / 2
	centerY := termHeight / 2

	if c.state.GameState == GameStateShutdown {
		c.drawShutdownScreen(centerX, centerY)
		return
	}

	if c.state.isInactive {
		c.drawInactivityScreen(centerX, centerY)
		return
	}

	switch c.state.GameState {
	case GameStatePlaying:
		c.drawPlayingHUD(termWidth, termHeight, snapshot)
	case GameStateStart:
		c.drawStartScreen(centerX, centerY)
	}
}

// drawInactivityScreen draws the inactivity warning screen.
func (c *Client) drawInactivityScreen(centerX, centerY int) {
	cw := c.chunkWriter
	title := "INACTIVITY WARNING"
	cw.WriteAt(centerX-len(title)/2, centerY-2, title)

	msg := fmt.Sprintf(
		"You have been inactive for too long. You will be disconnected in %d seconds.",
		int(config.InactivityDisconnectUser-time.Since(c.lastInput).Seconds()),
	)
	cw.WriteAt(centerX-len(msg)/2, centerY, msg)

	hint := "Press any key to continue"
	cw.WriteAt(centerX-len(hint)/2, centerY+2, hint)
}

// drawStartScreen draws the title screen.
func (c *Client) drawStartScreen(centerX, centerY int) {
	// ASCII art title (figlet "small" font)
	titleArt := []string{
		`  ___   _ _____   ___ _      ___   __ `,
		` / __| /_\_   _| | _ \ |    /_\ \ / / `,
		` \__ \/ _ \| |   |  _/ |__ / _ \ V /  `,
		` |___/_/ \_\_|   |_| |____/_/ \_\_|   `,
		`                                      `,
	}

	// Find max width for centering
	titleWidth := 0
	for _, line := range titleArt {
		if len(line) > titleWidth {
			titleWidth = len(line)
		}
	}

	// Draw title art centered
	cw := c.chunkWriter
	titleStartY := centerY - 8
	for i, line := range titleArt {
		cw.WriteAt(centerX-titleWidth/2, titleStartY+i, line)
	}

	// Subtitle
	subtitle := "~ Separating axis collisions, live ~"
	cw.WriteAt(centerX-len(subtitle)/2, titleStartY+len(titleArt)+1, subtitle)

	// Controls section
	controlsY := titleStartY + len(titleArt) + 3
	controlHeader := "Controls"
	cw.WriteAt(centerX-len(controlHeader)/2, controlsY, controlHeader)

	controlLines := []string{
		"WASD / arrows  . . . Move",
		"Z X  . . . . . . . Rotate",
		"C  . . . . . . Next shape",
		"+ -  . . . . . More/fewer",
		"N  . . . . . . .  Normals",
		"SPACE  . . . . . .  Pause",
		"ENTER  . . . . .  Respawn",
		"Q  . . . . . . . . . Quit",
	}
	for i, line := range controlLines {
		cw.WriteAt(centerX-len(line)/2, controlsY+1+i, line)
	}

	// Blinking start prompt
	if time.Now().UnixMilli()/600%2 == 0 {
		prompt := ">>  Press SPACE to Start  <<"
		cw.WriteAt(centerX-len(prompt)/2, controlsY+len(controlLines)+2, prompt)
	}
}

// drawPlayingHUD draws the in-game HUD.
// Text fields use fixed-width formatting so shrinking values don't leave
// residual characters on screen (since we no longer clear every frame).
func (c *Client) drawPlayingHUD(termWidth, termHeight int, snapshot *server.WorldSnapshot) {
	cw := c.chunkWriter

	// Probe shape (top left)
	shape := "none"
	if v, ok := snapshot.ProbeView(c.handle.ID); ok {
		shape = v.Kind.String()
	}
	shapeText := fmt.Sprintf("Shape: %-8s", shape)
	cw.WriteAt(2, 1, shapeText)

	// Paused marker (top center)
	pausedText := "        "
	if c.state.Paused {
		pausedText = " PAUSED "
	}
	cw.WriteAt(termWidth/2-len(pausedText)/2, 1, pausedText)

	// Body population (top right)
	bodiesText := fmt.Sprintf("Bodies: %3d/%-3d", snapshot.Bodies, snapshot.Target)
	cw.WriteAt(termWidth-len(bodiesText)-1, 1, bodiesText)

	// Probe contact manifold (bottom left)
	contactText := "no contact"
	if contact, ok := snapshot.OwnContact(c.handle.ID); ok {
		contactText = contact.Manifold.String()
	}
	cw.WriteAt(2, termHeight, fmt.Sprintf("%-44s", contactText))

	// Live players (bottom right)
	livePlayersText := fmt.Sprintf("Players: %-4d", snapshot.Players)
	cw.WriteAt(termWidth-len(livePlayersText)-1, termHeight, livePlayersText)
}

// drawShutdownScreen draws the server shutdown notification screen.
func (c *Client) drawShutdownScreen(centerX, centerY int) {
	cw := c.chunkWriter
	title := "SERVER SHUTTING DOWN"
	cw.WriteAt(centerX-len(title)/2, centerY-3, title)

	msg1 := "The server is restarting for maintenance."
	cw.WriteAt(centerX-len(msg1)/2, centerY-1, msg1)

	msg2 := "Please reconnect in a moment."
	cw.WriteAt(centerX-len(msg2)/2, centerY, msg2)

	remaining := int(c.state.shutdownTimer) + 1
	countdown := fmt.Sprintf("Disconnecting in %d seconds...", remaining)
	cw.WriteAt(centerX-len(countdown)/2, centerY+2, countdown)

	hint := "Press Q to disconnect now"
	cw.WriteAt(centerX-len(hint)/2, centerY+4, hint)
}

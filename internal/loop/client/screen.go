package client

import (
	"fmt"
	"strings"
	"time"

	"github.com/tomz197/strike/internal/draw"
	"github.com/tomz197/strike/internal/loop/config"
	"github.com/tomz197/strike/internal/loop/session"
	"github.com/tomz197/strike/internal/loop/sim"
	"github.com/tomz197/strike/internal/weapon"
)

// Sizes of the drawn entities, in arena units.
const (
	playerRadius = 12.0
	enemyRadius  = 10.0
	aimLength    = 30.0
)

// drawFrame draws the current frame.
func (c *Client) drawFrame(now time.Time) error {
	cw := c.chunkWriter
	cw.ClearScreen()
	c.canvas.Clear()

	snap := c.ctrl.Snapshot()
	c.drawArena(snap)
	c.canvas.Render(cw)

	c.drawHUD(snap, now)
	c.drawUI(snap)

	return cw.Flush()
}

// drawArena rasterizes the arena border and every entity.
func (c *Client) drawArena(snap *session.Snapshot) {
	a := snap.Arena
	c.canvas.DrawRect(0, 0, a.Width-1, a.Height-1, draw.Gray)

	if snap.Phase == sim.NotStarted {
		return
	}

	for _, e := range snap.Enemies {
		c.canvas.FillCircle(e.X, e.Y, enemyRadius, draw.Red)
	}
	for _, b := range snap.Bullets {
		c.canvas.Set(b.X, b.Y, draw.Yellow)
	}

	p := snap.Player
	col := draw.Green
	if snap.Phase == sim.Ended {
		col = draw.Magenta
	}
	c.canvas.FillCircle(p.X, p.Y, playerRadius, col)
	c.canvas.DrawRay(p.X, p.Y, p.Angle, aimLength, draw.White)
}

// drawHUD draws the status line above the canvas.
// Fields are fixed width so the line keeps its layout as values change.
func (c *Client) drawHUD(snap *session.Snapshot, now time.Time) {
	p := snap.Player
	hud := fmt.Sprintf("HP %-3d  $%-6d  Kills %-4d  Wave %-3d  %s %s",
		p.Health, p.Money, snap.Kills, snap.Wave, p.Weapon, p.Skin)
	c.chunkWriter.WriteAt(1, 0, hud)

	if msg := c.state.Message(now); msg != "" {
		c.chunkWriter.WriteAt(c.canvas.TerminalWidth()-len(msg)+1, 0, msg)
	}
}

// drawUI draws the overlay for the current phase.
func (c *Client) drawUI(snap *session.Snapshot) {
	width := c.canvas.TerminalWidth()
	centerY := c.canvas.TerminalHeight() / 2

	if c.state.isInactive {
		c.drawLines(width, centerY-2, []string{
			"INACTIVITY WARNING",
			"",
			fmt.Sprintf("Disconnecting in %d seconds.",
				int(config.InactivityDisconnectUser-time.Since(c.lastInput).Seconds())),
			"Press any key to continue",
		})
		return
	}

	switch snap.Phase {
	case sim.NotStarted:
		c.drawStartScreen(width, centerY)
	case sim.Running:
		if c.state.ShopOpen {
			c.drawShop(width, centerY, snap)
		}
	case sim.Ended:
		c.drawGameOver(width, centerY, snap)
	}
}

// drawLines writes lines centred horizontally, starting at row.
func (c *Client) drawLines(width, row int, lines []string) {
	for i, line := range lines {
		if line == "" {
			continue
		}
		c.chunkWriter.WriteCentered(width, row+i, line)
	}
}

// drawStartScreen draws the title screen.
func (c *Client) drawStartScreen(width, centerY int) {
	titleArt := []string{
		` ___ _____ ___ ___ _  _____ `,
		`/ __|_   _| _ \_ _| |/ / __|`,
		`\__ \ | | |   /| || ' <| _| `,
		`|___/ |_| |_|_\___|_|\_\___|`,
	}
	c.drawLines(width, centerY-7, titleArt)

	controls := []string{
		"WASD / arrows . . . . Move",
		"Mouse . . . . . . . . Aim",
		"Click / SPACE . . . . Shoot",
		"B . . . . . . . . . . Shop",
		"Q . . . . . . . . . . Quit",
	}
	c.drawLines(width, centerY-1, controls)

	// Blinking start prompt
	if time.Now().UnixMilli()/600%2 == 0 {
		c.chunkWriter.WriteCentered(width, centerY+len(controls), ">>  Press SPACE to Start  <<")
	}
}

// drawShop lists weapons and the skins of the equipped weapon.
func (c *Client) drawShop(width, centerY int, snap *session.Snapshot) {
	lines := []string{"SHOP", ""}
	for i, name := range weapon.Names() {
		w := weapon.MustGet(name)
		mark := " "
		if name == snap.Player.Weapon {
			mark = "*"
		}
		lines = append(lines, fmt.Sprintf("%s %d  %-12s $%-5d dmg %-3d %4dms",
			mark, i+1, w.Name, w.Price, w.Damage, w.FireRate.Milliseconds()))
	}

	lines = append(lines, "", fmt.Sprintf("Skins for %s ($%d)", snap.Player.Weapon, weapon.SkinPrice))
	var skins []string
	for i, s := range weapon.MustGet(snap.Player.Weapon).Skins {
		if i < len(skinKeys) {
			skins = append(skins, fmt.Sprintf("%c %s", skinKeys[i], s))
		}
	}
	lines = append(lines, strings.Join(skins, "   "), "", "B / ESC to close")

	c.drawLines(width, centerY-len(lines)/2, lines)
}

// drawGameOver draws the end screen.
func (c *Client) drawGameOver(width, centerY int, snap *session.Snapshot) {
	titleArt := []string{
		`  ___   _   __  __ ___    _____   _____ ___ `,
		` / __| /_\ |  \/  | __|  / _ \ \ / / __| _ \`,
		`| (_ |/ _ \| |\/| | _|  | (_) \ V /| _||   /`,
		` \___/_/ \_\_|  |_|___|  \___/ \_/ |___|_|_\`,
	}
	c.drawLines(width, centerY-5, titleArt)

	stats := fmt.Sprintf("Wave %d   Kills %d   $%d", snap.Wave, snap.Kills, snap.Player.Money)
	c.chunkWriter.WriteCentered(width, centerY+1, stats)

	if time.Now().UnixMilli()/600%2 == 0 {
		c.chunkWriter.WriteCentered(width, centerY+3, ">>  Press ENTER to Restart  <<")
	}
}

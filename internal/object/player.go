package object

import (
	"github.com/tomz197/strike/internal/loop/config"
	"github.com/tomz197/strike/internal/weapon"
)

// Player is the single player-controlled shooter.
type Player struct {
	X, Y   float64 // Position (centre), clamped to the arena margins
	Angle  float64 // Facing in radians, derived each tick from the aim point
	Health int     // 0..PlayerMaxHealth
	Money  int     // Never negative
	Weapon string  // Current weapon, always a catalog key
	Skin   string  // Selected skin glyph
}

// NewPlayer creates a player with session-start defaults at the arena centre.
func NewPlayer(arena Arena) Player {
	x, y := arena.Center()
	def := weapon.MustGet(weapon.Default)
	return Player{
		X:      x,
		Y:      y,
		Health: config.PlayerMaxHealth,
		Money:  config.StartingMoney,
		Weapon: def.Name,
		Skin:   def.Skin,
	}
}

// GetPosition returns the player's centre position.
func (p *Player) GetPosition() (float64, float64) {
	return p.X, p.Y
}

// TakeDamage lowers health by n, never below zero.
func (p *Player) TakeDamage(n int) {
	p.Health -= n
	if p.Health < 0 {
		p.Health = 0
	}
}

// Dead reports whether the player has no health left.
func (p *Player) Dead() bool {
	return p.Health <= 0
}

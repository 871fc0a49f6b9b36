package object

import (
	"math"

	"github.com/tomz197/strike/internal/loop/config"
)

// Bullet is a projectile fired by the player. Its heading is fixed at spawn.
type Bullet struct {
	ID    ID
	X, Y  float64 // Position
	Angle float64 // Heading in radians
	Speed float64 // Units per tick
}

// NewBullet creates a bullet at (x,y) travelling along angle.
func NewBullet(id ID, x, y, angle float64) Bullet {
	return Bullet{
		ID:    id,
		X:     x,
		Y:     y,
		Angle: angle,
		Speed: config.BulletSpeed,
	}
}

// Advance moves the bullet one tick along its heading.
func (b *Bullet) Advance() {
	b.X += math.Cos(b.Angle) * b.Speed
	b.Y += math.Sin(b.Angle) * b.Speed
}

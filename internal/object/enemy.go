package object

import (
	"math/rand"

	"github.com/tomz197/strike/internal/loop/config"
)

// Enemy pursues the player in a straight line.
type Enemy struct {
	ID     ID
	X, Y   float64
	Health int
}

// Alive reports whether the enemy still has health.
func (e *Enemy) Alive() bool {
	return e.Health > 0
}

// GetPosition returns the enemy's centre position.
func (e *Enemy) GetPosition() (float64, float64) {
	return e.X, e.Y
}

// EnemyHealth is the spawn health for enemies of the given wave.
func EnemyHealth(wave int) int {
	return config.EnemyBaseHealth + config.EnemyHealthPerWave*wave
}

// Edge identifies an arena side.
type Edge int

const (
	EdgeTop Edge = iota
	EdgeRight
	EdgeBottom
	EdgeLeft
)

// NewEnemyAtEdge creates an enemy just outside a uniformly chosen arena edge,
// at a uniform position along that edge.
func NewEnemyAtEdge(rng *rand.Rand, arena Arena, id ID, wave int) Enemy {
	var x, y float64
	w := arena.Width
	h := arena.Height

	switch Edge(rng.Intn(4)) {
	case EdgeTop:
		x = rng.Float64() * w
		y = -config.SpawnOffset
	case EdgeRight:
		x = w + config.SpawnOffset
		y = rng.Float64() * h
	case EdgeBottom:
		x = rng.Float64() * w
		y = h + config.SpawnOffset
	case EdgeLeft:
		x = -config.SpawnOffset
		y = rng.Float64() * h
	}

	return Enemy{
		ID:     id,
		X:      x,
		Y:      y,
		Health: EnemyHealth(wave),
	}
}

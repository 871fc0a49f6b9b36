package session

import (
	"slices"

	"github.com/tomz197/strike/internal/loop/sim"
	"github.com/tomz197/strike/internal/object"
)

// Snapshot is an immutable copy of the session state for rendering.
type Snapshot struct {
	Phase   sim.Phase
	Tick    uint64
	Player  object.Player
	Enemies []object.Enemy
	Bullets []object.Bullet
	Kills   int
	Wave    int
	Arena   object.Arena
}

func newSnapshot(s *sim.State) *Snapshot {
	return &Snapshot{
		Phase:   s.Phase,
		Tick:    s.Tick,
		Player:  s.Player,
		Enemies: slices.Clone(s.Enemies),
		Bullets: slices.Clone(s.Bullets),
		Kills:   s.Kills,
		Wave:    s.Wave,
		Arena:   s.Arena,
	}
}

// Running reports whether the game is in progress.
func (s *Snapshot) Running() bool {
	return s.Phase == sim.Running
}

// Ended reports whether the player has died.
func (s *Snapshot) Ended() bool {
	return s.Phase == sim.Ended
}

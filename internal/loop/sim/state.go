// Package sim advances the game by fixed logical ticks. A State is owned by a
// single goroutine; nothing in this package is safe for concurrent use.
package sim

import (
	"errors"
	"math/rand"
	"time"

	"github.com/kamstrup/intmap"

	"github.com/tomz197/strike/internal/loop/config"
	"github.com/tomz197/strike/internal/object"
	"github.com/tomz197/strike/internal/physics"
)

// ErrAlreadyStarted is returned by Start outside the NotStarted phase.
var ErrAlreadyStarted = errors.New("session already started")

// Phase is the session lifecycle stage.
type Phase int

const (
	NotStarted Phase = iota
	Running
	Ended
)

func (p Phase) String() string {
	switch p {
	case NotStarted:
		return "not_started"
	case Running:
		return "running"
	case Ended:
		return "ended"
	default:
		return "unknown"
	}
}

// hitGridCellSize must be >= the hit radius so every candidate enemy lies in
// the 3x3 neighbourhood of a bullet.
const hitGridCellSize = 40.0

// State is the complete simulation state of one session.
type State struct {
	Phase   Phase
	Tick    uint64
	Player  object.Player
	Enemies []object.Enemy
	Bullets []object.Bullet
	Kills   int
	Wave    int
	Arena   object.Arena

	ids object.IDSource
	rng *rand.Rand

	// Scratch reused by hit resolution
	grid   *physics.SpatialGrid
	damage *intmap.Map[object.ID, int]
	spent  []bool
}

// New creates a NotStarted state. A zero seed picks a time based one.
func New(seed int64) *State {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	arena := object.DefaultArena
	s := &State{
		Arena:  arena,
		rng:    rand.New(rand.NewSource(seed)),
		grid:   physics.NewSpatialGrid(arena.Width, arena.Height, hitGridCellSize),
		damage: intmap.New[object.ID, int](64),
	}
	s.Reset()
	return s
}

// Reset returns the state to NotStarted with session defaults. The RNG keeps
// its sequence and IDs keep increasing.
func (s *State) Reset() {
	s.Phase = NotStarted
	s.Tick = 0
	s.Player = object.NewPlayer(s.Arena)
	s.Enemies = s.Enemies[:0]
	s.Bullets = s.Bullets[:0]
	s.Kills = 0
	s.Wave = 1
}

// Start resets every entity to session defaults, enters Running and spawns
// the first wave.
func (s *State) Start() error {
	if s.Phase != NotStarted {
		return ErrAlreadyStarted
	}
	s.Reset()
	s.Phase = Running
	s.spawnWave(config.FirstWaveSize)
	return nil
}

// Elapsed is the logical time covered by the ticks run so far.
func (s *State) Elapsed(interval time.Duration) time.Duration {
	return time.Duration(s.Tick) * interval
}

// spawnWave adds count enemies for the current wave at random edges.
func (s *State) spawnWave(count int) {
	for i := 0; i < count; i++ {
		s.Enemies = append(s.Enemies, object.NewEnemyAtEdge(s.rng, s.Arena, s.ids.Next(), s.Wave))
	}
}

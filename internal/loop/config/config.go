// Package config centralizes all tunable game parameters.
package config

import "time"

// Arena - the playing field in logical units.
const (
	ArenaWidth  = 800
	ArenaHeight = 600
	MarginX     = 20 // Player keeps this distance from the left/right walls
	MarginY     = 20 // Player keeps this distance from the top/bottom walls
)

// Player
const (
	PlayerMaxHealth = 100
	StartingMoney   = 800
	PlayerSpeed     = 3.0 // Units per tick at full intent
)

// Input
const (
	JoystickRadius      = 50.0 // Joystick deflection cap
	JoystickSensitivity = 0.02 // Deflection to intent: a full deflection gives 1.0
)

// Projectiles
const (
	BulletSpeed = 10.0 // Units per tick
	HitRadius   = 20.0
)

// Enemies
const (
	EnemyStep          = 0.8 // Pursuit distance per tick
	ContactRange       = 5.0
	ContactDamage      = 5
	EnemyBaseHealth    = 100
	EnemyHealthPerWave = 10
	SpawnOffset        = 20.0 // Distance outside the edge at which enemies appear
)

// Waves
const (
	FirstWaveSize = 3 // Enemies spawned by the start command
	WaveSizeBase  = 3 // Advancing to wave N spawns WaveSizeBase+N enemies
)

// Economy
const (
	KillBounty = 300
)

// Tick rate
const (
	TickInterval = 16 * time.Millisecond
)

// Client rendering
const (
	ClientTargetFPS       = 60
	ClientTargetFrameTime = time.Second / ClientTargetFPS
	MaxTermWidth          = 160
	MaxTermHeight         = 60
)

// Inactivity
const (
	InactivityWarnUser       = 90  // Seconds
	InactivityDisconnectUser = 120 // Seconds
)

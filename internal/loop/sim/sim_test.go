package sim

import (
	"math"
	"math/rand"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/strike/internal/input"
	"github.com/tomz197/strike/internal/loop/config"
	"github.com/tomz197/strike/internal/object"
	"github.com/tomz197/strike/internal/weapon"
)

// runningState returns a Running state with no enemies or bullets.
func runningState(t *testing.T) *State {
	t.Helper()
	s := New(42)
	require.NoError(t, s.Start())
	s.Enemies = s.Enemies[:0]
	return s
}

// idle is an input that neither moves nor fires, aiming at the arena centre.
var idle = input.Snapshot{AimX: 400, AimY: 300}

func TestStartDefaults(t *testing.T) {
	s := New(1)
	assert.Equal(t, NotStarted, s.Phase)

	require.NoError(t, s.Start())
	assert.Equal(t, Running, s.Phase)
	assert.Equal(t, 1, s.Wave)
	assert.Equal(t, 0, s.Kills)
	assert.Equal(t, 100, s.Player.Health)
	assert.Equal(t, 800, s.Player.Money)
	assert.Equal(t, weapon.Default, s.Player.Weapon)
	assert.Equal(t, 400.0, s.Player.X)
	assert.Equal(t, 300.0, s.Player.Y)

	require.Len(t, s.Enemies, config.FirstWaveSize)
	for _, e := range s.Enemies {
		assert.Equal(t, 110, e.Health)
		assert.False(t, s.Arena.Contains(e.X, e.Y))
	}
	assert.Empty(t, s.Bullets)
}

func TestStartOnlyFromNotStarted(t *testing.T) {
	s := New(1)
	require.NoError(t, s.Start())
	assert.ErrorIs(t, s.Start(), ErrAlreadyStarted)

	s.Phase = Ended
	assert.ErrorIs(t, s.Start(), ErrAlreadyStarted)

	s.Reset()
	assert.Equal(t, NotStarted, s.Phase)
	assert.NoError(t, s.Start())
}

func TestStartResetsPlayer(t *testing.T) {
	s := New(1)
	s.Player.Money = 5000
	require.NoError(t, s.BuyWeapon("AWP"))
	require.NoError(t, s.Start())
	assert.Equal(t, weapon.Default, s.Player.Weapon)
	assert.Equal(t, 800, s.Player.Money)
}

func TestStepIsNoopUnlessRunning(t *testing.T) {
	s := New(1)
	res := Step(s, input.Snapshot{MoveX: 1, Fire: true})
	assert.Equal(t, Result{}, res)
	assert.Equal(t, uint64(0), s.Tick)
	assert.Equal(t, 400.0, s.Player.X)
	assert.Empty(t, s.Bullets)
}

func TestMovementClampedToMargins(t *testing.T) {
	s := runningState(t)
	s.Player.X, s.Player.Y = 21, 579

	Step(s, input.Snapshot{MoveX: -1, MoveY: 1})
	assert.Equal(t, 20.0, s.Player.X)
	assert.Equal(t, 580.0, s.Player.Y)

	s.Player.X, s.Player.Y = 779, 21
	Step(s, input.Snapshot{MoveX: 1, MoveY: -1})
	assert.Equal(t, 780.0, s.Player.X)
	assert.Equal(t, 20.0, s.Player.Y)
}

func TestDiagonalMovementIsFaster(t *testing.T) {
	s := runningState(t)
	Step(s, input.Snapshot{MoveX: 1, MoveY: 1})
	moved := math.Hypot(s.Player.X-400, s.Player.Y-300)
	assert.InDelta(t, 3*math.Sqrt2, moved, 1e-9)
	assert.Greater(t, moved, config.PlayerSpeed)
}

func TestFacingUsesPostMovementPosition(t *testing.T) {
	s := runningState(t)
	Step(s, input.Snapshot{MoveX: 1, AimX: 403, AimY: 400})
	assert.Equal(t, 403.0, s.Player.X)
	assert.InDelta(t, math.Pi/2, s.Player.Angle, 1e-9)
}

func TestFireSpawnsBulletThatAdvancesSameTick(t *testing.T) {
	s := runningState(t)
	res := Step(s, input.Snapshot{MoveX: 1, AimX: 700, AimY: 300, Fire: true})
	assert.Equal(t, 1, res.Shots)

	require.Len(t, s.Bullets, 1)
	b := s.Bullets[0]
	assert.InDelta(t, 413.0, b.X, 1e-9)
	assert.InDelta(t, 300.0, b.Y, 1e-9)
	assert.Equal(t, config.BulletSpeed, b.Speed)
}

func TestBulletsLeavingArenaAreDropped(t *testing.T) {
	s := runningState(t)
	s.Bullets = []object.Bullet{
		object.NewBullet(100, 795, 300, 0),        // leaves to 805
		object.NewBullet(101, 790, 300, 0),        // lands on the edge at 800
		object.NewBullet(102, 300, 5, -math.Pi/2), // leaves to -5
	}
	Step(s, idle)

	require.Len(t, s.Bullets, 1)
	assert.Equal(t, object.ID(101), s.Bullets[0].ID)
	assert.InDelta(t, 800.0, s.Bullets[0].X, 1e-9)
}

func TestEnemyPursuit(t *testing.T) {
	s := runningState(t)
	s.Enemies = []object.Enemy{
		{ID: 1, X: 0, Y: 300, Health: 110},
		{ID: 2, X: 400, Y: 300, Health: 110},
	}
	Step(s, idle)

	assert.InDelta(t, 0.8, s.Enemies[0].X, 1e-9)
	assert.InDelta(t, 300.0, s.Enemies[0].Y, 1e-9)

	// Zero distance: no movement, still in contact
	assert.Equal(t, 400.0, s.Enemies[1].X)
	assert.Equal(t, 300.0, s.Enemies[1].Y)
	assert.Equal(t, 95, s.Player.Health)
}

func TestContactDamageIsAdditive(t *testing.T) {
	s := runningState(t)
	s.Enemies = []object.Enemy{
		{ID: 1, X: 402, Y: 300, Health: 110},
		{ID: 2, X: 398, Y: 300, Health: 110},
		{ID: 3, X: 400, Y: 310, Health: 110},
	}
	res := Step(s, idle)
	assert.Equal(t, 10, res.ContactDamage)
	assert.Equal(t, 90, s.Player.Health)
}

func TestContactKillsPlayerAndEndsSession(t *testing.T) {
	s := runningState(t)
	s.Player.Health = 5
	s.Enemies = []object.Enemy{{ID: 1, X: 403.8, Y: 300, Health: 110}}

	res := Step(s, idle)
	assert.True(t, res.Ended)
	assert.Equal(t, 0, s.Player.Health)
	assert.Equal(t, Ended, s.Phase)

	tick := s.Tick
	player := s.Player
	enemies := slices.Clone(s.Enemies)

	res = Step(s, input.Snapshot{MoveX: 1, Fire: true})
	assert.Equal(t, Result{}, res)
	assert.Equal(t, tick, s.Tick)
	assert.Equal(t, player, s.Player)
	assert.Equal(t, enemies, s.Enemies)
	assert.Empty(t, s.Bullets)
}

func TestHealthClampsAtZero(t *testing.T) {
	s := runningState(t)
	s.Player.Health = 3
	s.Enemies = []object.Enemy{
		{ID: 1, X: 401, Y: 300, Health: 110},
		{ID: 2, X: 399, Y: 300, Health: 110},
	}
	Step(s, idle)
	assert.Equal(t, 0, s.Player.Health)
	assert.Equal(t, Ended, s.Phase)
}

func TestBulletHitDamagesEnemy(t *testing.T) {
	s := runningState(t)
	s.Enemies = []object.Enemy{{ID: 1, X: 425, Y: 300, Health: 110}}
	s.Bullets = []object.Bullet{object.NewBullet(50, 405, 300, 0)}

	res := Step(s, idle)
	assert.Equal(t, 1, res.Hits)
	assert.Equal(t, 0, res.Kills)
	require.Len(t, s.Enemies, 1)
	assert.Equal(t, 60, s.Enemies[0].Health)
	assert.Empty(t, s.Bullets, "bullet is consumed by its hit")
	assert.Equal(t, 800, s.Player.Money)
}

func TestBulletKillCreditsBounty(t *testing.T) {
	s := runningState(t)
	s.Enemies = []object.Enemy{{ID: 1, X: 425, Y: 300, Health: 50}}
	s.Bullets = []object.Bullet{object.NewBullet(50, 405, 300, 0)}

	res := Step(s, idle)
	assert.Equal(t, 1, res.Kills)
	assert.Equal(t, 300, res.Bounty)
	assert.Equal(t, 1, s.Kills)
	assert.Equal(t, 1100, s.Player.Money)
	for _, e := range s.Enemies {
		assert.NotEqual(t, object.ID(1), e.ID)
	}
}

func TestBulletHitsFirstEnemyInOrder(t *testing.T) {
	s := runningState(t)
	s.Enemies = []object.Enemy{
		{ID: 1, X: 430, Y: 300, Health: 110},
		{ID: 2, X: 420, Y: 300, Health: 110},
	}
	s.Bullets = []object.Bullet{object.NewBullet(50, 405, 300, 0)}

	Step(s, idle)
	require.Len(t, s.Enemies, 2)
	assert.Equal(t, 60, s.Enemies[0].Health)
	assert.Equal(t, 110, s.Enemies[1].Health)
	assert.Empty(t, s.Bullets)
}

func TestDeadEnemyIsNotHitTwice(t *testing.T) {
	s := runningState(t)
	s.Enemies = []object.Enemy{{ID: 1, X: 425, Y: 300, Health: 50}}
	s.Bullets = []object.Bullet{
		object.NewBullet(50, 405, 300, 0),
		object.NewBullet(51, 400, 300, 0),
	}

	res := Step(s, idle)
	assert.Equal(t, 1, res.Hits)
	assert.Equal(t, 1, res.Kills)
	assert.Equal(t, 1100, s.Player.Money)

	require.Len(t, s.Bullets, 1)
	assert.Equal(t, object.ID(51), s.Bullets[0].ID)
}

func TestDamageUsesCurrentWeapon(t *testing.T) {
	s := runningState(t)
	s.Player.Weapon = "AWP"
	s.Enemies = []object.Enemy{
		{ID: 1, X: 425, Y: 300, Health: 200},
		{ID: 2, X: 20, Y: 20, Health: 110},
	}
	s.Bullets = []object.Bullet{object.NewBullet(50, 405, 300, 0)}

	Step(s, idle)
	assert.Equal(t, 85, s.Enemies[0].Health)
}

func TestWaveAdvanceAfterClear(t *testing.T) {
	s := runningState(t)
	s.Wave = 2
	s.Enemies = []object.Enemy{{ID: 1, X: 425, Y: 300, Health: 50}}
	s.Bullets = []object.Bullet{object.NewBullet(50, 405, 300, 0)}

	res := Step(s, idle)
	assert.True(t, res.WaveAdvanced)
	assert.Equal(t, 3, s.Wave)
	require.Len(t, s.Enemies, 6)
	for _, e := range s.Enemies {
		assert.Equal(t, 130, e.Health)
		assert.False(t, s.Arena.Contains(e.X, e.Y))
	}
}

func TestFireRateSpacing(t *testing.T) {
	for _, name := range weapon.Names() {
		t.Run(name, func(t *testing.T) {
			s := runningState(t)
			s.Player.Weapon = name
			s.Enemies = []object.Enemy{{ID: 1, X: 20, Y: 20, Health: 1 << 30}}

			buf := input.NewBuffer()
			agg := input.NewAggregator(buf, 400, 300)
			buf.SetAim(780, 300)
			buf.SetFireHeld(true)

			rate := weapon.MustGet(name).FireRate
			var shots []time.Duration
			for i := 0; i < 500; i++ {
				now := s.Elapsed(config.TickInterval)
				in := agg.Next(now, rate)
				if Step(s, in).Shots > 0 {
					shots = append(shots, now)
				}
			}

			require.NotEmpty(t, shots)
			for i := 1; i < len(shots); i++ {
				assert.GreaterOrEqual(t, shots[i]-shots[i-1], rate)
			}
		})
	}
}

func TestInvariantsUnderRandomPlay(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	s := New(7)
	require.NoError(t, s.Start())
	s.Player.Weapon = "AK-47"

	buf := input.NewBuffer()
	agg := input.NewAggregator(buf, 400, 300)

	for i := 0; i < 5000 && s.Phase == Running; i++ {
		buf.SetKeys(input.Key(rng.Intn(16)))
		buf.SetAim(rng.Float64()*800, rng.Float64()*600)
		buf.SetFireHeld(rng.Intn(2) == 0)

		kills, money := s.Kills, s.Player.Money
		res := Step(s, agg.Next(s.Elapsed(config.TickInterval), weapon.MustGet(s.Player.Weapon).FireRate))

		p := s.Player
		require.True(t, p.X >= 20 && p.X <= 780 && p.Y >= 20 && p.Y <= 580, "player out of bounds at tick %d", s.Tick)
		require.True(t, p.Health >= 0 && p.Health <= 100)
		require.GreaterOrEqual(t, p.Money, 0)
		for _, b := range s.Bullets {
			require.True(t, s.Arena.Contains(b.X, b.Y))
		}
		for _, e := range s.Enemies {
			require.True(t, e.Alive())
		}
		require.Equal(t, kills+res.Kills, s.Kills)
		require.Equal(t, money+res.Kills*config.KillBounty, p.Money)
	}
}

func TestBuyWeapon(t *testing.T) {
	s := runningState(t)

	err := s.BuyWeapon("AK-47")
	assert.ErrorIs(t, err, ErrInsufficientFunds)
	assert.Equal(t, 800, s.Player.Money)
	assert.Equal(t, weapon.Default, s.Player.Weapon)

	require.NoError(t, s.BuyWeapon("Desert Eagle"))
	assert.Equal(t, 100, s.Player.Money)

	s.Player.Money = 3000
	require.NoError(t, s.BuyWeapon("AK-47"))
	assert.Equal(t, 300, s.Player.Money)
	assert.Equal(t, "AK-47", s.Player.Weapon)
	assert.Equal(t, "🔴", s.Player.Skin)

	assert.Panics(t, func() { _ = s.BuyWeapon("Railgun") })
}

func TestBuySkin(t *testing.T) {
	s := runningState(t)

	assert.ErrorIs(t, s.BuySkin("AK-47", "🟠"), ErrWeaponNotEquipped)
	assert.Equal(t, 800, s.Player.Money)

	require.NoError(t, s.BuySkin("Desert Eagle", "💛"))
	assert.Equal(t, 300, s.Player.Money)
	assert.Equal(t, "💛", s.Player.Skin)

	assert.ErrorIs(t, s.BuySkin("Desert Eagle", "💙"), ErrInsufficientFunds)
	assert.Equal(t, 300, s.Player.Money)
	assert.Equal(t, "💛", s.Player.Skin)

	assert.Panics(t, func() { _ = s.BuySkin("Railgun", "x") })
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "running", Running.String())
	assert.Equal(t, "unknown", Phase(9).String())
}

package sim

import (
	"math"

	"github.com/tomz197/strike/internal/input"
	"github.com/tomz197/strike/internal/loop/config"
	"github.com/tomz197/strike/internal/object"
	"github.com/tomz197/strike/internal/physics"
	"github.com/tomz197/strike/internal/weapon"
)

// Result summarizes what one tick did.
type Result struct {
	Shots         int
	Hits          int
	Kills         int
	Bounty        int
	ContactDamage int
	WaveAdvanced  bool
	Ended         bool
}

// Step advances s by one tick using in. It does nothing unless s is Running.
func Step(s *State, in input.Snapshot) Result {
	var res Result
	if s.Phase != Running {
		return res
	}
	s.Tick++

	movePlayer(s, in)
	if in.Fire {
		fire(s)
		res.Shots++
	}
	advanceBullets(s)
	pursue(s)
	res.ContactDamage = applyContact(s)
	resolveHits(s, &res)

	if len(s.Enemies) == 0 {
		s.Wave++
		s.spawnWave(config.WaveSizeBase + s.Wave)
		res.WaveAdvanced = true
	}

	if s.Player.Dead() {
		s.Phase = Ended
		res.Ended = true
	}
	return res
}

// movePlayer applies the movement intent, clamps to the margins and turns the
// player toward the aim point.
func movePlayer(s *State, in input.Snapshot) {
	p := &s.Player
	a := s.Arena
	p.X = physics.Clamp(p.X+in.MoveX*config.PlayerSpeed, a.MarginX, a.Width-a.MarginX)
	p.Y = physics.Clamp(p.Y+in.MoveY*config.PlayerSpeed, a.MarginY, a.Height-a.MarginY)
	p.Angle = math.Atan2(in.AimY-p.Y, in.AimX-p.X)
}

// fire spawns a bullet at the player along its facing.
func fire(s *State) {
	p := &s.Player
	s.Bullets = append(s.Bullets, object.NewBullet(s.ids.Next(), p.X, p.Y, p.Angle))
}

// advanceBullets moves every bullet and drops those that left the arena.
func advanceBullets(s *State) {
	kept := s.Bullets[:0]
	for _, b := range s.Bullets {
		b.Advance()
		if s.Arena.Contains(b.X, b.Y) {
			kept = append(kept, b)
		}
	}
	s.Bullets = kept
}

// pursue moves every enemy a fixed step toward the player. An enemy sitting
// exactly on the player has no direction and stays put.
func pursue(s *State) {
	px, py := s.Player.GetPosition()
	for i := range s.Enemies {
		e := &s.Enemies[i]
		nx, ny, _, ok := physics.Direction(e.X, e.Y, px, py)
		if !ok {
			continue
		}
		e.X += nx * config.EnemyStep
		e.Y += ny * config.EnemyStep
	}
}

// applyContact damages the player once per touching enemy and returns the
// damage dealt.
func applyContact(s *State) int {
	px, py := s.Player.GetPosition()
	total := 0
	for i := range s.Enemies {
		e := &s.Enemies[i]
		if physics.WithinRange(e.X, e.Y, px, py, config.ContactRange) {
			total += config.ContactDamage
		}
	}
	if total > 0 {
		s.Player.TakeDamage(total)
	}
	return total
}

// resolveHits matches bullets against enemies. A bullet is spent on its first
// hit, which goes to the lowest-indexed enemy in range that is still alive
// after the damage accumulated so far this tick. Damage, removals and bounty
// are applied once every bullet has been checked.
func resolveHits(s *State, res *Result) {
	if len(s.Bullets) == 0 || len(s.Enemies) == 0 {
		return
	}
	dmg := weapon.MustGet(s.Player.Weapon).Damage

	s.grid.Clear()
	for i := range s.Enemies {
		s.grid.Insert(s.Enemies[i].X, s.Enemies[i].Y, i)
	}
	s.damage.Clear()
	if cap(s.spent) < len(s.Bullets) {
		s.spent = make([]bool, len(s.Bullets))
	}
	s.spent = s.spent[:len(s.Bullets)]
	clear(s.spent)

	for bi := range s.Bullets {
		b := &s.Bullets[bi]
		target := -1
		s.grid.QueryAround(b.X, b.Y, func(ei int) bool {
			if target >= 0 && ei > target {
				return false
			}
			e := &s.Enemies[ei]
			if !physics.WithinRange(b.X, b.Y, e.X, e.Y, config.HitRadius) {
				return false
			}
			taken, _ := s.damage.Get(e.ID)
			if e.Health-taken <= 0 {
				return false
			}
			target = ei
			return false
		})
		if target < 0 {
			continue
		}
		id := s.Enemies[target].ID
		taken, _ := s.damage.Get(id)
		s.damage.Put(id, taken+dmg)
		s.spent[bi] = true
		res.Hits++
	}

	if res.Hits == 0 {
		return
	}

	keptEnemies := s.Enemies[:0]
	for _, e := range s.Enemies {
		if taken, ok := s.damage.Get(e.ID); ok {
			e.Health -= taken
		}
		if e.Alive() {
			keptEnemies = append(keptEnemies, e)
			continue
		}
		res.Kills++
	}
	s.Enemies = keptEnemies

	keptBullets := s.Bullets[:0]
	for i, b := range s.Bullets {
		if !s.spent[i] {
			keptBullets = append(keptBullets, b)
		}
	}
	s.Bullets = keptBullets

	res.Bounty = res.Kills * config.KillBounty
	s.Kills += res.Kills
	s.Player.Money += res.Bounty
}

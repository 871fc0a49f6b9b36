// Package session runs one game: it owns the simulation state, drives the
// fixed tick while the game is running and serializes lifecycle and shop
// commands with the ticks.
package session

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/strike/internal/input"
	"github.com/tomz197/strike/internal/logging"
	"github.com/tomz197/strike/internal/loop/config"
	"github.com/tomz197/strike/internal/loop/sim"
	"github.com/tomz197/strike/internal/weapon"
)

// Command errors. The purchase errors are informational: a rejected
// purchase leaves the state untouched.
var (
	ErrAlreadyStarted    = sim.ErrAlreadyStarted
	ErrInsufficientFunds = sim.ErrInsufficientFunds
	ErrWeaponNotEquipped = sim.ErrWeaponNotEquipped
	ErrStopped           = errors.New("session stopped")
)

// Controller is the interface front-ends use to drive a session.
// Decouples clients from the concrete Session, enabling tests and
// network transports.
type Controller interface {
	Start(ctx context.Context) error
	Reset(ctx context.Context) error
	BuyWeapon(ctx context.Context, name string) error
	BuySkin(ctx context.Context, name, skin string) error
	Snapshot() *Snapshot
	Input() *input.Buffer
}

// Compile-time check that Session implements Controller.
var _ Controller = (*Session)(nil)

// Options configures a Session. Zero values pick defaults.
type Options struct {
	Interval time.Duration // Tick interval, default config.TickInterval
	Seed     int64         // Spawn RNG seed, 0 picks one from the clock
	Logger   *log.Logger
}

type commandKind int

const (
	cmdStart commandKind = iota
	cmdReset
	cmdBuyWeapon
	cmdBuySkin
)

func (k commandKind) String() string {
	switch k {
	case cmdStart:
		return "start"
	case cmdReset:
		return "reset"
	case cmdBuyWeapon:
		return "buy_weapon"
	case cmdBuySkin:
		return "buy_skin"
	default:
		return "unknown"
	}
}

type command struct {
	kind  commandKind
	name  string
	skin  string
	reply chan error
}

// Session owns one simulation state. All mutation happens on the goroutine
// running Run; other goroutines only read snapshots and write input.
type Session struct {
	state    *sim.State
	buf      *input.Buffer
	agg      *input.Aggregator
	cmds     chan command
	snapshot atomic.Pointer[Snapshot]
	interval time.Duration
	logger   *log.Logger
	done     chan struct{}
	running  atomic.Bool
}

// New creates a session in the NotStarted phase. Call Run to process ticks
// and commands.
func New(opts Options) *Session {
	if opts.Interval <= 0 {
		opts.Interval = config.TickInterval
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}

	state := sim.New(opts.Seed)
	cx, cy := state.Arena.Center()
	buf := input.NewBuffer()

	s := &Session{
		state:    state,
		buf:      buf,
		agg:      input.NewAggregator(buf, cx, cy),
		cmds:     make(chan command),
		interval: opts.Interval,
		logger:   opts.Logger,
		done:     make(chan struct{}),
	}
	s.publish()
	return s
}

// Run processes commands and, while the game is running, ticks at the
// configured interval. Blocks until ctx is cancelled; cancelling is the
// stop operation.
func (s *Session) Run(ctx context.Context) {
	if !s.running.CompareAndSwap(false, true) {
		return
	}
	defer close(s.done)

	var ticker *time.Ticker
	var tickC <-chan time.Time

	// The ticker only exists while the simulation is Running
	syncTicker := func() {
		switch {
		case s.state.Phase == sim.Running && ticker == nil:
			ticker = time.NewTicker(s.interval)
			tickC = ticker.C
		case s.state.Phase != sim.Running && ticker != nil:
			ticker.Stop()
			ticker = nil
			tickC = nil
		}
	}
	defer func() {
		if ticker != nil {
			ticker.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			s.logger.Debug("session stopped", "tick", s.state.Tick)
			return

		case cmd := <-s.cmds:
			err := s.apply(cmd)
			s.publish()
			cmd.reply <- err
			syncTicker()

		case <-tickC:
			s.tick()
			s.publish()
			syncTicker()
		}
	}
}

// tick runs one simulation step with the input gathered since the last one.
func (s *Session) tick() {
	now := s.state.Elapsed(s.interval)
	rate := weapon.MustGet(s.state.Player.Weapon).FireRate
	res := sim.Step(s.state, s.agg.Next(now, rate))

	if res.Kills > 0 {
		s.logger.Debug("enemies killed", "kills", res.Kills, "bounty", res.Bounty, "total", s.state.Kills)
	}
	if res.WaveAdvanced {
		s.logger.Info("wave started", "wave", s.state.Wave, "enemies", len(s.state.Enemies))
	}
	if res.Ended {
		s.logger.Info("game over",
			"wave", s.state.Wave,
			"kills", s.state.Kills,
			"money", s.state.Player.Money,
			"elapsed", s.state.Elapsed(s.interval),
		)
	}
}

// apply executes a command on the owning goroutine.
func (s *Session) apply(cmd command) error {
	switch cmd.kind {
	case cmdStart:
		if err := s.state.Start(); err != nil {
			return err
		}
		s.agg.Reset()
		s.logger.Info("game started", "enemies", len(s.state.Enemies))
		return nil

	case cmdReset:
		s.state.Reset()
		s.agg.Reset()
		s.logger.Info("game reset")
		return nil

	case cmdBuyWeapon:
		if err := s.state.BuyWeapon(cmd.name); err != nil {
			s.logger.Debug("purchase rejected", "weapon", cmd.name, "err", err)
			return err
		}
		s.logger.Info("weapon bought", "weapon", cmd.name, "money", s.state.Player.Money)
		return nil

	case cmdBuySkin:
		if err := s.state.BuySkin(cmd.name, cmd.skin); err != nil {
			s.logger.Debug("purchase rejected", "weapon", cmd.name, "skin", cmd.skin, "err", err)
			return err
		}
		s.logger.Info("skin bought", "weapon", cmd.name, "skin", cmd.skin, "money", s.state.Player.Money)
		return nil
	}
	return nil
}

// do hands cmd to the Run goroutine and waits for its reply.
func (s *Session) do(ctx context.Context, cmd command) error {
	cmd.reply = make(chan error, 1)

	select {
	case s.cmds <- cmd:
	case <-ctx.Done():
		return ctx.Err()
	case <-s.done:
		return ErrStopped
	}

	select {
	case err := <-cmd.reply:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Start begins the game. Only valid from NotStarted.
func (s *Session) Start(ctx context.Context) error {
	return s.do(ctx, command{kind: cmdStart})
}

// Reset returns the game to NotStarted from any phase.
func (s *Session) Reset(ctx context.Context) error {
	return s.do(ctx, command{kind: cmdReset})
}

// BuyWeapon equips the named weapon if the player can afford it.
// Unknown names panic; transports validate with weapon.Lookup first.
func (s *Session) BuyWeapon(ctx context.Context, name string) error {
	weapon.MustGet(name)
	return s.do(ctx, command{kind: cmdBuyWeapon, name: name})
}

// BuySkin buys skin for the named weapon, which must be equipped.
// Unknown names panic.
func (s *Session) BuySkin(ctx context.Context, name, skin string) error {
	weapon.MustGet(name)
	return s.do(ctx, command{kind: cmdBuySkin, name: name, skin: skin})
}

// Snapshot returns the latest published state. Never nil; callers must not
// modify it.
func (s *Session) Snapshot() *Snapshot {
	return s.snapshot.Load()
}

// Input returns the buffer front-ends write input to.
func (s *Session) Input() *input.Buffer {
	return s.buf
}

// Done is closed when Run returns.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// publish stores a fresh snapshot of the state.
func (s *Session) publish() {
	s.snapshot.Store(newSnapshot(s.state))
}

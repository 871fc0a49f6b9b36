package client

import (
	"bufio"
	"context"
	"errors"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/strike/internal/draw"
	"github.com/tomz197/strike/internal/input"
	"github.com/tomz197/strike/internal/logging"
	"github.com/tomz197/strike/internal/loop/config"
	"github.com/tomz197/strike/internal/loop/session"
	"github.com/tomz197/strike/internal/loop/sim"
	"github.com/tomz197/strike/internal/weapon"
)

// skinKeys buy the skins of the equipped weapon, in catalog order.
var skinKeys = []byte{'z', 'x', 'c', 'v'}

// Client handles rendering and input for a single terminal.
type Client struct {
	ctrl         session.Controller
	state        *ClientState
	canvas       *draw.Canvas
	chunkWriter  *draw.ChunkWriter // Accumulates a frame for chunked output
	writer       io.Writer
	inputStream  *input.Stream
	lastInput    time.Time
	termSizeFunc draw.TermSizeFunc
	layout       draw.Layout
	logger       *log.Logger
}

// ClientOptions configures the client.
type ClientOptions struct {
	TermSizeFunc draw.TermSizeFunc
	Logger       *log.Logger
}

// NewClient creates a client driving ctrl from the terminal behind r and w.
func NewClient(ctrl session.Controller, r *bufio.Reader, w io.Writer, opts ClientOptions) *Client {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	arena := ctrl.Snapshot().Arena
	c := &Client{
		ctrl:         ctrl,
		state:        NewClientState(),
		canvas:       draw.NewCanvas(1, 1, arena.Width, arena.Height),
		chunkWriter:  draw.NewChunkWriter(w, 0, 0),
		writer:       w,
		inputStream:  input.StartStream(r),
		lastInput:    time.Now(),
		termSizeFunc: termSizeFunc,
		logger:       logger,
	}
	c.updateScreen()
	return c
}

// Run starts the client loop. Blocks until the player quits, the input
// ends, or ctx is cancelled.
func (c *Client) Run(ctx context.Context) error {
	draw.EnterGame(c.writer)
	defer draw.LeaveGame(c.writer)

	for c.state.Running {
		select {
		case <-ctx.Done():
			return nil
		default:
		}
		frameStart := time.Now()

		c.processInput(ctx, frameStart)
		if c.inputStream.Closed() {
			c.state.Running = false
		}

		c.updateScreen()

		if err := c.drawFrame(frameStart); err != nil {
			return err
		}

		// Frame timing
		elapsed := time.Since(frameStart)
		if elapsed < config.ClientTargetFrameTime {
			time.Sleep(config.ClientTargetFrameTime - elapsed)
		}
	}
	return nil
}

// processInput reads the terminal and forwards it to the session.
func (c *Client) processInput(ctx context.Context, now time.Time) {
	in := input.ReadInput(c.inputStream)
	c.state.Input = in

	if len(in.Pressed) > 0 || len(in.Mouse) > 0 {
		c.lastInput = now
		c.state.isInactive = false
	} else if now.Sub(c.lastInput).Seconds() > config.InactivityDisconnectUser {
		c.logger.Info("disconnecting inactive client")
		c.state.Running = false
	} else if now.Sub(c.lastInput).Seconds() > config.InactivityWarnUser {
		c.state.isInactive = true
	}

	if in.Quit {
		c.state.Running = false
		return
	}

	c.handle(ctx, in, c.ctrl.Snapshot(), now)
}

// handle applies one frame of input given the latest snapshot.
func (c *Client) handle(ctx context.Context, in input.Input, snap *session.Snapshot, now time.Time) {
	c.forwardPointer(in)

	switch snap.Phase {
	case sim.NotStarted:
		c.state.ShopOpen = false
		if in.PressedKey(' ', '\r', '\n') {
			c.command(ctx, now, "start", c.ctrl.Start)
		}

	case sim.Running:
		buf := c.ctrl.Input()
		buf.SetKeys(in.Keys())
		buf.SetFireHeld(c.state.MouseHeld || in.Space)
		if in.PressedKey(' ') {
			buf.RequestFire()
		}

		if in.PressedKey('b', 'B') {
			c.state.ShopOpen = !c.state.ShopOpen
		}
		if in.Escape && c.state.ShopOpen {
			c.state.ShopOpen = false
		}
		if c.state.ShopOpen {
			c.handleShop(ctx, in, snap, now)
		}

	case sim.Ended:
		c.state.ShopOpen = false
		c.ctrl.Input().SetKeys(0)
		c.ctrl.Input().DropFire()
		if in.PressedKey('r', 'R', '\r', '\n') {
			c.command(ctx, now, "reset", c.ctrl.Reset)
			c.command(ctx, now, "start", c.ctrl.Start)
		}
	}
}

// forwardPointer turns mouse reports into aim and fire input.
func (c *Client) forwardPointer(in input.Input) {
	buf := c.ctrl.Input()
	for _, ev := range in.Mouse {
		x, y := c.canvas.TerminalToLogical(ev.Col, ev.Row)
		buf.SetAim(x, y)

		if ev.Button != input.MouseLeft {
			continue
		}
		switch {
		case ev.Press:
			c.state.MouseHeld = true
			buf.RequestFire()
		case ev.Release:
			c.state.MouseHeld = false
		}
	}
}

// handleShop buys weapons with the number keys and skins with z x c v.
func (c *Client) handleShop(ctx context.Context, in input.Input, snap *session.Snapshot, now time.Time) {
	names := weapon.Names()
	for _, b := range in.Pressed {
		if b >= '1' && int(b-'1') < len(names) {
			name := names[b-'1']
			c.command(ctx, now, "buy "+name, func(ctx context.Context) error {
				return c.ctrl.BuyWeapon(ctx, name)
			})
			continue
		}
		for i, k := range skinKeys {
			if b != k && b != k-'a'+'A' {
				continue
			}
			w := weapon.MustGet(snap.Player.Weapon)
			if i >= len(w.Skins) {
				break
			}
			skin := w.Skins[i]
			c.command(ctx, now, "buy skin", func(ctx context.Context) error {
				return c.ctrl.BuySkin(ctx, w.Name, skin)
			})
		}
	}
}

// command runs a session command and reports rejections on the status line.
func (c *Client) command(ctx context.Context, now time.Time, what string, fn func(context.Context) error) {
	err := fn(ctx)
	switch {
	case err == nil:
		return
	case errors.Is(err, session.ErrInsufficientFunds):
		c.state.SetMessage("Not enough money", now)
	case errors.Is(err, session.ErrWeaponNotEquipped):
		c.state.SetMessage("Equip the weapon first", now)
	case errors.Is(err, session.ErrAlreadyStarted):
	default:
		c.logger.Warn("command failed", "command", what, "err", err)
	}
}

// updateScreen handles terminal resize, fitting the arena into the terminal.
// On layout changes, the next frame clears the whole terminal.
func (c *Client) updateScreen() {
	termWidth, termHeight, err := c.termSizeFunc()
	if err != nil {
		return
	}
	arena := c.ctrl.Snapshot().Arena
	layout := draw.FitLayout(termWidth, termHeight, config.MaxTermWidth, config.MaxTermHeight, arena.Width, arena.Height)
	if layout == c.layout {
		return
	}
	c.layout = layout
	c.canvas.Resize(layout.Cols, layout.Rows)
	c.canvas.SetOffset(layout.OffCol, layout.OffRow)
	c.chunkWriter.SetOffset(layout.OffCol, layout.OffRow)
}

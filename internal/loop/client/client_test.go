package client

import (
	"bufio"
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/strike/internal/input"
	"github.com/tomz197/strike/internal/loop/session"
	"github.com/tomz197/strike/internal/loop/sim"
	"github.com/tomz197/strike/internal/object"
	"github.com/tomz197/strike/internal/weapon"
)

// fakeController records commands and serves a fixed snapshot.
type fakeController struct {
	snap     *session.Snapshot
	buf      *input.Buffer
	calls    []string
	buyErr   error
	startErr error
}

func newFakeController(phase sim.Phase) *fakeController {
	return &fakeController{
		snap: &session.Snapshot{
			Phase:  phase,
			Player: object.NewPlayer(object.DefaultArena),
			Wave:   1,
			Arena:  object.DefaultArena,
		},
		buf: input.NewBuffer(),
	}
}

func (f *fakeController) Start(context.Context) error {
	f.calls = append(f.calls, "start")
	return f.startErr
}

func (f *fakeController) Reset(context.Context) error {
	f.calls = append(f.calls, "reset")
	return nil
}

func (f *fakeController) BuyWeapon(_ context.Context, name string) error {
	f.calls = append(f.calls, "weapon:"+name)
	return f.buyErr
}

func (f *fakeController) BuySkin(_ context.Context, name, skin string) error {
	f.calls = append(f.calls, "skin:"+name+":"+skin)
	return f.buyErr
}

func (f *fakeController) Snapshot() *session.Snapshot { return f.snap }
func (f *fakeController) Input() *input.Buffer        { return f.buf }

func newTestClient(t *testing.T, ctrl session.Controller) (*Client, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	c := NewClient(ctrl, bufio.NewReader(strings.NewReader("")), &out, ClientOptions{
		TermSizeFunc: func() (int, int, error) { return 100, 40, nil },
	})
	return c, &out
}

func TestStartOnSpace(t *testing.T) {
	ctrl := newFakeController(sim.NotStarted)
	c, _ := newTestClient(t, ctrl)

	c.handle(context.Background(), input.Input{Pressed: []byte(" ")}, ctrl.snap, time.Now())
	assert.Equal(t, []string{"start"}, ctrl.calls)
}

func TestRunningForwardsKeysAndFire(t *testing.T) {
	ctrl := newFakeController(sim.Running)
	c, _ := newTestClient(t, ctrl)

	c.handle(context.Background(), input.Input{Up: true, Left: true, Pressed: []byte(" ")}, ctrl.snap, time.Now())
	raw := ctrl.buf.Peek()
	assert.Equal(t, input.KeyUp|input.KeyLeft, raw.Keys)
	assert.True(t, raw.FireEdge)
	assert.Empty(t, ctrl.calls)
}

func TestMouseAimAndFire(t *testing.T) {
	ctrl := newFakeController(sim.Running)
	c, _ := newTestClient(t, ctrl)
	l := c.layout

	in := input.Input{Mouse: []input.MouseEvent{
		{Col: l.OffCol + l.Cols/2, Row: l.OffRow + l.Rows/2, Button: input.MouseLeft, Press: true},
	}}
	c.handle(context.Background(), in, ctrl.snap, time.Now())

	raw := ctrl.buf.Peek()
	assert.True(t, raw.HasAim)
	assert.InDelta(t, 400, raw.AimX, 20)
	assert.InDelta(t, 300, raw.AimY, 20)
	assert.True(t, raw.FireEdge)
	assert.True(t, raw.FireHeld)

	in = input.Input{Mouse: []input.MouseEvent{{Col: 1, Row: 1, Button: input.MouseLeft, Release: true}}}
	c.handle(context.Background(), in, ctrl.snap, time.Now())
	assert.False(t, ctrl.buf.Peek().FireHeld)
}

func TestShopPurchases(t *testing.T) {
	ctrl := newFakeController(sim.Running)
	c, _ := newTestClient(t, ctrl)
	ctx := context.Background()

	// Number keys do nothing while the shop is closed
	c.handle(ctx, input.Input{Pressed: []byte("2")}, ctrl.snap, time.Now())
	assert.Empty(t, ctrl.calls)

	c.handle(ctx, input.Input{Pressed: []byte("b")}, ctrl.snap, time.Now())
	require.True(t, c.state.ShopOpen)

	c.handle(ctx, input.Input{Pressed: []byte("2x")}, ctrl.snap, time.Now())
	assert.Equal(t, []string{"weapon:AK-47", "skin:" + weapon.Default + ":💛"}, ctrl.calls)
}

func TestRejectedPurchaseShowsMessage(t *testing.T) {
	ctrl := newFakeController(sim.Running)
	ctrl.buyErr = session.ErrInsufficientFunds
	c, _ := newTestClient(t, ctrl)
	now := time.Now()

	c.state.ShopOpen = true
	c.handle(context.Background(), input.Input{Pressed: []byte("3")}, ctrl.snap, now)
	assert.Equal(t, "Not enough money", c.state.Message(now))
	assert.Empty(t, c.state.Message(now.Add(3*time.Second)))
}

func TestRestartAfterGameOver(t *testing.T) {
	ctrl := newFakeController(sim.Ended)
	c, _ := newTestClient(t, ctrl)
	ctrl.buf.SetFireHeld(true)

	c.handle(context.Background(), input.Input{Pressed: []byte("\r")}, ctrl.snap, time.Now())
	assert.Equal(t, []string{"reset", "start"}, ctrl.calls)
	assert.False(t, ctrl.buf.Peek().FireHeld)
}

func TestDrawFrameShowsHUDAndShop(t *testing.T) {
	ctrl := newFakeController(sim.Running)
	ctrl.snap.Enemies = []object.Enemy{{ID: 1, X: 100, Y: 100, Health: 110}}
	c, out := newTestClient(t, ctrl)
	c.state.ShopOpen = true

	require.NoError(t, c.drawFrame(time.Now()))
	s := out.String()
	assert.Contains(t, s, "HP 100")
	assert.Contains(t, s, "Wave 1")
	assert.Contains(t, s, "SHOP")
	assert.Contains(t, s, "AK-47")
	assert.Contains(t, s, "\033[31m") // enemies
}

func TestRunStopsWhenInputEnds(t *testing.T) {
	ctrl := newFakeController(sim.NotStarted)
	c, out := newTestClient(t, ctrl)

	done := make(chan error, 1)
	go func() { done <- c.Run(context.Background()) }()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("client did not stop after input closed")
	}
	assert.Contains(t, out.String(), "\033[?1006h")
	assert.Contains(t, out.String(), "\033[?1006l")
}

package web

import (
	"context"
	"errors"
	"fmt"

	"github.com/tomz197/strike/internal/input"
	"github.com/tomz197/strike/internal/loop/session"
	"github.com/tomz197/strike/internal/protocol"
	"github.com/tomz197/strike/internal/weapon"
)

// errVersion ends a connection whose hello names another protocol version.
var errVersion = errors.New("unsupported protocol version")

// dispatch applies one envelope. Bad payloads and rejected commands are
// reported to the browser; only a stopped session or a version mismatch
// end the connection.
func (c *conn) dispatch(ctx context.Context, env protocol.Envelope) error {
	switch env.T {
	case protocol.MsgHello:
		hello, err := protocol.DecodePayload[protocol.Hello](env)
		if err != nil {
			c.sendError(protocol.CodeBadMessage, err.Error())
			return nil
		}
		if hello.V != protocol.Version {
			c.sendError(protocol.CodeBadMessage, fmt.Sprintf("protocol version %d, want %d", hello.V, protocol.Version))
			return errVersion
		}
		c.logger.Debug("hello", "name", hello.Name)
		return nil

	case protocol.MsgInput:
		in, err := protocol.DecodePayload[protocol.Input](env)
		if err != nil {
			c.sendError(protocol.CodeBadMessage, err.Error())
			return nil
		}
		applyInput(c.session.Input(), in)
		return nil

	case protocol.MsgBuyWeapon:
		req, err := protocol.DecodePayload[protocol.BuyWeapon](env)
		if err != nil {
			c.sendError(protocol.CodeBadMessage, err.Error())
			return nil
		}
		if _, ok := weapon.Lookup(req.Name); !ok {
			c.sendError(protocol.CodeUnknownWeapon, req.Name)
			return nil
		}
		return c.report(c.session.BuyWeapon(ctx, req.Name))

	case protocol.MsgBuySkin:
		req, err := protocol.DecodePayload[protocol.BuySkin](env)
		if err != nil {
			c.sendError(protocol.CodeBadMessage, err.Error())
			return nil
		}
		if _, ok := weapon.Lookup(req.Weapon); !ok {
			c.sendError(protocol.CodeUnknownWeapon, req.Weapon)
			return nil
		}
		if !weapon.HasSkin(req.Weapon, req.Skin) {
			c.sendError(protocol.CodeUnknownSkin, req.Skin)
			return nil
		}
		return c.report(c.session.BuySkin(ctx, req.Weapon, req.Skin))

	case protocol.MsgStart:
		return c.report(c.session.Start(ctx))

	case protocol.MsgReset:
		return c.report(c.session.Reset(ctx))
	}

	c.sendError(protocol.CodeBadMessage, fmt.Sprintf("unknown message type %q", env.T))
	return nil
}

// report turns a command result into an error message for the browser.
// Errors that mean the session is gone are returned.
func (c *conn) report(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, session.ErrInsufficientFunds):
		c.sendError(protocol.CodeInsufficientFunds, err.Error())
	case errors.Is(err, session.ErrWeaponNotEquipped):
		c.sendError(protocol.CodeNotEquipped, err.Error())
	case errors.Is(err, session.ErrAlreadyStarted):
		c.sendError(protocol.CodeAlreadyStarted, err.Error())
	default:
		return err
	}
	return nil
}

// applyInput writes a browser input message into the session buffer.
func applyInput(buf *input.Buffer, in protocol.Input) {
	var keys input.Key
	if in.Up {
		keys |= input.KeyUp
	}
	if in.Down {
		keys |= input.KeyDown
	}
	if in.Left {
		keys |= input.KeyLeft
	}
	if in.Right {
		keys |= input.KeyRight
	}
	buf.SetKeys(keys)

	if in.Joystick {
		buf.SetJoystick(in.Jx, in.Jy)
	} else {
		buf.ReleaseJoystick()
	}
	if in.Aim {
		buf.SetAim(in.Ax, in.Ay)
	}
	buf.SetFireHeld(in.FireHeld)
	if in.Fire {
		buf.RequestFire()
	}
}

// welcome describes the arena and the shop to a new browser.
func welcome(snap *session.Snapshot) protocol.Welcome {
	w := protocol.Welcome{
		V:         protocol.Version,
		TickHz:    protocol.BroadcastHz,
		Width:     snap.Arena.Width,
		Height:    snap.Arena.Height,
		SkinPrice: weapon.SkinPrice,
	}
	for _, name := range weapon.Names() {
		wp := weapon.MustGet(name)
		w.Weapons = append(w.Weapons, protocol.WeaponInfo{
			Name:     wp.Name,
			Damage:   wp.Damage,
			Price:    wp.Price,
			FireRate: wp.FireRate.Milliseconds(),
			Skins:    wp.Skins,
		})
	}
	return w
}

// stateOf converts a snapshot to its wire form.
func stateOf(snap *session.Snapshot) protocol.State {
	p := snap.Player
	st := protocol.State{
		Phase: snap.Phase.String(),
		Tick:  snap.Tick,
		Kills: snap.Kills,
		Wave:  snap.Wave,
		Player: protocol.PlayerSnapshot{
			X: p.X, Y: p.Y, A: p.Angle,
			Health: p.Health,
			Money:  p.Money,
			Weapon: p.Weapon,
			Skin:   p.Skin,
		},
		Enemies: make([]protocol.EnemySnapshot, 0, len(snap.Enemies)),
		Bullets: make([]protocol.BulletSnapshot, 0, len(snap.Bullets)),
	}
	for _, e := range snap.Enemies {
		st.Enemies = append(st.Enemies, protocol.EnemySnapshot{ID: uint64(e.ID), X: e.X, Y: e.Y, Health: e.Health})
	}
	for _, b := range snap.Bullets {
		st.Bullets = append(st.Bullets, protocol.BulletSnapshot{ID: uint64(b.ID), X: b.X, Y: b.Y})
	}
	return st
}

package input

import (
	"sync/atomic"

	"github.com/tomz197/strike/internal/loop/config"
	"github.com/tomz197/strike/internal/physics"
)

// Key is a bit set of held movement keys.
type Key uint8

const (
	KeyUp Key = 1 << iota
	KeyDown
	KeyLeft
	KeyRight
)

// Raw is the latest input written by a front-end. It is a plain value; a
// Buffer always hands out a consistent copy.
type Raw struct {
	Keys Key

	JoyX, JoyY float64 // Joystick deflection, magnitude <= JoystickRadius
	Joystick   bool    // Joystick currently engaged

	AimX, AimY float64 // Pointer position in arena coordinates
	HasAim     bool

	FireEdge bool // A shot was requested since the last read
	FireHeld bool // Fire button is held down
}

// Buffer is a latest-value-wins input store. Front-ends write to it from any
// goroutine; the session reads it once per tick.
type Buffer struct {
	v atomic.Pointer[Raw]
}

// NewBuffer returns an empty buffer.
func NewBuffer() *Buffer {
	b := &Buffer{}
	b.v.Store(&Raw{})
	return b
}

// update applies fn to a copy of the current value and swaps it in.
func (b *Buffer) update(fn func(r *Raw)) {
	for {
		old := b.v.Load()
		var next Raw
		if old != nil {
			next = *old
		}
		fn(&next)
		if b.v.CompareAndSwap(old, &next) {
			return
		}
	}
}

// SetKey marks key as held or released.
func (b *Buffer) SetKey(k Key, held bool) {
	b.update(func(r *Raw) {
		if held {
			r.Keys |= k
		} else {
			r.Keys &^= k
		}
	})
}

// SetKeys replaces the whole held-key set.
func (b *Buffer) SetKeys(k Key) {
	b.update(func(r *Raw) {
		r.Keys = k
	})
}

// SetJoystick records a joystick deflection. The magnitude is capped at the
// joystick radius; non-finite values are ignored.
func (b *Buffer) SetJoystick(dx, dy float64) {
	if !physics.Finite(dx, dy) {
		return
	}
	dx, dy = physics.CapMagnitude(dx, dy, config.JoystickRadius)
	b.update(func(r *Raw) {
		r.JoyX, r.JoyY = dx, dy
		r.Joystick = true
	})
}

// ReleaseJoystick returns the joystick to rest.
func (b *Buffer) ReleaseJoystick() {
	b.update(func(r *Raw) {
		r.JoyX, r.JoyY = 0, 0
		r.Joystick = false
	})
}

// SetAim records the pointer position in arena coordinates.
func (b *Buffer) SetAim(x, y float64) {
	if !physics.Finite(x, y) {
		return
	}
	b.update(func(r *Raw) {
		r.AimX, r.AimY = x, y
		r.HasAim = true
	})
}

// RequestFire latches a single shot request until the next Read.
func (b *Buffer) RequestFire() {
	b.update(func(r *Raw) {
		r.FireEdge = true
	})
}

// SetFireHeld sets whether the fire button is held.
func (b *Buffer) SetFireHeld(held bool) {
	b.update(func(r *Raw) {
		r.FireHeld = held
	})
}

// DropFire discards a latched shot request and releases the fire button.
func (b *Buffer) DropFire() {
	b.update(func(r *Raw) {
		r.FireEdge = false
		r.FireHeld = false
	})
}

// Reset clears all input.
func (b *Buffer) Reset() {
	b.v.Store(&Raw{})
}

// Peek returns the current value without consuming the fire latch.
func (b *Buffer) Peek() Raw {
	if r := b.v.Load(); r != nil {
		return *r
	}
	return Raw{}
}

// Read returns the current value and clears the fire latch.
func (b *Buffer) Read() Raw {
	for {
		old := b.v.Load()
		var cur Raw
		if old != nil {
			cur = *old
		}
		if !cur.FireEdge {
			return cur
		}
		next := cur
		next.FireEdge = false
		if b.v.CompareAndSwap(old, &next) {
			return cur
		}
	}
}

// Movement converts the held keys and joystick into a movement intent with
// each axis clamped to [-1,1]. Keyboard steps are summed, not normalized.
func (r Raw) Movement() (float64, float64) {
	var mx, my float64
	if r.Keys&KeyUp != 0 {
		my--
	}
	if r.Keys&KeyDown != 0 {
		my++
	}
	if r.Keys&KeyLeft != 0 {
		mx--
	}
	if r.Keys&KeyRight != 0 {
		mx++
	}
	if r.Joystick {
		mx += r.JoyX * config.JoystickSensitivity
		my += r.JoyY * config.JoystickSensitivity
	}
	return physics.Clamp(mx, -1, 1), physics.Clamp(my, -1, 1)
}

// hasFire reports whether the raw value asks for a shot.
func (r Raw) hasFire() bool {
	return r.FireEdge || r.FireHeld
}

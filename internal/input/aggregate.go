package input

import "time"

// Snapshot is the per-tick input consumed by the simulation.
type Snapshot struct {
	MoveX, MoveY float64 // Movement intent, each axis in [-1,1]
	AimX, AimY   float64 // Aim point in arena coordinates
	Fire         bool    // A shot is allowed this tick
}

// FireGate enforces the weapon fire rate. Rejected requests are dropped.
type FireGate struct {
	last  time.Duration
	armed bool
}

// Allow reports whether a shot at logical time now is permitted under rate,
// and records it when it is.
func (g *FireGate) Allow(now, rate time.Duration) bool {
	if g.armed && now-g.last < rate {
		return false
	}
	g.last = now
	g.armed = true
	return true
}

// Reset forgets the previous shot.
func (g *FireGate) Reset() {
	*g = FireGate{}
}

// Aggregator turns the buffer contents into one Snapshot per tick.
type Aggregator struct {
	buf              *Buffer
	gate             FireGate
	defAimX, defAimY float64
}

// NewAggregator creates an aggregator reading from buf. The aim defaults to
// (aimX, aimY) until a pointer position is written.
func NewAggregator(buf *Buffer, aimX, aimY float64) *Aggregator {
	return &Aggregator{
		buf:     buf,
		defAimX: aimX,
		defAimY: aimY,
	}
}

// Buffer returns the buffer the aggregator reads.
func (a *Aggregator) Buffer() *Buffer {
	return a.buf
}

// Next reads the buffer once and builds the snapshot for logical time now.
func (a *Aggregator) Next(now, fireRate time.Duration) Snapshot {
	raw := a.buf.Read()

	snap := Snapshot{
		AimX: a.defAimX,
		AimY: a.defAimY,
	}
	snap.MoveX, snap.MoveY = raw.Movement()
	if raw.HasAim {
		snap.AimX, snap.AimY = raw.AimX, raw.AimY
	}
	if raw.hasFire() {
		snap.Fire = a.gate.Allow(now, fireRate)
	}
	return snap
}

// Reset forgets fire history and discards a pending shot request.
func (a *Aggregator) Reset() {
	a.gate.Reset()
	a.buf.DropFire()
}

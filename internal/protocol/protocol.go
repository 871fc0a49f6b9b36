// Package protocol defines the JSON messages exchanged with browser clients.
// Every message is an Envelope whose T names the payload type.
package protocol

import (
	"encoding/json"
)

// Version is sent in hello and welcome; peers with another version are refused.
const Version = 1

// Message types, client to server.
const (
	MsgHello     = "hello"
	MsgInput     = "input"
	MsgBuyWeapon = "buy_weapon"
	MsgBuySkin   = "buy_skin"
	MsgStart     = "start"
	MsgReset     = "reset"
)

// Message types, server to client.
const (
	MsgWelcome = "welcome"
	MsgState   = "state"
	MsgError   = "error"
)

// BroadcastHz is how often the server pushes state to a browser.
const BroadcastHz = 30

type Envelope struct {
	T string          `json:"t"`
	P json.RawMessage `json:"p"` // raw payload bytes
}

package protocol

// Payloads coming in from the client.

type Hello struct {
	V    int    `json:"v"`              // version
	Name string `json:"name,omitempty"` // optional name
}

// Input is the latest pointer and key state of a browser. Fire is an edge:
// one shot is requested per message that carries it.
type Input struct {
	Up       bool    `json:"up,omitempty"`
	Down     bool    `json:"down,omitempty"`
	Left     bool    `json:"left,omitempty"`
	Right    bool    `json:"right,omitempty"`
	Joystick bool    `json:"joy,omitempty"` // touch joystick engaged
	Jx       float64 `json:"jx,omitempty"`  // joystick offset in pixels
	Jy       float64 `json:"jy,omitempty"`
	Aim      bool    `json:"aim,omitempty"` // Ax/Ay carry a pointer position
	Ax       float64 `json:"ax,omitempty"`  // arena coordinates
	Ay       float64 `json:"ay,omitempty"`
	Fire     bool    `json:"fire,omitempty"`
	FireHeld bool    `json:"held,omitempty"`
}

type BuyWeapon struct {
	Name string `json:"name"`
}

type BuySkin struct {
	Weapon string `json:"weapon"`
	Skin   string `json:"skin"`
}

// Empty is the payload of start and reset.
type Empty struct{}

package protocol

type Welcome struct {
	V         int          `json:"v"`
	TickHz    int          `json:"tickHz"`
	Width     float64      `json:"width"`
	Height    float64      `json:"height"`
	SkinPrice int          `json:"skinPrice"`
	Weapons   []WeaponInfo `json:"weapons"`
}

type WeaponInfo struct {
	Name     string   `json:"name"`
	Damage   int      `json:"damage"`
	Price    int      `json:"price"`
	FireRate int64    `json:"fireRateMs"`
	Skins    []string `json:"skins"`
}

type State struct {
	Phase   string           `json:"phase"`
	Tick    uint64           `json:"tick"`
	Kills   int              `json:"kills"`
	Wave    int              `json:"wave"`
	Player  PlayerSnapshot   `json:"player"`
	Enemies []EnemySnapshot  `json:"enemies"`
	Bullets []BulletSnapshot `json:"bullets"`
}

type PlayerSnapshot struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	A      float64 `json:"a"`
	Health int     `json:"hp"`
	Money  int     `json:"money"`
	Weapon string  `json:"weapon"`
	Skin   string  `json:"skin"`
}

type EnemySnapshot struct {
	ID     uint64  `json:"id"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Health int     `json:"hp"`
}

type BulletSnapshot struct {
	ID uint64  `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}

// Error reports a rejected command. Code is machine readable.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"msg"`
}

// Error codes.
const (
	CodeBadMessage        = "bad_message"
	CodeUnknownWeapon     = "unknown_weapon"
	CodeUnknownSkin       = "unknown_skin"
	CodeInsufficientFunds = "insufficient_funds"
	CodeNotEquipped       = "not_equipped"
	CodeAlreadyStarted    = "already_started"
)

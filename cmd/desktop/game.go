package main

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/tomz197/strike/internal/input"
	"github.com/tomz197/strike/internal/loop/config"
	"github.com/tomz197/strike/internal/loop/session"
	"github.com/tomz197/strike/internal/loop/sim"
	"github.com/tomz197/strike/internal/weapon"
)

// Touch controls, in arena coordinates.
const (
	joyCenterX   = 80.0
	joyCenterY   = config.ArenaHeight - 80.0
	joyPadRadius = 60.0
	fireCenterX  = config.ArenaWidth - 80.0
	fireCenterY  = config.ArenaHeight - 80.0
	fireRadius   = 45.0
	noTouch      = ebiten.TouchID(-1)
)

const (
	playerRadius = 12
	enemyRadius  = 10
	aimLength    = 30
	lineHeight   = 16
	messageTTL   = 2 * time.Second
)

var (
	colorBackground = color.RGBA{0x1b, 0x1b, 0x1b, 0xff}
	colorPlayer     = color.RGBA{0x33, 0xcc, 0x33, 0xff}
	colorDead       = color.RGBA{0xaa, 0x33, 0xaa, 0xff}
	colorEnemy      = color.RGBA{0xee, 0x33, 0x33, 0xff}
	colorBullet     = color.RGBA{0xff, 0xdd, 0x33, 0xff}
	colorPanel      = color.RGBA{0x00, 0x00, 0x00, 0xd0}
	colorControl    = color.RGBA{0xff, 0xff, 0xff, 0x20}
	colorFire       = color.RGBA{0xff, 0x50, 0x50, 0x50}
	colorMessage    = color.RGBA{0xff, 0x66, 0x66, 0xff}
)

var (
	weaponKeys = []ebiten.Key{ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3, ebiten.KeyDigit4}
	skinKeys   = []ebiten.Key{ebiten.KeyZ, ebiten.KeyX, ebiten.KeyC, ebiten.KeyV}
)

// game adapts a session to ebiten's Update/Draw loop.
type game struct {
	ctx    context.Context
	s      *session.Session
	logger *log.Logger
	face   font.Face

	shopOpen   bool
	joyID      ebiten.TouchID
	fireID     ebiten.TouchID
	message    string
	messageEnd time.Time
}

func newGame(ctx context.Context, s *session.Session, logger *log.Logger) *game {
	return &game{
		ctx:    ctx,
		s:      s,
		logger: logger,
		face:   basicfont.Face7x13,
		joyID:  noTouch,
		fireID: noTouch,
	}
}

func (g *game) Update() error {
	if g.ctx.Err() != nil {
		return ebiten.Termination
	}
	snap := g.s.Snapshot()
	buf := g.s.Input()

	g.updatePointer(buf)

	switch snap.Phase {
	case sim.NotStarted:
		g.shopOpen = false
		if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeySpace) ||
			inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
			g.command("start", g.s.Start)
		}

	case sim.Running:
		buf.SetKeys(heldKeys())
		held := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) || ebiten.IsKeyPressed(ebiten.KeySpace) || g.fireID != noTouch
		buf.SetFireHeld(held)
		if inpututil.IsKeyJustPressed(ebiten.KeySpace) || inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
			buf.RequestFire()
		}

		if inpututil.IsKeyJustPressed(ebiten.KeyB) {
			g.shopOpen = !g.shopOpen
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
			g.shopOpen = false
		}
		if g.shopOpen {
			g.updateShop(snap)
		}

	case sim.Ended:
		g.shopOpen = false
		buf.SetKeys(0)
		buf.DropFire()
		if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyR) {
			g.command("reset", g.s.Reset)
			g.command("start", g.s.Start)
		}
	}
	return nil
}

// heldKeys reads WASD and the arrow keys.
func heldKeys() input.Key {
	var k input.Key
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		k |= input.KeyUp
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		k |= input.KeyDown
	}
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		k |= input.KeyLeft
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		k |= input.KeyRight
	}
	return k
}

// updatePointer turns the mouse and touches into aim, joystick and fire.
func (g *game) updatePointer(buf *input.Buffer) {
	mx, my := ebiten.CursorPosition()
	if mx != 0 || my != 0 {
		buf.SetAim(float64(mx), float64(my))
	}

	for _, id := range inpututil.AppendJustPressedTouchIDs(nil) {
		x, y := touchPos(id)
		switch {
		case g.joyID == noTouch && math.Hypot(x-joyCenterX, y-joyCenterY) <= joyPadRadius:
			g.joyID = id
		case g.fireID == noTouch && math.Hypot(x-fireCenterX, y-fireCenterY) <= fireRadius:
			g.fireID = id
			buf.RequestFire()
		default:
			buf.SetAim(x, y)
			if g.s.Snapshot().Phase == sim.NotStarted {
				g.command("start", g.s.Start)
			}
		}
	}

	if g.joyID != noTouch {
		if inpututil.IsTouchJustReleased(g.joyID) {
			g.joyID = noTouch
			buf.ReleaseJoystick()
		} else {
			x, y := touchPos(g.joyID)
			buf.SetJoystick(x-joyCenterX, y-joyCenterY)
		}
	}
	if g.fireID != noTouch && inpututil.IsTouchJustReleased(g.fireID) {
		g.fireID = noTouch
	}
}

func touchPos(id ebiten.TouchID) (float64, float64) {
	x, y := ebiten.TouchPosition(id)
	return float64(x), float64(y)
}

// updateShop buys weapons with the number keys and skins with Z X C V.
func (g *game) updateShop(snap *session.Snapshot) {
	for i, name := range weapon.Names() {
		if i < len(weaponKeys) && inpututil.IsKeyJustPressed(weaponKeys[i]) {
			g.command("buy "+name, func(ctx context.Context) error {
				return g.s.BuyWeapon(ctx, name)
			})
		}
	}
	w := weapon.MustGet(snap.Player.Weapon)
	for i, k := range skinKeys {
		if i < len(w.Skins) && inpututil.IsKeyJustPressed(k) {
			skin := w.Skins[i]
			g.command("buy skin", func(ctx context.Context) error {
				return g.s.BuySkin(ctx, w.Name, skin)
			})
		}
	}
}

// command runs a session command and shows rejections on screen.
func (g *game) command(what string, fn func(context.Context) error) {
	err := fn(g.ctx)
	switch {
	case err == nil:
		return
	case errors.Is(err, session.ErrInsufficientFunds):
		g.flash("Not enough money")
	case errors.Is(err, session.ErrWeaponNotEquipped):
		g.flash("Equip the weapon first")
	case errors.Is(err, session.ErrAlreadyStarted):
	default:
		g.logger.Warn("command failed", "command", what, "err", err)
	}
}

func (g *game) flash(msg string) {
	g.message = msg
	g.messageEnd = time.Now().Add(messageTTL)
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)
	snap := g.s.Snapshot()

	if snap.Phase != sim.NotStarted {
		for _, e := range snap.Enemies {
			vector.DrawFilledCircle(screen, float32(e.X), float32(e.Y), enemyRadius, colorEnemy, true)
		}
		for _, b := range snap.Bullets {
			vector.DrawFilledRect(screen, float32(b.X)-2, float32(b.Y)-2, 4, 4, colorBullet, false)
		}

		p := snap.Player
		c := colorPlayer
		if snap.Phase == sim.Ended {
			c = colorDead
		}
		vector.DrawFilledCircle(screen, float32(p.X), float32(p.Y), playerRadius, c, true)
		ex := p.X + math.Cos(p.Angle)*aimLength
		ey := p.Y + math.Sin(p.Angle)*aimLength
		vector.StrokeLine(screen, float32(p.X), float32(p.Y), float32(ex), float32(ey), 2, color.White, true)
	}

	g.drawHUD(screen, snap)
	g.drawTouchControls(screen)

	switch {
	case snap.Phase == sim.NotStarted:
		g.drawPanel(screen, []string{
			"STRIKE",
			"",
			"WASD / arrows   move",
			"Mouse           aim",
			"Click / SPACE   shoot",
			"B               shop",
			"",
			"Press ENTER to start",
		})
	case snap.Phase == sim.Ended:
		g.drawPanel(screen, []string{
			"GAME OVER",
			"",
			fmt.Sprintf("Wave %d   Kills %d   $%d", snap.Wave, snap.Kills, snap.Player.Money),
			"",
			"Press ENTER to restart",
		})
	case g.shopOpen:
		g.drawPanel(screen, shopLines(snap))
	}
}

func (g *game) drawHUD(screen *ebiten.Image, snap *session.Snapshot) {
	p := snap.Player
	hud := fmt.Sprintf("HP %d  $%d  Kills %d  Wave %d  %s", p.Health, p.Money, snap.Kills, snap.Wave, p.Weapon)
	text.Draw(screen, hud, g.face, 8, lineHeight, color.White)

	if g.message != "" && time.Now().Before(g.messageEnd) {
		w := font.MeasureString(g.face, g.message).Ceil()
		text.Draw(screen, g.message, g.face, screen.Bounds().Dx()-w-8, lineHeight, colorMessage)
	}
}

func (g *game) drawTouchControls(screen *ebiten.Image) {
	vector.DrawFilledCircle(screen, joyCenterX, joyCenterY, joyPadRadius, colorControl, true)
	vector.DrawFilledCircle(screen, fireCenterX, fireCenterY, fireRadius, colorFire, true)
}

// drawPanel draws lines centred on a translucent box.
func (g *game) drawPanel(screen *ebiten.Image, lines []string) {
	b := screen.Bounds()
	width := 0
	for _, l := range lines {
		width = max(width, font.MeasureString(g.face, l).Ceil())
	}
	h := len(lines)*lineHeight + 24
	w := width + 48
	x := (b.Dx() - w) / 2
	y := (b.Dy() - h) / 2
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), colorPanel, false)

	for i, l := range lines {
		lw := font.MeasureString(g.face, l).Ceil()
		text.Draw(screen, l, g.face, (b.Dx()-lw)/2, y+20+i*lineHeight, color.White)
	}
}

// shopLines lists weapons and the skins of the equipped weapon.
// basicfont has no emoji, so skins are shown by key only.
func shopLines(snap *session.Snapshot) []string {
	lines := []string{"SHOP", ""}
	for i, name := range weapon.Names() {
		w := weapon.MustGet(name)
		mark := " "
		if name == snap.Player.Weapon {
			mark = "*"
		}
		lines = append(lines, fmt.Sprintf("%s %d  %-12s $%-5d dmg %-3d %4dms",
			mark, i+1, w.Name, w.Price, w.Damage, w.FireRate.Milliseconds()))
	}
	w := weapon.MustGet(snap.Player.Weapon)
	lines = append(lines, "", fmt.Sprintf("Skins for %s: Z X C V ($%d, %d available)", w.Name, weapon.SkinPrice, len(w.Skins)))
	lines = append(lines, "", "B / ESC to close")
	return lines
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.ArenaWidth, config.ArenaHeight
}

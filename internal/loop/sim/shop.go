package sim

import (
	"errors"

	"github.com/tomz197/strike/internal/weapon"
)

var (
	// ErrInsufficientFunds means the player cannot afford the purchase.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrWeaponNotEquipped means a skin was requested for a weapon the
	// player is not holding.
	ErrWeaponNotEquipped = errors.New("weapon not equipped")
)

// BuyWeapon equips the named weapon with its default skin if the player can
// afford it. Unknown names panic.
func (s *State) BuyWeapon(name string) error {
	w := weapon.MustGet(name)
	if s.Player.Money < w.Price {
		return ErrInsufficientFunds
	}
	s.Player.Money -= w.Price
	s.Player.Weapon = w.Name
	s.Player.Skin = w.Skin
	return nil
}

// BuySkin applies skin to the equipped weapon. name must be the weapon the
// player currently holds. Unknown names panic.
func (s *State) BuySkin(name, skin string) error {
	weapon.MustGet(name)
	if s.Player.Weapon != name {
		return ErrWeaponNotEquipped
	}
	if s.Player.Money < weapon.SkinPrice {
		return ErrInsufficientFunds
	}
	s.Player.Money -= weapon.SkinPrice
	s.Player.Skin = skin
	return nil
}

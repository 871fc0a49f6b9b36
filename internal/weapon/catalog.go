// Package weapon holds the static weapon catalog.
package weapon

import (
	"fmt"
	"slices"
	"time"
)

// Weapon is an immutable catalog entry.
type Weapon struct {
	Name     string
	Damage   int
	Price    int
	FireRate time.Duration // Minimum time between two honoured shots
	Skin     string        // Default skin glyph
	Skins    []string      // Skins purchasable while this weapon is equipped
}

// Default is the weapon every session starts with.
const Default = "Desert Eagle"

// SkinPrice is the cost of any skin.
const SkinPrice = 500

// catalog is ordered by price; Names relies on that order.
var catalog = []Weapon{
	{
		Name:     "Desert Eagle",
		Damage:   50,
		Price:    700,
		FireRate: 400 * time.Millisecond,
		Skin:     "🔫",
		Skins:    []string{"🔫", "💛", "💙", "💚"},
	},
	{
		Name:     "AK-47",
		Damage:   36,
		Price:    2700,
		FireRate: 100 * time.Millisecond,
		Skin:     "🔴",
		Skins:    []string{"🔴", "🟠", "🟡", "🟢"},
	},
	{
		Name:     "AWP",
		Damage:   115,
		Price:    4750,
		FireRate: 1500 * time.Millisecond,
		Skin:     "🎯",
		Skins:    []string{"🎯", "⭐", "🌟", "✨"},
	},
}

var byName = func() map[string]Weapon {
	m := make(map[string]Weapon, len(catalog))
	for _, w := range catalog {
		m[w.Name] = w
	}
	return m
}()

// MustGet returns the named weapon. Names only ever come from the catalog
// itself, so an unknown name is a programming error and panics.
func MustGet(name string) Weapon {
	w, ok := byName[name]
	if !ok {
		panic(fmt.Sprintf("weapon: unknown weapon %q", name))
	}
	return w
}

// Lookup returns the named weapon and whether it exists. Transports use it to
// validate names received from clients before issuing commands.
func Lookup(name string) (Weapon, bool) {
	w, ok := byName[name]
	return w, ok
}

// Names returns all weapon names in shop order.
func Names() []string {
	names := make([]string, len(catalog))
	for i, w := range catalog {
		names[i] = w.Name
	}
	return names
}

// HasSkin reports whether skin belongs to the named weapon's skin set.
func HasSkin(name, skin string) bool {
	w, ok := byName[name]
	return ok && slices.Contains(w.Skins, skin)
}

package weapon

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCatalogEntries(t *testing.T) {
	tests := []struct {
		name     string
		damage   int
		price    int
		fireRate time.Duration
		skin     string
	}{
		{"Desert Eagle", 50, 700, 400 * time.Millisecond, "🔫"},
		{"AK-47", 36, 2700, 100 * time.Millisecond, "🔴"},
		{"AWP", 115, 4750, 1500 * time.Millisecond, "🎯"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := MustGet(tt.name)
			assert.Equal(t, tt.damage, w.Damage)
			assert.Equal(t, tt.price, w.Price)
			assert.Equal(t, tt.fireRate, w.FireRate)
			assert.Equal(t, tt.skin, w.Skin)
			assert.Contains(t, w.Skins, w.Skin)
			assert.Len(t, w.Skins, 4)
		})
	}
}

func TestMustGetUnknownPanics(t *testing.T) {
	assert.Panics(t, func() { MustGet("Slingshot") })
}

func TestLookup(t *testing.T) {
	w, ok := Lookup(Default)
	assert.True(t, ok)
	assert.Equal(t, Default, w.Name)

	_, ok = Lookup("Slingshot")
	assert.False(t, ok)
}

func TestNamesInShopOrder(t *testing.T) {
	assert.Equal(t, []string{"Desert Eagle", "AK-47", "AWP"}, Names())
}

func TestHasSkin(t *testing.T) {
	assert.True(t, HasSkin("AK-47", "🟢"))
	assert.False(t, HasSkin("AK-47", "🔫"))
	assert.False(t, HasSkin("Slingshot", "🔫"))
}

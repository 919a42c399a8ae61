package styles

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHeight(t *testing.T) {
	assert.Equal(t, 800, Height(800, "1:1"))
	assert.Equal(t, 533, Height(800, "3:2"))
	assert.Equal(t, 450, Height(800, "16:9"))
	assert.Equal(t, 900, Height(1600, "16:9"))
}

func TestHeightUnknownAspect(t *testing.T) {
	assert.Equal(t, 0, Height(800, "4:3"))
	assert.Equal(t, 0, Height(800, ""))
}

func TestAspectRatioClass(t *testing.T) {
	assert.Equal(t, "mzp-has-aspect-16-9", AspectRatioClass("16:9"))
	assert.Equal(t, "mzp-has-aspect-1-1", AspectRatioClass("1:1"))
	assert.Equal(t, "", AspectRatioClass("21:9"))
}

func TestProductClass(t *testing.T) {
	assert.Equal(t, "mzp-t-product-firefox", ProductClass("Firefox Browser"))
	assert.Equal(t, "mzp-t-product-family", ProductClass("Firefox"))
	assert.Equal(t, "mzp-t-product-vpn", ProductClass("Mozilla VPN"))
	assert.Equal(t, "", ProductClass("Thunderbird"))
	assert.Equal(t, "", ProductClass(""))
}

func TestLayoutClass(t *testing.T) {
	assert.Equal(t, "mzp-l-card-half", LayoutClass("layout2Cards"))
	assert.Equal(t, "mzp-l-card-third", LayoutClass("layout3Cards"))
	assert.Equal(t, "mzp-l-card-quarter", LayoutClass("layout4Cards"))
	assert.Equal(t, "mzp-l-card-hero", LayoutClass("layout5Cards"))
	assert.Equal(t, "", LayoutClass("layout6Cards"))
}

func TestWidthClass(t *testing.T) {
	assert.Equal(t, "mzp-t-content-md", WidthClass("Medium"))
	assert.Equal(t, "mzp-t-content-xl", WidthClass("Extra Large"))
	assert.Equal(t, "", WidthClass("Enormous"))
}

func TestThemeClass(t *testing.T) {
	assert.Equal(t, "", ThemeClass("Light"))
	assert.Equal(t, "mzp-t-dark", ThemeClass("Dark"))
	assert.Equal(t, "mzp-t-dark mzp-t-background-alt", ThemeClass("Dark (alternative)"))
	assert.Equal(t, "", ThemeClass("Sepia"))
}

func TestColumnClass(t *testing.T) {
	assert.Equal(t, "", ColumnClass("1"))
	assert.Equal(t, "mzp-l-columns mzp-t-columns-three", ColumnClass("3"))
	assert.Equal(t, "", ColumnClass("5"))
}

func TestPictoIconSize(t *testing.T) {
	assert.Equal(t, 32, PictoIconSize("Small"))
	assert.Equal(t, 192, PictoIconSize("Extra Extra Large"))

	// Unknown sizes fall back to Large.
	assert.Equal(t, 64, PictoIconSize(""))
	assert.Equal(t, 64, PictoIconSize("Gigantic"))
}

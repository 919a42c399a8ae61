// Package styles maps CMS enum values to output class-name fragments. Pure
// lookup tables over closed enumerations; an unknown key resolves to the
// empty fragment, never an error, because CMS authors may pick values not yet
// wired to CSS.
package styles

import "math"

var aspectRatios = map[string]string{
	"1:1":  "1-1",
	"3:2":  "3-2",
	"16:9": "16-9",
}

var aspectMultiplier = map[string]float64{
	"1:1":  1,
	"3:2":  0.6666,
	"16:9": 0.5625,
}

var productThemes = map[string]string{
	"Firefox":                   "family",
	"Firefox Browser":           "firefox",
	"Firefox Browser Beta":      "beta",
	"Firefox Browser Developer": "developer",
	"Firefox Browser Nightly":   "nightly",
	"Firefox Browser Focus":     "focus",
	"Firefox Monitor":           "monitor",
	"Firefox Lockwise":          "lockwise",
	"Mozilla":                   "mozilla",
	"Mozilla VPN":               "vpn",
	"Pocket":                    "pocket",
}

var widths = map[string]string{
	"Extra Small": "xs",
	"Small":       "sm",
	"Medium":      "md",
	"Large":       "lg",
	"Extra Large": "xl",
}

var layoutClass = map[string]string{
	"layout2Cards": "mzp-l-card-half",
	"layout3Cards": "mzp-l-card-third",
	"layout4Cards": "mzp-l-card-quarter",
	"layout5Cards": "mzp-l-card-hero",
}

var themeClass = map[string]string{
	"Light":               "",
	"Light (alternative)": "mzp-t-background-alt",
	"Dark":                "mzp-t-dark",
	"Dark (alternative)":  "mzp-t-dark mzp-t-background-alt",
}

var columnClass = map[string]string{
	"1": "",
	"2": "mzp-l-columns mzp-t-columns-two",
	"3": "mzp-l-columns mzp-t-columns-three",
	"4": "mzp-l-columns mzp-t-columns-four",
}

// Picto icon pixel sizes, independent of the generic width table.
var pictoSizes = map[string]int{
	"Small":             32,
	"Medium":            48,
	"Large":             64,
	"Extra Large":       96,
	"Extra Extra Large": 192,
}

// Height derives an image height from a width and an aspect ratio enum value.
// Unknown aspect multiplies by 0.
func Height(width int, aspect string) int {
	return int(math.Round(float64(width) * aspectMultiplier[aspect]))
}

// AspectRatioClass returns the framing class for an aspect ratio enum value.
func AspectRatioClass(aspect string) string {
	if abbr, ok := aspectRatios[aspect]; ok {
		return "mzp-has-aspect-" + abbr
	}
	return ""
}

// ProductClass returns the product theme class for a product enum value.
func ProductClass(product string) string {
	if theme, ok := productThemes[product]; ok {
		return "mzp-t-product-" + theme
	}
	return ""
}

// LayoutClass returns the card layout class for a layout content type tag.
func LayoutClass(layout string) string {
	return layoutClass[layout]
}

// WidthAbbr returns the abbreviation for a width enum value.
func WidthAbbr(width string) string {
	return widths[width]
}

// WidthClass returns the content width class for a width enum value.
func WidthClass(width string) string {
	if abbr, ok := widths[width]; ok {
		return "mzp-t-content-" + abbr
	}
	return ""
}

// ThemeClass returns the background theme class for a theme enum value.
func ThemeClass(theme string) string {
	return themeClass[theme]
}

// ColumnClass returns the column layout class for a column count ("1".."4").
func ColumnClass(columns string) string {
	return columnClass[columns]
}

// PictoIconSize resolves a picto icon size enum value to pixels, defaulting
// to Large.
func PictoIconSize(size string) int {
	if px, ok := pictoSizes[size]; ok {
		return px
	}
	return pictoSizes["Large"]
}

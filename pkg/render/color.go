package render

import (
	colorful "github.com/lucasb-eyer/go-colorful"
)

const (
	hueBuckets = 64
	saturation = 0.9
	lightness  = 0.4
)

// Color returns the stable background color of a label as "#rrggbb".
// The label is hashed with h = h*31 + c over its runes, wrapping at 32 bits,
// and the hash picks one of 64 evenly spaced hues.
func Color(label string) string {
	return colorful.Hsl(Hue(label), saturation, lightness).Hex()
}

// Hue returns the hue in degrees Color uses for label.
func Hue(label string) float64 {
	var h uint32
	for _, r := range label {
		h = h*31 + uint32(r)
	}
	return float64(h%hueBuckets) * (360.0 / hueBuckets)
}

package charts

import (
	"math"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

// colormap is a piecewise-linear gradient through evenly spaced anchors
type colormap []drawing.Color

func hexColors(hex ...string) colormap {
	out := make(colormap, len(hex))
	for i, h := range hex {
		out[i] = drawing.ColorFromHex(h)
	}
	return out
}

var (
	viridis = hexColors("440154", "482878", "3e4989", "31688e", "26828e",
		"1f9e89", "35b779", "6ece58", "b5de2b", "fde725")
	plasma = hexColors("0d0887", "46039f", "7201a8", "9c179e", "bd3786",
		"d8576b", "ed7953", "fb9f3a", "fdca26", "f0f921")
)

// at returns the colour at t in [0, 1]
func (c colormap) at(t float64) drawing.Color {
	if math.IsNaN(t) || t <= 0 {
		return c[0]
	}
	if t >= 1 {
		return c[len(c)-1]
	}
	pos := t * float64(len(c)-1)
	i := int(pos)
	frac := pos - float64(i)
	a, b := c[i], c[i+1]
	return drawing.Color{
		R: lerp8(a.R, b.R, frac),
		G: lerp8(a.G, b.G, frac),
		B: lerp8(a.B, b.B, frac),
		A: 255,
	}
}

func lerp8(a, b uint8, t float64) uint8 {
	return uint8(math.Round(float64(a) + (float64(b)-float64(a))*t))
}

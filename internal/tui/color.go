package tui

import (
	"fmt"
	"hash/fnv"
	"math"

	"github.com/charmbracelet/lipgloss"
)

// frameColor derives a stable color for a finished frame from its function
// name: FNV-1a over the UTF-8 bytes gives a hue, which is rendered as a
// pastel HSL color so many distinct functions stay visually distinguishable
// without a fixed palette running out.
func frameColor(functionName string) lipgloss.Color {
	h := fnv.New64a()
	_, _ = h.Write([]byte(functionName))
	hue := float64(h.Sum64()%360)
	return hslColor(hue, 0.35, 0.6)
}

// runningColor is used for the still-open frame at the top of a thread's
// stack: a cool, low-saturation gradient keyed by depth rather than by
// function name, so the "currently executing" frame reads differently from
// settled history.
func runningColor(depth int) lipgloss.Color {
	hue := math.Mod(200+float64(depth)*12, 360)
	return hslColor(hue, 0.45, 0.45)
}

func hslColor(hue, sat, light float64) lipgloss.Color {
	r, g, b := hslToRGB(hue/360, sat, light)
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", r, g, b))
}

// hslToRGB converts h,s,l in [0,1] to 8-bit RGB channels.
func hslToRGB(h, s, l float64) (r, g, b uint8) {
	if s == 0 {
		v := uint8(l * 255)
		return v, v, v
	}

	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q

	r = uint8(hueToRGB(p, q, h+1.0/3) * 255)
	g = uint8(hueToRGB(p, q, h) * 255)
	b = uint8(hueToRGB(p, q, h-1.0/3) * 255)
	return r, g, b
}

func hueToRGB(p, q, t float64) float64 {
	if t < 0 {
		t++
	}
	if t > 1 {
		t--
	}
	switch {
	case t < 1.0/6:
		return p + (q-p)*6*t
	case t < 1.0/2:
		return q
	case t < 2.0/3:
		return p + (q-p)*(2.0/3-t)*6
	default:
		return p
	}
}

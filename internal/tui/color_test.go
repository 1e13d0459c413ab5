package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrameColor_DeterministicAndDistinguishable(t *testing.T) {
	a := frameColor("main.handleRequest")
	b := frameColor("main.handleRequest")
	c := frameColor("main.writeResponse")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestRunningColor_VariesByDepth(t *testing.T) {
	assert.NotEqual(t, runningColor(0), runningColor(5))
}

func TestHSLToRGB_Grayscale(t *testing.T) {
	r, g, b := hslToRGB(0, 0, 0.5)
	assert.Equal(t, r, g)
	assert.Equal(t, g, b)
}

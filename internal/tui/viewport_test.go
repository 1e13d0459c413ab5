package tui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestViewPortBounds_ZoomInOut(t *testing.T) {
	v := NewViewPortBounds(90 * time.Second)
	v.ZoomIn()
	assert.Equal(t, 60*time.Second, v.width)
	v.ZoomOut()
	assert.Equal(t, 90*time.Second, v.width)
}

func TestViewPortBounds_MoveLeftFromLatestPinsRightEdge(t *testing.T) {
	v := NewViewPortBounds(60 * time.Second)
	now := time.Now()
	v.MoveLeft(now)
	assert.False(t, v.right.latest)
	assert.WithinDuration(t, now.Add(-30*time.Second), v.right.selected, time.Millisecond)
}

func TestViewPortBounds_MoveRightTwiceAccumulates(t *testing.T) {
	v := NewViewPortBounds(60 * time.Second)
	now := time.Now()
	v.MoveRight(now)
	v.MoveRight(now)
	assert.WithinDuration(t, now.Add(60*time.Second), v.right.selected, time.Millisecond)
}

func TestViewPortBounds_Bounds(t *testing.T) {
	v := NewViewPortBounds(10 * time.Second)
	now := time.Now()
	start, end := v.Bounds(now)
	assert.Equal(t, now, end)
	assert.Equal(t, now.Add(-10*time.Second), start)
}

func TestViewPortBounds_RenderHeader_Latest(t *testing.T) {
	v := NewViewPortBounds(60 * time.Second)
	threadStart := time.Now().Add(-5 * time.Minute)
	lastUpdate := time.Now()
	h := v.RenderHeader(threadStart, lastUpdate)
	assert.Equal(t, "Now", h.OffsetFromNow)
	assert.Equal(t, "<-01:00->", h.Width)
	assert.Equal(t, "-05:00", h.TotalLifetime)
}

func TestViewPortBounds_RenderHeader_Selected(t *testing.T) {
	v := NewViewPortBounds(60 * time.Second)
	lastUpdate := time.Now()
	v.MoveLeft(lastUpdate)
	h := v.RenderHeader(lastUpdate.Add(-time.Minute), lastUpdate)
	assert.Equal(t, "-00:30", h.OffsetFromNow)
}

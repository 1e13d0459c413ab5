package tui

import (
	"fmt"
	"time"
)

// zoomRatio matches the original implementation's zoom step (state.rs:
// ViewPortBounds::zoom_in/zoom_out).
const zoomRatio = 1.5

// viewportRight pins the right edge of the visible time window: either it
// tracks "now" (Latest), or it is pinned to a fixed instant once the user
// has panned (Selected).
type viewportRight struct {
	latest   bool
	selected time.Time
}

func rightLatest() viewportRight { return viewportRight{latest: true} }

func rightAt(t time.Time) viewportRight { return viewportRight{selected: t} }

// ViewPortBounds is the pannable/zoomable time window the timeline renders,
// adapted from the original's ViewPortBounds (src/state.rs).
type ViewPortBounds struct {
	right viewportRight
	width time.Duration
}

// NewViewPortBounds returns a viewport tracking "now" with the given window
// width (the viewer passes §6's window_width, 60s by default).
func NewViewPortBounds(width time.Duration) ViewPortBounds {
	return ViewPortBounds{right: rightLatest(), width: width}
}

// ZoomIn narrows the visible window by 1/zoomRatio, showing more detail.
func (v *ViewPortBounds) ZoomIn() { v.width = time.Duration(float64(v.width) / zoomRatio) }

// ZoomOut widens the visible window by zoomRatio, showing more history.
func (v *ViewPortBounds) ZoomOut() { v.width = time.Duration(float64(v.width) * zoomRatio) }

// MoveLeft pans the window earlier by half its width, pinning the right
// edge at the current instant if it was still tracking "now".
func (v *ViewPortBounds) MoveLeft(now time.Time) {
	right := now
	if !v.right.latest {
		right = v.right.selected
	}
	v.right = rightAt(right.Add(-v.width / 2))
}

// MoveRight pans the window later by half its width.
func (v *ViewPortBounds) MoveRight(now time.Time) {
	right := now
	if !v.right.latest {
		right = v.right.selected
	}
	v.right = rightAt(right.Add(v.width / 2))
}

// ResetToLatest re-pins the right edge to "now".
func (v *ViewPortBounds) ResetToLatest() { v.right = rightLatest() }

// Bounds resolves the window into concrete [start, end) instants given the
// current time.
func (v ViewPortBounds) Bounds(now time.Time) (start, end time.Time) {
	end = now
	if !v.right.latest {
		end = v.right.selected
	}
	return end.Add(-v.width), end
}

// Header mirrors ViewPortBounds::render_header from the original: three
// labels describing the window width, the offset of the window's right
// edge from the thread's last update, and the thread's total observed
// lifetime.
type Header struct {
	Width         string
	OffsetFromNow string
	TotalLifetime string
}

func formatMMSS(d time.Duration) string {
	if d < 0 {
		d = -d
	}
	secs := int64(d / time.Second)
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}

// RenderHeader computes the header strings for a thread whose samples span
// [threadStart, lastUpdate].
func (v ViewPortBounds) RenderHeader(threadStart, lastUpdate time.Time) Header {
	h := Header{Width: "<-" + formatMMSS(v.width) + "->"}

	if v.right.latest {
		h.OffsetFromNow = "Now"
	} else {
		h.OffsetFromNow = "-" + formatMMSS(lastUpdate.Sub(v.right.selected))
	}

	h.TotalLifetime = "-" + formatMMSS(lastUpdate.Sub(threadStart))
	return h
}

package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFocus_NextCyclesThroughAllPanes(t *testing.T) {
	f := FocusThreadList
	f = f.Next()
	assert.Equal(t, FocusTimeline, f)
	f = f.Next()
	assert.Equal(t, FocusLogView, f)
	f = f.Next()
	assert.Equal(t, FocusThreadList, f)
}

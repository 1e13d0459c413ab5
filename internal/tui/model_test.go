package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alesr/fadetop/internal/coordinator"
	"github.com/alesr/fadetop/internal/queuemap"
	"github.com/alesr/fadetop/internal/sampler"
	"github.com/alesr/fadetop/internal/stacktrace"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	prod := sampler.NewMock()
	qm := queuemap.New(nil)
	c := coordinator.New(prod, qm, nil)
	return New(c, nil, 60)
}

func TestModel_TabCyclesFocus(t *testing.T) {
	m := newTestModel(t)
	require.Equal(t, FocusThreadList, m.focus)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = updated.(Model)
	assert.Equal(t, FocusTimeline, m.focus)
}

func TestModel_ThreadListUpDownClampsWithinBounds(t *testing.T) {
	m := newTestModel(t)
	m.threads = []threadEntry{{tid: 1}, {tid: 2}, {tid: 3}}
	m.selectedIdx = 0

	updated, _ := m.handleThreadListKey(tea.KeyMsg{Type: tea.KeyUp})
	m = updated.(Model)
	assert.Equal(t, 0, m.selectedIdx)

	updated, _ = m.handleThreadListKey(tea.KeyMsg{Type: tea.KeyDown})
	m = updated.(Model)
	assert.Equal(t, 1, m.selectedIdx)
}

func TestModel_ThreadListToggleProcessColumn(t *testing.T) {
	m := newTestModel(t)
	require.True(t, m.showProcessColumn)

	updated, _ := m.handleThreadListKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("p")})
	m = updated.(Model)
	assert.False(t, m.showProcessColumn)
}

func TestModel_TimelineZoomKeys(t *testing.T) {
	m := newTestModel(t)
	before := m.viewport.width

	updated, _ := m.handleTimelineKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("i")})
	m = updated.(Model)
	assert.Less(t, m.viewport.width, before)
}

func TestModel_RenderLogViewShowsSelectedFrameLocals(t *testing.T) {
	qm := queuemap.New(nil)
	now := time.Unix(0, 0)
	qm.Increment(stacktrace.StackTrace{
		Pid: 1,
		Tid: 1,
		Frames: []stacktrace.Frame{
			{
				FunctionName: "inner",
				FileName:     "t.py",
				LocalVariables: []stacktrace.LocalVariable{
					{Name: "x", Repr: "42"},
				},
			},
			{FunctionName: "outer", FileName: "t.py"},
		},
	}, now)

	prod := sampler.NewMock()
	c := coordinator.New(prod, qm, nil)
	m := New(c, nil, 60)
	m.threads = []threadEntry{{pid: 1, tid: 1}}
	m.selectedIdx = 0
	m.maxDepth = 2 // selects depth 1 ("inner"), which carries the local

	out := m.renderLogView()
	assert.Contains(t, out, "inner")
	assert.Contains(t, out, "x")
	assert.Contains(t, out, "42")
}

func TestModel_RenderLogViewWithNoThreadsShowsPlaceholder(t *testing.T) {
	m := newTestModel(t)
	out := m.renderLogView()
	assert.Contains(t, out, "no frame selected")
}

func TestModel_EscQuits(t *testing.T) {
	m := newTestModel(t)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

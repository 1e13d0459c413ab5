// Package tui implements the viewer's terminal UI: the part of fadetop
// that is an external collaborator of the sample aggregation engine,
// described by the engine's query surface rather than by the engine
// itself. It is built with bubbletea/bubbles/lipgloss in the style of the
// tori-cli and klique example programs.
package tui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	bubblesviewport "github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/alesr/fadetop/internal/coordinator"
	"github.com/alesr/fadetop/internal/framequeue"
	"github.com/alesr/fadetop/internal/queuemap"
	"github.com/alesr/fadetop/internal/stacktrace"
)

// eventMsg carries one coordinator.Event into the bubbletea Update loop.
type eventMsg struct {
	event coordinator.Event
	ok    bool
}

// threadEntry is one row of the thread selector, grouped by pid.
type threadEntry struct {
	pid  stacktrace.Pid
	tid  stacktrace.Tid
	name string
}

// Model is the bubbletea model driving fadetop's view. It never mutates
// the engine directly: it only calls SampleCoordinator.View to take a
// read-locked snapshot for rendering.
type Model struct {
	coord *coordinator.SampleCoordinator
	log   *logrus.Entry

	viewport ViewPortBounds
	focus    Focus
	maxDepth int

	showProcessColumn bool

	threads     []threadEntry
	selectedIdx int
	logView     bubblesviewport.Model

	width, height int

	quitting  bool
	fatalErr  error
	statusMsg string
}

// New constructs the viewer model. coord must already be wired to a
// running SampleCoordinator; windowWidth is the initial viewport width
// (§6 window_width).
func New(coord *coordinator.SampleCoordinator, log *logrus.Entry, windowWidth time.Duration) Model {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return Model{
		coord:             coord,
		log:               log,
		viewport:          NewViewPortBounds(windowWidth),
		focus:             FocusThreadList,
		maxDepth:          64,
		showProcessColumn: true,
		logView:           bubblesviewport.New(80, 5),
	}
}

func (m Model) Init() tea.Cmd {
	return waitForEvent(m.coord)
}

// waitForEvent is the standard bubbletea idiom for bridging an external
// event source (the coordinator's channel) into the Elm-architecture
// message loop: block for one event, then reissue the Cmd so Update keeps
// getting called.
func waitForEvent(coord *coordinator.SampleCoordinator) tea.Cmd {
	return func() tea.Msg {
		e, ok := <-coord.Events()
		return eventMsg{event: e, ok: ok}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.logView.Width = m.width
		if m.height > 10 {
			m.logView.Height = 5
		}
		return m, nil

	case eventMsg:
		if !msg.ok {
			// Both coordinator activities stopped (Stop was called or the
			// run context was cancelled): ordinary shutdown, not a
			// failure, per §7's ChannelClosed kind.
			m.log.WithError(&coordinator.ChannelClosedError{}).Debug("coordinator: update channel closed")
			m.quitting = true
			return m, tea.Quit
		}
		switch e := msg.event.(type) {
		case coordinator.SampleApplied:
			m.refreshThreads()
		case coordinator.Periodic:
			m.refreshThreads()
		case coordinator.Fatal:
			m.fatalErr = e.Err
			m.statusMsg = fmt.Sprintf("fatal: %v", e.Err)
			m.quitting = true
			return m, tea.Quit
		}
		return m, waitForEvent(m.coord)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) refreshThreads() {
	var threads []threadEntry
	m.coord.View(func(qm *queuemap.QueueMap) {
		for tid, q := range qm.IterThreads() {
			info := q.ThreadInfo()
			threads = append(threads, threadEntry{pid: info.Pid, tid: tid, name: info.Name})
		}
	})
	sort.Slice(threads, func(i, j int) bool {
		if threads[i].pid != threads[j].pid {
			return threads[i].pid < threads[j].pid
		}
		return threads[i].tid < threads[j].tid
	})
	m.threads = threads
	if m.selectedIdx >= len(threads) {
		m.selectedIdx = max(0, len(threads)-1)
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+c":
		m.quitting = true
		m.coord.Stop()
		return m, tea.Quit
	case "tab":
		m.focus = m.focus.Next()
		return m, nil
	case "shift+tab":
		m.focus = m.focus.Prev()
		return m, nil
	}

	switch m.focus {
	case FocusTimeline:
		return m.handleTimelineKey(msg)
	case FocusThreadList:
		return m.handleThreadListKey(msg)
	case FocusLogView:
		return m.handleLogViewKey(msg)
	}
	return m, nil
}

func (m Model) handleTimelineKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	now := time.Now()
	switch msg.String() {
	case "i":
		m.viewport.ZoomIn()
	case "o":
		m.viewport.ZoomOut()
	case "left":
		m.viewport.MoveLeft(now)
	case "right":
		m.viewport.MoveRight(now)
	case "up":
		if m.maxDepth > 1 {
			m.maxDepth--
		}
	case "down":
		m.maxDepth++
	}
	return m, nil
}

func (m Model) handleThreadListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up":
		if m.selectedIdx > 0 {
			m.selectedIdx--
		}
	case "down":
		if m.selectedIdx < len(m.threads)-1 {
			m.selectedIdx++
		}
	case "left", "right":
		// Thread cursor within the same process; selectedIdx already walks
		// pid-then-tid order, so left/right behave like up/down scoped to
		// the current pid: they never step onto another process's thread.
		if m.selectedIdx < 0 || m.selectedIdx >= len(m.threads) {
			break
		}
		pid := m.threads[m.selectedIdx].pid
		if msg.String() == "left" && m.selectedIdx > 0 && m.threads[m.selectedIdx-1].pid == pid {
			m.selectedIdx--
		} else if msg.String() == "right" && m.selectedIdx < len(m.threads)-1 && m.threads[m.selectedIdx+1].pid == pid {
			m.selectedIdx++
		}
	case "p":
		m.showProcessColumn = !m.showProcessColumn
	}
	return m, nil
}

// handleLogViewKey scrolls the local-variable log panel. left/right are
// reserved by §6 for horizontal scroll but bubbles' viewport only exposes
// vertical scrolling in the version vendored here, so they act as a
// slower vertical nudge rather than doing nothing.
func (m Model) handleLogViewKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "left":
		m.logView.LineUp(1)
	case "down", "right":
		m.logView.LineDown(1)
	}
	return m, nil
}

func (m Model) selectedThread() (threadEntry, bool) {
	if m.selectedIdx < 0 || m.selectedIdx >= len(m.threads) {
		return threadEntry{}, false
	}
	return m.threads[m.selectedIdx], true
}

// selectedUnfinished looks up the open frame at the selected depth
// (m.maxDepth - 1, the same "selected depth" cursor §6 assigns to
// Timeline's up/down keys) on the selected thread, mirroring the
// original's LocalVariableWidget: it indexes unfinished_events at
// viewport_bound.selected_depth for the thread currently selected in the
// thread list.
func (m Model) selectedUnfinished() (framequeue.UnfinishedRecord, bool) {
	thread, ok := m.selectedThread()
	if !ok {
		return framequeue.UnfinishedRecord{}, false
	}

	var (
		rec   framequeue.UnfinishedRecord
		found bool
	)
	m.coord.View(func(qm *queuemap.QueueMap) {
		q := qm.Select(thread.tid)
		if q == nil {
			return
		}
		depth := m.maxDepth - 1
		if depth < 0 {
			depth = 0
		}
		rec, found = q.UnfinishedAt(depth)
	})
	return rec, found
}

// renderLocals lists a frame's local variables as "name\n  repr" pairs,
// matching the original's LocalVariableWidget rendering.
func renderLocals(locals []stacktrace.LocalVariable) string {
	if len(locals) == 0 {
		return "(no locals)"
	}
	var b strings.Builder
	for _, lv := range locals {
		fmt.Fprintf(&b, "%s\n  %s\n", lv.Name, lv.Repr)
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) View() string {
	if m.quitting {
		if m.fatalErr != nil {
			return fmt.Sprintf("fadetop: %v\n", m.fatalErr)
		}
		return ""
	}

	left := m.renderThreadList()
	right := m.renderTimeline()
	top := lipgloss.JoinHorizontal(lipgloss.Top, left, right)
	bottom := m.renderLogView()

	return lipgloss.JoinVertical(lipgloss.Left, top, bottom)
}

var (
	paneBorder    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	focusedBorder = paneBorder.BorderForeground(lipgloss.Color("#5fafff"))
)

func (m Model) styleFor(f Focus) lipgloss.Style {
	if m.focus == f {
		return focusedBorder
	}
	return paneBorder
}

func (m Model) renderThreadList() string {
	var b strings.Builder
	for i, t := range m.threads {
		label := fmt.Sprintf("tid=%d", t.tid)
		if m.showProcessColumn {
			label = fmt.Sprintf("pid=%d %s", t.pid, label)
		}
		if t.name != "" {
			label += " " + t.name
		}
		if i == m.selectedIdx {
			label = "> " + label
		} else {
			label = "  " + label
		}
		b.WriteString(label)
		b.WriteString("\n")
	}
	return m.styleFor(FocusThreadList).Render(b.String())
}

func (m Model) renderTimeline() string {
	thread, ok := m.selectedThread()
	if !ok {
		return m.styleFor(FocusTimeline).Render("no threads sampled yet")
	}

	var q *framequeue.FrameQueue
	m.coord.View(func(qm *queuemap.QueueMap) {
		q = qm.Select(thread.tid)
	})
	if q == nil {
		return m.styleFor(FocusTimeline).Render("thread no longer tracked")
	}

	now := time.Now()
	start, end := m.viewport.Bounds(now)
	header := m.viewport.RenderHeader(q.StartTS(), q.LastUpdate())

	intervals := q.VisibleIntervals(start, end, m.maxDepth)
	sort.Slice(intervals, func(i, j int) bool {
		if intervals[i].Depth != intervals[j].Depth {
			return intervals[i].Depth < intervals[j].Depth
		}
		return intervals[i].Start.Before(intervals[j].Start)
	})

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s %s\n", header.TotalLifetime, header.Width, header.OffsetFromNow)

	byDepth := make(map[int][]framequeue.Interval)
	var depths []int
	for _, iv := range intervals {
		if _, seen := byDepth[iv.Depth]; !seen {
			depths = append(depths, iv.Depth)
		}
		byDepth[iv.Depth] = append(byDepth[iv.Depth], iv)
	}
	sort.Ints(depths)

	width := 60
	if m.width > 20 {
		width = m.width - 20
	}
	windowDur := end.Sub(start)

	for _, depth := range depths {
		row := make([]rune, width)
		colors := make([]lipgloss.Color, width)
		for i := range row {
			row[i] = ' '
		}
		for _, iv := range byDepth[depth] {
			startOff := iv.Start.Sub(start)
			endOff := iv.End.Sub(start)
			from := clampCol(int(float64(startOff)/float64(windowDur)*float64(width)), width)
			to := clampCol(int(float64(endOff)/float64(windowDur)*float64(width)), width)
			if to <= from {
				to = from + 1
			}
			glyph := '#'
			color := frameColor(iv.FrameKey.FunctionName)
			if iv.Running {
				glyph = '>'
				color = runningColor(iv.Depth)
			}
			for x := from; x < to && x < width; x++ {
				row[x] = glyph
				colors[x] = color
			}
		}
		fmt.Fprintf(&b, "%2d |%s|\n", depth, renderRow(row, colors))
	}

	return m.styleFor(FocusTimeline).Render(b.String())
}

// renderRow joins a row's characters into styled, color-grouped runs, so
// adjacent cells sharing a color are emitted as one lipgloss span rather
// than one escape sequence per character.
func renderRow(row []rune, colors []lipgloss.Color) string {
	var b strings.Builder
	i := 0
	for i < len(row) {
		j := i + 1
		for j < len(row) && colors[j] == colors[i] {
			j++
		}
		segment := string(row[i:j])
		if colors[i] == "" {
			b.WriteString(segment)
		} else {
			b.WriteString(lipgloss.NewStyle().Foreground(colors[i]).Render(segment))
		}
		i = j
	}
	return b.String()
}

func clampCol(x, width int) int {
	if x < 0 {
		return 0
	}
	if x > width {
		return width
	}
	return x
}

// renderLogView renders the local-variable panel for the frame at the
// selected depth of the selected thread (§6's "LogView"/"local-variable
// panel"), scrollable via the same bubbles/viewport used for everything
// else the teacher's style scrolls. Fatal/transient status is shown on a
// separate line below it rather than folded into the same pane.
func (m Model) renderLogView() string {
	logView := m.logView

	title := "Local Variables"
	rec, ok := m.selectedUnfinished()
	if ok {
		title = fmt.Sprintf("Local Variables %s", rec.FrameKey.FunctionName)
		logView.SetContent(renderLocals(rec.Frame.LocalVariables))
	} else {
		logView.SetContent("(no frame selected)")
	}

	pane := m.styleFor(FocusLogView).Render(title + "\n" + logView.View())
	if m.statusMsg != "" {
		return lipgloss.JoinVertical(lipgloss.Left, pane, m.statusMsg)
	}
	return pane
}

package tui

// Focus identifies which pane currently receives keyboard input, per §6's
// keybinding table.
type Focus int

const (
	FocusThreadList Focus = iota
	FocusTimeline
	FocusLogView
)

// Next cycles ThreadList -> Timeline -> LogView -> ThreadList, triggered by
// Tab.
func (f Focus) Next() Focus {
	switch f {
	case FocusThreadList:
		return FocusTimeline
	case FocusTimeline:
		return FocusLogView
	default:
		return FocusThreadList
	}
}

// Prev is the inverse of Next, mirroring the original's paired
// next_tab/prev_tab cycling (src/state.rs). §6 only binds forward Tab;
// the viewer additionally binds Prev to shift+tab.
func (f Focus) Prev() Focus {
	switch f {
	case FocusThreadList:
		return FocusLogView
	case FocusLogView:
		return FocusTimeline
	default:
		return FocusThreadList
	}
}

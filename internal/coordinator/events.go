package coordinator

// Event is the sum type delivered on the coordinator's update channel.
// The sampler and tick activities are the two producers the coordinator
// itself owns (§4.5); a third, the input activity, is satisfied by the
// terminal UI library's own blocking reader and is not modeled here (see
// SPEC_FULL.md's DOMAIN STACK section).
type Event interface {
	isEvent()
}

// SampleApplied is emitted after a sample has been merged into the
// QueueMap, so the viewer knows a redraw may show new data.
type SampleApplied struct {
	// ClosedCount is the number of FinishedRecords this sample produced;
	// purely informational; the viewer re-queries the QueueMap for the
	// records themselves rather than trust this payload.
	ClosedCount int
}

func (SampleApplied) isEvent() {}

// Periodic is emitted every update period as a redraw tick, independent
// of whether any sample arrived.
type Periodic struct{}

func (Periodic) isEvent() {}

// Fatal is emitted once, when a writer panic poisons the QueueMap lock
// (LockPoisoned) and ends the sampler activity. SamplerStartup and
// TerminalIO failures are returned by the CLI directly and are not sent on
// this channel. The channel itself is closed only after the tick activity
// has stopped as well.
type Fatal struct {
	Err error
}

func (Fatal) isEvent() {}

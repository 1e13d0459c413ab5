package sampler

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/alesr/fadetop/internal/stacktrace"
)

// replayFrame is the on-disk shape of one Frame. It is kept separate from
// stacktrace.Frame so the wire format can evolve independently of the
// in-memory model.
type replayFrame struct {
	FunctionName string `json:"function_name"`
	FileName     string `json:"file_name"`
	LineNumber   int    `json:"line_number"`
	IsEntry      bool   `json:"is_entry"`
}

// replayRecord is one newline-delimited JSON record in a replay file.
// OffsetMillis is the record's capture offset relative to the first
// record in the file; the Replay producer honors it as relative pacing
// rather than trusting the file's own wall-clock timestamps (per §9, the
// engine never assumes alignment between producer and engine clocks).
type replayRecord struct {
	OffsetMillis int64         `json:"offset_ms"`
	Pid          int64         `json:"pid"`
	Tid          int64         `json:"tid"`
	ThreadName   string        `json:"thread_name,omitempty"`
	Frames       []replayFrame `json:"frames"`
}

// Replay is a Producer backed by a recorded, newline-delimited JSON trace
// file, one replayRecord per line. Records are emitted honoring their
// relative offsets, scaled by speed (1.0 = real time, 0 = as fast as
// possible).
type Replay struct {
	scanner *bufio.Scanner
	closer  io.Closer
	speed   float64

	started  bool
	baseWall time.Time
	baseOff  int64
}

// NewReplay wraps r (and an optional closer, e.g. the backing *os.File) as
// a Producer. speed <= 0 means replay as fast as possible with no pacing.
func NewReplay(r io.Reader, closer io.Closer, speed float64) *Replay {
	return &Replay{
		scanner: bufio.NewScanner(r),
		closer:  closer,
		speed:   speed,
	}
}

func (rp *Replay) Next(ctx context.Context) (stacktrace.StackTrace, error) {
	if !rp.scanner.Scan() {
		if err := rp.scanner.Err(); err != nil {
			return stacktrace.StackTrace{}, fmt.Errorf("sampler: reading replay file: %w", err)
		}
		return stacktrace.StackTrace{}, ErrExhausted
	}

	var rec replayRecord
	if err := json.Unmarshal(rp.scanner.Bytes(), &rec); err != nil {
		return stacktrace.StackTrace{}, fmt.Errorf("sampler: decoding replay record: %w", err)
	}

	if !rp.started {
		rp.started = true
		rp.baseWall = time.Now()
		rp.baseOff = rec.OffsetMillis
	}

	if rp.speed > 0 {
		elapsed := time.Duration(float64(rec.OffsetMillis-rp.baseOff)/rp.speed) * time.Millisecond
		target := rp.baseWall.Add(elapsed)
		if d := time.Until(target); d > 0 {
			select {
			case <-time.After(d):
			case <-ctx.Done():
				return stacktrace.StackTrace{}, ctx.Err()
			}
		}
	}

	frames := make([]stacktrace.Frame, len(rec.Frames))
	for i, f := range rec.Frames {
		frames[i] = stacktrace.Frame{
			FunctionName: f.FunctionName,
			FileName:     f.FileName,
			LineNumber:   f.LineNumber,
			IsEntry:      f.IsEntry,
		}
	}

	return stacktrace.StackTrace{
		Pid:        stacktrace.Pid(rec.Pid),
		Tid:        stacktrace.Tid(rec.Tid),
		ThreadName: rec.ThreadName,
		Frames:     frames,
	}, nil
}

func (rp *Replay) Close() error {
	if rp.closer != nil {
		return rp.closer.Close()
	}
	return nil
}

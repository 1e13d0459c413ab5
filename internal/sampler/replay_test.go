package sampler

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alesr/fadetop/internal/stacktrace"
)

func stacktraceTrace(pid stacktrace.Pid, tid stacktrace.Tid, name string) stacktrace.StackTrace {
	return stacktrace.StackTrace{
		Pid:    pid,
		Tid:    tid,
		Frames: []stacktrace.Frame{{FunctionName: name, FileName: "t.py"}},
	}
}

func TestReplay_YieldsRecordsThenExhausted(t *testing.T) {
	t.Parallel()

	data := strings.Join([]string{
		`{"offset_ms":0,"pid":1,"tid":1,"frames":[{"function_name":"a","file_name":"t.py"}]}`,
		`{"offset_ms":5,"pid":1,"tid":1,"frames":[{"function_name":"b","file_name":"t.py"}]}`,
	}, "\n")

	rp := NewReplay(strings.NewReader(data), io.NopCloser(nil), 0)
	defer rp.Close()

	ctx := context.Background()

	trace1, err := rp.Next(ctx)
	require.NoError(t, err)
	require.Len(t, trace1.Frames, 1)
	assert.Equal(t, "a", trace1.Frames[0].FunctionName)

	trace2, err := rp.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, "b", trace2.Frames[0].FunctionName)

	_, err = rp.Next(ctx)
	assert.ErrorIs(t, err, ErrExhausted)
}

func TestReplay_MalformedRecordErrors(t *testing.T) {
	t.Parallel()

	rp := NewReplay(strings.NewReader("not json\n"), io.NopCloser(nil), 0)
	defer rp.Close()

	_, err := rp.Next(context.Background())
	assert.Error(t, err)
}

func TestMock_YieldsInOrderThenExhausted(t *testing.T) {
	t.Parallel()

	m := NewMock(
		stacktraceTrace(1, 1, "a"),
		stacktraceTrace(1, 1, "b"),
	)

	ctx := context.Background()
	first, err := m.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, "a", first.Frames[0].FunctionName)

	second, err := m.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, "b", second.Frames[0].FunctionName)

	_, err = m.Next(ctx)
	assert.ErrorIs(t, err, ErrExhausted)
}

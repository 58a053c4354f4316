package scope

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itohio/gogurdy/pkg/keybox"
)

var t0 = time.Unix(100, 0)

func frame(at time.Duration, pressed ...int) keybox.Frame {
	levels := ^uint64(0)
	for _, p := range pressed {
		levels &^= 1 << uint(p)
	}
	return keybox.Frame{Timestamp: t0.Add(at), Levels: levels}
}

func TestNewTrace_DefaultWindow(t *testing.T) {
	assert.Equal(t, 5*time.Second, NewTrace(0).Window())
	assert.Equal(t, time.Second, NewTrace(time.Second).Window())
}

func TestTrace_StoresOnlyChanges(t *testing.T) {
	tr := NewTrace(time.Second)

	for i := range 10 {
		tr.Push(frame(time.Duration(i) * time.Millisecond))
	}
	assert.Equal(t, 1, tr.Changes())

	tr.Push(frame(10*time.Millisecond, 3))
	tr.Push(frame(11*time.Millisecond, 3))
	assert.Equal(t, 2, tr.Changes())

	start, end := tr.Range()
	assert.Equal(t, t0.Add(11*time.Millisecond), end)
	assert.Equal(t, end.Add(-time.Second), start)
}

func TestTrace_Spans(t *testing.T) {
	tr := NewTrace(time.Second)

	tr.Push(frame(0))
	tr.Push(frame(100*time.Millisecond, 3))
	tr.Push(frame(200*time.Millisecond, 3, 4))
	tr.Push(frame(300*time.Millisecond, 4))
	tr.Push(frame(400 * time.Millisecond))
	tr.Push(frame(500*time.Millisecond, 3))
	tr.Push(frame(600*time.Millisecond, 3))

	spans := tr.Spans(3)
	require.Len(t, spans, 2)
	assert.Equal(t, Span{Start: t0.Add(100 * time.Millisecond), End: t0.Add(300 * time.Millisecond)}, spans[0])
	assert.Equal(t, Span{Start: t0.Add(500 * time.Millisecond), End: t0.Add(600 * time.Millisecond)}, spans[1], "still held")

	spans = tr.Spans(4)
	require.Len(t, spans, 1)
	assert.Equal(t, Span{Start: t0.Add(200 * time.Millisecond), End: t0.Add(400 * time.Millisecond)}, spans[0])

	assert.Empty(t, tr.Spans(5))
}

func TestTrace_TrimsToWindow(t *testing.T) {
	tr := NewTrace(time.Second)

	tr.Push(frame(0, 3))
	tr.Push(frame(500*time.Millisecond))
	tr.Push(frame(1200*time.Millisecond, 7))
	tr.Push(frame(2000*time.Millisecond, 7))

	// The window starts at 1s; the release at 500ms is the baseline
	assert.Equal(t, 2, tr.Changes())
	assert.Empty(t, tr.Spans(3))

	spans := tr.Spans(7)
	require.Len(t, spans, 1)
	assert.Equal(t, t0.Add(1200*time.Millisecond), spans[0].Start)
}

func TestTrace_ClipsSpanToWindowStart(t *testing.T) {
	tr := NewTrace(time.Second)

	tr.Push(frame(0, 2))
	tr.Push(frame(1500*time.Millisecond, 2))
	tr.Push(frame(1800 * time.Millisecond))

	spans := tr.Spans(2)
	require.Len(t, spans, 1)
	assert.Equal(t, t0.Add(800*time.Millisecond), spans[0].Start)
	assert.Equal(t, t0.Add(1800*time.Millisecond), spans[0].End)
}

func TestFormatTime(t *testing.T) {
	assert.Equal(t, "now", formatTime(0))
	assert.Equal(t, "-0.50s", formatTime(500*time.Millisecond))
	assert.Equal(t, "-2.0s", formatTime(2*time.Second))
}

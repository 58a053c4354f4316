// Package scope shows keybox pin activity over time, logic-analyser style.
package scope

import (
	"sync"
	"time"

	"github.com/itohio/gogurdy/pkg/keybox"
)

// Span is an interval during which a pin was pressed (low).
type Span struct {
	Start time.Time
	End   time.Time
}

// Trace keeps the level changes of the last window of frames. Only frames
// that change a level are stored.
type Trace struct {
	mu      sync.RWMutex
	window  time.Duration
	changes []keybox.Frame // oldest first; changes[0] holds the levels at the window start
	last    time.Time
}

// NewTrace creates a trace covering window.
func NewTrace(window time.Duration) *Trace {
	if window <= 0 {
		window = 5 * time.Second
	}
	return &Trace{window: window}
}

// Window returns the covered duration.
func (t *Trace) Window() time.Duration {
	return t.window
}

// Push records f. Frames must arrive in timestamp order.
func (t *Trace) Push(f keybox.Frame) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if n := len(t.changes); n == 0 || t.changes[n-1].Levels != f.Levels {
		t.changes = append(t.changes, f)
	}
	t.last = f.Timestamp
	t.trim()
}

// trim drops changes superseded before the window start. Callers hold mu.
func (t *Trace) trim() {
	start := t.last.Add(-t.window)
	i := 0
	for i+1 < len(t.changes) && !t.changes[i+1].Timestamp.After(start) {
		i++
	}
	if i > 0 {
		t.changes = append(t.changes[:0], t.changes[i:]...)
	}
}

// Range returns the covered interval, ending at the newest frame.
func (t *Trace) Range() (start, end time.Time) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.last.Add(-t.window), t.last
}

// Changes returns the number of stored level changes.
func (t *Trace) Changes() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.changes)
}

// Spans returns the intervals pin was pressed within the window, clipped to
// it. A pin still pressed ends at the newest frame.
func (t *Trace) Spans(pin int) []Span {
	t.mu.RLock()
	defer t.mu.RUnlock()

	start, end := t.last.Add(-t.window), t.last

	var (
		spans []Span
		open  bool
		from  time.Time
	)
	for _, c := range t.changes {
		ts := c.Timestamp
		if ts.Before(start) {
			ts = start
		}
		pressed := !c.Level(pin)
		switch {
		case pressed && !open:
			open, from = true, ts
		case !pressed && open:
			open = false
			spans = append(spans, Span{Start: from, End: ts})
		}
	}
	if open {
		spans = append(spans, Span{Start: from, End: end})
	}
	return spans
}

// Package display renders the instrument screens as text frames.
package display

import (
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/itohio/gogurdy/pkg/button"
	"github.com/itohio/gogurdy/pkg/mute"
)

// Play screen layouts.
const (
	ScreenNote   mute.ScreenKind = "note"   // note name only
	ScreenDetail mute.ScreenKind = "detail" // note name and MIDI number
)

// Width is the number of text columns of the screen.
const Width = 21

var noteNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// NoteName returns the scientific pitch name of a MIDI note, e.g. 60 -> C4.
func NoteName(n int) string {
	if n < 0 {
		return "--"
	}
	return fmt.Sprintf("%s%d", noteNames[n%12], n/12-1)
}

var (
	frameStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Width(Width)
	noteStyle  = lipgloss.NewStyle().Bold(true).Width(Width).Align(lipgloss.Center)
	mutedStyle = lipgloss.NewStyle().Faint(true)
)

var (
	_ mute.Display  = (*Text)(nil)
	_ button.Screen = (*Text)(nil)
)

// Text keeps the latest frame and notifies a listener whenever it changes.
type Text struct {
	mu       sync.RWMutex
	frame    string
	onChange func(frame string)
}

// New creates an empty display.
func New() *Text {
	return &Text{}
}

// OnChange registers fn to receive every new frame. fn runs on the caller's
// goroutine.
func (d *Text) OnChange(fn func(frame string)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.onChange = fn
}

// Frame returns the last rendered frame.
func (d *Text) Frame() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.frame
}

// DrawPlayScreen shows the sounding melody pitch. A text frame is always
// rendered whole, so full makes no difference here.
func (d *Text) DrawPlayScreen(pitch int, kind mute.ScreenKind, _ bool) {
	d.set(renderPlay(pitch, kind))
}

// PrintDisplay shows the status screen.
func (d *Text) PrintDisplay(s mute.Status) {
	d.set(renderStatus(s))
}

// PrintScreen shows a block of text as is.
func (d *Text) PrintScreen(text string) {
	d.set(strings.TrimRight(text, "\n"))
}

func (d *Text) set(content string) {
	frame := frameStyle.Render(content)

	d.mu.Lock()
	changed := d.frame != frame
	d.frame = frame
	fn := d.onChange
	d.mu.Unlock()

	if changed && fn != nil {
		fn(frame)
	}
}

func renderPlay(pitch int, kind mute.ScreenKind) string {
	lines := []string{"", noteStyle.Render(NoteName(pitch))}
	if kind == ScreenDetail {
		lines = append(lines, noteStyle.Render(fmt.Sprintf("(%d)", pitch)))
	}
	return strings.Join(lines, "\n")
}

func renderStatus(s mute.Status) string {
	var b strings.Builder
	fmt.Fprintf(&b, " Hi: %-4s  Lo: %-4s\n", voiceLabel(s.High, s.MuteHigh), voiceLabel(s.Low, s.MuteLow))
	fmt.Fprintf(&b, " Dr: %-4s  Tr: %-4s\n", voiceLabel(s.Drone, s.MuteDrone), voiceLabel(s.Tromp, s.MuteTromp))
	fmt.Fprintf(&b, " Tpose: %+d  Capo: %d\n", s.Transpose, s.Capo)
	fmt.Fprintf(&b, " Key: %d", s.Offset)
	return b.String()
}

func voiceLabel(note int, muted bool) string {
	if muted {
		return mutedStyle.Render("MUTE")
	}
	return NoteName(note)
}

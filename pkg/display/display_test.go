package display

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/itohio/gogurdy/pkg/button"
	"github.com/itohio/gogurdy/pkg/mute"
)

func TestNoteName(t *testing.T) {
	tests := []struct {
		note int
		want string
	}{
		{60, "C4"},
		{67, "G4"},
		{55, "G3"},
		{61, "C#4"},
		{0, "C-1"},
		{127, "G9"},
		{-1, "--"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, NoteName(tt.note))
		})
	}
}

func TestText_PlayScreen(t *testing.T) {
	d := New()

	d.DrawPlayScreen(69, ScreenNote, false)
	assert.Contains(t, d.Frame(), "A4")
	assert.NotContains(t, d.Frame(), "(69)")

	d.DrawPlayScreen(69, ScreenDetail, true)
	assert.Contains(t, d.Frame(), "A4")
	assert.Contains(t, d.Frame(), "(69)")
}

func TestText_PlayScreenFullIsSameFrame(t *testing.T) {
	d := New()

	d.DrawPlayScreen(60, ScreenDetail, false)
	partial := d.Frame()
	d.DrawPlayScreen(60, ScreenDetail, true)

	assert.Equal(t, partial, d.Frame())
}

func TestText_StatusScreen(t *testing.T) {
	d := New()

	d.PrintDisplay(mute.Status{
		High: 67, Low: 55, Drone: 48, Tromp: 60,
		Transpose: 2, Capo: 4, Offset: 3,
		MuteLow: true,
	})

	frame := d.Frame()
	assert.Contains(t, frame, "G4")
	assert.NotContains(t, frame, "G3")
	assert.Contains(t, frame, "MUTE")
	assert.Contains(t, frame, "C3")
	assert.Contains(t, frame, "C4")
	assert.Contains(t, frame, "+2")
	assert.Contains(t, frame, "Capo: 4")
	assert.Contains(t, frame, "Key: 3")
}

func TestText_PrintScreen(t *testing.T) {
	d := New()

	d.PrintScreen(button.ChoiceText)
	assert.Contains(t, d.Frame(), "Choose EX  Function:")
	assert.Contains(t, d.Frame(), "Toggle Tromp Mute")
}

func TestText_OnChange(t *testing.T) {
	d := New()
	var frames []string
	d.OnChange(func(frame string) {
		frames = append(frames, frame)
	})

	d.PrintScreen("hello")
	d.PrintScreen("hello")
	d.DrawPlayScreen(60, ScreenNote, false)

	assert.Len(t, frames, 2, "repeated frames are not reported")
	assert.Equal(t, d.Frame(), frames[1])
	assert.Contains(t, frames[0], "hello")
}

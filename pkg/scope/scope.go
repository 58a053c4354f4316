package scope

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"
)

// Row is one displayed pin.
type Row struct {
	Pin   int
	Label string
}

// ScopeWidget is a custom Fyne widget drawing one row per pin with a bar
// wherever the pin was pressed.
type ScopeWidget struct {
	widget.BaseWidget

	trace *Trace
	rows  []Row
}

// New creates a new ScopeWidget instance showing rows of trace.
func New(trace *Trace, rows []Row) *ScopeWidget {
	s := &ScopeWidget{
		trace: trace,
		rows:  rows,
	}
	s.ExtendBaseWidget(s)
	// Trigger initial refresh to display empty scope
	s.Refresh()
	return s
}

// Rows returns the displayed rows.
func (s *ScopeWidget) Rows() []Row {
	return s.rows
}

// CreateRenderer creates the widget renderer.
func (s *ScopeWidget) CreateRenderer() fyne.WidgetRenderer {
	grid := canvas.NewRectangle(color.RGBA{R: 20, G: 20, B: 20, A: 255}) // Dark background
	return &scopeRenderer{
		scope:   s,
		grid:    grid,
		objects: []fyne.CanvasObject{grid},
	}
}

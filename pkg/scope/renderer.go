package scope

import (
	"fmt"
	"image/color"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
)

var (
	gridColor  = color.RGBA{R: 40, G: 40, B: 40, A: 255}
	textColor  = color.RGBA{R: 150, G: 150, B: 150, A: 255}
	pressColor = color.RGBA{R: 255, G: 165, B: 0, A: 255} // Orange
)

// scopeRenderer renders the scope widget.
type scopeRenderer struct {
	scope *ScopeWidget

	// Background
	grid *canvas.Rectangle

	// Objects list for Fyne
	objects []fyne.CanvasObject

	// Track last size to detect changes
	lastSize fyne.Size
}

// MinSize returns the minimum size of the widget.
func (r *scopeRenderer) MinSize() fyne.Size {
	return fyne.NewSize(400, float32(12*len(r.scope.rows)+40))
}

// Layout arranges the widget components.
func (r *scopeRenderer) Layout(size fyne.Size) {
	// Background fills entire widget
	r.grid.Resize(size)

	// Size changed, redraw with new dimensions
	if r.lastSize != size {
		r.lastSize = size
		r.scope.BaseWidget.Refresh()
	}
}

// Refresh updates the widget display.
func (r *scopeRenderer) Refresh() {
	size := r.scope.Size()
	if size.Width == 0 || size.Height == 0 || len(r.scope.rows) == 0 {
		return
	}

	// Clear old objects (but keep grid)
	r.objects = []fyne.CanvasObject{r.grid}

	// Calculate margins
	marginLeft := float32(40.0)
	marginRight := float32(10.0)
	marginTop := float32(10.0)
	marginBottom := float32(20.0)

	plotWidth := size.Width - marginLeft - marginRight
	plotHeight := size.Height - marginTop - marginBottom
	plotX := marginLeft
	plotY := marginTop
	rowHeight := plotHeight / float32(len(r.scope.rows))

	start, end := r.scope.trace.Range()
	window := end.Sub(start)

	r.drawGrid(plotX, plotY, plotWidth, plotHeight, rowHeight, window)

	for i, row := range r.scope.rows {
		y := plotY + float32(i)*rowHeight
		for _, span := range r.scope.trace.Spans(row.Pin) {
			x1 := plotX + float32(span.Start.Sub(start).Seconds()/window.Seconds())*plotWidth
			x2 := plotX + float32(span.End.Sub(start).Seconds()/window.Seconds())*plotWidth
			bar := canvas.NewRectangle(pressColor)
			bar.Move(fyne.NewPos(x1, y+rowHeight*0.2))
			bar.Resize(fyne.NewSize(max(x2-x1, 1), rowHeight*0.6))
			r.objects = append(r.objects, bar)
		}
	}
}

// drawGrid draws row separators, row labels and time lines.
func (r *scopeRenderer) drawGrid(plotX, plotY, plotWidth, plotHeight, rowHeight float32, window time.Duration) {
	for i, row := range r.scope.rows {
		y := plotY + float32(i)*rowHeight
		line := canvas.NewLine(gridColor)
		line.Position1 = fyne.NewPos(plotX, y+rowHeight)
		line.Position2 = fyne.NewPos(plotX+plotWidth, y+rowHeight)
		line.StrokeWidth = 1
		r.objects = append(r.objects, line)

		text := canvas.NewText(row.Label, textColor)
		text.TextSize = 10
		text.Alignment = fyne.TextAlignTrailing
		text.Move(fyne.NewPos(plotX-5, y+rowHeight/2-6))
		r.objects = append(r.objects, text)
	}

	// Vertical grid lines (time, newest on the right)
	numVLines := 10
	for i := range numVLines + 1 {
		x := plotX + float32(i)*plotWidth/float32(numVLines)
		line := canvas.NewLine(gridColor)
		line.Position1 = fyne.NewPos(x, plotY)
		line.Position2 = fyne.NewPos(x, plotY+plotHeight)
		line.StrokeWidth = 1
		r.objects = append(r.objects, line)

		ago := window * time.Duration(numVLines-i) / time.Duration(numVLines)
		text := canvas.NewText(formatTime(ago), textColor)
		text.TextSize = 10
		text.Alignment = fyne.TextAlignCenter
		text.Move(fyne.NewPos(x-20, plotY+plotHeight+5))
		r.objects = append(r.objects, text)
	}
}

// Objects returns the objects to render.
func (r *scopeRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

// Destroy is called when the renderer is destroyed.
func (r *scopeRenderer) Destroy() {}

func formatTime(d time.Duration) string {
	if d == 0 {
		return "now"
	}
	if d < time.Second {
		return fmt.Sprintf("-%.2fs", d.Seconds())
	}
	return fmt.Sprintf("-%.1fs", d.Seconds())
}

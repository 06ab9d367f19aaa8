package app

import (
	"github.com/Faultbox/divescroll/internal/engine/ui2d"
	"github.com/Faultbox/divescroll/internal/scroll"
)

const markerWidth = 120

// markerLine is one labelled horizontal marker in window pixels.
type markerLine struct {
	X, Y  float32
	Label string
	Color ui2d.Color
}

// markerLayout places the scroller markers at the right edge and the trigger
// markers at the left edge of a window width pixels wide.
func markerLayout(width float32, m scroll.MarkerLines) []markerLine {
	right := width - markerWidth
	return []markerLine{
		{X: right, Y: m.ScrollerStart, Label: "scroller-start", Color: ui2d.ColorStart},
		{X: right, Y: m.ScrollerEnd, Label: "scroller-end", Color: ui2d.ColorEnd},
		{X: 0, Y: m.Start, Label: "start", Color: ui2d.ColorStart},
		{X: 0, Y: m.End, Label: "end", Color: ui2d.ColorEnd},
	}
}

// drawOverlay draws the scroll markers in playback and the status panel,
// when markers are enabled or an authoring session is running.
func (a *App) drawOverlay() {
	c := a.core
	authoring := c.Authoring()
	if a.overlay == nil || (!a.cfg.Scroll.Markers && !authoring) {
		return
	}
	w, h := a.window.Size()
	r := a.overlay
	r.Begin()

	if !authoring {
		for _, l := range markerLayout(float32(w), c.Wheel.Markers()) {
			if l.Y < 0 || l.Y > float32(h) {
				continue
			}
			r.DrawHLine(l.X, l.Y, markerWidth, 2, l.Color)
			r.DrawText(l.X+4, l.Y+3, l.Label, 1, l.Color)
		}
	}

	status := c.Status()
	tw, th := r.MeasureText(status, 1)
	r.DrawPanel(8, 8, tw+12, th+8, ui2d.ColorPanelBg, ui2d.ColorPanelBg.WithAlpha(1))
	r.DrawText(14, 12, status, 1, ui2d.ColorText)

	r.End()
}

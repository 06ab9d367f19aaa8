package scroll

import (
	"sync"

	"github.com/chewxy/math32"
)

// hub fans progress values out to subscribers.
type hub struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]func(float32)
}

func (h *hub) Subscribe(fn func(float32)) func() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.subs == nil {
		h.subs = make(map[int]func(float32))
	}
	h.nextID++
	id := h.nextID
	h.subs[id] = fn
	return func() {
		h.mu.Lock()
		delete(h.subs, id)
		h.mu.Unlock()
	}
}

func (h *hub) publish(progress float32) {
	h.mu.Lock()
	subs := make([]func(float32), 0, len(h.subs))
	for _, fn := range h.subs {
		subs = append(subs, fn)
	}
	h.mu.Unlock()
	for _, fn := range subs {
		fn(progress)
	}
}

// WheelConfig describes the virtual page scrolled by the mouse wheel.
type WheelConfig struct {
	PageHeight     float32
	ViewportHeight float32
	PixelsPerNotch float32
}

// WheelSource turns mouse wheel motion into scroll progress over a virtual
// page whose body is the trigger region.
type WheelSource struct {
	hub
	cfg     WheelConfig
	start   Marker
	end     Marker
	rng     Range
	scrollY float32
}

// NewWheelSource creates a wheel source at the top of the page.
func NewWheelSource(cfg WheelConfig, start, end Marker) *WheelSource {
	if cfg.PixelsPerNotch <= 0 {
		cfg.PixelsPerNotch = 100
	}
	w := &WheelSource{cfg: cfg, start: start, end: end}
	w.updateRange()
	return w
}

func (w *WheelSource) trigger() Trigger {
	return Trigger{Top: 0, Height: w.cfg.PageHeight, Viewport: w.cfg.ViewportHeight}
}

func (w *WheelSource) updateRange() {
	w.rng = w.trigger().Range(w.start, w.end)
}

// maxScroll is the largest offset a page of this height allows.
func (w *WheelSource) maxScroll() float32 {
	return math32.Max(0, w.cfg.PageHeight-w.cfg.ViewportHeight)
}

// Range returns the start and end scroll offsets.
func (w *WheelSource) Range() Range {
	return w.rng
}

// ScrollY returns the current scroll offset.
func (w *WheelSource) ScrollY() float32 {
	return w.scrollY
}

// Progress returns the progress at the current offset.
func (w *WheelSource) Progress() float32 {
	return w.rng.Progress(w.scrollY)
}

// Wheel applies wheel motion. Positive notches scroll up, as SDL reports.
func (w *WheelSource) Wheel(notches float32) {
	w.ScrollTo(w.scrollY - notches*w.cfg.PixelsPerNotch)
}

// ScrollTo moves to offset y, clamped to the page, and publishes progress.
func (w *WheelSource) ScrollTo(y float32) {
	w.scrollY = math32.Max(0, math32.Min(y, w.maxScroll()))
	w.publish(w.Progress())
}

// Resize updates the viewport height, keeping the scroll offset in range.
func (w *WheelSource) Resize(viewportHeight float32) {
	w.cfg.ViewportHeight = viewportHeight
	w.updateRange()
	w.ScrollTo(w.scrollY)
}

// PageBy scrolls by a number of viewport heights, negative going up.
func (w *WheelSource) PageBy(pages float32) {
	w.ScrollTo(w.scrollY + pages*w.cfg.ViewportHeight)
}

// ScrollToEnd moves to the bottom of the page.
func (w *WheelSource) ScrollToEnd() {
	w.ScrollTo(w.maxScroll())
}

// MarkerLines are the marker positions in viewport pixels from the top.
// ScrollerStart and ScrollerEnd are fixed to the viewport; Start and End
// move with the trigger region.
type MarkerLines struct {
	ScrollerStart float32
	ScrollerEnd   float32
	Start         float32
	End           float32
}

// Markers returns where the start and end markers currently sit on screen.
func (w *WheelSource) Markers() MarkerLines {
	t := w.trigger()
	return MarkerLines{
		ScrollerStart: w.start.Viewport.Resolve(t.Viewport),
		ScrollerEnd:   w.end.Viewport.Resolve(t.Viewport),
		Start:         t.Top + w.start.Trigger.Resolve(t.Height) - w.scrollY,
		End:           t.Top + w.end.Trigger.Resolve(t.Height) - w.scrollY,
	}
}

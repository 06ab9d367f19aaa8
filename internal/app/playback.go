package app

import (
	"fmt"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/divescroll/internal/engine/input"
	"github.com/Faultbox/divescroll/internal/scroll"
)

// PlaybackMode drives the timeline from scroll progress.
type PlaybackMode struct {
	core    *Core
	binding *scroll.Binding
}

// NewPlaybackMode creates the scroll-driven mode.
func NewPlaybackMode(c *Core) *PlaybackMode {
	return &PlaybackMode{core: c}
}

// Name implements Mode.
func (p *PlaybackMode) Name() string {
	return "playback"
}

// Enter binds the scroll sources to the timeline.
func (p *PlaybackMode) Enter() error {
	c := p.core
	b, err := scroll.Bind(scrollConfig(c.cfg), c.Store.Duration, c.SetPosition, c.log.Named("scroll"))
	if err != nil {
		return fmt.Errorf("binding scroll: %w", err)
	}
	b.Listen(c.Wheel)
	if c.Server != nil {
		b.Listen(c.Server)
	}
	b.Report(c.Wheel.Progress())
	p.binding = b

	if c.cfg.Scroll.Markers {
		r := c.Wheel.Range()
		c.log.Info("scroll markers",
			zap.String("start", c.cfg.Scroll.Start),
			zap.Float32("start_px", r.Start),
			zap.String("end", c.cfg.Scroll.End),
			zap.Float32("end_px", r.End))
	}
	return nil
}

// Exit detaches the binding.
func (p *PlaybackMode) Exit() error {
	if p.binding != nil {
		p.binding.Unbind()
		p.binding = nil
	}
	return nil
}

// Update advances the smoothed position.
func (p *PlaybackMode) Update(dt float32) error {
	if p.binding != nil {
		p.binding.Tick(dt)
	}
	return nil
}

// HandleInput scrolls the virtual page.
func (p *PlaybackMode) HandleInput(ev input.Event) error {
	w := p.core.Wheel
	switch ev.Type {
	case input.EventWheel:
		w.Wheel(ev.WheelY)
	case input.EventWindowResize:
		w.Resize(float32(ev.Height))
	case input.EventKeyDown:
		switch ev.Key {
		case sdl.SCANCODE_PAGEDOWN, sdl.SCANCODE_SPACE:
			w.PageBy(0.9)
		case sdl.SCANCODE_PAGEUP:
			w.PageBy(-0.9)
		case sdl.SCANCODE_DOWN:
			w.Wheel(-1)
		case sdl.SCANCODE_UP:
			w.Wheel(1)
		case sdl.SCANCODE_HOME:
			w.ScrollTo(0)
		case sdl.SCANCODE_END:
			w.ScrollToEnd()
		}
	}
	return nil
}

// Status shows progress when scroll markers are enabled.
func (p *PlaybackMode) Status() string {
	if p.binding == nil || !p.core.cfg.Scroll.Markers {
		return ""
	}
	r := p.core.Wheel.Range()
	return fmt.Sprintf("progress %.3f | scroll %.0fpx [%.0f, %.0f]",
		p.binding.Progress(), p.core.Wheel.ScrollY(), r.Start, r.End)
}

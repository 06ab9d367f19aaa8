// Package scroll turns scroll progress into a smoothed timeline position.
package scroll

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"sync/atomic"

	"github.com/chewxy/math32"
	"go.uber.org/zap"

	"github.com/Faultbox/divescroll/internal/logger"
)

const (
	// settleRate scales how fast a scrub of one second catches up:
	// after Scrub seconds about 2% of the gap remains.
	settleRate = 4
	// snapEpsilon is the distance in seconds below which the position jumps
	// to its target.
	snapEpsilon = 1e-4
)

// Config is the scroll trigger configuration.
type Config struct {
	Trigger string
	Start   string
	End     string
	Scrub   float32 // seconds of lag; 0 follows progress exactly
	Markers bool
}

// ParseMarkers returns the parsed start and end markers.
func (c Config) ParseMarkers() (start, end Marker, err error) {
	if start, err = ParseMarker(c.Start); err != nil {
		return Marker{}, Marker{}, fmt.Errorf("start: %w", err)
	}
	if end, err = ParseMarker(c.End); err != nil {
		return Marker{}, Marker{}, fmt.Errorf("end: %w", err)
	}
	return start, end, nil
}

// Validate checks the markers and the scrub value.
func (c Config) Validate() error {
	var errs []error
	if _, _, err := c.ParseMarkers(); err != nil {
		errs = append(errs, err)
	}
	if c.Scrub < 0 || c.Scrub != c.Scrub {
		errs = append(errs, fmt.Errorf("scrub must be >= 0, got %v", c.Scrub))
	}
	return errors.Join(errs...)
}

// DurationFunc reports the sequence duration and whether it is known yet.
type DurationFunc func() (float32, bool)

// Source delivers progress values in [0, 1]. Subscribe returns a function
// that removes the subscription.
type Source interface {
	Subscribe(fn func(progress float32)) (cancel func())
}

// Binding maps reported progress onto a timeline position. Report may be
// called from any goroutine; Tick runs on the frame goroutine and is the
// only place onPositionChange is called.
type Binding struct {
	cfg      Config
	duration DurationFunc
	onChange func(float32)
	log      *zap.Logger

	latest    atomic.Uint32 // float32 bits of the newest progress
	reported  atomic.Bool
	unbound   atomic.Bool
	cancelsMu sync.Mutex
	cancels   []func()
	unbind    sync.Once

	pos float32
}

// Bind creates a binding. Reports made before the duration is known are
// held, keeping only the latest, and applied once it is.
func Bind(cfg Config, duration DurationFunc, onPositionChange func(float32), log *zap.Logger) (*Binding, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("scroll config: %w", err)
	}
	b := &Binding{
		cfg:      cfg,
		duration: duration,
		onChange: onPositionChange,
		log:      logger.OrNop(log),
	}
	b.log.Debug("scroll binding created",
		zap.String("trigger", cfg.Trigger),
		zap.String("start", cfg.Start),
		zap.String("end", cfg.End),
		zap.Float32("scrub", cfg.Scrub))
	return b, nil
}

// Listen subscribes the binding to src. Unbind cancels every subscription.
func (b *Binding) Listen(src Source) {
	if b.unbound.Load() {
		return
	}
	cancel := src.Subscribe(b.Report)
	b.cancelsMu.Lock()
	b.cancels = append(b.cancels, cancel)
	b.cancelsMu.Unlock()
}

// Report records the latest progress. Values outside [0, 1] are clamped.
func (b *Binding) Report(progress float32) {
	if b.unbound.Load() {
		return
	}
	b.latest.Store(math.Float32bits(clamp01(progress)))
	b.reported.Store(true)
}

// Progress returns the latest reported progress.
func (b *Binding) Progress() float32 {
	return math.Float32frombits(b.latest.Load())
}

// Position returns the last emitted position.
func (b *Binding) Position() float32 {
	return b.pos
}

// Target returns the unsmoothed position for the latest progress, and false
// while the duration is unknown.
func (b *Binding) Target() (float32, bool) {
	d, ok := b.duration()
	if !ok || d <= 0 {
		return 0, false
	}
	raw := b.Progress() * d
	return math32.Max(0, math32.Min(raw, d)), true
}

// Tick advances the smoothed position by dt seconds and calls
// onPositionChange if it moved. Nothing happens until a report arrives and
// the duration is known.
func (b *Binding) Tick(dt float32) {
	if b.unbound.Load() || !b.reported.Load() {
		return
	}
	target, ok := b.Target()
	if !ok {
		return
	}

	next := target
	if b.cfg.Scrub > 0 {
		if dt <= 0 {
			return
		}
		alpha := 1 - math32.Exp(-dt*settleRate/b.cfg.Scrub)
		next = b.pos + (target-b.pos)*alpha
		if math32.Abs(target-next) < snapEpsilon {
			next = target
		}
	}
	if next == b.pos {
		return
	}
	b.pos = next
	if b.onChange != nil {
		b.onChange(next)
	}
}

// Unbind detaches the binding from its sources. It is safe to call more
// than once.
func (b *Binding) Unbind() {
	b.unbind.Do(func() {
		b.unbound.Store(true)
		b.cancelsMu.Lock()
		cancels := b.cancels
		b.cancels = nil
		b.cancelsMu.Unlock()
		for _, cancel := range cancels {
			cancel()
		}
		b.log.Debug("scroll binding removed")
	})
}

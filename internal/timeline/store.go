package timeline

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/divescroll/internal/logger"
)

var (
	// ErrDurationFixed is returned when the duration is changed after the
	// first evaluation.
	ErrDurationFixed = errors.New("timeline: duration is fixed after first evaluation")
	// ErrInvalidDuration is returned for durations <= 0.
	ErrInvalidDuration = errors.New("timeline: duration must be positive")
)

// Store owns the active sequence. It is used from the frame goroutine only.
type Store struct {
	seq       *Sequence
	evaluated bool
	log       *zap.Logger
}

// NewStore creates a store for seq. A nil seq starts empty with an unknown
// duration, to be supplied later by SetDuration or Replace.
func NewStore(seq *Sequence, log *zap.Logger) *Store {
	s := &Store{log: logger.OrNop(log)}
	if seq == nil {
		s.seq = Empty(0)
	} else {
		s.seq = seq.Clone()
	}
	return s
}

// Duration returns the sequence duration and whether it is known.
func (s *Store) Duration() (float32, bool) {
	return s.seq.Duration, s.seq.Duration > 0
}

// Fixed reports whether the duration can no longer change.
func (s *Store) Fixed() bool {
	return s.evaluated
}

// SetDuration sets the duration. It is only valid before the first Evaluate.
func (s *Store) SetDuration(d float32) error {
	if d <= 0 {
		return fmt.Errorf("set duration %v: %w", d, ErrInvalidDuration)
	}
	if s.evaluated {
		if d == s.seq.Duration {
			return nil
		}
		return fmt.Errorf("set duration %v: %w", d, ErrDurationFixed)
	}
	s.seq.Duration = d
	return nil
}

// Replace swaps in the tracks of seq. Before the first evaluation the
// duration of seq is adopted too; afterwards the current duration is kept
// and a differing one is reported as ErrDurationFixed while the tracks are
// still swapped.
func (s *Store) Replace(seq *Sequence) error {
	if seq == nil {
		return nil
	}
	next := seq.Clone()
	var err error
	switch {
	case !s.evaluated && next.Duration > 0:
	case next.Duration != s.seq.Duration:
		if s.evaluated {
			err = fmt.Errorf("replace with duration %v: %w", next.Duration, ErrDurationFixed)
		}
		next.Duration = s.seq.Duration
	}
	s.seq = next
	s.log.Debug("sequence replaced",
		zap.Int("tracks", len(next.Tracks)),
		zap.Float32("duration", next.Duration))
	return err
}

// Sequence returns a copy of the active sequence.
func (s *Store) Sequence() *Sequence {
	return s.seq.Clone()
}

// Clamp clamps pos into [0, duration].
func (s *Store) Clamp(pos float32) float32 {
	if pos < 0 || pos != pos {
		return 0
	}
	if pos > s.seq.Duration {
		return s.seq.Duration
	}
	return pos
}

// Evaluate returns every channel value at pos. The position is clamped into
// [0, duration]. The first call with a known duration fixes the duration.
// With an unknown duration nothing is evaluated.
func (s *Store) Evaluate(pos float32) Values {
	if s.seq.Duration <= 0 {
		return Values{}
	}
	s.evaluated = true
	pos = s.Clamp(pos)

	out := make(Values, len(s.seq.Tracks))
	for object, track := range s.seq.Tracks {
		vals := make(map[string]float32, len(track))
		for name, ch := range track {
			if v, ok := ch.At(pos); ok {
				vals[name] = v
			}
		}
		if len(vals) > 0 {
			out[object] = vals
		}
	}
	return out
}

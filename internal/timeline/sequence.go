// Package timeline holds the authored animation sequence and evaluates it at
// a position in seconds.
package timeline

import (
	"errors"
	"fmt"
	"sort"

	"github.com/tanema/gween/ease"
)

// Ease names the interpolation used between a key and the next one.
type Ease string

const (
	EaseLinear     Ease = "linear"
	EaseStep       Ease = "step"
	EaseInQuad     Ease = "inQuad"
	EaseOutQuad    Ease = "outQuad"
	EaseInOutQuad  Ease = "inOutQuad"
	EaseInCubic    Ease = "inCubic"
	EaseOutCubic   Ease = "outCubic"
	EaseInOutCubic Ease = "inOutCubic"
	EaseInSine     Ease = "inSine"
	EaseOutSine    Ease = "outSine"
	EaseInOutSine  Ease = "inOutSine"
)

var curves = map[Ease]ease.TweenFunc{
	"":             ease.Linear,
	EaseLinear:     ease.Linear,
	EaseInQuad:     ease.InQuad,
	EaseOutQuad:    ease.OutQuad,
	EaseInOutQuad:  ease.InOutQuad,
	EaseInCubic:    ease.InCubic,
	EaseOutCubic:   ease.OutCubic,
	EaseInOutCubic: ease.InOutCubic,
	EaseInSine:     ease.InSine,
	EaseOutSine:    ease.OutSine,
	EaseInOutSine:  ease.InOutSine,
}

// Valid reports whether e is a known interpolation.
func (e Ease) Valid() bool {
	if e == EaseStep {
		return true
	}
	_, ok := curves[e]
	return ok
}

// Keyframe is one authored value of a channel.
type Keyframe struct {
	Time  float32
	Value float32
	Ease  Ease // governs the segment that starts at this key
}

// Channel is a time-ordered list of keyframes for one property, e.g. "position.x".
type Channel struct {
	Keys []Keyframe
}

// Track is the set of channels animated on one named object.
type Track map[string]Channel

// Sequence is one authored animation: a duration and per-object tracks.
type Sequence struct {
	Duration float32
	Tracks   map[string]Track
}

// Values maps object name to channel name to evaluated value.
type Values map[string]map[string]float32

// Empty returns a sequence with no tracks.
func Empty(duration float32) *Sequence {
	return &Sequence{Duration: duration, Tracks: map[string]Track{}}
}

// Validate checks the keyframe invariants: times are non-decreasing and lie
// within [0, Duration], and every ease is known.
func (s *Sequence) Validate() error {
	if s.Duration <= 0 {
		return fmt.Errorf("duration %v: %w", s.Duration, ErrInvalidDuration)
	}
	var errs []error
	for _, object := range sortedKeys(s.Tracks) {
		track := s.Tracks[object]
		for _, name := range sortedKeys(track) {
			keys := track[name].Keys
			for i, k := range keys {
				if k.Time < 0 || k.Time > s.Duration {
					errs = append(errs, fmt.Errorf("%s.%s key %d: time %v outside [0, %v]", object, name, i, k.Time, s.Duration))
				}
				if i > 0 && k.Time < keys[i-1].Time {
					errs = append(errs, fmt.Errorf("%s.%s key %d: time %v before previous key", object, name, i, k.Time))
				}
				if !k.Ease.Valid() {
					errs = append(errs, fmt.Errorf("%s.%s key %d: unknown ease %q", object, name, i, k.Ease))
				}
			}
		}
	}
	return errors.Join(errs...)
}

// Clone returns a deep copy.
func (s *Sequence) Clone() *Sequence {
	out := &Sequence{Duration: s.Duration, Tracks: make(map[string]Track, len(s.Tracks))}
	for object, track := range s.Tracks {
		t := make(Track, len(track))
		for name, ch := range track {
			t[name] = Channel{Keys: append([]Keyframe(nil), ch.Keys...)}
		}
		out.Tracks[object] = t
	}
	return out
}

// At returns the channel value at pos. Before the first key and after the
// last key the boundary value holds. An empty channel yields 0, false.
func (c Channel) At(pos float32) (float32, bool) {
	keys := c.Keys
	if len(keys) == 0 {
		return 0, false
	}
	i := sort.Search(len(keys), func(i int) bool { return keys[i].Time > pos })
	switch i {
	case 0:
		return keys[0].Value, true
	case len(keys):
		return keys[len(keys)-1].Value, true
	}

	from, to := keys[i-1], keys[i]
	span := to.Time - from.Time
	if span <= 0 || from.Ease == EaseStep {
		return from.Value, true
	}
	fn, ok := curves[from.Ease]
	if !ok {
		fn = ease.Linear
	}
	return fn(pos-from.Time, from.Value, to.Value-from.Value, span), true
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

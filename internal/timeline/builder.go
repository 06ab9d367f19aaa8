package timeline

import (
	"sort"

	"github.com/chewxy/math32"
)

// Builder records keyframes during an authoring session.
type Builder struct {
	seq *Sequence
}

// NewBuilder starts an empty sequence of the given duration.
func NewBuilder(duration float32) *Builder {
	return &Builder{seq: Empty(duration)}
}

// BuilderFrom starts from a copy of seq.
func BuilderFrom(seq *Sequence) *Builder {
	return &Builder{seq: seq.Clone()}
}

// Set records value for object.channel at time, replacing a key already at
// that time. time is clamped into [0, duration].
func (b *Builder) Set(object, channel string, time, value float32) {
	b.SetEased(object, channel, time, value, EaseLinear)
}

// SetEased is Set with an explicit ease for the segment starting at the key.
func (b *Builder) SetEased(object, channel string, time, value float32, e Ease) {
	time = math32.Max(0, math32.Min(time, b.seq.Duration))

	track, ok := b.seq.Tracks[object]
	if !ok {
		track = Track{}
		b.seq.Tracks[object] = track
	}
	keys := track[channel].Keys
	k := Keyframe{Time: time, Value: value, Ease: e}

	i := sort.Search(len(keys), func(i int) bool { return keys[i].Time >= time })
	if i < len(keys) && keys[i].Time == time {
		keys[i] = k
	} else {
		keys = append(keys, Keyframe{})
		copy(keys[i+1:], keys[i:])
		keys[i] = k
	}
	track[channel] = Channel{Keys: keys}
}

// Remove deletes the key of object.channel at time. It reports whether a key
// was removed.
func (b *Builder) Remove(object, channel string, time float32) bool {
	track, ok := b.seq.Tracks[object]
	if !ok {
		return false
	}
	keys := track[channel].Keys
	for i, k := range keys {
		if k.Time == time {
			track[channel] = Channel{Keys: append(keys[:i:i], keys[i+1:]...)}
			return true
		}
	}
	return false
}

// Build returns a copy of the recorded sequence.
func (b *Builder) Build() *Sequence {
	return b.seq.Clone()
}

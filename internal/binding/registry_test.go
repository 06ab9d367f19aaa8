package binding

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/divescroll/internal/timeline"
	"github.com/Faultbox/divescroll/pkg/math"
)

type node struct {
	name string
	tr   math.Transform
	sets int
}

func newNode(name string) *node {
	return &node{name: name, tr: math.NewTransform()}
}

func (n *node) Transform() math.Transform     { return n.tr }
func (n *node) SetTransform(t math.Transform) { n.tr = t; n.sets++ }

func TestRegisterAppliesInitialOnce(t *testing.T) {
	r := NewRegistry(nil)
	var applied []Channels

	Bind(r, "cam", "Camera", Channels{"position.z": 5}, nil, func(_ string, c Channels) {
		applied = append(applied, c)
	})

	require.Len(t, applied, 1)
	assert.Equal(t, Channels{"position.z": 5}, applied[0])
}

func TestApplyAllMergesOverInitial(t *testing.T) {
	r := NewRegistry(nil)
	var last Channels
	Bind(r, 1, "Camera", Channels{"position.x": 0, "position.z": 5}, nil, func(_ int, c Channels) { last = c })

	r.ApplyAll(timeline.Values{"Camera": {"position.x": 2.5}})

	assert.Equal(t, Channels{"position.x": 2.5, "position.z": 5}, last)
}

func TestMissingTrackLeavesTargetUntouched(t *testing.T) {
	r := NewRegistry(nil)
	mountain := newNode("Mountain")
	mountain.tr.Position = math.Vec3{X: 1, Y: 2, Z: 3}
	BindTransform(r, mountain, "Mountain")
	before := mountain.tr
	sets := mountain.sets

	seq := &timeline.Sequence{
		Duration: 6,
		Tracks: map[string]timeline.Track{
			"Camera": {"position.x": {Keys: []timeline.Keyframe{{Time: 0, Value: 0}, {Time: 6, Value: 5}}}},
		},
	}
	store := timeline.NewStore(seq, nil)

	assert.NotPanics(t, func() { r.ApplyAll(store.Evaluate(3)) })
	assert.Equal(t, before, mountain.tr)
	assert.Equal(t, sets, mountain.sets)
}

func TestTrackAppearingLaterIsApplied(t *testing.T) {
	r := NewRegistry(nil)
	mountain := newNode("Mountain")
	BindTransform(r, mountain, "Mountain")

	r.ApplyAll(timeline.Values{})
	assert.Equal(t, float32(0), mountain.tr.Position.Y)

	r.ApplyAll(timeline.Values{"Mountain": {"position.y": -20}})
	assert.Equal(t, float32(-20), mountain.tr.Position.Y)
	assert.Equal(t, float32(1), mountain.tr.Scale.X)
}

func TestReRegisterReplaces(t *testing.T) {
	r := NewRegistry(nil)
	var first, second int
	target := newNode("Box")

	h1 := Bind(r, target, "Box", nil, nil, func(*node, Channels) { first++ })
	Bind(r, target, "Other", nil, nil, func(*node, Channels) {})
	h2 := Bind(r, target, "Box", nil, nil, func(*node, Channels) { second++ })

	assert.NotEqual(t, h1, h2)
	assert.Equal(t, 2, r.Len())
	assert.Equal(t, []string{"Box", "Other"}, r.Names())

	r.ApplyAll(timeline.Values{"Box": {"position.x": 1}})
	assert.Equal(t, 1, first)
	assert.Equal(t, 2, second)

	// h1 is stale after the replacement
	r.Unregister(h1)
	assert.Equal(t, 2, r.Len())
}

func TestUnregister(t *testing.T) {
	r := NewRegistry(nil)
	calls := 0
	h := Bind(r, "t", "Box", nil, nil, func(string, Channels) { calls++ })

	r.Unregister(h)
	r.Unregister(h)
	r.Unregister(Handle{})
	r.ApplyAll(timeline.Values{"Box": {"position.x": 1}})

	assert.Equal(t, 1, calls)
	assert.Zero(t, r.Len())
}

func TestApplyAllOrder(t *testing.T) {
	r := NewRegistry(nil)
	var order []string
	for _, name := range []string{"c", "a", "b"} {
		Bind(r, name, name, nil, nil, func(n string, _ Channels) { order = append(order, n) })
	}
	order = nil

	r.ApplyAll(timeline.Values{"a": {}, "b": {}, "c": {}})
	assert.Equal(t, []string{"c", "a", "b"}, order)
}

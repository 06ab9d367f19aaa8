package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/divescroll/pkg/math"
)

func assertMat(t *testing.T, want, got math.Mat4) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-3, "element %d", i)
	}
}

func TestAddKeepsLocalTransform(t *testing.T) {
	parent := NewNode("parent")
	parent.SetTransform(math.Transform{Position: math.Vec3{Y: 10}, Scale: math.Vec3{X: 1, Y: 1, Z: 1}})

	child := NewNode("child")
	child.SetTransform(math.Transform{Position: math.Vec3{X: 1}, Scale: math.Vec3{X: 1, Y: 1, Z: 1}})
	parent.Add(child)

	assert.Equal(t, parent, child.Parent())
	assert.Equal(t, float32(1), child.Transform().Position.X)
	assert.Equal(t, math.Vec3{X: 1, Y: 10}, child.World().Translation())
}

func TestAttachPreservesWorld(t *testing.T) {
	graph := NewGraph()

	title := NewNode("intro_title")
	title.SetTransform(math.Transform{
		Position: math.Vec3{X: 3, Y: 5, Z: -2},
		Rotation: math.Vec3{X: 0.2, Y: -0.4, Z: 0.1},
		Scale:    math.Vec3{X: 40, Y: 40, Z: 40},
	})
	model := NewNode("landscape")
	model.SetTransform(math.Transform{Scale: math.Vec3{X: 40, Y: 40, Z: 40}})
	model.Add(title)
	graph.Add(model)

	heading := NewNode("heading")
	heading.SetTransform(math.Transform{
		Position: math.Vec3{Y: -20},
		Rotation: math.Vec3{Y: 0.3},
		Scale:    math.Vec3{X: 1, Y: 1, Z: 1},
	})
	graph.Add(heading)

	before := title.World()
	heading.Attach(title)

	require.Equal(t, heading, title.Parent())
	assert.Empty(t, model.Children())
	assertMat(t, before, title.World())
}

func TestRemove(t *testing.T) {
	parent := NewNode("parent")
	a, b := NewNode("a"), NewNode("b")
	parent.Add(a)
	parent.Add(b)

	assert.True(t, parent.Remove(a))
	assert.False(t, parent.Remove(a))
	assert.Nil(t, a.Parent())
	assert.Equal(t, []*Node{b}, parent.Children())

	// Adding to a new parent detaches from the old one.
	other := NewNode("other")
	other.Add(b)
	assert.Empty(t, parent.Children())
	assert.Equal(t, other, b.Parent())
}

func TestFind(t *testing.T) {
	graph := NewGraph()
	model := &Model{Source: "landscape.gltf", Root: NewNode("landscape")}
	mountain := NewNode("Mountain")
	peak := NewNode("peak")
	mountain.Add(peak)
	model.Root.Add(mountain)
	graph.Add(model.Root)

	assert.Equal(t, mountain, graph.Find("Mountain"))
	assert.Equal(t, peak, model.Find("peak"))
	assert.Nil(t, model.Find("missing"))

	var empty *Model
	assert.Nil(t, empty.Find("Mountain"))
}

func TestWalkSkipsHidden(t *testing.T) {
	graph := NewGraph()
	shown := NewNode("shown")
	hidden := NewNode("hidden")
	hidden.Add(NewNode("under-hidden"))
	graph.Add(shown)
	graph.Add(hidden)
	hidden.SetVisible(false)

	var names []string
	graph.Root().Walk(func(n *Node, _ math.Mat4) {
		names = append(names, n.Name)
	})
	assert.Equal(t, []string{"scene", "shown"}, names)
}

func TestWalkWorldMatrices(t *testing.T) {
	root := NewNode("root")
	root.SetTransform(math.Transform{Position: math.Vec3{X: 1}, Scale: math.Vec3{X: 2, Y: 2, Z: 2}})
	child := NewNode("child")
	child.SetTransform(math.Transform{Position: math.Vec3{X: 1}, Scale: math.Vec3{X: 1, Y: 1, Z: 1}})
	root.Add(child)

	got := map[string]math.Vec3{}
	root.Walk(func(n *Node, world math.Mat4) {
		got[n.Name] = world.Translation()
	})
	assert.Equal(t, math.Vec3{X: 1}, got["root"])
	assert.Equal(t, math.Vec3{X: 3}, got["child"])
}

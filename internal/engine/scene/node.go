package scene

import "github.com/Faultbox/divescroll/pkg/math"

// Shape selects how a node is drawn.
type Shape int

const (
	// ShapeNone is a pure grouping node.
	ShapeNone Shape = iota
	// ShapeBox draws a lit box of the node's Size.
	ShapeBox
	// ShapeSeabed draws a lit plane that receives caustics.
	ShapeSeabed
	// ShapeSurface draws the translucent sea surface seen from above.
	ShapeSurface
	// ShapeUnderside draws the sea surface seen from below.
	ShapeUnderside
)

// Node is an element of the scene graph. Its transform is local to the
// parent; hidden nodes hide their whole subtree.
type Node struct {
	Name    string
	Shape   Shape
	Size    math.Vec3
	Color   [3]float32
	Opacity float32
	Visible bool

	transform math.Transform
	parent    *Node
	children  []*Node
}

// NewNode creates a visible grouping node with an identity transform.
func NewNode(name string) *Node {
	return &Node{
		Name:      name,
		Opacity:   1,
		Visible:   true,
		transform: math.NewTransform(),
	}
}

// Transform returns the local transform.
func (n *Node) Transform() math.Transform {
	return n.transform
}

// SetTransform replaces the local transform.
func (n *Node) SetTransform(t math.Transform) {
	n.transform = t
}

// SetVisible shows or hides the node and its children.
func (n *Node) SetVisible(v bool) {
	n.Visible = v
}

// Parent returns the parent node, nil for roots and detached nodes.
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns the direct children. The slice must not be modified.
func (n *Node) Children() []*Node {
	return n.children
}

// Add appends child, detaching it from its previous parent. The local
// transform is kept, so the child's world pose changes with the new parent.
func (n *Node) Add(child *Node) {
	if child == nil || child == n {
		return
	}
	if child.parent != nil {
		child.parent.Remove(child)
	}
	child.parent = n
	n.children = append(n.children, child)
}

// Remove detaches child. It reports whether child was a direct child.
func (n *Node) Remove(child *Node) bool {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			child.parent = nil
			return true
		}
	}
	return false
}

// Attach reparents child under n keeping its current world transform.
func (n *Node) Attach(child *Node) {
	if child == nil || child == n {
		return
	}
	world := child.World()
	n.Add(child)
	child.transform = math.Decompose(n.World().Inverse().Mul(world))
}

// Local returns the local matrix.
func (n *Node) Local() math.Mat4 {
	return n.transform.Matrix()
}

// World returns the matrix from node space to world space.
func (n *Node) World() math.Mat4 {
	m := n.Local()
	for p := n.parent; p != nil; p = p.parent {
		m = p.Local().Mul(m)
	}
	return m
}

// Find returns the first node named name in depth-first order, n included.
func (n *Node) Find(name string) *Node {
	if n.Name == name {
		return n
	}
	for _, c := range n.children {
		if found := c.Find(name); found != nil {
			return found
		}
	}
	return nil
}

// Walk visits n and its visible descendants with their world matrices.
// Hidden nodes are skipped along with their subtrees.
func (n *Node) Walk(fn func(node *Node, world math.Mat4)) {
	n.walk(math.Identity(), fn)
}

func (n *Node) walk(parent math.Mat4, fn func(*Node, math.Mat4)) {
	if !n.Visible {
		return
	}
	world := parent.Mul(n.Local())
	fn(n, world)
	for _, c := range n.children {
		c.walk(world, fn)
	}
}

// Graph is the scene's insertion point.
type Graph struct {
	root *Node
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{root: NewNode("scene")}
}

// Root returns the root node.
func (g *Graph) Root() *Node {
	return g.root
}

// Add inserts n at the top level.
func (g *Graph) Add(n *Node) {
	g.root.Add(n)
}

// Find looks a node up by name anywhere in the graph.
func (g *Graph) Find(name string) *Node {
	return g.root.Find(name)
}

// Model is a loaded model: a named node hierarchy.
type Model struct {
	Source string
	Root   *Node
}

// Find returns the named sub-node of the model, or nil.
func (m *Model) Find(name string) *Node {
	if m == nil || m.Root == nil {
		return nil
	}
	return m.Root.Find(name)
}

package assets

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/divescroll/internal/engine/scene"
	"github.com/Faultbox/divescroll/pkg/math"
)

// DefaultColor is used for mesh nodes without an explicit color.
var DefaultColor = [3]float32{0.76, 0.70, 0.55}

// LoadModel reads and decodes a model file. ".gltf" files are read as a glTF
// node hierarchy with geometry reduced to bounding boxes. ".yaml" and ".yml"
// files are node descriptions.
func (m *Manager) LoadModel(ctx context.Context, path string) (*scene.Model, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := m.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading model %s: %w", path, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var root *scene.Node
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".gltf":
		root, err = DecodeGLTF(data)
	case ".yaml", ".yml":
		root, err = DecodeNodes(data)
	default:
		err = fmt.Errorf("unsupported model format %q", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("decoding model %s: %w", path, err)
	}

	if root.Name == "" {
		root.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return &scene.Model{Source: path, Root: root}, nil
}

// LoadModelAsync loads a model on a new goroutine.
func (m *Manager) LoadModelAsync(ctx context.Context, path string) *Future[*scene.Model] {
	return Go(ctx, func(ctx context.Context) (*scene.Model, error) {
		return m.LoadModel(ctx, path)
	})
}

type gltfDocument struct {
	Scene  *int `json:"scene"`
	Scenes []struct {
		Name  string `json:"name"`
		Nodes []int  `json:"nodes"`
	} `json:"scenes"`
	Nodes  []gltfNode `json:"nodes"`
	Meshes []struct {
		Primitives []struct {
			Attributes map[string]int `json:"attributes"`
		} `json:"primitives"`
	} `json:"meshes"`
	Accessors []struct {
		Min []float32 `json:"min"`
		Max []float32 `json:"max"`
	} `json:"accessors"`
}

type gltfNode struct {
	Name        string    `json:"name"`
	Children    []int     `json:"children"`
	Translation []float32 `json:"translation"`
	Rotation    []float32 `json:"rotation"` // quaternion x, y, z, w
	Scale       []float32 `json:"scale"`
	Matrix      []float32 `json:"matrix"`
	Mesh        *int      `json:"mesh"`
}

// DecodeGLTF decodes the node hierarchy of a glTF JSON document. The root
// returned is an unnamed group holding the scene's root nodes.
func DecodeGLTF(data []byte) (*scene.Node, error) {
	var doc gltfDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing glTF: %w", err)
	}

	roots, err := doc.rootNodes()
	if err != nil {
		return nil, err
	}

	b := gltfBuilder{doc: &doc, visiting: make(map[int]bool)}
	group := scene.NewNode("")
	for _, idx := range roots {
		n, err := b.build(idx)
		if err != nil {
			return nil, err
		}
		group.Add(n)
	}
	return group, nil
}

func (d *gltfDocument) rootNodes() ([]int, error) {
	if len(d.Scenes) > 0 {
		i := 0
		if d.Scene != nil {
			i = *d.Scene
		}
		if i < 0 || i >= len(d.Scenes) {
			return nil, fmt.Errorf("scene index %d out of range", i)
		}
		return d.Scenes[i].Nodes, nil
	}

	// No scenes: every node that is nobody's child is a root.
	child := make(map[int]bool)
	for _, n := range d.Nodes {
		for _, c := range n.Children {
			child[c] = true
		}
	}
	var roots []int
	for i := range d.Nodes {
		if !child[i] {
			roots = append(roots, i)
		}
	}
	return roots, nil
}

type gltfBuilder struct {
	doc      *gltfDocument
	visiting map[int]bool
}

func (b *gltfBuilder) build(idx int) (*scene.Node, error) {
	if idx < 0 || idx >= len(b.doc.Nodes) {
		return nil, fmt.Errorf("node index %d out of range", idx)
	}
	if b.visiting[idx] {
		return nil, fmt.Errorf("node %d is part of a cycle", idx)
	}
	b.visiting[idx] = true
	defer delete(b.visiting, idx)

	src := b.doc.Nodes[idx]
	n := scene.NewNode(src.Name)
	if n.Name == "" {
		n.Name = fmt.Sprintf("node_%d", idx)
	}

	t, err := src.transform()
	if err != nil {
		return nil, fmt.Errorf("node %q: %w", n.Name, err)
	}
	n.SetTransform(t)

	if src.Mesh != nil {
		n.Shape = scene.ShapeBox
		n.Size = b.meshSize(*src.Mesh)
		n.Color = DefaultColor
	}

	for _, c := range src.Children {
		child, err := b.build(c)
		if err != nil {
			return nil, err
		}
		n.Add(child)
	}
	return n, nil
}

// meshSize returns the extent of the POSITION bounds over all primitives,
// or a unit box when they are missing.
func (b *gltfBuilder) meshSize(mesh int) math.Vec3 {
	unit := math.Vec3{X: 1, Y: 1, Z: 1}
	if mesh < 0 || mesh >= len(b.doc.Meshes) {
		return unit
	}

	var lo, hi math.Vec3
	found := false
	for _, p := range b.doc.Meshes[mesh].Primitives {
		acc, ok := p.Attributes["POSITION"]
		if !ok || acc < 0 || acc >= len(b.doc.Accessors) {
			continue
		}
		a := b.doc.Accessors[acc]
		if len(a.Min) < 3 || len(a.Max) < 3 {
			continue
		}
		pmin := math.Vec3{X: a.Min[0], Y: a.Min[1], Z: a.Min[2]}
		pmax := math.Vec3{X: a.Max[0], Y: a.Max[1], Z: a.Max[2]}
		if !found {
			lo, hi, found = pmin, pmax, true
			continue
		}
		lo = math.Vec3{X: min(lo.X, pmin.X), Y: min(lo.Y, pmin.Y), Z: min(lo.Z, pmin.Z)}
		hi = math.Vec3{X: max(hi.X, pmax.X), Y: max(hi.Y, pmax.Y), Z: max(hi.Z, pmax.Z)}
	}
	if !found {
		return unit
	}
	return hi.Sub(lo)
}

func (n gltfNode) transform() (math.Transform, error) {
	if len(n.Matrix) > 0 {
		if len(n.Matrix) != 16 {
			return math.Transform{}, fmt.Errorf("matrix has %d elements", len(n.Matrix))
		}
		var m math.Mat4
		copy(m[:], n.Matrix)
		return math.Decompose(m), nil
	}

	t := math.NewTransform()
	if len(n.Translation) > 0 {
		if len(n.Translation) != 3 {
			return t, fmt.Errorf("translation has %d elements", len(n.Translation))
		}
		t.Position = math.Vec3{X: n.Translation[0], Y: n.Translation[1], Z: n.Translation[2]}
	}
	if len(n.Rotation) > 0 {
		if len(n.Rotation) != 4 {
			return t, fmt.Errorf("rotation has %d elements", len(n.Rotation))
		}
		r := math.FromQuat(n.Rotation[0], n.Rotation[1], n.Rotation[2], n.Rotation[3])
		t.Rotation = math.Decompose(r).Rotation
	}
	if len(n.Scale) > 0 {
		if len(n.Scale) != 3 {
			return t, fmt.Errorf("scale has %d elements", len(n.Scale))
		}
		t.Scale = math.Vec3{X: n.Scale[0], Y: n.Scale[1], Z: n.Scale[2]}
	}
	return t, nil
}

// NodeSpec is one node of a YAML model description. Rotation is in degrees.
type NodeSpec struct {
	Name     string      `yaml:"name"`
	Shape    string      `yaml:"shape,omitempty"` // "", "box" or "seabed"
	Position [3]float32  `yaml:"position,omitempty"`
	Rotation [3]float32  `yaml:"rotation,omitempty"`
	Scale    *[3]float32 `yaml:"scale,omitempty"`
	Size     *[3]float32 `yaml:"size,omitempty"`
	Color    *[3]float32 `yaml:"color,omitempty"`
	Children []NodeSpec  `yaml:"children,omitempty"`
}

// DecodeNodes decodes a YAML node description.
func DecodeNodes(data []byte) (*scene.Node, error) {
	var spec NodeSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("parsing nodes: %w", err)
	}
	return spec.build()
}

func (s NodeSpec) build() (*scene.Node, error) {
	n := scene.NewNode(s.Name)

	switch s.Shape {
	case "":
	case "box":
		n.Shape = scene.ShapeBox
	case "seabed":
		n.Shape = scene.ShapeSeabed
	default:
		return nil, fmt.Errorf("node %q: unknown shape %q", s.Name, s.Shape)
	}

	t := math.NewTransform()
	t.Position = vec(s.Position)
	t.Rotation = math.Vec3{
		X: math.DegToRad(s.Rotation[0]),
		Y: math.DegToRad(s.Rotation[1]),
		Z: math.DegToRad(s.Rotation[2]),
	}
	if s.Scale != nil {
		t.Scale = vec(*s.Scale)
	}
	n.SetTransform(t)

	if n.Shape != scene.ShapeNone {
		n.Size = math.Vec3{X: 1, Y: 1, Z: 1}
		n.Color = DefaultColor
	}
	if s.Size != nil {
		n.Size = vec(*s.Size)
	}
	if s.Color != nil {
		n.Color = *s.Color
	}

	for _, c := range s.Children {
		child, err := c.build()
		if err != nil {
			return nil, err
		}
		n.Add(child)
	}
	return n, nil
}

func vec(a [3]float32) math.Vec3 {
	return math.Vec3{X: a[0], Y: a[1], Z: a[2]}
}

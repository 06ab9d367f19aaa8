// Package app wires the timeline, scroll, binding, environment and caustics
// packages into the player and owns the frame loop.
package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/divescroll/internal/assets"
	"github.com/Faultbox/divescroll/internal/binding"
	"github.com/Faultbox/divescroll/internal/caustics"
	"github.com/Faultbox/divescroll/internal/config"
	"github.com/Faultbox/divescroll/internal/engine/camera"
	"github.com/Faultbox/divescroll/internal/engine/lighting"
	"github.com/Faultbox/divescroll/internal/engine/scene"
	"github.com/Faultbox/divescroll/internal/environment"
	"github.com/Faultbox/divescroll/internal/logger"
	"github.com/Faultbox/divescroll/internal/scroll"
	"github.com/Faultbox/divescroll/internal/timeline"
	"github.com/Faultbox/divescroll/pkg/math"
)

// Core is the per-frame state of the player without any GPU work. Every
// method except Init runs on the frame goroutine.
type Core struct {
	cfg *config.Config
	log *zap.Logger

	Store    *timeline.Store
	Registry *binding.Registry
	Env      *environment.Machine
	Camera   *camera.Perspective
	Lights   *lighting.Rig
	Graph    *scene.Graph
	Nodes    Nodes
	Assets   *assets.Manager
	Queue    *assets.Queue
	Wheel    *scroll.WheelSource
	Server   *scroll.Server // nil unless scroll.listen is set
	Modes    *ModeManager

	caustics  caustics.Compositor
	watcher   *timeline.Watcher
	playback  *PlaybackMode
	authoring *AuthoringMode

	// objects are the bound transforms by sequence object name, for the
	// authoring session.
	objects map[string]binding.Transformable
	names   []string

	viewport [2]float32 // window size in screen coordinates
	position float32
	dirty    bool
	elapsed  float32

	initOnce sync.Once
	initErr  error
}

// NewCore fills graph with the environment nodes, builds the camera, lights
// and engines for cfg and enters the configured mode on the first Update.
// keys feeds the authoring session and may be nil.
func NewCore(cfg *config.Config, graph *scene.Graph, keys KeyState, log *zap.Logger) (*Core, error) {
	log = logger.OrNop(log)

	start, end, err := scrollConfig(cfg).ParseMarkers()
	if err != nil {
		return nil, fmt.Errorf("scroll markers: %w", err)
	}

	c := &Core{
		cfg:      cfg,
		log:      log,
		Store:    timeline.NewStore(nil, log.Named("timeline")),
		Registry: binding.NewRegistry(log.Named("binding")),
		Camera:   camera.NewPerspective(float32(cfg.Graphics.Width) / float32(cfg.Graphics.Height)),
		Lights:   lighting.NewRig(cfg.Environment.LightIntensity),
		Graph:    graph,
		Assets:   assets.NewManager(),
		Queue:    assets.NewQueue(),
		Modes:    NewModeManager(),
		objects:  make(map[string]binding.Transformable),
		viewport: [2]float32{float32(cfg.Graphics.Width), float32(cfg.Graphics.Height)},
	}
	c.Wheel = scroll.NewWheelSource(scroll.WheelConfig{
		PageHeight:     cfg.Scroll.PageHeight,
		ViewportHeight: float32(cfg.Graphics.Height),
		PixelsPerNotch: cfg.Scroll.PixelsPerNotch,
	}, start, end)
	if cfg.Scroll.Listen != "" {
		c.Server = scroll.NewServer(log.Named("scroll"))
	}

	c.Nodes = buildEnvironment(cfg, c.Graph)
	c.Env = environment.New(environment.Config{
		WaterLevel:    cfg.Environment.WaterLevel,
		FogColor:      cfg.Environment.FogColor,
		FogDensity:    cfg.Environment.FogDensity,
		FogDepthScale: cfg.Environment.FogDepthScale,
	}, environment.Targets{
		AboveWater: c.Nodes.Surface,
		BelowWater: c.Nodes.Underside,
		Light:      &c.Lights.Underwater,
	}, log.Named("environment"))
	c.Env.OnTransition(func(from, to environment.State) {
		c.log.Info("environment changed", zap.Stringer("from", from), zap.Stringer("to", to))
	})

	if cfg.Scene.AssetDir != "" {
		if err := c.Assets.AddRoot(cfg.Scene.AssetDir); err != nil {
			log.Warn("asset directory unavailable", zap.Error(err))
		}
	}

	binding.BindTransform(c.Registry, c.Camera, CameraObject)
	c.track(CameraObject, c.Camera)
	binding.BindTransform(c.Registry, c.Nodes.Heading, HeadingObject)
	c.track(HeadingObject, c.Nodes.Heading)

	c.playback = NewPlaybackMode(c)
	c.authoring = NewAuthoringMode(c, keys)
	if cfg.Timeline.Mode == config.ModeAuthoring {
		c.Modes.Change(c.authoring)
	} else {
		c.Modes.Change(c.playback)
	}

	return c, nil
}

// ToggleMode switches between playback and authoring on the next Update.
func (c *Core) ToggleMode() {
	if c.Authoring() {
		c.Modes.Change(c.playback)
	} else {
		c.Modes.Change(c.authoring)
	}
}

// Authoring reports whether the authoring session is the current mode.
func (c *Core) Authoring() bool {
	return c.Modes.Current() == Mode(c.authoring)
}

func scrollConfig(cfg *config.Config) scroll.Config {
	return scroll.Config{
		Trigger: cfg.Scroll.Trigger,
		Start:   cfg.Scroll.Start,
		End:     cfg.Scroll.End,
		Scrub:   cfg.Scroll.Scrub,
		Markers: cfg.Scroll.Markers,
	}
}

func (c *Core) track(name string, t binding.Transformable) {
	if _, ok := c.objects[name]; ok {
		return
	}
	c.objects[name] = t
	c.names = append(c.names, name)
}

// SetViewport records the window size that cursor positions refer to.
func (c *Core) SetViewport(width, height int) {
	if width > 0 && height > 0 {
		c.viewport = [2]float32{float32(width), float32(height)}
	}
}

// SetCaustics sets the compositor updated each frame. nil disables it.
func (c *Core) SetCaustics(comp caustics.Compositor) {
	c.caustics = comp
}

// Init loads the snapshot (playback only) and the landscape model
// concurrently and starts the progress server and the snapshot watcher.
// Results reach the scene through Queue. Failures are logged and degrade
// the scene; only the first call does anything.
func (c *Core) Init(ctx context.Context) error {
	c.initOnce.Do(func() { c.initErr = c.init(ctx) })
	return c.initErr
}

func (c *Core) init(ctx context.Context) error {
	cfg := c.cfg

	if c.Server != nil {
		go func() {
			if err := c.Server.ListenAndServe(ctx, cfg.Scroll.Listen); err != nil {
				c.log.Error("progress server stopped", zap.Error(err))
			}
		}()
	}

	playback := cfg.Timeline.Mode != config.ModeAuthoring
	if playback && cfg.Timeline.Watch && isLocal(cfg.Timeline.StateURL) {
		w, err := timeline.Watch(cfg.Timeline.StateURL, func(seq *timeline.Sequence) {
			c.Queue.Post(func() { c.ReplaceSequence(seq) })
		}, c.log.Named("watch"))
		if err != nil {
			c.log.Warn("snapshot watch unavailable", zap.Error(err))
		} else {
			c.Queue.Post(func() { c.watcher = w })
		}
	}

	g, gctx := errgroup.WithContext(ctx)

	if playback {
		g.Go(func() error {
			loader := &timeline.Loader{
				Project:         cfg.Timeline.ProjectName,
				Sheet:           cfg.Timeline.SheetName,
				DefaultDuration: cfg.Timeline.SequenceLength,
				Log:             c.log.Named("timeline"),
			}
			seq := loader.Open(gctx, cfg.Timeline.StateURL)
			c.Queue.Post(func() { c.ReplaceSequence(seq) })
			return nil
		})
	}

	if cfg.Scene.Landscape != "" {
		g.Go(func() error {
			model, err := c.Assets.LoadModel(gctx, cfg.Scene.Landscape)
			if err != nil {
				c.log.Error("model load failed",
					zap.String("path", cfg.Scene.Landscape),
					zap.Error(err))
				return nil
			}
			c.Queue.Post(func() { c.AddModel(model) })
			return nil
		})
	}

	return g.Wait()
}

func isLocal(location string) bool {
	return location != "" &&
		!strings.HasPrefix(location, "http://") &&
		!strings.HasPrefix(location, "https://")
}

// ReplaceSequence swaps the authored tracks. Once the duration is fixed a
// sequence of a different length keeps the old duration.
func (c *Core) ReplaceSequence(seq *timeline.Sequence) {
	if err := c.Store.Replace(seq); err != nil {
		if !errors.Is(err, timeline.ErrDurationFixed) {
			c.log.Warn("sequence rejected", zap.Error(err))
			return
		}
		c.log.Warn("sequence duration ignored", zap.Error(err))
	}
	c.dirty = true
}

// AddModel scales the model, inserts it into the graph, moves the intro
// texts under the heading group and binds every named node.
func (c *Core) AddModel(m *scene.Model) {
	if s := c.cfg.Scene.ModelScale; s > 0 {
		t := m.Root.Transform()
		t.Scale = t.Scale.Scale(s)
		m.Root.SetTransform(t)
	}
	c.Graph.Add(m.Root)

	for _, name := range headingChildren {
		if n := m.Find(name); n != nil {
			c.Nodes.Heading.Attach(n)
		}
	}

	var nodes []*scene.Node
	collect := func(n *scene.Node, _ math.Mat4) {
		if n.Name != "" && n != m.Root {
			nodes = append(nodes, n)
		}
	}
	m.Root.Walk(collect)
	for _, n := range c.Nodes.Heading.Children() {
		n.Walk(collect)
	}
	for _, n := range nodes {
		binding.BindTransform(c.Registry, n, n.Name)
		c.track(n.Name, n)
	}

	c.dirty = true
	c.log.Info("model added",
		zap.String("source", m.Source),
		zap.Int("bound", len(nodes)))
}

// SetPosition moves the timeline position. The sequence is evaluated on the
// next Update.
func (c *Core) SetPosition(pos float32) {
	c.position = pos
	c.dirty = true
}

// Position returns the current timeline position.
func (c *Core) Position() float32 {
	return c.position
}

// Objects returns the names of the bound sequence objects in binding order.
func (c *Core) Objects() []string {
	return c.names
}

// Object returns the bound transform called name.
func (c *Core) Object(name string) (binding.Transformable, bool) {
	t, ok := c.objects[name]
	return t, ok
}

// Update runs one frame: drain async completions, advance the mode (player
// or scroll), evaluate and apply the sequence, derive the environment from
// the camera and regenerate the caustics texture.
func (c *Core) Update(dt float32) error {
	c.Queue.Drain()

	if err := c.Modes.Update(dt); err != nil {
		return err
	}

	if c.dirty {
		c.dirty = false
		c.Registry.ApplyAll(c.Store.Evaluate(c.position))
	}

	c.Env.Update(c.Camera.Position.Y)

	c.elapsed += dt
	if c.caustics != nil {
		c.caustics.Update(c.elapsed)
	}
	return nil
}

// Frame returns the render parameters for the current state.
func (c *Core) Frame() *scene.Frame {
	fog := c.Env.Fog()
	f := &scene.Frame{
		ViewProj:  c.Camera.ViewProj(),
		CameraPos: c.Camera.Position,
		Lights:    c.Lights,
		Fog:       scene.Fog{Enabled: fog.Enabled, Color: fog.Color, Density: fog.Density},
		Time:      c.elapsed,
	}
	if c.caustics != nil {
		cc := c.cfg.Caustics
		f.Caustics = scene.Caustics{
			Texture:    c.caustics.Texture(),
			Tiling:     cc.Tiling,
			Intensity:  cc.Intensity,
			Tint:       cc.Tint,
			WaterLevel: c.Env.WaterLevel(),
		}
	}
	return f
}

// Status is the one-line state shown in the window title.
func (c *Core) Status() string {
	var b strings.Builder
	if m := c.Modes.Current(); m != nil {
		b.WriteString(m.Name())
	}
	d, _ := c.Store.Duration()
	fmt.Fprintf(&b, " | t %.2f/%.2fs | %s", c.position, d, c.Env.State())
	if s, ok := c.Modes.Current().(interface{ Status() string }); ok {
		if extra := s.Status(); extra != "" {
			b.WriteString(" | ")
			b.WriteString(extra)
		}
	}
	return b.String()
}

// Close leaves the current mode and stops the watcher.
func (c *Core) Close() error {
	err := c.Modes.Close()
	if c.watcher != nil {
		err = errors.Join(err, c.watcher.Close())
		c.watcher = nil
	}
	c.Assets.Close()
	return err
}

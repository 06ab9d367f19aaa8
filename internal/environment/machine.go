// Package environment derives the surface/underwater state from the camera
// height and applies its side effects: fog, surface visibility and the
// underwater light.
package environment

import (
	"go.uber.org/zap"

	"github.com/Faultbox/divescroll/internal/logger"
)

// State is the environment the camera is in.
type State int

const (
	Surface State = iota
	Underwater
)

func (s State) String() string {
	switch s {
	case Surface:
		return "surface"
	case Underwater:
		return "underwater"
	default:
		return "unknown"
	}
}

// Fog is the scene fog setting.
type Fog struct {
	Enabled bool
	Color   [3]float32
	Density float32 // exponential-squared density
}

// Config holds the fixed environment parameters.
type Config struct {
	WaterLevel float32
	FogColor   [3]float32
	FogDensity float32
	// FogDepthScale adds density per unit of depth below the water level.
	FogDepthScale float32
}

// Visible is a mesh whose visibility the machine toggles.
type Visible interface {
	SetVisible(bool)
}

// Switch is a light the machine turns on and off.
type Switch interface {
	SetEnabled(bool)
}

// Targets are the scene pieces the machine drives. Nil targets are skipped.
type Targets struct {
	AboveWater Visible // seen from above the surface
	BelowWater Visible // seen from below the surface
	Light      Switch  // underwater-only light
}

// Machine is the sole writer of the fog state. Update runs once per frame.
type Machine struct {
	cfg     Config
	targets Targets
	log     *zap.Logger

	state   State
	settled bool
	fog     Fog
	hooks   []func(from, to State)
}

// New creates a machine. The state is settled by the first Update.
func New(cfg Config, targets Targets, log *zap.Logger) *Machine {
	return &Machine{cfg: cfg, targets: targets, log: logger.OrNop(log)}
}

// OnTransition registers fn to run on every state change after the initial
// settle.
func (m *Machine) OnTransition(fn func(from, to State)) {
	m.hooks = append(m.hooks, fn)
}

// Derive returns the state for a camera height.
func (m *Machine) Derive(cameraY float32) State {
	if cameraY < m.cfg.WaterLevel {
		return Underwater
	}
	return Surface
}

// Update derives the state for cameraY and applies side effects when it
// changes. It reports whether a transition happened; the first call settles
// the initial state without reporting one.
func (m *Machine) Update(cameraY float32) (State, bool) {
	next := m.Derive(cameraY)

	if m.settled && next == m.state {
		if next == Underwater {
			m.fog.Density = m.density(cameraY)
		}
		return m.state, false
	}

	prev, first := m.state, !m.settled
	m.state = next
	m.settled = true
	m.apply(cameraY)

	if first {
		m.log.Debug("environment settled", zap.Stringer("state", next))
		return next, false
	}
	m.log.Debug("environment transition",
		zap.Stringer("from", prev),
		zap.Stringer("to", next),
		zap.Float32("camera_y", cameraY))
	for _, fn := range m.hooks {
		fn(prev, next)
	}
	return next, true
}

func (m *Machine) apply(cameraY float32) {
	under := m.state == Underwater

	m.fog.Enabled = under
	m.fog.Color = m.cfg.FogColor
	m.fog.Density = 0
	if under {
		m.fog.Density = m.density(cameraY)
	}

	if m.targets.AboveWater != nil {
		m.targets.AboveWater.SetVisible(!under)
	}
	if m.targets.BelowWater != nil {
		m.targets.BelowWater.SetVisible(under)
	}
	if m.targets.Light != nil {
		m.targets.Light.SetEnabled(under)
	}
}

func (m *Machine) density(cameraY float32) float32 {
	return m.cfg.FogDensity + m.cfg.FogDepthScale*(m.cfg.WaterLevel-cameraY)
}

// State returns the current state. Before the first Update it is Surface.
func (m *Machine) State() State {
	return m.state
}

// Fog returns a copy of the current fog.
func (m *Machine) Fog() Fog {
	return m.fog
}

// WaterLevel returns the configured threshold.
func (m *Machine) WaterLevel() float32 {
	return m.cfg.WaterLevel
}

package app

import "github.com/Faultbox/divescroll/internal/engine/input"

// Mode is one way of driving the timeline: scroll playback or authoring.
type Mode interface {
	// Name identifies the mode in logs and the window title.
	Name() string

	// Enter is called when entering this mode.
	Enter() error

	// Exit is called when leaving this mode.
	Exit() error

	// Update is called every frame before the timeline is evaluated.
	Update(dt float32) error

	// HandleInput processes one input event.
	HandleInput(ev input.Event) error
}

// ModeManager manages mode transitions.
type ModeManager struct {
	current Mode
	next    Mode
}

// NewModeManager creates a new mode manager.
func NewModeManager() *ModeManager {
	return &ModeManager{}
}

// Current returns the current mode.
func (m *ModeManager) Current() Mode {
	return m.current
}

// Change schedules a mode change for the next Update.
func (m *ModeManager) Change(next Mode) {
	m.next = next
}

// Update processes a pending change and updates the current mode.
func (m *ModeManager) Update(dt float32) error {
	// Handle mode transition
	if m.next != nil {
		if m.current != nil {
			if err := m.current.Exit(); err != nil {
				return err
			}
		}
		m.current = m.next
		m.next = nil
		if err := m.current.Enter(); err != nil {
			return err
		}
	}

	// Update current mode
	if m.current != nil {
		return m.current.Update(dt)
	}
	return nil
}

// HandleInput forwards ev to the current mode.
func (m *ModeManager) HandleInput(ev input.Event) error {
	if m.current != nil {
		return m.current.HandleInput(ev)
	}
	return nil
}

// Close exits the current mode.
func (m *ModeManager) Close() error {
	if m.current == nil {
		return nil
	}
	err := m.current.Exit()
	m.current = nil
	return err
}

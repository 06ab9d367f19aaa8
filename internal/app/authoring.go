package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/chewxy/math32"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/divescroll/internal/assets"
	"github.com/Faultbox/divescroll/internal/binding"
	"github.com/Faultbox/divescroll/internal/engine/input"
	"github.com/Faultbox/divescroll/internal/engine/picking"
	"github.com/Faultbox/divescroll/internal/timeline"
)

const (
	scrubStep = 0.1                  // seconds per Left/Right press
	turnStep  = 2.5 * math32.Pi / 180 // radians per shifted arrow press
)

// ErrRemoteState is returned when saving to an http(s) snapshot location.
var ErrRemoteState = errors.New("snapshot location is not a local file")

// KeyState reports held keys.
type KeyState interface {
	Axis(positive, negative sdl.Scancode) float32
}

// AuthoringMode is the keyboard authoring session: scrub and preview the
// sequence, move the camera and record its pose as keyframes.
type AuthoringMode struct {
	core *Core
	keys KeyState

	player   *timeline.Player
	builder  *timeline.Builder
	selected int
	status   string
}

// NewAuthoringMode creates the authoring session. keys may be nil.
func NewAuthoringMode(c *Core, keys KeyState) *AuthoringMode {
	return &AuthoringMode{core: c, keys: keys}
}

// Name implements Mode.
func (a *AuthoringMode) Name() string {
	return "authoring"
}

// Enter starts from the sequence currently in the store. Without a loaded
// sequence the configured length is used.
func (a *AuthoringMode) Enter() error {
	if _, ok := a.core.Store.Duration(); !ok {
		if err := a.core.Store.SetDuration(a.core.cfg.Timeline.SequenceLength); err != nil {
			return fmt.Errorf("sequence length: %w", err)
		}
	}
	a.builder = timeline.BuilderFrom(a.core.Store.Sequence())
	a.player = timeline.NewPlayer(a.core.Store.Duration)
	a.player.Seek(a.core.Position())
	a.core.log.Info("authoring session started",
		zap.Strings("objects", a.core.Objects()))
	return nil
}

// Exit pauses the preview.
func (a *AuthoringMode) Exit() error {
	if a.player != nil {
		a.player.Pause()
	}
	return nil
}

// Update advances the preview and flies the camera with WASD/QE.
func (a *AuthoringMode) Update(dt float32) error {
	if pos, changed := a.player.Update(dt); changed {
		a.core.SetPosition(pos)
	}

	if a.keys != nil {
		forward := a.keys.Axis(sdl.SCANCODE_W, sdl.SCANCODE_S)
		right := a.keys.Axis(sdl.SCANCODE_D, sdl.SCANCODE_A)
		up := a.keys.Axis(sdl.SCANCODE_E, sdl.SCANCODE_Q)
		if forward != 0 || right != 0 || up != 0 {
			a.core.Camera.Move(forward, right, up, dt)
		}
	}
	return nil
}

// HandleInput maps authoring keys.
func (a *AuthoringMode) HandleInput(ev input.Event) error {
	if ev.Type == input.EventMouseDown && ev.Button == sdl.BUTTON_LEFT {
		a.PickAt(float32(ev.X), float32(ev.Y))
		return nil
	}
	if ev.Type != input.EventKeyDown {
		return nil
	}
	shift := input.Shift(ev.Mod)

	switch ev.Key {
	case sdl.SCANCODE_LEFT:
		if shift {
			a.Turn(0, turnStep)
		} else {
			a.Scrub(-scrubStep)
		}
	case sdl.SCANCODE_RIGHT:
		if shift {
			a.Turn(0, -turnStep)
		} else {
			a.Scrub(scrubStep)
		}
	case sdl.SCANCODE_UP:
		if shift {
			a.Turn(turnStep, 0)
		}
	case sdl.SCANCODE_DOWN:
		if shift {
			a.Turn(-turnStep, 0)
		}
	case sdl.SCANCODE_HOME:
		a.Seek(0)
	case sdl.SCANCODE_SPACE:
		if !ev.Repeat {
			a.player.Toggle()
		}
	case sdl.SCANCODE_TAB:
		if !ev.Repeat {
			a.SelectNext()
		}
	case sdl.SCANCODE_K:
		if !ev.Repeat {
			return a.RecordKey()
		}
	case sdl.SCANCODE_S:
		if input.Ctrl(ev.Mod) && !ev.Repeat {
			a.Save()
		}
	}
	return nil
}

// Scrub moves the position by delta seconds.
func (a *AuthoringMode) Scrub(delta float32) {
	a.Seek(a.player.Position() + delta)
}

// Seek moves the position to pos, clamped to the sequence.
func (a *AuthoringMode) Seek(pos float32) {
	a.player.Seek(pos)
	a.core.SetPosition(a.player.Position())
}

// Turn rotates the camera.
func (a *AuthoringMode) Turn(pitch, yaw float32) {
	a.core.Camera.Turn(pitch, yaw)
}

// Selected returns the name of the object K records.
func (a *AuthoringMode) Selected() string {
	names := a.core.Objects()
	if len(names) == 0 {
		return ""
	}
	return names[a.selected%len(names)]
}

// SelectNext cycles the recorded object through the bound objects.
func (a *AuthoringMode) SelectNext() {
	if n := len(a.core.Objects()); n > 0 {
		a.selected = (a.selected + 1) % n
	}
	a.status = "selected " + a.Selected()
}

// PickAt selects the bound object owning the box under the cursor. It
// reports whether the selection changed.
func (a *AuthoringMode) PickAt(x, y float32) bool {
	c := a.core
	ray := picking.ScreenToRay(x, y, c.viewport[0], c.viewport[1], c.Camera.ViewProj().Inverse())
	hit, _, ok := picking.Pick(c.Graph.Root(), ray)
	if !ok {
		return false
	}
	for n := hit; n != nil; n = n.Parent() {
		for i, name := range c.Objects() {
			if name == n.Name {
				a.selected = i
				a.status = "selected " + name
				return true
			}
		}
	}
	return false
}

// RecordKey stores the selected object's pose as keys at the current
// position and makes the result the active sequence.
func (a *AuthoringMode) RecordKey() error {
	name := a.Selected()
	target, ok := a.core.Object(name)
	if !ok {
		return fmt.Errorf("no object %q to record", name)
	}

	pos := a.player.Position()
	for channel, v := range binding.SeedTransform(target) {
		a.builder.Set(name, channel, pos, v)
	}
	a.core.ReplaceSequence(a.builder.Build())

	a.status = fmt.Sprintf("key %s @ %.2fs", name, pos)
	a.core.log.Debug("key recorded", zap.String("object", name), zap.Float32("time", pos))
	return nil
}

// Sequence returns a copy of the recorded sequence.
func (a *AuthoringMode) Sequence() *timeline.Sequence {
	return a.builder.Build()
}

// Save writes the recorded sequence to the snapshot location in the
// background. The outcome is logged on the frame goroutine.
func (a *AuthoringMode) Save() *assets.Future[string] {
	cfg := a.core.cfg.Timeline
	seq := a.builder.Build()

	f := assets.Go(context.Background(), func(context.Context) (string, error) {
		return cfg.StateURL, writeSnapshot(cfg.StateURL, seq, cfg.ProjectName, cfg.SheetName)
	})
	f.Then(a.core.Queue, func(path string, err error) {
		if err != nil {
			a.status = "save failed"
			a.core.log.Error("snapshot save failed", zap.String("location", path), zap.Error(err))
			return
		}
		a.status = "saved"
		a.core.log.Info("snapshot saved", zap.String("location", path))
	})
	return f
}

// Status is the selected object and the last action.
func (a *AuthoringMode) Status() string {
	s := "object " + a.Selected()
	if a.player != nil && a.player.Playing() {
		s += " | playing"
	}
	if a.status != "" {
		s += " | " + a.status
	}
	return s
}

func writeSnapshot(location string, seq *timeline.Sequence, project, sheet string) error {
	if !isLocal(location) {
		return fmt.Errorf("save %q: %w", location, ErrRemoteState)
	}
	encode := timeline.Encode
	if strings.EqualFold(filepath.Ext(location), ".json") {
		encode = timeline.EncodeJSON
	}
	data, err := encode(seq, project, sheet)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(location); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	tmp := location + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, location)
}

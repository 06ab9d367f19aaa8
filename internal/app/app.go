package app

import (
	"context"
	"fmt"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/divescroll/internal/caustics"
	"github.com/Faultbox/divescroll/internal/config"
	"github.com/Faultbox/divescroll/internal/engine/debug"
	"github.com/Faultbox/divescroll/internal/engine/input"
	"github.com/Faultbox/divescroll/internal/engine/scene"
	"github.com/Faultbox/divescroll/internal/engine/ui2d"
	"github.com/Faultbox/divescroll/internal/engine/window"
	"github.com/Faultbox/divescroll/internal/logger"
)

// Title is the window title prefix.
const Title = "DiveScroll"

// App is the windowed player.
type App struct {
	cfg     *config.Config
	log     *zap.Logger
	running bool

	window      *window.Window
	input       *input.Input
	scene       *scene.Scene
	caustics    caustics.Compositor
	core        *Core
	overlay     *ui2d.Renderer
	screenshots *debug.ScreenshotCapture
}

// CausticsConfig maps the caustics settings onto the compositor config.
func CausticsConfig(cfg *config.Config) caustics.Config {
	p := caustics.DefaultPattern()
	p.Speed *= cfg.Caustics.Speed
	return caustics.Config{
		Resolution: cfg.Caustics.Resolution,
		Downsample: cfg.Caustics.Downsample,
		Blur:       cfg.Caustics.Blur,
		Pattern:    p,
	}
}

// New opens the window and builds the scene, the caustics compositor and
// the core.
func New(cfg *config.Config, log *zap.Logger) (*App, error) {
	log = logger.OrNop(log)
	log.Info("initializing player",
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
		zap.String("mode", string(cfg.Timeline.Mode)),
	)

	a := &App{cfg: cfg, log: log}

	var err error
	a.window, err = window.New(window.Config{
		Title:      Title,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	}, log.Named("window"))
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// GL functions resolve against the context the window just created
	if err := gl.Init(); err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	log.Info("OpenGL initialized", zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))))

	w, h := a.window.DrawableSize()
	a.scene, err = scene.New(scene.Config{
		Width:      int32(w),
		Height:     int32(h),
		Background: cfg.Scene.Background,
		Caustics:   cfg.Caustics.Enabled,
	})
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to create scene: %w", err)
	}

	if cfg.Caustics.Enabled {
		a.caustics, err = caustics.New(cfg.Caustics.Backend, CausticsConfig(cfg), log.Named("caustics"))
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to create caustics: %w", err)
		}
	}

	ww, wh := a.window.Size()
	a.overlay, err = ui2d.New(ww, wh)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to create overlay: %w", err)
	}

	a.input = input.New()

	a.core, err = NewCore(cfg, a.scene.Graph(), a.input, log)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.core.SetCaustics(a.caustics)
	a.core.Camera.SetAspect(w, h)
	a.core.SetViewport(ww, wh)

	a.screenshots = debug.NewScreenshotCapture("screenshots", "divescroll")

	log.Info("player initialized")
	return a, nil
}

// Run loads the assets in the background and runs the frame loop until the
// window closes, Escape is pressed or ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		if err := a.core.Init(ctx); err != nil {
			a.log.Warn("asset loading interrupted", zap.Error(err))
		}
	}()

	a.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()
	titleTimer := time.Now()

	a.log.Info("starting frame loop")

	for a.running {
		if ctx.Err() != nil {
			break
		}

		now := time.Now()
		dt := float32(now.Sub(lastTime).Seconds())
		lastTime = now

		if a.input.Update() {
			a.running = false
			break
		}

		for _, ev := range a.input.Events() {
			if err := a.handleEvent(ev); err != nil {
				return fmt.Errorf("input error: %w", err)
			}
		}

		if err := a.core.Update(dt); err != nil {
			return fmt.Errorf("update error: %w", err)
		}

		a.scene.Render(a.core.Frame())
		a.drawOverlay()
		a.window.SwapBuffers()

		if time.Since(titleTimer) >= 250*time.Millisecond {
			a.window.SetTitle(Title + " | " + a.core.Status())
			titleTimer = time.Now()
		}

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			a.log.Debug("fps",
				zap.Int("count", frameCount),
				zap.String("dt", fmt.Sprintf("%.2fms", dt*1000)))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

func (a *App) handleEvent(ev input.Event) error {
	switch ev.Type {
	case input.EventWindowResize:
		w, h := a.window.DrawableSize()
		a.scene.Resize(int32(w), int32(h))
		a.core.Camera.SetAspect(w, h)
		a.core.SetViewport(ev.Width, ev.Height)
		a.overlay.Resize(ev.Width, ev.Height)
	case input.EventKeyDown:
		switch ev.Key {
		case sdl.SCANCODE_ESCAPE:
			a.running = false
			return nil
		case sdl.SCANCODE_F2:
			a.core.ToggleMode()
			return nil
		case sdl.SCANCODE_F12:
			a.screenshot()
			return nil
		}
	}
	return a.core.Modes.HandleInput(ev)
}

func (a *App) screenshot() {
	pixels, w, h := a.scene.Capture()
	path, err := a.screenshots.CaptureFromPixels(pixels, int(w), int(h))
	if err != nil {
		a.log.Error("screenshot failed", zap.Error(err))
		return
	}
	a.log.Info("screenshot saved", zap.String("path", path))
}

// Close releases the core, GPU resources and the window.
func (a *App) Close() {
	a.log.Info("closing player")

	if a.core != nil {
		if err := a.core.Close(); err != nil {
			a.log.Warn("core close", zap.Error(err))
		}
	}
	if a.overlay != nil {
		a.overlay.Close()
	}
	if a.caustics != nil {
		a.caustics.Destroy()
	}
	if a.scene != nil {
		a.scene.Destroy()
	}
	if a.window != nil {
		a.window.Close()
	}
}

// Package main is the entry point for the DiveScroll player.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"go.uber.org/zap"

	"github.com/Faultbox/divescroll/internal/app"
	"github.com/Faultbox/divescroll/internal/caustics"
	"github.com/Faultbox/divescroll/internal/config"
	"github.com/Faultbox/divescroll/internal/engine/debug"
	"github.com/Faultbox/divescroll/internal/logger"
)

// dumpFrames is how many caustics frames --dump-caustics writes.
const dumpFrames = 4

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== DiveScroll ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	if path := config.WriteConfigPath(); path != "" {
		if err := cfg.SaveTo(path); err != nil {
			logger.Error("failed to write config", zap.String("path", path), zap.Error(err))
			os.Exit(1)
		}
		logger.Info("config written", zap.String("path", path))
		return
	}

	if dir := config.DumpCausticsDir(); dir != "" {
		if err := dumpCaustics(cfg, dir); err != nil {
			logger.Error("failed to dump caustics", zap.Error(err))
			os.Exit(1)
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Create and run the player
	a, err := app.New(cfg, logger.Named("app"))
	if err != nil {
		logger.Error("failed to create player", zap.Error(err))
		os.Exit(1)
	}
	defer a.Close()

	if err := a.Run(ctx); err != nil {
		logger.Error("player error", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("player closed normally")
}

// dumpCaustics renders a few software caustics frames a quarter second
// apart into dir without opening a window.
func dumpCaustics(cfg *config.Config, dir string) error {
	frames := caustics.NewFrameRenderer(app.CausticsConfig(cfg))
	capture := debug.NewScreenshotCapture(dir, "caustics")
	for i := 0; i < dumpFrames; i++ {
		f := frames.Render(float32(i) * 0.25)
		path, err := capture.CaptureFromImage(f.Image)
		if err != nil {
			return err
		}
		logger.Info("caustics frame written",
			zap.String("path", path),
			zap.Float32("time", f.Time))
	}
	return nil
}

// Package main is the entry point for the split-view camera viewer.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"sync/atomic"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/splitview/internal/config"
	"github.com/Faultbox/splitview/internal/engine/debug"
	"github.com/Faultbox/splitview/internal/engine/input"
	"github.com/Faultbox/splitview/internal/engine/renderer"
	"github.com/Faultbox/splitview/internal/engine/texture"
	"github.com/Faultbox/splitview/internal/engine/ui"
	"github.com/Faultbox/splitview/internal/engine/viewport"
	"github.com/Faultbox/splitview/internal/engine/window"
	"github.com/Faultbox/splitview/internal/game"
	"github.com/Faultbox/splitview/internal/logger"
)

const title = "SplitView"

func init() {
	// OpenGL calls must be made from the main thread
	runtime.LockOSThread()
}

// frontend is a host that also reports the displayed surface size.
type frontend interface {
	game.Host
	viewport.Display
}

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, cfgPath, err := config.Load()
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
	logger.SetFrameSampling(logger.FrameSampling{
		Tick:       time.Second,
		Initial:    cfg.Logging.FrameInitial,
		Thereafter: cfg.Logging.FrameThereafter,
	})

	logger.Info("=== SplitView ===", zap.String("config", cfgPath))
	logger.Sugar.Debugf("Config: %+v", cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, cfgPath); err != nil {
		logger.Error("viewer error", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}

	logger.Info("viewer closed normally")
}

func run(ctx context.Context, cfg *config.Config, cfgPath string) error {
	var (
		host    frontend
		imguiUI *ui.Backend
		sdlWin  *window.Window
	)

	switch cfg.Graphics.Host {
	case config.HostSDL:
		w, err := window.New(window.Config{
			Title:      title,
			Width:      cfg.Graphics.Width,
			Height:     cfg.Graphics.Height,
			Fullscreen: cfg.Graphics.Fullscreen,
			VSync:      cfg.Graphics.VSync,
		})
		if err != nil {
			return fmt.Errorf("create window: %w", err)
		}
		defer w.Close()
		host, sdlWin = w, w
	default:
		b, err := ui.NewBackend(title, int32(cfg.Graphics.Width), int32(cfg.Graphics.Height))
		if err != nil {
			return fmt.Errorf("create imgui backend: %w", err)
		}
		host, imguiUI = b, b
	}

	r, err := renderer.New(renderer.DefaultConfig())
	if err != nil {
		return fmt.Errorf("create renderer: %w", err)
	}
	defer r.Close()

	surface := viewport.NewSurface(host, r)

	loader := texture.NewLoader(&http.Client{Timeout: 30 * time.Second})
	defer loader.Wait()
	// Cancelled before Wait runs so in-flight downloads abort.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	stage, err := game.BuildStage(ctx, cfg, surface, loader)
	if err != nil {
		return fmt.Errorf("build stage: %w", err)
	}

	loop := game.NewLoop(host, r, surface, stage.Scene, stage.Views, stage.Helper)

	// F12 captures every view of the next completed frame.
	var shotRequested atomic.Bool
	shots := debug.NewScreenshotCapture(cfg.Debug.ScreenshotDir, "splitview")
	compositor := viewport.NewCompositor(r, surface)
	loop.OnFrame(func(info game.FrameInfo) {
		if !shotRequested.CompareAndSwap(true, false) {
			return
		}
		pixels, w, h := r.ReadPixels()
		for _, v := range info.Views {
			if v.Skipped {
				continue
			}
			x, y, cw, ch := compositor.DeviceRect(v.Region)
			path, err := shots.CaptureView(v.Name, pixels, w, h, int(x), int(y), int(cw), int(ch))
			if err != nil {
				logger.Warn("screenshot failed", zap.String("view", v.Name), zap.Error(err))
				continue
			}
			logger.Info("screenshot saved", zap.String("view", v.Name), zap.String("path", path))
		}
	})

	bindings := input.Bindings{
		Router:     stage.Router,
		Panel:      stage.Panel,
		Screenshot: func() { shotRequested.Store(true) },
	}
	switch {
	case sdlWin != nil:
		sdlWin.OnEvent(bindings.Apply)
		loop.OnFrame(func(game.FrameInfo) {
			if f := stage.Panel.Focused(); f != nil {
				sdlWin.SetTitle(fmt.Sprintf("%s  [%s = %.1f]", title, f.Label(), f.Value()))
			}
		})
	case imguiUI != nil:
		imguiUI.SetBindings(bindings)
		imguiUI.AddOverlay(ui.PanelOverlay("Camera", stage.Panel))
	}

	if cfg.Debug.WatchConfig && cfgPath != "" {
		if err := watchLayout(ctx, cfgPath, loop); err != nil {
			logger.Warn("config watch disabled", zap.Error(err))
		}
	}

	return loop.Run(ctx)
}

// watchLayout applies view placements from config file edits.
func watchLayout(ctx context.Context, path string, loop *game.Loop) error {
	updates, err := config.Watch(ctx, path)
	if err != nil {
		return err
	}
	go func() {
		for cfg := range updates {
			layout, err := game.Layout(cfg)
			if err != nil {
				logger.Warn("ignoring reloaded layout", zap.Error(err))
				continue
			}
			loop.QueueLayout(layout)
			logger.Info("layout reloaded", zap.Int("views", len(layout)))
		}
	}()
	return nil
}

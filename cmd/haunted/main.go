// Command haunted renders the procedural haunted house scene: a house with a door, bushes,
// a field of graves and three ghost lights circling through the fog.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/Carmen-Shannon/haunted-house/common"
	"github.com/Carmen-Shannon/haunted-house/engine"
	"github.com/Carmen-Shannon/haunted-house/engine/camera"
	"github.com/Carmen-Shannon/haunted-house/engine/config"
	"github.com/Carmen-Shannon/haunted-house/engine/exporter"
	"github.com/Carmen-Shannon/haunted-house/engine/house"
	"github.com/Carmen-Shannon/haunted-house/engine/light"
	"github.com/Carmen-Shannon/haunted-house/engine/profiler"
	"github.com/Carmen-Shannon/haunted-house/engine/renderer"
	"github.com/Carmen-Shannon/haunted-house/engine/resource"
	"github.com/Carmen-Shannon/haunted-house/engine/tweak"
	"github.com/Carmen-Shannon/haunted-house/engine/viewport"
	"github.com/Carmen-Shannon/haunted-house/engine/window"
)

// tweakBindings maps keys to the debug properties registered by the light rig.
var tweakBindings = []tweak.KeyBinding{
	{Key: common.Key1, Property: "ambient.intensity", Steps: -10},
	{Key: common.Key2, Property: "ambient.intensity", Steps: 10},
	{Key: common.KeyQ, Property: "moon.position.x", Steps: 50},
	{Key: common.KeyA, Property: "moon.position.x", Steps: -50},
	{Key: common.KeyW, Property: "moon.position.y", Steps: 50},
	{Key: common.KeyS, Property: "moon.position.y", Steps: -50},
	{Key: common.KeyE, Property: "moon.position.z", Steps: 50},
	{Key: common.KeyD, Property: "moon.position.z", Steps: -50},
}

func main() {
	cfg, err := parseConfig(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	level, _ := cfg.Level()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("haunted house failed", "error", err)
		os.Exit(1)
	}
}

// parseConfig loads the config file named by -config and applies the flags that were set
// on the command line over it.
func parseConfig(args []string) (config.Config, error) {
	fs := flag.NewFlagSet("haunted", flag.ContinueOnError)
	path := fs.String("config", "", "TOML config file")
	headless := fs.Bool("headless", false, "render without a window")
	frames := fs.Int("frames", 0, "stop a headless run after this many frames (0 = unbounded)")
	seed := fs.Int64("seed", 0, "grave placement seed (0 picks a new layout)")
	textures := fs.String("textures", "", "texture root directory")
	export := fs.String("export", "", "write a GLB snapshot of the scene to this file")
	profile := fs.Bool("profile", false, "log frame statistics")
	if err := fs.Parse(args); err != nil {
		return config.Config{}, err
	}

	cfg, err := config.Load(*path)
	if err != nil {
		return cfg, err
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "headless":
			cfg.Renderer.Headless = *headless
		case "frames":
			cfg.Loop.Frames = *frames
		case "seed":
			cfg.Scene.Seed = *seed
		case "textures":
			cfg.Scene.Textures = *textures
		case "export":
			cfg.Export = *export
		case "profile":
			cfg.Profile.Enabled = *profile
		}
	})
	return cfg, cfg.Validate()
}

func run(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	// ── Textures ────────────────────────────────────────────────────────
	rs := resource.NewResourceSet(
		resource.WithLoader(resource.FileImageLoader{Root: cfg.Scene.Textures}),
		resource.WithLogger(logger),
	)
	defer rs.Close()
	textures := house.RequestTextures(rs, "")

	// ── Scene ───────────────────────────────────────────────────────────
	lights := light.NewRig()
	tableau, err := house.Build(textures,
		house.WithSeed(cfg.Scene.Seed),
		house.WithLights(lights.Lights()...),
		house.WithLogger(logger),
	)
	if err != nil {
		return err
	}
	if err := tableau.CheckAmbientOcclusionUVs(); err != nil {
		return err
	}

	// A headless run has no frame to pick textures up later, so finish loading first.
	if cfg.Renderer.Headless || cfg.Export != "" {
		waitCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		err := rs.Wait(waitCtx)
		cancel()
		if err != nil {
			logger.Warn("textures still loading", "pending", rs.Pending(), "error", err)
		}
	}
	if cfg.Export != "" {
		if err := export(cfg.Export, tableau, logger); err != nil {
			return err
		}
	}

	// ── Debug tweaks ────────────────────────────────────────────────────
	reg := tweak.NewRegistry()
	if err := lights.RegisterTweaks(reg); err != nil {
		return err
	}
	keys := tweak.NewKeyPanel(reg, logger, tweakBindings...)
	reg.Bind(keys)

	// ── Window + Renderer ───────────────────────────────────────────────
	presentMode := renderer.PresentModeUncapped
	if cfg.Renderer.VSync {
		presentMode = renderer.PresentModeVSync
	}
	rendererOptions := []renderer.RendererBuilderOption{
		renderer.WithPresentMode(presentMode),
		renderer.WithMSAA(renderer.MSAASampleCount(cfg.Renderer.MSAA)),
		renderer.WithForceSoftwareRenderer(cfg.Renderer.ForceSoftware),
		renderer.WithLogger(logger),
	}

	var (
		win       window.Window
		v         *viewport.Viewport
		r         renderer.Renderer
		scheduler engine.FrameScheduler
	)
	if cfg.Renderer.Headless {
		v = viewport.New(cfg.Window.Width, cfg.Window.Height, 1)
		r, err = renderer.NewRenderer(renderer.BackendTypeHeadless, nil, rendererOptions...)
		scheduler = engine.NewFixedScheduler(cfg.Loop.FPS, cfg.Loop.Frames)
	} else {
		win, err = window.NewWindow(
			window.WithTitle(cfg.Window.Title),
			window.WithSize(cfg.Window.Width, cfg.Window.Height),
		)
		if err != nil {
			return err
		}
		defer win.Close()
		v = viewport.New(win.Width(), win.Height(), win.ContentScale())
		r, err = renderer.NewRenderer(renderer.BackendTypeWGPU, win, rendererOptions...)
		scheduler = engine.NewWindowScheduler(win)
	}
	if err != nil {
		return err
	}
	defer r.Release()

	// ── Camera ──────────────────────────────────────────────────────────
	rig := camera.NewRig(v.State())
	if win != nil {
		engine.BindInput(win, v, rig, keys, logger)
	}

	// ── Loop ────────────────────────────────────────────────────────────
	loopOptions := []engine.RenderLoopOption{
		engine.WithGraph(tableau.Graph),
		engine.WithAnimator(lights),
		engine.WithCameraRig(rig),
		engine.WithRenderer(r),
		engine.WithScheduler(scheduler),
		engine.WithLogger(logger),
	}
	if cfg.Profile.Enabled {
		loopOptions = append(loopOptions, engine.WithProfiler(profiler.NewProfiler(
			profiler.WithInterval(cfg.ProfileInterval()),
			profiler.WithLogger(logger),
		)))
	}
	loop, err := engine.NewRenderLoop(loopOptions...)
	if err != nil {
		return err
	}
	loop.Attach(v)

	err = loop.Run(ctx)
	stats := r.Stats()
	logger.Info("rendered",
		"frames", stats.Frames, "draws", stats.Draws, "lights", stats.Lights,
		"textures", stats.Textures, "width", stats.Width, "height", stats.Height)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func export(path string, tableau *house.Tableau, logger *slog.Logger) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	if err := exporter.WriteGLB(f, tableau.Graph); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	logger.Info("exported scene", "path", path, "nodes", tableau.Graph.Len())
	return nil
}

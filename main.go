package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/tanklab/tankview/config"
	"github.com/tanklab/tankview/feed"
	"github.com/tanklab/tankview/scene"
	"github.com/tanklab/tankview/telemetry"
	"github.com/tanklab/tankview/ui"
	"github.com/tanklab/tankview/world"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	feedURL := flag.String("url", "", "Snapshot feed URL (overrides config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV telemetry and config snapshot")
	logStats := flag.Bool("log-stats", false, "Log window stats via slog")

	flag.Parse()

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	url := cfg.Feed.URL
	if *feedURL != "" {
		url = *feedURL
	}

	output, err := telemetry.NewOutputManager(*outputDir)
	if err != nil {
		slog.Error("failed to create output directory", "error", err)
		os.Exit(1)
	}
	defer output.Close()
	if err := output.WriteConfig(cfg); err != nil {
		slog.Warn("failed to write config snapshot", "error", err)
	}

	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagWindowHighdpi)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Tank View")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))
	// Escape deselects; keep it away from raylib's default exit binding.
	rl.SetExitKey(0)

	sc := scene.New(scene.Options{
		AssetDir:            cfg.Render.AssetDir,
		ShowEffects:         cfg.Render.ShowEffects,
		MaintenanceInterval: time.Duration(cfg.Render.MaintenanceSec * float64(time.Second)),
	}, scene.Callbacks{
		OnEntityClick: func(id int64, kind world.Kind) {
			slog.Info("entity selected", "id", id, "kind", kind)
		},
	})
	defer sc.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client := feed.NewClient(url, sc.SetSnapshot)
	go func() {
		if err := client.Run(ctx); err != nil && ctx.Err() == nil {
			slog.Error("feed stopped", "error", err)
		}
	}()

	collector := telemetry.NewFrameCollector(cfg.Telemetry.WindowSec)
	hud := ui.NewHUD()
	controls := ui.NewControls()

	slog.Info("viewer started", "feed_url", url)

	for !rl.WindowShouldClose() {
		frameStart := time.Now()

		handleInput(sc)

		rl.BeginDrawing()
		rl.ClearBackground(rl.Black)

		if sc.State() == scene.StateErrored {
			ui.DrawErrorPanel(int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight()), sc.ErrorMessage())
		} else {
			sc.Frame()
		}

		drawOverlay(sc, client, hud, controls)

		rl.EndDrawing()

		collector.RecordFrame(time.Since(frameStart))
		if collector.WindowReady() {
			_, dropped, recovered := sc.Counters()
			facing, plants, paths := sc.CacheSizes()
			stats := collector.Flush(sc.EntityCount(), dropped, recovered, facing, plants, paths)

			if err := output.WriteWindow(stats); err != nil {
				slog.Warn("telemetry write failed", "error", err)
			}
			if *logStats {
				slog.Info("window stats",
					"fps", stats.FPS,
					"frame_ms_p99", stats.FrameMsP99,
					"entities", stats.EntityCount,
					"dropped", stats.DroppedSnapshots,
				)
			}
		}
	}
}

// handleInput feeds pointer and keyboard events into the scene. Pointer
// positions are converted to framebuffer pixels so the scene's inverse
// transform can divide out display scaling itself.
func handleInput(sc *scene.Scene) {
	if !rl.IsCursorOnScreen() {
		sc.ClearHover()
	} else {
		mouse := rl.GetMousePosition()
		dpi := rl.GetWindowScaleDPI()
		px := float64(mouse.X * dpi.X)
		py := float64(mouse.Y * dpi.Y)

		sc.HandleHover(px, py)
		if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
			sc.HandleClick(px, py)
		}
	}

	if rl.IsKeyPressed(rl.KeyE) {
		sc.SetShowEffects(!sc.ShowEffects())
	}
	if rl.IsKeyPressed(rl.KeyEscape) || rl.IsMouseButtonPressed(rl.MouseButtonRight) {
		sc.Deselect()
	}
}

// drawOverlay renders the HUD, control strip and tooltip in screen
// coordinates on top of the tank.
func drawOverlay(sc *scene.Scene, client *feed.Client, hud *ui.HUD, controls *ui.Controls) {
	snap, _ := sc.Snapshot()

	hud.Draw(ui.HUDData{
		FishCount:   snap.Stats.FishCount,
		PlantCount:  snap.Stats.PlantCount,
		FoodCount:   snap.Stats.FoodCount,
		Generation:  snap.Stats.Generation,
		ElapsedTime: snap.ElapsedTime,
		FPS:         rl.GetFPS(),
		FeedUp:      client.Connected(),
		SceneState:  sc.State().String(),
		ShowEffects: sc.ShowEffects(),
	})

	_, hasSelection := sc.Selected()
	result := controls.Draw(int32(rl.GetScreenHeight()), ui.ControlState{
		ShowEffects:  sc.ShowEffects(),
		HasSelection: hasSelection,
	})
	if result.ShowEffects != sc.ShowEffects() {
		sc.SetShowEffects(result.ShowEffects)
	}
	if result.Deselect {
		sc.Deselect()
	}

	if id, ok := sc.Hovered(); ok {
		if e := snap.At(id); e != nil {
			mouse := rl.GetMousePosition()
			ui.DrawTooltip(e, mouse.X, mouse.Y)
		}
	}
}

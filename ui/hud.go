// Package ui renders the heads-up display, control strip, tooltip and
// error panel around the tank view. Everything here draws in screen
// coordinates, outside the world-space scale.
package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	FishCount   int
	PlantCount  int
	FoodCount   int
	Generation  int
	ElapsedTime float64
	FPS         int32
	FeedUp      bool
	SceneState  string
	ShowEffects bool
}

// HUD renders the main heads-up display.
type HUD struct{}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	rl.DrawText("Tank View", 10, 10, 20, rl.White)

	rl.DrawText(
		fmt.Sprintf("Fish: %d | Plants: %d | Food: %d | Gen: %d",
			data.FishCount, data.PlantCount, data.FoodCount, data.Generation),
		10, 35, 16, rl.LightGray,
	)

	rl.DrawText(
		fmt.Sprintf("Sim time: %.1fs | FPS: %d | Scene: %s",
			data.ElapsedTime, data.FPS, data.SceneState),
		10, 55, 16, rl.LightGray,
	)

	feedText := "Feed: connected"
	feedColor := rl.Green
	if !data.FeedUp {
		feedText = "Feed: reconnecting..."
		feedColor = rl.Orange
	}
	rl.DrawText(feedText, 10, 75, 16, feedColor)
}

package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/tanklab/tankview/world"
)

// Panel colors
var (
	colorPanelBg     = rl.Color{R: 30, G: 30, B: 35, A: 240}
	colorPanelBorder = rl.Color{R: 70, G: 70, B: 80, A: 255}
)

// DrawErrorPanel replaces the tank view when the scene is in its
// terminal error state. It fills the same area the canvas occupied, so
// the surrounding layout does not shift.
func DrawErrorPanel(width, height int32, msg string) {
	rl.DrawRectangle(0, 0, width, height, colorPanelBg)
	rl.DrawRectangleLines(0, 0, width, height, colorPanelBorder)

	title := "Rendering unavailable"
	titleW := rl.MeasureText(title, 24)
	rl.DrawText(title, width/2-titleW/2, height/2-30, 24, rl.RayWhite)

	msgW := rl.MeasureText(msg, 16)
	rl.DrawText(msg, width/2-msgW/2, height/2+4, 16, rl.Gray)
}

// DrawTooltip shows hovered-entity details next to the pointer.
func DrawTooltip(e *world.Entity, mouseX, mouseY float32) {
	text := fmt.Sprintf("%s #%d", e.Kind, e.ID)
	detail := fmt.Sprintf("energy %.0f%%", clamp01(e.Energy)*100)
	if e.Kind == world.KindPlant || e.Kind == world.KindBall {
		detail = ""
	}

	w := rl.MeasureText(text, 16)
	if dw := rl.MeasureText(detail, 14); dw > w {
		w = dw
	}
	h := int32(26)
	if detail != "" {
		h = 44
	}

	x := int32(mouseX) + 14
	y := int32(mouseY) + 14

	rl.DrawRectangle(x-4, y-4, w+16, h, colorPanelBg)
	rl.DrawRectangleLines(x-4, y-4, w+16, h, colorPanelBorder)
	rl.DrawText(text, x, y, 16, rl.RayWhite)
	if detail != "" {
		rl.DrawText(detail, x, y+20, 14, rl.LightGray)
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

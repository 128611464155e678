package ui

import (
	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// ControlState carries the toggle values through the control strip.
type ControlState struct {
	ShowEffects  bool
	HasSelection bool
}

// ControlResult reports what the user changed this frame.
type ControlResult struct {
	ShowEffects bool
	Deselect    bool
}

// Controls renders the control strip in the bottom-left corner.
type Controls struct{}

// NewControls creates the control strip.
func NewControls() *Controls {
	return &Controls{}
}

// Draw renders the strip and returns the resulting state.
func (c *Controls) Draw(screenH int32, state ControlState) ControlResult {
	y := float32(screenH - 40)

	result := ControlResult{ShowEffects: state.ShowEffects}

	result.ShowEffects = gui.CheckBox(
		rl.Rectangle{X: 10, Y: y, Width: 20, Height: 20},
		"Effects", state.ShowEffects,
	)

	if state.HasSelection {
		if gui.Button(rl.Rectangle{X: 110, Y: y, Width: 90, Height: 24}, "Deselect") {
			result.Deselect = true
		}
	}

	return result
}

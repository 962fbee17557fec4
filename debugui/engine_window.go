package debugui

import (
	"fmt"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/blockfall/engine"
)

var (
	colorPaused   = imgui.NewVec4(1.0, 0.8, 0.0, 1.0)
	colorGameOver = imgui.NewVec4(1.0, 0.3, 0.3, 1.0)
	colorRunning  = imgui.NewVec4(0.0, 1.0, 0.0, 1.0)
)

// EngineWindow shows the engine's state machine and counters.
func EngineWindow(s engine.State, interval fmt.Stringer) {
	imgui.SetNextWindowPosV(imgui.NewVec2(10, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(300, 320), imgui.CondOnce)

	if !imgui.BeginV("Engine", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	switch phase := s.Phase(); phase {
	case engine.Paused, engine.ClearingLines:
		imgui.TextColored(colorPaused, strings.ToUpper(phase.String()))
	case engine.GameOver:
		imgui.TextColored(colorGameOver, "GAME OVER")
	default:
		imgui.TextColored(colorRunning, "PLAYING")
	}
	imgui.Text(fmt.Sprintf("Drop interval: %s", interval))
	imgui.Separator()

	imgui.Text(fmt.Sprintf("Score: %d", s.Score))
	imgui.Text(fmt.Sprintf("Level: %d", s.Level))
	imgui.Text(fmt.Sprintf("Lines: %d (total %d)", s.Lines, s.LinesClearedTotal))
	imgui.Text(fmt.Sprintf("Last clear: %d", s.LastLinesCleared))
	imgui.Separator()

	if s.Current != nil {
		imgui.Text(fmt.Sprintf("Current: %s", s.Current))
	} else {
		imgui.Text("Current: none")
	}
	if s.Next != nil {
		imgui.Text(fmt.Sprintf("Next: %s", s.Next.Shape))
	}
	bag := make([]string, len(s.Bag))
	for i, shape := range s.Bag {
		bag[i] = shape.String()
	}
	imgui.Text(fmt.Sprintf("Bag: [%s]", strings.Join(bag, " ")))
	imgui.Text(fmt.Sprintf("Last drop at: %s", s.LastDropAt))

	if len(s.ClearingRows) > 0 {
		imgui.Separator()
		imgui.Text(fmt.Sprintf("Clearing rows %v since %s", s.ClearingRows, s.ClearStartedAt))
	}

	imgui.Separator()
	imgui.Text(fmt.Sprintf("Particles: %d", len(s.Particles)))
	imgui.Text(fmt.Sprintf("Filled cells: %d", s.Grid.FilledCount()))

	imgui.End()
}

// Controls is the set of actions ControlWindow can trigger.
type Controls struct {
	TogglePause func()
	Restart     func()
	FastDrop    *bool
	Mute        *bool
}

// ControlWindow draws buttons for pausing and restarting plus a few toggles.
func ControlWindow(c Controls) {
	imgui.SetNextWindowPosV(imgui.NewVec2(10, 340), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(300, 120), imgui.CondOnce)

	if imgui.BeginV("Controls", nil, imgui.WindowFlagsNone) {
		if imgui.Button("Pause") && c.TogglePause != nil {
			c.TogglePause()
		}
		imgui.SameLine()
		if imgui.Button("Restart") && c.Restart != nil {
			c.Restart()
		}
		if c.FastDrop != nil {
			imgui.Checkbox("Fast drop", c.FastDrop)
		}
		if c.Mute != nil {
			imgui.Checkbox("Mute", c.Mute)
		}
	}
	imgui.End()
}

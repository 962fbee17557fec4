// Package debugui draws Dear ImGui developer windows over the ebiten host: the
// engine's internal state, scheduler timings and a few game controls.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/blockfall/loop"
)

// Item is one window rendered every frame.
type Item struct {
	Render func()
}

// InputState tracks whether ImGui is consuming input, so the host can stop
// forwarding keys to the game while a debug widget has focus.
type InputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// System queues every item's render function for the end of the frame. It
// must run between the backend's BeginFrame and EndFrame.
type System struct {
	Items []Item
	Input InputState
}

// Add registers a window.
func (s *System) Add(render func()) {
	s.Items = append(s.Items, Item{Render: render})
}

func (s *System) Execute(frame *loop.Frame) {
	io := imgui.CurrentIO()
	s.Input.WantCaptureMouse = io.WantCaptureMouse()
	s.Input.WantCaptureKeyboard = io.WantCaptureKeyboard()

	for _, item := range s.Items {
		frame.Commands.Defer(item.Render)
	}
}

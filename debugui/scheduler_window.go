package debugui

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/AllenDang/cimgui-go/implot"
	"github.com/plus3/blockfall/loop"
)

// SchedulerWindow shows frame times and per-system costs.
type SchedulerWindow struct {
	historyFrames int
	frameHistory  []float32
	frameIndex    int
	systems       map[string][]float32
}

func NewSchedulerWindow(historyFrames int) *SchedulerWindow {
	return &SchedulerWindow{
		historyFrames: historyFrames,
		frameHistory:  make([]float32, historyFrames),
		systems:       make(map[string][]float32),
	}
}

// Record stores one frame's delta and the latest cost of every system.
func (w *SchedulerWindow) Record(delta time.Duration, stats *loop.SchedulerStats) {
	w.frameHistory[w.frameIndex] = float32(delta.Seconds() * 1000)
	for _, s := range stats.Systems {
		samples, ok := w.systems[s.Name]
		if !ok {
			samples = make([]float32, w.historyFrames)
			w.systems[s.Name] = samples
		}
		samples[w.frameIndex] = float32(s.LastDuration.Seconds() * 1e6)
	}
	w.frameIndex = (w.frameIndex + 1) % w.historyFrames
}

func (w *SchedulerWindow) Render(stats *loop.SchedulerStats) {
	imgui.SetNextWindowPosV(imgui.NewVec2(320, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(420, 400), imgui.CondOnce)

	if !imgui.BeginV("Scheduler", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	var avgFrameTime float32
	for _, ft := range w.frameHistory {
		avgFrameTime += ft
	}
	avgFrameTime /= float32(w.historyFrames)

	imgui.Text(fmt.Sprintf("Frames: %d", stats.Frames))
	if avgFrameTime > 0 {
		imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avgFrameTime, 1000.0/avgFrameTime))
	}
	imgui.PlotLinesFloatPtr("##frametime", &w.frameHistory[0], int32(len(w.frameHistory)))

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
	if imgui.BeginTableV("SystemStats", 5, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("System")
		imgui.TableSetupColumn("Runs")
		imgui.TableSetupColumn("Avg")
		imgui.TableSetupColumn("Min")
		imgui.TableSetupColumn("Max")
		imgui.TableHeadersRow()

		for _, s := range stats.Systems {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			imgui.Text(s.Name)
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", s.ExecutionCount))
			imgui.TableNextColumn()
			imgui.Text(s.AvgDuration.String())
			imgui.TableNextColumn()
			imgui.Text(s.MinDuration.String())
			imgui.TableNextColumn()
			imgui.Text(s.MaxDuration.String())
		}
		imgui.EndTable()
	}

	if imgui.TreeNodeStr("System cost (us)") {
		if implot.BeginPlotV("System cost", imgui.NewVec2(-1, 200), 0) {
			implot.SetupAxesV("Frame", "us", 0, implot.AxisFlagsAutoFit)
			for _, s := range stats.Systems {
				if samples := w.systems[s.Name]; len(samples) > 0 {
					implot.PlotLineFloatPtrInt(s.Name, &samples[0], int32(len(samples)))
				}
			}
			implot.EndPlot()
		}
		imgui.TreePop()
	}

	imgui.End()
}

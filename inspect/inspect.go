// Package inspect draws Dear ImGui windows over a running session: frame timings, the engine
// state with a text view of the board, the settings form and the recent bonuses.
//
// Windows are queued as deferred commands of the session's own tick, so they run after every
// game system and must be drawn between the backend's BeginFrame and EndFrame.
package inspect

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/AllenDang/cimgui-go/implot"

	"github.com/plus3/cubetris/game"
	"github.com/plus3/cubetris/tick"
)

const historyFrames = 120

// Inspector owns the debug windows of one session.
type Inspector struct {
	session *game.Session
	timer   *FrameTimer
	history *History
	windows []func()
}

// New returns an inspector for s. Call Register to attach it.
func New(s *game.Session) *Inspector {
	i := &Inspector{
		session: s,
		timer:   NewFrameTimer(),
		history: NewHistory(historyFrames),
	}
	i.windows = []func(){
		i.performanceWindow,
		i.stateWindow,
		i.settingsWindow,
		i.bonusWindow,
	}
	return i
}

// Register appends the inspector system to the session's scheduler.
func (i *Inspector) Register() {
	i.session.Scheduler().Register(tick.Func("inspect", i.execute))
}

func (i *Inspector) execute(frame *tick.Frame) {
	i.history.Add(float32(i.timer.Delta().Microseconds()) / 1000.0)
	for _, w := range i.windows {
		frame.Commands.Defer(w)
	}
}

func (i *Inspector) performanceWindow() {
	imgui.SetNextWindowPosV(imgui.NewVec2(10, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(420, 320), imgui.CondOnce)
	if !imgui.BeginV("Performance", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	avg := i.history.Average()
	if avg > 0 {
		imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avg, 1000.0/avg))
	}
	stats := i.session.Scheduler().Stats()
	imgui.Text(fmt.Sprintf("Frames: %d  System runs: %d", stats.Frames, stats.TotalExecutions))

	samples := i.history.Ordered()
	if len(samples) > 0 && implot.BeginPlotV("Frame Time", imgui.NewVec2(-1, 140), 0) {
		implot.SetupAxesV("Frame", "ms", 0, implot.AxisFlagsAutoFit)
		implot.PlotLineFloatPtrInt("frame", &samples[0], int32(len(samples)))
		implot.EndPlot()
	}

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
	if imgui.BeginTableV("SystemTable", 6, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("System")
		imgui.TableSetupColumn("Runs")
		imgui.TableSetupColumn("Last (ms)")
		imgui.TableSetupColumn("Avg (ms)")
		imgui.TableSetupColumn("Min (ms)")
		imgui.TableSetupColumn("Max (ms)")
		imgui.TableHeadersRow()

		for _, row := range SystemRows(stats) {
			imgui.TableNextRow()
			for _, cell := range []string{row.Name, row.Runs, row.Last, row.Avg, row.Min, row.Max} {
				imgui.TableNextColumn()
				imgui.Text(cell)
			}
		}
		imgui.EndTable()
	}
	imgui.End()
}

func (i *Inspector) stateWindow() {
	s := i.session
	e := s.Engine()

	imgui.SetNextWindowPosV(imgui.NewVec2(10, 340), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(320, 520), imgui.CondOnce)
	if !imgui.BeginV("Game", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	i.controls()
	imgui.Separator()

	imgui.Text(fmt.Sprintf("State: %s", e.State()))
	imgui.Text(fmt.Sprintf("Score: %d  High: %d", s.Score(), s.HighScore()))
	imgui.Text(fmt.Sprintf("Frame: %d  Step every %d", s.Frame(), s.StepFrames()))
	streak := e.Streak()
	imgui.Text(fmt.Sprintf("Streak: %d clears, %d points", streak.Count, streak.Sum))
	imgui.Text(fmt.Sprintf("Speed: %s", SpeedLine(e.SpeedCounts())))
	pos := e.Position()
	imgui.Text(fmt.Sprintf("Piece: (%d, %d) from row %d", pos.X, pos.Y, pos.StartY))
	if rows := e.ClearRows(); len(rows) > 0 {
		imgui.Text(fmt.Sprintf("Clearing: %v", rows))
	}
	imgui.Text(fmt.Sprintf("Keys: %s", KeyLine(s.Input())))

	if imgui.TreeNodeStr("Board") {
		for _, line := range BoardLines(e.RenderData()) {
			imgui.Text(line)
		}
		imgui.TreePop()
	}
	imgui.End()
}

func (i *Inspector) controls() {
	s := i.session
	if !s.Running() {
		if imgui.Button("Start") {
			if err := s.Start(); err != nil {
				game.Logger().Warn("start failed", "err", err)
			}
		}
		return
	}

	label := "Pause"
	if s.Paused() {
		label = "Resume"
	}
	if imgui.Button(label) {
		s.TogglePause()
	}
	imgui.SameLine()
	imgui.PushStyleColorVec4(imgui.ColButton, imgui.NewVec4(0.7, 0.2, 0.2, 1.0))
	if imgui.Button("Abort") {
		s.Abort()
	}
	imgui.PopStyleColor()
}

func (i *Inspector) settingsWindow() {
	set := i.session.Settings()

	imgui.SetNextWindowPosV(imgui.NewVec2(440, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(300, 220), imgui.CondOnce)
	if !imgui.BeginV("Settings", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	for _, setting := range set.Catalog() {
		staged, _ := set.Staged(setting.Name)
		imgui.Text(setting.Name)
		for n, item := range setting.Items {
			if n > 0 {
				imgui.SameLine()
			}
			selected := item.Name == staged
			if selected {
				imgui.PushStyleColorVec4(imgui.ColButton, imgui.NewVec4(0.2, 0.6, 0.2, 1.0))
			}
			if imgui.Button(item.Name + "##" + setting.Name) {
				if err := set.Stage(setting.Name, item.Name); err != nil {
					game.Logger().Warn("setting rejected", "setting", setting.Name, "err", err)
				}
			}
			if selected {
				imgui.PopStyleColor()
			}
		}
	}

	imgui.Separator()
	if imgui.Button("Save") {
		if _, err := set.Save(); err != nil {
			game.Logger().Warn("settings not saved", "err", err)
		}
	}
	imgui.SameLine()
	if imgui.Button("Cancel") {
		set.Cancel()
	}
	imgui.End()
}

func (i *Inspector) bonusWindow() {
	imgui.SetNextWindowPosV(imgui.NewVec2(440, 240), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(300, 180), imgui.CondOnce)
	if !imgui.BeginV("Bonuses", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}
	for _, b := range i.session.Bonuses() {
		imgui.TextColored(imgui.NewVec4(1.0, 0.8, 0.0, float32(b.Opacity())), fmt.Sprintf("%s +%d", b.Label, b.Points))
	}
	imgui.End()
}

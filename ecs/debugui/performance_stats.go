package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/chopper/ecs"
)

func NewPerformanceStats(historyFrames int) *PerformanceStats {
	return &PerformanceStats{
		historyFrames: historyFrames,
		frameHistory:  make([]float32, historyFrames),
		frameIndex:    0,
	}
}

// Record stores the duration of one frame, in seconds, in the history ring.
func (ps *PerformanceStats) Record(deltaTime float32) {
	ps.frameHistory[ps.frameIndex] = deltaTime * 1000.0
	ps.frameIndex = (ps.frameIndex + 1) % ps.historyFrames
}

// AverageFrameTime returns the mean of the history in milliseconds. Slots
// that have not been written yet count as zero.
func (ps *PerformanceStats) AverageFrameTime() float32 {
	var avgFrameTime float32
	for _, ft := range ps.frameHistory {
		avgFrameTime += ft
	}
	return avgFrameTime / float32(ps.historyFrames)
}

func (ps *PerformanceStats) Render(r *ecs.Registry, sched *ecs.SchedulerStats, deltaTime float32) {
	ps.Record(deltaTime)

	if !imgui.BeginV("Performance Stats", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	stats := r.CollectStats()

	imgui.Text(fmt.Sprintf("Live Entities: %d", stats.LiveEntityCount))
	imgui.Text(fmt.Sprintf("Allocated IDs: %d (%d free)", stats.AllocatedIDs, stats.FreeIDCount))
	imgui.Text(fmt.Sprintf("Pending: %d created, %d changed, %d killed",
		stats.PendingCreated, stats.PendingChanged, stats.PendingKilled))
	imgui.Text(fmt.Sprintf("Systems: %d", stats.SystemCount))
	imgui.Text(fmt.Sprintf("Singletons: %d", stats.SingletonCount))

	avgFrameTime := ps.AverageFrameTime()
	if avgFrameTime > 0 {
		imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avgFrameTime, 1000.0/avgFrameTime))
	}

	imgui.Separator()
	imgui.Text("Frame Time Graph (ms)")
	imgui.PlotLinesFloatPtr("##frametime", &ps.frameHistory[0], int32(len(ps.frameHistory)))

	if imgui.TreeNodeStr("Component Pools") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("PoolStatsTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("ID")
			imgui.TableSetupColumn("Type")
			imgui.TableSetupColumn("Capacity")
			imgui.TableSetupColumn("Entities")
			imgui.TableHeadersRow()

			for _, pool := range stats.Pools {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", pool.ID))
				imgui.TableNextColumn()
				imgui.Text(pool.Type)
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", pool.Capacity))
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", pool.EntityCount))
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	if sched != nil && imgui.TreeNodeStr("System Timings") {
		imgui.Text(fmt.Sprintf("Total executions: %d", sched.TotalExecutions))
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("SystemTimingTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("System")
			imgui.TableSetupColumn("Min")
			imgui.TableSetupColumn("Max")
			imgui.TableSetupColumn("Avg")
			imgui.TableHeadersRow()

			for _, s := range sched.Systems {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(s.Name)
				imgui.TableNextColumn()
				imgui.Text(s.MinDuration.String())
				imgui.TableNextColumn()
				imgui.Text(s.MaxDuration.String())
				imgui.TableNextColumn()
				imgui.Text(s.AvgDuration.String())
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	if imgui.TreeNodeStr("Singleton Details") {
		for _, singletonType := range stats.SingletonTypes {
			imgui.BulletText(singletonType)
		}
		imgui.TreePop()
	}

	imgui.End()
}

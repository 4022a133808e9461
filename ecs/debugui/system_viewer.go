package debugui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/chopper/ecs"
)

type SystemInfo struct {
	Name        string
	Signature   ecs.Signature
	Components  []string
	EntityCount int
	LastMicros  float64
	AvgMicros   float64
}

func NewSystemViewer() *SystemViewer {
	return &SystemViewer{
		sortColumn:    2,
		sortAscending: false,
	}
}

// Render lists every system with its signature, match set size and timing.
// Clicking a row returns the system's signature so the caller can filter
// the entity browser by it; otherwise nil is returned.
func (sv *SystemViewer) Render(r *ecs.Registry, sched *ecs.SchedulerStats) *ecs.Signature {
	if !imgui.BeginV("Systems", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return nil
	}

	rows := CollectSystems(r.CollectStats(), sched)

	maxEntityCount := 0
	for _, sys := range rows {
		maxEntityCount = max(maxEntityCount, sys.EntityCount)
	}

	var clicked *ecs.Signature

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("SystemTable", 5, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("System")
		imgui.TableSetupColumn("Components")
		imgui.TableSetupColumn("Entities")
		imgui.TableSetupColumn("Last (us)")
		imgui.TableSetupColumn("Avg (us)")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			sv.sortColumn = int(spec.ColumnIndex())
			sv.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			sortSpecs.SetSpecsDirty(false)
		}
		SortSystems(rows, sv.sortColumn, sv.sortAscending)

		for _, sys := range rows {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			isSelected := sv.selected != nil && *sv.selected == sys.Signature
			if imgui.SelectableBoolV(sys.Name, isSelected, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				sig := sys.Signature
				sv.selected = &sig
				clicked = &sig
			}

			imgui.TableNextColumn()
			imgui.Text(strings.Join(sys.Components, ", "))

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", sys.EntityCount))
			if maxEntityCount > 0 {
				barWidth := float32(sys.EntityCount) / float32(maxEntityCount) * 80.0
				imgui.SameLine()
				drawList := imgui.WindowDrawList()
				pos := imgui.CursorScreenPos()
				color := imgui.ColorU32Vec4(imgui.NewVec4(0.2, 0.6, 0.8, 0.6))
				drawList.AddRectFilled(pos, imgui.NewVec2(pos.X+barWidth, pos.Y+10), color)
			}

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%.1f", sys.LastMicros))

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%.1f", sys.AvgMicros))
		}

		imgui.EndTable()
	}

	imgui.End()
	return clicked
}

// CollectSystems joins the registry's match sets with the scheduler's
// timings by system name. sched may be nil.
func CollectSystems(stats *ecs.RegistryStats, sched *ecs.SchedulerStats) []SystemInfo {
	timings := make(map[string]ecs.SystemStats)
	if sched != nil {
		for _, s := range sched.Systems {
			timings[s.Name] = s
		}
	}

	rows := make([]SystemInfo, 0, len(stats.Systems))
	for _, s := range stats.Systems {
		t := timings[s.Name]
		rows = append(rows, SystemInfo{
			Name:        s.Name,
			Signature:   s.Signature,
			Components:  s.Components,
			EntityCount: s.EntityCount,
			LastMicros:  float64(t.LastDuration.Nanoseconds()) / 1e3,
			AvgMicros:   float64(t.AvgDuration.Nanoseconds()) / 1e3,
		})
	}
	return rows
}

// SortSystems orders rows by column: 0 name, 1 components, 2 entity count,
// 3 last duration, 4 average duration.
func SortSystems(rows []SystemInfo, column int, ascending bool) {
	less := func(a, b SystemInfo) bool {
		switch column {
		case 0:
			return a.Name < b.Name
		case 1:
			return strings.Join(a.Components, ",") < strings.Join(b.Components, ",")
		case 3:
			return a.LastMicros < b.LastMicros
		case 4:
			return a.AvgMicros < b.AvgMicros
		default:
			return a.EntityCount < b.EntityCount
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if !ascending {
			return less(rows[j], rows[i])
		}
		return less(rows[i], rows[j])
	})
}

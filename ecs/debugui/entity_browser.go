package debugui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/chopper/ecs"
)

type EntityInfo struct {
	ID             ecs.EntityID
	Signature      ecs.Signature
	ComponentTypes []string
	ComponentCount int
}

type EntityBrowserCache struct {
	entities      []EntityInfo
	sortColumn    int
	sortAscending bool
}

func NewEntityBrowser(maxEntitiesPerPage int) *EntityBrowser {
	return &EntityBrowser{
		cache: &EntityBrowserCache{
			sortColumn:    0,
			sortAscending: true,
		},
		maxEntitiesPerPage: maxEntitiesPerPage,
	}
}

func (eb *EntityBrowser) Render(r *ecs.Registry) {
	if !imgui.BeginV("Entity Browser", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	eb.Refresh(r)

	imgui.InputTextWithHint("##search", "Search...", &eb.filterText, imgui.InputTextFlagsNone, nil)
	imgui.SameLine()
	if imgui.Button("Clear Filter") {
		eb.filterText = ""
		eb.filterSignature = nil
	}
	if eb.filterSignature != nil {
		imgui.Text("Signature filter: " + strings.Join(r.Components().Names(*eb.filterSignature), ", "))
	}

	filteredEntities := eb.Filtered()
	totalPages := max((len(filteredEntities)+eb.maxEntitiesPerPage-1)/eb.maxEntitiesPerPage, 1)
	eb.currentPage = min(eb.currentPage, totalPages-1)

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("EntityTable", 4, tableFlags, imgui.NewVec2(0, 300), 0) {
		imgui.TableSetupColumn("Entity ID")
		imgui.TableSetupColumn("Signature")
		imgui.TableSetupColumn("Components")
		imgui.TableSetupColumn("Count")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			eb.SortBy(int(spec.ColumnIndex()), spec.SortDirection() == imgui.SortDirectionAscending)
			sortSpecs.SetSpecsDirty(false)
			filteredEntities = eb.Filtered()
		}

		startIdx := eb.currentPage * eb.maxEntitiesPerPage
		endIdx := min(startIdx+eb.maxEntitiesPerPage, len(filteredEntities))

		for i := startIdx; i < endIdx; i++ {
			entity := filteredEntities[i]
			imgui.TableNextRow()

			imgui.TableNextColumn()
			isSelected := eb.hasSelection && eb.selected == entity.ID
			if imgui.SelectableBoolV(fmt.Sprintf("%d", entity.ID), isSelected, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				eb.Select(entity.ID)
			}

			imgui.TableNextColumn()
			imgui.Text(entity.Signature.String())

			imgui.TableNextColumn()
			imgui.Text(strings.Join(entity.ComponentTypes, ", "))

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", entity.ComponentCount))
		}

		imgui.EndTable()
	}

	if len(filteredEntities) > eb.maxEntitiesPerPage {
		imgui.Text(fmt.Sprintf("Page %d / %d (%d entities)", eb.currentPage+1, totalPages, len(filteredEntities)))
		imgui.SameLine()
		if imgui.Button("Prev") && eb.currentPage > 0 {
			eb.currentPage--
		}
		imgui.SameLine()
		if imgui.Button("Next") && eb.currentPage < totalPages-1 {
			eb.currentPage++
		}
	} else {
		imgui.Text(fmt.Sprintf("Total: %d entities", len(filteredEntities)))
	}

	imgui.End()
}

// Refresh rebuilds the entity table from the registry. Signatures change
// without the entity count changing, so the table is rebuilt every frame.
func (eb *EntityBrowser) Refresh(r *ecs.Registry) {
	live := r.LiveEntities()
	eb.cache.entities = eb.cache.entities[:0]

	for _, e := range live {
		sig := r.Signature(e)
		componentTypes := r.Components().Names(sig)
		eb.cache.entities = append(eb.cache.entities, EntityInfo{
			ID:             e.ID(),
			Signature:      sig,
			ComponentTypes: componentTypes,
			ComponentCount: len(componentTypes),
		})
	}

	if eb.hasSelection && !r.IsAlive(eb.selected) {
		eb.hasSelection = false
	}

	eb.sortEntities()
}

// SortBy sets the sort column (0 id, 1 signature, 2 component names,
// 3 component count) and direction.
func (eb *EntityBrowser) SortBy(column int, ascending bool) {
	eb.cache.sortColumn = column
	eb.cache.sortAscending = ascending
	eb.sortEntities()
}

func (eb *EntityBrowser) sortEntities() {
	less := func(a, b EntityInfo) bool {
		switch eb.cache.sortColumn {
		case 1:
			return a.Signature < b.Signature
		case 2:
			return strings.Join(a.ComponentTypes, ",") < strings.Join(b.ComponentTypes, ",")
		case 3:
			return a.ComponentCount < b.ComponentCount
		default:
			return a.ID < b.ID
		}
	}

	rows := eb.cache.entities
	sort.SliceStable(rows, func(i, j int) bool {
		if !eb.cache.sortAscending {
			return less(rows[j], rows[i])
		}
		return less(rows[i], rows[j])
	})
}

// Filtered returns the cached rows that match the search text and the
// signature filter. A row matches the signature filter when its signature
// contains every bit of it.
func (eb *EntityBrowser) Filtered() []EntityInfo {
	if eb.filterText == "" && eb.filterSignature == nil {
		return eb.cache.entities
	}

	filtered := make([]EntityInfo, 0, len(eb.cache.entities))
	filterLower := strings.ToLower(eb.filterText)

	for _, entity := range eb.cache.entities {
		if eb.filterSignature != nil && !entity.Signature.Contains(*eb.filterSignature) {
			continue
		}

		if eb.filterText != "" {
			idStr := fmt.Sprintf("%d", entity.ID)
			componentsStr := strings.ToLower(strings.Join(entity.ComponentTypes, " "))

			if !strings.Contains(idStr, filterLower) && !strings.Contains(componentsStr, filterLower) {
				continue
			}
		}

		filtered = append(filtered, entity)
	}

	return filtered
}

func (eb *EntityBrowser) SetFilterText(text string) {
	eb.filterText = text
	eb.currentPage = 0
}

// FilterSignature limits the table to entities whose signature contains
// sig. A nil sig clears the filter.
func (eb *EntityBrowser) FilterSignature(sig *ecs.Signature) {
	eb.filterSignature = sig
	eb.currentPage = 0
}

func (eb *EntityBrowser) Select(id ecs.EntityID) {
	eb.selected = id
	eb.hasSelection = true
}

// Selected returns the selected entity id and whether there is one. Entity
// 0 is a valid id, so the flag is needed.
func (eb *EntityBrowser) Selected() (ecs.EntityID, bool) {
	return eb.selected, eb.hasSelection
}

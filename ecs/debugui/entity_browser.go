package debugui

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/avatars/ecs"
)

// EntityInfo is one row of the entity browser.
type EntityInfo struct {
	ID             ecs.EntityId
	ArchetypeID    uint32
	ComponentTypes []string
}

// EntityBrowser lists every entity in a storage with its component types.
type EntityBrowser struct {
	storage *ecs.Storage

	entities      []EntityInfo
	filterText    string
	sortColumn    int
	sortAscending bool
	pageSize      int
	page          int
	selected      ecs.EntityId
}

// NewEntityBrowser creates a browser over storage showing pageSize rows at
// a time.
func NewEntityBrowser(storage *ecs.Storage, pageSize int) *EntityBrowser {
	return &EntityBrowser{
		storage:       storage,
		sortAscending: true,
		pageSize:      max(pageSize, 1),
	}
}

// Selected returns the last entity clicked in the table, or zero.
func (eb *EntityBrowser) Selected() ecs.EntityId {
	return eb.selected
}

// Item wraps the browser as an ImguiItem.
func (eb *EntityBrowser) Item() ImguiItem {
	return ImguiItem{Render: eb.Render}
}

func (eb *EntityBrowser) Render() {
	if !imgui.BeginV("Entity Browser", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	eb.entities = collectEntities(eb.storage)
	sortEntities(eb.entities, eb.sortColumn, eb.sortAscending)

	imgui.InputTextWithHint("##search", "Search...", &eb.filterText, imgui.InputTextFlagsNone, nil)
	imgui.SameLine()
	if imgui.Button("Clear Filter") {
		eb.filterText = ""
	}

	rows := filterEntities(eb.entities, eb.filterText)
	pages := max((len(rows)+eb.pageSize-1)/eb.pageSize, 1)
	eb.page = min(eb.page, pages-1)

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("EntityTable", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Entity ID")
		imgui.TableSetupColumn("Archetype ID")
		imgui.TableSetupColumn("Components")
		imgui.TableHeadersRow()

		specs := imgui.TableGetSortSpecs()
		if specs.SpecsDirty() && specs.SpecsCount() > 0 {
			spec := specs.Specs()
			eb.sortColumn = int(spec.ColumnIndex())
			eb.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			sortEntities(rows, eb.sortColumn, eb.sortAscending)
			specs.SetSpecsDirty(false)
		}

		start := eb.page * eb.pageSize
		end := min(start+eb.pageSize, len(rows))
		for _, e := range rows[start:end] {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			if imgui.SelectableBoolV(fmt.Sprintf("%d", e.ID), eb.selected == e.ID, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				eb.selected = e.ID
			}
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("0x%X", e.ArchetypeID))
			imgui.TableNextColumn()
			imgui.Text(strings.Join(e.ComponentTypes, ", "))
		}
		imgui.EndTable()
	}

	imgui.Text(fmt.Sprintf("Page %d / %d (%d entities)", eb.page+1, pages, len(rows)))
	imgui.SameLine()
	if imgui.Button("Prev") && eb.page > 0 {
		eb.page--
	}
	imgui.SameLine()
	if imgui.Button("Next") && eb.page < pages-1 {
		eb.page++
	}

	imgui.End()
}

func collectEntities(storage *ecs.Storage) []EntityInfo {
	var entities []EntityInfo
	for a := range storage.Archetypes() {
		types := make([]string, len(a.Types()))
		for i, t := range a.Types() {
			types[i] = t.String()
		}
		for id := range a.Iter() {
			entities = append(entities, EntityInfo{
				ID:             id,
				ArchetypeID:    a.ID(),
				ComponentTypes: types,
			})
		}
	}
	return entities
}

func sortEntities(entities []EntityInfo, column int, ascending bool) {
	slices.SortStableFunc(entities, func(a, b EntityInfo) int {
		var c int
		switch column {
		case 1:
			c = cmp.Compare(a.ArchetypeID, b.ArchetypeID)
		case 2:
			c = cmp.Compare(strings.Join(a.ComponentTypes, ","), strings.Join(b.ComponentTypes, ","))
		}
		if c == 0 {
			c = cmp.Compare(a.ID, b.ID)
		}
		if !ascending {
			return -c
		}
		return c
	})
}

// filterEntities keeps rows whose ID, archetype or component names contain
// text, case-insensitively.
func filterEntities(entities []EntityInfo, text string) []EntityInfo {
	if text == "" {
		return entities
	}
	needle := strings.ToLower(text)

	filtered := make([]EntityInfo, 0, len(entities))
	for _, e := range entities {
		haystack := strings.ToLower(fmt.Sprintf("%d 0x%x %s", e.ID, e.ArchetypeID, strings.Join(e.ComponentTypes, " ")))
		if strings.Contains(haystack, needle) {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

package layout

import (
	"github.com/benoitkugler/textautosizer/html/autosizer"
	bo "github.com/benoitkugler/textautosizer/html/boxes"
)

// blockContainerLayout lays out blocks, list items, inline blocks,
// flex containers and table cells and captions.
// Table cells have their width already set by the table layout.
func (context *layoutContext) blockContainerLayout(box Box) {
	if !bo.IsTableCell(box) && !bo.IsLayoutView(box) {
		resolveWidth(box)
	}

	scope := autosizer.NewLayoutScope(context.autosizer, box)
	defer scope.End()

	if item, ok := box.(*bo.ListItemBox); ok {
		var marker Box
		if item.Marker != nil {
			marker = item.Marker
			item.Marker.NeedsLayout = false
		}
		if context.autosizer != nil {
			context.autosizer.InflateListItem(item, marker)
		}
	}

	for _, child := range box.Box().Children {
		context.layoutBox(child)
	}
}

package layout

import (
	pr "github.com/benoitkugler/textautosizer/css/properties"
	"github.com/benoitkugler/textautosizer/html/autosizer"
	bo "github.com/benoitkugler/textautosizer/html/boxes"
)

// tableLayout resolves the width of the table, then of its cells:
// cells (or columns) with a specified width use it, the others share
// the remaining width evenly.
func (context *layoutContext) tableLayout(table Box) {
	resolveWidth(table)

	var scope autosizer.LayoutScope
	if bo.IsFixedTableLayout(table) {
		scope = autosizer.NewLayoutScope(context.autosizer, table)
	} else {
		// the cells are inflated before the columns are sized
		scope = autosizer.NewTableLayoutScope(context.autosizer, table)
	}
	defer scope.End()

	tableWidth := table.Box().ContentLogicalWidth()
	for _, row := range bo.TableRows(table) {
		var (
			cells     []*bo.TableCellBox
			fixed     pr.Float
			autoCount int
		)
		for _, child := range row.Children {
			if cell, ok := child.(*bo.TableCellBox); ok {
				cells = append(cells, cell)
				if width := resolveOnePercentage(cell.StyleOrColLogicalWidth(), tableWidth); width >= 0 {
					fixed += width
				} else {
					autoCount++
				}
			}
		}
		var autoWidth pr.Float
		if autoCount != 0 && fixed < tableWidth {
			autoWidth = (tableWidth - fixed) / pr.Float(autoCount)
		}
		for _, cell := range cells {
			width := resolveOnePercentage(cell.StyleOrColLogicalWidth(), tableWidth)
			if width < 0 {
				width = autoWidth
			}
			cell.SetContentLogicalWidth(width)
		}
	}

	for _, child := range table.Box().Children {
		context.layoutBox(child)
	}
}

package boxes

import (
	pr "github.com/benoitkugler/textautosizer/css/properties"
)

// IsLayoutBlock returns true for block containers, see [BlockContainerT].
func IsLayoutBlock(box Box) bool { return BlockContainerT.IsInstance(box) }

// IsLayoutInline returns true for non atomic inline boxes.
func IsLayoutInline(box Box) bool { return InlineT.IsInstance(box) }

// IsLayoutView returns true for the root of the layout tree.
func IsLayoutView(box Box) bool { return ViewportT.IsInstance(box) }

// IsText returns true for text boxes, including line breaks.
func IsText(box Box) bool { return TextT.IsInstance(box) }

func IsListItem(box Box) bool { return ListItemT.IsInstance(box) }

func IsTableCell(box Box) bool { return TableCellT.IsInstance(box) }

func IsTable(box Box) bool { return AnyTableT.IsInstance(box) }

func IsFlexibleBox(box Box) bool { return FlexT.IsInstance(box) || InlineFlexT.IsInstance(box) }

// ChildrenInline returns true if the block container only has
// inline-level children (floats and positioned boxes excepted).
func ChildrenInline(box Box) bool {
	if !IsLayoutBlock(box) || IsTable(box) || IsFlexibleBox(box) {
		return false
	}
	for _, child := range box.Box().Children {
		if c := child.Box(); !c.IsInline() && c.IsInNormalFlow() && !IsText(child) {
			return false
		}
	}
	return true
}

func FirstChild(box Box) Box {
	if children := box.Box().Children; len(children) != 0 {
		return children[0]
	}
	return nil
}

func LastChild(box Box) Box {
	if children := box.Box().Children; len(children) != 0 {
		return children[len(children)-1]
	}
	return nil
}

func NextSibling(box Box) Box {
	b := box.Box()
	if b.Parent == nil {
		return nil
	}
	siblings := b.Parent.Box().Children
	if i := b.indexInParent + 1; i < len(siblings) {
		return siblings[i]
	}
	return nil
}

func PreviousSibling(box Box) Box {
	b := box.Box()
	if b.Parent == nil || b.indexInParent == 0 {
		return nil
	}
	return b.Parent.Box().Children[b.indexInParent-1]
}

// NextInPreOrder returns the next box in document order, not leaving the
// subtree of [stayWithin] (which may be nil).
func NextInPreOrder(box, stayWithin Box) Box {
	if child := FirstChild(box); child != nil {
		return child
	}
	return NextInPreOrderAfterChildren(box, stayWithin)
}

// NextInPreOrderAfterChildren is like [NextInPreOrder] but skips the
// descendants of [box].
func NextInPreOrderAfterChildren(box, stayWithin Box) Box {
	for current := box; current != nil && current != stayWithin; current = current.Box().Parent {
		if next := NextSibling(current); next != nil {
			return next
		}
	}
	return nil
}

// ContainingBlock returns the block establishing the containing block
// of [box], or nil for the root of the tree.
func ContainingBlock(box Box) Box {
	b := box.Box()
	if b.Parent == nil {
		return nil
	}
	switch {
	case b.Style.Position == pr.PositionFixed:
		root := b.Parent
		for root.Box().Parent != nil {
			root = root.Box().Parent
		}
		return root
	case b.Style.Position == pr.PositionAbsolute:
		for parent := b.Parent; parent != nil; parent = parent.Box().Parent {
			if IsLayoutView(parent) || (IsLayoutBlock(parent) && parent.Box().Style.Position != pr.PositionStatic) {
				return parent
			}
		}
		return nil
	default:
		for parent := b.Parent; parent != nil; parent = parent.Box().Parent {
			if IsLayoutBlock(parent) {
				return parent
			}
		}
		return nil
	}
}

// IsDescendantOf returns true if [ancestor] is a strict ancestor of [box].
func IsDescendantOf(box, ancestor Box) bool {
	for parent := box.Box().Parent; parent != nil; parent = parent.Box().Parent {
		if parent == ancestor {
			return true
		}
	}
	return false
}

// TableOf returns the table containing [cell], or nil.
func TableOf(cell Box) Box {
	for parent := cell.Box().Parent; parent != nil; parent = parent.Box().Parent {
		if IsTable(parent) {
			return parent
		}
	}
	return nil
}

// IsFixedTableLayout returns true for tables with 'table-layout: fixed'
// and a specified width.
func IsFixedTableLayout(table Box) bool {
	style := table.Box().Style
	return style.TableLayout == pr.TableLayoutFixed && style.LogicalWidth().IsSpecified()
}

// TableColumns returns the column boxes of [table], expanding the
// column groups.
func TableColumns(table Box) []*TableColumnBox {
	var out []*TableColumnBox
	for _, child := range table.Box().Children {
		switch child := child.(type) {
		case *TableColumnBox:
			out = append(out, child)
		case *TableColumnGroupBox:
			for _, col := range child.Children {
				if col, ok := col.(*TableColumnBox); ok {
					out = append(out, col)
				}
			}
		}
	}
	return out
}

// TableRows returns the rows of [table], in document order.
func TableRows(table Box) []*TableRowBox {
	var out []*TableRowBox
	for _, child := range table.Box().Children {
		switch child := child.(type) {
		case *TableRowBox:
			out = append(out, child)
		case *TableRowGroupBox:
			for _, row := range child.Children {
				if row, ok := row.(*TableRowBox); ok {
					out = append(out, row)
				}
			}
		}
	}
	return out
}

// ColumnIndex returns the index of the cell in its row.
func (b *TableCellBox) ColumnIndex() int {
	index := 0
	for sibling := PreviousSibling(b); sibling != nil; sibling = PreviousSibling(sibling) {
		if IsTableCell(sibling) {
			index++
		}
	}
	return index
}

// StyleOrColLogicalWidth returns the specified width of the cell,
// or the one of its column if the cell has none.
func (b *TableCellBox) StyleOrColLogicalWidth() pr.DimOrS {
	width := b.Style.LogicalWidth()
	if width.IsSpecified() {
		return width
	}
	table := TableOf(b)
	if table == nil {
		return width
	}
	if cols, index := TableColumns(table), b.ColumnIndex(); index < len(cols) {
		if colWidth := cols[index].Style.LogicalWidth(); colWidth.IsSpecified() {
			return colWidth
		}
	}
	return width
}

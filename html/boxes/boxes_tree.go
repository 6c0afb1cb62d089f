package boxes

// BoxType identifies the concrete type of a box, or an abstract
// category of boxes, see [BoxType.IsInstance].
type BoxType uint8

const (
	invalidType BoxType = iota

	// concrete types
	ViewportT
	BlockT
	ListItemT
	ListMarkerT
	InlineBlockT
	FlexT
	InlineFlexT
	TableT
	InlineTableT
	TableRowGroupT
	TableRowT
	TableColumnGroupT
	TableColumnT
	TableCellT
	TableCaptionT
	InlineT
	TextT
	ReplacedT

	// abstract types

	// BlockContainerT matches the boxes laying out their content
	// in a block formatting context (including tables and flex boxes).
	BlockContainerT
	// AnyTableT matches block and inline tables.
	AnyTableT
	// ParentT matches the boxes which may have children.
	ParentT
)

func (t BoxType) String() string {
	switch t {
	case ViewportT:
		return "ViewportBox"
	case BlockT:
		return "BlockBox"
	case ListItemT:
		return "ListItemBox"
	case ListMarkerT:
		return "ListMarkerBox"
	case InlineBlockT:
		return "InlineBlockBox"
	case FlexT:
		return "FlexBox"
	case InlineFlexT:
		return "InlineFlexBox"
	case TableT:
		return "TableBox"
	case InlineTableT:
		return "InlineTableBox"
	case TableRowGroupT:
		return "TableRowGroupBox"
	case TableRowT:
		return "TableRowBox"
	case TableColumnGroupT:
		return "TableColumnGroupBox"
	case TableColumnT:
		return "TableColumnBox"
	case TableCellT:
		return "TableCellBox"
	case TableCaptionT:
		return "TableCaptionBox"
	case InlineT:
		return "InlineBox"
	case TextT:
		return "TextBox"
	case ReplacedT:
		return "ReplacedBox"
	case BlockContainerT:
		return "BlockContainer"
	case AnyTableT:
		return "AnyTable"
	case ParentT:
		return "Parent"
	default:
		return "<invalid box type>"
	}
}

// IsInstance returns true if [box] is of type [t], or belongs to
// the category [t].
func (t BoxType) IsInstance(box Box) bool {
	if box == nil {
		return false
	}
	bt := box.Type()
	switch t {
	case BlockContainerT:
		switch bt {
		case ViewportT, BlockT, ListItemT, InlineBlockT, FlexT, InlineFlexT,
			TableT, InlineTableT, TableCellT, TableCaptionT:
			return true
		}
		return false
	case AnyTableT:
		return bt == TableT || bt == InlineTableT
	case ParentT:
		return bt != TextT && bt != ReplacedT && bt != ListMarkerT && bt != TableColumnT
	default:
		return bt == t
	}
}

func (*ViewportBox) Type() BoxType         { return ViewportT }
func (*BlockBox) Type() BoxType            { return BlockT }
func (*ListItemBox) Type() BoxType         { return ListItemT }
func (*ListMarkerBox) Type() BoxType       { return ListMarkerT }
func (*InlineBlockBox) Type() BoxType      { return InlineBlockT }
func (*FlexBox) Type() BoxType             { return FlexT }
func (*InlineFlexBox) Type() BoxType       { return InlineFlexT }
func (*TableBox) Type() BoxType            { return TableT }
func (*InlineTableBox) Type() BoxType      { return InlineTableT }
func (*TableRowGroupBox) Type() BoxType    { return TableRowGroupT }
func (*TableRowBox) Type() BoxType         { return TableRowT }
func (*TableColumnGroupBox) Type() BoxType { return TableColumnGroupT }
func (*TableColumnBox) Type() BoxType      { return TableColumnT }
func (*TableCellBox) Type() BoxType        { return TableCellT }
func (*TableCaptionBox) Type() BoxType     { return TableCaptionT }
func (*InlineBox) Type() BoxType           { return InlineT }
func (*TextBox) Type() BoxType             { return TextT }
func (*ReplacedBox) Type() BoxType         { return ReplacedT }

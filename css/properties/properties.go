package properties

// Display is the computed value of the 'display' property.
type Display string

const (
	DisplayInline           Display = "inline"
	DisplayBlock            Display = "block"
	DisplayListItem         Display = "list-item"
	DisplayInlineBlock      Display = "inline-block"
	DisplayTable            Display = "table"
	DisplayInlineTable      Display = "inline-table"
	DisplayTableRowGroup    Display = "table-row-group"
	DisplayTableHeaderGroup Display = "table-header-group"
	DisplayTableFooterGroup Display = "table-footer-group"
	DisplayTableRow         Display = "table-row"
	DisplayTableColumnGroup Display = "table-column-group"
	DisplayTableColumn      Display = "table-column"
	DisplayTableCell        Display = "table-cell"
	DisplayTableCaption     Display = "table-caption"
	DisplayFlex             Display = "flex"
	DisplayInlineFlex       Display = "inline-flex"
	DisplayGrid             Display = "grid"
	DisplayInlineGrid       Display = "inline-grid"
	DisplayNone             Display = "none"
)

// the order is significant: it is used to pack styles
var displays = [...]Display{
	DisplayInline, DisplayBlock, DisplayListItem, DisplayInlineBlock,
	DisplayTable, DisplayInlineTable, DisplayTableRowGroup, DisplayTableHeaderGroup,
	DisplayTableFooterGroup, DisplayTableRow, DisplayTableColumnGroup, DisplayTableColumn,
	DisplayTableCell, DisplayTableCaption, DisplayFlex, DisplayInlineFlex,
	DisplayGrid, DisplayInlineGrid, DisplayNone,
}

// IsInlineLevel returns true for displays generating inline-level boxes.
func (d Display) IsInlineLevel() bool {
	switch d {
	case DisplayInline, DisplayInlineBlock, DisplayInlineTable, DisplayInlineFlex, DisplayInlineGrid:
		return true
	}
	return false
}

// IsReplacedType returns true for the inline-level displays
// behaving as atomic inlines (inline-block and alike).
func (d Display) IsReplacedType() bool {
	switch d {
	case DisplayInlineBlock, DisplayInlineTable, DisplayInlineFlex, DisplayInlineGrid:
		return true
	}
	return false
}

// IsValid returns true for the supported displays.
func (d Display) IsValid() bool {
	for _, v := range displays {
		if v == d {
			return true
		}
	}
	return false
}

// Code returns a small integer identifying the display.
func (d Display) Code() uint32 {
	for i, v := range displays {
		if v == d {
			return uint32(i)
		}
	}
	return 0
}

// Position is the computed value of the 'position' property.
type Position string

const (
	PositionStatic   Position = "static"
	PositionRelative Position = "relative"
	PositionAbsolute Position = "absolute"
	PositionFixed    Position = "fixed"
	PositionSticky   Position = "sticky"
)

// Code returns a small integer identifying the position.
func (p Position) Code() uint32 {
	switch p {
	case PositionRelative:
		return 1
	case PositionAbsolute:
		return 2
	case PositionFixed:
		return 3
	case PositionSticky:
		return 4
	default:
		return 0
	}
}

// IsOutOfFlow returns true for absolutely positioned boxes.
func (p Position) IsOutOfFlow() bool { return p == PositionAbsolute || p == PositionFixed }

// Floating is the computed value of the 'float' property.
type Floating string

const (
	FloatNone  Floating = "none"
	FloatLeft  Floating = "left"
	FloatRight Floating = "right"
)

// Code returns a small integer identifying the float.
func (f Floating) Code() uint32 {
	switch f {
	case FloatLeft:
		return 1
	case FloatRight:
		return 2
	default:
		return 0
	}
}

// Direction is the computed value of the 'direction' property.
type Direction string

const (
	DirectionLtr Direction = "ltr"
	DirectionRtl Direction = "rtl"
)

// WritingMode is the computed value of the 'writing-mode' property.
type WritingMode string

const (
	HorizontalTb WritingMode = "horizontal-tb"
	VerticalRl   WritingMode = "vertical-rl"
	VerticalLr   WritingMode = "vertical-lr"
)

func (w WritingMode) IsHorizontal() bool { return w != VerticalRl && w != VerticalLr }

// Overflow is the computed value of the 'overflow-x' and 'overflow-y' properties.
type Overflow string

const (
	OverflowVisible Overflow = "visible"
	OverflowHidden  Overflow = "hidden"
	OverflowClip    Overflow = "clip"
	OverflowScroll  Overflow = "scroll"
	OverflowAuto    Overflow = "auto"
)

// IsScrollable returns true for values letting the content scroll.
func (o Overflow) IsScrollable() bool { return o == OverflowScroll || o == OverflowAuto }

// WhiteSpace is the computed value of the 'white-space' property.
type WhiteSpace string

const (
	WhiteSpaceNormal      WhiteSpace = "normal"
	WhiteSpacePre         WhiteSpace = "pre"
	WhiteSpaceNowrap      WhiteSpace = "nowrap"
	WhiteSpacePreWrap     WhiteSpace = "pre-wrap"
	WhiteSpacePreLine     WhiteSpace = "pre-line"
	WhiteSpaceBreakSpaces WhiteSpace = "break-spaces"
)

// AutoWrap returns true if lines may be broken at soft wrap opportunities.
func (w WhiteSpace) AutoWrap() bool { return w != WhiteSpacePre && w != WhiteSpaceNowrap }

// UserModify is the computed value of the '-webkit-user-modify' property,
// also set by the 'contenteditable' attribute.
type UserModify string

const (
	ReadOnly               UserModify = "read-only"
	ReadWrite              UserModify = "read-write"
	ReadWritePlaintextOnly UserModify = "read-write-plaintext-only"
)

// TableLayout is the computed value of the 'table-layout' property.
type TableLayout string

const (
	TableLayoutAuto  TableLayout = "auto"
	TableLayoutFixed TableLayout = "fixed"
)

// Style stores the computed values used by the layout and the autosizer.
// Lengths are always resolved to pixels or percentages.
//
// Styles may be shared between boxes: use [Style.Copy] before
// mutating one.
type Style struct {
	Display     Display
	Position    Position
	Float       Floating
	Direction   Direction
	WritingMode WritingMode
	OverflowX   Overflow
	OverflowY   Overflow
	WhiteSpace  WhiteSpace
	UserModify  UserModify
	TableLayout TableLayout

	Width     DimOrS
	Height    DimOrS
	MaxHeight DimOrS

	PaddingLeft, PaddingRight Dimension

	// FontSize is the specified font size, in pixels,
	// before any autosizing.
	FontSize Float

	// TextSizeAdjust is the autosizing multiplier set by the autosizer,
	// 1 by default.
	TextSizeAdjust Float
}

// InitialStyle returns a new style with the initial values of the properties.
func InitialStyle() *Style {
	return &Style{
		Display:        DisplayInline,
		Position:       PositionStatic,
		Float:          FloatNone,
		Direction:      DirectionLtr,
		WritingMode:    HorizontalTb,
		OverflowX:      OverflowVisible,
		OverflowY:      OverflowVisible,
		WhiteSpace:     WhiteSpaceNormal,
		UserModify:     ReadOnly,
		TableLayout:    TableLayoutAuto,
		Width:          SToV("auto"),
		Height:         SToV("auto"),
		MaxHeight:      SToV("none"),
		PaddingLeft:    ZeroPixels,
		PaddingRight:   ZeroPixels,
		FontSize:       DefaultFontSize,
		TextSizeAdjust: 1,
	}
}

// InheritFrom returns a new style for a child of [parent]:
// inherited properties are copied, the others take their initial value.
func InheritFrom(parent *Style) *Style {
	out := InitialStyle()
	if parent == nil {
		return out
	}
	out.Direction = parent.Direction
	out.WritingMode = parent.WritingMode
	out.WhiteSpace = parent.WhiteSpace
	out.UserModify = parent.UserModify
	out.FontSize = parent.FontSize
	return out
}

// Copy returns a shallow copy, safe to mutate.
func (s *Style) Copy() *Style {
	out := *s
	return &out
}

// IsFloating returns true for left or right floats.
func (s *Style) IsFloating() bool { return s.Float != FloatNone && s.Float != "" }

// LogicalWidth returns the specified 'width' in horizontal writing modes,
// and the 'height' otherwise.
func (s *Style) LogicalWidth() DimOrS {
	if s.WritingMode.IsHorizontal() {
		return s.Width
	}
	return s.Height
}

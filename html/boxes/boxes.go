// Package boxes defines the layout tree consumed by the layout
// and the text autosizer.
//
// Boxes are created by [BuildFormattingStructure] from the parsed HTML
// and its computed styles. Their content widths are filled by the layout.
package boxes

import (
	"fmt"

	pr "github.com/benoitkugler/textautosizer/css/properties"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Box is the common interface of all the boxes of the layout tree.
type Box interface {
	Box() *BoxFields
	Type() BoxType
}

// BoxFields stores the data shared by all the boxes.
type BoxFields struct {
	// Element is the node generating the box. It is nil for
	// anonymous boxes, and a text node for text boxes.
	Element *html.Node

	// Style is shared with the cascade: it must be cloned before
	// being modified (see [BoxFields.SetStyle]).
	Style *pr.Style

	Parent   Box
	Children []Box

	// Used values, set by the layout.
	Width, Height pr.Float

	// NeedsLayout is set when the box is created or when its style
	// changes, and cleared by the layout.
	NeedsLayout bool

	indexInParent int
}

func newBoxFields(style *pr.Style, element *html.Node, children []Box) BoxFields {
	return BoxFields{Style: style, Element: element, Children: children, NeedsLayout: true}
}

func (b *BoxFields) Box() *BoxFields { return b }

// SetChildren replaces the children of [box], updating their parent link.
func SetChildren(box Box, children []Box) {
	fields := box.Box()
	fields.Children = children
	for i, child := range children {
		child.Box().Parent = box
		child.Box().indexInParent = i
	}
}

// ElementTag returns the tag of the generating element,
// or an empty string for anonymous boxes.
func (b *BoxFields) ElementTag() string {
	if el := b.GeneratingElement(); el != nil {
		return el.Data
	}
	return ""
}

// GeneratingElement returns the element generating the box,
// or nil for anonymous and text boxes.
func (b *BoxFields) GeneratingElement() *html.Node {
	if b.Element == nil || b.Element.Type != html.ElementNode {
		return nil
	}
	return b.Element
}

func (b *BoxFields) hasTag(tag atom.Atom) bool {
	el := b.GeneratingElement()
	return el != nil && el.DataAtom == tag
}

// IsDocumentElement returns true for the box of the <html> element.
func (b *BoxFields) IsDocumentElement() bool {
	el := b.GeneratingElement()
	return el != nil && (el.Parent == nil || el.Parent.Type == html.DocumentNode)
}

// IsBody returns true for the box of the <body> element.
func (b *BoxFields) IsBody() bool { return b.hasTag(atom.Body) }

// IsTextArea returns true for the box of a <textarea> element.
func (b *BoxFields) IsTextArea() bool { return b.hasTag(atom.Textarea) }

// IsNonTextAreaFormControl returns true for form controls
// other than <textarea>.
func (b *BoxFields) IsNonTextAreaFormControl() bool {
	el := b.GeneratingElement()
	if el == nil {
		return false
	}
	switch el.DataAtom {
	case atom.Input, atom.Button, atom.Select, atom.Fieldset, atom.Output, atom.Keygen, atom.Object:
		return true
	}
	return false
}

// IsLink returns true for the box of a <a href> element.
func (b *BoxFields) IsLink() bool {
	el := b.GeneratingElement()
	if el == nil || (el.DataAtom != atom.A && el.DataAtom != atom.Area) {
		return false
	}
	for _, attr := range el.Attr {
		if attr.Key == "href" {
			return true
		}
	}
	return false
}

func (b *BoxFields) IsFloating() bool { return b.Style.IsFloating() }

func (b *BoxFields) IsOutOfFlowPositioned() bool { return b.Style.Position.IsOutOfFlow() }

func (b *BoxFields) IsInNormalFlow() bool { return !b.IsFloating() && !b.IsOutOfFlowPositioned() }

// IsInline returns true for inline-level boxes, including atomic inlines
// like inline blocks.
func (b *BoxFields) IsInline() bool { return b.Style.Display.IsInlineLevel() }

func (b *BoxFields) IsHorizontalWritingMode() bool { return b.Style.WritingMode.IsHorizontal() }

// ContentLogicalWidth returns the content width in the inline direction.
func (b *BoxFields) ContentLogicalWidth() pr.Float {
	if b.IsHorizontalWritingMode() {
		return b.Width
	}
	return b.Height
}

// SetContentLogicalWidth is the setter for [ContentLogicalWidth].
func (b *BoxFields) SetContentLogicalWidth(w pr.Float) {
	if b.IsHorizontalWritingMode() {
		b.Width = w
	} else {
		b.Height = w
	}
}

func (b *BoxFields) String() string {
	return fmt.Sprintf("<%s>", b.ElementTag())
}

type BlockBox struct {
	BoxFields
	// IsAnonymous is true for blocks wrapping inline content
	// next to block-level siblings.
	IsAnonymous bool
}

// ViewportBox is the root of the layout tree, containing the box
// of the root element.
type ViewportBox struct {
	BlockBox
}

type ListItemBox struct {
	BlockBox
	// Marker is nil for list items with 'list-style: none'.
	Marker *ListMarkerBox
}

// ListMarkerBox is the marker of a list item. It is not part of the
// children of the item.
type ListMarkerBox struct {
	BoxFields
	Text string
}

type InlineBlockBox struct {
	BoxFields
}

type FlexBox struct {
	BoxFields
}

type InlineFlexBox struct {
	BoxFields
}

type TableBox struct {
	BoxFields
}

type InlineTableBox struct {
	TableBox
}

type TableRowGroupBox struct {
	BoxFields
}

type TableRowBox struct {
	BoxFields
}

type TableColumnGroupBox struct {
	BoxFields
}

type TableColumnBox struct {
	BoxFields
}

type TableCellBox struct {
	BoxFields
}

type TableCaptionBox struct {
	BlockBox
}

type InlineBox struct {
	BoxFields
}

type TextBox struct {
	BoxFields
	Text string
	// LineBreak is true for <br> elements.
	LineBreak bool
}

// ReplacedBox is used for images and other embedded content.
type ReplacedBox struct {
	BoxFields
}

func NewViewportBox(style *pr.Style, children []Box) *ViewportBox {
	out := ViewportBox{BlockBox: BlockBox{BoxFields: newBoxFields(style, nil, nil)}}
	SetChildren(&out, children)
	return &out
}

func NewBlockBox(style *pr.Style, element *html.Node, children []Box) *BlockBox {
	out := BlockBox{BoxFields: newBoxFields(style, element, nil)}
	SetChildren(&out, children)
	return &out
}

// BlockBoxAnonymousFrom returns a block inheriting the style of [parent].
func BlockBoxAnonymousFrom(parent Box, children []Box) *BlockBox {
	style := pr.InheritFrom(parent.Box().Style)
	style.Display = pr.DisplayBlock
	out := NewBlockBox(style, nil, children)
	out.IsAnonymous = true
	return out
}

func NewListItemBox(style *pr.Style, element *html.Node, children []Box, marker string) *ListItemBox {
	out := ListItemBox{BlockBox: BlockBox{BoxFields: newBoxFields(style, element, nil)}}
	SetChildren(&out, children)
	if marker != "" {
		markerStyle := pr.InheritFrom(style)
		out.Marker = &ListMarkerBox{BoxFields: newBoxFields(markerStyle, nil, nil), Text: marker}
		out.Marker.Parent = &out
	}
	return &out
}

func NewInlineBlockBox(style *pr.Style, element *html.Node, children []Box) *InlineBlockBox {
	out := InlineBlockBox{BoxFields: newBoxFields(style, element, nil)}
	SetChildren(&out, children)
	return &out
}

func NewFlexBox(style *pr.Style, element *html.Node, children []Box) *FlexBox {
	out := FlexBox{BoxFields: newBoxFields(style, element, nil)}
	SetChildren(&out, children)
	return &out
}

func NewInlineFlexBox(style *pr.Style, element *html.Node, children []Box) *InlineFlexBox {
	out := InlineFlexBox{BoxFields: newBoxFields(style, element, nil)}
	SetChildren(&out, children)
	return &out
}

func NewTableBox(style *pr.Style, element *html.Node, children []Box) *TableBox {
	out := TableBox{BoxFields: newBoxFields(style, element, nil)}
	SetChildren(&out, children)
	return &out
}

func NewInlineTableBox(style *pr.Style, element *html.Node, children []Box) *InlineTableBox {
	out := InlineTableBox{TableBox: TableBox{BoxFields: newBoxFields(style, element, nil)}}
	SetChildren(&out, children)
	return &out
}

func NewTableRowGroupBox(style *pr.Style, element *html.Node, children []Box) *TableRowGroupBox {
	out := TableRowGroupBox{BoxFields: newBoxFields(style, element, nil)}
	SetChildren(&out, children)
	return &out
}

func NewTableRowBox(style *pr.Style, element *html.Node, children []Box) *TableRowBox {
	out := TableRowBox{BoxFields: newBoxFields(style, element, nil)}
	SetChildren(&out, children)
	return &out
}

func NewTableColumnGroupBox(style *pr.Style, element *html.Node, children []Box) *TableColumnGroupBox {
	out := TableColumnGroupBox{BoxFields: newBoxFields(style, element, nil)}
	SetChildren(&out, children)
	return &out
}

func NewTableColumnBox(style *pr.Style, element *html.Node) *TableColumnBox {
	out := TableColumnBox{BoxFields: newBoxFields(style, element, nil)}
	return &out
}

func NewTableCellBox(style *pr.Style, element *html.Node, children []Box) *TableCellBox {
	out := TableCellBox{BoxFields: newBoxFields(style, element, nil)}
	SetChildren(&out, children)
	return &out
}

func NewTableCaptionBox(style *pr.Style, element *html.Node, children []Box) *TableCaptionBox {
	out := TableCaptionBox{BlockBox: BlockBox{BoxFields: newBoxFields(style, element, nil)}}
	SetChildren(&out, children)
	return &out
}

func NewInlineBox(style *pr.Style, element *html.Node, children []Box) *InlineBox {
	out := InlineBox{BoxFields: newBoxFields(style, element, nil)}
	SetChildren(&out, children)
	return &out
}

// NewTextBox panics if [text] is empty.
func NewTextBox(style *pr.Style, node *html.Node, text string) *TextBox {
	if len(text) == 0 {
		panic("NewTextBox called with empty text")
	}
	out := TextBox{BoxFields: newBoxFields(style, node, nil), Text: text}
	return &out
}

// NewLineBreakBox returns the text box of a <br> element.
func NewLineBreakBox(style *pr.Style, element *html.Node) *TextBox {
	out := NewTextBox(style, element, "\n")
	out.LineBreak = true
	return out
}

func NewReplacedBox(style *pr.Style, element *html.Node) *ReplacedBox {
	out := ReplacedBox{BoxFields: newBoxFields(style, element, nil)}
	return &out
}

package boxes

import (
	"strconv"
	"strings"

	pr "github.com/benoitkugler/textautosizer/css/properties"
	"github.com/benoitkugler/textautosizer/html/tree"
	"github.com/benoitkugler/textautosizer/logger"
	"github.com/benoitkugler/textautosizer/utils"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

type handlerFunction = func(element *html.Node, style *pr.Style) Box

// htmlHandlers map a tag to a callback creating the box of elements
// needing special care.
var htmlHandlers = map[atom.Atom]handlerFunction{
	atom.Br:     handleBr,
	atom.Img:    handleReplaced,
	atom.Video:  handleReplaced,
	atom.Canvas: handleReplaced,
	atom.Iframe: handleReplaced,
	atom.Embed:  handleReplaced,
	atom.Svg:    handleReplaced,
}

func handleBr(element *html.Node, style *pr.Style) Box {
	return NewLineBreakBox(style, element)
}

func handleReplaced(element *html.Node, style *pr.Style) Box {
	return NewReplacedBox(style, element)
}

// BuildFormattingStructure builds the layout tree of the document
// rooted at [root], using the computed [styles].
// The returned viewport box is the root of the tree, with the
// box of [root] as only child.
func BuildFormattingStructure(root *utils.HTMLNode, styles *tree.StyleFor) *ViewportBox {
	logger.ProgressLogger.Printf("Step 3 - Creating formatting structure")

	rootStyle := styles.Get((*html.Node)(root))
	viewportStyle := pr.InheritFrom(nil)
	viewportStyle.Display = pr.DisplayBlock
	if rootStyle != nil {
		viewportStyle.WritingMode = rootStyle.WritingMode
		viewportStyle.Direction = rootStyle.Direction
	}

	var children []Box
	if box := elementToBox((*html.Node)(root), styles); box != nil {
		children = append(children, box)
	}
	return NewViewportBox(viewportStyle, children)
}

// elementToBox returns the box of [element] and its descendants,
// or nil for elements with 'display: none'.
func elementToBox(element *html.Node, styles *tree.StyleFor) Box {
	style := styles.Get(element)
	if style == nil || style.Display == pr.DisplayNone {
		return nil
	}
	if handler, ok := htmlHandlers[element.DataAtom]; ok {
		return handler(element, style)
	}

	var (
		children  []Box
		textStyle *pr.Style // shared by the text children
	)
	for child := element.FirstChild; child != nil; child = child.NextSibling {
		switch child.Type {
		case html.ElementNode:
			if box := elementToBox(child, styles); box != nil {
				children = append(children, box)
			}
		case html.TextNode:
			text := collapseWhiteSpace(child.Data, style.WhiteSpace)
			if text == "" {
				continue
			}
			if textStyle == nil {
				textStyle = pr.InheritFrom(style)
			}
			children = append(children, NewTextBox(textStyle, child, text))
		}
	}

	switch style.Display {
	case pr.DisplayBlock, pr.DisplayGrid:
		return NewBlockBox(style, element, wrapInlineRuns(style, children))
	case pr.DisplayListItem:
		return NewListItemBox(style, element, wrapInlineRuns(style, children), listMarker(element))
	case pr.DisplayInlineBlock, pr.DisplayInlineGrid:
		return NewInlineBlockBox(style, element, wrapInlineRuns(style, children))
	case pr.DisplayFlex:
		return NewFlexBox(style, element, children)
	case pr.DisplayInlineFlex:
		return NewInlineFlexBox(style, element, children)
	case pr.DisplayTable:
		return NewTableBox(style, element, tableChildren(children))
	case pr.DisplayInlineTable:
		return NewInlineTableBox(style, element, tableChildren(children))
	case pr.DisplayTableRowGroup, pr.DisplayTableHeaderGroup, pr.DisplayTableFooterGroup:
		return NewTableRowGroupBox(style, element, onlyType(children, TableRowT))
	case pr.DisplayTableRow:
		return NewTableRowBox(style, element, onlyType(children, TableCellT))
	case pr.DisplayTableColumnGroup:
		return NewTableColumnGroupBox(style, element, onlyType(children, TableColumnT))
	case pr.DisplayTableColumn:
		return NewTableColumnBox(style, element)
	case pr.DisplayTableCell:
		return NewTableCellBox(style, element, wrapInlineRuns(style, children))
	case pr.DisplayTableCaption:
		return NewTableCaptionBox(style, element, wrapInlineRuns(style, children))
	default:
		return NewInlineBox(style, element, children)
	}
}

// collapseWhiteSpace returns an empty string for text which
// does not generate any box.
func collapseWhiteSpace(text string, whiteSpace pr.WhiteSpace) string {
	switch whiteSpace {
	case pr.WhiteSpacePre, pr.WhiteSpacePreWrap, pr.WhiteSpaceBreakSpaces:
		return text
	}
	if strings.TrimSpace(text) == "" {
		return ""
	}
	return strings.Join(strings.Fields(text), " ")
}

// wrapInlineRuns wraps consecutive inline-level children in anonymous
// blocks when the container also has block-level children.
// Floats and positioned boxes do not break the runs.
func wrapInlineRuns(parentStyle *pr.Style, children []Box) []Box {
	hasBlock := false
	for _, child := range children {
		if isBlockLevel(child) {
			hasBlock = true
			break
		}
	}
	if !hasBlock {
		return children
	}

	var (
		out []Box
		run []Box
	)
	flush := func() {
		if len(run) == 0 {
			return
		}
		if !hasInFlowInline(run) {
			// a run of floats and positioned boxes only
			out = append(out, run...)
			run = nil
			return
		}
		style := pr.InheritFrom(parentStyle)
		style.Display = pr.DisplayBlock
		block := NewBlockBox(style, nil, run)
		block.IsAnonymous = true
		out = append(out, block)
		run = nil
	}
	for _, child := range children {
		if isBlockLevel(child) {
			flush()
			out = append(out, child)
		} else {
			run = append(run, child)
		}
	}
	flush()
	return out
}

func hasInFlowInline(run []Box) bool {
	for _, box := range run {
		if IsText(box) || box.Box().IsInNormalFlow() {
			return true
		}
	}
	return false
}

func isBlockLevel(box Box) bool {
	b := box.Box()
	return b.IsInNormalFlow() && !IsText(box) && !b.IsInline()
}

// tableChildren drops the children which are not table parts.
func tableChildren(children []Box) []Box {
	out := children[:0]
	for _, child := range children {
		switch child.Type() {
		case TableRowGroupT, TableRowT, TableColumnGroupT, TableColumnT, TableCaptionT:
			out = append(out, child)
		}
	}
	return out
}

func onlyType(children []Box, type_ BoxType) []Box {
	out := children[:0]
	for _, child := range children {
		if type_.IsInstance(child) {
			out = append(out, child)
		}
	}
	return out
}

// listMarker returns the marker text of the <li> [element]:
// a decimal number inside <ol>, a bullet otherwise.
func listMarker(element *html.Node) string {
	parent := element.Parent
	if parent == nil || parent.DataAtom != atom.Ol {
		return "•"
	}
	index := 1
	if start, err := strconv.Atoi((*utils.HTMLNode)(parent).Get("start")); err == nil {
		index = start
	}
	for sibling := element.PrevSibling; sibling != nil; sibling = sibling.PrevSibling {
		if sibling.Type == html.ElementNode && sibling.DataAtom == atom.Li {
			index++
		}
	}
	return strconv.Itoa(index) + "."
}

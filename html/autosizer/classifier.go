package autosizer

import (
	"strings"

	pr "github.com/benoitkugler/textautosizer/css/properties"
	bo "github.com/benoitkugler/textautosizer/html/boxes"
	"golang.org/x/text/unicode/norm"
)

// BlockFlags are the structural properties of a block, relevant
// to autosizing.
type BlockFlags uint8

const (
	// PotentialRoot is set for blocks which may anchor a cluster.
	PotentialRoot BlockFlags = 1 << iota
	// Independent is set for clusters which do not inherit the multiplier
	// of their parent, like floats or table cells.
	Independent
	// ExplicitWidth is set for blocks with a specified width.
	ExplicitWidth
	// Suppressing is set for blocks whose text must not be autosized.
	Suppressing
	// WiderOrNarrower is set by the resolver on clusters whose width
	// differs from the text container of their parent.
	WiderOrNarrower

	allFlags = PotentialRoot | Independent | ExplicitWidth | Suppressing
)

func (f BlockFlags) String() string {
	var parts []string
	for _, flag := range [...]struct {
		flag BlockFlags
		name string
	}{
		{PotentialRoot, "root"},
		{Independent, "independent"},
		{ExplicitWidth, "explicit-width"},
		{Suppressing, "suppressing"},
		{WiderOrNarrower, "wider-or-narrower"},
	} {
		if f&flag.flag != 0 {
			parts = append(parts, flag.name)
		}
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// ClassifyBlock returns the flags of [box] restricted to [mask].
// It returns 0 for boxes which are not potential cluster roots.
func ClassifyBlock(box Box, mask BlockFlags) BlockFlags {
	if !bo.IsLayoutBlock(box) || !isPotentialClusterRoot(box) {
		return 0
	}
	var flags BlockFlags
	if mask&PotentialRoot != 0 {
		flags |= PotentialRoot
	}
	if mask&Independent != 0 && (isIndependentDescendant(box) || bo.IsTable(box)) {
		flags |= Independent
	}
	if mask&ExplicitWidth != 0 && hasExplicitWidth(box) {
		flags |= ExplicitWidth
	}
	if mask&Suppressing != 0 && blockSuppressesAutosizing(box) {
		flags |= Suppressing
	}
	return flags
}

// isPotentialClusterRoot returns true for the smallest units for which
// autosizing may be enabled or disabled:
//   - blocks with children, since an empty cluster is never inflated
//   - not inline, since different multipliers on one line look terrible;
//     inline-blocks and alike are accepted since they often contain
//     entire columns of text
//   - not list items, so that the items of a list look consistent,
//     unless they are floating or positioned
func isPotentialClusterRoot(box Box) bool {
	b := box.Box()
	if el := b.GeneratingElement(); el != nil && el.FirstChild == nil {
		return false
	}
	if !bo.IsLayoutBlock(box) {
		return false
	}
	if b.IsInline() && !b.Style.Display.IsReplacedType() {
		return false
	}
	if bo.IsListItem(box) {
		return b.IsFloating() || b.IsOutOfFlowPositioned()
	}
	return true
}

func isIndependentDescendant(box Box) bool {
	b := box.Box()
	containingBlock := bo.ContainingBlock(box)
	return bo.IsLayoutView(box) ||
		b.IsFloating() ||
		b.IsOutOfFlowPositioned() ||
		bo.IsTableCell(box) ||
		bo.TableCaptionT.IsInstance(box) ||
		bo.IsFlexibleBox(box) ||
		(containingBlock != nil && containingBlock.Box().IsHorizontalWritingMode() != b.IsHorizontalWritingMode()) ||
		b.Style.Display.IsReplacedType() ||
		b.IsTextArea() ||
		b.Style.UserModify != pr.ReadOnly
}

func hasExplicitWidth(box Box) bool {
	return box.Box().Style.Width.IsSpecified()
}

func blockSuppressesAutosizing(box Box) bool {
	if blockOrImmediateChildrenAreFormControls(box) {
		return true
	}
	if blockIsRowOfLinks(box) {
		return true
	}
	// block-level text that can't wrap is likely to expand
	// sideways and break the page layout
	if !box.Box().Style.WhiteSpace.AutoWrap() {
		return true
	}
	return blockHeightConstrained(box)
}

func blockOrImmediateChildrenAreFormControls(box Box) bool {
	if box.Box().IsNonTextAreaFormControl() {
		return true
	}
	for _, child := range box.Box().Children {
		if child.Box().IsNonTextAreaFormControl() {
			return true
		}
	}
	return false
}

// blockIsRowOfLinks returns true for blocks which
//  1. have no non-link text longer than 3 characters
//  2. have at least 3 inline links, all with the same font size
//  3. have no <br>
//  4. only have inline content, except for potential roots
//     and the content of the links
func blockIsRowOfLinks(box Box) bool {
	linkCount := 0
	matchingFontSize := pr.Float(-1)
	for child := bo.FirstChild(box); child != nil; {
		b := child.Box()
		if !isPotentialClusterRoot(child) {
			if text, ok := child.(*bo.TextBox); ok && characterCount(text.Text) > 3 {
				return false
			}
			if !b.IsInline() || isLineBreak(child) {
				return false
			}
		}
		if b.IsLink() {
			linkCount++
			if matchingFontSize < 0 {
				matchingFontSize = b.Style.FontSize
			} else if matchingFontSize != b.Style.FontSize {
				return false
			}
			child = bo.NextInPreOrderAfterChildren(child, box)
			continue
		}
		child = bo.NextInPreOrder(child, box)
	}
	return linkCount >= 3
}

func isLineBreak(box Box) bool {
	text, ok := box.(*bo.TextBox)
	return ok && text.LineBreak
}

// blockHeightConstrained returns true if the block has a height limited by
// itself or an ancestor, which would make inflated text overflow.
// Fixed heights on the root, <html> and <body> are ignored since some
// sites use 'height: 100%' without intending to constrain their content.
func blockHeightConstrained(box Box) bool {
	// TODO: take vertical writing modes into account
	for block := box; block != nil; block = bo.ContainingBlock(block) {
		b := block.Box()
		if b.Style.OverflowY.IsScrollable() {
			return false
		}
		if b.Style.Height.IsSpecified() || b.Style.MaxHeight.IsSpecified() || b.IsOutOfFlowPositioned() {
			return !b.IsDocumentElement() && !b.IsBody() && !bo.IsLayoutView(block)
		}
		if b.IsFloating() {
			return false
		}
	}
	return false
}

// characterCount returns the number of characters of [text],
// ignoring leading and trailing spaces. Combining sequences
// count as one character.
func characterCount(text string) int {
	var it norm.Iter
	it.InitString(norm.NFC, strings.TrimSpace(text))
	n := 0
	for !it.Done() {
		it.Next()
		n++
	}
	return n
}

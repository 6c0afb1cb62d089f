package autosizer

import (
	pr "github.com/benoitkugler/textautosizer/css/properties"
	bo "github.com/benoitkugler/textautosizer/html/boxes"
	"github.com/benoitkugler/textautosizer/utils"
)

// narrowWidthDifference is the width, in CSS pixels, above which a
// cluster narrower than the text of its parent is autosized independently.
const narrowWidthDifference = 200

// clusterMultiplier returns the memoized multiplier of [c].
func (ta *TextAutosizer) clusterMultiplier(c *cluster) float32 {
	if c.multiplier != 0 {
		return c.multiplier
	}

	if c.flags&Independent == 0 && ta.isWiderOrNarrowerDescendant(c) {
		c.flags |= WiderOrNarrower
	}

	if c.flags&(Independent|WiderOrNarrower) != 0 {
		if c.supercluster != noIndex {
			c.multiplier = ta.superclusterMultiplier(c)
		} else if ta.clusterHasEnoughTextToAutosize(c, nil) {
			c.multiplier = ta.multiplierFromBlock(clusterWidthProvider(c.root, c))
		} else {
			c.multiplier = 1
		}
	} else if parent := ta.clusterStack.at(c.parent); parent != nil {
		c.multiplier = ta.clusterMultiplier(parent)
	} else {
		c.multiplier = 1
	}

	ta.writeClusterDebugInfo(c)

	assert(c.multiplier != 0, "invalid multiplier for %s", c.root.Box())
	return c.multiplier
}

// superclusterMultiplier uses the widest text container of the
// supercluster of [c] as width reference.
func (ta *TextAutosizer) superclusterMultiplier(c *cluster) float32 {
	sc := ta.superclusters.at(c.supercluster)
	if sc.multiplier == 0 {
		widthProvider := ta.maxClusterWidthProvider(sc, c.root)
		if ta.superclusterHasEnoughTextToAutosize(sc, widthProvider) {
			sc.multiplier = ta.multiplierFromBlock(widthProvider)
		} else {
			sc.multiplier = 1
		}
	}
	return sc.multiplier
}

// clusterWidthProvider returns the block whose width drives the
// multiplier of the cluster rooted at [root]. [c] is used to memoize the
// deepest block containing all text, and may be nil.
func clusterWidthProvider(root Box, c *cluster) Box {
	if bo.IsTable(root) || bo.IsTableCell(root) {
		return root
	}
	if c == nil {
		return deepestBlockContainingAllText(root)
	}
	return c.deepestBlockContainingAllText()
}

func (c *cluster) deepestBlockContainingAllText() Box {
	if c.textContainer == nil {
		c.textContainer = deepestBlockContainingAllText(c.root)
	}
	return c.textContainer
}

// maxClusterWidthProvider returns the width provider of the roots of [sc]
// with the largest width, starting with [currentRoot]. Roots still
// needing layout are ignored.
func (ta *TextAutosizer) maxClusterWidthProvider(sc *supercluster, currentRoot Box) Box {
	result := clusterWidthProvider(currentRoot, nil)
	maxWidth := widthFromBlock(result)

	for _, root := range sc.roots.blocks {
		widthProvider := clusterWidthProvider(root, nil)
		if widthProvider.Box().NeedsLayout {
			continue
		}
		if width := widthFromBlock(widthProvider); width > maxWidth {
			maxWidth = width
			result = widthProvider
		}
	}
	return result
}

func (ta *TextAutosizer) superclusterHasEnoughTextToAutosize(sc *supercluster, widthProvider Box) bool {
	if sc.hasEnoughText != unknownAmountOfText {
		return sc.hasEnoughText == hasEnoughText
	}
	for _, root := range sc.roots.blocks {
		if ta.clusterWouldHaveEnoughTextToAutosize(root, widthProvider) {
			sc.hasEnoughText = hasEnoughText
			return true
		}
	}
	sc.hasEnoughText = notEnoughText
	return false
}

// clusterWouldHaveEnoughTextToAutosize checks a root which may not
// have a cluster on the stack.
func (ta *TextAutosizer) clusterWouldHaveEnoughTextToAutosize(root, widthProvider Box) bool {
	hypothetical := newCluster(root, ClassifyBlock(root, allFlags), noIndex, noIndex)
	return ta.clusterHasEnoughTextToAutosize(&hypothetical, widthProvider)
}

// clusterHasEnoughTextToAutosize returns true if the cluster has at
// least four lines of text, each character being approximated by
// a 1em square. [widthProvider] defaults to the width provider of
// the cluster when nil.
func (ta *TextAutosizer) clusterHasEnoughTextToAutosize(c *cluster, widthProvider Box) bool {
	if c.hasEnoughText != unknownAmountOfText {
		return c.hasEnoughText == hasEnoughText
	}

	root := c.root

	// editable areas always autosize
	if root.Box().IsTextArea() || root.Box().Style.UserModify != pr.ReadOnly {
		c.hasEnoughText = hasEnoughText
		return true
	}

	if c.flags&Suppressing != 0 {
		c.hasEnoughText = notEnoughText
		return false
	}

	if widthProvider == nil {
		widthProvider = clusterWidthProvider(root, c)
	}
	minimumTextLengthToAutosize := widthFromBlock(widthProvider) * 4
	var length pr.Float
	for descendant := bo.FirstChild(root); descendant != nil; {
		if bo.IsLayoutBlock(descendant) {
			if ClassifyBlock(descendant, Independent|Suppressing) != 0 {
				descendant = bo.NextInPreOrderAfterChildren(descendant, root)
				continue
			}
		} else if text, ok := descendant.(*bo.TextBox); ok {
			length += pr.Float(characterCount(text.Text)) * text.Style.FontSize
			if length >= minimumTextLengthToAutosize {
				c.hasEnoughText = hasEnoughText
				return true
			}
		}
		descendant = bo.NextInPreOrder(descendant, root)
	}

	c.hasEnoughText = notEnoughText
	return false
}

// isWiderOrNarrowerDescendant returns true if the cluster should not
// inherit the multiplier of its parent.
func (ta *TextAutosizer) isWiderOrNarrowerDescendant(c *cluster) bool {
	parent := ta.clusterStack.at(c.parent)
	if parent == nil || !hasExplicitWidth(c.root) {
		return true
	}

	parentDeepestBlockContainingAllText := parent.deepestBlockContainingAllText()
	if debugMode {
		assert(ta.blocksThatHaveBegunLayout[c.root], "%s has not begun layout", c.root.Box())
		assert(ta.blocksThatHaveBegunLayout[parentDeepestBlockContainingAllText],
			"%s has not begun layout", parentDeepestBlockContainingAllText.Box())
	}

	contentWidth := c.root.Box().ContentLogicalWidth()
	clusterTextWidth := parentDeepestBlockContainingAllText.Box().ContentLogicalWidth()

	// wider than the text of the parent
	if contentWidth > clusterTextWidth {
		return true
	}

	// significantly narrower than the text of the parent
	return clusterTextWidth-contentWidth > narrowWidthDifference
}

// multiplierFromBlock returns the multiplier scaling the width of [block]
// to the frame width, which is never less than 1.
func (ta *TextAutosizer) multiplierFromBlock(block Box) float32 {
	// blocks not needing layout may not have begun it, for instance
	// when the text container is deeper than a positioned block
	if debugMode {
		assert(ta.blocksThatHaveBegunLayout[block] || !block.Box().NeedsLayout, "%s has not begun layout", block.Box())
	}

	blockWidth := widthFromBlock(block)
	info := ta.pageInfo
	var multiplier float32 = 1
	if info.FrameWidth != 0 {
		multiplier = utils.MinF(blockWidth, float32(info.LayoutWidth)) / float32(info.FrameWidth)
	}
	if !utils.IsFinite(multiplier) {
		multiplier = 1
	}
	return utils.MaxF(info.BaseMultiplier*multiplier, 1)
}

// widthFromBlock returns the content width of [block], in CSS pixels.
// Tables, cells and list items may be inflated before their width is
// known: the specified widths of their containing blocks are tried.
// It returns 0 if no width may be found.
func widthFromBlock(block Box) pr.Float {
	if !(bo.IsTable(block) || bo.IsTableCell(block) || bo.IsListItem(block)) {
		return block.Box().ContentLogicalWidth()
	}

	if bo.ContainingBlock(block) == nil {
		return 0
	}

	for ; block != nil; block = bo.ContainingBlock(block) {
		var specifiedWidth pr.DimOrS
		if cell, ok := block.(*bo.TableCellBox); ok {
			specifiedWidth = cell.StyleOrColLogicalWidth()
		} else {
			specifiedWidth = block.Box().Style.LogicalWidth()
		}

		if specifiedWidth.IsFixed() && specifiedWidth.Value > 0 {
			return specifiedWidth.Value
		}
		if specifiedWidth.HasPercent() {
			if containingBlock := bo.ContainingBlock(block); containingBlock != nil {
				if containerWidth := containingBlock.Box().ContentLogicalWidth(); containerWidth != 0 {
					if width := pr.ResoudPercentage(specifiedWidth, containerWidth); width > 0 {
						return width
					}
				}
			}
		}
		if width := block.Box().ContentLogicalWidth(); width > 0 {
			return width
		}
	}
	return 0
}

// deepestBlockContainingAllText returns the lowest block ancestor of all
// the text leaves of [root], or [root] if it has no text.
func deepestBlockContainingAllText(root Box) Box {
	firstDepth := 0
	firstTextLeaf := findTextLeaf(root, &firstDepth, firstLeaf)
	if firstTextLeaf == nil {
		return root
	}

	lastDepth := 0
	lastTextLeaf := findTextLeaf(root, &lastDepth, lastLeaf)
	assert(lastTextLeaf != nil, "inconsistent text leaves")

	// equalize the depths; only one of the loops is executed
	firstNode, lastNode := firstTextLeaf, lastTextLeaf
	for ; firstDepth > lastDepth; firstDepth-- {
		firstNode = firstNode.Box().Parent
	}
	for ; lastDepth > firstDepth; lastDepth-- {
		lastNode = lastNode.Box().Parent
	}

	// go up until both nodes are the lowest common ancestor
	for firstNode != lastNode {
		firstNode = firstNode.Box().Parent
		lastNode = lastNode.Box().Parent
	}

	if bo.IsLayoutBlock(firstNode) {
		return firstNode
	}

	// positioned blocks can't be between the cluster and the common ancestor,
	// since they start their own cluster: the containing block
	// is inside the cluster
	containingBlock := bo.ContainingBlock(firstNode)
	if containingBlock == nil {
		return root
	}
	assert(containingBlock == root || bo.IsDescendantOf(containingBlock, root), "text container outside of its cluster")
	return containingBlock
}

type textLeafSearch bool

const (
	firstLeaf textLeafSearch = false
	lastLeaf  textLeafSearch = true
)

// findTextLeaf returns the first (or last) text box of [parent], skipping
// the blocks likely to start an independent cluster. List items are
// considered as text, because of their marker.
// [depth] is incremented by the depth of the result, relative to [parent].
func findTextLeaf(parent Box, depth *int, search textLeafSearch) Box {
	if bo.IsListItem(parent) || bo.IsText(parent) {
		return parent
	}

	*depth++
	children := parent.Box().Children
	for i := range children {
		child := children[i]
		if search == lastLeaf {
			child = children[len(children)-1-i]
		}
		// clusters may not have been created yet for the children:
		// guess if they will be
		if !isPotentialClusterRoot(child) || !isIndependentDescendant(child) {
			if leaf := findTextLeaf(child, depth, search); leaf != nil {
				return leaf
			}
		}
	}
	*depth--
	return nil
}

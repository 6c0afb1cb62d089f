package autosizer

import (
	pr "github.com/benoitkugler/textautosizer/css/properties"
	bo "github.com/benoitkugler/textautosizer/html/boxes"
)

type inflateBehavior bool

const (
	normalInflate        inflateBehavior = false
	descendToInnerBlocks inflateBehavior = true
)

type relayoutBehavior uint8

const (
	// the style is replaced in place, the previous one being
	// retained until the end of the pass
	alreadyInLayout relayoutBehavior = iota
	// the style is replaced and the box marked for layout
	layoutNeeded
)

// retainedStyles keeps the styles replaced during a layout pass,
// which may still be referenced by the layout code.
type retainedStyles struct {
	styles []*pr.Style
}

func (rs *retainedStyles) retain(style *pr.Style) { rs.styles = append(rs.styles, style) }

func (rs *retainedStyles) release() {
	for i := range rs.styles {
		rs.styles[i] = nil
	}
	rs.styles = rs.styles[:0]
}

func (rs *retainedStyles) len() int { return len(rs.styles) }

// inflate applies the multiplier of the current cluster to the inline
// content of [parent]. With [descendToInnerBlocks], the blocks not
// starting a cluster are also visited.
// [multiplier] is 0 when not yet resolved; the resolved value is returned.
func (ta *TextAutosizer) inflate(parent Box, behavior inflateBehavior, multiplier float32) float32 {
	c := ta.clusterStack.current()
	if c == nil {
		assert(false, "inflate called outside of a cluster")
		return 1
	}

	var children []Box
	if bo.IsLayoutBlock(parent) && (bo.ChildrenInline(parent) || behavior == descendToInnerBlocks) {
		children = parent.Box().Children
	} else if bo.IsLayoutInline(parent) {
		children = parent.Box().Children
	}

	hasTextChild := false
	for _, child := range children {
		switch {
		case bo.IsText(child):
			hasTextChild = true
			// resolved on demand, once the parent block of the
			// text has entered layout
			if multiplier == 0 {
				if c.flags&Suppressing != 0 {
					multiplier = 1
				} else {
					multiplier = ta.clusterMultiplier(c)
				}
			}
			ta.applyMultiplier(child, multiplier, alreadyInLayout)
		case bo.IsLayoutInline(child):
			multiplier = ta.inflate(child, behavior, multiplier)
		case behavior == descendToInnerBlocks && bo.IsLayoutBlock(child) &&
			ClassifyBlock(child, Independent|ExplicitWidth|Suppressing) == 0:
			multiplier = ta.inflate(child, behavior, multiplier)
		}
	}

	if hasTextChild {
		ta.applyMultiplier(parent, multiplier, alreadyInLayout) // line spacing
	} else if !bo.IsListItem(parent) {
		// for consistency, a block with no immediate text child
		// always has a multiplier of 1
		ta.applyMultiplier(parent, 1, alreadyInLayout)
	}

	if item, ok := parent.(*bo.ListItemBox); ok {
		// the marker may be inside another cluster than the
		// one of the item, so the multiplier is set here
		itemMultiplier := ta.clusterMultiplier(c)
		ta.applyMultiplier(item, itemMultiplier, alreadyInLayout)
		if item.Marker != nil {
			ta.applyMultiplier(item.Marker, itemMultiplier, alreadyInLayout)
		}
	}

	return multiplier
}

// applyMultiplier installs a copy of the style of [box] with
// the given multiplier. It does nothing if the multiplier is unchanged.
func (ta *TextAutosizer) applyMultiplier(box Box, multiplier float32, behavior relayoutBehavior) {
	b := box.Box()
	currentStyle := b.Style
	if currentStyle.TextSizeAdjust == multiplier {
		return
	}

	// styles are shared between boxes: clone it
	style := currentStyle.Copy()
	style.TextSizeAdjust = multiplier

	switch behavior {
	case alreadyInLayout:
		ta.stylesRetainedDuringLayout.retain(currentStyle)
		b.Style = style
	case layoutNeeded:
		b.Style = style
		setNeedsLayout(box)
	}

	if multiplier != 1 {
		ta.pageInfo.HasAutosized = true
	}
}

// setNeedsLayout marks [box] and its ancestors.
func setNeedsLayout(box Box) {
	for ; box != nil; box = box.Box().Parent {
		box.Box().NeedsLayout = true
	}
}

const (
	// somewhat arbitrary "pleasant" font size
	pleasantSize = 16
	// increase of the computed size for every pixel above
	// the pleasant size
	gradientAfterPleasantSize = 0.5
)

// ComputeAutosizedFontSize applies [multiplier] to [specifiedSize].
// Font sizes up to 16px are scaled by [multiplier]; above, the multiplier
// fades out until large fonts are not increased at all. The result is
// never less than [specifiedSize] when [multiplier] is at least 1.
func ComputeAutosizedFontSize(specifiedSize, multiplier pr.Float) pr.Float {
	if specifiedSize <= pleasantSize {
		return multiplier * specifiedSize
	}
	computedSize := multiplier*pleasantSize + gradientAfterPleasantSize*(specifiedSize-pleasantSize)
	if computedSize < specifiedSize {
		computedSize = specifiedSize
	}
	return computedSize
}

// AutosizedFontSize returns the font size used to render text with [style].
func AutosizedFontSize(style *pr.Style) pr.Float {
	if style.TextSizeAdjust == 1 {
		return style.FontSize
	}
	return ComputeAutosizedFontSize(style.FontSize, style.TextSizeAdjust)
}

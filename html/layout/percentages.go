package layout

import (
	pr "github.com/benoitkugler/textautosizer/css/properties"
	bo "github.com/benoitkugler/textautosizer/html/boxes"
	"github.com/benoitkugler/textautosizer/utils"
)

// containingBlockWidth returns the content width of the containing
// block of [box], or 0 for the root.
func containingBlockWidth(box Box) pr.Float {
	if cb := bo.ContainingBlock(box); cb != nil {
		return cb.Box().ContentLogicalWidth()
	}
	return 0
}

// resolveOnePercentage returns the used value of [value], or -1
// for keywords.
func resolveOnePercentage(value pr.DimOrS, referTo pr.Float) pr.Float {
	if !value.IsSpecified() {
		return -1
	}
	return pr.ResoudPercentage(value, referTo)
}

// resolveWidth sets the content width of [box]: its specified width,
// or the width of its containing block minus the horizontal paddings.
func resolveWidth(box Box) {
	b := box.Box()
	cbWidth := containingBlockWidth(box)
	if width := resolveOnePercentage(b.Style.LogicalWidth(), cbWidth); width >= 0 {
		b.SetContentLogicalWidth(width)
		return
	}
	padding := resolvePadding(b.Style.PaddingLeft, cbWidth) + resolvePadding(b.Style.PaddingRight, cbWidth)
	b.SetContentLogicalWidth(utils.MaxF(cbWidth-padding, 0))
}

func resolvePadding(padding pr.Dimension, referTo pr.Float) pr.Float {
	return utils.MaxF(resolveOnePercentage(padding.ToValue(), referTo), 0)
}

package autosizer

import (
	"fmt"

	bo "github.com/benoitkugler/textautosizer/html/boxes"
	"github.com/benoitkugler/textautosizer/utils"
	"golang.org/x/net/html"
)

// DebugInfoAttribute is the attribute set on the cluster roots when
// [Settings.WriteDebugInfo] is true.
const DebugInfoAttribute = "data-autosizing"

// writeClusterDebugInfo explains the multiplier of [c]
// on the element of its root.
func (ta *TextAutosizer) writeClusterDebugInfo(c *cluster) {
	if !ta.document.Settings().WriteDebugInfo {
		return
	}

	var explanation string
	switch {
	case c.flags&Suppressing != 0:
		explanation = "[suppressed]"
	case c.flags&(Independent|WiderOrNarrower) == 0:
		explanation = "[inherited]"
	case c.supercluster != noIndex:
		explanation = "[supercluster]"
	case !ta.clusterHasEnoughTextToAutosize(c, nil):
		explanation = "[insufficient-text]"
	default:
		widthProvider := clusterWidthProvider(c.root, c)
		explanation = fmt.Sprintf("[from width %d of %s]", int(widthFromBlock(widthProvider)), debugName(widthProvider))
	}

	var pageInfo string
	if bo.IsLayoutView(c.root) {
		pageInfo = fmt.Sprintf("; pageinfo: bm %f * (lw %d / fw %d)",
			ta.pageInfo.BaseMultiplier, ta.pageInfo.LayoutWidth, ta.pageInfo.FrameWidth)
	}

	multiplier := c.multiplier
	if c.flags&Suppressing != 0 {
		multiplier = 1
	}
	writeDebugInfo(c.root, fmt.Sprintf("cluster: %f %s%s", multiplier, explanation, pageInfo))
}

func debugName(box Box) string {
	if tag := box.Box().ElementTag(); tag != "" {
		return tag
	}
	return box.Type().String()
}

// writeDebugInfo sets the debug attribute on the element of [box].
// The layout view uses the root element.
func writeDebugInfo(box Box, value string) {
	element := box.Box().GeneratingElement()
	if element == nil && bo.IsLayoutView(box) {
		if child := bo.FirstChild(box); child != nil {
			element = child.Box().GeneratingElement()
		}
	}
	if element == nil {
		return
	}
	(*utils.HTMLNode)(element).Set(DebugInfoAttribute, value)
}

// DebugInfo returns the debug attribute of [element], or an empty string.
func DebugInfo(element *html.Node) string {
	return (*utils.HTMLNode)(element).Get(DebugInfoAttribute)
}

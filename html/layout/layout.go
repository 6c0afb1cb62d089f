// Package layout resolves the content widths of the block containers of a
// box tree, for a given viewport, calling the text autosizing hooks on the
// way.
//
// It implements only the part of a layout engine relevant to autosizing:
// text is not measured, and heights and positions are not computed.
package layout

import (
	"fmt"

	pr "github.com/benoitkugler/textautosizer/css/properties"
	"github.com/benoitkugler/textautosizer/html/autosizer"
	bo "github.com/benoitkugler/textautosizer/html/boxes"
	"github.com/benoitkugler/textautosizer/logger"
	"github.com/benoitkugler/textautosizer/utils/testutils/tracer"
)

const (
	// if true, print debug information with logger.DebugLogger
	debugMode = false
	traceMode = false
)

var traceLogger tracer.Tracer // used only when traceMode is true

type Box = bo.Box

type layoutContext struct {
	autosizer *autosizer.TextAutosizer // may be nil
	depth     int
}

// Layout lays out the tree rooted at [root], for a viewport with width [viewportWidth]
// (its height in vertical writing modes).
// The hooks of [ta] are called if it is not nil.
func Layout(root *bo.ViewportBox, viewportWidth pr.Float, ta *autosizer.TextAutosizer) {
	logger.ProgressLogger.Printf("Step 4 - Layout at width %g", viewportWidth)

	context := &layoutContext{autosizer: ta}
	root.SetContentLogicalWidth(viewportWidth)
	context.layoutBox(root)

	if traceMode {
		traceLogger.DumpTree(root, "Layout")
	}
}

// layoutBox dispatches on the type of [box].
func (context *layoutContext) layoutBox(box Box) {
	if debugMode {
		logger.DebugLogger.Debugf("%*sLayout <%s> (%s)", context.depth, "", box.Box().ElementTag(), box.Type())
		context.depth++
		defer func() { context.depth-- }()
	}

	switch {
	case bo.IsTable(box):
		context.tableLayout(box)
	case bo.IsLayoutBlock(box):
		context.blockContainerLayout(box)
	case bo.ParentT.IsInstance(box):
		for _, child := range box.Box().Children {
			context.layoutBox(child)
		}
	case bo.IsText(box), bo.ReplacedT.IsInstance(box), bo.TableColumnT.IsInstance(box):
	default: // pragma: no cover
		panic(fmt.Sprintf("Layout for %s not handled yet", box.Type()))
	}
	box.Box().NeedsLayout = false
}

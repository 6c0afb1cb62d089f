package autosizer

import (
	bo "github.com/benoitkugler/textautosizer/html/boxes"
	"github.com/benoitkugler/textautosizer/logger"
)

// PageInfo stores the page-wide parameters of the autosizing.
type PageInfo struct {
	// FrameWidth is the width of the window, in CSS pixels
	// (its height in vertical writing modes).
	FrameWidth int
	// LayoutWidth is the width of the layout viewport of the main frame.
	LayoutWidth int
	// BaseMultiplier combines the accessibility and device settings.
	BaseMultiplier float32

	SettingEnabled      bool
	PageNeedsAutosizing bool
	// HasAutosized is true if a multiplier other than 1
	// has been applied since the last reset.
	HasAutosized bool
}

func (pi PageInfo) sameGeometry(other PageInfo) bool {
	return pi.FrameWidth == other.FrameWidth &&
		pi.LayoutWidth == other.LayoutWidth &&
		pi.BaseMultiplier == other.BaseMultiplier &&
		pi.SettingEnabled == other.SettingEnabled
}

// UpdatePageInfo recomputes the page parameters. If they change while the
// page needs autosizing, all the text is marked for layout. If the page
// no longer needs autosizing, the multipliers are reset to 1 immediately.
// The call is ignored while a [DeferUpdatePageInfo] guard is held.
func (ta *TextAutosizer) UpdatePageInfo() {
	if ta.updatePageInfoDeferred {
		return
	}
	page := ta.document.Page()
	if page == nil {
		return
	}

	previous := ta.pageInfo
	settings := ta.document.Settings()
	ta.pageInfo.SettingEnabled = settings.Enabled

	if !ta.pageInfo.SettingEnabled || ta.document.Printing() {
		ta.pageInfo.PageNeedsAutosizing = false
	} else {
		horizontalWritingMode := true
		if layoutView := ta.document.LayoutView(); layoutView != nil {
			horizontalWritingMode = layoutView.IsHorizontalWritingMode()
		}

		frameSize := settings.WindowSizeOverride
		if frameSize.IsEmpty() {
			frameSize = page.WindowSize()
		}
		layoutSize := page.LayoutSize()
		if horizontalWritingMode {
			ta.pageInfo.FrameWidth, ta.pageInfo.LayoutWidth = frameSize.Width, layoutSize.Width
		} else {
			ta.pageInfo.FrameWidth, ta.pageInfo.LayoutWidth = frameSize.Height, layoutSize.Height
		}

		// the device adjustment is not applied to pages
		// declaring their viewport
		ta.pageInfo.BaseMultiplier = settings.AccessibilityFontScaleFactor
		if !page.ViewportSpecifiedByAuthor() {
			ta.pageInfo.BaseMultiplier *= settings.DeviceScaleAdjustment
		}

		ta.pageInfo.PageNeedsAutosizing = ta.pageInfo.FrameWidth != 0 &&
			ta.pageInfo.BaseMultiplier*(float32(ta.pageInfo.LayoutWidth)/float32(ta.pageInfo.FrameWidth)) > 1
	}

	logger.ProgressLogger.Printf("Page info: frame width %d, layout width %d, base multiplier %g, autosizing %v",
		ta.pageInfo.FrameWidth, ta.pageInfo.LayoutWidth, ta.pageInfo.BaseMultiplier, ta.pageInfo.PageNeedsAutosizing)

	if ta.pageInfo.PageNeedsAutosizing {
		// the multipliers may have changed: force a layout to
		// recompute them
		if !ta.pageInfo.sameGeometry(previous) {
			ta.setAllTextNeedsLayout()
		}
	} else if previous.HasAutosized {
		// nothing is done during the next layout, so
		// reset the multipliers now
		ta.resetMultipliers()
		ta.pageInfo.HasAutosized = false
	}
}

// UpdatePageInfoInAllFrames updates the page parameters of the
// document and the documents of its frames.
func (ta *TextAutosizer) UpdatePageInfoInAllFrames() {
	for _, document := range ta.document.FrameTree() {
		if autosizer := document.TextAutosizer(); autosizer != nil {
			autosizer.UpdatePageInfo()
		}
	}
}

func (ta *TextAutosizer) setAllTextNeedsLayout() {
	layoutView := ta.document.LayoutView()
	if layoutView == nil {
		return
	}
	for box := Box(layoutView); box != nil; box = bo.NextInPreOrder(box, nil) {
		if bo.IsText(box) {
			setNeedsLayout(box)
		}
	}
}

func (ta *TextAutosizer) resetMultipliers() {
	layoutView := ta.document.LayoutView()
	if layoutView == nil {
		return
	}
	for box := Box(layoutView); box != nil; box = bo.NextInPreOrder(box, nil) {
		if style := box.Box().Style; style != nil && style.TextSizeAdjust != 1 {
			ta.applyMultiplier(box, 1, layoutNeeded)
		}
		if item, ok := box.(*bo.ListItemBox); ok && item.Marker != nil && item.Marker.Style.TextSizeAdjust != 1 {
			ta.applyMultiplier(item.Marker, 1, layoutNeeded)
		}
	}
}

// DeferUpdatePageInfo is a guard disabling [TextAutosizer.UpdatePageInfo],
// used while the geometry of the frames is changing.
type DeferUpdatePageInfo struct {
	autosizer *TextAutosizer
}

// NewDeferUpdatePageInfo takes the guard on the autosizer of the main
// frame [mainFrame], which may be nil.
func NewDeferUpdatePageInfo(mainFrame *TextAutosizer) DeferUpdatePageInfo {
	if mainFrame != nil {
		assert(!mainFrame.updatePageInfoDeferred, "nested DeferUpdatePageInfo")
		mainFrame.updatePageInfoDeferred = true
	}
	return DeferUpdatePageInfo{autosizer: mainFrame}
}

// Release releases the guard and updates the page info of all
// the frames.
func (d DeferUpdatePageInfo) Release() {
	if d.autosizer == nil {
		return
	}
	assert(d.autosizer.updatePageInfoDeferred, "DeferUpdatePageInfo released twice")
	d.autosizer.updatePageInfoDeferred = false
	d.autosizer.UpdatePageInfoInAllFrames()
}

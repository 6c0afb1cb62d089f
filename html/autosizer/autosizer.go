// Package autosizer implements text autosizing: during the layout of a page
// on a narrow viewport, text is magnified so that it stays legible without
// zooming.
//
// The engine groups the blocks of the layout tree into clusters, which share
// one multiplier. The multiplier of a cluster is derived from the width of its
// text container, compared to the width of the frame. Blocks that look alike
// (same fingerprint) are grouped into superclusters so that, for instance,
// the items of a list are consistently sized.
//
// The external layout drives the engine through [LayoutScope],
// [TableLayoutScope] and [TextAutosizer.InflateListItem]; the resulting
// multiplier is stored in the TextSizeAdjust field of the box styles,
// see [AutosizedFontSize].
package autosizer

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/benoitkugler/textautosizer/html/boxes"
	"github.com/benoitkugler/textautosizer/logger"
	"github.com/benoitkugler/textautosizer/utils/testutils/tracer"
)

const (
	// if true, broken preconditions panic instead of being logged,
	// and the blocks entering layout are tracked
	debugMode = false
	// if true, dump the layout tree at the end of each pass
	traceMode = false
)

var traceLogger tracer.Tracer // used only when traceMode is true

func init() {
	if traceMode {
		traceLogger = tracer.NewTracer(filepath.Join(os.TempDir(), "trace_autosizer.txt"))
	}
}

func assert(cond bool, format string, args ...interface{}) {
	if cond {
		return
	}
	if debugMode {
		panic(fmt.Sprintf(format, args...))
	}
	logger.WarningLogger.Printf(format, args...)
}

type Box = boxes.Box

// Size is a size in CSS pixels.
type Size struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
}

// IsEmpty returns true if one of the dimensions is not positive.
func (s Size) IsEmpty() bool { return s.Width <= 0 || s.Height <= 0 }

// Settings are the user preferences controlling the autosizing.
type Settings struct {
	Enabled bool `toml:"enabled"`

	// WindowSizeOverride replaces the size of the window when not empty.
	WindowSizeOverride Size `toml:"window_size_override"`

	// AccessibilityFontScaleFactor is the base multiplier of the text.
	AccessibilityFontScaleFactor float32 `toml:"accessibility_font_scale_factor"`

	// DeviceScaleAdjustment is applied on top of AccessibilityFontScaleFactor,
	// unless the page specifies its viewport.
	DeviceScaleAdjustment float32 `toml:"device_scale_adjustment"`

	// WriteDebugInfo adds a 'data-autosizing' attribute to the cluster
	// roots, explaining their multiplier.
	WriteDebugInfo bool `toml:"write_debug_info"`
}

// DefaultSettings returns enabled settings with neutral scale factors.
func DefaultSettings() Settings {
	return Settings{Enabled: true, AccessibilityFontScaleFactor: 1, DeviceScaleAdjustment: 1}
}

// Page provides the geometry of the main frame.
type Page interface {
	// WindowSize returns the size of the visible area of the window.
	WindowSize() Size
	// LayoutSize returns the size of the layout viewport of the main frame.
	LayoutSize() Size
	// ViewportSpecifiedByAuthor returns true if the document of the main
	// frame has a viewport description.
	ViewportSpecifiedByAuthor() bool
}

// Document is the host of a [TextAutosizer]. Each document owns exactly
// one autosizer, created with [New].
type Document interface {
	Settings() Settings
	// Page returns nil for detached documents.
	Page() Page
	// LayoutView returns the root of the layout tree, or nil if the
	// tree is not built yet.
	LayoutView() *boxes.ViewportBox
	// Printing returns true when the document is laid out for print.
	Printing() bool
	// FrameTree returns the document followed by the documents of all
	// its descendant frames, in tree order.
	FrameTree() []Document
	TextAutosizer() *TextAutosizer
}

// TextAutosizer is the autosizing engine of one document.
// It is not safe for concurrent use.
type TextAutosizer struct {
	document          Document
	fingerprintMapper fingerprintMapper
	pageInfo          PageInfo

	updatePageInfoDeferred bool

	// state valid during one layout pass

	firstBlockToBeginLayout Box
	clusterStack            clusterStack
	superclusters           superclusters
	// styles replaced during the pass, released when it ends
	stylesRetainedDuringLayout retainedStyles

	blocksThatHaveBegunLayout map[Box]bool // used only when debugMode is true
}

// New returns the autosizer of [document].
func New(document Document) *TextAutosizer {
	return &TextAutosizer{
		document:                  document,
		fingerprintMapper:         newFingerprintMapper(),
		superclusters:             newSuperclusters(),
		blocksThatHaveBegunLayout: map[Box]bool{},
	}
}

// PageInfo returns the current page parameters.
func (ta *TextAutosizer) PageInfo() PageInfo { return ta.pageInfo }

// ShouldHandleLayout returns true if the layout hooks
// must be called.
func (ta *TextAutosizer) ShouldHandleLayout() bool {
	return ta.pageInfo.SettingEnabled && ta.pageInfo.PageNeedsAutosizing && !ta.updatePageInfoDeferred
}

// Package document ties together the parsing, the box tree, the layout and
// the text autosizer of an HTML document, possibly containing frames.
package document

import (
	"io"
	"os"
	"strings"

	"github.com/benoitkugler/textautosizer/html/autosizer"
	bo "github.com/benoitkugler/textautosizer/html/boxes"
	"github.com/benoitkugler/textautosizer/html/layout"
	"github.com/benoitkugler/textautosizer/html/tree"
	"github.com/benoitkugler/textautosizer/logger"
	"golang.org/x/net/html"
)

// Document is an HTML document laid out in a frame of a [Page].
// It owns its text autosizer.
type Document struct {
	html       *tree.HTML
	layoutView *bo.ViewportBox // nil until the first layout
	page       *Page
	parent     *Document
	frames     []*Document
	autosizer  *autosizer.TextAutosizer
	printing   bool
}

// New returns the document of the main frame of [page].
func New(content *tree.HTML, page *Page) *Document {
	doc := newDocument(content, page, nil)
	page.mainFrame = doc
	return doc
}

func newDocument(content *tree.HTML, page *Page, parent *Document) *Document {
	doc := &Document{html: content, page: page, parent: parent}
	doc.autosizer = autosizer.New(doc)
	return doc
}

// Parse is a convenience function parsing [source] and returning the
// document of the main frame of a new page.
func Parse(source io.Reader, page *Page) (*Document, error) {
	content, err := tree.NewHTML(source, "")
	if err != nil {
		return nil, err
	}
	return New(content, page), nil
}

// ParseString is like [Parse] for an HTML string.
func ParseString(source string, page *Page) (*Document, error) {
	return Parse(strings.NewReader(source), page)
}

// ParseFile is like [Parse] for an HTML file.
func ParseFile(path string, page *Page) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f, page)
}

// AddFrame adds a child frame displaying [content].
func (d *Document) AddFrame(content *tree.HTML) *Document {
	frame := newDocument(content, d.page, d)
	d.frames = append(d.frames, frame)
	return frame
}

// HTML returns the parsed document.
func (d *Document) HTML() *tree.HTML { return d.html }

func (d *Document) Settings() autosizer.Settings { return d.page.settings }

func (d *Document) Page() autosizer.Page {
	if d.page == nil {
		return nil
	}
	return d.page
}

func (d *Document) LayoutView() *bo.ViewportBox { return d.layoutView }

func (d *Document) Printing() bool { return d.printing }

func (d *Document) TextAutosizer() *autosizer.TextAutosizer { return d.autosizer }

// FrameTree returns [d] followed by the documents of its frames,
// in tree order.
func (d *Document) FrameTree() []autosizer.Document {
	out := []autosizer.Document{d}
	for _, frame := range d.frames {
		out = append(out, frame.FrameTree()...)
	}
	return out
}

// SetPrinting switches the document to print mode, which disables
// the autosizing.
func (d *Document) SetPrinting(printing bool) {
	d.printing = printing
	d.autosizer.UpdatePageInfo()
}

// Layout lays out the document and its frames, building the box trees
// if needed.
func (d *Document) Layout() {
	if d.layoutView == nil {
		d.buildLayoutTree()
	}
	layout.Layout(d.layoutView, d.page.layoutWidth(d.layoutView.IsHorizontalWritingMode()), d.autosizer)
	for _, frame := range d.frames {
		frame.Layout()
	}
}

func (d *Document) buildLayoutTree() {
	size := d.page.layoutViewportSize()
	styles := tree.GetAllComputedStyles(d.html, float32(size.Width), float32(size.Height))
	d.layoutView = bo.BuildFormattingStructure(d.html.Root, styles)

	d.autosizer.UpdatePageInfo()
	for box := bo.Box(d.layoutView); box != nil; box = bo.NextInPreOrder(box, nil) {
		if bo.IsLayoutBlock(box) {
			d.autosizer.Record(box)
		}
	}
}

// RemoveElement removes [element] and its boxes from the document.
func (d *Document) RemoveElement(element *html.Node) {
	if d.layoutView != nil {
		for _, box := range d.boxesOf(element) {
			d.detach(box)
		}
	}
	if element.Parent != nil {
		element.Parent.RemoveChild(element)
	}
}

// boxesOf returns the boxes generated by [element].
func (d *Document) boxesOf(element *html.Node) []bo.Box {
	var out []bo.Box
	for box := bo.Box(d.layoutView); box != nil; box = bo.NextInPreOrder(box, nil) {
		if box.Box().Element == element {
			out = append(out, box)
		}
	}
	return out
}

// detach removes [box] from the tree, notifying the autosizer
// for each box of the subtree.
func (d *Document) detach(box bo.Box) {
	for descendant := box; descendant != nil; descendant = bo.NextInPreOrder(descendant, box) {
		d.autosizer.Destroy(descendant)
	}
	parent := box.Box().Parent
	if parent == nil {
		return
	}
	var children []bo.Box
	for _, child := range parent.Box().Children {
		if child != box {
			children = append(children, child)
		}
	}
	bo.SetChildren(parent, children)
	for ; parent != nil; parent = parent.Box().Parent {
		parent.Box().NeedsLayout = true
	}
	logger.DebugLogger.Debugf("detached %s", box.Box())
}

// Page holds the geometry shared by the frames of a window.
type Page struct {
	mainFrame  *Document
	settings   autosizer.Settings
	windowSize autosizer.Size
	// layoutSize is the size of the layout viewport; the window size
	// is used when empty
	layoutSize autosizer.Size
}

// NewPage returns a page for a window of size [windowSize], using a layout
// viewport of size [layoutSize].
func NewPage(settings autosizer.Settings, windowSize, layoutSize autosizer.Size) *Page {
	return &Page{settings: settings, windowSize: windowSize, layoutSize: layoutSize}
}

// MainFrame returns nil if no document has been loaded.
func (p *Page) MainFrame() *Document { return p.mainFrame }

func (p *Page) WindowSize() autosizer.Size { return p.windowSize }

func (p *Page) LayoutSize() autosizer.Size { return p.layoutViewportSize() }

func (p *Page) ViewportSpecifiedByAuthor() bool {
	return p.mainFrame != nil && p.mainFrame.html.ViewportSpecifiedByAuthor
}

func (p *Page) layoutViewportSize() autosizer.Size {
	if p.layoutSize.IsEmpty() {
		return p.windowSize
	}
	return p.layoutSize
}

func (p *Page) layoutWidth(horizontal bool) float32 {
	size := p.layoutViewportSize()
	if horizontal {
		return float32(size.Width)
	}
	return float32(size.Height)
}

// Resize changes the geometry of the page. The page parameters of the
// autosizers are updated once, after all the frames have been resized.
func (p *Page) Resize(windowSize, layoutSize autosizer.Size) {
	var mainAutosizer *autosizer.TextAutosizer
	if p.mainFrame != nil {
		mainAutosizer = p.mainFrame.autosizer
	}
	guard := autosizer.NewDeferUpdatePageInfo(mainAutosizer)
	defer guard.Release()

	p.windowSize = windowSize
	p.layoutSize = layoutSize
}

// SetSettings changes the settings and updates all the frames.
func (p *Page) SetSettings(settings autosizer.Settings) {
	p.settings = settings
	if p.mainFrame != nil {
		p.mainFrame.autosizer.UpdatePageInfoInAllFrames()
	}
}

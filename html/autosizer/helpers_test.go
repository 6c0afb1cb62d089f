package autosizer

import (
	"strings"
	"testing"

	pr "github.com/benoitkugler/textautosizer/css/properties"
	bo "github.com/benoitkugler/textautosizer/html/boxes"
	"github.com/benoitkugler/textautosizer/html/tree"
	"github.com/benoitkugler/textautosizer/utils"
)

// longText is enough text to autosize any block narrower than 1000px
// with the default font size.
var longText = strings.Repeat("lorem ipsum ", 40)

type fakePage struct {
	window, layout Size
	byAuthor       bool
}

func (p *fakePage) WindowSize() Size                { return p.window }
func (p *fakePage) LayoutSize() Size                { return p.layout }
func (p *fakePage) ViewportSpecifiedByAuthor() bool { return p.byAuthor }

type fakeDocument struct {
	settings  Settings
	page      *fakePage
	view      *bo.ViewportBox
	printing  bool
	frames    []*fakeDocument
	autosizer *TextAutosizer
}

func (d *fakeDocument) Settings() Settings             { return d.settings }
func (d *fakeDocument) LayoutView() *bo.ViewportBox    { return d.view }
func (d *fakeDocument) Printing() bool                 { return d.printing }
func (d *fakeDocument) TextAutosizer() *TextAutosizer { return d.autosizer }

func (d *fakeDocument) Page() Page {
	if d.page == nil {
		return nil
	}
	return d.page
}

func (d *fakeDocument) FrameTree() []Document {
	out := []Document{d}
	for _, frame := range d.frames {
		out = append(out, frame.FrameTree()...)
	}
	return out
}

func parseAndBuild(t *testing.T, htmlContent string) *bo.ViewportBox {
	t.Helper()
	doc, err := tree.NewHTMLFromString(htmlContent)
	if err != nil {
		t.Fatal(err)
	}
	styles := tree.GetAllComputedStyles(doc, 980, 1000)
	return bo.BuildFormattingStructure(doc.Root, styles)
}

// newFakeDocument returns a document displayed in a 320px wide window,
// with a 980px wide layout viewport.
func newFakeDocument(t *testing.T, htmlContent string) *fakeDocument {
	t.Helper()
	doc := &fakeDocument{
		settings: DefaultSettings(),
		page:     &fakePage{window: Size{320, 480}, layout: Size{980, 1000}},
		view:     parseAndBuild(t, htmlContent),
	}
	doc.autosizer = New(doc)
	return doc
}

// prepare updates the page info, records the blocks and
// sets the widths of the tree.
func (d *fakeDocument) prepare() {
	d.autosizer.UpdatePageInfo()
	for box := Box(d.view); box != nil; box = bo.NextInPreOrder(box, nil) {
		if bo.IsLayoutBlock(box) {
			d.autosizer.Record(box)
		}
	}
	setWidths(d.view, pr.Float(d.page.layout.Width))
}

// layout runs one layout pass.
func (d *fakeDocument) layout() { walkLayout(d.autosizer, d.view) }

// setWidths gives each block container its specified width,
// or the width of its parent.
func setWidths(box Box, available pr.Float) {
	b := box.Box()
	if bo.IsLayoutBlock(box) {
		width := available
		if w := b.Style.LogicalWidth(); w.IsSpecified() {
			width = pr.ResoudPercentage(w, available)
		}
		b.SetContentLogicalWidth(width)
		available = width
	}
	for _, child := range b.Children {
		setWidths(child, available)
	}
}

// walkLayout calls the layout hooks like a layout engine would.
func walkLayout(ta *TextAutosizer, box Box) {
	b := box.Box()
	if bo.IsLayoutBlock(box) {
		var scope LayoutScope
		if bo.IsTable(box) && !bo.IsFixedTableLayout(box) {
			scope = NewTableLayoutScope(ta, box)
		} else {
			scope = NewLayoutScope(ta, box)
		}
		if item, ok := box.(*bo.ListItemBox); ok && item.Marker != nil {
			ta.InflateListItem(item, item.Marker)
		}
		defer scope.End()
	}
	for _, child := range b.Children {
		walkLayout(ta, child)
	}
	b.NeedsLayout = false
}

// byID returns the box generated by the element with the given id.
func byID(t *testing.T, root Box, id string) Box {
	t.Helper()
	for box := root; box != nil; box = bo.NextInPreOrder(box, root) {
		if el := box.Box().GeneratingElement(); el != nil && (*utils.HTMLNode)(el).Get("id") == id {
			return box
		}
	}
	t.Fatalf("no box for #%s", id)
	return nil
}

// firstText returns the first text box of [root].
func firstText(t *testing.T, root Box) *bo.TextBox {
	t.Helper()
	for box := root; box != nil; box = bo.NextInPreOrder(box, root) {
		if text, ok := box.(*bo.TextBox); ok {
			return text
		}
	}
	t.Fatalf("no text in %s", root.Box())
	return nil
}

package tree

import (
	"testing"

	pr "github.com/benoitkugler/textautosizer/css/properties"
	"github.com/benoitkugler/textautosizer/utils"
	tu "github.com/benoitkugler/textautosizer/utils/testutils"
	"golang.org/x/net/html"
)

func computeStyles(t *testing.T, content string) (*HTML, *StyleFor) {
	t.Helper()
	doc, err := NewHTMLFromString(content)
	if err != nil {
		t.Fatal(err)
	}
	return doc, GetAllComputedStyles(doc, 800, 600)
}

func elementByID(node *html.Node, id string) *html.Node {
	if node.Type == html.ElementNode && (*utils.HTMLNode)(node).Get("id") == id {
		return node
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if found := elementByID(child, id); found != nil {
			return found
		}
	}
	return nil
}

func styleOf(t *testing.T, doc *HTML, styles *StyleFor, id string) *pr.Style {
	t.Helper()
	element := elementByID((*html.Node)(doc.Root), id)
	if element == nil {
		t.Fatalf("no element #%s", id)
	}
	return styles.Get(element)
}

func px(v pr.Float) pr.DimOrS { return pr.NewDim(v, pr.Px).ToValue() }

func TestSelectors(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	doc, styles := computeStyles(t, `
	<style>
		p { font-size: 20px }
		.big { font-size: 30px }
		p.big.bigger { font-size: 35px }
		#main { font-size: 40px }
		div > p { width: 10px }
		section p { height: 5px }
		* { max-height: 100px }
		h1, h2 { white-space: nowrap }
	</style>
	<p id="plain">a</p>
	<p id="big" class="big">b</p>
	<p id="bigger" class="big bigger">c</p>
	<p id="main" class="big">d</p>
	<div><p id="child">e</p></div>
	<section><div><p id="descendant">f</p></div></section>
	<h2 id="h2">g</h2>
	`)

	tu.AssertEqual(t, styleOf(t, doc, styles, "plain").FontSize, pr.Float(20))
	tu.AssertEqual(t, styleOf(t, doc, styles, "big").FontSize, pr.Float(30))
	tu.AssertEqual(t, styleOf(t, doc, styles, "bigger").FontSize, pr.Float(35))
	tu.AssertEqual(t, styleOf(t, doc, styles, "main").FontSize, pr.Float(40))

	tu.AssertEqual(t, styleOf(t, doc, styles, "child").Width, px(10))
	tu.AssertEqual(t, styleOf(t, doc, styles, "descendant").Width, px(10))
	tu.AssertEqual(t, styleOf(t, doc, styles, "descendant").Height, px(5))
	tu.AssertEqual(t, styleOf(t, doc, styles, "plain").Width, pr.SToV("auto"))
	tu.AssertEqual(t, styleOf(t, doc, styles, "child").Height, pr.SToV("auto"))

	tu.AssertEqual(t, styleOf(t, doc, styles, "plain").MaxHeight, px(100))
	tu.AssertEqual(t, styleOf(t, doc, styles, "h2").WhiteSpace, pr.WhiteSpaceNowrap)
}

func TestCascadeOrder(t *testing.T) {
	doc, styles := computeStyles(t, `
	<style>
		p { width: 10px }
		p { width: 20px }
		#a { width: 30px }
		p { white-space: pre }
	</style>
	<p id="a">a</p>
	<p id="b">b</p>
	<p id="c" style="width: 40px">c</p>
	<pre id="d">d</pre>
	`)
	tu.AssertEqual(t, styleOf(t, doc, styles, "a").Width, px(30))
	tu.AssertEqual(t, styleOf(t, doc, styles, "b").Width, px(20))
	tu.AssertEqual(t, styleOf(t, doc, styles, "c").Width, px(40))
	// author rules win over the user agent style sheet
	tu.AssertEqual(t, styleOf(t, doc, styles, "b").WhiteSpace, pr.WhiteSpacePre)
	tu.AssertEqual(t, styleOf(t, doc, styles, "d").WhiteSpace, pr.WhiteSpacePre)
	tu.AssertEqual(t, styleOf(t, doc, styles, "d").Display, pr.DisplayBlock)
}

func TestComputedValues(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	doc, styles := computeStyles(t, `
	<html style="font-size: 20px">
	<div id="em" style="font-size: 2em; width: 10em; padding: 0 5%">
		<p id="rem" style="width: 2rem; height: 50vh; max-height: 10vw">a</p>
		<p id="inherited">b</p>
	</div>
	<p id="keywords" style="font-size: large; overflow: auto; direction: rtl">c</p>
	<span id="smaller" style="font-size: smaller">d</span>
	<span id="float" style="float: right">e</span>
	<span id="table" style="display: inline-table; position: absolute">f</span>
	<div id="editable" contenteditable><p id="editable-child">g</p></div>
	<div id="not-editable" contenteditable="false">h</div>
	<div id="vertical" style="writing-mode: vertical-lr; width: 1in">i</div>
	<div id="uppercase" style="DISPLAY: INLINE-BLOCK">j</div>
	</html>
	`)

	em := styleOf(t, doc, styles, "em")
	tu.AssertEqual(t, em.FontSize, pr.Float(40))
	tu.AssertEqual(t, em.Width, px(400))
	tu.AssertEqual(t, em.PaddingLeft, pr.NewDim(5, pr.Perc))
	tu.AssertEqual(t, em.PaddingRight, pr.NewDim(5, pr.Perc))

	rem := styleOf(t, doc, styles, "rem")
	tu.AssertEqual(t, rem.Width, px(40))
	tu.AssertEqual(t, rem.Height, px(300))
	tu.AssertEqual(t, rem.MaxHeight, px(80))

	tu.AssertEqual(t, styleOf(t, doc, styles, "inherited").FontSize, pr.Float(40))

	keywords := styleOf(t, doc, styles, "keywords")
	tu.AssertEqual(t, keywords.FontSize, pr.Float(19.2))
	tu.AssertEqual(t, keywords.OverflowX, pr.OverflowAuto)
	tu.AssertEqual(t, keywords.OverflowY, pr.OverflowAuto)
	tu.AssertEqual(t, keywords.Direction, pr.DirectionRtl)

	tu.AssertClose(t, styleOf(t, doc, styles, "smaller").FontSize, 20/1.2)

	// floated and positioned boxes are blockified
	tu.AssertEqual(t, styleOf(t, doc, styles, "float").Display, pr.DisplayBlock)
	tu.AssertEqual(t, styleOf(t, doc, styles, "table").Display, pr.DisplayTable)

	tu.AssertEqual(t, styleOf(t, doc, styles, "editable").UserModify, pr.ReadWrite)
	tu.AssertEqual(t, styleOf(t, doc, styles, "editable-child").UserModify, pr.ReadWrite)
	tu.AssertEqual(t, styleOf(t, doc, styles, "not-editable").UserModify, pr.ReadOnly)

	vertical := styleOf(t, doc, styles, "vertical")
	tu.AssertEqual(t, vertical.WritingMode, pr.VerticalLr)
	tu.AssertEqual(t, vertical.Width, px(96))
	tu.AssertEqual(t, vertical.LogicalWidth(), pr.SToV("auto"))

	tu.AssertEqual(t, styleOf(t, doc, styles, "uppercase").Display, pr.DisplayInlineBlock)
}

func TestSelectorLists(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	doc, styles := computeStyles(t, `
	<style>
		.a, #b, div > span.c, em { width: 10px }
	</style>
	<div id="div"><span id="a" class="a">a</span><span id="b">b</span><span id="c" class="c">c</span></div>
	<p id="p"><em id="em">d</em><span id="other">e</span></p>
	<table><tr><td id="td">f</td><th id="th">g</th></tr></table>
	`)
	for _, id := range []string{"a", "b", "c", "em"} {
		tu.AssertEqual(t, styleOf(t, doc, styles, id).Width, px(10))
	}
	tu.AssertEqual(t, styleOf(t, doc, styles, "other").Width, pr.SToV("auto"))

	// every member of the user agent lists
	tu.AssertEqual(t, styleOf(t, doc, styles, "div").Display, pr.DisplayBlock)
	tu.AssertEqual(t, styleOf(t, doc, styles, "p").Display, pr.DisplayBlock)
	tu.AssertEqual(t, styles.Get((*html.Node)(doc.Root)).Display, pr.DisplayBlock)
	tu.AssertEqual(t, styleOf(t, doc, styles, "td").Display, pr.DisplayTableCell)
	tu.AssertEqual(t, styleOf(t, doc, styles, "th").Display, pr.DisplayTableCell)
	for child := (*html.Node)(doc.Root).FirstChild; child != nil; child = child.NextSibling {
		if child.Type == html.ElementNode {
			want := pr.DisplayBlock // body
			if child.Data == "head" {
				want = pr.DisplayNone
			}
			tu.AssertEqual(t, styles.Get(child).Display, want)
		}
	}

	sheet := NewCSS("td, th { display: table-cell }", "screen")
	tu.AssertEqual(t, len(sheet.rules), 1)
	tu.AssertEqual(t, len(sheet.rules[0].selectors), 2)
}

func TestInvalidDeclarationsInCascade(t *testing.T) {
	capture := tu.CaptureLogs()
	doc, styles := computeStyles(t, `
	<style>
		#p { width: 100px; max-height: 20px }
		p { width: -10px; max-height: auto }
	</style>
	<p id="p" style="width: bogus">a</p>
	<p id="q" style="height: 1px 2px">b</p>
	`)
	tu.AssertEqual(t, len(capture.Logs()), 4)

	// invalid declarations of higher priority do not hide valid ones
	p := styleOf(t, doc, styles, "p")
	tu.AssertEqual(t, p.Width, px(100))
	tu.AssertEqual(t, p.MaxHeight, px(20))
	tu.AssertEqual(t, p.Width.IsSpecified(), true)

	q := styleOf(t, doc, styles, "q")
	tu.AssertEqual(t, q.Width, pr.SToV("auto"))
	tu.AssertEqual(t, q.Height, pr.SToV("auto"))
	tu.AssertEqual(t, q.MaxHeight, pr.SToV("none"))
}

func TestInvalidDeclarations(t *testing.T) {
	capture := tu.CaptureLogs()
	doc, styles := computeStyles(t, `
	<style>
		a:hover { width: 10px }
		p { width: -10px; display: blocky; font-size: 12px }
	</style>
	<p id="p" style="float: middle; padding: 1px 2px 3px 4px 5px">a</p>
	`)
	logs := capture.Logs()
	tu.AssertEqual(t, len(logs), 5)

	style := styleOf(t, doc, styles, "p")
	tu.AssertEqual(t, style.Width, pr.SToV("auto"))
	tu.AssertEqual(t, style.Display, pr.DisplayBlock)
	tu.AssertEqual(t, style.Float, pr.FloatNone)
	tu.AssertEqual(t, style.FontSize, pr.Float(12))
}

func TestMediaQueries(t *testing.T) {
	doc, styles := computeStyles(t, `
	<style>
		@media print { #a { width: 10px } }
		@media screen, print { #b { width: 20px } }
		@media all { #c { width: 30px } }
		@media screen and (max-width: 100px) { #d { width: 40px } }
		@font-face { font-family: x }
	</style>
	<style media="print">#e { width: 50px }</style>
	<p id="a">a</p><p id="b">b</p><p id="c">c</p><p id="d">d</p><p id="e">e</p>
	`)
	tu.AssertEqual(t, styleOf(t, doc, styles, "a").Width, pr.SToV("auto"))
	tu.AssertEqual(t, styleOf(t, doc, styles, "b").Width, px(20))
	tu.AssertEqual(t, styleOf(t, doc, styles, "c").Width, px(30))
	tu.AssertEqual(t, styleOf(t, doc, styles, "d").Width, pr.SToV("auto"))
	tu.AssertEqual(t, styleOf(t, doc, styles, "e").Width, pr.SToV("auto"))

	tu.AssertEqual(t, evaluateMediaQuery([]string{"print", "all"}, "screen"), true)
	tu.AssertEqual(t, evaluateMediaQuery(nil, "screen"), false)
}

func TestViewportMeta(t *testing.T) {
	doc, _ := computeStyles(t, `<html><head><meta name="Viewport" content="width=device-width"></head><body></body></html>`)
	tu.AssertEqual(t, doc.ViewportSpecifiedByAuthor, true)
	doc, _ = computeStyles(t, `<html><head><meta name="description" content="x"></head><body></body></html>`)
	tu.AssertEqual(t, doc.ViewportSpecifiedByAuthor, false)
}

func TestDisplayNone(t *testing.T) {
	doc, styles := computeStyles(t, `<p id="p" style="display: none">a</p><script id="s">var a;</script>`)
	tu.AssertEqual(t, styleOf(t, doc, styles, "p").Display, pr.DisplayNone)
	tu.AssertEqual(t, styleOf(t, doc, styles, "s").Display, pr.DisplayNone)
}

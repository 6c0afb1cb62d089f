package autosizer

import (
	"strings"
	"testing"

	pr "github.com/benoitkugler/textautosizer/css/properties"
	bo "github.com/benoitkugler/textautosizer/html/boxes"
	tu "github.com/benoitkugler/textautosizer/utils/testutils"
)

func blockOfWidth(width pr.Float) *bo.BlockBox {
	out := bo.NewBlockBox(pr.InitialStyle(), nil, nil)
	out.Width = width
	return out
}

func TestMultiplierFromBlock(t *testing.T) {
	ta := New(&fakeDocument{settings: DefaultSettings()})
	for _, test := range []struct {
		info     PageInfo
		width    pr.Float
		expected float32
	}{
		{PageInfo{FrameWidth: 320, LayoutWidth: 980, BaseMultiplier: 1}, 300, 1},
		{PageInfo{FrameWidth: 320, LayoutWidth: 980, BaseMultiplier: 1}, 980, 3.0625},
		{PageInfo{FrameWidth: 320, LayoutWidth: 980, BaseMultiplier: 1}, 2000, 3.0625}, // capped by the layout width
		{PageInfo{FrameWidth: 320, LayoutWidth: 980, BaseMultiplier: 1}, 640, 2},
		{PageInfo{FrameWidth: 320, LayoutWidth: 980, BaseMultiplier: 2}, 300, 1.875},
		{PageInfo{FrameWidth: 320, LayoutWidth: 980, BaseMultiplier: 1}, 0, 1},
		{PageInfo{FrameWidth: 0, LayoutWidth: 980, BaseMultiplier: 1}, 980, 1},
		{PageInfo{FrameWidth: 0, LayoutWidth: 980, BaseMultiplier: 1.5}, 980, 1.5},
	} {
		ta.pageInfo = test.info
		tu.AssertClose(t, ta.multiplierFromBlock(blockOfWidth(test.width)), test.expected)
	}
}

func TestWidthFromBlock(t *testing.T) {
	root := parseAndBuild(t, `
	<div id="wrapper" style="width: 500px">
		<table id="table"><tr>
			<td id="fixed" style="width: 120px">a</td>
			<td id="percent" style="width: 50%">b</td>
			<td id="auto">c</td>
		</tr></table>
	</div>
	<ul style="width: 300px"><li id="item">x</li></ul>
	<div id="plain">y</div>
	<table id="orphan"><tr><td>z</td></tr></table>
	`)
	byID(t, root, "wrapper").Box().Width = 500
	byID(t, root, "table").Box().Width = 500
	byID(t, root, "plain").Box().Width = 250

	for _, test := range []struct {
		id       string
		expected pr.Float
	}{
		{"fixed", 120},
		{"percent", 250},
		{"auto", 500},
		{"table", 500},
		{"item", 300},
		{"plain", 250},
		{"orphan", 0},
	} {
		tu.AssertEqual(t, widthFromBlock(byID(t, root, test.id)), test.expected)
	}
}

func TestDeepestBlockContainingAllText(t *testing.T) {
	root := parseAndBuild(t, `
	<div id="r1"><div id="inner"><p>a</p><p>b</p></div></div>
	<div id="r2"><p id="single">only <em>text</em></p></div>
	<div id="r3"><p id="p3"><span><b>a</b><i>b</i></span></p></div>
	<div id="r4"><div></div></div>
	<div id="r5"><div style="float: left"><p>floated</p></div><p id="main">text</p></div>
	<ul id="r6"><li>a</li><li>b</li></ul>
	`)
	for _, test := range []struct {
		root, expected string
	}{
		{"r1", "inner"},
		{"r2", "single"},
		{"r3", "p3"},
		{"r4", "r4"},
		{"r5", "main"},
		{"r6", "r6"},
	} {
		got := deepestBlockContainingAllText(byID(t, root, test.root))
		if exp := byID(t, root, test.expected); got != exp {
			t.Errorf("#%s: expected %s, got %s", test.root, exp.Box(), got.Box())
		}
	}
}

func TestClusterHasEnoughText(t *testing.T) {
	doc := newFakeDocument(t, `
	<div id="short" style="width: 100px">`+strings.Repeat("a", 24)+`</div>
	<div id="enough" style="width: 100px">`+strings.Repeat("a", 25)+`</div>
	<div id="big-font" style="width: 100px; font-size: 32px">`+strings.Repeat("a", 13)+`</div>
	<div id="skip-float" style="width: 100px"><div style="float: left">`+strings.Repeat("a", 30)+`</div>short</div>
	<div id="nowrap" style="width: 100px; white-space: nowrap">`+strings.Repeat("a", 30)+`</div>
	<div><textarea id="textarea" style="width: 100px">x</textarea></div>
	`)
	doc.prepare()
	ta := doc.autosizer
	for _, test := range []struct {
		id       string
		expected bool
	}{
		{"short", false},
		{"enough", true},
		{"big-font", true},
		{"skip-float", false},
		{"nowrap", false},
		{"textarea", true},
	} {
		root := byID(t, doc.view, test.id)
		if got := ta.clusterWouldHaveEnoughTextToAutosize(root, root); got != test.expected {
			t.Errorf("#%s: expected %v, got %v", test.id, test.expected, got)
		}
	}

	// the result is memoized
	root := byID(t, doc.view, "short")
	c := newCluster(root, ClassifyBlock(root, allFlags), noIndex, noIndex)
	tu.AssertEqual(t, ta.clusterHasEnoughTextToAutosize(&c, root), false)
	tu.AssertEqual(t, c.hasEnoughText, notEnoughText)
	root.Box().Width = 10
	tu.AssertEqual(t, ta.clusterHasEnoughTextToAutosize(&c, root), false)
}

func TestSuppressingClusterSkipsTraversal(t *testing.T) {
	doc := newFakeDocument(t, `<div id="nowrap" style="width: 100px; white-space: nowrap"><p>`+longText+`</p></div>`)
	doc.prepare()
	root := byID(t, doc.view, "nowrap")
	c := newCluster(root, ClassifyBlock(root, allFlags), noIndex, noIndex)
	tu.AssertEqual(t, c.flags&Suppressing != 0, true)

	tu.AssertEqual(t, doc.autosizer.clusterHasEnoughTextToAutosize(&c, nil), false)
	tu.AssertEqual(t, c.hasEnoughText, notEnoughText)
	// the deepest block containing all text is not searched
	tu.AssertEqual(t, c.textContainer, nil)
}

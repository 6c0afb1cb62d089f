package autosizer

import (
	"testing"
)

func TestClassifyBlock(t *testing.T) {
	root := parseAndBuild(t, `
	<div id="plain">text</div>
	<div id="empty"></div>
	<div id="float" style="float: left">text</div>
	<div id="width" style="width: 100px">text</div>
	<ul><li id="item">text</li></ul>
	<ul><li id="floating-item" style="float: left">text</li></ul>
	<div id="form"><input></div>
	<div id="nowrap" style="white-space: nowrap">text</div>
	<div id="fixed-height" style="height: 100px">text</div>
	<div id="scroll" style="height: 100px; overflow-y: auto">text</div>
	<div style="height: 100px"><p id="constrained">text</p></div>
	<div><span id="inline-block" style="display: inline-block">text</span></div>
	<div id="editable" contenteditable>text</div>
	<div id="vertical" style="writing-mode: vertical-rl">text</div>
	<table id="table"><tr><td id="cell">text</td></tr></table>
	<div id="flex" style="display: flex">text</div>
	<div><textarea id="textarea">text</textarea></div>
	`)
	for _, test := range []struct {
		id       string
		expected BlockFlags
	}{
		{"plain", PotentialRoot},
		{"empty", 0},
		{"float", PotentialRoot | Independent},
		{"width", PotentialRoot | ExplicitWidth},
		{"item", 0},
		{"floating-item", PotentialRoot | Independent},
		{"form", PotentialRoot | Suppressing},
		{"nowrap", PotentialRoot | Suppressing},
		{"fixed-height", PotentialRoot | Suppressing},
		{"scroll", PotentialRoot},
		{"constrained", PotentialRoot | Suppressing},
		{"inline-block", PotentialRoot | Independent},
		{"editable", PotentialRoot | Independent},
		{"vertical", PotentialRoot | Independent},
		{"table", PotentialRoot | Independent},
		{"cell", PotentialRoot | Independent},
		{"flex", PotentialRoot | Independent},
		{"textarea", PotentialRoot | Independent},
	} {
		box := byID(t, root, test.id)
		if got := ClassifyBlock(box, allFlags); got != test.expected {
			t.Errorf("#%s: expected %s, got %s", test.id, test.expected, got)
		}
	}

	if got := ClassifyBlock(root, allFlags); got != PotentialRoot|Independent {
		t.Errorf("layout view: unexpected flags %s", got)
	}
	// the root and the body ignore their fixed height
	root = parseAndBuild(t, `<html style="height: 100%"><body style="height: 100%"><p id="p">text</p></body></html>`)
	if got := ClassifyBlock(byID(t, root, "p"), allFlags); got != PotentialRoot {
		t.Errorf("unexpected flags %s", got)
	}
}

func TestClassifyBlockMask(t *testing.T) {
	root := parseAndBuild(t, `<div id="d" style="float: right; width: 50%; white-space: pre">text</div>`)
	box := byID(t, root, "d")
	if got := ClassifyBlock(box, allFlags); got != PotentialRoot|Independent|ExplicitWidth|Suppressing {
		t.Fatalf("unexpected flags %s", got)
	}
	if got := ClassifyBlock(box, Independent|Suppressing); got != Independent|Suppressing {
		t.Fatalf("unexpected flags %s", got)
	}
	if got := ClassifyBlock(box, 0); got != 0 {
		t.Fatalf("unexpected flags %s", got)
	}
	if got := ClassifyBlock(firstText(t, box), allFlags); got != 0 {
		t.Fatalf("text box should not be classified, got %s", got)
	}
}

func TestRowOfLinks(t *testing.T) {
	root := parseAndBuild(t, `
	<div id="row"><a href="#">One</a> | <a href="#">Two</a> | <a href="#">Three</a></div>
	<div id="two-links"><a href="#">One</a> | <a href="#">Two</a></div>
	<div id="text"><a href="#">One</a> and more <a href="#">Two</a> | <a href="#">Three</a></div>
	<div id="br"><a href="#">One</a><br><a href="#">Two</a><a href="#">Three</a></div>
	<div id="sizes"><a href="#">One</a><a href="#">Two</a><a href="#" style="font-size: 20px">Three</a></div>
	<div id="anchors"><a>One</a><a>Two</a><a>Three</a></div>
	`)
	for _, test := range []struct {
		id       string
		expected bool
	}{
		{"row", true},
		{"two-links", false},
		{"text", false},
		{"br", false},
		{"sizes", false},
		{"anchors", false},
	} {
		box := byID(t, root, test.id)
		if got := blockIsRowOfLinks(box); got != test.expected {
			t.Errorf("#%s: expected %v, got %v", test.id, test.expected, got)
		}
	}
}

func TestCharacterCount(t *testing.T) {
	for _, test := range []struct {
		text     string
		expected int
	}{
		{"", 0},
		{"  abc  ", 3},
		{"été", 3},
		{"e\u0301te\u0301", 3}, // combining accents
		{"日本語", 3},
	} {
		if got := characterCount(test.text); got != test.expected {
			t.Errorf("%q: expected %d, got %d", test.text, test.expected, got)
		}
	}
}

package tracer

import (
	"bytes"
	"strings"
	"testing"

	bo "github.com/benoitkugler/textautosizer/html/boxes"
	"github.com/benoitkugler/textautosizer/html/tree"
)

func TestFormatFloat(t *testing.T) {
	for v, exp := range map[float32]string{
		1:       "1",
		3.0625:  "3.063",
		1.23456: "1.235",
		980:     "980",
	} {
		if got := FormatFloat(v); got != exp {
			t.Errorf("FormatFloat(%v): expected %s, got %s", v, exp, got)
		}
	}
}

func TestDumpTree(t *testing.T) {
	doc, err := tree.NewHTMLFromString(`<p style="font-size: 14px">Hello</p>`)
	if err != nil {
		t.Fatal(err)
	}
	root := bo.BuildFormattingStructure(doc.Root, tree.GetAllComputedStyles(doc, 980, 1000))

	var buf bytes.Buffer
	NewTracerTo(&buf).DumpTree(root, "before layout")

	out := buf.String()
	if !strings.HasPrefix(out, "before layout\n") {
		t.Fatalf("missing context in %q", out)
	}
	for _, exp := range []string{"<p>: width=0 font=14 x1", `"Hello"`, "<body>"} {
		if !strings.Contains(out, exp) {
			t.Errorf("missing %q in\n%s", exp, out)
		}
	}
}

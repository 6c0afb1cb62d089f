// Package tracer provides a function to dump the current layout tree,
// with the autosizing multipliers, which may be used in debug mode.
package tracer

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	pr "github.com/benoitkugler/textautosizer/css/properties"
	"github.com/benoitkugler/textautosizer/html/boxes"
	"github.com/benoitkugler/textautosizer/utils"
)

type Tracer struct {
	out io.Writer
}

// NewTracer panics if an error occurs.
func NewTracer(outFile string) Tracer {
	f, err := os.Create(outFile)
	if err != nil {
		panic(err)
	}

	return Tracer{out: f}
}

// NewTracerTo writes to [w] instead of a file.
func NewTracerTo(w io.Writer) Tracer { return Tracer{out: w} }

func FormatFloat(v pr.Float) string {
	return strconv.FormatFloat(float64(utils.RoundPrec(v, 3)), 'g', -1, 32)
}

func (t Tracer) Dump(line string) {
	fmt.Fprintln(t.out, line)
}

// DumpTree prints one line per box, with its content width,
// its specified font size and its autosizing multiplier.
func (t Tracer) DumpTree(box boxes.Box, context string) {
	fmt.Fprintln(t.out, context)

	var printer func(box boxes.Box, indent int)
	printer = func(box boxes.Box, indent int) {
		b := box.Box()
		fmt.Fprint(t.out, strings.Repeat(" ", indent))
		fmt.Fprintf(t.out, "%s <%s>: width=%s font=%s x%s\n", box.Type(), b.ElementTag(),
			FormatFloat(b.ContentLogicalWidth()),
			FormatFloat(b.Style.FontSize),
			FormatFloat(b.Style.TextSizeAdjust),
		)
		if box, ok := box.(*boxes.TextBox); ok && !box.LineBreak {
			fmt.Fprint(t.out, strings.Repeat(" ", indent+1))
			fmt.Fprintf(t.out, "%q\n", box.Text)
		}

		for _, child := range b.Children {
			printer(child, indent+1)
		}
	}

	printer(box, 0)

	fmt.Fprintln(t.out)
}

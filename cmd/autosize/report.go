package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/benoitkugler/textautosizer/html/autosizer"
	bo "github.com/benoitkugler/textautosizer/html/boxes"
	"github.com/benoitkugler/textautosizer/html/document"
)

var (
	colorCyan  = lipgloss.Color("36")
	colorGreen = lipgloss.Color("35")
	colorGray  = lipgloss.Color("245")
	colorDim   = lipgloss.Color("240")

	styleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleTag     = lipgloss.NewStyle().Foreground(colorGray)
	styleNumber  = lipgloss.NewStyle().Foreground(colorCyan)
	styleInflate = lipgloss.NewStyle().Foreground(colorGreen)
	styleDim     = lipgloss.NewStyle().Foreground(colorDim)
)

const maxTextLength = 40

// writeReport prints the page parameters, then one line per text box
// (or per box with [all]) with its multiplier and font sizes.
func writeReport(w io.Writer, doc *document.Document, all bool) error {
	info := doc.TextAutosizer().PageInfo()
	fmt.Fprintln(w, styleTitle.Render("Page"))
	fmt.Fprintf(w, "  frame width %s, layout width %s, base multiplier %s, autosizing %s\n\n",
		styleNumber.Render(fmt.Sprint(info.FrameWidth)),
		styleNumber.Render(fmt.Sprint(info.LayoutWidth)),
		styleNumber.Render(fmt.Sprintf("%g", info.BaseMultiplier)),
		styleNumber.Render(fmt.Sprint(info.PageNeedsAutosizing)))

	fmt.Fprintln(w, styleTitle.Render("Boxes"))
	root := doc.LayoutView()
	if root == nil {
		return fmt.Errorf("document has no layout tree")
	}
	for box := bo.Box(root); box != nil; box = bo.NextInPreOrder(box, nil) {
		text, isText := box.(*bo.TextBox)
		if !all && !isText {
			continue
		}
		if isText && text.LineBreak {
			continue
		}
		fmt.Fprintln(w, formatBox(box, depth(box)))
	}
	return nil
}

func depth(box bo.Box) int {
	d := 0
	for parent := box.Box().Parent; parent != nil; parent = parent.Box().Parent {
		d++
	}
	return d
}

func formatBox(box bo.Box, depth int) string {
	b := box.Box()
	var label string
	if text, ok := box.(*bo.TextBox); ok {
		label = styleDim.Render(fmt.Sprintf("%q", truncate(text.Text)))
	} else {
		label = styleTag.Render(fmt.Sprintf("<%s> %s", b.ElementTag(), box.Type()))
	}

	multiplier := fmt.Sprintf("x%.4g", b.Style.TextSizeAdjust)
	if b.Style.TextSizeAdjust != 1 {
		multiplier = styleInflate.Render(multiplier)
	} else {
		multiplier = styleDim.Render(multiplier)
	}
	sizes := fmt.Sprintf("%.4gpx -> %.4gpx", b.Style.FontSize, autosizer.AutosizedFontSize(b.Style))
	line := fmt.Sprintf("%s%s %s %s", strings.Repeat("  ", depth), label, multiplier, styleNumber.Render(sizes))
	if el := b.GeneratingElement(); el != nil {
		if info := autosizer.DebugInfo(el); info != "" {
			line += " " + styleDim.Render(info)
		}
	}
	return line
}

func truncate(text string) string {
	runes := []rune(text)
	if len(runes) <= maxTextLength {
		return text
	}
	return string(runes[:maxTextLength-1]) + "…"
}

package tree

import (
	"sort"
	"strconv"
	"strings"

	pr "github.com/benoitkugler/textautosizer/css/properties"
	"github.com/benoitkugler/textautosizer/logger"
	"github.com/benoitkugler/textautosizer/utils"
	"github.com/tdewolff/parse/v2/css"
	"golang.org/x/net/html"
)

// StyleFor provides the computed style of every element of a document.
type StyleFor struct {
	styles map[*html.Node]*pr.Style
}

// Get returns the computed style of [element], or nil if [element]
// is not an element of the document.
func (s *StyleFor) Get(element *html.Node) *pr.Style {
	return s.styles[element]
}

// Set overrides the style of [element].
func (s *StyleFor) Set(element *html.Node, style *pr.Style) {
	s.styles[element] = style
}

const (
	originUA = iota
	originAuthor
	originStyleAttr
)

type weight struct {
	origin      int
	specificity [3]int
	order       int
}

func (w weight) less(other weight) bool {
	if w.origin != other.origin {
		return w.origin < other.origin
	}
	if w.specificity != other.specificity {
		for i := range w.specificity {
			if w.specificity[i] != other.specificity[i] {
				return w.specificity[i] < other.specificity[i]
			}
		}
	}
	return w.order < other.order
}

type weightedDeclarations struct {
	weight       weight
	declarations []declaration
}

type computeContext struct {
	rootFontSize                  pr.Float
	viewportWidth, viewportHeight pr.Float
}

// GetAllComputedStyles computes the style of every element of [doc].
// [viewportWidth] and [viewportHeight] are used to resolve the viewport units.
func GetAllComputedStyles(doc *HTML, viewportWidth, viewportHeight pr.Float) *StyleFor {
	logger.ProgressLogger.Printf("Step 2 - Computing styles")
	out := &StyleFor{styles: make(map[*html.Node]*pr.Style)}
	sheets := append([]CSS{UAStylesheet}, doc.Stylesheets...)
	ctx := computeContext{rootFontSize: pr.DefaultFontSize, viewportWidth: viewportWidth, viewportHeight: viewportHeight}

	var walk func(element *html.Node, parentStyle *pr.Style)
	walk = func(element *html.Node, parentStyle *pr.Style) {
		declared := cascade(element, sheets)
		style := computeStyle(element, parentStyle, declared, ctx)
		if parentStyle == nil {
			ctx.rootFontSize = style.FontSize
		}
		out.styles[element] = style
		for child := element.FirstChild; child != nil; child = child.NextSibling {
			if child.Type == html.ElementNode {
				walk(child, style)
			}
		}
	}
	walk((*html.Node)(doc.Root), nil)
	return out
}

// cascade returns the winning declared value of each property.
func cascade(element *html.Node, sheets []CSS) map[string][]css.Token {
	var matching []weightedDeclarations
	order := 0
	for sheetIndex, sheet := range sheets {
		origin := originAuthor
		if sheetIndex == 0 {
			origin = originUA
		}
		for _, rule := range sheet.rules {
			order++
			var (
				best    [3]int
				matched bool
			)
			for _, sel := range rule.selectors {
				if sel.matches(element) {
					if !matched || (weight{specificity: best}).less(weight{specificity: sel.specificity}) {
						best = sel.specificity
					}
					matched = true
				}
			}
			if matched {
				matching = append(matching, weightedDeclarations{weight{origin, best, order}, rule.declarations})
			}
		}
	}
	if attr := (*utils.HTMLNode)(element).Get("style"); attr != "" {
		matching = append(matching, weightedDeclarations{weight{originStyleAttr, [3]int{}, order + 1}, parseDeclarations(attr)})
	}
	sort.SliceStable(matching, func(i, j int) bool { return matching[i].weight.less(matching[j].weight) })

	out := make(map[string][]css.Token)
	for _, wd := range matching {
		for _, decl := range wd.declarations {
			out[decl.name] = decl.values
		}
	}
	return out
}

func computeStyle(element *html.Node, parentStyle *pr.Style, declared map[string][]css.Token, ctx computeContext) *pr.Style {
	style := pr.InheritFrom(parentStyle)
	if parentStyle == nil { // the root element has no parent
		style.Display = pr.DisplayBlock
	}
	parentFontSize := pr.DefaultFontSize
	if parentStyle != nil {
		parentFontSize = parentStyle.FontSize
	}
	if values, ok := declared["font-size"]; ok {
		applyDeclaration(style, "font-size", values, parentFontSize, ctx)
	}
	for name, values := range declared {
		if name != "font-size" {
			applyDeclaration(style, name, values, parentFontSize, ctx)
		}
	}

	switch (*utils.HTMLNode)(element).Get("contenteditable") {
	case "", "true":
		if (*utils.HTMLNode)(element).Has("contenteditable") {
			style.UserModify = pr.ReadWrite
		}
	case "plaintext-only":
		style.UserModify = pr.ReadWritePlaintextOnly
	case "false":
		style.UserModify = pr.ReadOnly
	}

	// https://www.w3.org/TR/CSS21/visuren.html#dis-pos-flo
	if style.Display != pr.DisplayNone && (style.IsFloating() || style.Position.IsOutOfFlow() || parentStyle == nil) {
		style.Display = blockify(style.Display)
	}
	return style
}

// isValidDeclaration returns false if the value of [decl] cannot be
// applied, so that it does not take part in the cascade.
func isValidDeclaration(decl declaration) bool {
	return applyDeclaration(new(pr.Style), decl.name, decl.values, pr.DefaultFontSize, computeContext{})
}

// applyDeclaration sets the computed value of one property on [style],
// which is left unchanged if the value is invalid.
// Font-relative lengths use style.FontSize, so 'font-size' must be applied first.
func applyDeclaration(style *pr.Style, name string, values []css.Token, parentFontSize pr.Float, ctx computeContext) bool {
	switch name {
	case "font-size":
		fs, ok := computeFontSize(values, parentFontSize, ctx)
		if ok {
			style.FontSize = fs
		}
		return ok
	case "display":
		v, ok := ident(values)
		if !ok || !pr.Display(v).IsValid() {
			return false
		}
		style.Display = pr.Display(v)
		return true
	case "position":
		return setKeyword(values, &style.Position, pr.PositionStatic, pr.PositionRelative, pr.PositionAbsolute, pr.PositionFixed, pr.PositionSticky)
	case "float":
		return setKeyword(values, &style.Float, pr.FloatNone, pr.FloatLeft, pr.FloatRight)
	case "direction":
		return setKeyword(values, &style.Direction, pr.DirectionLtr, pr.DirectionRtl)
	case "writing-mode":
		return setKeyword(values, &style.WritingMode, pr.HorizontalTb, pr.VerticalRl, pr.VerticalLr)
	case "overflow-x":
		return setKeyword(values, &style.OverflowX, pr.OverflowVisible, pr.OverflowHidden, pr.OverflowClip, pr.OverflowScroll, pr.OverflowAuto)
	case "overflow-y":
		return setKeyword(values, &style.OverflowY, pr.OverflowVisible, pr.OverflowHidden, pr.OverflowClip, pr.OverflowScroll, pr.OverflowAuto)
	case "white-space":
		return setKeyword(values, &style.WhiteSpace, pr.WhiteSpaceNormal, pr.WhiteSpacePre, pr.WhiteSpaceNowrap,
			pr.WhiteSpacePreWrap, pr.WhiteSpacePreLine, pr.WhiteSpaceBreakSpaces)
	case "-webkit-user-modify":
		return setKeyword(values, &style.UserModify, pr.ReadOnly, pr.ReadWrite, pr.ReadWritePlaintextOnly)
	case "table-layout":
		return setKeyword(values, &style.TableLayout, pr.TableLayoutAuto, pr.TableLayoutFixed)
	case "width", "height", "max-height":
		keywords := []string{"auto", "min-content", "max-content", "fit-content"}
		if name == "max-height" {
			keywords[0] = "none"
		}
		v, ok := computeSize(values, style.FontSize, ctx, keywords...)
		if !ok {
			return false
		}
		switch name {
		case "width":
			style.Width = v
		case "height":
			style.Height = v
		default:
			style.MaxHeight = v
		}
		return true
	case "padding-left", "padding-right":
		v, ok := computeSize(values, style.FontSize, ctx)
		if !ok {
			return false
		}
		if name == "padding-left" {
			style.PaddingLeft = v.Dimension
		} else {
			style.PaddingRight = v.Dimension
		}
		return true
	}
	// the other properties are not used
	return true
}

func blockify(display pr.Display) pr.Display {
	switch display {
	case pr.DisplayInlineTable:
		return pr.DisplayTable
	case pr.DisplayInlineFlex:
		return pr.DisplayFlex
	case pr.DisplayInlineGrid:
		return pr.DisplayGrid
	case pr.DisplayInline, pr.DisplayInlineBlock, pr.DisplayTableRowGroup, pr.DisplayTableHeaderGroup,
		pr.DisplayTableFooterGroup, pr.DisplayTableRow, pr.DisplayTableColumnGroup, pr.DisplayTableColumn,
		pr.DisplayTableCell, pr.DisplayTableCaption:
		return pr.DisplayBlock
	}
	return display
}

// ident returns the lower-cased keyword of a single identifier value.
func ident(values []css.Token) (string, bool) {
	if len(values) != 1 || values[0].TokenType != css.IdentToken {
		return "", false
	}
	return strings.ToLower(string(values[0].Data)), true
}

func setKeyword[T ~string](values []css.Token, target *T, allowed ...T) bool {
	v, ok := ident(values)
	if !ok {
		return false
	}
	for _, a := range allowed {
		if T(v) == a {
			*target = a
			return true
		}
	}
	return false
}

// parseDimension parses a single number, percentage or dimension token.
// Unitless zero is accepted as a length.
func parseDimension(values []css.Token) (pr.Dimension, bool) {
	if len(values) != 1 {
		return pr.Dimension{}, false
	}
	data := string(values[0].Data)
	switch values[0].TokenType {
	case css.NumberToken:
		v, err := strconv.ParseFloat(data, 32)
		if err != nil || v != 0 {
			return pr.Dimension{}, false
		}
		return pr.ZeroPixels, true
	case css.PercentageToken:
		v, err := strconv.ParseFloat(strings.TrimSuffix(data, "%"), 32)
		if err != nil {
			return pr.Dimension{}, false
		}
		return pr.NewDim(pr.Float(v), pr.Perc), true
	case css.DimensionToken:
		end := 0
		for end < len(data) && strings.IndexByte("+-.0123456789", data[end]) != -1 {
			end++
		}
		v, err := strconv.ParseFloat(data[:end], 32)
		if err != nil {
			return pr.Dimension{}, false
		}
		unit, ok := pr.UnitsByName[strings.ToLower(data[end:])]
		if !ok {
			return pr.Dimension{}, false
		}
		return pr.NewDim(pr.Float(v), unit), true
	}
	return pr.Dimension{}, false
}

// toPixels converts an absolute or relative length to pixels.
// Percentages are kept as is.
func toPixels(d pr.Dimension, fontSize pr.Float, ctx computeContext) pr.Dimension {
	switch d.Unit {
	case pr.Perc, pr.Px:
		return d
	case pr.Em:
		return pr.NewDim(d.Value*fontSize, pr.Px)
	case pr.Ex, pr.Ch: // approximation of the font metrics
		return pr.NewDim(d.Value*fontSize/2, pr.Px)
	case pr.Rem:
		return pr.NewDim(d.Value*ctx.rootFontSize, pr.Px)
	case pr.Vw:
		return pr.NewDim(d.Value*ctx.viewportWidth/100, pr.Px)
	case pr.Vh:
		return pr.NewDim(d.Value*ctx.viewportHeight/100, pr.Px)
	default:
		return pr.NewDim(d.Value*pr.LengthsToPixels[d.Unit], pr.Px)
	}
}

// computeSize accepts the given keywords, lengths and percentages.
// Negative values are invalid.
func computeSize(values []css.Token, fontSize pr.Float, ctx computeContext, keywords ...string) (pr.DimOrS, bool) {
	if kw, ok := ident(values); ok {
		if utils.NewSet(keywords...).Has(kw) {
			return pr.SToV(kw), true
		}
		return pr.DimOrS{}, false
	}
	d, ok := parseDimension(values)
	if !ok || d.Value < 0 {
		return pr.DimOrS{}, false
	}
	return toPixels(d, fontSize, ctx).ToValue(), true
}

func computeFontSize(values []css.Token, parentFontSize pr.Float, ctx computeContext) (pr.Float, bool) {
	if kw, ok := ident(values); ok {
		switch kw {
		case "smaller":
			return parentFontSize / 1.2, true
		case "larger":
			return parentFontSize * 1.2, true
		}
		v, ok := pr.FontSizeKeywords[kw]
		return v, ok
	}
	d, ok := parseDimension(values)
	if !ok || d.Value < 0 {
		return 0, false
	}
	if d.Unit == pr.Perc {
		return parentFontSize * d.Value / 100, true
	}
	// font-size: 2em is relative to the parent font
	return toPixels(d, parentFontSize, ctx).Value, true
}

package tree

import (
	"io"
	"strings"

	"github.com/benoitkugler/textautosizer/logger"
	"github.com/benoitkugler/textautosizer/utils"
	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"golang.org/x/net/html"
)

// CSS is a parsed style sheet.
//
// Only the type, class and id selectors are supported,
// combined with the descendant and child combinators.
type CSS struct {
	rules []rule
}

type declaration struct {
	name   string
	values []css.Token
}

type rule struct {
	selectors    []selector
	declarations []declaration
}

// compound selector, like div.teaser#main
type compound struct {
	tag     string // "" or "*" match any element
	id      string
	classes []string
}

type selector struct {
	// compound selectors, starting with the subject
	parts []compound
	// combinators[i] links parts[i] to parts[i+1], and is ' ' or '>'
	combinators []byte
	specificity [3]int
}

// NewCSS parses a style sheet. Invalid or unsupported rules are
// dropped with a warning.
func NewCSS(content string, deviceMediaType string) CSS {
	var (
		out       CSS
		current   = -1 // index of the rule receiving declarations
		skipDepth int  // > 0 inside an ignored at-rule block
		// selectors of a list, but the last one
		pending []css.Token
	)
	p := css.NewParser(parse.NewInputString(content), false)
	for {
		gt, _, data := p.Next()
		switch gt {
		case css.ErrorGrammar:
			if err := p.Err(); err != nil && err != io.EOF {
				logger.WarningLogger.Printf("invalid style sheet: %s", err)
			}
			return out
		case css.BeginAtRuleGrammar:
			if skipDepth > 0 || !strings.EqualFold(string(data), "@media") ||
				!evaluateMediaQuery(parseMediaQuery(p.Values()), deviceMediaType) {
				skipDepth++
			}
		case css.EndAtRuleGrammar:
			if skipDepth > 0 {
				skipDepth--
			}
		case css.QualifiedRuleGrammar:
			// the parser emits one qualified rule for each selector
			// before the last one of a list
			pending = append(pending, copyTokens(p.Values())...)
			pending = append(pending, css.Token{TokenType: css.CommaToken, Data: []byte(",")})
		case css.BeginRulesetGrammar:
			current = -1
			tokens := append(pending, p.Values()...)
			pending = nil
			if skipDepth > 0 {
				continue
			}
			selectors, ok := parseSelectors(tokens)
			if !ok {
				logger.WarningLogger.Printf("unsupported selector %q, the rule is ignored", serialize(tokens))
				continue
			}
			out.rules = append(out.rules, rule{selectors: selectors})
			current = len(out.rules) - 1
		case css.DeclarationGrammar:
			if current != -1 {
				out.rules[current].declarations = append(out.rules[current].declarations,
					newDeclaration(data, p.Values())...)
			}
		case css.EndRulesetGrammar:
			current = -1
		}
	}
}

// parseDeclarations parses the content of a style attribute.
func parseDeclarations(content string) []declaration {
	var out []declaration
	p := css.NewParser(parse.NewInputString(content), true)
	for {
		gt, _, data := p.Next()
		switch gt {
		case css.ErrorGrammar:
			if err := p.Err(); err != nil && err != io.EOF {
				logger.WarningLogger.Printf("invalid style attribute %q: %s", content, err)
			}
			return out
		case css.DeclarationGrammar:
			out = append(out, newDeclaration(data, p.Values())...)
		}
	}
}

// newDeclaration copies the tokens, which are only valid until the next
// call to the parser, and expands the supported shorthands.
func newDeclaration(name []byte, values []css.Token) []declaration {
	var tokens []css.Token
	for i := 0; i < len(values); i++ {
		tk := values[i]
		if tk.TokenType == css.WhitespaceToken {
			continue
		}
		if tk.TokenType == css.DelimToken && string(tk.Data) == "!" { // !important is not supported
			break
		}
		tokens = append(tokens, css.Token{TokenType: tk.TokenType, Data: append([]byte(nil), tk.Data...)})
	}
	prop := strings.ToLower(string(name))
	switch prop {
	case "overflow":
		return validDeclarations(declaration{"overflow-x", tokens}, declaration{"overflow-y", tokens})
	case "padding":
		// [top, right, bottom, left] expansion, only the horizontal sides are kept
		switch len(tokens) {
		case 1:
			return validDeclarations(declaration{"padding-left", tokens}, declaration{"padding-right", tokens})
		case 2, 3:
			return validDeclarations(declaration{"padding-left", tokens[1:2]}, declaration{"padding-right", tokens[1:2]})
		case 4:
			return validDeclarations(declaration{"padding-left", tokens[3:4]}, declaration{"padding-right", tokens[1:2]})
		default:
			logger.WarningLogger.Printf("invalid padding value %q", serialize(tokens))
			return nil
		}
	case "user-modify":
		prop = "-webkit-user-modify"
	}
	return validDeclarations(declaration{prop, tokens})
}

// validDeclarations drops, with a warning, the declarations whose
// value is invalid, so that they do not hide a valid one in the cascade.
func validDeclarations(decls ...declaration) []declaration {
	out := decls[:0]
	for _, decl := range decls {
		if isValidDeclaration(decl) {
			out = append(out, decl)
		} else {
			logger.WarningLogger.Printf("ignored invalid declaration %s: %q", decl.name, serialize(decl.values))
		}
	}
	return out
}

func copyTokens(tokens []css.Token) []css.Token {
	out := make([]css.Token, len(tokens))
	for i, tk := range tokens {
		out[i] = css.Token{TokenType: tk.TokenType, Data: append([]byte(nil), tk.Data...)}
	}
	return out
}

func serialize(tokens []css.Token) string {
	var b strings.Builder
	for _, tk := range tokens {
		b.Write(tk.Data)
	}
	return b.String()
}

func parseSelectors(tokens []css.Token) ([]selector, bool) {
	var (
		out       []selector
		compounds []compound
		combs     []byte
		comp      compound
		inComp    bool
		comb      byte // pending combinator
	)
	endCompound := func() {
		if !inComp {
			return
		}
		if len(compounds) != 0 {
			if comb == 0 {
				comb = ' '
			}
			combs = append(combs, comb)
		}
		compounds = append(compounds, comp)
		comp, inComp, comb = compound{}, false, 0
	}
	endSelector := func() bool {
		endCompound()
		if len(compounds) == 0 || comb != 0 {
			return false
		}
		out = append(out, newSelector(compounds, combs))
		compounds, combs = nil, nil
		return true
	}
	for i := 0; i < len(tokens); i++ {
		tk := tokens[i]
		switch tk.TokenType {
		case css.IdentToken:
			if inComp { // type selectors come first
				return nil, false
			}
			comp.tag, inComp = strings.ToLower(string(tk.Data)), true
		case css.HashToken:
			comp.id, inComp = string(tk.Data[1:]), true
		case css.DelimToken:
			switch string(tk.Data) {
			case ".":
				if i+1 >= len(tokens) || tokens[i+1].TokenType != css.IdentToken {
					return nil, false
				}
				comp.classes = append(comp.classes, string(tokens[i+1].Data))
				inComp = true
				i++
			case "*":
				if inComp {
					return nil, false
				}
				comp.tag, inComp = "*", true
			case ">":
				endCompound()
				if len(compounds) == 0 {
					return nil, false
				}
				comb = '>'
			default:
				return nil, false
			}
		case css.WhitespaceToken:
			endCompound()
		case css.CommaToken:
			if !endSelector() {
				return nil, false
			}
		default: // attribute selectors, pseudo classes, ...
			return nil, false
		}
	}
	if !endSelector() {
		return nil, false
	}
	return out, true
}

// newSelector reverses the parts, so that the subject comes first.
func newSelector(compounds []compound, combs []byte) selector {
	out := selector{
		parts:       make([]compound, len(compounds)),
		combinators: make([]byte, len(combs)),
	}
	for i, c := range compounds {
		out.parts[len(compounds)-1-i] = c
		if c.id != "" {
			out.specificity[0]++
		}
		out.specificity[1] += len(c.classes)
		if c.tag != "" && c.tag != "*" {
			out.specificity[2]++
		}
	}
	for i, c := range combs {
		out.combinators[len(combs)-1-i] = c
	}
	return out
}

func (c compound) matches(element *html.Node) bool {
	if element.Type != html.ElementNode {
		return false
	}
	if c.tag != "" && c.tag != "*" && c.tag != element.Data {
		return false
	}
	node := (*utils.HTMLNode)(element)
	if c.id != "" && node.Get("id") != c.id {
		return false
	}
	if len(c.classes) != 0 {
		classes := node.Classes()
		for _, class := range c.classes {
			if !classes.Has(class) {
				return false
			}
		}
	}
	return true
}

func (s selector) matches(element *html.Node) bool {
	return s.parts[0].matches(element) && s.matchAncestors(element, 1)
}

func (s selector) matchAncestors(element *html.Node, index int) bool {
	if index == len(s.parts) {
		return true
	}
	comb := s.combinators[index-1]
	for parent := element.Parent; parent != nil && parent.Type == html.ElementNode; parent = parent.Parent {
		if s.parts[index].matches(parent) && s.matchAncestors(parent, index+1) {
			return true
		}
		if comb == '>' {
			return false
		}
	}
	return false
}

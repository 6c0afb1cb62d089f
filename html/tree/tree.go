package tree

import (
	_ "embed"
	"fmt"
	"io"
	"strings"

	"github.com/benoitkugler/textautosizer/logger"
	"github.com/benoitkugler/textautosizer/utils"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Represents an HTML document parsed by net/html.
type HTML struct {
	Root *utils.HTMLNode

	// Stylesheets are the author <style> sheets, in document order.
	Stylesheets []CSS

	// ViewportSpecifiedByAuthor is true when the document
	// provides a <meta name="viewport"> element.
	ViewportSpecifiedByAuthor bool

	mediaType string
}

var (
	// UAStylesheet is the user agent style sheet
	UAStylesheet CSS

	//go:embed ua.css
	uaCSS string
)

func init() {
	UAStylesheet = NewCSS(uaCSS, "all")
}

// NewHTML parses an HTML document.
//
// `mediaType` is the media type to use for “@media“, and defaults to "screen".
func NewHTML(content io.Reader, mediaType string) (*HTML, error) {
	logger.ProgressLogger.Printf("Step 1 - Parsing HTML")
	if mediaType == "" {
		mediaType = "screen"
	}

	root, err := html.ParseWithOptions(content, html.ParseOptionEnableScripting(false))
	if err != nil {
		return nil, fmt.Errorf("invalid html input: %w", err)
	}
	if root.FirstChild == nil {
		return nil, fmt.Errorf("invalid html input: empty document")
	}

	var out HTML
	// html.Parse wraps the <html> tag
	node := root.FirstChild
	for node != nil && node.Type != html.ElementNode {
		node = node.NextSibling
	}
	if node == nil {
		return nil, fmt.Errorf("invalid html input: missing root element")
	}
	out.Root = (*utils.HTMLNode)(node)
	out.mediaType = mediaType
	out.collectHeadData(node)
	return &out, nil
}

// NewHTMLFromString is a convenience wrapper around [NewHTML].
func NewHTMLFromString(content string) (*HTML, error) {
	return NewHTML(strings.NewReader(content), "")
}

// collectHeadData walks the document looking for <style> and
// <meta name=viewport> elements.
func (h *HTML) collectHeadData(node *html.Node) {
	if node.Type == html.ElementNode {
		switch node.DataAtom {
		case atom.Style:
			media := (*utils.HTMLNode)(node).Get("media")
			if media == "" || evaluateMediaQuery(strings.Split(strings.ReplaceAll(media, " ", ""), ","), h.mediaType) {
				h.Stylesheets = append(h.Stylesheets, NewCSS(textContent(node), h.mediaType))
			}
			return
		case atom.Meta:
			if strings.EqualFold((*utils.HTMLNode)(node).Get("name"), "viewport") {
				h.ViewportSpecifiedByAuthor = true
			}
		}
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		h.collectHeadData(child)
	}
}

func textContent(node *html.Node) string {
	var b strings.Builder
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == html.TextNode {
			b.WriteString(child.Data)
		}
	}
	return b.String()
}

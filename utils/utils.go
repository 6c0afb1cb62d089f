package utils

import (
	"strings"

	"golang.org/x/net/html"
)

var Has = struct{}{}

type Set map[string]struct{}

func (s Set) Add(key string) {
	s[key] = Has
}

func (s Set) Extend(keys []string) {
	for _, key := range keys {
		s[key] = Has
	}
}

func (s Set) Has(key string) bool {
	_, in := s[key]
	return in
}

func NewSet(values ...string) Set {
	s := make(Set, len(values))
	for _, v := range values {
		s.Add(v)
	}
	return s
}

// HTMLNode is a simple wrapper around an html element,
// adding attributes helpers.
type HTMLNode html.Node

// Get returns the attribute [name], or "" if it is absent.
func (h *HTMLNode) Get(name string) string {
	for _, attr := range h.Attr {
		if attr.Key == name {
			return attr.Val
		}
	}
	return ""
}

// Has returns true if the attribute [name] is present.
func (h *HTMLNode) Has(name string) bool {
	for _, attr := range h.Attr {
		if attr.Key == name {
			return true
		}
	}
	return false
}

// Set adds or replaces the attribute [name].
func (h *HTMLNode) Set(name, value string) {
	for i, attr := range h.Attr {
		if attr.Key == name {
			h.Attr[i].Val = value
			return
		}
	}
	h.Attr = append(h.Attr, html.Attribute{Key: name, Val: value})
}

// Classes returns the set of classes of the element.
func (h *HTMLNode) Classes() Set {
	return NewSet(strings.Fields(h.Get("class"))...)
}

// ElementIndex returns the number of element siblings preceding [h].
func (h *HTMLNode) ElementIndex() int {
	index := 0
	for sibling := h.PrevSibling; sibling != nil; sibling = sibling.PrevSibling {
		if sibling.Type == html.ElementNode {
			index++
		}
	}
	return index
}

package tree

import (
	"strings"

	"github.com/tdewolff/parse/v2/css"
)

// Return the boolean evaluation of `queryList` for the given
// `deviceMediaType`.
func evaluateMediaQuery(queryList []string, deviceMediaType string) bool {
	// TODO: actual support for media features, not just media types
	for _, query := range queryList {
		if query == "all" || query == deviceMediaType {
			return true
		}
	}
	return false
}

// parseMediaQuery returns the media types of an @media prelude,
// or nil if the prelude uses media features.
func parseMediaQuery(tokens []css.Token) []string {
	var (
		media   []string
		current strings.Builder
	)
	for _, tk := range tokens {
		switch tk.TokenType {
		case css.WhitespaceToken:
		case css.IdentToken:
			if current.Len() != 0 { // "only screen", "not print"...
				return nil
			}
			current.WriteString(strings.ToLower(string(tk.Data)))
		case css.CommaToken:
			media = append(media, current.String())
			current.Reset()
		default:
			return nil
		}
	}
	if current.Len() != 0 {
		media = append(media, current.String())
	}
	if len(media) == 0 {
		return []string{"all"}
	}
	return media
}

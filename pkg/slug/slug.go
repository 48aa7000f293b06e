// Package slug generates URL-friendly identifiers from display names.
package slug

import (
	"regexp"
	"strings"
)

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// Generate creates a URL-friendly slug from the given name.
//
//	"Large Appliance"  -> "large-appliance"
//	"Sound  Systems!"  -> "sound-systems"
func Generate(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = nonSlugChars.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// Package mention extracts @name user references from free text.
package mention

import "regexp"

// pattern matches "@" followed by one or more word characters: letters of
// any script, digits, underscore. Go's \w is ASCII-only, so the classes are
// spelled out to keep non-ASCII names mentionable.
var pattern = regexp.MustCompile(`@([\p{L}\p{N}_]+)`)

// Extract returns the candidate names mentioned in text, in order of first
// appearance. Duplicates are retained; resolution decides what to do with
// them.
func Extract(text string) []string {
	matches := pattern.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}
	candidates := make([]string, 0, len(matches))
	for _, m := range matches {
		candidates = append(candidates, m[1])
	}
	return candidates
}

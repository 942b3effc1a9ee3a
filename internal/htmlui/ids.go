package htmlui

import (
	"regexp"
	"strings"
)

// idPattern matches a persisted record identifier appearing as a URL path
// segment: exactly 24 lowercase hexadecimal characters. No other shape is
// recognized.
var idPattern = regexp.MustCompile(`/([a-f0-9]{24})(?:/|$)`)

// ExtractID returns the entity identifier embedded in a URL path, if any.
func ExtractID(url string) (string, bool) {
	m := idPattern.FindStringSubmatch(url)
	if m == nil {
		return "", false
	}
	return m[1], true
}

var emailPattern = regexp.MustCompile(`[\w.-]+@[\w.-]+\.\w+`)

// EmailIn pulls a bare email address out of a larger chunk of text,
// falling back to the trimmed text itself when no address is recognized.
func EmailIn(text string) string {
	if m := emailPattern.FindString(text); m != "" {
		return m
	}
	return strings.TrimSpace(text)
}

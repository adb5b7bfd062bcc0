package utils

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	richTextPolicy  = bluemonday.UGCPolicy()
	plainTextPolicy = bluemonday.StrictPolicy()
)

// SanitizeHTML keeps user generated formatting (blog bodies) and drops scripts, handlers and the like
func SanitizeHTML(input string) string {
	return strings.TrimSpace(richTextPolicy.Sanitize(input))
}

// StripHTML removes every tag, used for comments and short texts
func StripHTML(input string) string {
	return strings.TrimSpace(plainTextPolicy.Sanitize(input))
}

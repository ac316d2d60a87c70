package utils

import (
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// tagPattern matches an HTML-tag-like run: an opening angle bracket, any
// non-">" characters, then a closing bracket or end of input. Comment bodies
// have been filtered with exactly this pattern since the first release, so it
// must stay as-is: a stricter sanitizer would accept or reject inputs
// differently from what is already stored.
var tagPattern = regexp.MustCompile(`</?[^>]+(>|$)`)

// SanitizeComment strips tag-like markup from a comment body and trims
// surrounding whitespace. It does not decode entities and does not treat
// malformed or nested brackets specially.
func SanitizeComment(input string) string {
	return strings.TrimSpace(tagPattern.ReplaceAllString(input, ""))
}

var blogPolicy = bluemonday.UGCPolicy()

// SanitizeBlogHTML cleans admin-authored blog content, keeping the usual
// user-generated-content markup while removing anything executable.
func SanitizeBlogHTML(input string) string {
	return blogPolicy.Sanitize(input)
}

package testutil

import (
	"strings"

	"github.com/lithammer/dedent"
)

// Dedent removes any common leading whitespace from every line in text. An
// initial newline is removed.
//
// This can be used to make multiline (usually raw) strings to line up with the
// left edge of the display, while still presenting them in the source code in
// indented form.
func Dedent(text string) string {
	return dedent.Dedent(strings.TrimPrefix(text, "\n"))
}

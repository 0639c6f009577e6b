package linkedin

import (
	"fmt"
	"unicode/utf8"
)

// CheckLimit reports whether text has more than limit Unicode code points. If
// it does, it also returns a warning message.
func CheckLimit(text string, limit int) (exceeds bool, message string) {
	n := utf8.RuneCountInString(text)
	if n <= limit {
		return false, ""
	}
	return true, fmt.Sprintf("Warning: Output is %d characters (LinkedIn limit: %d)", n, limit)
}

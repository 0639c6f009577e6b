// Package unistyle maps ASCII letters to the styled letterforms of the
// Mathematical Alphanumeric Symbols block.
//
// Platforms that render no rich text still display these code points, so
// text passed through [Apply] looks bold or italic wherever it is pasted.
// Only A-Z and a-z are mapped; digits, punctuation, whitespace and every
// non-ASCII rune are left alone.
package unistyle

import "strings"

// Style is the typographic style of a run of text.
type Style uint8

// Possible values of Style.
const (
	Normal Style = iota
	Bold
	Italic
	BoldItalic
)

var styleNames = [...]string{
	Normal:     "Normal",
	Bold:       "Bold",
	Italic:     "Italic",
	BoldItalic: "BoldItalic",
}

func (s Style) String() string {
	if int(s) < len(styleNames) {
		return styleNames[s]
	}
	return "Style(?)"
}

// First code points of the uppercase and lowercase ranges of each style.
var bases = [...]struct{ upper, lower rune }{
	Bold:       {0x1D400, 0x1D41A},
	Italic:     {0x1D434, 0x1D44E},
	BoldItalic: {0x1D468, 0x1D482},
}

// Combine returns the style of text styled with inner while already inside
// text styled with outer.
func Combine(outer, inner Style) Style {
	switch {
	case outer == Normal:
		return inner
	case inner == Normal, outer == inner:
		return outer
	default:
		return BoldItalic
	}
}

// MapRune returns the styled form of r. It returns r itself when style is
// Normal or r is not an ASCII letter.
func MapRune(r rune, style Style) rune {
	if style == Normal || int(style) >= len(bases) {
		return r
	}
	switch {
	case 'A' <= r && r <= 'Z':
		return bases[style].upper + (r - 'A')
	case 'a' <= r && r <= 'z':
		return bases[style].lower + (r - 'a')
	}
	return r
}

// Apply maps every rune of text with [MapRune].
func Apply(text string, style Style) string {
	if style == Normal {
		return text
	}
	var sb strings.Builder
	sb.Grow(len(text) * 4)
	for _, r := range text {
		sb.WriteRune(MapRune(r, style))
	}
	return sb.String()
}

package md

import (
	"strings"

	"github.com/mdtolinkedin/mdtolinkedin/pkg/unistyle"
)

// Span is a run of inline text with a single style.
type Span struct {
	Text  string
	Style unistyle.Style
	// Verbatim is set for the content of code spans and the " (dest)" suffix
	// of links. Verbatim text is never restyled.
	Verbatim bool
}

// ParseInline resolves the inline markup in the raw text of a block.
//
// Backslash escapes and code spans are recognized first, then links and
// images, then asterisk emphasis. Emphasis is matched in three passes of
// decreasing precedence (***, ** and *), each leftmost and non-greedy; the
// content of a match is resolved again with the combined style. Delimiters
// that do not match are kept as literal text. Adjacent spans with the same
// attributes are merged.
func ParseInline(raw string) []Span {
	var b spanBuilder
	b.resolve(carveLinks(atomize(raw)), unistyle.Normal)
	return b.spans
}

// An atom is either one byte of source text or, when tok is non-nil, an
// opaque token that never takes part in delimiter matching.
type atom struct {
	b   byte
	tok *token
}

func (a atom) is(b byte) bool { return a.tok == nil && a.b == b }

type tokenKind uint8

const (
	escapedChar tokenKind = iota
	codeSpan
	link
	emphasis
)

type token struct {
	kind tokenKind
	// Escaped character, code span content, or link destination.
	text string
	// Link label or emphasis content.
	content []atom
	// Style of emphasis.
	style unistyle.Style
}

const escapable = "\\`*_[](){}#+-.!>~|"

func atomize(text string) []atom {
	atoms := make([]atom, 0, len(text))
	for i := 0; i < len(text); {
		switch b := text[i]; {
		case b == '\\' && i+1 < len(text) && strings.IndexByte(escapable, text[i+1]) != -1:
			atoms = append(atoms, atom{tok: &token{kind: escapedChar, text: text[i+1 : i+2]}})
			i += 2
		case b == '`':
			j := i
			for j < len(text) && text[j] == '`' {
				j++
			}
			run := text[i:j]
			closer := findBacktickRun(text, run, j)
			if closer == -1 {
				for ; i < j; i++ {
					atoms = append(atoms, atom{b: '`'})
				}
				continue
			}
			content := normalizeCodeSpanContent(text[j:closer])
			atoms = append(atoms, atom{tok: &token{kind: codeSpan, text: content}})
			i = closer + len(run)
		default:
			atoms = append(atoms, atom{b: b})
			i++
		}
	}
	return atoms
}

// Finds the first occurrence of a backtick run of exactly the given length,
// starting at i.
func findBacktickRun(s, run string, i int) int {
	for i < len(s) {
		j := strings.Index(s[i:], run)
		if j == -1 {
			return -1
		}
		j += i
		if j+len(run) == len(s) || s[j+len(run)] != '`' {
			return j
		}
		for j < len(s) && s[j] == '`' {
			j++
		}
		i = j
	}
	return -1
}

var lineEndingToSpace = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ")

func normalizeCodeSpanContent(s string) string {
	s = lineEndingToSpace.Replace(s)
	if len(s) > 1 && s[0] == ' ' && s[len(s)-1] == ' ' && strings.Trim(s, " ") != "" {
		return s[1 : len(s)-1]
	}
	return s
}

// Replaces every link and image with an opaque token.
func carveLinks(atoms []atom) []atom {
	var out []atom
	for i := 0; i < len(atoms); {
		if !atoms[i].is('[') {
			out = append(out, atoms[i])
			i++
			continue
		}
		tok, end := parseLinkTail(atoms, i)
		if tok == nil {
			out = append(out, atoms[i])
			i++
			continue
		}
		if len(out) > 0 && out[len(out)-1].is('!') {
			// An image is rendered like a link, with the alt text as label.
			out = out[:len(out)-1]
		}
		out = append(out, atom{tok: tok})
		i = end
	}
	return out
}

// Parses a link starting at the [ at atoms[open]. It returns the link token
// and the index after the closing ), or nil if there is no link.
func parseLinkTail(atoms []atom, open int) (*token, int) {
	mid := -1
	for j := open + 1; j+1 < len(atoms); j++ {
		if atoms[j].is(']') && atoms[j+1].is('(') {
			mid = j
			break
		}
	}
	if mid == -1 || mid == open+1 {
		return nil, 0
	}
	closer := -1
	for j := mid + 2; j < len(atoms); j++ {
		if atoms[j].is(')') {
			closer = j
			break
		}
	}
	if closer == -1 {
		return nil, 0
	}
	dest := strings.TrimSpace(flatten(atoms[mid+2 : closer]))
	if i := strings.IndexAny(dest, " \t\n"); i != -1 {
		// Drop the link title.
		dest = dest[:i]
	}
	if len(dest) > 1 && dest[0] == '<' && dest[len(dest)-1] == '>' {
		dest = dest[1 : len(dest)-1]
	}
	return &token{kind: link, text: dest, content: atoms[open+1 : mid]}, closer + 1
}

func flatten(atoms []atom) string {
	var sb strings.Builder
	for _, a := range atoms {
		if a.tok == nil {
			sb.WriteByte(a.b)
		} else {
			sb.WriteString(a.tok.text)
		}
	}
	return sb.String()
}

var emphasisRules = [...]struct {
	delim string
	style unistyle.Style
}{
	{"***", unistyle.BoldItalic},
	{"**", unistyle.Bold},
	{"*", unistyle.Italic},
}

type spanBuilder struct {
	spans []Span
}

func (b *spanBuilder) resolve(atoms []atom, style unistyle.Style) {
	for _, rule := range emphasisRules {
		atoms = carveEmphasis(atoms, rule.delim, rule.style)
	}
	b.emit(atoms, style)
}

// Replaces every match of one emphasis rule with an opaque token, scanning
// from left to right.
func carveEmphasis(atoms []atom, delim string, style unistyle.Style) []atom {
	var out []atom
	for {
		open, closer := findEmphasis(atoms, delim)
		if open == -1 {
			if out == nil {
				return atoms
			}
			return append(out, atoms...)
		}
		out = append(out, atoms[:open]...)
		content := atoms[open+len(delim) : closer]
		out = append(out, atom{tok: &token{kind: emphasis, content: content, style: style}})
		atoms = atoms[closer+len(delim):]
	}
}

// Finds the leftmost shortest match of delim...delim. A match has non-empty
// content. Single asterisk delimiters must not touch another asterisk, and
// their content must not contain an asterisk or a line break. It returns -1,
// -1 if there is no match.
func findEmphasis(atoms []atom, delim string) (open, closer int) {
	n := len(delim)
	single := n == 1
	for i := 0; i+n <= len(atoms); i++ {
		if !hasDelim(atoms, i, delim) || (single && i > 0 && atoms[i-1].is('*')) {
			continue
		}
		for j := i + n + 1; j+n <= len(atoms); j++ {
			last := atoms[j-1]
			if single && (last.is('\n') || last.is('*')) {
				break
			}
			if hasDelim(atoms, j, delim) && !(single && j+1 < len(atoms) && atoms[j+1].is('*')) {
				return i, j
			}
		}
	}
	return -1, -1
}

func hasDelim(atoms []atom, i int, delim string) bool {
	for k := 0; k < len(delim); k++ {
		if !atoms[i+k].is(delim[k]) {
			return false
		}
	}
	return true
}

func (b *spanBuilder) emit(atoms []atom, style unistyle.Style) {
	start := -1
	flush := func(end int) {
		if start != -1 {
			b.add(Span{Text: flatten(atoms[start:end]), Style: style})
			start = -1
		}
	}
	for i, a := range atoms {
		if a.tok == nil {
			if start == -1 {
				start = i
			}
			continue
		}
		flush(i)
		switch a.tok.kind {
		case escapedChar:
			b.add(Span{Text: a.tok.text, Style: style})
		case codeSpan:
			b.add(Span{Text: a.tok.text, Verbatim: true})
		case link:
			b.resolve(a.tok.content, style)
			b.add(Span{Text: " (" + a.tok.text + ")", Verbatim: true})
		case emphasis:
			b.resolve(a.tok.content, unistyle.Combine(style, a.tok.style))
		}
	}
	flush(len(atoms))
}

func (b *spanBuilder) add(s Span) {
	if s.Text == "" {
		return
	}
	if n := len(b.spans); n > 0 {
		last := &b.spans[n-1]
		if last.Style == s.Style && last.Verbatim == s.Verbatim {
			last.Text += s.Text
			return
		}
	}
	b.spans = append(b.spans, s)
}

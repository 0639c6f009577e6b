// Package md parses the subset of Markdown that can be approximated in plain
// Unicode text.
//
// The block parser classifies each line of the source into a [Block] and
// passes the blocks to a [Codec] in source order. It is deliberately flat:
// list items are never nested into sub-blocks (the indentation of a nested
// item is kept in [Block.Indent]), and there is no HTML, table, setext
// heading or link reference definition support. Anything not recognized
// becomes paragraph text, so parsing never fails.
//
// Inline markup inside a block's raw text is resolved by [ParseInline].
package md

import (
	"regexp"
	"strings"
)

// BlockKind is the kind of a Block.
type BlockKind uint8

// Possible values of BlockKind.
const (
	Blank BlockKind = iota
	Paragraph
	Heading
	UnorderedItem
	OrderedItem
	Blockquote
	CodeBlock
	ThematicBreak
)

var blockKindNames = [...]string{
	Blank:         "Blank",
	Paragraph:     "Paragraph",
	Heading:       "Heading",
	UnorderedItem: "UnorderedItem",
	OrderedItem:   "OrderedItem",
	Blockquote:    "Blockquote",
	CodeBlock:     "CodeBlock",
	ThematicBreak: "ThematicBreak",
}

func (k BlockKind) String() string {
	if int(k) < len(blockKindNames) {
		return blockKindNames[k]
	}
	return "BlockKind(?)"
}

// Block is a classified region of the source.
type Block struct {
	Kind BlockKind
	// Level of a Heading, 1 to 6.
	Level int
	// Number is the ordinal of an OrderedItem, exactly as written.
	Number string
	// Marker is the bullet character of an UnorderedItem.
	Marker byte
	// Indent is the leading whitespace of a list item, exactly as written.
	Indent string
	// Info is the info string of a CodeBlock.
	Info string
	// Lines is the body of a CodeBlock.
	Lines []string
	// MissingCloser is set when a CodeBlock runs to the end of input.
	MissingCloser bool
	// Text is the unresolved inline text. It is empty for CodeBlock,
	// ThematicBreak and Blank.
	Text string
}

// Language returns the first word of the info string of a CodeBlock.
func (b Block) Language() string {
	if fields := strings.Fields(b.Info); len(fields) > 0 {
		return fields[0]
	}
	return ""
}

// Codec is used to render the blocks parsed from Markdown.
type Codec interface {
	Do(Block)
}

// Render parses markdown and passes each block to the codec.
func Render(text string, codec Codec) {
	p := blockParser{lines: lineSplitter{text, 0}, codec: codec}
	p.render()
}

// Parse parses markdown and returns all its blocks.
func Parse(text string) []Block {
	var c blockCollector
	Render(text, &c)
	return c
}

type blockCollector []Block

func (c *blockCollector) Do(b Block) { *c = append(*c, b) }

var (
	thematicBreakRegexp = regexp.MustCompile(
		`^ {0,3}((?:-[ \t]*){3,}|(?:_[ \t]*){3,}|(?:\*[ \t]*){3,})$`)

	// Capture groups:
	// 1. Heading opener
	// 2. Heading text
	atxHeadingRegexp       = regexp.MustCompile(`^ {0,3}(#{1,6})[ \t]+(\S.*)$`)
	atxHeadingCloserRegexp = regexp.MustCompile(`(?:^|[ \t]+)#+[ \t]*$`)

	// Capture groups:
	// 1. Indent
	// 2. Fence punctuations (backquote fence)
	// 3. Untrimmed info string (backquote fence)
	// 4. Fence punctuations (tilde fence)
	// 5. Untrimmed info string (tilde fence)
	codeFenceRegexp = regexp.MustCompile("^( {0,3})(?:(`{3,})([^`]*)|(~{3,})(.*))$")
	// Capture group 1: fence punctuations
	codeFenceCloserRegexp = regexp.MustCompile("^ {0,3}(`{3,}|~{3,})[ \t]*$")

	// Capture groups:
	// 1. Indent
	// 2. Bullet punctuation or ordinal
	// 3. Item text
	bulletItemRegexp  = regexp.MustCompile(`^([ \t]*)([-*+])[ \t]+(\S.*)$`)
	orderedItemRegexp = regexp.MustCompile(`^([ \t]*)([0-9]+)\.[ \t]+(\S.*)$`)

	blockquoteMarkerRegexp = regexp.MustCompile(`^ {0,3}> ?`)
)

type blockParser struct {
	lines     lineSplitter
	codec     Codec
	paragraph []string
}

func (p *blockParser) render() {
	for p.lines.more() {
		line := p.lines.next()
		if m := codeFenceRegexp.FindStringSubmatch(line); m != nil {
			p.popParagraph()
			indent, opener, info := len(m[1]), m[2], m[3]
			if opener == "" {
				opener, info = m[4], m[5]
			}
			p.parseFencedCodeBlock(indent, opener, info)
		} else if thematicBreakRegexp.MatchString(line) {
			// Checked before list items so that "* * *" is not a bullet.
			p.popParagraph()
			p.codec.Do(Block{Kind: ThematicBreak})
		} else if m := atxHeadingRegexp.FindStringSubmatch(line); m != nil {
			p.popParagraph()
			text := strings.TrimRight(m[2], " \t")
			text = text[:len(text)-len(atxHeadingCloserRegexp.FindString(text))]
			p.codec.Do(Block{Kind: Heading, Level: len(m[1]), Text: text})
		} else if m := bulletItemRegexp.FindStringSubmatch(line); m != nil {
			p.popParagraph()
			p.codec.Do(Block{Kind: UnorderedItem,
				Indent: m[1], Marker: m[2][0], Text: strings.TrimRight(m[3], " \t")})
		} else if m := orderedItemRegexp.FindStringSubmatch(line); m != nil {
			p.popParagraph()
			p.codec.Do(Block{Kind: OrderedItem,
				Indent: m[1], Number: m[2], Text: strings.TrimRight(m[3], " \t")})
		} else if marker := blockquoteMarkerRegexp.FindString(line); marker != "" {
			p.popParagraph()
			text := trimBlockquoteMarkers(line[len(marker):])
			if isBlankLine(text) {
				p.codec.Do(Block{Kind: Blank})
			} else {
				p.codec.Do(Block{Kind: Blockquote, Text: strings.Trim(text, " \t")})
			}
		} else if isBlankLine(line) {
			p.popParagraph()
			p.codec.Do(Block{Kind: Blank})
		} else {
			p.paragraph = append(p.paragraph, strings.Trim(line, " \t"))
		}
	}
	p.popParagraph()
}

// Nested blockquotes are flattened into one level.
func trimBlockquoteMarkers(text string) string {
	for {
		marker := blockquoteMarkerRegexp.FindString(text)
		if marker == "" {
			return text
		}
		text = text[len(marker):]
	}
}

func isBlankLine(line string) bool {
	return strings.Trim(line, " \t") == ""
}

func (p *blockParser) parseFencedCodeBlock(indent int, opener, info string) {
	b := Block{Kind: CodeBlock, Info: strings.Trim(info, " \t")}
	for p.lines.more() {
		line := p.lines.next()
		if m := codeFenceCloserRegexp.FindStringSubmatch(line); m != nil {
			closer := m[1]
			if closer[0] == opener[0] && len(closer) >= len(opener) {
				p.codec.Do(b)
				return
			}
		}
		for i := indent; i > 0 && line != "" && line[0] == ' '; i-- {
			line = line[1:]
		}
		b.Lines = append(b.Lines, line)
	}
	b.MissingCloser = true
	p.codec.Do(b)
}

func (p *blockParser) popParagraph() {
	if len(p.paragraph) > 0 {
		p.codec.Do(Block{Kind: Paragraph, Text: strings.Join(p.paragraph, "\n")})
		p.paragraph = p.paragraph[:0]
	}
}

type lineSplitter struct {
	text string
	pos  int
}

func (s *lineSplitter) more() bool {
	return s.pos < len(s.text)
}

// Returns the next line, without the line ending.
func (s *lineSplitter) next() string {
	begin := s.pos
	delta := strings.IndexByte(s.text[begin:], '\n')
	if delta == -1 {
		s.pos = len(s.text)
		return strings.TrimSuffix(s.text[begin:], "\r")
	}
	s.pos += delta + 1
	return strings.TrimSuffix(s.text[begin:s.pos-1], "\r")
}

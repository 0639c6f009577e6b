// Package linkedin converts Markdown into plain Unicode text suitable for a
// LinkedIn post.
//
// LinkedIn does not render Markdown, so emphasis is approximated with the
// styled letters of the Mathematical Alphanumeric Symbols block (see package
// unistyle), headings become bold, quotes become italic, list markers become
// bullets, links become "label (url)" and code blocks are handled according to
// a CodeBlockMode. The result is checked against the length limit of a post.
//
// Conversion never fails on the content of the document; only an invalid
// Config is an error.
package linkedin

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/mdtolinkedin/mdtolinkedin/pkg/logutil"
	"github.com/mdtolinkedin/mdtolinkedin/pkg/md"
	"github.com/mdtolinkedin/mdtolinkedin/pkg/unistyle"
)

var logger = logutil.GetLogger("[linkedin] ")

// Result is the outcome of a conversion.
type Result struct {
	Text string `json:"text"`
	// CharCount is the number of Unicode code points in Text.
	CharCount    int    `json:"char_count"`
	Limit        int    `json:"limit"`
	ExceedsLimit bool   `json:"limit_exceeded"`
	Warning      string `json:"warning,omitempty"`
	// FrontMatter is set when Config.StripFrontMatter is on and the document
	// started with a front matter block.
	FrontMatter map[string]any `json:"front_matter,omitempty"`
}

// Convert converts Markdown to LinkedIn text. It only returns an error, of
// type *ConfigError, when cfg is invalid.
func Convert(markdown string, cfg Config) (string, error) {
	r, err := ConvertWithReport(markdown, cfg)
	return r.Text, err
}

// ConvertWithReport is like Convert, but also reports the length of the text
// and whether it exceeds cfg.WarnLimit.
func ConvertWithReport(markdown string, cfg Config) (Result, error) {
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}
	var frontMatter map[string]any
	if cfg.StripFrontMatter {
		markdown, frontMatter = stripFrontMatter(markdown)
	}

	a := assembler{plain: cfg.Plain, bullet: cfg.bullet(), codeBlocks: cfg.codeBlockMode()}
	md.Render(markdown, &a)
	text := normalize(a.String(), cfg.NoTrim)

	exceeds, warning := CheckLimit(text, cfg.WarnLimit)
	r := Result{
		Text:         text,
		CharCount:    utf8.RuneCountInString(text),
		Limit:        cfg.WarnLimit,
		ExceedsLimit: exceeds,
		Warning:      warning,
		FrontMatter:  frontMatter,
	}
	logger.Printf("converted %d bytes of Markdown to %d characters", len(markdown), r.CharCount)
	return r, nil
}

// ResolveInline resolves the inline markup of raw text and maps styled runs to
// styled glyphs.
func ResolveInline(raw string) string {
	var sb strings.Builder
	writeSpans(&sb, md.ParseInline(raw), unistyle.Normal, false)
	return sb.String()
}

// Writes spans, applying blockStyle to the spans that have no style of their
// own.
func writeSpans(sb *strings.Builder, spans []md.Span, blockStyle unistyle.Style, plain bool) {
	for _, span := range spans {
		if span.Verbatim || plain {
			sb.WriteString(span.Text)
			continue
		}
		style := span.Style
		if style == unistyle.Normal {
			style = blockStyle
		}
		sb.WriteString(unistyle.Apply(span.Text, style))
	}
}

// An md.Codec that renders blocks into LinkedIn text.
type assembler struct {
	strings.Builder
	plain      bool
	bullet     string
	codeBlocks CodeBlockMode
}

func (a *assembler) Do(b md.Block) {
	switch b.Kind {
	case md.Blank, md.ThematicBreak:
		a.WriteByte('\n')
	case md.Paragraph:
		a.inline(b.Text, unistyle.Normal)
		a.WriteString("\n\n")
	case md.Heading:
		a.inline(b.Text, unistyle.Bold)
		a.WriteString("\n\n")
	case md.UnorderedItem:
		a.WriteString(b.Indent + a.bullet + " ")
		a.inline(b.Text, unistyle.Normal)
		a.WriteByte('\n')
	case md.OrderedItem:
		a.WriteString(b.Indent + b.Number + ". ")
		a.inline(b.Text, unistyle.Normal)
		a.WriteByte('\n')
	case md.Blockquote:
		a.inline(b.Text, unistyle.Italic)
		a.WriteByte('\n')
	case md.CodeBlock:
		a.WriteString(renderCodeBlock(b, a.codeBlocks))
	}
}

func (a *assembler) inline(raw string, blockStyle unistyle.Style) {
	writeSpans(&a.Builder, md.ParseInline(raw), blockStyle, a.plain)
}

var (
	trailingWhitespaceRegexp = regexp.MustCompile(`(?m)[ \t]+$`)
	excessNewlinesRegexp     = regexp.MustCompile(`\n{3,}`)
)

func normalize(text string, noTrim bool) string {
	text = trailingWhitespaceRegexp.ReplaceAllString(text, "")
	text = excessNewlinesRegexp.ReplaceAllString(text, "\n\n")
	if !noTrim {
		text = strings.TrimSpace(text)
	}
	return text
}

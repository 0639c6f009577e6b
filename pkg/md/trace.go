package md

import (
	"fmt"
	"strings"
)

// TraceCodec is a Codec that records all the Block's passed to its Do method,
// along with the resolved inline spans of their text.
type TraceCodec struct{ strings.Builder }

func (c *TraceCodec) Do(b Block) {
	if c.Len() > 0 {
		c.WriteByte('\n')
	}
	c.WriteString(b.Kind.String())
	if b.Level != 0 {
		fmt.Fprintf(c, " Level=%d", b.Level)
	}
	if b.Indent != "" {
		fmt.Fprintf(c, " Indent=%q", b.Indent)
	}
	if b.Marker != 0 {
		fmt.Fprintf(c, " Marker=%q", b.Marker)
	}
	if b.Number != "" {
		fmt.Fprintf(c, " Number=%s", b.Number)
	}
	if b.Info != "" {
		fmt.Fprintf(c, " Info=%q", b.Info)
	}
	if b.MissingCloser {
		c.WriteString(" MissingCloser")
	}
	for _, line := range b.Lines {
		c.WriteString("\n  ")
		c.WriteString(line)
	}
	for _, span := range ParseInline(b.Text) {
		c.WriteString("\n  ")
		c.WriteString(span.Style.String())
		if span.Verbatim {
			c.WriteString(" Verbatim")
		}
		fmt.Fprintf(c, " Text=%q", span.Text)
	}
}

package linkedin_test

import (
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"sync"
	"testing"
	"unicode/utf8"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/go-cmp/cmp"

	. "github.com/mdtolinkedin/mdtolinkedin/pkg/linkedin"
	"github.com/mdtolinkedin/mdtolinkedin/pkg/must"
	"github.com/mdtolinkedin/mdtolinkedin/pkg/testutil"
	"github.com/mdtolinkedin/mdtolinkedin/pkg/tt"
	"github.com/mdtolinkedin/mdtolinkedin/pkg/unistyle"
)

var dedent = testutil.Dedent

func bold(s string) string       { return unistyle.Apply(s, unistyle.Bold) }
func italic(s string) string     { return unistyle.Apply(s, unistyle.Italic) }
func boldItalic(s string) string { return unistyle.Apply(s, unistyle.BoldItalic) }

func withConfig(f func(*Config)) Config {
	cfg := DefaultConfig()
	f(&cfg)
	return cfg
}

var (
	defaultConfig = DefaultConfig()
	carbonConfig  = withConfig(func(c *Config) { c.UseCarbonPlaceholder = true })
	textConfig    = withConfig(func(c *Config) { c.CodeBlocks = CodeBlocksText })
	dashConfig    = withConfig(func(c *Config) { c.Bullet = "-" })
	plainConfig   = withConfig(func(c *Config) { c.Plain = true })
	noTrimConfig  = withConfig(func(c *Config) { c.NoTrim = true })
)

func TestConvert(t *testing.T) {
	tt.Test(t, tt.Fn("Convert", Convert), tt.Table{
		// Emphasis
		tt.Args("**bold** text", defaultConfig).Rets(bold("bold")+" text", nil),
		tt.Args("*italic* text", defaultConfig).Rets(italic("italic")+" text", nil),
		tt.Args("***both***", defaultConfig).Rets(boldItalic("both"), nil),
		tt.Args("**A *B* C**", defaultConfig).
			Rets(bold("A ")+boldItalic("B")+bold(" C"), nil),
		tt.Args("2 * 3 = 6", defaultConfig).Rets("2 * 3 = 6", nil),
		tt.Args("**bold\ntext**", defaultConfig).Rets(bold("bold")+"\n"+bold("text"), nil),
		tt.Args("***bi\nx***", defaultConfig).Rets(boldItalic("bi")+"\n"+boldItalic("x"), nil),
		tt.Args("*it\nx*", defaultConfig).Rets("*it\nx*", nil),

		// Headings
		tt.Args("# Header", defaultConfig).Rets(bold("Header"), nil),
		tt.Args("### Deep ###", defaultConfig).Rets(bold("Deep"), nil),
		tt.Args("# A *b*", defaultConfig).Rets(bold("A ")+italic("b"), nil),
		tt.Args("# Use `x`", defaultConfig).Rets(bold("Use ")+"x", nil),
		tt.Args("#hashtag", defaultConfig).Rets("#hashtag", nil),

		// Links and code spans
		tt.Args("[label](http://x)", defaultConfig).Rets("label (http://x)", nil),
		tt.Args("**[Go](https://go.dev)**", defaultConfig).
			Rets(bold("Go")+" (https://go.dev)", nil),
		tt.Args("run `go test`", defaultConfig).Rets("run go test", nil),

		// Lists
		tt.Args("- a\n* b\n+ c", defaultConfig).Rets("• a\n• b\n• c", nil),
		tt.Args("7. first\n8. second", defaultConfig).Rets("7. first\n8. second", nil),
		tt.Args("1. first\n   - alpha\n2. second", dashConfig).
			Rets("1. first\n   - alpha\n2. second", nil),
		tt.Args("- **a**", defaultConfig).Rets("• "+bold("a"), nil),

		// Quotes
		tt.Args("> quoted", defaultConfig).Rets(italic("quoted"), nil),
		tt.Args("> a **b**", defaultConfig).Rets(italic("a ")+bold("b"), nil),

		// Code blocks
		tt.Args("```\ncode\n```", defaultConfig).Rets("", nil),
		tt.Args("```\ncode\n```", carbonConfig).Rets("[Code image: carbon.now.sh]", nil),
		tt.Args("```rust\nfn main() {}\n```", textConfig).Rets("fn main() {}", nil),
		tt.Args("a\n\n```\ncode\n```\n\nb", defaultConfig).Rets("a\n\nb", nil),
		tt.Args("```\nunclosed", carbonConfig).Rets("[Code image: carbon.now.sh]", nil),

		// Whitespace
		tt.Args("a\n\n\n\n\nb", defaultConfig).Rets("a\n\nb", nil),
		tt.Args("a\n\n---\n\nb", defaultConfig).Rets("a\n\nb", nil),
		tt.Args("line one  \nline two", defaultConfig).Rets("line one\nline two", nil),
		tt.Args("", defaultConfig).Rets("", nil),
		tt.Args("\n\n  \n", defaultConfig).Rets("", nil),

		// Plain and NoTrim
		tt.Args("# **bold** and *it*", plainConfig).Rets("bold and it", nil),
		tt.Args("# H", noTrimConfig).Rets(bold("H")+"\n\n", nil),
	})
}

func TestConvert_Document(t *testing.T) {
	markdown := dedent(`
		# Title

		Intro with **bold** and a [link](https://x.io).

		- one
		- two
		  - nested

		> quoted *text*

		` + "```go" + `
		x := 1
		` + "```" + `

		---

		Done.
		`)
	want := bold("Title") + "\n\n" +
		"Intro with " + bold("bold") + " and a link (https://x.io).\n\n" +
		"• one\n• two\n  • nested\n\n" +
		italic("quoted text") + "\n\n" +
		"Done."

	got, err := Convert(markdown, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("diff (-want +got):\n%s", diff)
	}
}

func TestConvert_PlainModeEmitsNoStyledGlyphs(t *testing.T) {
	got, err := Convert("# Title\n\n**a** *b* ***c***\n\n> d", plainConfig)
	if err != nil {
		t.Fatal(err)
	}
	for _, r := range got {
		if r >= 0x1D400 && r <= 0x1D7FF {
			t.Errorf("plain output %q contains styled glyph %U", got, r)
		}
	}
}

func TestConvert_ZeroBulletUsesDefault(t *testing.T) {
	got, err := Convert("- a", Config{WarnLimit: 10})
	if err != nil {
		t.Fatal(err)
	}
	if got != "• a" {
		t.Errorf("got %q, want %q", got, "• a")
	}
}

func TestConvert_CarbonURL(t *testing.T) {
	cfg := withConfig(func(c *Config) { c.CodeBlocks = CodeBlocksCarbonURL })
	got, err := Convert("```rust\nfn main() {}\n```", cfg)
	if err != nil {
		t.Fatal(err)
	}
	want := "https://carbon.now.sh/?code=fn%20main%28%29%20%7B%7D%0A&l=rust"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestConvert_CodeBlocksOverridesCarbonPlaceholder(t *testing.T) {
	cfg := withConfig(func(c *Config) {
		c.UseCarbonPlaceholder = true
		c.CodeBlocks = CodeBlocksOmit
	})
	got, err := Convert("```\ncode\n```", cfg)
	if err != nil {
		t.Fatal(err)
	}
	if got != "" {
		t.Errorf("got %q, want empty", got)
	}
}

func TestConvertWithReport(t *testing.T) {
	text := strings.Repeat("a", 10)
	tt.Test(t, tt.Fn("ConvertWithReport", ConvertWithReport), tt.Table{
		tt.Args(text, withConfig(func(c *Config) { c.WarnLimit = 10 })).
			Rets(Result{Text: text, CharCount: 10, Limit: 10}, nil),
		tt.Args(text, withConfig(func(c *Config) { c.WarnLimit = 9 })).
			Rets(Result{Text: text, CharCount: 10, Limit: 9, ExceedsLimit: true,
				Warning: "Warning: Output is 10 characters (LinkedIn limit: 9)"}, nil),
		// Styled glyphs take 4 bytes each but count as one character.
		tt.Args("**abc**", withConfig(func(c *Config) { c.WarnLimit = 3 })).
			Rets(Result{Text: bold("abc"), CharCount: 3, Limit: 3}, nil),
	})
}

func TestConvertWithReport_CharCountIsRuneCount(t *testing.T) {
	r, err := ConvertWithReport("# Hello 🚀\n\n*über* café", DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	if r.CharCount != utf8.RuneCountInString(r.Text) {
		t.Errorf("CharCount = %d, want %d", r.CharCount, utf8.RuneCountInString(r.Text))
	}
}

func TestResult_JSON(t *testing.T) {
	r, err := ConvertWithReport("hello", DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	got := string(must.OK1(json.Marshal(r)))
	want := `{"text":"hello","char_count":5,"limit":3000,"limit_exceeded":false}`
	if got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

var invalidConfigTests = []struct {
	name     string
	cfg      Config
	wantKeys []string
}{
	{"zero config", Config{}, []string{"warn_limit"}},
	{"negative limit", Config{WarnLimit: -1}, []string{"warn_limit"}},
	{"unknown code block mode", Config{WarnLimit: 1, CodeBlocks: "image"}, []string{"code_blocks"}},
	{"blank bullet", Config{WarnLimit: 1, Bullet: "  "}, []string{"bullet"}},
	{"several errors", Config{CodeBlocks: "x", Bullet: "\t"},
		[]string{"bullet", "code_blocks", "warn_limit"}},
}

func TestConvert_InvalidConfig(t *testing.T) {
	for _, test := range invalidConfigTests {
		t.Run(test.name, func(t *testing.T) {
			_, err := Convert("# Title", test.cfg)
			var configErr *ConfigError
			if !errors.As(err, &configErr) {
				t.Fatalf("got error %v, want *ConfigError", err)
			}
			var errs validation.Errors
			if !errors.As(err, &errs) {
				t.Fatalf("error %v does not wrap validation.Errors", err)
			}
			var keys []string
			for key := range errs {
				keys = append(keys, key)
			}
			sort.Strings(keys)
			if diff := cmp.Diff(test.wantKeys, keys); diff != "" {
				t.Errorf("invalid fields (-want +got):\n%s", diff)
			}
			if !strings.HasPrefix(err.Error(), "invalid configuration: ") {
				t.Errorf("error message %q has no prefix", err.Error())
			}
		})
	}
}

func TestDefaultConfig_IsValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() = %v", err)
	}
	for _, mode := range CodeBlockModes {
		cfg := withConfig(func(c *Config) { c.CodeBlocks = mode })
		if err := cfg.Validate(); err != nil {
			t.Errorf("Validate() with CodeBlocks %q = %v", mode, err)
		}
	}
}

func TestResolveInline(t *testing.T) {
	tt.Test(t, tt.Fn("ResolveInline", ResolveInline), tt.Table{
		tt.Args("no delimiters here").Rets("no delimiters here"),
		tt.Args("**A *B* C**").Rets(bold("A ") + boldItalic("B") + bold(" C")),
		tt.Args("`**x**`").Rets("**x**"),
		tt.Args("[a *b*](u)").Rets("a " + italic("b") + " (u)"),
		tt.Args("![logo](logo.png)").Rets("logo (logo.png)"),
		tt.Args(`\*x\*`).Rets("*x*"),
	})
}

func TestConvert_IsSafeForConcurrentUse(t *testing.T) {
	markdown := "# Title\n\n**bold** *italic* [link](u)\n\n- item"
	want, err := Convert(markdown, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := Convert(markdown, DefaultConfig())
			if err != nil || got != want {
				t.Errorf("concurrent Convert = %q, %v", got, err)
			}
		}()
	}
	wg.Wait()
}

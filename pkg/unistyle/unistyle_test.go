package unistyle_test

import (
	"testing"
	"unicode/utf8"

	"github.com/mdtolinkedin/mdtolinkedin/pkg/tt"
	. "github.com/mdtolinkedin/mdtolinkedin/pkg/unistyle"
)

var styled = []Style{Bold, Italic, BoldItalic}

func TestMapRune(t *testing.T) {
	tt.Test(t, tt.Fn("MapRune", MapRune).RetsFmt("%U"), tt.Table{
		tt.Args('A', Bold).Rets(rune(0x1D400)),
		tt.Args('Z', Bold).Rets(rune(0x1D419)),
		tt.Args('a', Bold).Rets(rune(0x1D41A)),
		tt.Args('z', Bold).Rets(rune(0x1D433)),
		tt.Args('A', Italic).Rets(rune(0x1D434)),
		tt.Args('a', Italic).Rets(rune(0x1D44E)),
		// The italic small h is a reserved code point; the mapping is still
		// base plus offset.
		tt.Args('h', Italic).Rets(rune(0x1D455)),
		tt.Args('A', BoldItalic).Rets(rune(0x1D468)),
		tt.Args('a', BoldItalic).Rets(rune(0x1D482)),
		tt.Args('z', BoldItalic).Rets(rune(0x1D49B)),

		tt.Args('A', Normal).Rets('A'),
		tt.Args('7', Bold).Rets('7'),
		tt.Args('!', Italic).Rets('!'),
		tt.Args(' ', BoldItalic).Rets(' '),
		tt.Args('é', Bold).Rets('é'),
		tt.Args('🚀', Bold).Rets('🚀'),
	})
}

func TestMapRune_LettersArePairwiseDistinct(t *testing.T) {
	for _, r := range letters() {
		seen := map[rune]Style{r: Normal}
		for _, s := range styled {
			m := MapRune(r, s)
			if prev, dup := seen[m]; dup {
				t.Errorf("MapRune(%q, %v) = %U, same as style %v", r, s, m, prev)
			}
			seen[m] = s
		}
	}
}

func TestMapRune_IdentityOnNonLetters(t *testing.T) {
	for r := rune(0); r < 0x250; r++ {
		if ('A' <= r && r <= 'Z') || ('a' <= r && r <= 'z') {
			continue
		}
		for _, s := range append([]Style{Normal}, styled...) {
			if m := MapRune(r, s); m != r {
				t.Errorf("MapRune(%U, %v) = %U, want identity", r, s, m)
			}
		}
	}
}

func TestApply(t *testing.T) {
	tt.Test(t, tt.Fn("Apply", Apply), tt.Table{
		tt.Args("ABC", Bold).Rets("𝐀𝐁𝐂"),
		tt.Args("abc", Bold).Rets("𝐚𝐛𝐜"),
		tt.Args("Test123", Bold).Rets("𝐓𝐞𝐬𝐭123"),
		tt.Args("Hello, World!", Bold).Rets("𝐇𝐞𝐥𝐥𝐨, 𝐖𝐨𝐫𝐥𝐝!"),
		tt.Args("hello", Italic).Rets("\U0001D455\U0001D452\U0001D459\U0001D459\U0001D45C"),
		tt.Args("hi", BoldItalic).Rets("\U0001D489\U0001D48A"),
		tt.Args("Hello 🚀", Bold).Rets("𝐇𝐞𝐥𝐥𝐨 🚀"),
		tt.Args("**x**", Normal).Rets("**x**"),
		tt.Args("", Bold).Rets(""),
	})
}

func TestApply_PreservesRuneCount(t *testing.T) {
	text := "Mixed 123 text, with ünïcödé & emoji 🚀"
	for _, s := range styled {
		got := Apply(text, s)
		if utf8.RuneCountInString(got) != utf8.RuneCountInString(text) {
			t.Errorf("Apply(%q, %v) changed the rune count", text, s)
		}
	}
}

func TestCombine(t *testing.T) {
	tt.Test(t, tt.Fn("Combine", Combine), tt.Table{
		tt.Args(Normal, Normal).Rets(Normal),
		tt.Args(Normal, Bold).Rets(Bold),
		tt.Args(Italic, Normal).Rets(Italic),
		tt.Args(Bold, Bold).Rets(Bold),
		tt.Args(Bold, Italic).Rets(BoldItalic),
		tt.Args(Italic, Bold).Rets(BoldItalic),
		tt.Args(BoldItalic, Italic).Rets(BoldItalic),
		tt.Args(Bold, BoldItalic).Rets(BoldItalic),
	})
}

func TestStyle_String(t *testing.T) {
	tt.Test(t, tt.Fn("Style.String", Style.String), tt.Table{
		tt.Args(Normal).Rets("Normal"),
		tt.Args(BoldItalic).Rets("BoldItalic"),
		tt.Args(Style(42)).Rets("Style(?)"),
	})
}

func letters() []rune {
	var rs []rune
	for r := 'A'; r <= 'Z'; r++ {
		rs = append(rs, r, r-'A'+'a')
	}
	return rs
}

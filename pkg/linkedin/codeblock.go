package linkedin

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"

	"github.com/mdtolinkedin/mdtolinkedin/pkg/md"
)

func renderCodeBlock(b md.Block, mode CodeBlockMode) string {
	switch mode {
	case CodeBlocksText:
		body := strings.TrimRight(strings.Join(b.Lines, "\n"), " \t\n")
		if body == "" {
			return ""
		}
		return body + "\n\n"
	case CodeBlocksCarbon:
		return CarbonPlaceholder + "\n\n"
	case CodeBlocksCarbonURL:
		var code string
		if len(b.Lines) > 0 {
			code = strings.Join(b.Lines, "\n") + "\n"
		}
		return CarbonURL(code, b.Language()) + "\n\n"
	default:
		return ""
	}
}

// CarbonURL returns a link that opens code in the carbon.now.sh editor. The
// language is normalized to the name of a known lexer; when it is empty, it
// is guessed from the code.
func CarbonURL(code, language string) string {
	url := "https://carbon.now.sh/?code=" + percentEncode(code)
	if language = carbonLanguage(code, language); language != "" {
		url += "&l=" + percentEncode(language)
	}
	return url
}

func carbonLanguage(code, language string) string {
	var lexer chroma.Lexer
	if language == "" {
		lexer = lexers.Analyse(code)
	} else {
		lexer = lexers.Get(language)
		if lexer == nil {
			return language
		}
	}
	if lexer == nil {
		return ""
	}
	config := lexer.Config()
	name := strings.ToLower(config.Name)
	for _, alias := range config.Aliases {
		if alias == name {
			return name
		}
	}
	if len(config.Aliases) > 0 {
		return config.Aliases[0]
	}
	return name
}

const upperhex = "0123456789ABCDEF"

// Escapes every byte except ASCII letters, digits and "-_.~".
func percentEncode(s string) string {
	var sb strings.Builder
	sb.Grow(len(s) * 3)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) {
			sb.WriteByte(c)
		} else {
			sb.WriteByte('%')
			sb.WriteByte(upperhex[c>>4])
			sb.WriteByte(upperhex[c&15])
		}
	}
	return sb.String()
}

func isUnreserved(c byte) bool {
	return 'A' <= c && c <= 'Z' || 'a' <= c && c <= 'z' || '0' <= c && c <= '9' ||
		c == '-' || c == '_' || c == '.' || c == '~'
}

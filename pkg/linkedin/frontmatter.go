package linkedin

import (
	"fmt"
	"strings"

	"github.com/adrg/frontmatter"
)

// Removes a leading front matter block and returns the remaining document
// along with the decoded front matter. A document without front matter, or
// whose front matter cannot be decoded, is returned unchanged with a nil map.
func stripFrontMatter(markdown string) (string, map[string]any) {
	var matter map[string]any
	body, err := frontmatter.Parse(strings.NewReader(markdown), &matter)
	if err != nil {
		logger.Println("leaving front matter in place:", err)
		return markdown, nil
	}
	if len(body) == len(markdown) {
		return markdown, nil
	}
	return string(body), stringKeys(matter).(map[string]any)
}

// Converts the map[any]any values produced by YAML decoding into
// map[string]any recursively, so that the front matter can be encoded as
// JSON.
func stringKeys(v any) any {
	switch v := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(v))
		for key, value := range v {
			m[key] = stringKeys(value)
		}
		return m
	case map[any]any:
		m := make(map[string]any, len(v))
		for key, value := range v {
			m[fmt.Sprint(key)] = stringKeys(value)
		}
		return m
	case []any:
		s := make([]any, len(v))
		for i, value := range v {
			s[i] = stringKeys(value)
		}
		return s
	default:
		return v
	}
}

package linkedin

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// CodeBlockMode selects how fenced code blocks are rendered.
type CodeBlockMode string

// Possible values of CodeBlockMode.
const (
	// CodeBlocksOmit drops code blocks entirely.
	CodeBlocksOmit CodeBlockMode = "omit"
	// CodeBlocksText keeps the body of code blocks as plain text.
	CodeBlocksText CodeBlockMode = "text"
	// CodeBlocksCarbon replaces code blocks with CarbonPlaceholder.
	CodeBlocksCarbon CodeBlockMode = "carbon"
	// CodeBlocksCarbonURL replaces code blocks with a link that opens the code
	// on carbon.now.sh.
	CodeBlocksCarbonURL CodeBlockMode = "carbon-url"
)

// CodeBlockModes contains all valid values of CodeBlockMode.
var CodeBlockModes = []CodeBlockMode{
	CodeBlocksOmit, CodeBlocksText, CodeBlocksCarbon, CodeBlocksCarbonURL}

const (
	// DefaultWarnLimit is the length limit of a LinkedIn post.
	DefaultWarnLimit = 3000
	// DefaultBullet replaces the markers of unordered list items.
	DefaultBullet = "•"
	// CarbonPlaceholder is the line that replaces a code block in the carbon
	// mode.
	CarbonPlaceholder = "[Code image: carbon.now.sh]"
)

// Config controls a conversion. The zero value is not valid; start from
// DefaultConfig.
type Config struct {
	// UseCarbonPlaceholder replaces code blocks with CarbonPlaceholder
	// instead of dropping them. It is only consulted when CodeBlocks is
	// empty.
	UseCarbonPlaceholder bool `json:"use_carbon_placeholder"`
	// CodeBlocks selects the rendering of code blocks. When empty, it is
	// derived from UseCarbonPlaceholder.
	CodeBlocks CodeBlockMode `json:"code_blocks"`
	// WarnLimit is the number of characters above which the result is
	// flagged. It must be positive.
	WarnLimit int `json:"warn_limit"`
	// Bullet replaces the marker of unordered list items. When empty,
	// DefaultBullet is used.
	Bullet string `json:"bullet"`
	// Plain removes Markdown syntax without mapping letters to styled glyphs.
	Plain bool `json:"plain"`
	// NoTrim keeps the leading and trailing whitespace of the result.
	NoTrim bool `json:"no_trim"`
	// StripFrontMatter removes a leading YAML or TOML front matter block.
	StripFrontMatter bool `json:"strip_front_matter"`
}

// DefaultConfig returns the default Config.
func DefaultConfig() Config {
	return Config{WarnLimit: DefaultWarnLimit, Bullet: DefaultBullet}
}

// Validate checks the Config. The returned error, if any, is a *ConfigError.
func (cfg Config) Validate() error {
	err := validation.ValidateStruct(&cfg,
		validation.Field(&cfg.WarnLimit, validation.Required, validation.Min(1)),
		validation.Field(&cfg.CodeBlocks, validation.In(codeBlockModesAsAny()...)),
		validation.Field(&cfg.Bullet, validation.By(func(value any) error {
			if s := value.(string); s != "" && strings.TrimSpace(s) == "" {
				return validation.NewError("validation_bullet_blank", "must not be blank")
			}
			return nil
		})),
	)
	if err != nil {
		return &ConfigError{err}
	}
	return nil
}

func codeBlockModesAsAny() []any {
	modes := make([]any, len(CodeBlockModes))
	for i, mode := range CodeBlockModes {
		modes[i] = mode
	}
	return modes
}

func (cfg Config) codeBlockMode() CodeBlockMode {
	switch {
	case cfg.CodeBlocks != "":
		return cfg.CodeBlocks
	case cfg.UseCarbonPlaceholder:
		return CodeBlocksCarbon
	default:
		return CodeBlocksOmit
	}
}

func (cfg Config) bullet() string {
	if cfg.Bullet == "" {
		return DefaultBullet
	}
	return cfg.Bullet
}

// ConfigError is returned when converting with an invalid Config.
type ConfigError struct {
	// Err is usually a validation.Errors keyed by the JSON names of the
	// invalid fields.
	Err error
}

func (e *ConfigError) Error() string {
	return "invalid configuration: " + e.Err.Error()
}

func (e *ConfigError) Unwrap() error { return e.Err }

package convert

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mdtolinkedin/mdtolinkedin/pkg/linkedin"
	"github.com/mdtolinkedin/mdtolinkedin/pkg/prog"
)

// Environment variable that names the configuration file when -config is not
// given.
const configEnvVar = "MDTOLINKEDIN_CONFIG"

const (
	formatText = "text"
	formatJSON = "json"
)

// Settings of a run, resolved from the defaults, the configuration file and
// the flags, in increasing order of precedence.
type options struct {
	config linkedin.Config
	format string
	noWarn bool
}

// Layout of the configuration file. Pointer fields distinguish an absent key
// from a zero value.
type fileConfig struct {
	CodeBlocks       *string `yaml:"code_blocks"`
	Carbon           *bool   `yaml:"carbon"`
	Bullet           *string `yaml:"bullet"`
	MaxChars         *int    `yaml:"max_chars"`
	Plain            *bool   `yaml:"plain"`
	NoTrim           *bool   `yaml:"no_trim"`
	NoWarn           *bool   `yaml:"no_warn"`
	StripFrontMatter *bool   `yaml:"strip_front_matter"`
	Format           *string `yaml:"format"`
}

func loadFileConfig(path string) (*fileConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read config: %w", err)
	}
	defer f.Close()

	var fc fileConfig
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("cannot parse config %s: %w", path, err)
	}
	return &fc, nil
}

func (fc *fileConfig) applyTo(opts *options) {
	if fc.CodeBlocks != nil {
		opts.config.CodeBlocks = linkedin.CodeBlockMode(*fc.CodeBlocks)
	}
	if fc.Carbon != nil {
		opts.config.UseCarbonPlaceholder = *fc.Carbon
	}
	if fc.Bullet != nil {
		opts.config.Bullet = *fc.Bullet
	}
	if fc.MaxChars != nil {
		opts.config.WarnLimit = *fc.MaxChars
	}
	if fc.Plain != nil {
		opts.config.Plain = *fc.Plain
	}
	if fc.NoTrim != nil {
		opts.config.NoTrim = *fc.NoTrim
	}
	if fc.NoWarn != nil {
		opts.noWarn = *fc.NoWarn
	}
	if fc.StripFrontMatter != nil {
		opts.config.StripFrontMatter = *fc.StripFrontMatter
	}
	if fc.Format != nil {
		opts.format = *fc.Format
	}
}

func (p *Program) resolveOptions() (options, error) {
	opts := options{config: linkedin.DefaultConfig(), format: formatText}

	path := p.configPath
	if path == "" {
		path = os.Getenv(configEnvVar)
	}
	if path != "" {
		logger.Println("loading config from", path)
		fc, err := loadFileConfig(path)
		if err != nil {
			return options{}, err
		}
		fc.applyTo(&opts)
	}

	// Boolean flags can only turn settings on.
	if p.codeBlocks != "" {
		opts.config.CodeBlocks = linkedin.CodeBlockMode(p.codeBlocks)
	}
	if p.carbon {
		opts.config.UseCarbonPlaceholder = true
	}
	if p.bullet != "" {
		opts.config.Bullet = p.bullet
	}
	if p.maxChars != 0 {
		opts.config.WarnLimit = p.maxChars
	}
	if p.plain {
		opts.config.Plain = true
	}
	if p.noTrim {
		opts.config.NoTrim = true
	}
	if p.noWarn {
		opts.noWarn = true
	}
	if p.stripFrontMatter {
		opts.config.StripFrontMatter = true
	}
	if p.format != "" {
		opts.format = p.format
	}
	if p.json != nil && *p.json {
		opts.format = formatJSON
	}

	if opts.format != formatText && opts.format != formatJSON {
		return options{}, prog.BadUsage(fmt.Sprintf(
			"unknown output format %q, must be %s or %s", opts.format, formatText, formatJSON))
	}
	return opts, nil
}

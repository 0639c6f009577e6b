// Package convert implements the main program of mdtolinkedin, which reads a
// Markdown document and writes text ready to be pasted into a LinkedIn post.
package convert

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/mdtolinkedin/mdtolinkedin/pkg/linkedin"
	"github.com/mdtolinkedin/mdtolinkedin/pkg/logutil"
	"github.com/mdtolinkedin/mdtolinkedin/pkg/md"
	"github.com/mdtolinkedin/mdtolinkedin/pkg/prog"
)

var logger = logutil.GetLogger("[convert] ")

// Program is the conversion subprogram.
type Program struct {
	output           string
	carbon           bool
	codeBlocks       string
	format           string
	maxChars         int
	noWarn           bool
	bullet           string
	plain            bool
	noTrim           bool
	stripFrontMatter bool
	configPath       string
	trace            bool
	json             *bool
}

func (p *Program) RegisterFlags(fs *prog.FlagSet) {
	fs.StringVar(&p.output, "o", "",
		"Write the output to a file instead of stdout")
	fs.BoolVar(&p.carbon, "carbon", false,
		"Replace code blocks with a carbon.now.sh placeholder")
	fs.StringVar(&p.codeBlocks, "code-blocks", "",
		"How to render code blocks: omit, text, carbon or carbon-url (default omit)")
	fs.StringVar(&p.format, "format", "",
		"Output format: text or json (default text)")
	fs.IntVar(&p.maxChars, "max-chars", 0,
		fmt.Sprintf("Warn when the output is longer than this many characters (default %d)",
			linkedin.DefaultWarnLimit))
	fs.BoolVar(&p.noWarn, "no-warn", false,
		"Don't warn when the output is too long")
	fs.StringVar(&p.bullet, "bullet", "",
		fmt.Sprintf("Marker for unordered list items (default %q)", linkedin.DefaultBullet))
	fs.BoolVar(&p.plain, "plain", false,
		"Remove Markdown syntax without using bold and italic letters")
	fs.BoolVar(&p.noTrim, "no-trim", false,
		"Keep leading and trailing whitespace of the output")
	fs.BoolVar(&p.stripFrontMatter, "strip-front-matter", false,
		"Remove YAML or TOML front matter at the start of the document")
	fs.StringVar(&p.configPath, "config", "",
		"Path to a YAML configuration file (default $"+configEnvVar+")")
	fs.BoolVar(&p.trace, "trace", false,
		"Show the parsed blocks of the document instead of converting it")
	p.json = fs.JSON()
}

func (p *Program) Run(fds [3]*os.File, args []string) error {
	if len(args) > 1 {
		return prog.BadUsage("at most one input file can be given")
	}
	opts, err := p.resolveOptions()
	if err != nil {
		return err
	}

	input, err := readInput(fds[0], args)
	if err != nil {
		return err
	}

	if p.trace {
		var codec md.TraceCodec
		md.Render(input, &codec)
		return writeOutput(fds[1], p.output, codec.String())
	}

	result, err := linkedin.ConvertWithReport(input, opts.config)
	if err != nil {
		var configErr *linkedin.ConfigError
		if errors.As(err, &configErr) {
			return prog.BadUsage(err.Error())
		}
		return err
	}

	out := result.Text
	if opts.format == formatJSON {
		out, err = encodeJSON(result)
		if err != nil {
			return err
		}
	}
	if err := writeOutput(fds[1], p.output, out); err != nil {
		return err
	}

	if result.ExceedsLimit && !opts.noWarn {
		warn(fds[2], result.Warning)
	}
	return nil
}

func readInput(stdin *os.File, args []string) (string, error) {
	if len(args) == 1 && args[0] != "-" {
		b, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("cannot read input: %w", err)
		}
		return string(b), nil
	}
	if len(args) == 0 && isTerminal(stdin) {
		return "", prog.BadUsage("no input file given and stdin is a terminal")
	}
	logger.Println("reading input from stdin")
	b, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("cannot read stdin: %w", err)
	}
	return string(b), nil
}

// Writes the text to stdout with a trailing newline, or to the named file as
// is.
func writeOutput(stdout *os.File, path, text string) error {
	if path == "" {
		_, err := fmt.Fprintln(stdout, text)
		return err
	}
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		return fmt.Errorf("cannot write output: %w", err)
	}
	return nil
}

func encodeJSON(r linkedin.Result) (string, error) {
	var sb strings.Builder
	enc := json.NewEncoder(&sb)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(r); err != nil {
		return "", fmt.Errorf("cannot encode result: %w", err)
	}
	return strings.TrimSuffix(sb.String(), "\n"), nil
}

func warn(stderr *os.File, message string) {
	c := color.New(color.FgYellow)
	if isTerminal(stderr) {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	c.Fprintln(stderr, "⚠️  "+message)
}

func isTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

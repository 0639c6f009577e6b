// Package progtest contains utilities for testing [prog.Program] instances.
//
// A test case describes the command-line arguments, optional stdin, and the
// expected exit status and output:
//
//	progtest.Test(t, p,
//		progtest.ThatCommand("-plain").WithStdin("**x**").WritesStdout("x\n"),
//	)
package progtest

import (
	"fmt"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/mdtolinkedin/mdtolinkedin/pkg/must"
	"github.com/mdtolinkedin/mdtolinkedin/pkg/prog"
)

// Case is a test case that can be used in Test.
type Case struct {
	args  []string
	stdin string
	want  result
}

type result struct {
	exitStatus int
	stdout     output
	stderr     output
}

type output struct {
	content string
	partial bool
}

func (o output) String() string {
	if o.partial {
		return fmt.Sprintf("text containing %q", o.content)
	}
	return fmt.Sprintf("%q", o.content)
}

// ThatCommand returns a new Case with the specified command-line arguments,
// not including the program name. The new Case expects no output to stdout and
// stderr, and an exit status of 0 unless modified by the other methods.
func ThatCommand(args ...string) Case {
	return Case{args: args}
}

// WithStdin returns an altered Case that provides the given content on stdin.
func (c Case) WithStdin(s string) Case {
	c.stdin = s
	return c
}

// DoesNothing returns c itself. It is useful to mark tests that otherwise
// don't have any expectations, for example:
//
//	ThatCommand("-o", "out.txt", "in.md").DoesNothing()
func (c Case) DoesNothing() Case {
	return c
}

// ExitsWith returns an altered Case that requires the Program to exit with
// the given status.
func (c Case) ExitsWith(code int) Case {
	c.want.exitStatus = code
	return c
}

// WritesStdout returns an altered Case that requires the Program to write
// exactly the given text to stdout.
func (c Case) WritesStdout(s string) Case {
	c.want.stdout = output{content: s}
	return c
}

// WritesStdoutContaining returns an altered Case that requires the Program to
// write output to stdout that contains the given text as a substring.
func (c Case) WritesStdoutContaining(s string) Case {
	c.want.stdout = output{content: s, partial: true}
	return c
}

// WritesStderr returns an altered Case that requires the Program to write
// exactly the given text to stderr.
func (c Case) WritesStderr(s string) Case {
	c.want.stderr = output{content: s}
	return c
}

// WritesStderrContaining returns an altered Case that requires the Program to
// write output to stderr that contains the given text as a substring.
func (c Case) WritesStderrContaining(s string) Case {
	c.want.stderr = output{content: s, partial: true}
	return c
}

// Test runs test cases against a given program.
func Test(t *testing.T, p prog.Program, cases ...Case) {
	t.Helper()
	for _, c := range cases {
		t.Run(strings.Join(c.args, " "), func(t *testing.T) {
			t.Helper()
			stdin, w := must.OK2(os.Pipe())
			go func() {
				w.WriteString(c.stdin)
				w.Close()
			}()
			exit, stdout, stderr := Run(p, stdin, c.args...)
			stdin.Close()
			r := result{exit, output{content: stdout}, output{content: stderr}}

			if r.exitStatus != c.want.exitStatus {
				t.Errorf("got exit status %v, want %v", r.exitStatus, c.want.exitStatus)
			}
			if !matchOutput(r.stdout, c.want.stdout) {
				t.Errorf("got stdout %v, want %v", r.stdout, c.want.stdout)
			}
			if !matchOutput(r.stderr, c.want.stderr) {
				t.Errorf("got stderr %v, want %v", r.stderr, c.want.stderr)
			}
		})
	}
}

// Run runs a Program with the given stdin and arguments, not including the
// program name. It returns the exit status and the output written to stdout
// and stderr.
func Run(p prog.Program, stdin *os.File, args ...string) (exit int, stdout, stderr string) {
	r1, w1 := must.OK2(os.Pipe())
	r2, w2 := must.OK2(os.Pipe())
	// Drain the pipes concurrently so that a program writing more than the
	// pipe buffer does not block.
	outCh := make(chan string, 1)
	errCh := make(chan string, 1)
	go func() { outCh <- string(must.OK1(io.ReadAll(r1))) }()
	go func() { errCh <- string(must.OK1(io.ReadAll(r2))) }()

	args = append([]string{"mdtolinkedin"}, args...)
	exit = prog.Run([3]*os.File{stdin, w1, w2}, args, p)
	w1.Close()
	w2.Close()
	stdout, stderr = <-outCh, <-errCh
	r1.Close()
	r2.Close()
	return exit, stdout, stderr
}

func matchOutput(got, want output) bool {
	if want.partial {
		return strings.Contains(got.content, want.content)
	}
	return got.content == want.content
}

// Mdtolinkedin converts a Markdown document into Unicode text that keeps its
// formatting when pasted into a LinkedIn post.
package main

import (
	"os"

	"github.com/mdtolinkedin/mdtolinkedin/pkg/buildinfo"
	"github.com/mdtolinkedin/mdtolinkedin/pkg/convert"
	"github.com/mdtolinkedin/mdtolinkedin/pkg/prog"
)

func main() {
	os.Exit(prog.Run(
		[3]*os.File{os.Stdin, os.Stdout, os.Stderr}, os.Args,
		prog.Composite(&buildinfo.Program{}, &convert.Program{})))
}

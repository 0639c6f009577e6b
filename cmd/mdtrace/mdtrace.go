// Mdtrace prints the blocks and inline spans that mdtolinkedin parses from the
// Markdown document on stdin.
package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/mdtolinkedin/mdtolinkedin/pkg/md"
)

func main() {
	text, err := io.ReadAll(os.Stdin)
	if err != nil {
		log.Fatal(err)
	}
	var codec md.TraceCodec
	md.Render(string(text), &codec)
	fmt.Println(codec.String())
}

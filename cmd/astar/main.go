// Command astar runs the tie-aware A* engine over puzzle inputs and serves a
// step-by-step view of a search over HTTP.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

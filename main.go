// Command dirtidy writes a reviewable script of disk cleanup suggestions.
package main

import (
	"os"

	"github.com/idelchi/dirtidy/internal/cli"
)

// version is set via ldflags.
var version = "unknown - unofficial build"

func main() {
	if err := cli.New(version).Execute(); err != nil {
		os.Exit(1)
	}
}

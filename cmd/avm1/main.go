// Command avm1 runs, disassembles, and reports the version of this
// module's AVM1 core from the command line.
package main

import (
	"fmt"
	"os"

	"github.com/gnashcore/avm1/cmd/avm1/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

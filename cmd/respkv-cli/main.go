// Command respkv-cli is the command-line client for respkv. It sends a
// single command when given arguments and starts an interactive session
// otherwise.
package main

import (
	"fmt"
	"os"

	"github.com/yndnr/respkv-go/internal/cli/command"
)

func main() {
	if err := command.App().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

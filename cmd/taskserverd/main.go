// Command taskserverd is the funtonic taskserver's entry point. It is
// deliberately thin: all logic lives in internal/cli.
package main

import (
	"fmt"
	"os"

	"github.com/nodefleet/funtonic/internal/cli"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "fatal: %v\n", r)
			os.Exit(1)
		}
	}()

	rootCmd := cli.BuildCLI()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

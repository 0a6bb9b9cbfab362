// Command ghdigest summarizes GitHub repository activity and runs quick web
// searches from the terminal.
package main

import (
	"fmt"
	"os"

	"ghdigest/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

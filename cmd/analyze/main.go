// Command analyze scores tickers against the Gunderson growth criteria from the terminal.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := Execute(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

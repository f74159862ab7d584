// Command trackerctl administers a learning tracker database: it runs
// migrations, mints API tokens and studies decks from the terminal.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd(newCLI(os.Stdout)).Execute(); err != nil {
		os.Exit(1)
	}
}

// Command revcompare ranks and compares revenue reports from the terminal.
package main

import (
	"os"

	"revcompare/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

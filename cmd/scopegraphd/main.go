// Command scopegraphd ingests a source tree into a program-fact repository
// and answers scope/call queries against it from the command line.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// FragSearch - Protein fragment mass search tool
package main

import (
	"fmt"
	"os"

	"github.com/ChrisMcGann/FragSearch/cmd/fragsearch/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

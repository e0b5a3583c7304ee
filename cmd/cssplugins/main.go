// cmd/cssplugins/main.go
//
// Entry point for the cssplugins CLI, which prints the PostCSS plugin list a
// build would use for the application in the current directory.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/kingrea/cssplugins/cmd/cssplugins/commands"
)

var (
	version = "dev"
	commit  = "none"
)

func main() {
	if err := commands.Execute(context.Background(), version, commit); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// Command taskmark reads and edits markdown tasks.
package main

import (
	"os"

	"github.com/aidanlsb/taskmark/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

package main

import (
	"fmt"
	"os"

	"github.com/routetable/routegen/internal/cmd"
)

func main() {
	if err := cmd.RootCommand.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "routegen:", err)
		os.Exit(cmd.ExitCode(err))
	}
}

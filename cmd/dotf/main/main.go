package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/dotf/cmd/dotf"
	"github.com/arthur-debert/dotf/pkg/style"
)

func main() {
	rootCmd := dotf.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		out := style.NewOutput(os.Stderr)
		fmt.Fprintln(os.Stderr, out.Error(fmt.Sprintf("Error: %v", err)))
		os.Exit(1)
	}
}

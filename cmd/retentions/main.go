package main

import (
	"fmt"
	"os"

	"github.com/raoulx24/retentions/internal/apperr"
)

func main() {
	if err := preflightDuplicateFlags(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(apperr.ExitCode(err))
	}

	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(apperr.ExitCode(err))
	}
}

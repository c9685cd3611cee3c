package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/cmdcorrect/internal/cli"
	"github.com/arthur-debert/cmdcorrect/internal/version"
)

func main() {
	rootCmd := cli.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "CMDCORRECT",
		Section: "1",
		Source:  "cmdcorrect " + version.Version,
		Manual:  "cmdcorrect manual",
	}

	if err := doc.GenMan(rootCmd, header, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}

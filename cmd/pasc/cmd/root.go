// Package cmd implements the pasc command-line entry points: run, repl,
// lex, parse, version — the "external collaborators" spec.md §6 sketches,
// built the way the teacher's cmd/dwscript/cmd package builds its own.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var noColor bool

var rootCmd = &cobra.Command{
	Use:   "pasc",
	Short: "pasc is an interpreter for a small Pascal-like language",
	Long: `pasc compiles and runs programs written in a small Pascal-like
imperative language: nested lexical scopes, recursive value-returning
functions, integer/real arithmetic, IF/WHILE/FOR, and PRINT/WRITELN.`,
}

// Execute runs the root command, exiting the process with a non-zero
// status on failure (spec.md §6: "exit 0 on success, 1 on any error").
func Execute() {
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored error output")
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

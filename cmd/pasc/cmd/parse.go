package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Parse a source file and dump its AST",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
}

func runParse(_ *cobra.Command, args []string) error {
	source, _, err := readSource("", args)
	if err != nil {
		return err
	}

	prog, perr := parseProgram(source)
	if perr != nil {
		printError(perr, source)
		return fmt.Errorf("parsing failed")
	}

	fmt.Println(prog.String())
	return nil
}

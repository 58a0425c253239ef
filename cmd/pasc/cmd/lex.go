package cmd

import (
	"fmt"
	"os"

	"github.com/cwbudde/pasc/internal/lexer"
	"github.com/cwbudde/pasc/internal/token"
	"github.com/spf13/cobra"
)

var lexCmd = &cobra.Command{
	Use:   "lex <file>",
	Short: "Dump the token stream for a source file",
	Args:  cobra.ExactArgs(1),
	RunE:  runLex,
}

func init() {
	rootCmd.AddCommand(lexCmd)
}

func runLex(_ *cobra.Command, args []string) error {
	source, _, err := readSource("", args)
	if err != nil {
		return err
	}

	l := lexer.New(source)
	for {
		tok, lerr := l.NextToken()
		if lerr != nil {
			printError(lerr, source)
			return fmt.Errorf("lexing failed")
		}
		fmt.Fprintf(os.Stdout, "%-6d%-6d%-16s%s\n", tok.Pos.Line, tok.Pos.Column, tok.Type, tok.Literal)
		if tok.Type == token.EOF {
			return nil
		}
	}
}

package cmd

import (
	"fmt"
	"os"

	"github.com/cwbudde/pasc/internal/ast"
	"github.com/cwbudde/pasc/internal/errors"
	"github.com/cwbudde/pasc/internal/lexer"
	"github.com/cwbudde/pasc/internal/parser"
)

// readSource returns (source, filename) for either an inline -e expression
// or a file path argument, matching the teacher's runScript dispatch.
func readSource(evalExpr string, args []string) (string, string, error) {
	if evalExpr != "" {
		return evalExpr, "<eval>", nil
	}
	if len(args) == 1 {
		content, err := os.ReadFile(args[0])
		if err != nil {
			return "", "", fmt.Errorf("failed to read file %s: %w", args[0], err)
		}
		return string(content), args[0], nil
	}
	return "", "", fmt.Errorf("either provide a file path or use -e for inline code")
}

// parseProgram lexes and parses source into an AST, or returns the first
// LexerError/ParserError encountered.
func parseProgram(source string) (*ast.Program, *errors.Error) {
	l := lexer.New(source)
	p := parser.New(l)
	return p.ParseProgram()
}

// printError writes a positioned error to stderr in spec.md §6's format,
// with source context and an optional caret, honoring --no-color.
func printError(err *errors.Error, source string) {
	fmt.Fprintln(os.Stderr, err.Format(os.Stderr, source, noColor))
}

package errors

import (
	"testing"

	"github.com/cwbudde/pasc/internal/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeaderTextWithLineAndColumn(t *testing.T) {
	err := Lexer(token.Position{Line: 3, Column: 7}, "Invalid character '%c'", '@')
	assert.Equal(t, "LexerError at line 3, column 7: Invalid character '@'", err.headerText())
}

func TestHeaderTextWithLineOnly(t *testing.T) {
	err := Parser(token.Position{Line: 5}, "Expected token %s, got %s", token.SEMI, token.END)
	assert.Equal(t, "ParserError at line 5: Expected token ;, got END", err.headerText())
}

func TestHeaderTextUnpositioned(t *testing.T) {
	err := RuntimeUnpositioned("Stack overflow: maximum recursion depth exceeded in '%s'", "Loop")
	assert.Equal(t, "RuntimeError: Stack overflow: maximum recursion depth exceeded in 'Loop'", err.headerText())
}

func TestFormatIncludesCaretUnderColumn(t *testing.T) {
	err := Semantic(token.Position{Line: 2, Column: 3}, "Undeclared variable 'y'")
	source := "PROGRAM P;\nx := y\n"
	out := err.Format(nil, source, true)
	require.Contains(t, out, "x := y")
	require.Contains(t, out, "^")
}

func TestFormatWithNoSourceOmitsCaret(t *testing.T) {
	err := Runtime(token.Position{Line: 1, Column: 1}, "Division by zero.")
	out := err.Format(nil, "", true)
	assert.NotContains(t, out, "^")
	assert.Equal(t, "RuntimeError at line 1, column 1: Division by zero.", out)
}

func TestErrorSatisfiesErrorInterface(t *testing.T) {
	var err error = Runtime(token.Position{Line: 1, Column: 1}, "boom")
	assert.Equal(t, "RuntimeError at line 1, column 1: boom", err.Error())
}

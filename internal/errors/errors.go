// Package errors defines the interpreter's shared error taxonomy —
// LexerError, ParserError, SemanticError, and RuntimeError — and formats
// them with source context for the CLI.
package errors

import (
	"fmt"
	"strings"

	"github.com/cwbudde/pasc/internal/token"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Kind names one of the four error categories of spec.md §4.5 / §7.
type Kind string

const (
	KindLexer    Kind = "LexerError"
	KindParser   Kind = "ParserError"
	KindSemantic Kind = "SemanticError"
	KindRuntime  Kind = "RuntimeError"
)

// Error is a positioned interpreter error. LexerError always carries a
// position; ParserError, SemanticError, and RuntimeError may (HasPos false
// means "no position attached").
type Error struct {
	Kind    Kind
	Message string
	Pos     token.Position
	HasPos  bool
}

func (e *Error) Error() string {
	return e.Format(nil, "", false)
}

// New creates a positioned error of the given kind.
func New(kind Kind, pos token.Position, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Pos: pos, HasPos: true}
}

// NewUnpositioned creates an error with no attached source position.
func NewUnpositioned(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func Lexer(pos token.Position, format string, args ...interface{}) *Error {
	return New(KindLexer, pos, format, args...)
}

func Parser(pos token.Position, format string, args ...interface{}) *Error {
	return New(KindParser, pos, format, args...)
}

func Semantic(pos token.Position, format string, args ...interface{}) *Error {
	return New(KindSemantic, pos, format, args...)
}

func Runtime(pos token.Position, format string, args ...interface{}) *Error {
	return New(KindRuntime, pos, format, args...)
}

func RuntimeUnpositioned(format string, args ...interface{}) *Error {
	return NewUnpositioned(KindRuntime, format, args...)
}

// useColor reports whether ANSI color should be applied to w, honoring an
// explicit disable flag (the CLI's --no-color) before falling back to a
// terminal check the way go-mix's repl package decides when to colorize.
func useColor(w fileWriter, disabled bool) bool {
	if disabled {
		return false
	}
	if w == nil {
		return false
	}
	return isatty.IsTerminal(w.Fd()) || isatty.IsCygwinTerminal(w.Fd())
}

type fileWriter interface {
	Fd() uintptr
}

// Format renders "<ErrorKind> at line L[, column C]: <message>" per
// spec.md §6, with an optional caret line under the offending column when
// source text is available.
func (e *Error) Format(out fileWriter, source string, noColor bool) string {
	colored := useColor(out, noColor)

	var sb strings.Builder
	header := e.headerText()
	if colored {
		sb.WriteString(color.New(color.FgRed, color.Bold).Sprint(header))
	} else {
		sb.WriteString(header)
	}

	if e.HasPos && source != "" {
		if line := sourceLine(source, e.Pos.Line); line != "" {
			sb.WriteString("\n")
			sb.WriteString(line)
			sb.WriteString("\n")
			sb.WriteString(strings.Repeat(" ", max0(e.Pos.Column-1)))
			caret := "^"
			if colored {
				caret = color.New(color.FgRed, color.Bold).Sprint("^")
			}
			sb.WriteString(caret)
		}
	}

	return sb.String()
}

func (e *Error) headerText() string {
	if !e.HasPos {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	if e.Pos.Column > 0 {
		return fmt.Sprintf("%s at line %d, column %d: %s", e.Kind, e.Pos.Line, e.Pos.Column, e.Message)
	}
	return fmt.Sprintf("%s at line %d: %s", e.Kind, e.Pos.Line, e.Message)
}

func sourceLine(source string, lineNum int) string {
	lines := strings.Split(source, "\n")
	if lineNum < 1 || lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}

func max0(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

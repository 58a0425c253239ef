package parser

import (
	"strconv"

	"github.com/cwbudde/pasc/internal/ast"
	"github.com/cwbudde/pasc/internal/token"
)

func parseInt(lit string) int64 {
	n, _ := strconv.ParseInt(lit, 10, 64)
	return n
}

func parseFloat(lit string) float64 {
	f, _ := strconv.ParseFloat(lit, 64)
	return f
}

// errExpr is a placeholder expression returned when factor() hits a
// parse error; the caller aborts on p.err before this value is ever
// evaluated. The embedded (always nil) ast.Expression supplies the ast
// package's unexported marker method, which this package cannot declare.
type errExpr struct {
	ast.Expression
	pos token.Position
}

func (e *errExpr) Pos() token.Position { return e.pos }
func (e *errExpr) String() string      { return "<error>" }

var _ ast.Expression = (*errExpr)(nil)

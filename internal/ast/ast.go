// Package ast defines the abstract syntax tree node types produced by the
// parser and walked by the semantic analyzer and evaluator.
package ast

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/cwbudde/pasc/internal/token"
)

// Node is the base interface implemented by every AST node.
type Node interface {
	Pos() token.Position
	String() string
}

// Expression is any node that produces a value.
type Expression interface {
	Node
	expressionNode()
}

// Statement is any node that performs an action.
type Statement interface {
	Node
	statementNode()
}

// ---- Top level -------------------------------------------------------

// Program is the root of the AST: `PROGRAM Name; Block .`
type Program struct {
	Token token.Token // PROGRAM
	Name  string
	Block *Block
}

func (p *Program) Pos() token.Position { return p.Token.Pos }
func (p *Program) String() string {
	return fmt.Sprintf("PROGRAM %s;\n%s.", p.Name, p.Block.String())
}

// Block is declarations followed by a single compound statement.
type Block struct {
	TokenPos   token.Position
	VarDecls   []*VarDecl
	FuncDecls  []*FuncDecl
	Compound   *Compound
}

func (b *Block) Pos() token.Position { return b.TokenPos }
func (b *Block) String() string {
	var sb strings.Builder
	for _, d := range b.VarDecls {
		sb.WriteString(d.String())
		sb.WriteString(";\n")
	}
	for _, d := range b.FuncDecls {
		sb.WriteString(d.String())
		sb.WriteString(";\n")
	}
	sb.WriteString(b.Compound.String())
	return sb.String()
}

// Param is one formal parameter of a function.
type Param struct {
	TokenPos token.Position
	Name     string
	TypeName string
}

func (p *Param) Pos() token.Position { return p.TokenPos }
func (p *Param) String() string      { return fmt.Sprintf("%s: %s", p.Name, p.TypeName) }

// ---- Declarations -----------------------------------------------------

// VarDecl declares one variable with its type, e.g. `x : INTEGER`.
type VarDecl struct {
	Token    token.Token // the ID token of the variable
	Name     string
	TypeName string
}

func (d *VarDecl) Pos() token.Position { return d.Token.Pos }
func (d *VarDecl) String() string      { return fmt.Sprintf("%s : %s", d.Name, d.TypeName) }

// FuncDecl declares a value-returning function.
type FuncDecl struct {
	Token      token.Token // FUNCTION
	Name       string
	Params     []*Param
	ReturnType string
	Body       *Block
}

func (d *FuncDecl) Pos() token.Position { return d.Token.Pos }
func (d *FuncDecl) String() string {
	var params []string
	for _, p := range d.Params {
		params = append(params, p.String())
	}
	return fmt.Sprintf("FUNCTION %s(%s): %s;\n%s", d.Name, strings.Join(params, "; "), d.ReturnType, d.Body.String())
}

// ---- Statements --------------------------------------------------------

// NoOp is an empty statement (an empty statement-list slot).
type NoOp struct {
	TokenPos token.Position
}

func (n *NoOp) statementNode()        {}
func (n *NoOp) Pos() token.Position   { return n.TokenPos }
func (n *NoOp) String() string        { return "" }

// Assign is `target := expr`.
type Assign struct {
	Token  token.Token // :=
	Target string
	TargetPos token.Position
	Expr   Expression
}

func (a *Assign) statementNode()      {}
func (a *Assign) Pos() token.Position { return a.TargetPos }
func (a *Assign) String() string      { return fmt.Sprintf("%s := %s", a.Target, a.Expr.String()) }

// Compound is `BEGIN statementList END`.
type Compound struct {
	TokenPos   token.Position
	Statements []Statement
}

func (c *Compound) statementNode()      {}
func (c *Compound) Pos() token.Position { return c.TokenPos }
func (c *Compound) String() string {
	var sb bytes.Buffer
	sb.WriteString("BEGIN\n")
	for _, s := range c.Statements {
		sb.WriteString(s.String())
		sb.WriteString(";\n")
	}
	sb.WriteString("END")
	return sb.String()
}

// If is `IF cond THEN then [ELSE else] END`.
type If struct {
	Token token.Token // IF
	Cond  Expression
	Then  Statement
	Else  Statement // nil if no ELSE branch
}

func (s *If) statementNode()      {}
func (s *If) Pos() token.Position { return s.Token.Pos }
func (s *If) String() string {
	if s.Else != nil {
		return fmt.Sprintf("IF %s THEN %s ELSE %s END", s.Cond, s.Then, s.Else)
	}
	return fmt.Sprintf("IF %s THEN %s END", s.Cond, s.Then)
}

// While is `WHILE cond DO body`.
type While struct {
	Token token.Token // WHILE
	Cond  Expression
	Body  Statement
}

func (s *While) statementNode()      {}
func (s *While) Pos() token.Position { return s.Token.Pos }
func (s *While) String() string      { return fmt.Sprintf("WHILE %s DO %s", s.Cond, s.Body) }

// ForDirection is TO or DOWNTO.
type ForDirection int

const (
	ForTo ForDirection = iota
	ForDownto
)

func (d ForDirection) String() string {
	if d == ForDownto {
		return "DOWNTO"
	}
	return "TO"
}

// For is `FOR var := start (TO|DOWNTO) end DO body`.
type For struct {
	Token     token.Token // FOR
	VarName   string
	Start     Expression
	End       Expression
	Direction ForDirection
	Body      Statement
}

func (s *For) statementNode()      {}
func (s *For) Pos() token.Position { return s.Token.Pos }
func (s *For) String() string {
	return fmt.Sprintf("FOR %s := %s %s %s DO %s", s.VarName, s.Start, s.Direction, s.End, s.Body)
}

// Print is `(PRINT|WRITELN) ( expr {, expr} )`.
type Print struct {
	Token   token.Token // PRINT or WRITELN
	Args    []Expression
	Newline bool
}

func (s *Print) statementNode()      {}
func (s *Print) Pos() token.Position { return s.Token.Pos }
func (s *Print) String() string {
	var args []string
	for _, a := range s.Args {
		args = append(args, a.String())
	}
	name := "PRINT"
	if s.Newline {
		name = "WRITELN"
	}
	return fmt.Sprintf("%s(%s)", name, strings.Join(args, ", "))
}

// ---- Expressions --------------------------------------------------------

// Num is an integer or real literal.
type Num struct {
	Token   token.Token
	IsReal  bool
	IntVal  int64
	RealVal float64
}

func (n *Num) expressionNode()      {}
func (n *Num) Pos() token.Position  { return n.Token.Pos }
func (n *Num) String() string       { return n.Token.Literal }

// Var is a reference to a variable (or parameterless function-name
// return-slot read, in the activation record).
type Var struct {
	Token token.Token // ID
	Name  string
}

func (v *Var) expressionNode()      {}
func (v *Var) Pos() token.Position  { return v.Token.Pos }
func (v *Var) String() string       { return v.Name }

// UnaryArith is unary `+`/`-`.
type UnaryArith struct {
	Token token.Token
	Op    token.TokenType
	Expr  Expression
}

func (u *UnaryArith) expressionNode()      {}
func (u *UnaryArith) Pos() token.Position  { return u.Token.Pos }
func (u *UnaryArith) String() string       { return fmt.Sprintf("(%s%s)", u.Token.Literal, u.Expr) }

// BinArith is `+ - * / DIV`.
type BinArith struct {
	Token token.Token // operator token
	Left  Expression
	Op    token.TokenType
	Right Expression
}

func (b *BinArith) expressionNode()      {}
func (b *BinArith) Pos() token.Position  { return b.Token.Pos }
func (b *BinArith) String() string {
	return fmt.Sprintf("(%s %s %s)", b.Left, b.Token.Literal, b.Right)
}

// Compare is `= <> < > <= >=`.
type Compare struct {
	Token token.Token
	Left  Expression
	Op    token.TokenType
	Right Expression
}

func (c *Compare) expressionNode()      {}
func (c *Compare) Pos() token.Position  { return c.Token.Pos }
func (c *Compare) String() string {
	return fmt.Sprintf("(%s %s %s)", c.Left, c.Token.Literal, c.Right)
}

// BoolBin is `AND`/`OR`.
type BoolBin struct {
	Token token.Token
	Left  Expression
	Op    token.TokenType
	Right Expression
}

func (b *BoolBin) expressionNode()      {}
func (b *BoolBin) Pos() token.Position  { return b.Token.Pos }
func (b *BoolBin) String() string {
	return fmt.Sprintf("(%s %s %s)", b.Left, b.Token.Literal, b.Right)
}

// BoolNot is `NOT expr`.
type BoolNot struct {
	Token token.Token
	Expr  Expression
}

func (n *BoolNot) expressionNode()      {}
func (n *BoolNot) Pos() token.Position  { return n.Token.Pos }
func (n *BoolNot) String() string       { return fmt.Sprintf("(NOT %s)", n.Expr) }

// Call is `name ( args... )`.
type Call struct {
	Token token.Token // ID
	Name  string
	Args  []Expression
}

func (c *Call) expressionNode()      {}
func (c *Call) Pos() token.Position  { return c.Token.Pos }
func (c *Call) String() string {
	var args []string
	for _, a := range c.Args {
		args = append(args, a.String())
	}
	return fmt.Sprintf("%s(%s)", c.Name, strings.Join(args, ", "))
}

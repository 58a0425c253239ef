package parser

import (
	"testing"

	"github.com/cwbudde/pasc/internal/ast"
	"github.com/cwbudde/pasc/internal/lexer"
	"github.com/cwbudde/pasc/internal/token"
)

func testParser(input string) *Parser {
	return New(lexer.New(input))
}

func mustParse(t *testing.T, input string) *ast.Program {
	t.Helper()
	p := testParser(input)
	prog, err := p.ParseProgram()
	if err != nil {
		t.Fatalf("unexpected parser error: %v", err)
	}
	return prog
}

func TestParseProgramHeader(t *testing.T) {
	prog := mustParse(t, `PROGRAM Main; BEGIN END.`)
	if prog.Name != "Main" {
		t.Fatalf("program name = %q, want %q", prog.Name, "Main")
	}
	if len(prog.Block.Compound.Statements) != 1 {
		t.Fatalf("expected one (NoOp) statement, got %d", len(prog.Block.Compound.Statements))
	}
	if _, ok := prog.Block.Compound.Statements[0].(*ast.NoOp); !ok {
		t.Fatalf("statement = %T, want *ast.NoOp", prog.Block.Compound.Statements[0])
	}
}

func TestParseVarDecls(t *testing.T) {
	prog := mustParse(t, `PROGRAM P; VAR x, y : INTEGER; z : REAL; BEGIN END.`)
	if len(prog.Block.VarDecls) != 3 {
		t.Fatalf("expected 3 var decls, got %d", len(prog.Block.VarDecls))
	}
	want := []struct {
		name, typ string
	}{
		{"x", "INTEGER"}, {"y", "INTEGER"}, {"z", "REAL"},
	}
	for i, w := range want {
		got := prog.Block.VarDecls[i]
		if got.Name != w.name || got.TypeName != w.typ {
			t.Errorf("decl[%d] = %s:%s, want %s:%s", i, got.Name, got.TypeName, w.name, w.typ)
		}
	}
}

func TestParseAssignAndExprPrecedence(t *testing.T) {
	prog := mustParse(t, `PROGRAM P; VAR x : INTEGER; BEGIN x := 2 + 3 * 4 END.`)
	stmts := prog.Block.Compound.Statements
	if len(stmts) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(stmts))
	}
	assign, ok := stmts[0].(*ast.Assign)
	if !ok {
		t.Fatalf("statement is %T, want *ast.Assign", stmts[0])
	}
	if assign.Target != "x" {
		t.Fatalf("target = %q, want %q", assign.Target, "x")
	}
	bin, ok := assign.Expr.(*ast.BinArith)
	if !ok {
		t.Fatalf("expr is %T, want *ast.BinArith", assign.Expr)
	}
	if bin.Op != token.PLUS {
		t.Fatalf("top-level op = %s, want PLUS (higher-precedence * must nest on the right)", bin.Op)
	}
	if _, ok := bin.Right.(*ast.BinArith); !ok {
		t.Fatalf("right operand is %T, want nested *ast.BinArith for 3 * 4", bin.Right)
	}
}

func TestParseFuncDeclWithParams(t *testing.T) {
	src := `PROGRAM P;
FUNCTION Add(a, b : INTEGER) : INTEGER;
BEGIN
  Add := a + b
END;
BEGIN END.`
	prog := mustParse(t, src)
	if len(prog.Block.FuncDecls) != 1 {
		t.Fatalf("expected 1 func decl, got %d", len(prog.Block.FuncDecls))
	}
	fn := prog.Block.FuncDecls[0]
	if fn.Name != "Add" || fn.ReturnType != "INTEGER" {
		t.Fatalf("func = %s:%s, want Add:INTEGER", fn.Name, fn.ReturnType)
	}
	if len(fn.Params) != 2 || fn.Params[0].Name != "a" || fn.Params[1].Name != "b" {
		t.Fatalf("params = %+v, want [a b]", fn.Params)
	}
}

func TestCallVsVarDisambiguation(t *testing.T) {
	prog := mustParse(t, `PROGRAM P; VAR x : INTEGER; BEGIN x := Foo(1, 2) + Bar END.`)
	assign := prog.Block.Compound.Statements[0].(*ast.Assign)
	bin := assign.Expr.(*ast.BinArith)

	call, ok := bin.Left.(*ast.Call)
	if !ok {
		t.Fatalf("left operand is %T, want *ast.Call", bin.Left)
	}
	if call.Name != "Foo" || len(call.Args) != 2 {
		t.Fatalf("call = %s with %d args, want Foo with 2 args", call.Name, len(call.Args))
	}

	v, ok := bin.Right.(*ast.Var)
	if !ok {
		t.Fatalf("right operand is %T, want *ast.Var (no trailing parens)", bin.Right)
	}
	if v.Name != "Bar" {
		t.Fatalf("var name = %q, want %q", v.Name, "Bar")
	}
}

func TestParseIfWithExplicitEnd(t *testing.T) {
	prog := mustParse(t, `PROGRAM P; VAR x : INTEGER; BEGIN IF x > 0 THEN x := 1 ELSE x := 2 END END.`)
	ifStmt, ok := prog.Block.Compound.Statements[0].(*ast.If)
	if !ok {
		t.Fatalf("statement is %T, want *ast.If", prog.Block.Compound.Statements[0])
	}
	if ifStmt.Else == nil {
		t.Fatalf("expected an ELSE branch")
	}
	if _, ok := ifStmt.Cond.(*ast.Compare); !ok {
		t.Fatalf("condition is %T, want *ast.Compare", ifStmt.Cond)
	}
}

func TestParseForToAndDownto(t *testing.T) {
	prog := mustParse(t, `PROGRAM P; VAR i : INTEGER; BEGIN FOR i := 1 TO 10 DO i := i END.`)
	forStmt := prog.Block.Compound.Statements[0].(*ast.For)
	if forStmt.Direction != ast.ForTo {
		t.Fatalf("direction = %s, want TO", forStmt.Direction)
	}

	prog2 := mustParse(t, `PROGRAM P; VAR i : INTEGER; BEGIN FOR i := 10 DOWNTO 1 DO i := i END.`)
	forStmt2 := prog2.Block.Compound.Statements[0].(*ast.For)
	if forStmt2.Direction != ast.ForDownto {
		t.Fatalf("direction = %s, want DOWNTO", forStmt2.Direction)
	}
}

func TestParseWhile(t *testing.T) {
	prog := mustParse(t, `PROGRAM P; VAR x : INTEGER; BEGIN WHILE x < 10 DO x := x + 1 END.`)
	w, ok := prog.Block.Compound.Statements[0].(*ast.While)
	if !ok {
		t.Fatalf("statement is %T, want *ast.While", prog.Block.Compound.Statements[0])
	}
	if _, ok := w.Cond.(*ast.Compare); !ok {
		t.Fatalf("condition is %T, want *ast.Compare", w.Cond)
	}
}

func TestParsePrintAndWriteln(t *testing.T) {
	prog := mustParse(t, `PROGRAM P; BEGIN PRINT(1, 2); WRITELN(3) END.`)
	stmts := prog.Block.Compound.Statements
	if len(stmts) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(stmts))
	}
	p0 := stmts[0].(*ast.Print)
	if p0.Newline || len(p0.Args) != 2 {
		t.Fatalf("PRINT: newline=%v args=%d, want false/2", p0.Newline, len(p0.Args))
	}
	p1 := stmts[1].(*ast.Print)
	if !p1.Newline || len(p1.Args) != 1 {
		t.Fatalf("WRITELN: newline=%v args=%d, want true/1", p1.Newline, len(p1.Args))
	}
}

func TestParseBooleanExpressions(t *testing.T) {
	prog := mustParse(t, `PROGRAM P; VAR x : INTEGER; BEGIN IF (x > 0) AND NOT (x > 10) THEN x := 1 END END.`)
	ifStmt := prog.Block.Compound.Statements[0].(*ast.If)
	boolBin, ok := ifStmt.Cond.(*ast.BoolBin)
	if !ok {
		t.Fatalf("condition is %T, want *ast.BoolBin", ifStmt.Cond)
	}
	if boolBin.Op != token.AND {
		t.Fatalf("op = %s, want AND", boolBin.Op)
	}
	if _, ok := boolBin.Right.(*ast.BoolNot); !ok {
		t.Fatalf("right operand is %T, want *ast.BoolNot", boolBin.Right)
	}
}

func TestDivAndFloatDivAreDistinctOperators(t *testing.T) {
	prog := mustParse(t, `PROGRAM P; VAR a, b : INTEGER; BEGIN a := 7 DIV 2; b := 7 / 2 END.`)
	stmts := prog.Block.Compound.Statements
	a := stmts[0].(*ast.Assign).Expr.(*ast.BinArith)
	if a.Op != token.INTDIV {
		t.Fatalf("a op = %s, want INTDIV", a.Op)
	}
	b := stmts[1].(*ast.Assign).Expr.(*ast.BinArith)
	if b.Op != token.FLOATDIV {
		t.Fatalf("b op = %s, want FLOATDIV", b.Op)
	}
}

func TestMissingSemicolonIsParserError(t *testing.T) {
	p := testParser(`PROGRAM P; VAR x : INTEGER; BEGIN x := 1 x := 2 END.`)
	_, err := p.ParseProgram()
	if err == nil {
		t.Fatalf("expected a parser error for two statements with no separating ';'")
	}
}

func TestUnterminatedExpressionIsParserError(t *testing.T) {
	p := testParser(`PROGRAM P; VAR x : INTEGER; BEGIN x := END.`)
	_, err := p.ParseProgram()
	if err == nil {
		t.Fatalf("expected a parser error for a missing expression after ':='")
	}
}

func TestNoErrorRecoveryFirstErrorWins(t *testing.T) {
	p := testParser(`PROGRAM; BEGIN END.`)
	_, err := p.ParseProgram()
	if err == nil {
		t.Fatalf("expected a parser error for a missing program name")
	}
}

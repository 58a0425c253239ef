package semantic

import (
	"strings"
	"testing"

	"github.com/cwbudde/pasc/internal/ast"
	"github.com/cwbudde/pasc/internal/lexer"
	"github.com/cwbudde/pasc/internal/parser"
)

func analyze(t *testing.T, src string) error {
	t.Helper()
	p := parser.New(lexer.New(src))
	prog, perr := p.ParseProgram()
	if perr != nil {
		t.Fatalf("unexpected parser error: %v", perr)
	}
	_, serr := NewAnalyzer().Analyze(prog)
	if serr == nil {
		return nil
	}
	return serr
}

func TestAnalyzeValidProgram(t *testing.T) {
	src := `PROGRAM P;
VAR x, y : INTEGER;
FUNCTION Add(a, b : INTEGER) : INTEGER;
BEGIN
  Add := a + b
END;
BEGIN
  x := 1;
  y := Add(x, 2)
END.`
	if err := analyze(t, src); err != nil {
		t.Fatalf("unexpected semantic error: %v", err)
	}
}

func TestAssignToUndeclaredVariableIsError(t *testing.T) {
	err := analyze(t, `PROGRAM P; BEGIN x := y END.`)
	if err == nil {
		t.Fatalf("expected an error assigning to undeclared 'x'")
	}
}

func TestUndeclaredVariableInExpression(t *testing.T) {
	err := analyze(t, `PROGRAM P; VAR x : INTEGER; BEGIN x := y + 1 END.`)
	if err == nil {
		t.Fatalf("expected an error for undeclared 'y'")
	}
	if !strings.Contains(err.Error(), "y") {
		t.Fatalf("error = %v, want it to mention 'y'", err)
	}
}

func TestDuplicateVarDeclIsError(t *testing.T) {
	err := analyze(t, `PROGRAM P; VAR x : INTEGER; x : REAL; BEGIN END.`)
	if err == nil {
		t.Fatalf("expected a duplicate-identifier error for 'x'")
	}
}

func TestDuplicateFuncDeclIsError(t *testing.T) {
	src := `PROGRAM P;
FUNCTION F : INTEGER; BEGIN F := 1 END;
FUNCTION F : INTEGER; BEGIN F := 2 END;
BEGIN END.`
	if err := analyze(t, src); err == nil {
		t.Fatalf("expected a duplicate-identifier error for function 'F'")
	}
}

func TestUnknownTypeIsError(t *testing.T) {
	// The parser accepts only INTEGER and REAL as type names, so the program
	// is built directly to reach the analyzer's own unknown-type check.
	prog := &ast.Program{Name: "P", Block: &ast.Block{
		VarDecls: []*ast.VarDecl{{Name: "x", TypeName: "STRING"}},
		Compound: &ast.Compound{},
	}}
	_, err := NewAnalyzer().Analyze(prog)
	if err == nil {
		t.Fatalf("expected an unknown-type error for STRING")
	}
}

func TestCallArityMismatchIsError(t *testing.T) {
	src := `PROGRAM P;
FUNCTION Add(a, b : INTEGER) : INTEGER;
BEGIN Add := a + b END;
VAR x : INTEGER;
BEGIN x := Add(1) END.`
	err := analyze(t, src)
	if err == nil {
		t.Fatalf("expected an arity-mismatch error calling Add with one argument")
	}
}

func TestUndefinedFunctionCallIsError(t *testing.T) {
	err := analyze(t, `PROGRAM P; VAR x : INTEGER; BEGIN x := Ghost(1) END.`)
	if err == nil {
		t.Fatalf("expected an undefined-function error for 'Ghost'")
	}
}

func TestParameterShadowsGlobal(t *testing.T) {
	src := `PROGRAM P;
VAR x : INTEGER;
FUNCTION F(x : INTEGER) : INTEGER;
BEGIN F := x * 2 END;
BEGIN x := 5 END.`
	if err := analyze(t, src); err != nil {
		t.Fatalf("unexpected error shadowing global 'x' with a parameter: %v", err)
	}
}

func TestFunctionNameIsAssignableReturnSlot(t *testing.T) {
	src := `PROGRAM P;
FUNCTION Square(n : INTEGER) : INTEGER;
BEGIN Square := n * n END;
BEGIN END.`
	if err := analyze(t, src); err != nil {
		t.Fatalf("unexpected error assigning to the function's own name: %v", err)
	}
}

func TestForLoopVariableMustBeDeclared(t *testing.T) {
	err := analyze(t, `PROGRAM P; BEGIN FOR i := 1 TO 10 DO i := i END.`)
	if err == nil {
		t.Fatalf("expected an error for an undeclared FOR loop variable")
	}
}

func TestGlobalScopeHasBuiltinTypes(t *testing.T) {
	global := NewScopedSymbolTable("global", 1, nil)
	if _, ok := global.LookupType("INTEGER"); !ok {
		t.Fatalf("expected INTEGER to be predefined in the global scope")
	}
	if _, ok := global.LookupType("REAL"); !ok {
		t.Fatalf("expected REAL to be predefined in the global scope")
	}
}

func TestAnalyzedGlobalScopeIsLevelOne(t *testing.T) {
	src := `PROGRAM P;
FUNCTION F : INTEGER; BEGIN F := 1 END;
BEGIN END.`
	p := parser.New(lexer.New(src))
	prog, perr := p.ParseProgram()
	if perr != nil {
		t.Fatalf("unexpected parser error: %v", perr)
	}
	a := NewAnalyzer()
	global, serr := a.Analyze(prog)
	if serr != nil {
		t.Fatalf("unexpected semantic error: %v", serr)
	}
	if global.Level != 1 {
		t.Fatalf("global level = %d, want 1", global.Level)
	}
}

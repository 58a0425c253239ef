// Package semantic implements the single-pass static analysis walk of
// spec.md §4.3: it builds the scope tree, resolves every identifier, and
// rejects duplicate declarations, undeclared references, and arity
// mismatches before the evaluator ever runs.
package semantic

import (
	"github.com/cwbudde/pasc/internal/ast"
	"github.com/cwbudde/pasc/internal/errors"
)

// Analyzer walks a *ast.Program exactly once.
type Analyzer struct {
	current *ScopedSymbolTable
	errs    []*errors.Error
}

// NewAnalyzer creates an analyzer ready to analyze one program.
func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// Errors returns every SemanticError collected during Analyze, in the
// order they were found.
func (a *Analyzer) Errors() []*errors.Error { return a.errs }

// Analyze runs the full pass and returns the first SemanticError
// encountered, or nil if the program checks out. It also returns the
// constructed global scope, which the evaluator does not need but tests
// and tooling may want to inspect.
func (a *Analyzer) Analyze(prog *ast.Program) (*ScopedSymbolTable, *errors.Error) {
	global := NewScopedSymbolTable("global", 1, nil)
	a.current = global

	if err := a.analyzeBlock(prog.Block); err != nil {
		a.errs = append(a.errs, err)
		return global, err
	}
	return global, nil
}

func (a *Analyzer) analyzeBlock(block *ast.Block) *errors.Error {
	for _, vd := range block.VarDecls {
		if err := a.analyzeVarDecl(vd); err != nil {
			return err
		}
	}
	for _, fd := range block.FuncDecls {
		if err := a.analyzeFuncDecl(fd); err != nil {
			return err
		}
	}
	return a.analyzeCompound(block.Compound)
}

func (a *Analyzer) analyzeVarDecl(vd *ast.VarDecl) *errors.Error {
	typ, ok := a.current.LookupType(vd.TypeName)
	if !ok {
		return errors.Semantic(vd.Pos(), "Unknown type '%s'", vd.TypeName)
	}
	if _, exists := a.current.LookupLocal(vd.Name); exists {
		return errors.Semantic(vd.Pos(), "Duplicate identifier '%s' found", vd.Name)
	}
	a.current.Define(&VarSymbol{Name: vd.Name, TypeRef: typ})
	return nil
}

func (a *Analyzer) analyzeFuncDecl(fd *ast.FuncDecl) *errors.Error {
	if _, exists := a.current.LookupLocal(fd.Name); exists {
		return errors.Semantic(fd.Pos(), "Duplicate identifier '%s' found", fd.Name)
	}

	retType, ok := a.current.LookupType(fd.ReturnType)
	if !ok {
		return errors.Semantic(fd.Pos(), "Unknown type '%s'", fd.ReturnType)
	}

	funcSym := &FuncSymbol{Name: fd.Name, ReturnType: retType}
	a.current.Define(funcSym)

	enclosing := a.current
	scope := NewScopedSymbolTable(fd.Name, enclosing.Level+1, enclosing)
	a.current = scope

	// The function's own name is bound as a VarSymbol in its own scope —
	// the return slot (spec.md §3 invariants).
	scope.Define(&VarSymbol{Name: fd.Name, TypeRef: retType})

	for _, p := range fd.Params {
		ptype, ok := scope.LookupType(p.TypeName)
		if !ok {
			a.current = enclosing
			return errors.Semantic(p.Pos(), "Unknown type '%s'", p.TypeName)
		}
		if _, exists := scope.LookupLocal(p.Name); exists {
			a.current = enclosing
			return errors.Semantic(p.Pos(), "Duplicate identifier '%s' found", p.Name)
		}
		ps := &VarSymbol{Name: p.Name, TypeRef: ptype}
		scope.Define(ps)
		funcSym.Params = append(funcSym.Params, ps)
	}

	if err := a.analyzeBlock(fd.Body); err != nil {
		a.current = enclosing
		return err
	}

	a.current = enclosing
	return nil
}

func (a *Analyzer) analyzeCompound(c *ast.Compound) *errors.Error {
	for _, stmt := range c.Statements {
		if err := a.analyzeStatement(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (a *Analyzer) analyzeStatement(stmt ast.Statement) *errors.Error {
	switch s := stmt.(type) {
	case *ast.NoOp:
		return nil
	case *ast.Compound:
		return a.analyzeCompound(s)
	case *ast.Assign:
		if _, ok := a.current.LookupVar(s.Target); !ok {
			return errors.Semantic(s.Pos(), "Cannot assign to undeclared variable '%s'", s.Target)
		}
		return a.analyzeExpr(s.Expr)
	case *ast.If:
		if err := a.analyzeExpr(s.Cond); err != nil {
			return err
		}
		if err := a.analyzeStatement(s.Then); err != nil {
			return err
		}
		if s.Else != nil {
			return a.analyzeStatement(s.Else)
		}
		return nil
	case *ast.While:
		if err := a.analyzeExpr(s.Cond); err != nil {
			return err
		}
		return a.analyzeStatement(s.Body)
	case *ast.For:
		if _, ok := a.current.LookupVar(s.VarName); !ok {
			return errors.Semantic(s.Pos(), "Undeclared variable '%s'", s.VarName)
		}
		if err := a.analyzeExpr(s.Start); err != nil {
			return err
		}
		if err := a.analyzeExpr(s.End); err != nil {
			return err
		}
		return a.analyzeStatement(s.Body)
	case *ast.Print:
		for _, e := range s.Args {
			if err := a.analyzeExpr(e); err != nil {
				return err
			}
		}
		return nil
	}
	return nil
}

func (a *Analyzer) analyzeExpr(expr ast.Expression) *errors.Error {
	switch e := expr.(type) {
	case *ast.Num:
		return nil
	case *ast.Var:
		if _, ok := a.current.LookupVar(e.Name); !ok {
			return errors.Semantic(e.Pos(), "Undeclared variable '%s'", e.Name)
		}
		return nil
	case *ast.UnaryArith:
		return a.analyzeExpr(e.Expr)
	case *ast.BinArith:
		if err := a.analyzeExpr(e.Left); err != nil {
			return err
		}
		return a.analyzeExpr(e.Right)
	case *ast.Compare:
		if err := a.analyzeExpr(e.Left); err != nil {
			return err
		}
		return a.analyzeExpr(e.Right)
	case *ast.BoolBin:
		if err := a.analyzeExpr(e.Left); err != nil {
			return err
		}
		return a.analyzeExpr(e.Right)
	case *ast.BoolNot:
		return a.analyzeExpr(e.Expr)
	case *ast.Call:
		fn, ok := a.current.LookupFunc(e.Name)
		if !ok {
			return errors.Semantic(e.Pos(), "Undefined function '%s'", e.Name)
		}
		if len(e.Args) != len(fn.Params) {
			return errors.Semantic(e.Pos(), "%s expects %d parameter(s), got %d", e.Name, len(fn.Params), len(e.Args))
		}
		for _, arg := range e.Args {
			if err := a.analyzeExpr(arg); err != nil {
				return err
			}
		}
		return nil
	}
	return nil
}

// Package interp implements the tree-walking evaluator of spec.md §4.4: a
// second pass over the same AST the semantic analyzer checked, driven by
// an explicit call stack of activation records plus a global environment.
package interp

import (
	"fmt"
	"io"
	"sort"

	"github.com/cwbudde/pasc/internal/ast"
	"github.com/cwbudde/pasc/internal/errors"
	"github.com/cwbudde/pasc/internal/token"
)

// Interpreter owns one run's entire mutable state: its call stack, its
// global environment, and the registry of declared functions. Two
// Interpreter instances never share state — the teacher's package-level
// global table was a defect spec.md §9 calls out explicitly to correct,
// and this type exists so that fix has somewhere to live.
type Interpreter struct {
	out         io.Writer
	callStack   *CallStack
	globalAR    *ActivationRecord
	GlobalScope map[string]Value
	functions   map[string]*ast.FuncDecl
}

// New creates an Interpreter that writes PRINT/WRITELN output to out.
func New(out io.Writer) *Interpreter {
	return &Interpreter{
		out:         out,
		callStack:   NewCallStack(),
		globalAR:    NewActivationRecord("global", 0, nil),
		GlobalScope: make(map[string]Value),
		functions:   make(map[string]*ast.FuncDecl),
	}
}

// current returns the active activation record: the top of the call
// stack during a function call, or the global AR at top level.
func (in *Interpreter) current() *ActivationRecord {
	if top := in.callStack.Top(); top != nil {
		return top
	}
	return in.globalAR
}

// Interpret runs prog to completion and returns the first RuntimeError
// encountered, or nil on success. The receiver's GlobalScope reflects
// everything assigned before the error, exactly as spec.md §7 allows.
func (in *Interpreter) Interpret(prog *ast.Program) *errors.Error {
	for _, fd := range prog.Block.FuncDecls {
		in.functions[fd.Name] = fd
	}
	return in.execCompound(prog.Block.Compound)
}

func (in *Interpreter) execCompound(c *ast.Compound) *errors.Error {
	for _, stmt := range c.Statements {
		if err := in.execStatement(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (in *Interpreter) execStatement(stmt ast.Statement) *errors.Error {
	switch s := stmt.(type) {
	case *ast.NoOp:
		return nil
	case *ast.Compound:
		return in.execCompound(s)
	case *ast.Assign:
		val, err := in.eval(s.Expr)
		if err != nil {
			return err
		}
		in.assign(s.Target, val)
		return nil
	case *ast.If:
		cond, err := in.eval(s.Cond)
		if err != nil {
			return err
		}
		if cond.Bool() {
			return in.execStatement(s.Then)
		}
		if s.Else != nil {
			return in.execStatement(s.Else)
		}
		return nil
	case *ast.While:
		for {
			cond, err := in.eval(s.Cond)
			if err != nil {
				return err
			}
			if !cond.Bool() {
				return nil
			}
			if err := in.execStatement(s.Body); err != nil {
				return err
			}
		}
	case *ast.For:
		return in.execFor(s)
	case *ast.Print:
		return in.execPrint(s)
	}
	return nil
}

// assign implements spec.md §4.4's dual-lookup write rule.
func (in *Interpreter) assign(name string, val Value) {
	ar := in.current()

	if ar == in.globalAR {
		ar.Set(name, val)
		in.GlobalScope[name] = val
		return
	}

	if ar.Has(name) || name == ar.Name {
		ar.Set(name, val)
		return
	}

	if _, ok := in.GlobalScope[name]; ok {
		in.GlobalScope[name] = val
		return
	}

	ar.Set(name, val)
}

// execFor implements spec.md §4.4's FOR semantics: bounds evaluated once,
// post-loop value left one step past the range, and mirrored into
// GlobalScope on each iteration when running at the global level.
func (in *Interpreter) execFor(s *ast.For) *errors.Error {
	startVal, err := in.eval(s.Start)
	if err != nil {
		return err
	}
	endVal, err := in.eval(s.End)
	if err != nil {
		return err
	}
	if !startVal.IsInt() || !endVal.IsInt() {
		return errors.Runtime(s.Pos(), "FOR bounds must be integer")
	}

	c := startVal.Int()
	end := endVal.Int()

	step := int64(1)
	if s.Direction == ast.ForDownto {
		step = -1
	}

	inRange := func(c int64) bool {
		if s.Direction == ast.ForDownto {
			return c >= end
		}
		return c <= end
	}

	for inRange(c) {
		in.assign(s.VarName, IntValue(c))
		if err := in.execStatement(s.Body); err != nil {
			return err
		}
		c += step
	}
	// Leave VarName one step past the range (spec.md §4.4): on an empty
	// range it stays at start; otherwise it lands at end+1 (TO) or
	// end-1 (DOWNTO).
	in.assign(s.VarName, IntValue(c))

	return nil
}

func (in *Interpreter) execPrint(s *ast.Print) *errors.Error {
	parts := make([]string, len(s.Args))
	for i, arg := range s.Args {
		val, err := in.eval(arg)
		if err != nil {
			return err
		}
		parts[i] = val.String()
	}

	for i, p := range parts {
		if i > 0 {
			fmt.Fprint(in.out, " ")
		}
		fmt.Fprint(in.out, p)
	}
	if s.Newline {
		fmt.Fprintln(in.out)
	}
	return nil
}

// eval evaluates expr and returns its Value, or the first RuntimeError.
func (in *Interpreter) eval(expr ast.Expression) (Value, *errors.Error) {
	switch e := expr.(type) {
	case *ast.Num:
		if e.IsReal {
			return RealValue(e.RealVal), nil
		}
		return IntValue(e.IntVal), nil
	case *ast.Var:
		return in.lookup(e.Name, e.Pos())
	case *ast.UnaryArith:
		return in.evalUnary(e)
	case *ast.BinArith:
		return in.evalBinArith(e)
	case *ast.Compare:
		return in.evalCompare(e)
	case *ast.BoolBin:
		return in.evalBoolBin(e)
	case *ast.BoolNot:
		operand, err := in.eval(e.Expr)
		if err != nil {
			return Value{}, err
		}
		return BoolValue(!operand.Bool()), nil
	case *ast.Call:
		return in.evalCall(e)
	}
	return Value{}, errors.RuntimeUnpositioned("cannot evaluate expression %T", expr)
}

// lookup implements spec.md §4.4's dual-lookup read rule: current AR
// first, then GlobalScope, else "used before assignment".
func (in *Interpreter) lookup(name string, pos token.Position) (Value, *errors.Error) {
	ar := in.current()
	if v, ok := ar.Get(name); ok {
		return v, nil
	}
	if v, ok := in.GlobalScope[name]; ok {
		return v, nil
	}
	return Value{}, errors.Runtime(pos, "Variable '%s' used before assignment", name)
}

func (in *Interpreter) evalUnary(e *ast.UnaryArith) (Value, *errors.Error) {
	operand, err := in.eval(e.Expr)
	if err != nil {
		return Value{}, err
	}
	negate := e.Op == token.MINUS
	switch {
	case operand.IsReal():
		if negate {
			return RealValue(-operand.Real()), nil
		}
		return operand, nil
	default:
		if negate {
			return IntValue(-operand.Int()), nil
		}
		return operand, nil
	}
}

func (in *Interpreter) evalBinArith(e *ast.BinArith) (Value, *errors.Error) {
	left, err := in.eval(e.Left)
	if err != nil {
		return Value{}, err
	}
	right, err := in.eval(e.Right)
	if err != nil {
		return Value{}, err
	}

	switch e.Op {
	case token.PLUS:
		return arith(left, right, func(a, b int64) int64 { return a + b }, func(a, b float64) float64 { return a + b }), nil
	case token.MINUS:
		return arith(left, right, func(a, b int64) int64 { return a - b }, func(a, b float64) float64 { return a - b }), nil
	case token.MUL:
		return arith(left, right, func(a, b int64) int64 { return a * b }, func(a, b float64) float64 { return a * b }), nil
	case token.INTDIV:
		if right.IsInt() && right.Int() == 0 || right.IsReal() && right.Real() == 0 {
			return Value{}, errors.Runtime(e.Pos(), "Division by zero.")
		}
		return IntValue(floorDiv(truncToInt(left), truncToInt(right))), nil
	case token.FLOATDIV:
		if right.AsFloat() == 0 {
			return Value{}, errors.Runtime(e.Pos(), "Division by zero.")
		}
		return RealValue(left.AsFloat() / right.AsFloat()), nil
	}
	return Value{}, errors.RuntimeUnpositioned("unknown arithmetic operator %s", e.Op)
}

func truncToInt(v Value) int64 {
	if v.IsInt() {
		return v.Int()
	}
	return int64(v.Real())
}

// floorDiv implements DIV's "truncation toward negative infinity" rule
// (spec.md §4.4), which differs from Go's truncate-toward-zero `/`.
func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// arith applies intOp when both operands are Int, else promotes to Real
// and applies realOp (spec.md §4.4: "if either operand is Real, result is
// Real; otherwise Int").
func arith(left, right Value, intOp func(a, b int64) int64, realOp func(a, b float64) float64) Value {
	if left.IsInt() && right.IsInt() {
		return IntValue(intOp(left.Int(), right.Int()))
	}
	return RealValue(realOp(left.AsFloat(), right.AsFloat()))
}

func (in *Interpreter) evalCompare(e *ast.Compare) (Value, *errors.Error) {
	left, err := in.eval(e.Left)
	if err != nil {
		return Value{}, err
	}
	right, err := in.eval(e.Right)
	if err != nil {
		return Value{}, err
	}

	l, r := left.AsFloat(), right.AsFloat()
	var result bool
	switch e.Op {
	case token.EQ:
		result = l == r
	case token.NEQ:
		result = l != r
	case token.LT:
		result = l < r
	case token.GT:
		result = l > r
	case token.LE:
		result = l <= r
	case token.GE:
		result = l >= r
	}
	return BoolValue(result), nil
}

// evalBoolBin evaluates both operands unconditionally — this dialect is
// strict, not short-circuit (spec.md §4.4 and §9 Open Questions).
func (in *Interpreter) evalBoolBin(e *ast.BoolBin) (Value, *errors.Error) {
	left, err := in.eval(e.Left)
	if err != nil {
		return Value{}, err
	}
	right, err := in.eval(e.Right)
	if err != nil {
		return Value{}, err
	}
	if e.Op == token.AND {
		return BoolValue(left.Bool() && right.Bool()), nil
	}
	return BoolValue(left.Bool() || right.Bool()), nil
}

// evalCall implements the eight-step function-call protocol of spec.md
// §4.4: lookup, overflow guard, left-to-right argument evaluation in the
// caller's environment, frame creation, parameter binding, execution,
// return-slot read, and unwind.
func (in *Interpreter) evalCall(e *ast.Call) (Value, *errors.Error) {
	decl, ok := in.functions[e.Name]
	if !ok {
		return Value{}, errors.Runtime(e.Pos(), "Undefined Function")
	}

	if in.callStack.WillOverflow() {
		return Value{}, errors.Runtime(e.Pos(), "Stack overflow: maximum recursion depth exceeded in '%s'", e.Name)
	}

	args := make([]Value, len(e.Args))
	for i, a := range e.Args {
		v, err := in.eval(a)
		if err != nil {
			return Value{}, err
		}
		args[i] = v
	}

	caller := in.current()
	ar := NewActivationRecord(e.Name, caller.Level+1, caller)
	for i, p := range decl.Params {
		ar.Set(p.Name, args[i])
	}

	in.callStack.Push(ar)
	defer in.callStack.Pop()

	if err := in.execCompound(decl.Body.Compound); err != nil {
		return Value{}, err
	}

	ret, ok := ar.Get(e.Name)
	if !ok {
		return UnitValue, nil
	}
	return ret, nil
}

// Dump returns the global environment as sorted "name = value" lines, for
// the CLI's post-run display (spec.md §6).
func (in *Interpreter) Dump() []string {
	names := make([]string, 0, len(in.GlobalScope))
	for n := range in.GlobalScope {
		names = append(names, n)
	}
	sort.Strings(names)

	lines := make([]string, len(names))
	for i, n := range names {
		lines[i] = fmt.Sprintf("%s = %s", n, in.GlobalScope[n].String())
	}
	return lines
}

// Clear resets the interpreter to a fresh global environment, with no
// declared functions and an empty call stack. (The REPL's `clear` command
// replaces its Interpreter with a new one instead of calling Clear.)
func (in *Interpreter) Clear() {
	in.globalAR = NewActivationRecord("global", 0, nil)
	in.GlobalScope = make(map[string]Value)
	in.functions = make(map[string]*ast.FuncDecl)
	in.callStack = NewCallStack()
}

package semantic

import "fmt"

// Symbol is the sum type of things a ScopedSymbolTable can hold: built-in
// types, variables, and functions (spec.md §3).
type Symbol interface {
	symbolName() string
}

// BuiltinType is one of INTEGER or REAL.
type BuiltinType struct {
	Name string
}

func (b *BuiltinType) symbolName() string { return b.Name }
func (b *BuiltinType) String() string     { return b.Name }

// VarSymbol is a declared variable (or a function's return slot).
type VarSymbol struct {
	Name    string
	TypeRef *BuiltinType
}

func (v *VarSymbol) symbolName() string { return v.Name }
func (v *VarSymbol) String() string     { return fmt.Sprintf("<%s: %s>", v.Name, v.TypeRef) }

// FuncSymbol is a declared function: its parameter list and return type.
type FuncSymbol struct {
	Name       string
	Params     []*VarSymbol
	ReturnType *BuiltinType
}

func (f *FuncSymbol) symbolName() string { return f.Name }
func (f *FuncSymbol) String() string {
	return fmt.Sprintf("<%s(%d params): %s>", f.Name, len(f.Params), f.ReturnType)
}

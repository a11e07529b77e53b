// Package semantic builds the lightweight semantic model type-aware rules
// consume: lexical scopes, declarations and resolved references for one
// SourceFile. A Program is immutable once Analyze returns and may be shared
// read-only by every rule of one lint pass.
package semantic

import (
	"github.com/yaklabco/gotslint/pkg/tsast"
)

// Program is the semantic model of one parsed file.
type Program struct {
	File   *tsast.SourceFile
	Module *Scope

	symbols    []*Symbol
	byIdent    map[*tsast.Node]*Symbol
	scopeOf    map[*tsast.Node]*Scope
	unresolved []*tsast.Node
}

// Analyze builds the program for file.
func Analyze(file *tsast.SourceFile) *Program {
	p := &Program{
		File:    file,
		byIdent: make(map[*tsast.Node]*Symbol),
		scopeOf: make(map[*tsast.Node]*Scope),
	}
	p.Module = newScope(ScopeModule, file.Root, nil)
	p.scopeOf[file.Root] = p.Module

	b := &binder{program: p, skip: make(map[*tsast.Node]bool)}
	b.declareAll(file.Root, p.Module)
	b.resolveAll(file.Root, p.Module)
	return p
}

// Generation returns the parse generation the program was built from.
func (p *Program) Generation() uint64 {
	return p.File.Generation
}

// Symbols returns all symbols in declaration order.
func (p *Program) Symbols() []*Symbol {
	return p.symbols
}

// SymbolOf returns the symbol an identifier declares or references.
func (p *Program) SymbolOf(ident *tsast.Node) *Symbol {
	return p.byIdent[ident]
}

// ScopeOf returns the scope opened by node, if any.
func (p *Program) ScopeOf(node *tsast.Node) *Scope {
	return p.scopeOf[node]
}

// Unresolved returns identifiers that did not resolve to a declaration
// in this file (globals and ambient names).
func (p *Program) Unresolved() []*tsast.Node {
	return p.unresolved
}

// Unused returns non-exported symbols that are never read.
// Parameters and names starting with "_" are ignored.
func (p *Program) Unused() []*Symbol {
	var out []*Symbol
	for _, sym := range p.symbols {
		if sym.Exported || sym.Kind == SymbolParameter || sym.Kind == SymbolCatchParameter {
			continue
		}
		if len(sym.Name) > 0 && sym.Name[0] == '_' {
			continue
		}
		if !sym.IsRead() {
			out = append(out, sym)
		}
	}
	return out
}

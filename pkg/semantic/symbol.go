package semantic

import "github.com/yaklabco/gotslint/pkg/tsast"

// SymbolKind classifies a declaration.
type SymbolKind int

// Symbol kinds.
const (
	SymbolVariable SymbolKind = iota + 1
	SymbolFunction
	SymbolClass
	SymbolParameter
	SymbolImport
	SymbolType
	SymbolEnum
	SymbolCatchParameter
)

func (k SymbolKind) String() string {
	switch k {
	case SymbolVariable:
		return "variable"
	case SymbolFunction:
		return "function"
	case SymbolClass:
		return "class"
	case SymbolParameter:
		return "parameter"
	case SymbolImport:
		return "import"
	case SymbolType:
		return "type"
	case SymbolEnum:
		return "enum"
	case SymbolCatchParameter:
		return "catch parameter"
	default:
		return "unknown"
	}
}

// Symbol is one declared name.
type Symbol struct {
	Name string
	Kind SymbolKind

	// Keyword is "var", "let" or "const" for variables, empty otherwise.
	Keyword string

	// Ident is the declaring identifier.
	Ident *tsast.Node

	// Declaration is the enclosing declaration statement
	// (lexical_declaration, import_statement, function_declaration ...).
	Declaration *tsast.Node

	// Declarator is the variable_declarator for variables, nil otherwise.
	Declarator *tsast.Node

	// Exported is set when the declaration is part of an export statement.
	Exported bool

	Scope      *Scope
	References []Reference
}

// Reference is one use of a symbol.
type Reference struct {
	Node  *tsast.Node
	Read  bool
	Write bool
}

// IsRead reports whether any reference reads the symbol.
func (s *Symbol) IsRead() bool {
	for _, r := range s.References {
		if r.Read {
			return true
		}
	}
	return false
}

// IsReassigned reports whether any reference writes the symbol.
func (s *Symbol) IsReassigned() bool {
	for _, r := range s.References {
		if r.Write {
			return true
		}
	}
	return false
}

// ScopeKind classifies a scope.
type ScopeKind int

// Scope kinds.
const (
	ScopeModule ScopeKind = iota + 1
	ScopeFunction
	ScopeBlock
)

// Scope is a lexical scope.
type Scope struct {
	Kind     ScopeKind
	Node     *tsast.Node
	Parent   *Scope
	Children []*Scope

	symbols map[string]*Symbol
	order   []*Symbol
}

func newScope(kind ScopeKind, node *tsast.Node, parent *Scope) *Scope {
	s := &Scope{Kind: kind, Node: node, Parent: parent, symbols: make(map[string]*Symbol)}
	if parent != nil {
		parent.Children = append(parent.Children, s)
	}
	return s
}

// Symbols returns the scope's symbols in declaration order.
func (s *Scope) Symbols() []*Symbol {
	return s.order
}

// Lookup resolves name in this scope or its ancestors.
func (s *Scope) Lookup(name string) *Symbol {
	for sc := s; sc != nil; sc = sc.Parent {
		if sym, ok := sc.symbols[name]; ok {
			return sym
		}
	}
	return nil
}

// functionScope returns the nearest function or module scope.
func (s *Scope) functionScope() *Scope {
	sc := s
	for sc.Kind == ScopeBlock && sc.Parent != nil {
		sc = sc.Parent
	}
	return sc
}

func (s *Scope) declare(sym *Symbol) *Symbol {
	if existing, ok := s.symbols[sym.Name]; ok {
		// Redeclaration (var twice, overloads, declaration merging): keep the first.
		return existing
	}
	sym.Scope = s
	s.symbols[sym.Name] = sym
	s.order = append(s.order, sym)
	return sym
}

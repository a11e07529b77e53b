package semantic

import "github.com/yaklabco/gotslint/pkg/tsast"

// binder fills a Program in two passes: declarations first so that hoisted
// names resolve, then references.
type binder struct {
	program *Program

	// skip holds identifiers that are not references (declaring names,
	// import source names, labels).
	skip map[*tsast.Node]bool
}

func (b *binder) open(kind ScopeKind, node *tsast.Node, parent *Scope) *Scope {
	s := newScope(kind, node, parent)
	b.program.scopeOf[node] = s
	return s
}

func (b *binder) declareAll(n *tsast.Node, sc *Scope) {
	for child := n.FirstChild; child != nil; child = child.Next {
		b.declareNode(child, sc)
	}
}

func (b *binder) declareNode(n *tsast.Node, sc *Scope) {
	if n.Kind.IsFunctionLike() {
		b.declareFunction(n, sc)
		return
	}

	inner := sc
	switch n.Kind {
	case tsast.KindStatementBlock, tsast.KindForStatement, tsast.KindForInStatement,
		tsast.KindCatchClause, tsast.KindClassBody, "switch_body":
		inner = b.open(ScopeBlock, n, sc)
	}

	switch n.Kind {
	case tsast.KindVariableDeclaration:
		for _, decl := range declarators(n) {
			b.bindPattern(decl.ChildByField("name"), sc.functionScope(), SymbolVariable, "var", n, decl)
		}
	case tsast.KindLexicalDeclaration:
		keyword := ""
		if n.FirstChild != nil {
			keyword = string(n.FirstChild.Kind)
		}
		for _, decl := range declarators(n) {
			b.bindPattern(decl.ChildByField("name"), sc, SymbolVariable, keyword, n, decl)
		}
	case tsast.KindClassDeclaration, tsast.KindAbstractClass:
		b.bindName(n, sc, SymbolClass)
	case tsast.KindInterface, tsast.KindTypeAlias:
		b.bindName(n, sc, SymbolType)
	case tsast.KindEnum:
		b.bindName(n, sc, SymbolEnum)
	case tsast.KindImportStatement:
		b.declareImports(n, sc)
	case tsast.KindCatchClause:
		b.bindPattern(n.ChildByField("parameter"), inner, SymbolCatchParameter, "", n, nil)
	case tsast.KindForInStatement:
		if kind := n.ChildByField("kind"); kind != nil {
			target := inner
			if kind.Kind == "var" {
				target = sc.functionScope()
			}
			b.bindPattern(n.ChildByField("left"), target, SymbolVariable, string(kind.Kind), n, nil)
		}
	case tsast.KindExportStatement:
		if n.ChildByField("source") != nil {
			// Re-exports name bindings of another module.
			tsast.Inspect(n, func(c *tsast.Node) bool {
				if c.Kind == tsast.KindIdentifier {
					b.skip[c] = true
				}
				return true
			})
		}
	case tsast.KindLabeledStatement, tsast.KindBreakStatement, tsast.KindContinueStatement:
		if label := n.ChildByField("label"); label != nil {
			b.skip[label] = true
		}
	case "export_specifier":
		if alias := n.ChildByField("alias"); alias != nil {
			b.skip[alias] = true
		}
	}

	b.declareAll(n, inner)
}

func (b *binder) declareFunction(n *tsast.Node, sc *Scope) {
	name := n.ChildByField("name")
	isDeclaration := n.Kind == tsast.KindFunctionDeclaration || n.Kind == tsast.KindGeneratorDeclaration

	if name != nil && isDeclaration {
		b.bind(name, sc, SymbolFunction, "", n, nil)
	}

	inner := b.open(ScopeFunction, n, sc)

	if name != nil && !isDeclaration && name.Kind == tsast.KindIdentifier {
		// Named function expressions see their own name.
		b.bind(name, inner, SymbolFunction, "", n, nil)
	}

	if params := n.ChildByField("parameters"); params != nil {
		for _, param := range params.NamedChildren() {
			target := param
			if pattern := param.ChildByField("pattern"); pattern != nil {
				target = pattern
			}
			b.bindPattern(target, inner, SymbolParameter, "", n, nil)
		}
	}
	if param := n.ChildByField("parameter"); param != nil {
		b.bindPattern(param, inner, SymbolParameter, "", n, nil)
	}

	body := n.ChildByField("body")
	for child := n.FirstChild; child != nil; child = child.Next {
		if child == body && body.Kind == tsast.KindStatementBlock {
			// The body block shares the function scope.
			b.program.scopeOf[body] = inner
			b.declareAll(body, inner)
			continue
		}
		b.declareNode(child, inner)
	}
}

func (b *binder) declareImports(n *tsast.Node, sc *Scope) {
	tsast.Inspect(n, func(c *tsast.Node) bool {
		switch c.Kind {
		case tsast.KindImportSpecifier:
			name := c.ChildByField("name")
			if alias := c.ChildByField("alias"); alias != nil {
				if name != nil {
					b.skip[name] = true
				}
				b.bind(alias, sc, SymbolImport, "", n, nil)
			} else if name != nil {
				b.bind(name, sc, SymbolImport, "", n, nil)
			}
			return false
		case tsast.KindImportClause, tsast.KindNamespaceImport, "import_require_clause":
			for child := c.FirstChild; child != nil; child = child.Next {
				if child.Kind == tsast.KindIdentifier {
					b.bind(child, sc, SymbolImport, "", n, nil)
				}
			}
			return true
		case tsast.KindImportStatement, tsast.KindNamedImports:
			return true
		default:
			return false
		}
	})
}

func (b *binder) bindName(n *tsast.Node, sc *Scope, kind SymbolKind) {
	if name := n.ChildByField("name"); name != nil {
		b.bind(name, sc, kind, "", n, nil)
	}
}

func (b *binder) bindPattern(p *tsast.Node, sc *Scope, kind SymbolKind, keyword string, decl, declarator *tsast.Node) {
	if p == nil {
		return
	}
	switch p.Kind {
	case tsast.KindIdentifier, tsast.KindShorthandPropertyPatten:
		b.bind(p, sc, kind, keyword, decl, declarator)
	case tsast.KindObjectPattern, tsast.KindArrayPattern:
		for _, child := range p.NamedChildren() {
			b.bindPattern(child, sc, kind, keyword, decl, declarator)
		}
	case tsast.KindPairPattern:
		b.bindPattern(p.ChildByField("value"), sc, kind, keyword, decl, declarator)
	case tsast.KindAssignmentPattern, tsast.KindObjectAssignmentPattern:
		b.bindPattern(p.ChildByField("left"), sc, kind, keyword, decl, declarator)
	case tsast.KindRestPattern:
		for _, child := range p.NamedChildren() {
			b.bindPattern(child, sc, kind, keyword, decl, declarator)
		}
	case tsast.KindRequiredParameter, tsast.KindOptionalParameter:
		b.bindPattern(p.ChildByField("pattern"), sc, kind, keyword, decl, declarator)
	}
}

func (b *binder) bind(ident *tsast.Node, sc *Scope, kind SymbolKind, keyword string, decl, declarator *tsast.Node) {
	b.skip[ident] = true

	sym := sc.declare(&Symbol{
		Name:        ident.Text(),
		Kind:        kind,
		Keyword:     keyword,
		Ident:       ident,
		Declaration: decl,
		Declarator:  declarator,
		Exported:    decl != nil && decl.Parent != nil && decl.Parent.Kind == tsast.KindExportStatement,
	})
	if sym.Ident == ident {
		b.program.symbols = append(b.program.symbols, sym)
	}
	b.program.byIdent[ident] = sym
}

func (b *binder) resolveAll(n *tsast.Node, sc *Scope) {
	for child := n.FirstChild; child != nil; child = child.Next {
		inner := sc
		if s, ok := b.program.scopeOf[child]; ok {
			inner = s
		}
		b.resolveNode(child, inner)
		b.resolveAll(child, inner)
	}
}

func (b *binder) resolveNode(n *tsast.Node, sc *Scope) {
	switch n.Kind {
	case tsast.KindIdentifier, tsast.KindShorthandProperty, tsast.KindTypeIdentifier,
		tsast.KindShorthandPropertyPatten:
	default:
		return
	}
	if b.skip[n] {
		return
	}

	sym := sc.Lookup(n.Text())
	if sym == nil {
		b.program.unresolved = append(b.program.unresolved, n)
		return
	}

	ref := Reference{Node: n, Read: true}
	switch target := assignmentTarget(n); {
	case target == nil:
	case target.Kind == tsast.KindAssignmentExpression:
		ref.Read = false
		ref.Write = true
	default:
		ref.Write = true
	}

	sym.References = append(sym.References, ref)
	b.program.byIdent[n] = sym
}

// assignmentTarget returns the assignment, update or for-in node that
// writes n, or nil when n is only read.
func assignmentTarget(n *tsast.Node) *tsast.Node {
	child := n
	for p := n.Parent; p != nil; child, p = p, p.Parent {
		switch p.Kind {
		case tsast.KindAssignmentExpression, tsast.KindAugmentedAssignment:
			if child.Field == "left" {
				return p
			}
			return nil
		case tsast.KindUpdateExpression:
			return p
		case tsast.KindForInStatement:
			if child.Field == "left" && p.ChildByField("kind") == nil {
				return p
			}
			return nil
		case tsast.KindArrayPattern, tsast.KindObjectPattern, tsast.KindRestPattern,
			tsast.KindShorthandPropertyPatten, "parenthesized_expression":
			continue
		case tsast.KindPairPattern:
			if child.Field != "value" {
				return nil
			}
		case tsast.KindAssignmentPattern, tsast.KindObjectAssignmentPattern:
			if child.Field != "left" {
				return nil
			}
		default:
			return nil
		}
	}
	return nil
}

func declarators(n *tsast.Node) []*tsast.Node {
	var out []*tsast.Node
	for child := n.FirstChild; child != nil; child = child.Next {
		if child.Kind == tsast.KindVariableDeclarator {
			out = append(out, child)
		}
	}
	return out
}

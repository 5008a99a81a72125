package astbuild

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/PandaAwAke/PropertyGraph/pe"
)

// Builder walks a tree-sitter Java AST and materializes it as a PE tree. It
// carries a small stack so that the bounded-pop discipline below can be
// implemented literally rather than merely emulated by return values: a
// construct the builder does not recognize pushes nothing, never corrupting
// its caller's view of the stack.
type Builder struct {
	counter *pe.IDCounter
	src     []byte
	stack   []pe.Element

	currentScope *pe.Scope
}

// NewBuilder allocates a Builder reading node text from src and minting PE
// ids from counter.
func NewBuilder(counter *pe.IDCounter, src []byte) *Builder {
	return &Builder{counter: counter, src: src}
}

func (b *Builder) push(e pe.Element) {
	if e == nil {
		return
	}
	switch v := e.(type) {
	case *pe.Statement:
		v.OwnerScope = b.currentScope
	case *pe.Expression:
		v.OwnerScope = b.currentScope
	}
	b.stack = append(b.stack, e)
}

// withScope runs fn with a fresh child Scope (owned by owner, parented at
// the current scope) installed as the current scope, restoring the prior
// scope on return. Used at every block-introducing construct (blocks,
// for/foreach headers, catch clauses, switch bodies) so that locals
// declared in one block never leak into an unrelated sibling block.
func (b *Builder) withScope(owner pe.BlockInfo, fn func()) {
	scope := pe.NewScope(owner, b.currentScope)
	prev := b.currentScope
	b.currentScope = scope
	defer func() { b.currentScope = prev }()
	fn()
}

// child visits n and returns the single PE it produced, or nil if n was
// unsupported, produced nothing, or (a grammar-shape violation this core
// does not expect) produced more than one element. It never corrupts the
// caller's own stack contents below the recorded height.
func (b *Builder) child(n *sitter.Node, visit func(*sitter.Node)) pe.Element {
	if n == nil {
		return nil
	}
	h := len(b.stack)
	visit(n)
	popped := b.stack[h:]
	b.stack = b.stack[:h]
	if len(popped) != 1 {
		return nil
	}
	return popped[0]
}

func (b *Builder) childExpr(n *sitter.Node) *pe.Expression {
	e := b.child(n, b.visitExpression)
	if e == nil {
		return nil
	}
	expr, ok := e.(*pe.Expression)
	if !ok {
		return nil
	}
	return expr
}

// childElement visits n as an expression but returns the raw Element,
// preserving a *pe.Method result for a lambda expression appearing where an
// expression is expected (argument, initializer, assignment rhs).
func (b *Builder) childElement(n *sitter.Node) pe.Element {
	return b.child(n, b.visitExpression)
}

func (b *Builder) childStmt(n *sitter.Node) *pe.Statement {
	e := b.child(n, b.visitStatement)
	if e == nil {
		return nil
	}
	stmt, ok := e.(*pe.Statement)
	if !ok {
		return nil
	}
	return stmt
}

func (b *Builder) childType(n *sitter.Node) *pe.Type {
	if n == nil {
		return nil
	}
	return b.buildType(n)
}

func (b *Builder) text(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	return n.Content(b.src)
}

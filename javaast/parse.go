// Package javaast wraps the tree-sitter Java grammar: parsing a compilation
// unit's source bytes into a tree-sitter tree, and the small set of node
// helpers the PE builder needs (line lookup, per-branch end positions,
// best-effort qualifier-type resolution) without leaking tree-sitter's API
// any further than necessary.
package javaast

import (
	"context"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/java"

	"github.com/pkg/errors"
)

// Unit is a parsed Java compilation unit: the tree-sitter tree plus the
// source bytes it was parsed from (node text is a byte-range view into it).
type Unit struct {
	Source []byte
	Tree   *sitter.Tree
}

// Root returns the compilation unit's root AST node.
func (u *Unit) Root() *sitter.Node {
	if u.Tree == nil {
		return nil
	}
	return u.Tree.RootNode()
}

// Close releases the tree-sitter tree.
func (u *Unit) Close() {
	if u.Tree != nil {
		u.Tree.Close()
	}
}

// Parse parses src as a single Java compilation unit.
func Parse(ctx context.Context, src []byte) (*Unit, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(java.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, errors.Wrap(err, "parse java source")
	}
	if tree.RootNode() == nil {
		return nil, errors.New("parse java source: empty tree")
	}
	return &Unit{Source: src, Tree: tree}, nil
}

// StartLine returns n's 1-based start line.
func StartLine(n *sitter.Node) int {
	if n == nil {
		return 0
	}
	return int(n.StartPoint().Row) + 1
}

// EndLine returns n's 1-based end line.
func EndLine(n *sitter.Node) int {
	if n == nil {
		return 0
	}
	return int(n.EndPoint().Row) + 1
}

// Text returns n's source text.
func Text(n *sitter.Node, src []byte) string {
	if n == nil {
		return ""
	}
	return n.Content(src)
}

// BranchBounds resolves the then-end/else-start (or try-body-end/first-catch-
// start) line pair the AST collaborator contract requires for If and Try:
// thenNode's last line and elseOrCatchNode's first line. Either return is 0
// when the corresponding node is nil (no else-branch / no catch clause).
func BranchBounds(thenNode, elseOrCatchNode *sitter.Node) (thenEnd, elseStart int) {
	if thenNode != nil {
		thenEnd = EndLine(thenNode)
	}
	if elseOrCatchNode != nil {
		elseStart = StartLine(elseOrCatchNode)
	}
	return thenEnd, elseStart
}

// ResolveQualifierType attempts to resolve the static type of a qualifier
// expression node to a fully-qualified name. This front end does no semantic
// type-checking (Non-goal: "no type resolution beyond the AST"), so it only
// ever returns the empty string and false; it exists as the seam the PE
// builder calls through, so a future front end carrying symbol-table
// information can supply a resolver without changing callers.
func ResolveQualifierType(_ *sitter.Node, _ []byte) (string, bool) {
	return "", false
}

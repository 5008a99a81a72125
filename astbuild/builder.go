package astbuild

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/PandaAwAke/PropertyGraph/pe"
)

// BuildClasses walks every top-level class/interface/enum declaration under
// root and returns the PE Class forest. Nested type declarations are not
// visited.
func BuildClasses(counter *pe.IDCounter, src []byte, root *sitter.Node) []*pe.Class {
	b := NewBuilder(counter, src)
	var classes []*pe.Class
	if root == nil {
		return classes
	}
	for i := 0; i < int(root.NamedChildCount()); i++ {
		child := root.NamedChild(i)
		if c := b.buildTypeDeclaration(child); c != nil {
			classes = append(classes, c)
		}
	}
	return classes
}

func (b *Builder) buildTypeDeclaration(n *sitter.Node) *pe.Class {
	switch n.Type() {
	case "class_declaration", "interface_declaration", "enum_declaration":
	default:
		return nil
	}
	nameNode := n.ChildByFieldName("name")
	class := pe.NewClass(b.counter, n, b.text(nameNode))
	class.SetLines(startLine(n), endLine(n))
	class.SetText(class.Name)

	bodyNode := n.ChildByFieldName("body")
	if bodyNode == nil {
		return class
	}
	for i := 0; i < int(bodyNode.NamedChildCount()); i++ {
		member := bodyNode.NamedChild(i)
		switch member.Type() {
		case "method_declaration", "constructor_declaration":
			if m := b.buildMethod(member); m != nil {
				class.AddMethod(m)
			}
		case "class_declaration", "interface_declaration", "enum_declaration":
			// Nested type declarations are out of scope: the method-level
			// CFG/PDG pipeline only needs a flat method list per class.
		}
	}
	return class
}

// buildMethod builds a Method PE from a method_declaration or
// constructor_declaration node, establishing the method's root Scope and
// binding each formal parameter into it before visiting the body.
func (b *Builder) buildMethod(n *sitter.Node) *pe.Method {
	nameNode := n.ChildByFieldName("name")
	name := b.text(nameNode)
	method := pe.NewMethod(b.counter, n, name, false)
	method.SetLines(startLine(n), endLine(n))

	bodyNode := n.ChildByFieldName("body")
	b.withScope(method, func() {
		scope := b.currentScope
		if params := n.ChildByFieldName("parameters"); params != nil {
			for i := 0; i < int(params.NamedChildCount()); i++ {
				p := params.NamedChild(i)
				if p.Type() != "formal_parameter" && p.Type() != "spread_parameter" {
					continue
				}
				pname := b.text(p.ChildByFieldName("name"))
				ptype := b.childType(p.ChildByFieldName("type"))
				v := pe.NewVariable(b.counter, p, pname, ptype, pe.CategoryParameter)
				scope.AddVariable(pname)
				method.Parameters = append(method.Parameters, v)
			}
		}
		if bodyNode == nil {
			return
		}
		for i := 0; i < int(bodyNode.NamedChildCount()); i++ {
			if s := b.childStmt(bodyNode.NamedChild(i)); s != nil {
				method.AddStatement(s)
			}
		}
	})
	return method
}

// buildLambda builds a Method PE (lambda=true, no name) from a
// lambda_expression node, per the Lambda statement-shape rule: body is
// either a statement block or a single expression.
func (b *Builder) buildLambda(n *sitter.Node) *pe.Method {
	method := pe.NewMethod(b.counter, n, "", true)
	method.SetLines(startLine(n), endLine(n))

	bodyNode := n.ChildByFieldName("body")
	b.withScope(method, func() {
		scope := b.currentScope
		if params := n.ChildByFieldName("parameters"); params != nil {
			switch params.Type() {
			case "formal_parameters":
				for i := 0; i < int(params.NamedChildCount()); i++ {
					p := params.NamedChild(i)
					if p.Type() != "formal_parameter" && p.Type() != "inferred_parameters" {
						continue
					}
					pname := b.text(p.ChildByFieldName("name"))
					if pname == "" {
						pname = b.text(p)
					}
					ptype := b.childType(p.ChildByFieldName("type"))
					v := pe.NewVariable(b.counter, p, pname, ptype, pe.CategoryParameter)
					scope.AddVariable(pname)
					method.Parameters = append(method.Parameters, v)
				}
			case "identifier":
				pname := b.text(params)
				v := pe.NewVariable(b.counter, params, pname, nil, pe.CategoryParameter)
				scope.AddVariable(pname)
				method.Parameters = append(method.Parameters, v)
			}
		}

		if bodyNode == nil {
			return
		}
		if bodyNode.Type() == "block" {
			for i := 0; i < int(bodyNode.NamedChildCount()); i++ {
				if s := b.childStmt(bodyNode.NamedChild(i)); s != nil {
					method.AddStatement(s)
				}
			}
			return
		}
		method.ExprBody = b.childElement(bodyNode)
	})
	return method
}

func (b *Builder) buildType(n *sitter.Node) *pe.Type {
	if n == nil {
		return nil
	}
	name := b.text(n)
	dims := 0
	for cur := n; cur != nil && cur.Type() == "array_type"; {
		dims++
		cur = cur.ChildByFieldName("element")
		if cur == nil {
			break
		}
		if cur.Type() != "array_type" {
			name = b.text(cur)
			break
		}
	}
	return pe.NewType(b.counter, n, name, dims)
}

func startLine(n *sitter.Node) int {
	if n == nil {
		return 0
	}
	return int(n.StartPoint().Row) + 1
}

func endLine(n *sitter.Node) int {
	if n == nil {
		return 0
	}
	return int(n.EndPoint().Row) + 1
}

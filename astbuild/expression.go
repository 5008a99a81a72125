package astbuild

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/PandaAwAke/PropertyGraph/javaast"
	"github.com/PandaAwAke/PropertyGraph/pe"
)

// visitExpression pushes exactly one Element for a recognized expression
// node. A lambda_expression pushes a *pe.Method (lambda=true), not a
// *pe.Expression, since the PE model has no separate lambda expression
// category (§4.2's Lambda rule produces a Method).
func (b *Builder) visitExpression(n *sitter.Node) {
	switch n.Type() {
	case "identifier", "type_identifier":
		e := pe.NewExpression(b.counter, n, pe.ExprSimpleName)
		e.SetLines(startLine(n), endLine(n))
		e.SetText(b.text(n))
		b.push(e)
	case "this":
		e := pe.NewExpression(b.counter, n, pe.ExprThis)
		e.SetLines(startLine(n), endLine(n))
		e.SetText("this")
		b.push(e)
	case "null_literal":
		b.push(b.literal(n, pe.ExprNull))
	case "true", "false":
		b.push(b.literal(n, pe.ExprBoolean))
	case "decimal_integer_literal", "hex_integer_literal", "octal_integer_literal",
		"binary_integer_literal", "decimal_floating_point_literal", "hex_floating_point_literal":
		b.push(b.literal(n, pe.ExprNumber))
	case "character_literal":
		b.push(b.literal(n, pe.ExprCharacter))
	case "string_literal", "text_block":
		b.push(b.literal(n, pe.ExprString))
	case "parenthesized_expression":
		inner := b.childElement(n.NamedChild(0))
		if inner == nil {
			return
		}
		e := pe.NewExpression(b.counter, n, pe.ExprParenthesized)
		e.SetLines(startLine(n), endLine(n))
		e.Children = []pe.Element{inner}
		e.SetText("( " + inner.Text() + " )")
		b.push(e)
	case "field_access":
		b.push(b.buildFieldAccess(n))
	case "scoped_identifier":
		b.push(b.buildQualifiedName(n))
	case "array_access":
		b.push(b.buildArrayAccess(n))
	case "method_invocation":
		b.push(b.buildMethodInvocation(n))
	case "binary_expression":
		b.push(b.buildInfix(n))
	case "assignment_expression":
		b.push(b.buildAssignment(n))
	case "unary_expression":
		b.push(b.buildPrefix(n))
	case "update_expression":
		b.push(b.buildUpdate(n))
	case "ternary_expression":
		b.push(b.buildTernary(n))
	case "instanceof_expression":
		b.push(b.buildInstanceof(n))
	case "cast_expression":
		b.push(b.buildCast(n))
	case "object_creation_expression":
		b.push(b.buildObjectCreation(n))
	case "array_creation_expression":
		b.push(b.buildArrayCreation(n))
	case "array_initializer":
		b.push(b.buildArrayInitializer(n))
	case "class_literal":
		b.push(b.buildTypeLiteral(n))
	case "lambda_expression":
		if m := b.buildLambda(n); m != nil {
			b.push(m)
		}
	case "explicit_constructor_invocation":
		b.push(b.buildConstructorInvocationExpr(n))
	case "variable_declarator":
		b.push(b.buildVariableDeclarator(n, nil, pe.CategoryLocal))
	default:
		// Unsupported expression shape: skip (§7.1).
	}
}

func (b *Builder) literal(n *sitter.Node, kind pe.ExpressionKind) *pe.Expression {
	e := pe.NewExpression(b.counter, n, kind)
	e.SetLines(startLine(n), endLine(n))
	e.SetText(b.text(n))
	return e
}

func (b *Builder) buildFieldAccess(n *sitter.Node) *pe.Expression {
	objectNode := n.ChildByFieldName("object")
	fieldNode := n.ChildByFieldName("field")
	if fieldNode == nil {
		return nil
	}
	fieldName := pe.NewExpression(b.counter, fieldNode, pe.ExprSimpleName)
	fieldName.SetLines(startLine(fieldNode), endLine(fieldNode))
	fieldName.SetText(b.text(fieldNode))

	qualifier := b.childElement(objectNode)
	kind := pe.ExprFieldAccess
	if objectNode != nil && objectNode.Type() == "super" {
		kind = pe.ExprSuperFieldAccess
	}
	e := pe.NewExpression(b.counter, n, kind)
	e.SetLines(startLine(n), endLine(n))
	e.Qualifier = qualifier
	e.Children = []pe.Element{fieldName}
	if qualifier != nil {
		e.SetText(qualifier.Text() + "." + fieldName.Text())
	} else {
		e.SetText(fieldName.Text())
	}
	return e
}

// buildQualifiedName builds a QualifiedName PE from a scoped_identifier
// node: a dotted reference resolved at parse time rather than through a
// chain of field accesses, e.g. an enum constant or annotation argument
// like "Color.RED" or "TimeUnit.SECONDS".
func (b *Builder) buildQualifiedName(n *sitter.Node) *pe.Expression {
	scopeNode := n.ChildByFieldName("scope")
	nameNode := n.ChildByFieldName("name")
	if nameNode == nil {
		return nil
	}
	name := pe.NewExpression(b.counter, nameNode, pe.ExprSimpleName)
	name.SetLines(startLine(nameNode), endLine(nameNode))
	name.SetText(b.text(nameNode))

	qualifier := b.childElement(scopeNode)
	e := pe.NewExpression(b.counter, n, pe.ExprQualifiedName)
	e.SetLines(startLine(n), endLine(n))
	e.Qualifier = qualifier
	e.Children = []pe.Element{name}
	if qualifier != nil {
		e.SetText(qualifier.Text() + "." + name.Text())
	} else {
		e.SetText(name.Text())
	}
	return e
}

func (b *Builder) buildArrayAccess(n *sitter.Node) *pe.Expression {
	base := b.childElement(n.ChildByFieldName("array"))
	index := b.childElement(n.ChildByFieldName("index"))
	if base == nil {
		return nil
	}
	e := pe.NewExpression(b.counter, n, pe.ExprArrayAccess)
	e.SetLines(startLine(n), endLine(n))
	e.Children = []pe.Element{base, index}
	idxText := ""
	if index != nil {
		idxText = index.Text()
	}
	e.SetText(base.Text() + "[" + idxText + "]")
	return e
}

func (b *Builder) buildMethodInvocation(n *sitter.Node) *pe.Expression {
	nameNode := n.ChildByFieldName("name")
	if nameNode == nil {
		return nil
	}
	objectNode := n.ChildByFieldName("object")
	qualifier := b.childElement(objectNode)

	methodName := pe.NewExpression(b.counter, nameNode, pe.ExprSimpleName)
	methodName.SetLines(startLine(nameNode), endLine(nameNode))
	methodName.SetText(b.text(nameNode))

	kind := pe.ExprMethodInvocation
	if objectNode != nil && objectNode.Type() == "super" {
		kind = pe.ExprSuperMethodInvocation
	}

	e := pe.NewExpression(b.counter, n, kind)
	e.SetLines(startLine(n), endLine(n))
	e.Qualifier = qualifier
	e.Children = append([]pe.Element{methodName}, b.buildArgumentList(n.ChildByFieldName("arguments"))...)
	if resolved, ok := javaast.ResolveQualifierType(objectNode, b.src); ok {
		e.ResolvedAPI = resolved + "." + methodName.Text()
	}

	qualText := ""
	if qualifier != nil {
		qualText = qualifier.Text() + "."
	}
	e.SetText(qualText + methodName.Text() + "(" + joinArgText(e.Children[1:]) + ")")
	return e
}

func (b *Builder) buildArgumentList(n *sitter.Node) []pe.Element {
	if n == nil {
		return nil
	}
	var args []pe.Element
	for i := 0; i < int(n.NamedChildCount()); i++ {
		if a := b.childElement(n.NamedChild(i)); a != nil {
			args = append(args, a)
		}
	}
	return args
}

func joinArgText(args []pe.Element) string {
	text := ""
	for i, a := range args {
		if i > 0 {
			text += ", "
		}
		text += a.Text()
	}
	return text
}

func (b *Builder) buildInfix(n *sitter.Node) *pe.Expression {
	left := b.childElement(n.ChildByFieldName("left"))
	right := b.childElement(n.ChildByFieldName("right"))
	if left == nil || right == nil {
		return nil
	}
	opNode := n.ChildByFieldName("operator")
	op := pe.NewOperator(b.counter, opNode, b.text(opNode))
	e := pe.NewExpression(b.counter, n, pe.ExprInfix)
	e.SetLines(startLine(n), endLine(n))
	e.Op = op
	e.Children = []pe.Element{left, right}
	e.SetText("( " + left.Text() + " " + op.Token + " " + right.Text() + " )")
	return e
}

func (b *Builder) buildAssignment(n *sitter.Node) *pe.Expression {
	lhs := b.childElement(n.ChildByFieldName("left"))
	rhs := b.childElement(n.ChildByFieldName("right"))
	if lhs == nil || rhs == nil {
		return nil
	}
	opNode := n.ChildByFieldName("operator")
	op := pe.NewOperator(b.counter, opNode, b.text(opNode))
	e := pe.NewExpression(b.counter, n, pe.ExprAssignment)
	e.SetLines(startLine(n), endLine(n))
	e.Op = op
	e.Children = []pe.Element{lhs, rhs}
	e.SetText(lhs.Text() + " " + op.Token + " " + rhs.Text())
	return e
}

func (b *Builder) buildPrefix(n *sitter.Node) *pe.Expression {
	operand := b.childElement(n.ChildByFieldName("operand"))
	if operand == nil {
		return nil
	}
	opNode := n.ChildByFieldName("operator")
	op := pe.NewOperator(b.counter, opNode, b.text(opNode))
	e := pe.NewExpression(b.counter, n, pe.ExprPrefix)
	e.SetLines(startLine(n), endLine(n))
	e.Op = op
	e.Children = []pe.Element{operand}
	e.SetText(op.Token + operand.Text())
	return e
}

// buildUpdate builds either a Prefix or a Postfix, depending on whether the
// operator token precedes or follows the operand in source order.
func (b *Builder) buildUpdate(n *sitter.Node) *pe.Expression {
	operandNode := n.ChildByFieldName("operand")
	operand := b.childElement(operandNode)
	if operand == nil || operandNode == nil {
		return nil
	}
	var opNode *sitter.Node
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		if c != operandNode && !c.IsNamed() {
			opNode = c
			break
		}
	}
	op := pe.NewOperator(b.counter, opNode, b.text(opNode))
	postfix := operandNode.StartByte() == n.StartByte()
	kind := pe.ExprPrefix
	text := op.Token + operand.Text()
	if postfix {
		kind = pe.ExprPostfix
		text = operand.Text() + op.Token
	}
	e := pe.NewExpression(b.counter, n, kind)
	e.SetLines(startLine(n), endLine(n))
	e.Op = op
	e.Children = []pe.Element{operand}
	e.SetText(text)
	return e
}

func (b *Builder) buildTernary(n *sitter.Node) *pe.Expression {
	cond := b.childElement(n.ChildByFieldName("condition"))
	cons := b.childElement(n.ChildByFieldName("consequence"))
	alt := b.childElement(n.ChildByFieldName("alternative"))
	if cond == nil || cons == nil || alt == nil {
		return nil
	}
	e := pe.NewExpression(b.counter, n, pe.ExprTrinomial)
	e.SetLines(startLine(n), endLine(n))
	e.Children = []pe.Element{cond, cons, alt}
	e.SetText("( " + cond.Text() + " ? " + cons.Text() + " : " + alt.Text() + " )")
	return e
}

func (b *Builder) buildInstanceof(n *sitter.Node) *pe.Expression {
	left := b.childElement(n.ChildByFieldName("left"))
	typeNode := n.ChildByFieldName("right")
	if typeNode == nil {
		typeNode = n.ChildByFieldName("type")
	}
	if left == nil {
		return nil
	}
	t := b.childType(typeNode)
	e := pe.NewExpression(b.counter, n, pe.ExprInstanceof)
	e.SetLines(startLine(n), endLine(n))
	e.ElementType = t
	e.Children = []pe.Element{left}
	typeText := ""
	if t != nil {
		typeText = t.Text()
	}
	e.SetText("( " + left.Text() + " instanceof " + typeText + " )")
	return e
}

func (b *Builder) buildCast(n *sitter.Node) *pe.Expression {
	typeNode := n.ChildByFieldName("type")
	value := b.childElement(n.ChildByFieldName("value"))
	if value == nil {
		return nil
	}
	t := b.childType(typeNode)
	e := pe.NewExpression(b.counter, n, pe.ExprCast)
	e.SetLines(startLine(n), endLine(n))
	e.ElementType = t
	e.Children = []pe.Element{value}
	typeText := ""
	if t != nil {
		typeText = t.Text()
	}
	e.SetText("(" + typeText + ") " + value.Text())
	return e
}

func (b *Builder) buildObjectCreation(n *sitter.Node) *pe.Expression {
	typeNode := n.ChildByFieldName("type")
	t := b.childType(typeNode)
	e := pe.NewExpression(b.counter, n, pe.ExprClassInstanceCreation)
	e.SetLines(startLine(n), endLine(n))
	e.ElementType = t
	e.Children = b.buildArgumentList(n.ChildByFieldName("arguments"))
	if bodyNode := n.ChildByFieldName("body"); bodyNode != nil {
		anon := pe.NewClass(b.counter, bodyNode, "")
		anon.SetLines(startLine(bodyNode), endLine(bodyNode))
		for i := 0; i < int(bodyNode.NamedChildCount()); i++ {
			member := bodyNode.NamedChild(i)
			if member.Type() == "method_declaration" || member.Type() == "constructor_declaration" {
				if m := b.buildMethod(member); m != nil {
					anon.AddMethod(m)
				}
			}
		}
		e.AnonymousBody = anon
	}
	typeText := ""
	if t != nil {
		typeText = t.Text()
	}
	e.SetText("new " + typeText + "(" + joinArgText(e.Children) + ")")
	return e
}

func (b *Builder) buildArrayCreation(n *sitter.Node) *pe.Expression {
	typeNode := n.ChildByFieldName("type")
	t := b.childType(typeNode)
	e := pe.NewExpression(b.counter, n, pe.ExprArrayCreation)
	e.SetLines(startLine(n), endLine(n))
	e.ElementType = t
	for i := 0; i < int(n.NamedChildCount()); i++ {
		c := n.NamedChild(i)
		if c == typeNode {
			continue
		}
		if el := b.childElement(c); el != nil {
			e.Children = append(e.Children, el)
		}
	}
	typeText := ""
	if t != nil {
		typeText = t.Text()
	}
	e.SetText("new " + typeText + "[]")
	return e
}

func (b *Builder) buildArrayInitializer(n *sitter.Node) *pe.Expression {
	e := pe.NewExpression(b.counter, n, pe.ExprArrayInitializer)
	e.SetLines(startLine(n), endLine(n))
	for i := 0; i < int(n.NamedChildCount()); i++ {
		if el := b.childElement(n.NamedChild(i)); el != nil {
			e.Children = append(e.Children, el)
		}
	}
	e.SetText("{ " + joinArgText(e.Children) + " }")
	return e
}

func (b *Builder) buildTypeLiteral(n *sitter.Node) *pe.Expression {
	typeNode := n.NamedChild(0)
	t := b.childType(typeNode)
	e := pe.NewExpression(b.counter, n, pe.ExprTypeLiteral)
	e.SetLines(startLine(n), endLine(n))
	e.ElementType = t
	e.SetText(b.text(n))
	return e
}

// buildConstructorInvocationExpr builds the this(...)/super(...) synthetic
// call expression shared by both the statement- and (rare) expression-
// position visitors.
func (b *Builder) buildConstructorInvocationExpr(n *sitter.Node) *pe.Expression {
	kind := pe.ExprConstructorInvocation
	keyword := "this"
	if n.NamedChildCount() > 0 && n.NamedChild(0).Type() == "super" {
		kind = pe.ExprSuperConstructorInvocation
		keyword = "super"
	}
	e := pe.NewExpression(b.counter, n, kind)
	e.SetLines(startLine(n), endLine(n))
	e.Children = b.buildArgumentList(n.ChildByFieldName("arguments"))
	e.SetText(keyword + "(" + joinArgText(e.Children) + ")")
	return e
}

package astbuild

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/PandaAwAke/PropertyGraph/pe"
)

// visitStatement pushes exactly one Statement PE for a recognized statement
// node, or nothing for one this core does not recognize. Called only
// through Builder.child/childStmt, which enforce the bounded-pop discipline.
func (b *Builder) visitStatement(n *sitter.Node) {
	switch n.Type() {
	case "block":
		b.push(b.buildBlock(n))
	case "local_variable_declaration":
		b.push(b.buildLocalVarDecl(n))
	case "expression_statement":
		b.push(b.buildExpressionStatement(n))
	case "if_statement":
		b.push(b.buildIf(n))
	case "while_statement":
		b.push(b.buildWhile(n))
	case "do_statement":
		b.push(b.buildDo(n))
	case "for_statement":
		b.push(b.buildFor(n))
	case "enhanced_for_statement":
		b.push(b.buildForeach(n))
	case "try_statement", "try_with_resources_statement":
		b.push(b.buildTry(n))
	case "labeled_statement":
		b.push(b.buildLabeled(n))
	case "break_statement":
		b.push(b.buildBreakContinue(n, pe.StmtBreak))
	case "continue_statement":
		b.push(b.buildBreakContinue(n, pe.StmtContinue))
	case "return_statement":
		b.push(b.buildReturn(n))
	case "throw_statement":
		b.push(b.buildThrow(n))
	case "assert_statement":
		b.push(b.buildAssert(n))
	case "synchronized_statement":
		b.push(b.buildSynchronized(n))
	case "switch_statement", "switch_expression":
		b.push(b.buildSwitch(n))
	case "explicit_constructor_invocation":
		b.push(b.buildConstructorInvocationStatement(n))
	case ";":
		s := pe.NewStatement(b.counter, n, pe.StmtEmpty)
		s.SetLines(startLine(n), endLine(n))
		b.push(s)
	default:
		// Unsupported statement shape: no PE is produced; downstream graphs
		// simply omit it (§7.1).
	}
}

// buildBlock creates a fresh child Scope for the block (Invariant: every
// { ... } introduces its own lexical scope) so that locals declared inside
// never leak into, or collide with, a sibling block's locals.
func (b *Builder) buildBlock(n *sitter.Node) *pe.Statement {
	s := pe.NewStatement(b.counter, n, pe.StmtSimpleBlock)
	s.SetLines(startLine(n), endLine(n))
	b.withScope(s, func() {
		for i := 0; i < int(n.NamedChildCount()); i++ {
			if stmt := b.childStmt(n.NamedChild(i)); stmt != nil {
				s.AddStatement(stmt)
			}
		}
	})
	return s
}

func (b *Builder) buildLocalVarDecl(n *sitter.Node) *pe.Statement {
	s := pe.NewStatement(b.counter, n, pe.StmtVariableDeclaration)
	s.SetLines(startLine(n), endLine(n))
	typeNode := n.ChildByFieldName("type")
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		if child.Type() != "variable_declarator" {
			continue
		}
		frag := b.buildVariableDeclarator(child, typeNode, pe.CategoryLocal)
		if frag == nil {
			continue
		}
		s.Children = append(s.Children, frag)
		if b.currentScope != nil {
			b.currentScope.AddVariable(frag.VarDecl.Name)
		}
	}
	return s
}

func (b *Builder) buildVariableDeclarator(n, typeNode *sitter.Node, category pe.VariableCategory) *pe.Expression {
	nameNode := n.ChildByFieldName("name")
	if nameNode == nil {
		return nil
	}
	name := b.text(nameNode)
	varType := b.childType(typeNode)
	frag := pe.NewExpression(b.counter, n, pe.ExprVariableDeclarationFrag)
	frag.SetLines(startLine(n), endLine(n))
	frag.VarDecl = pe.NewVariable(b.counter, n, name, varType, category)
	text := name
	if valueNode := n.ChildByFieldName("value"); valueNode != nil {
		if init := b.childElement(valueNode); init != nil {
			frag.Children = []pe.Element{init}
			text = name + " = " + init.Text()
		}
	}
	frag.SetText(text)
	return frag
}

func (b *Builder) buildExpressionStatement(n *sitter.Node) *pe.Statement {
	inner := n.NamedChild(0)
	if inner == nil {
		return nil
	}
	expr := b.childElement(inner)
	if expr == nil {
		return nil
	}
	s := pe.NewStatement(b.counter, n, pe.StmtExpression)
	s.SetLines(startLine(n), endLine(n))
	s.Children = []pe.Element{expr}
	s.SetText(expr.Text())
	return s
}

// buildIf implements the If shape rule: condition, body, optional else-body
// flattened if it is a SimpleBlock.
func (b *Builder) buildIf(n *sitter.Node) *pe.Statement {
	s := pe.NewStatement(b.counter, n, pe.StmtIf)
	s.SetLines(startLine(n), endLine(n))
	s.SetCondition(b.childElement(n.ChildByFieldName("condition")))
	s.SetStatement(b.childStmt(n.ChildByFieldName("consequence")))
	if alt := n.ChildByFieldName("alternative"); alt != nil {
		s.SetElseStatement(b.childStmt(alt))
	}
	return s
}

func (b *Builder) buildWhile(n *sitter.Node) *pe.Statement {
	s := pe.NewStatement(b.counter, n, pe.StmtWhile)
	s.SetLines(startLine(n), endLine(n))
	s.SetCondition(b.childElement(n.ChildByFieldName("condition")))
	s.SetStatement(b.childStmt(n.ChildByFieldName("body")))
	return s
}

func (b *Builder) buildDo(n *sitter.Node) *pe.Statement {
	s := pe.NewStatement(b.counter, n, pe.StmtDo)
	s.SetLines(startLine(n), endLine(n))
	s.SetStatement(b.childStmt(n.ChildByFieldName("body")))
	s.SetCondition(b.childElement(n.ChildByFieldName("condition")))
	return s
}

// buildFor implements the For shape rule: initializers, optional condition,
// updaters, body. The whole header plus body shares one Scope, since a
// Java for-loop's own init variables (e.g. the "i" in "for (int i ...)")
// stay in scope through the condition, updaters and body, and must not
// collide with an "i" declared by a sibling for-loop in the same method.
func (b *Builder) buildFor(n *sitter.Node) *pe.Statement {
	s := pe.NewStatement(b.counter, n, pe.StmtFor)
	s.SetLines(startLine(n), endLine(n))
	b.withScope(s, func() {
		conditionNode := n.ChildByFieldName("condition")
		s.SetCondition(b.childElement(conditionNode))

		// init/update are repeated anonymous fields in the grammar; walk by
		// position relative to the two ';' separators to classify them.
		firstSemi, secondSemi := -1, -1
		semisSeen := 0
		for i := 0; i < int(n.ChildCount()); i++ {
			c := n.Child(i)
			if c.Type() == ";" {
				semisSeen++
				if semisSeen == 1 {
					firstSemi = i
				} else if semisSeen == 2 {
					secondSemi = i
				}
			}
		}
		for i := 0; i < int(n.ChildCount()); i++ {
			c := n.Child(i)
			if !c.IsNamed() || c == n.ChildByFieldName("condition") || c == n.ChildByFieldName("body") {
				continue
			}
			switch {
			case firstSemi >= 0 && i < firstSemi:
				if c.Type() == "local_variable_declaration" {
					if stmt := b.childStmt(c); stmt != nil {
						s.Inits = append(s.Inits, stmt)
					}
				} else if e := b.childElement(c); e != nil {
					s.Inits = append(s.Inits, e)
				}
			case secondSemi >= 0 && i > secondSemi:
				if e := b.childElement(c); e != nil {
					s.Updaters = append(s.Updaters, e)
				}
			}
		}
		s.SetStatement(b.childStmt(n.ChildByFieldName("body")))
	})
	return s
}

// buildForeach implements the Foreach shape rule: parameter + iterable in
// the initializer list, body. Like buildFor, the loop parameter gets its
// own Scope spanning the whole statement.
func (b *Builder) buildForeach(n *sitter.Node) *pe.Statement {
	s := pe.NewStatement(b.counter, n, pe.StmtForeach)
	s.SetLines(startLine(n), endLine(n))

	b.withScope(s, func() {
		nameNode := n.ChildByFieldName("name")
		typeNode := n.ChildByFieldName("type")
		if nameNode != nil {
			name := b.text(nameNode)
			varType := b.childType(typeNode)
			paramVar := pe.NewVariable(b.counter, n, name, varType, pe.CategoryLocal)
			b.currentScope.AddVariable(name)
			decl := pe.NewExpression(b.counter, nameNode, pe.ExprVariableDeclarationFrag)
			decl.SetLines(startLine(nameNode), endLine(nameNode))
			decl.VarDecl = paramVar
			decl.SetText(name)
			s.Inits = append(s.Inits, decl)
		}
		if value := b.childElement(n.ChildByFieldName("value")); value != nil {
			s.Inits = append(s.Inits, value)
		}
		s.SetStatement(b.childStmt(n.ChildByFieldName("body")))
	})
	return s
}

// buildTry implements the Try shape rule: body, ordered catch-clauses,
// optional finally.
func (b *Builder) buildTry(n *sitter.Node) *pe.Statement {
	s := pe.NewStatement(b.counter, n, pe.StmtTry)
	s.SetLines(startLine(n), endLine(n))
	if body := n.ChildByFieldName("body"); body != nil {
		b.withScope(s, func() {
			for i := 0; i < int(body.NamedChildCount()); i++ {
				if stmt := b.childStmt(body.NamedChild(i)); stmt != nil {
					s.AddStatement(stmt)
				}
			}
		})
	}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		switch child.Type() {
		case "catch_clause":
			if c := b.buildCatch(child); c != nil {
				s.AddCatchClause(c)
			}
		case "finally_clause":
			block := child.ChildByFieldName("body")
			if block == nil && child.NamedChildCount() > 0 {
				block = child.NamedChild(int(child.NamedChildCount()) - 1)
			}
			if block != nil {
				b.withScope(s, func() {
					for j := 0; j < int(block.NamedChildCount()); j++ {
						if stmt := b.childStmt(block.NamedChild(j)); stmt != nil {
							s.FinallyBody = append(s.FinallyBody, stmt)
						}
					}
				})
			}
		}
	}
	return s
}

// buildCatch gives the caught exception its own Scope, limited to the catch
// block, so two sibling catch clauses can each bind a differently-typed
// variable under the same name without colliding.
func (b *Builder) buildCatch(n *sitter.Node) *pe.Statement {
	c := pe.NewStatement(b.counter, n, pe.StmtCatch)
	c.SetLines(startLine(n), endLine(n))
	b.withScope(c, func() {
		if param := n.ChildByFieldName("parameter"); param != nil {
			name := b.text(param.ChildByFieldName("name"))
			typeNode := param.ChildByFieldName("type")
			varType := b.childType(typeNode)
			v := pe.NewVariable(b.counter, param, name, varType, pe.CategoryLocal)
			b.currentScope.AddVariable(name)
			decl := pe.NewExpression(b.counter, param, pe.ExprVariableDeclarationFrag)
			decl.VarDecl = v
			decl.SetText(name)
			c.SetCondition(decl)
		}
		if body := n.ChildByFieldName("body"); body != nil {
			for i := 0; i < int(body.NamedChildCount()); i++ {
				if stmt := b.childStmt(body.NamedChild(i)); stmt != nil {
					c.AddStatement(stmt)
				}
			}
		}
	})
	return c
}

// buildLabeled implements the LabeledStatement shape rule: attaches its
// label to the wrapped statement (rather than introducing a wrapper PE).
func (b *Builder) buildLabeled(n *sitter.Node) *pe.Statement {
	labelNode := n.ChildByFieldName("label")
	var inner *sitter.Node
	for i := 0; i < int(n.NamedChildCount()); i++ {
		c := n.NamedChild(i)
		if c != labelNode {
			inner = c
			break
		}
	}
	stmt := b.childStmt(inner)
	if stmt == nil {
		return nil
	}
	stmt.Label = b.text(labelNode)
	return stmt
}

func (b *Builder) buildBreakContinue(n *sitter.Node, kind pe.StatementKind) *pe.Statement {
	s := pe.NewStatement(b.counter, n, kind)
	s.SetLines(startLine(n), endLine(n))
	if n.NamedChildCount() > 0 {
		s.Label = b.text(n.NamedChild(0))
	}
	return s
}

func (b *Builder) buildReturn(n *sitter.Node) *pe.Statement {
	s := pe.NewStatement(b.counter, n, pe.StmtReturn)
	s.SetLines(startLine(n), endLine(n))
	if n.NamedChildCount() > 0 {
		if e := b.childElement(n.NamedChild(0)); e != nil {
			s.Children = []pe.Element{e}
		}
	}
	return s
}

func (b *Builder) buildThrow(n *sitter.Node) *pe.Statement {
	s := pe.NewStatement(b.counter, n, pe.StmtThrow)
	s.SetLines(startLine(n), endLine(n))
	if n.NamedChildCount() > 0 {
		if e := b.childElement(n.NamedChild(0)); e != nil {
			s.Children = []pe.Element{e}
		}
	}
	return s
}

func (b *Builder) buildAssert(n *sitter.Node) *pe.Statement {
	s := pe.NewStatement(b.counter, n, pe.StmtAssert)
	s.SetLines(startLine(n), endLine(n))
	for i := 0; i < int(n.NamedChildCount()); i++ {
		if e := b.childElement(n.NamedChild(i)); e != nil {
			s.Children = append(s.Children, e)
		}
	}
	return s
}

func (b *Builder) buildSynchronized(n *sitter.Node) *pe.Statement {
	s := pe.NewStatement(b.counter, n, pe.StmtSynchronized)
	s.SetLines(startLine(n), endLine(n))
	var lock, body *sitter.Node
	for i := 0; i < int(n.NamedChildCount()); i++ {
		c := n.NamedChild(i)
		if c.Type() == "block" {
			body = c
		} else if lock == nil {
			lock = c
		}
	}
	s.SetCondition(b.childElement(lock))
	s.SetStatement(b.childStmt(body))
	return s
}

// buildSwitch builds a chain of Case statements from a switch_statement's
// block, one Case PE per switch_block_statement_group (fall-through is a
// CFG-level concern; here it's simply a sequence of siblings).
func (b *Builder) buildSwitch(n *sitter.Node) *pe.Statement {
	s := pe.NewStatement(b.counter, n, pe.StmtSwitch)
	s.SetLines(startLine(n), endLine(n))
	s.SetCondition(b.childElement(n.ChildByFieldName("condition")))

	body := n.ChildByFieldName("body")
	if body == nil {
		return s
	}
	// All case groups of a (legacy, fall-through) switch share one Scope,
	// since a variable declared in one case is reachable by a later one.
	b.withScope(s, func() {
		for i := 0; i < int(body.NamedChildCount()); i++ {
			group := body.NamedChild(i)
			if group.Type() != "switch_block_statement_group" && group.Type() != "switch_rule" {
				continue
			}
			c := pe.NewStatement(b.counter, group, pe.StmtCase)
			c.SetLines(startLine(group), endLine(group))
			for j := 0; j < int(group.NamedChildCount()); j++ {
				child := group.NamedChild(j)
				if child.Type() == "switch_label" {
					if child.NamedChildCount() > 0 {
						if e := b.childElement(child.NamedChild(0)); e != nil {
							c.Children = append(c.Children, e)
						}
					}
					continue
				}
				if stmt := b.childStmt(child); stmt != nil {
					c.AddStatement(stmt)
				} else if e := b.childElement(child); e != nil {
					// switch_rule's arrow form may carry a bare expression body.
					wrapped := pe.NewStatement(b.counter, child, pe.StmtExpression)
					wrapped.SetLines(startLine(child), endLine(child))
					wrapped.Children = []pe.Element{e}
					c.AddStatement(wrapped)
				}
			}
			s.AddStatement(c)
		}
	})
	return s
}

// buildConstructorInvocationStatement implements the ConstructorInvocation/
// SuperConstructorInvocation shape rule: materialize a synthetic Expression
// statement for this(...) / super(...).
func (b *Builder) buildConstructorInvocationStatement(n *sitter.Node) *pe.Statement {
	expr := b.buildConstructorInvocationExpr(n)
	if expr == nil {
		return nil
	}
	s := pe.NewStatement(b.counter, n, pe.StmtExpression)
	s.SetLines(startLine(n), endLine(n))
	s.Children = []pe.Element{expr}
	s.SetText(expr.Text())
	return s
}

package defuse

import (
	"github.com/PandaAwAke/PropertyGraph/pe"
)

// Analyzer computes and memoizes def/use sets per PE node. A single
// Analyzer is scoped to one method; its caches are keyed by PE id, which is
// unique within an analysis run.
type Analyzer struct {
	defs map[int64]*DefSet
	uses map[int64]*UseSet
}

// New returns an empty Analyzer.
func New() *Analyzer {
	return &Analyzer{
		defs: map[int64]*DefSet{},
		uses: map[int64]*UseSet{},
	}
}

// Defs returns the memoized def set for e, computing it on first request.
func (a *Analyzer) Defs(e pe.Element) *DefSet {
	if e == nil {
		return newDefSet()
	}
	if cached, ok := a.defs[e.ID()]; ok {
		return cached
	}
	set := newDefSet()
	a.defs[e.ID()] = set // break cycles defensively; the PE is a tree so none occur
	a.computeDefs(e, set)
	return set
}

// Uses returns the memoized use set for e, computing it on first request.
func (a *Analyzer) Uses(e pe.Element) *UseSet {
	if e == nil {
		return newUseSet()
	}
	if cached, ok := a.uses[e.ID()]; ok {
		return cached
	}
	set := newUseSet()
	a.uses[e.ID()] = set
	a.computeUses(e, set)
	return set
}

// nameOf recognizes whether expr is a pure variable reference and, if so,
// returns its canonical main name.
func nameOf(expr pe.Element) (string, bool) {
	e, ok := expr.(*pe.Expression)
	if !ok || e == nil {
		return "", false
	}
	switch e.ExprKind {
	case pe.ExprSimpleName:
		return e.Text(), true
	case pe.ExprArrayAccess:
		if len(e.Children) == 0 {
			return "", false
		}
		if base, ok := e.Children[0].(*pe.Expression); ok && base.ExprKind == pe.ExprSimpleName {
			return base.Text(), true
		}
		return "", false
	case pe.ExprFieldAccess:
		if q, ok := e.Qualifier.(*pe.Expression); ok {
			if q.ExprKind == pe.ExprSimpleName || q.ExprKind == pe.ExprThis {
				return e.Text(), true
			}
		}
		return "", false
	case pe.ExprQualifiedName:
		if q, ok := e.Qualifier.(*pe.Expression); ok && q.ExprKind == pe.ExprSimpleName {
			return e.Text(), true
		}
		return "", false
	default:
		return "", false
	}
}

// DefKind classification for method-receiver mutation heuristics.
var exactNoDefNames = map[string]bool{
	"equals": true, "hashCode": true, "toString": true,
	"isEmpty": true, "size": true, "length": true, "stream": true,
}

var exactDefNames = map[string]bool{
	"push": true, "pop": true, "offer": true, "poll": true,
}

var prefixNoDef = []string{"get", "print", "debug", "trace", "info", "warn", "error"}
var prefixDef = []string{"set", "add", "remove", "put", "insert", "contains"}

// classifyCallDef applies the fixed method-name policy used to decide
// whether invoking methodName on a receiver counts as a mutation of it.
func classifyCallDef(methodName string) DefKind {
	if exactNoDefNames[methodName] {
		return DefNoDef
	}
	if exactDefNames[methodName] {
		return DefDef
	}
	for _, p := range prefixNoDef {
		if hasPrefix(methodName, p) {
			return DefNoDef
		}
	}
	for _, p := range prefixDef {
		if hasPrefix(methodName, p) {
			return DefDef
		}
	}
	return DefMayDef
}

func hasPrefix(s, prefix string) bool {
	return len(s) >= len(prefix) && s[:len(prefix)] == prefix
}

// bindScope applies the "scope binding at insertion" rule: for a DECLARE
// def with no prior scope, bind to owner's scope; otherwise resolve via the
// owning block's scope, falling back to nil (field-like reference).
func bindScope(owner *pe.Scope, mainName string, declare bool) *pe.Scope {
	if owner == nil {
		return nil
	}
	if declare {
		return owner
	}
	return owner.SearchVariable(mainName)
}

func isMethodName(e pe.Element) (string, bool) {
	exp, ok := e.(*pe.Expression)
	if !ok || exp.ExprKind != pe.ExprSimpleName {
		return "", false
	}
	return exp.Text(), true
}

func anonymousBodyDefs(a *Analyzer, anon *pe.Class, into *DefSet) {
	if anon == nil {
		return
	}
	for _, m := range anon.Methods {
		for _, stmt := range m.Statements() {
			into.AddAll(a.Defs(stmt))
		}
	}
}

func anonymousBodyUses(a *Analyzer, anon *pe.Class, into *UseSet) {
	if anon == nil {
		return
	}
	for _, m := range anon.Methods {
		for _, stmt := range m.Statements() {
			into.AddAll(a.Uses(stmt))
		}
	}
}

// computeDefs dispatches def computation by concrete PE type/category.
func (a *Analyzer) computeDefs(e pe.Element, out *DefSet) {
	switch node := e.(type) {
	case *pe.Expression:
		a.computeExprDefs(node, out)
	case *pe.Statement:
		a.computeStmtDefs(node, out)
	}
}

func (a *Analyzer) computeExprDefs(e *pe.Expression, out *DefSet) {
	switch e.ExprKind {
	case pe.ExprAssignment:
		if len(e.Children) < 2 {
			return
		}
		lhs, rhs := e.Children[0], e.Children[1]
		if name, ok := nameOf(lhs); ok {
			out.Add(name, bindScope(e.OwnerScope, name, false), DefDef)
		} else {
			out.AddAll(a.Defs(lhs))
		}
		out.AddAll(a.Defs(rhs))
	case pe.ExprVariableDeclarationFrag:
		if e.VarDecl != nil {
			out.Add(e.VarDecl.Name, bindScope(e.OwnerScope, e.VarDecl.Name, true), DefDeclareAndDef)
		}
		if len(e.Children) > 0 {
			out.AddAll(a.Defs(e.Children[0]))
		}
	case pe.ExprPostfix:
		if len(e.Children) == 0 {
			return
		}
		if name, ok := nameOf(e.Children[0]); ok {
			out.Add(name, bindScope(e.OwnerScope, name, false), DefDef)
		}
	case pe.ExprPrefix:
		if len(e.Children) == 0 {
			return
		}
		operand := e.Children[0]
		isIncDec := e.Op != nil && (e.Op.Token == "++" || e.Op.Token == "--")
		if name, ok := nameOf(operand); ok && isIncDec {
			out.Add(name, bindScope(e.OwnerScope, name, false), DefDef)
			return
		}
		out.AddAll(a.Defs(operand))
	case pe.ExprMethodInvocation, pe.ExprSuperMethodInvocation:
		if len(e.Children) == 0 {
			return
		}
		methodName, _ := isMethodName(e.Children[0])
		callDefType := classifyCallDef(methodName)
		if e.Qualifier == nil {
			for _, arg := range e.Children[1:] {
				out.AddAll(a.Defs(arg))
			}
			return
		}
		if name, ok := nameOf(e.Qualifier); ok {
			out.Add(name, bindScope(e.OwnerScope, name, false), callDefType)
		} else if callDefType.AtLeastMayDef() {
			out.AddAllPromoted(a.Defs(e.Qualifier), DefMayDef)
		} else {
			out.AddAll(a.Defs(e.Qualifier))
		}
		for _, arg := range e.Children[1:] {
			out.AddAll(a.Defs(arg))
		}
	default:
		if e.Qualifier != nil {
			out.AddAll(a.Defs(e.Qualifier))
		}
		for _, c := range e.Children {
			out.AddAll(a.Defs(c))
		}
		anonymousBodyDefs(a, e.AnonymousBody, out)
	}
}

func (a *Analyzer) computeStmtDefs(s *pe.Statement, out *DefSet) {
	if s.Condition != nil {
		out.AddAll(a.Defs(s.Condition))
	}
	for _, c := range s.Children {
		out.AddAll(a.Defs(c))
	}
	for _, c := range s.Inits {
		out.AddAll(a.Defs(c))
	}
	for _, c := range s.Updaters {
		out.AddAll(a.Defs(c))
	}
}

// computeUses dispatches use computation by concrete PE type/category.
func (a *Analyzer) computeUses(e pe.Element, out *UseSet) {
	switch node := e.(type) {
	case *pe.Expression:
		a.computeExprUses(node, out)
	case *pe.Statement:
		a.computeStmtUses(node, out)
	}
}

func (a *Analyzer) computeExprUses(e *pe.Expression, out *UseSet) {
	switch e.ExprKind {
	case pe.ExprAssignment:
		if len(e.Children) < 2 {
			return
		}
		out.AddAllPromoted(a.Uses(e.Children[1]), UseUse)
	case pe.ExprVariableDeclarationFrag:
		if len(e.Children) > 0 {
			out.AddAllPromoted(a.Uses(e.Children[0]), UseUse)
		}
	case pe.ExprPostfix, pe.ExprPrefix:
		for _, c := range e.Children {
			out.AddAllPromoted(a.Uses(c), UseUse)
		}
	case pe.ExprSimpleName:
		out.Add(e.Text(), bindScope(e.OwnerScope, e.Text(), false), UseMayUse, nil)
	case pe.ExprMethodInvocation, pe.ExprSuperMethodInvocation:
		if e.Qualifier != nil {
			out.AddAll(a.Uses(e.Qualifier))
		}
		for _, arg := range e.Children[1:] {
			out.AddAll(a.Uses(arg))
		}
	default:
		if e.Qualifier != nil {
			out.AddAll(a.Uses(e.Qualifier))
		}
		for _, c := range e.Children {
			out.AddAll(a.Uses(c))
		}
		anonymousBodyUses(a, e.AnonymousBody, out)
	}
}

func (a *Analyzer) computeStmtUses(s *pe.Statement, out *UseSet) {
	if s.Condition != nil {
		out.AddAll(a.Uses(s.Condition))
	}
	for _, c := range s.Children {
		out.AddAll(a.Uses(c))
	}
	for _, c := range s.Inits {
		out.AddAll(a.Uses(c))
	}
	for _, c := range s.Updaters {
		out.AddAll(a.Uses(c))
	}
}

package defuse_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PandaAwAke/PropertyGraph/defuse"
	"github.com/PandaAwAke/PropertyGraph/pe"
)

func simpleName(counter *pe.IDCounter, name string) *pe.Expression {
	e := pe.NewExpression(counter, nil, pe.ExprSimpleName)
	e.SetText(name)
	return e
}

func findDef(defs []defuse.VarDef, name string) (defuse.VarDef, bool) {
	for _, d := range defs {
		if d.MainName == name {
			return d, true
		}
	}
	return defuse.VarDef{}, false
}

func TestAssignment_LHSIsDef(t *testing.T) {
	counter := pe.NewIDCounter()
	lhs := simpleName(counter, "x")
	rhs := simpleName(counter, "y")
	assign := pe.NewExpression(counter, nil, pe.ExprAssignment)
	assign.Children = []pe.Element{lhs, rhs}

	a := defuse.New()
	defs := a.DefsAtLeastMayDef(assign)
	rec, ok := findDef(defs, "x")
	require.True(t, ok)
	assert.Equal(t, defuse.DefDef, rec.Kind)
}

func TestMethodInvocation_ExactNoDefName(t *testing.T) {
	counter := pe.NewIDCounter()
	receiver := simpleName(counter, "m")
	methodName := simpleName(counter, "size")
	call := pe.NewExpression(counter, nil, pe.ExprMethodInvocation)
	call.Qualifier = receiver
	call.Children = []pe.Element{methodName}

	a := defuse.New()
	all := a.Defs(call).All()
	rec, ok := findDef(all, "m")
	require.True(t, ok)
	assert.Equal(t, defuse.DefNoDef, rec.Kind)
	assert.Empty(t, a.DefsAtLeastMayDef(call))
}

func TestMethodInvocation_UnknownNameIsMayDef(t *testing.T) {
	counter := pe.NewIDCounter()
	receiver := simpleName(counter, "m")
	methodName := simpleName(counter, "frobnicate")
	arg := simpleName(counter, "x")
	call := pe.NewExpression(counter, nil, pe.ExprMethodInvocation)
	call.Qualifier = receiver
	call.Children = []pe.Element{methodName, arg}

	a := defuse.New()
	rec, ok := findDef(a.DefsAtLeastMayDef(call), "m")
	require.True(t, ok)
	assert.Equal(t, defuse.DefMayDef, rec.Kind)
}

func TestChainedCall_PromotesQualifierDefsToMayDef(t *testing.T) {
	counter := pe.NewIDCounter()
	a := simpleNameVar(counter, "a")
	getXName := simpleName(counter, "getX")
	getXCall := pe.NewExpression(counter, nil, pe.ExprMethodInvocation)
	getXCall.Qualifier = a
	getXCall.Children = []pe.Element{getXName}

	setName := simpleName(counter, "set")
	one := pe.NewExpression(counter, nil, pe.ExprNumber)
	one.SetText("1")
	setCall := pe.NewExpression(counter, nil, pe.ExprMethodInvocation)
	setCall.Qualifier = getXCall
	setCall.Children = []pe.Element{setName, one}

	analyzer := defuse.New()
	rec, ok := findDef(analyzer.DefsAtLeastMayDef(setCall), "a")
	require.True(t, ok)
	assert.GreaterOrEqual(t, rec.Kind, defuse.DefMayDef)
}

func simpleNameVar(counter *pe.IDCounter, name string) *pe.Expression {
	return simpleName(counter, name)
}

func TestNameOf_RecognizesFieldAccessOnThis(t *testing.T) {
	counter := pe.NewIDCounter()
	this := pe.NewExpression(counter, nil, pe.ExprThis)
	this.SetText("this")
	fa := pe.NewExpression(counter, nil, pe.ExprFieldAccess)
	fa.Qualifier = this
	fa.SetText("this.x")
	fieldName := simpleName(counter, "x")
	fa.Children = []pe.Element{fieldName}

	assign := pe.NewExpression(counter, nil, pe.ExprAssignment)
	assign.Children = []pe.Element{fa, simpleName(counter, "v")}

	a := defuse.New()
	rec, ok := findDef(a.DefsAtLeastMayDef(assign), "this.x")
	require.True(t, ok)
	assert.Equal(t, defuse.DefDef, rec.Kind)
}

func TestAssignment_LHSScopeResolvesToDeclaringBlock(t *testing.T) {
	counter := pe.NewIDCounter()
	method := pe.NewMethod(counter, nil, "m", false)
	methodScope := pe.NewScope(method, nil)
	methodScope.AddVariable("x")

	blockStmt := pe.NewStatement(counter, nil, pe.StmtSimpleBlock)
	blockScope := pe.NewScope(blockStmt, methodScope)

	lhs := simpleName(counter, "x")
	lhs.OwnerScope = blockScope
	rhs := simpleName(counter, "y")
	assign := pe.NewExpression(counter, nil, pe.ExprAssignment)
	assign.Children = []pe.Element{lhs, rhs}
	assign.OwnerScope = blockScope

	a := defuse.New()
	defs := a.DefsAtLeastMayDef(assign)
	rec, ok := findDef(defs, "x")
	require.True(t, ok)
	// "x" is declared in the enclosing method scope, not the inner block
	// scope the assignment itself was built in.
	assert.Same(t, methodScope, rec.Scope)
}

func TestAssignment_SiblingBlocksDoNotShareDeclarations(t *testing.T) {
	counter := pe.NewIDCounter()
	method := pe.NewMethod(counter, nil, "m", false)
	methodScope := pe.NewScope(method, nil)

	firstBlock := pe.NewStatement(counter, nil, pe.StmtSimpleBlock)
	firstScope := pe.NewScope(firstBlock, methodScope)
	firstScope.AddVariable("i")

	secondBlock := pe.NewStatement(counter, nil, pe.StmtSimpleBlock)
	secondScope := pe.NewScope(secondBlock, methodScope)

	lhs := simpleName(counter, "i")
	lhs.OwnerScope = secondScope
	assign := pe.NewExpression(counter, nil, pe.ExprAssignment)
	assign.Children = []pe.Element{lhs, simpleName(counter, "v")}
	assign.OwnerScope = secondScope

	a := defuse.New()
	rec, ok := findDef(a.DefsAtLeastMayDef(assign), "i")
	require.True(t, ok)
	// "i" was declared in a sibling block's scope, unreachable from
	// secondScope's parent chain, so it resolves to no declaring scope.
	assert.Nil(t, rec.Scope)
}

func TestPromotionNeverDemotes(t *testing.T) {
	assert.Equal(t, defuse.DefDef, defuse.PromoteDef(defuse.DefDef, defuse.DefNoDef))
	assert.Equal(t, defuse.DefDef, defuse.PromoteDef(defuse.DefNoDef, defuse.DefDef))
	assert.Equal(t, defuse.UseUse, defuse.PromoteUse(defuse.UseUse, defuse.UseMayUse))
}

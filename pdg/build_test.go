package pdg_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PandaAwAke/PropertyGraph/cfg"
	"github.com/PandaAwAke/PropertyGraph/defuse"
	"github.com/PandaAwAke/PropertyGraph/pdg"
	"github.com/PandaAwAke/PropertyGraph/pe"
)

func simpleName(counter *pe.IDCounter, name string) *pe.Expression {
	e := pe.NewExpression(counter, nil, pe.ExprSimpleName)
	e.SetText(name)
	return e
}

func number(counter *pe.IDCounter, text string) *pe.Expression {
	e := pe.NewExpression(counter, nil, pe.ExprNumber)
	e.SetText(text)
	return e
}

func hasDataEdgeTo(node *pdg.Node, to *pdg.Node, varName string) bool {
	for _, e := range node.Out() {
		if e.Kind == pdg.KindDataDependence && e.To == to && e.VarName == varName {
			return true
		}
	}
	return false
}

func hasExecutionEdgeTo(node *pdg.Node, to *pdg.Node) bool {
	for _, e := range node.Out() {
		if e.Kind == pdg.KindExecutionDependence && e.To == to {
			return true
		}
	}
	return false
}

// Scenario: void f(int x) { int y = x + 1; return; }
func TestBuild_SimpleAssignmentAndUse(t *testing.T) {
	counter := pe.NewIDCounter()
	m := pe.NewMethod(counter, nil, "f", false)
	xVar := pe.NewVariable(counter, nil, "x", pe.NewType(counter, nil, "int", 0), pe.CategoryParameter)
	m.Parameters = []*pe.Variable{xVar}

	infix := pe.NewExpression(counter, nil, pe.ExprInfix)
	infix.Op = pe.NewOperator(counter, nil, "+")
	infix.Children = []pe.Element{simpleName(counter, "x"), number(counter, "1")}

	frag := pe.NewExpression(counter, nil, pe.ExprVariableDeclarationFrag)
	frag.VarDecl = pe.NewVariable(counter, nil, "y", pe.NewType(counter, nil, "int", 0), pe.CategoryLocal)
	frag.Children = []pe.Element{infix}

	s1 := pe.NewStatement(counter, nil, pe.StmtVariableDeclaration)
	s1.Children = []pe.Element{frag}
	s2 := pe.NewStatement(counter, nil, pe.StmtReturn)

	m.AddStatement(s1)
	m.AddStatement(s2)

	cfgFactory := cfg.NewNodeFactory()
	pdgFactory := pdg.NewNodeFactory()
	analyzer := defuse.New()

	g, _ := pdg.Build(m, pdgFactory, cfgFactory, analyzer, pdg.DefaultOptions())

	require.Len(t, g.Parameters(), 1)
	paramX := g.Parameters()[0]

	s1Node := cfgFactory.GetNode(s1)
	require.NotNil(t, s1Node)
	s1Image := pdgFactory.GetImage(s1Node)
	require.NotNil(t, s1Image)

	assert.True(t, hasDataEdgeTo(paramX, s1Image, "x"))
	assert.True(t, hasExecutionEdgeTo(g.Enter, pdgFactory.GetImage(cfgFactory.GetNode(s1))))

	s2Node := cfgFactory.GetNode(s2)
	s2Image := pdgFactory.GetImage(s2Node)
	assert.True(t, hasExecutionEdgeTo(s1Image, s2Image))
}

// Scenario: void f() { int a = 1; a = 2; use(a); } with avoidDefPropagation
// toggled, per the def-kill short-circuit boundary behavior.
func buildDefKillMethod(counter *pe.IDCounter) (m *pe.Method, s1, s2, s3 *pe.Statement) {
	m = pe.NewMethod(counter, nil, "f", false)

	fragA := pe.NewExpression(counter, nil, pe.ExprVariableDeclarationFrag)
	fragA.VarDecl = pe.NewVariable(counter, nil, "a", pe.NewType(counter, nil, "int", 0), pe.CategoryLocal)
	fragA.Children = []pe.Element{number(counter, "1")}
	s1 = pe.NewStatement(counter, nil, pe.StmtVariableDeclaration)
	s1.Children = []pe.Element{fragA}

	assign := pe.NewExpression(counter, nil, pe.ExprAssignment)
	assign.Children = []pe.Element{simpleName(counter, "a"), number(counter, "2")}
	s2 = pe.NewStatement(counter, nil, pe.StmtExpression)
	s2.Children = []pe.Element{assign}

	call := pe.NewExpression(counter, nil, pe.ExprMethodInvocation)
	call.Children = []pe.Element{simpleName(counter, "use"), simpleName(counter, "a")}
	s3 = pe.NewStatement(counter, nil, pe.StmtExpression)
	s3.Children = []pe.Element{call}

	m.AddStatement(s1)
	m.AddStatement(s2)
	m.AddStatement(s3)
	return m, s1, s2, s3
}

func TestBuild_DefKillShortCircuit_AvoidTrue(t *testing.T) {
	counter := pe.NewIDCounter()
	m, s1, s2, s3 := buildDefKillMethod(counter)

	cfgFactory := cfg.NewNodeFactory()
	pdgFactory := pdg.NewNodeFactory()
	analyzer := defuse.New()
	opts := pdg.DefaultOptions()
	opts.AvoidDefPropagationWhenBuildingDataDependence = true

	_, _ = pdg.Build(m, pdgFactory, cfgFactory, analyzer, opts)

	s1Image := pdgFactory.GetImage(cfgFactory.GetNode(s1))
	s2Image := pdgFactory.GetImage(cfgFactory.GetNode(s2))
	s3Image := pdgFactory.GetImage(cfgFactory.GetNode(s3))

	assert.False(t, hasDataEdgeTo(s1Image, s3Image, "a"))
	assert.True(t, hasDataEdgeTo(s2Image, s3Image, "a"))
}

func TestBuild_DefKillShortCircuit_AvoidFalse(t *testing.T) {
	counter := pe.NewIDCounter()
	m, s1, s2, s3 := buildDefKillMethod(counter)

	cfgFactory := cfg.NewNodeFactory()
	pdgFactory := pdg.NewNodeFactory()
	analyzer := defuse.New()
	opts := pdg.DefaultOptions()
	opts.AvoidDefPropagationWhenBuildingDataDependence = false

	_, _ = pdg.Build(m, pdgFactory, cfgFactory, analyzer, opts)

	s1Image := pdgFactory.GetImage(cfgFactory.GetNode(s1))
	s2Image := pdgFactory.GetImage(cfgFactory.GetNode(s2))
	s3Image := pdgFactory.GetImage(cfgFactory.GetNode(s3))

	assert.True(t, hasDataEdgeTo(s1Image, s3Image, "a"))
	assert.True(t, hasDataEdgeTo(s2Image, s3Image, "a"))
}

func TestBuild_EmptyMethod_OnlyEnterAndParameters(t *testing.T) {
	counter := pe.NewIDCounter()
	m := pe.NewMethod(counter, nil, "f", false)
	xVar := pe.NewVariable(counter, nil, "x", pe.NewType(counter, nil, "int", 0), pe.CategoryParameter)
	m.Parameters = []*pe.Variable{xVar}

	g, _ := pdg.Build(m, pdg.NewNodeFactory(), cfg.NewNodeFactory(), defuse.New(), pdg.DefaultOptions())

	require.NotNil(t, g.Enter)
	assert.Empty(t, g.ExitNodes())
	require.Len(t, g.Parameters(), 1)
}

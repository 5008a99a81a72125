package dot_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PandaAwAke/PropertyGraph/cfg"
	"github.com/PandaAwAke/PropertyGraph/defuse"
	"github.com/PandaAwAke/PropertyGraph/dot"
	"github.com/PandaAwAke/PropertyGraph/pdg"
	"github.com/PandaAwAke/PropertyGraph/pe"
)

func buildSimpleMethod() *pe.Method {
	counter := pe.NewIDCounter()
	m := pe.NewMethod(counter, nil, "f", false)
	s0 := pe.NewStatement(counter, nil, pe.StmtExpression)
	m.AddStatement(s0)
	s1 := pe.NewStatement(counter, nil, pe.StmtReturn)
	m.AddStatement(s1)
	return m
}

func TestCFG_RendersEnterAndExitFill(t *testing.T) {
	m := buildSimpleMethod()
	factory := cfg.NewNodeFactory()
	g := cfg.Build(m, factory)

	out := dot.CFG("f", g)
	require.True(t, strings.HasPrefix(out, "digraph f {\n"))
	assert.Contains(t, out, "fillcolor=aquamarine")
	assert.Contains(t, out, "fillcolor=deeppink")
	assert.True(t, strings.HasSuffix(out, "}\n"))
}

func TestCFG_EscapesQuotesInLabel(t *testing.T) {
	counter := pe.NewIDCounter()
	m := pe.NewMethod(counter, nil, "f", false)
	s1 := pe.NewStatement(counter, nil, pe.StmtExpression)
	s1.SetText(`call("x")`)
	m.AddStatement(s1)

	factory := cfg.NewNodeFactory()
	g := cfg.Build(m, factory)

	out := dot.CFG("f", g)
	assert.Contains(t, out, `call(\"x\")`)
}

func TestPDG_RendersParameterAndDataEdgeLabel(t *testing.T) {
	counter := pe.NewIDCounter()
	m := pe.NewMethod(counter, nil, "f", false)
	xVar := pe.NewVariable(counter, nil, "x", pe.NewType(counter, nil, "int", 0), pe.CategoryParameter)
	m.Parameters = []*pe.Variable{xVar}

	name := pe.NewExpression(counter, nil, pe.ExprSimpleName)
	name.SetText("x")
	frag := pe.NewExpression(counter, nil, pe.ExprVariableDeclarationFrag)
	frag.VarDecl = pe.NewVariable(counter, nil, "y", pe.NewType(counter, nil, "int", 0), pe.CategoryLocal)
	frag.Children = []pe.Element{name}
	s1 := pe.NewStatement(counter, nil, pe.StmtVariableDeclaration)
	s1.Children = []pe.Element{frag}
	m.AddStatement(s1)

	cfgFactory := cfg.NewNodeFactory()
	pdgFactory := pdg.NewNodeFactory()
	g, _ := pdg.Build(m, pdgFactory, cfgFactory, defuse.New(), pdg.DefaultOptions())

	out := dot.PDG("f", g)
	assert.Contains(t, out, `label="x"`)
	assert.Contains(t, out, `label="enter"`)
}

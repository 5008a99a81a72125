package astbuild_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PandaAwAke/PropertyGraph/astbuild"
	"github.com/PandaAwAke/PropertyGraph/javaast"
	"github.com/PandaAwAke/PropertyGraph/pe"
)

const source = `
class Calculator {
    int add(int a, int b) {
        int sum = a + b;
        if (sum > 0) {
            return sum;
        } else {
            return 0;
        }
    }

    void loopOver(int n) {
        for (int i = 0; i < n; i++) {
            System.out.println(i);
        }
    }
}
`

const siblingLoopsSource = `
class Looper {
    void twoLoops() {
        for (int i = 0; i < 10; i++) {
            System.out.println(i);
        }
        for (int i = 10; i > 0; i--) {
            System.out.println(i);
        }
    }
}
`

func buildClasses(t *testing.T, src string) []*pe.Class {
	t.Helper()
	unit, err := javaast.Parse(context.Background(), []byte(src))
	require.NoError(t, err)
	defer unit.Close()
	return astbuild.BuildClasses(pe.NewIDCounter(), []byte(src), unit.Root())
}

func TestBuildClasses_SingleClassTwoMethods(t *testing.T) {
	classes := buildClasses(t, source)
	require.Len(t, classes, 1)
	class := classes[0]
	assert.Equal(t, "Calculator", class.Name)
	require.Len(t, class.Methods, 2)
	assert.Equal(t, "add", class.Methods[0].Name)
	assert.Equal(t, "loopOver", class.Methods[1].Name)
}

func TestBuildClasses_MethodParametersBound(t *testing.T) {
	classes := buildClasses(t, source)
	add := classes[0].Methods[0]
	require.Len(t, add.Parameters, 2)
	assert.Equal(t, "a", add.Parameters[0].Name)
	assert.Equal(t, "b", add.Parameters[1].Name)
	assert.Equal(t, "int", add.Parameters[0].VarType.Name)
}

func TestBuildClasses_IfStatementHasConditionAndElseBody(t *testing.T) {
	classes := buildClasses(t, source)
	add := classes[0].Methods[0]
	require.Len(t, add.Statements(), 2)

	ifStmt := add.Statements()[1]
	assert.Equal(t, pe.StmtIf, ifStmt.StmtKind)
	require.NotNil(t, ifStmt.Condition)
	require.Len(t, ifStmt.Statements(), 1)
	require.Len(t, ifStmt.ElseBody, 1)
	assert.Equal(t, pe.StmtReturn, ifStmt.Statements()[0].StmtKind)
	assert.Equal(t, pe.StmtReturn, ifStmt.ElseBody[0].StmtKind)
}

func TestBuildClasses_ForLoopHasInitConditionUpdaters(t *testing.T) {
	classes := buildClasses(t, source)
	loopOver := classes[0].Methods[1]
	require.Len(t, loopOver.Statements(), 1)

	forStmt := loopOver.Statements()[0]
	assert.Equal(t, pe.StmtFor, forStmt.StmtKind)
	assert.Len(t, forStmt.Inits, 1)
	require.NotNil(t, forStmt.Condition)
	assert.Len(t, forStmt.Updaters, 1)
	require.Len(t, forStmt.Statements(), 1)
}

func TestBuildClasses_SiblingForLoopsGetDistinctScopes(t *testing.T) {
	classes := buildClasses(t, siblingLoopsSource)
	method := classes[0].Methods[0]
	require.Len(t, method.Statements(), 2)

	first, second := method.Statements()[0], method.Statements()[1]
	require.Equal(t, pe.StmtFor, first.StmtKind)
	require.Equal(t, pe.StmtFor, second.StmtKind)
	require.Len(t, first.Inits, 1)
	require.Len(t, second.Inits, 1)

	firstInit, ok := first.Inits[0].(*pe.Statement)
	require.True(t, ok)
	secondInit, ok := second.Inits[0].(*pe.Statement)
	require.True(t, ok)
	require.NotNil(t, firstInit.OwnerScope)
	require.NotNil(t, secondInit.OwnerScope)

	// Each loop's "i" lives in its own scope, not the shared method scope.
	assert.NotSame(t, firstInit.OwnerScope, secondInit.OwnerScope)
	assert.True(t, firstInit.OwnerScope.HasVariableDirectly("i"))
	assert.True(t, secondInit.OwnerScope.HasVariableDirectly("i"))

	methodScope := first.OwnerScope
	require.NotNil(t, methodScope)
	assert.Same(t, methodScope, firstInit.OwnerScope.Parent)
	assert.Same(t, methodScope, secondInit.OwnerScope.Parent)
	assert.False(t, methodScope.HasVariableDirectly("i"))
}

func TestBuildClasses_NilRootReturnsEmpty(t *testing.T) {
	classes := astbuild.BuildClasses(pe.NewIDCounter(), nil, nil)
	assert.Empty(t, classes)
}

func TestBuildClasses_MalformedSnippetDegradesGracefully(t *testing.T) {
	// Top-level statements outside any class/method are unsupported
	// constructs at this position; BuildClasses must not panic, and must
	// simply contribute no classes.
	classes := buildClasses(t, "int x = 1;")
	assert.Empty(t, classes)
}

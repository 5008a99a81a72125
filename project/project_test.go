package project_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PandaAwAke/PropertyGraph/pdg"
	"github.com/PandaAwAke/PropertyGraph/project"
	"github.com/PandaAwAke/PropertyGraph/source"
)

const sampleSource = `
package sample;

class Greeter {
    int pick(int x) {
        int y = x + 1;
        if (y > 0) {
            return y;
        }
        return -1;
    }
}
`

func TestBuild_SingleFileSingleMethod(t *testing.T) {
	units := []*source.Unit{{URL: "mem://Greeter.java", Source: []byte(sampleSource)}}

	proj, err := project.Build(context.Background(), units, pdg.DefaultOptions())
	require.NoError(t, err)
	require.Len(t, proj.Files, 1)

	file := proj.Files[0]
	assert.Equal(t, "mem://Greeter.java", file.URL)
	require.Len(t, file.Classes, 1)
	assert.Equal(t, "Greeter", file.Classes[0].Name)

	require.Len(t, file.Methods, 1)
	mg := file.Methods[0]
	assert.Equal(t, "pick", mg.Method.Name)
	require.NotNil(t, mg.CFG)
	require.NotNil(t, mg.PDG)
	assert.NotEmpty(t, mg.CFG.Nodes())
	require.Len(t, mg.PDG.Parameters(), 1)
}

func TestBuild_MultipleFilesShareIDCounter(t *testing.T) {
	units := []*source.Unit{
		{URL: "mem://A.java", Source: []byte("class A { void a() { return; } }")},
		{URL: "mem://B.java", Source: []byte("class B { void b() { return; } }")},
	}

	proj, err := project.Build(context.Background(), units, pdg.DefaultOptions())
	require.NoError(t, err)
	require.Len(t, proj.Files, 2)

	idA := proj.Files[0].Classes[0].ID()
	idB := proj.Files[1].Classes[0].ID()
	assert.NotEqual(t, idA, idB)
}

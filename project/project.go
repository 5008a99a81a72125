// Package project aggregates multiple Java compilation units into one PE
// forest and runs the CFG/PDG pipeline per method across the whole tree,
// mirroring inspector/java/project.go + inspector/graph/project.go's
// package-level aggregation shape adapted from a declaration tree to a
// dependence-graph tree. Each method is still built purely
// intra-procedurally (no cross-method analysis): this is a sequencing
// convenience, not a scope expansion of the analyses themselves.
package project

import (
	"context"

	"github.com/pkg/errors"

	"github.com/PandaAwAke/PropertyGraph/astbuild"
	"github.com/PandaAwAke/PropertyGraph/cfg"
	"github.com/PandaAwAke/PropertyGraph/defuse"
	"github.com/PandaAwAke/PropertyGraph/javaast"
	"github.com/PandaAwAke/PropertyGraph/pdg"
	"github.com/PandaAwAke/PropertyGraph/pe"
	"github.com/PandaAwAke/PropertyGraph/source"
)

// File is one compilation unit's PE classes plus the method-level graphs
// built from them.
type File struct {
	URL     string
	Classes []*pe.Class
	Methods []*MethodGraphs
}

// MethodGraphs bundles one method's PE, CFG and PDG together, along with the
// def/use analyzer that produced the PDG's data edges (useful for callers
// inspecting defs/uses directly).
type MethodGraphs struct {
	Class    *pe.Class
	Method   *pe.Method
	CFG      *cfg.CFG
	PDG      *pdg.PDG
	Analyzer *defuse.Analyzer
}

// Project is the PE+graph forest built from a set of compilation units,
// sharing one IDCounter so PE ids stay process-wide unique across files.
type Project struct {
	Counter *pe.IDCounter
	Files   []*File
}

// Build parses each unit, builds its PE class forest, and runs the CFG/PDG
// pipeline over every method found, in unit order (§5's sequential
// scheduling model — no concurrency across units or methods).
func Build(ctx context.Context, units []*source.Unit, opts pdg.Options) (*Project, error) {
	counter := pe.NewIDCounter()
	proj := &Project{Counter: counter}

	for _, u := range units {
		unit, err := javaast.Parse(ctx, u.Source)
		if err != nil {
			return nil, errors.Wrapf(err, "parse %s", u.URL)
		}
		classes := astbuild.BuildClasses(counter, u.Source, unit.Root())
		unit.Close()

		file := &File{URL: u.URL, Classes: classes}
		for _, class := range classes {
			for _, method := range class.Methods {
				cfgFactory := cfg.NewNodeFactory()
				pdgFactory := pdg.NewNodeFactory()
				analyzer := defuse.New()
				g, builtCFG := pdg.Build(method, pdgFactory, cfgFactory, analyzer, opts)
				file.Methods = append(file.Methods, &MethodGraphs{
					Class:    class,
					Method:   method,
					CFG:      builtCFG,
					PDG:      g,
					Analyzer: analyzer,
				})
			}
		}
		proj.Files = append(proj.Files, file)
	}
	return proj, nil
}

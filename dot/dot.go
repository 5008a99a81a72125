// Package dot renders a CFG or PDG as Graphviz dot text: the reference
// external-collaborator serialization described alongside the graph model,
// grounded on analyzer/graph_exporter.go's IRNode/IREdge/IRGraph shape,
// adapted from linage identifiers to CFG/PDG nodes. Exact output syntax is
// not a contract any other package depends on.
package dot

import (
	"fmt"
	"sort"
	"strings"

	"github.com/PandaAwAke/PropertyGraph/cfg"
	"github.com/PandaAwAke/PropertyGraph/pdg"
)

func escape(s string) string {
	return strings.ReplaceAll(s, `"`, `\"`)
}

// CFG renders g as a dot digraph named name.
func CFG(name string, g *cfg.CFG) string {
	exit := map[*cfg.Node]bool{}
	for _, n := range g.ExitNodes() {
		exit[n] = true
	}

	var b strings.Builder
	fmt.Fprintf(&b, "digraph %s {\n", name)

	nodes := append([]*cfg.Node{}, g.Nodes()...)
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].ID() < nodes[j].ID() })

	for _, n := range nodes {
		label := n.Label
		if n.Core != nil {
			label = n.Core.Text()
		}
		shape := "ellipse"
		if n.Kind == cfg.KindControl {
			shape = "diamond"
		}
		fill := "white"
		if n == g.Enter {
			fill = "aquamarine"
		} else if exit[n] {
			fill = "deeppink"
		}
		fmt.Fprintf(&b, "  n%d [label=\"%s\", shape=%s, style=filled, fillcolor=%s];\n",
			n.ID(), escape(label), shape, fill)
	}

	for _, n := range nodes {
		for _, e := range n.Out() {
			label := cfgEdgeLabel(e)
			fmt.Fprintf(&b, "  n%d -> n%d [label=\"%s\"];\n", e.From.ID(), e.To.ID(), escape(label))
		}
	}

	b.WriteString("}\n")
	return b.String()
}

func cfgEdgeLabel(e cfg.Edge) string {
	switch e.Kind {
	case cfg.KindControlEdge:
		if e.HasBoolLabel {
			if e.BoolLabel {
				return "true"
			}
			return "false"
		}
		return ""
	case cfg.KindJump:
		return "jump"
	default:
		return ""
	}
}

// PDG renders g as a dot digraph named name.
func PDG(name string, g *pdg.PDG) string {
	exit := map[*pdg.Node]bool{}
	for _, n := range g.ExitNodes() {
		exit[n] = true
	}

	nodes := collectPDGNodes(g)

	var b strings.Builder
	fmt.Fprintf(&b, "digraph %s {\n", name)

	for _, n := range nodes {
		label := pdgNodeLabel(n)
		shape := "ellipse"
		if n.CFGNode != nil && n.CFGNode.Kind == cfg.KindControl {
			shape = "diamond"
		}
		fill := "white"
		if n == g.Enter {
			fill = "aquamarine"
		} else if exit[n] {
			fill = "deeppink"
		}
		fmt.Fprintf(&b, "  n%d [label=\"%s\", shape=%s, style=filled, fillcolor=%s];\n",
			n.ID(), escape(label), shape, fill)
	}

	for _, n := range nodes {
		for _, e := range n.Out() {
			label := pdgEdgeLabel(e)
			fmt.Fprintf(&b, "  n%d -> n%d [label=\"%s\"];\n", e.From.ID(), e.To.ID(), escape(label))
		}
	}

	b.WriteString("}\n")
	return b.String()
}

func pdgNodeLabel(n *pdg.Node) string {
	switch n.Kind {
	case pdg.KindMethodEnter:
		return "enter"
	case pdg.KindParameter:
		if n.Param != nil {
			return n.Param.Name
		}
		return "param"
	default:
		if n.CFGNode != nil {
			if n.CFGNode.Core != nil {
				return n.CFGNode.Core.Text()
			}
			return n.CFGNode.Label
		}
		return ""
	}
}

func pdgEdgeLabel(e pdg.Edge) string {
	switch e.Kind {
	case pdg.KindControlDependence:
		if e.HasBoolLabel {
			if e.BoolLabel {
				return "true"
			}
			return "false"
		}
		return ""
	case pdg.KindDataDependence:
		return e.VarName
	default:
		return ""
	}
}

// collectPDGNodes gathers enter, parameters, and every node reachable from
// enter by forward (execution/control/data) edges, sorted by id. Parameters
// aren't always forward-reachable (e.g. all three dependence kinds off), so
// they're seeded explicitly rather than relying on reachability alone.
func collectPDGNodes(g *pdg.PDG) []*pdg.Node {
	seen := map[*pdg.Node]bool{}
	var out []*pdg.Node
	add := func(n *pdg.Node) {
		if n != nil && !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}

	add(g.Enter)
	for _, p := range g.Parameters() {
		add(p)
	}
	for n := range pdg.GetReachableNodes(g.Enter) {
		add(n)
	}
	for _, p := range g.Parameters() {
		for n := range pdg.GetReachableNodes(p) {
			add(n)
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}

// Package pdg builds the program dependence graph for a method: a
// one-to-one overlay of its control-flow graph plus a synthetic method-enter
// node and one parameter node per formal, connected by control, data, and
// execution dependence edges.
package pdg

import (
	"sort"

	"github.com/PandaAwAke/PropertyGraph/cfg"
	"github.com/PandaAwAke/PropertyGraph/pe"
)

// NodeKind discriminates the three PDG node roles.
type NodeKind int

const (
	KindImage NodeKind = iota
	KindMethodEnter
	KindParameter
)

// Node is a PDG vertex: either the one-to-one image of a CFG node, the
// synthetic method-enter node, or a parameter node.
type Node struct {
	id int64

	Kind NodeKind

	// CFGNode is set for KindImage, nil otherwise.
	CFGNode *cfg.Node

	// Param is set for KindParameter, nil otherwise.
	Param *pe.Variable

	out []Edge
	in  []Edge
}

func (n *Node) ID() int64 { return n.id }

// EdgeKind discriminates the three independently-enabled dependence kinds.
type EdgeKind int

const (
	KindControlDependence EdgeKind = iota
	KindDataDependence
	KindExecutionDependence
)

// Edge is a directed PDG edge. HasBoolLabel/BoolLabel apply only to
// ControlDependenceEdge; VarName applies only to DataDependenceEdge.
type Edge struct {
	From, To     *Node
	Kind         EdgeKind
	HasBoolLabel bool
	BoolLabel    bool
	VarName      string
}

func (e Edge) less(o Edge) bool {
	if e.From.id != o.From.id {
		return e.From.id < o.From.id
	}
	if e.To.id != o.To.id {
		return e.To.id < o.To.id
	}
	return e.Kind < o.Kind
}

// Out returns the node's outgoing edges sorted by (from.id, to.id, kindTag).
func (n *Node) Out() []Edge {
	sort.Slice(n.out, func(i, j int) bool { return n.out[i].less(n.out[j]) })
	return n.out
}

// In returns the node's incoming edges sorted the same way.
func (n *Node) In() []Edge {
	sort.Slice(n.in, func(i, j int) bool { return n.in[i].less(n.in[j]) })
	return n.in
}

func (n *Node) addOut(e Edge) { n.out = append(n.out, e) }
func (n *Node) addIn(e Edge)  { n.in = append(n.in, e) }

// Forward returns successor nodes, used by reachability.
func (n *Node) Forward() []*Node {
	out := make([]*Node, 0, len(n.out))
	for _, e := range n.Out() {
		out = append(out, e.To)
	}
	return out
}

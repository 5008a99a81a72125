package pdg

import (
	"github.com/PandaAwAke/PropertyGraph/graphutil"
	"github.com/PandaAwAke/PropertyGraph/pe"
)

// PDG is the program dependence graph of a single method.
type PDG struct {
	Method  *pe.Method
	Factory *NodeFactory

	Enter *Node

	exitNodes  []*Node
	parameters []*Node
}

// ExitNodes returns the PDG images of the CFG's exit nodes.
func (g *PDG) ExitNodes() []*Node { return g.exitNodes }

// Parameters returns the parameter nodes in declaration order.
func (g *PDG) Parameters() []*Node { return g.parameters }

// GetReachableNodes returns the closure of from under forward edges.
func GetReachableNodes(from *Node) map[*Node]bool {
	return graphutil.Reachable(from, func(n *Node) []*Node { return n.Forward() })
}

package cfg

import "github.com/PandaAwAke/PropertyGraph/graphutil"

// CFG is the control-flow graph of a single method: an enter node, a sorted
// set of exit nodes (statements whose control flow leaves the method), and
// the full, sorted set of nodes belonging to the graph.
type CFG struct {
	Factory *NodeFactory

	Enter *Node

	exitNodes []*Node
	nodes     []*Node
}

// ExitNodes returns the sorted exit-node set.
func (g *CFG) ExitNodes() []*Node { return g.exitNodes }

// Nodes returns the full, sorted node set.
func (g *CFG) Nodes() []*Node { return g.nodes }

// GetReachableNodes returns the closure of from under forward edges.
func GetReachableNodes(from *Node) map[*Node]bool {
	return graphutil.Reachable(from, func(n *Node) []*Node { return n.Forward() })
}

// UnreachableNodes returns the nodes of g not reachable from its enter
// node, used by the PDG builder to process dead code defensively.
func (g *CFG) UnreachableNodes() []*Node {
	reach := GetReachableNodes(g.Enter)
	var out []*Node
	for _, n := range g.nodes {
		if !reach[n] {
			out = append(out, n)
		}
	}
	return out
}

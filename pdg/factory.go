package pdg

import (
	"github.com/PandaAwAke/PropertyGraph/cfg"
	"github.com/PandaAwAke/PropertyGraph/pe"
)

// NodeFactory maintains the 1:1 image cache from CFG nodes to PDG nodes,
// plus the lazily-created method-enter node and per-parameter nodes.
type NodeFactory struct {
	nextID int64

	images map[*cfg.Node]*Node
	enter  *Node
	params map[int64]*Node // keyed by pe.Variable id
}

// NewNodeFactory returns an empty factory.
func NewNodeFactory() *NodeFactory {
	return &NodeFactory{images: map[*cfg.Node]*Node{}, params: map[int64]*Node{}}
}

func (f *NodeFactory) alloc(kind NodeKind) *Node {
	f.nextID++
	return &Node{id: f.nextID, Kind: kind}
}

// Image returns the cached PDG node overlaying cfgNode, creating it if
// necessary.
func (f *NodeFactory) Image(cfgNode *cfg.Node) *Node {
	if cfgNode == nil {
		return nil
	}
	if n, ok := f.images[cfgNode]; ok {
		return n
	}
	n := f.alloc(KindImage)
	n.CFGNode = cfgNode
	f.images[cfgNode] = n
	return n
}

// GetImage returns the cached image without creating one.
func (f *NodeFactory) GetImage(cfgNode *cfg.Node) *Node {
	if cfgNode == nil {
		return nil
	}
	return f.images[cfgNode]
}

// Enter returns the synthetic method-enter node, creating it on first call.
func (f *NodeFactory) Enter() *Node {
	if f.enter == nil {
		f.enter = f.alloc(KindMethodEnter)
	}
	return f.enter
}

// Parameter returns the cached parameter node for v, creating it if
// necessary.
func (f *NodeFactory) Parameter(v *pe.Variable) *Node {
	if v == nil {
		return nil
	}
	if n, ok := f.params[v.ID()]; ok {
		return n
	}
	n := f.alloc(KindParameter)
	n.Param = v
	f.params[v.ID()] = n
	return n
}

package cfg

import "github.com/PandaAwAke/PropertyGraph/pe"

// NodeFactory coalesces PEs to CFG nodes: a given PE id maps to at most one
// normal-role node and at most one control-role node. Pseudo nodes (built
// from a nil PE) are never cached and are always fresh.
type NodeFactory struct {
	nextID  int64
	normal  map[int64]*Node
	control map[int64]*Node
}

// NewNodeFactory returns an empty factory.
func NewNodeFactory() *NodeFactory {
	return &NodeFactory{normal: map[int64]*Node{}, control: map[int64]*Node{}}
}

func (f *NodeFactory) alloc(kind NodeKind, core pe.Element) *Node {
	f.nextID++
	return &Node{id: f.nextID, Kind: kind, Core: core}
}

// normalKindFor maps a non-control PE to the node kind a "normal" role node
// takes for it.
func normalKindFor(core pe.Element) NodeKind {
	if core == nil {
		return KindPseudo
	}
	if stmt, ok := core.(*pe.Statement); ok {
		switch stmt.StmtKind {
		case pe.StmtBreak:
			return KindBreak
		case pe.StmtContinue:
			return KindContinue
		case pe.StmtCase:
			return KindSwitchCase
		}
	}
	if _, ok := core.(*pe.Expression); ok {
		return KindExpression
	}
	return KindStatement
}

// MakeNormalNode returns the cached normal-role node for core, or creates
// and caches a new one. A nil core always allocates a fresh, uncached
// pseudo node.
func (f *NodeFactory) MakeNormalNode(core pe.Element) *Node {
	if core == nil {
		return f.alloc(KindPseudo, nil)
	}
	if n, ok := f.normal[core.ID()]; ok {
		return n
	}
	n := f.alloc(normalKindFor(core), core)
	f.normal[core.ID()] = n
	return n
}

// MakeControlNode returns the cached control-role node for core, or creates
// and caches a new one. A nil core always allocates a fresh, uncached
// pseudo node.
func (f *NodeFactory) MakeControlNode(core pe.Element) *Node {
	if core == nil {
		return f.alloc(KindPseudo, nil)
	}
	if n, ok := f.control[core.ID()]; ok {
		return n
	}
	n := f.alloc(KindControl, core)
	f.control[core.ID()] = n
	return n
}

// GetNode returns the cached normal-role node for core without creating
// one, or nil on miss.
func (f *NodeFactory) GetNode(core pe.Element) *Node {
	if core == nil {
		return nil
	}
	return f.normal[core.ID()]
}

// GetControlNode returns the cached control-role node for core without
// creating one, or nil on miss.
func (f *NodeFactory) GetControlNode(core pe.Element) *Node {
	if core == nil {
		return nil
	}
	return f.control[core.ID()]
}

// RemoveNode drops the normal/control mappings for core. It does not touch
// any edge referencing the node; callers using this for graph trimming are
// responsible for edge consistency.
func (f *NodeFactory) RemoveNode(core pe.Element) {
	if core == nil {
		return
	}
	delete(f.normal, core.ID())
	delete(f.control, core.ID())
}

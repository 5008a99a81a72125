package pdg

import (
	"sort"

	"github.com/PandaAwAke/PropertyGraph/cfg"
	"github.com/PandaAwAke/PropertyGraph/defuse"
	"github.com/PandaAwAke/PropertyGraph/pe"
)

// Options are the build-time switches shaping which dependence kinds are
// layered onto the CFG, and how aggressively.
type Options struct {
	BuildControl   bool
	BuildData      bool
	BuildExecution bool

	// ControlDependenceFromEnterToAllNodes adds control edges from the
	// method-enter node to every statement reachable from the body.
	ControlDependenceFromEnterToAllNodes bool

	// ControlDependenceFromEnterToParameterNodes adds true-labeled control
	// edges from enter to each parameter node.
	ControlDependenceFromEnterToParameterNodes bool

	// AvoidDefPropagationWhenBuildingDataDependence stops the per-variable
	// reachability walk at a node that redefines the variable.
	AvoidDefPropagationWhenBuildingDataDependence bool
}

// DefaultOptions returns the conservative defaults: all three dependence
// kinds enabled, both enter-seeding switches off, def-kill short-circuit on.
func DefaultOptions() Options {
	return Options{
		BuildControl:   true,
		BuildData:      true,
		BuildExecution: true,
		AvoidDefPropagationWhenBuildingDataDependence: true,
	}
}

var branchOrLoopKinds = map[pe.StatementKind]bool{
	pe.StmtCatch: true, pe.StmtDo: true, pe.StmtFor: true, pe.StmtForeach: true,
	pe.StmtIf: true, pe.StmtSimpleBlock: true, pe.StmtSynchronized: true,
	pe.StmtSwitch: true, pe.StmtTry: true, pe.StmtWhile: true,
}

var leafExecutableKinds = map[pe.StatementKind]bool{
	pe.StmtAssert: true, pe.StmtBreak: true, pe.StmtCase: true, pe.StmtContinue: true,
	pe.StmtExpression: true, pe.StmtReturn: true, pe.StmtThrow: true,
	pe.StmtVariableDeclaration: true,
}

// Build constructs the PDG for method, along with the CFG it was built on
// top of (cfg.Build must only run once per factory/method pair, so this is
// the only supported way for a caller to get both graphs for one method).
func Build(method *pe.Method, pdgFactory *NodeFactory, cfgFactory *cfg.NodeFactory, analyzer *defuse.Analyzer, opts Options) (*PDG, *cfg.CFG) {
	g := cfg.Build(method, cfgFactory)
	b := &builder{
		cfgFactory: cfgFactory,
		pdgFactory: pdgFactory,
		analyzer:   analyzer,
		opts:       opts,
	}

	enter := pdgFactory.Enter()

	params := make([]*Node, 0, len(method.Parameters))
	for _, p := range method.Parameters {
		params = append(params, pdgFactory.Parameter(p))
	}

	if opts.BuildControl {
		if opts.ControlDependenceFromEnterToAllNodes {
			for _, n := range sortedNodes(g.Nodes()) {
				b.addControlEdgePlain(enter, pdgFactory.Image(n))
			}
		}
		if opts.ControlDependenceFromEnterToParameterNodes {
			for _, pn := range params {
				b.addControlEdge(enter, pn, true)
			}
		}
	}

	if opts.BuildExecution {
		b.addExecutionEdge(enter, pdgFactory.Image(g.Enter))
	}

	if opts.BuildData {
		for i, p := range method.Parameters {
			paramNode := params[i]
			b.addDataEdge(enter, paramNode, p.Name)
			visited := map[*cfg.Node]bool{}
			b.buildDataDependence(g.Enter, paramNode, p.Name, visited)
		}
	}

	reach := cfg.GetReachableNodes(g.Enter)
	reachList := make([]*cfg.Node, 0, len(reach))
	for n := range reach {
		reachList = append(reachList, n)
	}
	for _, n := range sortedNodes(reachList) {
		b.processNode(n)
	}
	for _, n := range g.UnreachableNodes() {
		b.processNode(n)
	}

	exits := make([]*Node, 0, len(g.ExitNodes()))
	for _, n := range g.ExitNodes() {
		exits = append(exits, pdgFactory.Image(n))
	}

	return &PDG{Method: method, Factory: pdgFactory, Enter: enter, exitNodes: exits, parameters: params}, g
}

func sortedNodes(nodes []*cfg.Node) []*cfg.Node {
	out := append([]*cfg.Node{}, nodes...)
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}

type builder struct {
	cfgFactory *cfg.NodeFactory
	pdgFactory *NodeFactory
	analyzer   *defuse.Analyzer
	opts       Options
}

func (b *builder) addControlEdge(from, to *Node, label bool) {
	if from == nil || to == nil {
		return
	}
	e := Edge{From: from, To: to, Kind: KindControlDependence, HasBoolLabel: true, BoolLabel: label}
	from.addOut(e)
	to.addIn(e)
}

func (b *builder) addControlEdgePlain(from, to *Node) {
	if from == nil || to == nil {
		return
	}
	e := Edge{From: from, To: to, Kind: KindControlDependence}
	from.addOut(e)
	to.addIn(e)
}

func (b *builder) addDataEdge(from, to *Node, varName string) {
	if from == nil || to == nil {
		return
	}
	e := Edge{From: from, To: to, Kind: KindDataDependence, VarName: varName}
	from.addOut(e)
	to.addIn(e)
}

func (b *builder) addExecutionEdge(from, to *Node) {
	if from == nil || to == nil {
		return
	}
	e := Edge{From: from, To: to, Kind: KindExecutionDependence}
	from.addOut(e)
	to.addIn(e)
}

// processNode applies the per-CFG-node data/control/execution rules.
func (b *builder) processNode(n *cfg.Node) {
	src := b.pdgFactory.Image(n)

	if b.opts.BuildData {
		assigned := b.analyzer.AssignedVariables(n.Core)
		for v := range assigned {
			for _, succ := range n.Forward() {
				visited := map[*cfg.Node]bool{}
				b.buildDataDependence(succ, src, v, visited)
			}
		}
	}

	if b.opts.BuildControl && n.Kind == cfg.KindControl {
		if owner := n.Core.ConditionalOwner(); owner != nil {
			b.dispatchBlock(src, true, owner.Statements())
			b.dispatchBlock(src, false, owner.ElseBody)
			for _, u := range owner.Updaters {
				if un := b.cfgFactory.GetNode(u); un != nil {
					b.addControlEdge(src, b.pdgFactory.Image(un), true)
				}
			}
		}
	}

	if b.opts.BuildExecution {
		for _, succ := range n.Forward() {
			b.addExecutionEdge(src, b.pdgFactory.Image(succ))
		}
	}
}

// buildDataDependence is the per-variable reachability walk: it adds a data
// edge to every CFG node referencing v reachable from cfgNode without
// crossing a redefinition of v (when AvoidDefPropagation is set).
func (b *builder) buildDataDependence(cfgNode *cfg.Node, fromPDG *Node, v string, visited map[*cfg.Node]bool) {
	if cfgNode == nil || visited[cfgNode] {
		return
	}
	visited[cfgNode] = true

	if b.analyzer.ReferencedVariables(cfgNode.Core)[v] {
		b.addDataEdge(fromPDG, b.pdgFactory.Image(cfgNode), v)
	}
	if b.opts.AvoidDefPropagationWhenBuildingDataDependence && b.analyzer.AssignedVariables(cfgNode.Core)[v] {
		return
	}
	for _, succ := range cfgNode.Forward() {
		b.buildDataDependence(succ, fromPDG, v, visited)
	}
}

// dispatchBlock applies dispatchOne to every statement in stmts.
func (b *builder) dispatchBlock(source *Node, label bool, stmts []*pe.Statement) {
	for _, t := range stmts {
		b.dispatchOne(source, label, t)
	}
}

// dispatchOne implements the control-edge dispatch-by-target-category rule.
func (b *builder) dispatchOne(source *Node, label bool, t *pe.Statement) {
	switch {
	case branchOrLoopKinds[t.StmtKind]:
		if t.Condition != nil {
			if ctrl := b.cfgFactory.GetControlNode(t.Condition); ctrl != nil {
				b.addControlEdge(source, b.pdgFactory.Image(ctrl), label)
			}
		} else {
			b.dispatchBlock(source, label, t.Statements())
			b.dispatchBlock(source, false, t.ElseBody)
			for _, u := range t.Updaters {
				if un := b.cfgFactory.GetNode(u); un != nil {
					b.addControlEdge(source, b.pdgFactory.Image(un), true)
				}
			}
		}
		for _, init := range t.Inits {
			if n := b.cfgFactory.GetNode(init); n != nil {
				b.addControlEdge(source, b.pdgFactory.Image(n), label)
			}
		}
	case leafExecutableKinds[t.StmtKind]:
		if n := b.cfgFactory.GetNode(t); n != nil {
			b.addControlEdge(source, b.pdgFactory.Image(n), label)
		}
	default:
		// no edge
	}
}

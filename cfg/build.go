package cfg

import (
	"sort"

	"github.com/PandaAwAke/PropertyGraph/internal/invariant"
	"github.com/PandaAwAke/PropertyGraph/pe"
)

// pendingKind distinguishes how a dangling sub-CFG exit must be wired once
// its destination is known.
type pendingKind int

const (
	pendNormal pendingKind = iota
	pendControlTrue
	pendControlFalse
	pendJump
)

// pendingExit is a dangling successor edge: the node is built, but its
// target (the next statement in sequence, or whatever follows a loop) is
// not known yet.
type pendingExit struct {
	node *Node
	kind pendingKind
}

// jump is an unresolved break/continue escaping the statement that produced
// it, to be claimed by the nearest enclosing loop/switch that matches its
// label (or any loop/switch, for an unlabeled jump).
type jump struct {
	node    *Node
	isBreak bool
	label   string
}

// flow is the sub-CFG produced by building one statement or a sequence of
// statements: a single entry, a set of dangling normal exits, a set of
// escaping break/continue jumps, and a set of hard method exits (return,
// throw) that bubble up unchanged.
type flow struct {
	entry    *Node
	exits    []pendingExit
	jumps    []jump
	terminal []*Node
}

type builder struct {
	factory *NodeFactory
}

// Build constructs the CFG for method using factory for node identity.
// Building the same factory into two CFGs is not supported; idempotence is
// only guaranteed for a single Build call per factory/method pair.
func Build(method *pe.Method, factory *NodeFactory) *CFG {
	b := &builder{factory: factory}

	if len(method.Statements()) == 0 && method.ExprBody == nil {
		// Empty method body: a single pseudo enter node and no exits (the
		// boundary case is exempt from the usual fall-through-is-an-exit
		// rule).
		enter := factory.MakeNormalNode(nil)
		return &CFG{Factory: factory, Enter: enter, exitNodes: nil, nodes: []*Node{enter}}
	}

	var body flow
	if method.Lambda && method.ExprBody != nil && len(method.Statements()) == 0 {
		n := factory.MakeNormalNode(method.ExprBody)
		body = flow{entry: n, exits: []pendingExit{{node: n}}}
	} else {
		body = b.buildSequence(method.Statements())
	}

	exitSet := map[*Node]bool{}
	for _, n := range body.terminal {
		exitSet[n] = true
	}
	for _, p := range body.exits {
		exitSet[p.node] = true
	}
	for _, j := range body.jumps {
		// Unmatched break/continue (malformed input); treat defensively as
		// a method exit rather than dropping the node.
		exitSet[j.node] = true
	}

	reach := GetReachableNodes(body.entry)
	for n := range exitSet {
		reach[n] = true
	}

	nodes := make([]*Node, 0, len(reach))
	for n := range reach {
		nodes = append(nodes, n)
	}
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].id < nodes[j].id })

	exits := make([]*Node, 0, len(exitSet))
	for n := range exitSet {
		exits = append(exits, n)
	}
	sort.Slice(exits, func(i, j int) bool { return exits[i].id < exits[j].id })

	return &CFG{Factory: factory, Enter: body.entry, exitNodes: exits, nodes: nodes}
}

func addEdge(from, to *Node, kind EdgeKind, boolLabel ...bool) {
	e := Edge{From: from, To: to, Kind: kind}
	if len(boolLabel) > 0 {
		e.HasBoolLabel = true
		e.BoolLabel = boolLabel[0]
	}
	from.addOut(e)
	to.addIn(e)
}

func (b *builder) connect(p pendingExit, to *Node) {
	switch p.kind {
	case pendControlTrue:
		addEdge(p.node, to, KindControlEdge, true)
	case pendControlFalse:
		addEdge(p.node, to, KindControlEdge, false)
	case pendJump:
		addEdge(p.node, to, KindJump)
	default:
		addEdge(p.node, to, KindNormal)
	}
}

// buildSequence composes a BlockInfo's statement list: each statement's
// dangling exits connect to the next statement's entry; jumps and terminal
// exits bubble up unchanged.
func (b *builder) buildSequence(stmts []*pe.Statement) flow {
	var entry *Node
	var pending []pendingExit
	var jumps []jump
	var terminal []*Node

	for _, s := range stmts {
		sf := b.buildStatement(s)
		if entry == nil {
			entry = sf.entry
		}
		for _, p := range pending {
			b.connect(p, sf.entry)
		}
		pending = sf.exits
		jumps = append(jumps, sf.jumps...)
		terminal = append(terminal, sf.terminal...)
	}

	if entry == nil {
		p := b.factory.MakeNormalNode(nil)
		entry = p
		pending = []pendingExit{{node: p}}
	}

	return flow{entry: entry, exits: pending, jumps: jumps, terminal: terminal}
}

func (b *builder) buildExprChain(elems []pe.Element) (*Node, []pendingExit) {
	var entry *Node
	var pending []pendingExit
	for _, el := range elems {
		n := b.factory.MakeNormalNode(el)
		if entry == nil {
			entry = n
		}
		for _, p := range pending {
			b.connect(p, n)
		}
		pending = []pendingExit{{node: n}}
	}
	if entry == nil {
		p := b.factory.MakeNormalNode(nil)
		return p, []pendingExit{{node: p}}
	}
	return entry, pending
}

// resolveLoopJumps claims every jump in js matching label (exact match, or
// unlabeled), wiring continues directly to continueTarget and appending
// breaks to exits as pending jump-exits. Non-matching jumps escape upward.
func resolveLoopJumps(js []jump, label string, continueTarget *Node, exits *[]pendingExit) []jump {
	var escaping []jump
	for _, j := range js {
		if j.label == "" || j.label == label {
			if j.isBreak {
				*exits = append(*exits, pendingExit{node: j.node, kind: pendJump})
			} else {
				addEdge(j.node, continueTarget, KindJump)
			}
		} else {
			escaping = append(escaping, j)
		}
	}
	return escaping
}

// resolveSwitchBreaks is resolveLoopJumps specialised to switch, which
// consumes matching break but never continue (continue escapes to the
// enclosing loop untouched).
func resolveSwitchBreaks(js []jump, label string, exits *[]pendingExit) []jump {
	var escaping []jump
	for _, j := range js {
		if j.isBreak && (j.label == "" || j.label == label) {
			*exits = append(*exits, pendingExit{node: j.node, kind: pendJump})
		} else {
			escaping = append(escaping, j)
		}
	}
	return escaping
}

func (b *builder) buildStatement(s *pe.Statement) flow {
	switch s.StmtKind {
	case pe.StmtAssert, pe.StmtExpression, pe.StmtVariableDeclaration, pe.StmtEmpty, pe.StmtTypeDeclaration:
		n := b.factory.MakeNormalNode(s)
		return flow{entry: n, exits: []pendingExit{{node: n}}}

	case pe.StmtReturn, pe.StmtThrow:
		n := b.factory.MakeNormalNode(s)
		return flow{entry: n, terminal: []*Node{n}}

	case pe.StmtBreak:
		n := b.factory.MakeNormalNode(s)
		return flow{entry: n, jumps: []jump{{node: n, isBreak: true, label: s.Label}}}

	case pe.StmtContinue:
		n := b.factory.MakeNormalNode(s)
		return flow{entry: n, jumps: []jump{{node: n, isBreak: false, label: s.Label}}}

	case pe.StmtSimpleBlock:
		return b.buildSequence(s.Statements())

	case pe.StmtIf:
		return b.buildIf(s)

	case pe.StmtWhile:
		return b.buildWhile(s)

	case pe.StmtDo:
		return b.buildDo(s)

	case pe.StmtFor:
		return b.buildFor(s)

	case pe.StmtForeach:
		return b.buildForeach(s)

	case pe.StmtSwitch:
		return b.buildSwitch(s)

	case pe.StmtCase:
		return b.buildSequence(s.Statements())

	case pe.StmtTry:
		return b.buildTry(s)

	case pe.StmtSynchronized:
		ctrl := b.factory.MakeControlNode(s.Condition)
		body := b.buildSequence(s.Statements())
		addEdge(ctrl, body.entry, KindNormal)
		return flow{entry: ctrl, exits: body.exits, jumps: body.jumps, terminal: body.terminal}

	default:
		n := b.factory.MakeNormalNode(s)
		return flow{entry: n, exits: []pendingExit{{node: n}}}
	}
}

func (b *builder) buildIf(s *pe.Statement) flow {
	invariant.Hold(s.Condition != nil, "If statement must have a non-nil Condition")
	ctrl := b.factory.MakeControlNode(s.Condition)

	then := b.buildSequence(s.Statements())
	addEdge(ctrl, then.entry, KindControlEdge, true)

	exits := append([]pendingExit{}, then.exits...)
	jumps := append([]jump{}, then.jumps...)
	terminal := append([]*Node{}, then.terminal...)

	if len(s.ElseBody) > 0 {
		els := b.buildSequence(s.ElseBody)
		addEdge(ctrl, els.entry, KindControlEdge, false)
		exits = append(exits, els.exits...)
		jumps = append(jumps, els.jumps...)
		terminal = append(terminal, els.terminal...)
	} else {
		// No else: the false branch is the merge point itself, represented
		// by a pending control-false exit off the condition node.
		exits = append(exits, pendingExit{node: ctrl, kind: pendControlFalse})
	}

	return flow{entry: ctrl, exits: exits, jumps: jumps, terminal: terminal}
}

func (b *builder) buildWhile(s *pe.Statement) flow {
	invariant.Hold(s.Condition != nil, "While statement must have a non-nil Condition")
	ctrl := b.factory.MakeControlNode(s.Condition)
	body := b.buildSequence(s.Statements())
	addEdge(ctrl, body.entry, KindControlEdge, true)
	for _, p := range body.exits {
		b.connect(p, ctrl)
	}

	exits := []pendingExit{{node: ctrl, kind: pendControlFalse}}
	escaping := resolveLoopJumps(body.jumps, s.Label, ctrl, &exits)

	return flow{entry: ctrl, exits: exits, jumps: escaping, terminal: body.terminal}
}

func (b *builder) buildDo(s *pe.Statement) flow {
	body := b.buildSequence(s.Statements())
	ctrl := b.factory.MakeControlNode(s.Condition)
	for _, p := range body.exits {
		b.connect(p, ctrl)
	}
	addEdge(ctrl, body.entry, KindControlEdge, true)

	exits := []pendingExit{{node: ctrl, kind: pendControlFalse}}
	escaping := resolveLoopJumps(body.jumps, s.Label, ctrl, &exits)

	return flow{entry: body.entry, exits: exits, jumps: escaping, terminal: body.terminal}
}

func (b *builder) buildFor(s *pe.Statement) flow {
	initEntry, initExits := b.buildExprChain(s.Inits)

	var ctrl *Node
	hasCond := s.Condition != nil
	if hasCond {
		ctrl = b.factory.MakeControlNode(s.Condition)
	} else {
		ctrl = b.factory.MakeNormalNode(nil)
	}
	for _, p := range initExits {
		b.connect(p, ctrl)
	}

	body := b.buildSequence(s.Statements())
	if hasCond {
		addEdge(ctrl, body.entry, KindControlEdge, true)
	} else {
		addEdge(ctrl, body.entry, KindNormal)
	}

	updEntry, updExits := b.buildExprChain(s.Updaters)
	for _, p := range body.exits {
		b.connect(p, updEntry)
	}
	for _, p := range updExits {
		b.connect(p, ctrl)
	}

	var exits []pendingExit
	if hasCond {
		exits = append(exits, pendingExit{node: ctrl, kind: pendControlFalse})
	}
	escaping := resolveLoopJumps(body.jumps, s.Label, updEntry, &exits)

	return flow{entry: initEntry, exits: exits, jumps: escaping, terminal: body.terminal}
}

func (b *builder) buildForeach(s *pe.Statement) flow {
	// Synthetic "more elements" predicate: the foreach statement itself
	// stands in for the hasNext() check the source doesn't make explicit.
	ctrl := b.factory.MakeControlNode(s)
	body := b.buildSequence(s.Statements())
	addEdge(ctrl, body.entry, KindControlEdge, true)
	for _, p := range body.exits {
		b.connect(p, ctrl)
	}

	exits := []pendingExit{{node: ctrl, kind: pendControlFalse}}
	escaping := resolveLoopJumps(body.jumps, s.Label, ctrl, &exits)

	return flow{entry: ctrl, exits: exits, jumps: escaping, terminal: body.terminal}
}

func (b *builder) buildSwitch(s *pe.Statement) flow {
	ctrl := b.factory.MakeControlNode(s.Condition)

	cases := s.Statements()
	var fallthroughExits []pendingExit
	var jumps []jump
	var terminal []*Node
	var entry *Node

	for _, c := range cases {
		caseNode := b.factory.MakeNormalNode(c)
		addEdge(ctrl, caseNode, KindNormal)
		for _, p := range fallthroughExits {
			b.connect(p, caseNode)
		}
		if entry == nil {
			entry = ctrl
		}

		caseBody := b.buildSequence(c.Statements())
		addEdge(caseNode, caseBody.entry, KindNormal)

		jumps = append(jumps, caseBody.jumps...)
		terminal = append(terminal, caseBody.terminal...)
		fallthroughExits = caseBody.exits
	}

	if entry == nil {
		entry = ctrl
	}

	exits := append([]pendingExit{}, fallthroughExits...)
	escaping := resolveSwitchBreaks(jumps, s.Label, &exits)

	return flow{entry: entry, exits: exits, jumps: escaping, terminal: terminal}
}

func (b *builder) buildTry(s *pe.Statement) flow {
	body := b.buildSequence(s.Statements())

	var exits []pendingExit
	exits = append(exits, body.exits...)
	jumps := append([]jump{}, body.jumps...)
	terminal := append([]*Node{}, body.terminal...)

	for _, c := range s.CatchClauses {
		catchBody := b.buildSequence(c.Statements())

		var catchEntry *Node
		if c.Condition != nil {
			guard := b.factory.MakeControlNode(c.Condition)
			addEdge(guard, catchBody.entry, KindControlEdge, true)
			catchEntry = guard
		} else {
			catchEntry = catchBody.entry
		}

		// Conservatively: every top-level statement of the try body may
		// raise into this catch, through the node keyed by the statement or
		// by its condition (precise exception-type matching is out of
		// scope). A nested block or a condition-less for owns no such node
		// and gets no edge.
		for _, top := range s.Statements() {
			if n := b.factory.GetNode(top); n != nil {
				addEdge(n, catchEntry, KindNormal)
			}
			if n := b.factory.GetControlNode(top); n != nil {
				addEdge(n, catchEntry, KindNormal)
			}
			if top.Condition != nil {
				if n := b.factory.GetControlNode(top.Condition); n != nil {
					addEdge(n, catchEntry, KindNormal)
				}
			}
		}

		exits = append(exits, catchBody.exits...)
		jumps = append(jumps, catchBody.jumps...)
		terminal = append(terminal, catchBody.terminal...)
	}

	if len(s.FinallyBody) > 0 {
		finallyFlow := b.buildSequence(s.FinallyBody)
		for _, p := range exits {
			b.connect(p, finallyFlow.entry)
		}
		exits = finallyFlow.exits
		jumps = append(jumps, finallyFlow.jumps...)
		terminal = append(terminal, finallyFlow.terminal...)
	}

	return flow{entry: body.entry, exits: exits, jumps: jumps, terminal: terminal}
}

// Package defuse implements the per-PE def/use analyzer: for every node in
// a Property-Element tree it lazily computes the set of variables the node
// defines and the set it uses, each tagged with a confidence level from a
// small ordered lattice, and memoizes the result.
package defuse

// DefKind is the def-confidence lattice. Promotion never demotes: raising a
// record's kind always takes the max of old and new.
type DefKind int

const (
	DefUnknown DefKind = iota
	DefNoDef
	DefMayDef
	DefDef
	DefDeclare
	DefDeclareAndDef
)

func (k DefKind) String() string {
	switch k {
	case DefNoDef:
		return "NO_DEF"
	case DefMayDef:
		return "MAY_DEF"
	case DefDef:
		return "DEF"
	case DefDeclare:
		return "DECLARE"
	case DefDeclareAndDef:
		return "DECLARE_AND_DEF"
	default:
		return "UNKNOWN"
	}
}

// AtLeastMayDef reports whether k is MAY_DEF or higher.
func (k DefKind) AtLeastMayDef() bool { return k >= DefMayDef }

// PromoteDef returns the stronger of a and b.
func PromoteDef(a, b DefKind) DefKind {
	if b > a {
		return b
	}
	return a
}

// UseKind is the use-confidence lattice; it mirrors DefKind without the
// DECLARE tiers.
type UseKind int

const (
	UseUnknown UseKind = iota
	UseNoUse
	UseMayUse
	UseUse
)

func (k UseKind) String() string {
	switch k {
	case UseNoUse:
		return "NO_USE"
	case UseMayUse:
		return "MAY_USE"
	case UseUse:
		return "USE"
	default:
		return "UNKNOWN"
	}
}

// AtLeastMayUse reports whether k is MAY_USE or higher.
func (k UseKind) AtLeastMayUse() bool { return k >= UseMayUse }

// PromoteUse returns the stronger of a and b.
func PromoteUse(a, b UseKind) UseKind {
	if b > a {
		return b
	}
	return a
}

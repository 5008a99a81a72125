package defuse

import "github.com/PandaAwAke/PropertyGraph/pe"

// DefsAtLeastMayDef returns the MAY_DEF-or-stronger subset of e's def set.
func (a *Analyzer) DefsAtLeastMayDef(e pe.Element) []VarDef {
	return a.Defs(e).AtLeastMayDef()
}

// UsesAtLeastMayUse returns the MAY_USE-or-stronger subset of e's use set.
func (a *Analyzer) UsesAtLeastMayUse(e pe.Element) []VarUse {
	return a.Uses(e).AtLeastMayUse()
}

// AssignedVariables returns the distinct main names assigned by e, derived
// from defsAtLeastMayDef.
func (a *Analyzer) AssignedVariables(e pe.Element) map[string]bool {
	out := map[string]bool{}
	for _, rec := range a.DefsAtLeastMayDef(e) {
		out[rec.MainName] = true
	}
	return out
}

// ReferencedVariables returns the distinct main names used by e, derived
// from usesAtLeastMayUse.
func (a *Analyzer) ReferencedVariables(e pe.Element) map[string]bool {
	out := map[string]bool{}
	for _, rec := range a.UsesAtLeastMayUse(e) {
		out[rec.MainName] = true
	}
	return out
}

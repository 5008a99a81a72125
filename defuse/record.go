package defuse

import (
	"sort"

	"github.com/PandaAwAke/PropertyGraph/pe"
)

// VarDef is a Var+DefKind record. Scope is the lexical Scope the name was
// bound to when the defining expression recorded the def (resolved from that
// expression's OwnerScope), or nil for an unresolved field-like reference.
type VarDef struct {
	MainName string
	Scope    *pe.Scope
	Kind     DefKind
}

// VarUse is a Var+UseKind record, optionally tagged with the Statement that
// owns the expression the use occurred in.
type VarUse struct {
	MainName string
	Scope    *pe.Scope
	Kind     UseKind
	Owner    *pe.Statement
}

// DefSet is a mutable, promotion-merging collection of VarDef keyed by
// MainName: adding a record for a name already present promotes its kind
// rather than duplicating it.
type DefSet struct {
	order []string
	byKey map[string]*VarDef
}

func newDefSet() *DefSet {
	return &DefSet{byKey: map[string]*VarDef{}}
}

// Add inserts or promotes a def record.
func (s *DefSet) Add(mainName string, scope *pe.Scope, kind DefKind) {
	if rec, ok := s.byKey[mainName]; ok {
		rec.Kind = PromoteDef(rec.Kind, kind)
		if rec.Scope == nil {
			rec.Scope = scope
		}
		return
	}
	s.order = append(s.order, mainName)
	s.byKey[mainName] = &VarDef{MainName: mainName, Scope: scope, Kind: kind}
}

// AddAll merges every record of other into s, promoting on overlap.
func (s *DefSet) AddAll(other *DefSet) {
	if other == nil {
		return
	}
	for _, rec := range other.All() {
		s.Add(rec.MainName, rec.Scope, rec.Kind)
	}
}

// AddAllPromoted merges other into s with every record's kind promoted to
// at least floor.
func (s *DefSet) AddAllPromoted(other *DefSet, floor DefKind) {
	if other == nil {
		return
	}
	for _, rec := range other.All() {
		s.Add(rec.MainName, rec.Scope, PromoteDef(rec.Kind, floor))
	}
}

// All returns the records in insertion order.
func (s *DefSet) All() []VarDef {
	out := make([]VarDef, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, *s.byKey[name])
	}
	return out
}

// AtLeastMayDef returns the subset of records whose kind is MAY_DEF or
// stronger, sorted by MainName for deterministic output.
func (s *DefSet) AtLeastMayDef() []VarDef {
	var out []VarDef
	for _, rec := range s.All() {
		if rec.Kind.AtLeastMayDef() {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MainName < out[j].MainName })
	return out
}

// UseSet is a mutable, promotion-merging collection of VarUse keyed by
// MainName.
type UseSet struct {
	order []string
	byKey map[string]*VarUse
}

func newUseSet() *UseSet {
	return &UseSet{byKey: map[string]*VarUse{}}
}

// Add inserts or promotes a use record.
func (s *UseSet) Add(mainName string, scope *pe.Scope, kind UseKind, owner *pe.Statement) {
	if rec, ok := s.byKey[mainName]; ok {
		rec.Kind = PromoteUse(rec.Kind, kind)
		if rec.Scope == nil {
			rec.Scope = scope
		}
		if rec.Owner == nil {
			rec.Owner = owner
		}
		return
	}
	s.order = append(s.order, mainName)
	s.byKey[mainName] = &VarUse{MainName: mainName, Scope: scope, Kind: kind, Owner: owner}
}

// AddAll merges every record of other into s, promoting on overlap.
func (s *UseSet) AddAll(other *UseSet) {
	if other == nil {
		return
	}
	for _, rec := range other.All() {
		s.Add(rec.MainName, rec.Scope, rec.Kind, rec.Owner)
	}
}

// AddAllPromoted merges other into s with every record's kind promoted to
// at least floor.
func (s *UseSet) AddAllPromoted(other *UseSet, floor UseKind) {
	if other == nil {
		return
	}
	for _, rec := range other.All() {
		s.Add(rec.MainName, rec.Scope, PromoteUse(rec.Kind, floor), rec.Owner)
	}
}

// All returns the records in insertion order.
func (s *UseSet) All() []VarUse {
	out := make([]VarUse, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, *s.byKey[name])
	}
	return out
}

// AtLeastMayUse returns the subset of records whose kind is MAY_USE or
// stronger, sorted by MainName for deterministic output.
func (s *UseSet) AtLeastMayUse() []VarUse {
	var out []VarUse
	for _, rec := range s.All() {
		if rec.Kind.AtLeastMayUse() {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MainName < out[j].MainName })
	return out
}

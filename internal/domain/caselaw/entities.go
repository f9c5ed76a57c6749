package caselaw

import (
	"sort"

	"github.com/turtacn/NyayVandan/pkg/types/caselaw"
)

// RefSet is a set of normalized legal-reference identifiers.
type RefSet map[string]struct{}

// NewRefSet builds a RefSet from a list of identifiers.
func NewRefSet(ids ...string) RefSet {
	s := make(RefSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Add inserts an identifier.
func (s RefSet) Add(id string) { s[id] = struct{}{} }

// Contains reports membership.
func (s RefSet) Contains(id string) bool {
	_, ok := s[id]
	return ok
}

// Sorted returns the members as a sorted slice; empty set yields an empty,
// non-nil slice so JSON encodes [] rather than null.
func (s RefSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Union returns a new set containing the members of all arguments.
func Union(sets ...RefSet) RefSet {
	out := RefSet{}
	for _, s := range sets {
		for id := range s {
			out[id] = struct{}{}
		}
	}
	return out
}

// Intersect returns the members present in both sets.
func Intersect(a, b RefSet) RefSet {
	if len(b) < len(a) {
		a, b = b, a
	}
	out := RefSet{}
	for id := range a {
		if b.Contains(id) {
			out[id] = struct{}{}
		}
	}
	return out
}

// QueryEntities is the fixed tagged structure of references extracted from a
// query.  One field per category keeps missing-category bugs at compile time
// instead of silent map misses.
type QueryEntities struct {
	PenalSections     RefSet
	ProcedureSections RefSet
	Articles          RefSet
	Acts              RefSet
}

// EmptyQueryEntities returns a QueryEntities value with all four sets
// allocated and empty.
func EmptyQueryEntities() QueryEntities {
	return QueryEntities{
		PenalSections:     RefSet{},
		ProcedureSections: RefSet{},
		Articles:          RefSet{},
		Acts:              RefSet{},
	}
}

// SectionRefs returns the flattened union of the three section categories
// (penal, procedure, articles).  Acts are excluded: stored case records carry
// no act field to match against.
func (q QueryEntities) SectionRefs() RefSet {
	return Union(q.PenalSections, q.ProcedureSections, q.Articles)
}

// ToDTO converts to the wire form with sorted, non-null slices.
func (q QueryEntities) ToDTO() caselaw.QueryEntitiesDTO {
	return caselaw.QueryEntitiesDTO{
		PenalSections:     q.PenalSections.Sorted(),
		ProcedureSections: q.ProcedureSections.Sorted(),
		Articles:          q.Articles.Sorted(),
		Acts:              q.Acts.Sorted(),
	}
}

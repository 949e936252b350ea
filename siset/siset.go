// Copyright 2026 The Spantime Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package siset implements SISet, an ordered set of pairwise-disjoint
// span.SpanIntervals together with the Boolean algebra (union,
// intersection, subtraction, complement) and liquid-semantics helpers
// the evaluator and MaxWalkSat search need.
package siset

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spantime/spantime/span"
)

// SISet is an ordered, disjoint set of SpanIntervals denoting the union
// of their individual denoted sets of ordinary intervals. "Disjoint"
// means no two members share a denoted ordinary interval; MakeDisjoint
// restores that invariant after a raw union.
type SISet struct {
	members     []span.SpanInterval
	tree        *intervalTree
	maxInterval span.Interval
	forceLiquid bool
}

// New builds an empty SISet scoped to maxInterval.
func New(maxInterval span.Interval, forceLiquid bool) *SISet {
	return &SISet{tree: newIntervalTree(), maxInterval: maxInterval, forceLiquid: forceLiquid}
}

// Of builds a SISet from the given members, normalizing via MakeDisjoint.
func Of(maxInterval span.Interval, forceLiquid bool, members ...span.SpanInterval) *SISet {
	s := New(maxInterval, forceLiquid)
	for _, m := range members {
		s.rawAdd(m)
	}
	return s.MakeDisjoint()
}

// MaxInterval returns the universe this SISet is scoped to.
func (s *SISet) MaxInterval() span.Interval { return s.maxInterval }

// ForceLiquid reports whether this SISet only ever holds liquid members.
func (s *SISet) ForceLiquid() bool { return s.forceLiquid }

func (s *SISet) rawAdd(m span.SpanInterval) {
	if m.IsEmpty() {
		return
	}
	if s.forceLiquid {
		m = m.ToLiquidInc()
	}
	s.members = append(s.members, m)
	s.tree.Insert(m)
}

// Add inserts a SpanInterval and re-establishes disjointness.
func (s *SISet) Add(m span.SpanInterval) *SISet {
	next := s.clone()
	next.rawAdd(m)
	return next.MakeDisjoint()
}

// Elements returns the members in canonical order (lexicographic on
// (S.Start, S.Finish, F.Start, F.Finish)), read off the backing tree's
// in-order traversal.
func (s *SISet) Elements() []span.SpanInterval {
	out := make([]span.SpanInterval, 0, s.tree.Size())
	s.tree.All(func(m span.SpanInterval) { out = append(out, m) })
	return out
}

// IsEmpty reports whether s has no members.
func (s *SISet) IsEmpty() bool { return len(s.members) == 0 }

func (s *SISet) clone() *SISet {
	next := New(s.maxInterval, s.forceLiquid)
	for _, m := range s.members {
		next.members = append(next.members, m)
		next.tree.Insert(m)
	}
	return next
}

// mergedBoundings returns the members' bounding ordinary intervals,
// sorted and coalesced (overlapping or adjacent boundings merge into
// one). This is the liquid projection of s as a set of time-points.
func (s *SISet) mergedBoundings() []span.Interval {
	if len(s.members) == 0 {
		return nil
	}
	bs := make([]span.Interval, 0, len(s.members))
	for _, m := range s.members {
		if !m.IsEmpty() {
			bs = append(bs, m.Bounding())
		}
	}
	sort.Slice(bs, func(i, j int) bool { return bs[i].Less(bs[j]) })
	merged := bs[:1]
	for _, b := range bs[1:] {
		last := &merged[len(merged)-1]
		if b.Start <= last.Finish+1 {
			if b.Finish > last.Finish {
				last.Finish = b.Finish
			}
			continue
		}
		merged = append(merged, b)
	}
	return merged
}

// subtractInterval removes o from every interval in is, splitting where
// o falls strictly inside. Used by the liquid (point-based) paths of
// Subtract and Complement, where the algebra is one-dimensional.
func subtractInterval(is []span.Interval, o span.Interval) []span.Interval {
	var out []span.Interval
	for _, i := range is {
		if !i.Overlaps(o) {
			out = append(out, i)
			continue
		}
		if i.Start < o.Start {
			out = append(out, span.Interval{Start: i.Start, Finish: o.Start - 1})
		}
		if i.Finish > o.Finish {
			out = append(out, span.Interval{Start: o.Finish + 1, Finish: i.Finish})
		}
	}
	return out
}

// MakeDisjoint returns a SISet with the same denoted set as s but whose
// members are pairwise disjoint. In liquid form this coalesces
// overlapping and adjacent members; otherwise the slice is rebuilt by
// repeatedly subtracting each already-accepted piece from every newly
// considered member (processed in canonical order for determinism).
func (s *SISet) MakeDisjoint() *SISet {
	if s.forceLiquid {
		out := New(s.maxInterval, true)
		for _, b := range s.mergedBoundings() {
			m := span.Liquid(b)
			out.members = append(out.members, m)
			out.tree.Insert(m)
		}
		return out
	}
	out := New(s.maxInterval, s.forceLiquid)
	for _, m := range s.Elements() {
		pieces := []span.SpanInterval{m}
		b := m.Bounding()
		// Two SpanIntervals can only share a denoted interval when
		// their boundings overlap, so the tree narrows the subtraction
		// to the accepted pieces that could actually clash with m.
		out.tree.QueryOverlap(b.Start, b.Finish, func(existing span.SpanInterval) {
			var next []span.SpanInterval
			for _, p := range pieces {
				next = append(next, p.Subtract(existing)...)
			}
			pieces = next
		})
		for _, p := range pieces {
			out.members = append(out.members, p)
			out.tree.Insert(p)
		}
	}
	return out
}

// Union returns the union of s and other, disjoint. The result stays
// liquid only when both operands are liquid; a mixed union falls back
// to ordinary interval-set semantics, keeping the liquid side's
// members as the rectangles they denote.
func (s *SISet) Union(other *SISet) *SISet {
	next := New(s.maxInterval, s.forceLiquid && other.forceLiquid)
	for _, m := range s.members {
		next.rawAdd(m)
	}
	for _, m := range other.members {
		next.rawAdd(m)
	}
	return next.MakeDisjoint()
}

// Subtract returns s minus other's denoted set. A liquid s subtracts
// pointwise on the one-dimensional projection; rectangle subtraction
// would split a liquid member into non-liquid fragments whose
// re-liquification readmits the removed points.
func (s *SISet) Subtract(other *SISet) *SISet {
	if s.forceLiquid {
		pieces := s.mergedBoundings()
		for _, o := range other.mergedBoundings() {
			pieces = subtractInterval(pieces, o)
		}
		out := New(s.maxInterval, true)
		for _, b := range pieces {
			m := span.Liquid(b)
			out.members = append(out.members, m)
			out.tree.Insert(m)
		}
		return out
	}
	out := New(s.maxInterval, s.forceLiquid)
	for _, m := range s.Elements() {
		pieces := []span.SpanInterval{m}
		b := m.Bounding()
		other.tree.QueryOverlap(b.Start, b.Finish, func(o span.SpanInterval) {
			var next []span.SpanInterval
			for _, p := range pieces {
				next = append(next, p.Subtract(o)...)
			}
			pieces = next
		})
		for _, p := range pieces {
			out.rawAdd(p)
		}
	}
	return out.MakeDisjoint()
}

// Intersection returns the intersection of s and other's denoted sets.
// Componentwise rectangle intersection is exact in both semantics (two
// liquid members intersect to a liquid member), so one code path
// serves; the result stays liquid only when both operands are.
func (s *SISet) Intersection(other *SISet) *SISet {
	out := New(s.maxInterval, s.forceLiquid && other.forceLiquid)
	for _, a := range s.Elements() {
		b := a.Bounding()
		other.tree.QueryOverlap(b.Start, b.Finish, func(o span.SpanInterval) {
			if c := a.Intersect(o); !c.IsEmpty() {
				out.rawAdd(c)
			}
		})
	}
	return out.MakeDisjoint()
}

// Complement returns the complement of s within its own maxInterval.
// A liquid set complements pointwise on the one-dimensional
// projection; otherwise the complement is the square universe minus s,
// computed as the intersection of each member's complement
// (De Morgan).
func (s *SISet) Complement() *SISet {
	if s.forceLiquid {
		pieces := []span.Interval{s.maxInterval}
		for _, b := range s.mergedBoundings() {
			pieces = subtractInterval(pieces, b)
		}
		out := New(s.maxInterval, true)
		for _, b := range pieces {
			m := span.Liquid(b)
			out.members = append(out.members, m)
			out.tree.Insert(m)
		}
		return out
	}
	universe := Of(s.maxInterval, s.forceLiquid, span.Liquid(s.maxInterval))
	acc := universe
	for _, m := range s.members {
		parts := m.Complement(s.maxInterval)
		next := New(s.maxInterval, s.forceLiquid)
		for _, p := range parts {
			next.rawAdd(p)
		}
		acc = acc.Intersection(next.MakeDisjoint())
	}
	return acc
}

// IsDisjoint reports whether no two members share a denoted ordinary
// interval: MakeDisjoint's post-condition. A false return from a
// freshly normalized set indicates a bug in the set algebra, not bad
// input, and callers treat it as fatal.
func (s *SISet) IsDisjoint() bool {
	els := s.Elements()
	for i := 0; i < len(els); i++ {
		for j := i + 1; j < len(els); j++ {
			if !els[i].Intersect(els[j]).IsEmpty() {
				return false
			}
		}
	}
	return true
}

// Includes reports whether every ordinary interval other denotes is
// also denoted by s, i.e. other \ s is empty.
func (s *SISet) Includes(other *SISet) bool {
	return other.Subtract(s).IsEmpty()
}

// Size returns the total count of ordinary intervals s denotes (sum
// over disjoint members, since after MakeDisjoint no interval is
// double-counted).
func (s *SISet) Size() int64 {
	var total int64
	for _, m := range s.members {
		total += m.Size()
	}
	return total
}

// LiqSize returns the number of instants over which s's liquid closure
// ranges: the total length of the merged member boundings.
func (s *SISet) LiqSize() int64 {
	var total int64
	for _, b := range s.mergedBoundings() {
		total += b.Len()
	}
	return total
}

// ToLiquidInc returns the SISet whose members are each member's liquid
// closure, coalesced (used when evaluating LiquidOp).
func (s *SISet) ToLiquidInc() *SISet {
	out := New(s.maxInterval, true)
	for _, b := range s.mergedBoundings() {
		m := span.Liquid(b)
		out.members = append(out.members, m)
		out.tree.Insert(m)
	}
	return out
}

// Equals reports whether s and other denote the same set of ordinary
// intervals.
func (s *SISet) Equals(other *SISet) bool {
	a, b := s.MakeDisjoint(), other.MakeDisjoint()
	ea, eb := a.Elements(), b.Elements()
	if len(ea) != len(eb) {
		return false
	}
	for i := range ea {
		if !ea[i].Equals(eb[i]) {
			return false
		}
	}
	return true
}

// EqualByInterval is the weaker equivalence Domain.IsFullySatisfied
// uses: both sides are projected to their liquid closure before
// comparison, so two SISets that denote different sets of occurrences
// but the same set of covered time-points compare equal.
func (s *SISet) EqualByInterval(other *SISet) bool {
	return s.ToLiquidInc().Equals(other.ToLiquidInc())
}

// String renders s in the output-model text format:
// {<spaninterval>, ...}, members in canonical order.
func (s *SISet) String() string {
	els := s.Elements()
	parts := make([]string, len(els))
	for i, m := range els {
		parts[i] = spanIntervalString(m)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func spanIntervalString(m span.SpanInterval) string {
	if m.IsLiquid() {
		return fmt.Sprintf("[%d:%d]", m.S.Start, m.S.Finish)
	}
	return fmt.Sprintf("[(%d,%d),(%d,%d)]", m.S.Start, m.S.Finish, m.F.Start, m.F.Finish)
}

// SatisfiesRelation unions SatisfiesRelation over every member,
// computing the full DiamondOp witness set for a single relation.
func (s *SISet) SatisfiesRelation(r span.IntervalRelation) *SISet {
	out := New(s.maxInterval, s.forceLiquid)
	for _, m := range s.members {
		out.rawAdd(m.SatisfiesRelation(r, s.maxInterval))
	}
	return out.MakeDisjoint()
}

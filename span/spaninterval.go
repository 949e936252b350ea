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

package span

// SpanInterval is a pair of Intervals (S, F) denoting the set of
// ordinary intervals {[i,j] : i in S, j in F, i <= j}. S bounds the
// possible starts of the occurrence, F bounds the possible finishes.
// A SpanInterval is liquid when S == F: every sub-interval of the
// shared range is itself a denoted occurrence, which is how point-based
// ("liquid") truth is represented.
//
// The invariant S.Start<=F.Start, S.Finish<=F.Finish, S.Start<=F.Finish
// always holds for a value returned from NewSpanInterval/Normalize; it
// need not hold for a value built by hand before normalization.
type SpanInterval struct {
	S, F Interval
}

// Empty is the canonical empty SpanInterval, denoting no occurrences.
var Empty = SpanInterval{S: Interval{Start: 1, Finish: 0}, F: Interval{Start: 1, Finish: 0}}

// NewSpanInterval builds a SpanInterval and normalizes it.
func NewSpanInterval(s, f Interval) SpanInterval {
	return SpanInterval{S: s, F: f}.Normalize()
}

// Liquid builds the liquid SpanInterval for an ordinary interval i,
// i.e. S = F = i.
func Liquid(i Interval) SpanInterval {
	return SpanInterval{S: i, F: i}
}

// Point builds the single-occurrence SpanInterval denoting exactly the
// ordinary interval [start,finish]: S = F = {start} is wrong (that
// would be liquid); Point pins S to {start} and F to {finish}.
func Point(start, finish int64) SpanInterval {
	return SpanInterval{S: Interval{Start: start, Finish: start}, F: Interval{Start: finish, Finish: finish}}
}

// IsEmpty reports whether si denotes no ordinary intervals at all.
func (si SpanInterval) IsEmpty() bool {
	return si.S.Start > si.S.Finish || si.F.Start > si.F.Finish || si.S.Start > si.F.Finish
}

// IsLiquid reports whether si.S == si.F.
func (si SpanInterval) IsLiquid() bool {
	return si.S.Equals(si.F)
}

// Normalize clamps S and F so the SpanInterval invariant holds,
// dropping any (i,j) combination that could never satisfy i<=j: S's
// upper bound can never exceed F's natural upper bound, and F's lower
// bound can never fall below S's natural lower bound. Returns Empty if
// nothing survives.
func (si SpanInterval) Normalize() SpanInterval {
	if si.IsEmpty() {
		return Empty
	}
	s := Interval{Start: si.S.Start, Finish: min64(si.S.Finish, si.F.Finish)}
	f := Interval{Start: max64(si.F.Start, si.S.Start), Finish: si.F.Finish}
	if s.Start > s.Finish || f.Start > f.Finish || s.Start > f.Finish {
		return Empty
	}
	return SpanInterval{S: s, F: f}
}

// Bounding returns the single ordinary interval spanning the earliest
// possible start to the latest possible finish of si.
func (si SpanInterval) Bounding() Interval {
	return Interval{Start: si.S.Start, Finish: si.F.Finish}
}

// ToLiquidInc projects si to its liquid closure: the smallest liquid
// SpanInterval whose denoted set includes every ordinary interval si
// denotes. Concretely this is Liquid(si.Bounding()).
func (si SpanInterval) ToLiquidInc() SpanInterval {
	return Liquid(si.Bounding())
}

// LiqSize returns the number of point-based (length-1) ordinary
// intervals covered by si's liquid closure, i.e. the number of
// instants over which si's bounding interval ranges.
func (si SpanInterval) LiqSize() int64 {
	if si.IsEmpty() {
		return 0
	}
	return si.Bounding().Len()
}

// Size returns the number of ordinary intervals [i,j] (i in S, j in F,
// i<=j) that si denotes.
func (si SpanInterval) Size() int64 {
	if si.IsEmpty() {
		return 0
	}
	var total int64
	for i := si.S.Start; i <= si.S.Finish; i++ {
		lo := i
		if si.F.Start > lo {
			lo = si.F.Start
		}
		if lo > si.F.Finish {
			continue
		}
		total += si.F.Finish - lo + 1
	}
	return total
}

// Equals reports whether si and other denote the same set of ordinary
// intervals. Because the (S,F) representation is canonical after
// Normalize, this reduces to corner equality once both sides are
// normalized.
func (si SpanInterval) Equals(other SpanInterval) bool {
	a, b := si.Normalize(), other.Normalize()
	if a.IsEmpty() && b.IsEmpty() {
		return true
	}
	return a.S.Equals(b.S) && a.F.Equals(b.F)
}

// Less defines the canonical order over SpanIntervals: lexicographic
// on (S.Start, S.Finish, F.Start, F.Finish).
func (si SpanInterval) Less(other SpanInterval) bool {
	if si.S.Start != other.S.Start {
		return si.S.Start < other.S.Start
	}
	if si.S.Finish != other.S.Finish {
		return si.S.Finish < other.S.Finish
	}
	if si.F.Start != other.F.Start {
		return si.F.Start < other.F.Start
	}
	return si.F.Finish < other.F.Finish
}

// Intersect returns the componentwise intersection of si and other,
// which is itself a SpanInterval (possibly Empty).
func (si SpanInterval) Intersect(other SpanInterval) SpanInterval {
	s, ok1 := si.S.Intersect(other.S)
	f, ok2 := si.F.Intersect(other.F)
	if !ok1 || !ok2 {
		return Empty
	}
	return SpanInterval{S: s, F: f}.Normalize()
}

// Complement returns the (at most four) axis-aligned SpanIntervals that
// make up universe \ si, where universe is the square [min,max]x[min,max]
// of every ordinary interval within maxInterval.
func (si SpanInterval) Complement(universe Interval) []SpanInterval {
	if si.IsEmpty() {
		return []SpanInterval{Liquid(universe)}
	}
	return si.complementWithin(universe, universe)
}

// Subtract returns self \ other as a set of pairwise-disjoint
// SpanIntervals (at most four pieces), the two-dimensional analogue of
// subtracting one rectangle from another.
func (si SpanInterval) Subtract(other SpanInterval) []SpanInterval {
	overlap := si.Intersect(other)
	if overlap.IsEmpty() {
		return []SpanInterval{si}
	}
	return overlap.complementWithin(si.S, si.F)
}

// complementWithin decomposes (boundsS x boundsF) \ si into at most
// four axis-aligned SpanIntervals, used by both Complement (bounds =
// the universe square) and Subtract (bounds = the minuend's own S/F
// ranges).
func (si SpanInterval) complementWithin(boundsS, boundsF Interval) []SpanInterval {
	var out []SpanInterval
	add := func(s, f Interval) {
		c := SpanInterval{S: s, F: f}.Normalize()
		if !c.IsEmpty() {
			out = append(out, c)
		}
	}
	if si.S.Start-1 >= boundsS.Start {
		add(Interval{Start: boundsS.Start, Finish: si.S.Start - 1}, boundsF)
	}
	if si.S.Finish+1 <= boundsS.Finish {
		add(Interval{Start: si.S.Finish + 1, Finish: boundsS.Finish}, boundsF)
	}
	if si.F.Start-1 >= boundsF.Start {
		add(si.S, Interval{Start: boundsF.Start, Finish: si.F.Start - 1})
	}
	if si.F.Finish+1 <= boundsF.Finish {
		add(si.S, Interval{Start: si.F.Finish + 1, Finish: boundsF.Finish})
	}
	return out
}

// clip clamps both corners of a raw (S,F) pair into universe before
// normalizing, used by SatisfiesRelation's table so out-of-range
// corners collapse to Empty rather than overflowing.
func clip(s, f Interval, universe Interval) SpanInterval {
	cs := Interval{Start: max64(s.Start, universe.Start), Finish: min64(s.Finish, universe.Finish)}
	cf := Interval{Start: max64(f.Start, universe.Start), Finish: min64(f.Finish, universe.Finish)}
	return SpanInterval{S: cs, F: cf}.Normalize()
}

// SatisfiesRelation returns the SpanInterval of ordinary intervals j
// that stand in the classical point relation r with some occurrence of
// si. This is the primitive behind the Sentence DiamondOp: "there
// exists a related interval over which the sub-formula holds" asks for
// si.SatisfiesRelation(r) where si is where the sub-formula already
// holds.
//
// The argument order depends on the relation. For the meets family
// (MEETS, MEETSI, UMEETS, UMEETSI) j is the first argument, r(j, si):
// MEETS yields the instant just before si. For every other relation si
// is the first argument, r(si, j): OVERLAPS yields intervals that si
// overlaps, DURING intervals that si lies within. EQUALS is symmetric.
//
// MEETS/MEETSI are defined as single-instant (degenerate) neighbors:
// the unique point immediately touching si's earliest start or latest
// finish. UMEETS/UMEETSI are the non-degenerate ("union") variants that
// allow any-length neighbors ending or starting at that same point.
func (si SpanInterval) SatisfiesRelation(r IntervalRelation, universe Interval) SpanInterval {
	if si.IsEmpty() {
		return Empty
	}
	Ss, Sf := si.S.Start, si.S.Finish
	Fs, Ff := si.F.Start, si.F.Finish
	switch r {
	case EQUALS:
		return clip(si.S, si.F, universe)
	case MEETS:
		p := Interval{Start: Ss - 1, Finish: Ss - 1}
		return clip(p, p, universe)
	case MEETSI:
		p := Interval{Start: Ff + 1, Finish: Ff + 1}
		return clip(p, p, universe)
	case UMEETS:
		f := Interval{Start: Ss - 1, Finish: Sf - 1}
		s := Interval{Start: universe.Start, Finish: Sf - 1}
		return clip(s, f, universe)
	case UMEETSI:
		s := Interval{Start: Fs + 1, Finish: Ff + 1}
		f := Interval{Start: Fs + 1, Finish: universe.Finish}
		return clip(s, f, universe)
	case GREATERTHAN:
		p := Interval{Start: universe.Start, Finish: Sf - 2}
		return clip(p, p, universe)
	case LESSTHAN:
		p := Interval{Start: Fs + 2, Finish: universe.Finish}
		return clip(p, p, universe)
	case OVERLAPS:
		s := Interval{Start: Ss + 1, Finish: Ff}
		f := Interval{Start: Ff + 1, Finish: universe.Finish}
		return clip(s, f, universe)
	case OVERLAPSI:
		s := Interval{Start: universe.Start, Finish: Sf - 1}
		f := Interval{Start: Ss, Finish: Ff - 1}
		return clip(s, f, universe)
	case STARTS:
		s := Interval{Start: Ss, Finish: Sf}
		f := Interval{Start: Fs + 1, Finish: universe.Finish}
		return clip(s, f, universe)
	case STARTSI:
		s := Interval{Start: Ss, Finish: Sf}
		f := Interval{Start: universe.Start, Finish: Ff - 1}
		return clip(s, f, universe)
	case DURING:
		s := Interval{Start: universe.Start, Finish: Sf - 1}
		f := Interval{Start: Fs + 1, Finish: universe.Finish}
		return clip(s, f, universe)
	case DURINGI:
		p := Interval{Start: Ss + 1, Finish: Ff - 1}
		return clip(p, p, universe)
	case FINISHES:
		s := Interval{Start: universe.Start, Finish: Sf - 1}
		f := Interval{Start: Fs, Finish: Ff}
		return clip(s, f, universe)
	case FINISHESI:
		s := Interval{Start: Ss + 1, Finish: universe.Finish}
		f := Interval{Start: Fs, Finish: Ff}
		return clip(s, f, universe)
	default:
		return Empty
	}
}

// ComposedOf implements the witness search behind Conjunction(l, r, R)
// for a single relation: whether some ordinary occurrence p that a
// denotes and q that b denotes stand in relation r, and if so the
// single spanning occurrence covering every such pair — the interval
// from the earliest participating start in a to the latest
// participating finish in b. EQUALS is the degenerate classical case
// and yields the plain intersection instead of a collapsed span.
//
// The witness check is derived in closed form from a and b's (S, F)
// corners, the same style SatisfiesRelation uses for the one-operand
// case; no occurrences are enumerated.
func ComposedOf(a, b SpanInterval, r IntervalRelation) (SpanInterval, bool) {
	if a.IsEmpty() || b.IsEmpty() {
		return Empty, false
	}
	if r == EQUALS {
		c := a.Intersect(b)
		return c, !c.IsEmpty()
	}
	pieces := composedOfRelation(a, b, r)
	if len(pieces) == 0 {
		return Empty, false
	}
	lo, hi := pieces[0].S.Start, pieces[0].F.Finish
	for _, p := range pieces[1:] {
		lo = min64(lo, p.S.Start)
		hi = max64(hi, p.F.Finish)
	}
	return Point(lo, hi), true
}

// composedOfRelation derives the witness region for a single relation
// by eliminating the free "inner" witness corners (a's finish, b's
// start) from HoldsPoint's definition of r, leaving closed-form ranges
// for the participating starts (drawn from a's start corner) and
// finishes (drawn from b's finish corner). An empty region means no
// witness pair exists. Some relations additionally require room for
// two strictly ordered witnesses inside the span, which the rectangle
// bounds alone cannot express; composedSpan enforces that minimum
// length on the region's outermost corners.
func composedOfRelation(a, b SpanInterval, r IntervalRelation) []SpanInterval {
	As1, As2 := a.S.Start, a.S.Finish
	Af1, Af2 := a.F.Start, a.F.Finish
	Bs1, Bs2 := b.S.Start, b.S.Finish
	Bf1, Bf2 := b.F.Start, b.F.Finish

	rect := func(sLo, sHi, fLo, fHi int64) SpanInterval {
		return SpanInterval{S: Interval{Start: sLo, Finish: sHi}, F: Interval{Start: fLo, Finish: fHi}}.Normalize()
	}
	single := func(si SpanInterval) []SpanInterval {
		if si.IsEmpty() {
			return nil
		}
		return []SpanInterval{si}
	}

	switch r {
	case MEETS, UMEETS:
		if Af1+1 > Bs2 || Bs1 > Af2+1 {
			return nil
		}
		return composedSpan(rect(As1, min64(As2, Bs2-1), max64(Bf1, Af1+1), Bf2), 1)
	case MEETSI, UMEETSI, GREATERTHAN:
		// The result spans a's starts to b's finishes; these relations
		// put b entirely before a, pinning the span's start strictly
		// after its finish, which is never a valid ordinary interval.
		return nil
	case OVERLAPS:
		if Bs1 > Af2 {
			return nil
		}
		return composedSpan(rect(As1, min64(As2, min64(Af2-1, Bs2-1)), max64(Bf1, max64(Af1+1, Bs1+1)), Bf2), 2)
	case OVERLAPSI:
		return single(rect(max64(As1, Bs1+1), As2, Bf1, min64(Bf2, Af2-1)))
	case STARTS:
		return composedSpan(rect(max64(As1, Bs1), min64(As2, Bs2), max64(Bf1, Af1+1), Bf2), 1)
	case STARTSI:
		return single(rect(max64(As1, Bs1), min64(As2, Bs2), Bf1, min64(Bf2, Af2-1)))
	case DURING:
		return composedSpan(rect(max64(As1, Bs1+1), As2, max64(Bf1, Af1+1), Bf2), 1)
	case DURINGI:
		return composedSpan(rect(As1, min64(As2, Bs2-1), Bf1, min64(Bf2, Af2-1)), 1)
	case FINISHES:
		return single(rect(max64(As1, Bs1+1), As2, max64(Af1, Bf1), min64(Af2, Bf2)))
	case FINISHESI:
		return composedSpan(rect(As1, min64(As2, Bs2-1), max64(Af1, Bf1), min64(Af2, Bf2)), 1)
	case LESSTHAN:
		if Af1+2 > Bs2 {
			return nil
		}
		return composedSpan(rect(As1, min64(As2, Bs2-2), max64(Bf1, Af1+2), Bf2), 2)
	default:
		return nil
	}
}

// composedSpan admits rect as a witness region only if its outermost
// span is at least g points longer than an instant: the longest
// realizable span runs from rect's earliest start to its latest
// finish, so a shorter one cannot hold the strictly ordered witnesses
// the relation demands.
func composedSpan(rect SpanInterval, g int64) []SpanInterval {
	if rect.IsEmpty() || rect.F.Finish-rect.S.Start < g {
		return nil
	}
	return []SpanInterval{rect}
}

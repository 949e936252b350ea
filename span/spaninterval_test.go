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

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestDiamondMeetsWorkedExample(t *testing.T) {
	universe := Interval{Start: 0, Finish: 10}
	p := Liquid(Interval{Start: 3, Finish: 7})

	got := p.SatisfiesRelation(MEETS, universe)
	want := Point(2, 2)

	require.True(t, got.Equals(want), "got %+v, want %+v", got, want)
}

func TestConjunctionMeetsWorkedExample(t *testing.T) {
	p := Liquid(Interval{Start: 0, Finish: 4})
	q := Liquid(Interval{Start: 5, Finish: 9})

	got, ok := ComposedOf(p, q, MEETS)
	require.True(t, ok)

	want := Point(0, 9)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ComposedOf(p,q,MEETS) mismatch (-want +got):\n%s", diff)
	}
}

func TestComposedOfEqualsIsIntersection(t *testing.T) {
	p := Liquid(Interval{Start: 0, Finish: 6})
	q := Liquid(Interval{Start: 3, Finish: 9})

	got, ok := ComposedOf(p, q, EQUALS)
	require.True(t, ok)
	require.True(t, got.Equals(Liquid(Interval{Start: 3, Finish: 6})))
}

func TestComposedOfNoWitnessPair(t *testing.T) {
	p := Liquid(Interval{Start: 0, Finish: 2})
	q := Liquid(Interval{Start: 7, Finish: 9})

	_, ok := ComposedOf(p, q, MEETS)
	require.False(t, ok)

	got, ok := ComposedOf(p, q, LESSTHAN)
	require.True(t, ok)
	require.True(t, got.Equals(Point(0, 9)))
}

func TestEqualsIsIdentity(t *testing.T) {
	universe := Interval{Start: 0, Finish: 100}
	cases := []SpanInterval{
		Liquid(Interval{Start: 3, Finish: 7}),
		Point(1, 9),
		NewSpanInterval(Interval{Start: 2, Finish: 5}, Interval{Start: 6, Finish: 9}),
	}
	for _, si := range cases {
		got := si.SatisfiesRelation(EQUALS, universe)
		require.True(t, got.Equals(si), "EQUALS(%+v) = %+v, want identity", si, got)
	}
}

func TestNormalizeClampsInvariant(t *testing.T) {
	raw := SpanInterval{S: Interval{Start: 5, Finish: 10}, F: Interval{Start: 2, Finish: 8}}
	got := raw.Normalize()
	require.False(t, got.IsEmpty())
	require.True(t, got.S.Start <= got.F.Start)
	require.True(t, got.S.Finish <= got.F.Finish)
	require.True(t, got.S.Start <= got.F.Finish)
}

func TestComplementIsDisjointFromSelf(t *testing.T) {
	universe := Interval{Start: 0, Finish: 10}
	si := Point(4, 6)
	parts := si.Complement(universe)
	require.NotEmpty(t, parts)
	for _, p := range parts {
		require.True(t, p.Intersect(si).IsEmpty(), "complement part %+v overlaps self %+v", p, si)
	}
}

func TestSatisfiesRelationAdmitsWitnessPair(t *testing.T) {
	universe := Interval{Start: 0, Finish: 50}
	rels := []IntervalRelation{MEETS, MEETSI, UMEETS, UMEETSI, OVERLAPS, OVERLAPSI,
		STARTS, STARTSI, DURING, DURINGI, FINISHES, FINISHESI, EQUALS, GREATERTHAN, LESSTHAN}
	self := NewSpanInterval(Interval{Start: 10, Finish: 15}, Interval{Start: 18, Finish: 25})
	for _, r := range rels {
		result := self.SatisfiesRelation(r, universe)
		if result.IsEmpty() {
			continue
		}
		if !admitsWitnessPair(result, self, r) {
			t.Errorf("relation %v: result %+v admits no witness pair against %+v", r, result, self)
		}
	}
}

// admitsWitnessPair brute-forces the denoted occurrences of result and
// self, looking for a concrete pair related by r. The meets family and
// EQUALS relate the result to the witness; the remaining table rows
// relate the witness to the result.
func admitsWitnessPair(result, self SpanInterval, r IntervalRelation) bool {
	resultFirst := r == MEETS || r == MEETSI || r == UMEETS || r == UMEETSI || r == EQUALS
	for ri := result.S.Start; ri <= result.S.Finish; ri++ {
		for rj := max64(ri, result.F.Start); rj <= result.F.Finish; rj++ {
			for si := self.S.Start; si <= self.S.Finish; si++ {
				for sj := max64(si, self.F.Start); sj <= self.F.Finish; sj++ {
					j := Interval{Start: ri, Finish: rj}
					w := Interval{Start: si, Finish: sj}
					if resultFirst && HoldsPoint(r, j, w) {
						return true
					}
					if !resultFirst && HoldsPoint(r, w, j) {
						return true
					}
				}
			}
		}
	}
	return false
}

func TestIntervalRelationRoundTripsThroughParse(t *testing.T) {
	for r := MEETS; r <= LESSTHAN; r++ {
		parsed, err := ParseRelation(r.String())
		require.NoError(t, err)
		require.Equal(t, r, parsed)
	}
}

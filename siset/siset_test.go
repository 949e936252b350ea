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

package siset

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spantime/spantime/span"
)

func universeAndSamples() (span.Interval, []*SISet) {
	u := span.Interval{Start: 0, Finish: 10}
	samples := []*SISet{
		Of(u, false, span.Point(1, 2), span.Point(3, 4)),
		Of(u, false, span.Liquid(span.Interval{Start: 3, Finish: 7})),
		Of(u, false),
		Of(u, false, span.NewSpanInterval(span.Interval{Start: 2, Finish: 5}, span.Interval{Start: 6, Finish: 9})),
	}
	return u, samples
}

// Complementing twice returns the original set, compared on the liquid projection.
func TestComplementInvolution(t *testing.T) {
	_, samples := universeAndSamples()
	for _, s := range samples {
		got := s.Complement().Complement()
		require.True(t, got.EqualByInterval(s), "complement^2 mismatch: got %v, want %v", got, s)
	}
}

// s.Includes(i) exactly when adding i changes nothing.
func TestIncludesIffAddNoop(t *testing.T) {
	u := span.Interval{Start: 0, Finish: 10}
	s := Of(u, false, span.Liquid(span.Interval{Start: 2, Finish: 5}))

	inside := span.Point(3, 4)
	require.True(t, s.Includes(Of(u, false, inside)))
	require.True(t, s.Add(inside).Equals(s))

	outside := span.Point(7, 8)
	require.False(t, s.Includes(Of(u, false, outside)))
	require.False(t, s.Add(outside).Equals(s))
}

// Splitting a along b and recombining gives back a.
func TestIntersectionComplementPartition(t *testing.T) {
	u := span.Interval{Start: 0, Finish: 10}
	a := Of(u, false, span.Point(0, 5), span.Point(7, 9))
	b := Of(u, false, span.Point(2, 8))

	left := a.Intersection(b.Complement())
	right := a.Intersection(b)
	got := left.Union(right)
	require.True(t, got.Equals(a), "got %v, want %v", got, a)
}

func TestStringParseRoundTrip(t *testing.T) {
	u := span.Interval{Start: 0, Finish: 10}
	s := Of(u, false, span.Point(1, 2), span.Liquid(span.Interval{Start: 4, Finish: 6}))
	text := s.String()
	got, err := ParseSISet(u, false, text)
	require.NoError(t, err)
	require.True(t, got.Equals(s), "round trip mismatch: %s -> %v, want %v", text, got, s)
}

func TestComplementOfRectangleCoversUniverse(t *testing.T) {
	universe := span.Interval{Start: 0, Finish: 10}
	self := Of(universe, false, span.NewSpanInterval(span.Interval{Start: 1, Finish: 3}, span.Interval{Start: 4, Finish: 10}))
	// Complementing the (1..3)x(4..10) rectangle within its own bounding
	// square (1..10)x(1..10) yields two rectangles; their sizes plus
	// self's add up to the whole square.
	parts := self.Elements()[0].Complement(span.Interval{Start: 1, Finish: 10})
	var total int64
	for _, p := range parts {
		total += p.Size()
	}
	full := span.NewSpanInterval(span.Interval{Start: 1, Finish: 10}, span.Interval{Start: 1, Finish: 10}).Size()
	require.Equal(t, full, total+self.Elements()[0].Size())
}

func TestLiquidMembersCoalesce(t *testing.T) {
	u := span.Interval{Start: 0, Finish: 10}
	s := Of(u, true,
		span.Liquid(span.Interval{Start: 0, Finish: 4}),
		span.Liquid(span.Interval{Start: 3, Finish: 6}),
		span.Liquid(span.Interval{Start: 7, Finish: 8}))

	els := s.Elements()
	require.Len(t, els, 1)
	require.True(t, els[0].Equals(span.Liquid(span.Interval{Start: 0, Finish: 8})))
	require.Equal(t, int64(9), s.LiqSize())
}

func TestLiquidComplementIsPointwise(t *testing.T) {
	u := span.Interval{Start: 0, Finish: 9}
	s := Of(u, true, span.Liquid(span.Interval{Start: 3, Finish: 5}))

	got := s.Complement()
	want := Of(u, true,
		span.Liquid(span.Interval{Start: 0, Finish: 2}),
		span.Liquid(span.Interval{Start: 6, Finish: 9}))
	require.True(t, got.Equals(want), "got %v, want %v", got, want)
	require.Equal(t, int64(7), got.LiqSize())
}

func TestLiquidSubtractIsPointwise(t *testing.T) {
	u := span.Interval{Start: 0, Finish: 9}
	s := Of(u, true, span.Liquid(span.Interval{Start: 0, Finish: 9}))
	o := Of(u, true, span.Liquid(span.Interval{Start: 2, Finish: 3}))

	got := s.Subtract(o)
	want := Of(u, true,
		span.Liquid(span.Interval{Start: 0, Finish: 1}),
		span.Liquid(span.Interval{Start: 4, Finish: 9}))
	require.True(t, got.Equals(want), "got %v, want %v", got, want)
}

func TestLiqSizeCountsPointsNotOccurrences(t *testing.T) {
	u := span.Interval{Start: 0, Finish: 10}
	s := Of(u, false, span.Liquid(span.Interval{Start: 0, Finish: 3}))
	require.Equal(t, int64(10), s.Size())
	require.Equal(t, int64(4), s.LiqSize())
}

func TestMakeDisjointIsIdempotentAndSortedOrder(t *testing.T) {
	u := span.Interval{Start: 0, Finish: 20}
	s := Of(u, false, span.Point(5, 6), span.Point(1, 2), span.Point(3, 9))
	els := s.Elements()
	for i := 1; i < len(els); i++ {
		require.True(t, els[i-1].Less(els[i]) || els[i-1].Equals(els[i]))
	}
	again := s.MakeDisjoint()
	require.True(t, again.Equals(s))
}

func TestMakeDisjointResolvesOverlaps(t *testing.T) {
	u := span.Interval{Start: 0, Finish: 20}
	s := Of(u, false,
		span.Liquid(span.Interval{Start: 0, Finish: 6}),
		span.Liquid(span.Interval{Start: 4, Finish: 9}),
		span.Point(2, 5))
	require.True(t, s.IsDisjoint())
	require.True(t, s.Includes(Of(u, false, span.Point(2, 5))))
	require.True(t, s.Includes(Of(u, false, span.Liquid(span.Interval{Start: 4, Finish: 9}))))
}

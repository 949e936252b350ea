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

package model

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spantime/spantime/logic"
	"github.com/spantime/spantime/siset"
	"github.com/spantime/spantime/span"
)

func TestSetAndAtomAt(t *testing.T) {
	u := span.Interval{Start: 0, Finish: 10}
	m := New(u)
	p := logic.NewAtom("p", logic.Constant{Name: "a"})
	times := siset.Of(u, false, span.Point(2, 5))

	m.SetAtom(p, times)
	require.True(t, m.AtomAt(p).Equals(times))

	q := logic.NewAtom("q", logic.Constant{Name: "b"})
	require.True(t, m.AtomAt(q).IsEmpty())
}

func TestUnsetAtomSubtracts(t *testing.T) {
	u := span.Interval{Start: 0, Finish: 10}
	m := New(u)
	p := logic.NewAtom("p", logic.Constant{Name: "a"})
	m.SetAtom(p, siset.Of(u, false, span.Point(0, 9)))

	m.UnsetAtom(p, siset.Of(u, false, span.Point(3, 5)))

	want := siset.Of(u, false, span.Point(0, 9)).Subtract(siset.Of(u, false, span.Point(3, 5)))
	require.True(t, m.AtomAt(p).Equals(want))
}

func TestCloneIsIndependent(t *testing.T) {
	u := span.Interval{Start: 0, Finish: 10}
	m := New(u)
	p := logic.NewAtom("p", logic.Constant{Name: "a"})
	m.SetAtom(p, siset.Of(u, false, span.Point(0, 1)))

	clone := m.Clone()
	clone.SetAtom(p, siset.Of(u, false, span.Point(5, 6)))

	require.False(t, m.AtomAt(p).Equals(clone.AtomAt(p)))
}

func TestAtomsSortedByKey(t *testing.T) {
	u := span.Interval{Start: 0, Finish: 10}
	m := New(u)
	m.SetAtom(logic.NewAtom("z", logic.Constant{Name: "1"}), siset.Of(u, false, span.Point(0, 0)))
	m.SetAtom(logic.NewAtom("a", logic.Constant{Name: "1"}), siset.Of(u, false, span.Point(0, 0)))

	atoms := m.Atoms()
	require.Len(t, atoms, 2)
	require.Equal(t, "a", atoms[0].Predicate)
	require.Equal(t, "z", atoms[1].Predicate)
}

func TestSizeSumsLiqSize(t *testing.T) {
	u := span.Interval{Start: 0, Finish: 10}
	m := New(u)
	m.SetAtom(logic.NewAtom("p"), siset.Of(u, false, span.Point(0, 3)))
	require.Equal(t, int64(4), m.Size())
}

func TestEqualsDetectsDifference(t *testing.T) {
	u := span.Interval{Start: 0, Finish: 10}
	a := New(u)
	b := New(u)
	p := logic.NewAtom("p")
	a.SetAtom(p, siset.Of(u, false, span.Point(0, 1)))
	require.False(t, a.Equals(b))
	b.SetAtom(p, siset.Of(u, false, span.Point(0, 1)))
	require.True(t, a.Equals(b))
}

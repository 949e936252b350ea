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

package domain

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spantime/spantime/logic"
	"github.com/spantime/spantime/siset"
	"github.com/spantime/spantime/span"
)

func TestDefaultModelAppliesObservedFacts(t *testing.T) {
	u := span.Interval{Start: 0, Finish: 9}
	p := logic.NewAtom("p", logic.Constant{Name: "a"})
	d, err := New(Options{
		MaxInterval: u,
		Facts: []ObservedFact{
			{Atom: p, Times: siset.Of(u, false, span.Liquid(u))},
		},
	})
	require.NoError(t, err)

	m := d.DefaultModel()
	require.True(t, m.AtomAt(p).Equals(siset.Of(u, false, span.Liquid(u))))
}

func TestEmptyFactsStillBuildsValidMaxInterval(t *testing.T) {
	u := span.Interval{Start: 0, Finish: 0}
	d, err := New(Options{MaxInterval: u})
	require.NoError(t, err)
	require.Equal(t, u, d.MaxInterval())
}

func TestArityMismatchIsDomainError(t *testing.T) {
	u := span.Interval{Start: 0, Finish: 9}
	p := logic.NewAtom("p", logic.Constant{Name: "a"}, logic.Constant{Name: "b"})
	_, err := New(Options{
		MaxInterval: u,
		Signatures:  map[string]int{"p": 1},
		Facts: []ObservedFact{
			{Atom: p, Times: siset.Of(u, false, span.Liquid(u))},
		},
	})
	require.Error(t, err)
	var domErr *Error
	require.ErrorAs(t, err, &domErr)
}

func TestScoreSingleSoftFormula(t *testing.T) {
	u := span.Interval{Start: 0, Finish: 0}
	p := logic.NewAtom("p", logic.Constant{Name: "a"})
	e := logic.NewSoft(logic.AtomSentence(p), 2.0)
	d, err := New(Options{MaxInterval: u, Formulas: []logic.ELSentence{e}})
	require.NoError(t, err)

	m := d.DefaultModel()
	m.SetAtom(p, siset.Of(u, false, span.Liquid(u)))
	require.Equal(t, 2.0, d.Score(m))
}

func TestHardFormulaFullySatisfiedRequiresEqualByInterval(t *testing.T) {
	u := span.Interval{Start: 0, Finish: 9}
	p := logic.NewAtom("p", logic.Constant{Name: "a"})
	q := logic.NewAtom("q", logic.Constant{Name: "a"})
	implication := logic.Disjunction{Left: logic.Negation{Sub: logic.AtomSentence(p)}, Right: logic.AtomSentence(q)}
	e := logic.NewHard(implication)

	d, err := New(Options{
		MaxInterval: u,
		Facts: []ObservedFact{
			{Atom: p, Times: siset.Of(u, false, span.Liquid(u))},
		},
		Formulas: []logic.ELSentence{e},
	})
	require.NoError(t, err)

	m := d.DefaultModel()
	require.False(t, d.IsFullySatisfied(m))

	m.SetAtom(q, siset.Of(u, false, span.Liquid(u)))
	require.True(t, d.IsFullySatisfied(m))
}

func TestReplaceInfFormsAssignsHardFormulaFactor(t *testing.T) {
	u := span.Interval{Start: 0, Finish: 9}
	p := logic.NewAtom("p")
	d, err := New(Options{MaxInterval: u, Formulas: []logic.ELSentence{logic.NewHard(logic.AtomSentence(p))}})
	require.NoError(t, err)

	scored := d.ReplaceInfForms()
	for _, e := range scored.Formulas() {
		require.False(t, e.IsHard())
		require.Equal(t, d.HardFormulaFactor(), *e.Weight)
	}
}

func TestGetModifiableSISetExcludesObservedSupport(t *testing.T) {
	u := span.Interval{Start: 0, Finish: 9}
	p := logic.NewAtom("p", logic.Constant{Name: "a"})
	observed := siset.Of(u, false, span.Point(0, 4))
	d, err := New(Options{
		MaxInterval: u,
		Facts:       []ObservedFact{{Atom: p, Times: observed}},
	})
	require.NoError(t, err)

	modifiable := d.GetModifiableSISet(p.Key())
	require.True(t, modifiable.Intersection(observed).IsEmpty())
}

func TestClosedWorldPinsObservedAtomsEverywhere(t *testing.T) {
	u := span.Interval{Start: 0, Finish: 9}
	p := logic.NewAtom("p", logic.Constant{Name: "a"})
	d, err := New(Options{
		MaxInterval:       u,
		AssumeClosedWorld: true,
		Facts:             []ObservedFact{{Atom: p, Times: siset.Of(u, false, span.Point(0, 4))}},
	})
	require.NoError(t, err)
	require.True(t, d.GetModifiableSISet(p.Key()).IsEmpty())
}

func TestFormulaGroupClustersCoOccurringAtoms(t *testing.T) {
	u := span.Interval{Start: 0, Finish: 9}
	p := logic.NewAtom("p", logic.Constant{Name: "a"})
	q := logic.NewAtom("q", logic.Constant{Name: "a"})
	r := logic.NewAtom("r", logic.Constant{Name: "a"})
	together := logic.Conjunction{
		Left:      logic.AtomSentence(p),
		Right:     logic.AtomSentence(q),
		Relations: []span.IntervalRelation{span.EQUALS},
	}
	d, err := New(Options{MaxInterval: u, Formulas: []logic.ELSentence{
		logic.NewSoft(together, 1.0),
		logic.NewSoft(logic.AtomSentence(r), 1.0),
	}})
	require.NoError(t, err)

	require.Equal(t, d.FormulaGroup(p), d.FormulaGroup(q))
	require.NotEqual(t, d.FormulaGroup(p), d.FormulaGroup(r))
}

func TestScoreGroupCountsOnlyTheAtomsCluster(t *testing.T) {
	u := span.Interval{Start: 0, Finish: 0}
	p := logic.NewAtom("p", logic.Constant{Name: "a"})
	q := logic.NewAtom("q", logic.Constant{Name: "a"})
	d, err := New(Options{MaxInterval: u, Formulas: []logic.ELSentence{
		logic.NewSoft(logic.AtomSentence(p), 2.0),
		logic.NewSoft(logic.AtomSentence(q), 3.0),
	}})
	require.NoError(t, err)

	m := d.DefaultModel()
	m.SetAtom(p, siset.Of(u, false, span.Liquid(u)))
	m.SetAtom(q, siset.Of(u, false, span.Liquid(u)))

	require.Equal(t, 2.0, d.ScoreGroup(d.FormulaGroup(p), m))
	require.Equal(t, 3.0, d.ScoreGroup(d.FormulaGroup(q), m))
	require.Equal(t, 5.0, d.Score(m))
}

func TestOutOfUniverseQuantificationIsDomainError(t *testing.T) {
	u := span.Interval{Start: 0, Finish: 9}
	wide := span.Interval{Start: 0, Finish: 20}
	p := logic.NewAtom("p", logic.Constant{Name: "a"})
	e := logic.NewSoft(logic.AtomSentence(p), 1.0).
		WithQuantification(siset.Of(wide, false, span.Liquid(wide)))

	_, err := New(Options{MaxInterval: u, Formulas: []logic.ELSentence{e}})
	require.Error(t, err)
	var domErr *Error
	require.ErrorAs(t, err, &domErr)
}

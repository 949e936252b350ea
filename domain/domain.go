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

// Package domain implements Domain, the aggregate owner of a run's
// formulas, observed/unobserved atom tables, universe, and the scoring
// services the evaluator and MaxWalkSat searcher consult. Domain is
// built once per run and is otherwise immutable; Models are value-like
// and owned by whoever holds them.
package domain

import (
	"sort"

	"bitbucket.org/creachadair/stringset"
	"go.uber.org/multierr"

	"github.com/spantime/spantime/eval"
	"github.com/spantime/spantime/logic"
	"github.com/spantime/spantime/model"
	"github.com/spantime/spantime/siset"
	"github.com/spantime/spantime/span"
)

// ObservedFact is one timed, possibly-negated ground atom read from the
// fact file: the truth-set times holds if Negated is false, and its
// complement (within maxInterval) if Negated is true.
type ObservedFact struct {
	Atom    logic.Atom
	Times   *siset.SISet
	Negated bool
}

// Options configures a Domain at construction time, gathering the
// parsed fact file and formula file plus the run-level flags surfaced
// by the CLI.
type Options struct {
	MaxInterval        span.Interval
	Signatures         map[string]int // predicate name -> arity, empty means unchecked
	Facts              []ObservedFact
	Formulas           []logic.ELSentence
	AssumeClosedWorld  bool
	DontModifyObsPreds bool
	// HardFormulaFactor overrides the default pseudo-weight assigned to
	// hard formulas by ReplaceInfForms. Zero means "compute the default".
	HardFormulaFactor float64
}

// Domain owns the formulas, the observed/unobserved atom tables, the
// universe, and the closed-world and observed-predicate-protection
// behavior flags.
type Domain struct {
	maxInterval        span.Interval
	maxSISet           *siset.SISet
	signatures         map[string]int
	formulas           []logic.ELSentence
	observed           map[string]ObservedFact
	observedNames      stringset.Set
	unobservedNames    stringset.Set
	assumeClosedWorld  bool
	dontModifyObsPreds bool
	hardFormulaFactor  float64
	atomGroups         *atomUnionFind
	formulaGroups      map[string][]int
}

// New validates opts and builds a Domain, aggregating every validation
// failure (invalid maxInterval, arity mismatches, out-of-universe
// quantification) via multierr rather than stopping at the first one,
// echoing the seminaive evaluator's row-error accumulation.
func New(opts Options) (*Domain, error) {
	var errs error
	if opts.MaxInterval.Start > opts.MaxInterval.Finish {
		errs = multierr.Append(errs, newError("maxInterval %v is not a valid interval", opts.MaxInterval))
	}
	maxSISet := siset.Of(opts.MaxInterval, false, span.Liquid(opts.MaxInterval))
	for i, e := range opts.Formulas {
		if e.Quantification != nil && !maxSISet.Includes(e.Quantification) {
			errs = multierr.Append(errs, newError(
				"formula %d quantifies over intervals outside maxInterval %v", i, opts.MaxInterval))
		}
	}
	observed := make(map[string]ObservedFact, len(opts.Facts))
	observedNames := stringset.New()
	for _, f := range opts.Facts {
		if arity, ok := opts.Signatures[f.Atom.Predicate]; ok && arity != f.Atom.Arity() {
			errs = multierr.Append(errs, newError(
				"fact %s has arity %d, predicate %q declared with arity %d",
				f.Atom, f.Atom.Arity(), f.Atom.Predicate, arity))
			continue
		}
		observed[f.Atom.Key()] = f
		observedNames.Add(f.Atom.Key())
	}
	unobservedNames := stringset.New()
	groups := newAtomUnionFind()
	for _, e := range opts.Formulas {
		atoms := logic.Atoms(e.Sentence)
		for _, a := range atoms {
			if !observedNames.Contains(a.Key()) {
				unobservedNames.Add(a.Key())
			}
		}
		for i := 1; i < len(atoms); i++ {
			groups.union(atoms[0].Key(), atoms[i].Key())
		}
	}
	// Representatives are only stable once every union is in, so the
	// group index is built in a second pass.
	formulaGroups := make(map[string][]int)
	for i, e := range opts.Formulas {
		atoms := logic.Atoms(e.Sentence)
		if len(atoms) == 0 {
			continue
		}
		rep := groups.find(atoms[0].Key())
		formulaGroups[rep] = append(formulaGroups[rep], i)
	}
	if errs != nil {
		return nil, errs
	}

	d := &Domain{
		maxInterval:        opts.MaxInterval,
		signatures:         opts.Signatures,
		formulas:           append([]logic.ELSentence(nil), opts.Formulas...),
		observed:           observed,
		observedNames:      observedNames,
		unobservedNames:    unobservedNames,
		assumeClosedWorld:  opts.AssumeClosedWorld,
		dontModifyObsPreds: opts.DontModifyObsPreds,
		hardFormulaFactor:  opts.HardFormulaFactor,
		atomGroups:         groups,
		formulaGroups:      formulaGroups,
	}
	d.maxSISet = maxSISet
	if d.hardFormulaFactor == 0 {
		d.hardFormulaFactor = d.defaultHardFormulaFactor()
	}
	return d, nil
}

// defaultHardFormulaFactor computes 1 + sum(soft weights) * maxInterval
// length, sufficient so that violating a hard formula by one
// time-point outweighs every combination of soft violations.
func (d *Domain) defaultHardFormulaFactor() float64 {
	var sum float64
	for _, e := range d.formulas {
		if !e.IsHard() {
			sum += *e.Weight
		}
	}
	return 1 + sum*float64(d.maxInterval.Len())
}

// MaxInterval returns the universe ordinary intervals are bounded by.
func (d *Domain) MaxInterval() span.Interval { return d.maxInterval }

// MaxSISet returns the SISet denoting every ordinary interval within
// MaxInterval, used by the evaluator's BoolLit(true)/Atom cases.
func (d *Domain) MaxSISet() *siset.SISet { return d.maxSISet }

// Formulas returns the formulas in input-file order: formulas are
// sorted by input position, which is simply preserved here rather than
// re-derived.
func (d *Domain) Formulas() []logic.ELSentence {
	return append([]logic.ELSentence(nil), d.formulas...)
}

// ObservedAtoms returns the observed atoms, sorted by key.
func (d *Domain) ObservedAtoms() []logic.Atom {
	out := make([]logic.Atom, 0, len(d.observed))
	for _, f := range d.observed {
		out = append(out, f.Atom)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key() < out[j].Key() })
	return out
}

// UnobservedAtoms returns the non-observed atoms referenced by some
// formula, sorted by key: these are MaxWalkSat's search variables.
func (d *Domain) UnobservedAtoms() []string {
	out := d.unobservedNames.Elements()
	sort.Strings(out)
	return out
}

// FormulaGroup returns the representative key of the atom-cluster a
// belongs to: every formula mentioning a shares this representative,
// so flipping a can only change the score of formulas in its group.
// MaxWalkSat's greedy step re-scores just that group per candidate
// move (ScoreGroup) instead of the whole formula list.
func (d *Domain) FormulaGroup(a logic.Atom) string {
	return d.atomGroups.find(a.Key())
}

// IsObserved reports whether a is an observed (fixed) atom.
func (d *Domain) IsObserved(a logic.Atom) bool {
	_, ok := d.observed[a.Key()]
	return ok
}

// DontModifyObsPreds reports the corresponding Domain flag.
func (d *Domain) DontModifyObsPreds() bool { return d.dontModifyObsPreds }

// HardFormulaFactor returns the pseudo-weight ReplaceInfForms assigns to
// hard formulas.
func (d *Domain) HardFormulaFactor() float64 { return d.hardFormulaFactor }

// DefaultModel builds the initial Model from the observed facts: each
// observed atom is set to its Times (or, if Negated, its complement
// within maxInterval). AssumeClosedWorld is not consulted here: times
// outside an atom's set are already false in a Model, and the flag only
// affects GetModifiableSISet.
func (d *Domain) DefaultModel() *model.Model {
	m := model.New(d.maxInterval)
	for _, f := range d.observed {
		times := f.Times
		if f.Negated {
			times = times.Complement()
		}
		m.SetAtom(f.Atom, times)
	}
	return m
}

// GetModifiableSISet returns the SISet of times the searcher is allowed
// to flip a ground atom with the given key at: the complement, within
// maxInterval, of that atom's observed fixed support (or the whole
// universe if the atom is not observed at all). Under the closed-world
// assumption an observed atom is pinned everywhere, support and
// complement alike, so nothing remains modifiable.
func (d *Domain) GetModifiableSISet(atomKey string) *siset.SISet {
	f, ok := d.observed[atomKey]
	if !ok {
		return d.maxSISet
	}
	if d.assumeClosedWorld {
		return siset.New(d.maxInterval, false)
	}
	times := f.Times
	if f.Negated {
		times = times.Complement()
	}
	return times.Complement()
}

// satCtx adapts *Domain to eval.Context.
type satCtx struct{ d *Domain }

func (c satCtx) MaxInterval() span.Interval { return c.d.maxInterval }
func (c satCtx) MaxSISet() *siset.SISet     { return c.d.maxSISet }

// SatisfiedAt is a thin wrapper around eval.SatisfiedAt binding this
// Domain as the evaluation context.
func (d *Domain) SatisfiedAt(s logic.Sentence, m *model.Model) *siset.SISet {
	return eval.SatisfiedAt(s, m, satCtx{d})
}

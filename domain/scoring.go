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
	"github.com/spantime/spantime/logic"
	"github.com/spantime/spantime/model"
)

// ScoreFormula computes a weighted-formula contribution:
// weight * |satisfiedAt(e.Sentence, m) ∩ e.Quantification|, where the
// measure is LiqSize for a liquid quantification and Size otherwise.
// Hard formulas score at HardFormulaFactor when satisfied, zero when
// not.
func (d *Domain) ScoreFormula(e logic.ELSentence, m *model.Model) float64 {
	quant := e.Quantification
	if quant == nil {
		quant = d.maxSISet
	}
	sat := d.SatisfiedAt(e.Sentence, m)
	overlap := sat.Intersection(quant)

	var measure int64
	if quant.ForceLiquid() {
		measure = overlap.LiqSize()
	} else {
		measure = overlap.Size()
	}

	if e.IsHard() {
		if overlap.EqualByInterval(quant) {
			return d.hardFormulaFactor
		}
		return 0
	}
	return *e.Weight * float64(measure)
}

// ScoreGroup sums ScoreFormula over the formulas whose atoms belong to
// the cluster with representative group (see FormulaGroup). Formulas
// mentioning no atoms at all score constant under every move and
// belong to no group.
func (d *Domain) ScoreGroup(group string, m *model.Model) float64 {
	var total float64
	for _, i := range d.formulaGroups[group] {
		total += d.ScoreFormula(d.formulas[i], m)
	}
	return total
}

// Score sums ScoreFormula over every formula in the Domain.
func (d *Domain) Score(m *model.Model) float64 {
	var total float64
	for _, e := range d.formulas {
		total += d.ScoreFormula(e, m)
	}
	return total
}

// IsFullySatisfied reports whether every hard formula's satisfaction
// set equals its quantification set under EqualByInterval.
func (d *Domain) IsFullySatisfied(m *model.Model) bool {
	for _, e := range d.formulas {
		if !e.IsHard() {
			continue
		}
		if !d.formulaFullySatisfied(e, m) {
			return false
		}
	}
	return true
}

func (d *Domain) formulaFullySatisfied(e logic.ELSentence, m *model.Model) bool {
	quant := e.Quantification
	if quant == nil {
		quant = d.maxSISet
	}
	sat := d.SatisfiedAt(e.Sentence, m)
	return sat.Intersection(quant).EqualByInterval(quant)
}

// UnsatisfiedFormulas returns the indices of formulas (hard or soft)
// not fully satisfied under m, the U(m) set MaxWalkSat's step 1 needs.
// A soft formula counts as unsatisfied whenever it is not fully
// satisfied, matching the hard-formula test, so random-restart search
// keeps working on soft formulas too rather than only hard ones.
func (d *Domain) UnsatisfiedFormulas(m *model.Model) []int {
	var out []int
	for i, e := range d.formulas {
		if !d.formulaFullySatisfied(e, m) {
			out = append(out, i)
		}
	}
	return out
}

// ReplaceInfForms returns a Domain identical to d except every hard
// formula has been given a finite pseudo-weight of HardFormulaFactor,
// turning optimization under hard constraints into pure max-sum.
func (d *Domain) ReplaceInfForms() *Domain {
	next := *d
	next.formulas = make([]logic.ELSentence, len(d.formulas))
	for i, e := range d.formulas {
		if e.IsHard() {
			w := d.hardFormulaFactor
			e.Weight = &w
		}
		next.formulas[i] = e
	}
	return &next
}

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

import "github.com/spantime/spantime/model"

// EvalReport is a read-only "how satisfied is this model" summary: a
// pre-search report of each formula's score and satisfaction without
// running MaxWalkSat.
type EvalReport struct {
	TotalScore     float64
	FullySatisfied bool
	PerFormula     []FormulaReport
}

// FormulaReport is one formula's contribution to an EvalReport.
type FormulaReport struct {
	Index     int
	Hard      bool
	Weight    float64
	Score     float64
	Satisfied bool
}

// EvalReport evaluates every formula against m without mutating it.
func (d *Domain) EvalReport(m *model.Model) EvalReport {
	r := EvalReport{FullySatisfied: true}
	for i, e := range d.formulas {
		fr := FormulaReport{
			Index:     i,
			Hard:      e.IsHard(),
			Score:     d.ScoreFormula(e, m),
			Satisfied: d.formulaFullySatisfied(e, m),
		}
		if !e.IsHard() {
			fr.Weight = *e.Weight
		}
		if e.IsHard() && !fr.Satisfied {
			r.FullySatisfied = false
		}
		r.TotalScore += fr.Score
		r.PerFormula = append(r.PerFormula, fr)
	}
	return r
}

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

package logic

import "github.com/spantime/spantime/siset"

// ELSentence is a Sentence paired with an optional weight and an
// optional quantification. A nil Weight marks a hard formula (must hold
// everywhere its quantification demands); a nil Quantification means
// "everywhere inside the Domain's maxInterval".
type ELSentence struct {
	Sentence       Sentence
	Weight         *float64
	Quantification *siset.SISet
}

// NewSoft builds a weighted (soft) ELSentence.
func NewSoft(s Sentence, weight float64) ELSentence {
	w := weight
	return ELSentence{Sentence: s, Weight: &w}
}

// NewHard builds a hard (unweighted) ELSentence.
func NewHard(s Sentence) ELSentence {
	return ELSentence{Sentence: s}
}

// IsHard reports whether e has no finite weight.
func (e ELSentence) IsHard() bool { return e.Weight == nil }

// WithQuantification returns a copy of e scoped to the given
// quantification SISet.
func (e ELSentence) WithQuantification(q *siset.SISet) ELSentence {
	e.Quantification = q
	return e
}

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

// Package model implements Model, the mapping from ground atoms to the
// SISet of times at which they are true. Its internal layout echoes
// factstore.TemporalStore's map-of-predicate-to-interval-storage shape:
// here the per-atom value is a *siset.SISet directly, since
// span-interval logic's atoms are already keyed by their full ground
// argument list rather than needing a secondary index by predicate.
package model

import (
	"sort"

	"github.com/spantime/spantime/logic"
	"github.com/spantime/spantime/siset"
	"github.com/spantime/spantime/span"
)

// Model maps ground Atom -> SISet of times where it is true. Atoms
// absent from the map are false everywhere. Models are value-like:
// Clone is cheap to call before a search move that should not disturb
// the original.
type Model struct {
	maxInterval span.Interval
	atoms       map[string]entry
}

type entry struct {
	atom  logic.Atom
	times *siset.SISet
}

// New builds an empty Model scoped to maxInterval.
func New(maxInterval span.Interval) *Model {
	return &Model{maxInterval: maxInterval, atoms: make(map[string]entry)}
}

// MaxInterval returns the universe this Model's SISets are scoped to.
func (m *Model) MaxInterval() span.Interval { return m.maxInterval }

// AtomAt returns the SISet of times a is true, empty if a is absent.
func (m *Model) AtomAt(a logic.Atom) *siset.SISet {
	if e, ok := m.atoms[a.Key()]; ok {
		return e.times
	}
	return siset.New(m.maxInterval, false)
}

// SetAtom replaces a's truth-set with times.
func (m *Model) SetAtom(a logic.Atom, times *siset.SISet) {
	if times.IsEmpty() {
		delete(m.atoms, a.Key())
		return
	}
	m.atoms[a.Key()] = entry{atom: a, times: times}
}

// UnsetAtom subtracts where from a's current truth-set.
func (m *Model) UnsetAtom(a logic.Atom, where *siset.SISet) {
	m.SetAtom(a, m.AtomAt(a).Subtract(where))
}

// Size sums LiqSize() over every atom in the model.
func (m *Model) Size() int64 {
	var total int64
	for _, e := range m.atoms {
		total += e.times.LiqSize()
	}
	return total
}

// Atoms returns every atom mentioned in the model, sorted by key for
// deterministic iteration.
func (m *Model) Atoms() []logic.Atom {
	out := make([]logic.Atom, 0, len(m.atoms))
	for _, e := range m.atoms {
		out = append(out, e.atom)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key() < out[j].Key() })
	return out
}

// Each calls fn for every (atom, times) pair, in sorted-key order.
func (m *Model) Each(fn func(logic.Atom, *siset.SISet)) {
	for _, a := range m.Atoms() {
		fn(a, m.atoms[a.Key()].times)
	}
}

// Clone returns a deep-enough copy safe to mutate independently: the
// SISet values themselves are immutable after construction, so only the
// top-level map needs copying.
func (m *Model) Clone() *Model {
	out := New(m.maxInterval)
	for k, e := range m.atoms {
		out.atoms[k] = e
	}
	return out
}

// Equals reports whether m and o assign the same SISet to every atom
// mentioned by either.
func (m *Model) Equals(o *Model) bool {
	if len(m.atoms) != len(o.atoms) {
		return false
	}
	for k, e := range m.atoms {
		oe, ok := o.atoms[k]
		if !ok || !e.times.Equals(oe.times) {
			return false
		}
	}
	return true
}

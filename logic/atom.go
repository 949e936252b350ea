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

import "strings"

// Atom is a predicate application: a predicate name applied to an
// ordered list of Terms, e.g. p(a, b).
type Atom struct {
	Predicate string
	Args      []Term
}

// NewAtom builds an Atom from a predicate name and argument terms.
func NewAtom(predicate string, args ...Term) Atom {
	return Atom{Predicate: predicate, Args: args}
}

// Arity returns the number of arguments.
func (a Atom) Arity() int { return len(a.Args) }

// IsGround reports whether every argument is a Constant.
func (a Atom) IsGround() bool {
	for _, t := range a.Args {
		if _, ok := t.(Constant); !ok {
			return false
		}
	}
	return true
}

// Key returns the canonical string form used as a map key for ground
// atoms: predicate(arg1,arg2,...). Non-ground atoms never reach Model
// or Domain, so Key does not need to distinguish Variables by ID.
func (a Atom) Key() string {
	var sb strings.Builder
	sb.WriteString(a.Predicate)
	sb.WriteByte('(')
	for i, t := range a.Args {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(t.String())
	}
	sb.WriteByte(')')
	return sb.String()
}

func (a Atom) String() string { return a.Key() }

// Equals reports structural equality between ground atoms.
func (a Atom) Equals(o Atom) bool {
	if a.Predicate != o.Predicate || len(a.Args) != len(o.Args) {
		return false
	}
	for i := range a.Args {
		if !a.Args[i].Equals(o.Args[i]) {
			return false
		}
	}
	return true
}

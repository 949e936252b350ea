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

// Package logic implements the sentence AST of the span-interval logic:
// terms, ground atoms, the seven-way Sentence variant, Allen-relation sets
// on compound operators, and weighted ELSentences. Sentences are
// immutable after construction and held by value, echoing ast.Term and
// ast.Atom's shape but restricted to already-ground formulas.
package logic

import "fmt"

// Term is the building block of Atoms: a Constant naming a concrete
// object, or a Variable awaiting substitution. The grammar this package
// accepts never leaves a Variable unsubstituted past parsing (see
// textfmt), but the type itself stays general so a future grounding
// pass has somewhere to live.
type Term interface {
	isTerm()
	String() string
	Equals(Term) bool
}

// Constant is a Term naming a concrete object by its identifier.
type Constant struct {
	Name string
}

func (Constant) isTerm() {}

func (c Constant) String() string { return c.Name }

// Equals reports whether t is a Constant with the same Name.
func (c Constant) Equals(t Term) bool {
	o, ok := t.(Constant)
	return ok && o.Name == c.Name
}

// Variable is a Term awaiting substitution. ID distinguishes fresh
// copies introduced during sort-expansion from the user-written
// variable of the same Name.
type Variable struct {
	Name string
	ID   int
}

func (Variable) isTerm() {}

func (v Variable) String() string {
	if v.ID == 0 {
		return v.Name
	}
	return fmt.Sprintf("%s#%d", v.Name, v.ID)
}

// Equals reports whether t is a Variable with the same Name and ID.
func (v Variable) Equals(t Term) bool {
	o, ok := t.(Variable)
	return ok && o.Name == v.Name && o.ID == v.ID
}

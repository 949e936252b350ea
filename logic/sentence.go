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

import (
	"sort"
	"strings"

	"github.com/spantime/spantime/span"
)

// Sentence is the tagged-variant formula AST: an Atom, a boolean
// literal, or one of the five compound forms. Sentences are immutable
// once built and may be shared by value across multiple ELSentences.
type Sentence interface {
	isSentence()
	String() string
}

// BoolLit is the constant sentence true or false.
type BoolLit bool

func (BoolLit) isSentence() {}

func (b BoolLit) String() string {
	if b {
		return "true"
	}
	return "false"
}

// atomSentence adapts an Atom into a Sentence leaf.
type atomSentence struct{ Atom Atom }

func (atomSentence) isSentence() {}

func (a atomSentence) String() string { return a.Atom.String() }

// AtomSentence wraps a ground Atom as a Sentence leaf.
func AtomSentence(a Atom) Sentence { return atomSentence{Atom: a} }

// AsAtom reports whether s is an atom leaf, returning the Atom and ok.
func AsAtom(s Sentence) (Atom, bool) {
	a, ok := s.(atomSentence)
	return a.Atom, ok
}

// Negation is the logical complement of a sub-sentence.
type Negation struct{ Sub Sentence }

func (Negation) isSentence() {}

func (n Negation) String() string { return "!(" + n.Sub.String() + ")" }

// Disjunction is the union of two sub-sentences' satisfaction sets.
type Disjunction struct{ Left, Right Sentence }

func (Disjunction) isSentence() {}

func (d Disjunction) String() string { return "(" + d.Left.String() + " v " + d.Right.String() + ")" }

// Conjunction combines two sub-sentences' satisfaction sets, gated by a
// set of admissible IntervalRelations between their witnesses. An empty
// Relations set is never valid input (the parser's "*" shorthand must
// expand to the full relation set before a Conjunction is built).
type Conjunction struct {
	Left, Right Sentence
	Relations   []span.IntervalRelation
}

func (Conjunction) isSentence() {}

func (c Conjunction) String() string {
	return "(" + c.Left.String() + " ^" + relationSetString(c.Relations) + " " + c.Right.String() + ")"
}

// DiamondOp is the modal "there exists a related interval" operator,
// parameterised by the set of relations that witness admit.
type DiamondOp struct {
	Sub       Sentence
	Relations []span.IntervalRelation
}

func (DiamondOp) isSentence() {}

func (d DiamondOp) String() string { return "<>" + relationSetString(d.Relations) + "(" + d.Sub.String() + ")" }

// LiquidOp marks a sub-tree evaluated in liquid (point-based) semantics.
type LiquidOp struct{ Sub Sentence }

func (LiquidOp) isSentence() {}

func (l LiquidOp) String() string { return "[" + l.Sub.String() + "]" }

func relationSetString(rels []span.IntervalRelation) string {
	names := make([]string, len(rels))
	for i, r := range rels {
		names[i] = r.String()
	}
	sort.Strings(names)
	return "{" + strings.Join(names, ",") + "}"
}

// AllRelations is the full set of Allen relations plus the union
// variants, in the canonical order used to expand the formula grammar's
// "*" conjunction shorthand.
var AllRelations = []span.IntervalRelation{
	span.MEETS, span.MEETSI, span.UMEETS, span.UMEETSI,
	span.OVERLAPS, span.OVERLAPSI, span.STARTS, span.STARTSI,
	span.DURING, span.DURINGI, span.FINISHES, span.FINISHESI,
	span.EQUALS, span.GREATERTHAN, span.LESSTHAN,
}

// IsSimpleLiteral reports whether s is an Atom or the Negation of an
// Atom.
func IsSimpleLiteral(s Sentence) bool {
	if _, ok := AsAtom(s); ok {
		return true
	}
	if n, ok := s.(Negation); ok {
		_, ok := AsAtom(n.Sub)
		return ok
	}
	return false
}

// IsPELCNFLiteral reports whether s is one of the literal forms the
// preprocessor's clausal normal form accepts: an Atom, a BoolLit, a
// LiquidOp, a Negation of any of those or of a DiamondOp, a DiamondOp of
// {Atom,BoolLit,LiquidOp}, or a Conjunction of two {Atom,BoolLit}.
func IsPELCNFLiteral(s Sentence) bool {
	switch v := s.(type) {
	case atomSentence, BoolLit, LiquidOp:
		return true
	case Negation:
		switch v.Sub.(type) {
		case atomSentence, BoolLit, LiquidOp, DiamondOp:
			return true
		}
		return false
	case DiamondOp:
		switch v.Sub.(type) {
		case atomSentence, BoolLit, LiquidOp:
			return true
		}
		return false
	case Conjunction:
		return isAtomOrBool(v.Left) && isAtomOrBool(v.Right)
	}
	return false
}

func isAtomOrBool(s Sentence) bool {
	switch s.(type) {
	case atomSentence, BoolLit:
		return true
	}
	return false
}

// Atoms collects every distinct ground Atom referenced by s, in
// first-encountered order (stable for determinism once the caller sorts
// by key).
func Atoms(s Sentence) []Atom {
	var out []Atom
	seen := map[string]bool{}
	var walk func(Sentence)
	walk = func(s Sentence) {
		switch v := s.(type) {
		case atomSentence:
			if !seen[v.Atom.Key()] {
				seen[v.Atom.Key()] = true
				out = append(out, v.Atom)
			}
		case BoolLit:
		case Negation:
			walk(v.Sub)
		case Disjunction:
			walk(v.Left)
			walk(v.Right)
		case Conjunction:
			walk(v.Left)
			walk(v.Right)
		case DiamondOp:
			walk(v.Sub)
		case LiquidOp:
			walk(v.Sub)
		}
	}
	walk(s)
	return out
}

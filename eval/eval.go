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

// Package eval implements the interval-satisfaction evaluator:
// satisfiedAt(sentence, model, domain) -> SISet, the set of ordinary
// intervals at which a Sentence holds in a given Model. It is the only
// consumer of span.SpanInterval.SatisfiesRelation/ComposedOf outside
// the siset package itself.
package eval

import (
	"github.com/spantime/spantime/logic"
	"github.com/spantime/spantime/model"
	"github.com/spantime/spantime/siset"
	"github.com/spantime/spantime/span"
)

// Context is the slice of Domain the evaluator needs: the universe and
// its liquid-closure SISet. Declared here (rather than importing
// package domain) to keep eval a leaf package that domain depends on,
// not the reverse.
type Context interface {
	MaxInterval() span.Interval
	MaxSISet() *siset.SISet
}

// SatisfiedAt returns the SISet of ordinary intervals within
// ctx.MaxInterval() at which s holds under m.
func SatisfiedAt(s logic.Sentence, m *model.Model, ctx Context) *siset.SISet {
	return satisfiedAt(s, m, ctx, false)
}

func satisfiedAt(s logic.Sentence, m *model.Model, ctx Context, inLiquid bool) *siset.SISet {
	if a, ok := logic.AsAtom(s); ok {
		return liquify(m.AtomAt(a).Intersection(ctx.MaxSISet()), inLiquid)
	}
	switch v := s.(type) {
	case logic.BoolLit:
		if bool(v) {
			return liquify(ctx.MaxSISet(), inLiquid)
		}
		return siset.New(ctx.MaxInterval(), inLiquid)
	case logic.Negation:
		return liquify(satisfiedAt(v.Sub, m, ctx, inLiquid).Complement(), inLiquid)
	case logic.Disjunction:
		l := satisfiedAt(v.Left, m, ctx, inLiquid)
		r := satisfiedAt(v.Right, m, ctx, inLiquid)
		return liquify(l.Union(r), inLiquid)
	case logic.Conjunction:
		if inLiquid {
			l := satisfiedAt(v.Left, m, ctx, true)
			r := satisfiedAt(v.Right, m, ctx, true)
			return liquify(l.Intersection(r), inLiquid)
		}
		return composeConjunction(v, m, ctx)
	case logic.DiamondOp:
		// The parser rejects DiamondOp inside LiquidOp; the core
		// evaluator itself just evaluates it in ordinary semantics,
		// leaving grammar-level rejection to textfmt.
		sub := satisfiedAt(v.Sub, m, ctx, false)
		out := siset.New(ctx.MaxInterval(), false)
		for _, r := range v.Relations {
			out = out.Union(sub.SatisfiesRelation(r))
		}
		return liquify(out, inLiquid)
	case logic.LiquidOp:
		return satisfiedAt(v.Sub, m, ctx, true).ToLiquidInc()
	default:
		return siset.New(ctx.MaxInterval(), inLiquid)
	}
}

func liquify(s *siset.SISet, inLiquid bool) *siset.SISet {
	if inLiquid {
		return s.ToLiquidInc()
	}
	return s
}

// composeConjunction implements the witness search: for each relation
// in v.Relations, every pairing of a left witness SpanInterval and a
// right witness SpanInterval that admits the relation (via
// span.ComposedOf) contributes its spanning occurrence to the result,
// unioned across all pairings and all relations.
func composeConjunction(v logic.Conjunction, m *model.Model, ctx Context) *siset.SISet {
	l := satisfiedAt(v.Left, m, ctx, false)
	r := satisfiedAt(v.Right, m, ctx, false)
	out := siset.New(ctx.MaxInterval(), false)
	for _, rel := range v.Relations {
		for _, a := range l.Elements() {
			for _, b := range r.Elements() {
				if c, ok := span.ComposedOf(a, b, rel); ok {
					out = out.Add(c)
				}
			}
		}
	}
	return out.Intersection(ctx.MaxSISet())
}

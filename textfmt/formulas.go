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

package textfmt

import (
	"strconv"
	"unicode"

	"github.com/spantime/spantime/logic"
	"github.com/spantime/spantime/siset"
	"github.com/spantime/spantime/span"
)

// isVariableLike reports whether an identifier follows the
// capital-letter convention for variables ("constants start lowercase,
// variables start with a capital letter"). This grammar's constants
// are bare identifiers, so a leading uppercase letter is the signal a
// would-be variable was written; the parser rejects it instead of
// attempting first-order grounding.
func isVariableLike(name string) bool {
	return name != "" && unicode.IsUpper(rune(name[0]))
}

// ParsedFormula is one statement from a formula file: the sentence, an
// optional weight (nil means hard), and an optional quantification
// span-interval spec (nil means "everywhere").
type ParsedFormula struct {
	Sentence       logic.Sentence
	Weight         *float64
	Quantification []span.SpanInterval
}

// ParseFormulas parses a complete formula file: the same preamble
// grammar as ParseFacts (ignored here beyond validating it parses),
// followed by zero or more weighted formula statements.
func ParseFormulas(src string) ([]ParsedFormula, error) {
	p := newParser(src)
	var out []ParsedFormula
	for !p.atEOF() {
		if p.isIdent("type") {
			if err := parseTypeDecl(p, map[string][]string{}, map[string]int{}); err != nil {
				return nil, err
			}
			continue
		}
		pf, err := parseFormulaStatement(p)
		if err != nil {
			return nil, err
		}
		out = append(out, pf)
	}
	return out, nil
}

func parseFormulaStatement(p *parser) (ParsedFormula, error) {
	var weight *float64
	if w, ok, err := tryParseWeightPrefix(p); err != nil {
		return ParsedFormula{}, err
	} else if ok {
		weight = w
	}
	s, err := parseImplication(p)
	if err != nil {
		return ParsedFormula{}, err
	}
	var quant []span.SpanInterval
	if p.isPunct("@") {
		p.take()
		quant, err = p.parseSpanIntervalSpec()
		if err != nil {
			return ParsedFormula{}, err
		}
	}
	return ParsedFormula{Sentence: s, Weight: weight, Quantification: quant}, nil
}

// tryParseWeightPrefix speculatively consumes "<weight> :" if present.
// Because a bare number never starts a formula (formulas start with an
// identifier, "!", "<>", "(", or "["), seeing a number token is
// sufficient lookahead to commit to the weight-prefix branch.
func tryParseWeightPrefix(p *parser) (*float64, bool, error) {
	t := p.peek()
	isInf := t.kind == tokIdent && t.text == "inf"
	if t.kind != tokNumber && !isInf {
		return nil, false, nil
	}
	p.take()
	if err := p.expectPunct(":"); err != nil {
		return nil, false, err
	}
	if isInf {
		return nil, true, nil
	}
	w, err := strconv.ParseFloat(t.text, 64)
	if err != nil {
		return nil, false, &ParseError{Line: t.line, Col: t.col, Msg: "malformed weight " + t.text}
	}
	if w < 0 {
		return nil, false, &ParseError{Line: t.line, Col: t.col, Msg: "weight must be non-negative"}
	}
	return &w, true, nil
}

// parseImplication handles "->", the lowest-precedence operator,
// desugaring a -> b to Disjunction(Negation(a), b).
func parseImplication(p *parser) (logic.Sentence, error) {
	left, err := parseDisjunction(p)
	if err != nil {
		return nil, err
	}
	if p.isPunct("->") {
		p.take()
		right, err := parseImplication(p)
		if err != nil {
			return nil, err
		}
		return logic.Disjunction{Left: logic.Negation{Sub: left}, Right: right}, nil
	}
	return left, nil
}

func parseDisjunction(p *parser) (logic.Sentence, error) {
	left, err := parseConjunction(p)
	if err != nil {
		return nil, err
	}
	for p.isIdent("v") {
		p.take()
		right, err := parseConjunction(p)
		if err != nil {
			return nil, err
		}
		left = logic.Disjunction{Left: left, Right: right}
	}
	return left, nil
}

func parseConjunction(p *parser) (logic.Sentence, error) {
	left, err := parseUnary(p)
	if err != nil {
		return nil, err
	}
	for p.isPunct("^") {
		p.take()
		rels := []span.IntervalRelation{span.EQUALS}
		if p.isPunct("{") || p.isPunct("*") {
			rels, err = p.parseRelationSet()
			if err != nil {
				return nil, err
			}
		}
		right, err := parseUnary(p)
		if err != nil {
			return nil, err
		}
		left = logic.Conjunction{Left: left, Right: right, Relations: rels}
	}
	return left, nil
}

func parseUnary(p *parser) (logic.Sentence, error) {
	if p.isPunct("!") {
		p.take()
		sub, err := parseUnary(p)
		if err != nil {
			return nil, err
		}
		return logic.Negation{Sub: sub}, nil
	}
	if p.isPunct("<>") {
		p.take()
		rels, err := p.parseRelationSet()
		if err != nil {
			return nil, err
		}
		sub, err := parseUnary(p)
		if err != nil {
			return nil, err
		}
		if _, ok := sub.(logic.LiquidOp); ok {
			return nil, p.errorf("diamond operator cannot be applied inside liquid context")
		}
		return logic.DiamondOp{Sub: sub, Relations: rels}, nil
	}
	return parsePrimary(p)
}

func parsePrimary(p *parser) (logic.Sentence, error) {
	switch {
	case p.isPunct("("):
		p.take()
		s, err := parseImplication(p)
		if err != nil {
			return nil, err
		}
		if err := p.expectPunct(")"); err != nil {
			return nil, err
		}
		return s, nil
	case p.isPunct("["):
		p.take()
		s, err := parseImplication(p)
		if err != nil {
			return nil, err
		}
		if containsDiamond(s) {
			return nil, p.errorf("diamond operator cannot be applied inside liquid context")
		}
		if err := p.expectPunct("]"); err != nil {
			return nil, err
		}
		return logic.LiquidOp{Sub: s}, nil
	case p.isIdent("true"):
		p.take()
		return logic.BoolLit(true), nil
	case p.isIdent("false"):
		p.take()
		return logic.BoolLit(false), nil
	default:
		t := p.peek()
		if t.kind != tokIdent {
			return nil, p.errorf("expected formula, got %q", t.text)
		}
		return parseAtomSentence(p)
	}
}

func parseAtomSentence(p *parser) (logic.Sentence, error) {
	pred, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	if err := p.expectPunct("("); err != nil {
		return nil, err
	}
	var args []logic.Term
	if !p.isPunct(")") {
		for {
			t := p.peek()
			if t.kind != tokIdent {
				return nil, p.errorf("expected a constant, got %q", t.text)
			}
			if isVariableLike(t.text) {
				return nil, p.errorf("free variable %q is not supported: formulas must be ground", t.text)
			}
			p.take()
			args = append(args, logic.Constant{Name: t.text})
			if p.isPunct(",") {
				p.take()
				continue
			}
			break
		}
	}
	if err := p.expectPunct(")"); err != nil {
		return nil, err
	}
	return logic.AtomSentence(logic.NewAtom(pred, args...)), nil
}

func containsDiamond(s logic.Sentence) bool {
	switch v := s.(type) {
	case logic.DiamondOp:
		return true
	case logic.Negation:
		return containsDiamond(v.Sub)
	case logic.Disjunction:
		return containsDiamond(v.Left) || containsDiamond(v.Right)
	case logic.Conjunction:
		return containsDiamond(v.Left) || containsDiamond(v.Right)
	case logic.LiquidOp:
		return containsDiamond(v.Sub)
	}
	return false
}

// QuantificationSISet converts a ParsedFormula's raw span-interval list
// into a siset.SISet scoped to the given universe, or nil if the
// formula carried no "@" quantification.
func QuantificationSISet(pf ParsedFormula, universe span.Interval) *siset.SISet {
	if pf.Quantification == nil {
		return nil
	}
	return siset.Of(universe, false, pf.Quantification...)
}

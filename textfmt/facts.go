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
	"github.com/spantime/spantime/domain"
	"github.com/spantime/spantime/logic"
	"github.com/spantime/spantime/siset"
	"github.com/spantime/spantime/span"
)

// FactFile is the parsed result of one fact file: the preamble's sort
// and predicate-signature declarations, plus the timed facts
// themselves, carried separately from domain.Options so a caller can
// inspect or override before calling domain.New.
type FactFile struct {
	Sorts      map[string][]string
	Signatures map[string]int
	Facts      []domain.ObservedFact
	// Observed is the tightest ordinary interval covering every fact's
	// span-intervals: the default maxInterval a caller falls back to
	// when no --min/--max override is given.
	Observed span.Interval
}

type rawFactStmt struct {
	atom      logic.Atom
	negated   bool
	intervals []span.SpanInterval
}

// ParseFacts parses a complete fact file. An empty file (no timed
// facts at all) is a DomainError, not a ParseError: the text is
// syntactically fine, but there is no way to bound maxInterval.
func ParseFacts(src string) (*FactFile, error) {
	p := newParser(src)
	sorts := map[string][]string{}
	signatures := map[string]int{}
	var raw []rawFactStmt

	for !p.atEOF() {
		if p.isIdent("type") {
			if err := parseTypeDecl(p, sorts, signatures); err != nil {
				return nil, err
			}
			continue
		}
		stmt, err := parseFactStatement(p)
		if err != nil {
			return nil, err
		}
		raw = append(raw, stmt)
	}
	if len(raw) == 0 {
		return nil, &domain.Error{Msg: "facts file is empty: no way to bound maxInterval"}
	}

	observed := raw[0].intervals[0].Bounding()
	for _, stmt := range raw {
		for _, si := range stmt.intervals {
			observed = observed.Union(si.Bounding())
		}
	}

	ff := &FactFile{Sorts: sorts, Signatures: signatures, Observed: observed}
	for _, stmt := range raw {
		times := siset.Of(observed, false, stmt.intervals...)
		ff.Facts = append(ff.Facts, domain.ObservedFact{
			Atom:    stmt.atom,
			Times:   times,
			Negated: stmt.negated,
		})
	}
	return ff, nil
}

func parseTypeDecl(p *parser, sorts map[string][]string, signatures map[string]int) error {
	if _, err := p.expectIdent(); err != nil { // "type"
		return err
	}
	if err := p.expectPunct(":"); err != nil {
		return err
	}
	name, err := p.expectIdent()
	if err != nil {
		return err
	}
	if p.isPunct("=") {
		p.take()
		if err := p.expectPunct("{"); err != nil {
			return err
		}
		var members []string
		for {
			m, err := p.expectIdent()
			if err != nil {
				return err
			}
			members = append(members, m)
			if p.isPunct(",") {
				p.take()
				continue
			}
			break
		}
		if err := p.expectPunct("}"); err != nil {
			return err
		}
		sorts[name] = members
		return nil
	}
	if err := p.expectPunct("("); err != nil {
		return err
	}
	arity := 0
	if !p.isPunct(")") {
		for {
			if _, err := p.expectIdent(); err != nil {
				return err
			}
			arity++
			if p.isPunct(",") {
				p.take()
				continue
			}
			break
		}
	}
	if err := p.expectPunct(")"); err != nil {
		return err
	}
	signatures[name] = arity
	return nil
}

func parseFactStatement(p *parser) (rawFactStmt, error) {
	negated := false
	if p.isPunct("!") {
		p.take()
		negated = true
	}
	pred, err := p.expectIdent()
	if err != nil {
		return rawFactStmt{}, err
	}
	if err := p.expectPunct("("); err != nil {
		return rawFactStmt{}, err
	}
	var args []logic.Term
	if !p.isPunct(")") {
		for {
			c, err := p.expectIdent()
			if err != nil {
				return rawFactStmt{}, err
			}
			if isVariableLike(c) {
				return rawFactStmt{}, p.errorf("free variable %q is not supported: facts must be ground", c)
			}
			args = append(args, logic.Constant{Name: c})
			if p.isPunct(",") {
				p.take()
				continue
			}
			break
		}
	}
	if err := p.expectPunct(")"); err != nil {
		return rawFactStmt{}, err
	}
	if err := p.expectPunct("@"); err != nil {
		return rawFactStmt{}, err
	}
	si, err := p.parseSpanIntervalSpec()
	if err != nil {
		return rawFactStmt{}, err
	}
	return rawFactStmt{atom: logic.NewAtom(pred, args...), negated: negated, intervals: si}, nil
}

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
	"fmt"
	"strconv"

	"github.com/spantime/spantime/logic"
	"github.com/spantime/spantime/span"
)

// parser is the shared token-buffer machinery both the fact-file and
// formula-file readers build on: a one-token lookahead recursive
// descent parser over the shared lexer.
type parser struct {
	lex  *lexer
	tok  token
	have bool
}

func newParser(src string) *parser {
	return &parser{lex: newLexer(src)}
}

func (p *parser) peek() token {
	if !p.have {
		p.tok = p.lex.next()
		p.have = true
	}
	return p.tok
}

func (p *parser) take() token {
	t := p.peek()
	p.have = false
	return t
}

func (p *parser) atEOF() bool { return p.peek().kind == tokEOF }

func (p *parser) errorf(format string, args ...interface{}) *ParseError {
	t := p.peek()
	return &ParseError{Line: t.line, Col: t.col, Msg: fmt.Sprintf(format, args...)}
}

// expectPunct consumes a punctuation token matching text or returns a
// ParseError.
func (p *parser) expectPunct(text string) error {
	t := p.peek()
	if t.kind != tokPunct || t.text != text {
		return p.errorf("expected %q, got %q", text, t.text)
	}
	p.take()
	return nil
}

// expectIdent consumes and returns an identifier token's text.
func (p *parser) expectIdent() (string, error) {
	t := p.peek()
	if t.kind != tokIdent {
		return "", p.errorf("expected identifier, got %q", t.text)
	}
	p.take()
	return t.text, nil
}

func (p *parser) isPunct(text string) bool {
	t := p.peek()
	return t.kind == tokPunct && t.text == text
}

func (p *parser) isIdent(text string) bool {
	t := p.peek()
	return t.kind == tokIdent && t.text == text
}

// expectNumber consumes a number token and returns its integer value;
// a fractional number outside weight position is rejected here.
func (p *parser) expectNumber() (int64, error) {
	t := p.peek()
	if t.kind != tokNumber {
		return 0, p.errorf("expected number, got %q", t.text)
	}
	p.take()
	n, err := strconv.ParseInt(t.text, 10, 64)
	if err != nil {
		return 0, &ParseError{Line: t.line, Col: t.col, Msg: fmt.Sprintf("expected an integer, got %q", t.text)}
	}
	return n, nil
}

// parseRelationSet parses "{REL, REL, ...}" or the "*" shorthand for
// logic.AllRelations, used by both Conjunction annotations and
// DiamondOp.
func (p *parser) parseRelationSet() ([]span.IntervalRelation, error) {
	if p.isPunct("*") {
		p.take()
		return append([]span.IntervalRelation(nil), logic.AllRelations...), nil
	}
	if err := p.expectPunct("{"); err != nil {
		return nil, err
	}
	var rels []span.IntervalRelation
	for {
		name, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		r, err := span.ParseRelation(name)
		if err != nil {
			return nil, p.errorf("%v", err)
		}
		rels = append(rels, r)
		if p.isPunct(",") {
			p.take()
			continue
		}
		break
	}
	if err := p.expectPunct("}"); err != nil {
		return nil, err
	}
	return rels, nil
}

// parseSpanIntervalLiteral parses one of the three interval literal
// forms directly (rather than re-lexing through siset.ParseSpanInterval)
// so column-accurate ParseErrors can be raised; it recognizes "[i,j]",
// "[i:j]", and "[(i,j),(k,l)]".
func (p *parser) parseSpanIntervalLiteral() (span.SpanInterval, error) {
	if err := p.expectPunct("["); err != nil {
		return span.Empty, err
	}
	if p.isPunct("(") {
		s, err := p.parseCornerPair()
		if err != nil {
			return span.Empty, err
		}
		if err := p.expectPunct(","); err != nil {
			return span.Empty, err
		}
		f, err := p.parseCornerPair()
		if err != nil {
			return span.Empty, err
		}
		if err := p.expectPunct("]"); err != nil {
			return span.Empty, err
		}
		return span.SpanInterval{S: s, F: f}.Normalize(), nil
	}
	start, err := p.expectNumber()
	if err != nil {
		return span.Empty, err
	}
	if p.isPunct(":") {
		p.take()
	} else if err := p.expectPunct(","); err != nil {
		return span.Empty, err
	}
	finish, err := p.expectNumber()
	if err != nil {
		return span.Empty, err
	}
	if err := p.expectPunct("]"); err != nil {
		return span.Empty, err
	}
	return span.Liquid(span.NewInterval(start, finish)), nil
}

func (p *parser) parseCornerPair() (span.Interval, error) {
	if err := p.expectPunct("("); err != nil {
		return span.Interval{}, err
	}
	a, err := p.expectNumber()
	if err != nil {
		return span.Interval{}, err
	}
	if err := p.expectPunct(","); err != nil {
		return span.Interval{}, err
	}
	b, err := p.expectNumber()
	if err != nil {
		return span.Interval{}, err
	}
	if err := p.expectPunct(")"); err != nil {
		return span.Interval{}, err
	}
	return span.NewInterval(a, b), nil
}

// parseSpanIntervalSpec parses either a single span-interval literal or
// a brace-delimited list of them, "{ <interval> (, <interval>)* }", as
// used after "@" in both fact and formula statements.
func (p *parser) parseSpanIntervalSpec() ([]span.SpanInterval, error) {
	if p.isPunct("{") {
		p.take()
		var out []span.SpanInterval
		for {
			si, err := p.parseSpanIntervalLiteral()
			if err != nil {
				return nil, err
			}
			out = append(out, si)
			if p.isPunct(",") {
				p.take()
				continue
			}
			break
		}
		if err := p.expectPunct("}"); err != nil {
			return nil, err
		}
		return out, nil
	}
	si, err := p.parseSpanIntervalLiteral()
	if err != nil {
		return nil, err
	}
	return []span.SpanInterval{si}, nil
}

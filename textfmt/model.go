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
	"strings"

	"github.com/spantime/spantime/logic"
	"github.com/spantime/spantime/model"
	"github.com/spantime/spantime/siset"
	"github.com/spantime/spantime/span"
)

// WriteModel renders m in the output-model text format: one line per
// mentioned atom, "<atom> @ <siset>", atoms in sorted-key order for
// determinism.
func WriteModel(m *model.Model) string {
	var sb strings.Builder
	m.Each(func(a logic.Atom, times *siset.SISet) {
		fmt.Fprintf(&sb, "%s @ %s\n", a.String(), times.String())
	})
	return sb.String()
}

// ParseModel parses a model previously produced by WriteModel, scoped
// to maxInterval. ParseModel(WriteModel(m)) == m for any m whose
// maxInterval matches.
func ParseModel(src string, maxInterval span.Interval) (*model.Model, error) {
	m := model.New(maxInterval)
	lines := strings.Split(src, "\n")
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		atomText, sisetText, ok := strings.Cut(line, "@")
		if !ok {
			return nil, &ParseError{Msg: fmt.Sprintf("malformed model line %q: missing '@'", line)}
		}
		a, err := parseAtomText(strings.TrimSpace(atomText))
		if err != nil {
			return nil, err
		}
		set, err := siset.ParseSISet(maxInterval, false, strings.TrimSpace(sisetText))
		if err != nil {
			return nil, err
		}
		m.SetAtom(a, set)
	}
	return m, nil
}

func parseAtomText(text string) (logic.Atom, error) {
	p := newParser(text)
	pred, err := p.expectIdent()
	if err != nil {
		return logic.Atom{}, err
	}
	if err := p.expectPunct("("); err != nil {
		return logic.Atom{}, err
	}
	var args []logic.Term
	if !p.isPunct(")") {
		for {
			c, err := p.expectIdent()
			if err != nil {
				return logic.Atom{}, err
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
		return logic.Atom{}, err
	}
	return logic.NewAtom(pred, args...), nil
}

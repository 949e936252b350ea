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

package siset

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spantime/spantime/span"
)

// ParseSpanInterval parses one of the three SpanInterval literal forms:
// "[i,j]" or "[i:j]" (liquid) or "[(i,j),(k,l)]" (explicit S/F
// corners). It is shared by textfmt's fact/formula/model readers so
// the grammar is defined in exactly one place.
func ParseSpanInterval(text string) (span.SpanInterval, error) {
	t := strings.TrimSpace(text)
	if !strings.HasPrefix(t, "[") || !strings.HasSuffix(t, "]") {
		return span.Empty, fmt.Errorf("siset: malformed span-interval %q: missing brackets", text)
	}
	inner := t[1 : len(t)-1]
	if strings.HasPrefix(inner, "(") {
		parts := strings.SplitN(inner, "),(", 2)
		if len(parts) != 2 {
			return span.Empty, fmt.Errorf("siset: malformed span-interval %q", text)
		}
		left := strings.TrimPrefix(parts[0], "(")
		right := strings.TrimSuffix(parts[1], ")")
		s, err := parsePair(left)
		if err != nil {
			return span.Empty, fmt.Errorf("siset: %q: %w", text, err)
		}
		f, err := parsePair(right)
		if err != nil {
			return span.Empty, fmt.Errorf("siset: %q: %w", text, err)
		}
		return span.SpanInterval{S: s, F: f}.Normalize(), nil
	}
	sep := ","
	if strings.Contains(inner, ":") {
		sep = ":"
	}
	i, err := parsePair(strings.ReplaceAll(inner, sep, ","))
	if err != nil {
		return span.Empty, fmt.Errorf("siset: %q: %w", text, err)
	}
	return span.Liquid(i), nil
}

func parsePair(s string) (span.Interval, error) {
	parts := strings.SplitN(s, ",", 2)
	if len(parts) != 2 {
		return span.Interval{}, fmt.Errorf("expected \"a,b\", got %q", s)
	}
	a, err := strconv.ParseInt(strings.TrimSpace(parts[0]), 10, 64)
	if err != nil {
		return span.Interval{}, fmt.Errorf("bad endpoint %q: %w", parts[0], err)
	}
	b, err := strconv.ParseInt(strings.TrimSpace(parts[1]), 10, 64)
	if err != nil {
		return span.Interval{}, fmt.Errorf("bad endpoint %q: %w", parts[1], err)
	}
	return span.NewInterval(a, b), nil
}

// ParseSISet parses a brace-delimited list of SpanInterval literals,
// "{s1, s2, ...}", as printed by String.
func ParseSISet(maxInterval span.Interval, forceLiquid bool, text string) (*SISet, error) {
	t := strings.TrimSpace(text)
	if !strings.HasPrefix(t, "{") || !strings.HasSuffix(t, "}") {
		return nil, fmt.Errorf("siset: malformed siset %q: missing braces", text)
	}
	inner := strings.TrimSpace(t[1 : len(t)-1])
	if inner == "" {
		return New(maxInterval, forceLiquid), nil
	}
	var members []span.SpanInterval
	for _, piece := range splitTopLevel(inner) {
		m, err := ParseSpanInterval(piece)
		if err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return Of(maxInterval, forceLiquid, members...), nil
}

// splitTopLevel splits a comma-separated list of span-interval literals
// without breaking on the commas nested inside "(i,j)" pairs.
func splitTopLevel(s string) []string {
	var out []string
	depth := 0
	start := 0
	for i, r := range s {
		switch r {
		case '[', '(':
			depth++
		case ']', ')':
			depth--
		case ',':
			if depth == 0 {
				out = append(out, strings.TrimSpace(s[start:i]))
				start = i + 1
			}
		}
	}
	out = append(out, strings.TrimSpace(s[start:]))
	return out
}

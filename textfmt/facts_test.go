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
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spantime/spantime/logic"
	"github.com/spantime/spantime/span"
)

func TestParseFactsBasic(t *testing.T) {
	src := `
type: p(name)

p(alice) @ [0:4]
p(bob) @ [(0,2),(3,5)]
`
	ff, err := ParseFacts(src)
	require.NoError(t, err)
	require.Equal(t, map[string]int{"p": 1}, ff.Signatures)
	require.Len(t, ff.Facts, 2)

	alice := logic.NewAtom("p", logic.Constant{Name: "alice"})
	var found bool
	for _, f := range ff.Facts {
		if f.Atom.Equals(alice) {
			found = true
			require.False(t, f.Negated)
		}
	}
	require.True(t, found)
}

func TestParseFactsTypeEnum(t *testing.T) {
	src := `
type: color = { red, green, blue }
p(red) @ [0:1]
`
	ff, err := ParseFacts(src)
	require.NoError(t, err)
	require.Equal(t, []string{"red", "green", "blue"}, ff.Sorts["color"])
}

func TestParseFactsNegation(t *testing.T) {
	src := `!p(a) @ [0:3]`
	ff, err := ParseFacts(src)
	require.NoError(t, err)
	require.Len(t, ff.Facts, 1)
	require.True(t, ff.Facts[0].Negated)
}

func TestParseFactsObservedBoundsCoverEveryFact(t *testing.T) {
	src := `
p(a) @ [0:2]
q(b) @ [5:9]
`
	ff, err := ParseFacts(src)
	require.NoError(t, err)
	require.Equal(t, span.Interval{Start: 0, Finish: 9}, ff.Observed)
}

func TestParseFactsEmptyFileIsDomainError(t *testing.T) {
	_, err := ParseFacts("// just a comment\n")
	require.Error(t, err)
	require.Contains(t, err.Error(), "empty")
}

func TestParseFactsRejectsFreeVariable(t *testing.T) {
	_, err := ParseFacts(`p(X) @ [0:1]`)
	require.Error(t, err)
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	require.NotContains(t, perr.Error(), "SPEC")
}

func TestParseFactsTypeDeclWithMultipleArgs(t *testing.T) {
	_, err := ParseFacts(`type: p(a, b)
p(x, y) @ [0:1]
`)
	require.NoError(t, err)
}

func TestParseFactsMalformedMissingAt(t *testing.T) {
	_, err := ParseFacts(`p(a) [0:1]`)
	require.Error(t, err)
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
}

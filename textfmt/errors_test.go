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
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseErrorFormatsLineAndCol(t *testing.T) {
	err := &ParseError{Line: 3, Col: 7, Msg: "unexpected token"}
	require.Equal(t, `parse error at 3:7: unexpected token`, err.Error())
}

func TestIOErrorUnwraps(t *testing.T) {
	cause := errors.New("disk full")
	err := &IOError{Path: "facts.txt", Cause: cause}
	require.ErrorIs(t, err, cause)
	require.Contains(t, err.Error(), "facts.txt")
}

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
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCSVLoggerWritesHeaderOnce(t *testing.T) {
	var buf bytes.Buffer
	logger := NewCSVLogger(&buf, nil)
	logger.LogIteration(0, 1.0, 1.0)
	logger.LogIteration(1, 2.0, 2.0)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	require.Equal(t, "iteration,current_score,best_score", lines[0])
	require.Equal(t, "0,1,1", lines[1])
	require.Equal(t, "1,2,2", lines[2])
}

func TestCSVLoggerNilOnErrorDoesNotPanic(t *testing.T) {
	var buf bytes.Buffer
	logger := NewCSVLogger(&buf, nil)
	require.NotPanics(t, func() { logger.LogIteration(0, 1.0, 1.0) })
}

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
	"encoding/csv"
	"io"
	"strconv"
)

// CSVLogger implements walksat.Logger by writing a persisted run log,
// one row per accepted move: "iteration,current_score,best_score".
// Kept in textfmt rather than walksat so the search package stays free
// of direct file I/O, with file I/O pushed out to cmd/spantime.
type CSVLogger struct {
	w       *csv.Writer
	wrote   bool
	onError func(error)
}

// NewCSVLogger wraps w, writing a header row lazily before the first
// logged iteration.
func NewCSVLogger(w io.Writer, onError func(error)) *CSVLogger {
	if onError == nil {
		onError = func(error) {}
	}
	return &CSVLogger{w: csv.NewWriter(w), onError: onError}
}

// LogIteration writes one CSV row, implementing walksat.Logger.
func (l *CSVLogger) LogIteration(iteration int, currentScore, bestScore float64) {
	if !l.wrote {
		if err := l.w.Write([]string{"iteration", "current_score", "best_score"}); err != nil {
			l.onError(err)
		}
		l.wrote = true
	}
	row := []string{
		strconv.Itoa(iteration),
		strconv.FormatFloat(currentScore, 'g', -1, 64),
		strconv.FormatFloat(bestScore, 'g', -1, 64),
	}
	if err := l.w.Write(row); err != nil {
		l.onError(err)
		return
	}
	l.w.Flush()
}

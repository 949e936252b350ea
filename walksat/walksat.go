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

// Package walksat implements the MaxWalkSat stochastic local search:
// repeatedly pick an unsatisfied formula, propose a random or greedy
// move over its ground atoms, and accept the best-scoring proposal.
// The search is single-threaded and consults a single
// explicitly-managed PRNG, never the global math/rand source, so a run
// is reproducible from its seed alone.
package walksat

import (
	"math/rand"
	"sort"

	log "github.com/golang/glog"

	"github.com/spantime/spantime/domain"
	"github.com/spantime/spantime/logic"
	"github.com/spantime/spantime/model"
	"github.com/spantime/spantime/siset"
)

// Config gathers MaxWalkSat's run parameters, built by the CLI layer
// from flags (mirroring cmd/mangle-lint's flag-to-struct pattern).
type Config struct {
	Iterations            int
	RandomMoveProbability float64
	Seed                  int64
}

// Logger receives one call per accepted move, the hook a persisted run
// log is built on. Kept out of this package's direct file I/O, keeping
// the search engine I/O-free and pushing I/O to the cmd layer.
type Logger interface {
	LogIteration(iteration int, currentScore, bestScore float64)
}

// NopLogger discards every call.
type NopLogger struct{}

func (NopLogger) LogIteration(int, float64, float64) {}

// move is a candidate local-search step: flip atom's truth value over
// the witness region Where (symmetric difference with its current
// truth-set).
type move struct {
	atom  logic.Atom
	where *siset.SISet
}

// Searcher runs MaxWalkSat over a fixed Domain, owning the current
// model exclusively (it mutates it in place per move) and an
// explicitly-seeded PRNG.
type Searcher struct {
	cfg    Config
	rng    *rand.Rand
	logger Logger
}

// New builds a Searcher with its own seeded PRNG; no stochastic
// decision anywhere in this package consults math/rand's global
// functions.
func New(cfg Config, logger Logger) *Searcher {
	if logger == nil {
		logger = NopLogger{}
	}
	return &Searcher{cfg: cfg, rng: rand.New(rand.NewSource(cfg.Seed)), logger: logger}
}

// Run executes the search against d, starting from m0, and returns the
// best model seen and its score. d is used via ReplaceInfForms so
// hard-formula satisfaction folds into a single max-sum objective.
func (s *Searcher) Run(d *domain.Domain, m0 *model.Model) (*model.Model, float64) {
	scored := d.ReplaceInfForms()
	m := m0.Clone()
	best := m.Clone()
	bestScore := scored.Score(best)

	for iter := 0; iter < s.cfg.Iterations; iter++ {
		unsatisfied := d.UnsatisfiedFormulas(m)
		if len(unsatisfied) == 0 {
			log.V(2).Infof("walksat: all formulas satisfied at iteration %d", iter)
			break
		}
		f := d.Formulas()[unsatisfied[s.rng.Intn(len(unsatisfied))]]
		candidates := s.candidateMoves(d, f, m)
		if len(candidates) == 0 {
			log.Warningf("walksat: no candidate moves for chosen formula at iteration %d, retrying", iter)
			continue
		}

		var chosen move
		if s.rng.Float64() < s.cfg.RandomMoveProbability {
			chosen = candidates[s.rng.Intn(len(candidates))]
		} else {
			chosen = s.bestScoringMove(scored, m, candidates)
		}

		applyMove(m, chosen)
		curScore := scored.Score(m)
		if curScore > bestScore {
			best = m.Clone()
			bestScore = curScore
		}
		s.logger.LogIteration(iter, curScore, bestScore)
	}
	return best, bestScore
}

// candidateMoves enumerates C(f, m): for every ground atom in f, for
// every SpanInterval witness of f's dissatisfaction (where f's
// satisfaction set and its quantification disagree), a move toggling
// that atom over that witness, restricted to the atom's modifiable
// region and filtered per DontModifyObsPreds.
func (s *Searcher) candidateMoves(d *domain.Domain, f logic.ELSentence, m *model.Model) []move {
	quant := f.Quantification
	if quant == nil {
		quant = d.MaxSISet()
	}
	sat := d.SatisfiedAt(f.Sentence, m)
	bad := quant.Subtract(sat).Union(sat.Subtract(quant))
	if bad.IsEmpty() {
		return nil
	}
	witnesses := bad.Elements()

	var moves []move
	for _, a := range logic.Atoms(f.Sentence) {
		if d.DontModifyObsPreds() && d.IsObserved(a) {
			continue
		}
		modifiable := d.GetModifiableSISet(a.Key())
		for _, w := range witnesses {
			region := siset.Of(d.MaxInterval(), false, w).Intersection(modifiable)
			if region.IsEmpty() {
				continue
			}
			moves = append(moves, move{atom: a, where: region})
		}
	}
	return moves
}

// bestScoringMove evaluates each candidate's effect on Domain.Score
// and returns the highest-scoring one, breaking ties uniformly at
// random. Flipping an atom can only change the score of the formulas
// in its atom group, so each candidate re-scores just that group
// (the rest of the objective is identical across candidates and
// cancels out of the ranking).
func (s *Searcher) bestScoringMove(d *domain.Domain, m *model.Model, candidates []move) move {
	type scored struct {
		mv    move
		delta float64
	}
	groupBase := make(map[string]float64)
	results := make([]scored, len(candidates))
	for i, mv := range candidates {
		group := d.FormulaGroup(mv.atom)
		base, ok := groupBase[group]
		if !ok {
			base = d.ScoreGroup(group, m)
			groupBase[group] = base
		}
		trial := m.Clone()
		applyMove(trial, mv)
		results[i] = scored{mv: mv, delta: d.ScoreGroup(group, trial) - base}
	}
	sort.SliceStable(results, func(i, j int) bool { return results[i].delta > results[j].delta })
	top := results[0].delta
	var tied []move
	for _, r := range results {
		if r.delta != top {
			break
		}
		tied = append(tied, r.mv)
	}
	return tied[s.rng.Intn(len(tied))]
}

// applyMove flips atom's truth value over where: points currently true
// become false and vice versa, via a symmetric difference with the
// atom's current truth-set.
func applyMove(m *model.Model, mv move) {
	current := m.AtomAt(mv.atom)
	next := current.Subtract(mv.where).Union(mv.where.Subtract(current))
	m.SetAtom(mv.atom, next)
}

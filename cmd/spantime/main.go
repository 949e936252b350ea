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

// Binary spantime runs MaxWalkSat probabilistic inference over a
// span-interval logic theory: a fact file of observed timed atoms and a
// formula file of weighted quantified sentences.
package main

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/chzyer/readline"
	log "github.com/golang/glog"

	"github.com/spantime/spantime/domain"
	"github.com/spantime/spantime/logic"
	"github.com/spantime/spantime/model"
	"github.com/spantime/spantime/textfmt"
	"github.com/spantime/spantime/walksat"
)

var version = "dev"

// runConfig is the TOML-loadable preset for --config FILE.
type runConfig struct {
	Iterations  int     `toml:"iterations"`
	Probability float64 `toml:"probability"`
	Seed        int64   `toml:"seed"`
}

type flags struct {
	help       bool
	versionF   bool
	maxN       int64
	hasMax     bool
	minN       int64
	hasMin     bool
	evalModel  bool
	prob       float64
	iterations int
	output     string
	unitProp   bool
	datafile   string
	config     string
	eval       bool
	seed       int64
}

func main() {
	f, args, err := parseFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if f.help {
		printUsage()
		os.Exit(0)
	}
	if f.versionF {
		fmt.Println("spantime " + version)
		os.Exit(0)
	}
	if len(args) != 2 {
		printUsage()
		os.Exit(1)
	}
	if err := run(f, args[0], args[1]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "Usage: spantime [flags] FACT-FILE FORMULA-FILE")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Flags:")
	fmt.Fprintln(os.Stderr, "  --help                  show this message")
	fmt.Fprintln(os.Stderr, "  --version               print version and exit")
	fmt.Fprintln(os.Stderr, "  --max N                 set maxInterval's upper bound to N")
	fmt.Fprintln(os.Stderr, "  --min N                 set maxInterval's lower bound to N")
	fmt.Fprintln(os.Stderr, "  --evalModel             print a satisfaction report for the default model and exit")
	fmt.Fprintln(os.Stderr, "  --prob P                random move probability (default 0.25)")
	fmt.Fprintln(os.Stderr, "  --iterations N          MaxWalkSat iteration budget (default 1000)")
	fmt.Fprintln(os.Stderr, "  --output FILE           write the best model to FILE instead of stdout")
	fmt.Fprintln(os.Stderr, "  --unitProp              accepted for compatibility; no preprocessing is run")
	fmt.Fprintln(os.Stderr, "  --datafile FILE         write a CSV run log (iteration,current_score,best_score)")
	fmt.Fprintln(os.Stderr, "  --config FILE           load iteration/probability/seed presets from TOML")
	fmt.Fprintln(os.Stderr, "  --eval                  start an interactive formula-evaluation REPL after search")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Exit codes: 0 success, 1 invalid input or runtime error.")
}

func run(f flags, factPath, formulaPath string) error {
	if f.config != "" {
		var rc runConfig
		if _, err := toml.DecodeFile(f.config, &rc); err != nil {
			return &textfmt.IOError{Path: f.config, Cause: err}
		}
		if rc.Iterations != 0 {
			f.iterations = rc.Iterations
		}
		if rc.Probability != 0 {
			f.prob = rc.Probability
		}
		if rc.Seed != 0 {
			f.seed = rc.Seed
		}
	}

	factSrc, err := os.ReadFile(factPath)
	if err != nil {
		return &textfmt.IOError{Path: factPath, Cause: err}
	}
	ff, err := textfmt.ParseFacts(string(factSrc))
	if err != nil {
		return err
	}
	maxInterval := ff.Observed
	if f.hasMin {
		maxInterval.Start = f.minN
	}
	if f.hasMax {
		maxInterval.Finish = f.maxN
	}

	formulaSrc, err := os.ReadFile(formulaPath)
	if err != nil {
		return &textfmt.IOError{Path: formulaPath, Cause: err}
	}
	parsedFormulas, err := textfmt.ParseFormulas(string(formulaSrc))
	if err != nil {
		return err
	}

	var elsentences []logic.ELSentence
	for _, pf := range parsedFormulas {
		var e logic.ELSentence
		if pf.Weight == nil {
			e = logic.NewHard(pf.Sentence)
		} else {
			e = logic.NewSoft(pf.Sentence, *pf.Weight)
		}
		if q := textfmt.QuantificationSISet(pf, maxInterval); q != nil {
			e = e.WithQuantification(q)
		}
		elsentences = append(elsentences, e)
	}

	d, err := domain.New(domain.Options{
		MaxInterval: maxInterval,
		Signatures:  ff.Signatures,
		Facts:       ff.Facts,
		Formulas:    elsentences,
	})
	if err != nil {
		return err
	}

	m0 := d.DefaultModel()

	if f.evalModel {
		report := d.EvalReport(m0)
		fmt.Printf("total score: %v, fully satisfied: %v\n", report.TotalScore, report.FullySatisfied)
		for _, fr := range report.PerFormula {
			fmt.Printf("  formula %d: hard=%v score=%v satisfied=%v\n", fr.Index, fr.Hard, fr.Score, fr.Satisfied)
		}
		return nil
	}

	if f.unitProp {
		log.V(1).Infof("spantime: --unitProp requested but preprocessing is out of core scope; ignoring")
	}

	var logger walksat.Logger
	if f.datafile != "" {
		out, err := os.Create(f.datafile)
		if err != nil {
			return &textfmt.IOError{Path: f.datafile, Cause: err}
		}
		defer out.Close()
		logger = textfmt.NewCSVLogger(out, func(err error) {
			log.Warningf("spantime: csv log write failed: %v", err)
		})
	}

	searcher := walksat.New(walksat.Config{
		Iterations:            f.iterations,
		RandomMoveProbability: f.prob,
		Seed:                  f.seed,
	}, logger)
	best, score := searcher.Run(d, m0)
	log.V(1).Infof("spantime: search complete, score=%v", score)

	rendered := textfmt.WriteModel(best)
	if f.output != "" {
		if err := os.WriteFile(f.output, []byte(rendered), 0o644); err != nil {
			return &textfmt.IOError{Path: f.output, Cause: err}
		}
	} else {
		fmt.Print(rendered)
	}

	if f.eval {
		return runEvalRepl(d, best)
	}
	return nil
}

// runEvalRepl is an interactive loop for evaluating a formula against
// the current best model, modeled on interpreter/mg/mg.go's
// readline-based line-editing loop: each line is parsed as a formula
// and reported as the SISet over which it holds in best.
func runEvalRepl(d *domain.Domain, best *model.Model) error {
	rl, err := readline.New("spantime> ")
	if err != nil {
		return err
	}
	defer rl.Close()
	for {
		line, err := rl.Readline()
		if err != nil {
			return nil
		}
		if line == "" {
			continue
		}
		pfs, err := textfmt.ParseFormulas(line + "\n")
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			continue
		}
		for _, pf := range pfs {
			sat := d.SatisfiedAt(pf.Sentence, best)
			fmt.Println(sat.String())
		}
	}
}

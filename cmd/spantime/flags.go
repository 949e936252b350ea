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

package main

import "flag"

// parseFlags builds the CLI surface using a private FlagSet (rather
// than the global flag.CommandLine) so tests can call it repeatedly
// without flag-redefinition panics.
func parseFlags(args []string) (flags, []string, error) {
	fs := flag.NewFlagSet("spantime", flag.ContinueOnError)
	f := flags{prob: 0.25, iterations: 1000}

	fs.BoolVar(&f.help, "help", false, "show usage and exit")
	fs.BoolVar(&f.versionF, "version", false, "print version and exit")
	maxN := fs.Int64("max", 0, "set maxInterval's upper bound to N")
	minN := fs.Int64("min", 0, "set maxInterval's lower bound to N")
	fs.BoolVar(&f.evalModel, "evalModel", false, "print a satisfaction report and exit")
	fs.Float64Var(&f.prob, "prob", 0.25, "random move probability")
	fs.IntVar(&f.iterations, "iterations", 1000, "MaxWalkSat iteration budget")
	fs.StringVar(&f.output, "output", "", "write the best model to FILE instead of stdout")
	fs.BoolVar(&f.unitProp, "unitProp", false, "accepted for compatibility; no preprocessing is run")
	fs.StringVar(&f.datafile, "datafile", "", "write a CSV run log")
	fs.StringVar(&f.config, "config", "", "load iteration/probability/seed presets from TOML")
	fs.BoolVar(&f.eval, "eval", false, "start an interactive formula-evaluation REPL after search")
	fs.Int64Var(&f.seed, "seed", 1, "PRNG seed")

	if err := fs.Parse(args); err != nil {
		return flags{}, nil, err
	}
	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "max":
			f.hasMax, f.maxN = true, *maxN
		case "min":
			f.hasMin, f.minN = true, *minN
		}
	})
	return f, fs.Args(), nil
}

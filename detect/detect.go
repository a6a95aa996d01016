// Copyright 2025 kimchim00
// Licensed under the MIT license. See license text in the LICENSE file.

// Package detect flags trojan candidate signals by their switching
// activity. Trigger logic waits for a rare input pattern, so its registers
// transition far less often than the rest of the design; signals whose
// transition count sits in the bottom percentile and well below the mean
// are reported as candidates.
package detect

import (
	"regexp"
	"sort"
)

// Params control candidate selection. The defaults match the reference
// detection flow: bottom 10% of active signals, or activity below 10% of
// the mean.
type Params struct {
	// Percentile is the fraction of the (ascending) activity distribution
	// considered suspicious.
	Percentile float64
	// MinRatio flags any signal whose count is below this fraction of the
	// mean, regardless of percentile.
	MinRatio float64
}

// DefaultParams returns the reference thresholds.
func DefaultParams() Params {
	return Params{Percentile: 0.10, MinRatio: 0.10}
}

// A Candidate is one suspicious signal.
type Candidate struct {
	Signal      string  `json:"signal"`
	Transitions int     `json:"transitions"`
	Ratio       float64 `json:"ratio"` // transitions / mean
}

// A Report is the outcome of one analysis pass.
type Report struct {
	Signals    int         `json:"signals"`
	Mean       float64     `json:"mean"`
	Min        int         `json:"min"`
	Max        int         `json:"max"`
	Candidates []Candidate `json:"candidates"`
}

// registerPatterns matches signal names that are typically flip-flop
// outputs in RS232-class netlists. Taken from the naming conventions of
// the benchmark suite.
var registerPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)_q$`),
	regexp.MustCompile(`(?i)_reg(\[.*\])?$`),
	regexp.MustCompile(`(?i)_ff`),
	regexp.MustCompile(`(?i)state`),
	regexp.MustCompile(`(?i)cntr`),
	regexp.MustCompile(`(?i)count`),
	regexp.MustCompile(`(?i)shft|shift`),
}

// RegisterSignals filters counts down to signals whose names look like
// flip-flop outputs.
func RegisterSignals(counts map[string]int) map[string]int {
	regs := make(map[string]int)
	for name, n := range counts {
		for _, re := range registerPatterns {
			if re.MatchString(name) {
				regs[name] = n
				break
			}
		}
	}
	return regs
}

// Analyze scores the given transition counts. Signals with zero activity
// over a whole run are always candidates: a register that never toggles
// under normal stimulus is exactly what a dormant trigger looks like.
func Analyze(counts map[string]int, p Params) *Report {
	r := &Report{Signals: len(counts)}
	if len(counts) == 0 {
		return r
	}

	names := make([]string, 0, len(counts))
	total := 0
	r.Min = -1
	for name, n := range counts {
		names = append(names, name)
		total += n
		if r.Min < 0 || n < r.Min {
			r.Min = n
		}
		if n > r.Max {
			r.Max = n
		}
	}
	r.Mean = float64(total) / float64(len(counts))

	// ascending by activity, names break ties so reports are stable
	sort.Slice(names, func(i, j int) bool {
		a, b := counts[names[i]], counts[names[j]]
		if a != b {
			return a < b
		}
		return names[i] < names[j]
	})

	cutoff := int(float64(len(names)) * p.Percentile)
	for i, name := range names {
		n := counts[name]
		ratio := 0.0
		if r.Mean > 0 {
			ratio = float64(n) / r.Mean
		}
		suspicious := n == 0 || ratio < p.MinRatio || (i < cutoff && ratio < 1)
		if !suspicious {
			continue
		}
		r.Candidates = append(r.Candidates, Candidate{
			Signal:      name,
			Transitions: n,
			Ratio:       ratio,
		})
	}
	return r
}

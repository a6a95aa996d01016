// Copyright 2025 kimchim00
// Licensed under the MIT license. See license text in the LICENSE file.

package bench

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
)

// A Summary aggregates a whole suite run.
type Summary struct {
	Timestamp string    `json:"timestamp"`
	Total     int       `json:"total"`
	Passed    int       `json:"passed"`
	Failed    int       `json:"failed"`
	Results   []*Result `json:"results"`
}

// RunAll runs every benchmark in the suite. If workDir is non-empty, each
// benchmark gets its own directory holding trace.vcd, transitions.json and
// result.json, with an overall summary.json at the top, mirroring the
// report layout of the detection flow this harness feeds.
func RunAll(cfg *Config, workDir string) (*Summary, error) {
	sum := &Summary{Timestamp: time.Now().Format(time.RFC3339)}

	for _, b := range cfg.Benchmarks {
		res, err := runOne(b, workDir)
		if err != nil {
			return nil, errors.Wrapf(err, "bench: %s", b.Name)
		}
		sum.Total++
		if res.Pass {
			sum.Passed++
		} else {
			sum.Failed++
		}
		sum.Results = append(sum.Results, res)
	}

	if workDir != "" {
		if err := writeJSON(filepath.Join(workDir, "summary.json"), sum); err != nil {
			return nil, err
		}
	}
	return sum, nil
}

func runOne(b Benchmark, workDir string) (*Result, error) {
	if workDir == "" {
		res, _, err := Run(b, nil)
		return res, err
	}

	dir := filepath.Join(workDir, b.Name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "create work dir")
	}
	f, err := os.Create(filepath.Join(dir, "trace.vcd"))
	if err != nil {
		return nil, errors.Wrap(err, "create trace")
	}
	defer f.Close()

	res, counts, err := Run(b, f)
	if err != nil {
		return nil, err
	}
	if err := writeJSON(filepath.Join(dir, "transitions.json"), counts); err != nil {
		return nil, err
	}
	if err := writeJSON(filepath.Join(dir, "result.json"), res); err != nil {
		return nil, err
	}
	return res, nil
}

func writeJSON(path string, v interface{}) error {
	buf, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encode report")
	}
	return errors.Wrapf(os.WriteFile(path, append(buf, '\n'), 0o644), "write %s", path)
}

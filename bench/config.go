// Copyright 2025 kimchim00
// Licensed under the MIT license. See license text in the LICENSE file.

// Package bench drives the transmit core through scripted benchmark
// scenarios and writes waveform dumps, transition counts and pass/fail
// summaries for each.
package bench

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config is a benchmark suite description.
type Config struct {
	Benchmarks []Benchmark `yaml:"benchmarks"`
}

// A Benchmark is one scripted run: a reset, a warm-up idle period, then a
// sequence of transmit frames.
type Benchmark struct {
	Name string `yaml:"name"`
	// Warmup is the number of idle cycles before the first frame
	// (default 4).
	Warmup int `yaml:"warmup"`
	// Frames are transmitted in order, each started by a one-cycle
	// request pulse.
	Frames []Frame `yaml:"frames"`
	// ExpectArmed is the expected watchdog armed flag once the run ends.
	ExpectArmed bool `yaml:"expect_armed"`
}

// A Frame is one transmit request and its expected outcome.
type Frame struct {
	// Data is the payload byte, 0..255. YAML hex literals (0xAA) work.
	Data int `yaml:"data"`
	// Corrupt marks a frame expected to carry an all-zero payload.
	Corrupt bool `yaml:"corrupt"`
	// Idle is the number of idle cycles appended after the frame
	// completes (default 16).
	Idle int `yaml:"idle"`
}

// Load reads and validates a benchmark suite from a YAML file.
func Load(path string) (*Config, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "bench: read config")
	}
	cfg := &Config{}
	if err := yaml.Unmarshal(buf, cfg); err != nil {
		return nil, errors.Wrap(err, "bench: parse config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the suite for structural errors.
func (c *Config) Validate() error {
	if len(c.Benchmarks) == 0 {
		return errors.New("bench: no benchmarks defined")
	}
	seen := make(map[string]bool)
	for i, b := range c.Benchmarks {
		if b.Name == "" {
			return errors.Errorf("bench: benchmark %d has no name", i)
		}
		if seen[b.Name] {
			return errors.Errorf("bench: duplicate benchmark name %q", b.Name)
		}
		seen[b.Name] = true
		if b.Warmup < 0 {
			return errors.Errorf("bench: %s: negative warmup", b.Name)
		}
		if len(b.Frames) == 0 {
			return errors.Errorf("bench: %s: no frames", b.Name)
		}
		for j, f := range b.Frames {
			if f.Data < 0 || f.Data > 0xFF {
				return errors.Errorf("bench: %s: frame %d: data %#x out of byte range", b.Name, j, f.Data)
			}
			if f.Idle < 0 {
				return errors.Errorf("bench: %s: frame %d: negative idle", b.Name, j)
			}
		}
	}
	return nil
}

// Copyright 2025 kimchim00
// Licensed under the MIT license. See license text in the LICENSE file.

package vcd

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// A Change is one recorded value change. Value is "0", "1", "x" or "z" for
// scalars and a binary digit string for vectors.
type Change struct {
	Time  uint64
	Value string
}

// A Signal is one declared variable and its change history.
type Signal struct {
	Name    string
	Kind    string
	Width   int
	Changes []Change
}

// defined reports whether v contains only 0/1 digits.
func defined(v string) bool {
	for i := 0; i < len(v); i++ {
		if v[i] != '0' && v[i] != '1' {
			return false
		}
	}
	return len(v) > 0
}

// A Dump is a parsed VCD file.
type Dump struct {
	Timescale string
	End       uint64 // last time stamp seen
	Signals   []*Signal
}

// Signal returns the named signal, or nil.
func (d *Dump) Signal(name string) *Signal {
	for _, s := range d.Signals {
		if s.Name == name {
			return s
		}
	}
	return nil
}

// Transitions counts defined-value changes per signal. Changes to or from
// x/z values do not count, and the initial value assignment is not a
// transition.
func (d *Dump) Transitions() map[string]int {
	counts := make(map[string]int, len(d.Signals))
	for _, s := range d.Signals {
		n := 0
		last := ""
		for _, c := range s.Changes {
			if last != "" && last != c.Value && defined(last) && defined(c.Value) {
				n++
			}
			last = c.Value
		}
		counts[s.Name] = n
	}
	return counts
}

// Parse reads a VCD dump. Unknown declaration sections are skipped; a value
// change referencing an undeclared identifier is an error.
func Parse(r io.Reader) (*Dump, error) {
	d := &Dump{Timescale: "1ns"}
	byID := make(map[string]*Signal)

	sc := bufio.NewScanner(r)
	var now uint64
	line := 0
	for sc.Scan() {
		line++
		s := strings.TrimSpace(sc.Text())
		if s == "" {
			continue
		}
		switch {
		case strings.HasPrefix(s, "$timescale"):
			f := strings.Fields(s)
			if len(f) >= 2 && f[1] != "$end" {
				d.Timescale = f[1]
				if len(f) >= 3 && f[2] != "$end" {
					d.Timescale += f[2]
				}
			}
		case strings.HasPrefix(s, "$var"):
			// $var <kind> <width> <id> <name> [range] $end
			f := strings.Fields(s)
			if len(f) < 5 {
				return nil, errors.Errorf("vcd: line %d: malformed $var: %q", line, s)
			}
			width, err := strconv.Atoi(f[2])
			if err != nil {
				return nil, errors.Wrapf(err, "vcd: line %d: bad $var width", line)
			}
			name := f[4]
			if len(f) > 6 { // bit range appended as a separate token
				name += f[5]
			}
			sig := &Signal{Name: name, Kind: f[1], Width: width}
			byID[f[3]] = sig
			d.Signals = append(d.Signals, sig)
		case s[0] == '$':
			// $scope, $upscope, $enddefinitions, $dumpvars, $end, ...
		case s[0] == '#':
			t, err := strconv.ParseUint(s[1:], 10, 64)
			if err != nil {
				return nil, errors.Wrapf(err, "vcd: line %d: bad time stamp", line)
			}
			now = t
			if t > d.End {
				d.End = t
			}
		case s[0] == '0' || s[0] == '1' || s[0] == 'x' || s[0] == 'z' ||
			s[0] == 'X' || s[0] == 'Z':
			// scalar change: <value><id>
			if len(s) < 2 {
				return nil, errors.Errorf("vcd: line %d: malformed scalar change: %q", line, s)
			}
			sig, ok := byID[s[1:]]
			if !ok {
				return nil, errors.Errorf("vcd: line %d: undeclared signal id %q", line, s[1:])
			}
			sig.Changes = append(sig.Changes, Change{Time: now, Value: strings.ToLower(s[:1])})
		case s[0] == 'b' || s[0] == 'B':
			// vector change: b<binary> <id>
			f := strings.Fields(s)
			if len(f) != 2 {
				return nil, errors.Errorf("vcd: line %d: malformed vector change: %q", line, s)
			}
			sig, ok := byID[f[1]]
			if !ok {
				return nil, errors.Errorf("vcd: line %d: undeclared signal id %q", line, f[1])
			}
			sig.Changes = append(sig.Changes, Change{Time: now, Value: strings.ToLower(f[0][1:])})
		case s[0] == 'r' || s[0] == 'R':
			// real value changes are declared but carry no transition
			// information we use; skip
		default:
			return nil, errors.Errorf("vcd: line %d: unrecognized line: %q", line, s)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "vcd: read")
	}
	return d, nil
}

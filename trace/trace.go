// Copyright 2025 kimchim00
// Licensed under the MIT license. See license text in the LICENSE file.

// Package trace records the cycle-by-cycle signal activity of a link and
// compares recorded runs against each other. A corrupted and an
// uncorrupted run of the same stimulus diverge at the first cycle the
// trojan touches, which is how the harness localizes it.
package trace

import (
	"io"

	"github.com/kimchim00/rs232sim"
	"github.com/kimchim00/rs232sim/vcd"
)

// A Sample is the value of every link signal for one clock cycle.
type Sample struct {
	Cycle  uint64
	Input  rs232sim.Input
	Output rs232sim.Output
	Snap   rs232sim.Snapshot
}

// A Trace is a recorded run.
type Trace struct {
	Samples []Sample
}

// sigdefs is the fixed signal table shared by the waveform writer, the
// transition counter and Compare. Names follow the register names of the
// RS232 benchmark netlists so the analysis side matches on them.
var sigdefs = []struct {
	name  string
	kind  string // wire or reg, as a netlist would declare it
	width int
	get   func(*Sample) uint64
}{
	{"rst_n", "wire", 1, func(s *Sample) uint64 { return b2u(s.Input.ResetN) }},
	{"xmit_req", "wire", 1, func(s *Sample) uint64 { return b2u(s.Input.Request) }},
	{"data_in", "wire", 8, func(s *Sample) uint64 { return uint64(s.Input.Data) }},
	{"serial_out", "wire", 1, func(s *Sample) uint64 { return b2u(s.Output.Serial) }},
	{"xmit_done", "wire", 1, func(s *Sample) uint64 { return b2u(s.Output.Done) }},
	{"xmit_state", "reg", 3, func(s *Sample) uint64 { return uint64(s.Snap.State) }},
	{"watch_state", "reg", 3, func(s *Sample) uint64 { return uint64(s.Snap.Watch) }},
	{"bit_cell_cntr", "reg", 4, func(s *Sample) uint64 { return uint64(s.Snap.Timer) }},
	{"bit_cntr", "reg", 4, func(s *Sample) uint64 { return uint64(s.Snap.Count) }},
	{"xmit_shftreg", "reg", 8, func(s *Sample) uint64 { return uint64(s.Snap.Payload) }},
}

func b2u(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}

// SignalNames returns the names of all recorded signals.
func SignalNames() []string {
	names := make([]string, len(sigdefs))
	for i, d := range sigdefs {
		names[i] = d.name
	}
	return names
}

// RegisterNames returns the names of the flip-flop backed signals, the
// population the activity analysis runs over.
func RegisterNames() []string {
	var names []string
	for _, d := range sigdefs {
		if d.kind == "reg" {
			names = append(names, d.name)
		}
	}
	return names
}

// A Recorder drives a link while keeping a full sample history, per-signal
// transition counts and, optionally, a VCD dump.
type Recorder struct {
	link  *rs232sim.Link
	cycle uint64
	trace Trace

	counts map[string]int
	last   []uint64
	valid  bool

	w   *vcd.Writer
	ids []vcd.SignalID
}

// NewRecorder wraps a link. The link should be in its reset state.
func NewRecorder(l *rs232sim.Link) *Recorder {
	return &Recorder{link: l, counts: make(map[string]int), last: make([]uint64, len(sigdefs))}
}

// Capture attaches a VCD dump to out. It must be called before the first
// Step.
func (r *Recorder) Capture(out io.Writer) error {
	w := vcd.NewWriter(out)
	ids := make([]vcd.SignalID, len(sigdefs))
	for i, d := range sigdefs {
		if d.kind == "reg" {
			ids[i] = w.Reg(d.name, d.width)
		} else {
			ids[i] = w.Wire(d.name, d.width)
		}
	}
	if err := w.Begin("rs232"); err != nil {
		return err
	}
	r.w = w
	r.ids = ids
	return nil
}

// Step applies one clock edge to the link and records the resulting cycle.
func (r *Recorder) Step(in rs232sim.Input) rs232sim.Output {
	out := r.link.Step(in)
	s := Sample{Cycle: r.cycle, Input: in, Output: out, Snap: r.link.Snapshot()}
	r.trace.Samples = append(r.trace.Samples, s)

	if r.w != nil {
		r.w.Step(r.cycle)
	}
	for i, d := range sigdefs {
		v := d.get(&s)
		if r.valid && v != r.last[i] {
			r.counts[d.name]++
		}
		r.last[i] = v
		if r.w != nil {
			r.w.Set(r.ids[i], v)
		}
	}
	r.valid = true
	r.cycle++
	return out
}

// Close finalizes the VCD dump, if any.
func (r *Recorder) Close() error {
	if r.w == nil {
		return nil
	}
	r.w.Step(r.cycle)
	return r.w.Close()
}

// Trace returns the recorded run.
func (r *Recorder) Trace() *Trace { return &r.trace }

// Transitions returns the per-signal transition counts of the run so far.
func (r *Recorder) Transitions() map[string]int {
	counts := make(map[string]int, len(r.counts))
	for _, d := range sigdefs {
		counts[d.name] = r.counts[d.name]
	}
	return counts
}

// A Divergence is the first point where two traces disagree.
type Divergence struct {
	Cycle  uint64
	Signal string
	A, B   uint64
}

// Compare returns the first cycle and signal where the two traces differ,
// or nil if they are identical. A longer trace diverges from a shorter one
// at the end of the shorter, reported with the pseudo signal "length".
func Compare(a, b *Trace) *Divergence {
	n := len(a.Samples)
	if len(b.Samples) < n {
		n = len(b.Samples)
	}
	for i := 0; i < n; i++ {
		sa, sb := &a.Samples[i], &b.Samples[i]
		for _, d := range sigdefs {
			va, vb := d.get(sa), d.get(sb)
			if va != vb {
				return &Divergence{Cycle: sa.Cycle, Signal: d.name, A: va, B: vb}
			}
		}
	}
	if len(a.Samples) != len(b.Samples) {
		return &Divergence{Cycle: uint64(n), Signal: "length",
			A: uint64(len(a.Samples)), B: uint64(len(b.Samples))}
	}
	return nil
}

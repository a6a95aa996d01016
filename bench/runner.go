// Copyright 2025 kimchim00
// Licensed under the MIT license. See license text in the LICENSE file.

package bench

import (
	"io"

	"github.com/kimchim00/rs232sim"
	"github.com/kimchim00/rs232sim/trace"
)

const (
	// frameCycles is the frame duration on the wire; the done pulse, if
	// any, lands on the following cycle.
	frameCycles = 159

	defaultWarmup = 4
	defaultIdle   = 16
)

// A FrameResult records how one frame behaved on the wire.
type FrameResult struct {
	Index         int  `json:"index"`
	Sent          byte `json:"sent"`
	Wire          byte `json:"wire"`
	DonePulsed    bool `json:"done_pulsed"`
	ExpectCorrupt bool `json:"expect_corrupt"`
	Pass          bool `json:"pass"`
}

// A Result is the outcome of one benchmark run.
type Result struct {
	Benchmark   string        `json:"benchmark"`
	Cycles      uint64        `json:"cycles"`
	Frames      []FrameResult `json:"frames"`
	Armed       bool          `json:"armed"`
	ExpectArmed bool          `json:"expect_armed"`
	Pass        bool          `json:"pass"`
}

// Run executes one benchmark against a fresh link. When vcdOut is non-nil
// the full waveform dump is written to it. The returned map holds the
// per-signal transition counts of the run.
func Run(b Benchmark, vcdOut io.Writer) (*Result, map[string]int, error) {
	link := rs232sim.NewLink()
	rec := trace.NewRecorder(link)
	if vcdOut != nil {
		if err := rec.Capture(vcdOut); err != nil {
			return nil, nil, err
		}
	}

	warmup := b.Warmup
	if warmup == 0 {
		warmup = defaultWarmup
	}
	// reset pulse, then idle warm-up
	rec.Step(rs232sim.Input{ResetN: false})
	for i := 1; i < warmup; i++ {
		rec.Step(rs232sim.Input{ResetN: true})
	}

	res := &Result{Benchmark: b.Name, ExpectArmed: b.ExpectArmed, Pass: true}
	for i, f := range b.Frames {
		fr := runFrame(rec, link, i, f)
		if !fr.Pass {
			res.Pass = false
		}
		res.Frames = append(res.Frames, fr)
	}

	res.Armed = link.Armed()
	if res.Armed != b.ExpectArmed {
		res.Pass = false
	}
	res.Cycles = uint64(len(rec.Trace().Samples))

	if err := rec.Close(); err != nil {
		return nil, nil, err
	}
	return res, rec.Transitions(), nil
}

// runFrame pulses a one-cycle request, lets the frame play out plus the
// configured idle gap, and scores the wire behavior. The payload is checked
// against the frame's corrupt expectation; the done pulse is checked
// against the watchdog state when the frame completes, since done is
// suppressed from the very frame that arms it.
func runFrame(rec *trace.Recorder, link *rs232sim.Link, index int, f Frame) FrameResult {
	data := byte(f.Data)
	idle := f.Idle
	if idle == 0 {
		idle = defaultIdle
	}

	outs := make([]rs232sim.Output, 0, frameCycles+idle+1)
	outs = append(outs, rec.Step(rs232sim.Input{ResetN: true, Request: true, Data: data}))
	for i := 0; i < frameCycles+idle; i++ {
		outs = append(outs, rec.Step(rs232sim.Input{ResetN: true, Data: data}))
	}

	fr := FrameResult{
		Index:         index,
		Sent:          data,
		Wire:          decode(outs),
		DonePulsed:    outs[frameCycles].Done,
		ExpectCorrupt: f.Corrupt,
	}
	want := data
	if f.Corrupt {
		want = 0
	}
	fr.Pass = fr.Wire == want && fr.DonePulsed == !link.Armed()
	return fr
}

// decode samples each data cell at its mid-point, the way a receiver
// would: the start cell spans cycles 0..15 and data cell k begins at cycle
// 16*(k+1).
func decode(outs []rs232sim.Output) byte {
	var b byte
	for k := 0; k < rs232sim.WordLen; k++ {
		mid := rs232sim.BitCellLen*(k+1) + rs232sim.BitCellLen/2
		if outs[mid].Serial {
			b |= 1 << uint(k)
		}
	}
	return b
}

// Copyright 2025 kimchim00
// Licensed under the MIT license. See license text in the LICENSE file.

// Package vcd reads and writes the subset of the Value Change Dump format
// produced by common Verilog simulators: a header with $timescale and $var
// declarations, then #time stamps with scalar and binary-vector value
// changes.
package vcd

import (
	"bufio"
	"io"
	"strconv"

	"github.com/pkg/errors"
)

// A SignalID identifies a declared signal within a Writer.
type SignalID int

type wsignal struct {
	name  string
	id    string
	kind  string // "wire" or "reg"
	width int
	cur   uint64
	valid bool // cur has been set at least once
}

// A Writer emits a VCD dump. Declare signals with Wire and Reg, call Begin
// once, then alternate Step and Set calls; only actual value changes are
// written. The zero time stamp is emitted by Begin as an x-value $dumpvars
// section, matching simulator output.
type Writer struct {
	bw      *bufio.Writer
	sigs    []*wsignal
	started bool
	now     uint64
	stamped bool
	err     error
}

// NewWriter returns a Writer emitting to w with a 1ns timescale.
func NewWriter(w io.Writer) *Writer {
	return &Writer{bw: bufio.NewWriter(w)}
}

// idCode builds a short printable identifier from a signal index.
func idCode(n int) string {
	var b []byte
	for n >= 0 {
		b = append(b, byte('!'+n%94))
		n = n/94 - 1
	}
	return string(b)
}

func (w *Writer) declare(name, kind string, width int) SignalID {
	if w.started {
		panic("vcd: signal declared after Begin")
	}
	w.sigs = append(w.sigs, &wsignal{
		name:  name,
		id:    idCode(len(w.sigs)),
		kind:  kind,
		width: width,
	})
	return SignalID(len(w.sigs) - 1)
}

// Wire declares a net-typed signal of the given bit width.
func (w *Writer) Wire(name string, width int) SignalID { return w.declare(name, "wire", width) }

// Reg declares a register-typed signal of the given bit width.
func (w *Writer) Reg(name string, width int) SignalID { return w.declare(name, "reg", width) }

// Begin writes the header and the initial x-value dump. scope names the
// enclosing module.
func (w *Writer) Begin(scope string) error {
	if w.started {
		return errors.New("vcd: Begin called twice")
	}
	w.started = true
	w.ws("$timescale 1ns $end\n")
	w.ws("$scope module " + scope + " $end\n")
	for _, s := range w.sigs {
		w.ws("$var " + s.kind + " " + strconv.Itoa(s.width) + " " + s.id + " " + s.name + " $end\n")
	}
	w.ws("$upscope $end\n")
	w.ws("$enddefinitions $end\n")
	w.ws("$dumpvars\n")
	for _, s := range w.sigs {
		if s.width == 1 {
			w.ws("x" + s.id + "\n")
		} else {
			w.ws("bx " + s.id + "\n")
		}
	}
	w.ws("$end\n")
	return w.err
}

// Step moves the current time forward. The time stamp itself is emitted
// lazily, only if a value changes at this time.
func (w *Writer) Step(t uint64) {
	if t != w.now {
		w.now = t
		w.stamped = false
	}
}

// Set records the value of s at the current time and emits a change record
// if it differs from the previous value.
func (w *Writer) Set(id SignalID, v uint64) {
	s := w.sigs[int(id)]
	if s.valid && s.cur == v {
		return
	}
	s.cur = v
	s.valid = true
	if !w.stamped {
		w.ws("#" + strconv.FormatUint(w.now, 10) + "\n")
		w.stamped = true
	}
	if s.width == 1 {
		if v != 0 {
			w.ws("1" + s.id + "\n")
		} else {
			w.ws("0" + s.id + "\n")
		}
	} else {
		w.ws("b" + strconv.FormatUint(v, 2) + " " + s.id + "\n")
	}
}

// Close stamps the final simulation time and flushes the dump.
func (w *Writer) Close() error {
	if !w.stamped {
		w.ws("#" + strconv.FormatUint(w.now, 10) + "\n")
		w.stamped = true
	}
	if w.err != nil {
		return w.err
	}
	return errors.Wrap(w.bw.Flush(), "vcd: flush")
}

func (w *Writer) ws(s string) {
	if w.err != nil {
		return
	}
	if _, err := w.bw.WriteString(s); err != nil {
		w.err = errors.Wrap(err, "vcd: write")
	}
}

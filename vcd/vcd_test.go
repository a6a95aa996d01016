// Copyright 2025 kimchim00
// Licensed under the MIT license. See license text in the LICENSE file.

package vcd_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/kimchim00/rs232sim/vcd"
)

func TestWriter_roundtrip(t *testing.T) {
	var buf bytes.Buffer
	w := vcd.NewWriter(&buf)
	clk := w.Wire("clk", 1)
	bus := w.Reg("state", 3)
	if err := w.Begin("top"); err != nil {
		t.Fatal(err)
	}

	// clk toggles every step, state changes only twice
	states := []uint64{0, 0, 1, 1, 1, 5, 5, 5}
	for i, s := range states {
		w.Step(uint64(i))
		w.Set(clk, uint64(i%2))
		w.Set(bus, s)
	}
	w.Step(uint64(len(states)))
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	d, err := vcd.Parse(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if d.Timescale != "1ns" {
		t.Fatalf("timescale = %q", d.Timescale)
	}
	if d.End != uint64(len(states)) {
		t.Fatalf("end time = %d, want %d", d.End, len(states))
	}

	sig := d.Signal("state")
	if sig == nil {
		t.Fatal("state signal missing from dump")
	}
	if sig.Kind != "reg" || sig.Width != 3 {
		t.Fatalf("state declared as %s[%d]", sig.Kind, sig.Width)
	}
	// x, 0, 1, 101
	if len(sig.Changes) != 4 {
		t.Fatalf("state has %d changes, want 4", len(sig.Changes))
	}
	if sig.Changes[2].Time != 2 || sig.Changes[2].Value != "1" {
		t.Fatalf("bad change: %+v", sig.Changes[2])
	}
	if sig.Changes[3].Time != 5 || sig.Changes[3].Value != "101" {
		t.Fatalf("bad change: %+v", sig.Changes[3])
	}

	counts := d.Transitions()
	// the initial x assignment and the x->0 step do not count
	if counts["state"] != 2 {
		t.Fatalf("state transitions = %d, want 2", counts["state"])
	}
	if counts["clk"] != len(states)-1 {
		t.Fatalf("clk transitions = %d, want %d", counts["clk"], len(states)-1)
	}
}

func TestParse_simulator_output(t *testing.T) {
	// the shape iverilog/Vivado dumps take for the uart testbench
	src := `$timescale 1 ns $end
$scope module uart_tb $end
$var wire 1 ! sys_clk $end
$var reg 8 " data_in [7:0] $end
$upscope $end
$enddefinitions $end
#0
$dumpvars
x!
bxxxxxxxx "
$end
#5
1!
b10101010 "
#10
0!
#15
1!
`
	d, err := vcd.Parse(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	if d.Timescale != "1ns" {
		t.Fatalf("timescale = %q", d.Timescale)
	}
	if d.End != 15 {
		t.Fatalf("end = %d", d.End)
	}
	if sig := d.Signal("data_in[7:0]"); sig == nil {
		t.Fatal("ranged signal name not preserved")
	}
	counts := d.Transitions()
	if counts["sys_clk"] != 2 {
		t.Fatalf("sys_clk transitions = %d, want 2 (x->1 must not count)", counts["sys_clk"])
	}
	if counts["data_in[7:0]"] != 0 {
		t.Fatalf("data_in transitions = %d, want 0", counts["data_in[7:0]"])
	}
}

func TestParse_errors(t *testing.T) {
	cases := []string{
		"#5\n1!\n",          // change for an undeclared id
		"$var wire x\n",     // malformed declaration
		"#zz\n",             // bad time stamp
		"@nonsense line!\n", // unknown syntax
	}
	for _, src := range cases {
		if _, err := vcd.Parse(strings.NewReader(src)); err == nil {
			t.Errorf("no error for %q", src)
		}
	}
}

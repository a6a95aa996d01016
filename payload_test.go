// Copyright 2025 kimchim00
// Licensed under the MIT license. See license text in the LICENSE file.

package rs232sim_test

import (
	"testing"

	rs "github.com/kimchim00/rs232sim"
)

func TestPayloadRegister(t *testing.T) {
	var r rs.PayloadRegister

	r.Load(0x3C, false)
	want := []bool{false, false, true, true, true, true, false, false}
	for i, b := range want {
		if r.Tap() != b {
			t.Fatalf("bit %d: tap = %v, want %v", i, r.Tap(), b)
		}
		r.Shift()
	}
	// after 8 shifts only the shifted-in ones remain
	if r.Bits() != 0xFF {
		t.Fatalf("drained register = %#02x, want 0xFF", r.Bits())
	}

	r.Load(0xA7, true)
	if r.Bits() != 0 {
		t.Fatalf("corrupt load = %#02x, want 0", r.Bits())
	}
}

func TestBitTimer(t *testing.T) {
	var bt rs.BitTimer
	for i := 1; i <= 15; i++ {
		bt.Tick(true)
		if bt.Value() != uint8(i) {
			t.Fatalf("after %d ticks: value = %d", i, bt.Value())
		}
	}
	bt.Tick(true)
	if bt.Value() != 0 {
		t.Fatalf("timer did not wrap: %d", bt.Value())
	}
	bt.Tick(true)
	bt.Tick(false)
	if bt.Value() != 0 {
		t.Fatalf("disabled tick did not reset: %d", bt.Value())
	}
}

func TestFrameCounter(t *testing.T) {
	var fc rs.FrameCounter
	for i := 1; i <= rs.WordLen; i++ {
		fc.Advance()
	}
	if fc.Value() != rs.WordLen {
		t.Fatalf("count = %d, want %d", fc.Value(), rs.WordLen)
	}
	fc.Reset()
	if fc.Value() != 0 {
		t.Fatalf("count = %d after reset", fc.Value())
	}
}

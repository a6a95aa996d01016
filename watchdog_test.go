// Copyright 2025 kimchim00
// Licensed under the MIT license. See license text in the LICENSE file.

package rs232sim_test

import (
	"testing"

	rs "github.com/kimchim00/rs232sim"
)

func feed(w *rs.TriggerWatchdog, bytes ...byte) {
	for _, b := range bytes {
		w.Observe(true, b)
	}
}

func TestWatchdog_sequences(t *testing.T) {
	tests := []struct {
		name  string
		bytes []byte
		want  rs.WatchState
	}{
		{"empty", nil, rs.Watch0},
		{"first", []byte{0xAA}, rs.Watch1},
		{"two", []byte{0xAA, 0x55}, rs.Watch2},
		{"three", []byte{0xAA, 0x55, 0x00}, rs.Watch3},
		{"full", []byte{0xAA, 0x55, 0x00, 0xFF}, rs.Armed},
		{"mismatch restarts", []byte{0xAA, 0x55, 0x42}, rs.Watch0},
		{"repeat first is a mismatch", []byte{0xAA, 0xAA}, rs.Watch0},
		{"restart then full", []byte{0xAA, 0x13, 0xAA, 0x55, 0x00, 0xFF}, rs.Armed},
		{"armed is sticky", []byte{0xAA, 0x55, 0x00, 0xFF, 0x42, 0xAA, 0x00}, rs.Armed},
		{"disarm", []byte{0xAA, 0x55, 0x00, 0xFF, 0x11}, rs.Watch0},
		{"late disarm", []byte{0xAA, 0x55, 0x00, 0xFF, 0x42, 0x42, 0x11}, rs.Watch0},
		{"disarm byte while watching", []byte{0x11}, rs.Watch0},
		{"rearm after disarm", []byte{0xAA, 0x55, 0x00, 0xFF, 0x11, 0xAA, 0x55, 0x00, 0xFF}, rs.Armed},
	}
	for _, tc := range tests {
		var w rs.TriggerWatchdog
		feed(&w, tc.bytes...)
		if w.State() != tc.want {
			t.Errorf("%s: got %v, want %v", tc.name, w.State(), tc.want)
		}
		if w.Armed() != (tc.want == rs.Armed) {
			t.Errorf("%s: Armed() = %v inconsistent with state %v", tc.name, w.Armed(), w.State())
		}
	}
}

func TestWatchdog_levelSamplingIgnored(t *testing.T) {
	var w rs.TriggerWatchdog
	// no edge, no comparison: holding the byte across many clocks must not
	// advance the watch
	for i := 0; i < 100; i++ {
		w.Observe(false, 0xAA)
	}
	if w.State() != rs.Watch0 {
		t.Fatalf("state advanced without a request edge: %v", w.State())
	}
	w.Observe(true, 0xAA)
	for i := 0; i < 100; i++ {
		w.Observe(false, 0x55)
	}
	if w.State() != rs.Watch1 {
		t.Fatalf("got %v, want WATCH_1", w.State())
	}
}

func TestWatchdog_reset(t *testing.T) {
	var w rs.TriggerWatchdog
	feed(&w, 0xAA, 0x55, 0x00, 0xFF)
	if !w.Armed() {
		t.Fatal("not armed after full sequence")
	}
	w.Reset()
	if w.State() != rs.Watch0 {
		t.Fatalf("got %v after reset, want WATCH_0", w.State())
	}
}

// Copyright 2025 kimchim00
// Licensed under the MIT license. See license text in the LICENSE file.

package rs232sim

// WatchState is the trigger watchdog state.
type WatchState uint8

// Watchdog states. Watch0 through Watch3 track how much of the magic
// sequence has been seen on successive transmit requests; Armed is sticky
// until the disarm byte arrives.
const (
	Watch0 WatchState = iota
	Watch1
	Watch2
	Watch3
	Armed
)

var watchNames = [...]string{"WATCH_0", "WATCH_1", "WATCH_2", "WATCH_3", "ARMED"}

func (s WatchState) String() string {
	if int(s) < len(watchNames) {
		return watchNames[s]
	}
	return "WATCH_?"
}

// The magic sequence and the disarm byte. A request carrying each magic byte
// in order arms the watchdog; from Armed only DisarmByte releases it.
var magicSequence = [4]byte{0xAA, 0x55, 0x00, 0xFF}

// DisarmByte returns the watchdog from Armed to Watch0.
const DisarmByte = 0x11

// A TriggerWatchdog recognizes the magic byte sequence across transmit
// requests. It compares one byte per rising edge of the request line, never
// per clock cycle, so a request held high across many clocks counts once.
// Any mismatch during the watch restarts it from Watch0.
type TriggerWatchdog struct {
	state WatchState
}

// Observe feeds one clock edge to the watchdog. The byte is compared only
// when edge is true.
func (w *TriggerWatchdog) Observe(edge bool, b byte) {
	if edge {
		w.state = w.next(b)
	}
}

func (w *TriggerWatchdog) next(b byte) WatchState {
	if w.state == Armed {
		if b == DisarmByte {
			return Watch0
		}
		return Armed
	}
	if b == magicSequence[w.state] {
		return w.state + 1
	}
	return Watch0
}

// Armed reports whether the full trigger sequence has been recognized.
// Read-only to the rest of the core.
func (w *TriggerWatchdog) Armed() bool { return w.state == Armed }

// State returns the current watchdog state.
func (w *TriggerWatchdog) State() WatchState { return w.state }

// Reset returns the watchdog to the start of the watch.
func (w *TriggerWatchdog) Reset() { w.state = Watch0 }

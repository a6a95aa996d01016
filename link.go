// Copyright 2025 kimchim00
// Licensed under the MIT license. See license text in the LICENSE file.

package rs232sim

// Input is the set of link input levels sampled at one clock edge.
type Input struct {
	// ResetN is the active-low asynchronous reset. While low, every
	// register snaps to its initial value regardless of the other inputs.
	ResetN bool
	// Request is the transmit request line. A rising edge feeds one byte
	// comparison to the trigger watchdog; the level starts a frame
	// whenever the FSM is idle.
	Request bool
	// Data is the payload byte presented on data_in.
	Data byte
}

// Output is the set of link output levels for one clock cycle.
type Output struct {
	// Serial is the framed bit stream: start bit low, eight data bits LSB
	// first, stop bit high, sixteen clock cycles per bit cell.
	Serial bool
	// Done is high while the link is idle, unless the watchdog is armed,
	// in which case it is forced low even though frames still complete.
	Done bool
}

// A Snapshot is the value of every link register and output after a clock
// edge, for waveform capture.
type Snapshot struct {
	Serial  bool
	Done    bool
	State   ProtocolState
	Watch   WatchState
	Timer   uint8
	Count   uint8
	Payload uint8
}

// A Link is the complete transmit core: the visible transmit FSM and the
// covert trigger watchdog sharing one data path.
//
// A Link models a single clock domain and must be driven by one goroutine.
type Link struct {
	proto    TransmitProtocol
	watchdog TriggerWatchdog
	lastReq  bool // previous-cycle request level, for edge detection
}

// NewLink returns a link in its reset state.
func NewLink() *Link {
	l := &Link{}
	l.Reset()
	return l
}

// Reset forces every register to its initial value: FSM idle, watchdog at
// the start of the watch, counters and payload cleared.
func (l *Link) Reset() {
	l.proto.reset()
	l.watchdog.Reset()
	l.lastReq = false
}

// Step applies one rising clock edge with the given input levels and
// returns the output levels for the new cycle. Successive Step results are
// the wire samples a receiver would see, one per clock.
//
// Every register update is computed from pre-edge values before any commit:
// in particular, the watchdog state change caused by a frame-starting
// request never affects that same frame's payload load, so the byte that
// completes the magic sequence is itself transmitted intact.
func (l *Link) Step(in Input) Output {
	if !in.ResetN {
		l.Reset()
		return l.outputs()
	}

	// combinational phase: reads pre-edge state only
	edge := in.Request && !l.lastReq
	armed := l.watchdog.Armed()
	p := l.proto.next(in.Request)

	// commit phase: all registers update together
	l.proto.commit(p, in.Data, armed)
	l.watchdog.Observe(edge, in.Data)
	l.lastReq = in.Request

	return l.outputs()
}

// Armed reports whether the trigger watchdog is armed.
func (l *Link) Armed() bool { return l.watchdog.Armed() }

// Snapshot returns the post-edge value of every internal signal.
func (l *Link) Snapshot() Snapshot {
	out := l.outputs()
	return Snapshot{
		Serial:  out.Serial,
		Done:    out.Done,
		State:   l.proto.State(),
		Watch:   l.watchdog.State(),
		Timer:   l.proto.timer.Value(),
		Count:   l.proto.count.Value(),
		Payload: l.proto.payload.Bits(),
	}
}

func (l *Link) outputs() Output {
	serial, done := l.proto.output(l.watchdog.Armed())
	return Output{Serial: serial, Done: done}
}

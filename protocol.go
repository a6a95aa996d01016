// Copyright 2025 kimchim00
// Licensed under the MIT license. See license text in the LICENSE file.

package rs232sim

// ProtocolState is the transmit FSM state.
type ProtocolState uint8

// Transmit FSM states. A frame runs Idle → Start → (Wait ⇄ Shift)… → Stop →
// Idle; Shift is a single-cycle detour out of Wait that rotates the next
// payload bit into the tap.
const (
	Idle ProtocolState = iota
	Start
	Wait
	Shift
	Stop
)

var protoNames = [...]string{"IDLE", "START", "WAIT", "SHIFT", "STOP"}

func (s ProtocolState) String() string {
	if int(s) < len(protoNames) {
		return protoNames[s]
	}
	return "STATE_?"
}

// A TransmitProtocol is the visible transmit FSM together with the data path
// it owns: the bit-cell timer, the frame bit counter and the payload shift
// register.
type TransmitProtocol struct {
	state   ProtocolState
	timer   BitTimer
	count   FrameCounter
	payload PayloadRegister
}

// A plan is the combinational half of the FSM: the next state plus the
// register control strobes to apply at the clock edge. Splitting plan from
// commit keeps every strobe a function of pre-edge state only.
type plan struct {
	next       ProtocolState
	timerEn    bool // bit-cell timer counts this edge (resets otherwise)
	loadByte   bool // latch data_in into the payload register
	shift      bool // rotate the payload register
	countBit   bool // one more payload bit completed
	resetCount bool // restart the frame bit counter
}

// next computes the transition for one clock edge from the current register
// values and the sampled inputs. It performs no writes.
func (p *TransmitProtocol) next(request bool) plan {
	o := plan{next: p.state}
	switch p.state {
	case Idle:
		o.resetCount = true
		if request {
			o.next = Start
			o.loadByte = true
		}
	case Start:
		// full bit cell of line low
		if p.timer.Value() == BitCellLen-1 {
			o.next = Wait
		} else {
			o.timerEn = true
		}
	case Wait:
		// 15 cycles holding the current payload bit, then either a
		// one-cycle Shift or, once all bits are out, the stop cell
		if p.timer.Value() == BitCellLen-2 {
			o.countBit = true
			if p.count.Value() == WordLen-1 {
				o.next = Stop
			} else {
				o.next = Shift
			}
		} else {
			o.timerEn = true
		}
	case Shift:
		o.shift = true
		o.next = Wait
	case Stop:
		// full bit cell of line high
		if p.timer.Value() == BitCellLen-1 {
			o.next = Idle
		} else {
			o.timerEn = true
		}
	}
	return o
}

// commit applies one clock edge. corrupt selects the all-zero load when a
// frame starts on this edge; it must be the watchdog's pre-edge armed flag.
func (p *TransmitProtocol) commit(o plan, data byte, corrupt bool) {
	p.state = o.next
	p.timer.Tick(o.timerEn)
	if o.resetCount {
		p.count.Reset()
	} else if o.countBit {
		p.count.Advance()
	}
	if o.loadByte {
		p.payload.Load(data, corrupt)
	}
	if o.shift {
		p.payload.Shift()
	}
}

// output derives the line and done levels from the current state. The line
// idles high; done is asserted only at idle and only while the watchdog is
// not armed.
func (p *TransmitProtocol) output(armed bool) (serial, done bool) {
	switch p.state {
	case Start:
		return false, false
	case Wait, Shift:
		return p.payload.Tap(), false
	case Stop:
		return true, false
	}
	return true, !armed
}

// State returns the current FSM state.
func (p *TransmitProtocol) State() ProtocolState { return p.state }

func (p *TransmitProtocol) reset() {
	p.state = Idle
	p.timer.Reset()
	p.count.Reset()
	p.payload.Reset()
}

// Copyright 2025 kimchim00
// Licensed under the MIT license. See license text in the LICENSE file.

package rs232sim

// A PayloadRegister is the 8-bit transmit shift register. Bit 0 is the
// serial output tap; shifting moves bits toward the tap and feeds a constant
// 1 into the vacated high bit, so a fully drained register reads as line
// idle. The transmit FSM is its only writer.
type PayloadRegister struct {
	bits uint8
}

// Load latches the byte to transmit. When corrupt is set the register is
// loaded with all zero bits instead of b.
func (r *PayloadRegister) Load(b byte, corrupt bool) {
	if corrupt {
		r.bits = 0
	} else {
		r.bits = b
	}
}

// Shift rotates the next payload bit into the tap position.
func (r *PayloadRegister) Shift() { r.bits = r.bits>>1 | 0x80 }

// Tap returns the bit currently at the serial output position.
func (r *PayloadRegister) Tap() bool { return r.bits&1 != 0 }

// Bits returns the raw register contents.
func (r *PayloadRegister) Bits() uint8 { return r.bits }

// Reset clears the register.
func (r *PayloadRegister) Reset() { r.bits = 0 }

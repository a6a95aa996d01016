// Copyright 2025 kimchim00
// Licensed under the MIT license. See license text in the LICENSE file.

package rs232sim

const (
	// BitCellLen is the number of clock cycles in one transmitted bit cell.
	BitCellLen = 16

	// WordLen is the payload width in bits.
	WordLen = 8
)

// A BitTimer measures the duration of the current bit cell. It is a 4-bit
// synchronous counter: ticking with enable increments it mod 16, ticking
// without enable resets it to 0.
type BitTimer struct {
	v uint8
}

// Tick advances the timer by one clock edge.
func (t *BitTimer) Tick(enable bool) {
	if enable {
		t.v = (t.v + 1) & 0x0f
	} else {
		t.v = 0
	}
}

// Value returns the cycle count within the current bit cell.
func (t *BitTimer) Value() uint8 { return t.v }

// Reset sets the timer back to 0.
func (t *BitTimer) Reset() { t.v = 0 }

// A FrameCounter counts completed payload bits within the current frame.
// The transmit FSM stops advancing it once it reaches WordLen, so it never
// wraps in practice.
type FrameCounter struct {
	v uint8
}

// Advance increments the counter mod 16.
func (c *FrameCounter) Advance() { c.v = (c.v + 1) & 0x0f }

// Value returns the number of payload bits counted so far.
func (c *FrameCounter) Value() uint8 { return c.v }

// Reset sets the counter back to 0.
func (c *FrameCounter) Reset() { c.v = 0 }

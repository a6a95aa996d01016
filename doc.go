// Copyright 2025 kimchim00
// Licensed under the MIT license. See license text in the LICENSE file.

/*
Package rs232sim is a cycle-accurate model of the bit-serial transmit core of
an RS232 link carrying a sequence-triggered hardware trojan.

The visible half is an ordinary UART transmitter: a transmit request latches a
parallel byte and serializes it as a start bit, eight data bits LSB first and
a stop bit, at sixteen clock cycles per bit cell. The covert half is a
watchdog that matches a fixed magic byte sequence across successive transmit
requests; once armed it silently zeroes every transmitted payload and holds
the done line low while the frames keep their correct timing on the wire.

The model is driven one clock edge at a time through Link.Step. All register
updates within a step derive from pre-edge values only, reproducing the
hardware's "all flip-flops clock together" semantics, so traces are
deterministic and replayable.
*/
package rs232sim

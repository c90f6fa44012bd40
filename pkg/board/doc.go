// Package board provides the host side of the single-byte pin control protocol.
//
// The firmware reads one command byte at a time. Before every byte the
// host waits for the firmware to print the readiness marker "?", so host
// and firmware never disagree about where a command starts.
//
// Commands:
//
//	<count> <pin>...        configure output pins
//	'0' <pin>               set pin low
//	'1' <pin>               set pin high
//	'3' <hi> <lo> <pin>     write analog value as two hex digits
//	'4' <pin>               read analog value, reply is a text line
//	'5'                     stop executing
//
// A pin byte is the raw value pin+48, so pins 0-9 appear as ASCII digits.
//
// Digital levels are cached on the host when they are commanded; the
// cache is updated before the bytes are written and is not rolled back
// when a write fails.
package board

// Package frame implements the serial protocol between the bar display and
// the host that feeds it.
package frame

// One round trip per cycle, byte oriented, no checksum:
//
//	device -> host  1 byte   status, bit0 = monitor on (0x00 without a button)
//	host -> device  1 byte   length, high bit set, low 7 bits = N (0..127)
//	host -> device  N bytes  values, high bit clear, 0..127
//
// The high bit is the only framing marker. Bytes with the high bit clear
// arriving while the device waits for a length are dropped. A byte with the
// high bit set among the values means the host started a new frame; the
// partial frame is dropped and the round trip fails.
//
// The device waits 1000ms for the length and 1000ms in total for all values.
// N above 32 is clamped; the surplus values stay in the input and are flushed
// by the recovery path or dropped as non-length bytes on the next cycle.

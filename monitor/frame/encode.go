package frame

import "oledcpu/monitor"

// MaxCount is the largest count a length byte can declare.
const MaxCount = CountMask

// Encode returns the host side frame for values.
func Encode(values []uint8) []byte {
	return AppendFrame(make([]byte, 0, len(values)+1), values)
}

// AppendFrame appends the frame for values to dst. At most MaxCount values are
// sent and each is masked to 7 bits.
func AppendFrame(dst []byte, values []uint8) []byte {
	if len(values) > MaxCount {
		values = values[:MaxCount]
	}
	dst = append(dst, LengthFlag|byte(len(values)))
	for _, v := range values {
		dst = append(dst, v&CountMask)
	}
	return dst
}

// DecodeStatus interprets a status byte received by the host.
func DecodeStatus(b byte) monitor.StatusBits {
	return monitor.StatusBits(b)
}

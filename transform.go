package dat

import "github.com/leaptools/dat/internal/cipher"

// DecodeBuffer reverses the payload transform in place. startOffset is the
// absolute position of buf[0] within the conceptual stream; archive payloads
// always use 0. An empty buffer is a no-op.
//
// See the package documentation for the mode-selection caveat shared by
// DecodeBuffer and EncodeBuffer.
func DecodeBuffer(buf []byte, startOffset int) {
	cipher.Decode(buf, startOffset)
}

// EncodeBuffer applies the payload transform in place, the exact inverse of
// DecodeBuffer for the same selected mode.
func EncodeBuffer(buf []byte, startOffset int) {
	cipher.Encode(buf, startOffset)
}

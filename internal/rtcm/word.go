// Package rtcm decodes the RTCM-104 differential correction broadcast: a
// delimiter-free stream of 30-bit words (24 data + 6 parity bits) carrying
// pseudorange corrections and related reference-station messages.
//
// Input words are expected to be phase- and inversion-corrected by the bit
// recovery layer; this package performs word-level parity checking only.
package rtcm

import "math/bits"

const (
	// WordsMax is the longest possible frame: a two-word header plus up
	// to 31 data words.
	WordsMax = 33

	// Preamble is the fixed pattern in the top eight bits of the first
	// header word.
	Preamble = 0x66

	wordMask = 0x3FFFFFFF // 30-bit word
	dataMask = 0x3FFFFFC0 // the 24 data bits within a word
	d29Mask  = 0x80000000 // previous word's second-to-last parity bit
	d30Mask  = 0x40000000 // previous word's last parity bit
)

// Parity coefficient masks for D25..D30, applied to a 32-bit window whose
// top two bits are the previous word's trailing parity bits. Fixed by the
// protocol.
var parityMasks = [6]uint32{
	0xBB1F3480,
	0x5D8F9A40,
	0xAEC7CD00,
	0x5763E680,
	0x6BB1F340,
	0x8B7A89C0,
}

// parityOK recomputes the six parity bits of the word in the low 30 bits of
// w and compares them with the carried parity. Bits 31 and 30 of w must
// hold the previous word's last two parity bits: the data bits are
// complemented on the wire whenever bit 30 is set, and both bits enter the
// parity equations.
func parityOK(w uint32) bool {
	v := w
	if v&d30Mask != 0 {
		v ^= dataMask
	}
	var p uint32
	for _, mask := range parityMasks {
		p = p<<1 | uint32(bits.OnesCount32(v&mask)&1)
	}
	return p == v&0x3F
}

// dataWord strips the history bits and undoes the data-bit complement,
// returning the plain 30-bit word (data + carried parity).
func dataWord(w uint32) uint32 {
	if w&d30Mask != 0 {
		return (w ^ dataMask) & wordMask
	}
	return w & wordMask
}

// EncodeWord builds a transmittable 30-bit word from 24 data bits and the
// previous word's trailing parity bits d29 and d30. Used to generate test
// and simulation streams; the inverse of what parityOK verifies.
func EncodeWord(data uint32, d29, d30 uint32) uint32 {
	v := (d29&1)<<31 | (d30&1)<<30 | (data&0xFFFFFF)<<6
	var p uint32
	for _, mask := range parityMasks {
		p = p<<1 | uint32(bits.OnesCount32(v&mask)&1)
	}
	w := (data&0xFFFFFF)<<6 | p
	if d30&1 == 1 {
		w ^= dataMask
	}
	return w & wordMask
}

// getBitU extracts an unsigned big-endian bit field from a byte-packed
// payload.
func getBitU(buf []byte, pos, n int) uint32 {
	var v uint32
	for i := pos; i < pos+n; i++ {
		v = v<<1 | uint32(buf[i/8]>>(7-i%8))&1
	}
	return v
}

// getBits extracts a two's-complement signed bit field, sign-extended.
func getBits(buf []byte, pos, n int) int32 {
	v := getBitU(buf, pos, n)
	if n <= 0 || n >= 32 || v&(1<<(n-1)) == 0 {
		return int32(v)
	}
	return int32(v | ^uint32(0)<<n)
}

package phihash

import (
	"encoding/binary"
	"math/bits"
)

// foldRounds is the number of mixing rounds run over the folded words.
const foldRounds = 3

// fold256 reduces the 16-word chaining state to the 8-word digest. Each output
// word depends non-linearly on one upper and one lower state word, so the
// digest never exposes the chaining value a further block would start from.
func fold256(h *[16]uint32) [Size256]byte {
	var o [8]uint32
	for q := 0; q < 8; q++ {
		u, l := h[q], h[q+8]
		o[q] = (u ^ l) + mulxor32(u, l) +
			mulxor32(bits.RotateLeft32(u, -7), l) +
			mulxor32(u, bits.RotateLeft32(l, -13)) +
			bits.RotateLeft32(u^l, -17)
	}
	for r := 0; r < foldRounds; r++ {
		for q := 0; q < 8; q++ {
			o[q] += mulxor32(o[(q+1)&7], o[(q+3)&7]) +
				mulxor32(o[(q+2)&7], o[(q+5)&7]) +
				(bits.RotateLeft32(o[(q+4)&7], -9) ^ bits.RotateLeft32(o[(q+6)&7], -19))
		}
	}

	var out [Size256]byte
	for q, x := range o {
		binary.BigEndian.PutUint32(out[4*q:], x)
	}
	return out
}

func fold512(h *[16]uint64) [Size512]byte {
	var o [8]uint64
	for q := 0; q < 8; q++ {
		u, l := h[q], h[q+8]
		o[q] = (u ^ l) + mulxor64(u, l) +
			mulxor64(bits.RotateLeft64(u, -19), l) +
			mulxor64(u, bits.RotateLeft64(l, -29)) +
			bits.RotateLeft64(u^l, -41)
	}
	for r := 0; r < foldRounds; r++ {
		for q := 0; q < 8; q++ {
			o[q] += mulxor64(o[(q+1)&7], o[(q+3)&7]) +
				mulxor64(o[(q+2)&7], o[(q+5)&7]) +
				(bits.RotateLeft64(o[(q+4)&7], -23) ^ bits.RotateLeft64(o[(q+6)&7], -47))
		}
	}

	var out [Size512]byte
	for q, x := range o {
		binary.BigEndian.PutUint64(out[8*q:], x)
	}
	return out
}

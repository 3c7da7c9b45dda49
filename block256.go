package phihash

import "encoding/binary"

const rounds256 = 52

// schedule256 extends the 16 block words in w[:16] to the full schedule.
func schedule256(w *[rounds256]uint32) {
	for i := 16; i < rounds256; i++ {
		lin := ssig1x32(w[i-2]) + w[i-7] + ssig0x32(w[i-15]) + w[i-16]
		n1 := mulxor32(w[i-3], w[i-10])
		n2 := mulxor32(w[i-5], w[i-12])
		n3 := mulxor32(w[i-1]^w[i-8], w[i-4]^w[i-14])
		w[i] = lin + n1 + (n2 ^ n3)
	}
}

// round256 applies one round to v. Words 0-7 are the upper half (a..h),
// words 8-15 the lower half (i..p).
func round256(v *[16]uint32, kt, wt uint32) {
	a, b, c, d, e, f, g, h := v[0], v[1], v[2], v[3], v[4], v[5], v[6], v[7]
	i, j, k, l, m, n, o, p := v[8], v[9], v[10], v[11], v[12], v[13], v[14], v[15]

	t1 := h + bsig1x32(e) + ch32(e, f, g) + kt + wt
	t2 := bsig0x32(a) + maj32(a, b, c)
	t3 := p + bsig1x32(m) + ch32(m, n, o) + (kt ^ phi32) + wt
	t4 := bsig0x32(i) + maj32(i, j, k)

	// Cross-half pairs.
	m1 := mulxor32(a^i, e^m)
	m2 := mulxor32(b^j, f^n)
	m3 := mulxor32(c^k, g^o)
	m4 := mulxor32(d^l, h^p)
	// Diagonal pairs.
	m5 := mulxor32(a^m, e^i)
	m6 := mulxor32(b^n, f^j)
	m7 := mulxor32(c^o, g^k)
	m8 := mulxor32(d^p, h^l)
	// Corners.
	m9 := mulxor32(a^p, h^i)
	m10 := mulxor32(d^m, e^l)

	v[0] = t1 + t2 + m1 + m5 + m9
	v[1] = a + m2
	v[2] = b + m3
	v[3] = c + m4
	v[4] = d + t1 + m9
	v[5] = e + m6
	v[6] = f + m7
	v[7] = g + m8
	v[8] = t3 + t4 + m1 + m5
	v[9] = i + m6
	v[10] = j + m7
	v[11] = k + m8
	v[12] = l + t3 + m10
	v[13] = m + m3
	v[14] = n + m4
	v[15] = o + m10
}

// permute256 interleaves the two halves: a, i, b, j, ..., h, p.
func permute256(v *[16]uint32) {
	u := *v
	for q := 0; q < 8; q++ {
		v[2*q] = u[q]
		v[2*q+1] = u[q+8]
	}
}

// compress256 folds one BlockSize256 block into h.
func compress256(h *[16]uint32, p []byte) {
	_ = p[BlockSize256-1]
	var w [rounds256]uint32
	for q := 0; q < 16; q++ {
		w[q] = binary.BigEndian.Uint32(p[4*q:])
	}
	schedule256(&w)

	v := *h
	for r := 0; r < rounds256; r++ {
		round256(&v, k256[r], w[r])
		if r&3 == 3 {
			permute256(&v)
		}
	}
	for q := range h {
		h[q] += v[q]
	}
}

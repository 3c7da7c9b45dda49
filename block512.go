package phihash

import "encoding/binary"

const rounds512 = 64

func schedule512(w *[rounds512]uint64) {
	for i := 16; i < rounds512; i++ {
		lin := ssig1x64(w[i-2]) + w[i-7] + ssig0x64(w[i-15]) + w[i-16]
		n1 := mulxor64(w[i-3], w[i-10])
		n2 := mulxor64(w[i-5], w[i-12])
		n3 := mulxor64(w[i-1]^w[i-8], w[i-4]^w[i-14])
		w[i] = lin + n1 + (n2 ^ n3)
	}
}

// round512 is round256 over 64-bit words with two extra products, m11 and
// m12, pairing the inner words of both halves.
func round512(v *[16]uint64, kt, wt uint64) {
	a, b, c, d, e, f, g, h := v[0], v[1], v[2], v[3], v[4], v[5], v[6], v[7]
	i, j, k, l, m, n, o, p := v[8], v[9], v[10], v[11], v[12], v[13], v[14], v[15]

	t1 := h + bsig1x64(e) + ch64(e, f, g) + kt + wt
	t2 := bsig0x64(a) + maj64(a, b, c)
	t3 := p + bsig1x64(m) + ch64(m, n, o) + (kt ^ phi64) + wt
	t4 := bsig0x64(i) + maj64(i, j, k)

	m1 := mulxor64(a^i, e^m)
	m2 := mulxor64(b^j, f^n)
	m3 := mulxor64(c^k, g^o)
	m4 := mulxor64(d^l, h^p)
	m5 := mulxor64(a^m, e^i)
	m6 := mulxor64(b^n, f^j)
	m7 := mulxor64(c^o, g^k)
	m8 := mulxor64(d^p, h^l)
	m9 := mulxor64(a^p, h^i)
	m10 := mulxor64(d^m, e^l)
	m11 := mulxor64(b^o, g^j)
	m12 := mulxor64(c^n, f^k)

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
	v[13] = m + m3 + m11
	v[14] = n + m4 + m12
	v[15] = o + m10
}

func permute512(v *[16]uint64) {
	u := *v
	for q := 0; q < 8; q++ {
		v[2*q] = u[q]
		v[2*q+1] = u[q+8]
	}
}

// compress512 folds one BlockSize512 block into h.
func compress512(h *[16]uint64, p []byte) {
	_ = p[BlockSize512-1]
	var w [rounds512]uint64
	for q := 0; q < 16; q++ {
		w[q] = binary.BigEndian.Uint64(p[8*q:])
	}
	schedule512(&w)

	v := *h
	for r := 0; r < rounds512; r++ {
		round512(&v, k512[r], w[r])
		if r&3 == 3 {
			permute512(&v)
		}
	}
	for q := range h {
		h[q] += v[q]
	}
}

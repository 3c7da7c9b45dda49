package phihash

import "math/bits"

// The sigma functions use the SHA-256 rotation amounts for 32-bit words and
// the SHA-512 ones for 64-bit words.

func ch32(x, y, z uint32) uint32  { return (x & y) ^ (^x & z) }
func maj32(x, y, z uint32) uint32 { return (x & y) ^ (x & z) ^ (y & z) }

func bsig0x32(x uint32) uint32 {
	return bits.RotateLeft32(x, -2) ^ bits.RotateLeft32(x, -13) ^ bits.RotateLeft32(x, -22)
}

func bsig1x32(x uint32) uint32 {
	return bits.RotateLeft32(x, -6) ^ bits.RotateLeft32(x, -11) ^ bits.RotateLeft32(x, -25)
}

func ssig0x32(x uint32) uint32 {
	return bits.RotateLeft32(x, -7) ^ bits.RotateLeft32(x, -18) ^ (x >> 3)
}

func ssig1x32(x uint32) uint32 {
	return bits.RotateLeft32(x, -17) ^ bits.RotateLeft32(x, -19) ^ (x >> 10)
}

// mulxor32 folds the full 64-bit product of a and b back into 32 bits. Both
// halves of the product must contribute.
func mulxor32(a, b uint32) uint32 {
	hi, lo := bits.Mul32(a, b)
	return hi ^ lo
}

func ch64(x, y, z uint64) uint64  { return (x & y) ^ (^x & z) }
func maj64(x, y, z uint64) uint64 { return (x & y) ^ (x & z) ^ (y & z) }

func bsig0x64(x uint64) uint64 {
	return bits.RotateLeft64(x, -28) ^ bits.RotateLeft64(x, -34) ^ bits.RotateLeft64(x, -39)
}

func bsig1x64(x uint64) uint64 {
	return bits.RotateLeft64(x, -14) ^ bits.RotateLeft64(x, -18) ^ bits.RotateLeft64(x, -41)
}

func ssig0x64(x uint64) uint64 {
	return bits.RotateLeft64(x, -1) ^ bits.RotateLeft64(x, -8) ^ (x >> 7)
}

func ssig1x64(x uint64) uint64 {
	return bits.RotateLeft64(x, -19) ^ bits.RotateLeft64(x, -61) ^ (x >> 6)
}

// mulxor64 is the 64-bit counterpart of mulxor32 over the 128-bit product.
func mulxor64(a, b uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	return hi ^ lo
}

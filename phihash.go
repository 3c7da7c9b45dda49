// Package phihash implements a hash family built around widening
// multiplication, in a 256-bit variant over 32-bit words and a 512-bit variant
// over 64-bit words, together with HMAC over both.
//
// The chaining state is 16 words wide, twice the digest. Each block is
// expanded into a 52 (or 64) word schedule and run through as many rounds. A
// round is a SHA-2 style step on each half of the state, plus ten (or twelve)
// products mixing the halves, where every product is the XOR of the high and
// low halves of the full double-width multiplication. Every fourth round
// interleaves the two halves. After the last block the state is folded down
// to the digest width through three further rounds of products, so a digest
// is never a chaining value.
//
// Padding is Merkle-Damgard: 0x80, zeros, then the message length in bits as a
// 64-bit big-endian integer, for both variants.
//
// The key derivation and random generation constructions live in the hkdf,
// pbkdf2 and drbg sub-packages and take New256 or New512 as their hash.
//
// None of this has been through public cryptanalysis.
package phihash

import (
	"hash"

	"github.com/pkg/errors"
)

const (
	// Size256 is the size of a 256-bit digest in bytes.
	Size256 = 32
	// Size512 is the size of a 512-bit digest in bytes.
	Size512 = 64
	// BlockSize256 is the block size of the 256-bit variant in bytes.
	BlockSize256 = 64
	// BlockSize512 is the block size of the 512-bit variant in bytes.
	BlockSize512 = 128

	// maxMessageBytes is the longest message whose bit length fits the
	// 64-bit length suffix.
	maxMessageBytes = (1<<64 - 1) >> 3
)

var (
	// ErrInvalidLength is returned when a message or an output length is
	// beyond what the construction can represent.
	ErrInvalidLength = errors.New("phihash: invalid length")
	// ErrInvalidParameter is returned for non-positive iteration counts and
	// key lengths.
	ErrInvalidParameter = errors.New("phihash: invalid parameter")
	// ErrInsufficientEntropy is returned when a generator is seeded with
	// fewer than 32 bytes of entropy.
	ErrInsufficientEntropy = errors.New("phihash: insufficient entropy")
)

// Sum256 computes the 256-bit digest of data. Zero heap allocations.
func Sum256(data []byte) [Size256]byte {
	var d Hasher256
	d.Reset()
	// A slice cannot hold more than maxMessageBytes on any platform Go
	// supports, so the length check in Write is not needed here.
	d.len = uint64(len(data))
	d.absorb(data)
	return d.checkSum()
}

// Sum512 computes the 512-bit digest of data. Zero heap allocations.
func Sum512(data []byte) [Size512]byte {
	var d Hasher512
	d.Reset()
	d.len = uint64(len(data))
	d.absorb(data)
	return d.checkSum()
}

// New256 returns a hash.Hash computing the 256-bit digest.
func New256() hash.Hash {
	d := new(Hasher256)
	d.Reset()
	return d
}

// New512 returns a hash.Hash computing the 512-bit digest.
func New512() hash.Hash {
	d := new(Hasher512)
	d.Reset()
	return d
}

// Package drbg implements the Hash_DRBG deterministic random bit generator of
// NIST SP 800-90A over phihash.
//
// The generator state is a value V and a constant C, both seedlen bits, plus
// a reseed counter. Output is Hash(V) || Hash(V+1) || ..., after which V is
// advanced by Hash(0x03 || V) + C + counter. Seeding and reseeding go through
// the Hash_df derivation function.
//
// A DRBG is not safe for concurrent use.
package drbg

import (
	"encoding/binary"
	"hash"

	"github.com/Giulio2002/phihash"
	"github.com/pkg/errors"
)

const (
	// MinEntropy is the minimum number of entropy bytes accepted by New and
	// Reseed.
	MinEntropy = 32
	// MaxRequest is the largest number of bytes a single Generate call
	// returns (2^19 bits).
	MaxRequest = 1 << 16
	// ReseedInterval is the number of Generate calls allowed between
	// reseeds.
	ReseedInterval = 1 << 48
)

// ErrReseedRequired is returned by Generate once ReseedInterval requests
// have been served since the last (re)seed.
var ErrReseedRequired = errors.New("drbg: reseed required")

// DRBG is a Hash_DRBG instance.
type DRBG struct {
	h       func() hash.Hash
	v, c    []byte
	counter uint64
}

// seedLen returns seedlen in bytes for a hash with the given block size:
// 440 bits for 64-byte blocks and 888 bits for 128-byte blocks.
func seedLen(blockSize int) int {
	if blockSize > 64 {
		return 111
	}
	return 55
}

// New instantiates a generator from entropy, an optional nonce and an
// optional personalization string. It fails with
// phihash.ErrInsufficientEntropy if entropy is shorter than MinEntropy.
func New(h func() hash.Hash, entropy, nonce, personalization []byte) (*DRBG, error) {
	if len(entropy) < MinEntropy {
		return nil, errors.Wrapf(phihash.ErrInsufficientEntropy, "drbg: %d bytes of entropy, need %d", len(entropy), MinEntropy)
	}
	d := &DRBG{h: h}
	n := seedLen(h().BlockSize())
	d.v = d.df(n, entropy, nonce, personalization)
	d.c = d.df(n, []byte{0x00}, d.v)
	d.counter = 1
	return d, nil
}

// Reseed mixes fresh entropy and optional additional input into the state
// and resets the reseed counter.
func (d *DRBG) Reseed(entropy, additional []byte) error {
	if len(entropy) < MinEntropy {
		return errors.Wrapf(phihash.ErrInsufficientEntropy, "drbg: %d bytes of entropy, need %d", len(entropy), MinEntropy)
	}
	n := len(d.v)
	d.v = d.df(n, []byte{0x01}, d.v, entropy, additional)
	d.c = d.df(n, []byte{0x00}, d.v)
	d.counter = 1
	return nil
}

// Generate returns n pseudorandom bytes. Additional input, if any, is mixed
// into V before generation.
func (d *DRBG) Generate(n int, additional []byte) ([]byte, error) {
	switch {
	case n < 0:
		return nil, errors.Wrapf(phihash.ErrInvalidParameter, "drbg: %d bytes requested", n)
	case n > MaxRequest:
		return nil, errors.Wrapf(phihash.ErrInvalidLength, "drbg: %d bytes requested, limit is %d", n, MaxRequest)
	case d.counter > ReseedInterval:
		return nil, ErrReseedRequired
	}
	if len(additional) > 0 {
		addInto(d.v, d.sum([]byte{0x02}, d.v, additional))
	}

	out := make([]byte, 0, n)
	data := append([]byte(nil), d.v...)
	for len(out) < n {
		out = append(out, d.sum(data)...)
		addInto(data, []byte{0x01})
	}
	out = out[:n]

	hv := d.sum([]byte{0x03}, d.v)
	var ctr [8]byte
	binary.BigEndian.PutUint64(ctr[:], d.counter)
	addInto(d.v, hv)
	addInto(d.v, d.c)
	addInto(d.v, ctr[:])
	d.counter++
	return out, nil
}

// Read fills p with pseudorandom bytes, splitting it into MaxRequest sized
// requests. It implements io.Reader.
func (d *DRBG) Read(p []byte) (int, error) {
	written := 0
	for written < len(p) {
		chunk := min(len(p)-written, MaxRequest)
		b, err := d.Generate(chunk, nil)
		if err != nil {
			return written, err
		}
		written += copy(p[written:], b)
	}
	return written, nil
}

func (d *DRBG) sum(parts ...[]byte) []byte {
	h := d.h()
	for _, p := range parts {
		h.Write(p)
	}
	return h.Sum(nil)
}

// df is Hash_df: Hash(counter || bits || input) for counter = 1, 2, ...
// truncated to n bytes.
func (d *DRBG) df(n int, input ...[]byte) []byte {
	var hdr [5]byte
	binary.BigEndian.PutUint32(hdr[1:], uint32(n*8))
	out := make([]byte, 0, n+64)
	for hdr[0] = 1; len(out) < n; hdr[0]++ {
		out = append(out, d.sum(append([][]byte{hdr[:]}, input...)...)...)
	}
	return out[:n:n]
}

// addInto sets dst = (dst + src) mod 2^(8*len(dst)), both big-endian.
func addInto(dst, src []byte) {
	var carry uint16
	j := len(src) - 1
	for i := len(dst) - 1; i >= 0; i-- {
		s := uint16(dst[i]) + carry
		if j >= 0 {
			s += uint16(src[j])
			j--
		}
		dst[i] = byte(s)
		carry = s >> 8
	}
}

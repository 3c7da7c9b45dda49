// Package hkdf implements the HMAC-based extract-and-expand key derivation
// function of RFC 5869 over phihash.
//
// The hash is passed as a constructor, phihash.New256 or phihash.New512.
// Output lengths are checked before any HMAC is computed.
package hkdf

import (
	"hash"
	"io"

	"github.com/Giulio2002/phihash"
	"github.com/pkg/errors"
	"golang.org/x/crypto/hkdf"
)

// maxBlocks is the largest expansion counter, a single byte.
const maxBlocks = 255

// Extract returns the pseudorandom key HMAC(salt, ikm). An empty salt acts as
// a string of zero bytes.
func Extract(h func() hash.Hash, salt, ikm []byte) []byte {
	return hkdf.Extract(h, ikm, salt)
}

// Expand derives length bytes of output keying material from prk and info,
// T(i) = HMAC(prk, T(i-1) || info || i). It fails with
// phihash.ErrInvalidLength if length is negative or more than 255 digests.
func Expand(h func() hash.Hash, prk, info []byte, length int) ([]byte, error) {
	if err := checkLength(h, length); err != nil {
		return nil, err
	}
	out := make([]byte, length)
	if _, err := io.ReadFull(hkdf.Expand(h, prk, info), out); err != nil {
		return nil, errors.Wrap(err, "hkdf: expand")
	}
	return out, nil
}

// Key runs Extract then Expand.
func Key(h func() hash.Hash, ikm, salt, info []byte, length int) ([]byte, error) {
	if err := checkLength(h, length); err != nil {
		return nil, err
	}
	return Expand(h, Extract(h, salt, ikm), info, length)
}

// New returns a Reader yielding up to 255 digests of output keying material
// derived from ikm, salt and info. Reads past that limit fail.
func New(h func() hash.Hash, ikm, salt, info []byte) io.Reader {
	return hkdf.New(h, ikm, salt, info)
}

func checkLength(h func() hash.Hash, length int) error {
	limit := maxBlocks * h().Size()
	if length < 0 || length > limit {
		return errors.Wrapf(phihash.ErrInvalidLength, "hkdf: %d bytes requested, limit is %d", length, limit)
	}
	return nil
}

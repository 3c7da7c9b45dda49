// Package pbkdf2 implements the PBKDF2 password-based key derivation function
// of RFC 8018 with HMAC over phihash as the pseudorandom function.
//
// For output block i (counted from 1, encoded as 4 bytes big-endian),
// U1 = HMAC(password, salt || i), Uj = HMAC(password, Uj-1), and the block
// is U1 ^ U2 ^ ... ^ Uiter. Blocks are concatenated and truncated to keyLen.
package pbkdf2

import (
	"hash"

	"github.com/Giulio2002/phihash"
	"github.com/pkg/errors"
	"golang.org/x/crypto/pbkdf2"
)

// Key derives a keyLen byte key from password and salt with iter rounds.
// iter must be at least 1 and keyLen positive; otherwise it fails with
// phihash.ErrInvalidParameter before doing any work.
func Key(h func() hash.Hash, password, salt []byte, iter, keyLen int) ([]byte, error) {
	if iter < 1 {
		return nil, errors.Wrapf(phihash.ErrInvalidParameter, "pbkdf2: iteration count %d", iter)
	}
	if keyLen <= 0 {
		return nil, errors.Wrapf(phihash.ErrInvalidParameter, "pbkdf2: key length %d", keyLen)
	}
	return pbkdf2.Key(password, salt, iter, keyLen, h), nil
}

package phihash

import (
	"crypto/hmac"
	"hash"
)

// NewMAC256 returns a hash.Hash computing HMAC over the 256-bit variant.
// Keys longer than BlockSize256 are hashed first, shorter ones zero padded.
func NewMAC256(key []byte) hash.Hash { return hmac.New(New256, key) }

// NewMAC512 returns a hash.Hash computing HMAC over the 512-bit variant.
func NewMAC512(key []byte) hash.Hash { return hmac.New(New512, key) }

// MAC256 returns HMAC(key, data) over the 256-bit variant.
func MAC256(key, data []byte) [Size256]byte {
	var out [Size256]byte
	m := NewMAC256(key)
	m.Write(data)
	m.Sum(out[:0])
	return out
}

// MAC512 returns HMAC(key, data) over the 512-bit variant.
func MAC512(key, data []byte) [Size512]byte {
	var out [Size512]byte
	m := NewMAC512(key)
	m.Write(data)
	m.Sum(out[:0])
	return out
}

// Equal compares two tags in constant time.
func Equal(mac1, mac2 []byte) bool { return hmac.Equal(mac1, mac2) }

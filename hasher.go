package phihash

import "encoding/binary"

// Hasher256 is a streaming 256-bit hasher. Designed for stack allocation; the
// zero value is ready to use.
type Hasher256 struct {
	h     [16]uint32
	buf   [BlockSize256]byte
	nx    int
	len   uint64
	err   error
	ready bool
}

// Reset resets the hasher to its initial state.
func (d *Hasher256) Reset() {
	d.h = iv256
	d.nx = 0
	d.len = 0
	d.err = nil
	d.ready = true
}

// Write absorbs p. Once the total length no longer fits the 64-bit bit
// counter it returns ErrInvalidLength, absorbs nothing, and keeps failing
// until Reset.
func (d *Hasher256) Write(p []byte) (int, error) {
	if !d.ready {
		d.Reset()
	}
	if d.err != nil {
		return 0, d.err
	}
	if uint64(len(p)) > maxMessageBytes-d.len {
		d.err = ErrInvalidLength
		return 0, d.err
	}
	d.len += uint64(len(p))
	d.absorb(p)
	return len(p), nil
}

// absorb feeds p through the compression function without touching the
// length counter.
func (d *Hasher256) absorb(p []byte) {
	if d.nx > 0 {
		n := copy(d.buf[d.nx:], p)
		d.nx += n
		p = p[n:]
		if d.nx == BlockSize256 {
			compress256(&d.h, d.buf[:])
			d.nx = 0
		}
	}

	for len(p) >= BlockSize256 {
		compress256(&d.h, p[:BlockSize256])
		p = p[BlockSize256:]
	}

	if len(p) > 0 {
		d.nx = copy(d.buf[:], p)
	}
}

// Sum256 returns the digest of everything written so far.
// Does not modify the hasher state.
func (d *Hasher256) Sum256() [Size256]byte {
	if d.err != nil {
		panic("phihash: Sum after length overflow")
	}
	c := *d
	if !c.ready {
		c.Reset()
	}
	return c.checkSum()
}

// Sum appends the current digest to b and returns the resulting slice.
// Does not modify the hasher state.
func (d *Hasher256) Sum(b []byte) []byte {
	sum := d.Sum256()
	return append(b, sum[:]...)
}

// Final pads, folds and returns the digest, then clears every field of the
// hasher. The cleared hasher is a zero value: using it again starts a new
// message.
func (d *Hasher256) Final() ([Size256]byte, error) {
	if d.err != nil {
		*d = Hasher256{}
		return [Size256]byte{}, ErrInvalidLength
	}
	if !d.ready {
		d.Reset()
	}
	sum := d.checkSum()
	*d = Hasher256{}
	return sum, nil
}

// Size returns the number of bytes Sum will produce (32).
func (d *Hasher256) Size() int { return Size256 }

// BlockSize returns the block size in bytes (64).
func (d *Hasher256) BlockSize() int { return BlockSize256 }

// checkSum pads the buffered tail and folds the final state. It consumes d.
func (d *Hasher256) checkSum() [Size256]byte {
	var tmp [BlockSize256 + 8]byte
	tmp[0] = 0x80
	var t int
	if r := int(d.len % BlockSize256); r < BlockSize256-8 {
		t = BlockSize256 - 8 - r
	} else {
		t = 2*BlockSize256 - 8 - r
	}
	binary.BigEndian.PutUint64(tmp[t:], d.len<<3)
	d.absorb(tmp[:t+8])
	if d.nx != 0 {
		panic("phihash: d.nx != 0")
	}
	return fold256(&d.h)
}

// Hasher512 is a streaming 512-bit hasher. Designed for stack allocation; the
// zero value is ready to use.
type Hasher512 struct {
	h     [16]uint64
	buf   [BlockSize512]byte
	nx    int
	len   uint64
	err   error
	ready bool
}

// Reset resets the hasher to its initial state.
func (d *Hasher512) Reset() {
	d.h = iv512
	d.nx = 0
	d.len = 0
	d.err = nil
	d.ready = true
}

// Write absorbs p. See Hasher256.Write for the overflow behaviour.
func (d *Hasher512) Write(p []byte) (int, error) {
	if !d.ready {
		d.Reset()
	}
	if d.err != nil {
		return 0, d.err
	}
	if uint64(len(p)) > maxMessageBytes-d.len {
		d.err = ErrInvalidLength
		return 0, d.err
	}
	d.len += uint64(len(p))
	d.absorb(p)
	return len(p), nil
}

func (d *Hasher512) absorb(p []byte) {
	if d.nx > 0 {
		n := copy(d.buf[d.nx:], p)
		d.nx += n
		p = p[n:]
		if d.nx == BlockSize512 {
			compress512(&d.h, d.buf[:])
			d.nx = 0
		}
	}

	for len(p) >= BlockSize512 {
		compress512(&d.h, p[:BlockSize512])
		p = p[BlockSize512:]
	}

	if len(p) > 0 {
		d.nx = copy(d.buf[:], p)
	}
}

// Sum512 returns the digest of everything written so far.
// Does not modify the hasher state.
func (d *Hasher512) Sum512() [Size512]byte {
	if d.err != nil {
		panic("phihash: Sum after length overflow")
	}
	c := *d
	if !c.ready {
		c.Reset()
	}
	return c.checkSum()
}

// Sum appends the current digest to b and returns the resulting slice.
func (d *Hasher512) Sum(b []byte) []byte {
	sum := d.Sum512()
	return append(b, sum[:]...)
}

// Final is Hasher256.Final for the 512-bit variant.
func (d *Hasher512) Final() ([Size512]byte, error) {
	if d.err != nil {
		*d = Hasher512{}
		return [Size512]byte{}, ErrInvalidLength
	}
	if !d.ready {
		d.Reset()
	}
	sum := d.checkSum()
	*d = Hasher512{}
	return sum, nil
}

// Size returns the number of bytes Sum will produce (64).
func (d *Hasher512) Size() int { return Size512 }

// BlockSize returns the block size in bytes (128).
func (d *Hasher512) BlockSize() int { return BlockSize512 }

func (d *Hasher512) checkSum() [Size512]byte {
	var tmp [BlockSize512 + 8]byte
	tmp[0] = 0x80
	var t int
	if r := int(d.len % BlockSize512); r < BlockSize512-8 {
		t = BlockSize512 - 8 - r
	} else {
		t = 2*BlockSize512 - 8 - r
	}
	binary.BigEndian.PutUint64(tmp[t:], d.len<<3)
	d.absorb(tmp[:t+8])
	if d.nx != 0 {
		panic("phihash: d.nx != 0")
	}
	return fold512(&d.h)
}

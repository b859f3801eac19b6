package trace

import (
	"hash"

	"github.com/cespare/xxhash"
)

// Digest hashes every entry it is given, so that two runs of the same
// program can be checked for identical execution without keeping the
// trace around.
type Digest struct {
	h     hash.Hash64
	buf   []byte
	count uint64
}

// NewDigest returns a new Digest.
func NewDigest() *Digest {
	return &Digest{h: xxhash.New(), buf: make([]byte, 0, BinarySize+32)}
}

// Trace adds the entry to the digest.
func (d *Digest) Trace(e Entry) error {
	d.buf = e.AppendBinary(d.buf[:0])
	d.count++
	_, err := d.h.Write(d.buf)
	return err
}

// Sum64 returns the digest of every entry so far.
func (d *Digest) Sum64() uint64 {
	return d.h.Sum64()
}

// Count returns the number of entries hashed.
func (d *Digest) Count() uint64 {
	return d.count
}

// Memory returns the hash of the given memory contents.
func Memory(mem []byte) uint64 {
	return xxhash.Sum64(mem)
}

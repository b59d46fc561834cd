package encrypto

import "encoding/binary"

// PaddedBlockCache precomputes the padded plaintext blocks that are
// AES-encrypted to produce RollingProximityIdentifiers. The blocks depend
// only on the absolute interval number, not on any key material, so a cache
// built for a retention window of aligned base offsets can be shared across
// every TemporaryExposureKey evaluated for that window.
//
// The cache covers interval numbers [base, base+cacheSize*idsPerKey),
// stepping by idsPerKey; each entry holds idsPerKey consecutive blocks in
// one contiguous buffer. It is write-once at construction and read-only
// afterwards, so it is safe to share across goroutines.
type PaddedBlockCache struct {
	base      ENIntervalNumber
	idsPerKey uint32
	entries   [][]byte
}

// NewPaddedBlockCache builds a cache of cacheSize entries starting at
// baseENIntervalNumber. The base must already lie on a rolling-period
// boundary; alignment is the caller's responsibility.
func NewPaddedBlockCache(baseENIntervalNumber ENIntervalNumber, cacheSize int, paddingPrefix []byte, idsPerKey uint32) *PaddedBlockCache {
	entries := make([][]byte, cacheSize)
	for k := range entries {
		start := baseENIntervalNumber + ENIntervalNumber(uint32(k)*idsPerKey)
		buf := make([]byte, int(idsPerKey)*BlockSize)
		fillPaddedBlocks(buf, start, paddingPrefix)
		entries[k] = buf
	}
	return &PaddedBlockCache{
		base:      baseENIntervalNumber,
		idsPerKey: idsPerKey,
		entries:   entries,
	}
}

// CachedBlocks returns the precomputed aggregate block buffer for
// enIntervalNumber, which must equal base+k*idsPerKey for some entry k.
// Any other offset — non-aligned, before the base, or past the cached
// window — reports false; a miss is benign and callers fall back to direct
// computation. The returned buffer is shared and must be treated read-only.
func (c *PaddedBlockCache) CachedBlocks(enIntervalNumber ENIntervalNumber) ([]byte, bool) {
	if c == nil || c.idsPerKey == 0 || enIntervalNumber < c.base {
		return nil, false
	}
	offset := uint32(enIntervalNumber - c.base)
	if offset%c.idsPerKey != 0 {
		return nil, false
	}
	k := offset / c.idsPerKey
	if k >= uint32(len(c.entries)) {
		return nil, false
	}
	return c.entries[k], true
}

// fillPaddedBlocks writes sequential padded plaintext blocks into buf, one
// per full BlockSize chunk, starting at interval number start. It returns
// the number of blocks written.
func fillPaddedBlocks(buf []byte, start ENIntervalNumber, paddingPrefix []byte) int {
	n := len(buf) / BlockSize
	for i := 0; i < n; i++ {
		writePaddedBlock(buf[i*BlockSize:(i+1)*BlockSize], start+ENIntervalNumber(i), paddingPrefix)
	}
	return n
}

// writePaddedBlock fills one BlockSize-byte block: the padding prefix,
// zero bytes, and the little-endian interval number in the last 4 bytes.
func writePaddedBlock(block []byte, enin ENIntervalNumber, paddingPrefix []byte) {
	for i := range block {
		block[i] = 0
	}
	copy(block, paddingPrefix)
	binary.LittleEndian.PutUint32(block[BlockSize-4:], uint32(enin))
}

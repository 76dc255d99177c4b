package xsum

import "math/bits"

// chunkset is the two-level bitset a large accumulator uses to remember
// which of its lchunks buckets have ever received a value (and so must be
// visited by Round/Merge). The word/bit split follows cortexproject-cortex's
// BitSet256; this version adds a second level (usedUsed) summarizing which
// of the 64 words are non-zero, since lchunks is 4096 bits (64 words) rather
// than 256, and a full linear scan over 64 words on every round would be
// wasteful when most are empty.
type chunkset struct {
	chunksUsed [lchunks / 64]uint64
	usedUsed   uint64
}

// set marks bucket ix as used.
func (c *chunkset) set(ix uint16) {
	word := ix >> 6
	c.chunksUsed[word] |= uint64(1) << (ix & 63)
	c.usedUsed |= uint64(1) << word
}

// isEmpty reports whether no bucket has ever been used.
func (c *chunkset) isEmpty() bool {
	return c.usedUsed == 0
}

// forEachSet calls fn once for every used bucket index, in ascending order,
// skipping whole words via usedUsed before walking their bits.
func (c *chunkset) forEachSet(fn func(ix uint16)) {
	uu := c.usedUsed
	for uu != 0 {
		word := uint(bits.TrailingZeros64(uu))
		uu &= uu - 1

		w := c.chunksUsed[word]
		for w != 0 {
			bit := uint(bits.TrailingZeros64(w))
			w &= w - 1
			fn(uint16(word<<6 + bit))
		}
	}
}

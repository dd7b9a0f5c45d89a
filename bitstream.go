package furc

// cacheBlocks is the number of 64-bit stream blocks a full walk can touch.
// The stream position advances by shift per draw and a try draws at most
// shift bits, so maxTries tries reach bit index at most
// shift + maxTries*shift*shift, rounded up to whole blocks.
const cacheBlocks = (shift+maxTries*shift*shift)/64 + 1

// Cache is caller-owned scratch storage for the per-key pseudorandom bit
// stream. Reusing one Cache across many HashWithCache calls avoids
// recomputing storage in hot loops; the walk resets it before each key, so
// no state leaks between calls.
//
// The zero value is ready to use. A Cache must not be shared between
// goroutines; give each goroutine its own.
type Cache struct {
	blocks [cacheBlocks]uint64

	// filled is the number of contiguously computed blocks, starting at
	// block 0. Blocks below filled are valid for the current key and are
	// never recomputed within one walk.
	filled int
}

// Reset discards all cached stream blocks, readying the Cache for a new key.
func (c *Cache) Reset() {
	c.filled = 0
}

// getBit returns bit idx of the pseudorandom stream for key.
//
// Block 0 of the stream is Mix64(key, streamSeed); block n is
// rehash64(block n-1). Missing blocks up to idx's block are computed and
// cached on demand. Blocks are filled contiguously from 0 and never
// invalidated within one walk, so any idx at or below the high-water mark
// reads a cached block; the key must not change between calls without an
// intervening Reset.
func (c *Cache) getBit(key []byte, idx uint32) uint32 {
	ord := int(idx >> 6)

	for n := c.filled; n <= ord; n++ {
		if n == 0 {
			c.blocks[0] = Mix64(key, streamSeed)
		} else {
			c.blocks[n] = rehash64(c.blocks[n-1])
		}
	}
	if c.filled <= ord {
		c.filled = ord + 1
	}

	return uint32(c.blocks[ord]>>(idx&63)) & 1
}

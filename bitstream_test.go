package furc

import "testing"

// TestGetBitMatchesStream verifies that getBit serves exactly the bits of
// the block sequence Mix64(key), rehash64(...), in LSB-first order within
// each 64-bit block.
func TestGetBitMatchesStream(t *testing.T) {
	key := []byte("bitstream-key")

	blocks := make([]uint64, cacheBlocks)
	blocks[0] = Mix64(key, streamSeed)
	for n := 1; n < len(blocks); n++ {
		blocks[n] = rehash64(blocks[n-1])
	}

	var cache Cache
	for idx := uint32(0); idx < uint32(cacheBlocks*64); idx++ {
		want := uint32(blocks[idx/64]>>(idx%64)) & 1
		if got := cache.getBit(key, idx); got != want {
			t.Fatalf("getBit(%d) = %d, want %d", idx, got, want)
		}
	}
}

// TestGetBitLazyFill verifies blocks are filled contiguously and only as far
// as requested, and are not recomputed on repeat requests.
func TestGetBitLazyFill(t *testing.T) {
	key := []byte("lazy")
	var cache Cache

	if cache.filled != 0 {
		t.Fatalf("zero-value Cache has filled = %d, want 0", cache.filled)
	}

	cache.getBit(key, 5)
	if cache.filled != 1 {
		t.Errorf("after bit 5: filled = %d, want 1", cache.filled)
	}

	cache.getBit(key, 200) // block 3: blocks 1, 2, 3 must be filled in order
	if cache.filled != 4 {
		t.Errorf("after bit 200: filled = %d, want 4", cache.filled)
	}

	// A request below the high-water mark must not refill.
	before := cache.blocks
	cache.getBit(key, 64)
	if cache.filled != 4 || cache.blocks != before {
		t.Error("request below high-water mark modified the cache")
	}
}

// TestCacheReset verifies Reset invalidates cached blocks so a reused Cache
// serves the new key's stream, not the old one's.
func TestCacheReset(t *testing.T) {
	keyA := []byte("key-a")
	keyB := []byte("key-b")

	var reused Cache
	// Fill deep for keyA, then reset and read shallow for keyB.
	reused.getBit(keyA, uint32(cacheBlocks*64-1))
	reused.Reset()

	var fresh Cache
	for idx := uint32(0); idx < 256; idx++ {
		if got, want := reused.getBit(keyB, idx), fresh.getBit(keyB, idx); got != want {
			t.Fatalf("after Reset: getBit(%d) = %d, fresh cache says %d", idx, got, want)
		}
	}
}

func TestCacheBlocksCoversWalk(t *testing.T) {
	// The deepest bit index a walk can request: the stream position
	// advances by shift per draw and a try draws at most shift bits.
	maxIdx := uint32(shift + maxTries*shift*shift)
	if int(maxIdx>>6) >= cacheBlocks {
		t.Fatalf("cacheBlocks = %d cannot hold bit index %d", cacheBlocks, maxIdx)
	}
}

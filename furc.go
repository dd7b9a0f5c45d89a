package furc

import "fmt"

const (
	// shift bounds the pool size (MaxPoolSize = 1<<shift) and is the bit
	// stride between tree levels, so distinct levels draw from
	// well-separated stream positions. Raising it raises the pool limit
	// and makes hashing modestly slower.
	shift = 23

	// maxTries bounds the rejection-sampling retries of the tree walk.
	maxTries = 32
)

// MaxPoolSize returns the largest pool size Hash accepts, 2^23.
func MaxPoolSize() uint32 {
	return 1 << shift
}

// Hash maps key to a bucket index in [0, m) for a pool of m buckets.
//
// The mapping is consistent: growing or shrinking the pool by one bucket
// remaps only about 1/(m+1) of keys. m must be at most MaxPoolSize();
// larger values are a contract violation and panic. m <= 1 returns 0.
//
// Hash allocates its scratch Cache on the stack; use HashWithCache to reuse
// one across many calls.
func Hash(key []byte, m uint32) uint32 {
	var cache Cache
	return HashWithCache(key, m, &cache)
}

// HashWithCache is Hash using caller-supplied scratch storage. The cache is
// reset before use, so it may be reused freely across keys and pool sizes.
func HashWithCache(key []byte, m uint32, cache *Cache) uint32 {
	if m > MaxPoolSize() {
		panic(fmt.Sprintf("furc: pool size %d exceeds maximum %d", m, MaxPoolSize()))
	}
	if m <= 1 {
		return 0
	}

	cache.Reset()

	// d is the minimum bit depth addressing m buckets: smallest d with
	// 2^d >= m.
	var d uint32
	for d = 0; m > 1<<d; d++ {
	}

	a := d
	for tries := 0; tries < maxTries; tries++ {
		// Descend while drawing zeros. Each zero says the result fits
		// in one fewer bit. Running out of depth means the walk failed;
		// 0 is the documented fallback and legal for every m.
		for cache.getBit(key, a) == 0 {
			d--
			if d == 0 {
				return 0
			}
			a = d
		}

		// A one at depth d fixes the candidate's leading bit. Draw the
		// remaining d-1 bits, most significant first.
		a += shift
		num := uint32(1)
		for i := uint32(0); i < d-1; i++ {
			num = num<<1 | cache.getBit(key, a)
			a += shift
		}

		// Candidates land in [2^(d-1), 2^d); reject the high end that
		// falls outside the pool and retry on fresh stream positions.
		if num < m {
			return num
		}
	}

	return 0
}

// Package furc implements FurcHash, a consistent hash function that maps an
// arbitrary byte-string key to one bucket out of a resizable pool of m
// buckets, remapping only ~1/(m+1) of keys when m changes by one.
//
// FurcHash walks a binary decision tree over a per-key pseudorandom bit
// stream. The stream is derived from a single MurmurHash64A of the key and
// extended on demand by rehashing, so cost is nearly independent of key
// length. The walk is iterative and bounded, so every call terminates in a
// small constant number of bit draws.
//
// # Basic Usage
//
// Assigning a key to one of m servers:
//
//	bucket := furc.Hash([]byte("user:9821734"), uint32(len(servers)))
//	server := servers[bucket]
//
// In hot loops, reuse scratch storage across calls:
//
//	var cache furc.Cache
//	for _, key := range keys {
//	    buckets = append(buckets, furc.HashWithCache(key, m, &cache))
//	}
//
// The pool size m must be at most MaxPoolSize() (2^23). The result is always
// in [0, m); 0 is additionally the documented fallback when the tree walk
// exhausts its retry budget, which is vanishingly rare in practice.
//
// All functions are pure and the only mutable state (Cache) is caller-owned
// scratch, so the package is safe for concurrent use without locking as long
// as each goroutine uses its own Cache.
//
// # Package Structure
//
//   - Public API: furc.go (Hash, HashWithCache, MaxPoolSize)
//   - Mixing: mix.go (Mix64, rehash64), prehash.go (PreHash)
//   - Bit stream: bitstream.go (Cache)
//   - Checksum: crc32.go (CRC32), an independent fingerprint entry point
//   - Tooling: cmd/bench (distribution and consistency measurements)
//
// FurcHash is not cryptographically secure; it is intended only for uniform
// bucket distribution.
package furc

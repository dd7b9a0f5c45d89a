package furc

import (
	"encoding/binary"

	"github.com/zeebo/xxh3"
)

// PreHash applies xxHash3-128 to a key, returning 16 bytes.
//
// FurcHash reads the whole key once per call, so hashing a multi-kilobyte
// key against several pools repeats that scan. Pre-hashing collapses the key
// to a fixed 16-byte value that can be routed many times cheaply:
//
//	hk := furc.PreHash(longKey)
//	primary := furc.Hash(hk, primaryPoolSize)
//	standby := furc.Hash(hk, standbyPoolSize)
//
// All routers in a deployment must agree on whether a key class is
// pre-hashed: Hash(key, m) and Hash(PreHash(key), m) are unrelated values.
// For short keys PreHash buys nothing; call Hash directly.
func PreHash(key []byte) []byte {
	h := xxh3.Hash128(key)
	result := make([]byte, 16)
	binary.LittleEndian.PutUint64(result[0:8], h.Lo)
	binary.LittleEndian.PutUint64(result[8:16], h.Hi)
	return result
}

// PreHashInPlace applies xxHash3-128 to a key, writing the result to dst.
// dst must be at least 16 bytes. This avoids allocation when processing
// many keys in a loop.
func PreHashInPlace(key []byte, dst []byte) {
	h := xxh3.Hash128(key)
	binary.LittleEndian.PutUint64(dst[0:8], h.Lo)
	binary.LittleEndian.PutUint64(dst[8:16], h.Hi)
}

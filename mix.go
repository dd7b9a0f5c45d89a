package furc

import "encoding/binary"

const (
	// mixMul and mixShift are the MurmurHash64A multiply constant and
	// shift distance.
	mixMul   = 0xc6a4a7935bd1e995
	mixShift = 47

	// streamSeed seeds both the initial key hash and every rehash round.
	// Selected by search for optimum diffusion under recursive application;
	// changing it changes every bucket assignment, so it is fixed forever.
	streamSeed = 4193360111
)

// Mix64 computes the 64-bit MurmurHash64A of data under seed.
//
// The input is consumed in 8-byte words assembled little-endian regardless
// of platform, so the result is identical on every architecture. A trailing
// partial word of 0-7 bytes is folded in byte-by-byte before the final mix
// rounds.
//
// Mix64 has strong avalanche behavior (flipping one input bit flips about
// half the output bits) but is not cryptographically secure.
func Mix64(data []byte, seed uint32) uint64 {
	h := uint64(seed) ^ uint64(len(data))*mixMul

	for len(data) >= 8 {
		k := binary.LittleEndian.Uint64(data)
		data = data[8:]

		k *= mixMul
		k ^= k >> mixShift
		k *= mixMul

		h ^= k
		h *= mixMul
	}

	if len(data) > 0 {
		for i := len(data) - 1; i >= 0; i-- {
			h ^= uint64(data[i]) << (8 * i)
		}
		h *= mixMul
	}

	h ^= h >> mixShift
	h *= mixMul
	h ^= h >> mixShift

	return h
}

// rehash64 derives the next 64-bit block of the per-key stream from the
// previous one. It is Mix64 specialized to an 8-byte little-endian input
// under streamSeed, with the length loop and tail handling folded away.
func rehash64(k uint64) uint64 {
	h := uint64(streamSeed) ^ uint64(8*mixMul&(1<<64-1))

	k *= mixMul
	k ^= k >> mixShift
	k *= mixMul

	h ^= k
	h *= mixMul

	h ^= h >> mixShift
	h *= mixMul
	h ^= h >> mixShift

	return h
}

// Bench measures FurcHash throughput and distribution quality: bucket
// occupancy uniformity (chi-square), the remap fraction when the pool grows
// by one bucket, and the same remap fraction for non-consistent baseline
// mappings (xxhash64 mod m, murmur3 mod m, fastrange) for comparison.
//
// Usage:
//
//	go run ./cmd/bench -keys 1000000 -m 1000 -workers 4
//	go run ./cmd/bench -keyfile keys.txt -m 37
//
// Flags:
//
//	-keys      Number of random keys to generate (default: 1,000,000)
//	-keylen    Length of generated keys in bytes (default: 13)
//	-keyfile   Newline-delimited key corpus to mmap instead of generating
//	-m         Pool size for occupancy and remap measurements (default: 1000)
//	-workers   Parallel workers for the throughput phase (default: GOMAXPROCS)
package main

import (
	"bytes"
	"crypto/rand"
	"flag"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/edsrzf/mmap-go"
	"github.com/spaolacci/murmur3"
	"golang.org/x/sync/errgroup"

	"github.com/tamirms/furc"
	"github.com/tamirms/furc/internal/bits"
)

func loadKeyFile(path string) ([][]byte, func(), error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	cleanup := func() {
		_ = m.Unmap()
		_ = f.Close()
	}

	// Keys are subslices of the mapped region; cleanup must run only
	// after the last key use.
	var keys [][]byte
	for len(m) > 0 {
		nl := bytes.IndexByte(m, '\n')
		if nl < 0 {
			keys = append(keys, m)
			break
		}
		if nl > 0 {
			keys = append(keys, m[:nl])
		}
		m = m[nl+1:]
	}
	return keys, cleanup, nil
}

func generateKeys(n, keyLen int) [][]byte {
	buf := make([]byte, n*keyLen)
	_, _ = rand.Read(buf) // crypto/rand.Read failure is a fatal system issue
	keys := make([][]byte, n)
	for i := range keys {
		keys[i] = buf[i*keyLen : (i+1)*keyLen]
	}
	return keys
}

// measureThroughput hashes every key once across workers goroutines, each
// with its own scratch cache, and returns the elapsed wall time.
func measureThroughput(keys [][]byte, m uint32, workers int) time.Duration {
	var g errgroup.Group
	start := time.Now()
	chunk := (len(keys) + workers - 1) / workers
	for w := 0; w < workers; w++ {
		lo := w * chunk
		hi := min(lo+chunk, len(keys))
		if lo >= hi {
			break
		}
		g.Go(func() error {
			var cache furc.Cache
			var sink uint32
			for _, key := range keys[lo:hi] {
				sink ^= furc.HashWithCache(key, m, &cache)
			}
			runtime.KeepAlive(sink)
			return nil
		})
	}
	_ = g.Wait() // workers never return errors
	return time.Since(start)
}

// chiSquare returns the chi-square statistic of bucket occupancy against a
// uniform distribution over m buckets.
func chiSquare(keys [][]byte, m uint32) float64 {
	counts := make([]int, m)
	var cache furc.Cache
	for _, key := range keys {
		counts[furc.HashWithCache(key, m, &cache)]++
	}
	expected := float64(len(keys)) / float64(m)
	chi2 := 0.0
	for _, c := range counts {
		diff := float64(c) - expected
		chi2 += diff * diff / expected
	}
	return chi2
}

// remapFraction returns the fraction of keys whose bucket changes when the
// pool grows from m to m+1, for furc and for each baseline mapping.
func remapFraction(keys [][]byte, m uint32) (furcFrac, xxhashFrac, murmurFrac, fastrangeFrac float64) {
	var cache furc.Cache
	var furcMoved, xxMoved, mmMoved, frMoved int
	for _, key := range keys {
		if furc.HashWithCache(key, m, &cache) != furc.HashWithCache(key, m+1, &cache) {
			furcMoved++
		}
		xh := xxhash.Sum64(key)
		if uint32(xh%uint64(m)) != uint32(xh%uint64(m+1)) {
			xxMoved++
		}
		mh := murmur3.Sum64(key)
		if uint32(mh%uint64(m)) != uint32(mh%uint64(m+1)) {
			mmMoved++
		}
		if bits.FastRange32(xh, m) != bits.FastRange32(xh, m+1) {
			frMoved++
		}
	}
	n := float64(len(keys))
	return float64(furcMoved) / n, float64(xxMoved) / n, float64(mmMoved) / n, float64(frMoved) / n
}

func main() {
	keysFlag := flag.Int("keys", 1_000_000, "number of random keys to generate")
	keyLenFlag := flag.Int("keylen", 13, "length of generated keys in bytes")
	keyFileFlag := flag.String("keyfile", "", "newline-delimited key corpus to mmap instead of generating")
	mFlag := flag.Uint("m", 1000, "pool size for occupancy and remap measurements")
	workersFlag := flag.Int("workers", runtime.GOMAXPROCS(0), "parallel workers for the throughput phase")
	flag.Parse()

	m := uint32(*mFlag)
	if m == 0 || m > furc.MaxPoolSize() {
		fmt.Printf("pool size must be in [1, %d]\n", furc.MaxPoolSize())
		os.Exit(1)
	}

	var keys [][]byte
	if *keyFileFlag != "" {
		fmt.Printf("Mapping key corpus %s...\n", *keyFileFlag)
		loaded, cleanup, err := loadKeyFile(*keyFileFlag)
		if err != nil {
			fmt.Printf("Failed to load key file: %v\n", err)
			os.Exit(1)
		}
		defer cleanup()
		keys = loaded
	} else {
		fmt.Printf("Generating %d random keys of %d bytes...\n", *keysFlag, *keyLenFlag)
		keys = generateKeys(*keysFlag, *keyLenFlag)
	}
	if len(keys) == 0 {
		fmt.Println("No keys to hash")
		os.Exit(1)
	}

	workers := max(*workersFlag, 1)

	fmt.Printf("Hashing %d keys at m=%d with %d workers...\n", len(keys), m, workers)
	elapsed := measureThroughput(keys, m, workers)

	fmt.Println("Measuring bucket occupancy...")
	chi2 := chiSquare(keys, m)

	fmt.Printf("Measuring remap fraction m=%d -> m=%d...\n", m, m+1)
	furcFrac, xxFrac, mmFrac, frFrac := remapFraction(keys, m)

	nsPerKey := float64(elapsed.Nanoseconds()) / float64(len(keys))
	ideal := 1 / float64(m+1)

	fmt.Printf("\n")
	fmt.Printf("Keys                  %d\n", len(keys))
	fmt.Printf("Pool size (m)         %d\n", m)
	fmt.Printf("Throughput            %.1f ns/key wall (%.2f M keys/sec, %d workers)\n",
		nsPerKey, 1000/nsPerKey, workers)
	fmt.Printf("Chi-square            %.2f (df=%d, uniform expectation ~%d)\n", chi2, m-1, m-1)
	fmt.Printf("Remap m -> m+1        ideal %.5f\n", ideal)
	fmt.Printf("  furc                %.5f\n", furcFrac)
	fmt.Printf("  xxhash64 mod m      %.5f\n", xxFrac)
	fmt.Printf("  murmur3 mod m       %.5f\n", mmFrac)
	fmt.Printf("  fastrange(xxhash)   %.5f\n", frFrac)
	if rss := peakRSS(); rss > 0 {
		fmt.Printf("Peak RSS              %.1f MB\n", float64(rss)/1_000_000)
	}
}

//go:build linux

package main

import "golang.org/x/sys/unix"

// peakRSS returns the peak resident set size in bytes since process start.
// Best-effort: returns 0 on failure.
func peakRSS() uint64 {
	var rusage unix.Rusage
	if err := unix.Getrusage(unix.RUSAGE_SELF, &rusage); err != nil {
		return 0
	}
	// Maxrss is in kilobytes on Linux.
	return uint64(rusage.Maxrss) * 1024
}

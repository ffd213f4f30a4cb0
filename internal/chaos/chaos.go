// Package chaos provides randomized-timing and randomized-payload helpers
// for stress tests that exercise producer/consumer interleaving, backoff
// jitter, and rewind scenarios under non-deterministic scheduling.
package chaos

import (
	"time"

	"github.com/valyala/fastrand"
)

// Source is a lightweight wrapper around fastrand's per-P generator,
// exposing the handful of distributions the test suite needs instead of
// reaching for math/rand's heavier, lock-guarded global source.
type Source struct{}

// New returns a Source. Cheap to construct; callers can make one per test
// or one per goroutine, whichever is convenient.
func New() Source { return Source{} }

// Intn returns a pseudo-random int in [0, n).
func (Source) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(fastrand.Uint32n(uint32(n)))
}

// Jitter returns base plus a pseudo-random duration in [0, spread), for
// staggering producer publish timing or backoff sleeps in a stress test
// without every goroutine waking in lockstep.
func (Source) Jitter(base, spread time.Duration) time.Duration {
	if spread <= 0 {
		return base
	}
	return base + time.Duration(fastrand.Uint32n(uint32(spread)))
}

// Bool reports true with the given probability in [0, 1], for randomized
// decisions like "should this producer goroutine claim one sequence or a
// batch of four this iteration".
func (Source) Bool(probability float32) bool {
	if probability <= 0 {
		return false
	}
	if probability >= 1 {
		return true
	}
	return fastrand.Uint32n(1<<24) < uint32(probability*(1<<24))
}

// Payload fills a freshly allocated byte slice of length n with pseudo-random
// content, for generating varied event bodies in rewind and backpressure
// scenarios rather than reusing one fixed fixture value.
func (Source) Payload(n int) []byte {
	buf := make([]byte, n)
	for i := 0; i < n; i += 4 {
		v := fastrand.Uint32()
		for j := 0; j < 4 && i+j < n; j++ {
			buf[i+j] = byte(v >> (8 * j))
		}
	}
	return buf
}

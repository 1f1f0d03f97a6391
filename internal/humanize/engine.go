// Package humanize generates the randomized delays, choices, and composite
// behavior patterns that make a batch of automated sessions pace themselves
// like independent human users. All draws go through a single injected
// source so tests can pin exact sequences.
package humanize

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
	"time"
)

// EmptyInputError is returned when a draw is requested from an empty set.
type EmptyInputError struct {
	Op string
}

func (e *EmptyInputError) Error() string {
	return "humanize: " + e.Op + " on empty input"
}

// Engine produces randomized timing and selection decisions. It holds no
// state beyond its random source and performs no I/O.
type Engine struct {
	rng *rand.Rand
}

// New creates an Engine backed by the given source.
func New(src rand.Source) *Engine {
	return &Engine{rng: rand.New(src)}
}

// NewSeeded creates an Engine with a deterministic PCG source. Used for
// reproducible runs (--seed) and in tests.
func NewSeeded(seed uint64) *Engine {
	return New(rand.NewPCG(seed, seed))
}

// NewDefault creates an Engine seeded from the OS entropy pool. Production
// wiring uses this unless a seed is pinned.
func NewDefault() *Engine {
	var b [16]byte
	if _, err := crand.Read(b[:]); err != nil {
		// Entropy exhaustion is not a recoverable condition here.
		panic("humanize: cannot seed random source: " + err.Error())
	}
	return New(rand.NewPCG(
		binary.LittleEndian.Uint64(b[:8]),
		binary.LittleEndian.Uint64(b[8:]),
	))
}

// Delay returns a uniform duration in [min, max] milliseconds, inclusive.
// min == max always yields exactly that value.
func (e *Engine) Delay(min, max int) time.Duration {
	return time.Duration(e.Int(min, max)) * time.Millisecond
}

// Int returns a uniform integer in [min, max], inclusive.
func (e *Engine) Int(min, max int) int {
	if min >= max {
		return min
	}
	return min + e.rng.IntN(max-min+1)
}

// Float returns a uniform float in [min, max).
func (e *Engine) Float(min, max float64) float64 {
	return min + e.rng.Float64()*(max-min)
}

// ShouldPerform reports a Bernoulli draw with the given probability.
func (e *Engine) ShouldPerform(probability float64) bool {
	return e.rng.Float64() < probability
}

// WatchTime returns the portion of d a viewer would plausibly watch:
// d scaled by a factor in [minPct, maxPct), floored to whole milliseconds.
func (e *Engine) WatchTime(d time.Duration, minPct, maxPct float64) time.Duration {
	pct := e.Float(minPct, maxPct)
	ms := int64(float64(d.Milliseconds()) * pct)
	return time.Duration(ms) * time.Millisecond
}

// DefaultWatchTime applies the standard 30-90% viewing window.
func (e *Engine) DefaultWatchTime(d time.Duration) time.Duration {
	return e.WatchTime(d, 0.3, 0.9)
}

// Choice returns a uniformly chosen element of items.
func Choice[T any](e *Engine, items []T) (T, error) {
	var zero T
	if len(items) == 0 {
		return zero, &EmptyInputError{Op: "choice"}
	}
	return items[e.rng.IntN(len(items))], nil
}

// Shuffle returns a new slice holding a uniform permutation of items.
// The input slice is never reordered.
func Shuffle[T any](e *Engine, items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	// Fisher-Yates
	for i := len(out) - 1; i > 0; i-- {
		j := e.rng.IntN(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

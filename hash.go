package pixicon

import (
	"math/rand"
	"strconv"
	"time"
	"unicode/utf16"
)

// Parameters of the linear congruential recurrence driving the seeded sequence.
const (
	lcgMultiplier = 9301
	lcgIncrement  = 49297
	lcgModulus    = 233280
)

// Sequence returns the next value of a pseudo-random stream in the [0, 1) range.
type Sequence func() float64

// Hash maps a string to a deterministic non-negative integer.
// The accumulator is multiplied by 31 for every UTF-16 code unit of the string
// and wraps around on signed 32 bit overflow, as string hashes usually do.
func Hash(s string) int64 {
	var acc int32
	for _, c := range utf16.Encode([]rune(s)) {
		acc = acc*31 + int32(c)
	}
	h := int64(acc)
	if h < 0 {
		h = -h
	}
	return h
}

// NewSequence returns a reproducible stream seeded with the provided integer.
// The seed is reduced modulo the recurrence modulus, negative seeds included.
func NewSequence(seed int64) Sequence {
	state := seed % lcgModulus
	if state < 0 {
		state += lcgModulus
	}
	return func() float64 {
		state = (state*lcgMultiplier + lcgIncrement) % lcgModulus
		return float64(state) / lcgModulus
	}
}

// NewRandomSequence returns a non reproducible stream, used when no seed is pinned.
func NewRandomSequence() Sequence {
	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
	return rnd.Float64
}

// SequenceFor returns the stream used for the seed. An empty seed means no seed
// at all, in which case the stream is not reproducible.
// Processors seed their unseeded runs from a session seed instead.
func SequenceFor(seed string) Sequence {
	if seed == "" {
		return NewRandomSequence()
	}
	return NewSequence(Hash(seed))
}

// NewSessionSeed draws a timestamp-like value standing in for an absent seed.
func NewSessionSeed() string {
	return strconv.FormatInt(time.Now().UnixNano(), 36)
}

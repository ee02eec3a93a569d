// Package random provides seed helpers for the deterministic generators.
//
// A fixed seed reproduces a run byte for byte. A zero seed asks for a fresh
// high-entropy seed from crypto/rand, which callers log so the run can be
// replayed later.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
)

// DefaultSeed is the seed used when none is configured.
const DefaultSeed int64 = 42

// NewSeed generates a random non-zero seed using crypto/rand.
func NewSeed() (int64, error) {
	for {
		var b [8]byte
		if _, err := crand.Read(b[:]); err != nil {
			return 0, fmt.Errorf("read random seed: %w", err)
		}
		if seed := int64(binary.LittleEndian.Uint64(b[:])); seed != 0 {
			return seed, nil
		}
	}
}

// ResolveSeed returns seed unchanged unless it is zero, in which case a fresh
// seed is drawn.
func ResolveSeed(seed int64) (int64, error) {
	if seed != 0 {
		return seed, nil
	}
	return NewSeed()
}

// NewRNG returns a generator seeded with the resolved seed together with the
// seed actually used.
func NewRNG(seed int64) (*rand.Rand, int64, error) {
	resolved, err := ResolveSeed(seed)
	if err != nil {
		return nil, 0, err
	}
	return rand.New(rand.NewSource(resolved)), resolved, nil
}

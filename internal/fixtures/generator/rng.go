package generator

import (
	"math"
	"math/rand"
	"time"
)

// weighted pairs a categorical value with its selection probability.
type weighted[T any] struct {
	value  T
	weight float64
}

// pick returns a uniformly chosen element of pool.
func pick[T any](rng *rand.Rand, pool []T) T {
	return pool[rng.Intn(len(pool))]
}

// pickWeighted returns a value with probability proportional to its weight.
func pickWeighted[T any](rng *rand.Rand, choices []weighted[T]) T {
	var total float64
	for _, c := range choices {
		total += c.weight
	}
	r := rng.Float64() * total
	for _, c := range choices {
		if r < c.weight {
			return c.value
		}
		r -= c.weight
	}
	// Float drift can leave r just above zero after the last choice.
	return choices[len(choices)-1].value
}

// randomRange returns a random number in [min, max].
func randomRange(rng *rand.Rand, min, max int) int {
	if min >= max {
		return min
	}
	return min + rng.Intn(max-min+1)
}

// uniform returns a value in [min, max) rounded to the given decimals.
func uniform(rng *rand.Rand, min, max float64, decimals int) float64 {
	return round(min+rng.Float64()*(max-min), decimals)
}

func round(v float64, decimals int) float64 {
	scale := math.Pow(10, float64(decimals))
	return math.Round(v*scale) / scale
}

// dayOffset returns StartDate shifted by a random whole number of days in
// [minDay, maxDay].
func dayOffset(rng *rand.Rand, minDay, maxDay int) time.Time {
	return StartDate.AddDate(0, 0, randomRange(rng, minDay, maxDay))
}

// sampleWithoutReplacement returns k distinct indexes below n in random order.
func sampleWithoutReplacement(rng *rand.Rand, n, k int) []int {
	if k > n {
		k = n
	}
	return rng.Perm(n)[:k]
}

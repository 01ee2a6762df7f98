package game

import "math/rand"

// randomWalkValue nudges a market value by up to ±5% and appends it to the
// bounded history. One utility shared by every venture contract rather than
// a copy per archetype.
func randomWalkValue(value int64, history []int64, rng *rand.Rand) (int64, []int64) {
	if value < 1 {
		value = 1
	}
	drift := (rng.Float64() - 0.5) * 0.10
	next := value + int64(float64(value)*drift)
	if next < 1 {
		next = 1
	}
	return next, appendBounded(history, next, PriceHistoryDepth)
}

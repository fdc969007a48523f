// Package pricing provides the reference-price process that drives the
// simulation. The process owns its own seeded generator so independent
// replicas stay statistically independent and runs are replayable.
package pricing

import "math/rand"

// Walk is a gaussian random walk: each step adds a draw from N(drift, vol)
// to the current price.
type Walk struct {
	price float64
	drift float64
	vol   float64
	rng   *rand.Rand
}

func NewWalk(base, drift, vol float64, rng *rand.Rand) *Walk {
	return &Walk{price: base, drift: drift, vol: vol, rng: rng}
}

// Next advances the walk one step and returns the new price.
func (w *Walk) Next() float64 {
	w.price += w.drift + w.vol*w.rng.NormFloat64()
	return w.price
}

// Price returns the current price without advancing.
func (w *Walk) Price() float64 {
	return w.price
}

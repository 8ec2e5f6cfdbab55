package relay

import (
	"math/rand/v2"
	"time"
)

// jitter spreads value randomly within [1-minPercent, 1+maxPercent] of itself.
// For minPercent=0.15, maxPercent=0.15 the result is in [0.85*value, 1.15*value].
//
// Negative percents fall back to 0.15.
func jitter(value, minPercent, maxPercent float64) float64 {
	if minPercent < 0 || maxPercent < 0 {
		minPercent = 0.15
		maxPercent = 0.15
	}
	factor := 1 - minPercent + rand.Float64()*(minPercent+maxPercent) // nolint:gosec
	return value * factor
}

// backoff returns the pause after the given number of consecutive idle or failed iterations.
func backoff(base, limit time.Duration, streak int) time.Duration {
	d := base
	for i := 1; i < streak && d < limit; i++ {
		d *= 2
	}
	d = min(d, limit)
	return time.Duration(jitter(float64(d), 0.15, 0.15))
}

// Package weight converts historical success rates into generation-priority
// weights.
package weight

import "math"

// confidenceSamples is the sample size at which a category's statistics are
// trusted fully.
const confidenceSamples = 5.0

// neutral is the weight assigned to a category with no observations.
const neutral = 0.5

// Confidence returns how much a category's success rate should be trusted,
// scaling linearly from 0 at zero samples to 1.0 at five or more.
func Confidence(sampleSize int) float64 {
	c := float64(sampleSize) / confidenceSamples
	if c > 1.0 {
		c = 1.0
	}
	return c
}

// Compute returns the generation-priority weight for a category.
//
// The base weight rewards high success rates exponentially
// (1.0 -> ~1.65, 0.5 -> ~0.78, 0.0 -> ~0.37), so strong performers are
// favored disproportionately. Low sample sizes pull the weight toward the
// neutral 0.5 baseline so sparse data does not cause overreaction; at zero
// samples the weight is exactly 0.5 regardless of success rate.
func Compute(successRate float64, sampleSize int) float64 {
	base := math.Exp(successRate*1.5) / math.E
	conf := Confidence(sampleSize)
	return base*conf + (1.0-conf)*neutral
}

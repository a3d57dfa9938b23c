package usecase

import (
	"math"
)

// computeRating derives a title's rating from its review scores: nil when
// there are no reviews (absent, not zero), otherwise the arithmetic mean
// rounded to 2 decimal places. Callers invoke it on every read so the value
// always reflects the latest reviews.
func computeRating(scores []int) *float64 {
	if len(scores) == 0 {
		return nil
	}

	sum := 0
	for _, score := range scores {
		sum += score
	}

	mean := float64(sum) / float64(len(scores))
	rounded := math.Round(mean*100) / 100
	return &rounded
}

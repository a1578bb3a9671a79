package sm2

import (
	"fmt"
	"math"
	"time"

	"github.com/abhisek/memoriz/internal/card"
)

// Apply runs one SM-2 transition on a card and returns the updated copy.
// The input card is never modified. Time is injected by the caller so the
// function stays deterministic.
//
// again resets the repetition streak and schedules a one-day retry. hard
// grows the interval slightly while lowering ease. good grows the interval
// by the ease factor. easy raises ease first, grows the interval from the
// raised value, and retires the card from further rounds.
func Apply(c card.Card, r card.Rating, now time.Time) (card.Card, error) {
	switch r {
	case card.RatingAgain:
		c.Repetitions = 0
		c.Interval = 1
		c.EaseFactor = math.Max(card.MinEase, c.EaseFactor-AgainEasePenalty)
	case card.RatingHard:
		c.Interval = scaleInterval(c.Interval, HardIntervalFactor)
		c.EaseFactor = math.Max(card.MinEase, c.EaseFactor-HardEasePenalty)
	case card.RatingGood:
		c.Repetitions++
		c.Interval = scaleInterval(c.Interval, c.EaseFactor)
	case card.RatingEasy:
		c.Repetitions++
		c.EaseFactor += EasyEaseBonus
		c.Interval = scaleInterval(c.Interval, c.EaseFactor*EasyIntervalFactor)
		c.Retired = true
	default:
		return c, fmt.Errorf("%w: %q", card.ErrInvalidRating, r)
	}

	c.Due = now.Add(time.Duration(c.Interval) * 24 * time.Hour)
	c.LastReviewedAt = now
	return c, nil
}

// Preview returns the card each rating would produce, without committing
// any of them. Used for "what would happen" display.
func Preview(c card.Card, now time.Time) map[card.Rating]card.Card {
	out := make(map[card.Rating]card.Card, 4)
	for _, r := range card.Ratings() {
		next, _ := Apply(c, r, now)
		out[r] = next
	}
	return out
}

// scaleInterval multiplies the interval by factor, rounding half-up on the
// real-valued product, with a floor of one day.
func scaleInterval(days int, factor float64) int {
	scaled := int(math.Round(float64(days) * factor))
	if scaled < 1 {
		return 1
	}
	return scaled
}

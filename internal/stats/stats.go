package stats

import (
	"math"
	"time"

	"github.com/abhisek/memoriz/internal/card"
	"github.com/abhisek/memoriz/internal/deck"
)

// Summary holds the derived metrics for one deck.
type Summary struct {
	TotalCards      int
	LearnedCards    int
	DueCards        int
	TotalRatings    int
	AccuracyPercent int
}

// Compute derives a summary from the deck's cards and rating tally. It is
// stateless and recomputed on every call rather than cached, so it can
// never drift from the deck it describes. Due counting is independent of
// round state; a card can be due while mid-round.
func Compute(d *deck.Deck, now time.Time) Summary {
	s := Summary{
		TotalCards:   len(d.Cards),
		TotalRatings: len(d.History),
	}
	for _, c := range d.Cards {
		if c.Retired {
			s.LearnedCards++
		}
		if c.IsDue(now) {
			s.DueCards++
		}
	}
	if s.TotalRatings > 0 {
		successes := d.Tally[card.RatingGood] + d.Tally[card.RatingEasy]
		s.AccuracyPercent = int(math.Round(100 * float64(successes) / float64(s.TotalRatings)))
	}
	return s
}

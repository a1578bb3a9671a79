package card

import (
	"errors"
	"fmt"
)

// Rating is the learner's recall-quality signal for one review.
type Rating string

const (
	RatingAgain Rating = "again"
	RatingHard  Rating = "hard"
	RatingGood  Rating = "good"
	RatingEasy  Rating = "easy"
)

// ErrInvalidRating is returned when a rating token is not one of
// again, hard, good, easy.
var ErrInvalidRating = errors.New("card: invalid rating")

// Ratings returns the four ratings in fixed display order.
func Ratings() []Rating {
	return []Rating{RatingAgain, RatingHard, RatingGood, RatingEasy}
}

// Valid reports whether r is one of the four recognized ratings.
func (r Rating) Valid() bool {
	switch r {
	case RatingAgain, RatingHard, RatingGood, RatingEasy:
		return true
	}
	return false
}

// Successful reports whether r counts as a successful recall
// for accuracy purposes.
func (r Rating) Successful() bool {
	return r == RatingGood || r == RatingEasy
}

// ParseRating converts a user-supplied token into a Rating.
func ParseRating(s string) (Rating, error) {
	r := Rating(s)
	if !r.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidRating, s)
	}
	return r, nil
}

package card

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Ease factor bounds. Every card starts at InitialEase and no rating
// sequence can push it below MinEase.
const (
	InitialEase = 2.5
	MinEase     = 1.3
)

var (
	// ErrEmptyPrompt is returned when a card is created without prompt text.
	ErrEmptyPrompt = errors.New("card: empty prompt")
	// ErrEmptyResponse is returned when a card is created without response text.
	ErrEmptyResponse = errors.New("card: empty response")
)

// Card is a single prompt/response unit together with its scheduling state.
type Card struct {
	ID          string
	Prompt      string
	Response    string
	Repetitions int
	EaseFactor  float64

	// Interval is the days until the next exposure, 0 before the first review.
	Interval int

	Due     time.Time
	Retired bool

	CreatedAt      time.Time
	LastReviewedAt time.Time // zero until the first review
}

// New creates a card that is due immediately. Prompt and response must
// both be non-empty.
func New(prompt, response string, now time.Time) (Card, error) {
	if prompt == "" {
		return Card{}, ErrEmptyPrompt
	}
	if response == "" {
		return Card{}, ErrEmptyResponse
	}
	return Card{
		ID:         uuid.NewString(),
		Prompt:     prompt,
		Response:   response,
		EaseFactor: InitialEase,
		Due:        now,
		CreatedAt:  now,
	}, nil
}

// IsDue reports whether the card is at or past its due time.
func (c Card) IsDue(now time.Time) bool {
	return !now.Before(c.Due)
}

// Reviewed reports whether the card has been rated at least once.
func (c Card) Reviewed() bool {
	return !c.LastReviewedAt.IsZero()
}

// Validate checks the ledger invariants that hold for a card on its own,
// independent of any deck. Used on import and in deck validation.
func (c Card) Validate() error {
	if c.ID == "" {
		return errors.New("card: missing id")
	}
	if c.Prompt == "" {
		return ErrEmptyPrompt
	}
	if c.Response == "" {
		return ErrEmptyResponse
	}
	if c.CreatedAt.IsZero() {
		return errors.New("card: missing creation time")
	}
	if c.Repetitions < 0 {
		return fmt.Errorf("card: negative repetitions %d", c.Repetitions)
	}
	if c.EaseFactor < MinEase {
		return fmt.Errorf("card: ease factor %.4f below floor %v", c.EaseFactor, MinEase)
	}
	if !c.Reviewed() {
		if c.Repetitions != 0 || c.Interval != 0 || c.Retired {
			return errors.New("card: review fields set without a review")
		}
		if !c.Due.Equal(c.CreatedAt) {
			return errors.New("card: unreviewed card not due at creation time")
		}
		return nil
	}
	if c.Interval < 1 {
		return fmt.Errorf("card: reviewed with interval %d", c.Interval)
	}
	want := c.LastReviewedAt.Add(time.Duration(c.Interval) * 24 * time.Hour)
	if !c.Due.Equal(want) {
		return fmt.Errorf("card: due time does not match last review plus %d days", c.Interval)
	}
	return nil
}

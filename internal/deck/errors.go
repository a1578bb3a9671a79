package deck

import "errors"

var (
	// ErrEmptyName is returned when a deck is created without a name.
	ErrEmptyName = errors.New("deck: empty name")

	// ErrNoCards is returned when a deck is created with no cards. The
	// reviewing state needs a card under the cursor, so an empty deck
	// cannot exist.
	ErrNoCards = errors.New("deck: no cards")

	// ErrNoActiveCard is returned when a rating is submitted, or the
	// current card requested, while the round or deck is complete.
	ErrNoActiveCard = errors.New("deck: no active card")

	// ErrInvalidTransition is returned when a round advance is requested
	// outside round_complete, or any operation hits an unrecognized state.
	ErrInvalidTransition = errors.New("deck: invalid transition")

	// ErrInconsistent is returned by Validate when stored deck state
	// violates a structural invariant.
	ErrInconsistent = errors.New("deck: inconsistent state")
)

package deck

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/memoriz/internal/card"
	"github.com/abhisek/memoriz/internal/sm2"
)

// Seed is the raw material for one card, as produced by a card source.
type Seed struct {
	Prompt   string
	Response string
}

// Deck is an ordered card collection plus the traversal state for
// drilling it in rounds. Not safe for concurrent use; callers that share
// a deck across goroutines must serialize access.
type Deck struct {
	ID        string
	Name      string
	CreatedAt time.Time

	// Cards in insertion order. Positions in RoundOrder index this slice.
	Cards []card.Card

	// RoundOrder holds the positions active in the current round.
	RoundOrder []int

	// Cursor indexes RoundOrder while reviewing.
	Cursor int

	// Round counts passes, starting at 1.
	Round int

	State State

	// Tally counts ratings by token. All four keys are always present.
	Tally map[card.Rating]int

	// History is the append-only chronological rating sequence.
	History []card.Rating
}

// Review is the outcome of one rating submission, for display and
// event logging.
type Review struct {
	Card   card.Card
	Rating card.Rating
	Round  int
	State  State
}

// New creates a deck from seeds, one card per seed, all cards due
// immediately. The seed set must be non-empty and every seed must have
// both prompt and response text.
func New(name string, seeds []Seed, now time.Time) (*Deck, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if len(seeds) == 0 {
		return nil, ErrNoCards
	}
	cards := make([]card.Card, 0, len(seeds))
	for i, s := range seeds {
		c, err := card.New(s.Prompt, s.Response, now)
		if err != nil {
			return nil, fmt.Errorf("deck: seed %d: %w", i, err)
		}
		cards = append(cards, c)
	}
	return &Deck{
		ID:         uuid.NewString(),
		Name:       name,
		CreatedAt:  now,
		Cards:      cards,
		RoundOrder: allPositions(len(cards)),
		Round:      1,
		State:      StateReviewing,
		Tally:      emptyTally(),
	}, nil
}

// CurrentCard returns a copy of the card under the cursor.
func (d *Deck) CurrentCard() (card.Card, error) {
	if err := d.requireReviewing(); err != nil {
		return card.Card{}, err
	}
	return d.Cards[d.RoundOrder[d.Cursor]], nil
}

// SubmitRating applies one rating to the current card, records it in the
// tally and history, and advances the cursor. When the cursor leaves the
// round, the deck moves to round_complete, or deck_complete if every
// card is retired. A rejected submission leaves the deck untouched.
func (d *Deck) SubmitRating(r card.Rating, now time.Time) (*Review, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("%w: %q", card.ErrInvalidRating, r)
	}
	if err := d.requireReviewing(); err != nil {
		return nil, err
	}

	pos := d.RoundOrder[d.Cursor]
	updated, err := sm2.Apply(d.Cards[pos], r, now)
	if err != nil {
		return nil, err
	}

	d.Cards[pos] = updated
	d.History = append(d.History, r)
	d.Tally[r]++
	d.Cursor++
	if d.Cursor >= len(d.RoundOrder) {
		if d.ActiveCount() == 0 {
			d.State = StateDeckComplete
		} else {
			d.State = StateRoundComplete
		}
	}

	return &Review{Card: updated, Rating: r, Round: d.Round, State: d.State}, nil
}

// AdvanceRound starts the next round over the cards still in play. When
// every card is retired the full deck recycles, so a finished deck stays
// drillable instead of going inert. Valid only from round_complete.
func (d *Deck) AdvanceRound() error {
	if d.State != StateRoundComplete {
		return fmt.Errorf("%w: cannot advance from %q", ErrInvalidTransition, d.State)
	}
	order := d.activePositions()
	if len(order) == 0 {
		order = allPositions(len(d.Cards))
	}
	d.Round++
	d.RoundOrder = order
	d.Cursor = 0
	d.State = StateReviewing
	return nil
}

// Restart wipes the traversal state and every card's retired flag,
// returning the deck to round 1 over the full card set. Valid from any
// state and cannot fail. Scheduling state (ease, interval, due) is kept.
func (d *Deck) Restart() {
	for i := range d.Cards {
		d.Cards[i].Retired = false
	}
	d.RoundOrder = allPositions(len(d.Cards))
	d.Cursor = 0
	d.Round = 1
	d.State = StateReviewing
	d.Tally = emptyTally()
	d.History = nil
}

// ActiveCount returns the number of non-retired cards in the whole deck.
func (d *Deck) ActiveCount() int {
	n := 0
	for _, c := range d.Cards {
		if !c.Retired {
			n++
		}
	}
	return n
}

// RemainingInRound returns how many cards are still unrated in the
// current round, 0 when the deck is not reviewing.
func (d *Deck) RemainingInRound() int {
	if d.State != StateReviewing {
		return 0
	}
	return len(d.RoundOrder) - d.Cursor
}

func (d *Deck) requireReviewing() error {
	switch d.State {
	case StateReviewing:
		return nil
	case StateRoundComplete, StateDeckComplete:
		return fmt.Errorf("%w: deck is %s", ErrNoActiveCard, d.State)
	default:
		return fmt.Errorf("%w: unrecognized state %q", ErrInvalidTransition, d.State)
	}
}

func (d *Deck) activePositions() []int {
	order := make([]int, 0, len(d.Cards))
	for i, c := range d.Cards {
		if !c.Retired {
			order = append(order, i)
		}
	}
	return order
}

func allPositions(n int) []int {
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	return order
}

func emptyTally() map[card.Rating]int {
	t := make(map[card.Rating]int, 4)
	for _, r := range card.Ratings() {
		t[r] = 0
	}
	return t
}

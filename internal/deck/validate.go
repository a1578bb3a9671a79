package deck

import (
	"fmt"

	"github.com/abhisek/memoriz/internal/card"
)

// Validate re-checks every structural invariant the engine maintains:
// cursor bounds per state, round order positions, card consistency, and
// tally/history agreement. Imported decks pass through here before they
// are accepted; a failure means the document was corrupted or
// hand-edited, and nothing is repaired.
func (d *Deck) Validate() error {
	if d.ID == "" {
		return fmt.Errorf("%w: missing id", ErrInconsistent)
	}
	if d.Name == "" {
		return fmt.Errorf("%w: missing name", ErrInconsistent)
	}
	if d.CreatedAt.IsZero() {
		return fmt.Errorf("%w: missing creation time", ErrInconsistent)
	}
	if len(d.Cards) == 0 {
		return fmt.Errorf("%w: no cards", ErrInconsistent)
	}

	seen := make(map[string]bool, len(d.Cards))
	for i, c := range d.Cards {
		if err := c.Validate(); err != nil {
			return fmt.Errorf("%w: card %d: %v", ErrInconsistent, i, err)
		}
		if seen[c.ID] {
			return fmt.Errorf("%w: duplicate card id %s", ErrInconsistent, c.ID)
		}
		seen[c.ID] = true
	}

	if !d.State.Valid() {
		return fmt.Errorf("%w: unrecognized state %q", ErrInconsistent, d.State)
	}
	if d.Round < 1 {
		return fmt.Errorf("%w: round %d", ErrInconsistent, d.Round)
	}

	if len(d.RoundOrder) == 0 {
		return fmt.Errorf("%w: empty round order", ErrInconsistent)
	}
	inOrder := make(map[int]bool, len(d.RoundOrder))
	for _, pos := range d.RoundOrder {
		if pos < 0 || pos >= len(d.Cards) {
			return fmt.Errorf("%w: round order position %d out of range", ErrInconsistent, pos)
		}
		if inOrder[pos] {
			return fmt.Errorf("%w: duplicate round order position %d", ErrInconsistent, pos)
		}
		inOrder[pos] = true
	}

	switch d.State {
	case StateReviewing:
		if d.Cursor < 0 || d.Cursor >= len(d.RoundOrder) {
			return fmt.Errorf("%w: cursor %d out of range for a round of %d", ErrInconsistent, d.Cursor, len(d.RoundOrder))
		}
	default:
		if d.Cursor != len(d.RoundOrder) {
			return fmt.Errorf("%w: cursor %d on a completed round of %d", ErrInconsistent, d.Cursor, len(d.RoundOrder))
		}
	}
	if d.State == StateDeckComplete && d.ActiveCount() != 0 {
		return fmt.Errorf("%w: deck complete with %d cards still in play", ErrInconsistent, d.ActiveCount())
	}
	if d.State == StateRoundComplete && d.ActiveCount() == 0 {
		return fmt.Errorf("%w: round complete with every card retired", ErrInconsistent)
	}

	if len(d.Tally) != len(card.Ratings()) {
		return fmt.Errorf("%w: tally has %d keys", ErrInconsistent, len(d.Tally))
	}
	total := 0
	for _, r := range card.Ratings() {
		n, ok := d.Tally[r]
		if !ok {
			return fmt.Errorf("%w: tally missing %q", ErrInconsistent, r)
		}
		if n < 0 {
			return fmt.Errorf("%w: negative tally for %q", ErrInconsistent, r)
		}
		total += n
	}
	if len(d.History) != total {
		return fmt.Errorf("%w: history length %d, tally total %d", ErrInconsistent, len(d.History), total)
	}
	counts := make(map[card.Rating]int, 4)
	for i, r := range d.History {
		if !r.Valid() {
			return fmt.Errorf("%w: history entry %d is %q", ErrInconsistent, i, r)
		}
		counts[r]++
	}
	for _, r := range card.Ratings() {
		if counts[r] != d.Tally[r] {
			return fmt.Errorf("%w: history has %d %q ratings, tally says %d", ErrInconsistent, counts[r], r, d.Tally[r])
		}
	}

	return nil
}

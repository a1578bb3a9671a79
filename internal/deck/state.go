package deck

// State is a deck's position in the round traversal lifecycle.
type State string

const (
	// StateReviewing means the cursor points at a card awaiting a rating.
	StateReviewing State = "reviewing"
	// StateRoundComplete means every card in the round was rated and at
	// least one card remains in play.
	StateRoundComplete State = "round_complete"
	// StateDeckComplete means every card in the deck is retired.
	StateDeckComplete State = "deck_complete"
)

// Valid reports whether s is one of the three recognized states.
func (s State) Valid() bool {
	switch s {
	case StateReviewing, StateRoundComplete, StateDeckComplete:
		return true
	}
	return false
}

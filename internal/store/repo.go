package store

import (
	"context"
	"errors"
	"time"

	"github.com/abhisek/memoriz/internal/card"
	"github.com/abhisek/memoriz/internal/deck"
)

// ErrDeckNotFound is returned when a deck id matches no stored deck.
var ErrDeckNotFound = errors.New("store: deck not found")

// DeckInfo is the listing row for a stored deck. The scalar columns are
// denormalized from the document on save so listing never decodes docs.
type DeckInfo struct {
	ID        string
	Name      string
	CardCount int
	Round     int
	State     deck.State
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ReviewEvent is one appended review record: which card was rated, the
// verdict, and the scheduler's resulting interval and ease.
type ReviewEvent struct {
	ID           int64
	DeckID       string
	CardID       string
	Rating       card.Rating
	IntervalDays int
	Ease         float64
	Round        int
	Timestamp    time.Time
}

// DeckRepo persists decks as validated deck documents.
type DeckRepo interface {
	// Save upserts the deck. The deck is validated before anything is
	// written; a deck that fails validation never reaches the database.
	Save(ctx context.Context, d *deck.Deck, now time.Time) error

	// Load reads and re-validates the deck document with the given id.
	Load(ctx context.Context, id string) (*deck.Deck, error)

	// List returns all stored decks, ordered by name.
	List(ctx context.Context) ([]DeckInfo, error)

	// Delete removes the deck and returns ErrDeckNotFound if absent.
	Delete(ctx context.Context, id string) error
}

// EventRepo manages the append-only review log.
type EventRepo interface {
	// AppendReview records one review outcome.
	AppendReview(ctx context.Context, ev ReviewEvent) error

	// RecentByDeck returns the newest events for a deck, most recent
	// first. A limit of 0 means no limit.
	RecentByDeck(ctx context.Context, deckID string, limit int) ([]ReviewEvent, error)
}

package deckio

import (
	"fmt"
	"time"

	"github.com/abhisek/memoriz/internal/card"
	"github.com/abhisek/memoriz/internal/deck"
)

// FormatVersion is the deck document version this package reads and writes.
const FormatVersion = 1

// Document is the serialized form of a deck. Timestamps are epoch
// milliseconds; the ease factor is the only non-integer number.
type Document struct {
	Version       int            `json:"version"`
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	CreatedAt     int64          `json:"created_at"`
	Round         int            `json:"round"`
	Cursor        int            `json:"cursor"`
	RoundComplete bool           `json:"round_complete"`
	DeckComplete  bool           `json:"deck_complete"`
	RoundOrder    []int          `json:"round_order"`
	RatingTally   map[string]int `json:"rating_tally"`
	RatingHistory []string       `json:"rating_history"`
	Cards         []CardRecord   `json:"cards"`
}

// CardRecord is the serialized form of one card. A zero or absent
// last_reviewed_at means the card was never reviewed.
type CardRecord struct {
	ID             string  `json:"id"`
	Prompt         string  `json:"prompt"`
	Response       string  `json:"response"`
	Repetitions    int     `json:"repetitions"`
	EaseFactor     float64 `json:"ease_factor"`
	Interval       int     `json:"interval"`
	DueAt          int64   `json:"due_at"`
	Retired        bool    `json:"retired"`
	CreatedAt      int64   `json:"created_at"`
	LastReviewedAt int64   `json:"last_reviewed_at,omitempty"`
}

// Encode converts a deck into its document form.
func Encode(d *deck.Deck) *Document {
	doc := &Document{
		Version:       FormatVersion,
		ID:            d.ID,
		Name:          d.Name,
		CreatedAt:     d.CreatedAt.UnixMilli(),
		Round:         d.Round,
		Cursor:        d.Cursor,
		RoundComplete: d.State == deck.StateRoundComplete,
		DeckComplete:  d.State == deck.StateDeckComplete,
		RoundOrder:    append([]int(nil), d.RoundOrder...),
		RatingTally:   make(map[string]int, len(d.Tally)),
		RatingHistory: make([]string, len(d.History)),
		Cards:         make([]CardRecord, len(d.Cards)),
	}
	for r, n := range d.Tally {
		doc.RatingTally[string(r)] = n
	}
	for i, r := range d.History {
		doc.RatingHistory[i] = string(r)
	}
	for i, c := range d.Cards {
		doc.Cards[i] = encodeCard(c)
	}
	return doc
}

func encodeCard(c card.Card) CardRecord {
	rec := CardRecord{
		ID:          c.ID,
		Prompt:      c.Prompt,
		Response:    c.Response,
		Repetitions: c.Repetitions,
		EaseFactor:  c.EaseFactor,
		Interval:    c.Interval,
		DueAt:       c.Due.UnixMilli(),
		Retired:     c.Retired,
		CreatedAt:   c.CreatedAt.UnixMilli(),
	}
	if c.Reviewed() {
		rec.LastReviewedAt = c.LastReviewedAt.UnixMilli()
	}
	return rec
}

// Decode converts the document back into a deck and re-validates every
// invariant the engine maintains. A document that fails any check is
// rejected whole; nothing is repaired.
func (doc *Document) Decode() (*deck.Deck, error) {
	if doc.Version != FormatVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrInvalidDocument, doc.Version)
	}

	state := deck.StateReviewing
	switch {
	case doc.RoundComplete && doc.DeckComplete:
		return nil, fmt.Errorf("%w: both completion flags set", ErrInvalidDocument)
	case doc.RoundComplete:
		state = deck.StateRoundComplete
	case doc.DeckComplete:
		state = deck.StateDeckComplete
	}

	d := &deck.Deck{
		ID:         doc.ID,
		Name:       doc.Name,
		CreatedAt:  millisToTime(doc.CreatedAt),
		RoundOrder: append([]int(nil), doc.RoundOrder...),
		Cursor:     doc.Cursor,
		Round:      doc.Round,
		State:      state,
		Tally:      make(map[card.Rating]int, len(doc.RatingTally)),
		History:    make([]card.Rating, len(doc.RatingHistory)),
		Cards:      make([]card.Card, len(doc.Cards)),
	}
	for token, n := range doc.RatingTally {
		d.Tally[card.Rating(token)] = n
	}
	for i, token := range doc.RatingHistory {
		d.History[i] = card.Rating(token)
	}
	for i, rec := range doc.Cards {
		d.Cards[i] = decodeCard(rec)
	}

	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return d, nil
}

func decodeCard(rec CardRecord) card.Card {
	c := card.Card{
		ID:          rec.ID,
		Prompt:      rec.Prompt,
		Response:    rec.Response,
		Repetitions: rec.Repetitions,
		EaseFactor:  rec.EaseFactor,
		Interval:    rec.Interval,
		Due:         millisToTime(rec.DueAt),
		Retired:     rec.Retired,
		CreatedAt:   millisToTime(rec.CreatedAt),
	}
	if rec.LastReviewedAt != 0 {
		c.LastReviewedAt = millisToTime(rec.LastReviewedAt)
	}
	return c
}

func millisToTime(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

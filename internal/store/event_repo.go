package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/abhisek/memoriz/internal/card"
)

// eventRepo implements EventRepo over the review_events table. The log
// is append-only: events are never updated or reordered, so the
// auto-increment id doubles as the chronological order within a deck.
type eventRepo struct {
	db *sqlx.DB
}

type reviewEventRow struct {
	ID           int64   `db:"id"`
	DeckID       string  `db:"deck_id"`
	CardID       string  `db:"card_id"`
	Rating       string  `db:"rating"`
	IntervalDays int     `db:"interval_days"`
	Ease         float64 `db:"ease"`
	Round        int     `db:"round"`
	TS           int64   `db:"ts"`
}

func (r *eventRepo) AppendReview(ctx context.Context, ev ReviewEvent) error {
	q := r.db.Rebind(`INSERT INTO review_events
		(deck_id, card_id, rating, interval_days, ease, round, ts)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	_, err := r.db.ExecContext(ctx, q,
		ev.DeckID, ev.CardID, string(ev.Rating),
		ev.IntervalDays, ev.Ease, ev.Round, ev.Timestamp.UnixMilli())
	if err != nil {
		return fmt.Errorf("append review event: %w", err)
	}
	return nil
}

func (r *eventRepo) RecentByDeck(ctx context.Context, deckID string, limit int) ([]ReviewEvent, error) {
	q := `SELECT id, deck_id, card_id, rating, interval_days, ease, round, ts
		FROM review_events WHERE deck_id = ? ORDER BY id DESC`
	args := []any{deckID}
	if limit > 0 {
		q += " LIMIT ?"
		args = append(args, limit)
	}

	var rows []reviewEventRow
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(q), args...); err != nil {
		return nil, fmt.Errorf("query review events: %w", err)
	}

	events := make([]ReviewEvent, len(rows))
	for i, row := range rows {
		events[i] = ReviewEvent{
			ID:           row.ID,
			DeckID:       row.DeckID,
			CardID:       row.CardID,
			Rating:       card.Rating(row.Rating),
			IntervalDays: row.IntervalDays,
			Ease:         row.Ease,
			Round:        row.Round,
			Timestamp:    time.UnixMilli(row.TS).UTC(),
		}
	}
	return events, nil
}

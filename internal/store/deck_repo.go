package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/abhisek/memoriz/internal/deck"
	"github.com/abhisek/memoriz/internal/deckio"
)

// deckRepo implements DeckRepo over the decks table. The full deck
// lives in the doc column as a deck document; the other columns are
// listing metadata kept in sync on every save.
type deckRepo struct {
	db *sqlx.DB
}

type deckRow struct {
	ID        string `db:"id"`
	Name      string `db:"name"`
	CardCount int    `db:"card_count"`
	Round     int    `db:"round"`
	State     string `db:"state"`
	CreatedAt int64  `db:"created_at"`
	UpdatedAt int64  `db:"updated_at"`
}

func (r *deckRepo) Save(ctx context.Context, d *deck.Deck, now time.Time) error {
	if err := d.Validate(); err != nil {
		return fmt.Errorf("save deck: %w", err)
	}
	doc, err := deckio.Marshal(d)
	if err != nil {
		return fmt.Errorf("save deck: %w", err)
	}

	q := r.db.Rebind(`INSERT INTO decks
		(id, name, card_count, round, state, doc, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			name = excluded.name,
			card_count = excluded.card_count,
			round = excluded.round,
			state = excluded.state,
			doc = excluded.doc,
			updated_at = excluded.updated_at`)
	_, err = r.db.ExecContext(ctx, q,
		d.ID, d.Name, len(d.Cards), d.Round, string(d.State),
		string(doc), d.CreatedAt.UnixMilli(), now.UnixMilli())
	if err != nil {
		return fmt.Errorf("save deck: %w", err)
	}
	return nil
}

func (r *deckRepo) Load(ctx context.Context, id string) (*deck.Deck, error) {
	var doc string
	q := r.db.Rebind(`SELECT doc FROM decks WHERE id = ?`)
	if err := r.db.GetContext(ctx, &doc, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrDeckNotFound, id)
		}
		return nil, fmt.Errorf("load deck: %w", err)
	}

	// A stored document gets the same scrutiny as an imported one.
	d, err := deckio.Unmarshal([]byte(doc))
	if err != nil {
		return nil, fmt.Errorf("load deck %s: %w", id, err)
	}
	return d, nil
}

func (r *deckRepo) List(ctx context.Context) ([]DeckInfo, error) {
	var rows []deckRow
	err := r.db.SelectContext(ctx, &rows,
		`SELECT id, name, card_count, round, state, created_at, updated_at
		FROM decks ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("list decks: %w", err)
	}

	infos := make([]DeckInfo, len(rows))
	for i, row := range rows {
		infos[i] = DeckInfo{
			ID:        row.ID,
			Name:      row.Name,
			CardCount: row.CardCount,
			Round:     row.Round,
			State:     deck.State(row.State),
			CreatedAt: time.UnixMilli(row.CreatedAt).UTC(),
			UpdatedAt: time.UnixMilli(row.UpdatedAt).UTC(),
		}
	}
	return infos, nil
}

func (r *deckRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM decks WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("delete deck: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete deck: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrDeckNotFound, id)
	}
	return nil
}

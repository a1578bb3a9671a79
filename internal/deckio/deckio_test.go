package deckio

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/memoriz/internal/card"
	"github.com/abhisek/memoriz/internal/deck"
)

var ioTime = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func testDeck(t *testing.T, n int) *deck.Deck {
	t.Helper()
	seeds := make([]deck.Seed, n)
	for i := range seeds {
		seeds[i] = deck.Seed{
			Prompt:   "prompt " + string(rune('a'+i)),
			Response: "response " + string(rune('a'+i)),
		}
	}
	d, err := deck.New("capitals", seeds, ioTime)
	require.NoError(t, err)
	return d
}

func TestMarshalUnmarshal_RoundTrip(t *testing.T) {
	d := testDeck(t, 3)
	_, err := d.SubmitRating(card.RatingEasy, ioTime.Add(1*time.Minute))
	require.NoError(t, err)
	_, err = d.SubmitRating(card.RatingAgain, ioTime.Add(2*time.Minute))
	require.NoError(t, err)
	_, err = d.SubmitRating(card.RatingGood, ioTime.Add(3*time.Minute))
	require.NoError(t, err)
	require.NoError(t, d.AdvanceRound())

	b, err := Marshal(d)
	require.NoError(t, err)

	got, err := Unmarshal(b)
	require.NoError(t, err)

	assert.Equal(t, d.ID, got.ID)
	assert.Equal(t, d.Name, got.Name)
	assert.True(t, got.CreatedAt.Equal(d.CreatedAt))
	assert.Equal(t, d.Round, got.Round)
	assert.Equal(t, d.Cursor, got.Cursor)
	assert.Equal(t, d.State, got.State)
	assert.Equal(t, d.RoundOrder, got.RoundOrder)
	assert.Equal(t, d.Tally, got.Tally)
	assert.Equal(t, d.History, got.History)

	require.Len(t, got.Cards, len(d.Cards))
	for i, want := range d.Cards {
		c := got.Cards[i]
		assert.Equal(t, want.ID, c.ID)
		assert.Equal(t, want.Prompt, c.Prompt)
		assert.Equal(t, want.Response, c.Response)
		assert.Equal(t, want.Repetitions, c.Repetitions)
		assert.Equal(t, want.EaseFactor, c.EaseFactor)
		assert.Equal(t, want.Interval, c.Interval)
		assert.Equal(t, want.Retired, c.Retired)
		assert.True(t, c.Due.Equal(want.Due), "card %d due", i)
		assert.True(t, c.CreatedAt.Equal(want.CreatedAt), "card %d created", i)
		assert.True(t, c.LastReviewedAt.Equal(want.LastReviewedAt), "card %d last reviewed", i)
	}
}

func TestMarshalUnmarshal_CompletedStates(t *testing.T) {
	roundDone := testDeck(t, 2)
	_, err := roundDone.SubmitRating(card.RatingEasy, ioTime)
	require.NoError(t, err)
	_, err = roundDone.SubmitRating(card.RatingHard, ioTime)
	require.NoError(t, err)
	require.Equal(t, deck.StateRoundComplete, roundDone.State)

	deckDone := testDeck(t, 1)
	_, err = deckDone.SubmitRating(card.RatingEasy, ioTime)
	require.NoError(t, err)
	require.Equal(t, deck.StateDeckComplete, deckDone.State)

	for _, d := range []*deck.Deck{roundDone, deckDone} {
		b, err := Marshal(d)
		require.NoError(t, err)
		got, err := Unmarshal(b)
		require.NoError(t, err)
		assert.Equal(t, d.State, got.State)
		assert.Equal(t, d.Cursor, got.Cursor)
	}
}

func TestMarshal_WireShape(t *testing.T) {
	d := testDeck(t, 1)
	b, err := Marshal(d)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(b, &doc))

	assert.Equal(t, float64(FormatVersion), doc["version"])
	assert.Equal(t, float64(ioTime.UnixMilli()), doc["created_at"])
	assert.Equal(t, false, doc["round_complete"])
	assert.Equal(t, false, doc["deck_complete"])

	tally, ok := doc["rating_tally"].(map[string]any)
	require.True(t, ok)
	assert.Len(t, tally, 4)

	cards, ok := doc["cards"].([]any)
	require.True(t, ok)
	require.Len(t, cards, 1)
	rec, ok := cards[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(ioTime.UnixMilli()), rec["due_at"])
	assert.Equal(t, 2.5, rec["ease_factor"])
	_, present := rec["last_reviewed_at"]
	assert.False(t, present, "unreviewed card should omit last_reviewed_at")
}

// corrupt round trips a valid document through a raw JSON map, applies a
// mutation, and re-serializes it.
func corrupt(t *testing.T, d *deck.Deck, mutate func(doc map[string]any)) []byte {
	t.Helper()
	b, err := Marshal(d)
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(b, &doc))
	mutate(doc)
	out, err := json.Marshal(doc)
	require.NoError(t, err)
	return out
}

func TestUnmarshal_RejectsCorruptDocuments(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(doc map[string]any)
	}{
		{"unsupported version", func(doc map[string]any) {
			doc["version"] = 2
		}},
		{"missing field", func(doc map[string]any) {
			delete(doc, "cursor")
		}},
		{"unexpected field", func(doc map[string]any) {
			doc["owner"] = "me"
		}},
		{"cursor out of range", func(doc map[string]any) {
			doc["cursor"] = 9
		}},
		{"round order out of range", func(doc map[string]any) {
			doc["round_order"] = []any{0, 99}
		}},
		{"empty round order", func(doc map[string]any) {
			doc["round_order"] = []any{}
		}},
		{"both completion flags", func(doc map[string]any) {
			doc["round_complete"] = true
			doc["deck_complete"] = true
		}},
		{"tally disagrees with history", func(doc map[string]any) {
			doc["rating_tally"].(map[string]any)["good"] = 1
		}},
		{"negative tally", func(doc map[string]any) {
			doc["rating_tally"].(map[string]any)["good"] = -1
		}},
		{"tally missing a key", func(doc map[string]any) {
			delete(doc["rating_tally"].(map[string]any), "hard")
		}},
		{"unknown history token", func(doc map[string]any) {
			doc["rating_history"] = []any{"meh"}
		}},
		{"no cards", func(doc map[string]any) {
			doc["cards"] = []any{}
		}},
		{"duplicate card ids", func(doc map[string]any) {
			cards := doc["cards"].([]any)
			cards[1].(map[string]any)["id"] = cards[0].(map[string]any)["id"]
		}},
		{"ease below floor", func(doc map[string]any) {
			doc["cards"].([]any)[0].(map[string]any)["ease_factor"] = 1.0
		}},
		{"blank prompt", func(doc map[string]any) {
			doc["cards"].([]any)[0].(map[string]any)["prompt"] = ""
		}},
		{"review fields without a review", func(doc map[string]any) {
			doc["cards"].([]any)[0].(map[string]any)["repetitions"] = 4
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := corrupt(t, testDeck(t, 2), tt.mutate)
			_, err := Unmarshal(data)
			require.ErrorIs(t, err, ErrInvalidDocument)
		})
	}
}

func TestUnmarshal_RejectsMalformedJSON(t *testing.T) {
	_, err := Unmarshal([]byte("{not json"))
	require.ErrorIs(t, err, ErrInvalidDocument)
}

func TestUnmarshal_RejectsDueDriftAfterReview(t *testing.T) {
	d := testDeck(t, 2)
	_, err := d.SubmitRating(card.RatingGood, ioTime)
	require.NoError(t, err)

	data := corrupt(t, d, func(doc map[string]any) {
		rec := doc["cards"].([]any)[0].(map[string]any)
		rec["due_at"] = float64(ioTime.Add(48 * time.Hour).UnixMilli())
	})
	_, err = Unmarshal(data)
	require.ErrorIs(t, err, ErrInvalidDocument)
}

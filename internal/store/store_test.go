package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/abhisek/memoriz/internal/card"
	"github.com/abhisek/memoriz/internal/deck"
)

var storeTime = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	cfg := Config{Driver: DriverSQLite, DSN: filepath.Join(t.TempDir(), "memoriz.db")}
	s, err := Open(cfg)
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testDeck(t *testing.T, name string) *deck.Deck {
	t.Helper()
	d, err := deck.New(name, []deck.Seed{
		{Prompt: "capital of France", Response: "Paris"},
		{Prompt: "7 x 8", Response: "56"},
	}, storeTime)
	if err != nil {
		t.Fatalf("new deck: %v", err)
	}
	return d
}

func TestOpen_AppliesPragmas(t *testing.T) {
	s := openTestStore(t)

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}
	for _, tt := range tests {
		var got string
		if err := s.DB().QueryRow("PRAGMA " + tt.pragma).Scan(&got); err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestOpen_SchemaIsIdempotent(t *testing.T) {
	cfg := Config{Driver: DriverSQLite, DSN: filepath.Join(t.TempDir(), "memoriz.db")}
	s, err := Open(cfg)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	s.Close()

	s, err = Open(cfg)
	if err != nil {
		t.Fatalf("second open: %v", err)
	}
	s.Close()
}

func TestConfig_Validate(t *testing.T) {
	if err := (Config{Driver: "mysql", DSN: "x"}).Validate(); err == nil {
		t.Error("expected an error for an unknown driver")
	}
	if err := (Config{Driver: DriverSQLite}).Validate(); err == nil {
		t.Error("expected an error for an empty DSN")
	}
	if err := (Config{Driver: DriverPostgres, DSN: "postgres://localhost/memoriz"}).Validate(); err != nil {
		t.Errorf("valid config: %v", err)
	}
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("MEMORIZ_DB_DRIVER", "")
	t.Setenv("MEMORIZ_DB", filepath.Join(t.TempDir(), "envpath.db"))

	cfg, err := ConfigFromEnv()
	if err != nil {
		t.Fatalf("ConfigFromEnv: %v", err)
	}
	if cfg.Driver != DriverSQLite {
		t.Errorf("Driver = %q, want %q", cfg.Driver, DriverSQLite)
	}

	t.Setenv("MEMORIZ_DB_DRIVER", "postgres")
	t.Setenv("MEMORIZ_DB", "")
	if _, err := ConfigFromEnv(); err == nil {
		t.Error("expected an error for postgres without a connection string")
	}
}

func TestDefaultDBPath_EnvOverride(t *testing.T) {
	want := filepath.Join(t.TempDir(), "custom", "my.db")
	t.Setenv("MEMORIZ_DB", want)

	got, err := DefaultDBPath()
	if err != nil {
		t.Fatalf("DefaultDBPath: %v", err)
	}
	if got != want {
		t.Errorf("DefaultDBPath = %q, want %q", got, want)
	}
}

func TestDefaultDBPath_XDG(t *testing.T) {
	dataHome := t.TempDir()
	t.Setenv("MEMORIZ_DB", "")
	t.Setenv("XDG_DATA_HOME", dataHome)

	got, err := DefaultDBPath()
	if err != nil {
		t.Fatalf("DefaultDBPath: %v", err)
	}
	want := filepath.Join(dataHome, "memoriz", "memoriz.db")
	if got != want {
		t.Errorf("DefaultDBPath = %q, want %q", got, want)
	}
}

func TestDeckRepo_SaveAndLoad(t *testing.T) {
	s := openTestStore(t)
	repo := s.DeckRepo()
	ctx := context.Background()

	d := testDeck(t, "geography")
	if _, err := d.SubmitRating(card.RatingGood, storeTime); err != nil {
		t.Fatalf("SubmitRating: %v", err)
	}
	if err := repo.Save(ctx, d, storeTime); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := repo.Load(ctx, d.ID)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Name != d.Name {
		t.Errorf("Name = %q, want %q", got.Name, d.Name)
	}
	if got.Cursor != 1 {
		t.Errorf("Cursor = %d, want 1", got.Cursor)
	}
	if got.State != deck.StateReviewing {
		t.Errorf("State = %q, want %q", got.State, deck.StateReviewing)
	}
	if len(got.History) != 1 || got.History[0] != card.RatingGood {
		t.Errorf("History = %v, want [good]", got.History)
	}
	if !got.Cards[0].Due.Equal(d.Cards[0].Due) {
		t.Errorf("Cards[0].Due = %v, want %v", got.Cards[0].Due, d.Cards[0].Due)
	}
}

func TestDeckRepo_SaveUpserts(t *testing.T) {
	s := openTestStore(t)
	repo := s.DeckRepo()
	ctx := context.Background()

	d := testDeck(t, "geography")
	if err := repo.Save(ctx, d, storeTime); err != nil {
		t.Fatalf("first Save: %v", err)
	}

	if _, err := d.SubmitRating(card.RatingEasy, storeTime); err != nil {
		t.Fatalf("SubmitRating: %v", err)
	}
	if _, err := d.SubmitRating(card.RatingGood, storeTime); err != nil {
		t.Fatalf("SubmitRating: %v", err)
	}
	if err := d.AdvanceRound(); err != nil {
		t.Fatalf("AdvanceRound: %v", err)
	}
	later := storeTime.Add(time.Hour)
	if err := repo.Save(ctx, d, later); err != nil {
		t.Fatalf("second Save: %v", err)
	}

	infos, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(infos) != 1 {
		t.Fatalf("len(infos) = %d, want 1", len(infos))
	}
	if infos[0].Round != 2 {
		t.Errorf("Round = %d, want 2", infos[0].Round)
	}
	if !infos[0].UpdatedAt.Equal(later) {
		t.Errorf("UpdatedAt = %v, want %v", infos[0].UpdatedAt, later)
	}
}

func TestDeckRepo_List(t *testing.T) {
	s := openTestStore(t)
	repo := s.DeckRepo()
	ctx := context.Background()

	for _, name := range []string{"zoology", "algebra"} {
		if err := repo.Save(ctx, testDeck(t, name), storeTime); err != nil {
			t.Fatalf("Save %s: %v", name, err)
		}
	}

	infos, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(infos) != 2 {
		t.Fatalf("len(infos) = %d, want 2", len(infos))
	}
	if infos[0].Name != "algebra" || infos[1].Name != "zoology" {
		t.Errorf("order = [%s, %s], want [algebra, zoology]", infos[0].Name, infos[1].Name)
	}
	if infos[0].CardCount != 2 {
		t.Errorf("CardCount = %d, want 2", infos[0].CardCount)
	}
	if infos[0].State != deck.StateReviewing {
		t.Errorf("State = %q, want %q", infos[0].State, deck.StateReviewing)
	}
}

func TestDeckRepo_LoadMissing(t *testing.T) {
	s := openTestStore(t)

	_, err := s.DeckRepo().Load(context.Background(), "no-such-deck")
	if !errors.Is(err, ErrDeckNotFound) {
		t.Errorf("error = %v, want ErrDeckNotFound", err)
	}
}

func TestDeckRepo_Delete(t *testing.T) {
	s := openTestStore(t)
	repo := s.DeckRepo()
	ctx := context.Background()

	d := testDeck(t, "geography")
	if err := repo.Save(ctx, d, storeTime); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := repo.Delete(ctx, d.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repo.Load(ctx, d.ID); !errors.Is(err, ErrDeckNotFound) {
		t.Errorf("Load after delete = %v, want ErrDeckNotFound", err)
	}
	if err := repo.Delete(ctx, d.ID); !errors.Is(err, ErrDeckNotFound) {
		t.Errorf("second Delete = %v, want ErrDeckNotFound", err)
	}
}

func TestDeckRepo_SaveRejectsInvalidDeck(t *testing.T) {
	s := openTestStore(t)
	repo := s.DeckRepo()
	ctx := context.Background()

	d := testDeck(t, "geography")
	d.Tally[card.RatingGood] = 5 // disagrees with empty history

	if err := repo.Save(ctx, d, storeTime); !errors.Is(err, deck.ErrInconsistent) {
		t.Fatalf("Save = %v, want ErrInconsistent", err)
	}
	if _, err := repo.Load(ctx, d.ID); !errors.Is(err, ErrDeckNotFound) {
		t.Errorf("invalid deck reached the database: %v", err)
	}
}

func TestEventRepo_AppendAndRecent(t *testing.T) {
	s := openTestStore(t)
	events := s.EventRepo()
	ctx := context.Background()

	for i, rating := range []card.Rating{card.RatingGood, card.RatingAgain, card.RatingEasy} {
		ev := ReviewEvent{
			DeckID:       "deck-1",
			CardID:       "card-1",
			Rating:       rating,
			IntervalDays: i + 1,
			Ease:         2.5,
			Round:        1,
			Timestamp:    storeTime.Add(time.Duration(i) * time.Minute),
		}
		if err := events.AppendReview(ctx, ev); err != nil {
			t.Fatalf("AppendReview: %v", err)
		}
	}
	if err := events.AppendReview(ctx, ReviewEvent{
		DeckID: "deck-2", CardID: "card-9", Rating: card.RatingHard,
		IntervalDays: 1, Ease: 2.35, Round: 1, Timestamp: storeTime,
	}); err != nil {
		t.Fatalf("AppendReview: %v", err)
	}

	got, err := events.RecentByDeck(ctx, "deck-1", 2)
	if err != nil {
		t.Fatalf("RecentByDeck: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len(events) = %d, want 2", len(got))
	}
	if got[0].Rating != card.RatingEasy {
		t.Errorf("newest Rating = %q, want %q", got[0].Rating, card.RatingEasy)
	}
	if got[1].Rating != card.RatingAgain {
		t.Errorf("second Rating = %q, want %q", got[1].Rating, card.RatingAgain)
	}
	if !got[0].Timestamp.Equal(storeTime.Add(2 * time.Minute)) {
		t.Errorf("Timestamp = %v, want %v", got[0].Timestamp, storeTime.Add(2*time.Minute))
	}

	all, err := events.RecentByDeck(ctx, "deck-1", 0)
	if err != nil {
		t.Fatalf("RecentByDeck: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("len(all) = %d, want 3", len(all))
	}
}

package cmd

import (
	"fmt"
	"time"

	"github.com/abhisek/memoriz/internal/card"
	"github.com/abhisek/memoriz/internal/deck"
	"github.com/abhisek/memoriz/internal/store"
	"github.com/spf13/cobra"
)

var rateCmd = &cobra.Command{
	Use:   "rate <deck> <again|hard|good|easy>",
	Short: "Rate the current card",
	Long: `Submit a recall rating for the card under the cursor. The scheduler
reworks the card's interval and ease, the deck advances to the next
card, and the outcome is appended to the review log. An "easy" retires
the card from future rounds until the deck is restarted.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		rating, err := card.ParseRating(args[1])
		if err != nil {
			return err
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := cmd.Context()
		info, err := resolveDeck(ctx, s.DeckRepo(), args[0])
		if err != nil {
			return err
		}
		d, err := s.DeckRepo().Load(ctx, info.ID)
		if err != nil {
			return err
		}

		now := time.Now()
		rev, err := d.SubmitRating(rating, now)
		if err != nil {
			return err
		}
		if err := s.DeckRepo().Save(ctx, d, now); err != nil {
			return err
		}
		if err := s.EventRepo().AppendReview(ctx, store.ReviewEvent{
			DeckID:       d.ID,
			CardID:       rev.Card.ID,
			Rating:       rev.Rating,
			IntervalDays: rev.Card.Interval,
			Ease:         rev.Card.EaseFactor,
			Round:        rev.Round,
			Timestamp:    now,
		}); err != nil {
			return err
		}

		fmt.Printf("%s  %s\n", ratingColor(rev.Rating).Sprint(string(rev.Rating)), rev.Card.Prompt)
		fmt.Printf("Next in %s (due %s, ease %.2f)",
			formatDays(rev.Card.Interval),
			rev.Card.Due.Local().Format("2006-01-02"),
			rev.Card.EaseFactor)
		if rev.Card.Retired {
			fmt.Print("  (retired)")
		}
		fmt.Println()

		switch rev.State {
		case deck.StateReviewing:
			fmt.Printf("%d cards left in round %d.\n", d.RemainingInRound(), d.Round)
		case deck.StateRoundComplete:
			fmt.Printf("Round %d complete, %d cards still in play. Continue with: memoriz advance %s\n",
				rev.Round, d.ActiveCount(), shortID(d.ID))
		case deck.StateDeckComplete:
			fmt.Printf("Deck complete: every card is learned. Drill again with: memoriz restart %s\n",
				shortID(d.ID))
		}
		return nil
	},
}

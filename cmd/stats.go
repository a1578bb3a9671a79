package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/abhisek/memoriz/internal/card"
	"github.com/abhisek/memoriz/internal/deck"
	"github.com/abhisek/memoriz/internal/stats"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats <deck>",
	Short: "Show deck statistics",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
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
		sum := stats.Compute(d, time.Now())

		fmt.Printf("Deck:      %s (%s)\n", d.Name, shortID(d.ID))
		fmt.Printf("Round:     %d, %s", d.Round, stateColor(d.State).Sprint(string(d.State)))
		if d.State == deck.StateReviewing {
			fmt.Printf(", %d cards left this round", d.RemainingInRound())
		}
		fmt.Println()
		fmt.Printf("Cards:     %d total, %d learned, %d due\n",
			sum.TotalCards, sum.LearnedCards, sum.DueCards)
		fmt.Printf("Ratings:   %d\n", sum.TotalRatings)
		fmt.Printf("Accuracy:  %d%%\n", sum.AccuracyPercent)

		if sum.TotalRatings > 0 {
			fmt.Println(strings.Repeat("─", 40))
			for _, r := range card.Ratings() {
				fmt.Printf("%s  %4d\n", ratingColor(r).Sprintf("%-5s", string(r)), d.Tally[r])
			}
		}
		return nil
	},
}

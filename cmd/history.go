package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history <deck>",
	Short: "Show recent reviews",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

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
		events, err := s.EventRepo().RecentByDeck(ctx, info.ID, limit)
		if err != nil {
			return err
		}
		if len(events) == 0 {
			fmt.Println("No reviews recorded yet.")
			return nil
		}

		// Prompts come from the deck document; an unmatched card id
		// prints as-is.
		d, err := s.DeckRepo().Load(ctx, info.ID)
		if err != nil {
			return err
		}
		prompts := make(map[string]string, len(d.Cards))
		for _, c := range d.Cards {
			prompts[c.ID] = c.Prompt
		}

		fmt.Printf("%-19s  %5s  %-5s  %8s  %5s  %s\n",
			"Time", "Round", "Rating", "Interval", "Ease", "Card")
		fmt.Println(strings.Repeat("─", 78))
		for _, ev := range events {
			prompt, ok := prompts[ev.CardID]
			if !ok {
				prompt = ev.CardID
			}
			fmt.Printf("%-19s  %5d  %s  %7dd  %5.2f  %s\n",
				ev.Timestamp.Local().Format("2006-01-02 15:04:05"),
				ev.Round,
				ratingColor(ev.Rating).Sprintf("%-5s", string(ev.Rating)),
				ev.IntervalDays,
				ev.Ease,
				truncate(prompt, 26))
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Number of reviews to show, 0 for all")
}

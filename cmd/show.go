package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/abhisek/memoriz/internal/card"
	"github.com/abhisek/memoriz/internal/deck"
	"github.com/abhisek/memoriz/internal/sm2"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <deck>",
	Short: "Show the current card",
	Long: `Show the card waiting for a rating. The response stays hidden until
--answer so the prompt can be attempted first; --preview prints what
each rating would do to the card's schedule.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reveal, _ := cmd.Flags().GetBool("answer")
		preview, _ := cmd.Flags().GetBool("preview")

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

		fmt.Printf("%s  round %d  %s\n", color.New(color.Bold).Sprint(d.Name), d.Round,
			stateColor(d.State).Sprint(string(d.State)))

		c, err := d.CurrentCard()
		if errors.Is(err, deck.ErrNoActiveCard) {
			printCompletion(d)
			return nil
		}
		if err != nil {
			return err
		}

		fmt.Printf("Card %d of %d\n\n", d.Cursor+1, len(d.RoundOrder))
		fmt.Printf("  %s\n", c.Prompt)
		if reveal {
			fmt.Printf("  %s\n", color.New(color.FgGreen).Sprint(c.Response))
		} else {
			fmt.Println("\nRun with --answer to reveal, then: memoriz rate " + shortID(d.ID) + " <again|hard|good|easy>")
		}

		if preview {
			now := time.Now()
			fmt.Println()
			fmt.Println("If rated now:")
			outcomes := sm2.Preview(c, now)
			for _, r := range card.Ratings() {
				next := outcomes[r]
				note := ""
				if next.Retired {
					note = "  retires the card"
				}
				fmt.Printf("  %s  next in %s, due %s%s\n",
					ratingColor(r).Sprintf("%-5s", string(r)), formatDays(next.Interval),
					next.Due.Local().Format("2006-01-02"), note)
			}
		}
		return nil
	},
}

// printCompletion tells the learner what to do with a finished round or
// deck instead of failing on the missing cursor.
func printCompletion(d *deck.Deck) {
	switch d.State {
	case deck.StateRoundComplete:
		fmt.Printf("Round %d is complete. Start the next one with: memoriz advance %s\n",
			d.Round, shortID(d.ID))
	case deck.StateDeckComplete:
		fmt.Printf("Every card is learned. Drill again with: memoriz restart %s\n",
			shortID(d.ID))
	}
}

func ratingColor(r card.Rating) *color.Color {
	switch r {
	case card.RatingAgain:
		return color.New(color.FgRed)
	case card.RatingHard:
		return color.New(color.FgYellow)
	case card.RatingGood:
		return color.New(color.FgGreen)
	case card.RatingEasy:
		return color.New(color.FgCyan)
	}
	return color.New(color.FgWhite)
}

func formatDays(days int) string {
	if days == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", days)
}

func init() {
	showCmd.Flags().BoolP("answer", "a", false, "Reveal the response")
	showCmd.Flags().BoolP("preview", "p", false, "Show what each rating would do")
}

package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var advanceCmd = &cobra.Command{
	Use:   "advance <deck>",
	Short: "Start the next round",
	Long: `Start the next round over the cards that are still in play. When every
card has been retired the full deck is recycled, so a mastered deck
stays drillable. Valid only once the current round is complete.`,
	Args: cobra.ExactArgs(1),
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

		if err := d.AdvanceRound(); err != nil {
			return err
		}
		if err := s.DeckRepo().Save(ctx, d, time.Now()); err != nil {
			return err
		}

		fmt.Printf("Round %d started with %d cards.\n", d.Round, len(d.RoundOrder))
		return nil
	},
}

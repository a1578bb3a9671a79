package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var restartCmd = &cobra.Command{
	Use:   "restart <deck>",
	Short: "Restart a deck from round 1",
	Long: `Reset the deck's traversal: back to round 1, rating tally and history
cleared, every retired card returned to play. Card scheduling state
(interval, ease, due time) is kept.`,
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

		d.Restart()
		if err := s.DeckRepo().Save(ctx, d, time.Now()); err != nil {
			return err
		}

		fmt.Printf("Deck %s restarted: round 1 with all %d cards in play.\n",
			d.Name, len(d.Cards))
		return nil
	},
}

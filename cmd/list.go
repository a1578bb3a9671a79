package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/abhisek/memoriz/internal/deck"
	"github.com/abhisek/memoriz/internal/stats"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List decks",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := cmd.Context()
		infos, err := s.DeckRepo().List(ctx)
		if err != nil {
			return err
		}
		if len(infos) == 0 {
			fmt.Println("No decks yet. Seed one with: memoriz create <name> --from cards.xlsx")
			return nil
		}

		now := time.Now()
		fmt.Printf("%-10s  %-24s  %5s  %5s  %-14s  %4s\n",
			"ID", "Name", "Cards", "Round", "State", "Due")
		fmt.Println(strings.Repeat("─", 74))
		for _, info := range infos {
			d, err := s.DeckRepo().Load(ctx, info.ID)
			if err != nil {
				return err
			}
			sum := stats.Compute(d, now)
			// States are padded before coloring so the escape codes
			// don't break column widths.
			fmt.Printf("%-10s  %-24s  %5d  %5d  %s  %4d\n",
				shortID(info.ID), truncate(info.Name, 24), sum.TotalCards,
				info.Round, stateColor(info.State).Sprintf("%-14s", string(info.State)),
				sum.DueCards)
		}
		return nil
	},
}

func stateColor(s deck.State) *color.Color {
	switch s {
	case deck.StateReviewing:
		return color.New(color.FgCyan)
	case deck.StateRoundComplete:
		return color.New(color.FgYellow)
	case deck.StateDeckComplete:
		return color.New(color.FgGreen)
	}
	return color.New(color.FgWhite)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/abhisek/memoriz/internal/deckio"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a deck document",
	Long: `Read a JSON deck document, validate every structural and scheduling
invariant, and store the deck. A document that fails any check is
rejected whole; an existing deck with the same id is replaced.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read %s: %w", args[0], err)
		}
		d, err := deckio.Unmarshal(data)
		if err != nil {
			return err
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		if err := s.DeckRepo().Save(cmd.Context(), d, time.Now()); err != nil {
			return err
		}

		fmt.Printf("Imported deck %s (%s): %d cards, round %d.\n",
			d.Name, shortID(d.ID), len(d.Cards), d.Round)
		return nil
	},
}

package cmd

import (
	"fmt"
	"time"

	"github.com/abhisek/memoriz/internal/cardfile"
	"github.com/abhisek/memoriz/internal/deck"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var createCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a deck from a card file",
	Long: `Create a deck seeded from a spreadsheet (.xlsx, .xlsm) or CSV file.
The first column is the prompt, the second the response. Every card
starts due immediately and the deck opens in round 1.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		from, _ := cmd.Flags().GetString("from")
		sheet, _ := cmd.Flags().GetString("sheet")
		noHeader, _ := cmd.Flags().GetBool("no-header")

		opts := cardfile.DefaultOptions()
		if sheet != "" {
			opts.Sheet = sheet
		}
		if noHeader {
			opts.HasHeader = false
		}
		seeds, err := cardfile.Read(from, opts)
		if err != nil {
			return fmt.Errorf("read card file: %w", err)
		}

		now := time.Now()
		d, err := deck.New(args[0], seeds, now)
		if err != nil {
			return err
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		if err := s.DeckRepo().Save(cmd.Context(), d, now); err != nil {
			return err
		}

		fmt.Printf("Created deck %s with %d cards.\n",
			color.New(color.FgGreen).Sprint(d.Name), len(d.Cards))
		fmt.Printf("ID: %s\n", d.ID)
		return nil
	},
}

func init() {
	createCmd.Flags().StringP("from", "f", "", "Card file to seed from (.xlsx, .xlsm or .csv)")
	createCmd.Flags().String("sheet", "", `Spreadsheet sheet to read (default "Sheet1")`)
	createCmd.Flags().Bool("no-header", false, "Treat the first row as a card, not a header")
	_ = createCmd.MarkFlagRequired("from")
}
